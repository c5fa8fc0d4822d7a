// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package features

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/mchmarny/flight-delay/pkg/dataset"
	"github.com/mchmarny/flight-delay/pkg/defaults"
	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
	"github.com/mchmarny/flight-delay/pkg/flight"
)

// Encoder encodes tables onto a fixed column list.
type Encoder struct {
	columns []string
}

// NewEncoder creates an encoder for columns. Columns must be non-empty and
// unique.
func NewEncoder(columns []string) (*Encoder, error) {
	if len(columns) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "feature column list is empty")
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("duplicate feature column %q", c))
		}
		seen[c] = true
	}
	return &Encoder{columns: slices.Clone(columns)}, nil
}

// NewDefaultEncoder creates an encoder for the curated top features.
func NewDefaultEncoder() *Encoder {
	return &Encoder{columns: defaults.TopFeatures()}
}

// Columns returns a copy of the encoder's column list.
func (e *Encoder) Columns() []string {
	return slices.Clone(e.columns)
}

// Encode returns the feature matrix for t.
func (e *Encoder) Encode(t *dataset.Table) (*Matrix, error) {
	if err := t.Require(flight.EncodingColumns()...); err != nil {
		return nil, err
	}
	return Dummies(t.Records).Select(e.columns), nil
}

// EncodeWithTarget returns the feature matrix for t and the delay label of
// every record. Any unparseable timestamp fails the whole table.
func (e *Encoder) EncodeWithTarget(t *dataset.Table, threshold float64) (*Matrix, []int, error) {
	required := append(flight.EncodingColumns(), flight.LabelColumns()...)
	if err := t.Require(required...); err != nil {
		return nil, nil, err
	}

	labels := make([]int, len(t.Records))
	for i, r := range t.Records {
		label, err := r.DelayLabel(threshold)
		if err != nil {
			return nil, nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
				"failed to derive delay label", err, map[string]any{"row": i})
		}
		labels[i] = label
	}

	return Dummies(t.Records).Select(e.columns), labels, nil
}

// Dummies one-hot encodes operator, flight type and month of records into
// the wide matrix. Categories within each source column are sorted, and the
// groups are concatenated operator, flight type, month.
func Dummies(records []flight.Record) *Matrix {
	operators := map[string]bool{}
	types := map[string]bool{}
	months := map[int]bool{}
	for _, r := range records {
		operators[r.Operator] = true
		types[r.FlightType] = true
		months[r.Month] = true
	}

	var columns []string
	for _, v := range sortedKeys(operators) {
		columns = append(columns, OperatorColumn(v))
	}
	for _, v := range sortedKeys(types) {
		columns = append(columns, FlightTypeColumn(v))
	}
	monthKeys := make([]int, 0, len(months))
	for m := range months {
		monthKeys = append(monthKeys, m)
	}
	slices.Sort(monthKeys)
	for _, m := range monthKeys {
		columns = append(columns, MonthColumn(m))
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	rows := make([][]float64, len(records))
	for i, r := range records {
		row := make([]float64, len(columns))
		row[index[OperatorColumn(r.Operator)]] = 1
		row[index[FlightTypeColumn(r.FlightType)]] = 1
		row[index[MonthColumn(r.Month)]] = 1
		rows[i] = row
	}

	return &Matrix{Columns: columns, Rows: rows}
}

// OperatorColumn returns the one-hot column name for an operator.
func OperatorColumn(operator string) string {
	return flight.ColOperator + "_" + operator
}

// FlightTypeColumn returns the one-hot column name for a flight type.
func FlightTypeColumn(flightType string) string {
	return flight.ColFlightType + "_" + flightType
}

// MonthColumn returns the one-hot column name for a month.
func MonthColumn(month int) string {
	return flight.ColMonth + "_" + strconv.Itoa(month)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
