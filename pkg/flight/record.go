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

package flight

import (
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
)

// Source column names.
const (
	ColOperator    = "OPERA"
	ColFlightType  = "TIPOVUELO"
	ColMonth       = "MES"
	ColScheduled   = "Fecha-I"
	ColActual      = "Fecha-O"
	ColDestination = "SIGLADES"
	ColDayName     = "DIANOM"
)

// Flight types.
const (
	TypeInternational = "I"
	TypeNational      = "N"
)

// Record is one historical flight row.
type Record struct {
	Operator    string `csv:"OPERA" json:"OPERA" yaml:"OPERA"`
	FlightType  string `csv:"TIPOVUELO" json:"TIPOVUELO" yaml:"TIPOVUELO"`
	Month       int    `csv:"MES" json:"MES" yaml:"MES"`
	Scheduled   string `csv:"Fecha-I,omitempty" json:"Fecha-I,omitempty" yaml:"Fecha-I,omitempty"`
	Actual      string `csv:"Fecha-O,omitempty" json:"Fecha-O,omitempty" yaml:"Fecha-O,omitempty"`
	Destination string `csv:"SIGLADES,omitempty" json:"SIGLADES,omitempty" yaml:"SIGLADES,omitempty"`
	DayName     string `csv:"DIANOM,omitempty" json:"DIANOM,omitempty" yaml:"DIANOM,omitempty"`
}

// Descriptor identifies a flight for inference.
type Descriptor struct {
	Operator   string `json:"OPERA" yaml:"OPERA"`
	FlightType string `json:"TIPOVUELO" yaml:"TIPOVUELO"`
	Month      int    `json:"MES" yaml:"MES"`
}

// EncodingColumns are the source columns the feature encoder reads.
func EncodingColumns() []string {
	return []string{ColOperator, ColMonth, ColFlightType}
}

// LabelColumns are the source columns the delay label is derived from.
func LabelColumns() []string {
	return []string{ColScheduled, ColActual}
}

// TrainingColumns is the full schema required of a training dataset.
func TrainingColumns() []string {
	return []string{
		ColOperator, ColMonth, ColFlightType, ColDestination,
		ColDayName, ColActual, ColScheduled,
	}
}

// MinuteDiff returns minutes between the scheduled and actual departure.
func (r Record) MinuteDiff() (float64, error) {
	return MinuteDiff(r.Scheduled, r.Actual)
}

// DelayLabel returns 1 when the record departed more than threshold minutes
// late, else 0.
func (r Record) DelayLabel(threshold float64) (int, error) {
	diff, err := r.MinuteDiff()
	if err != nil {
		return 0, err
	}
	return Label(diff, threshold), nil
}

// Descriptor returns the identifying fields of r.
func (r Record) Descriptor() Descriptor {
	return Descriptor{
		Operator:   r.Operator,
		FlightType: r.FlightType,
		Month:      r.Month,
	}
}

// Record converts d to a record without timestamps.
func (d Descriptor) Record() Record {
	return Record{
		Operator:   d.Operator,
		FlightType: d.FlightType,
		Month:      d.Month,
	}
}

// String implements fmt.Stringer.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s/%s/%d", d.Operator, d.FlightType, d.Month)
}

// Validate checks that d is well formed. It does not check that the
// combination exists.
func (d Descriptor) Validate() error {
	var problems []string
	if strings.TrimSpace(d.Operator) == "" {
		problems = append(problems, "OPERA is required")
	}
	if !slices.Contains([]string{TypeInternational, TypeNational}, d.FlightType) {
		problems = append(problems, fmt.Sprintf("TIPOVUELO must be %s or %s", TypeInternational, TypeNational))
	}
	if d.Month < 1 || d.Month > 12 {
		problems = append(problems, "MES must be between 1 and 12")
	}
	if len(problems) > 0 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "invalid flight descriptor",
			map[string]any{
				"flight":   d.String(),
				"problems": problems,
			})
	}
	return nil
}
