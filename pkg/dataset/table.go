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

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/jszwec/csvutil"

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
	"github.com/mchmarny/flight-delay/pkg/flight"
)

// Table is a set of flight records and the columns they were read from.
type Table struct {
	Header  []string
	Records []flight.Record
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Missing returns the columns in cols that are not in the header, in order.
func (t *Table) Missing(cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if !slices.Contains(t.Header, c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Require returns a schema error listing any of cols absent from the header.
func (t *Table) Require(cols ...string) error {
	missing := t.Missing(cols...)
	if len(missing) == 0 {
		return nil
	}
	return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
		fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
		map[string]any{"missing": missing})
}

// FromDescriptors builds a table with the identifying columns only.
func FromDescriptors(flights []flight.Descriptor) *Table {
	records := make([]flight.Record, len(flights))
	for i, f := range flights {
		records[i] = f.Record()
	}
	return &Table{
		Header:  flight.EncodingColumns(),
		Records: records,
	}
}

// Read decodes a CSV stream with a header row.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(newBOMReader(r))
	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "CSV data is empty")
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to read CSV header", err)
	}

	t := &Table{Header: slices.Clone(dec.Header())}
	if err := dec.Decode(&t.Records); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to decode CSV records", err)
	}

	return t, nil
}

// Load reads the CSV file at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeNotFound, "failed to open dataset", err,
			map[string]any{"path": path})
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, err
	}

	slog.Debug("dataset loaded",
		"path", path,
		"records", t.Len(),
		"columns", len(t.Header))

	return t, nil
}
