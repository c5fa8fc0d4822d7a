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
)

// Matrix is a dense row-major feature matrix with named columns.
type Matrix struct {
	Columns []string    `json:"columns" yaml:"columns"`
	Rows    [][]float64 `json:"rows" yaml:"rows"`
}

// Len returns the number of rows.
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Rows)
}

// Width returns the number of columns.
func (m *Matrix) Width() int {
	if m == nil {
		return 0
	}
	return len(m.Columns)
}

// Column returns the values of the named column, or false when absent.
func (m *Matrix) Column(name string) ([]float64, bool) {
	idx := slices.Index(m.Columns, name)
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(m.Rows))
	for i, row := range m.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// Select projects m onto columns in the given order. Columns m does not have
// are filled with zeros.
func (m *Matrix) Select(columns []string) *Matrix {
	index := make(map[string]int, len(m.Columns))
	for i, c := range m.Columns {
		index[c] = i
	}

	out := &Matrix{
		Columns: slices.Clone(columns),
		Rows:    make([][]float64, len(m.Rows)),
	}
	for r, src := range m.Rows {
		row := make([]float64, len(columns))
		for c, name := range columns {
			if idx, ok := index[name]; ok {
				row[c] = src[idx]
			}
		}
		out.Rows[r] = row
	}
	return out
}

// Validate checks that every row has one value per column.
func (m *Matrix) Validate() error {
	for i, row := range m.Rows {
		if len(row) != len(m.Columns) {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), len(m.Columns))
		}
	}
	return nil
}
