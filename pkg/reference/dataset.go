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

package reference

import (
	"fmt"
	"log/slog"

	"github.com/mchmarny/flight-delay/pkg/dataset"
	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
	"github.com/mchmarny/flight-delay/pkg/flight"
)

// Key is one known operator, flight type and month combination.
type Key struct {
	Operator   string
	FlightType string
	Month      int
}

// KeyOf returns the lookup key of d.
func KeyOf(d flight.Descriptor) Key {
	return Key(d)
}

// Dataset is a read-only membership index. It is safe for concurrent use
// once built.
type Dataset struct {
	keys      map[Key]struct{}
	operators map[string]struct{}
	rows      int
}

// New indexes the records of t.
func New(t *dataset.Table) (*Dataset, error) {
	if err := t.Require(flight.EncodingColumns()...); err != nil {
		return nil, err
	}

	d := &Dataset{
		keys:      make(map[Key]struct{}),
		operators: make(map[string]struct{}),
		rows:      t.Len(),
	}
	for _, r := range t.Records {
		d.keys[KeyOf(r.Descriptor())] = struct{}{}
		d.operators[r.Operator] = struct{}{}
	}
	return d, nil
}

// Load reads and indexes the CSV file at path.
func Load(path string) (*Dataset, error) {
	t, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	d, err := New(t)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest, "invalid reference data", err,
			map[string]any{"path": path})
	}

	slog.Info("reference data loaded",
		"path", path,
		"rows", d.rows,
		"combinations", d.Len(),
		"operators", len(d.operators))

	return d, nil
}

// Len returns the number of distinct combinations.
func (d *Dataset) Len() int {
	return len(d.keys)
}

// Rows returns the number of records the index was built from.
func (d *Dataset) Rows() int {
	return d.rows
}

// Contains reports whether f's combination was observed.
func (d *Dataset) Contains(f flight.Descriptor) bool {
	_, ok := d.keys[KeyOf(f)]
	return ok
}

// Lookup returns a NOT_FOUND error when f's combination was never observed.
func (d *Dataset) Lookup(f flight.Descriptor) error {
	if d.Contains(f) {
		return nil
	}
	ctx := map[string]any{"flight": f.String()}
	if _, ok := d.operators[f.Operator]; !ok {
		ctx["reason"] = "unknown operator"
	}
	return apperrors.NewWithContext(apperrors.ErrCodeNotFound,
		fmt.Sprintf("flight %s not in reference data", f), ctx)
}
