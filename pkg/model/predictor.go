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

package model

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
	"github.com/mchmarny/flight-delay/pkg/features"
)

// ErrModelNotAvailable is the message of predictions made before a load.
const ErrModelNotAvailable = "model not available"

// LoadFunc reads an artifact from a path.
type LoadFunc func(path string) (*Artifact, error)

// Predictor serves predictions from a persisted artifact. It moves from
// unloaded to loaded once and is safe for concurrent use.
type Predictor struct {
	path string
	load LoadFunc

	mu         sync.RWMutex
	artifact   *Artifact
	classifier Classifier
}

// PredictorOption configures a Predictor.
type PredictorOption func(*Predictor)

// WithLoadFunc replaces the artifact reader.
func WithLoadFunc(fn LoadFunc) PredictorOption {
	return func(p *Predictor) {
		p.load = fn
	}
}

// NewPredictor creates an unloaded predictor for the artifact at path.
func NewPredictor(path string, opts ...PredictorOption) *Predictor {
	p := &Predictor{
		path: path,
		load: LoadArtifact,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Path returns the artifact location.
func (p *Predictor) Path() string {
	return p.path
}

// Load reads the artifact on first call. Later calls return immediately
// without I/O. A failed load leaves the predictor unloaded.
func (p *Predictor) Load(ctx context.Context) error {
	if p.Loaded() {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.classifier != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeTimeout, "model load cancelled", err)
	}

	a, err := p.load(p.path)
	if err != nil {
		modelLoads.WithLabelValues("error").Inc()
		return err
	}
	c, err := a.Classifier()
	if err != nil {
		modelLoads.WithLabelValues("error").Inc()
		return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest, "failed to decode model", err,
			map[string]any{"path": p.path})
	}

	p.artifact = a
	p.classifier = c
	modelLoaded.Set(1)
	modelLoads.WithLabelValues("ok").Inc()

	slog.Info("model loaded",
		"path", p.path,
		"kind", a.Kind,
		"features", len(a.Features),
		"created_at", a.CreatedAt)

	return nil
}

// Loaded reports whether a model is loaded.
func (p *Predictor) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.classifier != nil
}

// Artifact returns the loaded artifact, or nil.
func (p *Predictor) Artifact() *Artifact {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.artifact
}

// Predict returns one class per row of m, in row order. The matrix columns
// must equal the artifact's feature list.
func (p *Predictor) Predict(m *features.Matrix) ([]int, error) {
	p.mu.RLock()
	a, c := p.artifact, p.classifier
	p.mu.RUnlock()

	if c == nil {
		return nil, apperrors.New(apperrors.ErrCodeFailedPrecondition, ErrModelNotAvailable)
	}
	if m.Width() != len(a.Features) {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "feature width mismatch",
			map[string]any{"got": m.Width(), "want": len(a.Features)})
	}
	if !slices.Equal(m.Columns, a.Features) {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "feature columns do not match model",
			map[string]any{"got": m.Columns, "want": a.Features})
	}
	if m.Len() == 0 {
		return []int{}, nil
	}

	out, err := c.Predict(m.Rows)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}
	for _, class := range out {
		predictionsTotal.WithLabelValues(strconv.Itoa(class)).Inc()
	}
	return out, nil
}
