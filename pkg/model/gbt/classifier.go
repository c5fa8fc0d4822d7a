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

package gbt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
)

// Kind names this classifier in persisted artifacts.
const Kind = "gbt"

// Classifier is a gradient boosted tree binary classifier.
type Classifier struct {
	Params      Params `json:"params"`
	NumFeatures int    `json:"num_features"`
	Trees       []Tree `json:"trees"`
}

// New creates an unfitted classifier.
func New(p Params) (*Classifier, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{Params: p}, nil
}

// Kind implements the model classifier contract.
func (c *Classifier) Kind() string {
	return Kind
}

// Fitted reports whether the classifier has trees.
func (c *Classifier) Fitted() bool {
	return len(c.Trees) > 0
}

// Fit trains the ensemble on X and binary labels y, replacing any previous
// trees.
func (c *Classifier) Fit(ctx context.Context, X [][]float64, y []int) error {
	width, err := checkTrainingData(X, y)
	if err != nil {
		return err
	}

	p := c.Params
	if err := p.Validate(); err != nil {
		return err
	}

	b := newBinner(X, width)
	n := len(X)
	margin := make([]float64, n)
	base := logit(p.BaseScore)
	for i := range margin {
		margin[i] = base
	}

	grad := make([]float64, n)
	hess := make([]float64, n)
	rng := rand.New(rand.NewPCG(uint64(p.Seed), uint64(p.Seed)^0x9e3779b97f4a7c15)) //nolint:gosec // reproducible sampling, not security

	trees := make([]Tree, 0, p.Estimators)
	for round := 0; round < p.Estimators; round++ {
		if err := ctx.Err(); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeTimeout, "training cancelled", err)
		}

		for i := 0; i < n; i++ {
			prob := sigmoid(margin[i])
			w := 1.0
			if y[i] == 1 {
				w = p.ScalePosWeight
			}
			grad[i] = (prob - float64(y[i])) * w
			hess[i] = math.Max(prob*(1-prob), 1e-16) * w
		}

		rows := sampleRows(rng, n, p.Subsample)
		tb := &treeBuilder{params: p, binner: b, grad: grad, hess: hess}
		tree := tb.build(rows)

		for i := 0; i < n; i++ {
			margin[i] += tree.Eval(X[i])
		}
		trees = append(trees, tree)
	}

	c.NumFeatures = width
	c.Trees = trees

	slog.Debug("booster fitted",
		"rows", n,
		"features", width,
		"trees", len(trees))

	return nil
}

// PredictProba returns the positive class probability for each row of X.
func (c *Classifier) PredictProba(X [][]float64) ([]float64, error) {
	if !c.Fitted() {
		return nil, apperrors.New(apperrors.ErrCodeFailedPrecondition, "classifier is not fitted")
	}

	base := logit(c.Params.BaseScore)
	out := make([]float64, len(X))
	for i, x := range X {
		if len(x) != c.NumFeatures {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
				"feature width mismatch",
				map[string]any{"row": i, "got": len(x), "want": c.NumFeatures})
		}
		m := base
		for t := range c.Trees {
			m += c.Trees[t].Eval(x)
		}
		out[i] = sigmoid(m)
	}
	return out, nil
}

// Predict returns 1 for rows whose positive probability exceeds 0.5.
func (c *Classifier) Predict(X [][]float64) ([]int, error) {
	probs, err := c.PredictProba(X)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(probs))
	for i, prob := range probs {
		if prob > 0.5 {
			out[i] = 1
		}
	}
	return out, nil
}

// MarshalBinary encodes the classifier as JSON.
func (c *Classifier) MarshalBinary() ([]byte, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode classifier: %w", err)
	}
	return b, nil
}

// Decode restores a classifier encoded by MarshalBinary.
func Decode(data []byte) (*Classifier, error) {
	var c Classifier
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to decode classifier", err)
	}
	if err := c.Params.Validate(); err != nil {
		return nil, err
	}
	for ti, t := range c.Trees {
		if err := validateTree(t, c.NumFeatures); err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
				"corrupt classifier tree", err, map[string]any{"tree": ti})
		}
	}
	return &c, nil
}

func validateTree(t Tree, width int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, n := range t.Nodes {
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= width {
			return fmt.Errorf("node %d: feature %d out of range", i, n.Feature)
		}
		// children are appended after their parent, which also rules out cycles
		if n.Left <= i || n.Right <= i || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

func checkTrainingData(X [][]float64, y []int) (int, error) {
	if len(X) == 0 {
		return 0, apperrors.New(apperrors.ErrCodeDegenerateData, "no training rows")
	}
	if len(X) != len(y) {
		return 0, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "feature and label counts differ",
			map[string]any{"rows": len(X), "labels": len(y)})
	}
	width := len(X[0])
	if width == 0 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidRequest, "training rows have no features")
	}
	for i, row := range X {
		if len(row) != width {
			return 0, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "ragged feature matrix",
				map[string]any{"row": i, "got": len(row), "want": width})
		}
		if y[i] != 0 && y[i] != 1 {
			return 0, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "labels must be 0 or 1",
				map[string]any{"row": i, "label": y[i]})
		}
	}
	return width, nil
}

func sampleRows(rng *rand.Rand, n int, fraction float64) []int {
	rows := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if fraction >= 1 || rng.Float64() < fraction {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		rows = append(rows, rng.IntN(n))
	}
	return rows
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}
