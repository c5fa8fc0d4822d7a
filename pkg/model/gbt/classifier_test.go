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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
)

// andData returns rows where the label is x0 AND x1, with a noise column.
func andData(n int) ([][]float64, []int) {
	X := make([][]float64, 0, n)
	y := make([]int, 0, n)
	for i := 0; i < n; i++ {
		a, b := float64(i%2), float64((i/2)%2)
		X = append(X, []float64{a, b, float64(i % 7)})
		if a == 1 && b == 1 {
			y = append(y, 1)
		} else {
			y = append(y, 0)
		}
	}
	return X, y
}

func fastParams() Params {
	p := DefaultParams()
	p.Estimators = 20
	p.MaxDepth = 3
	p.MinChildWeight = 0.1
	return p
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"estimators", func(p *Params) { p.Estimators = 0 }},
		{"depth", func(p *Params) { p.MaxDepth = 0 }},
		{"learning rate zero", func(p *Params) { p.LearningRate = 0 }},
		{"learning rate above one", func(p *Params) { p.LearningRate = 1.5 }},
		{"lambda", func(p *Params) { p.Lambda = -1 }},
		{"gamma", func(p *Params) { p.Gamma = -1 }},
		{"subsample", func(p *Params) { p.Subsample = 0 }},
		{"scale pos weight", func(p *Params) { p.ScalePosWeight = 0 }},
		{"base score", func(p *Params) { p.BaseScore = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			_, err := New(p)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
		})
	}
}

func TestFit_LearnsConjunction(t *testing.T) {
	X, y := andData(200)
	c, err := New(fastParams())
	require.NoError(t, err)

	require.NoError(t, c.Fit(context.Background(), X, y))
	assert.True(t, c.Fitted())
	assert.Len(t, c.Trees, 20)
	assert.Equal(t, 3, c.NumFeatures)

	got, err := c.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, y, got)

	for _, tree := range c.Trees {
		assert.LessOrEqual(t, tree.Depth(), 3)
	}
}

func TestFit_Deterministic(t *testing.T) {
	X, y := andData(120)
	p := fastParams()
	p.Subsample = 0.7
	p.Seed = 1

	a, _ := New(p)
	b, _ := New(p)
	require.NoError(t, a.Fit(context.Background(), X, y))
	require.NoError(t, b.Fit(context.Background(), X, y))

	ab, err := a.MarshalBinary()
	require.NoError(t, err)
	bb, err := b.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, string(ab), string(bb))
}

func TestScalePosWeight_ShiftsPredictions(t *testing.T) {
	// 1 positive per 4 rows with identical features: the unweighted model
	// predicts 0, a weight of 3 balances the classes and tips it over.
	X := make([][]float64, 0, 400)
	y := make([]int, 0, 400)
	for i := 0; i < 400; i++ {
		X = append(X, []float64{1})
		if i%4 == 0 {
			y = append(y, 1)
		} else {
			y = append(y, 0)
		}
	}

	p := fastParams()
	plain, _ := New(p)
	require.NoError(t, plain.Fit(context.Background(), X, y))
	pp, _ := plain.PredictProba(X[:1])

	p.ScalePosWeight = 3.5
	weighted, _ := New(p)
	require.NoError(t, weighted.Fit(context.Background(), X, y))
	wp, _ := weighted.PredictProba(X[:1])

	assert.Less(t, pp[0], 0.5)
	assert.Greater(t, wp[0], pp[0])
}

func TestMarshalDecode_RoundTrip(t *testing.T) {
	X, y := andData(100)
	c, _ := New(fastParams())
	require.NoError(t, c.Fit(context.Background(), X, y))

	blob, err := c.MarshalBinary()
	require.NoError(t, err)

	restored, err := Decode(blob)
	require.NoError(t, err)

	want, _ := c.PredictProba(X)
	got, err := restored.PredictProba(X)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, Kind, restored.Kind())
}

func TestDecode_Corrupt(t *testing.T) {
	_, err := Decode([]byte("{"))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))

	bad := `{"params":{"n_estimators":1,"max_depth":1,"learning_rate":0.1,"reg_lambda":1,"subsample":1,"scale_pos_weight":1,"base_score":0.5},` +
		`"num_features":1,"trees":[{"nodes":[{"feature":0,"threshold":0,"left":0,"right":0}]}]}`
	_, err = Decode([]byte(bad))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
}

func TestPredict_Errors(t *testing.T) {
	c, _ := New(fastParams())
	_, err := c.Predict([][]float64{{1, 2, 3}})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeFailedPrecondition))

	X, y := andData(40)
	require.NoError(t, c.Fit(context.Background(), X, y))
	_, err = c.Predict([][]float64{{1}})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
}

func TestFit_InvalidData(t *testing.T) {
	c, _ := New(fastParams())
	ctx := context.Background()

	assert.True(t, apperrors.IsCode(c.Fit(ctx, nil, nil), apperrors.ErrCodeDegenerateData))
	assert.True(t, apperrors.IsCode(c.Fit(ctx, [][]float64{{1}}, []int{1, 0}), apperrors.ErrCodeInvalidRequest))
	assert.True(t, apperrors.IsCode(c.Fit(ctx, [][]float64{{1}, {1, 2}}, []int{1, 0}), apperrors.ErrCodeInvalidRequest))
	assert.True(t, apperrors.IsCode(c.Fit(ctx, [][]float64{{1}}, []int{2}), apperrors.ErrCodeInvalidRequest))
	assert.True(t, apperrors.IsCode(c.Fit(ctx, [][]float64{{}}, []int{1}), apperrors.ErrCodeInvalidRequest))
}

func TestFit_Cancelled(t *testing.T) {
	X, y := andData(40)
	c, _ := New(fastParams())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Fit(ctx, X, y)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeTimeout))
	assert.False(t, c.Fitted())
}

func TestCutPoints(t *testing.T) {
	assert.Equal(t, []float64{0, 1}, cutPoints([]float64{1, 0, 1, 0}))

	many := make([]float64, 1000)
	for i := range many {
		many[i] = float64(i)
	}
	cuts := cutPoints(many)
	assert.LessOrEqual(t, len(cuts), MaxBins)
	assert.Equal(t, 999.0, cuts[len(cuts)-1])
}
