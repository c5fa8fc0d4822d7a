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
	"fmt"

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
)

// MaxBins caps the number of candidate split points per feature.
const MaxBins = 256

// Params are the booster hyperparameters.
type Params struct {
	Estimators     int     `json:"n_estimators" yaml:"n_estimators"`
	MaxDepth       int     `json:"max_depth" yaml:"max_depth"`
	LearningRate   float64 `json:"learning_rate" yaml:"learning_rate"`
	Lambda         float64 `json:"reg_lambda" yaml:"reg_lambda"`
	Gamma          float64 `json:"gamma" yaml:"gamma"`
	MinChildWeight float64 `json:"min_child_weight" yaml:"min_child_weight"`
	Subsample      float64 `json:"subsample" yaml:"subsample"`
	ScalePosWeight float64 `json:"scale_pos_weight" yaml:"scale_pos_weight"`
	BaseScore      float64 `json:"base_score" yaml:"base_score"`
	Seed           int64   `json:"seed" yaml:"seed"`
}

// DefaultParams returns the conventional booster defaults.
func DefaultParams() Params {
	return Params{
		Estimators:     100,
		MaxDepth:       6,
		LearningRate:   0.3,
		Lambda:         1,
		Gamma:          0,
		MinChildWeight: 1,
		Subsample:      1,
		ScalePosWeight: 1,
		BaseScore:      0.5,
	}
}

// Validate checks parameter ranges.
func (p Params) Validate() error {
	var problems []string
	if p.Estimators < 1 {
		problems = append(problems, "n_estimators must be >= 1")
	}
	if p.MaxDepth < 1 {
		problems = append(problems, "max_depth must be >= 1")
	}
	if p.LearningRate <= 0 || p.LearningRate > 1 {
		problems = append(problems, "learning_rate must be in (0, 1]")
	}
	if p.Lambda < 0 {
		problems = append(problems, "reg_lambda must be >= 0")
	}
	if p.Gamma < 0 {
		problems = append(problems, "gamma must be >= 0")
	}
	if p.MinChildWeight < 0 {
		problems = append(problems, "min_child_weight must be >= 0")
	}
	if p.Subsample <= 0 || p.Subsample > 1 {
		problems = append(problems, "subsample must be in (0, 1]")
	}
	if p.ScalePosWeight <= 0 {
		problems = append(problems, "scale_pos_weight must be > 0")
	}
	if p.BaseScore <= 0 || p.BaseScore >= 1 {
		problems = append(problems, "base_score must be in (0, 1)")
	}
	if len(problems) > 0 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid booster parameters (%d problems)", len(problems)),
			map[string]any{"problems": problems})
	}
	return nil
}
