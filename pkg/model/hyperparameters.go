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
	"fmt"

	"github.com/mchmarny/flight-delay/pkg/defaults"
	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
)

// Hyperparameters configure training.
type Hyperparameters struct {
	TestSize          float64 `json:"test_size" yaml:"test_size"`
	SplitSeed         int64   `json:"split_seed" yaml:"split_seed"`
	Seed              int64   `json:"seed" yaml:"seed"`
	LearningRate      float64 `json:"learning_rate" yaml:"learning_rate"`
	UseScalePosWeight bool    `json:"use_scale_pos_weight" yaml:"use_scale_pos_weight"`
	Estimators        int     `json:"n_estimators" yaml:"n_estimators"`
	MaxDepth          int     `json:"max_depth" yaml:"max_depth"`
	DelayThreshold    float64 `json:"delay_threshold" yaml:"delay_threshold"`
}

// DefaultHyperparameters returns the compiled-in training configuration.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		TestSize:          defaults.TestSize,
		SplitSeed:         defaults.SplitSeed,
		Seed:              defaults.ModelSeed,
		LearningRate:      defaults.LearningRate,
		UseScalePosWeight: defaults.UseScalePosWeight,
		Estimators:        defaults.Estimators,
		MaxDepth:          defaults.MaxDepth,
		DelayThreshold:    defaults.DelayThreshold,
	}
}

// Validate checks value ranges.
func (hp Hyperparameters) Validate() error {
	if hp.TestSize <= 0 || hp.TestSize >= 1 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("test size must be in (0, 1), got %v", hp.TestSize))
	}
	if hp.LearningRate <= 0 || hp.LearningRate > 1 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("learning rate must be in (0, 1], got %v", hp.LearningRate))
	}
	if hp.Estimators < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "estimators must be >= 1")
	}
	if hp.MaxDepth < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "max depth must be >= 1")
	}
	return nil
}
