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
	"sort"

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
	"github.com/mchmarny/flight-delay/pkg/model/gbt"
)

// Classifier is a trainable binary classifier.
type Classifier interface {
	// Kind names the implementation in persisted artifacts.
	Kind() string
	// Fit trains on rows X with 0/1 labels y.
	Fit(ctx context.Context, X [][]float64, y []int) error
	// Predict returns one class per row of X, in order.
	Predict(X [][]float64) ([]int, error)
	// MarshalBinary encodes the fitted model as JSON.
	MarshalBinary() ([]byte, error)
}

// Factory creates an unfitted classifier for the given hyperparameters and
// positive class weight.
type Factory func(hp Hyperparameters, scalePosWeight float64) (Classifier, error)

// Decoder restores a classifier from its MarshalBinary output.
type Decoder func(data []byte) (Classifier, error)

var decoders = map[string]Decoder{
	gbt.Kind: func(data []byte) (Classifier, error) {
		c, err := gbt.Decode(data)
		if err != nil {
			return nil, err
		}
		return c, nil
	},
}

// RegisterDecoder makes a classifier kind loadable. It is not safe to call
// concurrently with LoadArtifact.
func RegisterDecoder(kind string, d Decoder) {
	decoders[kind] = d
}

// DecoderKinds returns the registered classifier kinds.
func DecoderKinds() []string {
	kinds := make([]string, 0, len(decoders))
	for k := range decoders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func decodeClassifier(kind string, data []byte) (Classifier, error) {
	d, ok := decoders[kind]
	if !ok {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported classifier kind %q", kind),
			map[string]any{"supported": DecoderKinds()})
	}
	return d(data)
}

// NewBooster is the default Factory: a gradient boosted tree classifier.
func NewBooster(hp Hyperparameters, scalePosWeight float64) (Classifier, error) {
	p := gbt.DefaultParams()
	p.Estimators = hp.Estimators
	p.MaxDepth = hp.MaxDepth
	p.LearningRate = hp.LearningRate
	p.Seed = hp.Seed
	p.ScalePosWeight = scalePosWeight

	c, err := gbt.New(p)
	if err != nil {
		return nil, err
	}
	return c, nil
}
