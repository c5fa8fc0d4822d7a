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
	"math"
	"math/rand/v2"

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
)

// TrainTestSplit shuffles row indices 0..n-1 with seed and holds out
// ceil(testSize*n) of them for validation. The same n, testSize and seed
// always produce the same partition.
func TrainTestSplit(n int, testSize float64, seed int64) (train, test []int, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("test size must be in (0, 1), got %v", testSize))
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTest < 1 || nTrain < 1 {
		return nil, nil, apperrors.NewWithContext(apperrors.ErrCodeDegenerateData,
			"not enough rows to split",
			map[string]any{"rows": n, "test_size": testSize})
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed))) //nolint:gosec // reproducible split, not security
	perm := rng.Perm(n)

	return perm[nTest:], perm[:nTest], nil
}

func selectRows(X [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = X[j]
	}
	return out
}

func selectLabels(y []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}
