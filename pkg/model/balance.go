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

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
)

// ScalePosWeight returns count(label 0) / count(label 1). Labels with no
// positives, including an empty slice, are degenerate.
func ScalePosWeight(labels []int) (float64, error) {
	var neg, pos int
	for _, l := range labels {
		switch l {
		case 0:
			neg++
		case 1:
			pos++
		default:
			return 0, apperrors.New(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("labels must be 0 or 1, got %d", l))
		}
	}
	if pos == 0 {
		return 0, apperrors.NewWithContext(apperrors.ErrCodeDegenerateData,
			"no positive labels, cannot compute class balance",
			map[string]any{"negatives": neg, "total": len(labels)})
	}
	return float64(neg) / float64(pos), nil
}
