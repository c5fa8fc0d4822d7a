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

package flight

import (
	"fmt"
	"strings"
	"time"

	"github.com/mchmarny/flight-delay/pkg/defaults"
	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
)

// ParseTimestamp parses a YYYY-MM-DD HH:MM:SS timestamp.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(defaults.TimestampLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid timestamp %q", value), err,
			map[string]any{"layout": defaults.TimestampLayout})
	}
	return t, nil
}

// MinuteDiff returns (actual - scheduled) in minutes, fractional seconds
// included. Negative for early departures.
func MinuteDiff(scheduled, actual string) (float64, error) {
	s, err := ParseTimestamp(scheduled)
	if err != nil {
		return 0, err
	}
	a, err := ParseTimestamp(actual)
	if err != nil {
		return 0, err
	}
	return a.Sub(s).Minutes(), nil
}

// Label returns 1 iff diff is strictly greater than threshold.
func Label(diff, threshold float64) int {
	if diff > threshold {
		return 1
	}
	return 0
}
