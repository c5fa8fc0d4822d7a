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

// Package flight defines flight records and derives the delay label used
// as ground truth for training.
//
// A flight is delayed when its actual departure (Fecha-O) is strictly more
// than the threshold number of minutes after its scheduled departure
// (Fecha-I). A difference equal to the threshold is on time.
//
//	diff, err := flight.MinuteDiff("2017-01-01 23:30:00", "2017-01-01 23:50:00")
//	// diff == 20
//	label := flight.Label(diff, defaults.DelayThreshold)
//	// label == 1
package flight
