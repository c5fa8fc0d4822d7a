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
	"slices"
	"sort"
)

// binner maps raw feature values onto candidate split points.
type binner struct {
	// cuts[f] are ascending upper bounds; bin b holds values in
	// (cuts[f][b-1], cuts[f][b]].
	cuts [][]float64
	// bins[f][i] is the bin of row i on feature f.
	bins [][]uint16
}

func newBinner(X [][]float64, width int) *binner {
	b := &binner{
		cuts: make([][]float64, width),
		bins: make([][]uint16, width),
	}
	col := make([]float64, len(X))
	for f := 0; f < width; f++ {
		for i, row := range X {
			col[i] = row[f]
		}
		b.cuts[f] = cutPoints(col)

		bins := make([]uint16, len(X))
		for i, v := range col {
			bins[i] = uint16(sort.SearchFloat64s(b.cuts[f], v))
		}
		b.bins[f] = bins
	}
	return b
}

// cutPoints returns the distinct values of col, thinned to MaxBins evenly
// spaced quantiles. The largest value is always kept.
func cutPoints(col []float64) []float64 {
	sorted := slices.Clone(col)
	slices.Sort(sorted)
	distinct := slices.Compact(sorted)
	if len(distinct) <= MaxBins {
		return distinct
	}

	cuts := make([]float64, 0, MaxBins)
	for k := 1; k <= MaxBins; k++ {
		idx := k*len(distinct)/MaxBins - 1
		if len(cuts) == 0 || distinct[idx] != cuts[len(cuts)-1] {
			cuts = append(cuts, distinct[idx])
		}
	}
	return cuts
}
