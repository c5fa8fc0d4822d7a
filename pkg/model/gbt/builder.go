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

// treeBuilder grows one regression tree on gradient statistics.
type treeBuilder struct {
	params Params
	binner *binner
	grad   []float64
	hess   []float64
	nodes  []Node
}

type split struct {
	feature int
	bin     int
	gain    float64
}

func (tb *treeBuilder) build(rows []int) Tree {
	tb.nodes = tb.nodes[:0]
	tb.grow(rows, 0)
	return Tree{Nodes: tb.nodes}
}

// grow appends the subtree for rows and returns its root index.
func (tb *treeBuilder) grow(rows []int, depth int) int {
	var g, h float64
	for _, i := range rows {
		g += tb.grad[i]
		h += tb.hess[i]
	}

	idx := len(tb.nodes)
	tb.nodes = append(tb.nodes, Node{Leaf: true, Value: tb.leafValue(g, h), Cover: h})

	if depth >= tb.params.MaxDepth || h < 2*tb.params.MinChildWeight {
		return idx
	}

	best, ok := tb.bestSplit(rows, g, h)
	if !ok {
		return idx
	}

	left, right := tb.partition(rows, best)
	threshold := tb.binner.cuts[best.feature][best.bin]

	l := tb.grow(left, depth+1)
	r := tb.grow(right, depth+1)

	tb.nodes[idx] = Node{
		Feature:   best.feature,
		Threshold: threshold,
		Left:      l,
		Right:     r,
		Gain:      best.gain,
		Cover:     h,
	}
	return idx
}

func (tb *treeBuilder) leafValue(g, h float64) float64 {
	return -g / (h + tb.params.Lambda) * tb.params.LearningRate
}

func (tb *treeBuilder) score(g, h float64) float64 {
	return g * g / (h + tb.params.Lambda)
}

// bestSplit scans every feature's bins for the highest gain split. Ties keep
// the lowest feature and bin.
func (tb *treeBuilder) bestSplit(rows []int, g, h float64) (split, bool) {
	parent := tb.score(g, h)
	best := split{gain: 0}
	found := false

	for f, cuts := range tb.binner.cuts {
		if len(cuts) < 2 {
			continue
		}
		gs := make([]float64, len(cuts))
		hs := make([]float64, len(cuts))
		bins := tb.binner.bins[f]
		for _, i := range rows {
			gs[bins[i]] += tb.grad[i]
			hs[bins[i]] += tb.hess[i]
		}

		var gl, hl float64
		for b := 0; b < len(cuts)-1; b++ {
			gl += gs[b]
			hl += hs[b]
			gr, hr := g-gl, h-hl
			if hl < tb.params.MinChildWeight || hr < tb.params.MinChildWeight {
				continue
			}
			gain := 0.5*(tb.score(gl, hl)+tb.score(gr, hr)-parent) - tb.params.Gamma
			if gain > best.gain {
				best = split{feature: f, bin: b, gain: gain}
				found = true
			}
		}
	}
	return best, found
}

func (tb *treeBuilder) partition(rows []int, s split) (left, right []int) {
	bins := tb.binner.bins[s.feature]
	for _, i := range rows {
		if int(bins[i]) <= s.bin {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}
