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
	"io"
	"text/tabwriter"

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
)

// ClassMetrics are the per-class scores of a classification report.
type ClassMetrics struct {
	Label     string  `json:"label" yaml:"label"`
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1" yaml:"f1"`
	Support   int     `json:"support" yaml:"support"`
}

// Report is a binary classification report.
type Report struct {
	Classes     []ClassMetrics `json:"classes" yaml:"classes"`
	Accuracy    float64        `json:"accuracy" yaml:"accuracy"`
	MacroAvg    ClassMetrics   `json:"macro_avg" yaml:"macro_avg"`
	WeightedAvg ClassMetrics   `json:"weighted_avg" yaml:"weighted_avg"`
	Support     int            `json:"support" yaml:"support"`
}

// Classification scores predictions against truth for classes 0 and 1.
// Undefined ratios (zero denominators) are reported as 0.
func Classification(yTrue, yPred []int) (*Report, error) {
	if len(yTrue) != len(yPred) {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"truth and prediction lengths differ",
			map[string]any{"truth": len(yTrue), "predicted": len(yPred)})
	}
	if len(yTrue) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeDegenerateData, "no rows to evaluate")
	}

	// confusion[t][p]
	var confusion [2][2]int
	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		if t < 0 || t > 1 || p < 0 || p > 1 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("row %d: labels must be 0 or 1", i))
		}
		confusion[t][p]++
	}

	r := &Report{Support: len(yTrue)}
	correct := 0
	for c := 0; c < 2; c++ {
		tp := confusion[c][c]
		predicted := confusion[0][c] + confusion[1][c]
		actual := confusion[c][0] + confusion[c][1]
		correct += tp

		m := ClassMetrics{
			Label:     fmt.Sprintf("%d", c),
			Precision: ratio(tp, predicted),
			Recall:    ratio(tp, actual),
			Support:   actual,
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		r.Classes = append(r.Classes, m)
	}
	r.Accuracy = ratio(correct, len(yTrue))

	r.MacroAvg = ClassMetrics{Label: "macro avg", Support: r.Support}
	r.WeightedAvg = ClassMetrics{Label: "weighted avg", Support: r.Support}
	for _, m := range r.Classes {
		r.MacroAvg.Precision += m.Precision / 2
		r.MacroAvg.Recall += m.Recall / 2
		r.MacroAvg.F1 += m.F1 / 2

		w := float64(m.Support) / float64(r.Support)
		r.WeightedAvg.Precision += m.Precision * w
		r.WeightedAvg.Recall += m.Recall * w
		r.WeightedAvg.F1 += m.F1 * w
	}

	return r, nil
}

// Class returns the metrics of class label c (0 or 1).
func (r *Report) Class(c int) ClassMetrics {
	if c < 0 || c >= len(r.Classes) {
		return ClassMetrics{}
	}
	return r.Classes[c]
}

// RenderTable writes the report in the conventional precision/recall layout.
func (r *Report) RenderTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tprecision\trecall\tf1-score\tsupport\t")
	fmt.Fprintln(tw, "\t\t\t\t\t")
	for _, m := range r.Classes {
		writeRow(tw, m)
	}
	fmt.Fprintln(tw, "\t\t\t\t\t")
	fmt.Fprintf(tw, "accuracy\t\t\t%.2f\t%d\t\n", r.Accuracy, r.Support)
	writeRow(tw, r.MacroAvg)
	writeRow(tw, r.WeightedAvg)
	return tw.Flush()
}

func writeRow(w io.Writer, m ClassMetrics) {
	fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%d\t\n", m.Label, m.Precision, m.Recall, m.F1, m.Support)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
