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

// Package gbt implements a gradient boosted decision tree binary classifier
// with logistic loss.
//
// Trees are grown depth-first with second order (gradient and hessian)
// split gains, L2 leaf regularization (Lambda), a minimum split gain
// (Gamma) and a minimum child hessian (MinChildWeight). Candidate split
// points are the distinct feature values seen in training, reduced to at
// most MaxBins quantile cuts. ScalePosWeight multiplies the gradient and
// hessian of positive examples to counter class imbalance.
//
// Training is deterministic for a given Params.Seed. A fitted classifier
// serializes to JSON and decodes to an identical model:
//
//	c, err := gbt.New(gbt.DefaultParams())
//	if err := c.Fit(ctx, X, y); err != nil {
//	    return err
//	}
//	blob, _ := c.MarshalBinary()
//	restored, _ := gbt.Decode(blob)
package gbt
