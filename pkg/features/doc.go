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

// Package features turns flight tables into the fixed one-hot feature
// matrix the model is trained on and queried with.
//
// Encoding happens in two steps. Dummies one-hot encodes operator, flight
// type and month independently into a wide matrix with one column per
// observed category ("OPERA_<value>", "TIPOVUELO_<value>", "MES_<value>").
// Select then projects the wide matrix onto the curated column list. The
// result always has exactly the curated columns in curated order; a column
// whose category never occurs in the batch is zero-filled, so a batch of one
// flight encodes to the same width as the full training set.
package features
