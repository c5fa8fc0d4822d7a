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

package defaults

const (
	// DelayThreshold is the number of minutes past the scheduled departure
	// after which a flight counts as delayed.
	DelayThreshold = 15.0

	// TimestampLayout is the layout of scheduled and actual departure times.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Training hyperparameters.
const (
	// TestSize is the fraction of rows held out for validation.
	TestSize = 0.33

	// SplitSeed seeds the train/validation shuffle.
	SplitSeed int64 = 42

	// ModelSeed seeds the classifier.
	ModelSeed int64 = 1

	// LearningRate is the boosting shrinkage.
	LearningRate = 0.01

	// UseScalePosWeight enables up-weighting of the delayed class by the
	// negative/positive ratio of the training labels.
	UseScalePosWeight = true

	// Estimators is the number of boosting rounds.
	Estimators = 100

	// MaxDepth is the maximum depth of each tree.
	MaxDepth = 6
)

// File locations, relative to the working directory unless overridden.
const (
	ModelFileName = "model.json"
	ModelPath     = "data/" + ModelFileName
	DataPath      = "data/data.csv"
)

// Environment variables that override file locations.
const (
	EnvModelPath = "FLIGHT_MODEL_PATH"
	EnvDataPath  = "FLIGHT_DATA_PATH"
)

// topFeatures is the curated one-hot column set, in model input order.
var topFeatures = []string{
	"OPERA_Latin American Wings",
	"MES_7",
	"MES_10",
	"OPERA_Grupo LATAM",
	"MES_12",
	"TIPOVUELO_I",
	"MES_4",
	"MES_11",
	"OPERA_Sky Airline",
	"OPERA_Copa Air",
}

// TopFeatures returns a copy of the curated feature columns in model input order.
func TopFeatures() []string {
	out := make([]string, len(topFeatures))
	copy(out, topFeatures)
	return out
}
