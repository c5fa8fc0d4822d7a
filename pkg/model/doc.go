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

// Package model trains, persists, and serves the flight delay classifier.
//
// # Training
//
// Trainer takes a flight table through the full pipeline: it derives delay
// labels, encodes the curated features, computes the positive class weight
// (ScalePosWeight), makes a seeded train/validation split, fits the
// classifier on the training partition, scores the validation partition
// into a classification Report, and packages everything as an Artifact.
//
//	res, err := model.NewTrainer().TrainAndSave(ctx, table, "data/model.json")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Report.Accuracy)
//
// # Persistence
//
// SaveArtifact writes the artifact as JSON with write-then-rename semantics.
// The artifact carries a SHA256 digest of its model payload, so one rename
// replaces model and digest together; LoadArtifact rejects a payload that
// does not match. A sha256sum sidecar is written next to it for tooling.
//
// # Serving
//
// Predictor loads an artifact once and answers predictions for feature
// matrices whose columns match the artifact's feature list. Predicting
// before Load returns a FAILED_PRECONDITION error.
package model
