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

// Package cli implements flightctl, the command-line interface for training,
// running and publishing the flight delay model.
//
// # Commands
//
// train - Train a model from historical flights:
//
//	flightctl train --data data/data.csv --model data/model.json [--output report.yaml]
//
// Labels every flight delayed when it departed more than the threshold past
// its schedule, fits the classifier on a seeded split and persists the model
// with a checksum sidecar. The classification report goes to stdout, a file,
// or a ConfigMap (cm://namespace/name).
//
// predict - Run a request file through the inference service:
//
//	flightctl predict --request flights.yaml
//
// push - Publish the model to an OCI registry:
//
//	flightctl push --model data/model.json --reference oci://ghcr.io/acme/flight-model:v1
//
// serve - Start the prediction API server:
//
//	flightctl serve --port 8080
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// File locations default to data/model.json and data/data.csv and can be
// set with FLIGHT_MODEL_PATH and FLIGHT_DATA_PATH.
package cli
