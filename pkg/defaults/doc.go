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

// Package defaults provides centralized configuration constants for the
// flight-delay service.
//
// This package defines the compiled-in model contract (delay threshold,
// curated feature columns, training hyperparameters), file locations, and
// timeout values used across the codebase. Centralizing these values ensures
// consistency between the training run that produced a model and the server
// that loads it.
//
// # Categories
//
//   - Model constants: delay threshold, curated features, split and seeds
//   - File locations: model blob and reference dataset paths
//   - Server timeouts: For HTTP server configuration
//   - HTTP client timeouts: For outbound HTTP requests
//   - Kubernetes timeouts: For K8s API operations
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/mchmarny/flight-delay/pkg/defaults"
//
//	label := flight.Label(diff, defaults.DelayThreshold)
//
// The curated feature list is returned as a copy so callers cannot mutate
// the contract shared by training and serving:
//
//	cols := defaults.TopFeatures()
package defaults
