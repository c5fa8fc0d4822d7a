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

// Package header provides the common document header of flightctl outputs.
//
// Training, prediction and push results carry a kind, an API version and
// free-form metadata so that files and ConfigMaps holding them are
// self-describing:
//
//	kind: TrainingResult
//	apiVersion: flight-delay.dev/v1alpha1
//	metadata:
//	  timestamp: "2026-01-02T03:04:05Z"
//	  version: v1.2.0
package header
