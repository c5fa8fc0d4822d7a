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

// Package inference serves delay predictions for batches of flights.
//
// A batch is validated as a whole before any prediction runs: every flight
// must be well formed and its operator, flight type and month combination
// must exist in the reference data. If any flight fails, the whole batch is
// rejected with a single "Invalid flight" error and the per-flight reasons
// are logged. Valid batches are encoded once and predicted once, and the
// predictions are returned in input order.
//
// The HTTP handler is registered by the api package:
//
//	svc, err := inference.New(ref, features.NewDefaultEncoder(), predictor)
//	handlers := map[string]http.HandlerFunc{"/predict": svc.HandlePredict}
package inference
