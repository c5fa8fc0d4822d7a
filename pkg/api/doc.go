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

// Package api wires the flight delay prediction service onto pkg/server.
//
// Serve reads its file locations from the environment, optionally seeded by a
// .env file in the working directory:
//   - FLIGHT_MODEL_PATH: trained model (default: data/model.json)
//   - FLIGHT_DATA_PATH: reference flight data CSV (default: data/data.csv)
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: logging level (debug, info, warn, error)
//
// The reference data is required at startup. The model is loaded at startup
// when present and otherwise on the first /predict request; until it loads,
// /predict answers 503 while /health keeps answering 200.
//
// # Endpoints
//
//   - POST /predict - delay prediction for a batch of flights
//   - GET /health   - liveness
//   - GET /ready    - readiness
//   - GET /metrics  - Prometheus metrics
//
// Example:
//
//	curl -X POST http://localhost:8080/predict \
//	  -d '{"flights":[{"OPERA":"Grupo LATAM","TIPOVUELO":"I","MES":7}]}'
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/mchmarny/flight-delay/pkg/api.version=1.0.0'"
package api
