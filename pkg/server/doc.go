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

// Package server provides the HTTP server used by the flight delay
// prediction service.
//
// The server hosts caller-supplied API handlers behind a common middleware
// chain and adds the system endpoints every deployment needs:
//
//   - GET /health  liveness, always {"status":"OK"}
//   - GET /ready   readiness, 503 until the listener is up
//   - GET /metrics Prometheus metrics
//   - GET /        route index (unless the caller supplies "/")
//
// # Middleware
//
// API handlers are wrapped, outermost first, with Prometheus RED metrics,
// API version negotiation, request ID propagation (X-Request-Id, UUID),
// panic recovery, token bucket rate limiting (golang.org/x/time/rate), and
// debug request logging.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("flightd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/predict": svc.HandlePredict,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until SIGINT/SIGTERM or ctx cancellation and then shuts the
// listener down within the configured ShutdownTimeout.
//
// # Configuration
//
// NewConfig returns defaults overridable by environment:
//
//   - PORT: listen port (default 8080)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown window (default 30)
//
// # Errors
//
// Handlers report failures with WriteError or WriteErrorSummary, which map
// pkg/errors codes onto HTTP status codes and a uniform ErrorResponse body.
// WriteErrorSummary drops error context and causes; handlers log those.
package server
