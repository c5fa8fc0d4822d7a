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

package inference

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mchmarny/flight-delay/pkg/defaults"
	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
	"github.com/mchmarny/flight-delay/pkg/serializer"
	"github.com/mchmarny/flight-delay/pkg/server"
)

// HandlePredict serves POST /predict.
func (s *Service) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.PredictHandlerTimeout)
	defer cancel()

	var req Request
	if err := serializer.DecodeJSONBody(r, &req, defaults.MaxRequestBodyBytes); err != nil {
		slog.Warn("invalid predict request body", "error", err)
		predictRequests.WithLabelValues("invalid").Inc()
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			ErrInvalidFlight, false, nil)
		return
	}

	pred, err := s.Predict(ctx, req.Flights)
	if err != nil {
		if IsInvalidFlight(err) {
			predictRequests.WithLabelValues("invalid").Inc()
			server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
				ErrInvalidFlight, false, nil)
			return
		}
		slog.Error("prediction failed",
			"requestId", server.RequestID(r.Context()),
			"error", err)
		predictRequests.WithLabelValues("error").Inc()
		server.WriteErrorSummary(w, r, err, "Prediction failed")
		return
	}

	predictRequests.WithLabelValues("ok").Inc()
	serializer.RespondJSON(w, http.StatusOK, Response{Predict: pred})
}

// IsInvalidFlight reports whether err is a rejected batch.
func IsInvalidFlight(err error) bool {
	var se *apperrors.StructuredError
	return errors.As(err, &se) &&
		se.Code == apperrors.ErrCodeInvalidRequest &&
		se.Message == ErrInvalidFlight
}
