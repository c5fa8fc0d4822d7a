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

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code apperrors.ErrorCode
		want int
	}{
		{"invalid request", apperrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{"unauthorized", apperrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{"not found", apperrors.ErrCodeNotFound, http.StatusNotFound},
		{"method not allowed", apperrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{"degenerate data", apperrors.ErrCodeDegenerateData, http.StatusUnprocessableEntity},
		{"rate limit", apperrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{"unavailable", apperrors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"failed precondition", apperrors.ErrCodeFailedPrecondition, http.StatusServiceUnavailable},
		{"timeout", apperrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{"internal", apperrors.ErrCodeInternal, http.StatusInternalServerError},
		{"unknown defaults to internal", apperrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromCode(tt.code); got != tt.want {
				t.Fatalf("HTTPStatusFromCode(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestRetryableFromCode(t *testing.T) {
	tests := []struct {
		code apperrors.ErrorCode
		want bool
	}{
		{apperrors.ErrCodeInvalidRequest, false},
		{apperrors.ErrCodeNotFound, false},
		{apperrors.ErrCodeDegenerateData, false},
		{apperrors.ErrCodeTimeout, true},
		{apperrors.ErrCodeUnavailable, true},
		{apperrors.ErrCodeFailedPrecondition, true},
		{apperrors.ErrCodeRateLimitExceeded, true},
		{apperrors.ErrCodeInternal, true},
		{apperrors.ErrorCode("SOMETHING_ELSE"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := retryableFromCode(tt.code); got != tt.want {
				t.Fatalf("retryableFromCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestWriteError_WritesErrorResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest, "Invalid flight", false, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Code != string(apperrors.ErrCodeInvalidRequest) {
		t.Fatalf("expected code %q, got %q", apperrors.ErrCodeInvalidRequest, resp.Code)
	}
	if resp.Message != "Invalid flight" {
		t.Fatalf("expected message %q, got %q", "Invalid flight", resp.Message)
	}
	if resp.RequestID != "req-123" {
		t.Fatalf("expected requestId %q, got %q", "req-123", resp.RequestID)
	}
	if resp.Details != nil {
		t.Fatalf("expected no details, got %#v", resp.Details)
	}
}

func TestWriteErrorSummary(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    apperrors.ErrorCode
		wantMessage string
	}{
		{
			name: "model not available hides cause and context",
			err: apperrors.WrapWithContext(apperrors.ErrCodeFailedPrecondition, "model not available",
				errors.New("open /srv/models/model.json: no such file or directory"),
				map[string]any{"path": "/srv/models/model.json"}),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    apperrors.ErrCodeFailedPrecondition,
			wantMessage: "model not available",
		},
		{
			name: "internal uses fallback message",
			err: apperrors.NewWithContext(apperrors.ErrCodeInternal, "model rejected encoded features",
				map[string]any{"got": []string{"MES_7"}, "want": []string{"MES_4"}}),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    apperrors.ErrCodeInternal,
			wantMessage: "fallback",
		},
		{
			name:        "plain error is internal",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    apperrors.ErrCodeInternal,
			wantMessage: "fallback",
		},
		{
			name:        "timeout",
			err:         apperrors.Wrap(apperrors.ErrCodeTimeout, "prediction cancelled", context.DeadlineExceeded),
			wantStatus:  http.StatusGatewayTimeout,
			wantCode:    apperrors.ErrCodeTimeout,
			wantMessage: "prediction cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/predict", nil)
			w := httptest.NewRecorder()

			WriteErrorSummary(w, req, tt.err, "fallback")

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}

			var raw map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if _, ok := raw["details"]; ok {
				t.Fatalf("expected no details, got %#v", raw["details"])
			}

			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Code != string(tt.wantCode) || resp.Message != tt.wantMessage {
				t.Fatalf("unexpected response %+v", resp)
			}
			if !resp.Retryable {
				t.Fatal("expected retryable=true")
			}
			if resp.RequestID == "" {
				t.Fatal("expected a request id")
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("RequestID() = %q, want empty", got)
	}
	ctx := context.WithValue(context.Background(), contextKeyRequestID, "req-9")
	if got := RequestID(ctx); got != "req-9" {
		t.Fatalf("RequestID() = %q, want req-9", got)
	}
}
