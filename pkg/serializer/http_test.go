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

package serializer

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusCreated, map[string]string{"status": "OK"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"status":"OK"}` {
		t.Errorf("body = %q", got)
	}
}

func TestRespondJSON_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestDecodeJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "valid", body: `{"flights":[]}`},
		{name: "trailing whitespace", body: "{\"flights\":[]}\n  "},
		{name: "empty", body: "", wantErr: ErrEmptyBody},
		{name: "malformed", body: `{"flights":`},
		{name: "second value", body: `{"flights":[]}{"flights":[]}`, wantErr: ErrTrailingData},
		{name: "trailing garbage", body: `{"flights":[]}x`, wantErr: ErrTrailingData},
		{name: "over limit", body: `{"flights":[` + strings.Repeat(" ", 64) + `]}`, wantErr: ErrBodyTooLarge},
		{name: "trailing data over limit", body: `{"flights":[]}` + strings.Repeat(" ", 64) + `{}`, wantErr: ErrBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(tt.body))
			var v map[string]any
			err := DecodeJSONBody(r, &v, 32)

			switch {
			case tt.name == "malformed":
				if err == nil {
					t.Error("expected decode error")
				}
			case tt.wantErr == nil:
				if err != nil {
					t.Errorf("DecodeJSONBody() error = %v", err)
				}
			case !errors.Is(err, tt.wantErr):
				t.Errorf("DecodeJSONBody() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
