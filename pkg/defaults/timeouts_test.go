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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerReadHeaderTimeout", ServerReadHeaderTimeout, 1 * time.Second, 10 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 60 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 60 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 15 * time.Second, 60 * time.Second},

		// Handler timeouts
		{"PredictHandlerTimeout", PredictHandlerTimeout, 1 * time.Second, 30 * time.Second},

		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 10 * time.Second, 60 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 15 * time.Second},
		{"HTTPTLSHandshakeTimeout", HTTPTLSHandshakeTimeout, 1 * time.Second, 15 * time.Second},

		// K8s and registry
		{"ConfigMapWriteTimeout", ConfigMapWriteTimeout, 10 * time.Second, 60 * time.Second},
		{"OCIPushTimeout", OCIPushTimeout, 1 * time.Minute, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s = %v, below minimum %v", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s = %v, above maximum %v", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestServerTimeoutRelationships(t *testing.T) {
	if ServerReadHeaderTimeout >= ServerReadTimeout {
		t.Errorf("ServerReadHeaderTimeout (%v) should be less than ServerReadTimeout (%v)",
			ServerReadHeaderTimeout, ServerReadTimeout)
	}
	if PredictHandlerTimeout >= ServerWriteTimeout {
		t.Errorf("PredictHandlerTimeout (%v) should be less than ServerWriteTimeout (%v)",
			PredictHandlerTimeout, ServerWriteTimeout)
	}
}

func TestTopFeatures(t *testing.T) {
	cols := TopFeatures()
	if len(cols) != 10 {
		t.Fatalf("expected 10 curated features, got %d", len(cols))
	}

	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c] {
			t.Errorf("duplicate curated feature %q", c)
		}
		seen[c] = true
	}

	// callers must not be able to mutate the shared contract
	cols[0] = "mutated"
	if TopFeatures()[0] == "mutated" {
		t.Error("TopFeatures returned the backing slice")
	}
}

func TestModelConstants(t *testing.T) {
	if DelayThreshold != 15 {
		t.Errorf("DelayThreshold = %v, want 15", DelayThreshold)
	}
	if TestSize <= 0 || TestSize >= 1 {
		t.Errorf("TestSize = %v, want (0,1)", TestSize)
	}
	if SplitSeed == ModelSeed {
		t.Error("split and model seeds are expected to differ")
	}
}
