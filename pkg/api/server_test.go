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

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mchmarny/flight-delay/pkg/dataset"
	"github.com/mchmarny/flight-delay/pkg/defaults"
	"github.com/mchmarny/flight-delay/pkg/model"
	"github.com/mchmarny/flight-delay/pkg/server"
)

const knownFlight = `{"flights":[{"OPERA":"Grupo LATAM","TIPOVUELO":"I","MES":7}]}`

// writeHistory writes a training CSV where July and December flights are late.
func writeHistory(t *testing.T, dir string) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("Fecha-I,Fecha-O,MES,DIANOM,TIPOVUELO,OPERA,SIGLADES\n")
	operators := []string{"Grupo LATAM", "Sky Airline", "Copa Air"}
	for i := 0; i < 120; i++ {
		month := i%12 + 1
		delay := 3
		if month == 7 || month == 12 {
			delay = 50
		}
		fmt.Fprintf(&sb, "2017-%02d-05 09:00:00,2017-%02d-05 09:%02d:00,%d,Jueves,%s,%s,Lima\n",
			month, month, delay, month, []string{"I", "N"}[(i/3)%2], operators[i%3])
	}

	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		t.Fatalf("failed to write data: %v", err)
	}
	return path
}

func trainModel(t *testing.T, dataPath, modelPath string) {
	t.Helper()

	table, err := dataset.Load(dataPath)
	if err != nil {
		t.Fatalf("failed to load data: %v", err)
	}
	hp := model.DefaultHyperparameters()
	hp.Estimators = 10
	hp.MaxDepth = 3
	if _, err := model.NewTrainer(model.WithHyperparameters(hp)).TrainAndSave(context.Background(), table, modelPath); err != nil {
		t.Fatalf("failed to train: %v", err)
	}
}

func newTestHandler(t *testing.T, cfg Config) http.Handler {
	t.Helper()

	routes, err := NewHandlers(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewHandlers() error = %v", err)
	}
	s := server.New(
		server.WithName(name),
		server.WithVersion("test"),
		server.WithHandler(routes),
	)
	return s.Handler()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestConstants(t *testing.T) {
	if name != "flightd" {
		t.Errorf("name = %q, want %q", name, "flightd")
	}
	if versionDefault != "dev" {
		t.Errorf("versionDefault = %q, want %q", versionDefault, "dev")
	}
	if version == "" || commit == "" || date == "" {
		t.Error("build variables should not be empty")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(defaults.EnvModelPath, "")
	t.Setenv(defaults.EnvDataPath, "")

	cfg := ConfigFromEnv()
	if cfg.ModelPath != defaults.ModelPath {
		t.Errorf("ModelPath = %q, want %q", cfg.ModelPath, defaults.ModelPath)
	}
	if cfg.DataPath != defaults.DataPath {
		t.Errorf("DataPath = %q, want %q", cfg.DataPath, defaults.DataPath)
	}

	t.Setenv(defaults.EnvModelPath, "/models/m.json")
	t.Setenv(defaults.EnvDataPath, "/data/d.csv")
	cfg = ConfigFromEnv()
	if cfg.ModelPath != "/models/m.json" || cfg.DataPath != "/data/d.csv" {
		t.Errorf("ConfigFromEnv() = %+v", cfg)
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(defaults.EnvDataPath+"=/from/file.csv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(defaults.EnvDataPath, "")
	os.Unsetenv(defaults.EnvDataPath)

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv(defaults.EnvDataPath); got != "/from/file.csv" {
		t.Errorf("%s = %q, want %q", defaults.EnvDataPath, got, "/from/file.csv")
	}
}

func TestNewHandlers_MissingReferenceData(t *testing.T) {
	dir := t.TempDir()
	_, err := NewHandlers(context.Background(), Config{
		ModelPath: filepath.Join(dir, "model.json"),
		DataPath:  filepath.Join(dir, "missing.csv"),
	})
	if err == nil {
		t.Fatal("expected error for missing reference data")
	}
}

func TestPredict_ModelLoadedLazily(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		ModelPath: filepath.Join(dir, "model.json"),
		DataPath:  writeHistory(t, dir),
	}
	h := newTestHandler(t, cfg)

	// health is independent of model state
	w := do(h, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("/health status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"status":"OK"}` {
		t.Errorf("/health body = %s", got)
	}

	w = do(h, http.MethodPost, "/predict", knownFlight)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("/predict without model status = %d, want %d: %s", w.Code, http.StatusServiceUnavailable, w.Body.String())
	}
	var errResp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if _, ok := errResp["details"]; ok {
		t.Errorf("503 response leaks details: %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), dir) {
		t.Errorf("503 response leaks model path: %s", w.Body.String())
	}
	if errResp["message"] != "model not available" {
		t.Errorf("message = %v, want %q", errResp["message"], "model not available")
	}

	trainModel(t, cfg.DataPath, cfg.ModelPath)

	w = do(h, http.MethodPost, "/predict", knownFlight)
	if w.Code != http.StatusOK {
		t.Fatalf("/predict status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp struct {
		Predict []int `json:"predict"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Predict) != 1 {
		t.Errorf("predict = %v, want one element", resp.Predict)
	}
}

func TestPredict_InvalidFlight(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		ModelPath: filepath.Join(dir, "model.json"),
		DataPath:  writeHistory(t, dir),
	}
	trainModel(t, cfg.DataPath, cfg.ModelPath)
	h := newTestHandler(t, cfg)

	w := do(h, http.MethodPost, "/predict", `{"flights":[{"OPERA":"Aerolineas Argentinas","TIPOVUELO":"I","MES":7}]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	var resp server.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if resp.Message != "Invalid flight" {
		t.Errorf("message = %q, want %q", resp.Message, "Invalid flight")
	}
}
