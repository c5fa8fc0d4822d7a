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
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mchmarny/flight-delay/pkg/defaults"
	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
	"github.com/mchmarny/flight-delay/pkg/features"
	"github.com/mchmarny/flight-delay/pkg/inference"
	"github.com/mchmarny/flight-delay/pkg/logging"
	"github.com/mchmarny/flight-delay/pkg/model"
	"github.com/mchmarny/flight-delay/pkg/reference"
	"github.com/mchmarny/flight-delay/pkg/server"
)

const (
	name           = "flightd"
	versionDefault = "dev"
	envFile        = ".env"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/mchmarny/flight-delay/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Config locates the files the service reads. A zero Port keeps the
// server default.
type Config struct {
	ModelPath string
	DataPath  string
	Port      int
}

// ConfigFromEnv returns file locations from the environment, falling back
// to defaults.
func ConfigFromEnv() Config {
	return Config{
		ModelPath: getEnv(defaults.EnvModelPath, defaults.ModelPath),
		DataPath:  getEnv(defaults.EnvDataPath, defaults.DataPath),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadEnvFile seeds the environment from path. Variables already set win,
// and a missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest, "failed to read env file", err,
			map[string]any{"path": path})
	}
	slog.Debug("environment loaded", "path", path)
	return nil
}

// NewHandlers builds the prediction service and returns its routes.
func NewHandlers(ctx context.Context, cfg Config) (map[string]http.HandlerFunc, error) {
	ref, err := reference.Load(cfg.DataPath)
	if err != nil {
		return nil, err
	}

	p := model.NewPredictor(cfg.ModelPath)
	if err := p.Load(ctx); err != nil {
		slog.Warn("model not loaded at startup, will retry on request",
			"path", cfg.ModelPath,
			"error", err)
	}

	svc, err := inference.New(ref, features.NewDefaultEncoder(), p)
	if err != nil {
		return nil, err
	}

	return map[string]http.HandlerFunc{
		"/predict": withModel(p, svc.HandlePredict),
	}, nil
}

// withModel loads the model before next runs. Load is a no-op once it has
// succeeded.
func withModel(p *model.Predictor, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && !p.Loaded() {
			if err := p.Load(r.Context()); err != nil {
				slog.Error("model load failed",
					"path", p.Path(),
					"requestId", server.RequestID(r.Context()),
					"error", err)
				server.WriteErrorSummary(w, r,
					apperrors.Wrap(apperrors.ErrCodeFailedPrecondition, model.ErrModelNotAvailable, err),
					model.ErrModelNotAvailable)
				return
			}
		}
		next(w, r)
	}
}

// Serve starts the API server and blocks until shutdown.
func Serve() error {
	if err := LoadEnvFile(envFile); err != nil {
		return err
	}

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	return Run(context.Background(), ConfigFromEnv())
}

// Run builds the service from cfg and serves it until ctx is done or the
// process is signalled.
func Run(ctx context.Context, cfg Config) error {
	routes, err := NewHandlers(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize service", "error", err)
		return err
	}

	sc := server.NewConfig()
	if cfg.Port > 0 {
		sc.Port = cfg.Port
	}

	s := server.New(
		server.WithConfig(sc),
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
