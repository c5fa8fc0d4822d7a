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

package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/moby/sys/atomicwriter"

	"github.com/mchmarny/flight-delay/pkg/checksum"
	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
	"github.com/mchmarny/flight-delay/pkg/version"
)

// ArtifactVersion is the persisted format version. Readers accept artifacts
// of the same major version that are not newer than this.
const ArtifactVersion = "1.0"

var artifactVersion = version.MustParseVersion(ArtifactVersion)

// Artifact is a trained model with everything needed to serve it.
type Artifact struct {
	Version         string          `json:"version" yaml:"version"`
	Kind            string          `json:"kind" yaml:"kind"`
	Features        []string        `json:"features" yaml:"features"`
	ScalePosWeight  float64         `json:"scale_pos_weight" yaml:"scale_pos_weight"`
	Hyperparameters Hyperparameters `json:"hyperparameters" yaml:"hyperparameters"`
	CreatedAt       time.Time       `json:"created_at" yaml:"created_at"`
	Digest          string          `json:"digest,omitempty" yaml:"digest,omitempty"`
	Model           json.RawMessage `json:"model" yaml:"-"`
}

// modelDigest returns the sha256 of the compacted model payload, so the
// digest survives re-indentation of the envelope.
func modelDigest(raw json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return checksum.Sum(buf.Bytes()), nil
}

// NewArtifact packages a fitted classifier.
func NewArtifact(c Classifier, featureColumns []string, scalePosWeight float64,
	hp Hyperparameters, createdAt time.Time) (*Artifact, error) {

	blob, err := c.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to serialize classifier", err)
	}
	if !json.Valid(blob) {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "classifier serialized to invalid JSON")
	}
	digest, err := modelDigest(blob)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to digest classifier", err)
	}

	return &Artifact{
		Version:         ArtifactVersion,
		Kind:            c.Kind(),
		Features:        slices.Clone(featureColumns),
		ScalePosWeight:  scalePosWeight,
		Hyperparameters: hp,
		CreatedAt:       createdAt.UTC(),
		Digest:          digest,
		Model:           blob,
	}, nil
}

// Classifier decodes the embedded model.
func (a *Artifact) Classifier() (Classifier, error) {
	return decodeClassifier(a.Kind, a.Model)
}

// Verify checks the embedded model against its digest. Artifacts written
// without a digest report ok=false and no error.
func (a *Artifact) Verify() (ok bool, err error) {
	if a.Digest == "" {
		return false, nil
	}
	got, err := modelDigest(a.Model)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to digest model", err)
	}
	if got != a.Digest {
		return false, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, checksum.ErrMismatch,
			map[string]any{
				"expected": a.Digest,
				"actual":   got,
			})
	}
	return true, nil
}

// Validate checks the artifact header.
func (a *Artifact) Validate() error {
	v, err := version.ParseVersion(a.Version)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid artifact version %q", a.Version), err)
	}
	if !artifactVersion.CanRead(v) {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported artifact version %q", a.Version),
			map[string]any{"supported": ArtifactVersion})
	}
	if len(a.Features) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "artifact has no feature columns")
	}
	if len(a.Model) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "artifact has no model")
	}
	return nil
}

// SaveArtifact writes a to path, replacing any existing file atomically.
// The artifact carries its own digest; the sha256sum sidecar written after it
// is for external tooling and is removed if it cannot be brought up to date.
func SaveArtifact(ctx context.Context, path string, a *Artifact) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeTimeout, "model save cancelled", err)
	}
	if err := a.Validate(); err != nil {
		return err
	}
	out := *a
	if out.Digest == "" {
		digest, err := modelDigest(out.Model)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to digest model", err)
		}
		out.Digest = digest
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to encode artifact", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapWithContext(apperrors.ErrCodeInternal, "failed to create model directory", err,
				map[string]any{"dir": dir})
		}
	}

	if err := atomicwriter.WriteFile(path, data, 0o644); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeInternal, "failed to write model", err,
			map[string]any{"path": path})
	}

	if err := checksum.Write(ctx, path, data); err != nil {
		slog.Warn("failed to write model checksum, removing stale sidecar",
			"path", path,
			"error", err)
		if rmErr := checksum.Remove(path); rmErr != nil {
			slog.Error("failed to remove stale checksum sidecar",
				"path", checksum.SidecarPath(path),
				"error", rmErr)
		}
	}

	slog.Info("model saved",
		"path", path,
		"kind", out.Kind,
		"bytes", len(data),
		"digest", out.Digest)

	return nil
}

// LoadArtifact reads and validates the artifact at path. When the artifact
// carries a digest the model payload must match it.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := apperrors.ErrCodeInternal
		if os.IsNotExist(err) {
			code = apperrors.ErrCodeNotFound
		}
		return nil, apperrors.WrapWithContext(code, "failed to read model", err,
			map[string]any{"path": path})
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest, "failed to decode model", err,
			map[string]any{"path": path})
	}
	verified, err := a.Verify()
	if err != nil {
		return nil, err
	}
	if !verified {
		slog.Warn("model has no digest, skipping verification", "path", path)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}
