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

package checksum

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/sys/atomicwriter"

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
)

// Suffix is appended to a file path to name its sidecar.
const Suffix = ".sha256"

// ErrMismatch is the message used when content does not match its sidecar.
const ErrMismatch = "checksum mismatch"

// Sum returns the hex-encoded SHA256 of data.
func Sum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// SidecarPath returns the sidecar path for path.
func SidecarPath(path string) string {
	return path + Suffix
}

// Write atomically writes the sidecar for path covering data.
func Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	line := fmt.Sprintf("%s  %s\n", Sum(data), filepath.Base(path))
	sidecar := SidecarPath(path)
	if err := atomicwriter.WriteFile(sidecar, []byte(line), 0o644); err != nil {
		return fmt.Errorf("failed to write checksum: %w", err)
	}

	slog.Debug("checksum written", "path", sidecar)
	return nil
}

// Remove deletes the sidecar of path. A missing sidecar is not an error.
func Remove(path string) error {
	if err := os.Remove(SidecarPath(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove checksum: %w", err)
	}
	return nil
}

// Verify checks data against the sidecar of path. A missing sidecar is not an
// error; ok reports whether a sidecar was found and checked.
func Verify(path string, data []byte) (ok bool, err error) {
	raw, err := os.ReadFile(SidecarPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read checksum: %w", err)
	}

	fields := strings.Fields(string(raw))
	if len(fields) == 0 {
		return false, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("empty checksum file for %s", filepath.Base(path)))
	}

	if want, got := strings.ToLower(fields[0]), Sum(data); want != got {
		return false, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, ErrMismatch,
			map[string]any{
				"path":     path,
				"expected": want,
				"actual":   got,
			})
	}
	return true, nil
}
