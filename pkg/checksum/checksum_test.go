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
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
)

func TestSum(t *testing.T) {
	// sha256 of the empty string
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(nil); got != want {
		t.Errorf("Sum(nil) = %s", got)
	}
}

func TestWriteVerify(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.json")
	data := []byte(`{"kind":"gbt"}`)

	if err := Write(context.Background(), path, data); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	raw, err := os.ReadFile(SidecarPath(path))
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(strings.TrimSpace(string(raw)), "  ")
	if len(parts) != 2 || len(parts[0]) != 64 || parts[1] != "model.json" {
		t.Errorf("invalid checksum format: %q", raw)
	}

	ok, err := Verify(path, data)
	if err != nil || !ok {
		t.Errorf("Verify() = %v, %v; want true, nil", ok, err)
	}

	ok, err = Verify(path, []byte("tampered"))
	if ok || !apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest) {
		t.Errorf("Verify(tampered) = %v, %v", ok, err)
	}
}

func TestVerify_NoSidecar(t *testing.T) {
	t.Parallel()

	ok, err := Verify(filepath.Join(t.TempDir(), "model.json"), []byte("x"))
	if ok || err != nil {
		t.Errorf("Verify() = %v, %v; want false, nil", ok, err)
	}
}

func TestVerify_EmptySidecar(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(SidecarPath(path), []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Verify(path, []byte("x")); err == nil {
		t.Error("expected error for empty sidecar")
	}
}

func TestWrite_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Write(ctx, filepath.Join(t.TempDir(), "m.json"), nil); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestWrite_Mode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.json")
	if err := Write(context.Background(), path, []byte("x")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	info, err := os.Stat(SidecarPath(path))
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o644 {
		t.Errorf("sidecar mode = %o, want 644", got)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.json")
	if err := Remove(path); err != nil {
		t.Errorf("Remove() without sidecar error = %v", err)
	}
	if err := Write(context.Background(), path, []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := Remove(path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(SidecarPath(path)); !os.IsNotExist(err) {
		t.Errorf("sidecar still present: %v", err)
	}
}
