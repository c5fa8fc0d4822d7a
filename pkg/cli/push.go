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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/urfave/cli/v3"

	"github.com/mchmarny/flight-delay/pkg/checksum"
	"github.com/mchmarny/flight-delay/pkg/defaults"
	"github.com/mchmarny/flight-delay/pkg/header"
	"github.com/mchmarny/flight-delay/pkg/model"
	"github.com/mchmarny/flight-delay/pkg/oci"
	"github.com/mchmarny/flight-delay/pkg/serializer"
)

const defaultOCITag = "latest"

// PushSummary is the output of the push command.
type PushSummary struct {
	header.Header `json:",inline" yaml:",inline"`

	Reference string   `json:"reference" yaml:"reference"`
	Digest    string   `json:"digest" yaml:"digest"`
	Files     []string `json:"files" yaml:"files"`
}

func pushCmd() *cli.Command {
	return &cli.Command{
		Name:                  "push",
		EnableShellCompletion: true,
		Usage:                 "Publish a trained model to an OCI registry",
		Description: `Push the model file, and its checksum sidecar when present, to an OCI
registry as a single artifact. The model is loaded and verified first.
Registry credentials are read from the Docker credential store.

# Examples

  flightctl push --model data/model.json --reference oci://ghcr.io/acme/flight-model:v1

Push to a local registry without TLS:
  flightctl push --reference oci://localhost:5000/flight-model:dev --plain-http`,
		Flags: []cli.Flag{
			modelFlag(),
			&cli.StringFlag{
				Name:     "reference",
				Aliases:  []string{"r"},
				Required: true,
				Usage:    fmt.Sprintf("Destination in the form oci://registry/repository[:tag] (default tag: %s)", defaultOCITag),
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the registry connection",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification",
			},
			outputFlag(),
			formatFlag(serializer.FormatYAML),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			ref, err := oci.ParseOutputTarget(cmd.String("reference"))
			if err != nil {
				return fmt.Errorf("invalid --reference: %w", err)
			}
			if ref.Tag == "" {
				ref = ref.WithTag(defaultOCITag)
			}

			modelPath := cmd.String("model")
			a, err := model.LoadArtifact(modelPath)
			if err != nil {
				return fmt.Errorf("refusing to push %q: %w", modelPath, err)
			}

			files := pushFiles(modelPath)

			ctx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
			defer cancel()

			res, err := oci.Push(ctx, oci.PushOptions{
				Reference:   ref,
				Files:       files,
				PlainHTTP:   cmd.Bool("plain-http"),
				InsecureTLS: cmd.Bool("insecure-tls"),
				Annotations: modelAnnotations(a),
			})
			if err != nil {
				return fmt.Errorf("failed to push model: %w", err)
			}

			slog.Info("model pushed",
				"reference", res.Reference,
				"digest", res.Digest)

			return writeOutput(ctx, cmd, &PushSummary{
				Header:    header.New(header.KindPushResult, version),
				Reference: res.Reference,
				Digest:    res.Digest,
				Files:     files,
			})
		},
	}
}

// pushFiles returns the model and, when it matches the model, its checksum
// sidecar. A stale or unreadable sidecar is left out.
func pushFiles(modelPath string) []string {
	files := []string{modelPath}
	data, err := os.ReadFile(modelPath)
	if err != nil {
		return files
	}
	ok, err := checksum.Verify(modelPath, data)
	if err != nil {
		slog.Warn("skipping checksum sidecar", "path", checksum.SidecarPath(modelPath), "error", err)
		return files
	}
	if ok {
		files = append(files, checksum.SidecarPath(modelPath))
	}
	return files
}

func modelAnnotations(a *model.Artifact) map[string]string {
	return map[string]string{
		ociv1.AnnotationCreated:              a.CreatedAt.Format(time.RFC3339),
		ociv1.AnnotationVersion:              a.Version,
		ociv1.AnnotationTitle:                a.Kind,
		"dev.flight-delay.model.features":    fmt.Sprintf("%d", len(a.Features)),
		"dev.flight-delay.model.cli-version": version,
	}
}
