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

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/flight-delay/pkg/features"
	"github.com/mchmarny/flight-delay/pkg/header"
	"github.com/mchmarny/flight-delay/pkg/inference"
	"github.com/mchmarny/flight-delay/pkg/model"
	"github.com/mchmarny/flight-delay/pkg/reference"
	"github.com/mchmarny/flight-delay/pkg/serializer"
)

// PredictionResult is the output of the predict command.
type PredictionResult struct {
	header.Header      `json:",inline" yaml:",inline"`
	inference.Response `json:",inline" yaml:",inline"`
}

func predictCmd() *cli.Command {
	return &cli.Command{
		Name:                  "predict",
		EnableShellCompletion: true,
		Usage:                 "Predict delays for a batch of flights",
		Description: `Run a batch of flights through the same validation, encoding and model
the API server uses. The request file has the /predict body shape, in JSON or
YAML:

  flights:
    - OPERA: Grupo LATAM
      TIPOVUELO: I
      MES: 7

Every flight must appear in the reference data (--data); otherwise the whole
batch is rejected.

# Examples

  flightctl predict --request flights.yaml --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "request",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "Path of the request file (JSON or YAML)",
			},
			modelFlag(),
			dataFlag("Path of the reference flights CSV"),
			outputFlag(),
			formatFlag(serializer.FormatJSON),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			reqPath := cmd.String("request")
			req, err := serializer.FromFile[inference.Request](reqPath)
			if err != nil {
				return fmt.Errorf("failed to load request from %q: %w", reqPath, err)
			}

			ref, err := reference.Load(cmd.String("data"))
			if err != nil {
				return fmt.Errorf("failed to load reference data: %w", err)
			}

			p := model.NewPredictor(cmd.String("model"))
			if err := p.Load(ctx); err != nil {
				return fmt.Errorf("failed to load model: %w", err)
			}

			svc, err := inference.New(ref, features.NewDefaultEncoder(), p)
			if err != nil {
				return err
			}

			pred, err := svc.Predict(ctx, req.Flights)
			if err != nil {
				return fmt.Errorf("prediction failed: %w", err)
			}

			return writeOutput(ctx, cmd, &PredictionResult{
				Header:   header.New(header.KindPredictionResult, version, header.WithMetadata("model", p.Path())),
				Response: inference.Response{Predict: pred},
			})
		},
	}
}
