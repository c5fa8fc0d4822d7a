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

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/flight-delay/pkg/dataset"
	"github.com/mchmarny/flight-delay/pkg/defaults"
	"github.com/mchmarny/flight-delay/pkg/model"
	"github.com/mchmarny/flight-delay/pkg/serializer"
)

func trainCmd() *cli.Command {
	return &cli.Command{
		Name:                  "train",
		EnableShellCompletion: true,
		Usage:                 "Train the delay classifier on historical flights",
		Description: `Train a gradient boosted classifier on historical flight records.

The data file is a CSV with at least these columns:
  OPERA, MES, TIPOVUELO, SIGLADES, DIANOM, Fecha-I, Fecha-O

A flight is labeled delayed when Fecha-O is more than --threshold minutes
after Fecha-I. Rows are split into training and validation partitions with a
fixed seed, the positive class is weighted by the negative/positive ratio,
and the validation classification report is written to --output.

The model replaces any existing file at --model atomically and a checksum
sidecar (<model>.sha256) is written next to it.

# Examples

Train with defaults and print the report:
  flightctl train --data data/data.csv --model data/model.json

Publish the report to a ConfigMap:
  flightctl train --output cm://flights/training-report --format yaml`,
		Flags: []cli.Flag{
			dataFlag("Path of the historical flights CSV"),
			modelFlag(),
			&cli.Float64Flag{
				Name:  "threshold",
				Value: defaults.DelayThreshold,
				Usage: "Minutes past schedule after which a flight counts as delayed",
			},
			&cli.Float64Flag{
				Name:  "test-size",
				Value: defaults.TestSize,
				Usage: "Fraction of rows held out for validation",
			},
			&cli.Float64Flag{
				Name:  "learning-rate",
				Value: defaults.LearningRate,
				Usage: "Boosting learning rate",
			},
			&cli.IntFlag{
				Name:  "estimators",
				Value: defaults.Estimators,
				Usage: "Number of boosting rounds",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Value: defaults.MaxDepth,
				Usage: "Maximum tree depth",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Value: defaults.ModelSeed,
				Usage: "Classifier random seed",
			},
			&cli.Int64Flag{
				Name:  "split-seed",
				Value: defaults.SplitSeed,
				Usage: "Train/validation split seed",
			},
			&cli.BoolFlag{
				Name:  "no-balance",
				Usage: "Disable positive class weighting",
			},
			outputFlag(),
			formatFlag(serializer.FormatTable),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			hp := hyperparametersFromCmd(cmd)
			if err := hp.Validate(); err != nil {
				return fmt.Errorf("invalid training parameters: %w", err)
			}

			dataPath := cmd.String("data")
			table, err := dataset.Load(dataPath)
			if err != nil {
				return fmt.Errorf("failed to load training data from %q: %w", dataPath, err)
			}

			modelPath := cmd.String("model")
			res, err := model.NewTrainer(model.WithHyperparameters(hp)).TrainAndSave(ctx, table, modelPath)
			if err != nil {
				return fmt.Errorf("training failed: %w", err)
			}

			slog.Info("training complete",
				"model", modelPath,
				"accuracy", res.Report.Accuracy,
				"duration", res.Duration)

			res.Metadata["version"] = version
			return writeOutput(ctx, cmd, res)
		},
	}
}

func hyperparametersFromCmd(cmd *cli.Command) model.Hyperparameters {
	hp := model.DefaultHyperparameters()
	hp.DelayThreshold = cmd.Float64("threshold")
	hp.TestSize = cmd.Float64("test-size")
	hp.LearningRate = cmd.Float64("learning-rate")
	hp.Estimators = cmd.Int("estimators")
	hp.MaxDepth = cmd.Int("max-depth")
	hp.Seed = cmd.Int64("seed")
	hp.SplitSeed = cmd.Int64("split-seed")
	hp.UseScalePosWeight = !cmd.Bool("no-balance")
	return hp
}
