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
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mchmarny/flight-delay/pkg/dataset"
	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
	"github.com/mchmarny/flight-delay/pkg/features"
	"github.com/mchmarny/flight-delay/pkg/flight"
	"github.com/mchmarny/flight-delay/pkg/header"
)

var trainingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "flight_training_duration_seconds",
		Help:    "Duration of model training runs in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	},
)

// Trainer fits a classifier on labeled flight records.
type Trainer struct {
	hp      Hyperparameters
	encoder *features.Encoder
	factory Factory
	now     func() time.Time
}

// TrainerOption configures a Trainer.
type TrainerOption func(*Trainer)

// WithHyperparameters overrides the default hyperparameters.
func WithHyperparameters(hp Hyperparameters) TrainerOption {
	return func(t *Trainer) {
		t.hp = hp
	}
}

// WithEncoder overrides the default curated-column encoder.
func WithEncoder(e *features.Encoder) TrainerOption {
	return func(t *Trainer) {
		if e != nil {
			t.encoder = e
		}
	}
}

// WithClassifierFactory replaces the classifier constructor.
func WithClassifierFactory(f Factory) TrainerOption {
	return func(t *Trainer) {
		if f != nil {
			t.factory = f
		}
	}
}

// WithClock sets the time source used to stamp artifacts.
func WithClock(now func() time.Time) TrainerOption {
	return func(t *Trainer) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTrainer returns a Trainer with default hyperparameters, the curated
// encoder and the gradient boosted classifier.
func NewTrainer(opts ...TrainerOption) *Trainer {
	t := &Trainer{
		hp:      DefaultHyperparameters(),
		encoder: features.NewDefaultEncoder(),
		factory: NewBooster,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Hyperparameters returns the trainer's settings.
func (t *Trainer) Hyperparameters() Hyperparameters {
	return t.hp
}

// Result is the outcome of a training run.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	Artifact       *Artifact     `json:"-" yaml:"-"`
	Model          string        `json:"model" yaml:"model"`
	Features       []string      `json:"features" yaml:"features"`
	Report         *Report       `json:"report" yaml:"report"`
	TrainRows      int           `json:"train_rows" yaml:"train_rows"`
	TestRows       int           `json:"test_rows" yaml:"test_rows"`
	ScalePosWeight float64       `json:"scale_pos_weight" yaml:"scale_pos_weight"`
	Duration       time.Duration `json:"duration" yaml:"duration"`

	classifier Classifier
}

// Classifier returns the fitted in-memory classifier.
func (r *Result) Classifier() Classifier {
	return r.classifier
}

// RenderTable writes a run summary followed by the classification report.
func (r *Result) RenderTable(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "model: %s (%s)\ntrain rows: %d\ntest rows: %d\nscale_pos_weight: %.4f\nduration: %s\n\n",
		r.Artifact.Kind, r.Artifact.Version, r.TrainRows, r.TestRows, r.ScalePosWeight, r.Duration); err != nil {
		return err
	}
	return r.Report.RenderTable(w)
}

// Train requires the full training schema, labels every record, splits the
// rows, fits the classifier on the training partition and scores it on the
// held-out partition. Any failure aborts the run.
func (t *Trainer) Train(ctx context.Context, table *dataset.Table) (*Result, error) {
	start := time.Now()

	if err := t.hp.Validate(); err != nil {
		return nil, err
	}
	if err := table.Require(flight.TrainingColumns()...); err != nil {
		return nil, err
	}

	X, y, err := t.encoder.EncodeWithTarget(table, t.hp.DelayThreshold)
	if err != nil {
		return nil, err
	}

	weight := 1.0
	if t.hp.UseScalePosWeight {
		if weight, err = ScalePosWeight(y); err != nil {
			return nil, err
		}
	}

	trainIdx, testIdx, err := TrainTestSplit(X.Len(), t.hp.TestSize, t.hp.SplitSeed)
	if err != nil {
		return nil, err
	}
	xTrain, yTrain := selectRows(X.Rows, trainIdx), selectLabels(y, trainIdx)
	xTest, yTest := selectRows(X.Rows, testIdx), selectLabels(y, testIdx)

	slog.Info("training model",
		"rows", X.Len(),
		"train", len(trainIdx),
		"test", len(testIdx),
		"features", X.Width(),
		"scale_pos_weight", weight,
		"learning_rate", t.hp.LearningRate)

	clf, err := t.factory(t.hp, weight)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to configure classifier", err)
	}
	if err := clf.Fit(ctx, xTrain, yTrain); err != nil {
		return nil, err
	}

	pred, err := clf.Predict(xTest)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to score validation partition", err)
	}
	report, err := Classification(yTest, pred)
	if err != nil {
		return nil, err
	}

	artifact, err := NewArtifact(clf, X.Columns, weight, t.hp, t.now())
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	trainingDuration.Observe(elapsed.Seconds())

	delayed := report.Class(1)
	slog.Info("model trained",
		"duration", elapsed,
		"accuracy", report.Accuracy,
		"precision_1", delayed.Precision,
		"recall_1", delayed.Recall,
		"f1_1", delayed.F1)

	return &Result{
		Header:         header.New(header.KindTrainingResult, "", header.WithMetadata("model", artifact.Kind)),
		Artifact:       artifact,
		Model:          artifact.Kind,
		Features:       artifact.Features,
		Report:         report,
		TrainRows:      len(trainIdx),
		TestRows:       len(testIdx),
		ScalePosWeight: weight,
		Duration:       elapsed,
		classifier:     clf,
	}, nil
}

// TrainAndSave trains on table and persists the artifact to path.
func (t *Trainer) TrainAndSave(ctx context.Context, table *dataset.Table, path string) (*Result, error) {
	res, err := t.Train(ctx, table)
	if err != nil {
		return nil, err
	}
	if err := SaveArtifact(ctx, path, res.Artifact); err != nil {
		return nil, err
	}
	return res, nil
}
