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

package inference

import (
	"context"
	"log/slog"

	"github.com/mchmarny/flight-delay/pkg/dataset"
	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
	"github.com/mchmarny/flight-delay/pkg/features"
	"github.com/mchmarny/flight-delay/pkg/flight"
)

// ErrInvalidFlight is the only message returned to clients for a rejected batch.
const ErrInvalidFlight = "Invalid flight"

// Request is the /predict request body.
type Request struct {
	Flights []flight.Descriptor `json:"flights" yaml:"flights"`
}

// Response is the /predict response body.
type Response struct {
	Predict []int `json:"predict" yaml:"predict"`
}

// Reference reports whether a flight combination is known.
type Reference interface {
	Lookup(f flight.Descriptor) error
}

// Predictor returns one class per matrix row.
type Predictor interface {
	Predict(m *features.Matrix) ([]int, error)
}

// Outcome is the validation result of one flight in a batch.
type Outcome struct {
	Index  int
	Flight flight.Descriptor
	Err    error
}

// OK reports whether the flight passed validation.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Service validates, encodes and predicts flight batches. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	ref       Reference
	encoder   *features.Encoder
	predictor Predictor
}

// New builds a Service. All dependencies are required.
func New(ref Reference, encoder *features.Encoder, predictor Predictor) (*Service, error) {
	if ref == nil || encoder == nil || predictor == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			"inference service requires reference data, encoder and predictor")
	}
	return &Service{
		ref:       ref,
		encoder:   encoder,
		predictor: predictor,
	}, nil
}

// Validate checks every flight and returns one outcome per flight, in order.
func (s *Service) Validate(flights []flight.Descriptor) []Outcome {
	out := make([]Outcome, len(flights))
	for i, f := range flights {
		out[i] = Outcome{Index: i, Flight: f}
		if err := f.Validate(); err != nil {
			out[i].Err = err
			continue
		}
		out[i].Err = s.ref.Lookup(f)
	}
	return out
}

// Predict returns one class per flight, in input order. A batch with any
// invalid flight fails with ErrInvalidFlight; the reasons are logged, not
// returned. An empty batch yields an empty result.
func (s *Service) Predict(ctx context.Context, flights []flight.Descriptor) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeTimeout, "prediction cancelled", err)
	}

	if failed := rejected(s.Validate(flights)); len(failed) > 0 {
		for _, o := range failed {
			slog.Warn("invalid flight",
				"index", o.Index,
				"flight", o.Flight.String(),
				"code", apperrors.CodeOf(o.Err),
				"error", o.Err)
		}
		flightsRejected.Add(float64(len(failed)))
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, ErrInvalidFlight,
			map[string]any{"rejected": len(failed), "batch": len(flights)})
	}

	if len(flights) == 0 {
		return []int{}, nil
	}

	X, err := s.encoder.Encode(dataset.FromDescriptors(flights))
	if err != nil {
		return nil, err
	}
	pred, err := s.predictor.Predict(X)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest) {
			// encoder and model disagree on the feature contract
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "model rejected encoded features", err)
		}
		return nil, err
	}
	if len(pred) != len(flights) {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInternal, "prediction count mismatch",
			map[string]any{"flights": len(flights), "predictions": len(pred)})
	}

	batchSize.Observe(float64(len(flights)))
	return pred, nil
}

func rejected(outcomes []Outcome) []Outcome {
	var out []Outcome
	for _, o := range outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}
