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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flight_predict_requests_total",
			Help: "Total number of /predict requests by result",
		},
		[]string{"result"},
	)

	flightsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flight_rejected_flights_total",
			Help: "Total number of flights that failed validation",
		},
	)

	batchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flight_predict_batch_size",
			Help:    "Number of flights per served prediction batch",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)
