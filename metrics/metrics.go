// Copyright 2024 The Feather Authors.
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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Label constants.
const (
	LblResult = "result"

	LblHit  = "hit"
	LblMiss = "miss"
	LblOK   = "ok"
	LblErr  = "err"
)

// Statistics metrics.
var (
	StatsBuildDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "feather",
			Subsystem: "statistics",
			Name:      "build_duration_seconds",
			Help:      "Bucketed histogram of time (s) spent building per-table statistics.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 20), // 0.5ms ~ 262s
		})

	StatsBuildCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feather",
			Subsystem: "statistics",
			Name:      "build_total",
			Help:      "Counter of per-table statistics builds.",
		}, []string{LblResult})

	StatsCacheLookupCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feather",
			Subsystem: "statistics",
			Name:      "cache_lookup_total",
			Help:      "Counter of stats cache lookups.",
		}, []string{LblResult})
)

// RegisterMetrics registers the statistics metrics with the given registry.
func RegisterMetrics(r *prometheus.Registry) {
	r.MustRegister(StatsBuildDurationHistogram)
	r.MustRegister(StatsBuildCounter)
	r.MustRegister(StatsCacheLookupCounter)
}
