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

package handle

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pingcap/errors"
	"go.uber.org/zap"

	"github.com/featherdb/feather/config"
	"github.com/featherdb/feather/infoschema"
	"github.com/featherdb/feather/kv"
	"github.com/featherdb/feather/metrics"
	"github.com/featherdb/feather/statistics"
	"github.com/featherdb/feather/util/logutil"
)

// statsCache maps a lowered table name to its statistics. The map itself is
// never mutated after being stored; writers publish a fresh copy.
type statsCache map[string]*statistics.Table

// Handle caches per-table statistics for the planner. Readers are lock-free:
// the cache is a copy-on-write map swapped atomically, so a lookup never
// observes a partially built entry. An instance is injected into whoever
// needs it; there is no process-global handle.
type Handle struct {
	is    infoschema.InfoSchema
	store kv.Storage

	ioCostPerPage float64
	bucketCount   int

	// mu serializes writers. Readers only touch statsCache.
	mu         sync.Mutex
	statsCache atomic.Value
}

// NewHandle creates a Handle over the given catalog and storage.
func NewHandle(is infoschema.InfoSchema, store kv.Storage, cfg *config.Config) *Handle {
	h := &Handle{
		is:            is,
		store:         store,
		ioCostPerPage: cfg.Statistics.IOCostPerPage,
		bucketCount:   cfg.Statistics.HistogramBuckets,
	}
	h.statsCache.Store(statsCache{})
	return h
}

// Get retrieves the cached statistics of the named table. The second return
// value is false when no statistics have been computed for it; callers are
// expected to fall back to non-cost-based planning in that case.
func (h *Handle) Get(name string) (*statistics.Table, bool) {
	tbl, ok := h.statsCache.Load().(statsCache)[strings.ToLower(name)]
	if !ok {
		metrics.StatsCacheLookupCounter.WithLabelValues(metrics.LblMiss).Inc()
		return nil, false
	}
	metrics.StatsCacheLookupCounter.WithLabelValues(metrics.LblHit).Inc()
	return tbl, true
}

// Update publishes the statistics of one table. The swap is atomic: readers
// see either the previous entry or the new one, never an intermediate state.
func (h *Handle) Update(name string, tbl *statistics.Table) {
	h.mu.Lock()
	defer h.mu.Unlock()
	newCache := h.copyFromOldCache()
	newCache[strings.ToLower(name)] = tbl
	h.statsCache.Store(newCache)
}

// RecomputeAll rebuilds statistics for every table known to the catalog and
// publishes each table's result as soon as it is built. The batch is not
// atomic as a whole: a build failure aborts the remainder and is returned,
// while already published tables keep their fresh statistics.
func (h *Handle) RecomputeAll(ctx context.Context) error {
	tbls := h.is.AllTables()
	logutil.BgLogger().Info("computing table stats", zap.Int("tables", len(tbls)))
	start := time.Now()
	for _, tblInfo := range tbls {
		buildStart := time.Now()
		tbl, err := statistics.BuildTable(ctx, h.store, tblInfo, h.ioCostPerPage, h.bucketCount)
		if err != nil {
			metrics.StatsBuildCounter.WithLabelValues(metrics.LblErr).Inc()
			return errors.Trace(err)
		}
		metrics.StatsBuildCounter.WithLabelValues(metrics.LblOK).Inc()
		metrics.StatsBuildDurationHistogram.Observe(time.Since(buildStart).Seconds())
		h.Update(tblInfo.Name.O, tbl)
	}
	logutil.BgLogger().Info("done computing table stats",
		zap.Int("tables", len(tbls)),
		zap.Duration("cost", time.Since(start)))
	return nil
}

// Replace overwrites the whole cache with the given tables, mainly for test
// setup that wants to inject precomputed statistics.
func (h *Handle) Replace(tables map[string]*statistics.Table) {
	newCache := make(statsCache, len(tables))
	for name, tbl := range tables {
		newCache[strings.ToLower(name)] = tbl
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statsCache.Store(newCache)
}

// Snapshot returns a copy of the current cache contents.
func (h *Handle) Snapshot() map[string]*statistics.Table {
	cache := h.statsCache.Load().(statsCache)
	snap := make(map[string]*statistics.Table, len(cache))
	for name, tbl := range cache {
		snap[name] = tbl
	}
	return snap
}

// Clear drops every cached entry.
func (h *Handle) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statsCache.Store(statsCache{})
}

func (h *Handle) copyFromOldCache() statsCache {
	oldCache := h.statsCache.Load().(statsCache)
	newCache := make(statsCache, len(oldCache)+1)
	for name, tbl := range oldCache {
		newCache[name] = tbl
	}
	return newCache
}
