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

package kv

import (
	"context"

	"github.com/featherdb/feather/types"
)

// RecordSet is a finite, ordered stream of tuples produced by a table scan.
//
// Note that:
// 1. Remember to call (RecordSet).Close after reading all tuples.
// 2. A RecordSet is not thread-safe. Different goroutines cannot call Next concurrently.
type RecordSet interface {
	// Next returns the next tuple, or a nil row once the scan is exhausted.
	Next(ctx context.Context) (types.DatumRow, error)
	// Close closes the underlying scan.
	Close() error
}

// Storage is the scan capability the statistics subsystem consumes. It
// exposes page-level metadata and restartable sequential scans.
//
// Successive Scan calls over an unmodified table must yield tuples in the
// same order: statistics construction discovers column bounds on a first
// scan and populates histograms on a second, and the bounds stay valid only
// if the second scan visits the same tuples.
type Storage interface {
	// PageCount returns the number of pages backing the table.
	PageCount(tableID int64) (int64, error)
	// Scan opens a sequential scan over the table, positioned before the
	// first tuple.
	Scan(ctx context.Context, tableID int64) (RecordSet, error)
}
