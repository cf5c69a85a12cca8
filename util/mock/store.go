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

// Package mock provides an in-memory kv.Storage, only for test.
package mock

import (
	"context"
	"sync"

	"github.com/pingcap/errors"

	"github.com/featherdb/feather/kv"
	"github.com/featherdb/feather/types"
)

// Store is an in-memory kv.Storage. Scans replay the rows of a table in
// insertion order, so successive scans are deterministic as the statistics
// two-pass protocol requires.
type Store struct {
	mu     sync.RWMutex
	tables map[int64]*tableData
}

type tableData struct {
	pageCount int64
	rows      []types.DatumRow
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{tables: make(map[int64]*tableData)}
}

// AddTable registers a table with the given page count and rows, replacing
// any previous registration.
func (s *Store) AddTable(tableID, pageCount int64, rows []types.DatumRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[tableID] = &tableData{pageCount: pageCount, rows: rows}
}

// PageCount implements kv.Storage interface.
func (s *Store) PageCount(tableID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tbl, ok := s.tables[tableID]
	if !ok {
		return 0, errors.Errorf("unknown table id %d", tableID)
	}
	return tbl.pageCount, nil
}

// Scan implements kv.Storage interface.
func (s *Store) Scan(ctx context.Context, tableID int64) (kv.RecordSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tbl, ok := s.tables[tableID]
	if !ok {
		return nil, errors.Errorf("unknown table id %d", tableID)
	}
	return &recordSet{rows: tbl.rows}, nil
}

type recordSet struct {
	rows   []types.DatumRow
	cursor int
}

// Next implements kv.RecordSet interface.
func (r *recordSet) Next(ctx context.Context) (types.DatumRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	if r.cursor == len(r.rows) {
		return nil, nil
	}
	r.cursor++
	return r.rows[r.cursor-1], nil
}

// Close implements kv.RecordSet interface.
func (r *recordSet) Close() error {
	r.cursor = 0
	return nil
}
