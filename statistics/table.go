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

package statistics

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/pingcap/errors"
	"github.com/pingcap/failpoint"
	"go.uber.org/zap"

	"github.com/featherdb/feather/kv"
	"github.com/featherdb/feather/model"
	"github.com/featherdb/feather/opcode"
	"github.com/featherdb/feather/types"
	"github.com/featherdb/feather/util/logutil"
)

// Table represents statistics for a table: one histogram per column plus the
// page and tuple counts the cost model needs. Building a Table is expensive
// (two full sequential scans); once built it is immutable and safe for
// unbounded concurrent readers.
type Table struct {
	TableID int64
	Info    *model.TableInfo
	// PageCount is the number of pages backing the table at build time.
	PageCount int64
	// Count is the total tuple count measured during the population scan.
	Count int64
	// IOCostPerPage is the configured cost of reading one page.
	IOCostPerPage float64

	// columns holds one histogram per column, indexed by schema offset.
	columns []Histogram
}

// BuildTable computes fresh statistics for the given table. It scans the
// table twice: the first pass discovers per-column bounds for integer
// columns, the second feeds every value into its column histogram. The two
// passes rely on kv.Storage yielding tuples in the same order each time.
//
// Any scan failure aborts the build; partially built statistics are never
// returned.
func BuildTable(ctx context.Context, store kv.Storage, tblInfo *model.TableInfo, ioCostPerPage float64, bucketCount int) (*Table, error) {
	failpoint.Inject("mockBuildTableErr", func(val failpoint.Value) {
		if val.(bool) {
			failpoint.Return(nil, errors.New("mockBuildTableErr"))
		}
	})

	pageCount, err := store.PageCount(tblInfo.ID)
	if err != nil {
		return nil, errors.Trace(err)
	}
	t := &Table{
		TableID:       tblInfo.ID,
		Info:          tblInfo,
		PageCount:     pageCount,
		IOCostPerPage: ioCostPerPage,
	}

	mins, maxs, err := scanColumnBounds(ctx, store, tblInfo)
	if err != nil {
		return nil, errors.Trace(err)
	}

	t.columns = make([]Histogram, len(tblInfo.Columns))
	for i, col := range tblInfo.Columns {
		switch col.Tp {
		case types.TypeInt:
			minV, maxV := mins[i], maxs[i]
			if minV > maxV {
				// No value was scanned for this column. A degenerate domain
				// keeps construction total; the histogram stays empty.
				minV, maxV = 0, 0
			}
			t.columns[i], err = NewIntHistogram(bucketCount, minV, maxV)
		case types.TypeString:
			t.columns[i], err = NewStringHistogram(bucketCount)
		default:
			return nil, errors.Errorf("unsupported type %s for column %s", col.Tp, col.Name)
		}
		if err != nil {
			return nil, errors.Trace(err)
		}
	}

	if err = t.populate(ctx, store); err != nil {
		return nil, errors.Trace(err)
	}
	logutil.BgLogger().Debug("built table statistics",
		zap.String("table", tblInfo.Name.O),
		zap.Int64("rows", t.Count),
		zap.Int64("pages", t.PageCount))
	return t, nil
}

// scanColumnBounds runs the bounds pass: a full scan tracking the running
// minimum and maximum of every integer column. String columns are skipped,
// their histogram variant buckets over a fixed key domain.
func scanColumnBounds(ctx context.Context, store kv.Storage, tblInfo *model.TableInfo) (mins, maxs []int64, err error) {
	mins = make([]int64, len(tblInfo.Columns))
	maxs = make([]int64, len(tblInfo.Columns))
	for i := range tblInfo.Columns {
		mins[i], maxs[i] = math.MaxInt64, math.MinInt64
	}

	rs, err := store.Scan(ctx, tblInfo.ID)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	defer func() {
		if closeErr := rs.Close(); closeErr != nil && err == nil {
			err = errors.Trace(closeErr)
		}
	}()
	for {
		row, err := rs.Next(ctx)
		if err != nil {
			return nil, nil, errors.Trace(err)
		}
		if row == nil {
			return mins, maxs, nil
		}
		if len(row) != len(tblInfo.Columns) {
			return nil, nil, errors.Errorf("tuple width %d does not match schema width %d of table %s", len(row), len(tblInfo.Columns), tblInfo.Name)
		}
		for i, col := range tblInfo.Columns {
			if col.Tp != types.TypeInt {
				continue
			}
			if row[i].Kind() != types.KindInt64 {
				return nil, nil, errors.Errorf("column %s declared %s but scanned a %s datum", col.Name, col.Tp, row[i].Kind())
			}
			v := row[i].GetInt64()
			if v < mins[i] {
				mins[i] = v
			}
			if v > maxs[i] {
				maxs[i] = v
			}
		}
	}
}

// populate runs the population pass: rescan the table from the start and
// feed every value into its column histogram.
func (t *Table) populate(ctx context.Context, store kv.Storage) (err error) {
	rs, err := store.Scan(ctx, t.TableID)
	if err != nil {
		return errors.Trace(err)
	}
	defer func() {
		if closeErr := rs.Close(); closeErr != nil && err == nil {
			err = errors.Trace(closeErr)
		}
	}()
	for {
		row, err := rs.Next(ctx)
		if err != nil {
			return errors.Trace(err)
		}
		if row == nil {
			return nil
		}
		t.Count++
		for i := range t.columns {
			if err = t.columns[i].AddValue(row[i]); err != nil {
				return errors.Trace(err)
			}
		}
	}
}

// EstimateScanCost estimates the cost of sequentially scanning the whole
// table. Every page costs the same to read regardless of how full it is, and
// seek cost is ignored.
func (t *Table) EstimateScanCost() float64 {
	return float64(t.PageCount) * t.IOCostPerPage
}

// EstimateTableCardinality returns the expected number of tuples surviving a
// predicate with the given selectivity, truncated toward zero. The factor is
// not validated; out of range inputs produce out of range results.
func (t *Table) EstimateTableCardinality(selectivityFactor float64) int64 {
	return int64(float64(t.Count) * selectivityFactor)
}

// EstimateSelectivity estimates the selectivity of the predicate
// `field op constant` on the table. The constant must carry the
// representation the column's histogram variant expects.
func (t *Table) EstimateSelectivity(field int, op opcode.Op, constant types.Datum) (float64, error) {
	if field < 0 || field >= len(t.columns) {
		return 0, errors.Errorf("column offset %d out of range for table %s", field, t.Info.Name)
	}
	return t.columns[field].EstimateSelectivity(op, constant)
}

// AvgSelectivity returns the expected selectivity of `field op v` for an
// unknown v, delegating to the column's histogram.
func (t *Table) AvgSelectivity(field int, op opcode.Op) (float64, error) {
	if field < 0 || field >= len(t.columns) {
		return 0, errors.Errorf("column offset %d out of range for table %s", field, t.Info.Name)
	}
	if !op.IsComparison() {
		return 0, errors.Errorf("unsupported operator %s", op)
	}
	return t.columns[field].AvgSelectivity(), nil
}

// TotalTuples returns the total number of tuples in the table.
func (t *Table) TotalTuples() int64 {
	return t.Count
}

// ColumnHistogram returns the histogram of the column at the given schema
// offset, or nil if the offset is out of range.
func (t *Table) ColumnHistogram(field int) Histogram {
	if field < 0 || field >= len(t.columns) {
		return nil
	}
	return t.columns[field]
}

// String implements Stringer interface.
func (t *Table) String() string {
	strs := make([]string, 0, len(t.columns)+1)
	strs = append(strs, fmt.Sprintf("Table:%d Count:%d Pages:%d", t.TableID, t.Count, t.PageCount))
	for i, col := range t.columns {
		strs = append(strs, fmt.Sprintf("column:%s %s", t.Info.Columns[i].Name, col))
	}
	return strings.Join(strs, "\n")
}
