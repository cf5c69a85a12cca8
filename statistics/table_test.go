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
	"math"
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"

	"github.com/featherdb/feather/kv"
	"github.com/featherdb/feather/model"
	"github.com/featherdb/feather/opcode"
	"github.com/featherdb/feather/types"
	"github.com/featherdb/feather/util/mock"
)

func newTestTableInfo(id int64, name string) *model.TableInfo {
	return &model.TableInfo{
		ID:   id,
		Name: model.NewCIStr(name),
		Columns: []*model.ColumnInfo{
			{ID: 1, Name: model.NewCIStr("id"), Offset: 0, Tp: types.TypeInt},
			{ID: 2, Name: model.NewCIStr("name"), Offset: 1, Tp: types.TypeString},
		},
	}
}

func testRows(n int) []types.DatumRow {
	names := []string{"alice", "bob", "carol", "dave", "erin"}
	rows := make([]types.DatumRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, types.DatumRow{
			types.NewIntDatum(int64(i * 10)),
			types.NewStringDatum(names[i%len(names)]),
		})
	}
	return rows
}

func TestBuildTable(t *testing.T) {
	tblInfo := newTestTableInfo(1, "t")
	store := mock.NewStore()
	store.AddTable(1, 4, testRows(10))

	tbl, err := BuildTable(context.Background(), store, tblInfo, 1000, 10)
	require.NoError(t, err)
	require.Equal(t, int64(10), tbl.TotalTuples())
	require.Equal(t, int64(4), tbl.PageCount)
	require.Equal(t, 4000.0, tbl.EstimateScanCost())

	// Integer column: ids are 0,10,...,90, ten buckets over [0, 90].
	sel, err := tbl.EstimateSelectivity(0, opcode.LE, types.NewIntDatum(91))
	require.NoError(t, err)
	require.InDelta(t, 1.0, sel, 1e-9)
	sel, err = tbl.EstimateSelectivity(0, opcode.GE, types.NewIntDatum(0))
	require.NoError(t, err)
	require.InDelta(t, 1.0, sel, 1e-9)
	sel, err = tbl.EstimateSelectivity(0, opcode.LT, types.NewIntDatum(0))
	require.NoError(t, err)
	require.InDelta(t, 0.0, sel, 1e-9)

	// String column dispatches to the string variant.
	sel, err = tbl.EstimateSelectivity(1, opcode.EQ, types.NewStringDatum("alice"))
	require.NoError(t, err)
	require.Greater(t, sel, 0.0)

	avg, err := tbl.AvgSelectivity(1, opcode.EQ)
	require.NoError(t, err)
	require.Equal(t, 1.0, avg)
}

func TestEstimateTableCardinality(t *testing.T) {
	tblInfo := newTestTableInfo(1, "t")
	store := mock.NewStore()
	store.AddTable(1, 2, testRows(3))

	tbl, err := BuildTable(context.Background(), store, tblInfo, 1000, 10)
	require.NoError(t, err)

	require.Equal(t, tbl.TotalTuples(), tbl.EstimateTableCardinality(1.0))
	require.Equal(t, int64(0), tbl.EstimateTableCardinality(0.0))
	// Truncates toward zero.
	require.Equal(t, int64(1), tbl.EstimateTableCardinality(0.5))
	// The factor is deliberately not validated.
	require.Equal(t, int64(6), tbl.EstimateTableCardinality(2.0))
	require.Equal(t, int64(-3), tbl.EstimateTableCardinality(-1.0))
}

func TestScanCostLinearInPages(t *testing.T) {
	for _, pages := range []int64{1, 2, 8, 100} {
		tblInfo := newTestTableInfo(1, "t")
		store := mock.NewStore()
		store.AddTable(1, pages, testRows(2))
		tbl, err := BuildTable(context.Background(), store, tblInfo, 50, 10)
		require.NoError(t, err)
		require.Equal(t, float64(pages)*50, tbl.EstimateScanCost())
	}
}

func TestBuildTableZeroRows(t *testing.T) {
	tblInfo := newTestTableInfo(1, "empty")
	store := mock.NewStore()
	store.AddTable(1, 3, nil)

	tbl, err := BuildTable(context.Background(), store, tblInfo, 1000, 10)
	require.NoError(t, err)
	require.Equal(t, int64(0), tbl.TotalTuples())
	require.Equal(t, int64(0), tbl.EstimateTableCardinality(1.0))
	require.Equal(t, 3000.0, tbl.EstimateScanCost())

	for _, op := range []opcode.Op{opcode.EQ, opcode.NE, opcode.LT, opcode.LE, opcode.GT, opcode.GE} {
		sel, err := tbl.EstimateSelectivity(0, op, types.NewIntDatum(7))
		require.NoError(t, err)
		require.False(t, math.IsNaN(sel))
	}
	avg, err := tbl.AvgSelectivity(0, opcode.EQ)
	require.NoError(t, err)
	require.False(t, math.IsNaN(avg))
}

func TestTableContractViolations(t *testing.T) {
	tblInfo := newTestTableInfo(1, "t")
	store := mock.NewStore()
	store.AddTable(1, 1, testRows(5))

	tbl, err := BuildTable(context.Background(), store, tblInfo, 1000, 10)
	require.NoError(t, err)

	// Constant representation must match the column's declared type.
	_, err = tbl.EstimateSelectivity(0, opcode.EQ, types.NewStringDatum("x"))
	require.Error(t, err)
	_, err = tbl.EstimateSelectivity(1, opcode.EQ, types.NewIntDatum(1))
	require.Error(t, err)

	_, err = tbl.EstimateSelectivity(2, opcode.EQ, types.NewIntDatum(1))
	require.Error(t, err)
	_, err = tbl.EstimateSelectivity(-1, opcode.EQ, types.NewIntDatum(1))
	require.Error(t, err)
	_, err = tbl.AvgSelectivity(9, opcode.EQ)
	require.Error(t, err)
	_, err = tbl.AvgSelectivity(0, opcode.Op(42))
	require.Error(t, err)
	require.Nil(t, tbl.ColumnHistogram(9))
}

func TestBuildTableUnsupportedColumnType(t *testing.T) {
	tblInfo := &model.TableInfo{
		ID:   1,
		Name: model.NewCIStr("t"),
		Columns: []*model.ColumnInfo{
			{ID: 1, Name: model.NewCIStr("blob"), Offset: 0, Tp: types.FieldType(9)},
		},
	}
	store := mock.NewStore()
	store.AddTable(1, 1, nil)

	_, err := BuildTable(context.Background(), store, tblInfo, 1000, 10)
	require.Error(t, err)
}

// errStore fails every scan, standing in for a broken storage collaborator.
type errStore struct{}

func (errStore) PageCount(tableID int64) (int64, error) {
	return 1, nil
}

func (errStore) Scan(ctx context.Context, tableID int64) (kv.RecordSet, error) {
	return nil, errors.New("disk gone")
}

func TestBuildTableScanFailure(t *testing.T) {
	tblInfo := newTestTableInfo(1, "t")
	_, err := BuildTable(context.Background(), errStore{}, tblInfo, 1000, 10)
	require.Error(t, err)

	// Unknown table surfaces the storage error too.
	_, err = BuildTable(context.Background(), mock.NewStore(), tblInfo, 1000, 10)
	require.Error(t, err)
}

func TestBuildTableSchemaMismatch(t *testing.T) {
	tblInfo := newTestTableInfo(1, "t")
	store := mock.NewStore()

	// Too narrow tuples.
	store.AddTable(1, 1, []types.DatumRow{{types.NewIntDatum(1)}})
	_, err := BuildTable(context.Background(), store, tblInfo, 1000, 10)
	require.Error(t, err)

	// Value kind disagrees with the declared column type.
	store.AddTable(1, 1, []types.DatumRow{{types.NewStringDatum("x"), types.NewStringDatum("y")}})
	_, err = BuildTable(context.Background(), store, tblInfo, 1000, 10)
	require.Error(t, err)
}
