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

package model

import (
	"strings"

	"github.com/featherdb/feather/types"
)

// CIStr is case insensitive string. The original form is kept for display,
// the lowered form is used for lookup.
type CIStr struct {
	O string `json:"O"` // Original string.
	L string `json:"L"` // Lower case string.
}

// String implements fmt.Stringer interface.
func (s CIStr) String() string {
	return s.O
}

// NewCIStr creates a new CIStr.
func NewCIStr(s string) CIStr {
	return CIStr{O: s, L: strings.ToLower(s)}
}

// ColumnInfo describes one column of a table schema.
type ColumnInfo struct {
	ID     int64           `json:"id"`
	Name   CIStr           `json:"name"`
	Offset int             `json:"offset"`
	Tp     types.FieldType `json:"type"`
}

// TableInfo describes a table in the catalog.
// Columns are listed in the order in which they appear in the schema.
type TableInfo struct {
	ID      int64         `json:"id"`
	Name    CIStr         `json:"name"`
	Columns []*ColumnInfo `json:"cols"`
}

// FindColumnByName finds the column with the given (case insensitive) name.
func (t *TableInfo) FindColumnByName(name string) *ColumnInfo {
	lowered := strings.ToLower(name)
	for _, col := range t.Columns {
		if col.Name.L == lowered {
			return col
		}
	}
	return nil
}
