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

package infoschema

import (
	"sort"
	"strings"

	"github.com/featherdb/feather/model"
)

// InfoSchema is the catalog capability the statistics subsystem consumes.
// Implementations must be safe for concurrent readers.
type InfoSchema interface {
	// AllTables returns every table known to the catalog.
	AllTables() []*model.TableInfo
	// TableByID finds the table with the given ID.
	TableByID(id int64) (*model.TableInfo, bool)
	// TableByName finds the table with the given (case insensitive) name.
	TableByName(name string) (*model.TableInfo, bool)
}

type infoSchema struct {
	byID   map[int64]*model.TableInfo
	byName map[string]*model.TableInfo
}

// MockInfoSchema only serves for test.
func MockInfoSchema(tbls []*model.TableInfo) InfoSchema {
	return NewInfoSchema(tbls)
}

// NewInfoSchema builds an immutable InfoSchema over the given tables.
func NewInfoSchema(tbls []*model.TableInfo) InfoSchema {
	is := &infoSchema{
		byID:   make(map[int64]*model.TableInfo, len(tbls)),
		byName: make(map[string]*model.TableInfo, len(tbls)),
	}
	for _, tbl := range tbls {
		is.byID[tbl.ID] = tbl
		is.byName[tbl.Name.L] = tbl
	}
	return is
}

func (is *infoSchema) AllTables() []*model.TableInfo {
	tbls := make([]*model.TableInfo, 0, len(is.byID))
	for _, tbl := range is.byID {
		tbls = append(tbls, tbl)
	}
	// Deterministic iteration order keeps recomputation logs stable.
	sort.Slice(tbls, func(i, j int) bool { return tbls[i].ID < tbls[j].ID })
	return tbls
}

func (is *infoSchema) TableByID(id int64) (*model.TableInfo, bool) {
	tbl, ok := is.byID[id]
	return tbl, ok
}

func (is *infoSchema) TableByName(name string) (*model.TableInfo, bool) {
	tbl, ok := is.byName[strings.ToLower(name)]
	return tbl, ok
}
