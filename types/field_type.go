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

package types

import "fmt"

// FieldType is the declared type of a column.
type FieldType byte

// Column field types. A table schema only ever declares these two.
const (
	TypeInt FieldType = iota + 1
	TypeString
)

// String implements Stringer interface.
func (ft FieldType) String() string {
	switch ft {
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	}
	return fmt.Sprintf("types.FieldType(%d)", byte(ft))
}

// DatumKind returns the datum kind a value of this field type carries.
func (ft FieldType) DatumKind() Kind {
	switch ft {
	case TypeInt:
		return KindInt64
	case TypeString:
		return KindString
	}
	return KindNull
}
