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

import (
	"fmt"
	"strings"
)

// Kind is the discriminator of the value stored in a Datum.
type Kind byte

// Datum kinds.
const (
	KindNull Kind = iota
	KindInt64
	KindString
)

// String implements Stringer interface.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt64:
		return "int64"
	case KindString:
		return "string"
	}
	return fmt.Sprintf("types.Kind(%d)", byte(k))
}

// Datum is a typed column value. The zero value is the null datum.
type Datum struct {
	k Kind
	i int64
	s string
}

// NewIntDatum creates a Datum holding an int64 value.
func NewIntDatum(i int64) Datum {
	return Datum{k: KindInt64, i: i}
}

// NewStringDatum creates a Datum holding a string value.
func NewStringDatum(s string) Datum {
	return Datum{k: KindString, s: s}
}

// Kind gets the kind of the datum.
func (d Datum) Kind() Kind {
	return d.k
}

// GetInt64 gets the int64 value. The caller must have checked the kind.
func (d Datum) GetInt64() int64 {
	return d.i
}

// GetString gets the string value. The caller must have checked the kind.
func (d Datum) GetString() string {
	return d.s
}

// IsNull checks if the datum is null.
func (d Datum) IsNull() bool {
	return d.k == KindNull
}

// String implements Stringer interface, for debugging.
func (d Datum) String() string {
	switch d.k {
	case KindInt64:
		return fmt.Sprintf("KindInt64 %d", d.i)
	case KindString:
		return fmt.Sprintf("KindString %q", d.s)
	}
	return "KindNull"
}

// DatumRow is one scanned tuple, one datum per column in schema order.
type DatumRow []Datum

// String implements Stringer interface.
func (r DatumRow) String() string {
	strs := make([]string, 0, len(r))
	for _, d := range r {
		strs = append(strs, d.String())
	}
	return "(" + strings.Join(strs, ", ") + ")"
}
