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

package opcode

import "fmt"

// Op is the comparison operator of a predicate.
type Op int

// Comparison operators.
const (
	EQ Op = iota + 1
	NE
	LT
	LE
	GT
	GE
)

var ops = map[Op]string{
	EQ: "eq",
	NE: "ne",
	LT: "lt",
	LE: "le",
	GT: "gt",
	GE: "ge",
}

// IsComparison reports whether o is one of the six comparison operators.
func (o Op) IsComparison() bool {
	_, ok := ops[o]
	return ok
}

// String implements Stringer interface.
func (o Op) String() string {
	str, ok := ops[o]
	if !ok {
		return fmt.Sprintf("opcode.Op(%d)", int(o))
	}
	return str
}
