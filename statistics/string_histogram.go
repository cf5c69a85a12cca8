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
	"github.com/pingcap/errors"

	"github.com/featherdb/feather/opcode"
	"github.com/featherdb/feather/types"
)

// stringKeyMin and stringKeyMax bound the integer keys stringKey can
// produce: the empty string and "zzzz" respectively.
const (
	stringKeyMin int64 = 0
	stringKeyMax int64 = 'z'<<24 | 'z'<<16 | 'z'<<8 | 'z'
)

// stringKey packs the first four bytes of s big-endian into an integer,
// clamped to [stringKeyMin, stringKeyMax]. Keys preserve the lexicographic
// order of their prefixes, which is what makes range estimates on the
// delegate integer histogram meaningful.
func stringKey(s string) int64 {
	var v int64
	for i := 3; i >= 0; i-- {
		if len(s) > i {
			v += int64(s[i]) << uint((3-i)*8)
		}
	}
	if v < stringKeyMin {
		v = stringKeyMin
	} else if v > stringKeyMax {
		v = stringKeyMax
	}
	return v
}

// StringHistogram is a fixed-width histogram over a string column. It maps
// every string to an integer key derived from its four-byte prefix and
// delegates to an IntHistogram over the full key domain, so the domain never
// has to be discovered by scanning.
type StringHistogram struct {
	hist *IntHistogram
}

// NewStringHistogram creates a StringHistogram with bucketCount buckets.
func NewStringHistogram(bucketCount int) (*StringHistogram, error) {
	hist, err := NewIntHistogram(bucketCount, stringKeyMin, stringKeyMax)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &StringHistogram{hist: hist}, nil
}

// AddValue implements Histogram interface.
func (hg *StringHistogram) AddValue(d types.Datum) error {
	if d.Kind() != types.KindString {
		return errors.Errorf("cannot add %s datum to string histogram", d.Kind())
	}
	return hg.AddString(d.GetString())
}

// AddString ingests one string value.
func (hg *StringHistogram) AddString(s string) error {
	return hg.hist.AddInt64(stringKey(s))
}

// EstimateSelectivity implements Histogram interface.
func (hg *StringHistogram) EstimateSelectivity(op opcode.Op, d types.Datum) (float64, error) {
	if d.Kind() != types.KindString {
		return 0, errors.Errorf("cannot compare %s datum against string histogram", d.Kind())
	}
	return hg.hist.estimateSelectivity(op, stringKey(d.GetString()))
}

// AvgSelectivity implements Histogram interface.
func (hg *StringHistogram) AvgSelectivity() float64 {
	return hg.hist.AvgSelectivity()
}

// TotalCount implements Histogram interface.
func (hg *StringHistogram) TotalCount() int64 {
	return hg.hist.TotalCount()
}

// String implements Stringer interface.
func (hg *StringHistogram) String() string {
	return "string " + hg.hist.String()
}
