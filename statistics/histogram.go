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
	"fmt"
	"strings"

	"github.com/pingcap/errors"

	"github.com/featherdb/feather/opcode"
	"github.com/featherdb/feather/types"
)

// Histogram approximates the value distribution of a single column. It is
// populated by sequential AddValue calls during statistics construction and
// read-only afterwards, so finished histograms are safe for concurrent use.
//
// There are exactly two variants, one per supported column type: integer
// columns get IntHistogram, string columns get StringHistogram.
type Histogram interface {
	// AddValue ingests one column value. Passing a datum of the wrong kind
	// or a value outside the histogram domain is a caller error.
	AddValue(d types.Datum) error
	// EstimateSelectivity returns the estimated fraction of ingested values
	// satisfying `value op d`, as a probability in [0, 1].
	EstimateSelectivity(op opcode.Op, d types.Datum) (float64, error)
	// AvgSelectivity returns the expected selectivity of the column under
	// op when the compared value is unknown.
	AvgSelectivity() float64
	// TotalCount returns the number of ingested values.
	TotalCount() int64

	fmt.Stringer
}

// IntHistogram is a fixed-width histogram over an integer column. It keeps
// one counter per bucket, so both space and per-value ingestion time are
// constant with respect to the number of values seen; raw values are never
// retained.
type IntHistogram struct {
	minValue int64
	maxValue int64
	// bucketWidth is the span, in domain units, each bucket covers. It is
	// rounded up so that bucketCount*bucketWidth >= maxValue-minValue+1 and
	// the largest value always maps to a valid bucket.
	bucketWidth int64
	// frequencies[i] counts the values in the half-open interval
	// [minValue + i*bucketWidth, minValue + (i+1)*bucketWidth).
	frequencies []int64
	totalCount  int64
}

// NewIntHistogram creates an IntHistogram with bucketCount buckets over the
// inclusive domain [minValue, maxValue]. Bounds and bucket count are fixed
// for the histogram's lifetime.
func NewIntHistogram(bucketCount int, minValue, maxValue int64) (*IntHistogram, error) {
	if bucketCount < 1 {
		return nil, errors.Errorf("bucket count %d, must be at least 1", bucketCount)
	}
	if maxValue < minValue {
		return nil, errors.Errorf("invalid histogram domain [%d, %d]", minValue, maxValue)
	}
	totalWidth := maxValue - minValue + 1
	bucketWidth := totalWidth / int64(bucketCount)
	if totalWidth%int64(bucketCount) != 0 {
		bucketWidth++
	}
	return &IntHistogram{
		minValue:    minValue,
		maxValue:    maxValue,
		bucketWidth: bucketWidth,
		frequencies: make([]int64, bucketCount),
	}, nil
}

func (hg *IntHistogram) bucketIndex(v int64) int {
	return int((v - hg.minValue) / hg.bucketWidth)
}

// AddValue implements Histogram interface.
func (hg *IntHistogram) AddValue(d types.Datum) error {
	if d.Kind() != types.KindInt64 {
		return errors.Errorf("cannot add %s datum to int histogram", d.Kind())
	}
	return hg.AddInt64(d.GetInt64())
}

// AddInt64 ingests one integer value. The value must lie in the histogram
// domain declared at construction.
func (hg *IntHistogram) AddInt64(v int64) error {
	if v < hg.minValue || v > hg.maxValue {
		return errors.Errorf("value %d out of histogram domain [%d, %d]", v, hg.minValue, hg.maxValue)
	}
	hg.frequencies[hg.bucketIndex(v)]++
	hg.totalCount++
	return nil
}

// EstimateSelectivity implements Histogram interface.
func (hg *IntHistogram) EstimateSelectivity(op opcode.Op, d types.Datum) (float64, error) {
	if d.Kind() != types.KindInt64 {
		return 0, errors.Errorf("cannot compare %s datum against int histogram", d.Kind())
	}
	return hg.estimateSelectivity(op, d.GetInt64())
}

func (hg *IntHistogram) estimateSelectivity(op opcode.Op, v int64) (float64, error) {
	if !op.IsComparison() {
		return 0, errors.Errorf("unsupported operator %s for int histogram", op)
	}
	if hg.totalCount == 0 {
		// An empty histogram matches nothing, whatever the predicate.
		return 0, nil
	}
	switch op {
	case opcode.EQ:
		return hg.equalFraction(v), nil
	case opcode.NE:
		return 1 - hg.equalFraction(v), nil
	case opcode.LT:
		return hg.lessFraction(v, false), nil
	case opcode.LE:
		return hg.lessFraction(v, true), nil
	case opcode.GT:
		return 1 - hg.lessFraction(v, true), nil
	case opcode.GE:
		return 1 - hg.lessFraction(v, false), nil
	default:
		return 0, errors.Errorf("unsupported operator %s for int histogram", op)
	}
}

// equalFraction estimates the fraction of values equal to v by spreading the
// bucket's count uniformly across the bucket width. The division is done in
// floating point so narrow fractions are not truncated away.
func (hg *IntHistogram) equalFraction(v int64) float64 {
	if v < hg.minValue || v > hg.maxValue {
		return 0
	}
	freq := hg.frequencies[hg.bucketIndex(v)]
	return float64(freq) / float64(hg.bucketWidth) / float64(hg.totalCount)
}

// lessFraction estimates the fraction of values less than v (or less than or
// equal to v when inclusive is set): the shares of every strictly lower
// bucket, plus a linear interpolation within v's own bucket.
func (hg *IntHistogram) lessFraction(v int64, inclusive bool) float64 {
	if v < hg.minValue {
		return 0
	}
	if v > hg.maxValue {
		return 1
	}
	idx := hg.bucketIndex(v)
	leftEdge := hg.minValue + int64(idx)*hg.bucketWidth
	distance := v - leftEdge
	if inclusive {
		distance++
	}
	bucketFraction := float64(distance) / float64(hg.bucketWidth)
	inBucket := bucketFraction * float64(hg.frequencies[idx]) / float64(hg.totalCount)

	var lowerSum int64
	for i := 0; i < idx; i++ {
		lowerSum += hg.frequencies[i]
	}
	return inBucket + float64(lowerSum)/float64(hg.totalCount)
}

// AvgSelectivity implements Histogram interface. It returns a conservative
// constant: without knowing the compared value the histogram cannot do
// better, and overestimating keeps the planner from discarding plans too
// eagerly.
func (hg *IntHistogram) AvgSelectivity() float64 {
	return 1.0
}

// TotalCount implements Histogram interface.
func (hg *IntHistogram) TotalCount() int64 {
	return hg.totalCount
}

// BucketCount returns the number of buckets.
func (hg *IntHistogram) BucketCount() int {
	return len(hg.frequencies)
}

// String implements Stringer interface.
func (hg *IntHistogram) String() string {
	strs := make([]string, 0, len(hg.frequencies)+1)
	strs = append(strs, fmt.Sprintf("int histogram domain:[%d, %d] total:%d", hg.minValue, hg.maxValue, hg.totalCount))
	for i, freq := range hg.frequencies {
		lower := hg.minValue + int64(i)*hg.bucketWidth
		upper := lower + hg.bucketWidth - 1
		if upper > hg.maxValue {
			upper = hg.maxValue
		}
		strs = append(strs, fmt.Sprintf("num: %d\tlower_bound: %d\tupper_bound: %d", freq, lower, upper))
	}
	return strings.Join(strs, "\n")
}
