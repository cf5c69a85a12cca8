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

package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"

	"github.com/featherdb/feather/util/logutil"
)

// Defaults for the statistics section. The cost unit matches the classic
// uniform per-page scan cost model; ten buckets keep column histograms at a
// fixed, small footprint.
const (
	DefIOCostPerPage    = 1000
	DefHistogramBuckets = 10
)

// Config contains configuration options.
type Config struct {
	Statistics Statistics        `toml:"statistics" json:"statistics"`
	Log        logutil.LogConfig `toml:"log" json:"log"`
}

// Statistics is the statistics section of the config.
type Statistics struct {
	// IOCostPerPage is the cost charged for reading one page during a
	// sequential scan.
	IOCostPerPage float64 `toml:"io-cost-per-page" json:"io-cost-per-page"`
	// HistogramBuckets is the number of buckets every column histogram is
	// built with.
	HistogramBuckets int `toml:"histogram-buckets" json:"histogram-buckets"`
}

// NewConfig creates a new config instance with default value.
func NewConfig() *Config {
	return &Config{
		Statistics: Statistics{
			IOCostPerPage:    DefIOCostPerPage,
			HistogramBuckets: DefHistogramBuckets,
		},
		Log: *logutil.NewLogConfig(),
	}
}

// Load loads config options from a toml file.
func (c *Config) Load(confFile string) error {
	_, err := toml.DecodeFile(confFile, c)
	return errors.Trace(err)
}

// Valid checks whether the config is valid.
func (c *Config) Valid() error {
	if c.Statistics.IOCostPerPage <= 0 {
		return errors.Errorf("invalid io-cost-per-page %v", c.Statistics.IOCostPerPage)
	}
	if c.Statistics.HistogramBuckets < 1 {
		return errors.Errorf("invalid histogram-buckets %d, must be at least 1", c.Statistics.HistogramBuckets)
	}
	return nil
}
