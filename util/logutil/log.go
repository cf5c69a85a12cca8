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

package logutil

import (
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// Default log settings.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// LogConfig serializes log related config in toml/json.
type LogConfig struct {
	// Level is the log level, one of "debug", "info", "warn", "error", "fatal".
	Level string `toml:"level" json:"level"`
	// Format is the log format, one of "json" or "text".
	Format string `toml:"format" json:"format"`
	// File is the log file name, leave empty to log to stderr.
	File string `toml:"file" json:"file"`
}

// NewLogConfig creates a LogConfig with default settings.
func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level:  DefaultLogLevel,
		Format: DefaultLogFormat,
	}
}

// InitLogger initializes the global logger from the given config.
func InitLogger(cfg *LogConfig) error {
	logger, props, err := log.InitLogger(&log.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
		File:   log.FileLogConfig{Filename: cfg.File},
	})
	if err != nil {
		return errors.Trace(err)
	}
	log.ReplaceGlobals(logger, props)
	return nil
}

// BgLogger returns the default global logger. It is used for background
// jobs such as statistics recomputation.
func BgLogger() *zap.Logger {
	return log.L()
}
