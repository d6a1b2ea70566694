// Copyright 2022 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package logutil

import (
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// DefaultLogLevel is the level InitLogger uses when given an empty level.
const DefaultLogLevel = "info"

// InitLogger initializes the global logger with the given level.
func InitLogger(level string) error {
	if level == "" {
		level = DefaultLogLevel
	}
	logger, props, err := log.InitLogger(&log.Config{Level: level})
	if err != nil {
		return errors.Trace(err)
	}
	log.ReplaceGlobals(logger, props)
	return nil
}

// BgLogger returns the default global logger.
func BgLogger() *zap.Logger {
	return log.L()
}
