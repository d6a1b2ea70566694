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

package config

import (
	"runtime"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
)

// Config covers the tunables of the sorting cores and the demo command.
type Config struct {
	// Parallelism is the worker count for the concurrent merge sort.
	// 0 means GOMAXPROCS.
	Parallelism int `toml:"parallelism"`
	// SequentialCutoffFactor f makes the concurrent sort fall back to the
	// sequential one when len(arr) <= f * parallelism.
	SequentialCutoffFactor int `toml:"sequential-cutoff-factor"`
	// MemQuota limits the bytes the concurrent sort may stage in per-worker
	// buffers before its tracker action fires. 0 selects 80% of the system
	// memory.
	MemQuota int64 `toml:"mem-quota"`
	// LogLevel is the zap log level used by InitLogger.
	LogLevel string `toml:"log-level"`
}

var defaultConf = Config{
	Parallelism:            0,
	SequentialCutoffFactor: 200,
	MemQuota:               0,
	LogLevel:               "info",
}

var globalConf atomic.Value

func init() {
	conf := defaultConf
	globalConf.Store(&conf)
}

// GetGlobalConfig returns the global configuration.
// It should store configuration from command line and configuration file.
func GetGlobalConfig() *Config {
	return globalConf.Load().(*Config)
}

// StoreGlobalConfig replaces the global configuration.
func StoreGlobalConfig(conf *Config) {
	globalConf.Store(conf)
}

// Load reads the configuration from a TOML file and stores it globally.
// Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	conf := defaultConf
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	StoreGlobalConfig(&conf)
	return &conf, nil
}

// Validate checks the configuration for nonsense values.
func (c *Config) Validate() error {
	if c.Parallelism < 0 {
		return errors.Errorf("parallelism cannot be negative, got %d", c.Parallelism)
	}
	if c.SequentialCutoffFactor <= 0 {
		return errors.Errorf("sequential-cutoff-factor must be positive, got %d", c.SequentialCutoffFactor)
	}
	if c.MemQuota < 0 {
		return errors.Errorf("mem-quota cannot be negative, got %d", c.MemQuota)
	}
	return nil
}

// EffectiveParallelism resolves Parallelism, substituting GOMAXPROCS for 0.
func (c *Config) EffectiveParallelism() int {
	if c.Parallelism > 0 {
		return c.Parallelism
	}
	return runtime.GOMAXPROCS(0)
}
