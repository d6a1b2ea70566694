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

package memo

import (
	"github.com/dgraph-io/ristretto"
	"github.com/pingcap/errors"
)

// RistrettoCache adapts an admission-controlled ristretto cache to the
// Cache interface. The key type must be hashable by ristretto (strings,
// integers, byte slices).
//
// Unlike the other implementations, storage is best-effort: a Put can be
// dropped by admission and a stored value can be evicted under memory
// pressure. A memoizer on top stays correct, it merely recomputes on a
// miss, so the call-at-most-once property does not hold here.
type RistrettoCache[K any, V any] struct {
	cache *ristretto.Cache
}

// NewRistrettoCache creates a cache bounded to roughly maxEntries values.
func NewRistrettoCache[K any, V any](maxEntries int64) (*RistrettoCache[K, V], error) {
	if maxEntries <= 0 {
		return nil, errors.Errorf("ristretto cache needs a positive entry bound, got %d", maxEntries)
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &RistrettoCache[K, V]{cache: cache}, nil
}

// Get implements Cache.
func (c *RistrettoCache[K, V]) Get(key K) (V, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

// Put implements Cache.
func (c *RistrettoCache[K, V]) Put(key K, value V) {
	c.cache.Set(key, value, 1)
}
