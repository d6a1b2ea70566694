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

// Package memo provides a cache abstraction with several backings and the
// harness that memoizes recursive functions written in fixed-point form.
package memo

import (
	"fmt"

	"github.com/cznic/mathutil"
	"github.com/pingcap/lazysort/util/matrix"
)

// Cache maps keys to values. Get reports whether the key was stored before.
// Implementations return values, never references into their own storage,
// so a returned value can be used while the cache is written to during
// recursion. Put may overwrite, though well-behaved callers do not.
type Cache[K any, V any] interface {
	Get(key K) (V, bool)
	Put(key K, value V)
}

type slot[V any] struct {
	value V
	ok    bool
}

// VectorCache is an integer-keyed cache over an auto-growing backing slice.
// Putting past the current length grows the slice, filling the gap with
// absent markers.
type VectorCache[V any] struct {
	slots []slot[V]
}

// NewVectorCache creates an empty VectorCache.
func NewVectorCache[V any]() *VectorCache[V] {
	return &VectorCache[V]{}
}

// Get implements Cache.
func (c *VectorCache[V]) Get(key int) (V, bool) {
	if key < 0 || key >= len(c.slots) {
		var zero V
		return zero, false
	}
	s := c.slots[key]
	return s.value, s.ok
}

// Put implements Cache.
func (c *VectorCache[V]) Put(key int, value V) {
	if key < 0 {
		panic(fmt.Sprintf("vector cache key cannot be negative: %d", key))
	}
	if key >= len(c.slots) {
		grown := make([]slot[V], mathutil.Max(key+1, 2*len(c.slots)))
		copy(grown, c.slots)
		c.slots = grown[:key+1]
	}
	c.slots[key] = slot[V]{value: value, ok: true}
}

// Len returns the backing length, including absent slots.
func (c *VectorCache[V]) Len() int {
	return len(c.slots)
}

// MapCache is a hash-backed cache for any comparable key.
type MapCache[K comparable, V any] map[K]V

// NewMapCache creates an empty MapCache.
func NewMapCache[K comparable, V any]() MapCache[K, V] {
	return make(MapCache[K, V])
}

// Get implements Cache.
func (c MapCache[K, V]) Get(key K) (V, bool) {
	v, ok := c[key]
	return v, ok
}

// Put implements Cache.
func (c MapCache[K, V]) Put(key K, value V) {
	c[key] = value
}

// RowCol keys a MatrixCache.
type RowCol struct {
	Row int
	Col int
}

// MatrixCache is a dense fixed-size cache keyed by (row, col). It never
// grows; keys outside the construction bounds fault.
type MatrixCache[V any] struct {
	cells *matrix.Matrix2D[slot[V]]
}

// NewMatrixCache creates a rows x cols cache with every slot absent.
func NewMatrixCache[V any](rows, cols int) *MatrixCache[V] {
	return &MatrixCache[V]{cells: matrix.New[slot[V]](rows, cols)}
}

// Get implements Cache.
func (c *MatrixCache[V]) Get(key RowCol) (V, bool) {
	s := c.cells.At(key.Row, key.Col)
	return s.value, s.ok
}

// Put implements Cache.
func (c *MatrixCache[V]) Put(key RowCol, value V) {
	c.cells.Set(key.Row, key.Col, slot[V]{value: value, ok: true})
}

// KeyMappedCache composes a pure key projection with a backing cache.
// Typical use: mapping sparse integer keys into the compact range of a
// VectorCache, or pair keys onto a MatrixCache.
type KeyMappedCache[K any, M any, V any] struct {
	backing Cache[M, V]
	mapKey  func(K) M
}

// NewKeyMappedCache wraps backing behind the key projection.
func NewKeyMappedCache[K any, M any, V any](backing Cache[M, V], mapKey func(K) M) *KeyMappedCache[K, M, V] {
	return &KeyMappedCache[K, M, V]{backing: backing, mapKey: mapKey}
}

// Get implements Cache.
func (c *KeyMappedCache[K, M, V]) Get(key K) (V, bool) {
	return c.backing.Get(c.mapKey(key))
}

// Put implements Cache.
func (c *KeyMappedCache[K, M, V]) Put(key K, value V) {
	c.backing.Put(c.mapKey(key), value)
}
