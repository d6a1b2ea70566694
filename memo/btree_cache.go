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
	"github.com/google/btree"
	"github.com/pingcap/lazysort/util/ordering"
)

const treeCacheDegree = 32

// TreeCache is an ordered-tree-backed cache for any totally ordered key.
type TreeCache[K any, V any] struct {
	tree *btree.BTree
	cmp  ordering.Comparator[K]
}

type treeItem[K any, V any] struct {
	key   K
	value V
	cmp   ordering.Comparator[K]
}

// Less implements btree.Item.
func (it *treeItem[K, V]) Less(than btree.Item) bool {
	return it.cmp(it.key, than.(*treeItem[K, V]).key) < 0
}

// NewTreeCache creates an empty TreeCache ordered by cmp.
func NewTreeCache[K any, V any](cmp ordering.Comparator[K]) *TreeCache[K, V] {
	return &TreeCache[K, V]{tree: btree.New(treeCacheDegree), cmp: cmp}
}

// Get implements Cache.
func (c *TreeCache[K, V]) Get(key K) (V, bool) {
	item := c.tree.Get(&treeItem[K, V]{key: key, cmp: c.cmp})
	if item == nil {
		var zero V
		return zero, false
	}
	return item.(*treeItem[K, V]).value, true
}

// Put implements Cache.
func (c *TreeCache[K, V]) Put(key K, value V) {
	c.tree.ReplaceOrInsert(&treeItem[K, V]{key: key, value: value, cmp: c.cmp})
}

// Len returns the number of stored keys.
func (c *TreeCache[K, V]) Len() int {
	return c.tree.Len()
}
