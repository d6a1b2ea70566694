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

package quicksort

import (
	"github.com/pingcap/lazysort/util/linkedlist"
	"github.com/pingcap/lazysort/util/ordering"
)

// Container is the capability set the container-agnostic quick sort needs.
// The index type I is an integer offset for indexable sequences and a handle
// for linked containers. As the sort works on half-open ranges, I must be
// able to represent the virtual slot after the last element.
type Container[E any, I comparable] interface {
	// Swap exchanges the elements at two indices.
	Swap(a, b I)
	// Get reads the element at an index.
	Get(i I) E
	// Next returns the index after i.
	Next(i I) I
	// Prev returns the index before i.
	Prev(i I) I
	// SelectPivot picks a pivot index inside [begin, end).
	SelectPivot(begin, end I, cmp ordering.Comparator[E]) I
}

// SliceContainer adapts a slice to the Container interface with plain
// integer indices.
type SliceContainer[E any] struct {
	Arr []E
}

// Swap implements Container.
func (c SliceContainer[E]) Swap(a, b int) {
	c.Arr[a], c.Arr[b] = c.Arr[b], c.Arr[a]
}

// Get implements Container.
func (c SliceContainer[E]) Get(i int) E {
	return c.Arr[i]
}

// Next implements Container.
func (c SliceContainer[E]) Next(i int) int {
	return i + 1
}

// Prev implements Container.
func (c SliceContainer[E]) Prev(i int) int {
	return i - 1
}

// SelectPivot implements Container using the median of three.
func (c SliceContainer[E]) SelectPivot(begin, end int, cmp ordering.Comparator[E]) int {
	return ordering.MedianOfThreePivot(c.Arr[begin:end], cmp) + begin
}

// ListIndex is the index type of ListContainer. A linked-list cursor cannot
// address the slot after the last element, so the index is a tagged value:
// either a cursor or the dedicated after-last sentinel.
type ListIndex struct {
	Cursor    linkedlist.Cursor
	AfterLast bool
}

// AfterLastIndex is the index one past the last element.
func AfterLastIndex() ListIndex {
	return ListIndex{AfterLast: true}
}

// CursorIndex wraps a cursor into a ListIndex.
func CursorIndex(c linkedlist.Cursor) ListIndex {
	return ListIndex{Cursor: c}
}

// ListContainer adapts a linked list to the Container interface.
type ListContainer[E any] struct {
	List *linkedlist.List[E]
}

// Swap implements Container.
func (c ListContainer[E]) Swap(a, b ListIndex) {
	if a.AfterLast || b.AfterLast {
		panic("cannot swap with the after-last index")
	}
	c.List.Swap(a.Cursor, b.Cursor)
}

// Get implements Container.
func (c ListContainer[E]) Get(i ListIndex) E {
	if i.AfterLast {
		panic("cannot get the after-last index")
	}
	return c.List.Get(i.Cursor)
}

// Next implements Container.
func (c ListContainer[E]) Next(i ListIndex) ListIndex {
	if i.AfterLast {
		panic("cannot advance the after-last index")
	}
	next, ok := c.List.Next(i.Cursor)
	if !ok {
		return AfterLastIndex()
	}
	return CursorIndex(next)
}

// Prev implements Container. The predecessor of the after-last index is the
// last element.
func (c ListContainer[E]) Prev(i ListIndex) ListIndex {
	if i.AfterLast {
		back, ok := c.List.Back()
		if !ok {
			panic("after-last index of an empty list has no predecessor")
		}
		return CursorIndex(back)
	}
	prev, ok := c.List.Prev(i.Cursor)
	if !ok {
		panic("the first element has no predecessor")
	}
	return CursorIndex(prev)
}

// SelectPivot implements Container. It uses the first element of the range:
// reaching the middle of a linked-list range is slow.
func (c ListContainer[E]) SelectPivot(begin, end ListIndex, cmp ordering.Comparator[E]) ListIndex {
	return begin
}
