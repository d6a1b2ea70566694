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

// Package mergesort implements stable merge primitives, a sequential merge
// sort built on them, and a concurrent multi-way merge sort that partitions
// work across workers.
package mergesort

import (
	"container/heap"

	"github.com/pingcap/lazysort/util/ordering"
)

// ResultConsumer receives merged elements. index is the position of the
// element in the merged output, counted from 0.
type ResultConsumer[T any] func(index int, element T)

// MergeTwo merges two sorted slices. On equal elements the one from arr1 is
// emitted first, which keeps the merge stable when arr1 precedes arr2.
func MergeTwo[T any](arr1, arr2 []T, cmp ordering.Comparator[T], consume ResultConsumer[T]) {
	i1, i2 := 0, 0
	for i1 < len(arr1) && i2 < len(arr2) {
		// emitting arr2[i2] on equality would be wrong: a later element of
		// arr1 may still be equal to it and must come out first
		if cmp(arr1[i1], arr2[i2]) <= 0 {
			consume(i1+i2, arr1[i1])
			i1++
		} else {
			consume(i1+i2, arr2[i2])
			i2++
		}
	}
	for i1 < len(arr1) {
		consume(i1+i2, arr1[i1])
		i1++
	}
	for i2 < len(arr2) {
		consume(i1+i2, arr2[i2])
		i2++
	}
}

// MergeMultipleNaive merges sorted slices by scanning every head for the
// minimum on each step. An element equal to the current minimum never
// replaces it, so earlier slices win ties and the merge is stable.
func MergeMultipleNaive[T any](arrs [][]T, cmp ordering.Comparator[T], consume ResultConsumer[T]) {
	indices := make([]int, len(arrs))
	placing := 0
	for {
		minArr := -1
		for arrIndex, arr := range arrs {
			i := indices[arrIndex]
			if i >= len(arr) {
				continue
			}
			if minArr < 0 || cmp(arr[i], arrs[minArr][indices[minArr]]) < 0 {
				minArr = arrIndex
			}
		}
		if minArr < 0 {
			return
		}
		consume(placing, arrs[minArr][indices[minArr]])
		indices[minArr]++
		placing++
	}
}

// multiWayMerge is the heap of per-slice read frontiers used by
// MergeMultiple. It implements heap.Interface; pushing is never needed
// because the head entry is replaced in place and fixed.
type multiWayMerge[T any] struct {
	lessElement func(a, b mergeElement[T]) bool
	elements    []mergeElement[T]
}

type mergeElement[T any] struct {
	element  T
	arrIndex int
	consumed int
}

func (h *multiWayMerge[T]) Less(i, j int) bool {
	return h.lessElement(h.elements[i], h.elements[j])
}

func (h *multiWayMerge[T]) Len() int {
	return len(h.elements)
}

func (h *multiWayMerge[T]) Push(x interface{}) {
	// Should never be called.
}

func (h *multiWayMerge[T]) Pop() interface{} {
	h.elements = h.elements[:len(h.elements)-1]
	return nil
}

func (h *multiWayMerge[T]) Swap(i, j int) {
	h.elements[i], h.elements[j] = h.elements[j], h.elements[i]
}

// MergeMultiple merges sorted slices through a min-heap of the slice heads.
// The heap is not inherently stable, so entries order first by the
// comparator and then by source slice index ascending; with sources laid
// out in input order the merge is stable.
func MergeMultiple[T any](arrs [][]T, cmp ordering.Comparator[T], consume ResultConsumer[T]) {
	h := &multiWayMerge[T]{
		lessElement: func(a, b mergeElement[T]) bool {
			c := cmp(a.element, b.element)
			if c != 0 {
				return c < 0
			}
			return a.arrIndex < b.arrIndex
		},
		elements: make([]mergeElement[T], 0, len(arrs)),
	}
	for arrIndex, arr := range arrs {
		if len(arr) > 0 {
			h.elements = append(h.elements, mergeElement[T]{element: arr[0], arrIndex: arrIndex, consumed: 1})
		}
	}
	heap.Init(h)

	placing := 0
	for h.Len() > 0 {
		top := h.elements[0]
		consume(placing, top.element)
		placing++
		src := arrs[top.arrIndex]
		if top.consumed >= len(src) {
			heap.Remove(h, 0)
			continue
		}
		top.element = src[top.consumed]
		top.consumed++
		h.elements[0] = top
		heap.Fix(h, 0)
	}
}
