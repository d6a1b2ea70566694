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

// Package quicksort implements partition schemes and the quick sorts built
// on them: a plain slice sort, a container-agnostic sort that also runs on
// linked lists, a lazily sorting order-statistic selector, and a functional
// stable sort.
package quicksort

import (
	"fmt"

	"github.com/pingcap/lazysort/util/ordering"
)

func checkPartitionLen(n int) {
	if n < 3 {
		panic(fmt.Sprintf("partition needs at least 3 elements, got %d", n))
	}
}

// LomutoPartition scans from left to right around the pivot value.
// For return value p it ensures arr[0:p] < pivot, arr[p] == pivot and
// arr[p+1:] >= pivot. The pivot element may get moved.
func LomutoPartition[T any](arr []T, cmp ordering.Comparator[T], pivotIndex int) int {
	n := len(arr)
	checkPartitionLen(n)

	// move the pivot to the end, then keep its value on the stack
	arr[pivotIndex], arr[n-1] = arr[n-1], arr[pivotIndex]
	pivot := arr[n-1]

	// invariant: arr[0:left] < pivot, arr[left:j] >= pivot
	left := 0
	for j := 0; j < n-1; j++ {
		if cmp(arr[j], pivot) < 0 {
			arr[left], arr[j] = arr[j], arr[left]
			left++
		}
	}

	// move pivot to the separation point
	arr[left], arr[n-1] = arr[n-1], arr[left]
	return left
}

// HoarePartition scans from both sides, resulting in fewer swaps than
// LomutoPartition. For return value p it ensures arr[0:p] <= pivot and
// arr[p:] >= pivot, with both halves non-empty: 0 < p < len(arr).
// Elements equal to the pivot may end up in either half.
// The pivot element may get moved.
func HoarePartition[T any](arr []T, cmp ordering.Comparator[T], pivotIndex int) int {
	n := len(arr)
	checkPartitionLen(n)

	pivot := arr[pivotIndex]

	left, right := 0, n-1
	// invariant: arr[0:left] <= pivot, arr[right+1:] >= pivot
	for {
		for cmp(arr[left], pivot) < 0 {
			left++
		}
		for cmp(arr[right], pivot) > 0 {
			right--
		}
		if left >= right {
			if left == right {
				// arr[left] == pivot here. Return a point that keeps both
				// halves non-empty.
				if left == 0 {
					return left + 1
				}
				return left
			}
			// left == right+1
			return left
		}
		arr[left], arr[right] = arr[right], arr[left]
		left++
		right--
	}
}

// FatPartition is the three-way (Dutch national flag) partition. It returns
// (l, r) where arr[0:l] < pivot, arr[l:r] == pivot and arr[r:] > pivot.
// The left or right region may be empty; the equal region cannot, as the
// pivot is an element of the slice: 0 <= l < r <= len(arr).
//
// The pivot is never copied: the partition tracks the pivot's current index
// while it moves, so the scheme also works for elements whose ordering
// depends on identity. It collapses runs of equal elements, avoiding the
// quadratic behavior of two-way partitions on heavily duplicated input.
func FatPartition[T any](arr []T, cmp ordering.Comparator[T], pivotIndex int) (l, r int) {
	n := len(arr)
	checkPartitionLen(n)

	currPivot := pivotIndex

	left := 0
	right := n - 1
	eq := 0

	// invariant:
	// the "left" region:  arr[0:left] < pivot
	// the "equal" region: arr[left:eq] == pivot
	// the "right" region: arr[right+1:] > pivot
	// arr[eq:right+1] is still unprocessed and shrinks to empty.
	for eq <= right {
		if currPivot == eq {
			// the scan reached the pivot itself: equal by definition
			eq++
			continue
		}
		c := cmp(arr[eq], arr[currPivot])
		switch {
		case c < 0:
			if left != eq {
				arr[eq], arr[left] = arr[left], arr[eq]
				if left == currPivot {
					currPivot = eq
				}
			}
			left++
			eq++
		case c == 0:
			eq++
		default:
			arr[eq], arr[right] = arr[right], arr[eq]
			if right == currPivot {
				currPivot = eq
			}
			right--
		}
	}

	if eq != right+1 {
		panic(fmt.Sprintf("fat partition scan ended inconsistently: eq=%d right=%d", eq, right))
	}
	return left, eq
}
