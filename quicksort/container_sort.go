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
	"fmt"

	"github.com/pingcap/lazysort/util/ordering"
)

// PartitionResult describes a three-way partition of a container range:
// the left part is [rangeBegin, Left), the right part is [Right, rangeEnd).
type PartitionResult[I comparable] struct {
	Left          I
	Right         I
	LeftPartSize  int
	RightPartSize int
}

// FatPartitionContainer runs the three-way partition through the Container
// interface. Opaque indices only support equality, not order comparison, so
// the scan progress is tracked with three region-size counters; the loop
// condition eq <= right becomes leftAndEqSize + 1 + rightSize <= rangeSize.
func FatPartitionContainer[E any, I comparable](
	c Container[E, I],
	cmp ordering.Comparator[E],
	rangeBegin, rangeEnd I,
	initialPivot I,
	rangeSize int,
) PartitionResult[I] {
	if rangeBegin == rangeEnd {
		return PartitionResult[I]{Left: rangeBegin, Right: rangeEnd}
	}

	currPivot := initialPivot

	left := rangeBegin
	right := c.Prev(rangeEnd)
	eq := rangeBegin

	leftSize := 0
	rightSize := 0
	leftAndEqSize := 0

	for leftAndEqSize+1+rightSize <= rangeSize {
		if currPivot == eq {
			eq = c.Next(eq)
			leftAndEqSize++
			continue
		}
		cr := cmp(c.Get(eq), c.Get(currPivot))
		switch {
		case cr < 0:
			if left != eq {
				c.Swap(eq, left)
				if left == currPivot {
					currPivot = eq
				}
			}
			left = c.Next(left)
			eq = c.Next(eq)
			leftSize++
			leftAndEqSize++
		case cr == 0:
			eq = c.Next(eq)
			leftAndEqSize++
		default:
			c.Swap(eq, right)
			if right == currPivot {
				currPivot = eq
			}
			right = c.Prev(right)
			rightSize++
		}
	}

	if eq != c.Next(right) {
		panic("container partition scan ended inconsistently")
	}

	resultRight := c.Next(right)
	if left == resultRight {
		panic(fmt.Sprintf("container partition produced an empty equal region (size %d)", rangeSize))
	}
	return PartitionResult[I]{
		Left:          left,
		Right:         resultRight,
		LeftPartSize:  leftSize,
		RightPartSize: rightSize,
	}
}

// SortContainer quick-sorts the elements addressable by [rangeBegin,
// rangeEnd) of known size through the Container interface.
func SortContainer[E any, I comparable](
	c Container[E, I],
	cmp ordering.Comparator[E],
	rangeBegin, rangeEnd I,
	rangeSize int,
) {
	if rangeSize <= 1 {
		return
	}

	if rangeSize == 2 {
		i0 := rangeBegin
		i1 := c.Next(rangeBegin)
		if cmp(c.Get(i0), c.Get(i1)) > 0 {
			c.Swap(i0, i1)
		}
		return
	}

	initialPivot := c.SelectPivot(rangeBegin, rangeEnd, cmp)

	res := FatPartitionContainer(c, cmp, rangeBegin, rangeEnd, initialPivot, rangeSize)

	SortContainer(c, cmp, rangeBegin, res.Left, res.LeftPartSize)
	SortContainer(c, cmp, res.Right, rangeEnd, res.RightPartSize)
}

// SortList sorts a whole linked-list container.
func SortList[E any](c ListContainer[E], cmp ordering.Comparator[E]) {
	front, ok := c.List.Front()
	if !ok {
		return
	}
	SortContainer[E, ListIndex](c, cmp, CursorIndex(front), AfterLastIndex(), c.List.Len())
}

// SortSlice sorts a whole slice through the container abstraction.
func SortSlice[E any](arr []E, cmp ordering.Comparator[E]) {
	SortContainer[E, int](SliceContainer[E]{Arr: arr}, cmp, 0, len(arr), len(arr))
}
