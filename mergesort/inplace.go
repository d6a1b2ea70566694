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

package mergesort

import (
	"fmt"

	"github.com/pingcap/lazysort/util/ordering"
	"github.com/pingcap/lazysort/util/ranges"
)

// SmartMergeAdjacent merges the two adjacent sorted runs arr[0:sep] and
// arr[sep:] in place. Before merging it trims both ends with binary
// searches: positions of the right run that are >= the left maximum and
// positions of the left run that are <= the right minimum are already
// final. When the trim detects the runs are already in order it returns
// without moving anything.
func SmartMergeAdjacent[T any](arr []T, sep int, cmp ordering.Comparator[T]) {
	n := len(arr)
	if n <= 1 || sep == 0 || sep == n {
		return
	}

	left := arr[:sep]
	right := arr[sep:]

	leftMax := left[sep-1]
	rightMin := right[0]

	// already merged
	if cmp(leftMax, rightMin) <= 0 {
		return
	}

	// arr[rightDelimit:] >= leftMax and stays put. The leftmost search
	// lands on the first element >= leftMax either way.
	rightDelimit := sep + ranges.BinarySearchLeftmost(right, cmp, leftMax)

	// arr[:leftDelimit] <= rightMin and stays put: everything strictly
	// below rightMin, plus the run of elements equal to it.
	leftDelimit := ranges.BinarySearchLeftmost(left, cmp, rightMin)
	for leftDelimit < sep && cmp(left[leftDelimit], rightMin) == 0 {
		leftDelimit++
	}

	if sep == leftDelimit || sep == rightDelimit {
		return
	}

	MergeAdjacent(arr[leftDelimit:rightDelimit], sep-leftDelimit, cmp)
}

// MergeAdjacent merges the two adjacent sorted runs arr[0:sep] and
// arr[sep:] in place. The left run is staged into a buffer, then the buffer
// and the right run are stream-merged back over arr. Element moves are
// plain copies; a slot is dead from the moment its element moved out until
// the merge writes a new one in, and the merge never reads a dead slot.
//
// If the comparator panics mid-merge the array is left partially merged;
// comparators must not panic.
func MergeAdjacent[T any](arr []T, sep int, cmp ordering.Comparator[T]) {
	n := len(arr)
	if sep < 0 || sep > n {
		panic(fmt.Sprintf("merge separation index %d out of range [0, %d]", sep, n))
	}
	if sep == 0 || sep == n {
		return
	}

	staged := make([]T, sep)
	copy(staged, arr[:sep])

	MergeTwo(staged, arr[sep:], cmp, func(index int, element T) {
		arr[index] = element
	})
}
