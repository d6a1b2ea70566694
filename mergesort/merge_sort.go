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
	"github.com/pingcap/lazysort/util/ordering"
)

// Sort merge-sorts the slice in place. It is stable.
func Sort[T any](arr []T, cmp ordering.Comparator[T]) {
	if len(arr) <= 1 {
		return
	}
	mid := len(arr) / 2
	Sort(arr[:mid], cmp)
	Sort(arr[mid:], cmp)
	SmartMergeAdjacent(arr, mid, cmp)
}

// SortedCopy merge-sorts without modifying the input, returning a new
// slice. It is stable.
func SortedCopy[T any](arr []T, cmp ordering.Comparator[T]) []T {
	if len(arr) <= 1 {
		result := make([]T, len(arr))
		copy(result, arr)
		return result
	}
	mid := len(arr) / 2
	left := SortedCopy(arr[:mid], cmp)
	right := SortedCopy(arr[mid:], cmp)

	result := make([]T, len(arr))
	MergeTwo(left, right, cmp, func(index int, element T) {
		result[index] = element
	})
	return result
}
