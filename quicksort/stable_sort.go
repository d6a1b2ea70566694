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
	"github.com/pingcap/lazysort/util/ordering"
)

// StableSort is the quick sort in functional style. Instead of mutating the
// input it builds new slices, which makes it stable: elements that compare
// equal keep their input order. It costs more allocation and copying than
// the in-place sorts.
func StableSort[T any](arr []T, cmp ordering.Comparator[T]) []T {
	if len(arr) == 0 {
		return nil
	}

	// first element as pivot, for simplicity
	pivot := arr[0]
	rest := arr[1:]

	var left, right []T
	for _, x := range rest {
		if cmp(x, pivot) < 0 {
			left = append(left, x)
		} else {
			right = append(right, x)
		}
	}

	result := make([]T, 0, len(arr))
	result = append(result, StableSort(left, cmp)...)
	result = append(result, pivot)
	result = append(result, StableSort(right, cmp)...)
	return result
}
