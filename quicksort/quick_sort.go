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

// Sort quick-sorts the slice in place with median-of-three pivots and the
// three-way partition. The equal region produced by each partition step is
// never recursed on.
func Sort[T any](arr []T, cmp ordering.Comparator[T]) {
	n := len(arr)
	if n <= 1 {
		return
	}
	if n == 2 {
		if cmp(arr[0], arr[1]) > 0 {
			arr[0], arr[1] = arr[1], arr[0]
		}
		return
	}

	pivotIndex := ordering.MedianOfThreePivot(arr, cmp)
	l, r := FatPartition(arr, cmp, pivotIndex)

	Sort(arr[:l], cmp)
	Sort(arr[r:], cmp)
}
