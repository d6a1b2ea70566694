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

package ordering

// FirstElementPivot selects the first element as pivot.
func FirstElementPivot[T any](arr []T) int {
	return 0
}

// MiddleElementPivot selects the middle element as pivot.
func MiddleElementPivot[T any](arr []T) int {
	return len(arr) / 2
}

// LastElementPivot selects the last element as pivot.
func LastElementPivot[T any](arr []T) int {
	return len(arr) - 1
}

// MedianOfThreePivot selects the median of the first, middle, and last
// element as pivot. It spends two comparisons where the order is already
// decided, three otherwise.
func MedianOfThreePivot[T any](arr []T, cmp Comparator[T]) int {
	i1 := 0
	i2 := len(arr) / 2
	i3 := len(arr) - 1
	e1, e2, e3 := arr[i1], arr[i2], arr[i3]

	cmp12 := cmp(e1, e2)
	cmp23 := cmp(e2, e3)

	// e1 <= e2 <= e3
	if cmp12 <= 0 && cmp23 <= 0 {
		return i2
	}
	// e3 <= e2 <= e1
	if cmp12 >= 0 && cmp23 >= 0 {
		return i2
	}

	// only do the third comparison if necessary
	cmp13 := cmp(e1, e3)

	// e2 <= e1 <= e3
	if cmp12 >= 0 && cmp13 <= 0 {
		return i1
	}
	// e3 <= e1 <= e2
	if cmp13 >= 0 && cmp12 <= 0 {
		return i1
	}

	return i3
}
