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

import (
	"golang.org/x/exp/constraints"
)

// Comparator reports the order of a relative to b: negative for less, zero
// for equal, positive for greater. It must describe a consistent total order:
// reflexive, anti-symmetric, transitive, and stable for the whole run of a
// sort. The sorting results are undefined if the caller violates these.
type Comparator[T any] func(a, b T) int

// Ordered builds a Comparator from the natural order of an ordered type.
func Ordered[T constraints.Ordered]() Comparator[T] {
	return func(a, b T) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
}

// ByKey builds a Comparator that orders elements by an extracted sort key.
func ByKey[T any, K constraints.Ordered](extract func(T) K) Comparator[T] {
	return func(a, b T) int {
		ka, kb := extract(a), extract(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	}
}

// Reverse inverts a Comparator.
func Reverse[T any](cmp Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		return -cmp(a, b)
	}
}
