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

package ranges

import (
	"github.com/pingcap/errors"
	"github.com/pingcap/lazysort/util/ordering"
)

// RangePartition carves a half-open index range into adjacent sub-ranges.
// Partitioning into n parts stores n+1 endpoints: part i is
// [endpoints[i], endpoints[i+1]). The first endpoint is the total start
// (inclusive), the last is the total end (exclusive).
type RangePartition struct {
	endpoints []int
}

// FromEndpoints builds a RangePartition from an explicit endpoint sequence.
// The endpoints must be non-decreasing and there must be at least two of
// them (one part).
func FromEndpoints(endpoints []int) (*RangePartition, error) {
	if len(endpoints) < 2 {
		return nil, errors.Errorf("range partition needs at least 2 endpoints, got %d", len(endpoints))
	}
	for i := 1; i < len(endpoints); i++ {
		if endpoints[i] < endpoints[i-1] {
			return nil, errors.Errorf("range partition endpoints out of order: endpoints[%d]=%d < endpoints[%d]=%d",
				i, endpoints[i], i-1, endpoints[i-1])
		}
	}
	return &RangePartition{endpoints: endpoints}, nil
}

// MustFromEndpoints is FromEndpoints, panicking on invalid endpoints.
func MustFromEndpoints(endpoints []int) *RangePartition {
	p, err := FromEndpoints(endpoints)
	if err != nil {
		panic(err)
	}
	return p
}

// FromPartSizes builds a RangePartition starting at startIndex whose part i
// has length partSizes[i].
func FromPartSizes(partSizes []int, startIndex int) *RangePartition {
	endpoints := make([]int, 0, len(partSizes)+1)
	endpoints = append(endpoints, startIndex)
	start := startIndex
	for _, size := range partSizes {
		start += size
		endpoints = append(endpoints, start)
	}
	return &RangePartition{endpoints: endpoints}
}

// Evenly partitions [start, end) into partNum parts of equal floor length.
// If the length cannot be divided evenly, the last part absorbs the
// remainder.
func Evenly(start, end, partNum int) *RangePartition {
	partLen := (end - start) / partNum
	endpoints := make([]int, 0, partNum+1)
	for i := 0; i < partNum; i++ {
		endpoints = append(endpoints, start)
		start += partLen
	}
	endpoints = append(endpoints, end)
	return &RangePartition{endpoints: endpoints}
}

// PartNum returns the number of parts.
func (p *RangePartition) PartNum() int {
	return len(p.endpoints) - 1
}

// PartStart returns the inclusive start of part partIndex.
func (p *RangePartition) PartStart(partIndex int) int {
	return p.endpoints[partIndex]
}

// PartEnd returns the exclusive end of part partIndex.
func (p *RangePartition) PartEnd(partIndex int) int {
	return p.endpoints[partIndex+1]
}

// PartLength returns the length of part partIndex.
func (p *RangePartition) PartLength(partIndex int) int {
	return p.PartEnd(partIndex) - p.PartStart(partIndex)
}

// TotalStart returns the inclusive start of the whole range.
func (p *RangePartition) TotalStart() int {
	return p.endpoints[0]
}

// TotalEnd returns the exclusive end of the whole range.
func (p *RangePartition) TotalEnd() int {
	return p.endpoints[len(p.endpoints)-1]
}

// TotalLength returns the length of the whole range.
func (p *RangePartition) TotalLength() int {
	return p.TotalEnd() - p.TotalStart()
}

// SplitBorrow slices arr into one disjoint sub-slice per part. arr must
// cover the partition's total range, arr[0] corresponding to the total
// start.
func SplitBorrow[T any](p *RangePartition, arr []T) [][]T {
	result := make([][]T, 0, p.PartNum())
	remaining := arr
	for i := 0; i < p.PartNum(); i++ {
		length := p.PartLength(i)
		result = append(result, remaining[:length:length])
		remaining = remaining[length:]
	}
	return result
}

// FindByPivots partitions the sorted sub-range arr[start:end) by the given
// sorted pivots: with n pivots it produces n+1 parts, where every element of
// part i is strictly less than pivot i and every element of later parts
// compares greater or equal to pivot i. Each pivot is located by a
// leftmost-equal binary search restricted to the suffix left by the previous
// pivot.
func FindByPivots[T any](arr []T, start, end int, cmp ordering.Comparator[T], pivots []T) *RangePartition {
	endpoints := make([]int, 0, len(pivots)+2)
	endpoints = append(endpoints, start)

	searchStart := start
	for _, pivot := range pivots {
		pos := BinarySearchLeftmost(arr[searchStart:end], cmp, pivot)
		endpoints = append(endpoints, searchStart+pos)
		searchStart += pos
	}

	endpoints = append(endpoints, end)
	return &RangePartition{endpoints: endpoints}
}

// BinarySearchLeftmost finds the target in a sorted slice. When equal
// elements exist it returns the smallest index holding one; when the target
// is absent it returns the insertion index that preserves the order.
func BinarySearchLeftmost[T any](arr []T, cmp ordering.Comparator[T], target T) int {
	lo, hi := 0, len(arr)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(arr[mid], target) < 0 {
			lo = mid + 1
		} else {
			// arr[mid] >= target: the leftmost equal position cannot be
			// to the right of mid.
			hi = mid
		}
	}
	return lo
}
