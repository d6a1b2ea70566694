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
	"golang.org/x/exp/constraints"
)

// LazyQuickSorter answers order-statistic queries on a borrowed slice by
// sorting only as much as the queries require. Partitioning separates the
// slice into parts whose final element positions are independent, so sorting
// just the parts on the path to the queried index places that index
// correctly. The partition tree is retained across queries: a later query
// only pays for the descent past already-partitioned nodes, and no range is
// ever partitioned twice.
//
// The sorter owns the slice for its lifetime; the caller must not mutate the
// slice while the sorter is alive.
type LazyQuickSorter[T any] struct {
	arr  []T
	cmp  ordering.Comparator[T]
	root sortNode
}

type nodeState int

const (
	// nodeUnsorted marks a range not yet partitioned.
	nodeUnsorted nodeState = iota
	// nodePartiallySorted marks a range whose top layer is partitioned.
	nodePartiallySorted
	// nodeFullySorted marks a range whose every element is in final position.
	nodeFullySorted
)

// sortNode corresponds to a range of the slice. Using the fat partition,
// the left child covers [rangeLeft, partitionLeft) and the right child
// covers [partitionRight, rangeRight); the band between the two boundaries
// holds elements equal to the pivot, already in final position.
type sortNode struct {
	state          nodeState
	partitionLeft  int
	partitionRight int
	left           *sortNode
	right          *sortNode
}

// NewLazyQuickSorter creates a sorter over arr with an explicit comparator.
func NewLazyQuickSorter[T any](arr []T, cmp ordering.Comparator[T]) *LazyQuickSorter[T] {
	return &LazyQuickSorter[T]{arr: arr, cmp: cmp}
}

// NewLazyQuickSorterByKey creates a sorter ordering elements by an extracted
// sort key.
func NewLazyQuickSorterByKey[T any, K constraints.Ordered](arr []T, extract func(T) K) *LazyQuickSorter[T] {
	return &LazyQuickSorter[T]{arr: arr, cmp: ordering.ByKey(extract)}
}

// At returns the index+1 smallest element. After the call, arr[index] holds
// that element. Expected cost is the partition work along one root-to-leaf
// path; repeated queries reuse all prior partitioning.
func (s *LazyQuickSorter[T]) At(index int) T {
	if index < 0 || index >= len(s.arr) {
		panic(fmt.Sprintf("order statistic index out of range: %d not in [0, %d)", index, len(s.arr)))
	}
	s.ensureSorted(&s.root, index, 0, len(s.arr))
	return s.arr[index]
}

// ensureSorted makes arr[targetIndex] final, in the context of the node
// covering [rangeLeft, rangeRight).
func (s *LazyQuickSorter[T]) ensureSorted(node *sortNode, targetIndex, rangeLeft, rangeRight int) {
	n := rangeRight - rangeLeft

	if n == 1 {
		node.state = nodeFullySorted
		return
	}

	if n == 2 {
		if node.state == nodeFullySorted {
			return
		}
		if s.cmp(s.arr[rangeLeft], s.arr[rangeLeft+1]) > 0 {
			s.arr[rangeLeft], s.arr[rangeLeft+1] = s.arr[rangeLeft+1], s.arr[rangeLeft]
		}
		node.state = nodeFullySorted
		return
	}

	switch node.state {
	case nodeUnsorted:
		// Partition this layer, then descend into the single child range
		// containing the target, if the target is not in the equal band.
		seg := s.arr[rangeLeft:rangeRight]
		pivotIndex := ordering.MedianOfThreePivot(seg, s.cmp)
		pl, pr := FatPartition(seg, s.cmp, pivotIndex)
		node.partitionLeft = rangeLeft + pl
		node.partitionRight = rangeLeft + pr
		node.left = &sortNode{}
		node.right = &sortNode{}
		node.state = nodePartiallySorted

		if targetIndex < node.partitionLeft {
			s.ensureSorted(node.left, targetIndex, rangeLeft, node.partitionLeft)
		} else if targetIndex >= node.partitionRight {
			s.ensureSorted(node.right, targetIndex, node.partitionRight, rangeRight)
		}
		// a target inside the equal band is already final

	case nodePartiallySorted:
		if targetIndex < node.partitionLeft {
			s.ensureSorted(node.left, targetIndex, rangeLeft, node.partitionLeft)
		} else if targetIndex >= node.partitionRight {
			s.ensureSorted(node.right, targetIndex, node.partitionRight, rangeRight)
		} else {
			return
		}
		if s.childSorted(node.left, rangeLeft, node.partitionLeft) &&
			s.childSorted(node.right, node.partitionRight, rangeRight) {
			node.state = nodeFullySorted
			node.left, node.right = nil, nil
		}

	case nodeFullySorted:
		// nothing left to do in this range
	}
}

// childSorted reports whether a child covering [left, right) needs no more
// work. An empty child range is trivially sorted.
func (s *LazyQuickSorter[T]) childSorted(child *sortNode, left, right int) bool {
	return right-left == 0 || child.state == nodeFullySorted
}
