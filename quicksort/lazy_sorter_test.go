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
	"sort"

	"github.com/pingcap/check"
	"github.com/pingcap/lazysort/util/ordering"
)

var _ = check.Suite(&lazySorterSuite{})

type lazySorterSuite struct{}

func (s *lazySorterSuite) TestAtInOrder(c *check.C) {
	arr := []int{7, 4, 399, 1, 99, -3}
	sorter := NewLazyQuickSorter(arr, ordering.Ordered[int]())

	expected := []int{-3, 1, 4, 7, 99, 399}
	for i, want := range expected {
		c.Assert(sorter.At(i), check.Equals, want)
	}
}

func (s *lazySorterSuite) TestRandomQueries(c *check.C) {
	rng := newTestRng()
	vec := make([]int, rng.Intn(999)+1)
	for i := range vec {
		vec[i] = rng.Intn(2000)
	}
	ref := append([]int(nil), vec...)
	sort.Ints(ref)

	sorter := NewLazyQuickSorter(vec, ordering.Ordered[int]())
	for i := 0; i < 3000; i++ {
		index := rng.Intn(len(vec))
		c.Assert(sorter.At(index), check.Equals, ref[index])
	}
}

func (s *lazySorterSuite) TestQueryPermutations(c *check.C) {
	rng := newTestRng()
	for round := 0; round < 50; round++ {
		vec := make([]int, rng.Intn(60)+1)
		for i := range vec {
			vec[i] = rng.Intn(10)
		}
		ref := append([]int(nil), vec...)
		sort.Ints(ref)

		sorter := NewLazyQuickSorter(vec, ordering.Ordered[int]())
		for _, index := range rng.Perm(len(vec)) {
			c.Assert(sorter.At(index), check.Equals, ref[index])
		}
	}
}

func (s *lazySorterSuite) TestRepeatedQueryDoesNoWork(c *check.C) {
	rng := newTestRng()
	vec := make([]int, 500)
	for i := range vec {
		vec[i] = rng.Intn(100)
	}

	comparisons := 0
	counting := func(a, b int) int {
		comparisons++
		return intCmp(a, b)
	}

	sorter := NewLazyQuickSorter(vec, counting)
	index := 123
	first := sorter.At(index)
	afterFirst := comparisons
	c.Assert(afterFirst > 0, check.IsTrue)

	for i := 0; i < 5; i++ {
		c.Assert(sorter.At(index), check.Equals, first)
	}
	// later queries of the same index only walk the retained tree
	c.Assert(comparisons, check.Equals, afterFirst)
}

func (s *lazySorterSuite) TestByKey(c *check.C) {
	arr := []string{"apple", ".", "banana", "_", "124"}
	sorter := NewLazyQuickSorterByKey(arr, func(s string) int { return len(s) })

	c.Assert(len(sorter.At(0)), check.Equals, 1)
	c.Assert(len(sorter.At(4)), check.Equals, 6)
	c.Assert(len(sorter.At(2)), check.Equals, 3)
}

func (s *lazySorterSuite) TestAtOutOfRange(c *check.C) {
	sorter := NewLazyQuickSorter([]int{1, 2, 3}, ordering.Ordered[int]())
	c.Assert(func() { sorter.At(3) }, check.PanicMatches, "order statistic index out of range.*")
	c.Assert(func() { sorter.At(-1) }, check.PanicMatches, "order statistic index out of range.*")
}
