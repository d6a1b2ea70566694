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
	"github.com/pingcap/lazysort/util/linkedlist"
)

var _ = check.Suite(&containerSortSuite{})

type containerSortSuite struct{}

func (s *containerSortSuite) TestSortSlice(c *check.C) {
	rng := newTestRng()
	for round := 0; round < 300; round++ {
		vec := randomVec(rng)
		ref := append([]int(nil), vec...)

		SortSlice(vec, intCmp)
		sort.Ints(ref)

		c.Assert(vec, check.DeepEquals, ref)
	}
}

func (s *containerSortSuite) TestSortList(c *check.C) {
	rng := newTestRng()
	for round := 0; round < 100; round++ {
		ref := randomVec(rng)
		list := linkedlist.New[int]()
		for _, v := range ref {
			list.PushBack(v)
		}

		SortList(ListContainer[int]{List: list}, intCmp)
		sort.Ints(ref)

		c.Assert(list.Values(), check.DeepEquals, ref)
		c.Assert(list.CheckValid(), check.IsNil)
	}
}

func (s *containerSortSuite) TestSortListSmall(c *check.C) {
	for _, vals := range [][]int{{}, {1}, {2, 1}, {7, 7}, {3, 1, 2}} {
		list := linkedlist.New[int]()
		for _, v := range vals {
			list.PushBack(v)
		}
		ref := append([]int(nil), vals...)

		SortList(ListContainer[int]{List: list}, intCmp)
		sort.Ints(ref)

		c.Assert(list.Values(), check.DeepEquals, ref)
	}
}

func (s *containerSortSuite) TestListIndexNavigation(c *check.C) {
	list := linkedlist.New[int]()
	first := list.PushBack(10)
	last := list.PushBack(20)
	container := ListContainer[int]{List: list}

	// prev of after-last is the tail element
	tail := container.Prev(AfterLastIndex())
	c.Assert(tail, check.Equals, CursorIndex(last))
	// next of the tail is after-last
	c.Assert(container.Next(tail), check.Equals, AfterLastIndex())

	c.Assert(func() { container.Get(AfterLastIndex()) }, check.PanicMatches, "cannot get the after-last index")
	c.Assert(func() { container.Next(AfterLastIndex()) }, check.PanicMatches, "cannot advance the after-last index")
	c.Assert(func() { container.Swap(CursorIndex(first), AfterLastIndex()) }, check.PanicMatches, "cannot swap with the after-last index")
	c.Assert(func() { container.Prev(CursorIndex(first)) }, check.PanicMatches, "the first element has no predecessor")
}

func (s *containerSortSuite) TestFatPartitionContainerEmptyRange(c *check.C) {
	vec := []int{3, 1, 2}
	res := FatPartitionContainer[int, int](SliceContainer[int]{Arr: vec}, intCmp, 1, 1, 1, 0)
	c.Assert(res.Left, check.Equals, 1)
	c.Assert(res.Right, check.Equals, 1)
	c.Assert(res.LeftPartSize, check.Equals, 0)
	c.Assert(res.RightPartSize, check.Equals, 0)
}
