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

var _ = check.Suite(&quickSortSuite{})

type quickSortSuite struct{}

func (s *quickSortSuite) TestSort(c *check.C) {
	rng := newTestRng()
	for round := 0; round < 300; round++ {
		vec := randomVec(rng)
		ref := append([]int(nil), vec...)

		Sort(vec, intCmp)
		sort.Ints(ref)

		c.Assert(vec, check.DeepEquals, ref)
	}
}

func (s *quickSortSuite) TestSortSmall(c *check.C) {
	for _, vec := range [][]int{{}, {1}, {2, 1}, {1, 2}, {3, 3, 3}} {
		ref := append([]int{}, vec...)
		Sort(vec, intCmp)
		sort.Ints(ref)
		c.Assert(vec, check.DeepEquals, ref)
	}
}

func (s *quickSortSuite) TestStableSort(c *check.C) {
	arr := []string{"apple", "banana", ".", "124", "12345", "orange", "_"}
	byLen := ordering.ByKey(func(s string) int { return len(s) })

	sorted := StableSort(arr, byLen)
	c.Assert(sorted, check.DeepEquals, []string{".", "_", "124", "apple", "12345", "banana", "orange"})
	// the input is untouched
	c.Assert(arr[0], check.Equals, "apple")
}

func (s *quickSortSuite) TestStableSortRandom(c *check.C) {
	rng := newTestRng()
	byMod := ordering.ByKey(func(v int) int { return v % 10 })
	for round := 0; round < 100; round++ {
		vec := randomVec(rng)
		ref := append([]int(nil), vec...)

		sorted := StableSort(vec, byMod)
		sort.SliceStable(ref, func(i, j int) bool { return ref[i]%10 < ref[j]%10 })

		c.Assert(sorted, check.DeepEquals, ref)
	}
}
