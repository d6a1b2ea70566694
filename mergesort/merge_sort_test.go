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
	"math/rand"
	"sort"

	"github.com/pingcap/check"
	"github.com/pingcap/lazysort/util/ordering"
)

var _ = check.Suite(&mergeSortSuite{})

type mergeSortSuite struct{}

func randomStrings(rng *rand.Rand, maxLen int) []string {
	vec := make([]string, rng.Intn(maxLen))
	for i := range vec {
		n := rng.Intn(9) + 1
		b := make([]byte, n)
		for j := range b {
			b[j] = byte('a' + rng.Intn(26))
		}
		vec[i] = string(b)
	}
	return vec
}

func (s *mergeSortSuite) TestSort(c *check.C) {
	rng := newTestRng()
	for round := 0; round < 300; round++ {
		vec := make([]int, rng.Intn(1000))
		for i := range vec {
			vec[i] = rng.Intn(1000)
		}
		ref := append([]int(nil), vec...)

		Sort(vec, intCmp)
		sort.Ints(ref)

		c.Assert(vec, check.DeepEquals, ref)
	}
}

func (s *mergeSortSuite) TestSortStability(c *check.C) {
	rng := newTestRng()
	byLen := ordering.ByKey(func(s string) int { return len(s) })
	for round := 0; round < 100; round++ {
		vec := randomStrings(rng, 1000)
		ref := append([]string(nil), vec...)

		Sort(vec, byLen)
		sort.SliceStable(ref, func(i, j int) bool { return len(ref[i]) < len(ref[j]) })

		c.Assert(vec, check.DeepEquals, ref)
	}
}

func (s *mergeSortSuite) TestSortedCopy(c *check.C) {
	rng := newTestRng()
	for round := 0; round < 100; round++ {
		vec := make([]int, rng.Intn(500))
		for i := range vec {
			vec[i] = rng.Intn(500)
		}
		input := append([]int(nil), vec...)

		sorted := SortedCopy(vec, intCmp)

		// input untouched
		c.Assert(vec, check.DeepEquals, input)
		sort.Ints(input)
		c.Assert(sorted, check.DeepEquals, input)
	}
}

func (s *mergeSortSuite) TestSmartMergeAdjacent(c *check.C) {
	rng := newTestRng()
	for round := 0; round < 300; round++ {
		left := randomSortedVec(rng, 300)
		right := randomSortedVec(rng, 300)
		arr := append(append([]int(nil), left...), right...)
		ref := append([]int(nil), arr...)

		SmartMergeAdjacent(arr, len(left), intCmp)
		sort.Ints(ref)

		c.Assert(arr, check.DeepEquals, ref)
	}
}

func (s *mergeSortSuite) TestSmartMergeAdjacentAlreadyMerged(c *check.C) {
	arr := []int{1, 2, 3, 10, 11, 12}
	calls := 0
	counting := func(a, b int) int {
		calls++
		return a - b
	}
	SmartMergeAdjacent(arr, 3, counting)
	c.Assert(arr, check.DeepEquals, []int{1, 2, 3, 10, 11, 12})
	// the trim detects the order with the single boundary comparison
	c.Assert(calls, check.Equals, 1)
}

func (s *mergeSortSuite) TestMergeAdjacentEdges(c *check.C) {
	arr := []int{3, 1, 2}
	// separation at either end is a no-op
	MergeAdjacent(arr, 0, intCmp)
	c.Assert(arr, check.DeepEquals, []int{3, 1, 2})
	MergeAdjacent(arr, 3, intCmp)
	c.Assert(arr, check.DeepEquals, []int{3, 1, 2})

	c.Assert(func() { MergeAdjacent(arr, 4, intCmp) }, check.PanicMatches, "merge separation index.*")
}
