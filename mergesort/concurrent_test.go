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
	"sort"
	"testing"

	"github.com/pingcap/check"
	"github.com/pingcap/lazysort/config"
	"github.com/pingcap/lazysort/util/ordering"
)

var _ = check.Suite(&concurrentSortSuite{})

type concurrentSortSuite struct{}

func (s *concurrentSortSuite) TestConcurrentSortRandom(c *check.C) {
	rng := newTestRng()
	for round := 0; round < 50; round++ {
		vec := make([]int, rng.Intn(100000))
		for i := range vec {
			vec[i] = rng.Intn(10000)
		}
		ref := append([]int(nil), vec...)
		parallelism := rng.Intn(15) + 1

		ConcurrentSort(vec, intCmp, parallelism)
		sort.Ints(ref)

		c.Assert(vec, check.DeepEquals, ref)
	}
}

func (s *concurrentSortSuite) TestConcurrentSortStability(c *check.C) {
	rng := newTestRng()
	byLen := ordering.ByKey(func(s string) int { return len(s) })
	for round := 0; round < 30; round++ {
		vec := randomStrings(rng, 10000)
		ref := append([]string(nil), vec...)
		parallelism := rng.Intn(15) + 1

		ConcurrentSort(vec, byLen, parallelism)
		sort.SliceStable(ref, func(i, j int) bool { return len(ref[i]) < len(ref[j]) })

		c.Assert(vec, check.DeepEquals, ref)
	}
}

func (s *concurrentSortSuite) TestConcurrentSortLarge(c *check.C) {
	length := 4000000
	if testing.Short() {
		length = 400000
	}
	rng := newTestRng()
	input := make([]int, length)
	for i := range input {
		input[i] = rng.Intn(100000000)
	}
	ref := append([]int(nil), input...)
	sort.Ints(ref)

	for _, parallelism := range []int{1, 2, 4, 8} {
		vec := append([]int(nil), input...)
		ConcurrentSort(vec, intCmp, parallelism)
		c.Assert(vec, check.DeepEquals, ref)
	}
}

func (s *concurrentSortSuite) TestConcurrentSortSmallFallsBack(c *check.C) {
	vec := []int{5, 3, 1, 4, 2}
	ConcurrentSort(vec, intCmp, 4)
	c.Assert(vec, check.DeepEquals, []int{1, 2, 3, 4, 5})

	empty := []int{}
	ConcurrentSort(empty, intCmp, 2)
	c.Assert(empty, check.HasLen, 0)
}

func (s *concurrentSortSuite) TestMemTrackerAccounting(c *check.C) {
	rng := newTestRng()
	vec := make([]int, 50000)
	for i := range vec {
		vec[i] = rng.Intn(10000)
	}

	sorter := NewConcurrentSorter(intCmp, 4)
	sorter.Sort(vec)

	// the staged buffers cover the whole slice once, and are released
	c.Assert(sorter.GetMemTracker().BytesConsumed(), check.Equals, int64(0))
	c.Assert(sorter.GetMemTracker().MaxConsumed() >= int64(len(vec))*4, check.IsTrue)
}

func (s *concurrentSortSuite) TestMemQuotaExceededLogsAndCompletes(c *check.C) {
	original := config.GetGlobalConfig()
	conf := *original
	conf.MemQuota = 1
	config.StoreGlobalConfig(&conf)
	defer config.StoreGlobalConfig(original)

	rng := newTestRng()
	vec := make([]int, 50000)
	for i := range vec {
		vec[i] = rng.Intn(10000)
	}
	ref := append([]int(nil), vec...)
	sort.Ints(ref)

	// the staging phase exceeds the one-byte quota; the registered action
	// only logs, so the sort still completes
	sorter := NewConcurrentSorter(intCmp, 4)
	c.Assert(sorter.GetMemTracker().GetBytesLimit(), check.Equals, int64(1))
	sorter.Sort(vec)
	c.Assert(vec, check.DeepEquals, ref)
	c.Assert(sorter.GetMemTracker().BytesConsumed(), check.Equals, int64(0))
}
