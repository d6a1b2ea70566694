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
	"fmt"
	"unsafe"

	"github.com/pingcap/lazysort/config"
	"github.com/pingcap/lazysort/util/logutil"
	"github.com/pingcap/lazysort/util/memory"
	"github.com/pingcap/lazysort/util/ordering"
	"github.com/pingcap/lazysort/util/ranges"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ConcurrentSorter sorts contiguous slices with a fixed pool of workers.
// The sort is stable. It proceeds in phases separated by join barriers:
//
//  1. split the slice evenly into one part per worker; each worker
//     merge-sorts its part;
//  2. pick parallelism-1 evenly spaced pivots from the sorted first part
//     (serial; splitting quality is best-effort by design);
//  3. each worker splits its own part by the pivots, yielding sub[i][k],
//     the k-th sub-region of part i;
//  4. worker k stages every sub[i][k] into a private contiguous buffer;
//     the source regions are never read again;
//  5. worker k multi-way merges the sub-regions inside its buffer into its
//     destination block of the original slice, whose offset is the summed
//     size of the previous workers' buffers.
//
// Workers touch provably disjoint regions inside a phase, so the only
// synchronization is the barrier between phases. The staged buffers are
// accounted on the sorter's memory tracker.
type ConcurrentSorter[T any] struct {
	cmp         ordering.Comparator[T]
	parallelism int
	memTracker  *memory.Tracker
}

// NewConcurrentSorter creates a sorter. parallelism <= 0 selects the
// configured default.
func NewConcurrentSorter[T any](cmp ordering.Comparator[T], parallelism int) *ConcurrentSorter[T] {
	if parallelism <= 0 {
		parallelism = config.GetGlobalConfig().EffectiveParallelism()
	}
	s := &ConcurrentSorter[T]{
		cmp:         cmp,
		parallelism: parallelism,
		memTracker:  memory.NewTracker("ConcurrentMergeSort", stagingQuota()),
	}
	s.memTracker.FallbackOldAndSetNewAction(&memory.LogOnExceed{})
	return s
}

// stagingQuota resolves the byte limit for the staged buffers. When no quota
// is configured it falls back to 80% of system memory; the staging of one
// sort should never approach that.
func stagingQuota() int64 {
	if quota := config.GetGlobalConfig().MemQuota; quota > 0 {
		return quota
	}
	total, err := memory.MemTotal()
	if err != nil {
		logutil.BgLogger().Warn("get system memory fail", zap.Error(err))
		return 0
	}
	return int64(total / 10 * 8)
}

// GetMemTracker returns the tracker accounting the per-worker buffers.
func (s *ConcurrentSorter[T]) GetMemTracker() *memory.Tracker {
	return s.memTracker
}

// ConcurrentSort sorts arr stably with the given worker count.
func ConcurrentSort[T any](arr []T, cmp ordering.Comparator[T], parallelism int) {
	NewConcurrentSorter(cmp, parallelism).Sort(arr)
}

// Sort sorts arr in place.
func (s *ConcurrentSorter[T]) Sort(arr []T) {
	p := s.parallelism
	if p < 1 {
		panic(fmt.Sprintf("parallelism must be at least 1, got %d", p))
	}

	n := len(arr)
	if n <= 1 {
		return
	}

	cutoff := config.GetGlobalConfig().SequentialCutoffFactor
	if p == 1 || n <= p*cutoff {
		Sort(arr, s.cmp)
		return
	}

	logutil.BgLogger().Debug("concurrent merge sort starts",
		zap.Int("len", n), zap.Int("parallelism", p))

	outer := ranges.Evenly(0, n, p)

	// phase 1: every worker sorts its own part
	var g errgroup.Group
	for _, part := range ranges.SplitBorrow(outer, arr) {
		part := part
		g.Go(func() error {
			Sort(part, s.cmp)
			return nil
		})
	}
	_ = g.Wait()

	// phase 2: evenly spaced pivots from the sorted first part
	firstPart := arr[outer.PartStart(0):outer.PartEnd(0)]
	firstPartSplit := ranges.Evenly(0, len(firstPart), p)
	pivots := make([]T, 0, p-1)
	for i := 1; i < p; i++ {
		pivots = append(pivots, firstPart[firstPartSplit.PartStart(i)])
	}

	// phase 3: split every part by the pivots.
	// sub[i] partitions part i; sub[i] part k is merged by worker k later.
	sub := make([]*ranges.RangePartition, p)
	for i := 0; i < p; i++ {
		i := i
		g.Go(func() error {
			sub[i] = ranges.FindByPivots(arr, outer.PartStart(i), outer.PartEnd(i), s.cmp, pivots)
			return nil
		})
	}
	_ = g.Wait()

	// the staging layout of worker k's buffer: slot i holds sub[i] part k
	staging := make([]*ranges.RangePartition, p)
	for k := 0; k < p; k++ {
		sizes := make([]int, p)
		for i := 0; i < p; i++ {
			sizes[i] = sub[i].PartLength(k)
		}
		staging[k] = ranges.FromPartSizes(sizes, 0)
	}

	// the destination layout: worker k's output block starts where the
	// previous workers' buffers end
	destSizes := make([]int, p)
	for k := 0; k < p; k++ {
		destSizes[k] = staging[k].TotalLength()
	}
	dest := ranges.FromPartSizes(destSizes, 0)

	var zero T
	elemSize := int64(unsafe.Sizeof(zero))
	s.memTracker.Consume(int64(n) * elemSize)

	// phase 4: stage sub[i][k] into worker k's private buffer. After the
	// copy the source region is dead; nothing reads it again.
	buffers := make([][]T, p)
	for k := 0; k < p; k++ {
		k := k
		g.Go(func() error {
			buffer := make([]T, staging[k].TotalLength())
			for i := 0; i < p; i++ {
				copy(buffer[staging[k].PartStart(i):staging[k].PartEnd(i)],
					arr[sub[i].PartStart(k):sub[i].PartEnd(k)])
			}
			buffers[k] = buffer
			return nil
		})
	}
	_ = g.Wait()

	// phase 5: worker k merges its staged sub-regions into its destination
	// block. Destinations are disjoint by construction.
	for k := 0; k < p; k++ {
		k := k
		g.Go(func() error {
			srcs := ranges.SplitBorrow(staging[k], buffers[k])
			dst := arr[dest.PartStart(k):dest.PartEnd(k)]
			MergeMultiple(srcs, s.cmp, func(index int, element T) {
				dst[index] = element
			})
			return nil
		})
	}
	_ = g.Wait()

	// phase 6: release the buffers
	for k := range buffers {
		buffers[k] = nil
	}
	s.memTracker.Consume(-int64(n) * elemSize)

	logutil.BgLogger().Debug("concurrent merge sort done",
		zap.Int("len", n), zap.String("buffered", s.memTracker.BytesToString(s.memTracker.MaxConsumed())))
}
