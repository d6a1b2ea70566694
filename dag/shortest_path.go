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

package dag

// DistanceOps abstracts the distance arithmetic of a shortest-path search.
type DistanceOps[E any, D any] interface {
	// Distance extracts the distance of an edge.
	Distance(edge E) D
	// Add combines two distances.
	Add(a, b D) D
	// Zero is the distance of the empty path.
	Zero() D
	// Compare orders distances: negative when a is shorter.
	Compare(a, b D) int
}

// Endpoints is a (source, destination) query, the input of the solver's
// open form and the key it is memoized on.
type Endpoints[N comparable] struct {
	Src N
	Dst N
}

// PathResult describes the best path of a query: the next node to step to
// and the total distance to the destination. Found is false when the
// destination is unreachable.
type PathResult[N any, D any] struct {
	Found    bool
	NextNode N
	Distance D
}

// ShortestPathSolver solves single-pair shortest path on a DAG. It is
// written in fixed-point form: the distance from src is the minimum over
// outgoing edges of edge distance plus the recursive distance from the edge
// head. Memoize it on Endpoints to share sub-path answers across queries;
// acyclicity guarantees the recursion terminates.
type ShortestPathSolver[N comparable, E any, D any] struct {
	traverser Traverser[N, E]
	ops       DistanceOps[E, D]
}

// NewShortestPathSolver builds a solver over the given graph and distance
// arithmetic.
func NewShortestPathSolver[N comparable, E any, D any](
	traverser Traverser[N, E], ops DistanceOps[E, D],
) *ShortestPathSolver[N, E, D] {
	return &ShortestPathSolver[N, E, D]{traverser: traverser, ops: ops}
}

// Eval implements memo.FixedPointFunc.
func (s *ShortestPathSolver[N, E, D]) Eval(
	recurse func(Endpoints[N]) PathResult[N, D], q Endpoints[N],
) PathResult[N, D] {
	if q.Src == q.Dst {
		return PathResult[N, D]{Found: true, NextNode: q.Dst, Distance: s.ops.Zero()}
	}

	var best PathResult[N, D]
	for _, edge := range s.traverser.EdgesFrom(q.Src) {
		sub := recurse(Endpoints[N]{Src: edge.To, Dst: q.Dst})
		if !sub.Found {
			continue
		}
		total := s.ops.Add(s.ops.Distance(edge.Data), sub.Distance)
		if !best.Found || s.ops.Compare(total, best.Distance) < 0 {
			best = PathResult[N, D]{Found: true, NextNode: edge.To, Distance: total}
		}
	}
	return best
}
