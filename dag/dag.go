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

// Package dag traverses directed acyclic graphs and solves shortest paths
// over them with the memoized fixed-point harness.
package dag

import (
	"github.com/pingcap/lazysort/util/matrix"
)

// Edge is one outgoing edge of a node.
type Edge[N any, E any] struct {
	Data E
	To   N
}

// Traverser exposes a directed acyclic graph by its outgoing edges.
type Traverser[N any, E any] interface {
	EdgesFrom(n N) []Edge[N, E]
}

// AdjacencyMap is a DAG stored as nested maps: m[src][dst] = edge data.
type AdjacencyMap[N comparable, E any] map[N]map[N]E

// AddEdge inserts or replaces the edge src -> dst.
func (m AdjacencyMap[N, E]) AddEdge(src, dst N, data E) {
	edges, ok := m[src]
	if !ok {
		edges = make(map[N]E)
		m[src] = edges
	}
	edges[dst] = data
}

// EdgesFrom implements Traverser.
func (m AdjacencyMap[N, E]) EdgesFrom(n N) []Edge[N, E] {
	edges := m[n]
	result := make([]Edge[N, E], 0, len(edges))
	for dst, data := range edges {
		result = append(result, Edge[N, E]{Data: data, To: dst})
	}
	return result
}

type matrixEdge[E any] struct {
	data E
	ok   bool
}

// MatrixDAG is a DAG over integer nodes stored as a dense matrix: the row
// index is the source node, the column index the destination.
type MatrixDAG[E any] struct {
	cells *matrix.Matrix2D[matrixEdge[E]]
}

// NewMatrixDAG creates a DAG over nodes 0..nodeNum-1 with no edges.
func NewMatrixDAG[E any](nodeNum int) *MatrixDAG[E] {
	return &MatrixDAG[E]{cells: matrix.New[matrixEdge[E]](nodeNum, nodeNum)}
}

// AddEdge inserts or replaces the edge src -> dst.
func (m *MatrixDAG[E]) AddEdge(src, dst int, data E) {
	m.cells.Set(src, dst, matrixEdge[E]{data: data, ok: true})
}

// EdgesFrom implements Traverser.
func (m *MatrixDAG[E]) EdgesFrom(n int) []Edge[int, E] {
	row := m.cells.Row(n)
	var result []Edge[int, E]
	for dst, cell := range row {
		if cell.ok {
			result = append(result, Edge[int, E]{Data: cell.data, To: dst})
		}
	}
	return result
}
