// Package graph provides the compressed sparse row structures used to group
// connected cells for batched processing.
package graph

import (
	"fmt"
	"iter"
	"strings"
)

// Pair is a half-open index range or an undirected edge, depending on use.
type Pair struct {
	A, B int
}

// NewPair creates a pair.
func NewPair(a, b int) Pair {
	return Pair{A: a, B: b}
}

// Span returns the distance between the pair's endpoints.
func (p Pair) Span() int {
	return p.B - p.A
}

// CSR is a flattened index structure: Indices holds the concatenated rows,
// Ranges holds one [start, end) window into Indices per row. A row is a
// node's adjacency list or a connected group's member list.
type CSR struct {
	Indices []int
	Ranges  []Pair
}

// AdjacencyFromEdges builds adjacency rows for nodes 0..maxIndex from an
// undirected edge list. Every node's row starts with the node itself, so
// isolated nodes still have a non-empty row; neighbors follow in edge-list
// order.
func AdjacencyFromEdges(edges []Pair, maxIndex int) *CSR {
	nodeCount := maxIndex + 1

	// Degree 1 per node accounts for the self entry.
	degrees := make([]int, nodeCount)
	for i := range degrees {
		degrees[i] = 1
	}
	for _, e := range edges {
		degrees[e.A]++
		degrees[e.B]++
	}

	ranges := make([]Pair, 0, nodeCount)
	offset := 0
	for _, deg := range degrees {
		ranges = append(ranges, NewPair(offset, offset+deg))
		offset += deg
	}

	indices := make([]int, offset)
	writePos := make([]int, nodeCount)
	for node, r := range ranges {
		writePos[node] = r.A
	}

	for node := range nodeCount {
		indices[writePos[node]] = node
		writePos[node]++
	}
	for _, e := range edges {
		indices[writePos[e.A]] = e.B
		writePos[e.A]++
		indices[writePos[e.B]] = e.A
		writePos[e.B]++
	}

	return &CSR{Indices: indices, Ranges: ranges}
}

// GroupsFromEdges partitions nodes 0..maxIndex into connected components.
// Components are discovered by breadth-first search sweeping start nodes in
// ascending id order, so group order and member order are deterministic:
// groups appear in order of their smallest member, members in BFS visitation
// order. Isolated nodes form singleton groups.
func GroupsFromEdges(edges []Pair, maxIndex int) *CSR {
	adj := AdjacencyFromEdges(edges, maxIndex)
	visited := make([]bool, maxIndex+1)

	var indices []int
	var ranges []Pair
	var queue []int

	for start := 0; start <= maxIndex; start++ {
		if visited[start] {
			continue
		}

		queue = append(queue[:0], start)
		visited[start] = true
		groupStart := len(indices)

		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			indices = append(indices, node)

			for _, neighbor := range adj.Row(node) {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}

		ranges = append(ranges, NewPair(groupStart, len(indices)))
	}

	return &CSR{Indices: indices, Ranges: ranges}
}

// Row returns the index slice for row i.
func (c *CSR) Row(i int) []int {
	r := c.Ranges[i]
	return c.Indices[r.A:r.B]
}

// Rows iterates over all rows in order.
func (c *CSR) Rows() iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		for i := range c.Ranges {
			if !yield(i, c.Row(i)) {
				return
			}
		}
	}
}

// Debug renders the rows one per line for diagnostics.
func (c *CSR) Debug() string {
	var sb strings.Builder
	for i, r := range c.Ranges {
		if r.A > r.B || r.B > len(c.Indices) {
			fmt.Fprintf(&sb, "row %d: invalid range [%d, %d)\n", i, r.A, r.B)
			continue
		}
		fmt.Fprintf(&sb, "row %d: %v\n", i, c.Indices[r.A:r.B])
	}
	return sb.String()
}
