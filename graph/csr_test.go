package graph

import (
	"reflect"
	"testing"
)

func TestAdjacencyFromEdges(t *testing.T) {
	edges := []Pair{NewPair(0, 1), NewPair(1, 2)}
	adj := AdjacencyFromEdges(edges, 3)

	// Each row leads with the node itself, then neighbors in edge order.
	wantRows := [][]int{
		{0, 1},
		{1, 0, 2},
		{2, 1},
		{3},
	}
	for node, want := range wantRows {
		if got := adj.Row(node); !reflect.DeepEqual(got, want) {
			t.Errorf("row %d = %v, want %v", node, got, want)
		}
	}
}

func TestGroupsFromEdges(t *testing.T) {
	tests := []struct {
		name     string
		edges    []Pair
		maxIndex int
		want     [][]int
	}{
		{
			name:     "two chains and an isolated node",
			edges:    []Pair{NewPair(0, 1), NewPair(1, 2), NewPair(3, 4)},
			maxIndex: 5,
			want:     [][]int{{0, 1, 2}, {3, 4}, {5}},
		},
		{
			name:     "no edges",
			edges:    nil,
			maxIndex: 2,
			want:     [][]int{{0}, {1}, {2}},
		},
		{
			name:     "single component",
			edges:    []Pair{NewPair(0, 1), NewPair(0, 2), NewPair(2, 3)},
			maxIndex: 3,
			want:     [][]int{{0, 1, 2, 3}},
		},
		{
			name:     "discovery order follows smallest member",
			edges:    []Pair{NewPair(4, 2), NewPair(0, 3)},
			maxIndex: 4,
			want:     [][]int{{0, 3}, {1}, {2, 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csr := GroupsFromEdges(tt.edges, tt.maxIndex)

			if len(csr.Ranges) != len(tt.want) {
				t.Fatalf("group count = %d, want %d\n%s", len(csr.Ranges), len(tt.want), csr.Debug())
			}
			for i, want := range tt.want {
				if got := csr.Row(i); !reflect.DeepEqual(got, want) {
					t.Errorf("group %d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestGroupsExhaustive(t *testing.T) {
	// Every node id must appear exactly once across all groups.
	edges := []Pair{NewPair(1, 5), NewPair(2, 6), NewPair(5, 3)}
	maxIndex := 7
	csr := GroupsFromEdges(edges, maxIndex)

	seen := make(map[int]int)
	for _, rows := range csr.Rows() {
		for _, id := range rows {
			seen[id]++
		}
	}
	for id := 0; id <= maxIndex; id++ {
		if seen[id] != 1 {
			t.Errorf("node %d appears %d times, want exactly once", id, seen[id])
		}
	}
	if len(csr.Indices) != maxIndex+1 {
		t.Errorf("flattened index count = %d, want %d", len(csr.Indices), maxIndex+1)
	}
}

func TestBFSVisitationOrder(t *testing.T) {
	// Star around node 0 plus one second-layer node; BFS yields the start
	// node, then its neighbors in adjacency order, then deeper layers.
	edges := []Pair{NewPair(0, 2), NewPair(0, 1), NewPair(2, 3)}
	csr := GroupsFromEdges(edges, 3)

	want := []int{0, 2, 1, 3}
	if got := csr.Row(0); !reflect.DeepEqual(got, want) {
		t.Errorf("BFS order = %v, want %v", got, want)
	}
}
