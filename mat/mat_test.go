// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mat_test

import (
	"reflect"
	"testing"

	"github.com/js-arias/matintro/mat"
)

// NewTree creates the tree
//
//	root
//	├── A:[m1]
//	└── X:[m2]
//	    ├── Y:[m3]
//	    │   ├── B:[m4]
//	    │   └── C:[m5]
//	    └── D:[m6]
//
// with a single mutation per branch
// and a clade annotation on node Y.
func newTree(t testing.TB) *mat.Tree {
	t.Helper()

	tr := mat.New("root")
	nodes := []struct {
		parent, id string
		mutations  []string
		clades     []string
	}{
		{"root", "A", []string{"m1"}, nil},
		{"root", "X", []string{"m2"}, nil},
		{"X", "Y", []string{"m3"}, []string{"cladeY"}},
		{"Y", "B", []string{"m4"}, nil},
		{"Y", "C", []string{"m5"}, nil},
		{"X", "D", []string{"m6"}, nil},
	}
	for _, n := range nodes {
		if err := tr.Add(n.parent, n.id, n.mutations, n.clades); err != nil {
			t.Fatalf("unable to add node %q: %v", n.id, err)
		}
	}
	return tr
}

func TestTree(t *testing.T) {
	tr := newTree(t)

	if g := tr.Root(); g != "root" {
		t.Errorf("root: got %q, want %q", g, "root")
	}
	if g := tr.Len(); g != 7 {
		t.Errorf("nodes: got %d, want %d", g, 7)
	}

	children := map[string][]string{
		"root": {"A", "X"},
		"X":    {"Y", "D"},
		"Y":    {"B", "C"},
	}
	for id, want := range children {
		if g := tr.Children(id); !reflect.DeepEqual(g, want) {
			t.Errorf("children of %q: got %v, want %v", id, g, want)
		}
	}

	terms := []string{"A", "B", "C", "D"}
	for _, l := range terms {
		if !tr.IsTerm(l) {
			t.Errorf("node %q: expecting a leaf", l)
		}
	}
	for _, n := range []string{"root", "X", "Y"} {
		if tr.IsTerm(n) {
			t.Errorf("node %q: expecting an internal node", n)
		}
	}
	if !tr.IsRoot("root") {
		t.Errorf("node %q: expecting the root", "root")
	}
	if tr.IsRoot("X") {
		t.Errorf("node %q: not the root", "X")
	}

	parents := map[string]string{
		"root": "",
		"A":    "root",
		"X":    "root",
		"Y":    "X",
		"B":    "Y",
		"C":    "Y",
		"D":    "X",
	}
	for id, want := range parents {
		if g := tr.Parent(id); g != want {
			t.Errorf("parent of %q: got %q, want %q", id, g, want)
		}
	}

	if g := tr.NumMutations("Y"); g != 1 {
		t.Errorf("mutations of %q: got %d, want %d", "Y", g, 1)
	}
	if g := tr.NumMutations("root"); g != 0 {
		t.Errorf("mutations of %q: got %d, want %d", "root", g, 0)
	}
	if g := tr.Mutations("B"); !reflect.DeepEqual(g, []string{"m4"}) {
		t.Errorf("mutations of %q: got %v, want %v", "B", g, []string{"m4"})
	}
	if g := tr.Clades("Y"); !reflect.DeepEqual(g, []string{"cladeY"}) {
		t.Errorf("clades of %q: got %v, want %v", "Y", g, []string{"cladeY"})
	}
}

func TestTreeTraversal(t *testing.T) {
	tr := newTree(t)

	dfs := []string{"root", "A", "X", "Y", "B", "C", "D"}
	if g := tr.DepthFirst(""); !reflect.DeepEqual(g, dfs) {
		t.Errorf("depth first: got %v, want %v", g, dfs)
	}
	subDFS := []string{"X", "Y", "B", "C", "D"}
	if g := tr.DepthFirst("X"); !reflect.DeepEqual(g, subDFS) {
		t.Errorf("depth first at %q: got %v, want %v", "X", g, subDFS)
	}

	bfs := []string{"root", "A", "X", "Y", "D", "B", "C"}
	if g := tr.BreadthFirst(""); !reflect.DeepEqual(g, bfs) {
		t.Errorf("breadth first: got %v, want %v", g, bfs)
	}

	rs := []string{"B", "Y", "X", "root"}
	if g := tr.RSearch("B"); !reflect.DeepEqual(g, rs) {
		t.Errorf("rsearch from %q: got %v, want %v", "B", g, rs)
	}
	if g := tr.RSearch("not-a-node"); g != nil {
		t.Errorf("rsearch from an undefined node: got %v", g)
	}

	terms := []string{"A", "B", "C", "D"}
	if g := tr.Terms(""); !reflect.DeepEqual(g, terms) {
		t.Errorf("terms: got %v, want %v", g, terms)
	}
	subTerms := []string{"B", "C"}
	if g := tr.Terms("Y"); !reflect.DeepEqual(g, subTerms) {
		t.Errorf("terms of %q: got %v, want %v", "Y", g, subTerms)
	}
}

func TestTreeAddErrors(t *testing.T) {
	tr := newTree(t)

	if err := tr.Add("not-a-node", "E", nil, nil); err == nil {
		t.Errorf("expecting error when adding to an undefined parent")
	}
	if err := tr.Add("root", "B", nil, nil); err == nil {
		t.Errorf("expecting error when adding a duplicated node")
	}
}
