// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package assign implements the ancestral state inference
// of a geographic region over a mutation-annotated tree.
//
// Each node of the tree receives a confidence value
// between 0 and 1
// of being inside the region,
// based on the samples collected in that region.
package assign

import (
	"fmt"
	"math"

	"github.com/js-arias/matintro/mat"
)

// Region labels every node of the tree
// with the confidence of the node being inside a region,
// defined by the set of sample identifiers
// collected in that region.
//
// The rules are:
//
//  1. A leaf is 1 if it is part of the sample set,
//     and 0 otherwise.
//  2. If all descendant leaves of a node are in the set,
//     the node is 1.
//  3. If no descendant leaf of a node is in the set,
//     the node is 0.
//  4. Otherwise the confidence is a balance
//     between the distance to the nearest leaf of each state,
//     relative to the number of descendant leaves of that state:
//     c = 1 / (1 + (mi/iL)/(mo/oL)).
//     An identical descendant sample
//     (i.e., at branch distance 0)
//     always defines the state of the node.
//
// The nearest leaf of a state is the first leaf of that state
// in the depth-first expansion of the node,
// and its distance is the number of mutations
// on the path between the node and the leaf.
func Region(t *mat.Tree, samples map[string]bool) (map[string]float64, error) {
	type subtree struct {
		in, out int // descendant leaves of each state

		// branch distance to the first IN and OUT leaf
		// in depth-first order,
		// -1 if the subtree has no leaf of that state
		firstIn, firstOut int
	}
	sub := make(map[string]*subtree, t.Len())
	a := make(map[string]float64, t.Len())

	// reverse pre-order,
	// so children are always visited before their parent
	dfs := t.DepthFirst("")
	for i := len(dfs) - 1; i >= 0; i-- {
		id := dfs[i]
		st := &subtree{firstIn: -1, firstOut: -1}

		if t.IsTerm(id) {
			if samples[id] {
				st.in = 1
				st.firstIn = 0
				a[id] = 1
			} else {
				st.out = 1
				st.firstOut = 0
				a[id] = 0
			}
			sub[id] = st
			continue
		}

		for _, c := range t.Children(id) {
			cs, ok := sub[c]
			if !ok {
				return nil, fmt.Errorf("assignment: node %q: child %q not visited", id, c)
			}
			st.in += cs.in
			st.out += cs.out
			if st.firstIn < 0 && cs.firstIn >= 0 {
				st.firstIn = cs.firstIn + t.NumMutations(c)
			}
			if st.firstOut < 0 && cs.firstOut >= 0 {
				st.firstOut = cs.firstOut + t.NumMutations(c)
			}
		}
		sub[id] = st

		switch {
		case st.out == 0:
			a[id] = 1
		case st.in == 0:
			a[id] = 0
		case st.firstIn == 0:
			// an identical IN sample
			a[id] = 1
		case st.firstOut == 0:
			a[id] = 0
		default:
			vir := float64(st.firstIn) / float64(st.in)
			vor := float64(st.firstOut) / float64(st.out)
			r := vir / vor
			c := 1 / (1 + r)
			if math.IsNaN(c) {
				return nil, fmt.Errorf("assignment: node %q: invalid confidence: mi %d, mo %d, il %d, ol %d, vir %g, vor %g, r %g",
					id, st.firstIn, st.firstOut, st.in, st.out, vir, vor, r)
			}
			a[id] = c
		}
	}
	return a, nil
}
