// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package assoc implements phylogeny-trait association statistics
// over a mutation-annotated tree
// with an ancestral region assignment.
//
// The association index was introduced by Wang et al. (2005)
// and the monophyletic clade size by Salemi et al. (2005).
// Parker et al. (2008) gives a good summary of both.
package assoc

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"slices"
	"sync"

	"github.com/js-arias/matintro/mat"
	"gonum.org/v1/gonum/stat"
)

// MonophyleticClade returns the monophyletic clade size
// on the subtree rooted at the indicated node
// (an empty identifier uses the whole tree),
// computed as the longest run of consecutive IN leaves
// (assignment of 0.5 or more)
// in the depth-first order of the leaves.
//
// As the leaves of a clade are contiguous
// in that ordering,
// no clade made entirely of IN leaves
// is larger than the returned value;
// a run can also span leaves of different clades.
func MonophyleticClade(t *mat.Tree, a map[string]float64, subroot string) int {
	var biggest, current int
	for _, l := range t.Terms(subroot) {
		v, ok := a[l]
		if !ok {
			continue
		}
		if v >= 0.5 {
			current++
			continue
		}
		if current > biggest {
			biggest = current
		}
		current = 0
	}
	if current > biggest {
		biggest = current
	}
	return biggest
}

// Index returns the association index
// of a region assignment
// on the subtree rooted at the indicated node
// (an empty identifier uses the whole tree):
//
//	AI = sum[internal n] (1 - max(in, out)/total) / 2^(total-1)
//
// in which in and out are the number of IN and OUT leaves
// descended from n.
// The index is small for a strong phylogeny-trait correlation.
//
// Leaf counts are accumulated over a reverse breadth-first sweep,
// so each node is visited only once.
func Index(t *mat.Tree, a map[string]float64, subroot string) (float64, error) {
	return index(t, a, subroot, nil)
}

// PermutedIndex returns the association index
// with the leaf states drawn at random:
// each direct leaf child is IN with a probability
// equal to the frequency of IN leaves on the subtree.
// Repeated calls build a null distribution of the index.
func PermutedIndex(t *mat.Tree, a map[string]float64, subroot string, rng *rand.Rand) (float64, error) {
	return index(t, a, subroot, rng)
}

func index(t *mat.Tree, a map[string]float64, subroot string, rng *rand.Rand) (float64, error) {
	bfs := t.BreadthFirst(subroot)

	var p float64
	if rng != nil {
		var leaves, inLeaves int
		for _, id := range bfs {
			if !t.IsTerm(id) {
				continue
			}
			leaves++
			if a[id] > 0.5 {
				inLeaves++
			}
		}
		if leaves > 0 {
			p = float64(inLeaves) / float64(leaves)
		}
	}

	// in a reverse breadth-first order
	// all children of a node are visited
	// before the node itself
	tracker := make(map[string][2]int, len(bfs))
	var total float64
	for i := len(bfs) - 1; i >= 0; i-- {
		id := bfs[i]
		if t.IsTerm(id) {
			continue
		}

		var in, out int
		for _, c := range t.Children(id) {
			if t.IsTerm(c) {
				switch {
				case rng != nil:
					if rng.Float64() < p {
						in++
					} else {
						out++
					}
				case a[c] > 0.5:
					in++
				default:
					out++
				}
				continue
			}
			cc, ok := tracker[c]
			if !ok {
				return 0, fmt.Errorf("association index: node %q: child %q not visited", id, c)
			}
			in += cc[0]
			out += cc[1]
		}
		tracker[id] = [2]int{in, out}

		tot := float64(in + out)
		total += (1 - math.Max(float64(in), float64(out))/tot) / math.Pow(2, tot-1)
	}
	return total, nil
}

// NullQuantiles runs the indicated number of permutations
// of the association index over the whole tree
// and returns the 5, 25, 50, 75, and 95 percentiles
// of the resulting null distribution.
//
// Each permutation uses its own generator
// seeded from the given seed,
// so the result is reproducible
// regardless of the scheduling of the workers.
func NullQuantiles(t *mat.Tree, a map[string]float64, perms int, seed uint64, cpu int) ([]float64, error) {
	if perms <= 0 {
		return nil, errors.New("null distribution: no permutations")
	}
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}

	vals := make([]float64, perms)
	errs := make([]error, cpu)
	permChan := make(chan int, cpu*2)
	var wg sync.WaitGroup
	for w := range cpu {
		go func(w int) {
			for i := range permChan {
				rng := rand.New(rand.NewPCG(seed, seed+uint64(i)))
				v, err := index(t, a, "", rng)
				if err != nil && errs[w] == nil {
					errs[w] = err
				}
				vals[i] = v
				wg.Done()
			}
		}(w)
	}
	for i := range perms {
		wg.Add(1)
		permChan <- i
	}
	wg.Wait()
	close(permChan)

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(vals)
	qs := make([]float64, 0, len(nullProbs))
	for _, p := range nullProbs {
		qs = append(qs, stat.Quantile(p, stat.Empirical, vals, nil))
	}
	return qs, nil
}

var nullProbs = []float64{0.05, 0.25, 0.50, 0.75, 0.95}
