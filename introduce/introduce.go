// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package introduce infers the introduction point
// of a set of geographically grouped samples
// on a mutation-annotated tree.
//
// For each region,
// every node of the tree receives the confidence
// of being inside the region,
// and then each sample of the region is walked
// towards the root
// up to the first node outside the region.
// The last node inside the region is the introduction point
// of the sample.
package introduce

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/matintro/assign"
	"github.com/js-arias/matintro/assoc"
	"github.com/js-arias/matintro/mat"
	"github.com/js-arias/matintro/regions"
)

// number of permutations used to build
// the null distribution of the association index
const numPerms = 100

// Options configures an introduction inference run.
type Options struct {
	// AddInfo enables the association statistics:
	// per region monophyletic clade size,
	// association index
	// and its permutation null,
	// and the per introduction statistics
	// on the introduction subtree.
	AddInfo bool

	// MinConfidence is the threshold
	// that separates IN from OUT nodes
	// on the sample walk
	// and on the attribution of origins.
	MinConfidence float64

	// Seed of the permutation generator.
	Seed uint64

	// CPU is the number of workers
	// used for the permutations,
	// zero means all available processors.
	CPU int

	// Progress receives the per region progress messages,
	// nil discards them.
	Progress io.Writer

	// CladeRegions,
	// if not nil,
	// receives a table with the support
	// for each annotated clade root
	// being inside each region.
	CladeRegions io.Writer
}

// Find infers the introduction point
// of every sample of every region of the data set
// and returns the introduction report,
// one tab-delimited row per sample,
// with the header as the first row.
//
// Regions are processed in lexicographic order.
// Samples of the input that are not leaves of the tree
// produce no row.
func Find(t *mat.Tree, d *regions.Data, opts Options) ([]string, error) {
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}

	names := d.Regions()
	asg := make(map[string]map[string]float64, len(names))
	for _, r := range names {
		fmt.Fprintf(progress, "Processing region %s with %d total samples\n", r, len(d.Samples(r)))
		a, err := assign.Region(t, d.SampleSet(r))
		if err != nil {
			return nil, fmt.Errorf("region %q: %v", r, err)
		}

		if opts.AddInfo {
			mc := assoc.MonophyleticClade(t, a, "")
			ai, err := assoc.Index(t, a, "")
			if err != nil {
				return nil, fmt.Errorf("region %q: %v", r, err)
			}
			fmt.Fprintf(progress, "Region largest monophyletic clade: %d, regional association index: %f\n", mc, ai)

			qs, err := assoc.NullQuantiles(t, a, numPerms, opts.Seed, opts.CPU)
			if err != nil {
				return nil, fmt.Errorf("region %q: %v", r, err)
			}
			fmt.Fprintf(progress, "Real value %f. Quantiles of random expected AI for this sample size: %f, %f, %f, %f, %f\n",
				ai, qs[0], qs[1], qs[2], qs[3], qs[4])
		}
		asg[r] = a
	}

	if opts.CladeRegions != nil {
		fmt.Fprintf(progress, "Clade root region support requested; recording...\n")
		if err := CladeRegions(t, asg, names, opts.CladeRegions); err != nil {
			return nil, err
		}
	}

	ins := originIndex(asg, names, opts.MinConfidence)
	fmt.Fprintf(progress, "Regions processed; identifying introductions.\n")

	multi := len(names) > 1
	rows := []string{header(multi, opts.AddInfo)}
	for _, r := range names {
		w := &walker{
			t:     t,
			a:     asg[r],
			ins:   ins,
			opts:  opts,
			multi: multi,

			region: r,
			mc:     make(map[string]int),
			ai:     make(map[string]float64),
		}
		for _, s := range d.Samples(r) {
			row, err := w.walk(s)
			if err != nil {
				return nil, fmt.Errorf("region %q: sample %q: %v", r, s, err)
			}
			if row == "" {
				continue
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// An origin stores the regions
// in which a node is confidently IN,
// with the per region confidence,
// in region order.
type origin struct {
	regions []string
	conf    []float64
}

// OriginIndex collects,
// for every node that is IN at least one region,
// the regions in which the confidence of the node
// is over the threshold.
// It is used to attribute an origin to an introduction
// without scanning every assignment map per sample.
func originIndex(asg map[string]map[string]float64, names []string, minConf float64) map[string]*origin {
	ins := make(map[string]*origin)
	for _, r := range names {
		for id, v := range asg[r] {
			if v <= minConf {
				continue
			}
			o, ok := ins[id]
			if !ok {
				o = &origin{}
				ins[id] = o
			}
			o.regions = append(o.regions, r)
			o.conf = append(o.conf, v)
		}
	}
	return ins
}

func header(multi, addInfo bool) string {
	cols := []string{"sample", "introduction_node", "intro_confidence", "parent_confidence", "distance"}
	if multi {
		cols = append(cols, "region", "origins", "origins_confidence")
	}
	cols = append(cols, "clades", "mutation_path")
	if addInfo {
		cols = append(cols, "monophyl_size", "assoc_index")
	}
	return strings.Join(cols, "\t") + "\n"
}

type walker struct {
	t     *mat.Tree
	a     map[string]float64
	ins   map[string]*origin
	opts  Options
	multi bool

	region string

	// per introduction statistics,
	// memoized by the introduction node
	mc map[string]int
	ai map[string]float64
}

// Walk looks for the introduction point of a sample
// moving from the sample towards the root
// while the assigned confidence stays at or over the threshold.
// It returns the report row of the sample,
// or an empty string if the sample is not a leaf of the tree.
func (w *walker) walk(s string) (string, error) {
	if !w.t.IsTerm(s) {
		return "", nil
	}
	path := w.t.RSearch(s)

	lastEncountered := s
	lastNode := ""
	lastAnc := 1.0
	traversed := 0
	for _, id := range path {
		var anc float64
		if w.t.IsRoot(id) {
			// at the root,
			// the root itself is the introduction point
			lastEncountered = id
			anc = 0
		} else {
			anc = w.a[id]
		}
		if anc >= w.opts.MinConfidence {
			lastEncountered = id
			lastNode = id
			lastAnc = anc
			traversed += w.t.NumMutations(id)
			continue
		}
		return w.row(s, id, lastEncountered, lastNode, lastAnc, anc, traversed)
	}
	return "", nil
}

// Row builds the report row of a sample
// with an introduction found at the walk of node id.
func (w *walker) row(s, id, lastEncountered, lastNode string, lastAnc, anc float64, traversed int) (string, error) {
	origins := ""
	originsConf := ""
	if w.multi && !w.t.IsRoot(id) {
		if o, ok := w.ins[id]; ok {
			origins = strings.Join(o.regions, ",")
			var sb strings.Builder
			for _, v := range o.conf {
				sb.WriteString(formatFloat(v))
				sb.WriteByte(',')
			}
			originsConf = sb.String()
		}
	}
	if origins == "" {
		// no region has the pre-introduction node as IN
		origins = "indeterminate"
		originsConf = "0"
	}

	var clades []string
	var mutPath strings.Builder
	for _, a := range w.t.RSearch(id) {
		// the path is built from the parent
		// of the introduction node
		// towards the root,
		// '<' indicates the reversed direction
		mutPath.WriteString(strings.Join(w.t.Mutations(a), ","))
		mutPath.WriteByte('<')
		for _, ann := range w.t.Clades(a) {
			if ann != "" {
				clades = append(clades, ann)
			}
		}
	}
	cl := "none"
	if len(clades) > 0 {
		cl = strings.Join(clades, ",")
	}

	var mc int
	var ai float64
	if w.opts.AddInfo {
		var ok bool
		if mc, ok = w.mc[lastNode]; !ok {
			mc = assoc.MonophyleticClade(w.t, w.a, lastNode)
			w.mc[lastNode] = mc
		}
		if ai, ok = w.ai[lastNode]; !ok {
			var err error
			ai, err = assoc.Index(w.t, w.a, lastNode)
			if err != nil {
				return "", err
			}
			w.ai[lastNode] = ai
		}
	}

	cols := []string{
		s,
		lastEncountered,
		formatFloat(lastAnc),
		formatFloat(anc),
		strconv.Itoa(traversed),
	}
	if w.multi {
		cols = append(cols, w.region, origins, originsConf)
	}
	cols = append(cols, cl, mutPath.String())
	if w.opts.AddInfo {
		cols = append(cols, strconv.Itoa(mc), formatFloat(ai))
	}
	return strings.Join(cols, "\t") + "\n", nil
}

// CladeRegions writes a tab-delimited table
// with a row for each clade root annotation of the tree
// and a column per region,
// holding the support for the clade root
// being inside the region.
// Every cell,
// the last one of a row included,
// is terminated by a tab.
func CladeRegions(t *mat.Tree, asg map[string]map[string]float64, names []string, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("clade\t")
	for _, r := range names {
		sb.WriteString(r)
		sb.WriteByte('\t')
	}
	sb.WriteByte('\n')
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("while writing clade regions: %v", err)
	}

	for _, id := range t.DepthFirst("") {
		for _, ca := range t.Clades(id) {
			if ca == "" {
				continue
			}
			sb.Reset()
			sb.WriteString(ca)
			sb.WriteByte('\t')
			for _, r := range names {
				sb.WriteString(formatFloat(asg[r][id]))
				sb.WriteByte('\t')
			}
			sb.WriteByte('\n')
			if _, err := io.WriteString(w, sb.String()); err != nil {
				return fmt.Errorf("while writing clade regions: %v", err)
			}
		}
	}
	return nil
}

// FormatFloat formats a confidence value
// with six significant digits.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
