// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package introduce implements a command
// to infer the introduction points
// of a set of geographically grouped samples.
package introduce

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/matintro/introduce"
	"github.com/js-arias/matintro/mat"
	"github.com/js-arias/matintro/regions"
)

var Command = &command.Command{
	Usage: `introduce -i|--input-mat <tree-file>
	-s|--population-samples <sample-file>
	-o|--output <out-file>
	[-a|--additional-info] [-c|--clade-regions <clade-file>]
	[-C|--origin-confidence <value>] [--seed <value>]`,
	Short: "infer the introduction points of a set of samples",
	Long: `
Command introduce reads a mutation-annotated tree and a set of samples
grouped by geographic region, labels every node of the tree with the
confidence of the node being inside each region, and reports the point of
introduction of each sample, that is the place in which the walk from the
sample towards the root leaves the region.

The flag -i, or --input-mat, is required and sets the file with the
mutation-annotated tree. See 'matintro help tree-files' for a description of
the file format.

The flag -s, or --population-samples, is required and sets the file with the
samples of interest, with an optional region for each sample. See 'matintro
help sample-files' for a description of the file format. With a single
region the report has the columns:

	sample, introduction_node, intro_confidence, parent_confidence,
	distance, clades, mutation_path

With multiple regions the columns region, origins, and origins_confidence
are added before the clades column, reporting the regions in which the
ancestor of the introduction is confidently found, a putative origin of the
introduction.

The flag -o, or --output, is required and sets the output file for the
report.

If the flag -a, or --additional-info, is given, the monophyletic clade size
and the association index of each region will be calculated, as well as the
quantiles of a null distribution of the index built from 100 permutations,
and reported on the standard error. The statistics of the subtree of each
introduction will be added to the report as the columns monophyl_size and
assoc_index. This calculation adds significantly to the run time.

If a file is given with the flag -c, or --clade-regions, a tab-delimited
table will be written to that file, with a row per annotated clade root and
a column per region, holding the support for that clade root being inside
each region.

The flag -C, or --origin-confidence, sets the confidence threshold that
separates the nodes inside a region from the nodes outside of it, both for
the walk from each sample and for the attribution of origins. The default
value is 0.5.

The flag --seed sets the seed of the generator used by the permutations of
the association index. If zero, the default, a new seed will be drawn for
each run.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var inputMAT string
var sampleFile string
var output string
var cladeFile string
var addInfo bool
var minConfidence float64
var seed uint64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&inputMAT, "input-mat", "", "")
	c.Flags().StringVar(&inputMAT, "i", "", "")
	c.Flags().StringVar(&sampleFile, "population-samples", "", "")
	c.Flags().StringVar(&sampleFile, "s", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&cladeFile, "clade-regions", "", "")
	c.Flags().StringVar(&cladeFile, "c", "", "")
	c.Flags().BoolVar(&addInfo, "additional-info", false, "")
	c.Flags().BoolVar(&addInfo, "a", false, "")
	c.Flags().Float64Var(&minConfidence, "origin-confidence", 0.5, "")
	c.Flags().Float64Var(&minConfidence, "C", 0.5, "")
	c.Flags().Uint64Var(&seed, "seed", 0, "")
}

func run(c *command.Command, args []string) error {
	if inputMAT == "" {
		return c.UsageError("expecting input tree file, flag --input-mat")
	}
	if sampleFile == "" {
		return c.UsageError("expecting sample file, flag --population-samples")
	}
	if output == "" {
		return c.UsageError("expecting output file, flag --output")
	}

	t, err := readTree(inputMAT)
	if err != nil {
		return err
	}
	d, err := readSamples(sampleFile)
	if err != nil {
		return err
	}

	opts := introduce.Options{
		AddInfo:       addInfo,
		MinConfidence: minConfidence,
		Seed:          seed,
		Progress:      c.Stderr(),
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}

	var cladeOut *os.File
	if cladeFile != "" {
		cladeOut, err = os.Create(cladeFile)
		if err != nil {
			return err
		}
		opts.CladeRegions = cladeOut
	}

	rows, err := introduce.Find(t, d, opts)
	if err != nil {
		if cladeOut != nil {
			cladeOut.Close()
		}
		return err
	}
	if cladeOut != nil {
		if err := cladeOut.Close(); err != nil {
			return fmt.Errorf("while writing %q: %v", cladeFile, err)
		}
	}

	return writeRows(output, rows)
}

func readTree(name string) (*mat.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := mat.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading %q: %v", name, err)
	}
	return t, nil
}

func readSamples(name string) (*regions.Data, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := regions.ReadSamples(f)
	if err != nil {
		return nil, fmt.Errorf("while reading %q: %v", name, err)
	}
	return d, nil
}

func writeRows(name string, rows []string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = fmt.Errorf("while writing %q: %v", name, e)
		}
	}()

	for _, r := range rows {
		if _, err := f.WriteString(r); err != nil {
			return fmt.Errorf("while writing %q: %v", name, err)
		}
	}
	return nil
}
