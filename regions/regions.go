// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package regions provides a collection of samples
// grouped by the geographic region
// in which they were collected.
package regions

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

// DefReg is the region assigned to samples
// from a single column samples file.
const DefReg = "default"

// Data is a collection of samples
// grouped by geographic region.
// Samples of a region keep their input order.
type Data struct {
	regions map[string][]string
}

// New creates a new empty data set.
func New() *Data {
	return &Data{
		regions: make(map[string][]string),
	}
}

// Add adds a sample to a region.
// Duplicated samples are kept,
// callers that require uniqueness should use SampleSet.
func (d *Data) Add(region, sample string) {
	region = strings.TrimSpace(region)
	sample = strings.TrimSpace(sample)
	if region == "" || sample == "" {
		return
	}
	d.regions[region] = append(d.regions[region], sample)
}

// Regions returns the defined region names,
// sorted.
func (d *Data) Regions() []string {
	rs := make([]string, 0, len(d.regions))
	for r := range d.regions {
		rs = append(rs, r)
	}
	slices.Sort(rs)
	return rs
}

// Samples returns the samples of a region
// in their input order.
func (d *Data) Samples(region string) []string {
	return slices.Clone(d.regions[region])
}

// SampleSet returns the samples of a region
// as a set.
func (d *Data) SampleSet(region string) map[string]bool {
	set := make(map[string]bool, len(d.regions[region]))
	for _, s := range d.regions[region] {
		set[s] = true
	}
	return set
}

// Len returns the number of defined regions.
func (d *Data) Len() int {
	return len(d.regions)
}

// ReadSamples reads a samples file.
//
// The file contains one sample per line.
// The first column is the sample identifier
// and the second column,
// if present,
// is the name of the region of the sample.
// Columns are separated by any whitespace
// (a single tab in practice).
// If a line has a single column,
// the sample is assigned to the region "default".
// A line with more than two columns is an error.
// Windows style line endings are accepted.
func ReadSamples(r io.Reader) (*Data, error) {
	d := New()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	for ln := 1; sc.Scan(); ln++ {
		// Fields treats '\r' as a separator,
		// so CRLF line endings are stripped here as well.
		cols := strings.Fields(sc.Text())
		if len(cols) == 0 {
			continue
		}
		if len(cols) > 2 {
			return nil, fmt.Errorf("on line %d: got %d columns, want 1 or 2", ln, len(cols))
		}

		region := DefReg
		if len(cols) == 2 {
			region = cols[1]
		}
		d.Add(region, cols[0])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("while reading data: %v", err)
	}
	return d, nil
}
