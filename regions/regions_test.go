// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package regions_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/matintro/regions"
)

func TestReadSamples(t *testing.T) {
	data := "sampleB\tScotland\nsampleC\tWales\nsampleA\tScotland\nsampleB\tScotland\n"
	d, err := regions.ReadSamples(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unable to read samples: %v", err)
	}

	rs := []string{"Scotland", "Wales"}
	if g := d.Regions(); !reflect.DeepEqual(g, rs) {
		t.Errorf("regions: got %v, want %v", g, rs)
	}

	// duplicated samples are kept in the input order
	scotland := []string{"sampleB", "sampleA", "sampleB"}
	if g := d.Samples("Scotland"); !reflect.DeepEqual(g, scotland) {
		t.Errorf("samples of %q: got %v, want %v", "Scotland", g, scotland)
	}
	set := map[string]bool{"sampleB": true, "sampleA": true}
	if g := d.SampleSet("Scotland"); !reflect.DeepEqual(g, set) {
		t.Errorf("sample set of %q: got %v, want %v", "Scotland", g, set)
	}
	wales := []string{"sampleC"}
	if g := d.Samples("Wales"); !reflect.DeepEqual(g, wales) {
		t.Errorf("samples of %q: got %v, want %v", "Wales", g, wales)
	}
}

func TestReadSamplesSingleColumn(t *testing.T) {
	data := "sampleA\nsampleB\n\nsampleC\n"
	d, err := regions.ReadSamples(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unable to read samples: %v", err)
	}

	rs := []string{regions.DefReg}
	if g := d.Regions(); !reflect.DeepEqual(g, rs) {
		t.Errorf("regions: got %v, want %v", g, rs)
	}
	samples := []string{"sampleA", "sampleB", "sampleC"}
	if g := d.Samples(regions.DefReg); !reflect.DeepEqual(g, samples) {
		t.Errorf("samples: got %v, want %v", g, samples)
	}
}

func TestReadSamplesCRLF(t *testing.T) {
	data := "sampleB\tR1\r\nsampleC\r\n"
	d, err := regions.ReadSamples(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unable to read samples: %v", err)
	}

	if g := d.Samples("R1"); !reflect.DeepEqual(g, []string{"sampleB"}) {
		t.Errorf("samples of %q: got %v, want %v", "R1", g, []string{"sampleB"})
	}
	if g := d.Samples(regions.DefReg); !reflect.DeepEqual(g, []string{"sampleC"}) {
		t.Errorf("samples of %q: got %v, want %v", regions.DefReg, g, []string{"sampleC"})
	}
}

func TestReadSamplesTooManyColumns(t *testing.T) {
	data := "sampleA\tR1\nsampleB\tR1\textra\n"
	if _, err := regions.ReadSamples(strings.NewReader(data)); err == nil {
		t.Errorf("expecting error on a three column line")
	}
}
