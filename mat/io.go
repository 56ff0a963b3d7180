// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mat

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadTSV reads a mutation-annotated tree from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - node, the identifier of the node
//   - parent, the identifier of the parent node,
//     empty for the root
//   - mutations, a comma separated list of mutations
//     on the ancestral branch of the node
//   - clades, a comma separated list of clade annotations,
//     empty values indicate that the node is not a clade root
//     on that annotation axis
//
// A node must be defined after its parent.
// Sibling order is the row order of the file.
//
// Here is an example file:
//
//	node	parent	mutations	clades
//	node_1
//	sample_A	node_1	C8782T
//	node_2	node_1	T28144C	20A,
//	sample_B	node_2	G26144T
//	sample_C	node_2	C14805T
func ReadTSV(r io.Reader) (*Tree, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	// rows are ragged,
	// the root has no parent
	// and most nodes have no clade annotation
	tab.FieldsPerRecord = -1

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range []string{"node", "parent", "mutations", "clades"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var t *Tree
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		id := strings.TrimSpace(field(row, fields["node"]))
		if id == "" {
			continue
		}
		parent := strings.TrimSpace(field(row, fields["parent"]))
		mutations := splitList(field(row, fields["mutations"]))
		clades := splitClades(field(row, fields["clades"]))

		if parent == "" {
			if t != nil {
				return nil, fmt.Errorf("on row %d: node %q: multiple root nodes", ln, id)
			}
			t = New(id)
			if err := t.SetMutations(id, mutations); err != nil {
				return nil, fmt.Errorf("on row %d: %v", ln, err)
			}
			if err := t.SetClades(id, clades); err != nil {
				return nil, fmt.Errorf("on row %d: %v", ln, err)
			}
			continue
		}
		if t == nil {
			return nil, fmt.Errorf("on row %d: node %q: parent %q defined before root", ln, id, parent)
		}
		if err := t.Add(parent, id, mutations, clades); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	if t == nil {
		return nil, errors.New("while reading data: tree without nodes")
	}
	return t, nil
}

// TSV writes a mutation-annotated tree as a TSV file.
// Nodes are written in depth-first order,
// so a node is always written after its parent.
func (t *Tree) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"node", "parent", "mutations", "clades"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, id := range t.DepthFirst("") {
		n := t.nodes[id]
		row := []string{
			id,
			t.Parent(id),
			strings.Join(n.mutations, ","),
			strings.Join(n.clades, ","),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing node %q: %v", id, err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	list := strings.Split(s, ",")
	for i, v := range list {
		list[i] = strings.TrimSpace(v)
	}
	return list
}

// SplitClades keeps empty values,
// as clade annotations are positional.
func splitClades(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	list := strings.Split(s, ",")
	for i, v := range list {
		list[i] = strings.TrimSpace(v)
	}
	return list
}
