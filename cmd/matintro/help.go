// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(sampleFilesGuide)
	app.Add(treeFilesGuide)
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about mutation-annotated tree files",
	Long: `
MatIntro reads mutation-annotated trees from tab-delimited files. Each row of
the file defines a node of the tree, with the following fields:

	- node       the identifier of the node
	- parent     the identifier of the parent node, empty for the root
	- mutations  a comma separated list of the mutations inferred on the
	             ancestral branch of the node
	- clades     a comma separated list of clade annotations, one value
	             per annotation axis; an empty value means the node is
	             not a clade root on that axis

A node must be defined after its parent, and the order of the rows defines
the order of the children of a node. The length of a branch is the number of
mutations of the node at its end.

Here is an example file:

	node	parent	mutations	clades
	node_1
	sample_A	node_1	C8782T
	node_2	node_1	T28144C	20A,
	sample_B	node_2	G26144T
	sample_C	node_2	C14805T
	`,
}

var sampleFilesGuide = &command.Command{
	Usage: "sample-files",
	Short: "about sample files",
	Long: `
A sample file defines the samples of interest and, optionally, the geographic
region in which each sample was collected. The file contains one sample per
line, with one or two columns separated by whitespace (a single tab in
practice):

	- the first column is the sample identifier, a leaf of the tree
	- the second column, if present, is the name of the region of the
	  sample

If a file has a single column, all samples will be assigned to the region
"default". A line with more than two columns is an error. Files with Windows
style line endings are accepted.

Samples that are not leaves of the tree are ignored: they are not counted as
part of any region and produce no introduction.

Here is an example file:

	sample_A	Scotland
	sample_B	Scotland
	sample_C	Wales
	`,
}
