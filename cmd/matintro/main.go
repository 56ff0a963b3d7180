// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// MatIntro is a tool to infer geographic introductions
// over a mutation-annotated tree.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/matintro/cmd/matintro/introduce"
)

var app = &command.Command{
	Usage: "matintro <command> [<argument>...]",
	Short: "a tool to infer introductions on a mutation-annotated tree",
}

func init() {
	app.Add(introduce.Command)
}

func main() {
	app.Main()
}
