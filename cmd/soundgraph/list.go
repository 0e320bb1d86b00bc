package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/dudk/soundgraph/node"
)

type listCommand struct {
	*environment
	params bool
}

func (cmd *listCommand) Name() string {
	return "list"
}

func (cmd *listCommand) Help() string {
	return "Show the list of available node kinds"
}

func (cmd *listCommand) Register(fs *flag.FlagSet) {
	fs.BoolVar(&cmd.params, "params", false, "show parameters of every kind")
}

func (cmd *listCommand) Run() error {
	registry := node.Standard()
	defer registry.Close()
	for _, category := range []node.Category{node.CategoryIO, node.CategoryFilter, node.CategorySequence} {
		fmt.Fprintf(cmd.out, "%s:\n", category)
		for _, k := range registry.Category(category) {
			spec := k.Spec()
			fmt.Fprintf(cmd.out, "\t%s\t%s\n", spec.Name, spec.Label)
			if !cmd.params {
				continue
			}
			if len(spec.Inputs) > 0 {
				fmt.Fprintf(cmd.out, "\t\tinputs: %s\n", strings.Join(spec.Inputs, ", "))
			}
			for _, p := range spec.Params {
				fmt.Fprintf(cmd.out, "\t\t%s %v = %v\n", p.Name, p.Type, p.Default)
			}
		}
	}
	return nil
}
