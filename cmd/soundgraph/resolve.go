package main

import (
	"flag"
	"fmt"
)

type resolveCommand struct {
	*environment
	graph   string
	sinks   nameList
	tree    bool
	metrics bool
}

func (cmd *resolveCommand) Name() string {
	return "resolve"
}

func (cmd *resolveCommand) Help() string {
	return "Print composed streams of graph nodes"
}

func (cmd *resolveCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.graph, "graph", "", "graph document to load (required)")
	fs.Var(&cmd.sinks, "node", "comma separated node names to resolve, all outputs by default")
	fs.BoolVar(&cmd.tree, "tree", false, "print streams as indented trees")
	fs.BoolVar(&cmd.metrics, "metrics", false, "print resolution counters")
}

func (cmd *resolveCommand) Run() error {
	s, err := cmd.load(cmd.graph, cmd.cfg.Backend())
	if err != nil {
		return err
	}
	names, err := s.sinks(cmd.sinks)
	if err != nil {
		return err
	}
	for _, name := range names {
		result, err := s.graph.Resolve(s.names[name])
		if err != nil {
			return fmt.Errorf("%v: %w", name, err)
		}
		d, ok := result.Get()
		switch {
		case !ok:
			fmt.Fprintf(cmd.out, "%s: %v\n", name, result)
		case cmd.tree:
			fmt.Fprintf(cmd.out, "%s:\n%s", name, d.Tree())
		default:
			fmt.Fprintf(cmd.out, "%s: %v\n", name, d)
		}
	}
	if cmd.metrics {
		cmd.printMetrics()
	}
	return nil
}
