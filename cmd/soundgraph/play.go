package main

import (
	"flag"
	"fmt"

	"github.com/dudk/soundgraph"
	"github.com/dudk/soundgraph/node"
	"github.com/dudk/soundgraph/render"
)

type playCommand struct {
	*environment
	graph string
	sinks nameList
}

func (cmd *playCommand) Name() string {
	return "play"
}

func (cmd *playCommand) Help() string {
	return "Play graph outputs with default audio device"
}

func (cmd *playCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.graph, "graph", "", "graph document to load (required)")
	fs.Var(&cmd.sinks, "sink", "comma separated output names to play, all outputs by default")
}

func (cmd *playCommand) Run() error {
	s, err := cmd.load(cmd.graph, cmd.cfg.Backend())
	if err != nil {
		return err
	}
	names, err := s.sinks(cmd.sinks)
	if err != nil {
		return err
	}
	var player render.Output = cmd.cfg.Player()
	if cmd.player != nil {
		player = cmd.player
	}
	sinks := make([]node.ID, 0, len(names))
	for _, name := range names {
		sinks = append(sinks, s.names[name])
	}
	trigger := soundgraph.NewTrigger(s.graph, render.NewDevice(cmd.cfg.Renderer(), player))
	played, err := trigger.PlayAll(sinks...)
	fmt.Fprintf(cmd.out, "played %d of %d outputs\n", played, len(sinks))
	return err
}
