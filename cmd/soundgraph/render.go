package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dudk/soundgraph"
	"github.com/dudk/soundgraph/render"
)

type renderCommand struct {
	*environment
	graph string
	sink  string
	path  string
}

func (cmd *renderCommand) Name() string {
	return "render"
}

func (cmd *renderCommand) Help() string {
	return "Render graph output to wav or mp3 file"
}

func (cmd *renderCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.graph, "graph", "", "graph document to load (required)")
	fs.StringVar(&cmd.sink, "sink", "", "output name to render, first output by default")
	fs.StringVar(&cmd.path, "out", "", "file to save rendered audio (required)")
}

func (cmd *renderCommand) Run() error {
	output, err := cmd.output()
	if err != nil {
		return err
	}
	s, err := cmd.load(cmd.graph, cmd.cfg.Backend())
	if err != nil {
		return err
	}
	var requested []string
	if cmd.sink != "" {
		requested = append(requested, cmd.sink)
	}
	names, err := s.sinks(requested)
	if err != nil {
		return err
	}

	trigger := soundgraph.NewTrigger(s.graph, render.NewDevice(cmd.cfg.Renderer(), output))
	played, err := trigger.Play(s.names[names[0]])
	if err != nil {
		return fmt.Errorf("%v: %w", names[0], err)
	}
	if !played {
		fmt.Fprintf(cmd.out, "%s: nothing to render\n", names[0])
		return nil
	}
	fmt.Fprintf(cmd.out, "%s: saved to %s\n", names[0], cmd.path)
	return nil
}

func (cmd *renderCommand) output() (render.Output, error) {
	if cmd.path == "" {
		return nil, errors.New("missing -out required flag")
	}
	switch ext := strings.ToLower(filepath.Ext(cmd.path)); ext {
	case ".wav":
		return cmd.cfg.Wav(cmd.path), nil
	case ".mp3":
		return cmd.cfg.MP3(cmd.path), nil
	default:
		return nil, fmt.Errorf("%w: %q", render.ErrUnsupportedFile, cmd.path)
	}
}
