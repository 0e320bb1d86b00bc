package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/dudk/soundgraph"
	"github.com/dudk/soundgraph/config"
	"github.com/dudk/soundgraph/internal/document"
	"github.com/dudk/soundgraph/log"
	"github.com/dudk/soundgraph/metric"
	"github.com/dudk/soundgraph/node"
	"github.com/dudk/soundgraph/render"
	"github.com/dudk/soundgraph/stream"
)

var (
	errMissingGraph = errors.New("missing -graph required flag")
	errNoSinks      = errors.New("graph has no output nodes")
)

// environment is shared by all commands.
type environment struct {
	cfg config.Config
	out io.Writer
	// player overrides the default audio device.
	player render.Output
}

// session is a graph built from document.
type session struct {
	graph    *soundgraph.Graph
	doc      *document.Document
	names    document.Names
	registry *node.Registry
}

func (e *environment) load(path string, backend stream.Backend) (*session, error) {
	if path == "" {
		return nil, errMissingGraph
	}
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	registry := node.Standard()
	g := soundgraph.New(backend,
		soundgraph.WithName(filepath.Base(path)),
		soundgraph.WithRegistry(registry),
		soundgraph.WithLogger(log.GetLogger()),
		soundgraph.WithMetrics(),
	)
	names, err := document.Build(doc, registry, g)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return &session{
		graph:    g,
		doc:      doc,
		names:    names,
		registry: registry,
	}, nil
}

// sinks returns requested node names. If none requested, all sink nodes
// are returned in document order.
func (s *session) sinks(requested []string) ([]string, error) {
	if len(requested) > 0 {
		for _, name := range requested {
			if _, ok := s.names[name]; !ok {
				return nil, fmt.Errorf("%w: %q", document.ErrUnknownNode, name)
			}
		}
		return requested, nil
	}
	var result []string
	for _, n := range s.doc.Nodes {
		k, err := s.registry.Lookup(n.Kind)
		if err == nil && k.Spec().Class == node.Sink {
			result = append(result, n.Name)
		}
	}
	if len(result) == 0 {
		return nil, errNoSinks
	}
	return result, nil
}

func (e *environment) printMetrics() {
	all := metric.GetAll()
	kinds := make([]string, 0, len(all))
	for kind := range all {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		counters := all[kind]
		fmt.Fprintf(e.out, "%s:", kind)
		for _, counter := range []string{
			metric.ResolveCounter,
			metric.AbsentCounter,
			metric.FailureCounter,
			metric.DurationCounter,
		} {
			fmt.Fprintf(e.out, " %s=%s", counter, counters[counter])
		}
		fmt.Fprintln(e.out)
	}
}
