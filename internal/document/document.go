// Package document reads graphs described in YAML:
//
//	nodes:
//	  - name: tone
//	    kind: sine
//	    params: {frequency: 440}
//	  - name: out
//	    kind: output
//	links:
//	  - from: tone
//	    to: out.0
//
// Link endpoints are node names optionally followed by a socket index or
// socket name. Output socket 0 and input socket 0 are used by default.
package document

import (
	"errors"
	"fmt"
	"io/ioutil"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/dudk/soundgraph"
	"github.com/dudk/soundgraph/node"
)

var (
	// ErrUnknownNode is returned when link refers a node not declared in
	// document.
	ErrUnknownNode = errors.New("unknown node")
	// ErrDuplicateName is returned when two nodes have the same name.
	ErrDuplicateName = errors.New("duplicate node name")
	// ErrUnknownSocket is returned when endpoint refers unknown socket.
	ErrUnknownSocket = errors.New("unknown socket")
)

// Document is a graph description.
type Document struct {
	Nodes []Node `yaml:"nodes"`
	Links []Link `yaml:"links,omitempty"`
}

// Node declares a graph node.
type Node struct {
	Name   string                 `yaml:"name"`
	Kind   string                 `yaml:"kind"`
	Params map[string]interface{} `yaml:"params,omitempty"`
}

// Link connects two endpoints, e.g. "tone" to "mix.in2".
type Link struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Parse decodes a document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and decodes a document file.
func Load(path string) (*Document, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return doc, nil
}

// Marshal encodes document to YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Names maps document node names to graph node ids.
type Names map[string]node.ID

// Name returns document name of the graph node.
func (n Names) Name(id node.ID) (string, bool) {
	for name, v := range n {
		if v == id {
			return name, true
		}
	}
	return "", false
}

// Build creates document nodes with registry, adds them to graph and
// connects them.
func Build(doc *Document, r *node.Registry, g *soundgraph.Graph) (Names, error) {
	names := make(Names, len(doc.Nodes))
	nodes := make(map[string]*node.Node, len(doc.Nodes))
	for _, dn := range doc.Nodes {
		if _, ok := names[dn.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, dn.Name)
		}
		n, err := r.New(dn.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", dn.Name, err)
		}
		params := make([]string, 0, len(dn.Params))
		for name := range dn.Params {
			params = append(params, name)
		}
		sort.Strings(params)
		for _, name := range params {
			if err := n.Set(name, dn.Params[name]); err != nil {
				return nil, fmt.Errorf("node %q param %q: %w", dn.Name, name, err)
			}
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("node %q: %w", dn.Name, err)
		}
		names[dn.Name] = n.ID()
		nodes[dn.Name] = n
	}

	for _, l := range doc.Links {
		from, output, err := endpoint(nodes, l.From, (*node.Node).Outputs)
		if err != nil {
			return nil, fmt.Errorf("link from %q: %w", l.From, err)
		}
		to, input, err := endpoint(nodes, l.To, (*node.Node).Inputs)
		if err != nil {
			return nil, fmt.Errorf("link to %q: %w", l.To, err)
		}
		if _, err := g.Connect(from.ID(), output, to.ID(), input); err != nil {
			return nil, fmt.Errorf("link %q to %q: %w", l.From, l.To, err)
		}
	}
	return names, nil
}

// endpoint finds node and socket index. The suffix after the last dot is
// a socket unless the whole string is a node name.
func endpoint(nodes map[string]*node.Node, s string, sockets func(*node.Node) []node.Socket) (*node.Node, int, error) {
	if n, ok := nodes[s]; ok {
		return n, 0, nil
	}
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownNode, s)
	}
	name, socket := s[:i], s[i+1:]
	n, ok := nodes[name]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	if index, err := strconv.Atoi(socket); err == nil {
		return n, index, nil
	}
	for _, sock := range sockets(n) {
		if strings.EqualFold(sock.Name, socket) {
			return n, sock.Index, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: %q of %v", ErrUnknownSocket, socket, n.Kind())
}
