package soundgraph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dudk/soundgraph"
	"github.com/dudk/soundgraph/log"
	"github.com/dudk/soundgraph/mock"
	"github.com/dudk/soundgraph/node"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func add(t *testing.T, g *soundgraph.Graph, kind string, params map[string]interface{}) *node.Node {
	t.Helper()
	n, err := g.Add(kind)
	require.NoError(t, err)
	for name, v := range params {
		require.NoError(t, g.SetParam(n.ID(), name, v))
	}
	return n
}

func connect(t *testing.T, g *soundgraph.Graph, from *node.Node, to *node.Node, input int) soundgraph.Link {
	t.Helper()
	l, err := g.Connect(from.ID(), 0, to.ID(), input)
	require.NoError(t, err)
	return l
}

func TestAddNode(t *testing.T) {
	g := soundgraph.New(&mock.Backend{}, soundgraph.WithName("test"), soundgraph.WithLogger(log.GetLogger()))
	tone := add(t, g, "sine", nil)
	out := add(t, g, "Output", nil)
	assert.Equal(t, []*node.Node{tone, out}, g.Nodes())

	n, err := g.Node(tone.ID())
	assert.Nil(t, err)
	assert.Equal(t, tone, n)

	_, err = g.Add("theremin")
	assert.True(t, errors.Is(err, node.ErrUnknownKind))

	err = g.AddNode(tone)
	assert.True(t, errors.Is(err, soundgraph.ErrDuplicateNode))

	_, err = g.Node("missing")
	assert.True(t, errors.Is(err, soundgraph.ErrNodeNotFound))
	assert.True(t, errors.Is(g.SetParam("missing", "level", 1), soundgraph.ErrNodeNotFound))
	assert.Contains(t, g.String(), "test")
	assert.Contains(t, g.Dump(), "sine")
}

func TestRegistryLimitsKinds(t *testing.T) {
	r, err := node.NewRegistry(node.Sine, node.Output)
	require.NoError(t, err)
	g := soundgraph.New(&mock.Backend{}, soundgraph.WithRegistry(r))

	_, err = g.Add("sine")
	assert.Nil(t, err)
	_, err = g.Add("volume")
	assert.True(t, errors.Is(err, node.ErrUnknownKind))

	volume, err := node.New(node.Volume)
	require.NoError(t, err)
	err = g.AddNode(volume)
	assert.True(t, errors.Is(err, node.ErrUnknownKind))
}

func TestConnect(t *testing.T) {
	g := soundgraph.New(&mock.Backend{})
	a := add(t, g, "sine", nil)
	b := add(t, g, "sine", nil)
	join := add(t, g, "join", nil)
	out := add(t, g, "output", nil)

	connect(t, g, a, join, 0)
	connect(t, g, b, join, 1)
	connect(t, g, join, out, 0)
	assert.Len(t, g.Links(), 3)

	up, ok := g.FindUpstream(join.ID(), 0)
	assert.True(t, ok)
	assert.Equal(t, a, up)
	up, ok = g.FindUpstream(join.ID(), 1)
	assert.True(t, ok)
	assert.Equal(t, b, up)
	_, ok = g.FindUpstream(a.ID(), 0)
	assert.False(t, ok)

	// inputs have single producer
	l := connect(t, g, b, join, 0)
	assert.Len(t, g.Links(), 3)
	up, _ = g.FindUpstream(join.ID(), 0)
	assert.Equal(t, b, up)

	var err error
	_, err = g.Connect(a.ID(), 1, join.ID(), 0)
	assert.True(t, errors.Is(err, soundgraph.ErrSocketNotFound))
	_, err = g.Connect(a.ID(), 0, join.ID(), 2)
	assert.True(t, errors.Is(err, soundgraph.ErrSocketNotFound))
	_, err = g.Connect(out.ID(), 0, join.ID(), 0)
	assert.True(t, errors.Is(err, soundgraph.ErrSocketNotFound))
	_, err = g.Connect("missing", 0, join.ID(), 0)
	assert.True(t, errors.Is(err, soundgraph.ErrNodeNotFound))
	_, err = g.Connect(a.ID(), 0, "missing", 0)
	assert.True(t, errors.Is(err, soundgraph.ErrNodeNotFound))

	assert.Nil(t, g.RemoveLink(l.ID))
	_, ok = g.FindUpstream(join.ID(), 0)
	assert.False(t, ok)
	assert.True(t, errors.Is(g.RemoveLink(l.ID), soundgraph.ErrLinkNotFound))

	assert.True(t, g.Disconnect(join.ID(), 1))
	assert.False(t, g.Disconnect(join.ID(), 1))
	assert.Len(t, g.Links(), 1)
}

func TestRemoveNode(t *testing.T) {
	g := soundgraph.New(&mock.Backend{})
	tone := add(t, g, "sine", nil)
	volume := add(t, g, "volume", nil)
	out := add(t, g, "output", nil)
	connect(t, g, tone, volume, 0)
	connect(t, g, volume, out, 0)

	assert.Nil(t, g.Remove(volume.ID()))
	assert.Empty(t, g.Links())
	assert.Equal(t, []*node.Node{tone, out}, g.Nodes())
	assert.True(t, errors.Is(g.Remove(volume.ID()), soundgraph.ErrNodeNotFound))

	_, ok := g.FindUpstream(out.ID(), 0)
	assert.False(t, ok)
}
