/*
Package soundgraph composes playable audio streams from a graph of nodes.

Concept

A graph is built from small single-purpose nodes:

    Generator - the origin of signal, e.g. sine or sound file;
    Filter - the manipulator of a single signal;
    Combinator - joins or mixes two signals;
    Output - the sink, the signal it receives is what gets played.

Nodes are connected with links. A link goes from an output socket of one
node to an input socket of another. An input socket has at most one
producer, connecting it again replaces the previous link.

Resolution

Graph doesn't process samples. Resolve walks upstream from requested node
and composes a stream.Descriptor: an immutable recipe of the signal.

    g := soundgraph.New(backend)
    tone, _ := g.Add("sine")
    volume, _ := g.Add("volume")
    out, _ := g.Add("output")
    g.Connect(tone.ID(), 0, volume.ID(), 0)
    g.Connect(volume.ID(), 0, out.ID(), 0)

    result, err := g.Resolve(out.ID())

There are two distinct outcomes besides a descriptor. If a required input
is not connected, the result is stream.None(), which is not an error. If the
backend fails to build a generator, e.g. the sound file doesn't exist, an
error is returned. Links that form a cycle are reported with ErrCycle.

Playback

Trigger resolves an output node and hands the descriptor to a Device. If
there is nothing to play, it does nothing.

    played, err := soundgraph.NewTrigger(g, device).Play(out.ID())

PlayAll plays several outputs and keeps going when some of them fail.
Package render provides a Device which renders descriptors offline and
writes them to a file or a sound card.
*/
package soundgraph
