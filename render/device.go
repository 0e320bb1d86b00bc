package render

import (
	"fmt"

	"github.com/dudk/soundgraph/signal"
	"github.com/dudk/soundgraph/stream"
)

// Output consumes rendered signals. It's implemented by wav, mp3 and
// portaudio sinks.
type Output interface {
	Write(floats signal.Float64, sampleRate int) error
}

// Device renders descriptors and writes them to output.
type Device struct {
	Renderer *Renderer
	Output   Output
}

// NewDevice returns device which renders with r and writes to out.
func NewDevice(r *Renderer, out Output) *Device {
	return &Device{
		Renderer: r,
		Output:   out,
	}
}

// Play renders the descriptor and blocks until output is done.
func (d *Device) Play(desc stream.Descriptor) error {
	floats, err := d.Renderer.Render(desc)
	if err != nil {
		return fmt.Errorf("render %v: %w", desc, err)
	}
	return d.Output.Write(floats, d.Renderer.sampleRate())
}
