// Package portaudio plays rendered signals with the default output device.
package portaudio

import (
	"github.com/gordonklaus/portaudio"

	"github.com/dudk/soundgraph/signal"
)

// DefaultBufferSize is used when Sink has no buffer size set.
const DefaultBufferSize = 512

// Sink represents portaudio sink which allows to play audio using default
// device.
type Sink struct {
	BufferSize int
}

// Write plays the signal and blocks until it's done. Portaudio api is
// initialized for every call and terminated after.
func (s *Sink) Write(floats signal.Float64, sampleRate int) (err error) {
	numChannels := floats.NumChannels()
	if numChannels == 0 || floats.Size() == 0 {
		return nil
	}
	bufferSize := s.BufferSize
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	if err = portaudio.Initialize(); err != nil {
		return err
	}
	defer func() {
		if terr := portaudio.Terminate(); err == nil {
			err = terr
		}
	}()

	buf := make([]float32, bufferSize*numChannels)
	stream, err := portaudio.OpenDefaultStream(0, numChannels, float64(sampleRate), bufferSize, &buf)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stream.Close(); err == nil {
			err = cerr
		}
	}()
	if err = stream.Start(); err != nil {
		return err
	}

	for pos := 0; pos < floats.Size(); pos += bufferSize {
		chunk := floats.Slice(pos, bufferSize)
		// last chunk is padded with silence
		for i := range buf {
			buf[i] = 0
		}
		chunk.AsInterFloat32(buf[:0])
		if err = stream.Write(); err != nil {
			return err
		}
	}
	return stream.Stop()
}
