// Package wav loads and saves wav files.
package wav

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/dudk/soundgraph/signal"
)

var (
	// ErrUnsupportedBitDepth is returned when unsupported bit depth is used.
	ErrUnsupportedBitDepth = errors.New("only 16, 24 and 32 bit depth is supported")
	// ErrInvalidFile is returned when file is not a valid wav.
	ErrInvalidFile = errors.New("wav is not valid")
)

const pcmFormat = 1

// Load reads the whole wav file.
func Load(path string) (signal.Float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidFile, path)
	}
	bitDepth := signal.BitDepth(decoder.BitDepth)
	if err := validateBitDepth(bitDepth); err != nil {
		return nil, 0, err
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%v: %w", path, err)
	}
	floats := signal.InterInt{
		Data:        buf.Data,
		NumChannels: int(decoder.NumChans),
		BitDepth:    bitDepth,
	}.AsFloat64()
	return floats, int(decoder.SampleRate), nil
}

// Sink saves signals to wav file.
type Sink struct {
	Path     string
	BitDepth signal.BitDepth
}

// Write saves signal to file, previous content is overwritten.
func (s *Sink) Write(floats signal.Float64, sampleRate int) error {
	if err := validateBitDepth(s.BitDepth); err != nil {
		return err
	}
	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}

	numChannels := floats.NumChannels()
	e := wav.NewEncoder(f, sampleRate, int(s.BitDepth), numChannels, pcmFormat)
	ib := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
		},
		Data:           floats.AsInterInt(s.BitDepth),
		SourceBitDepth: int(s.BitDepth),
	}
	if err := e.Write(ib); err != nil {
		f.Close()
		return err
	}
	if err := e.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func validateBitDepth(bitDepth signal.BitDepth) error {
	switch bitDepth {
	case signal.BitDepth16, signal.BitDepth24, signal.BitDepth32:
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
}
