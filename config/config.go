// Package config reads soundgraph settings from environment. Variables can
// be seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dudk/soundgraph/mp3"
	"github.com/dudk/soundgraph/portaudio"
	"github.com/dudk/soundgraph/render"
	"github.com/dudk/soundgraph/signal"
	"github.com/dudk/soundgraph/wav"
)

// Prefix is prepended to all variable names.
const Prefix = "SOUNDGRAPH_"

// Variable names.
const (
	Debug       = "DEBUG"
	SampleRate  = "SAMPLE_RATE"
	BufferSize  = "BUFFER_SIZE"
	MaxDuration = "MAX_DURATION"
	BaseDir     = "BASE_DIR"
	BitDepth    = "BIT_DEPTH"
	MP3BitRate  = "MP3_BITRATE"
	MP3Quality  = "MP3_QUALITY"
)

// ErrInvalidValue is returned when variable cannot be parsed.
var ErrInvalidValue = errors.New("invalid value")

// Config holds settings for rendering and playback.
type Config struct {
	Debug       bool
	SampleRate  int
	BufferSize  int
	MaxDuration time.Duration
	BaseDir     string
	BitDepth    signal.BitDepth
	MP3BitRate  int
	MP3Quality  int
}

// Default returns config with default values.
func Default() Config {
	return Config{
		SampleRate:  render.DefaultSampleRate,
		BufferSize:  portaudio.DefaultBufferSize,
		MaxDuration: render.DefaultMaxDuration,
		BaseDir:     ".",
		BitDepth:    signal.BitDepth16,
		MP3BitRate:  192,
		MP3Quality:  2,
	}
}

// Load sets variables from .env files and reads config from environment.
// Missing files are skipped, variables already set are not overridden.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %v: %w", file, err)
		}
	}
	return Parse(os.LookupEnv)
}

// Read parses config from a .env file only, environment is ignored.
func Read(file string) (Config, error) {
	vars, err := godotenv.Read(file)
	if err != nil {
		return Config{}, err
	}
	return Parse(func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	})
}

// Parse reads config using lookup function. Unset variables keep default
// values.
func Parse(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	p := parser{lookup: lookup}
	p.boolean(Debug, &c.Debug)
	p.integer(SampleRate, &c.SampleRate)
	p.integer(BufferSize, &c.BufferSize)
	p.duration(MaxDuration, &c.MaxDuration)
	p.str(BaseDir, &c.BaseDir)
	bitDepth := int(c.BitDepth)
	p.integer(BitDepth, &bitDepth)
	c.BitDepth = signal.BitDepth(bitDepth)
	p.integer(MP3BitRate, &c.MP3BitRate)
	p.integer(MP3Quality, &c.MP3Quality)
	if p.err != nil {
		return Config{}, p.err
	}
	return c, nil
}

// Backend returns render backend which resolves relative paths against
// base dir.
func (c Config) Backend() *render.Backend {
	return &render.Backend{BaseDir: c.BaseDir}
}

// Renderer returns renderer with configured sample rate and duration.
func (c Config) Renderer() *render.Renderer {
	return &render.Renderer{
		SampleRate:  c.SampleRate,
		MaxDuration: c.MaxDuration,
	}
}

// Player returns output which plays with default audio device.
func (c Config) Player() *portaudio.Sink {
	return &portaudio.Sink{BufferSize: c.BufferSize}
}

// Wav returns wav file output.
func (c Config) Wav(path string) *wav.Sink {
	return &wav.Sink{Path: path, BitDepth: c.BitDepth}
}

// MP3 returns mp3 file output.
func (c Config) MP3(path string) *mp3.Sink {
	return &mp3.Sink{Path: path, BitRate: c.MP3BitRate, Quality: c.MP3Quality}
}

// parser keeps the first error, following calls are no-op.
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) value(name string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.lookup(Prefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (p *parser) fail(name, v string, err error) {
	p.err = fmt.Errorf("%w %s%s=%q: %v", ErrInvalidValue, Prefix, name, v, err)
}

func (p *parser) boolean(name string, dst *bool) {
	if v, ok := p.value(name); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.fail(name, v, err)
			return
		}
		*dst = b
	}
}

func (p *parser) integer(name string, dst *int) {
	if v, ok := p.value(name); ok {
		i, err := strconv.Atoi(v)
		if err != nil {
			p.fail(name, v, err)
			return
		}
		*dst = i
	}
}

func (p *parser) duration(name string, dst *time.Duration) {
	if v, ok := p.value(name); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			p.fail(name, v, err)
			return
		}
		*dst = d
	}
}

func (p *parser) str(name string, dst *string) {
	if v, ok := p.value(name); ok {
		*dst = v
	}
}
