package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

// SampleRate of the shared audio context
const SampleRate = 44100

// EbitenDeck decodes files into players on one Ebitengine audio context
type EbitenDeck struct {
	ctx *audio.Context
}

// NewEbitenDeck wraps ctx. Only one audio.Context may exist per process.
func NewEbitenDeck(ctx *audio.Context) *EbitenDeck {
	return &EbitenDeck{ctx: ctx}
}

// Load reads and decodes an .ogg or .mp3 file
func (d *EbitenDeck) Load(path string) (Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stream io.Reader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(d.ctx.SampleRate(), bytes.NewReader(data))
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(d.ctx.SampleRate(), bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	p, err := d.ctx.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("player for %s: %w", filepath.Base(path), err)
	}
	return p, nil
}
