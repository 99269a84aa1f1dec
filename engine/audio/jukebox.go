// Package audio plays the background playlist. A jukebox without tracks or
// without an audio backend is "not ready" and ignores every command.
package audio

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tzynski/gallery/engine/core"
)

// Initializing is the title shown until a track can be played
const Initializing = "Initializing..."

// Track is one loaded song. *audio.Player satisfies it.
type Track interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	SetVolume(v float64)
	Close() error
}

// Deck loads tracks from disk
type Deck interface {
	Load(path string) (Track, error)
}

// TrackChanged is the payload of core.EvtTrackChanged
type TrackChanged struct {
	Index int
	Title string
}

// Jukebox steps through a playlist
type Jukebox struct {
	deck    Deck
	tracks  []string
	index   int
	current Track
	playing bool
	volume  float64
	events  *core.EventBus
	log     zerolog.Logger
}

// Playlist lists the .ogg and .mp3 files in dir, sorted by name
func Playlist(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".ogg", ".mp3":
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(out)
	return out, nil
}

// NewJukebox builds a jukebox over tracks. deck may be nil when no audio
// device is available.
func NewJukebox(deck Deck, tracks []string, events *core.EventBus, log zerolog.Logger) *Jukebox {
	j := &Jukebox{
		deck:   deck,
		tracks: slices.Clone(tracks),
		volume: 1,
		events: events,
		log:    log.With().Str("component", "jukebox").Logger(),
	}
	if !j.Ready() {
		j.log.Warn().Int("tracks", len(tracks)).Bool("backend", deck != nil).Msg("music unavailable")
	}
	return j
}

// Ready reports whether commands do anything
func (j *Jukebox) Ready() bool {
	return j != nil && j.deck != nil && len(j.tracks) > 0
}

// Play starts or resumes the current track
func (j *Jukebox) Play() {
	if !j.Ready() {
		return
	}
	if !j.load() {
		return
	}
	j.current.Play()
	j.playing = true
}

// Pause holds the current track
func (j *Jukebox) Pause() {
	if !j.Ready() || j.current == nil {
		return
	}
	j.current.Pause()
	j.playing = false
}

// Toggle switches between Play and Pause
func (j *Jukebox) Toggle() {
	if j.Playing() {
		j.Pause()
		return
	}
	j.Play()
}

// Next skips forward, wrapping to the first track
func (j *Jukebox) Next() { j.skip(1) }

// Previous skips back, wrapping to the last track
func (j *Jukebox) Previous() { j.skip(-1) }

func (j *Jukebox) skip(step int) {
	if !j.Ready() {
		return
	}
	j.unload()
	n := len(j.tracks)
	j.index = ((j.index+step)%n + n) % n
	if j.playing {
		j.Play()
	}
	j.events.Emit(core.Event{Type: core.EvtTrackChanged, Payload: TrackChanged{Index: j.index, Title: j.Title()}})
	j.log.Debug().Str("title", j.Title()).Msg("track changed")
}

// Update advances to the next track when the current one has ended. Call it
// once per frame.
func (j *Jukebox) Update() {
	if !j.Ready() || !j.playing || j.current == nil {
		return
	}
	if !j.current.IsPlaying() {
		j.Next()
	}
}

// SetVolume sets the volume (0-1)
func (j *Jukebox) SetVolume(v float64) {
	if j == nil {
		return
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	j.volume = v
	if j.current != nil {
		j.current.SetVolume(v)
	}
}

// Playing reports whether a track is playing
func (j *Jukebox) Playing() bool { return j.Ready() && j.playing }

// Index is the position of the current track
func (j *Jukebox) Index() int {
	if j == nil {
		return 0
	}
	return j.index
}

// Title of the current track, derived from its file name
func (j *Jukebox) Title() string {
	if !j.Ready() {
		return Initializing
	}
	return TitleOf(j.tracks[j.index])
}

// TitleOf turns "01_night-drive.ogg" into "01 night-drive"
func TitleOf(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
}

// Close releases the current track
func (j *Jukebox) Close() {
	if j == nil {
		return
	}
	j.unload()
	j.playing = false
}

func (j *Jukebox) load() bool {
	for j.current == nil && len(j.tracks) > 0 {
		path := j.tracks[j.index]
		t, err := j.deck.Load(path)
		if err == nil {
			t.SetVolume(j.volume)
			j.current = t
			return true
		}
		j.log.Warn().Err(err).Str("path", path).Msg("dropping unplayable track")
		j.tracks = slices.Delete(j.tracks, j.index, j.index+1)
		if j.index >= len(j.tracks) {
			j.index = 0
		}
	}
	return j.current != nil
}

func (j *Jukebox) unload() {
	if j.current == nil {
		return
	}
	j.current.Pause()
	if err := j.current.Close(); err != nil {
		j.log.Debug().Err(err).Msg("closing track")
	}
	j.current = nil
}
