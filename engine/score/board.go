// Package score keeps the running score and the persisted best score.
package score

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tzynski/gallery/engine/core"
)

// PulseTicks is how long the HUD highlights a score change (300 ms)
const PulseTicks = 18

// storeTimeout bounds one load or save
const storeTimeout = 2 * time.Second

// Board is the scoreboard of one session
type Board struct {
	score  int
	high   int
	pulse  int
	store  Store
	events *core.EventBus
	log    zerolog.Logger
}

// NewBoard loads the best score from store. A failing store is logged and
// replaced by memory so scoring keeps working.
func NewBoard(store Store, events *core.EventBus, log zerolog.Logger) *Board {
	b := &Board{
		store:  store,
		events: events,
		log:    log.With().Str("component", "score").Logger(),
	}
	if b.store == nil {
		b.store = &MemoryStore{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	high, err := b.store.LoadHigh(ctx)
	if err != nil {
		b.log.Warn().Err(err).Msg("high score unavailable, keeping it in memory")
		if cerr := b.store.Close(); cerr != nil {
			b.log.Warn().Err(cerr).Msg("close failed score store")
		}
		b.store = &MemoryStore{}
		high = 0
	}
	b.high = high
	return b
}

// Add awards points and persists a beaten high score
func (b *Board) Add(points int) {
	if points == 0 {
		return
	}
	b.score += points
	b.pulse = PulseTicks
	b.events.Emit(core.Event{
		Type:    core.EvtScoreChanged,
		Payload: core.ScoreEvent{Score: b.score, High: b.high, Delta: points},
	})
	if b.score <= b.high {
		return
	}
	b.high = b.score
	b.events.Emit(core.Event{
		Type:    core.EvtHighScore,
		Payload: core.ScoreEvent{Score: b.score, High: b.high, Delta: points},
	})
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := b.store.SaveHigh(ctx, b.high); err != nil {
		b.log.Warn().Err(err).Int("high", b.high).Msg("could not persist high score")
	}
}

// Tick runs down the change pulse
func (b *Board) Tick() {
	if b.pulse > 0 {
		b.pulse--
	}
}

// Reset clears the running score; the best score stays
func (b *Board) Reset() {
	b.score = 0
	b.pulse = 0
}

func (b *Board) Score() int { return b.score }
func (b *Board) High() int  { return b.high }

// Pulsing reports whether a score change is still being highlighted
func (b *Board) Pulsing() bool { return b.pulse > 0 }

// Pulse is the highlight strength, 1 right after a change down to 0
func (b *Board) Pulse() float64 { return float64(b.pulse) / PulseTicks }

// Close releases the store
func (b *Board) Close() error { return b.store.Close() }

// Format renders a score the way the HUD shows it
func Format(n int) string { return fmt.Sprintf("%06d", n) }
