package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzynski/gallery/engine/burst"
)

func TestRunShipPreset(t *testing.T) {
	var out bytes.Buffer
	results, err := run(options{preset: "ship", runs: 2, seed: 7, tickRate: 60, every: 10}, &out, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, burst.SignalBurstComplete, r.signal)
		assert.Equal(t, 60, r.ticks)
		assert.Equal(t, 50, r.peak)
	}
	assert.Contains(t, out.String(), "done")
	assert.Equal(t, 1+2*6+2, strings.Count(out.String(), "\n"))
}

func TestRunLetterPresetWithOverride(t *testing.T) {
	var out bytes.Buffer
	results, err := run(options{preset: "letter", runs: 1, fragments: 5, seed: 1, tickRate: 60}, &out, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, burst.SignalReformComplete, results[0].signal)
	assert.Equal(t, 5, results[0].peak)
	assert.GreaterOrEqual(t, results[0].ticks, burst.LetterShards().DwellTicks)
}

func TestRunUnknownPreset(t *testing.T) {
	_, err := run(options{preset: "comet", runs: 1, tickRate: 60}, &bytes.Buffer{}, zerolog.Nop())
	assert.Error(t, err)
}
