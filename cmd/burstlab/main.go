// Command burstlab runs bursts without a window and prints how many
// fragments are live on each tick and when each burst completes. Use it to
// tune the burst constants.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/tzynski/gallery/engine/actor"
	"github.com/tzynski/gallery/engine/burst"
	"github.com/tzynski/gallery/engine/config"
	"github.com/tzynski/gallery/engine/logging"
	"github.com/tzynski/gallery/engine/math3d"
	"github.com/tzynski/gallery/engine/scene"
)

type options struct {
	preset    string
	runs      int
	fragments int
	seed      int64
	tickRate  float64
	every     int
}

// result of one burst
type result struct {
	signal burst.Signal
	ticks  int
	peak   int
}

func presetConfig(name string) (burst.Config, error) {
	switch name {
	case "letter":
		return actor.ClassLetter.Burst(), nil
	case "ship":
		return actor.ClassShip.Burst(), nil
	}
	return burst.Config{}, fmt.Errorf("unknown preset %q (want letter or ship)", name)
}

func run(opts options, out io.Writer, log zerolog.Logger) ([]result, error) {
	cfg, err := presetConfig(opts.preset)
	if err != nil {
		return nil, err
	}
	if opts.fragments > 0 {
		cfg.Fragments = opts.fragments
	}
	if opts.every <= 0 {
		opts.every = 1
	}

	g := scene.NewGraph()
	e, err := burst.New(cfg, g, math3d.NewRand(opts.seed), log)
	if err != nil {
		return nil, err
	}
	defer e.Dispose()

	var done burst.Signal
	e.OnComplete = func(s burst.Signal) { done = s }

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "run\ttick\tphase\tlive\tdrawn\n")

	dt := 1 / opts.tickRate
	limit := cfg.MaxTicks() + 1
	results := make([]result, 0, opts.runs)
	for r := 0; r < opts.runs; r++ {
		done = 0
		if !e.Trigger(math3d.Vec3{}) {
			return results, fmt.Errorf("run %d: engine not idle", r)
		}
		res := result{peak: e.Live()}
		for tick := 1; tick <= limit; tick++ {
			running := e.Tick(dt)
			res.peak = max(res.peak, e.Live())
			if tick%opts.every == 0 {
				fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\n", r, tick, e.Phase(), e.Live(), g.Len())
			}
			if !running {
				break
			}
		}
		if done == 0 {
			return results, fmt.Errorf("run %d: no completion within %d ticks", r, limit)
		}
		res.signal = done
		res.ticks = e.ElapsedTicks()
		fmt.Fprintf(tw, "%d\t%d\t%s\tdone\t%d\n", r, res.ticks, res.signal, g.Len())
		results = append(results, res)
	}
	return results, tw.Flush()
}

func main() {
	var opts options
	flag.StringVar(&opts.preset, "preset", "letter", "burst preset: letter or ship")
	flag.IntVar(&opts.runs, "runs", 1, "number of bursts to run back to back")
	flag.IntVar(&opts.fragments, "fragments", 0, "override the preset fragment count")
	flag.Int64Var(&opts.seed, "seed", 1, "random seed")
	flag.Float64Var(&opts.tickRate, "tps", 60, "ticks per second")
	flag.IntVar(&opts.every, "every", 1, "print every n-th tick")
	level := flag.String("log", "warn", "log level")
	flag.Parse()

	log, closeLog, err := logging.New(config.LogConfig{Level: *level}, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	results, err := run(opts, os.Stdout, log)
	if err != nil {
		log.Error().Err(err).Msg("burstlab")
		closeLog()
		os.Exit(1)
	}
	for i, r := range results {
		log.Info().Int("run", i).Stringer("signal", r.signal).Int("ticks", r.ticks).Int("peak", r.peak).Msg("burst complete")
	}
}
