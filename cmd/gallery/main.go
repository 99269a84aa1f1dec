package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"

	"github.com/tzynski/gallery/engine/audio"
	"github.com/tzynski/gallery/engine/config"
	"github.com/tzynski/gallery/engine/gallery"
	"github.com/tzynski/gallery/engine/input"
	"github.com/tzynski/gallery/engine/logging"
	"github.com/tzynski/gallery/engine/metrics"
	"github.com/tzynski/gallery/engine/render3d"
	"github.com/tzynski/gallery/engine/score"
	"github.com/tzynski/gallery/engine/ui"
)

const (
	GlyphSize  = 2.5
	GlyphDepth = 0.8

	shutdownTimeout = 2 * time.Second
)

// Game implements ebiten.Game interface
type Game struct {
	scene    *gallery.Scene
	renderer *render3d.Renderer3D
	picker   *render3d.Picker
	glyphs   *render3d.Glyphs
	hud      *ui.HUD
	music    *audio.Jukebox
	dispatch *input.Dispatcher
	input    *input.State
	metrics  *metrics.Metrics
	log      zerolog.Logger

	width, height int
	showDebug     bool
	quit          bool
	unsubscribe   []func()
}

func NewGame(cfg config.Config, store score.Store, m *metrics.Metrics, log zerolog.Logger) (*Game, error) {
	glyphs, err := render3d.NewGlyphs(GlyphSize, GlyphDepth)
	if err != nil {
		return nil, fmt.Errorf("load glyph font: %w", err)
	}
	sc, err := gallery.New(gallery.Options{
		Scene:    cfg.Scene,
		TickRate: cfg.Sim.TickRate,
		Seed:     cfg.Sim.Seed,
		Store:    store,
		Metrics:  m,
		Log:      log,
	})
	if err != nil {
		glyphs.Close()
		return nil, err
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	g := &Game{
		scene:    sc,
		renderer: render3d.NewRenderer3D(w, h, glyphs),
		glyphs:   glyphs,
		music:    newJukebox(cfg.Audio, sc, log),
		dispatch: input.NewDispatcher(),
		metrics:  m,
		log:      log,
		width:    w,
		height:   h,
	}
	g.picker = &render3d.Picker{Camera: g.renderer.Camera, Graph: sc.Graph, Glyphs: glyphs}
	g.hud = ui.NewHUD(w, h, int(cfg.Sim.TickRate), sc.Board, g.music, cfg.Links, log)
	g.input = input.NewState(g.dispatch)

	dt := sc.Loop.Dt()
	sc.OnTick(func() {
		g.renderer.Update(dt)
		g.hud.Tick()
	})

	g.unsubscribe = append(g.unsubscribe,
		g.hud.Subscribe(g.dispatch),
		sc.Bind(g.dispatch, g.picker, g.hud),
		g.dispatch.Subscribe(input.Resize, func(e input.Event) { g.renderer.Camera.Resize(e.X, e.Y) }),
		g.dispatch.Subscribe(input.KeyPress, g.onKey),
	)
	g.music.Play()
	return g, nil
}

func newJukebox(cfg config.AudioConfig, sc *gallery.Scene, log zerolog.Logger) *audio.Jukebox {
	if !cfg.Enabled {
		return audio.NewJukebox(nil, nil, sc.Loop.Events, log)
	}
	tracks, err := audio.Playlist(cfg.Dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", cfg.Dir).Msg("read music directory")
	}
	ctx := ebaudio.NewContext(audio.SampleRate)
	j := audio.NewJukebox(audio.NewEbitenDeck(ctx), tracks, sc.Loop.Events, log)
	j.SetVolume(cfg.Volume)
	return j
}

func (g *Game) onKey(e input.Event) {
	switch e.Key {
	case ebiten.KeySpace:
		g.music.Toggle()
	case ebiten.KeyN:
		g.music.Next()
	case ebiten.KeyP:
		g.music.Previous()
	case ebiten.KeyF3:
		g.showDebug = !g.showDebug
	case ebiten.KeyF11:
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	case ebiten.KeyEscape:
		g.quit = true
	}
}

func (g *Game) Update() error {
	g.input.Resize(g.width, g.height)
	g.input.Update()
	if g.quit {
		return ebiten.Termination
	}

	// Game simulation tick
	g.scene.Loop.Update()
	g.music.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	g.renderer.Draw(screen, g.scene.Graph)
	g.hud.Draw(screen)
	if g.showDebug {
		g.drawDebug(screen)
	}
	g.metrics.RecordFrame(time.Since(start), g.scene.Graph.Len())
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	info := fmt.Sprintf(
		"FPS: %.0f | TPS: %.0f | Tick: %d\n"+
			"Entities: %d | Drawables: %d\n"+
			"[Space] Play/Pause [N] Next [P] Prev [F11] Fullscreen [Esc] Quit",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.scene.Loop.CurrentTick(),
		g.scene.Loop.World.EntityCount(),
		g.scene.Graph.Len(),
	)
	ebitenutil.DebugPrintAt(screen, info, 24, 150)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Dispose releases the scene, the music and the font
func (g *Game) Dispose() {
	for _, off := range g.unsubscribe {
		off()
	}
	g.unsubscribe = nil
	g.music.Close()
	g.scene.Dispose()
	if err := g.glyphs.Close(); err != nil {
		g.log.Warn().Err(err).Msg("close glyph font")
	}
}

func main() {
	configDir := flag.String("config", ".", "directory holding gallery.json, gallery.yaml or gallery.toml")
	flag.Parse()

	if err := run(*configDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configDir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	log, closeLog, err := logging.New(cfg.Log, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	var store score.Store
	if sqlStore, err := score.OpenSQLite(cfg.Score.DBPath); err != nil {
		log.Warn().Err(err).Str("path", cfg.Score.DBPath).Msg("high score store unavailable")
	} else {
		store = sqlStore
	}

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		srv, err := m.Serve(cfg.Metrics.Addr, log)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Metrics.Addr).Msg("metrics server not started")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					log.Warn().Err(err).Msg("metrics shutdown")
				}
			}()
		}
	}

	game, err := NewGame(cfg, store, m, log)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return err
	}
	defer game.Dispose()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(int(cfg.Sim.TickRate))
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	log.Info().Str("word", cfg.Scene.Word).Int("ships", cfg.Scene.ShipCount).Msg("starting gallery")
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	log.Info().Msg("gallery closed")
	return nil
}
