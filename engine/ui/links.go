package ui

import (
	"os/exec"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tzynski/gallery/engine/config"
)

const linkSize = 48

// Opener hands a URL to something outside the program
type Opener func(url string) error

// OpenBrowser launches the system browser on url
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// Links is the social-links overlay: a toggle button bottom-right that
// reveals one button per configured link.
type Links struct {
	Items []config.LinkConfig
	Open  bool

	ScreenW, ScreenH int

	opener  Opener
	limiter *rate.Limiter
	log     zerolog.Logger
	disc    *ebiten.Image
}

// NewLinks builds the overlay. A nil opener uses OpenBrowser. Launches are
// limited to one per second.
func NewLinks(items []config.LinkConfig, opener Opener, sw, sh int, log zerolog.Logger) *Links {
	if opener == nil {
		opener = OpenBrowser
	}
	return &Links{
		Items:   items,
		ScreenW: sw,
		ScreenH: sh,
		opener:  opener,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		log:     log.With().Str("component", "links").Logger(),
	}
}

// Toggle is the hit box of the open/close button
func (l *Links) Toggle() Rect {
	return Rect{l.ScreenW - 32 - linkSize, l.ScreenH - transportH - 16 - linkSize, linkSize, linkSize}
}

// Buttons are the hit boxes of the link buttons, stacked above the toggle
func (l *Links) Buttons() []Rect {
	t := l.Toggle()
	out := make([]Rect, len(l.Items))
	for i := range out {
		out[i] = Rect{t.X, t.Y - (len(l.Items)-i)*(linkSize+16) - 16, linkSize, linkSize}
	}
	return out
}

// HandleClick toggles the overlay or opens a link. Returns true if the click
// was consumed.
func (l *Links) HandleClick(x, y int) bool {
	if l.Toggle().Contains(x, y) {
		l.Open = !l.Open
		return true
	}
	if !l.Open {
		return false
	}
	for i, r := range l.Buttons() {
		if r.Contains(x, y) {
			l.launch(l.Items[i])
			return true
		}
	}
	return false
}

func (l *Links) launch(item config.LinkConfig) {
	if !l.limiter.Allow() {
		l.log.Debug().Str("url", item.URL).Msg("link launch throttled")
		return
	}
	if err := l.opener(item.URL); err != nil {
		l.log.Warn().Err(err).Str("url", item.URL).Msg("open link")
		return
	}
	l.log.Info().Str("label", item.Label).Msg("opened link")
}

func (l *Links) Draw(screen *ebiten.Image) {
	if l.disc == nil {
		l.disc = generateDisc(linkSize, CyanFaint)
	}
	t := l.Toggle()
	l.drawButton(screen, t, "LINK")
	if !l.Open {
		return
	}
	for i, r := range l.Buttons() {
		label := l.Items[i].Label
		if len(label) > 2 {
			label = label[:2]
		}
		l.drawButton(screen, r, label)
	}
}

func (l *Links) drawButton(screen *ebiten.Image, r Rect, label string) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(r.X), float64(r.Y))
	screen.DrawImage(l.disc, op)
	vector.StrokeCircle(screen, float32(r.X)+linkSize/2, float32(r.Y)+linkSize/2, linkSize/2, 1, CyanDim, true)
	ebitenutil.DebugPrintAt(screen, label, r.X+(r.W-len(label)*6)/2, r.Y+r.H/2-8)
}
