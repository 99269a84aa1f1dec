package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Snapshot is the raw input of one frame
type Snapshot struct {
	X, Y int
	Left bool
	Keys []ebiten.Key // keys pressed this frame
}

// State tracks pointer and keyboard state per frame and turns changes into
// dispatcher events.
type State struct {
	// Mouse
	MouseX, MouseY   int
	MouseDX, MouseDY int // delta since last frame
	LeftPressed      bool
	LeftJustPressed  bool
	LeftJustReleased bool

	// Drag
	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int

	Width, Height int

	dispatch *Dispatcher
	started  bool
	keys     []ebiten.Key
}

func NewState(d *Dispatcher) *State {
	return &State{
		DragThreshold: 5,
		dispatch:      d,
	}
}

// Update polls Ebitengine; call it once per frame
func (s *State) Update() {
	x, y := ebiten.CursorPosition()
	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	s.Feed(Snapshot{
		X:    x,
		Y:    y,
		Left: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Keys: s.keys,
	})
}

// Feed applies one frame of raw input and dispatches what changed. A click
// is a press and release without dragging.
func (s *State) Feed(in Snapshot) {
	prevX, prevY := s.MouseX, s.MouseY
	s.MouseX, s.MouseY = in.X, in.Y
	s.MouseDX, s.MouseDY = s.MouseX-prevX, s.MouseY-prevY
	moved := !s.started || s.MouseDX != 0 || s.MouseDY != 0
	s.started = true

	s.LeftJustPressed = in.Left && !s.LeftPressed
	s.LeftJustReleased = !in.Left && s.LeftPressed
	s.LeftPressed = in.Left

	if moved {
		s.emit(Event{Kind: PointerMove, X: s.MouseX, Y: s.MouseY})
	}

	// Drag tracking
	if s.LeftJustPressed {
		s.DragStartX = s.MouseX
		s.DragStartY = s.MouseY
		s.Dragging = false
		s.emit(Event{Kind: PointerDown, X: s.MouseX, Y: s.MouseY})
	}
	if s.LeftPressed && !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
		}
	}
	if s.LeftJustReleased {
		s.emit(Event{Kind: PointerUp, X: s.MouseX, Y: s.MouseY})
		if !s.Dragging {
			s.emit(Event{Kind: Click, X: s.MouseX, Y: s.MouseY})
		}
		s.Dragging = false
	}

	for _, k := range in.Keys {
		s.emit(Event{Kind: KeyPress, Key: k, X: s.MouseX, Y: s.MouseY})
	}
}

// Resize records the layout size and dispatches when it changes
func (s *State) Resize(w, h int) {
	if w == s.Width && h == s.Height {
		return
	}
	s.Width, s.Height = w, h
	s.emit(Event{Kind: Resize, X: w, Y: h})
}

func (s *State) emit(e Event) {
	if s.dispatch != nil {
		s.dispatch.Dispatch(e)
	}
}
