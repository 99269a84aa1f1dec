package input

import "github.com/hajimehoshi/ebiten/v2"

// Kind of input event
type Kind uint8

const (
	PointerMove Kind = iota
	PointerDown
	PointerUp
	Click
	Resize
	KeyPress
	kindCount
)

func (k Kind) String() string {
	switch k {
	case PointerMove:
		return "pointer-move"
	case PointerDown:
		return "pointer-down"
	case PointerUp:
		return "pointer-up"
	case Click:
		return "click"
	case Resize:
		return "resize"
	case KeyPress:
		return "key"
	}
	return "unknown"
}

// Event is one input occurrence. X and Y are screen pixels; for Resize
// they carry the new width and height.
type Event struct {
	Kind Kind
	X, Y int
	Key  ebiten.Key
}

// Handler receives dispatched events
type Handler func(Event)

type subscription struct {
	id uint64
	h  Handler
}

// Dispatcher fans input events out to subscribers. It is owned by the scene
// that subscribes; nothing is registered globally.
type Dispatcher struct {
	subs   [kindCount][]subscription
	nextID uint64
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers h for kind and returns the function that removes it.
// Calling the returned function more than once is harmless.
func (d *Dispatcher) Subscribe(kind Kind, h Handler) (unsubscribe func()) {
	if kind >= kindCount || h == nil {
		return func() {}
	}
	d.nextID++
	id := d.nextID
	d.subs[kind] = append(d.subs[kind], subscription{id: id, h: h})
	return func() {
		list := d.subs[kind]
		for i, s := range list {
			if s.id == id {
				d.subs[kind] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers e to the subscribers of its kind in subscription order
func (d *Dispatcher) Dispatch(e Event) {
	if e.Kind >= kindCount {
		return
	}
	// copy so handlers may unsubscribe while being called
	list := append([]subscription(nil), d.subs[e.Kind]...)
	for _, s := range list {
		s.h(e)
	}
}

// Subscribers returns how many handlers are registered for kind
func (d *Dispatcher) Subscribers(kind Kind) int {
	if kind >= kindCount {
		return 0
	}
	return len(d.subs[kind])
}
