package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func TestSubscribeAndUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	var a, b int
	unA := d.Subscribe(Click, func(Event) { a++ })
	d.Subscribe(Click, func(Event) { b++ })
	assert.Equal(t, 2, d.Subscribers(Click))

	d.Dispatch(Event{Kind: Click})
	unA()
	unA()
	d.Dispatch(Event{Kind: Click})
	d.Dispatch(Event{Kind: PointerMove})

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, d.Subscribers(Click))
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	var calls []string
	var un func()
	un = d.Subscribe(KeyPress, func(Event) {
		calls = append(calls, "first")
		un()
	})
	d.Subscribe(KeyPress, func(Event) { calls = append(calls, "second") })

	d.Dispatch(Event{Kind: KeyPress})
	d.Dispatch(Event{Kind: KeyPress})
	assert.Equal(t, []string{"first", "second", "second"}, calls)
}

func TestInvalidKind(t *testing.T) {
	d := NewDispatcher()
	un := d.Subscribe(Kind(200), func(Event) { t.Fatal("called") })
	un()
	d.Dispatch(Event{Kind: Kind(200)})
	assert.Zero(t, d.Subscribers(Kind(200)))
}

func record(d *Dispatcher) *[]Event {
	var got []Event
	for k := PointerMove; k < kindCount; k++ {
		d.Subscribe(k, func(e Event) { got = append(got, e) })
	}
	return &got
}

func kinds(events []Event) []Kind {
	out := make([]Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestFeedClick(t *testing.T) {
	d := NewDispatcher()
	got := record(d)
	s := NewState(d)

	s.Feed(Snapshot{X: 100, Y: 50})
	s.Feed(Snapshot{X: 100, Y: 50, Left: true})
	assert.True(t, s.LeftJustPressed)
	s.Feed(Snapshot{X: 101, Y: 50})
	assert.True(t, s.LeftJustReleased)

	assert.Equal(t, []Kind{PointerMove, PointerDown, PointerMove, PointerUp, Click}, kinds(*got))
	last := (*got)[len(*got)-1]
	assert.Equal(t, 101, last.X)
	assert.Equal(t, 50, last.Y)
}

func TestFeedDragIsNotAClick(t *testing.T) {
	d := NewDispatcher()
	got := record(d)
	s := NewState(d)

	s.Feed(Snapshot{X: 0, Y: 0, Left: true})
	s.Feed(Snapshot{X: 40, Y: 0, Left: true})
	assert.True(t, s.Dragging)
	s.Feed(Snapshot{X: 40, Y: 0})

	assert.NotContains(t, kinds(*got), Click)
	assert.False(t, s.Dragging)
}

func TestFeedKeysAndResize(t *testing.T) {
	d := NewDispatcher()
	got := record(d)
	s := NewState(d)

	s.Feed(Snapshot{Keys: []ebiten.Key{ebiten.KeySpace}})
	s.Resize(800, 600)
	s.Resize(800, 600)

	assert.Equal(t, []Kind{PointerMove, KeyPress, Resize}, kinds(*got))
	assert.Equal(t, ebiten.KeySpace, (*got)[1].Key)
	assert.Equal(t, 800, (*got)[2].X)
}
