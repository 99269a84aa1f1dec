package core

import "github.com/tzynski/gallery/engine/math3d"

// Event represents a scene event
type Event struct {
	Type    EventType
	Tick    uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtActorHit EventType = iota
	EvtActorDestroyed
	EvtBurstComplete
	EvtReformComplete
	EvtRespawned
	EvtScoreChanged
	EvtHighScore
	EvtTrackChanged
	EvtGameStart
	EvtGameEnd
)

func (t EventType) String() string {
	switch t {
	case EvtActorHit:
		return "actor-hit"
	case EvtActorDestroyed:
		return "actor-destroyed"
	case EvtBurstComplete:
		return "burst-complete"
	case EvtReformComplete:
		return "reform-complete"
	case EvtRespawned:
		return "respawned"
	case EvtScoreChanged:
		return "score-changed"
	case EvtHighScore:
		return "high-score"
	case EvtTrackChanged:
		return "track-changed"
	case EvtGameStart:
		return "game-start"
	case EvtGameEnd:
		return "game-end"
	}
	return "unknown"
}

// ActorHit is the payload of EvtActorHit
type ActorHit struct {
	ActorID  EntityID
	HitPoint math3d.Vec3
}

// ActorEvent is the payload of the actor lifecycle events
type ActorEvent struct {
	ActorID EntityID
	Class   string
	Pos     math3d.Vec3
}

// ScoreEvent is the payload of EvtScoreChanged and EvtHighScore
type ScoreEvent struct {
	Score, High, Delta int
}

// EventBus dispatches events to listeners. Handlers may emit further
// events; those are delivered within the same Dispatch call.
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
	spare     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch. Safe on a nil bus.
func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int { return len(eb.queue) }

// Dispatch processes all queued events, including any emitted by handlers
func (eb *EventBus) Dispatch() {
	for len(eb.queue) > 0 {
		batch := eb.queue
		eb.queue = eb.spare[:0]
		for _, e := range batch {
			for _, h := range eb.listeners[e.Type] {
				h(e)
			}
		}
		eb.spare = batch[:0]
	}
}
