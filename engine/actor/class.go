package actor

import (
	"github.com/tzynski/gallery/engine/burst"
)

// Class is the kind of destructible actor
type Class uint8

const (
	ClassLetter Class = iota + 1
	ClassShip
)

func (c Class) String() string {
	switch c {
	case ClassLetter:
		return "letter"
	case ClassShip:
		return "ship"
	}
	return "unknown"
}

// Points awarded for an accepted hit
func (c Class) Points() int {
	switch c {
	case ClassLetter:
		return 10
	case ClassShip:
		return 100
	}
	return 0
}

// Policy is the default respawn behaviour of the class
func (c Class) Policy() RespawnPolicy {
	if c == ClassShip {
		return RelocateRandom
	}
	return ReformInPlace
}

// Burst returns the burst preset for the class
func (c Class) Burst() burst.Config {
	if c == ClassShip {
		return burst.ShipSparks()
	}
	return burst.LetterShards()
}

// RespawnPolicy decides where an actor comes back after a burst
type RespawnPolicy uint8

const (
	// ReformInPlace waits for the fragments to fly home, then shows the
	// actor at its home position.
	ReformInPlace RespawnPolicy = iota
	// RelocateRandom waits out the respawn dwell after the burst and brings
	// the actor back somewhere new.
	RelocateRandom
)

func (p RespawnPolicy) String() string {
	if p == RelocateRandom {
		return "relocate-random"
	}
	return "reform-in-place"
}

// DefaultRespawnTicks is the dwell between a ship's destruction and its
// reappearance: two seconds at 60 ticks per second.
const DefaultRespawnTicks = 120
