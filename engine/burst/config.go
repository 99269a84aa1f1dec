package burst

import (
	"errors"
	"fmt"
	"math"

	"github.com/tzynski/gallery/engine/math3d"
	"github.com/tzynski/gallery/engine/scene"
)

// Style selects how fragments move and how the burst ends
type Style uint8

const (
	// StyleGravityReform: fragments fall under constant gravity, are culled
	// below the floor, and after the dwell the survivors fly back to the
	// origin while shrinking.
	StyleGravityReform Style = iota
	// StyleFade: fragments drift at constant velocity and fade out over a
	// fixed tick budget.
	StyleFade
)

func (s Style) String() string {
	if s == StyleFade {
		return "fade"
	}
	return "gravity-reform"
}

// VelocityMode selects the initial velocity sampler
type VelocityMode uint8

const (
	// VelocityCubeDirection normalizes three independent uniform axes and
	// scales by Speed.
	VelocityCubeDirection VelocityMode = iota
	// VelocityCube samples each axis in [-Speed/2, Speed/2) without
	// normalizing.
	VelocityCube
)

// Config describes one burst variant. All rates are per tick.
type Config struct {
	Fragments int
	Style     Style
	Velocity  VelocityMode
	Speed     float64
	Gravity   float64
	Floor     float64
	Spin      float64 // max |spin| per axis, radians per tick

	DwellTicks int // gravity-reform: reform starts this many ticks after Trigger
	FadeTicks  int // fade: fragments expire this many ticks after Trigger

	ReformRate      float64 // lerp factor toward the origin
	ShrinkRate      float64 // scale multiplier
	ReformTolerance float64 // distance at which a fragment counts as reformed

	Kind  scene.Kind
	Color math3d.Color3
}

// LetterShards is the variant used by letter glyphs
func LetterShards() Config {
	return Config{
		Fragments:       30,
		Style:           StyleGravityReform,
		Velocity:        VelocityCubeDirection,
		Speed:           0.2,
		Gravity:         0.01,
		Floor:           -10,
		Spin:            0.05,
		DwellTicks:      120,
		ReformRate:      0.1,
		ShrinkRate:      0.95,
		ReformTolerance: 0.01,
		Kind:            scene.KindShard,
		Color:           math3d.Hex(0x00ffcc),
	}
}

// ShipSparks is the variant used by decoy ships
func ShipSparks() Config {
	return Config{
		Fragments: 50,
		Style:     StyleFade,
		Velocity:  VelocityCube,
		Speed:     0.3,
		FadeTicks: 60,
		Kind:      scene.KindSpark,
		Color:     math3d.Color3{R: 0.75, G: 0.75, B: 1},
	}
}

// MaxTicks bounds the number of ticks a single burst can stay active
func (c Config) MaxTicks() int {
	if c.Style == StyleFade {
		return c.FadeTicks
	}
	// Upper bound on how far a fragment can be from its origin when the
	// dwell ends: straight-line drift plus accumulated fall.
	dwell := float64(c.DwellTicks)
	d := c.Speed*math.Sqrt(3)*dwell + c.Gravity*dwell*(dwell+1)/2
	d = math.Max(d, c.ReformTolerance)
	n := math.Ceil(math.Log(c.ReformTolerance/d) / math.Log(1-c.ReformRate))
	if c.ReformRate >= 1 {
		n = 0
	}
	return c.DwellTicks + int(n) + 1
}

// Validate rejects configurations that could never finish
func (c Config) Validate() error {
	var errs []error
	if c.Fragments <= 0 {
		errs = append(errs, fmt.Errorf("fragments must be positive, got %d", c.Fragments))
	}
	if c.Speed < 0 {
		errs = append(errs, fmt.Errorf("speed must not be negative, got %g", c.Speed))
	}
	switch c.Style {
	case StyleFade:
		if c.FadeTicks <= 0 {
			errs = append(errs, fmt.Errorf("fade ticks must be positive, got %d", c.FadeTicks))
		}
	case StyleGravityReform:
		if c.DwellTicks < 0 {
			errs = append(errs, fmt.Errorf("dwell ticks must not be negative, got %d", c.DwellTicks))
		}
		if c.ReformRate <= 0 || c.ReformRate > 1 {
			errs = append(errs, fmt.Errorf("reform rate must be in (0,1], got %g", c.ReformRate))
		}
		if c.ReformTolerance <= 0 {
			errs = append(errs, fmt.Errorf("reform tolerance must be positive, got %g", c.ReformTolerance))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown style %d", c.Style))
	}
	return errors.Join(errs...)
}
