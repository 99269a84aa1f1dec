package math3d

import "math/rand"

// Rand is the subset of *rand.Rand the simulation draws from. Tests pass a
// seeded source so bursts are reproducible.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Uniform returns a value in [lo, hi)
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// CubeDirection samples each axis in [-1,1) and normalizes the result.
// Directions cluster toward the cube diagonals; the look of the bursts depends
// on that, so the sampler is kept as is.
func CubeDirection(r Rand) Vec3 {
	return Vec3{
		r.Float64()*2 - 1,
		r.Float64()*2 - 1,
		r.Float64()*2 - 1,
	}.Normalize()
}

// CubeVelocity samples each axis independently in [-spread/2, spread/2)
func CubeVelocity(r Rand, spread float64) Vec3 {
	return Vec3{
		(r.Float64() - 0.5) * spread,
		(r.Float64() - 0.5) * spread,
		(r.Float64() - 0.5) * spread,
	}
}

// NewRand returns a seeded source
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
