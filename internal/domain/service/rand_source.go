package service

import "math/rand/v2"

// pcgSourceFactory builds sources on the PCG generator from math/rand/v2.
// Seeded determinism holds for this generator only; it is not a cross-
// implementation guarantee.
type pcgSourceFactory struct{}

// NewPCGSourceFactory returns the production SourceFactory.
func NewPCGSourceFactory() SourceFactory {
	return pcgSourceFactory{}
}

func (pcgSourceFactory) Demo() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (pcgSourceFactory) Seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed))
}
