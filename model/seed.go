package model

import "math/rand/v2"

// SeedRule decides the initial state of the cell at a linear index.
type SeedRule func(index int) Cell

// DefaultSeed makes a cell Live when its index is divisible by 2 or by 7.
func DefaultSeed(index int) Cell {
	return CellFromBool(index%2 == 0 || index%7 == 0)
}

// EmptySeed leaves every cell Dead.
func EmptySeed(int) Cell { return Dead }

// RandomSeed makes each cell Live with the given probability.
func RandomSeed(rng *rand.Rand, density float64) SeedRule {
	return func(int) Cell {
		return CellFromBool(rng.Float64() < density)
	}
}

// NewRNG returns a deterministic generator for RandomSeed.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
