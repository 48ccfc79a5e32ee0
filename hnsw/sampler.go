package hnsw

import (
	"math"
	"math/rand"
)

// levelSampler draws the layer a newly inserted node will top out at,
// following the exponential distribution HNSW uses to keep the expected
// number of nodes per layer shrinking geometrically with height.
//
// draw is an injectable source of uniform [0,1) randomness so tests can
// supply a fixed sequence instead of a real RNG; it is grounded the same way
// the teacher wraps math/rand in util.RNG, but exposed as a narrow func seam
// rather than a concrete type so tests can substitute a deterministic
// sequence directly.
type levelSampler struct {
	m     int
	mL    float64
	probs []float64
	draw  func() float64
}

// newLevelSampler precomputes the probs table for fan-out factor m:
//
//	mL = 1 / ln(m)
//	probs[l] = exp(-l/mL) * (1 - exp(-1/mL))
//
// Entries below 1e-9 are dropped; they would never be selected in practice
// and only add dead iterations to selectLevel.
func newLevelSampler(m int, draw func() float64) *levelSampler {
	if draw == nil {
		src := rand.New(rand.NewSource(1)) // nolint gosec
		draw = src.Float64
	}

	mL := 1 / math.Log(float64(m))

	var probs []float64
	for l := 0; ; l++ {
		p := math.Exp(-float64(l)/mL) * (1 - math.Exp(-1/mL))
		if p < 1e-9 {
			break
		}
		probs = append(probs, p)
	}

	return &levelSampler{m: m, mL: mL, probs: probs, draw: draw}
}

// next draws a fresh level for a new node.
func (s *levelSampler) next() int {
	return selectLevel(s.probs, s.draw())
}

// selectLevel returns the smallest level l such that r falls within the
// cumulative mass of probs[0..l]; if r exceeds the total mass it returns the
// last level. This is a cumulative-sum comparison rather than a per-index
// probs[l] comparison: probs[l] is the *marginal* probability mass assigned
// to level l, so membership in level l is decided by where r lands in the
// running cumulative sum, not by comparing r against probs[l] in isolation.
func selectLevel(probs []float64, r float64) int {
	if len(probs) == 0 {
		return 0
	}

	cum := 0.0
	for l, p := range probs {
		cum += p
		if r < cum {
			return l
		}
	}
	return len(probs) - 1
}
