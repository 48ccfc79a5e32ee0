// Package bench provides the benchmark harness named informatively in the
// index's external interfaces: synthetic dataset generation, fvecs/ivecs
// loaders, brute-force ground truth for recall@k, and latency/recall
// reporting. None of it is on the hnsw package's correctness path.
package bench

import "math/rand"

// RNG wraps math/rand with an explicit seed so benchmark runs are
// reproducible across invocations.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates an RNG seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the seed this RNG was constructed with.
func (r *RNG) Seed() int64 { return r.seed }

// GenerateVectors produces num random vectors of the given dimension, with
// components uniform in [0, 1).
func (r *RNG) GenerateVectors(num, dimension int) [][]float64 {
	vectors := make([][]float64, num)
	for i := range vectors {
		vectors[i] = make([]float64, dimension)
		for j := range vectors[i] {
			vectors[i][j] = r.rand.Float64()
		}
	}
	return vectors
}

// GenerateQueries is GenerateVectors under a different name for call sites
// that draw query vectors from the same distribution as the corpus but want
// that intent to read clearly.
func (r *RNG) GenerateQueries(num, dimension int) [][]float64 {
	return r.GenerateVectors(num, dimension)
}
