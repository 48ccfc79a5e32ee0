package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineScore(t *testing.T) {
	t.Run("identical vectors score 1", func(t *testing.T) {
		s, err := CosineScore([]float64{1, 2, 3}, []float64{1, 2, 3})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, s, 1e-9)
	})

	t.Run("orthogonal vectors score 0", func(t *testing.T) {
		s, err := CosineScore([]float64{1, 0}, []float64{0, 1})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, s, 1e-9)
	})

	t.Run("zero vector is rejected", func(t *testing.T) {
		_, err := CosineScore([]float64{0, 0}, []float64{1, 2})
		require.ErrorIs(t, err, ErrZeroVector)
	})

	t.Run("dimension mismatch errors", func(t *testing.T) {
		_, err := CosineScore([]float64{1, 2}, []float64{1, 2, 3})
		require.Error(t, err)
	})
}

func TestEuclideanScore(t *testing.T) {
	t.Run("identical vectors score 1", func(t *testing.T) {
		s, err := EuclideanScore([]float64{1, 2, 3}, []float64{1, 2, 3})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, s, 1e-9)
	})

	t.Run("score is bounded in (0,1]", func(t *testing.T) {
		s, err := EuclideanScore([]float64{0, 0}, []float64{3, 4})
		require.NoError(t, err)
		assert.InDelta(t, 1.0/6.0, s, 1e-9)
		assert.Greater(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	})
}

func TestOf(t *testing.T) {
	for _, m := range []Metric{Cosine, Euclidean} {
		fn, err := Of(m)
		require.NoError(t, err)
		assert.NotNil(t, fn)
	}

	_, err := Of(Metric("manhattan"))
	require.ErrorIs(t, err, ErrInvalidMetric)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Cosine))
	assert.True(t, Valid(Euclidean))
	assert.False(t, Valid(Metric("jaccard")))
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero([]float64{0, 0, 0}))
	assert.False(t, IsZero([]float64{0, 0, 1}))
}
