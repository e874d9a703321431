package rank

import (
	"testing"
	"time"

	"github.com/poiesic/recall/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	vectors := [][]float32{
		{1.0, 0.0, 0.0},
		{0.3, -0.4, 0.5},
		{3.0, 4.0},
		{0.001, 0.002, 0.003, 0.004},
	}

	for _, v := range vectors {
		score, err := CosineSimilarity(v, v)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-6)
	}
}

func TestCosineSimilarity_NegationIsMinusOne(t *testing.T) {
	v := []float32{0.3, -0.4, 0.5}
	neg := make([]float32, len(v))
	for i := range v {
		neg[i] = -v[i]
	}

	score, err := CosineSimilarity(v, neg)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, score, 1e-6)
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := []float32{0.9, 0.1, 0.0}
	b := []float32{0.1, 0.1, 0.8}

	ab, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	ba, err := CosineSimilarity(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	score, err := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, score, 1e-6)
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	pairs := [][2][]float32{
		{{1, 2}, {1, 2, 3}},
		{{1, 2, 3}, {1, 2}},
		{{}, {1}},
		{nil, {1, 2, 3}},
	}

	for _, pair := range pairs {
		_, err := CosineSimilarity(pair[0], pair[1])
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	}
}

func TestCosineSimilarity_ZeroNorm(t *testing.T) {
	score, err := CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3})
	require.NoError(t, err, "zero-norm vector is degenerate but valid")
	assert.Equal(t, float32(0.0), score)

	score, err = CosineSimilarity([]float32{1, 2, 3}, []float32{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, float32(0.0), score)
}

func TestRank_ThresholdAndOrder(t *testing.T) {
	now := time.Now().UTC()
	query := []float32{1, 0, 0}

	candidates := []Candidate{
		{Id: 1, Title: "close", Vector: []float32{0.95, 0.05, 0}, UpdatedAt: now},
		{Id: 2, Title: "closer", Vector: []float32{1, 0, 0}, UpdatedAt: now},
		{Id: 3, Title: "far", Vector: []float32{0, 1, 0}, UpdatedAt: now},
		{Id: 4, Title: "opposite", Vector: []float32{-1, 0, 0}, UpdatedAt: now},
	}

	results, err := Rank(query, candidates, 0.5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Sorted non-increasing, nothing below threshold
	for i := range results {
		assert.GreaterOrEqual(t, results[i].Score, float32(0.5))
		if i > 0 {
			assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
		}
	}
	assert.Equal(t, core.ID(2), results[0].Id)
	assert.Equal(t, core.ID(1), results[1].Id)
}

func TestRank_NegativeThresholdKeepsOpposites(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{Id: 1, Vector: []float32{-1, 0}},
	}

	results, err := Rank(query, candidates, -1.0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, -1.0, results[0].Score, 1e-6)
}

func TestRank_TieBrokenByMostRecentlyUpdated(t *testing.T) {
	now := time.Now().UTC()
	query := []float32{1, 0}

	candidates := []Candidate{
		{Id: 1, Title: "older", Vector: []float32{1, 0}, UpdatedAt: now.Add(-time.Hour)},
		{Id: 2, Title: "newer", Vector: []float32{2, 0}, UpdatedAt: now}, // same direction, same score
	}

	results, err := Rank(query, candidates, 0.9)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, core.ID(2), results[0].Id, "newer note wins the tie")
	assert.Equal(t, core.ID(1), results[1].Id)
}

func TestRank_MismatchedCandidateFailsWholeRanking(t *testing.T) {
	query := []float32{1, 0, 0}
	candidates := []Candidate{
		{Id: 1, Vector: []float32{1, 0, 0}},
		{Id: 2, Vector: []float32{1, 0}}, // wrong dimensionality
	}

	results, err := Rank(query, candidates, 0.0)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestRank_EmptyCandidates(t *testing.T) {
	results, err := Rank([]float32{1, 0}, nil, 0.5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
