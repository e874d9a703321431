package rank

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/poiesic/recall/core"
)

// Candidate is a note eligible for ranking: its identity plus the stored
// embedding vector. UpdatedAt participates in tie-breaking only.
type Candidate struct {
	Id        core.ID
	Title     string
	Vector    []float32
	UpdatedAt time.Time
}

// CosineSimilarity computes dot(a,b) / (|a|*|b|) for two equal-length vectors.
//
// Returns ErrDimensionMismatch when the lengths differ, since that signals an
// embedding-model change that must be surfaced rather than hidden. A zero-norm
// vector is degenerate but valid input and yields 0.0, not an error.
func CosineSimilarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}

// Rank scores every candidate against the query vector, keeps those with
// similarity >= threshold, and orders them by descending similarity.
//
// Equal scores are broken by most-recently-updated first, so ordering does
// not depend on incidental store scan order. A single mismatched candidate
// fails the whole ranking: a dimensionality mismatch means the stored
// embeddings and the query were produced by different models, and silently
// dropping candidates would mask that.
func Rank(query []float32, candidates []Candidate, threshold float32) ([]core.SearchResult, error) {
	results := make([]core.SearchResult, 0, len(candidates))
	updated := make(map[core.ID]time.Time, len(candidates))

	for _, candidate := range candidates {
		score, err := CosineSimilarity(query, candidate.Vector)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", candidate.Id, err)
		}
		if score < threshold {
			continue
		}

		updated[candidate.Id] = candidate.UpdatedAt
		results = append(results, core.SearchResult{
			Id:    candidate.Id,
			Title: candidate.Title,
			Score: score,
		})
	}

	slices.SortStableFunc(results, func(a, b core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		// Tie-break: most recently updated first
		au, bu := updated[a.Id], updated[b.Id]
		if au.After(bu) {
			return -1
		}
		if bu.After(au) {
			return 1
		}
		return 0
	})

	return results, nil
}
