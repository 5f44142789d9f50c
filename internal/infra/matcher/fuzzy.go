// Package matcher provides the similarity scoring used by the mapper
// pipeline's fuzzy stage.
package matcher

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// TokenSort scores candidates with the token-sort ratio, so word order does
// not affect similarity. Scores are in [0, 100].
type TokenSort struct{}

// NewTokenSort constructs the default matcher.
func NewTokenSort() *TokenSort {
	return &TokenSort{}
}

// BestMatch returns the index and score of the highest scoring candidate.
// Ties keep the earliest candidate, which preserves dictionary iteration
// order regardless of the underlying library's own ranking. An empty
// candidate set returns (-1, 0).
func (*TokenSort) BestMatch(query string, candidates []string) (int, int) {
	bestIdx, bestScore := -1, 0
	for i, candidate := range candidates {
		score := fuzzy.TokenSortRatio(query, candidate)
		if bestIdx == -1 || score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx, bestScore
}
