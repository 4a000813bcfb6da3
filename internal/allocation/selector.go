package allocation

import (
	"math"

	"github.com/team4/foodflow/internal/ingredient"
	"github.com/team4/foodflow/internal/types"
)

// Scoring weights for candidate recipes. Coverage of the expiring universe
// dominates; retrieval rank breaks the rest.
const (
	coverageWeight = 0.75
	rankWeight     = 0.25
	// scoreJitter is uniform noise in [-scoreJitter, +scoreJitter] added per
	// candidate per sampled call, so near-tied candidates do not collapse
	// onto one index.
	scoreJitter = 0.05
	// missingRankSentinel stands in for candidates without a rank.
	missingRankSentinel = 9999
)

// SelectRecipe picks exactly one recipe from a ranked candidate list.
//
// Each candidate is scored by how many expiring-universe ingredients it
// covers, blended with its 1-based rank. With temperature > 0 the scores are
// jittered and converted to a softmax distribution from which one index is
// sampled with a single uniform draw; temperature <= 0 skips both jitter and
// softmax and returns the arg-max candidate (first occurrence on ties).
//
// The returned recipe's MatchedExpiring must still be intersected with the
// universe downstream; it may reference items outside the current run.
func SelectRecipe(candidates []types.CandidateRecipe, universe *ingredient.Universe, rng Rand, temperature float64) (*types.CandidateRecipe, error) {
	if len(candidates) == 0 {
		return nil, &EmptyCandidateSetError{}
	}
	if math.IsNaN(temperature) || math.IsInf(temperature, 0) {
		return nil, &InvalidProbabilityError{Name: "temperature", Value: temperature}
	}

	scores := baseScores(candidates, universe)

	if temperature <= 0 {
		best := 0
		for i, score := range scores {
			if score > scores[best] {
				best = i
			}
		}
		chosen := candidates[best]
		return &chosen, nil
	}

	for i := range scores {
		scores[i] += (rng.Float64()*2 - 1) * scoreJitter
	}

	probs := softmax(scores, temperature)
	chosen := candidates[sampleIndex(probs, rng.Float64())]
	return &chosen, nil
}

// baseScores computes the deterministic part of every candidate's score.
func baseScores(candidates []types.CandidateRecipe, universe *ingredient.Universe) []float64 {
	coverage := make([]int, len(candidates))
	ranks := make([]int, len(candidates))
	maxCoverage := 0
	maxRank := 1
	for i, candidate := range candidates {
		coverage[i] = len(universe.Intersect(candidate.MatchedExpiring))
		if coverage[i] > maxCoverage {
			maxCoverage = coverage[i]
		}
		rank := candidate.Rank
		if rank < 1 {
			rank = missingRankSentinel
		}
		ranks[i] = rank
		if rank > maxRank {
			maxRank = rank
		}
	}

	scores := make([]float64, len(candidates))
	for i := range candidates {
		coverageNorm := float64(coverage[i]) / float64(max(1, maxCoverage))
		rankNorm := 1.0
		if maxRank > 1 {
			rankNorm = 1 - float64(ranks[i]-1)/float64(maxRank-1)
		}
		scores[i] = coverageWeight*coverageNorm + rankWeight*rankNorm
	}
	return scores
}

// softmax converts scores to a probability distribution at the given
// temperature, subtracting the max for numerical stability.
func softmax(scores []float64, temperature float64) []float64 {
	scaled := make([]float64, len(scores))
	maxScaled := math.Inf(-1)
	for i, score := range scores {
		scaled[i] = score / temperature
		if scaled[i] > maxScaled {
			maxScaled = scaled[i]
		}
	}

	probs := make([]float64, len(scores))
	sum := 0.0
	for i := range scaled {
		probs[i] = math.Exp(scaled[i] - maxScaled)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// sampleIndex returns the first index whose cumulative probability reaches
// the draw.
func sampleIndex(probs []float64, draw float64) int {
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if cumulative >= draw {
			return i
		}
	}
	// Floating-point underflow in the cumulative sum; the draw belongs to
	// the tail.
	return len(probs) - 1
}
