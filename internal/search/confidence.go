package search

const (
	// lexical confidence is a rough count-based heuristic, pinned to a
	// band so it never reads as certain or hopeless
	lexicalConfidenceMin      = 60
	lexicalConfidenceMax      = 95
	lexicalConfidenceBrowsing = 85

	// fraction of the corpus a lexical query has to cover to max out
	lexicalCoverageTarget = 0.1
)

// semanticConfidence scores a result page from its raw distances.
// Lower distances mean closer matches, so confidence is one minus the
// average distance, clamped to [0, 1].
func semanticConfidence(distances []float64) float64 {
	if len(distances) == 0 {
		return 0
	}

	var sum float64
	for _, d := range distances {
		sum += d
	}

	return clamp01(1 - sum/float64(len(distances)))
}

// singleConfidence scores a query health-check from the single nearest
// neighbor's distance
func singleConfidence(distance float64) float64 {
	return clamp01(1 - distance)
}

// lexicalConfidence estimates, on a 0-100 scale, how satisfying a
// lexical result set is likely to be. More hits relative to the corpus
// means higher confidence; pure browsing with no query text gets a
// fixed middling score.
func lexicalConfidence(resultCount, corpusSize int, hasQuery bool) float64 {
	if !hasQuery {
		return lexicalConfidenceBrowsing
	}
	if corpusSize <= 0 {
		return lexicalConfidenceMin
	}

	score := float64(resultCount) / (float64(corpusSize) * lexicalCoverageTarget) * 100
	if score < lexicalConfidenceMin {
		return lexicalConfidenceMin
	}
	if score > lexicalConfidenceMax {
		return lexicalConfidenceMax
	}

	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}
