package search

import "testing"

func TestSemanticConfidenceBounds(t *testing.T) {
	cases := []struct {
		name      string
		distances []float64
	}{
		{"empty", nil},
		{"close matches", []float64{0.1, 0.2, 0.15}},
		{"distant matches", []float64{0.9, 0.95}},
		{"out of range distances", []float64{1.5, 2.0}},
		{"negative distance", []float64{-0.5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := semanticConfidence(tc.distances)
			if got < 0 || got > 1 {
				t.Errorf("semanticConfidence(%v) = %v, out of [0,1]", tc.distances, got)
			}
		})
	}
}

func TestSemanticConfidenceMonotonic(t *testing.T) {
	closer := semanticConfidence([]float64{0.1, 0.2})
	farther := semanticConfidence([]float64{0.5, 0.6})

	if closer <= farther {
		t.Errorf("closer matches should score higher: %v <= %v", closer, farther)
	}
}

func TestSingleConfidence(t *testing.T) {
	if got := singleConfidence(0.3); got != 0.7 {
		t.Errorf("singleConfidence(0.3) = %v, want 0.7", got)
	}
	if got := singleConfidence(1.8); got != 0 {
		t.Errorf("singleConfidence(1.8) = %v, want 0", got)
	}
}

func TestLexicalConfidence(t *testing.T) {
	if got := lexicalConfidence(0, 100, false); got != lexicalConfidenceBrowsing {
		t.Errorf("browsing confidence = %v, want %v", got, lexicalConfidenceBrowsing)
	}

	// band is always respected
	for _, count := range []int{0, 1, 5, 50, 1000} {
		got := lexicalConfidence(count, 100, true)
		if got < lexicalConfidenceMin || got > lexicalConfidenceMax {
			t.Errorf("lexicalConfidence(%d, 100) = %v, out of [%v,%v]",
				count, got, lexicalConfidenceMin, lexicalConfidenceMax)
		}
	}

	// empty corpus never divides by zero
	if got := lexicalConfidence(5, 0, true); got != lexicalConfidenceMin {
		t.Errorf("empty corpus confidence = %v, want %v", got, lexicalConfidenceMin)
	}

	// more hits relative to the corpus means more confidence
	few := lexicalConfidence(7, 100, true)
	many := lexicalConfidence(9, 100, true)
	if many < few {
		t.Errorf("confidence should not decrease with more results: %v < %v", many, few)
	}
}
