package search

import "testing"

func TestShouldClarifyZeroResults(t *testing.T) {
	// nothing found always warrants help, whatever the confidence
	for _, confidence := range []float64{0, 0.5, 1, 95} {
		if !shouldClarify(0, confidence, "vector database for cats", true) {
			t.Errorf("shouldClarify(0, %v) = false, want true", confidence)
		}
		if !shouldClarify(0, confidence, "vector database for cats", false) {
			t.Errorf("lexical shouldClarify(0, %v) = false, want true", confidence)
		}
	}
}

func TestShouldClarifyExploratoryBypass(t *testing.T) {
	queries := []string{"ai tools", "tools", "AI Tools", "  show me everything  ", "ai", "x"}

	for _, q := range queries {
		if shouldClarify(3, 0.1, q, true) {
			t.Errorf("exploratory query %q triggered clarification", q)
		}
	}
}

func TestShouldClarifySemanticBand(t *testing.T) {
	cases := []struct {
		name        string
		resultCount int
		confidence  float64
		want        bool
	}{
		{"low confidence few results", 4, 0.5, true},
		{"low confidence many results", 25, 0.5, false},
		{"high confidence few results", 4, 0.9, false},
		{"boundary confidence", 4, 0.7, false},
		{"boundary count", 10, 0.5, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := shouldClarify(tc.resultCount, tc.confidence, "image generation for architects", true)
			if got != tc.want {
				t.Errorf("shouldClarify(%d, %v) = %v, want %v", tc.resultCount, tc.confidence, got, tc.want)
			}
		})
	}
}

func TestShouldClarifyLexicalBand(t *testing.T) {
	if !shouldClarify(8, 65, "email outreach automation", false) {
		t.Error("low-confidence mid-size lexical set should clarify")
	}
	if shouldClarify(8, 85, "email outreach automation", false) {
		t.Error("high-confidence lexical set should not clarify")
	}
	if shouldClarify(20, 65, "email outreach automation", false) {
		t.Error("large lexical set should not clarify")
	}
}

func TestIsExploratory(t *testing.T) {
	if !isExploratory("abc") {
		t.Error("short query should be exploratory")
	}
	if !isExploratory("Everything") {
		t.Error("broad phrase should match case-insensitively")
	}
	if isExploratory("code review assistant") {
		t.Error("specific query should not be exploratory")
	}
}
