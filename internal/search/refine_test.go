package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codeberg.org/aiheap/server/internal/llm"
)

func TestSanitizeRefinement(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"website builder"`, "website builder"},
		{"E-commerce Website Builder.", "e-commerce website builder"},
		{"  'chatbot platform'  ", "chatbot platform"},
		{"plain query", "plain query"},
	}

	for _, tc := range cases {
		if got := sanitizeRefinement(tc.in); got != tc.want {
			t.Errorf("sanitizeRefinement(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFallbackRefinement(t *testing.T) {
	got := fallbackRefinement("build a website", "I need something for e-commerce stores")

	if !strings.Contains(got, "website") {
		t.Errorf("fallback %q should keep the original query", got)
	}
	if !strings.Contains(got, "e-commerce") {
		t.Errorf("fallback %q should pick up significant keywords", got)
	}
	if strings.Contains(got, "something") || strings.Contains(got, "need") {
		t.Errorf("fallback %q should drop stopwords", got)
	}
}

func TestFallbackRefinementNeverEmpty(t *testing.T) {
	inputs := [][2]string{
		{"", ""},
		{"", "can you help me"},
		{"  ", "  "},
	}

	for _, in := range inputs {
		if got := fallbackRefinement(in[0], in[1]); got == "" {
			t.Errorf("fallbackRefinement(%q, %q) returned empty string", in[0], in[1])
		}
	}
}

func TestRefineQueryUsesModelOutput(t *testing.T) {
	model := &mockLLM{
		generateTextFunc: func(_ context.Context, _ llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
			return &llm.TextGenerationResponse{Text: `"E-commerce Website Builder."`}, nil
		},
	}
	engine := newTestEngine(nil, nil, model)

	got := engine.refineQuery(context.Background(), "build a website", "I need something for e-commerce", nil, nil)
	if got != "e-commerce website builder" {
		t.Errorf("refineQuery = %q, want sanitized model output", got)
	}
}

func TestRefineQueryFallsBackOnFailure(t *testing.T) {
	cases := []struct {
		name string
		resp *llm.TextGenerationResponse
		err  error
	}{
		{"model error", nil, errors.New("rate limited")},
		{"empty output", &llm.TextGenerationResponse{Text: "  "}, nil},
		{"too short", &llm.TextGenerationResponse{Text: "a"}, nil},
		{"too long", &llm.TextGenerationResponse{Text: strings.Repeat("verbose ", 20)}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			model := &mockLLM{
				generateTextFunc: func(_ context.Context, _ llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
					return tc.resp, tc.err
				},
			}
			engine := newTestEngine(nil, nil, model)

			got := engine.refineQuery(context.Background(), "build a website", "for e-commerce", nil, nil)
			if got == "" {
				t.Fatal("refineQuery returned empty string")
			}
			if len(got) > refinementMaxLength+len("build a website") {
				t.Errorf("refineQuery output unexpectedly long: %q", got)
			}
			if !strings.Contains(got, "website") {
				t.Errorf("fallback %q should contain the original query", got)
			}
		})
	}
}
