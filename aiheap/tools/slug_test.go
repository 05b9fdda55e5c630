package tools

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Copy AI", "copy-ai"},
		{"  Jasper  ", "jasper"},
		{"GPT-4 Writer!", "gpt-4-writer"},
		{"Notion__AI", "notion-ai"},
		{"--weird--", "weird"},
		{"Émile's Tool", "mile-s-tool"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
