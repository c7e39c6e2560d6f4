package sylph

import "testing"

func TestClosestName(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		candidates []string
		want       string
	}{
		{"dropped character", "totl", []string{"total", "count"}, "total"},
		{"inserted character", "counnt", []string{"total", "count"}, "count"},
		{"prefix", "tot", []string{"total"}, "total"},
		{"nothing plausible", "xyz", []string{"total", "count"}, ""},
		{"single character input", "t", []string{"total"}, ""},
		{"no candidates", "total", nil, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := closestName(tc.input, tc.candidates); got != tc.want {
				t.Fatalf("closestName(%q, %v): got %q want %q", tc.input, tc.candidates, got, tc.want)
			}
		})
	}
}
