package sylph

import "github.com/sahilm/fuzzy"

// closestName picks the best candidate for a misspelled name, or "" when
// nothing plausible exists. Matching is subsequence-based, so it runs in both
// directions: a typo that drops characters matches forward, one that inserts
// characters matches in reverse.
func closestName(name string, candidates []string) string {
	if len(name) < 2 || len(candidates) == 0 {
		return ""
	}
	if matches := fuzzy.Find(name, candidates); len(matches) > 0 {
		return matches[0].Str
	}
	best := ""
	bestScore := -1
	for _, candidate := range candidates {
		if m := fuzzy.Find(candidate, []string{name}); len(m) > 0 && m[0].Score > bestScore {
			best = candidate
			bestScore = m[0].Score
		}
	}
	return best
}
