package parse

import "strings"

// Discourse connectives that separate one exercise clause from the next. Each
// delimiter is applied to every fragment produced so far; one pass over the
// list is sufficient (no recursion).
var segmentDelims = []string{
	". ",
	", then ",
	" and then ",
	" then ",
	" also ",
	" next ",
	" after that ",
	" followed by ",
	"\n",
}

// segmentText splits expanded input into exercise-sized clauses, trimming
// whitespace and dropping empty fragments.
func segmentText(text string) []string {
	parts := []string{text}
	for _, d := range segmentDelims {
		next := make([]string, 0, len(parts))
		for _, p := range parts {
			next = append(next, strings.Split(p, d)...)
		}
		parts = next
	}

	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(strings.Trim(strings.TrimSpace(p), ".,"))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
