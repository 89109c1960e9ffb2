package parse

import "strings"

// findExercise scans the segment for the longest catalog alias it contains and
// returns that alias's canonical name. Alias keys come pre-sorted longest-first
// with a lexical tie-break, so multi-word phrases ("incline bench press") beat
// their substrings ("bench") and equal-length ties are deterministic.
func (p *Parser) findExercise(segment string) (string, bool) {
	s := strings.ToLower(segment)
	for _, key := range p.cat.AliasKeys() {
		if strings.Contains(s, key) {
			name, _ := p.cat.CanonicalFor(key)
			return name, true
		}
	}
	return "", false
}
