package parse

import (
	"sort"
	"strings"

	"github.com/claude/replog/internal/models"
)

const (
	// fuzzyThreshold is the maximum edit distance at which an unknown input is
	// still mapped to an alias.
	fuzzyThreshold = 3
	maxSuggestions = 3
)

// Normalize resolves a free-form exercise name against the catalog: exact
// alias match, then canonical-name match, then Levenshtein fallback. Inputs
// beyond the edit-distance threshold come back unrecognized with up to three
// nearest canonical names as suggestions. Usable standalone for autocomplete
// and validation; Parse does not call it.
func (p *Parser) Normalize(input string) models.NormalizationResult {
	res := models.NormalizationResult{OriginalInput: input}
	trimmed := strings.ToLower(strings.TrimSpace(input))

	if name, ok := p.cat.CanonicalFor(trimmed); ok {
		res.CanonicalName = name
		res.Confidence = models.ConfidenceExact
		return res
	}
	if e, ok := p.cat.Lookup(trimmed); ok {
		res.CanonicalName = e.Name
		res.Confidence = models.ConfidenceExact
		return res
	}

	// Minimum edit distance over every alias key; ties resolve to the first
	// key in the (longest-first, lexical) scan order.
	best := -1
	bestName := ""
	distByName := make(map[string]int)
	for _, key := range p.cat.AliasKeys() {
		d := levenshtein(trimmed, key)
		canonical, _ := p.cat.CanonicalFor(key)
		if prev, ok := distByName[canonical]; !ok || d < prev {
			distByName[canonical] = d
		}
		if best < 0 || d < best {
			best = d
			bestName = canonical
		}
	}

	if best >= 0 && best <= fuzzyThreshold {
		res.CanonicalName = bestName
		res.Confidence = models.ConfidenceFuzzy
		return res
	}

	res.Confidence = models.ConfidenceUnrecognized
	names := make([]string, 0, len(distByName))
	for name := range distByName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if distByName[names[i]] != distByName[names[j]] {
			return distByName[names[i]] < distByName[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > maxSuggestions {
		names = names[:maxSuggestions]
	}
	res.Suggestions = names
	return res
}

// levenshtein is the classic dynamic-programming edit distance with unit cost
// for insertion, deletion, and substitution.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
