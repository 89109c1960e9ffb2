package parse

import (
	"regexp"
	"strconv"

	"github.com/claude/replog/internal/models"
)

// Ordinal markers announcing a per-set breakdown: "first set", "2nd set",
// "set 3", for positions 1–10.
var setMarkerRe = regexp.MustCompile(`\b(?:(first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth)\s+set|(\d{1,2})(?:st|nd|rd|th)\s+set|set\s+(\d{1,2}))\b`)

var ordinalValues = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
}

// trySetBreakdown looks for two or more ordinal set markers in the segment.
// When found, the segment is sliced at each marker and every chunk is run
// through the reduced extractor (reps, weight, RPE, RIR), producing one set
// per marker in text order. Fewer than two markers yields nil and the caller
// falls back to uniform replication. A detected breakdown always overrides
// uniform extraction for its segment.
func (p *Parser) trySetBreakdown(seg string, category models.Category, equipment models.Equipment) []models.ParsedSet {
	matches := setMarkerRe.FindAllStringSubmatchIndex(seg, -1)

	// Keep only markers whose position decodes to 1..10.
	var starts []int
	for _, m := range matches {
		if markerPosition(seg, m) > 0 {
			starts = append(starts, m[0])
		}
	}
	if len(starts) < 2 {
		return nil
	}

	sets := make([]models.ParsedSet, 0, len(starts))
	for i, start := range starts {
		end := len(seg)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		a := extractReduced(seg[start:end])

		reps := a.reps
		if reps < 0 {
			reps = 1
		}
		weight, unit := p.resolveWeight(a.weight, a.unit, category, equipment)
		sets = append(sets, models.ParsedSet{
			Reps:    reps,
			Weight:  weight,
			Unit:    unit,
			SetType: models.SetNormal,
			RPE:     a.rpe,
			RIR:     a.rir,
		})
	}
	return sets
}

// markerPosition decodes which set position (1-based) a marker refers to,
// or 0 when out of range.
func markerPosition(seg string, m []int) int {
	if m[2] >= 0 {
		return ordinalValues[seg[m[2]:m[3]]]
	}
	for _, g := range []int{4, 6} {
		if m[g] >= 0 {
			n, _ := strconv.Atoi(seg[m[g] : m[g+1]])
			if n >= 1 && n <= 10 {
				return n
			}
			return 0
		}
	}
	return 0
}
