// Package parse turns a free-form workout sentence — gym slang, plate math,
// and shorthand included — into an ordered list of exercises with structured
// sets. The pipeline is total over its input: unrecognizable segments are
// dropped, never guessed, and a segment with a recognized exercise but no
// extractable attributes still yields a default set. Parsing is a pure
// function of the input text and the immutable catalog, so one Parser is safe
// for concurrent use.
package parse

import (
	"strings"

	"github.com/claude/replog/internal/catalog"
	"github.com/claude/replog/internal/models"
)

// Options configures a Parser.
type Options struct {
	// DefaultUnit applies when a segment carries no explicit unit token.
	// Defaults to pounds.
	DefaultUnit models.Unit
}

// Parser is the deterministic workout-log parsing engine.
type Parser struct {
	cat         *catalog.Catalog
	defaultUnit models.Unit
}

// New creates a Parser over the given catalog.
func New(cat *catalog.Catalog, opts Options) *Parser {
	unit := opts.DefaultUnit
	if unit == "" {
		unit = models.UnitPounds
	}
	return &Parser{cat: cat, defaultUnit: unit}
}

// Parse converts raw text into an ordered list of parsed exercises. Repeated
// mentions of the same exercise across segments merge into one entry with the
// later sets appended; set numbers are renumbered 1..N afterwards. Worst case
// the result is empty — Parse never fails.
func (p *Parser) Parse(text string) []models.ParsedExercise {
	expanded := expand(text)

	var out []models.ParsedExercise
	index := make(map[string]int)

	for _, seg := range segmentText(expanded) {
		name, ok := p.findExercise(seg)
		if !ok {
			continue
		}

		entry, known := p.cat.Lookup(name)
		equipment, muscles := p.resolveMetadata(name, seg)
		a := p.extract(seg)

		category := models.Category("")
		if known {
			category = entry.Category
		}
		if category == "" {
			category = inferCategory(a)
		}

		sets := p.trySetBreakdown(seg, category, equipment)
		if sets == nil {
			sets = p.uniformSets(a, category, equipment)
		}
		if category == models.CategoryBodyweight {
			for i := range sets {
				sets[i].Weight = 0
			}
		}

		key := strings.ToLower(name)
		if i, seen := index[key]; seen {
			out[i].Sets = append(out[i].Sets, sets...)
			continue
		}
		out = append(out, models.ParsedExercise{
			Name:           name,
			Category:       category,
			Equipment:      equipment,
			PrimaryMuscles: muscles,
			Sets:           sets,
		})
		index[key] = len(out) - 1
	}

	for i := range out {
		for j := range out[i].Sets {
			out[i].Sets[j].SetNumber = j + 1
		}
	}
	return out
}

// uniformSets builds one set from the segment's attributes and replicates it
// setsCount times (once when no count was stated).
func (p *Parser) uniformSets(a attrs, category models.Category, equipment models.Equipment) []models.ParsedSet {
	reps := a.reps
	if reps < 0 {
		if category == models.CategoryTimed {
			reps = 0
		} else {
			// No reps stated: with a weight present this reads as a max/PR
			// attempt; without one it is still a single effort.
			reps = 1
		}
	}

	weight, unit := p.resolveWeight(a.weight, a.unit, category, equipment)

	base := models.ParsedSet{
		Reps:            reps,
		Weight:          weight,
		Unit:            unit,
		DurationSeconds: a.durationSec,
		SetType:         a.setType,
		RPE:             a.rpe,
		RIR:             a.rir,
		RestSeconds:     a.restSec,
		Tempo:           a.tempo,
		Grip:            a.grip,
		Stance:          a.stance,
	}

	n := a.setsCount
	if n <= 0 {
		n = 1
	}
	sets := make([]models.ParsedSet, n)
	for i := range sets {
		sets[i] = base
		if a.rir != nil {
			rir := *a.rir
			sets[i].RIR = &rir
		}
	}
	return sets
}

// resolveWeight finalizes a set's weight and unit. Extracted weight of -1
// means none was found: bodyweight exercises stay at 0, weighted exercises
// fall back to the equipment's base bar weight (always pounds) when one
// exists. An explicit unit token wins; otherwise the caller default applies.
func (p *Parser) resolveWeight(weight float64, explicit models.Unit, category models.Category, equipment models.Equipment) (float64, models.Unit) {
	unit := explicit
	if unit == "" {
		unit = p.defaultUnit
	}

	if category == models.CategoryBodyweight {
		return 0, unit
	}
	if weight >= 0 {
		return weight, unit
	}
	if category == models.CategoryWeighted {
		if base, ok := p.cat.BaseWeight(equipment); ok {
			return base, models.UnitPounds
		}
	}
	return 0, unit
}

// inferCategory decides a category from set contents when the catalog has no
// opinion: any duration makes it timed, a real weight makes it weighted, and
// anything else is treated as bodyweight.
func inferCategory(a attrs) models.Category {
	if a.durationSec > 0 {
		return models.CategoryTimed
	}
	if a.weight >= 1 {
		return models.CategoryWeighted
	}
	return models.CategoryBodyweight
}
