package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/claude/replog/internal/models"
)

// attrs bundles everything one segment's text yielded before set assembly.
// Sentinels: setsCount 0 = absent, reps -1 = absent, weight -1 = absent,
// unit "" = no explicit unit token (caller default applies).
type attrs struct {
	setsCount   int
	reps        int
	repsForced  bool // singular-rep phrasing wins over every other reps rule
	weight      float64
	unit        models.Unit
	durationSec int
	setType     models.SetType
	rpe         float64
	rir         *int
	restSec     int
	tempo       string
	grip        models.Grip
	stance      models.Stance
}

var (
	// sets x reps (x weight): "5x5x225", "3x10", "3 x 10"
	setsRepsWeightRe = regexp.MustCompile(`\b(\d+)\s*x\s*(\d+)\s*x\s*(\d+(?:\.\d+)?)\b`)
	setsRepsRe       = regexp.MustCompile(`\b(\d+)\s*x\s*(\d+)\b`)
	setsCountRe      = regexp.MustCompile(`\b(\d+)\s+sets?\b`)
	timesRe          = regexp.MustCompile(`\b(\d+)\s+times\b`)

	// Singular-rep phrases force reps to exactly 1.
	singularRepRes = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:a|1)\s+single(?:\s+rep)?\b`),
		regexp.MustCompile(`\b1\s+rep\b`),
		regexp.MustCompile(`\bfor\s+(?:a\s+)?single\b`),
		regexp.MustCompile(`\bfor\s+1\b`),
		regexp.MustCompile(`\ba\s+rep\b`),
	}

	repsRe   = regexp.MustCompile(`\b(\d+)\s+reps?\b`)
	setsOfRe = regexp.MustCompile(`\bsets?\s+of\s+(\d+)\b`)
	forNumRe = regexp.MustCompile(`\bfor\s+(\d+)\b`)

	kgWeightRe   = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:kilograms?|kilos?|kgs?)\b`)
	lbWeightRe   = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:pounds?|lbs?)\b`)
	atWeightRe   = regexp.MustCompile(`(?:\bat\s+|@\s*)(\d+(?:\.\d+)?)\b`)
	bareWeightRe = regexp.MustCompile(`\b(\d{3})\b`)

	minSecRe    = regexp.MustCompile(`\b(\d+):(\d{2})\b`)
	minAndSecRe = regexp.MustCompile(`\b(\d+)\s+min(?:ute)?s?\s+(?:and\s+)?(\d+)\s+sec(?:ond)?s?\b`)
	minutesRe   = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s+min(?:ute)?s?\b`)
	secondsRe   = regexp.MustCompile(`\b(\d+)\s+sec(?:ond)?s?\b`)

	rpeRes = []*regexp.Regexp{
		regexp.MustCompile(`\brpe\s*(?:of\s*)?(\d+(?:\.\d+)?)\b`),
		regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*rpe\b`),
		regexp.MustCompile(`\brate of perceived exertion\s*(?:of\s*)?(\d+(?:\.\d+)?)\b`),
	}

	rirRes = []*regexp.Regexp{
		regexp.MustCompile(`\brir\s*(?:of\s*)?(\d+)\b`),
		regexp.MustCompile(`\b(\d+)\s*rir\b`),
		regexp.MustCompile(`\b(\d+)\s+(?:reps?\s+)?(?:left\s+)?in\s+the\s+tank\b`),
		regexp.MustCompile(`\b(\d+)\s+(?:reps?\s+)?(?:left\s+)?in\s+reserve\b`),
		regexp.MustCompile(`\bcould\s+(?:have\s+)?(?:do|done)\s+(\d+)\s+more\b`),
	}

	restMinRes = []*regexp.Regexp{
		regexp.MustCompile(`\brest(?:ed|ing)?\s*(?:for\s*)?(\d+(?:\.\d+)?)\s*min(?:ute)?s?\b`),
		regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*min(?:ute)?s?\s*(?:of\s+)?rest\b`),
	}
	restSecRes = []*regexp.Regexp{
		regexp.MustCompile(`\brest(?:ed|ing)?\s*(?:for\s*)?(\d+)\s*sec(?:ond)?s?\b`),
		regexp.MustCompile(`\b(\d+)\s*sec(?:ond)?s?\s*(?:of\s+)?rest\b`),
	}

	tempoKeyedRe = regexp.MustCompile(`\btempo\s+(\d)[ /-](\d)[ /-](\d)(?:[ /-](\d))?\b`)
	tempoDashRe  = regexp.MustCompile(`\b(\d)\s*[/-]\s*(\d)\s*[/-]\s*(\d)(?:\s*[/-]\s*(\d))?\b`)
)

// tempoPhrases maps descriptive execution cues onto eccentric-pause-concentric
// tempo strings. Longest phrase first.
var tempoPhrases = []struct {
	phrase string
	tempo  string
}{
	{"pause at the bottom", "2-2-1"},
	{"pause at the top", "2-1-2"},
	{"slow eccentric", "3-0-1"},
	{"slow negative", "3-0-1"},
	{"paused reps", "2-2-1"},
}

// gripVocab and stanceVocab are scanned longest-keyword-first.
var gripVocab = []struct {
	kw string
	g  models.Grip
}{
	{"alternating grip", models.GripMixed},
	{"reverse grip", models.GripUnderhand},
	{"neutral grip", models.GripNeutral},
	{"hammer grip", models.GripNeutral},
	{"narrow grip", models.GripClose},
	{"mixed grip", models.GripMixed},
	{"close grip", models.GripClose},
	{"hook grip", models.GripHook},
	{"wide grip", models.GripWide},
	{"underhand", models.GripUnderhand},
	{"supinated", models.GripUnderhand},
	{"pronated", models.GripOverhand},
	{"overhand", models.GripOverhand},
}

var stanceVocab = []struct {
	kw string
	s  models.Stance
}{
	{"staggered stance", models.StanceStaggered},
	{"narrow stance", models.StanceNarrow},
	{"close stance", models.StanceNarrow},
	{"split stance", models.StanceSplit},
	{"wide stance", models.StanceWide},
	{"conventional", models.StanceConventional},
	{"staggered", models.StanceStaggered},
	{"sumo", models.StanceSumo},
}

var setTypeVocab = []struct {
	kw string
	t  models.SetType
}{
	{"as many reps as possible", models.SetAMRAP},
	{"until failure", models.SetToFailure},
	{"till failure", models.SetToFailure},
	{"cluster sets", models.SetCluster},
	{"cluster set", models.SetCluster},
	{"to failure", models.SetToFailure},
	{"rest-pause", models.SetRestPause},
	{"rest pause", models.SetRestPause},
	{"drop sets", models.SetDrop},
	{"super set", models.SetSuperset},
	{"drop set", models.SetDrop},
	{"warmed up", models.SetWarmup},
	{"superset", models.SetSuperset},
	{"dropsets", models.SetDrop},
	{"dropset", models.SetDrop},
	{"warm-up", models.SetWarmup},
	{"warm up", models.SetWarmup},
	{"warmup", models.SetWarmup},
	{"cluster", models.SetCluster},
	{"amrap", models.SetAMRAP},
}

// unitSuffixWords disqualify a number from being read as a bare weight or a
// bare "for N" reps count, because the number belongs to another rule.
var unitSuffixWords = []string{
	"pounds", "pound", "lbs", "lb",
	"kilograms", "kilogram", "kilos", "kilo", "kgs", "kg",
	"minutes", "minute", "mins", "min",
	"seconds", "second", "secs", "sec",
	"reps", "rep", "sets", "set", "times",
	"rpe", "rir", "more", "plates", "plate",
}

// extract pulls every supported attribute out of one segment. The input is
// assumed to be already expanded (lower-cased, slang and numerals rewritten).
// Rules fire in a fixed priority order; numbers claimed by an earlier rule are
// scrubbed from the working text so later rules cannot re-read them.
func (p *Parser) extract(seg string) attrs {
	a := attrs{reps: -1, weight: -1, setType: models.SetNormal}

	work := seg
	work = extractRest(work, &a)
	work = extractRPE(work, &a)
	work = extractRIR(work, &a)
	work = extractTempo(work, &a)
	work = extractDuration(work, &a)
	extractSetsRepsWeight(work, &a)

	extractKeywords(seg, &a)
	return a
}

// extractReduced is the per-set-breakdown form: reps, weight/unit, RPE, RIR
// only, applied to one marker chunk.
func extractReduced(chunk string) attrs {
	a := attrs{reps: -1, weight: -1, setType: models.SetNormal}
	work := chunk
	work = extractRPE(work, &a)
	work = extractRIR(work, &a)
	extractReps(work, &a)
	extractWeight(work, &a)
	return a
}

func extractRest(text string, a *attrs) string {
	for _, re := range restMinRes {
		if loc := re.FindStringSubmatchIndex(text); loc != nil {
			v, _ := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
			a.restSec = int(v * 60)
			return scrub(text, loc[0], loc[1])
		}
	}
	for _, re := range restSecRes {
		if loc := re.FindStringSubmatchIndex(text); loc != nil {
			v, _ := strconv.Atoi(text[loc[2]:loc[3]])
			a.restSec = v
			return scrub(text, loc[0], loc[1])
		}
	}
	return text
}

func extractRPE(text string, a *attrs) string {
	for _, re := range rpeRes {
		if loc := re.FindStringSubmatchIndex(text); loc != nil {
			v, _ := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
			a.rpe = clampF(v, 1, 10)
			return scrub(text, loc[0], loc[1])
		}
	}
	return text
}

func extractRIR(text string, a *attrs) string {
	for _, re := range rirRes {
		if loc := re.FindStringSubmatchIndex(text); loc != nil {
			v, _ := strconv.Atoi(text[loc[2]:loc[3]])
			v = clampI(v, 0, 10)
			a.rir = &v
			return scrub(text, loc[0], loc[1])
		}
	}
	return text
}

func extractTempo(text string, a *attrs) string {
	if loc := tempoKeyedRe.FindStringSubmatchIndex(text); loc != nil {
		a.tempo = joinTempo(text, loc)
		return scrub(text, loc[0], loc[1])
	}
	if loc := tempoDashRe.FindStringSubmatchIndex(text); loc != nil {
		a.tempo = joinTempo(text, loc)
		return scrub(text, loc[0], loc[1])
	}
	for _, tp := range tempoPhrases {
		if idx := strings.Index(text, tp.phrase); idx >= 0 {
			a.tempo = tp.tempo
			return scrub(text, idx, idx+len(tp.phrase))
		}
	}
	return text
}

// joinTempo normalizes a matched triad/quad to dash form ("3-1-2").
func joinTempo(text string, loc []int) string {
	var digits []string
	for g := 1; g <= 4; g++ {
		if loc[2*g] >= 0 {
			digits = append(digits, text[loc[2*g]:loc[2*g+1]])
		}
	}
	return strings.Join(digits, "-")
}

func extractDuration(text string, a *attrs) string {
	if loc := minSecRe.FindStringSubmatchIndex(text); loc != nil {
		m, _ := strconv.Atoi(text[loc[2]:loc[3]])
		s, _ := strconv.Atoi(text[loc[4]:loc[5]])
		a.durationSec = m*60 + s
		return scrub(text, loc[0], loc[1])
	}
	if loc := minAndSecRe.FindStringSubmatchIndex(text); loc != nil {
		m, _ := strconv.Atoi(text[loc[2]:loc[3]])
		s, _ := strconv.Atoi(text[loc[4]:loc[5]])
		a.durationSec = m*60 + s
		return scrub(text, loc[0], loc[1])
	}
	if loc := minutesRe.FindStringSubmatchIndex(text); loc != nil {
		v, _ := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		a.durationSec = int(v * 60)
		return scrub(text, loc[0], loc[1])
	}
	if loc := secondsRe.FindStringSubmatchIndex(text); loc != nil {
		v, _ := strconv.Atoi(text[loc[2]:loc[3]])
		a.durationSec = v
		return scrub(text, loc[0], loc[1])
	}
	return text
}

func extractSetsRepsWeight(text string, a *attrs) {
	// "5x5x225" claims sets and reps outright; its weight operand is only a
	// candidate, ranked below unit-suffixed and "at N" weights.
	xWeight := -1.0
	if loc := setsRepsWeightRe.FindStringSubmatchIndex(text); loc != nil {
		a.setsCount, _ = strconv.Atoi(text[loc[2]:loc[3]])
		a.reps, _ = strconv.Atoi(text[loc[4]:loc[5]])
		xWeight, _ = strconv.ParseFloat(text[loc[6]:loc[7]], 64)
		text = scrub(text, loc[0], loc[1])
	}

	for _, re := range singularRepRes {
		if re.MatchString(text) {
			a.reps = 1
			a.repsForced = true
			break
		}
	}

	if a.setsCount == 0 {
		if loc := setsRepsRe.FindStringSubmatchIndex(text); loc != nil {
			a.setsCount, _ = strconv.Atoi(text[loc[2]:loc[3]])
			if !a.repsForced {
				a.reps, _ = strconv.Atoi(text[loc[4]:loc[5]])
			}
			text = scrub(text, loc[0], loc[1])
		}
	}
	if a.setsCount == 0 {
		if loc := setsCountRe.FindStringSubmatchIndex(text); loc != nil {
			a.setsCount, _ = strconv.Atoi(text[loc[2]:loc[3]])
			// Keep the "sets" keyword so "sets of N" can still fire.
			text = scrub(text, loc[0], loc[3])
		}
	}
	if a.setsCount == 0 {
		// A trailing "N times" counts as sets only when it is not adjacent to
		// a reps mention ("10 reps 3 times" keeps its reps reading).
		if loc := timesRe.FindStringSubmatchIndex(text); loc != nil {
			before := text[max(0, loc[0]-10):loc[0]]
			after := text[loc[1]:min(len(text), loc[1]+8)]
			if !strings.Contains(before, "rep") && !strings.Contains(after, "rep") {
				a.setsCount, _ = strconv.Atoi(text[loc[2]:loc[3]])
				text = scrub(text, loc[0], loc[1])
			}
		}
	}

	if !a.repsForced && a.reps < 0 {
		extractReps(text, a)
	}
	if a.weight < 0 {
		extractExplicitWeight(text, a)
	}
	if a.weight < 0 && xWeight >= 0 {
		a.weight = xWeight
	}
	if a.weight < 0 {
		extractBareWeight(text, a)
	}
}

func extractReps(text string, a *attrs) {
	for _, re := range singularRepRes {
		if re.MatchString(text) {
			a.reps = 1
			a.repsForced = true
			return
		}
	}
	if a.reps >= 0 {
		return
	}
	if loc := repsRe.FindStringSubmatchIndex(text); loc != nil {
		a.reps, _ = strconv.Atoi(text[loc[2]:loc[3]])
		return
	}
	if loc := setsOfRe.FindStringSubmatchIndex(text); loc != nil {
		a.reps, _ = strconv.Atoi(text[loc[2]:loc[3]])
		return
	}
	// Bare "for N" — but not "for N pounds", "for N minutes", etc.
	for _, loc := range forNumRe.FindAllStringSubmatchIndex(text, -1) {
		if followedByAny(text, loc[3], unitSuffixWords) {
			continue
		}
		a.reps, _ = strconv.Atoi(text[loc[2]:loc[3]])
		return
	}
}

func extractWeight(text string, a *attrs) {
	extractExplicitWeight(text, a)
	if a.weight < 0 {
		extractBareWeight(text, a)
	}
}

func extractExplicitWeight(text string, a *attrs) {
	if loc := kgWeightRe.FindStringSubmatchIndex(text); loc != nil {
		a.weight, _ = strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		a.unit = models.UnitKilograms
		return
	}
	if loc := lbWeightRe.FindStringSubmatchIndex(text); loc != nil {
		a.weight, _ = strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		a.unit = models.UnitPounds
		return
	}
	for _, loc := range atWeightRe.FindAllStringSubmatchIndex(text, -1) {
		if followedByAny(text, loc[3], unitSuffixWords) {
			continue
		}
		a.weight, _ = strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		return
	}
}

// extractBareWeight is the last resort: a standalone 3-digit number of
// plausible bar-weight size.
func extractBareWeight(text string, a *attrs) {
	for _, loc := range bareWeightRe.FindAllStringSubmatchIndex(text, -1) {
		if followedByAny(text, loc[3], unitSuffixWords) {
			continue
		}
		v, _ := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		if v < 45 {
			continue
		}
		a.weight = v
		return
	}
}

func extractKeywords(seg string, a *attrs) {
	for _, st := range setTypeVocab {
		if strings.Contains(seg, st.kw) {
			a.setType = st.t
			break
		}
	}
	for _, g := range gripVocab {
		if strings.Contains(seg, g.kw) {
			a.grip = g.g
			break
		}
	}
	for _, s := range stanceVocab {
		if strings.Contains(seg, s.kw) {
			a.stance = s.s
			break
		}
	}
}

// scrub blanks the half-open byte range so later rules cannot re-match it.
func scrub(text string, start, end int) string {
	b := []byte(text)
	for i := start; i < end && i < len(b); i++ {
		b[i] = ' '
	}
	return string(b)
}

// followedByAny reports whether the first word after position end is one of
// the given words.
func followedByAny(text string, end int, words []string) bool {
	rest := strings.TrimLeft(text[end:], " \t")
	for _, w := range words {
		if strings.HasPrefix(rest, w) {
			return true
		}
	}
	return false
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
