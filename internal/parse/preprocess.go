package parse

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// The preprocessor rewrites gym shorthand into explicit tokens the extractors
// understand. Two ordered passes: slang/plate-math first, then spelled-out
// numerals. Both tables are applied most-specific-first so longer phrases win
// over their substrings ("2 plates and a 25" before "2 plates").

type substitution struct {
	re  *regexp.Regexp
	out string
}

// plateWeight is the total bar weight for N 45s per side on a 45 lb bar.
func plateWeight(plates int) int {
	return 45 + plates*90
}

var plateAdditions = []struct {
	phrase  string
	perSide float64
}{
	{"45", 45},
	{"35", 35},
	{"25", 25},
	{"10", 10},
	{"5", 5},
	{"quarter", 25},
	{"dime", 10},
	{"nickel", 5},
}

func boundary(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
}

// buildSlangTable assembles the plate-math and body-part slang substitutions
// in their required order.
func buildSlangTable() []substitution {
	var subs []substitution

	add := func(phrase string, out string) {
		subs = append(subs, substitution{re: boundary(phrase), out: out})
	}
	pounds := func(w float64) string {
		if w == float64(int(w)) {
			return fmt.Sprintf("%d pounds", int(w))
		}
		return strconv.FormatFloat(w, 'f', -1, 64) + " pounds"
	}

	// Plate math, most plates first, qualified phrases before bare ones.
	for plates := 6; plates >= 2; plates-- {
		base := plateWeight(plates)
		for _, pa := range plateAdditions {
			total := float64(base) + pa.perSide*2
			add(fmt.Sprintf("%d plates and a %s", plates, pa.phrase), pounds(total))
			add(fmt.Sprintf("%d plates and %ss", plates, pa.phrase), pounds(total))
		}
		add(fmt.Sprintf("%d plates", plates), pounds(float64(base)))
	}
	for _, pa := range plateAdditions {
		total := float64(plateWeight(1)) + pa.perSide*2
		add("a plate and a "+pa.phrase, pounds(total))
		add("one plate and a "+pa.phrase, pounds(total))
		add("1 plate and a "+pa.phrase, pounds(total))
	}
	add("a plate", pounds(135))
	add("one plate", pounds(135))
	add("1 plate", pounds(135))
	add("just the bar", pounds(45))
	add("only the bar", pounds(45))
	add("empty bar", pounds(45))

	// Body-part slang seeds a canonical exercise phrase.
	bodyParts := []struct{ slang, exercise string }{
		{"hit biceps", "bicep curls"},
		{"worked biceps", "bicep curls"},
		{"hit bis", "bicep curls"},
		{"worked bis", "bicep curls"},
		{"hit triceps", "tricep extensions"},
		{"worked triceps", "tricep extensions"},
		{"hit tris", "tricep extensions"},
		{"worked tris", "tricep extensions"},
		{"hit legs", "squats"},
		{"worked legs", "squats"},
		{"hit chest", "bench press"},
		{"worked chest", "bench press"},
		{"hit back", "barbell rows"},
		{"worked back", "barbell rows"},
		{"hit shoulders", "overhead press"},
		{"worked shoulders", "overhead press"},
		{"hit arms", "bicep curls"},
		{"worked arms", "bicep curls"},
	}
	for _, bp := range bodyParts {
		add(bp.slang, bp.exercise)
	}

	return subs
}

var numeralWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
	"thirty": 30, "forty": 40, "fifty": 50, "sixty": 60,
	"seventy": 70, "eighty": 80, "ninety": 90,
}

var tensWords = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var onesWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9,
}

// buildNumeralTable returns frequency-word substitutions followed by single
// numeral words sorted longest-first ("eighteen" must not be clobbered by
// "eight").
func buildNumeralTable() []substitution {
	subs := []substitution{
		{re: boundary("once"), out: "1 time"},
		{re: boundary("twice"), out: "2 times"},
		{re: boundary("thrice"), out: "3 times"},
	}

	words := make([]string, 0, len(numeralWords))
	for w := range numeralWords {
		words = append(words, w)
	}
	// Longest first, lexical tie-break.
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	for _, w := range words {
		subs = append(subs, substitution{re: boundary(w), out: strconv.Itoa(numeralWords[w])})
	}
	return subs
}

var (
	slangSubs   = buildSlangTable()
	numeralSubs = buildNumeralTable()

	// "forty five" / "forty-five" style compounds, handled before single words.
	compoundTensRe = regexp.MustCompile(`\b(twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety)[ -](one|two|three|four|five|six|seven|eight|nine)\b`)
)

// expand lower-cases the input and rewrites slang, plate math, and spelled-out
// numbers into explicit tokens. Re-running expand on its own output is a no-op.
func expand(text string) string {
	t := strings.ToLower(text)

	for _, s := range slangSubs {
		t = s.re.ReplaceAllString(t, s.out)
	}

	t = compoundTensRe.ReplaceAllStringFunc(t, func(m string) string {
		fields := strings.FieldsFunc(m, func(r rune) bool { return r == ' ' || r == '-' })
		if len(fields) != 2 {
			return m
		}
		return strconv.Itoa(tensWords[fields[0]] + onesWords[fields[1]])
	})

	for _, s := range numeralSubs {
		t = s.re.ReplaceAllString(t, s.out)
	}

	return t
}
