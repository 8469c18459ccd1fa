package match

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/scandex/internal/domain/field"
	"github.com/kailas-cloud/scandex/internal/domain/fuzzy"
)

// Scoring constants for the three match tiers.
const (
	prefixBoost    = 20  // prefix score = weight * prefixBoost
	substringBase  = 10  // substring score before bonus and penalty
	positionFactor = 0.1 // penalty per rune of match offset
	fuzzyBase      = 2   // fuzzy score base multiplier
	minWordLength  = 3   // words shorter than this skip fuzzy comparison
)

// Options tunes match classification.
type Options struct {
	// FuzzyThreshold is the minimum similarity for a fuzzy match.
	FuzzyThreshold float64
	// MinFuzzyLength is the minimum query length before fuzzy matching
	// is attempted.
	MinFuzzyLength int
	// CaseSensitive compares raw strings without folding.
	CaseSensitive bool
	// Fold maps text to its case-folded form. strings.ToLower when nil;
	// the engine injects its memoized fold here.
	Fold func(string) string
}

// Classify finds the best classification of query against one field's
// text. Tiers apply in strict priority order: prefix, then substring,
// then fuzzy; the first that fires wins. Returns false when the field
// does not match. Empty text or query never matches.
func Classify(p field.Path, text, query string, weight float64, o Options) (Match, bool) {
	if text == "" || query == "" {
		return Match{}, false
	}

	normText, normQuery := text, query
	if !o.CaseSensitive {
		fold := o.Fold
		if fold == nil {
			fold = strings.ToLower
		}
		normText = fold(text)
		normQuery = fold(query)
	}

	if strings.HasPrefix(normText, normQuery) {
		return New(p, text, weight*prefixBoost, Prefix, 0), true
	}

	if idx := strings.Index(normText, normQuery); idx >= 0 {
		pos := utf8.RuneCountInString(normText[:idx])
		textLen := utf8.RuneCountInString(normText)

		lengthBonus := math.Max(1, 100/float64(textLen))
		positionPenalty := float64(pos) * positionFactor

		score := weight * (substringBase + lengthBonus - positionPenalty)
		// Floor: every substring match scores at least the field weight.
		if score < weight {
			score = weight
		}
		return New(p, text, score, Substring, pos), true
	}

	return classifyFuzzy(p, text, normText, normQuery, weight, o)
}

// classifyFuzzy scans the field's words for the best approximate match
// of the query.
func classifyFuzzy(p field.Path, text, normText, normQuery string, weight float64, o Options) (Match, bool) {
	if utf8.RuneCountInString(normQuery) < o.MinFuzzyLength {
		return Match{}, false
	}

	textLen := utf8.RuneCountInString(normText)
	sizeBonus := fuzzyBase + math.Max(1, 50/float64(textLen))

	var best float64
	found := false
	for _, word := range strings.Fields(normText) {
		if utf8.RuneCountInString(word) < minWordLength {
			continue
		}
		similarity := fuzzy.Similarity(word, normQuery)
		if similarity < o.FuzzyThreshold {
			continue
		}
		if score := weight * similarity * sizeBonus; !found || score > best {
			best = score
			found = true
		}
	}
	if !found {
		return Match{}, false
	}
	return New(p, text, best, Fuzzy, NoPosition), true
}
