package rank

import (
	"strings"
	"unicode"
)

// Kind classifies how a query matched a field. Higher kinds indicate more
// precise matches and map to higher tiers.
type Kind int

const (
	// KindFuzzy is a case-insensitive subsequence match.
	KindFuzzy Kind = iota
	// KindPrefix is a prefix match starting at a word boundary inside
	// the field (e.g. "fir" against "Mozilla Firefox").
	KindPrefix
	// KindPrefixWordStart is a prefix match at the very start of the
	// field (e.g. "fir" against "Firefox").
	KindPrefixWordStart
	// KindExact is a case-insensitive full-string match.
	KindExact
)

func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindPrefixWordStart:
		return "prefix-word"
	case KindPrefix:
		return "prefix"
	default:
		return "fuzzy"
	}
}

// MatchMode selects which result kinds the matcher may produce.
type MatchMode int

const (
	// ModeFuzzy produces exact/prefix kinds up to the prefix depth and
	// falls back to fuzzy subsequence matching beyond it.
	ModeFuzzy MatchMode = iota
	// ModeExact never produces fuzzy results; queries that are not an
	// exact, prefix or word-start prefix match are dropped.
	ModeExact
)

// Result is the outcome of matching a query against one field.
type Result struct {
	Kind      Kind
	Score     int
	Positions []int // rune indices of matched characters, nil for non-fuzzy kinds
}

// Matcher matches a query against field text. The zero value uses fuzzy
// mode with no prefix window.
type Matcher struct {
	Mode        MatchMode
	PrefixDepth int
}

// Fuzzy scoring constants. These are a tuning surface; the only hard
// requirement is that more contiguous, earlier matches never score lower
// than scattered, later ones.
const (
	hitBonus        = 4
	runBonus        = 8
	boundaryBonus   = 6
	firstCharWindow = 12

	// prefixScoreCeil is the cap for prefix-kind scores; shorter fields
	// score closer to the cap so tighter prefixes win within a tier.
	prefixScoreCeil = 1000
)

// Match reports whether query matches text and how. The empty query matches
// everything with a zero-score fuzzy result so that unfiltered candidates
// order purely by pin and frecency.
func (m Matcher) Match(query, text string) (Result, bool) {
	if query == "" {
		return Result{Kind: KindFuzzy}, true
	}
	if text == "" {
		return Result{}, false
	}

	q := []rune(strings.ToLower(query))
	t := []rune(strings.ToLower(text))

	// Exact and prefix kinds are only produced inside the prefix window
	// (or always, in exact mode). Past the window everything degrades to
	// fuzzy, even strings that would satisfy the stricter criteria.
	inWindow := m.Mode == ModeExact || len(q) <= m.PrefixDepth
	if inWindow {
		if r, ok := classifyPrefix(q, t); ok {
			return r, true
		}
	}
	if m.Mode == ModeExact {
		return Result{}, false
	}

	score, positions, ok := fuzzyScore(q, t)
	if !ok {
		return Result{}, false
	}
	return Result{Kind: KindFuzzy, Score: score, Positions: positions}, true
}

// classifyPrefix tests the non-fuzzy kinds in decreasing precision order.
func classifyPrefix(q, t []rune) (Result, bool) {
	if runesEqual(q, t) {
		return Result{Kind: KindExact, Score: prefixScoreCeil}, true
	}
	if runesHavePrefix(t, q) {
		return Result{Kind: KindPrefixWordStart, Score: prefixScore(len(t), len(q))}, true
	}
	for i := 1; i < len(t); i++ {
		if isWordBoundary(t[i-1]) && runesHavePrefix(t[i:], q) {
			s := prefixScore(len(t)-i, len(q)) - i
			if s < 1 {
				s = 1
			}
			return Result{Kind: KindPrefix, Score: s}, true
		}
	}
	return Result{}, false
}

// fuzzyScore performs a greedy left-to-right subsequence match. Every query
// rune must appear in order; contiguous runs and word-boundary hits score
// higher, gaps and late first matches score lower.
func fuzzyScore(q, t []rune) (int, []int, bool) {
	positions := make([]int, 0, len(q))
	qi := 0
	score := 0
	last := -2

	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			continue
		}
		score += hitBonus
		if ti == last+1 {
			score += runBonus
		}
		if ti == 0 || isWordBoundary(t[ti-1]) {
			score += boundaryBonus
		}
		if qi == 0 && ti < firstCharWindow {
			score += firstCharWindow - ti
		}
		positions = append(positions, ti)
		last = ti
		qi++
	}

	if qi != len(q) {
		return 0, nil, false
	}

	// Penalize the total span of the match: scattered matches cover more
	// of the field than contiguous ones.
	span := positions[len(positions)-1] - positions[0] + 1
	score -= span - len(q)
	if score < 0 {
		score = 0
	}
	return score, positions, true
}

func prefixScore(textLen, queryLen int) int {
	s := prefixScoreCeil - (textLen - queryLen)
	if s < 1 {
		s = 1
	}
	return s
}

func isWordBoundary(prev rune) bool {
	return unicode.IsSpace(prev) || prev == '-' || prev == '_' || prev == '.' || prev == '/'
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func runesHavePrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	return runesEqual(s[:len(prefix)], prefix)
}
