package rank

import (
	"sort"
	"time"
)

// extraFieldBonus is added to the matcher score for every matched field
// beyond the best one, rewarding candidates that match in several fields.
const extraFieldBonus = 250

// Options carries the engine configuration. Values are assumed validated by
// the config layer; the engine does not defend against out-of-range inputs.
type Options struct {
	Mode        MatchMode
	PrefixDepth int
	HalfLife    time.Duration
}

// DefaultOptions returns the engine defaults: fuzzy mode, prefix depth 3,
// three-day frecency half-life.
func DefaultOptions() Options {
	return Options{
		Mode:        ModeFuzzy,
		PrefixDepth: 3,
		HalfLife:    DefaultHalfLife,
	}
}

// Scored is one ranked candidate together with the components of its score.
type Scored struct {
	Candidate Candidate
	Tier      Tier
	Match     Result
	Field     Field // the best-matching field
	Frecency  float64
	Total     float64

	sourceIndex int
}

// Rank scores every candidate against the query and returns them in
// descending total order. It is a pure function of its inputs: identical
// (candidates, query, history, now, opts) produce an identical sequence.
//
// Candidates whose every field fails the matcher are excluded entirely
// unless the query is empty, in which case all candidates are returned
// ordered by pin, then frecency. Ties break by original source order.
func Rank(candidates []Candidate, query string, hist History, now time.Time, opts Options) []Scored {
	if hist == nil {
		hist = emptyHistory{}
	}
	matcher := Matcher{Mode: opts.Mode, PrefixDepth: opts.PrefixDepth}

	scored := make([]Scored, 0, len(candidates))
	for i, cand := range candidates {
		rec, _ := hist.Get(cand.Identity())

		best, bestField, matched, extra := bestFieldMatch(matcher, cand, query)
		if !matched {
			continue
		}

		tier := Classify(rec.Pinned, bestField.Class, best.Kind)
		matchScore := float64(best.Score + extra*extraFieldBonus)
		if query == "" {
			// Unfiltered view: every field "matches", so the multi-field
			// bonus would be noise. Order by pin and frecency alone.
			matchScore = 0
		}
		if matchScore > maxMatcherContribution {
			matchScore = maxMatcherContribution
		}
		boost := Frecency(rec, now, opts.HalfLife)

		scored = append(scored, Scored{
			Candidate:   cand,
			Tier:        tier,
			Match:       best,
			Field:       bestField,
			Frecency:    boost,
			Total:       tier.Base() + matchScore + boost,
			sourceIndex: i,
		})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Total > scored[b].Total
	})
	return scored
}

// bestFieldMatch runs the matcher across every field and keeps the result
// landing in the highest tier, breaking ties by raw score. extra counts the
// additional fields that also matched.
func bestFieldMatch(m Matcher, cand Candidate, query string) (Result, Field, bool, int) {
	var (
		best      Result
		bestField Field
		matched   bool
		extra     int
	)
	for _, f := range cand.Fields() {
		if f.Text == "" {
			continue
		}
		res, ok := m.Match(query, f.Text)
		if !ok {
			continue
		}
		if !matched {
			best, bestField, matched = res, f, true
			continue
		}
		extra++
		if betterFieldResult(f, res, bestField, best) {
			best, bestField = res, f
		}
	}
	return best, bestField, matched, extra
}

// betterFieldResult reports whether (f, r) outranks the current best. Field
// class and kind decide first, since they decide the tier; raw score only
// breaks ties inside the same tier.
func betterFieldResult(f Field, r Result, bestF Field, best Result) bool {
	if f.Class != bestF.Class {
		return f.Class > bestF.Class
	}
	if r.Kind != best.Kind {
		return r.Kind > best.Kind
	}
	return r.Score > best.Score
}
