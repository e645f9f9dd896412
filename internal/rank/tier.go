package rank

import "fmt"

// Tier is the coarse priority bucket a scored candidate falls into. The
// ordering is total and fixed: it combines pin status, match kind and field
// class, and is never influenced by matcher score or frecency.
//
// Pinned candidates occupy the upper half of the range, so a pinned fuzzy
// match always outranks a non-pinned exact match. This is deliberate: a pin
// is an explicit user statement of intent and beats typed precision.
type Tier int

const (
	kindTiers  = 4 // fuzzy, prefix, prefix-word-start, exact
	classTiers = 3 // tertiary, secondary, primary

	// pinnedTierOffset lifts every pinned tier above every non-pinned one.
	pinnedTierOffset = Tier(kindTiers * classTiers)

	// tierBaseStep spaces tier bases far enough apart that no matcher
	// score or frecency boost can cross a tier boundary.
	tierBaseStep = 10_000_000.0

	// maxMatcherContribution and maxFrecencyContribution bound the
	// fine-grained components; their sum stays below tierBaseStep.
	maxMatcherContribution  = 5_000_000.0
	maxFrecencyContribution = 4_900_000.0
)

// Classify maps a candidate's pin status and best field match onto a tier.
// It is a pure table lookup; candidates with no match never reach it.
func Classify(pinned bool, class FieldClass, kind Kind) Tier {
	t := Tier(int(class)*kindTiers + int(kind))
	if pinned {
		t += pinnedTierOffset
	}
	return t
}

// Base returns the tier's score floor.
func (t Tier) Base() float64 {
	return float64(t) * tierBaseStep
}

// Pinned reports whether the tier belongs to a pinned candidate.
func (t Tier) Pinned() bool {
	return t >= pinnedTierOffset
}

func (t Tier) String() string {
	k := Kind(int(t) % kindTiers)
	c := FieldClass(int(t%pinnedTierOffset) / kindTiers)
	var class string
	switch c {
	case FieldPrimary:
		class = "name"
	case FieldSecondary:
		class = "alt"
	default:
		class = "desc"
	}
	if t.Pinned() {
		return fmt.Sprintf("pinned/%s/%s", class, k)
	}
	return fmt.Sprintf("%s/%s", class, k)
}
