package rank

import (
	"math"
	"time"

	"github.com/runger/fsel/internal/history"
)

// DefaultHalfLife is the recency half-life: a use this long ago contributes
// half of what a use right now does.
const DefaultHalfLife = 72 * time.Hour

// frecencyScale converts the raw frecency value into score points. With the
// logarithmic frequency term the result stays comfortably inside
// maxFrecencyContribution for any realistic use count.
const frecencyScale = 100_000.0

// Frecency turns a history record into a score boost. It is a pure function
// of the record and the supplied clock: an exponential decay of the time
// since last use, weighted by a sub-linear (logarithmic) function of the use
// count. A zero record yields zero, so candidates absent from history simply
// get no boost.
//
// The boost only reorders candidates within a tier; Rank clamps it below the
// tier spacing so it can never promote a candidate across a tier boundary.
func Frecency(rec history.Record, now time.Time, halfLife time.Duration) float64 {
	if rec.UseCount <= 0 || rec.LastUsed.IsZero() {
		return 0
	}
	if halfLife <= 0 {
		halfLife = DefaultHalfLife
	}

	age := now.Sub(rec.LastUsed)
	if age < 0 {
		age = 0
	}
	decay := math.Exp2(-float64(age) / float64(halfLife))

	boost := math.Log1p(float64(rec.UseCount)) * decay * frecencyScale
	if boost > maxFrecencyContribution {
		boost = maxFrecencyContribution
	}
	return boost
}
