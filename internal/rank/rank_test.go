package rank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/fsel/internal/history"
)

// item is a minimal Candidate for engine tests.
type item struct {
	id     string
	fields []Field
}

func (i item) Identity() string { return i.id }
func (i item) Fields() []Field  { return i.fields }

func named(name string) item {
	return item{id: name, fields: []Field{{Name: "name", Text: name, Class: FieldPrimary}}}
}

func identities(scored []Scored) []string {
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.Candidate.Identity()
	}
	return out
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestRankDeterminism(t *testing.T) {
	cands := []Candidate{
		named("Firefox"), named("Files"), named("Multifirewall"), named("GIMP"),
	}
	hist := history.NewMemoryStore()
	require.NoError(t, hist.RecordUse("Files", testNow.Add(-time.Hour)))

	first := Rank(cands, "fi", hist, testNow, DefaultOptions())
	second := Rank(cands, "fi", hist, testNow, DefaultOptions())
	assert.Equal(t, identities(first), identities(second))
}

func TestRankEmptyQueryReturnsAllByPinThenFrecency(t *testing.T) {
	cands := []Candidate{
		named("Alpha"), named("Beta"), named("Gamma"),
	}
	hist := history.NewMemoryStore()
	require.NoError(t, hist.RecordUse("Gamma", testNow.Add(-time.Minute)))
	require.NoError(t, hist.SetPinned("Beta", true))

	got := Rank(cands, "", hist, testNow, DefaultOptions())
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Beta", "Gamma", "Alpha"}, identities(got))
}

func TestRankPrefixFuzzySwitch(t *testing.T) {
	cands := []Candidate{named("Multifirewall"), named("Firefox")}

	// Within the prefix window the word-start prefix beats the
	// fuzzy-only substring regardless of source order.
	got := Rank(cands, "fir", nil, testNow, DefaultOptions())
	require.Len(t, got, 2)
	assert.Equal(t, "Firefox", got[0].Candidate.Identity())
	assert.Equal(t, KindPrefixWordStart, got[0].Match.Kind)
	assert.Equal(t, KindFuzzy, got[1].Match.Kind)

	// Past the window both degrade to fuzzy scoring.
	got = Rank(cands, "fire", nil, testNow, DefaultOptions())
	require.Len(t, got, 2)
	for _, s := range got {
		assert.Equal(t, KindFuzzy, s.Match.Kind)
	}
}

func TestRankTierDominance(t *testing.T) {
	// A pinned fuzzy-only match with no use history must stay above a
	// non-pinned exact match carrying a maximal frecency boost: tier
	// ordering dominates any fine-grained score difference.
	cands := []Candidate{named("gv"), named("gtk video")}
	hist := history.NewMemoryStore()
	require.NoError(t, hist.SetPinned("gtk video", true))
	for i := 0; i < 500; i++ {
		require.NoError(t, hist.RecordUse("gv", testNow))
	}

	got := Rank(cands, "gv", hist, testNow, DefaultOptions())
	require.Len(t, got, 2)
	assert.Equal(t, "gtk video", got[0].Candidate.Identity())
	assert.Equal(t, KindFuzzy, got[0].Match.Kind)
	assert.Equal(t, KindExact, got[1].Match.Kind)
	assert.Greater(t, got[0].Total, got[1].Total)
}

func TestRankPinPrecedenceAtEqualScore(t *testing.T) {
	// Two fuzzy-only matches with identical matcher scores and no
	// history: the pinned one wins.
	cands := []Candidate{named("qpdfview"), named("qpdfview beta")}
	hist := history.NewMemoryStore()
	require.NoError(t, hist.SetPinned("qpdfview beta", true))

	got := Rank(cands, "qv", hist, testNow, DefaultOptions())
	require.Len(t, got, 2)
	assert.Equal(t, "qpdfview beta", got[0].Candidate.Identity())
}

func TestRankNoMatchExcluded(t *testing.T) {
	cands := []Candidate{named("Firefox"), named("zzz")}

	got := Rank(cands, "fir", nil, testNow, DefaultOptions())
	require.Len(t, got, 1)
	assert.Equal(t, "Firefox", got[0].Candidate.Identity())
}

func TestRankTieBreakBySourceOrder(t *testing.T) {
	a := item{id: "first", fields: []Field{{Name: "name", Text: "editor", Class: FieldPrimary}}}
	b := item{id: "second", fields: []Field{{Name: "name", Text: "editor", Class: FieldPrimary}}}

	got := Rank([]Candidate{a, b}, "edi", nil, testNow, DefaultOptions())
	require.Len(t, got, 2)
	assert.Equal(t, []string{"first", "second"}, identities(got))

	got = Rank([]Candidate{b, a}, "edi", nil, testNow, DefaultOptions())
	assert.Equal(t, []string{"second", "first"}, identities(got))
}

func TestRankMultiFieldBonus(t *testing.T) {
	rich := item{id: "rich", fields: []Field{
		{Name: "name", Text: "photo tool", Class: FieldPrimary},
		{Name: "keywords", Text: "photography", Class: FieldSecondary},
	}}
	poor := item{id: "poor", fields: []Field{
		{Name: "name", Text: "photo tool", Class: FieldPrimary},
	}}

	got := Rank([]Candidate{poor, rich}, "photo", nil, testNow, DefaultOptions())
	require.Len(t, got, 2)
	assert.Equal(t, "rich", got[0].Candidate.Identity())
}

func TestRankWeakerFieldLandsInLowerTier(t *testing.T) {
	byName := item{id: "by-name", fields: []Field{
		{Name: "name", Text: "calculator", Class: FieldPrimary},
	}}
	byComment := item{id: "by-comment", fields: []Field{
		{Name: "name", Text: "qalc", Class: FieldPrimary},
		{Name: "comment", Text: "scientific calculator", Class: FieldTertiary},
	}}

	got := Rank([]Candidate{byComment, byName}, "calcu", nil, testNow, DefaultOptions())
	require.Len(t, got, 2)
	assert.Equal(t, "by-name", got[0].Candidate.Identity())
	assert.Greater(t, got[0].Tier, got[1].Tier)
}

func TestRankExactModeDropsFuzzyOnly(t *testing.T) {
	cands := []Candidate{named("Firefox"), named("Multifirewall")}
	opts := DefaultOptions()
	opts.Mode = ModeExact

	got := Rank(cands, "firef", nil, testNow, opts)
	require.Len(t, got, 1)
	assert.Equal(t, "Firefox", got[0].Candidate.Identity())
	assert.Equal(t, KindPrefixWordStart, got[0].Match.Kind)
}

func TestRankSkipsEmptyFields(t *testing.T) {
	sparse := item{id: "sparse", fields: []Field{
		{Name: "name", Text: "", Class: FieldPrimary},
		{Name: "comment", Text: "terminal", Class: FieldTertiary},
	}}

	got := Rank([]Candidate{sparse}, "term", nil, testNow, DefaultOptions())
	require.Len(t, got, 1)
	assert.Equal(t, "comment", got[0].Field.Name)
}
