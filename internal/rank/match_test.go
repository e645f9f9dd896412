package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchEmptyQuery(t *testing.T) {
	m := Matcher{Mode: ModeFuzzy, PrefixDepth: 3}

	res, ok := m.Match("", "Firefox")
	require.True(t, ok)
	assert.Equal(t, KindFuzzy, res.Kind)
	assert.Equal(t, 0, res.Score)
}

func TestMatchKindsInsidePrefixWindow(t *testing.T) {
	m := Matcher{Mode: ModeFuzzy, PrefixDepth: 3}

	tests := []struct {
		name  string
		query string
		text  string
		kind  Kind
	}{
		{"exact", "gim", "GIM", KindExact},
		{"prefix at field start", "fir", "Firefox", KindPrefixWordStart},
		{"prefix at inner word", "fir", "Mozilla Firefox", KindPrefix},
		{"prefix after hyphen", "fox", "fire-fox", KindPrefix},
		{"fuzzy fallback", "frx", "Firefox", KindFuzzy},
		{"case insensitive", "FIR", "firefox", KindPrefixWordStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := m.Match(tt.query, tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.kind, res.Kind)
		})
	}
}

func TestMatchDegradesToFuzzyBeyondPrefixDepth(t *testing.T) {
	m := Matcher{Mode: ModeFuzzy, PrefixDepth: 3}

	// "fire" is a literal prefix of "Firefox", but at query length 4 the
	// prefix window (depth 3) is exceeded, so only fuzzy is produced.
	res, ok := m.Match("fire", "Firefox")
	require.True(t, ok)
	assert.Equal(t, KindFuzzy, res.Kind)

	// Even full equality degrades past the window.
	res, ok = m.Match("firefox", "Firefox")
	require.True(t, ok)
	assert.Equal(t, KindFuzzy, res.Kind)
}

func TestMatchNoSubsequence(t *testing.T) {
	m := Matcher{Mode: ModeFuzzy, PrefixDepth: 3}

	_, ok := m.Match("xyz", "Firefox")
	assert.False(t, ok)

	_, ok = m.Match("fox", "")
	assert.False(t, ok)
}

func TestMatchExactMode(t *testing.T) {
	m := Matcher{Mode: ModeExact, PrefixDepth: 3}

	// Prefix kinds are produced at any query length in exact mode.
	res, ok := m.Match("firef", "Firefox")
	require.True(t, ok)
	assert.Equal(t, KindPrefixWordStart, res.Kind)

	// Subsequence-only matches are dropped instead of degrading to fuzzy.
	_, ok = m.Match("frx", "Firefox")
	assert.False(t, ok)
}

func TestFuzzyMonotonicity(t *testing.T) {
	m := Matcher{Mode: ModeFuzzy, PrefixDepth: 0}

	// A contiguous, early match never scores below a scattered, late
	// match of the same query.
	contig, ok := m.Match("term", "terminal emulator")
	require.True(t, ok)
	scattered, ok := m.Match("term", "text editor for markdown")
	require.True(t, ok)
	assert.Greater(t, contig.Score, scattered.Score)

	early, ok := m.Match("ged", "gedit")
	require.True(t, ok)
	late, ok := m.Match("ged", "image gallery editor")
	require.True(t, ok)
	assert.GreaterOrEqual(t, early.Score, late.Score)
}

func TestFuzzyPositions(t *testing.T) {
	m := Matcher{Mode: ModeFuzzy, PrefixDepth: 0}

	res, ok := m.Match("frx", "firefox")
	require.True(t, ok)
	assert.Equal(t, []int{0, 2, 6}, res.Positions)
}
