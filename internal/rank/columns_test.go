package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		delimiter string
		want      []string
	}{
		{"colon", "a:b:c", ":", []string{"a", "b", "c"}},
		{"empty field preserved", "a::c", ":", []string{"a", "", "c"}},
		{"space collapses runs", "a  b   c", " ", []string{"a", "b", "c"}},
		{"tab", "1\ttwo\tthree", "\t", []string{"1", "two", "three"}},
		{"no delimiter present", "plain", ":", []string{"plain"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitColumns(tt.line, tt.delimiter))
		})
	}
}

func TestPickOutOfRange(t *testing.T) {
	cols := []string{"a", "b"}
	assert.Equal(t, []string{"b", "", ""}, Pick(cols, []int{2, 3, 0}))
}

func TestProjectionRoundTrip(t *testing.T) {
	// Projecting "a:b:c" with match_fields=[2] and output_fields=[1]:
	// matching sees only "b", selection emits "a".
	cols := SplitColumns("a:b:c", ":")
	p := Projection{MatchFields: []int{2}, OutputFields: []int{1}}

	assert.Equal(t, []string{"b"}, p.MatchColumns(cols))
	assert.Equal(t, "a", p.OutputText("a:b:c", cols))
	assert.Equal(t, "a:b:c", p.DisplayText("a:b:c", cols))
}

func TestProjectionDefaults(t *testing.T) {
	cols := SplitColumns("x:y", ":")
	var p Projection

	assert.False(t, p.Active())
	assert.Equal(t, cols, p.MatchColumns(cols))
	assert.Equal(t, "x:y", p.DisplayText("x:y", cols))
	assert.Equal(t, "x:y", p.OutputText("x:y", cols))
}

func TestProjectionDisplaySubset(t *testing.T) {
	cols := SplitColumns("id\tname\textra", "\t")
	p := Projection{DisplayFields: []int{2, 3}}
	assert.Equal(t, "name extra", p.DisplayText("id\tname\textra", cols))
}
