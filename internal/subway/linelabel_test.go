package subway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLineLabel(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"leading zero folds away", "01호선", "1호선"},
		{"bare digit gets 호선 suffix", "1", "1호선"},
		{"already canonical is unchanged", "2호선", "2호선"},
		{"parenthesized express folds to trailing token", "9호선(급행)", "9호선급행"},
		{"bracketed express folds to trailing token", "9호선[급행]", "9호선급행"},
		{"bare digit with trailing express token", "9급행", "9호선급행"},
		{"non-numeric label passes through whitespace-stripped", " 경의중앙선 ", "경의중앙선"},
		{"interior whitespace is stripped", "1 호선", "1호선"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeLineLabel(tc.input))
		})
	}
}

func TestNormalizeLineLabelIdempotent(t *testing.T) {
	inputs := []string{"01호선", "9호선(급행)", "경의중앙선", "1"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := NormalizeLineLabel(in)
			twice := NormalizeLineLabel(once)
			assert.Equal(t, once, twice)
		})
	}
}
