package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		parts []string
		want  string
	}{
		{"film and year", []string{"The Shining", "1980"}, "the-shining-1980"},
		{"punctuation collapses", []string{"The Texas Chain Saw Massacre", "1974"}, "the-texas-chain-saw-massacre-1974"},
		{"apostrophes", []string{"Rosemary's Baby", "1968"}, "rosemary-s-baby-1968"},
		{"leading and trailing junk", []string{"  [REC]  ", "2007"}, "rec-2007"},
		{"empty", []string{""}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.parts...))
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Slasher ", "slasher", "GORE", "", "  "})
	assert.Equal(t, []string{"slasher", "gore"}, got)
}
