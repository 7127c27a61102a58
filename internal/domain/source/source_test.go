package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractUsername(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"bare handle", "natgeo", "natgeo"},
		{"leading at", "@natgeo", "natgeo"},
		{"surrounding whitespace", "  natgeo  ", "natgeo"},
		{"at plus whitespace", " @natgeo ", "natgeo"},
		{"profile url", "https://instagram.com/natgeo", "natgeo"},
		{"profile url with www", "https://www.instagram.com/natgeo/", "natgeo"},
		{"profile url with query", "https://www.instagram.com/natgeo?igshid=abc", "natgeo"},
		{"handle with dots and underscores", "nat.geo_travel", "nat.geo_travel"},
		{"empty", "", ""},
		{"only at", "@", ""},
		{"spaces inside", "nat geo", ""},
		{"illegal characters", "nat:geo", ""},
		{"unrelated url", "https://example.com/natgeo", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractUsername(tc.input))
		})
	}
}
