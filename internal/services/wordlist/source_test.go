package wordlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"umlaut key", `{"wörter": ["a", "b"]}`, []string{"a", "b"}},
		{"words key", `{"words": ["c"]}`, []string{"c"}},
		{"array", `["d", "e"]`, []string{"d", "e"}},
		{"lines", "f\n  g  \n\n# comment\nh", []string{"f", "g", "h"}},
		{"bom", "\xef\xbb\xbf[\"i\"]", []string{"i"}},
		{"empty", "   ", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			words, err := Parse([]byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.want, words)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{"other": ["a"]}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`[1, 2]`))
	assert.Error(t, err)
}

func TestParseGeminiResponse(t *testing.T) {
	words, err := parseGeminiResponse("```json\n{\"words\": [\"Sonne\", \"Mond\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sonne", "Mond"}, words)

	_, err = parseGeminiResponse("  ")
	assert.Error(t, err)
}
