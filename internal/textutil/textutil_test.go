package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "collapses CRLF and CR",
			input:  "John Doe\r\nEngineer\rBoston",
			expect: "John Doe\nEngineer\nBoston",
		},
		{
			name:   "strips non-printables but keeps newline",
			input:  "Hello\x00\x07 World\nNext",
			expect: "Hello World\nNext",
		},
		{
			name:   "collapses space runs",
			input:  "too    many     spaces",
			expect: "too many spaces",
		},
		{
			name:   "empty input stays empty",
			input:  "",
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"John Doe\r\n  Senior   Engineer \r\n\r\njohn@example.com",
		"plain text",
		"",
		"\x01\x02\x03",
		"a  b   c\nd\re\r\nf",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	lines := Lines("John Doe\r\n\r\n  Senior Engineer  \nBoston\n\n")
	assert.Equal(t, []string{"John Doe", "Senior Engineer", "Boston"}, lines)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abcdef", Truncate("abcdef", 10))
	assert.Equal(t, "", Truncate("abcdef", 0))
}
