package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextPlain(t *testing.T) {
	t.Parallel()

	content := "John Doe\r\njohn.doe@email.com\r\nSkills: JavaScript, React, AWS, Docker and Kubernetes"
	doc := Document{Name: "resume.txt", Type: TypeTXT, Content: []byte(content)}

	text, err := ExtractText(doc)
	require.NoError(t, err)
	assert.NotContains(t, text, "\r")
	assert.Contains(t, text, "John Doe")
}

func TestExtractTextTooShort(t *testing.T) {
	t.Parallel()

	doc := Document{Name: "resume.txt", Type: TypeTXT, Content: []byte("too short")}

	_, err := ExtractText(doc)
	require.ErrorIs(t, err, ErrNoExtractableText)
}

func TestExtractTextDocxUnsupported(t *testing.T) {
	t.Parallel()

	doc := Document{Name: "resume.docx", Type: TypeDOCX, Content: []byte(strings.Repeat("x", 100))}

	_, err := ExtractText(doc)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractTextUnknownType(t *testing.T) {
	t.Parallel()

	doc := Document{Name: "resume.rtf", Type: DocumentType("rtf"), Content: []byte(strings.Repeat("x", 100))}

	_, err := ExtractText(doc)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractTextBrokenPDF(t *testing.T) {
	t.Parallel()

	doc := Document{Name: "resume.pdf", Type: TypePDF, Content: []byte("not a pdf at all")}

	_, err := ExtractText(doc)
	require.Error(t, err)
}

func TestDetectType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		want    DocumentType
		wantErr bool
	}{
		{"resume.pdf", TypePDF, false},
		{"Resume.PDF", TypePDF, false},
		{"resume.docx", TypeDOCX, false},
		{"resume.txt", TypeTXT, false},
		{"notes.md", TypeTXT, false},
		{"resume.rtf", "", true},
		{"resume", "", true},
	}

	for _, tc := range cases {
		got, err := DetectType(tc.name)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedType, tc.name)
			continue
		}
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}
}
