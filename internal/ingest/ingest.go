// Package ingest turns uploaded resume documents into plain text. Binary
// formats are delegated to format-specific extractors; everything downstream
// works on normalized text only.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/spigell/resume-matcher/internal/textutil"
)

// DocumentType declares the format of an uploaded document.
type DocumentType string

const (
	TypePDF  DocumentType = "pdf"
	TypeDOCX DocumentType = "docx"
	TypeTXT  DocumentType = "txt"
)

// Extracted text shorter than this carries no usable resume content.
const minTextLength = 50

var (
	// ErrUnsupportedType reports a document format no extractor handles.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrNoExtractableText reports a document that decoded without usable text.
	ErrNoExtractableText = errors.New("no extractable text in document")
)

// Document is one uploaded file: raw bytes plus the declared format.
type Document struct {
	Name    string
	Type    DocumentType
	Content []byte
}

// Extractor decodes one document format into plain text.
type Extractor interface {
	Extract(doc Document) (string, error)
}

// ExtractText decodes the document with the extractor matching its type and
// normalizes the result. Short output fails with ErrNoExtractableText.
func ExtractText(doc Document) (string, error) {
	var extractor Extractor
	switch doc.Type {
	case TypeTXT:
		extractor = PlainText{}
	case TypePDF:
		extractor = PDF{}
	case TypeDOCX:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, doc.Type)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, doc.Type)
	}

	text, err := extractor.Extract(doc)
	if err != nil {
		return "", err
	}

	text = textutil.Normalize(text)
	if len(text) < minTextLength {
		return "", fmt.Errorf("%w: %d characters after extraction", ErrNoExtractableText, len(text))
	}

	return text, nil
}

// DetectType maps a file name extension to a document type.
func DetectType(name string) (DocumentType, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return TypePDF, nil
	case strings.HasSuffix(lower, ".docx"):
		return TypeDOCX, nil
	case strings.HasSuffix(lower, ".txt"), strings.HasSuffix(lower, ".text"), strings.HasSuffix(lower, ".md"):
		return TypeTXT, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, name)
}

// PlainText passes document bytes through as UTF-8 text.
type PlainText struct{}

func (PlainText) Extract(doc Document) (string, error) {
	return string(doc.Content), nil
}

// PDF extracts text from PDF documents page by page. Pages that fail to
// decode are skipped so one broken page does not lose the rest.
type PDF struct{}

func (PDF) Extract(doc Document) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var builder strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		builder.WriteString(text)
		builder.WriteString("\n\n")
	}

	if strings.TrimSpace(builder.String()) == "" {
		return "", fmt.Errorf("%w: pdf decoded to empty text", ErrNoExtractableText)
	}

	return builder.String(), nil
}
