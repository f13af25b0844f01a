// Package match scores a resume against a job description and maps the
// score to a fit category.
package match

import (
	"errors"
	"math"
	"strings"

	"github.com/spigell/resume-matcher/internal/embedding"
)

// Category buckets a 0-100 match score.
type Category int

const (
	NotFit Category = iota
	PartialFit
	GoodFit
)

const (
	goodFitThreshold    = 70
	partialFitThreshold = 40

	minResumeLength = 50
	minJobLength    = 20
)

var (
	// ErrResumeTooShort reports resume text below the extractable minimum.
	ErrResumeTooShort = errors.New("resume text is too short to score")
	// ErrJobTooShort reports a job description too short to be meaningful.
	ErrJobTooShort = errors.New("job description is too short to score")
)

func (c Category) String() string {
	switch c {
	case GoodFit:
		return "good-fit"
	case PartialFit:
		return "partial-fit"
	default:
		return "not-fit"
	}
}

// Result is the compatibility assessment for one resume/job pair.
type Result struct {
	Score    int
	Category Category
}

// Categorize maps a 0-100 score into its fit category.
func Categorize(score int) Category {
	switch {
	case score >= goodFitThreshold:
		return GoodFit
	case score >= partialFitThreshold:
		return PartialFit
	default:
		return NotFit
	}
}

// Score embeds both texts and derives the match result from their cosine
// similarity. Embeddings are recomputed on every call and discarded.
func Score(resumeText, jobText string) (*Result, error) {
	if len(strings.TrimSpace(resumeText)) < minResumeLength {
		return nil, ErrResumeTooShort
	}
	if len(strings.TrimSpace(jobText)) < minJobLength {
		return nil, ErrJobTooShort
	}

	sim := embedding.Cosine(embedding.Generate(resumeText), embedding.Generate(jobText))
	score := int(math.Round(sim * 100))

	return &Result{Score: score, Category: Categorize(score)}, nil
}
