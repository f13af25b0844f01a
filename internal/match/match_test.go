package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score  int
		expect Category
	}{
		{100, GoodFit},
		{70, GoodFit},
		{69, PartialFit},
		{40, PartialFit},
		{39, NotFit},
		{0, NotFit},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, Categorize(tt.score), "score %d", tt.score)
	}
}

func TestCategoryString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "good-fit", GoodFit.String())
	assert.Equal(t, "partial-fit", PartialFit.String())
	assert.Equal(t, "not-fit", NotFit.String())
}

func TestScoreInputGuards(t *testing.T) {
	t.Parallel()

	job := "Looking for a Senior Developer with JavaScript and AWS experience."
	resume := "John Doe\njohn@example.com\nSenior Developer with JavaScript, React and AWS experience since 2015."

	_, err := Score("too short", job)
	assert.ErrorIs(t, err, ErrResumeTooShort)

	_, err = Score(resume, "short jd")
	assert.ErrorIs(t, err, ErrJobTooShort)
}

func TestScoreRelevantBeatsIrrelevant(t *testing.T) {
	t.Parallel()

	resume := `John Doe
john.doe@email.com
Skills: JavaScript, Python, React, AWS
8 years building microservices as a Senior Developer`

	relevant, err := Score(resume, "Looking for Senior Developer with JavaScript, Python, React, AWS and microservices experience")
	require.NoError(t, err)

	irrelevant, err := Score(resume, "Searching for a chef: cooking recipes dinner ingredients menus")
	require.NoError(t, err)

	assert.Greater(t, relevant.Score, irrelevant.Score)
	assert.GreaterOrEqual(t, relevant.Score, 10)
	assert.LessOrEqual(t, relevant.Score, 99)
}

func TestScoreIdenticalTextsNearPerfect(t *testing.T) {
	t.Parallel()

	text := "Senior Software Engineer with JavaScript, Python, AWS, Docker and Kubernetes experience"
	res, err := Score(text, text)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Score, 99)
	assert.Equal(t, GoodFit, res.Category)
}
