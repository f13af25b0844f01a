package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "matcher.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSaveAndLoadCandidate(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	in := &Candidate{
		Name:     "John Doe",
		Email:    "john.doe@email.com",
		Phone:    "555-123-4567",
		Score:    82,
		Category: "good-fit",
		Details: CandidateDetails{
			Skills:      []string{"JavaScript", "React", "AWS"},
			Education:   []string{"BSc Computer Science"},
			Experience:  []string{"Senior Developer at Initech (2019-2024)"},
			Summary:     "Engineer with a platform background.",
			Suggestions: []string{"one", "two", "three"},
			UsedAI:      true,
			Model:       "gemini-1.5-flash",
		},
	}
	require.NoError(t, s.SaveCandidate(ctx, in))
	assert.NotEmpty(t, in.ID)

	candidates, err := s.Candidates(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	got := candidates[0]
	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, "John Doe", got.Name)
	assert.Equal(t, 82, got.Score)
	assert.Equal(t, "good-fit", got.Category)
	assert.Equal(t, in.Details, got.Details)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCandidatesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveCandidate(ctx, &Candidate{
			ID:        fmt.Sprintf("c%d", i),
			Name:      fmt.Sprintf("Candidate %d", i),
			Score:     50 + i,
			Category:  "partial-fit",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	candidates, err := s.Candidates(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "c2", candidates[0].ID)
	assert.Equal(t, "c0", candidates[2].ID)
}

func TestSaveAndLoadJob(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.SaveJob(ctx, &Job{
		Title:       "Senior Developer",
		Description: "Looking for Senior Developer with JavaScript, React, AWS",
	}))

	jobs, err := s.Jobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Developer", jobs[0].Title)
	assert.NotEmpty(t, jobs[0].ID)
}

func TestAnalyticsEmpty(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	a, err := s.Analytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, a.TotalCandidates)
	assert.Zero(t, a.AverageScore)
	assert.Empty(t, a.TopSkills)
	require.Len(t, a.MatchDistribution, 6)
	for _, bucket := range a.MatchDistribution {
		assert.Zero(t, bucket.Count, bucket.Range)
	}
}

func TestAnalytics(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	scores := []int{95, 85, 72, 64, 55, 20}
	for i, score := range scores {
		skills := []string{"Python"}
		if i%2 == 0 {
			skills = append(skills, "React")
		}
		require.NoError(t, s.SaveCandidate(ctx, &Candidate{
			ID:       fmt.Sprintf("c%d", i),
			Name:     fmt.Sprintf("Candidate %d", i),
			Score:    score,
			Category: "partial-fit",
			Details:  CandidateDetails{Skills: skills},
		}))
	}

	a, err := s.Analytics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 6, a.TotalCandidates)
	assert.InDelta(t, 65.166, a.AverageScore, 0.01)

	require.Len(t, a.TopSkills, 2)
	assert.Equal(t, SkillCount{Skill: "Python", Count: 6}, a.TopSkills[0])
	assert.Equal(t, SkillCount{Skill: "React", Count: 3}, a.TopSkills[1])

	for _, bucket := range a.MatchDistribution {
		assert.Equal(t, 1, bucket.Count, bucket.Range)
	}
}
