package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const strongResume = `Senior engineer with 8+ years of experience leading teams.
Skills: Python, JavaScript, React, AWS, Docker.
Improved deployment speed by 40%, received engineering excellence award.
Worked remote, authorized to work in the US. Built many projects with modern technologies.`

const strongJob = `Looking for a senior developer. Python, JavaScript, React, AWS required.
Remote position, work authorization needed. Good communication essential.`

func TestGenerateStrengths(t *testing.T) {
	t.Parallel()

	set := Generate(strongResume, strongJob, 85)

	assert.Contains(t, set.Strengths, "Strong overall match with job requirements")
	// "java" rides along as a substring of "javascript" in both texts.
	assert.Contains(t, set.Strengths, "Technical skills align well: python, javascript, java")
	assert.Contains(t, set.Strengths, "Relevant years of experience mentioned")
	assert.Contains(t, set.Strengths, "Demonstrated leadership experience")
	assert.LessOrEqual(t, len(set.Strengths), 5)
}

func TestGenerateWeaknesses(t *testing.T) {
	t.Parallel()

	resume := "Plain resume without much detail at all"
	job := "Senior role. Python required. Strong communication skills and modern tooling expected. Familiarity with every tool we use."

	set := Generate(resume, job, 30)

	assert.Contains(t, set.Weaknesses, "Significant gaps in required qualifications")
	assert.Contains(t, set.Weaknesses, "May be missing critical required skills")
	assert.Contains(t, set.Weaknesses, "Limited mention of relevant tools and technologies")
	assert.Contains(t, set.Weaknesses, "Communication skills not highlighted")
	assert.LessOrEqual(t, len(set.Weaknesses), 4)
}

func TestGenerateAreasToImprove(t *testing.T) {
	t.Parallel()

	set := Generate("Tiny resume", "Some job description", 30)

	assert.Contains(t, set.AreasToImprove, "Resume appears too brief - consider adding more detail")
	assert.Contains(t, set.AreasToImprove, "Add a projects section showcasing relevant work")
	assert.Contains(t, set.AreasToImprove, "Create a dedicated technical skills section")
	assert.Contains(t, set.AreasToImprove, "Consider tailoring resume to better match job requirements")
	assert.Len(t, set.AreasToImprove, 4)
}

func TestGenerateConstraints(t *testing.T) {
	t.Parallel()

	resume := "Engineer with Python skills and several projects"
	job := "Remote role. Visa sponsorship not provided, work authorization required."

	set := Generate(resume, job, 60)

	assert.Contains(t, set.Constraints, "Location preference not specified")
	assert.Contains(t, set.Constraints, "Work authorization status not mentioned")
	assert.LessOrEqual(t, len(set.Constraints), 3)
}

func TestGenerateSilentWhenCovered(t *testing.T) {
	t.Parallel()

	set := Generate(strongResume, strongJob, 85)

	// Resume covers remote/authorized, so no constraints fire.
	assert.Empty(t, set.Constraints)
	// Score is high, no low-score entries.
	assert.NotContains(t, set.Weaknesses, "Significant gaps in required qualifications")
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Generate(strongResume, strongJob, 72), Generate(strongResume, strongJob, 72))
}
