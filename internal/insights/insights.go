// Package insights derives human-readable strengths, weaknesses,
// improvement areas and constraints from a resume, a job description and
// their match score. Everything here is keyword heuristics over the two
// texts: no network calls, no state.
package insights

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxStrengths   = 5
	maxWeaknesses  = 4
	maxAreas       = 4
	maxConstraints = 3
)

var techKeywords = []string{
	"python", "javascript", "java", "react", "node", "aws", "docker", "kubernetes",
}

var (
	yearsRe       = regexp.MustCompile(`(?i)\d+\+?\s*years?`)
	leadershipRe  = regexp.MustCompile(`(?i)lead|manage|mentor|senior`)
	achievementRe = regexp.MustCompile(`(?i)\d+%|\d+\+|award|achievement|recognition`)
)

// Set groups the generated insight lists. Each list is bounded.
type Set struct {
	Strengths      []string
	Weaknesses     []string
	AreasToImprove []string
	Constraints    []string
}

/// Generate builds the full insight set. Pure function: equal inputs yield
// equal output.
func Generate(resumeText, jobText string, score int) *Set {
	return &Set{
		Strengths:      strengths(resumeText, jobText, score),
		Weaknesses:     weaknesses(resumeText, jobText, score),
		AreasToImprove: areasToImprove(resumeText, score),
		Constraints:    constraints(resumeText, jobText),
	}
}

func strengths(resumeText, jobText string, score int) []string {
	var out []string
	resumeLower := strings.ToLower(resumeText)
	jobLower := strings.ToLower(jobText)

	if score >= 70 {
		out = append(out, "Strong overall match with job requirements")
	}

	var matched []string
	for _, tech := range techKeywords {
		if strings.Contains(resumeLower, tech) && strings.Contains(jobLower, tech) {
			matched = append(matched, tech)
		}
	}
	if len(matched) >= 3 {
		out = append(out, fmt.Sprintf("Technical skills align well: %s", strings.Join(matched[:3], ", ")))
	}

	if yearsRe.MatchString(resumeText) {
		out = append(out, "Relevant years of experience mentioned")
	}
	if leadershipRe.MatchString(resumeText) {
		out = append(out, "Demonstrated leadership experience")
	}
	if achievementRe.MatchString(resumeText) {
		out = append(out, "Quantifiable achievements and recognition")
	}

	return capped(out, maxStrengths)
}

func weaknesses(resumeText, jobText string, score int) []string {
	var out []string
	resumeLower := strings.ToLower(resumeText)
	jobLower := strings.ToLower(jobText)

	if score < 40 {
		out = append(out, "Significant gaps in required qualifications")
	}

	for _, term := range []string{"required", "must have", "essential"} {
		if strings.Contains(jobLower, term) {
			out = append(out, "May be missing critical required skills")
			break
		}
	}

	if strings.Contains(jobLower, "tool") && !strings.Contains(resumeLower, "tool") {
		out = append(out, "Limited mention of relevant tools and technologies")
	}
	if strings.Contains(jobLower, "communication") && !strings.Contains(resumeLower, "communication") {
		out = append(out, "Communication skills not highlighted")
	}

	return capped(out, maxWeaknesses)
}

func areasToImprove(resumeText string, score int) []string {
	var out []string
	resumeLower := strings.ToLower(resumeText)

	if len(resumeText) < 500 {
		out = append(out, "Resume appears too brief - consider adding more detail")
	}
	if !strings.Contains(resumeLower, "project") {
		out = append(out, "Add a projects section showcasing relevant work")
	}
	if !strings.Contains(resumeLower, "skill") && !strings.Contains(resumeLower, "technolog") {
		out = append(out, "Create a dedicated technical skills section")
	}
	if score < 50 {
		out = append(out, "Consider tailoring resume to better match job requirements")
	}

	return capped(out, maxAreas)
}

func constraints(resumeText, jobText string) []string {
	var out []string
	resumeLower := strings.ToLower(resumeText)
	jobLower := strings.ToLower(jobText)

	if strings.Contains(jobLower, "location") || strings.Contains(jobLower, "remote") {
		if !strings.Contains(resumeLower, "remote") && !strings.Contains(resumeLower, "location") {
			out = append(out, "Location preference not specified")
		}
	}

	if strings.Contains(jobLower, "authorization") || strings.Contains(jobLower, "visa") {
		if !strings.Contains(resumeLower, "authorized") && !strings.Contains(resumeLower, "citizen") {
			out = append(out, "Work authorization status not mentioned")
		}
	}

	return capped(out, maxConstraints)
}

func capped(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
