package suggestions

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	keywordRe = regexp.MustCompile(`\b[a-z]{4,}\b`)
	metricsRe = regexp.MustCompile(`(?i)\d+%|\d+\+|increased|decreased|improved`)
)

// localSuggestions returns exactly 3 suggestions. Each of the three slots
// picks one of two messages based on its own heuristic, so the count never
// depends on the input.
func localSuggestions(resumeText, jobText string) []string {
	resumeLower := strings.ToLower(resumeText)
	jobLower := strings.ToLower(jobText)

	out := make([]string, 0, suggestionCount)

	// Keyword gaps, else skills-section presence.
	if missing := missingKeywords(resumeLower, jobLower, 3); len(missing) > 0 {
		out = append(out, fmt.Sprintf("Add relevant experience with: %s", strings.Join(missing, ", ")))
	} else {
		out = append(out, "Add a dedicated skills section to highlight your technical abilities")
	}

	// Quantifiable impact, else projects.
	if !metricsRe.MatchString(resumeText) {
		out = append(out, `Include quantifiable achievements (e.g., "Increased efficiency by 30%")`)
	} else {
		out = append(out, "Include relevant projects that demonstrate your expertise")
	}

	// Certifications, else summary depth.
	if strings.Contains(jobLower, "certif") && !strings.Contains(resumeLower, "certif") {
		out = append(out, "List relevant certifications if you have them")
	} else {
		out = append(out, "Expand your professional summary to highlight key qualifications")
	}

	return out
}

// missingKeywords returns up to limit words of 4+ letters that appear in the
// job description but nowhere in the resume, in order of first appearance.
func missingKeywords(resumeLower, jobLower string, limit int) []string {
	resumeWords := make(map[string]struct{})
	for _, w := range keywordRe.FindAllString(resumeLower, -1) {
		resumeWords[w] = struct{}{}
	}

	seen := make(map[string]struct{})
	var missing []string
	for _, w := range keywordRe.FindAllString(jobLower, -1) {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := resumeWords[w]; !ok {
			missing = append(missing, w)
			if len(missing) >= limit {
				break
			}
		}
	}
	return missing
}
