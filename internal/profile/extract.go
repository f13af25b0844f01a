package profile

import (
	"regexp"
	"strings"

	"github.com/spigell/resume-matcher/internal/textutil"
)

var (
	emailRe = regexp.MustCompile(`[\w.+-]+@[\w.-]+\.[A-Za-z]{2,}`)

	// Phone patterns tried in order; the first match with an acceptable
	// digit count wins.
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.\s]?\d{4}\b`),
		regexp.MustCompile(`\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`),
		regexp.MustCompile(`\b\d{10}\b`),
	}

	digitsRe     = regexp.MustCompile(`\D`)
	manyDigitsRe = regexp.MustCompile(`\d{3,}`)

	// Name line patterns: TitleCase words, TitleCase with a middle
	// initial, and ALL-CAPS names which get re-cased.
	nameTitleCaseRe = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3}$`)
	nameInitialRe   = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z]\.)?(?:\s+[A-Z][a-z]+){1,2}$`)
	nameAllCapsRe   = regexp.MustCompile(`^[A-Z]{2,}\s+[A-Z]{2,}(?:\s+[A-Z]{2,})?$`)

	// Loose capitalized-sequence matcher used as the fallback "people"
	// recognizer over the whole text.
	peopleRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z]\.)?(?:\s+[A-Z][a-z]+){1,2}\b`)

	nameLabelRe = regexp.MustCompile(`(?i)(?:Name|Candidate|Applicant):\s*([A-Z][a-z]+(?:\s+[A-Z]\.?\s*)?(?:\s+[A-Z][a-z']+){1,2})`)

	headerLineRe = regexp.MustCompile(`(?i)^(resume|cv|curriculum|contact|profile|summary|objective|experience|education|skills)`)

	suffixRe = regexp.MustCompile(`(?i)^(jr|sr|ii|iii|iv|v)\.?$`)
	vowelRe  = regexp.MustCompile(`(?i)[aeiou]`)
	digitRe  = regexp.MustCompile(`\d`)

	educationRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)bachelor(?:'s)?(?:\s+of)?(?:\s+science)?(?:\s+in)?`),
		regexp.MustCompile(`(?i)master(?:'s)?(?:\s+of)?(?:\s+science)?(?:\s+in)?`),
		regexp.MustCompile(`(?i)phd|ph\.d|doctorate`),
		regexp.MustCompile(`(?i)degree`),
		regexp.MustCompile(`(?i)university|college|institute`),
		regexp.MustCompile(`(?i)\bb\.?s\.?\b|\bm\.?s\.?\b|\bb\.?a\.?\b|\bm\.?a\.?\b|\bmba\b`),
	}

	jobTitleRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)developer|engineer|programmer|coder`),
		regexp.MustCompile(`(?i)manager|director|lead|head`),
		regexp.MustCompile(`(?i)designer|architect`),
		regexp.MustCompile(`(?i)analyst|consultant`),
		regexp.MustCompile(`(?i)senior|junior|staff|principal`),
		regexp.MustCompile(`(?i)full[\s-]?stack|front[\s-]?end|back[\s-]?end`),
	}

	dateOrCompanyRe = regexp.MustCompile(`(?i)\d{4}|present|current|company|inc|corp|ltd`)
	yearHintRe      = regexp.MustCompile(`(?i)\d{4}|present`)
)

var nameDenylist = []string{
	"resume", "curriculum", "vitae", "cv", "profile", "summary",
	"objective", "contact", "education", "experience", "skills",
}

var summaryKeywords = []string{"summary", "profile", "objective", "about", "overview"}

// Extract builds a Profile from raw resume text. It returns
// ErrInsufficientText when the trimmed text is shorter than 50 characters,
// and ErrNoSignal when extraction finds neither a name, an email nor any
// skills. All other field misses degrade to sentinel values.
func Extract(text string) (*Profile, error) {
	if len(strings.TrimSpace(text)) < minTextLength {
		return nil, ErrInsufficientText
	}

	clean := textutil.Normalize(text)
	lines := textutil.Lines(clean)
	lower := strings.ToLower(clean)

	p := &Profile{
		Name:       extractName(clean, lines),
		Email:      extractEmail(clean),
		Phone:      extractPhone(clean),
		Skills:     extractSkills(lower),
		Education:  extractEducation(lines),
		Experience: extractExperience(lines),
		Summary:    extractSummary(lines),
	}

	if p.Name == UnknownName && p.Email == "" && len(p.Skills) == 0 {
		return nil, ErrNoSignal
	}

	return p, nil
}

// extractName tries three strategies in order: pattern matching over the
// first 15 lines, a loose capitalized-sequence scan over the whole text,
// and an explicit Name:/Candidate:/Applicant: label.
func extractName(text string, lines []string) string {
	limit := len(lines)
	if limit > 15 {
		limit = 15
	}

	for i := 0; i < limit; i++ {
		line := lines[i]
		if len(line) < 3 {
			continue
		}
		if strings.Contains(line, "@") || manyDigitsRe.MatchString(line) {
			continue
		}
		if headerLineRe.MatchString(line) {
			continue
		}

		candidate := ""
		switch {
		case nameTitleCaseRe.MatchString(line), nameInitialRe.MatchString(line):
			candidate = line
		case nameAllCapsRe.MatchString(line):
			candidate = recase(line)
		}

		if candidate != "" && isValidName(candidate) {
			return candidate
		}
	}

	for _, candidate := range peopleRe.FindAllString(text, -1) {
		if isValidName(candidate) {
			return candidate
		}
	}

	if m := nameLabelRe.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[1])
		if isValidName(candidate) {
			return candidate
		}
	}

	return UnknownName
}

// isValidName applies the structural checks shared by every name strategy:
// 1-4 words, each starting uppercase, no digits outside generational
// suffixes, no single-letter words except dotted initials, at least one
// vowel and no resume-header vocabulary.
func isValidName(s string) bool {
	words := strings.Fields(strings.TrimSpace(s))
	if len(words) < 1 || len(words) > 4 {
		return false
	}

	lower := strings.ToLower(s)
	for _, h := range nameDenylist {
		if strings.Contains(lower, h) {
			return false
		}
	}

	for _, w := range words {
		first := rune(w[0])
		if first < 'A' || first > 'Z' {
			return false
		}
		if digitRe.MatchString(w) && !suffixRe.MatchString(w) {
			return false
		}
		if len(w) < 2 && !isInitial(w) {
			return false
		}
	}

	return vowelRe.MatchString(s)
}

func isInitial(w string) bool {
	return len(w) >= 1 && w[0] >= 'A' && w[0] <= 'Z' && (len(w) == 1 || w == w[:1]+".")
}

// recase folds an ALL-CAPS name to TitleCase.
func recase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = w[:1] + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func extractEmail(text string) string {
	if m := emailRe.FindString(text); m != "" {
		return strings.ToLower(m)
	}
	return ""
}

func extractPhone(text string) string {
	for _, re := range phoneRes {
		for _, m := range re.FindAllString(text, -1) {
			digits := digitsRe.ReplaceAllString(m, "")
			if len(digits) == 10 || len(digits) >= 11 {
				return m
			}
		}
	}
	return ""
}

func extractEducation(lines []string) []string {
	var education []string
	for _, line := range lines {
		for _, re := range educationRes {
			if re.MatchString(line) {
				education = append(education, line)
				break
			}
		}
		if len(education) >= 5 {
			break
		}
	}
	return education
}

// extractExperience keeps short lines that look like job titles and carry a
// date or company hint, either inline or on the following line.
func extractExperience(lines []string) []string {
	var experience []string
	for i, line := range lines {
		if len(line) >= 150 {
			continue
		}
		title := false
		for _, re := range jobTitleRes {
			if re.MatchString(line) {
				title = true
				break
			}
		}
		if !title {
			continue
		}

		if dateOrCompanyRe.MatchString(line) ||
			(i+1 < len(lines) && yearHintRe.MatchString(lines[i+1])) {
			experience = append(experience, line)
		}
		if len(experience) >= 10 {
			break
		}
	}
	return experience
}

// extractSummary prefers the block following a summary-like header; failing
// that it falls back to the first substantial line near the top that is not
// contact information.
func extractSummary(lines []string) string {
	for i, line := range lines {
		lower := strings.ToLower(line)
		matched := false
		for _, kw := range summaryKeywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		end := i + 5
		if end > len(lines) {
			end = len(lines)
		}
		var block []string
		for _, l := range lines[i+1 : end] {
			if len(l) > 20 {
				block = append(block, l)
			}
		}
		if len(block) > 0 {
			return textutil.Truncate(strings.Join(block, " "), 400)
		}
		break
	}

	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for i := 1; i < limit; i++ {
		line := lines[i]
		if len(line) > 50 && !emailRe.MatchString(line) && !phoneRes[0].MatchString(line) {
			return textutil.Truncate(line, 400)
		}
	}

	return ""
}
