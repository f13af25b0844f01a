// Package suggestions produces actionable resume recommendations. When a
// remote model is configured it is preferred; every remote failure falls
// back to deterministic local heuristics, so generation as a whole never
// fails.
package suggestions

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/textutil"
	"go.uber.org/zap"
)

//go:embed prompt.md
var promptTemplate string

const (
	// Bounds applied to the prompt inputs before the remote call.
	maxResumePromptLen = 2000
	maxJobPromptLen    = 1000

	// The refined contract: exactly this many suggestions, remote or local.
	suggestionCount = 3

	// Parsed remote lines shorter than this are noise, not suggestions.
	minSuggestionLen = 20

	defaultMaxLogLength = 200
)

var numberedLineRe = regexp.MustCompile(`^\d+\.\s*`)

// Set is the outcome of one generation run. UsedAI and Model report whether
// the remote path produced the suggestions.
type Set struct {
	Suggestions []string
	UsedAI      bool
	Model       string
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Generator prefers a remote content generator and degrades to local
// heuristics. A nil remote means local-only operation.
type Generator struct {
	remote    contentGenerator
	log       *zap.Logger
	maxLogLen int
}

// NewGenerator creates a Generator. remote may be nil to force the local
// path.
func NewGenerator(remote contentGenerator, log *zap.Logger, maxLogLength int) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Generator{
		remote:    remote,
		log:       log,
		maxLogLen: maxLogLength,
	}
}

// Generate returns exactly 3 suggestions. Remote errors are logged and
// swallowed: the local fallback is the answer, never an error.
func (g *Generator) Generate(ctx context.Context, resumeText, jobText string) *Set {
	if g.remote == nil {
		return &Set{Suggestions: localSuggestions(resumeText, jobText)}
	}

	suggestions, err := g.generateRemote(ctx, resumeText, jobText)
	if err != nil {
		g.log.Warn("remote suggestion generation failed, using local fallback",
			zap.Error(err),
			logger.ModelField(g.remote.Model()),
		)
		return &Set{Suggestions: localSuggestions(resumeText, jobText)}
	}

	return &Set{
		Suggestions: suggestions,
		UsedAI:      true,
		Model:       g.remote.Model(),
	}
}

func (g *Generator) generateRemote(ctx context.Context, resumeText, jobText string) ([]string, error) {
	prompt := buildPrompt(
		textutil.Truncate(resumeText, maxResumePromptLen),
		textutil.Truncate(jobText, maxJobPromptLen),
	)

	g.log.Debug("remote suggestion request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, g.maxLogLen)),
	)

	raw, err := g.remote.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	g.log.Debug("remote suggestion response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, g.maxLogLen)),
	)

	suggestions := parseNumbered(raw)
	if len(suggestions) < suggestionCount {
		return nil, fmt.Errorf("parsed %d suggestions from response, need %d", len(suggestions), suggestionCount)
	}

	return suggestions[:suggestionCount], nil
}

func buildPrompt(resumeText, jobText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME}}\n\nJob description:\n{{JOB_DESCRIPTION}}\n\nNumbered suggestions:"
	}
	prompt := strings.ReplaceAll(template, "{{RESUME}}", resumeText)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobText)
	return prompt
}

// parseNumbered keeps lines shaped like "1. ...", stripped of the marker,
// that carry enough text to be an actual suggestion.
func parseNumbered(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if !numberedLineRe.MatchString(line) {
			continue
		}
		s := strings.TrimSpace(numberedLineRe.ReplaceAllString(line, ""))
		if len(s) > minSuggestionLen {
			out = append(out, s)
		}
	}
	return out
}
