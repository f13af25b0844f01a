package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spigell/resume-matcher/internal/ingest"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/pipeline"
	"github.com/spigell/resume-matcher/internal/secrets"
	"github.com/spigell/resume-matcher/internal/store"
	"github.com/spigell/resume-matcher/internal/suggestions"
	"github.com/spigell/resume-matcher/internal/textutil"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"

	jobTitleMaxLength = 80
)

var savePrompt = promptui.Select{
	Label: "Save this candidate to the local database?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Match a resume against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume", "r", "", "path to the resume file (pdf or plain text)")
	runCmd.Flags().String("job", "", "path to the job description file (plain text)")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before saving results")
	runCmd.Flags().String("store", "", "path to the sqlite database for saved candidates")

	viper.BindPFlag("resume-file", runCmd.Flags().Lookup("resume"))
	viper.BindPFlag("job-file", runCmd.Flags().Lookup("job"))
	viper.BindPFlag("store.path", runCmd.Flags().Lookup("store"))
}

// matchReport is the printed outcome of one run.
type matchReport struct {
	Name        string   `json:"name"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Education   []string `json:"education,omitempty"`
	Experience  []string `json:"experience,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Score       int      `json:"score"`
	Category    string   `json:"category"`
	Strengths   []string `json:"strengths,omitempty"`
	Weaknesses  []string `json:"weaknesses,omitempty"`
	Improve     []string `json:"areas_to_improve,omitempty"`
	Constraints []string `json:"constraints,omitempty"`
	Suggestions []string `json:"suggestions"`
	UsedAI      bool     `json:"used_ai"`
	Model       string   `json:"model,omitempty"`
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the resume-matcher", zap.String("version", version))

	if config.ResumeFile == "" {
		zlog.Fatal("resume file is required", zap.String("hint", "pass --resume or set resume-file in the configuration file"))
	}
	if config.JobFile == "" {
		zlog.Fatal("job description file is required", zap.String("hint", "pass --job or set job-file in the configuration file"))
	}

	doc, err := loadDocument(config.ResumeFile)
	if err != nil {
		zlog.Fatal("loading resume document", zap.Error(err))
	}

	jobBytes, err := os.ReadFile(config.JobFile)
	if err != nil {
		zlog.Fatal("loading job description", zap.Error(err))
	}
	jobText := textutil.Normalize(string(jobBytes))

	credential, err := resolveGeminiKey(config)
	if err != nil {
		zlog.Fatal(
			"loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_KEY_FILE environment variable or the 'ai.gemini' keys in the configuration file"),
		)
	}
	if credential == "" {
		zlog.Info("no gemini api key configured, suggestions use local heuristics")
	}

	orchestrator := pipeline.New(pipeline.Options{
		Credential: credential,
		Logger:     zlog,
		Suggest:    suggestFunc(config, credential, zlog),
	})
	orchestrator.Subscribe(func(r pipeline.Run) {
		zlog.Debug("pipeline state",
			logger.StageField(string(r.Stage)),
			zap.Int("progress", r.Progress),
		)
	})

	result, err := orchestrator.Execute(ctx, pipeline.Input{
		Document:       doc,
		JobDescription: jobText,
	})
	if err != nil {
		zlog.Fatal("pipeline failed", zap.Error(err))
	}

	report := buildReport(result)
	pretty, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(pretty))

	if err := maybeSave(ctx, cmd, config, zlog, result, jobText); err != nil {
		zlog.Fatal("saving results", zap.Error(err))
	}
}

func loadDocument(path string) (ingest.Document, error) {
	docType, err := ingest.DetectType(path)
	if err != nil {
		return ingest.Document{}, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return ingest.Document{}, err
	}

	return ingest.Document{Name: path, Type: docType, Content: content}, nil
}

// resolveGeminiKey returns the credential, or empty when the remote path is
// disabled or simply not configured.
func resolveGeminiKey(config *Config) (string, error) {
	if config.AI != nil && !config.AI.Enabled && config.AI.Gemini == nil {
		return "", nil
	}

	var inline, file string
	if config.AI != nil && config.AI.Gemini != nil {
		inline = strings.TrimSpace(config.AI.Gemini.APIKey)
		file = strings.TrimSpace(config.AI.Gemini.APIKeyFile)
	}
	if file == "" {
		file = strings.TrimSpace(viper.GetString("ai.gemini.api-key-file"))
	}

	if inline == "" && file == "" {
		return "", nil
	}

	return secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: inline,
		File:  file,
	})
}

// suggestFunc builds the suggestion step honoring the configured model
// preference and log length.
func suggestFunc(config *Config, credential string, zlog *zap.Logger) func(context.Context, string, string, string) *suggestions.Set {
	var modelHint string
	var maxLogLen int
	if config.AI != nil && config.AI.Gemini != nil {
		modelHint = config.AI.Gemini.Model
		maxLogLen = config.AI.Gemini.MaxLogLength
	}

	return func(ctx context.Context, resumeText, jobText, model string) *suggestions.Set {
		if model == "" {
			return suggestions.NewGenerator(nil, zlog, maxLogLen).Generate(ctx, resumeText, jobText)
		}

		preferred := modelHint
		if preferred == "" {
			preferred = model
		}

		client, err := suggestions.NewGeminiClient(ctx, credential, preferred)
		if err != nil {
			zlog.Warn("remote suggestion client unavailable", zap.Error(err))
			return suggestions.NewGenerator(nil, zlog, maxLogLen).Generate(ctx, resumeText, jobText)
		}

		return suggestions.NewGenerator(client, zlog, maxLogLen).Generate(ctx, resumeText, jobText)
	}
}

func buildReport(result *pipeline.Result) *matchReport {
	return &matchReport{
		Name:        result.Profile.Name,
		Email:       result.Profile.Email,
		Phone:       result.Profile.Phone,
		Skills:      result.Profile.Skills,
		Education:   result.Profile.Education,
		Experience:  result.Profile.Experience,
		Summary:     result.Profile.Summary,
		Score:       result.Match.Score,
		Category:    result.Match.Category.String(),
		Strengths:   result.Insights.Strengths,
		Weaknesses:  result.Insights.Weaknesses,
		Improve:     result.Insights.AreasToImprove,
		Constraints: result.Insights.Constraints,
		Suggestions: result.Suggestions.Suggestions,
		UsedAI:      result.Suggestions.UsedAI,
		Model:       result.Suggestions.Model,
	}
}

func maybeSave(ctx context.Context, cmd *cobra.Command, config *Config, zlog *zap.Logger, result *pipeline.Result, jobText string) error {
	path := storePath(config)
	if path == "" {
		return nil
	}

	if cmd.Flag("auto-approve").Value.String() == "false" {
		_, action, err := savePrompt.Run()
		if err != nil {
			return err
		}
		if action != PromptYes {
			zlog.Info("skipping save", zap.String("reason", "got no from prompt"))
			return nil
		}
	}

	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	candidate := &store.Candidate{
		Name:     result.Profile.Name,
		Email:    result.Profile.Email,
		Phone:    result.Profile.Phone,
		Score:    result.Match.Score,
		Category: result.Match.Category.String(),
		Details: store.CandidateDetails{
			Skills:      result.Profile.Skills,
			Education:   result.Profile.Education,
			Experience:  result.Profile.Experience,
			Summary:     result.Profile.Summary,
			Suggestions: result.Suggestions.Suggestions,
			UsedAI:      result.Suggestions.UsedAI,
			Model:       result.Suggestions.Model,
		},
	}
	if err := db.SaveCandidate(ctx, candidate); err != nil {
		return err
	}

	if err := db.SaveJob(ctx, &store.Job{
		Title:       jobTitle(jobText),
		Description: jobText,
	}); err != nil {
		return err
	}

	analytics, err := db.Analytics(ctx)
	if err != nil {
		return err
	}

	zlog.Info("candidate saved",
		zap.String("id", candidate.ID),
		zap.String("database", path),
		zap.Int("total_candidates", analytics.TotalCandidates),
		zap.Float64("average_score", analytics.AverageScore),
	)

	return nil
}

func storePath(config *Config) string {
	if config.Store == nil {
		return strings.TrimSpace(viper.GetString("store.path"))
	}
	if !config.Store.Enabled && config.Store.Path == "" {
		return ""
	}
	return strings.TrimSpace(config.Store.Path)
}

// jobTitle takes the first line of the description as the stored title.
func jobTitle(jobText string) string {
	lines := textutil.Lines(jobText)
	if len(lines) == 0 {
		return "Untitled position"
	}
	return textutil.Truncate(lines[0], jobTitleMaxLength)
}
