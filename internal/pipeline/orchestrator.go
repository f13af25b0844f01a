package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ingest"
	"github.com/spigell/resume-matcher/internal/insights"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/match"
	"github.com/spigell/resume-matcher/internal/profile"
	"github.com/spigell/resume-matcher/internal/suggestions"
)

func defaultPolicies() map[Stage]Policy {
	return map[Stage]Policy{
		StageAuth:        {MaxRetries: 2, RetryDelay: 500 * time.Millisecond, Timeout: 10 * time.Second},
		StageIngestion:   {MaxRetries: 2, RetryDelay: time.Second, Timeout: 30 * time.Second},
		StageProfiling:   {MaxRetries: 1, RetryDelay: 500 * time.Millisecond, Timeout: 15 * time.Second},
		StageMatching:    {MaxRetries: 1, RetryDelay: 500 * time.Millisecond, Timeout: 15 * time.Second},
		StageInsights:    {MaxRetries: 1, RetryDelay: 500 * time.Millisecond, Timeout: 10 * time.Second},
		StageSuggestions: {MaxRetries: 2, RetryDelay: time.Second, Timeout: 20 * time.Second},
	}
}

// Progress boundaries per stage: the value reported when the stage starts
// and the value reported once its result is recorded.
var stageProgress = map[Stage][2]int{
	StageAuth:        {10, 15},
	StageIngestion:   {20, 35},
	StageProfiling:   {40, 55},
	StageMatching:    {60, 70},
	StageInsights:    {75, 85},
	StageSuggestions: {90, 100},
}

// AuthResult records the credential check outcome. An invalid credential
// does not stop the run; it only disables the remote suggestion path.
type AuthResult struct {
	Valid  bool
	Model  string
	Reason string
}

// Input is one matching request: a resume document and the job description
// text it is evaluated against.
type Input struct {
	Document       ingest.Document
	JobDescription string
}

// Run is the observable state of a pipeline execution. Partial results
// accumulate as stages finish and stay visible after a failure.
type Run struct {
	Stage       Stage
	Progress    int
	Auth        *AuthResult
	Text        string
	Profile     *profile.Profile
	Match       *match.Result
	Insights    *insights.Set
	Suggestions *suggestions.Set
	Err         string
	Completed   bool
}

// Result is the final output of a completed run.
type Result struct {
	RawText     string
	Profile     *profile.Profile
	Match       *match.Result
	Insights    *insights.Set
	Suggestions *suggestions.Set
}

// Options configures an Orchestrator. The zero value runs the pipeline
// without a credential, so suggestions come from the local heuristics.
type Options struct {
	// Credential enables the auth stage and the remote suggestion path.
	Credential string

	Logger *zap.Logger

	// Policies overrides the per-stage retry and timeout budgets.
	Policies map[Stage]Policy

	// Authenticate probes the credential and returns the model to use for
	// remote suggestions. Defaults to a live service check.
	Authenticate func(ctx context.Context, credential string) (string, error)

	// Suggest produces the suggestion set. model is empty when the auth
	// stage was skipped or failed. Defaults to the remote-preferred
	// generator with local fallback.
	Suggest func(ctx context.Context, resumeText, jobText, model string) *suggestions.Set
}

// Orchestrator drives the fixed stage order and owns the only mutable
// state of a run. It is not safe for concurrent Execute calls.
type Orchestrator struct {
	log          *zap.Logger
	credential   string
	policies     map[Stage]Policy
	authenticate func(ctx context.Context, credential string) (string, error)
	suggest      func(ctx context.Context, resumeText, jobText, model string) *suggestions.Set

	mu        sync.Mutex
	run       Run
	observers []func(Run)
}

func New(opts Options) *Orchestrator {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	policies := defaultPolicies()
	for stage, policy := range opts.Policies {
		policies[stage] = policy
	}

	o := &Orchestrator{
		log:          log,
		credential:   strings.TrimSpace(opts.Credential),
		policies:     policies,
		authenticate: opts.Authenticate,
		suggest:      opts.Suggest,
		run:          Run{Stage: StageIdle},
	}

	if o.authenticate == nil {
		o.authenticate = probeCredential
	}
	if o.suggest == nil {
		o.suggest = o.defaultSuggest
	}

	return o
}

// Subscribe registers an observer invoked with a copy of the run state
// after every change. Must be called before Execute.
func (o *Orchestrator) Subscribe(fn func(Run)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, fn)
}

// State returns a copy of the current run state.
func (o *Orchestrator) State() Run {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.run
}

// Reset discards the previous run state.
func (o *Orchestrator) Reset() {
	o.update(func(r *Run) {
		*r = Run{Stage: StageIdle}
	})
}

// Execute runs all stages in order and returns the aggregated result. On
// stage failure the run transitions to the failed state and the stage
// error is returned; results recorded before the failure stay in State.
func (o *Orchestrator) Execute(ctx context.Context, input Input) (*Result, error) {
	o.Reset()

	model := o.runAuth(ctx)

	text, err := o.runIngestion(ctx, input.Document)
	if err != nil {
		return nil, o.fail(err)
	}

	prof, err := o.runProfiling(ctx, text)
	if err != nil {
		return nil, o.fail(err)
	}

	matchResult, err := o.runMatching(ctx, text, input.JobDescription)
	if err != nil {
		return nil, o.fail(err)
	}

	insightSet, err := o.runInsights(ctx, text, input.JobDescription, matchResult.Score)
	if err != nil {
		return nil, o.fail(err)
	}

	suggestionSet, err := o.runSuggestions(ctx, text, input.JobDescription, model)
	if err != nil {
		return nil, o.fail(err)
	}

	o.update(func(r *Run) {
		r.Stage = StageCompleted
		r.Progress = 100
		r.Completed = true
	})

	return &Result{
		RawText:     text,
		Profile:     prof,
		Match:       matchResult,
		Insights:    insightSet,
		Suggestions: suggestionSet,
	}, nil
}

// runAuth returns the model to use for remote suggestions, or empty when
// no credential is configured or the check failed. A failed check is
// recorded on the run but never stops the pipeline.
func (o *Orchestrator) runAuth(ctx context.Context) string {
	if o.credential == "" {
		return ""
	}

	o.enterStage(StageAuth)

	model, err := runStage(ctx, StageAuth, o.policies[StageAuth], o.emit,
		func(ctx context.Context, credential string) (string, error) {
			return o.authenticate(ctx, credential)
		}, o.credential)
	if err != nil {
		o.log.Warn("credential check failed, continuing without remote suggestions", zap.Error(err))
		o.update(func(r *Run) {
			r.Auth = &AuthResult{Reason: err.Error()}
			r.Progress = stageProgress[StageAuth][1]
		})
		return ""
	}

	o.update(func(r *Run) {
		r.Auth = &AuthResult{Valid: true, Model: model}
		r.Progress = stageProgress[StageAuth][1]
	})

	return model
}

func (o *Orchestrator) runIngestion(ctx context.Context, doc ingest.Document) (string, error) {
	o.enterStage(StageIngestion)

	text, err := runStage(ctx, StageIngestion, o.policies[StageIngestion], o.emit,
		func(_ context.Context, doc ingest.Document) (string, error) {
			return ingest.ExtractText(doc)
		}, doc)
	if err != nil {
		return "", err
	}

	o.update(func(r *Run) {
		r.Text = text
		r.Progress = stageProgress[StageIngestion][1]
	})

	return text, nil
}

func (o *Orchestrator) runProfiling(ctx context.Context, text string) (*profile.Profile, error) {
	o.enterStage(StageProfiling)

	prof, err := runStage(ctx, StageProfiling, o.policies[StageProfiling], o.emit,
		func(_ context.Context, text string) (*profile.Profile, error) {
			return profile.Extract(text)
		}, text)
	if err != nil {
		return nil, err
	}

	o.update(func(r *Run) {
		r.Profile = prof
		r.Progress = stageProgress[StageProfiling][1]
	})

	return prof, nil
}

func (o *Orchestrator) runMatching(ctx context.Context, resumeText, jobText string) (*match.Result, error) {
	o.enterStage(StageMatching)

	result, err := runStage(ctx, StageMatching, o.policies[StageMatching], o.emit,
		func(_ context.Context, resume string) (*match.Result, error) {
			return match.Score(resume, jobText)
		}, resumeText)
	if err != nil {
		return nil, err
	}

	o.update(func(r *Run) {
		r.Match = result
		r.Progress = stageProgress[StageMatching][1]
	})

	return result, nil
}

func (o *Orchestrator) runInsights(ctx context.Context, resumeText, jobText string, score int) (*insights.Set, error) {
	o.enterStage(StageInsights)

	set, err := runStage(ctx, StageInsights, o.policies[StageInsights], o.emit,
		func(_ context.Context, resume string) (*insights.Set, error) {
			return insights.Generate(resume, jobText, score), nil
		}, resumeText)
	if err != nil {
		return nil, err
	}

	o.update(func(r *Run) {
		r.Insights = set
		r.Progress = stageProgress[StageInsights][1]
	})

	return set, nil
}

func (o *Orchestrator) runSuggestions(ctx context.Context, resumeText, jobText, model string) (*suggestions.Set, error) {
	o.enterStage(StageSuggestions)

	set, err := runStage(ctx, StageSuggestions, o.policies[StageSuggestions], o.emit,
		func(ctx context.Context, resume string) (*suggestions.Set, error) {
			return o.suggest(ctx, resume, jobText, model), nil
		}, resumeText)
	if err != nil {
		return nil, err
	}

	o.update(func(r *Run) {
		r.Suggestions = set
		r.Progress = stageProgress[StageSuggestions][1]
	})

	return set, nil
}

func (o *Orchestrator) enterStage(stage Stage) {
	o.update(func(r *Run) {
		r.Stage = stage
		r.Progress = stageProgress[stage][0]
	})
}

func (o *Orchestrator) fail(err error) error {
	o.update(func(r *Run) {
		r.Stage = StageFailed
		r.Err = err.Error()
	})
	return err
}

func (o *Orchestrator) update(mutate func(*Run)) {
	o.mu.Lock()
	mutate(&o.run)
	run := o.run
	observers := o.observers
	o.mu.Unlock()

	for _, fn := range observers {
		fn(run)
	}
}

func (o *Orchestrator) emit(ev Event) {
	switch ev.Type {
	case EventRetry:
		o.log.Warn("stage attempt failed",
			logger.StageField(string(ev.Stage)),
			zap.Int("attempt", ev.Attempt),
			zap.Error(ev.Err),
		)
	case EventError:
		o.log.Error("stage failed",
			logger.StageField(string(ev.Stage)),
			zap.Error(ev.Err),
		)
	default:
		o.log.Debug(string(ev.Type),
			logger.StageField(string(ev.Stage)),
		)
	}
}

// probeCredential verifies the credential with a trivial generation call
// and reports which model answered.
func probeCredential(ctx context.Context, credential string) (string, error) {
	client, err := suggestions.NewGeminiClient(ctx, credential, "")
	if err != nil {
		return "", err
	}
	if _, err := client.GenerateContent(ctx, "Hello"); err != nil {
		return "", err
	}
	return client.Model(), nil
}

func (o *Orchestrator) defaultSuggest(ctx context.Context, resumeText, jobText, model string) *suggestions.Set {
	if model == "" {
		return suggestions.NewGenerator(nil, o.log, 0).Generate(ctx, resumeText, jobText)
	}

	client, err := suggestions.NewGeminiClient(ctx, o.credential, model)
	if err != nil {
		o.log.Warn("remote suggestion client unavailable", zap.Error(err))
		return suggestions.NewGenerator(nil, o.log, 0).Generate(ctx, resumeText, jobText)
	}

	return suggestions.NewGenerator(client, o.log, 0).Generate(ctx, resumeText, jobText)
}
