// Package pipeline sequences the matching stages in fixed order. Every
// stage runs under the same retry and timeout contract and reports its
// lifecycle through events, which the orchestrator aggregates into one
// observable run state.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spigell/resume-matcher/internal/utils"
)

// Stage names one step of the pipeline, plus the terminal pseudo-stages.
type Stage string

const (
	StageIdle        Stage = "idle"
	StageAuth        Stage = "auth"
	StageIngestion   Stage = "ingestion"
	StageProfiling   Stage = "profiling"
	StageMatching    Stage = "matching"
	StageInsights    Stage = "insights"
	StageSuggestions Stage = "suggestions"
	StageCompleted   Stage = "completed"
	StageFailed      Stage = "failed"
)

// EventType classifies a stage lifecycle event.
type EventType string

const (
	EventStart   EventType = "start"
	EventRetry   EventType = "retry"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Event is one stage lifecycle notification. Attempt is the 1-based count
// of failed attempts for retry events and zero otherwise.
type Event struct {
	Type    EventType
	Stage   Stage
	Attempt int
	Err     error
	At      time.Time
}

// ErrStageTimeout marks an attempt that outlived its budget. It is distinct
// from any error the stage function itself returns.
var ErrStageTimeout = errors.New("stage timed out")

// StageError wraps a stage failure with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Policy is the retry and timeout budget of one stage. MaxRetries counts
// additional attempts after the first failure; backoff grows linearly as
// RetryDelay times the attempt number.
type Policy struct {
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

type outcome[O any] struct {
	out O
	err error
}

// runStage executes fn under the policy, emitting lifecycle events. Each
// attempt races fn against the timeout; a late result from a timed-out
// attempt is discarded. The returned error is always a *StageError.
func runStage[I, O any](ctx context.Context, stage Stage, policy Policy, emit func(Event), fn func(context.Context, I) (O, error), input I) (O, error) {
	var zero O

	emit(Event{Type: EventStart, Stage: stage, At: time.Now()})

	var lastErr error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		out, err := runAttempt(ctx, policy.Timeout, fn, input)
		if err == nil {
			emit(Event{Type: EventSuccess, Stage: stage, At: time.Now()})
			return out, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == policy.MaxRetries {
			break
		}

		failures := attempt + 1
		emit(Event{Type: EventRetry, Stage: stage, Attempt: failures, Err: err, At: time.Now()})

		if werr := utils.WaitFor(ctx, policy.RetryDelay*time.Duration(failures)); werr != nil {
			lastErr = werr
			break
		}
	}

	emit(Event{Type: EventError, Stage: stage, Err: lastErr, At: time.Now()})
	return zero, &StageError{Stage: stage, Err: lastErr}
}

func runAttempt[I, O any](ctx context.Context, timeout time.Duration, fn func(context.Context, I) (O, error), input I) (O, error) {
	var zero O

	attemptCtx := ctx
	var cancel context.CancelFunc = func() {}
	if timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	// Buffered so a late result from a timed-out attempt is dropped
	// instead of leaking the goroutine.
	ch := make(chan outcome[O], 1)
	go func() {
		out, err := fn(attemptCtx, input)
		ch <- outcome[O]{out: out, err: err}
	}()

	select {
	case res := <-ch:
		// A ctx-aware stage may report the attempt deadline itself.
		if errors.Is(res.err, context.DeadlineExceeded) && ctx.Err() == nil {
			return zero, fmt.Errorf("%w after %s", ErrStageTimeout, timeout)
		}
		return res.out, res.err
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		return zero, fmt.Errorf("%w after %s", ErrStageTimeout, timeout)
	}
}
