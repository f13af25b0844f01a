package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEvents() (*[]Event, func(Event)) {
	events := &[]Event{}
	return events, func(ev Event) {
		*events = append(*events, ev)
	}
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	return types
}

func TestRunStageFailTwiceThenSucceed(t *testing.T) {
	t.Parallel()

	events, emit := collectEvents()
	policy := Policy{MaxRetries: 2, RetryDelay: time.Millisecond, Timeout: time.Second}

	calls := 0
	out, err := runStage(context.Background(), StageMatching, policy, emit,
		func(_ context.Context, in string) (string, error) {
			calls++
			if calls <= 2 {
				return "", errors.New("transient failure")
			}
			return in + " done", nil
		}, "work")

	require.NoError(t, err)
	assert.Equal(t, "work done", out)
	assert.Equal(t, 3, calls)
	assert.Equal(t,
		[]EventType{EventStart, EventRetry, EventRetry, EventSuccess},
		eventTypes(*events))
	assert.Equal(t, 1, (*events)[1].Attempt)
	assert.Equal(t, 2, (*events)[2].Attempt)
}

func TestRunStageExhaustsRetries(t *testing.T) {
	t.Parallel()

	events, emit := collectEvents()
	policy := Policy{MaxRetries: 1, RetryDelay: time.Millisecond, Timeout: time.Second}

	calls := 0
	_, err := runStage(context.Background(), StageIngestion, policy, emit,
		func(_ context.Context, _ string) (string, error) {
			calls++
			return "", errors.New("broken document")
		}, "work")

	require.Error(t, err)
	assert.Equal(t, 2, calls)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageIngestion, stageErr.Stage)
	assert.Contains(t, err.Error(), "broken document")

	assert.Equal(t,
		[]EventType{EventStart, EventRetry, EventError},
		eventTypes(*events))
}

func TestRunStageTimeout(t *testing.T) {
	t.Parallel()

	_, emit := collectEvents()
	policy := Policy{MaxRetries: 0, RetryDelay: time.Millisecond, Timeout: 10 * time.Millisecond}

	_, err := runStage(context.Background(), StageSuggestions, policy, emit,
		func(ctx context.Context, _ string) (string, error) {
			select {
			case <-time.After(time.Second):
				return "late", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}, "work")

	require.ErrorIs(t, err, ErrStageTimeout)
}

func TestRunStageTimeoutDistinctFromStageError(t *testing.T) {
	t.Parallel()

	_, emit := collectEvents()
	policy := Policy{MaxRetries: 0, RetryDelay: time.Millisecond, Timeout: time.Second}

	stageFailure := errors.New("stage exploded")
	_, err := runStage(context.Background(), StageProfiling, policy, emit,
		func(_ context.Context, _ string) (string, error) {
			return "", stageFailure
		}, "work")

	require.ErrorIs(t, err, stageFailure)
	assert.NotErrorIs(t, err, ErrStageTimeout)
}

func TestRunStageCancelledContext(t *testing.T) {
	t.Parallel()

	_, emit := collectEvents()
	policy := Policy{MaxRetries: 5, RetryDelay: time.Minute, Timeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := runStage(ctx, StageInsights, policy, emit,
		func(_ context.Context, _ string) (string, error) {
			calls++
			return "", errors.New("never retried")
		}, "work")

	require.Error(t, err)
	assert.LessOrEqual(t, calls, 1)
}
