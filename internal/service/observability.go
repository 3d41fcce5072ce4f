package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/pitwall/internal/domain"
)

// UseCaseEvent records one service operation: which operator asked for it,
// what it appended to the commit log, and how long it took.
type UseCaseEvent struct {
	Name     string
	Operator string
	Duration time.Duration
	Err      error

	// Commit is the log entry a successful mutation appended; nil for
	// failures and for operations that move no state.
	Commit *domain.CommitRecord

	// Pulled and Pushed report what a sync moved.
	Pulled int
	Pushed int
}

// UseCaseObserver receives an event after each service operation completes.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes one log line per service operation to w.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	operator := event.Operator
	if operator == "" {
		operator = "anonymous"
	}
	attrs := []any{
		"use_case", event.Name,
		"operator", operator,
		"duration_ms", event.Duration.Milliseconds(),
	}
	if event.Commit != nil {
		attrs = append(attrs, "commit_version", event.Commit.Version)
	}
	if event.Pulled > 0 || event.Pushed > 0 {
		attrs = append(attrs, "pulled", event.Pulled, "pushed", event.Pushed)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "use_case", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
