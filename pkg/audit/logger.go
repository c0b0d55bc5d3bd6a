package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Logger records audit events.
type Logger interface {
	// Log records a successful action.
	Log(ctx context.Context, action string, opts ...EventOption) error

	// LogError records a failed action.
	LogError(ctx context.Context, action string, err error, opts ...EventOption) error
}

// contextExtractor extracts string values from context.
type contextExtractor func(context.Context) (string, bool)

type logger struct {
	storage        Storage
	actorExtractor contextExtractor
}

// Option configures the audit logger.
type Option func(*logger)

// WithActorExtractor derives the event actor from the context when no
// explicit WithActor option is given.
func WithActorExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *logger) {
		l.actorExtractor = fn
	}
}

// NewLogger creates a new audit logger.
func NewLogger(storage Storage, opts ...Option) Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}

	l := &logger{
		storage: storage,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Log records a successful action.
func (l *logger) Log(ctx context.Context, action string, opts ...EventOption) error {
	event := l.eventFromContext(ctx)
	event.ID = uuid.New().String()
	event.CreatedAt = time.Now()
	event.Action = action
	event.Result = ResultSuccess

	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}

	return l.storage.Store(ctx, event)
}

// LogError records a failed action.
func (l *logger) LogError(ctx context.Context, action string, err error, opts ...EventOption) error {
	event := l.eventFromContext(ctx)
	event.ID = uuid.New().String()
	event.CreatedAt = time.Now()
	event.Action = action
	event.Result = ResultError
	event.Error = err.Error()

	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}

	return l.storage.Store(ctx, event)
}

// eventFromContext extracts event data from context.
func (l *logger) eventFromContext(ctx context.Context) Event {
	event := Event{}

	if l.actorExtractor != nil {
		if actor, ok := l.actorExtractor(ctx); ok {
			event.Actor = actor
		}
	}

	return event
}
