package logging

import (
	"context"
	"errors"
	"log/slog"
)

// Fanout duplicates each record to every attached sink. A sink that rejects
// the level is skipped; failures from the rest are joined, never swallowed.
type Fanout struct {
	sinks []slog.Handler
}

func NewFanout(sinks ...slog.Handler) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range f.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *Fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, s := range f.sinks {
		if !s.Enabled(ctx, record.Level) {
			continue
		}
		// each sink gets its own copy; Records carry mutable attr state
		if err := s.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	sinks := make([]slog.Handler, len(f.sinks))
	for i, s := range f.sinks {
		sinks[i] = s.WithAttrs(attrs)
	}
	return &Fanout{sinks: sinks}
}

func (f *Fanout) WithGroup(name string) slog.Handler {
	sinks := make([]slog.Handler, len(f.sinks))
	for i, s := range f.sinks {
		sinks[i] = s.WithGroup(name)
	}
	return &Fanout{sinks: sinks}
}
