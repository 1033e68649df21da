// Package sink provides destinations for a validated account submission.
package sink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/idilsaglam/account/internal/config"
	"github.com/idilsaglam/account/internal/model"
	"github.com/idilsaglam/account/internal/photo"
	"github.com/idilsaglam/account/internal/store/payloadstore"
)

// Log writes the submission to a structured logger. Uploaded images are
// summarised rather than dumped.
type Log struct {
	Logger *slog.Logger
}

func (s Log) Submit(_ context.Context, p model.Payload) error {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	attrs := []any{
		"name", p.Name,
		"email", p.Email,
		"marital_status", p.MaritalStatus,
		"birth_date", model.FormatDate(p.BirthDate),
		"photo", photo.Describe(p.PhotoRef),
		"children", len(p.Children),
	}
	if p.Spouse != nil {
		attrs = append(attrs, "spouse", p.Spouse.Name)
	}
	l.Info("account submitted", attrs...)
	for i, c := range p.Children {
		l.Info("child",
			"index", i,
			"id", c.ID,
			"name", c.Name,
			"school", c.SchoolName,
			"date_of_birth", model.FormatDate(c.DateOfBirth),
			"photo", photo.Describe(c.PhotoRef),
		)
	}
	return nil
}

// File writes the submission as JSON to Path, replacing earlier content.
type File struct {
	Path string
}

func (s File) Submit(ctx context.Context, p model.Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := payloadstore.Save(s.Path, p); err != nil {
		return fmt.Errorf("file sink: %w", err)
	}
	slog.Info("submission written", "path", s.Path)
	return nil
}

// Func adapts a function into a sink.
type Func func(ctx context.Context, p model.Payload) error

func (fn Func) Submit(ctx context.Context, p model.Payload) error {
	return fn(ctx, p)
}

// Sink matches form.Sink without importing the form package.
type Sink interface {
	Submit(ctx context.Context, p model.Payload) error
}

// FromConfig builds the sink selected in the config file.
func FromConfig(c config.SinkConfig, logger *slog.Logger) (Sink, error) {
	switch c.Type {
	case config.SinkLog, "":
		return Log{Logger: logger}, nil
	case config.SinkFile:
		return File{Path: c.Path}, nil
	default:
		return nil, fmt.Errorf("unknown sink type %q", c.Type)
	}
}
