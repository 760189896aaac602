// Package logger builds the zerolog loggers used by command line tools.
package logger

import (
	"fmt"
	"io"
	"time"

	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	// Level is a zerolog level name such as "debug" or "info".  Empty means
	// "info".
	Level string
	// JSON disables the console writer.
	JSON bool
	// Component is attached to every event when non-empty.
	Component string
}

// New constructs a logger writing to w.
func New(w io.Writer, opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}

	if !opts.JSON {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			NoColor:    true,
		}
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	return ctx.Logger(), nil
}

// progressOutput reports progress as log events.
type progressOutput struct {
	logger zerolog.Logger
}

// NewProgressOutput returns a mobyprogress.Output that logs each update at
// info level.  Messages are logged as-is; actions with counts carry
// current/total fields.
func NewProgressOutput(logger zerolog.Logger) mobyprogress.Output {
	return &progressOutput{logger: logger}
}

// WriteProgress implements mobyprogress.Output.
func (o *progressOutput) WriteProgress(p mobyprogress.Progress) error {
	event := o.logger.Info().Str("id", p.ID)
	if p.Message != "" {
		event.Msg(p.Message)
		return nil
	}
	if !p.HideCounts && p.Total > 0 {
		event = event.Int64("current", p.Current).Int64("total", p.Total)
		if p.Units != "" {
			event = event.Str("units", p.Units)
		}
	}
	if p.LastUpdate {
		event = event.Bool("done", true)
	}
	event.Msg(p.Action)
	return nil
}
