// Package controller provides the user interfaces that present colfmt runs.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "colfmt.dev/pkg/colfmt/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeEstimate StartMode = iota
	ModeFormat
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// Mode returns the configured mode.
func (c StartConfig) Mode() StartMode {
	return c.mode
}

// WithEstimateMode sets the UI to estimation mode.
func WithEstimateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeEstimate
	}
}

// WithFormatMode sets the UI to report formatting results.
func WithFormatMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeFormat
	}
}

func newStartConfig(options []StartOption) StartConfig {
	var cfg StartConfig
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI presents a run. Implementations can use different output methods
// (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	// Wait blocks until the user is done with the UI.
	Wait(ctx context.Context)
	DisplayEstimation(ctx context.Context, estimates []m.Estimate, err error) error
	DisplayRunInfo(ctx context.Context, op m.Operation, files int, workers int)
	DisplayResult(ctx context.Context, result m.Result)
	// DisplayFormatted writes a formatted buffer as is.
	DisplayFormatted(ctx context.Context, result m.Result)
	DisplaySummary(ctx context.Context, summary m.Summary)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// NewUI returns the interactive TUI when tty is set, the plain SimpleUI
// otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}
