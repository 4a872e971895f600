// Package controller renders package trees, hook selections, patch progress
// and trace previews for the command line.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "tracehook.dev/pkg/tracehook/internal/model"
	"tracehook.dev/pkg/tracehook/internal/vm"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeBrowse StartMode = iota
	ModePatch
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode      StartMode
	interrupt func()
}

// WithBrowseMode sets the UI to listing mode.
func WithBrowseMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeBrowse
	}
}

// WithPatchMode sets the UI to show patch progress.
func WithPatchMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModePatch
	}
}

// WithInterrupt registers fn to be called when the user aborts the view.
func WithInterrupt(fn func()) StartOption {
	return func(c *StartConfig) {
		c.interrupt = fn
	}
}

// NewStartConfig applies options to a zero StartConfig.
func NewStartConfig(options ...StartOption) StartConfig {
	var cfg StartConfig
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// Mode returns the selected StartMode.
func (c StartConfig) Mode() StartMode { return c.mode }

// Interrupt returns the abort callback, or nil.
func (c StartConfig) Interrupt() func() { return c.interrupt }

// UI displays what the workflow produces.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context)
	DisplayPackage(ctx context.Context, path m.Path, modules []*m.Module)
	DisplayCandidates(ctx context.Context, candidates []m.Candidate, hooks []m.HookDescriptor)
	DisplayHooks(ctx context.Context, hooks []m.HookDescriptor)
	DisplayEvent(ctx context.Context, event m.Event)
	DisplayReport(ctx context.Context, report m.RunReport)
	DisplayDeploy(ctx context.Context, device string, success bool, detail string)
	DisplayDiff(ctx context.Context, method string, diff string)
	DisplayTrace(ctx context.Context, method string, events []vm.TraceEvent, result string)
}

// NewUI returns a TUI when useTTY is set and a SimpleUI otherwise.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
