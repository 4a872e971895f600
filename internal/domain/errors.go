package domain

import (
	"errors"
	"fmt"

	m "tracehook.dev/pkg/tracehook/internal/model"
)

var (
	// ErrMalformedPackage is returned when a package archive is structurally invalid.
	ErrMalformedPackage = errors.New("malformed package")
	// ErrCorruptModule is returned when a module entry cannot be decoded.
	ErrCorruptModule = errors.New("corrupt module")
	// ErrUnsupportedMethodShape is returned when a method body cannot be rewritten safely.
	ErrUnsupportedMethodShape = errors.New("unsupported method shape")
	// ErrVerificationFailure is returned when a rewritten body fails verification.
	ErrVerificationFailure = errors.New("verification failure")
	// ErrIO is returned for I/O failures while writing the staging artifact.
	ErrIO = errors.New("i/o error")
	// ErrDestinationNotWritable is returned when the staging location cannot be created or written.
	ErrDestinationNotWritable = errors.New("destination not writable")
	// ErrNotFound is returned when a hook, method or module cannot be resolved.
	ErrNotFound = errors.New("not found")
	// ErrPipelineBusy is returned when a run is requested while another is active.
	ErrPipelineBusy = errors.New("pipeline busy")
	// ErrNotParsed is returned when a run is requested on a package that was not parsed.
	ErrNotParsed = errors.New("package not parsed")
	// ErrCancelled is returned when a run stops at a cancellation checkpoint.
	ErrCancelled = errors.New("run cancelled")
)

// PipelineError is a run-fatal error with the stage, module and method it
// happened in. Module and Method are empty when not applicable.
type PipelineError struct {
	Stage  m.PipelineState
	Module string
	Method string
	Err    error
}

func (e *PipelineError) Error() string {
	msg := string(e.Stage)

	if e.Module != "" {
		msg += " " + e.Module
	}

	if e.Method != "" {
		msg += " " + e.Method
	}

	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}
