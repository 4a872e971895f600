package model

import "time"

// OutcomeStatus is the result of applying hooks to one method.
type OutcomeStatus string

const (
	// OutcomeInstrumented means trace calls were inserted.
	OutcomeInstrumented OutcomeStatus = "instrumented"
	// OutcomeSkipped means the method could not be rewritten and was left untouched.
	OutcomeSkipped OutcomeStatus = "skipped"
	// OutcomeUnmodified means the method was not hooked or the hook was a no-op.
	OutcomeUnmodified OutcomeStatus = "unmodified"
)

// Outcome reports what happened to one method during a run.
type Outcome struct {
	Method MethodIdentity `yaml:"method"`
	Status OutcomeStatus  `yaml:"status"`
	Reason string         `yaml:"reason,omitempty"`
}

// PipelineState is a state of the patch pipeline.
type PipelineState string

const (
	// StateIdle is the initial state and the state re-entered after cleanup.
	StateIdle PipelineState = "idle"
	// StateUnpacking reads and decodes module entries.
	StateUnpacking PipelineState = "unpacking"
	// StateInstrumenting rewrites hooked methods.
	StateInstrumenting PipelineState = "instrumenting"
	// StateRepacking writes the staging artifact.
	StateRepacking PipelineState = "repacking"
	// StateReady means the artifact exists at its staging path.
	StateReady PipelineState = "ready"
	// StateFailed means the run stopped with an error.
	StateFailed PipelineState = "failed"
)

// Terminal reports whether s ends a run.
func (s PipelineState) Terminal() bool {
	return s == StateReady || s == StateFailed
}

// Event is published by the pipeline. Outcome is set for per-method events.
type Event struct {
	RunID   string
	State   PipelineState
	Module  string
	Method  MethodIdentity
	Outcome *Outcome
	Err     error
}

// RunReport is the persisted summary of a run.
type RunReport struct {
	RunID      string        `yaml:"run_id"`
	Package    Path          `yaml:"package"`
	Artifact   Path          `yaml:"artifact,omitempty"`
	Size       int64         `yaml:"size,omitempty"`
	SHA256     string        `yaml:"sha256,omitempty"`
	State      PipelineState `yaml:"state"`
	Error      string        `yaml:"error,omitempty"`
	StartedAt  time.Time     `yaml:"started_at"`
	FinishedAt time.Time     `yaml:"finished_at"`
	Outcomes   []Outcome     `yaml:"outcomes"`
}

// Count returns how many outcomes have status s.
func (r RunReport) Count(s OutcomeStatus) int {
	n := 0

	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}

	return n
}
