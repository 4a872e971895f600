package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"tracehook.dev/pkg/tracehook/internal/adapter"
	m "tracehook.dev/pkg/tracehook/internal/model"
	"tracehook.dev/pkg/tracehook/internal/module"
)

// Request starts a patch run.
type Request struct {
	Package *Package
	Hooks   *HookSet
	// Device, when set, receives the staged package once the run is Ready.
	Device string
}

// Result is what a finished run produced. On failure Outcomes holds the
// methods processed before the error.
type Result struct {
	RunID    string
	State    m.PipelineState
	Artifact m.Path
	Outcomes []m.Outcome
	Report   m.RunReport
	// Deploy is set when the artifact was handed to a device.
	Deploy <-chan adapter.DeployResult
}

// Run is an in-flight or finished patch run.
type Run struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
	result Result
	err    error
}

// ID returns the run id.
func (r *Run) ID() string { return r.id }

// Done is closed when the run reaches Ready or Failed.
func (r *Run) Done() <-chan struct{} { return r.done }

// Cancel requests the run to stop at the next module boundary.
func (r *Run) Cancel() { r.cancel() }

// Wait blocks until the run finishes or ctx is done.
func (r *Run) Wait(ctx context.Context) (Result, error) {
	select {
	case <-r.done:
		return r.result, r.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Pipeline runs Unpacking, Instrumenting and Repacking in the background,
// one run at a time.
type Pipeline interface {
	Start(ctx context.Context, req Request) (*Run, error)
	State() m.PipelineState
	Subscribe() (<-chan m.Event, func())
	// Cleanup removes the staging root of pkg.
	Cleanup(pkg *Package) error
}

// PipelineOptions configures a Pipeline.
type PipelineOptions struct {
	// Threads bounds how many modules are instrumented at once. Zero means unbounded.
	Threads int
}

type pipeline struct {
	fs       adapter.StagingFSAdapter
	engine   Engine
	repack   Repackager
	reports  adapter.ReportStore
	deployer adapter.Deployer
	opts     PipelineOptions
	events   *broadcaster
	now      func() time.Time

	mu     sync.Mutex
	state  m.PipelineState
	active *Run
}

// NewPipeline constructs a Pipeline. reports and deployer may be nil.
func NewPipeline(
	fs adapter.StagingFSAdapter,
	engine Engine,
	repack Repackager,
	reports adapter.ReportStore,
	deployer adapter.Deployer,
	opts PipelineOptions,
) Pipeline {
	return &pipeline{
		fs:       fs,
		engine:   engine,
		repack:   repack,
		reports:  reports,
		deployer: deployer,
		opts:     opts,
		events:   newBroadcaster(),
		now:      time.Now,
		state:    m.StateIdle,
	}
}

func (p *pipeline) State() m.PipelineState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

func (p *pipeline) Subscribe() (<-chan m.Event, func()) {
	return p.events.subscribe()
}

func (p *pipeline) busy() bool {
	if p.active == nil {
		return false
	}

	select {
	case <-p.active.done:
		return false
	default:
		return true
	}
}

func (p *pipeline) Start(ctx context.Context, req Request) (*Run, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.busy() {
		return nil, ErrPipelineBusy
	}

	if req.Package == nil || !req.Package.Parsed() {
		return nil, ErrNotParsed
	}

	if err := p.fs.RemoveAll(req.Package.ArtifactDir()); err != nil {
		slog.Error("Failed to remove previous artifact", "dir", req.Package.ArtifactDir(), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	hooks := NewHookSet()
	if req.Hooks != nil {
		hooks = req.Hooks.Snapshot()
	}

	runCtx, cancel := context.WithCancel(ctx)
	run := &Run{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	p.active = run
	p.state = m.StateIdle

	go p.execute(runCtx, ctx, run, req, hooks.All())

	return run, nil
}

func (p *pipeline) Cleanup(pkg *Package) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.busy() {
		return ErrPipelineBusy
	}

	if err := p.fs.RemoveAll(pkg.Root()); err != nil {
		slog.Error("Failed to remove staging root", "root", pkg.Root(), "error", err)
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	p.state = m.StateIdle
	p.active = nil

	return nil
}

type runState struct {
	run      *Run
	pkg      *Package
	outcomes []m.Outcome
	started  time.Time
}

func (p *pipeline) enter(rs *runState, state m.PipelineState) {
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()

	p.events.publish(m.Event{RunID: rs.run.id, State: state})
}

func (p *pipeline) execute(ctx, parent context.Context, run *Run, req Request, hooks []m.HookDescriptor) {
	defer run.cancel()

	rs := &runState{run: run, pkg: req.Package, started: p.now()}

	p.enter(rs, m.StateUnpacking)

	mods, err := p.unpack(ctx, rs)
	if err != nil {
		p.fail(rs, err)
		return
	}

	p.enter(rs, m.StateInstrumenting)

	results, err := p.instrument(ctx, rs, mods, hooks)
	if err != nil {
		p.fail(rs, err)
		return
	}

	p.enter(rs, m.StateRepacking)

	if err := p.repackage(ctx, rs, results); err != nil {
		p.fail(rs, err)
		return
	}

	p.ready(parent, rs, req.Device)
}

func (p *pipeline) unpack(ctx context.Context, rs *runState) ([]*module.Module, error) {
	entries := rs.pkg.Entries()
	mods := make([]*module.Module, len(entries))

	for i, entry := range entries {
		if ctx.Err() != nil {
			return nil, &PipelineError{Stage: m.StateUnpacking, Err: cancelled(ctx)}
		}

		mod, err := rs.pkg.ReadModule(entry)
		if err != nil {
			return nil, &PipelineError{Stage: m.StateUnpacking, Module: entry, Err: err}
		}

		mods[i] = mod
	}

	return mods, nil
}

func (p *pipeline) instrument(ctx context.Context, rs *runState, mods []*module.Module, hooks []m.HookDescriptor) ([]ModuleResult, error) {
	entries := rs.pkg.Entries()
	results := make([]ModuleResult, len(mods))
	finished := make([]bool, len(mods))

	var group errgroup.Group
	if p.opts.Threads > 0 {
		group.SetLimit(p.opts.Threads)
	}

	for i, mod := range mods {
		group.Go(func() error {
			if ctx.Err() != nil {
				return &PipelineError{Stage: m.StateInstrumenting, Module: entries[i], Err: cancelled(ctx)}
			}

			res, err := p.engine.Instrument(ctx, entries[i], mod, hooks)
			if err != nil {
				return &PipelineError{Stage: m.StateInstrumenting, Module: entries[i], Err: err}
			}

			for _, o := range res.Outcomes {
				p.events.publish(m.Event{
					RunID:   rs.run.id,
					State:   m.StateInstrumenting,
					Module:  entries[i],
					Method:  o.Method,
					Outcome: &o,
				})
			}

			results[i] = res
			finished[i] = true

			return nil
		})
	}

	err := group.Wait()

	for i := range results {
		if finished[i] {
			rs.outcomes = append(rs.outcomes, results[i].Outcomes...)
		}
	}

	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e] = true
	}

	for _, h := range hooks {
		if !known[h.Method.Module] {
			rs.outcomes = append(rs.outcomes, m.Outcome{Method: h.Method, Status: m.OutcomeSkipped, Reason: ReasonModuleNotFound})
		}
	}

	return results, nil
}

func (p *pipeline) repackage(ctx context.Context, rs *runState, results []ModuleResult) error {
	modified := make(map[string][]byte)

	for _, res := range results {
		if res.Modified {
			modified[res.Entry] = module.Encode(res.Module)
		}
	}

	if err := p.repack.Repack(ctx, rs.pkg.Archive(), modified, rs.pkg.Artifact()); err != nil {
		if ctx.Err() != nil {
			err = cancelled(ctx)
		}

		return &PipelineError{Stage: m.StateRepacking, Err: err}
	}

	return nil
}

func (p *pipeline) ready(ctx context.Context, rs *runState, device string) {
	artifact := rs.pkg.Artifact()
	result := Result{
		RunID:    rs.run.id,
		State:    m.StateReady,
		Artifact: artifact,
		Outcomes: rs.outcomes,
	}

	report := p.report(rs, m.StateReady, nil)
	report.Artifact = artifact

	if info, err := p.fs.FileInfo(artifact); err == nil {
		report.Size = info.Size()
	}

	if sum, err := p.fs.HashFile(artifact); err == nil {
		report.SHA256 = sum
	} else {
		slog.Warn("Failed to hash artifact", "artifact", artifact, "error", err)
	}

	p.saveReport(rs, report)
	result.Report = report

	if device != "" && p.deployer != nil {
		result.Deploy = p.deployer.Deploy(ctx, artifact, device)
	}

	p.finish(rs, result, nil)
}

func (p *pipeline) fail(rs *runState, err error) {
	slog.Error("Patch run failed", "run", rs.run.id, "package", rs.pkg.Path(), "error", err)

	if rmErr := p.fs.RemoveAll(rs.pkg.ArtifactDir()); rmErr != nil {
		slog.Warn("Failed to remove staging directory", "dir", rs.pkg.ArtifactDir(), "error", rmErr)
	}

	report := p.report(rs, m.StateFailed, err)
	p.saveReport(rs, report)

	p.finish(rs, Result{
		RunID:    rs.run.id,
		State:    m.StateFailed,
		Outcomes: rs.outcomes,
		Report:   report,
	}, err)
}

func (p *pipeline) finish(rs *runState, result Result, err error) {
	rs.run.result = result
	rs.run.err = err

	p.mu.Lock()
	p.state = result.State
	p.mu.Unlock()

	p.events.publish(m.Event{RunID: rs.run.id, State: result.State, Err: err})
	close(rs.run.done)
}

func (p *pipeline) report(rs *runState, state m.PipelineState, err error) m.RunReport {
	report := m.RunReport{
		RunID:      rs.run.id,
		Package:    rs.pkg.Path(),
		State:      state,
		StartedAt:  rs.started,
		FinishedAt: p.now(),
		Outcomes:   rs.outcomes,
	}

	if err != nil {
		report.Error = err.Error()
	}

	return report
}

func (p *pipeline) saveReport(rs *runState, report m.RunReport) {
	if p.reports == nil {
		return
	}

	if err := p.reports.SaveReport(rs.pkg.ReportPath(), report); err != nil {
		slog.Warn("Failed to save run report", "path", rs.pkg.ReportPath(), "error", err)
	}
}

func cancelled(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
}

// IsCancelled reports whether err stems from a cancelled run.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
