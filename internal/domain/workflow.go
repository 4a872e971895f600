package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"
	"tracehook.dev/pkg/tracehook/internal/adapter"
	"tracehook.dev/pkg/tracehook/internal/controller"
	m "tracehook.dev/pkg/tracehook/internal/model"
	"tracehook.dev/pkg/tracehook/internal/module"
	"tracehook.dev/pkg/tracehook/internal/vm"
	"tracehook.dev/pkg/tracehook/pkg"
)

const tracesDir = "traces"

// PackageArgs names a package archive.
type PackageArgs struct {
	Package m.Path
}

// HooksArgs names the hook selection file and, optionally, the package the
// hooks are resolved against.
type HooksArgs struct {
	Package   m.Path
	HooksFile m.Path
}

// HookArgs adds or removes hooks by display key.
type HookArgs struct {
	HooksArgs
	Keys          []string
	LogName       bool
	LogParameters bool
	LogReturn     bool
}

// PatchArgs starts a patch run.
type PatchArgs struct {
	HooksArgs
	// Device receives the staged package when set.
	Device string
}

// DiffArgs previews the rewrite of one method.
type DiffArgs struct {
	HooksArgs
	Method string
}

// EmulateArgs runs one method of the package in the emulator.
type EmulateArgs struct {
	HooksArgs
	Method string
	Args   []string
	// StepLimit bounds executed instructions. Zero keeps the emulator default.
	StepLimit int
}

// DemoArgs writes the demo package.
type DemoArgs struct {
	Dest m.Path
}

// Workflow is the facade the CLI commands call into.
type Workflow interface {
	Inspect(ctx context.Context, args PackageArgs) error
	Candidates(ctx context.Context, args HooksArgs) error
	AddHooks(ctx context.Context, args HookArgs) error
	RemoveHooks(ctx context.Context, args HookArgs) error
	ListHooks(ctx context.Context, args HooksArgs) error
	ClearHooks(ctx context.Context, args HooksArgs) error
	Patch(ctx context.Context, args PatchArgs) error
	Diff(ctx context.Context, args DiffArgs) error
	Emulate(ctx context.Context, args EmulateArgs) error
	Clean(ctx context.Context, args PackageArgs) error
	Report(ctx context.Context, args PackageArgs) error
	Demo(ctx context.Context, args DemoArgs) error
}

// WorkflowDeps are the services a Workflow is built from.
type WorkflowDeps struct {
	Model    PackageModel
	Engine   Engine
	Pipeline Pipeline
	Hooks    adapter.HookStore
	Reports  adapter.ReportStore
	Archive  adapter.ArchiveAdapter
	UI       controller.UI
}

type workflow struct {
	model    PackageModel
	engine   Engine
	pipeline Pipeline
	hooks    adapter.HookStore
	reports  adapter.ReportStore
	archive  adapter.ArchiveAdapter
	ui       controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(deps WorkflowDeps) Workflow {
	return &workflow{
		model:    deps.Model,
		engine:   deps.Engine,
		pipeline: deps.Pipeline,
		hooks:    deps.Hooks,
		reports:  deps.Reports,
		archive:  deps.Archive,
		ui:       deps.UI,
	}
}

func (w *workflow) load(ctx context.Context, path m.Path) (*Package, error) {
	pkg, err := w.model.Open(path)
	if err != nil {
		return nil, err
	}

	if err := w.model.Parse(ctx, pkg); err != nil {
		_ = pkg.Close()
		return nil, err
	}

	return pkg, nil
}

func (w *workflow) loadHooks(path m.Path) (*HookSet, error) {
	hooks, err := w.hooks.LoadHooks(path)
	if err != nil {
		slog.Error("Failed to load hooks", "path", path, "error", err)
		return nil, fmt.Errorf("load hooks: %w", err)
	}

	return NewHookSet(hooks...), nil
}

func (w *workflow) saveHooks(path m.Path, set *HookSet) error {
	if err := w.hooks.SaveHooks(path, set.All()); err != nil {
		slog.Error("Failed to save hooks", "path", path, "error", err)
		return fmt.Errorf("save hooks: %w", err)
	}

	return nil
}

func (w *workflow) Inspect(ctx context.Context, args PackageArgs) error {
	pkg, err := w.load(ctx, args.Package)
	if err != nil {
		return err
	}
	defer pkg.Close()

	w.ui.DisplayPackage(ctx, pkg.Path(), pkg.Modules())

	return nil
}

func (w *workflow) Candidates(ctx context.Context, args HooksArgs) error {
	pkg, err := w.load(ctx, args.Package)
	if err != nil {
		return err
	}
	defer pkg.Close()

	set, err := w.loadHooks(args.HooksFile)
	if err != nil {
		return err
	}

	w.ui.DisplayCandidates(ctx, pkg.EnumerateCandidates(), set.All())

	return nil
}

func (w *workflow) AddHooks(ctx context.Context, args HookArgs) error {
	pkg, err := w.load(ctx, args.Package)
	if err != nil {
		return err
	}
	defer pkg.Close()

	set, err := w.loadHooks(args.HooksFile)
	if err != nil {
		return err
	}

	for _, key := range args.Keys {
		id, err := pkg.Resolve(key)
		if err != nil {
			return err
		}

		h := set.Toggle(id, args.LogName, args.LogParameters, args.LogReturn)
		slog.Debug("hook set", "method", id, "flags", h.Flags())
	}

	if err := w.saveHooks(args.HooksFile, set); err != nil {
		return err
	}

	w.ui.DisplayHooks(ctx, set.All())

	return nil
}

func (w *workflow) RemoveHooks(ctx context.Context, args HookArgs) error {
	set, err := w.loadHooks(args.HooksFile)
	if err != nil {
		return err
	}

	for _, key := range args.Keys {
		h, err := set.Find(key)
		if err != nil {
			return err
		}

		if err := set.Remove(h.Method); err != nil {
			return err
		}
	}

	if err := w.saveHooks(args.HooksFile, set); err != nil {
		return err
	}

	w.ui.DisplayHooks(ctx, set.All())

	return nil
}

func (w *workflow) ListHooks(ctx context.Context, args HooksArgs) error {
	set, err := w.loadHooks(args.HooksFile)
	if err != nil {
		return err
	}

	w.ui.DisplayHooks(ctx, set.All())

	return nil
}

func (w *workflow) ClearHooks(ctx context.Context, args HooksArgs) error {
	set := NewHookSet()

	if err := w.saveHooks(args.HooksFile, set); err != nil {
		return err
	}

	w.ui.DisplayHooks(ctx, set.All())

	return nil
}

// Patch runs the pipeline and streams its events to the UI. Interrupting
// the UI cancels the run.
func (w *workflow) Patch(ctx context.Context, args PatchArgs) error {
	pkg, err := w.load(ctx, args.Package)
	if err != nil {
		return err
	}
	defer pkg.Close()

	set, err := w.loadHooks(args.HooksFile)
	if err != nil {
		return err
	}

	events, unsubscribe := w.pipeline.Subscribe()
	defer unsubscribe()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.ui.Start(ctx, controller.WithPatchMode(), controller.WithInterrupt(cancel)); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.ui.Close(ctx)

	run, err := w.pipeline.Start(runCtx, Request{Package: pkg, Hooks: set, Device: args.Device})
	if err != nil {
		slog.Error("Failed to start patch run", "package", args.Package, "error", err)
		return err
	}

	var group errgroup.Group

	group.Go(func() error {
		w.forwardEvents(ctx, run, events)
		return nil
	})

	result, runErr := run.Wait(ctx)
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	w.ui.DisplayReport(ctx, result.Report)

	if result.Deploy != nil {
		select {
		case res := <-result.Deploy:
			w.ui.DisplayDeploy(ctx, res.Device, res.Success, res.Detail)

			if !res.Success && runErr == nil {
				runErr = fmt.Errorf("deploy to %s failed: %s", res.Device, res.Detail)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return runErr
}

// forwardEvents relays events of run until it finishes, then drains what is
// still buffered.
func (w *workflow) forwardEvents(ctx context.Context, run *Run, events <-chan m.Event) {
	for {
		select {
		case ev := <-events:
			w.showEvent(ctx, run, ev)
		case <-run.Done():
			for {
				select {
				case ev := <-events:
					w.showEvent(ctx, run, ev)
				default:
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (w *workflow) showEvent(ctx context.Context, run *Run, ev m.Event) {
	if ev.RunID == run.ID() {
		w.ui.DisplayEvent(ctx, ev)
	}
}

// Diff shows the disassembly of one method before and after instrumentation.
// Methods without a stored hook are previewed with every flag on.
func (w *workflow) Diff(ctx context.Context, args DiffArgs) error {
	pkg, err := w.load(ctx, args.Package)
	if err != nil {
		return err
	}
	defer pkg.Close()

	set, err := w.loadHooks(args.HooksFile)
	if err != nil {
		return err
	}

	id, err := pkg.Resolve(args.Method)
	if err != nil {
		return err
	}

	hook, ok := set.Get(id)
	if !ok || hook.IsNoop() {
		hook = m.HookDescriptor{Method: id, LogName: true, LogParameters: true, LogReturn: true}
	}

	mod, err := pkg.ReadModule(id.Module)
	if err != nil {
		return err
	}

	md, err := lookupMethod(mod, id)
	if err != nil {
		return err
	}

	before, err := module.DisassembleMethod(mod, md)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptModule, err)
	}

	res, err := w.engine.Instrument(ctx, id.Module, mod, []m.HookDescriptor{hook})
	if err != nil {
		return err
	}

	if len(res.Outcomes) == 1 && res.Outcomes[0].Status != m.OutcomeInstrumented {
		o := res.Outcomes[0]
		w.ui.DisplayDiff(ctx, fmt.Sprintf("%s (%s: %s)", id, o.Status, o.Reason), "")

		return nil
	}

	after, err := module.DisassembleMethod(mod, md)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptModule, err)
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "original",
		ToFile:   "instrumented",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("diff %s: %w", id, err)
	}

	w.ui.DisplayDiff(ctx, id.String(), diff)

	return nil
}

// Emulate instruments the method's module with the stored hooks and runs
// the method, showing the trace events it emits. Events are also spilled to
// <package-root>/traces.
func (w *workflow) Emulate(ctx context.Context, args EmulateArgs) error {
	p, err := w.load(ctx, args.Package)
	if err != nil {
		return err
	}
	defer p.Close()

	set, err := w.loadHooks(args.HooksFile)
	if err != nil {
		return err
	}

	id, err := p.Resolve(args.Method)
	if err != nil {
		return err
	}

	mod, err := p.ReadModule(id.Module)
	if err != nil {
		return err
	}

	if _, err := w.engine.Instrument(ctx, id.Module, mod, set.All()); err != nil {
		return err
	}

	md, err := lookupMethod(mod, id)
	if err != nil {
		return err
	}

	values, err := emulatorArgs(mod, md, id.Type, args.Args)
	if err != nil {
		return err
	}

	spill, err := pkg.NewFileSpillIn[vm.TraceEvent](filepath.Join(string(p.Root()), tracesDir), id.Name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer spill.Close()

	recorder := vm.NewSpillRecorder(spill)

	opts := []vm.Option{vm.WithTracer(recorder)}
	if args.StepLimit > 0 {
		opts = append(opts, vm.WithStepLimit(args.StepLimit))
	}

	ret, callErr := vm.New(mod, opts...).Call(md, values...)

	var result string

	var thrown *vm.ThrownError

	switch {
	case errors.As(callErr, &thrown):
		result = "throws " + thrown.Exception.Type
	case callErr != nil:
		return fmt.Errorf("emulate %s: %w", id, callErr)
	case md.Sig.Return.IsVoid():
		result = "void"
	default:
		result = vm.FormatValue(ret)
	}

	if err := recorder.Err(); err != nil {
		slog.Warn("Failed to spill trace events", "path", spill.Path(), "error", err)
	}

	w.ui.DisplayTrace(ctx, id.String(), recorder.Events(), result)

	return nil
}

func (w *workflow) Clean(_ context.Context, args PackageArgs) error {
	pkg, err := w.model.Open(args.Package)
	if err != nil {
		return err
	}
	defer pkg.Close()

	return w.pipeline.Cleanup(pkg)
}

// Report shows the report saved by the last patch run of a package. The
// package itself does not need to exist anymore.
func (w *workflow) Report(ctx context.Context, args PackageArgs) error {
	path := ReportPath(args.Package)

	report, err := w.reports.LoadReport(path)
	if err != nil {
		slog.Error("Failed to load run report", "path", path, "error", err)
		return fmt.Errorf("load report: %w", err)
	}

	w.ui.DisplayReport(ctx, report)

	return nil
}

func (w *workflow) Demo(_ context.Context, args DemoArgs) error {
	if err := WriteDemoPackage(w.archive, args.Dest); err != nil {
		slog.Error("Failed to write demo package", "dest", args.Dest, "error", err)
		return err
	}

	slog.Info("wrote demo package", "dest", args.Dest)

	return nil
}

func lookupMethod(mod *module.Module, id m.MethodIdentity) (*module.MethodDef, error) {
	for _, t := range mod.Types {
		typeName := mod.FullName(t)
		if typeName != id.Type {
			continue
		}

		for _, md := range t.Methods {
			if identityOf(id.Module, mod, typeName, md) == id {
				return md, nil
			}
		}
	}

	return nil, fmt.Errorf("method %s: %w", id, ErrNotFound)
}

// emulatorArgs converts textual arguments to emulator values. Instance
// methods receive a fresh object of the owning type as this.
func emulatorArgs(mod *module.Module, md *module.MethodDef, owner string, raw []string) ([]vm.Value, error) {
	if len(raw) != len(md.Sig.Params) {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", mod.String(md.Name), len(md.Sig.Params), len(raw))
	}

	var values []vm.Value

	if md.Flags&module.MethodStatic == 0 {
		values = append(values, &vm.Object{Type: owner, Fields: map[string]vm.Value{}})
	}

	for i, param := range md.Sig.Params {
		v, err := parseValue(param, raw[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, param.Format(mod), err)
		}

		values = append(values, v)
	}

	return values, nil
}

func parseValue(sig module.TypeSig, s string) (vm.Value, error) {
	switch sig.Elem {
	case module.ElemBool:
		b, err := strconv.ParseBool(s)
		return b, err
	case module.ElemI4:
		n, err := strconv.ParseInt(s, 10, 32)
		return int32(n), err
	case module.ElemI8:
		n, err := strconv.ParseInt(strings.TrimSuffix(s, "L"), 10, 64)
		return n, err
	case module.ElemR8:
		f, err := strconv.ParseFloat(s, 64)
		return f, err
	case module.ElemString:
		if s == "null" {
			return nil, nil
		}

		return s, nil
	default:
		if s == "null" {
			return nil, nil
		}

		return nil, errors.New("only null can be passed for this type")
	}
}
