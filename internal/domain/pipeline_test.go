package domain_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"tracehook.dev/pkg/tracehook/internal/adapter"
	adaptermocks "tracehook.dev/pkg/tracehook/internal/adapter/mocks"
	"tracehook.dev/pkg/tracehook/internal/domain"
	domainmocks "tracehook.dev/pkg/tracehook/internal/domain/mocks"
	m "tracehook.dev/pkg/tracehook/internal/model"
	"tracehook.dev/pkg/tracehook/internal/module"
	"tracehook.dev/pkg/tracehook/internal/vm"
)

const waitTimeout = 5 * time.Second

func newPipeline(repack domain.Repackager, deployer adapter.Deployer) domain.Pipeline {
	if repack == nil {
		repack = domain.NewRepackager(adapter.NewZipArchiveAdapter(), domain.RepackOptions{StripSignatures: true})
	}

	return domain.NewPipeline(
		adapter.NewLocalStagingFSAdapter(),
		domain.NewEngine(),
		repack,
		adapter.NewYAMLReportStore(),
		deployer,
		domain.PipelineOptions{Threads: 2},
	)
}

func runToEnd(t *testing.T, p domain.Pipeline, req domain.Request) (domain.Result, error) {
	t.Helper()

	run, err := p.Start(context.Background(), req)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()

	return run.Wait(ctx)
}

func TestPipeline_ProducesReadyArtifact(t *testing.T) {
	// Arrange
	pkg := openDemo(t)
	p := newPipeline(nil, nil)
	add := appMethod(calculator, "Add", "(int32,int32)")
	hooks := domain.NewHookSet(fullHook(add), fullHook(libMethod("Twice", "(int64)")))

	// Act
	result, err := runToEnd(t, p, domain.Request{Package: pkg, Hooks: hooks})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, m.StateReady, result.State)
	assert.Equal(t, m.StateReady, p.State())
	assert.Equal(t, pkg.Artifact(), result.Artifact)
	assert.FileExists(t, string(result.Artifact))
	assert.Nil(t, result.Deploy)
	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, 2, result.Report.Count(m.OutcomeInstrumented))
	assert.Positive(t, result.Report.Size)
	assert.Len(t, result.Report.SHA256, 64)

	out := openArchive(t, result.Artifact)
	data, err := out.Read(domain.DemoAppEntry)
	require.NoError(t, err)

	mod, err := module.Decode(data)
	require.NoError(t, err)

	rec := vm.NewRecorder()
	got, err := vm.New(mod, vm.WithTracer(rec)).Invoke("Demo.App.Calculator::Add", int32(20), int32(22))
	require.NoError(t, err)
	assert.Equal(t, int32(42), got)
	assert.Len(t, rec.Events(), 2)

	_, err = out.Read("META-INF/CERT.SF")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPipeline_UnchangedModulesKeepTheirBytes(t *testing.T) {
	pkg := openDemo(t)
	hooks := domain.NewHookSet(fullHook(libMethod("IsEven", "(int32)")))

	result, err := runToEnd(t, newPipeline(nil, nil), domain.Request{Package: pkg, Hooks: hooks})
	require.NoError(t, err)

	want, err := pkg.Archive().Read(domain.DemoAppEntry)
	require.NoError(t, err)

	got, err := openArchive(t, result.Artifact).Read(domain.DemoAppEntry)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPipeline_SavesReport(t *testing.T) {
	pkg := openDemo(t)
	missing := m.MethodIdentity{Module: "assemblies/Missing.dll", Type: "X", Name: "Y", Signature: "()"}
	hooks := domain.NewHookSet(fullHook(appMethod(worker, "Retry", "(int32)")), fullHook(missing))

	result, err := runToEnd(t, newPipeline(nil, nil), domain.Request{Package: pkg, Hooks: hooks})
	require.NoError(t, err)

	report, err := adapter.NewYAMLReportStore().LoadReport(pkg.ReportPath())
	require.NoError(t, err)

	assert.Equal(t, result.RunID, report.RunID)
	assert.Equal(t, m.StateReady, report.State)
	assert.Equal(t, pkg.Path(), report.Package)
	assert.Equal(t, 2, report.Count(m.OutcomeSkipped))
	assert.Equal(t, m.Outcome{Method: missing, Status: m.OutcomeSkipped, Reason: domain.ReasonModuleNotFound}, report.Outcomes[1])
	assert.False(t, report.FinishedAt.Before(report.StartedAt))
}

func TestPipeline_RejectsUnparsedPackage(t *testing.T) {
	model := domain.NewPackageModel(adapter.NewZipArchiveAdapter(), adapter.NewLocalStagingFSAdapter(), domain.ModelOptions{})

	pkg, err := model.Open(writeDemo(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkg.Close() })

	_, err = newPipeline(nil, nil).Start(context.Background(), domain.Request{Package: pkg})
	require.ErrorIs(t, err, domain.ErrNotParsed)

	_, err = newPipeline(nil, nil).Start(context.Background(), domain.Request{})
	require.ErrorIs(t, err, domain.ErrNotParsed)
}

func TestPipeline_Busy(t *testing.T) {
	// Arrange
	pkg := openDemo(t)
	release := make(chan struct{})
	entered := make(chan struct{})

	repack := domainmocks.NewMockRepackager(t)
	repack.EXPECT().Repack(mock.Anything, mock.Anything, mock.Anything, pkg.Artifact()).
		RunAndReturn(func(context.Context, adapter.ArchiveReader, map[string][]byte, m.Path) error {
			close(entered)
			<-release

			return nil
		}).Once()

	p := newPipeline(repack, nil)

	run, err := p.Start(context.Background(), domain.Request{Package: pkg})
	require.NoError(t, err)
	<-entered

	// Act
	_, busyErr := p.Start(context.Background(), domain.Request{Package: pkg})
	cleanupErr := p.Cleanup(pkg)
	state := p.State()

	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()

	_, err = run.Wait(ctx)

	// Assert
	require.ErrorIs(t, busyErr, domain.ErrPipelineBusy)
	require.ErrorIs(t, cleanupErr, domain.ErrPipelineBusy)
	assert.Equal(t, m.StateRepacking, state)
	require.NoError(t, err)
}

func TestPipeline_CancelledBeforeStart(t *testing.T) {
	pkg := openDemo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newPipeline(nil, nil)

	run, err := p.Start(ctx, domain.Request{Package: pkg, Hooks: domain.NewHookSet(fullHook(appMethod(calculator, "Add", "(int32,int32)")))})
	require.NoError(t, err)

	select {
	case <-run.Done():
	case <-time.After(waitTimeout):
		t.Fatal("run did not finish")
	}

	result, err := run.Wait(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsCancelled(err))
	assert.Equal(t, m.StateFailed, result.State)
	assert.Equal(t, m.StateFailed, p.State())

	var perr *domain.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, m.StateUnpacking, perr.Stage)
	assert.NoDirExists(t, string(pkg.ArtifactDir()))
}

func TestPipeline_RepackFailureRemovesArtifact(t *testing.T) {
	// Arrange
	pkg := openDemo(t)

	repack := domainmocks.NewMockRepackager(t)
	repack.EXPECT().Repack(mock.Anything, mock.Anything, mock.Anything, pkg.Artifact()).
		RunAndReturn(func(_ context.Context, _ adapter.ArchiveReader, modules map[string][]byte, dest m.Path) error {
			assert.Contains(t, modules, domain.DemoAppEntry)
			assert.NoError(t, os.MkdirAll(filepath.Dir(string(dest)), 0o750))
			assert.NoError(t, os.WriteFile(string(dest), []byte("partial"), 0o600))

			return errors.Join(domain.ErrIO, errors.New("disk full"))
		})

	hooks := domain.NewHookSet(fullHook(appMethod(calculator, "Sign", "(int32)")))

	// Act
	result, err := runToEnd(t, newPipeline(repack, nil), domain.Request{Package: pkg, Hooks: hooks})

	// Assert
	require.ErrorIs(t, err, domain.ErrIO)
	assert.Equal(t, m.StateFailed, result.State)
	assert.Empty(t, result.Artifact)
	assert.Len(t, result.Outcomes, 1)
	assert.NoDirExists(t, string(pkg.ArtifactDir()))

	report, loadErr := adapter.NewYAMLReportStore().LoadReport(pkg.ReportPath())
	require.NoError(t, loadErr)
	assert.Equal(t, m.StateFailed, report.State)
	assert.Contains(t, report.Error, "disk full")
}

func TestPipeline_PublishesStateTransitions(t *testing.T) {
	// Arrange
	pkg := openDemo(t)
	p := newPipeline(nil, nil)
	events, unsubscribe := p.Subscribe()
	defer unsubscribe()

	add := appMethod(calculator, "Add", "(int32,int32)")

	// Act
	result, err := runToEnd(t, p, domain.Request{Package: pkg, Hooks: domain.NewHookSet(fullHook(add))})
	require.NoError(t, err)

	// Assert
	var states []m.PipelineState
	var outcomes []m.Outcome

	for ev := range events {
		assert.Equal(t, result.RunID, ev.RunID)

		if ev.Outcome != nil {
			outcomes = append(outcomes, *ev.Outcome)
			continue
		}

		states = append(states, ev.State)

		if ev.State.Terminal() {
			break
		}
	}

	assert.Equal(t, []m.PipelineState{m.StateUnpacking, m.StateInstrumenting, m.StateRepacking, m.StateReady}, states)
	assert.Equal(t, []m.Outcome{{Method: add, Status: m.OutcomeInstrumented}}, outcomes)
}

func TestPipeline_Deploys(t *testing.T) {
	// Arrange
	pkg := openDemo(t)

	results := make(chan adapter.DeployResult, 1)
	results <- adapter.DeployResult{Device: "emulator-5554", Success: true, Detail: "Success"}
	close(results)

	deployer := adaptermocks.NewMockDeployer(t)
	deployer.EXPECT().Deploy(mock.Anything, pkg.Artifact(), "emulator-5554").Return(results)

	// Act
	result, err := runToEnd(t, newPipeline(nil, deployer), domain.Request{Package: pkg, Device: "emulator-5554"})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result.Deploy)

	got := <-result.Deploy
	assert.True(t, got.Success)
	assert.Equal(t, "emulator-5554", got.Device)
}

func TestPipeline_Cleanup(t *testing.T) {
	pkg := openDemo(t)
	p := newPipeline(nil, nil)

	_, err := runToEnd(t, p, domain.Request{Package: pkg})
	require.NoError(t, err)
	require.DirExists(t, string(pkg.Root()))

	require.NoError(t, p.Cleanup(pkg))

	assert.NoDirExists(t, string(pkg.Root()))
	assert.Equal(t, m.StateIdle, p.State())
}

func TestPipeline_RunsAgainAfterFinish(t *testing.T) {
	pkg := openDemo(t)
	p := newPipeline(nil, nil)

	first, err := runToEnd(t, p, domain.Request{Package: pkg})
	require.NoError(t, err)

	second, err := runToEnd(t, p, domain.Request{Package: pkg})
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.FileExists(t, string(second.Artifact))
}

func TestPipeline_StartFailsWhenArtifactCannotBeCleared(t *testing.T) {
	// Arrange
	pkg := openDemo(t)
	fs := adaptermocks.NewMockStagingFSAdapter(t)
	fs.EXPECT().RemoveAll(pkg.ArtifactDir()).Return(errors.New("permission denied")).Once()

	p := domain.NewPipeline(fs, domain.NewEngine(), domainmocks.NewMockRepackager(t), nil, nil, domain.PipelineOptions{})

	// Act
	run, err := p.Start(context.Background(), domain.Request{Package: pkg})

	// Assert
	require.ErrorIs(t, err, domain.ErrIO)
	require.ErrorContains(t, err, "permission denied")
	assert.Nil(t, run)
	assert.Equal(t, m.StateIdle, p.State())
}

func TestPipeline_EngineErrorFailsRun(t *testing.T) {
	// Arrange
	pkg := openDemo(t)
	engine := domainmocks.NewMockEngine(t)
	engine.EXPECT().Instrument(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ModuleResult{}, errors.New("engine exploded"))

	p := domain.NewPipeline(
		adapter.NewLocalStagingFSAdapter(),
		engine,
		domainmocks.NewMockRepackager(t),
		adapter.NewYAMLReportStore(),
		nil,
		domain.PipelineOptions{Threads: 1},
	)

	// Act
	result, err := runToEnd(t, p, domain.Request{Package: pkg, Hooks: domain.NewHookSet(fullHook(appMethod(calculator, "Add", "(int32,int32)")))})

	// Assert
	var pipeErr *domain.PipelineError
	require.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, m.StateInstrumenting, pipeErr.Stage)
	assert.ErrorContains(t, err, "engine exploded")
	assert.Equal(t, m.StateFailed, result.State)
	assert.Equal(t, m.StateFailed, p.State())
	assert.NoFileExists(t, string(pkg.Artifact()))

	report, loadErr := adapter.NewYAMLReportStore().LoadReport(pkg.ReportPath())
	require.NoError(t, loadErr)
	assert.Equal(t, m.StateFailed, report.State)
	assert.Contains(t, report.Error, "engine exploded")
}

func TestPipeline_ReportStoreFailureKeepsRunReady(t *testing.T) {
	// Arrange
	pkg := openDemo(t)
	reports := adaptermocks.NewMockReportStore(t)

	var saved m.RunReport

	reports.EXPECT().SaveReport(pkg.ReportPath(), mock.Anything).
		Run(func(_ m.Path, r m.RunReport) { saved = r }).
		Return(errors.New("disk full")).
		Once()

	p := domain.NewPipeline(
		adapter.NewLocalStagingFSAdapter(),
		domain.NewEngine(),
		domain.NewRepackager(adapter.NewZipArchiveAdapter(), domain.RepackOptions{}),
		reports,
		nil,
		domain.PipelineOptions{},
	)

	// Act
	result, err := runToEnd(t, p, domain.Request{Package: pkg, Hooks: domain.NewHookSet(fullHook(appMethod(calculator, "Add", "(int32,int32)")))})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, m.StateReady, result.State)
	assert.Equal(t, result.RunID, saved.RunID)
	assert.Equal(t, result.Report.SHA256, saved.SHA256)
	assert.FileExists(t, string(result.Artifact))
}
