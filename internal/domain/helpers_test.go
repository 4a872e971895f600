package domain_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"tracehook.dev/pkg/tracehook/internal/adapter"
	"tracehook.dev/pkg/tracehook/internal/domain"
	m "tracehook.dev/pkg/tracehook/internal/model"
	"tracehook.dev/pkg/tracehook/internal/module"
)

const (
	calculator = "Demo.App.Calculator"
	worker     = "Demo.App.Worker"
	util       = "Demo.Lib.Util"
)

func appMethod(typeName, name, sig string) m.MethodIdentity {
	return m.MethodIdentity{Module: domain.DemoAppEntry, Type: typeName, Name: name, Signature: sig}
}

func libMethod(name, sig string) m.MethodIdentity {
	return m.MethodIdentity{Module: domain.DemoLibEntry, Type: util, Name: name, Signature: sig}
}

func fullHook(id m.MethodIdentity) m.HookDescriptor {
	return m.HookDescriptor{Method: id, LogName: true, LogParameters: true, LogReturn: true}
}

// writeDemo writes the demo package into a fresh directory and returns its path.
func writeDemo(t *testing.T) m.Path {
	t.Helper()

	path := m.Path(filepath.Join(t.TempDir(), "demo.apk"))
	require.NoError(t, domain.WriteDemoPackage(adapter.NewZipArchiveAdapter(), path))

	return path
}

// openDemo writes, opens and parses the demo package.
func openDemo(t *testing.T) *domain.Package {
	t.Helper()

	model := domain.NewPackageModel(adapter.NewZipArchiveAdapter(), adapter.NewLocalStagingFSAdapter(), domain.ModelOptions{})

	pkg, err := model.Open(writeDemo(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkg.Close() })

	require.NoError(t, model.Parse(context.Background(), pkg))

	return pkg
}

// demoApp decodes a fresh copy of the demo app module.
func demoApp(t *testing.T) *module.Module {
	t.Helper()

	data, err := domain.BuildDemoApp()
	require.NoError(t, err)

	mod, err := module.Decode(data)
	require.NoError(t, err)

	return mod
}

func demoLib(t *testing.T) *module.Module {
	t.Helper()

	data, err := domain.BuildDemoLib()
	require.NoError(t, err)

	mod, err := module.Decode(data)
	require.NoError(t, err)

	return mod
}
