package domain

import (
	"archive/zip"
	"fmt"
	"log/slog"
	"time"

	"tracehook.dev/pkg/tracehook/internal/adapter"
	m "tracehook.dev/pkg/tracehook/internal/model"
	"tracehook.dev/pkg/tracehook/internal/module"
)

// Entry names of the demo package.
const (
	DemoAppEntry = "assemblies/Demo.App.dll"
	DemoLibEntry = "assemblies/Demo.Lib.dll"
)

var demoTimestamp = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// BuildDemoApp returns the encoded Demo.App module: a calculator with
// several return shapes, a worker with shapes the engine refuses, an enum
// and compiler-generated helpers.
func BuildDemoApp() ([]byte, error) {
	b := module.NewBuilder("Demo.App")
	object := b.TypeRef("System", "Object")
	divideByZero := b.TypeRef("System", "DivideByZeroException")

	b.Type("", "<Module>", module.KindClass, module.TypeCompilerGenerated)

	calc := b.Type("Demo.App", "Calculator", module.KindClass, module.TypePublic).Extends(object)
	calc.Constructor().Code(func(a *module.Assembler) {
		a.Op(module.OpRet)
	})

	precision := calc.Method("get_Precision", module.MethodPublic, module.MethodSig{Return: module.Int32}).Code(func(a *module.Assembler) {
		a.LdcI4(2)
		a.Op(module.OpRet)
	})
	calc.Property("Precision", module.Int32, precision, nil)

	binary := module.MethodSig{Return: module.Int32, Params: []module.TypeSig{module.Int32, module.Int32}}
	unary := module.MethodSig{Return: module.Int32, Params: []module.TypeSig{module.Int32}}

	add := calc.Method("Add", module.MethodPublic|module.MethodStatic, binary, "a", "b").Code(func(a *module.Assembler) {
		a.Ldarg(0)
		a.Ldarg(1)
		a.Op(module.OpAdd)
		a.Op(module.OpRet)
	})

	calc.Method("Sign", module.MethodPublic|module.MethodStatic, unary, "value").Code(func(a *module.Assembler) {
		a.Ldarg(0)
		a.LdcI4(0)
		a.Op(module.OpClt)
		a.Branch(module.OpBrfalseS, "notNegative")
		a.LdcI4(-1)
		a.Op(module.OpRet)
		a.Label("notNegative")
		a.Ldarg(0)
		a.Branch(module.OpBrtrueS, "positive")
		a.LdcI4(0)
		a.Op(module.OpRet)
		a.Label("positive")
		a.LdcI4(1)
		a.Op(module.OpRet)
	})

	calc.Method("Divide", module.MethodPublic|module.MethodStatic, binary, "a", "b").Code(func(a *module.Assembler) {
		r := a.Local(module.Int32)
		a.Label("try")
		a.Ldarg(0)
		a.Ldarg(1)
		a.Op(module.OpDiv)
		a.Stloc(r)
		a.Branch(module.OpLeaveS, "out")
		a.Label("catch")
		a.Op(module.OpPop)
		a.LdcI4(-1)
		a.Stloc(r)
		a.Branch(module.OpLeaveS, "out")
		a.Label("out")
		a.Ldloc(r)
		a.Op(module.OpRet)
		a.Catch("try", "catch", "catch", "out", divideByZero)
	})

	calc.Method("Clamp", module.MethodPublic|module.MethodStatic, unary, "value").Code(func(a *module.Assembler) {
		r := a.Local(module.Int32)
		a.Label("try")
		a.Ldarg(0)
		a.LdcI4(100)
		a.Op(module.OpCgt)
		a.Branch(module.OpBrfalseS, "small")
		a.LdcI4(100)
		a.Stloc(r)
		a.Branch(module.OpLeaveS, "capped")
		a.Label("small")
		a.Ldarg(0)
		a.Stloc(r)
		a.Branch(module.OpLeaveS, "out")
		a.Label("finally")
		a.Op(module.OpNop)
		a.Op(module.OpEndfinally)
		a.Label("capped")
		a.Ldloc(r)
		a.Op(module.OpRet)
		a.Label("out")
		a.Ldloc(r)
		a.Op(module.OpRet)
		a.Finally("try", "finally", "finally", "capped")
	})

	calc.Method("Scale", module.MethodPublic, unary, "factor").Code(func(a *module.Assembler) {
		a.Ldarg(1)
		a.LdcI4(2)
		a.Op(module.OpMul)
		a.Op(module.OpRet)
	})

	calc.Method("Log", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Void, Params: []module.TypeSig{module.String}}, "message").Code(func(a *module.Assembler) {
		a.Ldarg(0)
		a.Op(module.OpPop)
		a.Op(module.OpRet)
	})

	worker := b.Type("Demo.App", "Worker", module.KindClass, module.TypePublic).Extends(object)
	worker.Method("Retry", module.MethodPublic|module.MethodStatic, unary, "attempts").Code(func(a *module.Assembler) {
		r := a.Local(module.Int32)
		a.Label("try")
		a.Ldarg(0)
		a.LdcI4(1)
		a.Op(module.OpAdd)
		a.Stloc(r)
		a.Branch(module.OpLeaveS, "out")
		a.Label("fault")
		a.Op(module.OpEndfinally)
		a.Label("out")
		a.Ldloc(r)
		a.Op(module.OpRet)
		a.Fault("try", "fault", "fault", "out")
	})

	worker.Method("Forward", module.MethodPublic|module.MethodStatic, binary, "a", "b").Code(func(a *module.Assembler) {
		a.Ldarg(0)
		a.Ldarg(1)
		a.TailCall(add.Token())
		a.Op(module.OpRet)
	})

	b.Type("Demo.App", "IService", module.KindInterface, module.TypePublic|module.TypeAbstract).
		Method("Run", module.MethodPublic|module.MethodVirtual|module.MethodAbstract, module.MethodSig{Return: module.Void})

	b.Type("Demo.App", "Mode", module.KindEnum, module.TypePublic|module.TypeSealed).
		Extends(b.TypeRef("System", "Enum")).
		EnumValue("Fast", 0).
		EnumValue("Safe", 1)

	b.Type("", "<PrivateImplementationDetails>", module.KindClass, module.TypeSealed).
		Method("ComputeHash", module.MethodStatic, module.MethodSig{Return: module.Int32, Params: []module.TypeSig{module.String}}).
		Code(func(a *module.Assembler) {
			a.LdcI4(0)
			a.Op(module.OpRet)
		})

	b.Type("Demo.App", "__StaticArrayInitTypeSize=16", module.KindClass, module.TypeSealed|module.TypeNested)

	return b.Build()
}

// BuildDemoLib returns the encoded Demo.Lib module.
func BuildDemoLib() ([]byte, error) {
	b := module.NewBuilder("Demo.Lib")
	object := b.TypeRef("System", "Object")

	util := b.Type("Demo.Lib", "Util", module.KindClass, module.TypePublic).Extends(object)
	util.Method("Twice", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Int64, Params: []module.TypeSig{module.Int64}}, "value").
		Code(func(a *module.Assembler) {
			a.Ldarg(0)
			a.LdcI8(2)
			a.Op(module.OpMul)
			a.Op(module.OpRet)
		})

	util.Method("IsEven", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Bool, Params: []module.TypeSig{module.Int32}}, "value").
		Code(func(a *module.Assembler) {
			a.Ldarg(0)
			a.LdcI4(2)
			a.Op(module.OpRem)
			a.LdcI4(0)
			a.Op(module.OpCeq)
			a.Op(module.OpRet)
		})

	return b.Build()
}

// WriteDemoPackage writes a sample package with two modules, opaque
// assets and signature files to dest.
func WriteDemoPackage(archive adapter.ArchiveAdapter, dest m.Path) error {
	app, err := BuildDemoApp()
	if err != nil {
		return fmt.Errorf("failed to build demo app: %w", err)
	}

	lib, err := BuildDemoLib()
	if err != nil {
		return fmt.Errorf("failed to build demo lib: %w", err)
	}

	entries := []struct {
		name string
		data []byte
	}{
		{"AndroidManifest.xml", []byte(`<manifest package="demo.app"/>`)},
		{DemoAppEntry, app},
		{DemoLibEntry, lib},
		{"res/values/strings.xml", []byte(`<resources><string name="app">Demo</string></resources>`)},
		{"META-INF/MANIFEST.MF", []byte("Manifest-Version: 1.0\n")},
		{"META-INF/CERT.SF", []byte("Signature-Version: 1.0\n")},
		{"META-INF/CERT.RSA", []byte{0x30, 0x82, 0x01, 0x00}},
	}

	w, err := archive.Create(dest)
	if err != nil {
		return classifyWriteError(err)
	}

	for _, e := range entries {
		entry := adapter.ArchiveEntry{Name: e.name, Method: zip.Deflate, Modified: demoTimestamp}
		if err := w.Write(entry, e.data); err != nil {
			_ = w.Abort()
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	if err := w.Commit(); err != nil {
		return classifyWriteError(err)
	}

	slog.Debug("wrote demo package", "path", dest)

	return nil
}
