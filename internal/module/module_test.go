package module_test

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tracehook.dev/pkg/tracehook/internal/module"
)

func sampleModule(t *testing.T) (*module.Builder, *module.MethodBuilder) {
	t.Helper()

	b := module.NewBuilder("App.Core.dll")
	exc := b.TypeRef("System", "Exception")

	calc := b.Type("App.Core", "Calculator", module.KindClass, module.TypePublic)
	calc.Field("total", 0, module.Int64)

	add := calc.Method("Add", module.MethodPublic|module.MethodStatic,
		module.MethodSig{Return: module.Int32, Params: []module.TypeSig{module.Int32, module.Int32}}, "a", "b")
	add.Code(func(a *module.Assembler) {
		a.Ldarg(0)
		a.Ldarg(1)
		a.Op(module.OpAdd)
		a.Op(module.OpRet)
	})

	safe := calc.Method("SafeDiv", module.MethodPublic|module.MethodStatic,
		module.MethodSig{Return: module.Int32, Params: []module.TypeSig{module.Int32, module.Int32}})
	safe.Code(func(a *module.Assembler) {
		res := a.Local(module.Int32)
		a.Label("try")
		a.Ldarg(0)
		a.Ldarg(1)
		a.Op(module.OpDiv)
		a.Stloc(res)
		a.Branch(module.OpLeaveS, "done")
		a.Label("catch")
		a.Op(module.OpPop)
		a.LdcI4(-1)
		a.Stloc(res)
		a.Branch(module.OpLeaveS, "done")
		a.Label("done")
		a.Ldloc(res)
		a.Op(module.OpRet)
		a.Catch("try", "catch", "catch", "done", exc)
	})

	b.Type("App.Core", "Color", module.KindEnum, module.TypePublic).
		EnumValue("Red", 0).
		EnumValue("Green", 1)

	return b, add
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	// Arrange
	b, _ := sampleModule(t)
	data, err := b.Build()
	require.NoError(t, err)

	// Act
	m, err := module.Decode(data)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, data, module.Encode(m))
	assert.Equal(t, "App.Core.dll", m.Name)
	require.Len(t, m.Types, 2)
	assert.Equal(t, "App.Core.Calculator", m.FullName(m.Types[0]))
	assert.Equal(t, module.KindEnum, m.Types[1].Kind)
	assert.Equal(t, int64(1), m.Types[1].Fields[1].Constant)
	require.Len(t, m.Types[0].Methods, 2)
	assert.Equal(t, "App.Core.Calculator::SafeDiv", m.MethodName(module.NewToken(module.TableMethodDef, 2)))
}

func TestDecode_Errors(t *testing.T) {
	b, _ := sampleModule(t)
	data, err := b.Build()
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr error
	}{
		{
			name:    "short header",
			mutate:  func(d []byte) []byte { return d[:5] },
			wantErr: module.ErrTruncated,
		},
		{
			name: "bad magic",
			mutate: func(d []byte) []byte {
				d[0] = 'X'
				return d
			},
			wantErr: module.ErrBadMagic,
		},
		{
			name: "flipped payload byte",
			mutate: func(d []byte) []byte {
				d[len(d)-1] ^= 0xFF
				return d
			},
			wantErr: module.ErrChecksum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := module.Decode(tt.mutate(bytes.Clone(data)))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_TruncatedPayloadWithValidChecksum(t *testing.T) {
	b, _ := sampleModule(t)
	data, err := b.Build()
	require.NoError(t, err)

	payload := data[12 : len(data)-3]
	forged := append(bytes.Clone(data[:12]), payload...)
	binary.LittleEndian.PutUint32(forged[8:12], adler(payload))

	_, err = module.Decode(forged)
	assert.ErrorIs(t, err, module.ErrTruncated)
}

func adler(p []byte) uint32 {
	const mod = 65521

	a, b := uint32(1), uint32(0)
	for _, c := range p {
		a = (a + uint32(c)) % mod
		b = (b + a) % mod
	}

	return b<<16 | a
}

func TestMarkRollback(t *testing.T) {
	b, _ := sampleModule(t)
	m, err := b.Module()
	require.NoError(t, err)

	mark := m.Mark()
	strings0 := len(m.Strings)

	ref := m.AddTypeRef("Tracehook.Runtime", "Trace")
	m.AddMemberRef(ref, "Enter", module.MethodSig{Return: module.Int64})

	m.Rollback(mark)

	assert.Len(t, m.Strings, strings0)
	assert.Len(t, m.TypeRefs, 1)
	assert.Empty(t, m.MemberRefs)

	_, ok := m.LookupString("Tracehook.Runtime")
	assert.False(t, ok)

	idx := m.AddString("Trace")
	assert.Equal(t, uint32(strings0), idx)
}

func TestDisassembleMethod(t *testing.T) {
	b, add := sampleModule(t)
	m, err := b.Module()
	require.NoError(t, err)

	text, err := module.DisassembleMethod(m, add.Def())
	require.NoError(t, err)

	assert.Contains(t, text, ".method public static App.Core.Calculator::Add(int32,int32) int32")
	assert.Contains(t, text, "IL_0000: ldarg 0")
	assert.Contains(t, text, "IL_0005: ret")

	var sb strings.Builder
	require.NoError(t, module.Disassemble(&sb, m))
	assert.Contains(t, sb.String(), ".try IL_0000 to IL_0009 catch System.Exception handler IL_0009 to IL_0013")
}

func TestModule_IsSynthesized(t *testing.T) {
	b := module.NewBuilder("App.Core.dll")
	user := b.Type("App.Core", "Calculator", module.KindClass, module.TypePublic)
	flagged := b.Type("App.Core", "Closure", module.KindClass, module.TypeCompilerGenerated)
	details := b.Type("", "<PrivateImplementationDetails>", module.KindClass, module.TypeSealed)
	arrays := b.Type("App.Core", "__StaticArrayInitTypeSize=16", module.KindClass, module.TypeNested)
	display := b.Type("App.Core", "<>c__DisplayClass0_0", module.KindClass, 0)

	mod, err := b.Module()
	require.NoError(t, err)

	tests := []struct {
		name string
		typ  *module.TypeBuilder
		want bool
	}{
		{name: "user type", typ: user, want: false},
		{name: "compiler generated flag", typ: flagged, want: true},
		{name: "private implementation details", typ: details, want: true},
		{name: "static array init", typ: arrays, want: true},
		{name: "angle bracket name", typ: display, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mod.IsSynthesized(mod.Types[tt.typ.Token().Row()-1]))
		})
	}
}

func TestModule_IsAccessor(t *testing.T) {
	// Arrange
	b := module.NewBuilder("App.Core.dll")
	calc := b.Type("App.Core", "Calculator", module.KindClass, module.TypePublic)
	getter := calc.Method("get_Total", module.MethodPublic, module.MethodSig{HasThis: true, Return: module.Int64})
	setter := calc.Method("set_Total", module.MethodPublic, module.MethodSig{HasThis: true, Return: module.Void, Params: []module.TypeSig{module.Int64}})
	plain := calc.Method("Reset", module.MethodPublic, module.MethodSig{HasThis: true, Return: module.Void})
	calc.Property("Total", module.Int64, getter, setter)

	mod, err := b.Module()
	require.NoError(t, err)

	typ := mod.Types[calc.Token().Row()-1]

	// Act
	setter.Def().Flags &^= module.MethodSetter

	// Assert
	assert.True(t, mod.IsAccessor(typ, getter.Def()))
	assert.True(t, mod.IsAccessor(typ, setter.Def()), "property row names the setter even without its flag")
	assert.False(t, mod.IsAccessor(typ, plain.Def()))
}
