package vm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tracehook.dev/pkg/tracehook/internal/module"
	"tracehook.dev/pkg/tracehook/internal/vm"
)

var (
	unary  = module.MethodSig{Return: module.Int32, Params: []module.TypeSig{module.Int32}}
	binary = module.MethodSig{Return: module.Int32, Params: []module.TypeSig{module.Int32, module.Int32}}
)

// sampleModule builds a module exercising branches, calls, handlers and
// external references. Host.Log::Write records the order handlers run in.
func sampleModule(t *testing.T) *module.Module {
	t.Helper()

	b := module.NewBuilder("Sample")
	object := b.TypeRef("System", "Object")
	exception := b.TypeRef("System", "Exception")
	write := b.MemberRef(b.TypeRef("Host", "Log"), "Write", module.MethodSig{Return: module.Void, Params: []module.TypeSig{module.String}})
	missing := b.MemberRef(b.TypeRef("Host", "Missing"), "Call", module.MethodSig{Return: module.Void})

	failure := b.Type("Sample", "Failure", module.KindClass, module.TypePublic).Extends(exception)
	failureCtor := failure.Constructor(module.String).Code(func(a *module.Assembler) {
		a.Op(module.OpRet)
	})

	math := b.Type("Sample", "Math", module.KindClass, module.TypePublic).Extends(object)

	math.Method("Div", module.MethodPublic|module.MethodStatic, binary, "a", "b").Code(func(a *module.Assembler) {
		a.Ldarg(0)
		a.Ldarg(1)
		a.Op(module.OpDiv)
		a.Op(module.OpRet)
	})

	wide := module.MethodSig{Return: module.Int64, Params: []module.TypeSig{module.Int64}}
	math.Method("Negate", module.MethodPublic|module.MethodStatic, wide, "v").Code(func(a *module.Assembler) {
		a.Ldarg(0)
		a.Op(module.OpNeg)
		a.Op(module.OpRet)
	})

	fact := math.Method("Fact", module.MethodPublic|module.MethodStatic, unary, "n")
	fact.Code(func(a *module.Assembler) {
		a.Ldarg(0)
		a.Branch(module.OpBrtrueS, "recurse")
		a.LdcI4(1)
		a.Op(module.OpRet)
		a.Label("recurse")
		a.Ldarg(0)
		a.Ldarg(0)
		a.LdcI4(1)
		a.Op(module.OpSub)
		a.Call(fact.Token())
		a.Op(module.OpMul)
		a.Op(module.OpRet)
	})

	forever := math.Method("Forever", module.MethodPublic|module.MethodStatic, unary, "n")
	forever.Code(func(a *module.Assembler) {
		a.Ldarg(0)
		a.Call(forever.Token())
		a.Op(module.OpRet)
	})

	math.Method("Spin", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Void}).Code(func(a *module.Assembler) {
		a.Label("top")
		a.Branch(module.OpBrS, "top")
	})

	math.Method("Pick", module.MethodPublic|module.MethodStatic, unary, "i").Code(func(a *module.Assembler) {
		a.Ldarg(0)
		a.Switch("zero", "one")
		a.LdcI4(-1)
		a.Op(module.OpRet)
		a.Label("zero")
		a.LdcI4(100)
		a.Op(module.OpRet)
		a.Label("one")
		a.LdcI4(200)
		a.Op(module.OpRet)
	})

	math.Method("Length", module.MethodPublic|module.MethodStatic, unary, "n").Code(func(a *module.Assembler) {
		a.Ldarg(0)
		a.Elem(module.OpNewarr, module.ElemObject)
		a.Op(module.OpDup)
		a.LdcI4(0)
		a.Ldstr("first")
		a.Op(module.OpStelemRef)
		a.Op(module.OpLdlen)
		a.Op(module.OpRet)
	})

	math.Method("Equal", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Bool, Params: []module.TypeSig{module.Int32, module.Int32}}).
		Code(func(a *module.Assembler) {
			a.Ldarg(0)
			a.Ldarg(1)
			a.Op(module.OpCeq)
			a.Op(module.OpRet)
		})

	math.Method("Unresolved", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Void}).Code(func(a *module.Assembler) {
		a.Call(missing)
		a.Op(module.OpRet)
	})

	math.Method("Concat", module.MethodPublic, module.MethodSig{Return: module.String, Params: []module.TypeSig{module.String}}, "s").
		Code(func(a *module.Assembler) {
			a.Ldarg(1)
			a.Ldstr("!")
			a.Op(module.OpAdd)
			a.Op(module.OpRet)
		})

	handlers := b.Type("Sample", "Handlers", module.KindClass, module.TypePublic).Extends(object)

	// Throws a Failure through a finally, caught by an outer catch.
	handlers.Method("Nested", module.MethodPublic|module.MethodStatic, unary, "v").Code(func(a *module.Assembler) {
		r := a.Local(module.Int32)
		a.Label("outer")
		a.Label("inner")
		a.Ldarg(0)
		a.Branch(module.OpBrtrueS, "fine")
		a.Ldstr("boom")
		a.Newobj(failureCtor.Token())
		a.Op(module.OpThrow)
		a.Label("fine")
		a.Ldarg(0)
		a.Stloc(r)
		a.Branch(module.OpLeaveS, "done")
		a.Label("finally")
		a.Ldstr("finally")
		a.Call(write)
		a.Op(module.OpEndfinally)
		a.Label("catch")
		a.Op(module.OpPop)
		a.Ldstr("catch")
		a.Call(write)
		a.LdcI4(-1)
		a.Stloc(r)
		a.Branch(module.OpLeaveS, "done")
		a.Label("done")
		a.Ldloc(r)
		a.Op(module.OpRet)
		a.Finally("inner", "finally", "finally", "catch")
		a.Catch("outer", "catch", "catch", "done", failure.Token())
	})

	// Filter accepts only when the argument is odd.
	handlers.Method("Filtered", module.MethodPublic|module.MethodStatic, unary, "v").Code(func(a *module.Assembler) {
		r := a.Local(module.Int32)
		a.Label("try")
		a.Ldstr("filtered")
		a.Newobj(failureCtor.Token())
		a.Op(module.OpThrow)
		a.Label("filter")
		a.Op(module.OpPop)
		a.Ldarg(0)
		a.LdcI4(2)
		a.Op(module.OpRem)
		a.Op(module.OpEndfilter)
		a.Label("handler")
		a.Op(module.OpPop)
		a.LdcI4(7)
		a.Stloc(r)
		a.Branch(module.OpLeaveS, "done")
		a.Label("done")
		a.Ldloc(r)
		a.Op(module.OpRet)
		a.Filter("try", "filter", "filter", "handler", "done")
	})

	handlers.Method("Rethrow", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Void}).Code(func(a *module.Assembler) {
		a.Label("try")
		a.Ldstr("again")
		a.Newobj(failureCtor.Token())
		a.Op(module.OpThrow)
		a.Label("catch")
		a.Op(module.OpPop)
		a.Op(module.OpRethrow)
		a.Label("done")
		a.Op(module.OpRet)
		a.Catch("try", "catch", "catch", "done", exception)
	})

	mod, err := b.Module()
	require.NoError(t, err)

	return mod
}

func TestMachine_Invoke(t *testing.T) {
	tests := []struct {
		name   string
		method string
		args   []vm.Value
		want   vm.Value
	}{
		{name: "division", method: "Sample.Math::Div", args: []vm.Value{int32(7), int32(2)}, want: int32(3)},
		{name: "int64 negate", method: "Sample.Math::Negate", args: []vm.Value{int64(5)}, want: int64(-5)},
		{name: "recursion", method: "Sample.Math::Fact", args: []vm.Value{int32(5)}, want: int32(120)},
		{name: "switch first", method: "Sample.Math::Pick", args: []vm.Value{int32(0)}, want: int32(100)},
		{name: "switch second", method: "Sample.Math::Pick", args: []vm.Value{int32(1)}, want: int32(200)},
		{name: "switch fallthrough", method: "Sample.Math::Pick", args: []vm.Value{int32(9)}, want: int32(-1)},
		{name: "array length", method: "Sample.Math::Length", args: []vm.Value{int32(3)}, want: int32(3)},
		{name: "bool result", method: "Sample.Math::Equal", args: []vm.Value{int32(3), int32(3)}, want: true},
		{name: "bool false", method: "Sample.Math::Equal", args: []vm.Value{int32(3), int32(4)}, want: false},
		{name: "instance method", method: "Sample.Math::Concat", args: []vm.Value{&vm.Object{Type: "Sample.Math"}, "hi"}, want: "hi!"},
		{name: "filter accepts", method: "Sample.Handlers::Filtered", args: []vm.Value{int32(3)}, want: int32(7)},
	}

	mod := sampleModule(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vm.New(mod).Invoke(tt.method, tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMachine_Exceptions(t *testing.T) {
	mod := sampleModule(t)

	tests := []struct {
		name   string
		method string
		args   []vm.Value
		want   string
	}{
		{name: "divide by zero", method: "Sample.Math::Div", args: []vm.Value{int32(1), int32(0)}, want: "System.DivideByZeroException"},
		{name: "filter rejects", method: "Sample.Handlers::Filtered", args: []vm.Value{int32(4)}, want: "Sample.Failure"},
		{name: "rethrow", method: "Sample.Handlers::Rethrow", want: "Sample.Failure"},
		{name: "negative array", method: "Sample.Math::Length", args: []vm.Value{int32(-1)}, want: "System.OverflowException"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vm.New(mod).Invoke(tt.method, tt.args...)

			var thrown *vm.ThrownError
			require.ErrorAs(t, err, &thrown)
			assert.Equal(t, tt.want, thrown.Exception.Type)
		})
	}
}

func TestMachine_HandlersRunInOrder(t *testing.T) {
	// Arrange
	mod := sampleModule(t)

	var log []string

	machine := vm.New(mod, vm.WithHost("Host.Log::Write", func(args []vm.Value) (vm.Value, error) {
		log = append(log, args[0].(string))
		return nil, nil
	}))

	// Act
	thrown, err := machine.Invoke("Sample.Handlers::Nested", int32(0))
	require.NoError(t, err)

	throwLog := append([]string(nil), log...)
	log = nil

	normal, err := machine.Invoke("Sample.Handlers::Nested", int32(4))
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int32(-1), thrown)
	assert.Equal(t, []string{"finally", "catch"}, throwLog)
	assert.Equal(t, int32(4), normal)
	assert.Equal(t, []string{"finally"}, log)
}

func TestMachine_Errors(t *testing.T) {
	mod := sampleModule(t)

	tests := []struct {
		name    string
		machine *vm.Machine
		method  string
		args    []vm.Value
		want    error
	}{
		{name: "unknown type", machine: vm.New(mod), method: "Sample.Nope::Div", want: vm.ErrMethodNotFound},
		{name: "malformed name", machine: vm.New(mod), method: "Div", want: vm.ErrMethodNotFound},
		{name: "wrong arity", machine: vm.New(mod), method: "Sample.Math::Div", args: []vm.Value{int32(1)}, want: vm.ErrMethodNotFound},
		{name: "unresolved external", machine: vm.New(mod), method: "Sample.Math::Unresolved", want: vm.ErrUnresolved},
		{name: "step limit", machine: vm.New(mod, vm.WithStepLimit(1000)), method: "Sample.Math::Spin", want: vm.ErrStepLimit},
		{name: "call depth", machine: vm.New(mod), method: "Sample.Math::Forever", args: []vm.Value{int32(1)}, want: vm.ErrStackOverflow},
		{name: "type mismatch", machine: vm.New(mod), method: "Sample.Math::Div", args: []vm.Value{int32(1), "x"}, want: vm.ErrInvalidProgram},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.machine.Invoke(tt.method, tt.args...)

			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMachine_HostError(t *testing.T) {
	mod := sampleModule(t)
	hostErr := errors.New("host failed")

	machine := vm.New(mod, vm.WithHost("Host.Log::Write", func([]vm.Value) (vm.Value, error) {
		return nil, hostErr
	}))

	_, err := machine.Invoke("Sample.Handlers::Nested", int32(1))

	require.ErrorIs(t, err, hostErr)
}

func TestMachine_Call(t *testing.T) {
	mod := sampleModule(t)
	other := sampleModule(t)

	machine := vm.New(mod)

	md, err := machine.Lookup("Sample.Math::Fact", 1)
	require.NoError(t, err)

	got, err := machine.Call(md, int32(4))
	require.NoError(t, err)
	assert.Equal(t, int32(24), got)

	foreign, err := vm.New(other).Lookup("Sample.Math::Fact", -1)
	require.NoError(t, err)

	_, err = machine.Call(foreign, int32(4))
	require.ErrorIs(t, err, vm.ErrMethodNotFound)
}

func TestMachine_IsA(t *testing.T) {
	machine := vm.New(sampleModule(t))

	assert.True(t, machine.IsA("Sample.Failure", "Sample.Failure"))
	assert.True(t, machine.IsA("Sample.Failure", "System.Exception"))
	assert.True(t, machine.IsA("Anything", "System.Object"))
	assert.False(t, machine.IsA("System.DivideByZeroException", "Sample.Failure"))
}

func TestThrownError_Error(t *testing.T) {
	assert.Equal(t, "unhandled exception System.X: bad", (&vm.ThrownError{Exception: vm.NewException("System.X", "bad")}).Error())
	assert.Equal(t, "unhandled exception System.Y", (&vm.ThrownError{Exception: vm.NewException("System.Y", "")}).Error())
}
