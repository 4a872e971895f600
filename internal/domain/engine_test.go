package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tracehook.dev/pkg/tracehook/internal/domain"
	m "tracehook.dev/pkg/tracehook/internal/model"
	"tracehook.dev/pkg/tracehook/internal/module"
	"tracehook.dev/pkg/tracehook/internal/vm"
)

func instrument(t *testing.T, entry string, mod *module.Module, hooks ...m.HookDescriptor) domain.ModuleResult {
	t.Helper()

	res, err := domain.NewEngine().Instrument(context.Background(), entry, mod, hooks)
	require.NoError(t, err)

	return res
}

func outcomeOf(t *testing.T, res domain.ModuleResult, id m.MethodIdentity) m.Outcome {
	t.Helper()

	for _, o := range res.Outcomes {
		if o.Method == id {
			return o
		}
	}

	require.Failf(t, "missing outcome", "no outcome for %s", id)

	return m.Outcome{}
}

func TestEngine_NoHooksLeavesModuleByteIdentical(t *testing.T) {
	// Arrange
	original, err := domain.BuildDemoApp()
	require.NoError(t, err)

	mod, err := module.Decode(original)
	require.NoError(t, err)

	// Act
	res := instrument(t, domain.DemoAppEntry, mod, fullHook(libMethod("Twice", "(int64)")))

	// Assert
	assert.False(t, res.Modified)
	assert.Empty(t, res.Outcomes)
	assert.Equal(t, original, module.Encode(mod))
}

func TestEngine_EntryEventFirst(t *testing.T) {
	// Arrange
	mod := demoApp(t)
	add := appMethod(calculator, "Add", "(int32,int32)")
	res := instrument(t, domain.DemoAppEntry, mod, fullHook(add))
	require.Equal(t, m.OutcomeInstrumented, outcomeOf(t, res, add).Status)

	rec := vm.NewRecorder()
	machine := vm.New(mod, vm.WithTracer(rec))

	// Act
	got, err := machine.Invoke("Demo.App.Calculator::Add", int32(2), int32(3))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int32(5), got)

	events := rec.Events()
	require.Len(t, events, 2)
	assert.Equal(t, vm.EventEnter, events[0].Kind)
	assert.Equal(t, "Demo.App.Calculator::Add(int32,int32)", events[0].Method)
	assert.Equal(t, []string{"2", "3"}, events[0].Args)
	assert.Equal(t, vm.EventExit, events[1].Kind)
	assert.Equal(t, "5", events[1].Value)
	assert.Equal(t, events[0].Token, events[1].Token)
}

func TestEngine_OneReturnEventPerPath(t *testing.T) {
	mod := demoApp(t)
	sign := appMethod(calculator, "Sign", "(int32)")
	clamp := appMethod(calculator, "Clamp", "(int32)")

	res := instrument(t, domain.DemoAppEntry, mod, fullHook(sign), fullHook(clamp))
	require.Len(t, res.Methods, 2)
	assert.Len(t, res.Methods[0].ExitSites, 3)
	assert.Len(t, res.Methods[1].ExitSites, 2)

	tests := []struct {
		name   string
		method string
		arg    int32
		want   int32
	}{
		{name: "sign negative", method: "Demo.App.Calculator::Sign", arg: -5, want: -1},
		{name: "sign zero", method: "Demo.App.Calculator::Sign", arg: 0, want: 0},
		{name: "sign positive", method: "Demo.App.Calculator::Sign", arg: 7, want: 1},
		{name: "clamp capped through finally", method: "Demo.App.Calculator::Clamp", arg: 150, want: 100},
		{name: "clamp passthrough through finally", method: "Demo.App.Calculator::Clamp", arg: 5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := vm.NewRecorder()

			got, err := vm.New(mod, vm.WithTracer(rec)).Invoke(tt.method, tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			events := rec.Events()
			require.Len(t, events, 2)
			assert.Equal(t, vm.EventEnter, events[0].Kind)
			assert.Equal(t, vm.EventExit, events[1].Kind)
			assert.True(t, events[1].HasValue)
			assert.Equal(t, vm.FormatValue(tt.want), events[1].Value)
		})
	}
}

func TestEngine_SecondPassIsNoop(t *testing.T) {
	// Arrange
	add := appMethod(calculator, "Add", "(int32,int32)")
	mod := demoApp(t)
	instrument(t, domain.DemoAppEntry, mod, fullHook(add))

	once := module.Encode(mod)
	again, err := module.Decode(once)
	require.NoError(t, err)

	// Act
	res := instrument(t, domain.DemoAppEntry, again, fullHook(add))

	// Assert
	assert.False(t, res.Modified)
	assert.Equal(t, m.Outcome{Method: add, Status: m.OutcomeUnmodified, Reason: domain.ReasonAlreadyInstrumented}, outcomeOf(t, res, add))
	assert.Equal(t, once, module.Encode(again))

	rec := vm.NewRecorder()
	_, err = vm.New(again, vm.WithTracer(rec)).Invoke("Demo.App.Calculator::Add", int32(1), int32(1))
	require.NoError(t, err)
	assert.Len(t, rec.Events(), 2)
}

func TestEngine_CatchStillHandlesDivideByZero(t *testing.T) {
	mod := demoApp(t)
	divide := appMethod(calculator, "Divide", "(int32,int32)")
	instrument(t, domain.DemoAppEntry, mod, fullHook(divide))

	rec := vm.NewRecorder()
	got, err := vm.New(mod, vm.WithTracer(rec)).Invoke("Demo.App.Calculator::Divide", int32(6), int32(0))

	require.NoError(t, err)
	assert.Equal(t, int32(-1), got)

	events := rec.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "-1", events[1].Value)
}

// guardedModule has a method whose try block starts at its first instruction
// and whose catch handler calls into the host.
func guardedModule(t *testing.T) *module.Module {
	t.Helper()

	b := module.NewBuilder("Guarded")
	exc := b.TypeRef("System", "InvalidOperationException")
	ctor := b.MemberRef(exc, ".ctor", module.MethodSig{HasThis: true, Return: module.Void, Params: []module.TypeSig{module.String}})
	hit := b.MemberRef(b.TypeRef("Host", "Counter"), "Hit", module.MethodSig{Return: module.Void})

	svc := b.Type("Guarded", "Service", module.KindClass, module.TypePublic)
	svc.Method("Check", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Int32, Params: []module.TypeSig{module.Int32}}, "value").
		Code(func(a *module.Assembler) {
			r := a.Local(module.Int32)
			a.Label("try")
			a.Ldarg(0)
			a.Branch(module.OpBrtrueS, "ok")
			a.Ldstr("zero")
			a.Newobj(ctor)
			a.Op(module.OpThrow)
			a.Label("ok")
			a.Ldarg(0)
			a.Stloc(r)
			a.Branch(module.OpLeaveS, "out")
			a.Label("catch")
			a.Op(module.OpPop)
			a.Call(hit)
			a.LdcI4(-1)
			a.Stloc(r)
			a.Branch(module.OpLeaveS, "out")
			a.Label("out")
			a.Ldloc(r)
			a.Op(module.OpRet)
			a.Catch("try", "catch", "catch", "out", exc)
		})

	mod, err := b.Module()
	require.NoError(t, err)

	return mod
}

func TestEngine_CatchRegionKeepsOriginalStart(t *testing.T) {
	// Arrange
	mod := guardedModule(t)
	check := m.MethodIdentity{Module: "assemblies/Guarded.dll", Type: "Guarded.Service", Name: "Check", Signature: "(int32)"}

	res := instrument(t, check.Module, mod, fullHook(check))
	require.Equal(t, m.OutcomeInstrumented, outcomeOf(t, res, check).Status)

	body := res.Methods[0].Body
	require.Len(t, body.Regions, 1)
	assert.NotSame(t, body.Instructions[0], body.Regions[0].TryStart)
	assert.Equal(t, module.OpLdarg, body.Regions[0].TryStart.Op)

	hits := 0
	rec := vm.NewRecorder()
	machine := vm.New(mod, vm.WithTracer(rec), vm.WithHost("Host.Counter::Hit", func([]vm.Value) (vm.Value, error) {
		hits++
		return nil, nil
	}))

	// Act
	thrown, err := machine.Invoke("Guarded.Service::Check", int32(0))
	require.NoError(t, err)

	passed, err := machine.Invoke("Guarded.Service::Check", int32(9))
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int32(-1), thrown)
	assert.Equal(t, int32(9), passed)
	assert.Equal(t, 1, hits)

	events := rec.Events()
	require.Len(t, events, 4)
	assert.Equal(t, "-1", events[1].Value)
	assert.Equal(t, "9", events[3].Value)
}

func TestEngine_SkipIsContained(t *testing.T) {
	// Arrange
	original, err := domain.BuildDemoApp()
	require.NoError(t, err)

	mod, err := module.Decode(original)
	require.NoError(t, err)

	retry := appMethod(worker, "Retry", "(int32)")
	add := appMethod(calculator, "Add", "(int32,int32)")
	sign := appMethod(calculator, "Sign", "(int32)")

	// Act
	res := instrument(t, domain.DemoAppEntry, mod, fullHook(retry), fullHook(add), fullHook(sign))

	// Assert
	assert.True(t, res.Modified)
	require.Len(t, res.Outcomes, 3)
	assert.Equal(t, []m.MethodIdentity{add, sign, retry}, []m.MethodIdentity{res.Outcomes[0].Method, res.Outcomes[1].Method, res.Outcomes[2].Method})
	assert.Equal(t, m.OutcomeSkipped, outcomeOf(t, res, retry).Status)
	assert.Contains(t, outcomeOf(t, res, retry).Reason, domain.ErrUnsupportedMethodShape.Error())
	assert.Equal(t, m.OutcomeInstrumented, outcomeOf(t, res, add).Status)
	assert.Equal(t, m.OutcomeInstrumented, outcomeOf(t, res, sign).Status)

	rec := vm.NewRecorder()
	machine := vm.New(mod, vm.WithTracer(rec))

	got, err := machine.Invoke("Demo.App.Worker::Retry", int32(4))
	require.NoError(t, err)
	assert.Equal(t, int32(5), got)
	assert.Empty(t, rec.Events())

	got, err = machine.Invoke("Demo.App.Calculator::Add", int32(1), int32(2))
	require.NoError(t, err)
	assert.Equal(t, int32(3), got)

	got, err = machine.Invoke("Demo.App.Calculator::Sign", int32(-3))
	require.NoError(t, err)
	assert.Equal(t, int32(-1), got)
	assert.Len(t, rec.Events(), 4)
}

func TestEngine_SkippedOnlyRollsBackTables(t *testing.T) {
	original, err := domain.BuildDemoApp()
	require.NoError(t, err)

	mod, err := module.Decode(original)
	require.NoError(t, err)

	res := instrument(t, domain.DemoAppEntry, mod, fullHook(appMethod(worker, "Retry", "(int32)")))

	assert.False(t, res.Modified)
	assert.Equal(t, original, module.Encode(mod))
}

func TestEngine_Deterministic(t *testing.T) {
	hooks := []m.HookDescriptor{
		fullHook(appMethod(calculator, "Clamp", "(int32)")),
		{Method: appMethod(calculator, "Add", "(int32,int32)"), LogName: true},
		fullHook(appMethod(calculator, "Log", "(string)")),
		fullHook(appMethod(worker, "Retry", "(int32)")),
	}

	first := demoApp(t)
	instrument(t, domain.DemoAppEntry, first, hooks...)

	second := demoApp(t)
	reversed := []m.HookDescriptor{hooks[3], hooks[2], hooks[1], hooks[0]}
	instrument(t, domain.DemoAppEntry, second, reversed...)

	assert.Equal(t, module.Encode(first), module.Encode(second))
}

func TestEngine_Outcomes(t *testing.T) {
	tests := []struct {
		name   string
		hook   m.HookDescriptor
		status m.OutcomeStatus
		reason string
	}{
		{
			name:   "no-op hook",
			hook:   m.HookDescriptor{Method: appMethod(calculator, "Add", "(int32,int32)")},
			status: m.OutcomeUnmodified,
			reason: domain.ReasonNoopHook,
		},
		{
			name:   "getter",
			hook:   fullHook(appMethod(calculator, "get_Precision", "()")),
			status: m.OutcomeSkipped,
			reason: domain.ReasonNotEligible,
		},
		{
			name:   "private implementation details",
			hook:   fullHook(appMethod("<PrivateImplementationDetails>", "ComputeHash", "(string)")),
			status: m.OutcomeSkipped,
			reason: domain.ReasonNotEligible,
		},
		{
			name:   "no-op hook on a hidden type",
			hook:   m.HookDescriptor{Method: appMethod("<PrivateImplementationDetails>", "ComputeHash", "(string)")},
			status: m.OutcomeSkipped,
			reason: domain.ReasonNotEligible,
		},
		{
			name:   "abstract method",
			hook:   fullHook(appMethod("Demo.App.IService", "Run", "()")),
			status: m.OutcomeSkipped,
			reason: domain.ReasonNotEligible,
		},
		{
			name:   "unknown method",
			hook:   fullHook(appMethod(calculator, "Sub", "(int32,int32)")),
			status: m.OutcomeSkipped,
			reason: domain.ReasonNotFound,
		},
		{
			name:   "signature mismatch",
			hook:   fullHook(appMethod(calculator, "Add", "(int64,int64)")),
			status: m.OutcomeSkipped,
			reason: domain.ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := demoApp(t)

			res := instrument(t, domain.DemoAppEntry, mod, tt.hook)

			require.Len(t, res.Outcomes, 1)
			assert.Equal(t, tt.status, res.Outcomes[0].Status)
			assert.Equal(t, tt.reason, res.Outcomes[0].Reason)
			assert.False(t, res.Modified)
		})
	}
}

func TestEngine_TailCall(t *testing.T) {
	forward := appMethod(worker, "Forward", "(int32,int32)")

	t.Run("skipped when logging the return value", func(t *testing.T) {
		res := instrument(t, domain.DemoAppEntry, demoApp(t), fullHook(forward))

		o := outcomeOf(t, res, forward)
		assert.Equal(t, m.OutcomeSkipped, o.Status)
		assert.Contains(t, o.Reason, "tail call")
	})

	t.Run("entry only", func(t *testing.T) {
		mod := demoApp(t)
		res := instrument(t, domain.DemoAppEntry, mod, m.HookDescriptor{Method: forward, LogName: true})
		require.Equal(t, m.OutcomeInstrumented, outcomeOf(t, res, forward).Status)

		rec := vm.NewRecorder()
		got, err := vm.New(mod, vm.WithTracer(rec)).Invoke("Demo.App.Worker::Forward", int32(2), int32(5))
		require.NoError(t, err)
		assert.Equal(t, int32(7), got)

		events := rec.Events()
		require.Len(t, events, 1)
		assert.False(t, events[0].HasArgs)
	})
}

func TestEngine_FlagCombinations(t *testing.T) {
	t.Run("instance method skips this", func(t *testing.T) {
		mod := demoApp(t)
		scale := appMethod(calculator, "Scale", "(int32)")
		instrument(t, domain.DemoAppEntry, mod, fullHook(scale))

		rec := vm.NewRecorder()
		this := &vm.Object{Type: calculator, Fields: map[string]vm.Value{}}

		got, err := vm.New(mod, vm.WithTracer(rec)).Invoke("Demo.App.Calculator::Scale", this, int32(4))
		require.NoError(t, err)
		assert.Equal(t, int32(8), got)
		assert.Equal(t, []string{"4"}, rec.Events()[0].Args)
	})

	t.Run("void method has no return value", func(t *testing.T) {
		mod := demoApp(t)
		instrument(t, domain.DemoAppEntry, mod, fullHook(appMethod(calculator, "Log", "(string)")))

		rec := vm.NewRecorder()
		_, err := vm.New(mod, vm.WithTracer(rec)).Invoke("Demo.App.Calculator::Log", "hello")
		require.NoError(t, err)

		events := rec.Events()
		require.Len(t, events, 2)
		assert.Equal(t, []string{`"hello"`}, events[0].Args)
		assert.False(t, events[1].HasValue)
	})

	t.Run("anonymous parameters only", func(t *testing.T) {
		mod := demoLib(t)
		twice := libMethod("Twice", "(int64)")
		instrument(t, domain.DemoLibEntry, mod, m.HookDescriptor{Method: twice, LogParameters: true})

		rec := vm.NewRecorder()
		got, err := vm.New(mod, vm.WithTracer(rec)).Invoke("Demo.Lib.Util::Twice", int64(21))
		require.NoError(t, err)
		assert.Equal(t, int64(42), got)

		events := rec.Events()
		require.Len(t, events, 1)
		assert.Empty(t, events[0].Method)
		assert.Equal(t, []string{"21L"}, events[0].Args)
	})

	t.Run("return only", func(t *testing.T) {
		mod := demoLib(t)
		twice := libMethod("Twice", "(int64)")
		instrument(t, domain.DemoLibEntry, mod, m.HookDescriptor{Method: twice, LogReturn: true})

		rec := vm.NewRecorder()
		_, err := vm.New(mod, vm.WithTracer(rec)).Invoke("Demo.Lib.Util::Twice", int64(5))
		require.NoError(t, err)

		events := rec.Events()
		require.Len(t, events, 2)
		assert.False(t, events[0].HasArgs)
		assert.Equal(t, "10L", events[1].Value)
	})
}

func TestEngine_InstrumentedModuleVerifies(t *testing.T) {
	mod := demoApp(t)

	var hooks []m.HookDescriptor
	for _, name := range []struct{ t, n, s string }{
		{calculator, ".ctor", "()"},
		{calculator, "Add", "(int32,int32)"},
		{calculator, "Sign", "(int32)"},
		{calculator, "Divide", "(int32,int32)"},
		{calculator, "Clamp", "(int32)"},
		{calculator, "Scale", "(int32)"},
		{calculator, "Log", "(string)"},
	} {
		hooks = append(hooks, fullHook(appMethod(name.t, name.n, name.s)))
	}

	res := instrument(t, domain.DemoAppEntry, mod, hooks...)
	assert.Equal(t, len(hooks), len(res.Methods))

	decoded, err := module.Decode(module.Encode(mod))
	require.NoError(t, err)

	for _, t2 := range decoded.Types {
		for _, md := range t2.Methods {
			if md.Body == nil || len(md.Body.Code) == 0 {
				continue
			}

			_, err := module.VerifyMethod(decoded, md)
			assert.NoError(t, err, decoded.String(md.Name))
		}
	}
}

const rawEntry = "assemblies/Raw.dll"

func rawMethod(typeName, name, sig string) m.MethodIdentity {
	return m.MethodIdentity{Module: rawEntry, Type: typeName, Name: name, Signature: sig}
}

// rawModule holds a method whose body underflows the stack, a method with
// every local slot in use, a compiler-generated closure type and a property
// whose getter has lost its accessor flag.
func rawModule(t *testing.T) []byte {
	t.Helper()

	b := module.NewBuilder("Raw")
	svc := b.Type("Raw", "Service", module.KindClass, module.TypePublic)

	svc.Method("Broken", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Void}).
		Raw(&module.Body{MaxStack: 1, Code: []byte{byte(module.OpPop), byte(module.OpRet)}})

	svc.Method("Good", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Int32}).
		Code(func(a *module.Assembler) {
			a.LdcI4(7)
			a.Op(module.OpRet)
		})

	crowded := &module.Body{MaxStack: 1, Code: []byte{byte(module.OpRet)}}
	for range 256 {
		crowded.Locals = append(crowded.Locals, module.Int32)
	}

	svc.Method("Crowded", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Void}).Raw(crowded)

	level := svc.Method("get_Level", module.MethodPublic, module.MethodSig{Return: module.Int32}).
		Code(func(a *module.Assembler) {
			a.LdcI4(3)
			a.Op(module.OpRet)
		})
	svc.Property("Level", module.Int32, level, nil)

	b.Type("Raw", "Closure", module.KindClass, module.TypeCompilerGenerated).
		Method("Invoke", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Int32}).
		Code(func(a *module.Assembler) {
			a.LdcI4(1)
			a.Op(module.OpRet)
		})

	mod, err := b.Module()
	require.NoError(t, err)

	level.Def().Flags &^= module.MethodGetter | module.MethodSpecialName

	return module.Encode(mod)
}

func decodeRaw(t *testing.T, data []byte) *module.Module {
	t.Helper()

	mod, err := module.Decode(data)
	require.NoError(t, err)

	return mod
}

func TestEngine_VerificationFailureIsContained(t *testing.T) {
	// Arrange
	original := rawModule(t)
	mod := decodeRaw(t, original)
	broken := rawMethod("Raw.Service", "Broken", "()")
	good := rawMethod("Raw.Service", "Good", "()")

	// Act
	res := instrument(t, rawEntry, mod, fullHook(broken), fullHook(good))

	// Assert
	o := outcomeOf(t, res, broken)
	assert.Equal(t, m.OutcomeSkipped, o.Status)
	assert.Contains(t, o.Reason, domain.ErrVerificationFailure.Error())
	assert.Equal(t, m.OutcomeInstrumented, outcomeOf(t, res, good).Status)
	assert.True(t, res.Modified)
	require.Len(t, res.Methods, 1)
	assert.Equal(t, good, res.Methods[0].Identity)

	rec := vm.NewRecorder()
	got, err := vm.New(mod, vm.WithTracer(rec)).Invoke("Raw.Service::Good")
	require.NoError(t, err)
	assert.Equal(t, int32(7), got)
	assert.Len(t, rec.Events(), 2)
}

func TestEngine_VerificationFailureAloneLeavesModuleByteIdentical(t *testing.T) {
	original := rawModule(t)
	mod := decodeRaw(t, original)
	broken := rawMethod("Raw.Service", "Broken", "()")

	res := instrument(t, rawEntry, mod, fullHook(broken))

	assert.False(t, res.Modified)
	assert.Equal(t, m.OutcomeSkipped, outcomeOf(t, res, broken).Status)
	assert.Equal(t, original, module.Encode(mod))
}

func TestEngine_IneligibleRawMethods(t *testing.T) {
	tests := []struct {
		name   string
		method m.MethodIdentity
		reason string
	}{
		{
			name:   "local slots exhausted",
			method: rawMethod("Raw.Service", "Crowded", "()"),
			reason: "local slots exhausted",
		},
		{
			name:   "accessor named by property row",
			method: rawMethod("Raw.Service", "get_Level", "()"),
			reason: domain.ReasonNotEligible,
		},
		{
			name:   "compiler-generated type",
			method: rawMethod("Raw.Closure", "Invoke", "()"),
			reason: domain.ReasonNotEligible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			original := rawModule(t)
			mod := decodeRaw(t, original)

			// Act
			res := instrument(t, rawEntry, mod, fullHook(tt.method))

			// Assert
			o := outcomeOf(t, res, tt.method)
			assert.Equal(t, m.OutcomeSkipped, o.Status)
			assert.Contains(t, o.Reason, tt.reason)
			assert.False(t, res.Modified)
			assert.Equal(t, original, module.Encode(mod))
		})
	}
}

func TestEngine_SharedIdentityRewritesEveryMatch(t *testing.T) {
	// Arrange
	b := module.NewBuilder("Raw")
	conv := b.Type("Raw", "Converter", module.KindClass, module.TypePublic)

	conv.Method("op_Explicit", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Int32, Params: []module.TypeSig{module.Int32}}).
		Code(func(a *module.Assembler) {
			a.Ldarg(0)
			a.Op(module.OpRet)
		})

	conv.Method("op_Explicit", module.MethodPublic|module.MethodStatic, module.MethodSig{Return: module.Int64, Params: []module.TypeSig{module.Int32}}).
		Code(func(a *module.Assembler) {
			a.LdcI8(1)
			a.Op(module.OpRet)
		})

	mod, err := b.Module()
	require.NoError(t, err)

	explicit := rawMethod("Raw.Converter", "op_Explicit", "(int32)")

	// Act
	res := instrument(t, rawEntry, mod, fullHook(explicit))

	// Assert
	require.Len(t, res.Outcomes, 2)
	require.Len(t, res.Methods, 2)

	for _, o := range res.Outcomes {
		assert.Equal(t, m.Outcome{Method: explicit, Status: m.OutcomeInstrumented}, o)
	}

	for _, md := range mod.Types[0].Methods {
		assert.NotZero(t, md.Flags&module.MethodInstrumented)

		_, err := module.VerifyMethod(mod, md)
		assert.NoError(t, err)
	}
}
