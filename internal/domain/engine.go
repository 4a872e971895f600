package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	m "tracehook.dev/pkg/tracehook/internal/model"
	"tracehook.dev/pkg/tracehook/internal/module"
)

// Trace shim the rewritten bodies call into.
const (
	ShimNamespace = "Tracehook.Runtime"
	ShimType      = "Trace"
	ShimEnter     = "Enter"
	ShimExit      = "Exit"
	ShimExitValue = "ExitValue"
)

// Outcome reasons for methods left untouched.
const (
	ReasonNoopHook            = "no-op hook"
	ReasonAlreadyInstrumented = "already instrumented"
	ReasonNotFound            = "method not found"
	ReasonNotEligible         = "method not eligible"
	ReasonModuleNotFound      = "module not found"
)

var (
	enterSig = module.MethodSig{
		Return: module.Int64,
		Params: []module.TypeSig{module.String, module.ArrayOf(module.Object)},
	}
	exitSig = module.MethodSig{
		Return: module.Void,
		Params: []module.TypeSig{module.String, module.Int64},
	}
	exitValueSig = module.MethodSig{
		Return: module.Void,
		Params: []module.TypeSig{module.String, module.Int64, module.Object},
	}
)

// InstrumentedMethod is a rewritten body together with the offsets of the
// trace calls inserted into it.
type InstrumentedMethod struct {
	Identity m.MethodIdentity
	Body     *module.MethodBody
	// TokenLocal is the local slot holding the correlation token.
	TokenLocal int
	// EnterSite is the offset of the Enter call.
	EnterSite uint32
	// ExitSites are the offsets of the Exit or ExitValue calls, one per return.
	ExitSites []uint32
}

// ModuleResult is the outcome of instrumenting one module.
type ModuleResult struct {
	Entry    string
	Module   *module.Module
	Modified bool
	Outcomes []m.Outcome
	Methods  []InstrumentedMethod
}

// Engine rewrites hooked method bodies to call the trace shim.
type Engine interface {
	// Instrument rewrites the hooked methods of mod in declaration order. mod
	// is modified in place. Methods that cannot be rewritten are rolled back
	// and reported as skipped.
	Instrument(ctx context.Context, entry string, mod *module.Module, hooks []m.HookDescriptor) (ModuleResult, error)
}

type engine struct{}

// NewEngine constructs an Engine.
func NewEngine() Engine {
	return &engine{}
}

func (e *engine) Instrument(ctx context.Context, entry string, mod *module.Module, hooks []m.HookDescriptor) (ModuleResult, error) {
	result := ModuleResult{Entry: entry, Module: mod}

	wanted := make(map[m.MethodIdentity]m.HookDescriptor)
	var order []m.MethodIdentity

	for _, h := range hooks {
		if h.Method.Module != entry {
			continue
		}

		if _, seen := wanted[h.Method]; !seen {
			order = append(order, h.Method)
		}

		wanted[h.Method] = h
	}

	if len(wanted) == 0 {
		return result, nil
	}

	found := make(map[m.MethodIdentity]bool)

	for _, t := range mod.Types {
		typeName := mod.FullName(t)

		for _, md := range t.Methods {
			id := identityOf(entry, mod, typeName, md)

			hook, ok := wanted[id]
			if !ok {
				continue
			}

			found[id] = true

			outcome, im := e.instrumentMethod(ctx, mod, t, md, hook)
			result.Outcomes = append(result.Outcomes, outcome)

			if im != nil {
				result.Modified = true
				result.Methods = append(result.Methods, *im)
			}
		}
	}

	for _, id := range order {
		if !found[id] {
			result.Outcomes = append(result.Outcomes, m.Outcome{Method: id, Status: m.OutcomeSkipped, Reason: ReasonNotFound})
		}
	}

	return result, nil
}

func (e *engine) instrumentMethod(ctx context.Context, mod *module.Module, t *module.TypeDef, md *module.MethodDef, hook m.HookDescriptor) (m.Outcome, *InstrumentedMethod) {
	id := hook.Method

	switch {
	case md.Flags&module.MethodInstrumented != 0:
		return m.Outcome{Method: id, Status: m.OutcomeUnmodified, Reason: ReasonAlreadyInstrumented}, nil
	case mod.IsSynthesized(t) || mod.IsAccessor(t, md):
		return m.Outcome{Method: id, Status: m.OutcomeSkipped, Reason: ReasonNotEligible}, nil
	case hook.IsNoop():
		return m.Outcome{Method: id, Status: m.OutcomeUnmodified, Reason: ReasonNoopHook}, nil
	case md.Body == nil || len(md.Body.Code) == 0:
		return m.Outcome{Method: id, Status: m.OutcomeSkipped, Reason: ReasonNotEligible}, nil
	}

	mark := mod.Mark()

	im, body, err := rewrite(mod, md, hook)
	if err != nil {
		mod.Rollback(mark)
		slog.WarnContext(ctx, "Skipped method", "method", id.String(), "error", err)

		return m.Outcome{Method: id, Status: m.OutcomeSkipped, Reason: err.Error()}, nil
	}

	md.Body = body
	md.Flags |= module.MethodInstrumented

	slog.DebugContext(ctx, "instrumented method", "method", id.String(), "exits", len(im.ExitSites))

	return m.Outcome{Method: id, Status: m.OutcomeInstrumented}, im
}

type rewriter struct {
	mod    *module.Module
	md     *module.MethodDef
	hook   m.HookDescriptor
	body   *module.MethodBody
	name   string
	token  int
	result int

	enter *module.Instruction
	exits []*module.Instruction
}

func rewrite(mod *module.Module, md *module.MethodDef, hook m.HookDescriptor) (*InstrumentedMethod, *module.Body, error) {
	body, err := module.DecodeBody(md.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUnsupportedMethodShape, err)
	}

	r := &rewriter{
		mod:    mod,
		md:     md,
		hook:   hook,
		body:   body,
		name:   hook.Method.Type + "::" + hook.Method.Name + hook.Method.Signature,
		result: -1,
	}

	if err := r.check(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUnsupportedMethodShape, err)
	}

	r.token = len(body.Locals)
	body.Locals = append(body.Locals, module.Int64)

	if hook.LogReturn && !md.Sig.Return.IsVoid() {
		r.result = len(body.Locals)
		body.Locals = append(body.Locals, md.Sig.Return)
	}

	// Table rows are appended in first-use order: shim type, Enter, the
	// method name, then Exit or ExitValue.
	shim := mod.AddTypeRef(ShimNamespace, ShimType)
	enter := mod.AddMemberRef(shim, ShimEnter, enterSig)

	r.prologue(enter)

	if hook.LogReturn {
		if md.Sig.Return.IsVoid() {
			r.epilogues(mod.AddMemberRef(shim, ShimExit, exitSig))
		} else {
			r.epilogues(mod.AddMemberRef(shim, ShimExitValue, exitValueSig))
		}
	}

	declared := body.MaxStack
	body.MaxStack = math.MaxUint16

	depth, err := module.Verify(mod, md.Sig, body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrVerificationFailure, err)
	}

	body.MaxStack = max(declared, uint16(depth))

	encoded, err := module.EncodeBody(body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrVerificationFailure, err)
	}

	im := &InstrumentedMethod{
		Identity:   hook.Method,
		Body:       body,
		TokenLocal: r.token,
		EnterSite:  r.enter.Offset,
	}

	for _, in := range r.exits {
		im.ExitSites = append(im.ExitSites, in.Offset)
	}

	return im, encoded, nil
}

// check rejects bodies whose shape the rewrite cannot preserve.
func (r *rewriter) check() error {
	for _, reg := range r.body.Regions {
		switch reg.Kind {
		case module.HandlerFilter, module.HandlerFault:
			return fmt.Errorf("%s handler", reg.Kind)
		}
	}

	needed := 1
	if r.hook.LogReturn && !r.md.Sig.Return.IsVoid() {
		needed++
	}

	if len(r.body.Locals)+needed > math.MaxUint8+1 {
		return errors.New("local slots exhausted")
	}

	index := make(map[*module.Instruction]int, len(r.body.Instructions))
	for i, in := range r.body.Instructions {
		index[in] = i
	}

	end := func(in *module.Instruction) int {
		if in == nil {
			return len(r.body.Instructions)
		}

		return index[in]
	}

	protected := func(i int) bool {
		for _, reg := range r.body.Regions {
			if i >= index[reg.TryStart] && i < end(reg.TryEnd) {
				return true
			}

			if i >= index[reg.HandlerStart] && i < end(reg.HandlerEnd) {
				return true
			}
		}

		return false
	}

	for i, in := range r.body.Instructions {
		switch in.Op {
		case module.OpRet:
			if protected(i) {
				return fmt.Errorf("ret inside protected region at IL_%04x", in.Offset)
			}
		case module.OpTail:
			if r.hook.LogReturn {
				return fmt.Errorf("tail call at IL_%04x", in.Offset)
			}
		}
	}

	return nil
}

func (r *rewriter) loadName() *module.Instruction {
	if r.hook.LogName {
		return &module.Instruction{Op: module.OpLdstr, String: r.mod.AddString(r.name)}
	}

	return &module.Instruction{Op: module.OpLdnull}
}

// prologue inserts the Enter call ahead of the first original instruction.
// Branches into the original first instruction keep pointing at it.
func (r *rewriter) prologue(enter module.Token) {
	code := []*module.Instruction{r.loadName()}

	if r.hook.LogParameters {
		params := r.md.Sig.Params
		first := 0

		if r.md.Sig.HasThis {
			first = 1
		}

		code = append(code,
			&module.Instruction{Op: module.OpLdcI4, Int: int64(len(params))},
			&module.Instruction{Op: module.OpNewarr, Elem: module.ElemObject},
		)

		for i, p := range params {
			code = append(code,
				&module.Instruction{Op: module.OpDup},
				&module.Instruction{Op: module.OpLdcI4, Int: int64(i)},
				&module.Instruction{Op: module.OpLdarg, Int: int64(first + i)},
			)

			if p.IsValueType() {
				code = append(code, &module.Instruction{Op: module.OpBox, Elem: p.Elem})
			}

			code = append(code, &module.Instruction{Op: module.OpStelemRef})
		}
	} else {
		code = append(code, &module.Instruction{Op: module.OpLdnull})
	}

	r.enter = &module.Instruction{Op: module.OpCall, Token: enter}
	code = append(code, r.enter, &module.Instruction{Op: module.OpStloc, Int: int64(r.token)})

	r.body.Instructions = append(code, r.body.Instructions...)
}

// epilogues rewrites every ret. The ret instruction itself becomes the first
// instruction of the exit sequence so branches into it stay valid.
func (r *rewriter) epilogues(exit module.Token) {
	var out []*module.Instruction

	for _, in := range r.body.Instructions {
		if in.Op != module.OpRet {
			out = append(out, in)
			continue
		}

		call := &module.Instruction{Op: module.OpCall, Token: exit}
		r.exits = append(r.exits, call)

		if r.result < 0 {
			name := r.loadName()
			*in = module.Instruction{Offset: in.Offset, Op: name.Op, String: name.String}
			out = append(out,
				in,
				&module.Instruction{Op: module.OpLdloc, Int: int64(r.token)},
				call,
				&module.Instruction{Op: module.OpRet},
			)

			continue
		}

		*in = module.Instruction{Offset: in.Offset, Op: module.OpStloc, Int: int64(r.result)}
		out = append(out,
			in,
			r.loadName(),
			&module.Instruction{Op: module.OpLdloc, Int: int64(r.token)},
			&module.Instruction{Op: module.OpLdloc, Int: int64(r.result)},
		)

		if ret := r.md.Sig.Return; ret.IsValueType() {
			out = append(out, &module.Instruction{Op: module.OpBox, Elem: ret.Elem})
		}

		out = append(out,
			call,
			&module.Instruction{Op: module.OpLdloc, Int: int64(r.result)},
			&module.Instruction{Op: module.OpRet},
		)
	}

	r.body.Instructions = out
}
