package vm

import (
	"errors"
	"fmt"

	"tracehook.dev/pkg/tracehook/internal/module"
)

type span struct {
	start, end int
}

func (s span) contains(i int) bool { return i >= s.start && i < s.end }

type region struct {
	kind      module.HandlerKind
	try       span
	handler   span
	filter    int
	catchType string
}

type compiled struct {
	body    *module.MethodBody
	index   map[*module.Instruction]int
	regions []region
}

type exitKind int

const (
	exitReturn exitKind = iota
	exitEndfinally
	exitEndfilter
)

type frame struct {
	code   *compiled
	args   []Value
	locals []Value
	stack  []Value
	exc    *Object
	fault  error
}

func (f *frame) push(v Value) { f.stack = append(f.stack, v) }

func (f *frame) pop() Value {
	if len(f.stack) == 0 {
		if f.fault == nil {
			f.fault = fmt.Errorf("%w: stack underflow", ErrInvalidProgram)
		}

		return nil
	}

	v := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]

	return v
}

func (f *frame) popN(n int) []Value {
	if n > len(f.stack) {
		f.fault = fmt.Errorf("%w: stack underflow", ErrInvalidProgram)
		return make([]Value, n)
	}

	out := append([]Value(nil), f.stack[len(f.stack)-n:]...)
	f.stack = f.stack[:len(f.stack)-n]

	return out
}

func (m *Machine) compile(md *module.MethodDef) (*compiled, error) {
	if c, ok := m.bodies[md]; ok {
		return c, nil
	}

	body, err := module.DecodeBody(md.Body)
	if err != nil {
		return nil, err
	}

	c := &compiled{body: body, index: make(map[*module.Instruction]int, len(body.Instructions))}
	for i, in := range body.Instructions {
		c.index[in] = i
	}

	at := func(in *module.Instruction) int {
		if in == nil {
			return len(body.Instructions)
		}

		return c.index[in]
	}

	for _, r := range body.Regions {
		c.regions = append(c.regions, region{
			kind:      r.Kind,
			try:       span{at(r.TryStart), at(r.TryEnd)},
			handler:   span{at(r.HandlerStart), at(r.HandlerEnd)},
			filter:    at(r.FilterStart),
			catchType: m.mod.TypeName(r.CatchType),
		})
	}

	m.bodies[md] = c

	return c, nil
}

func zero(sig module.TypeSig) Value {
	switch sig.Elem {
	case module.ElemI4:
		return int32(0)
	case module.ElemI8:
		return int64(0)
	case module.ElemR8:
		return float64(0)
	case module.ElemBool:
		return false
	default:
		return nil
	}
}

func (m *Machine) call(md *module.MethodDef, args []Value) (Value, error) {
	if md.Body == nil {
		return nil, fmt.Errorf("%w: %s has no body", ErrInvalidProgram, m.mod.String(md.Name))
	}

	if len(args) != md.Sig.ArgCount() {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrInvalidProgram, m.mod.String(md.Name), md.Sig.ArgCount(), len(args))
	}

	m.depth++
	defer func() { m.depth-- }()

	if m.depth > m.maxDepth {
		return nil, ErrStackOverflow
	}

	c, err := m.compile(md)
	if err != nil {
		return nil, err
	}

	f := &frame{code: c, args: append([]Value(nil), args...)}
	for _, l := range c.body.Locals {
		f.locals = append(f.locals, zero(l))
	}

	v, _, err := m.exec(f, 0)
	if err != nil {
		return nil, err
	}

	return coerce(md.Sig.Return.Elem, v), nil
}

// exec runs from pc until a ret, endfinally or endfilter.
func (m *Machine) exec(f *frame, pc int) (Value, exitKind, error) {
	instrs := f.code.body.Instructions

	for {
		if pc < 0 || pc >= len(instrs) {
			return nil, 0, fmt.Errorf("%w: control left the body at %d", ErrInvalidProgram, pc)
		}

		m.steps++
		if m.maxSteps > 0 && m.steps > m.maxSteps {
			return nil, 0, ErrStepLimit
		}

		in := instrs[pc]
		next := pc + 1

		var err error

		switch in.Op {
		case module.OpNop, module.OpTail:
		case module.OpLdnull:
			f.push(nil)
		case module.OpLdarg:
			if int(in.Int) >= len(f.args) {
				return nil, 0, fmt.Errorf("%w: argument %d", ErrInvalidProgram, in.Int)
			}

			f.push(f.args[in.Int])
		case module.OpStarg:
			if int(in.Int) >= len(f.args) {
				return nil, 0, fmt.Errorf("%w: argument %d", ErrInvalidProgram, in.Int)
			}

			f.args[in.Int] = f.pop()
		case module.OpLdloc:
			if int(in.Int) >= len(f.locals) {
				return nil, 0, fmt.Errorf("%w: local %d", ErrInvalidProgram, in.Int)
			}

			f.push(f.locals[in.Int])
		case module.OpStloc:
			if int(in.Int) >= len(f.locals) {
				return nil, 0, fmt.Errorf("%w: local %d", ErrInvalidProgram, in.Int)
			}

			f.locals[in.Int] = f.pop()
		case module.OpLdcI4:
			f.push(int32(in.Int))
		case module.OpLdcI8:
			f.push(in.Int)
		case module.OpLdcR8:
			f.push(in.Float)
		case module.OpLdstr:
			f.push(m.mod.String(in.String))
		case module.OpDup:
			v := f.pop()
			f.push(v)
			f.push(v)
		case module.OpPop:
			f.pop()
		case module.OpAdd, module.OpSub, module.OpMul, module.OpDiv, module.OpRem,
			module.OpCeq, module.OpClt, module.OpCgt:
			b := f.pop()
			a := f.pop()

			var v Value

			if v, err = binary(in.Op, a, b); err == nil {
				f.push(v)
			}
		case module.OpNeg:
			var v Value

			if v, err = negate(f.pop()); err == nil {
				f.push(v)
			}
		case module.OpBr, module.OpBrS:
			next = f.code.index[in.Target]
		case module.OpBrtrue, module.OpBrtrueS:
			if truthy(f.pop()) {
				next = f.code.index[in.Target]
			}
		case module.OpBrfalse, module.OpBrfalseS:
			if !truthy(f.pop()) {
				next = f.code.index[in.Target]
			}
		case module.OpSwitch:
			if idx, ok := f.pop().(int32); ok && idx >= 0 && int(idx) < len(in.Targets) {
				next = f.code.index[in.Targets[idx]]
			}
		case module.OpLeave, module.OpLeaveS:
			target := f.code.index[in.Target]
			if err = m.leave(f, pc, target); err == nil {
				f.stack = f.stack[:0]
				f.exc = nil
				next = target
			}
		case module.OpCall:
			err = m.execCall(f, in.Token)
		case module.OpNewobj:
			err = m.execNewobj(f, in.Token)
		case module.OpRet:
			var v Value
			if len(f.stack) > 0 {
				v = f.pop()
			}

			return v, exitReturn, f.fault
		case module.OpThrow:
			exc, ok := f.pop().(*Object)
			if !ok || exc == nil {
				exc = NewException("System.NullReferenceException", "throw of a null reference")
			}

			err = &ThrownError{Exception: exc}
		case module.OpRethrow:
			if f.exc == nil {
				return nil, 0, fmt.Errorf("%w: rethrow outside a catch handler", ErrInvalidProgram)
			}

			err = &ThrownError{Exception: f.exc}
		case module.OpEndfinally:
			return nil, exitEndfinally, f.fault
		case module.OpEndfilter:
			v := f.pop()

			return v, exitEndfilter, f.fault
		case module.OpNewarr:
			n, ok := f.pop().(int32)
			if !ok {
				return nil, 0, fmt.Errorf("%w: newarr length", ErrInvalidProgram)
			}

			if n < 0 {
				err = &ThrownError{Exception: NewException("System.OverflowException", "negative array size")}
				break
			}

			f.push(&Array{Elems: make([]Value, n)})
		case module.OpStelemRef:
			v := f.pop()
			idx := f.pop()
			arr := f.pop()

			var slot *Value
			if slot, err = element(arr, idx); err == nil {
				*slot = v
			}
		case module.OpLdelemRef:
			idx := f.pop()
			arr := f.pop()

			var slot *Value
			if slot, err = element(arr, idx); err == nil {
				f.push(*slot)
			}
		case module.OpLdlen:
			arr, ok := f.pop().(*Array)
			if !ok || arr == nil {
				err = &ThrownError{Exception: NewException("System.NullReferenceException", "ldlen on null")}
				break
			}

			f.push(int32(len(arr.Elems)))
		case module.OpBox:
			f.push(coerce(in.Elem, f.pop()))
		case module.OpUnbox:
			v := f.pop()
			if v == nil {
				err = &ThrownError{Exception: NewException("System.NullReferenceException", "unbox of null")}
				break
			}

			f.push(v)
		default:
			return nil, 0, fmt.Errorf("%w: opcode %s", ErrInvalidProgram, in.Op)
		}

		if f.fault != nil {
			return nil, 0, f.fault
		}

		if err != nil {
			var thrown *ThrownError
			if !errors.As(err, &thrown) {
				return nil, 0, err
			}

			if next, err = m.handle(f, pc, thrown.Exception); err != nil {
				return nil, 0, err
			}
		}

		pc = next
	}
}

// handle unwinds regions protecting pc, innermost first. It returns the
// catch handler to resume at, running finally and fault handlers on the way.
func (m *Machine) handle(f *frame, pc int, exc *Object) (int, error) {
	for _, r := range f.code.regions {
		if !r.try.contains(pc) {
			continue
		}

		switch r.kind {
		case module.HandlerCatch:
			if m.IsA(exc.Type, r.catchType) {
				f.stack = append(f.stack[:0], exc)
				f.exc = exc

				return r.handler.start, nil
			}
		case module.HandlerFilter:
			saved := f.stack
			f.stack = []Value{exc}

			v, kind, err := m.exec(f, r.filter)
			f.stack = saved

			if err != nil {
				return -1, err
			}

			if kind == exitEndfilter && truthy(v) {
				f.stack = append(f.stack[:0], exc)
				f.exc = exc

				return r.handler.start, nil
			}
		case module.HandlerFinally, module.HandlerFault:
			if err := m.runHandler(f, r.handler.start); err != nil {
				return -1, err
			}
		}
	}

	return -1, &ThrownError{Exception: exc}
}

// leave runs the finally handlers of every region exited by a leave from pc to target.
func (m *Machine) leave(f *frame, pc, target int) error {
	for _, r := range f.code.regions {
		if r.kind != module.HandlerFinally || !r.try.contains(pc) || r.try.contains(target) {
			continue
		}

		if err := m.runHandler(f, r.handler.start); err != nil {
			return err
		}
	}

	return nil
}

func (m *Machine) runHandler(f *frame, start int) error {
	saved := f.stack
	f.stack = nil

	_, kind, err := m.exec(f, start)
	f.stack = saved

	if err != nil {
		return err
	}

	if kind != exitEndfinally {
		return fmt.Errorf("%w: handler did not end with endfinally", ErrInvalidProgram)
	}

	return nil
}

func (m *Machine) execCall(f *frame, tok module.Token) error {
	sig, err := m.mod.MethodSigOf(tok)
	if err != nil {
		return err
	}

	args := f.popN(sig.ArgCount())
	if f.fault != nil {
		return f.fault
	}

	var ret Value

	switch tok.Table() {
	case module.TableMethodDef:
		md, _, _ := m.mod.Method(tok.Row())
		ret, err = m.call(md, args)
	default:
		ret, err = m.external(m.mod.MethodName(tok), args)
	}

	if err != nil {
		return err
	}

	if !sig.Return.IsVoid() {
		f.push(ret)
	}

	return nil
}

func (m *Machine) execNewobj(f *frame, tok module.Token) error {
	sig, err := m.mod.MethodSigOf(tok)
	if err != nil {
		return err
	}

	args := f.popN(len(sig.Params))
	if f.fault != nil {
		return f.fault
	}

	if tok.Table() == module.TableMethodDef {
		md, td, _ := m.mod.Method(tok.Row())
		obj := &Object{Type: m.mod.FullName(td), Fields: map[string]Value{}}

		if _, err := m.call(md, append([]Value{obj}, args...)); err != nil {
			return err
		}

		f.push(obj)

		return nil
	}

	name := m.mod.MethodName(tok)
	typeName := m.mod.TypeName(m.mod.MemberRefs[tok.Row()-1].Parent)
	obj := &Object{Type: typeName, Fields: map[string]Value{}}

	if fn, ok := m.hosts[name]; ok {
		if _, err := fn(append([]Value{obj}, args...)); err != nil {
			return err
		}
	} else if len(args) > 0 {
		if msg, ok := args[0].(string); ok {
			obj.Fields["message"] = msg
		}
	}

	f.push(obj)

	return nil
}

func (m *Machine) external(name string, args []Value) (Value, error) {
	switch name {
	case ShimEnter:
		if m.tracer == nil {
			return int64(0), nil
		}

		var values []Value
		if arr, ok := args[1].(*Array); ok && arr != nil {
			values = append([]Value{}, arr.Elems...)
		}

		return m.tracer.Enter(args[0], values), nil
	case ShimExit:
		if m.tracer != nil {
			token, _ := args[1].(int64)
			m.tracer.Exit(args[0], token)
		}

		return nil, nil
	case ShimExitValue:
		if m.tracer != nil {
			token, _ := args[1].(int64)
			m.tracer.ExitValue(args[0], token, args[2])
		}

		return nil, nil
	}

	if fn, ok := m.hosts[name]; ok {
		return fn(args)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnresolved, name)
}

func element(arr, idx Value) (*Value, error) {
	a, ok := arr.(*Array)
	if !ok || a == nil {
		return nil, &ThrownError{Exception: NewException("System.NullReferenceException", "array is null")}
	}

	i, ok := idx.(int32)
	if !ok {
		return nil, fmt.Errorf("%w: array index must be int32", ErrInvalidProgram)
	}

	if i < 0 || int(i) >= len(a.Elems) {
		return nil, &ThrownError{Exception: NewException("System.IndexOutOfRangeException", "index out of range")}
	}

	return &a.Elems[i], nil
}

func truthy(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case int32:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case bool:
		return x
	default:
		return true
	}
}

// coerce turns the int32 produced by comparisons into a bool where the
// declared type is bool.
func coerce(elem module.ElementType, v Value) Value {
	if elem == module.ElemBool {
		if n, ok := v.(int32); ok {
			return n != 0
		}
	}

	return v
}

func boolValue(b bool) Value {
	if b {
		return int32(1)
	}

	return int32(0)
}

func negate(v Value) (Value, error) {
	switch x := v.(type) {
	case int32:
		return -x, nil
	case int64:
		return -x, nil
	case float64:
		return -x, nil
	default:
		return nil, fmt.Errorf("%w: neg on %T", ErrInvalidProgram, v)
	}
}

func divideByZero() error {
	return &ThrownError{Exception: NewException("System.DivideByZeroException", "attempted to divide by zero")}
}

func binary(op module.Opcode, a, b Value) (Value, error) {
	if op == module.OpCeq {
		return boolValue(a == b), nil
	}

	switch x := a.(type) {
	case int32:
		y, ok := b.(int32)
		if !ok {
			break
		}

		return arith(op, x, y)
	case int64:
		y, ok := b.(int64)
		if !ok {
			break
		}

		return arith(op, x, y)
	case float64:
		y, ok := b.(float64)
		if !ok {
			break
		}

		switch op {
		case module.OpAdd:
			return x + y, nil
		case module.OpSub:
			return x - y, nil
		case module.OpMul:
			return x * y, nil
		case module.OpDiv:
			return x / y, nil
		case module.OpClt:
			return boolValue(x < y), nil
		case module.OpCgt:
			return boolValue(x > y), nil
		}
	case string:
		if y, ok := b.(string); ok && op == module.OpAdd {
			return x + y, nil
		}
	}

	return nil, fmt.Errorf("%w: %s on %T and %T", ErrInvalidProgram, op, a, b)
}

func arith[T int32 | int64](op module.Opcode, x, y T) (Value, error) {
	switch op {
	case module.OpAdd:
		return x + y, nil
	case module.OpSub:
		return x - y, nil
	case module.OpMul:
		return x * y, nil
	case module.OpDiv:
		if y == 0 {
			return nil, divideByZero()
		}

		return x / y, nil
	case module.OpRem:
		if y == 0 {
			return nil, divideByZero()
		}

		return x % y, nil
	case module.OpClt:
		return boolValue(x < y), nil
	case module.OpCgt:
		return boolValue(x > y), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidProgram, op)
	}
}
