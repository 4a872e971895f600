package module

import (
	"errors"
	"fmt"
)

// ErrInvalidBody is returned by Verify for any body the loader would reject.
var ErrInvalidBody = errors.New("module: invalid method body")

// VerifyMethod decodes the body of md and verifies it against m.
func VerifyMethod(m *Module, md *MethodDef) (int, error) {
	mb, err := DecodeBody(md.Body)
	if err != nil {
		return 0, err
	}

	return Verify(m, md.Sig, mb)
}

// Verify checks a body the way the runtime loader does: every branch lands on
// an instruction of the body, the stack height agrees on every edge, regions
// nest properly and control only crosses them where allowed, operands are in
// range and the declared max stack is not exceeded. It returns the maximum
// stack depth reached.
func Verify(m *Module, sig MethodSig, mb *MethodBody) (int, error) {
	v := &verifier{m: m, sig: sig, mb: mb, n: len(mb.Instructions)}

	if v.n == 0 {
		return 0, fmt.Errorf("%w: empty body", ErrInvalidBody)
	}

	v.index = make(map[*Instruction]int, v.n)
	for i, in := range mb.Instructions {
		if in == nil {
			return 0, fmt.Errorf("%w: nil instruction at %d", ErrInvalidBody, i)
		}

		if _, dup := v.index[in]; dup {
			return 0, fmt.Errorf("%w: instruction %d appears twice", ErrInvalidBody, i)
		}

		v.index[in] = i
	}

	if err := v.regions(); err != nil {
		return 0, err
	}

	for i, in := range mb.Instructions {
		if err := v.operands(i, in); err != nil {
			return 0, err
		}
	}

	maxStack, err := v.stack()
	if err != nil {
		return 0, err
	}

	if maxStack > int(mb.MaxStack) {
		return maxStack, fmt.Errorf("%w: stack depth %d exceeds declared max stack %d", ErrInvalidBody, maxStack, mb.MaxStack)
	}

	return maxStack, nil
}

type span struct {
	start, end int
}

func (s span) contains(i int) bool { return i >= s.start && i < s.end }

func (s span) valid() bool { return s.start < s.end }

func (s span) disjoint(o span) bool { return s.end <= o.start || o.end <= s.start }

func (s span) nests(o span) bool {
	disjoint := s.disjoint(o)
	inside := s.start >= o.start && s.end <= o.end
	outside := o.start >= s.start && o.end <= s.end

	return disjoint || inside || outside
}

type region struct {
	kind    HandlerKind
	try     span
	handler span
	filter  span
}

func (r region) protects(i int) bool {
	return r.try.contains(i) || r.handler.contains(i) || r.filter.contains(i)
}

type verifier struct {
	m       *Module
	sig     MethodSig
	mb      *MethodBody
	n       int
	index   map[*Instruction]int
	regs    []region
	heights []int
}

func (v *verifier) fail(i int, format string, args ...any) error {
	in := v.mb.Instructions[i]

	return fmt.Errorf("%w: %s at %d: %s", ErrInvalidBody, in.Op, i, fmt.Sprintf(format, args...))
}

func (v *verifier) at(in *Instruction) (int, bool) {
	if in == nil {
		return v.n, true
	}

	i, ok := v.index[in]

	return i, ok
}

func (v *verifier) regions() error {
	var spans []span

	for ri, r := range v.mb.Regions {
		var bounds [5]int

		points := []*Instruction{r.TryStart, r.TryEnd, r.HandlerStart, r.HandlerEnd, r.FilterStart}
		for pi, p := range points {
			idx, ok := v.at(p)
			if !ok {
				return fmt.Errorf("%w: region %d references an instruction outside the body", ErrInvalidBody, ri)
			}

			bounds[pi] = idx
		}

		reg := region{
			kind:    r.Kind,
			try:     span{bounds[0], bounds[1]},
			handler: span{bounds[2], bounds[3]},
		}

		if !reg.try.valid() || !reg.handler.valid() {
			return fmt.Errorf("%w: region %d is empty or inverted", ErrInvalidBody, ri)
		}

		if !reg.try.disjoint(reg.handler) {
			return fmt.Errorf("%w: region %d handler overlaps its try block", ErrInvalidBody, ri)
		}

		switch r.Kind {
		case HandlerCatch:
			if !v.m.ValidTypeToken(r.CatchType) {
				return fmt.Errorf("%w: region %d catch type %s", ErrInvalidBody, ri, r.CatchType)
			}
		case HandlerFilter:
			reg.filter = span{bounds[4], bounds[2]}
			if !reg.filter.valid() || reg.try.contains(reg.filter.start) {
				return fmt.Errorf("%w: region %d filter block is misplaced", ErrInvalidBody, ri)
			}

			spans = append(spans, reg.filter)
		case HandlerFinally, HandlerFault:
		default:
			return fmt.Errorf("%w: region %d has unknown kind %d", ErrInvalidBody, ri, r.Kind)
		}

		spans = append(spans, reg.try, reg.handler)
		v.regs = append(v.regs, reg)
	}

	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			if !spans[i].nests(spans[j]) {
				return fmt.Errorf("%w: regions [%d,%d) and [%d,%d) overlap", ErrInvalidBody,
					spans[i].start, spans[i].end, spans[j].start, spans[j].end)
			}
		}
	}

	return nil
}

func (v *verifier) operands(i int, in *Instruction) error {
	switch in.Op {
	case OpLdarg, OpStarg:
		if in.Int < 0 || in.Int >= int64(v.sig.ArgCount()) {
			return v.fail(i, "argument %d out of range", in.Int)
		}
	case OpLdloc, OpStloc:
		if in.Int < 0 || in.Int >= int64(len(v.mb.Locals)) {
			return v.fail(i, "local %d out of range", in.Int)
		}
	case OpLdstr:
		if int(in.String) >= len(v.m.Strings) {
			return v.fail(i, "string %d out of range", in.String)
		}
	case OpCall:
		if _, err := v.m.MethodSigOf(in.Token); err != nil {
			return v.fail(i, "%v", err)
		}
	case OpNewobj:
		sig, err := v.m.MethodSigOf(in.Token)
		if err != nil {
			return v.fail(i, "%v", err)
		}

		if !sig.HasThis || !sig.Return.IsVoid() || v.methodName(in.Token) != ".ctor" {
			return v.fail(i, "%s is not a constructor", v.m.MethodName(in.Token))
		}
	case OpNewarr:
		if in.Elem == ElemVoid || in.Elem == ElemSZArray {
			return v.fail(i, "bad array element %#x", uint8(in.Elem))
		}
	case OpBox, OpUnbox:
		if !(TypeSig{Elem: in.Elem}).IsValueType() {
			return v.fail(i, "%#x is not a value type", uint8(in.Elem))
		}
	case OpTail:
		if i+2 >= v.n || v.mb.Instructions[i+1].Op != OpCall || v.mb.Instructions[i+2].Op != OpRet {
			return v.fail(i, "tail. must prefix call followed by ret")
		}
	case OpRet:
		for _, r := range v.regs {
			if r.protects(i) {
				return v.fail(i, "ret inside a protected region")
			}
		}
	case OpEndfinally:
		if !v.inHandler(i, HandlerFinally, HandlerFault) {
			return v.fail(i, "endfinally outside a finally or fault handler")
		}
	case OpEndfilter:
		inFilter := false

		for _, r := range v.regs {
			if r.kind == HandlerFilter && r.filter.contains(i) {
				inFilter = true
			}
		}

		if !inFilter {
			return v.fail(i, "endfilter outside a filter block")
		}
	case OpRethrow:
		if !v.inHandler(i, HandlerCatch, HandlerFilter) {
			return v.fail(i, "rethrow outside a catch handler")
		}
	}

	if !in.Op.IsBranch() {
		return nil
	}

	targets := in.Targets
	if in.Op != OpSwitch {
		targets = []*Instruction{in.Target}
	}

	for _, t := range targets {
		if t == nil {
			return v.fail(i, "missing branch target")
		}

		ti, ok := v.index[t]
		if !ok {
			return v.fail(i, "branch target outside the body")
		}

		var err error
		if in.Op.Flow() == FlowLeave {
			err = v.leaveEdge(i, ti)
		} else {
			err = v.edge(i, ti)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (v *verifier) methodName(tok Token) string {
	name := v.m.MethodName(tok)
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == ':' && name[i-1] == ':' {
			return name[i+1:]
		}
	}

	return name
}

func (v *verifier) inHandler(i int, kinds ...HandlerKind) bool {
	for _, r := range v.regs {
		if !r.handler.contains(i) {
			continue
		}

		for _, k := range kinds {
			if r.kind == k {
				return true
			}
		}
	}

	return false
}

// edge checks an ordinary control transfer from instruction i to t. A try
// block may only be entered at its first instruction and handlers may not be
// entered or left at all.
func (v *verifier) edge(i, t int) error {
	for _, r := range v.regs {
		if r.try.contains(i) != r.try.contains(t) {
			if r.try.contains(i) || t != r.try.start {
				return v.fail(i, "branch to %d crosses a try block boundary", t)
			}
		}

		if r.handler.contains(i) != r.handler.contains(t) || r.filter.contains(i) != r.filter.contains(t) {
			return v.fail(i, "branch to %d crosses a handler boundary", t)
		}
	}

	return nil
}

// leaveEdge checks a leave, which may exit any number of regions but never enter one.
func (v *verifier) leaveEdge(i, t int) error {
	for _, r := range v.regs {
		if (r.try.contains(t) && !r.try.contains(i)) || (r.handler.contains(t) && !r.handler.contains(i)) {
			return v.fail(i, "leave to %d enters a protected region", t)
		}

		if r.kind == HandlerFinally && r.handler.contains(i) && !r.handler.contains(t) {
			return v.fail(i, "leave out of a finally handler")
		}
	}

	return nil
}

func (v *verifier) effect(in *Instruction) (int, int, error) {
	switch in.Op {
	case OpCall:
		sig, err := v.m.MethodSigOf(in.Token)
		if err != nil {
			return 0, 0, err
		}

		push := 1
		if sig.Return.IsVoid() {
			push = 0
		}

		return sig.ArgCount(), push, nil
	case OpNewobj:
		sig, err := v.m.MethodSigOf(in.Token)
		if err != nil {
			return 0, 0, err
		}

		return len(sig.Params), 1, nil
	case OpRet:
		if v.sig.Return.IsVoid() {
			return 0, 0, nil
		}

		return 1, 0, nil
	default:
		info := opTable[in.Op]

		return info.pop, info.push, nil
	}
}

func (v *verifier) stack() (int, error) {
	v.heights = make([]int, v.n)
	for i := range v.heights {
		v.heights[i] = -1
	}

	var work []int

	maxStack := 0

	enter := func(from, to, h int) error {
		if v.heights[to] == -1 {
			v.heights[to] = h
			work = append(work, to)

			return nil
		}

		if v.heights[to] != h {
			return v.fail(from, "stack height %d at %d disagrees with %d", h, to, v.heights[to])
		}

		return nil
	}

	if err := enter(0, 0, 0); err != nil {
		return 0, err
	}

	for _, r := range v.regs {
		start := 0
		if r.kind == HandlerCatch || r.kind == HandlerFilter {
			start = 1
		}

		if err := enter(r.handler.start, r.handler.start, start); err != nil {
			return 0, err
		}

		if r.kind == HandlerFilter {
			if err := enter(r.filter.start, r.filter.start, 1); err != nil {
				return 0, err
			}
		}
	}

	fallTo := func(i, h int) error {
		if i+1 >= v.n {
			return v.fail(i, "control falls off the end of the body")
		}

		if err := v.edge(i, i+1); err != nil {
			return err
		}

		return enter(i, i+1, h)
	}

	for len(work) > 0 {
		i := work[len(work)-1]
		work = work[:len(work)-1]

		in := v.mb.Instructions[i]
		h := v.heights[i]

		for _, r := range v.regs {
			if i == r.try.start && h != 0 {
				return 0, v.fail(i, "stack not empty on entry to a try block")
			}
		}

		pop, push, err := v.effect(in)
		if err != nil {
			return 0, v.fail(i, "%v", err)
		}

		if h < pop {
			return 0, v.fail(i, "stack underflow: need %d have %d", pop, h)
		}

		after := h - pop + push
		maxStack = max(maxStack, h, after)

		switch in.Op.Flow() {
		case FlowNext, FlowMeta:
			err = fallTo(i, after)
		case FlowBranch:
			err = enter(i, v.index[in.Target], after)
		case FlowCondBranch:
			targets := in.Targets
			if in.Op != OpSwitch {
				targets = []*Instruction{in.Target}
			}

			for _, t := range targets {
				if err = enter(i, v.index[t], after); err != nil {
					break
				}
			}

			if err == nil {
				err = fallTo(i, after)
			}
		case FlowReturn:
			if after != 0 {
				err = v.fail(i, "%d values left on the stack at ret", after)
			}
		case FlowLeave:
			err = enter(i, v.index[in.Target], 0)
		case FlowThrow:
		case FlowEndHandler:
			if in.Op == OpEndfilter && h != 1 {
				err = v.fail(i, "endfilter needs exactly one value")
			}
		}

		if err != nil {
			return 0, err
		}
	}

	return maxStack, nil
}
