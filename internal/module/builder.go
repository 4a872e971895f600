package module

import (
	"errors"
	"fmt"
	"math"
)

// Builder constructs a module. Method bodies are assembled in Build, after
// every type and method has been declared, so method tokens are final by the
// time a body refers to them.
type Builder struct {
	m     *Module
	types []*TypeBuilder
	err   error
	built bool
}

// NewBuilder starts a module called name. The string heap always starts
// with the empty string.
func NewBuilder(name string) *Builder {
	m := &Module{Name: name}
	m.AddString("")

	return &Builder{m: m}
}

// TypeRef returns a token for an external type.
func (b *Builder) TypeRef(namespace, name string) Token {
	return b.m.AddTypeRef(namespace, name)
}

// MemberRef returns a token for an external method.
func (b *Builder) MemberRef(parent Token, name string, sig MethodSig) Token {
	return b.m.AddMemberRef(parent, name, sig)
}

// Type declares a type.
func (b *Builder) Type(namespace, name string, kind TypeKind, flags TypeFlags) *TypeBuilder {
	t := &TypeDef{
		Namespace: b.m.AddString(namespace),
		Name:      b.m.AddString(name),
		Kind:      kind,
		Flags:     flags,
	}
	b.m.Types = append(b.m.Types, t)

	tb := &TypeBuilder{b: b, t: t, row: len(b.m.Types)}
	b.types = append(b.types, tb)

	return tb
}

// Module assembles all bodies and returns the module.
func (b *Builder) Module() (*Module, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.built {
		return b.m, nil
	}

	for _, tb := range b.types {
		for _, p := range tb.props {
			prop := Property{Name: b.m.AddString(p.name), Type: p.sig}

			if p.getter != nil {
				p.getter.md.Flags |= MethodGetter | MethodSpecialName
				prop.Getter = p.getter.Row()
			}

			if p.setter != nil {
				p.setter.md.Flags |= MethodSetter | MethodSpecialName
				prop.Setter = p.setter.Row()
			}

			tb.t.Properties = append(tb.t.Properties, prop)
		}

		for _, mb := range tb.methods {
			if mb.asm == nil {
				continue
			}

			a := newAssembler(b.m, mb.md.Sig)
			mb.asm(a)

			body, err := a.Body()
			if err != nil {
				b.err = fmt.Errorf("%s::%s: %w", b.m.FullName(tb.t), b.m.String(mb.md.Name), err)
				return nil, b.err
			}

			mb.md.Body = body
		}
	}

	b.built = true

	return b.m, nil
}

// Build assembles the module and encodes it.
func (b *Builder) Build() ([]byte, error) {
	m, err := b.Module()
	if err != nil {
		return nil, err
	}

	return Encode(m), nil
}

// TypeBuilder declares the members of one type.
type TypeBuilder struct {
	b       *Builder
	t       *TypeDef
	row     int
	methods []*MethodBuilder
	props   []propertySpec
}

type propertySpec struct {
	name           string
	sig            TypeSig
	getter, setter *MethodBuilder
}

// Token returns the TypeDef token.
func (tb *TypeBuilder) Token() Token { return NewToken(TableTypeDef, tb.row) }

// Extends sets the base type.
func (tb *TypeBuilder) Extends(base Token) *TypeBuilder {
	tb.t.Base = base
	return tb
}

// Field declares a field.
func (tb *TypeBuilder) Field(name string, flags FieldFlags, sig TypeSig) *TypeBuilder {
	tb.t.Fields = append(tb.t.Fields, Field{Name: tb.b.m.AddString(name), Flags: flags, Type: sig})
	return tb
}

// EnumValue declares an enum member.
func (tb *TypeBuilder) EnumValue(name string, value int64) *TypeBuilder {
	tb.t.Fields = append(tb.t.Fields, Field{
		Name:     tb.b.m.AddString(name),
		Flags:    FieldPublic | FieldStatic | FieldLiteral,
		Type:     Int32,
		Constant: value,
	})

	return tb
}

// Method declares a method. Parameter names default to a0, a1, ...
func (tb *TypeBuilder) Method(name string, flags MethodFlags, sig MethodSig, params ...string) *MethodBuilder {
	if flags&MethodStatic == 0 {
		sig.HasThis = true
	}

	md := &MethodDef{Name: tb.b.m.AddString(name), Flags: flags, Sig: sig}

	for i := range sig.Params {
		pn := fmt.Sprintf("a%d", i)
		if i < len(params) {
			pn = params[i]
		}

		md.ParamNames = append(md.ParamNames, tb.b.m.AddString(pn))
	}

	tb.t.Methods = append(tb.t.Methods, md)

	mb := &MethodBuilder{tb: tb, md: md}
	tb.methods = append(tb.methods, mb)

	return mb
}

// Constructor declares an instance constructor.
func (tb *TypeBuilder) Constructor(params ...TypeSig) *MethodBuilder {
	return tb.Method(".ctor", MethodPublic|MethodSpecialName|MethodRTSpecialName, MethodSig{Return: Void, Params: params})
}

// Property declares a property over accessor methods, either of which may be nil.
func (tb *TypeBuilder) Property(name string, sig TypeSig, getter, setter *MethodBuilder) *TypeBuilder {
	tb.props = append(tb.props, propertySpec{name: name, sig: sig, getter: getter, setter: setter})
	return tb
}

// MethodBuilder is a declared method.
type MethodBuilder struct {
	tb  *TypeBuilder
	md  *MethodDef
	asm func(*Assembler)
}

// Def returns the underlying MethodDef.
func (mb *MethodBuilder) Def() *MethodDef { return mb.md }

// Row returns the MethodDef row. It is only stable once every method is declared.
func (mb *MethodBuilder) Row() int { return mb.tb.b.m.MethodRow(mb.md) }

// Token returns the MethodDef token.
func (mb *MethodBuilder) Token() Token { return NewToken(TableMethodDef, mb.Row()) }

// Code sets the function that assembles the body.
func (mb *MethodBuilder) Code(fn func(a *Assembler)) *MethodBuilder {
	mb.asm = fn
	return mb
}

// Raw sets an already encoded body, bypassing assembly and verification.
func (mb *MethodBuilder) Raw(body *Body) *MethodBuilder {
	mb.md.Body = body
	mb.asm = nil

	return mb
}

// Assembler emits instructions with symbolic labels. The first error is kept
// and reported by Body or Finish.
type Assembler struct {
	m       *Module
	sig     MethodSig
	body    MethodBody
	labels  map[string]*Instruction
	pending []string
	refs    []labelRef
	regions []regionSpec
	err     error
}

type labelRef struct {
	in    *Instruction
	slot  int
	label string
}

type regionSpec struct {
	kind         HandlerKind
	tryStart     string
	tryEnd       string
	handlerStart string
	handlerEnd   string
	flt          string
	catchType    Token
}

func newAssembler(m *Module, sig MethodSig) *Assembler {
	return &Assembler{m: m, sig: sig, labels: make(map[string]*Instruction)}
}

// NewAssembler returns an assembler for a body of a method with signature sig in m.
func NewAssembler(m *Module, sig MethodSig) *Assembler {
	return newAssembler(m, sig)
}

// Module returns the module the body belongs to.
func (a *Assembler) Module() *Module { return a.m }

// Local declares a local and returns its slot.
func (a *Assembler) Local(sig TypeSig) int {
	a.body.Locals = append(a.body.Locals, sig)
	return len(a.body.Locals) - 1
}

// Label binds name to the next emitted instruction, or to the end of the
// body if nothing follows.
func (a *Assembler) Label(name string) {
	if _, ok := a.labels[name]; ok || a.isPending(name) {
		a.setErr(fmt.Errorf("label %q defined twice", name))
		return
	}

	a.pending = append(a.pending, name)
}

func (a *Assembler) isPending(name string) bool {
	for _, p := range a.pending {
		if p == name {
			return true
		}
	}

	return false
}

func (a *Assembler) setErr(err error) {
	if a.err == nil {
		a.err = err
	}
}

func (a *Assembler) emit(in *Instruction) *Instruction {
	for _, name := range a.pending {
		a.labels[name] = in
	}

	a.pending = a.pending[:0]
	a.body.Instructions = append(a.body.Instructions, in)

	return in
}

// Op emits an instruction without an operand.
func (a *Assembler) Op(op Opcode) {
	if op.Operand() != OperandNone {
		a.setErr(fmt.Errorf("%s needs an operand", op))
		return
	}

	a.emit(&Instruction{Op: op})
}

// Int emits an instruction with an integer operand (ldarg, ldloc, ldc.i4, ...).
func (a *Assembler) Int(op Opcode, v int64) {
	switch op.Operand() {
	case OperandU8:
		if v < 0 || v > math.MaxUint8 {
			a.setErr(fmt.Errorf("%s operand %d out of range", op, v))
			return
		}
	case OperandI32:
		if v < math.MinInt32 || v > math.MaxInt32 {
			a.setErr(fmt.Errorf("%s operand %d out of range", op, v))
			return
		}
	case OperandI64:
	default:
		a.setErr(fmt.Errorf("%s does not take an integer", op))
		return
	}

	a.emit(&Instruction{Op: op, Int: v})
}

// Ldarg loads argument i.
func (a *Assembler) Ldarg(i int) { a.Int(OpLdarg, int64(i)) }

// Ldloc loads local i.
func (a *Assembler) Ldloc(i int) { a.Int(OpLdloc, int64(i)) }

// Stloc stores local i.
func (a *Assembler) Stloc(i int) { a.Int(OpStloc, int64(i)) }

// LdcI4 loads a 32-bit constant.
func (a *Assembler) LdcI4(v int32) { a.Int(OpLdcI4, int64(v)) }

// LdcI8 loads a 64-bit constant.
func (a *Assembler) LdcI8(v int64) { a.Int(OpLdcI8, v) }

// LdcR8 loads a float constant.
func (a *Assembler) LdcR8(v float64) { a.emit(&Instruction{Op: OpLdcR8, Float: v}) }

// Ldstr loads a string literal, interning it in the module.
func (a *Assembler) Ldstr(s string) { a.emit(&Instruction{Op: OpLdstr, String: a.m.AddString(s)}) }

// Call emits a call to tok.
func (a *Assembler) Call(tok Token) { a.emit(&Instruction{Op: OpCall, Token: tok}) }

// TailCall emits tail. call tok.
func (a *Assembler) TailCall(tok Token) {
	a.emit(&Instruction{Op: OpTail})
	a.Call(tok)
}

// Newobj emits newobj tok.
func (a *Assembler) Newobj(tok Token) { a.emit(&Instruction{Op: OpNewobj, Token: tok}) }

// Elem emits newarr, box or unbox.
func (a *Assembler) Elem(op Opcode, e ElementType) {
	if op.Operand() != OperandElem {
		a.setErr(fmt.Errorf("%s does not take an element type", op))
		return
	}

	a.emit(&Instruction{Op: op, Elem: e})
}

// Branch emits a branch or leave to label.
func (a *Assembler) Branch(op Opcode, label string) {
	switch op.Operand() {
	case OperandBranch8, OperandBranch32:
	default:
		a.setErr(fmt.Errorf("%s is not a branch", op))
		return
	}

	in := a.emit(&Instruction{Op: op})
	a.refs = append(a.refs, labelRef{in: in, slot: -1, label: label})
}

// Switch emits a switch over labels.
func (a *Assembler) Switch(labels ...string) {
	in := a.emit(&Instruction{Op: OpSwitch, Targets: make([]*Instruction, len(labels))})

	for i, l := range labels {
		a.refs = append(a.refs, labelRef{in: in, slot: i, label: l})
	}
}

// Catch declares a catch region. End labels may be bound at the end of the body.
func (a *Assembler) Catch(tryStart, tryEnd, handlerStart, handlerEnd string, catchType Token) {
	a.regions = append(a.regions, regionSpec{
		kind: HandlerCatch, tryStart: tryStart, tryEnd: tryEnd,
		handlerStart: handlerStart, handlerEnd: handlerEnd, catchType: catchType,
	})
}

// Finally declares a finally region.
func (a *Assembler) Finally(tryStart, tryEnd, handlerStart, handlerEnd string) {
	a.regions = append(a.regions, regionSpec{
		kind: HandlerFinally, tryStart: tryStart, tryEnd: tryEnd,
		handlerStart: handlerStart, handlerEnd: handlerEnd,
	})
}

// Fault declares a fault region.
func (a *Assembler) Fault(tryStart, tryEnd, handlerStart, handlerEnd string) {
	a.regions = append(a.regions, regionSpec{
		kind: HandlerFault, tryStart: tryStart, tryEnd: tryEnd,
		handlerStart: handlerStart, handlerEnd: handlerEnd,
	})
}

// Filter declares a filter region whose filter block starts at filterStart.
func (a *Assembler) Filter(tryStart, tryEnd, filterStart, handlerStart, handlerEnd string) {
	a.regions = append(a.regions, regionSpec{
		kind: HandlerFilter, tryStart: tryStart, tryEnd: tryEnd, flt: filterStart,
		handlerStart: handlerStart, handlerEnd: handlerEnd,
	})
}

var errEndLabel = errors.New("label bound to the end of the body")

func (a *Assembler) resolve(name string, allowEnd bool) (*Instruction, error) {
	if in, ok := a.labels[name]; ok {
		return in, nil
	}

	if a.isPending(name) {
		if allowEnd {
			return nil, nil
		}

		return nil, fmt.Errorf("%q: %w", name, errEndLabel)
	}

	return nil, fmt.Errorf("undefined label %q", name)
}

// Finish resolves labels and returns the instruction-level body. MaxStack
// is left as set by SetMaxStack.
func (a *Assembler) Finish() (*MethodBody, error) {
	if a.err != nil {
		return nil, a.err
	}

	for _, ref := range a.refs {
		t, err := a.resolve(ref.label, false)
		if err != nil {
			return nil, err
		}

		if ref.slot < 0 {
			ref.in.Target = t
		} else {
			ref.in.Targets[ref.slot] = t
		}
	}

	for _, spec := range a.regions {
		r := &ExceptionRegion{Kind: spec.kind, CatchType: spec.catchType}

		var err error

		if r.TryStart, err = a.resolve(spec.tryStart, false); err != nil {
			return nil, err
		}

		if r.TryEnd, err = a.resolve(spec.tryEnd, true); err != nil {
			return nil, err
		}

		if r.HandlerStart, err = a.resolve(spec.handlerStart, false); err != nil {
			return nil, err
		}

		if r.HandlerEnd, err = a.resolve(spec.handlerEnd, true); err != nil {
			return nil, err
		}

		if spec.kind == HandlerFilter {
			if r.FilterStart, err = a.resolve(spec.flt, false); err != nil {
				return nil, err
			}
		}

		a.body.Regions = append(a.body.Regions, r)
	}

	return &a.body, nil
}

// SetMaxStack overrides the declared max stack of the assembled body.
func (a *Assembler) SetMaxStack(n uint16) { a.body.MaxStack = n }

// Body finishes, verifies and encodes the body. The declared max stack is
// the verified depth unless SetMaxStack raised it.
func (a *Assembler) Body() (*Body, error) {
	mb, err := a.Finish()
	if err != nil {
		return nil, err
	}

	declared := mb.MaxStack
	mb.MaxStack = math.MaxUint16

	depth, err := Verify(a.m, a.sig, mb)
	if err != nil {
		return nil, err
	}

	mb.MaxStack = max(declared, uint16(depth))

	return EncodeBody(mb)
}
