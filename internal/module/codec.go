package module

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/adler32"
	"math"
)

// Decode parses a module file. The checksum is validated before any table is read.
func Decode(data []byte) (*Module, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: header is %d bytes", ErrTruncated, len(data))
	}

	if !bytes.Equal(data[:4], Magic[:]) {
		return nil, ErrBadMagic
	}

	version := binary.LittleEndian.Uint16(data[4:6])
	if version != Version {
		return nil, fmt.Errorf("module: unsupported version %d", version)
	}

	flags := binary.LittleEndian.Uint16(data[6:8])
	sum := binary.LittleEndian.Uint32(data[8:12])

	if got := adler32.Checksum(data[headerSize:]); got != sum {
		return nil, fmt.Errorf("%w: stored %08x computed %08x", ErrChecksum, sum, got)
	}

	r := &reader{data: data[headerSize:]}
	m := &Module{Flags: flags}

	m.Name = r.str()

	nStrings := r.count()
	m.Strings = make([]string, 0, nStrings)

	for range nStrings {
		m.Strings = append(m.Strings, r.str())
	}

	nTypeRefs := r.count()
	m.TypeRefs = make([]TypeRef, 0, nTypeRefs)

	for range nTypeRefs {
		m.TypeRefs = append(m.TypeRefs, TypeRef{Namespace: r.u32(), Name: r.u32()})
	}

	nTypes := r.count()
	m.Types = make([]*TypeDef, 0, nTypes)

	for range nTypes {
		m.Types = append(m.Types, r.typeDef())
	}

	nMemberRefs := r.count()
	m.MemberRefs = make([]MemberRef, 0, nMemberRefs)

	for range nMemberRefs {
		m.MemberRefs = append(m.MemberRefs, MemberRef{Parent: Token(r.u32()), Name: r.u32(), Sig: r.methodSig()})
	}

	if r.err != nil {
		return nil, r.err
	}

	if len(r.data) != 0 {
		return nil, fmt.Errorf("module: %d trailing bytes", len(r.data))
	}

	return m, nil
}

// Encode serialises the module. Encoding is canonical, so re-encoding a
// decoded module that was produced by Encode reproduces it byte for byte.
func Encode(m *Module) []byte {
	w := &writer{}

	w.str(m.Name)

	w.uv(uint64(len(m.Strings)))

	for _, s := range m.Strings {
		w.str(s)
	}

	w.uv(uint64(len(m.TypeRefs)))

	for _, ref := range m.TypeRefs {
		w.uv(uint64(ref.Namespace))
		w.uv(uint64(ref.Name))
	}

	w.uv(uint64(len(m.Types)))

	for _, t := range m.Types {
		w.typeDef(t)
	}

	w.uv(uint64(len(m.MemberRefs)))

	for _, ref := range m.MemberRefs {
		w.uv(uint64(ref.Parent))
		w.uv(uint64(ref.Name))
		w.methodSig(ref.Sig)
	}

	out := make([]byte, headerSize, headerSize+w.buf.Len())
	copy(out[:4], Magic[:])
	binary.LittleEndian.PutUint16(out[4:6], Version)
	binary.LittleEndian.PutUint16(out[6:8], m.Flags)
	binary.LittleEndian.PutUint32(out[8:12], adler32.Checksum(w.buf.Bytes()))

	return append(out, w.buf.Bytes()...)
}

// reader decodes uvarint-based tables. The first error sticks and every
// later read returns zero values.
type reader struct {
	data []byte
	err  error
}

func (r *reader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf(format, args...)
	}
}

func (r *reader) uv() uint64 {
	if r.err != nil {
		return 0
	}

	v, n := binary.Uvarint(r.data)
	if n <= 0 {
		r.fail("%w: bad uvarint", ErrTruncated)
		return 0
	}

	r.data = r.data[n:]

	return v
}

func (r *reader) sv() int64 {
	if r.err != nil {
		return 0
	}

	v, n := binary.Varint(r.data)
	if n <= 0 {
		r.fail("%w: bad varint", ErrTruncated)
		return 0
	}

	r.data = r.data[n:]

	return v
}

func (r *reader) u32() uint32 {
	v := r.uv()
	if v > math.MaxUint32 {
		r.fail("module: value %d overflows uint32", v)
		return 0
	}

	return uint32(v)
}

// count reads a table length and bounds it by the remaining input so corrupt
// lengths cannot trigger huge allocations.
func (r *reader) count() int {
	v := r.uv()
	if v > uint64(len(r.data)) {
		r.fail("%w: count %d exceeds remaining %d bytes", ErrTruncated, v, len(r.data))
		return 0
	}

	return int(v)
}

func (r *reader) u8() uint8 {
	if r.err != nil {
		return 0
	}

	if len(r.data) < 1 {
		r.fail("%w: expected byte", ErrTruncated)
		return 0
	}

	b := r.data[0]
	r.data = r.data[1:]

	return b
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}

	if n > len(r.data) {
		r.fail("%w: need %d bytes have %d", ErrTruncated, n, len(r.data))
		return nil
	}

	out := append([]byte(nil), r.data[:n]...)
	r.data = r.data[n:]

	return out
}

func (r *reader) str() string {
	return string(r.bytes(r.count()))
}

func (r *reader) typeSig() TypeSig {
	elem := ElementType(r.u8())

	switch elem {
	case ElemVoid, ElemBool, ElemI4, ElemI8, ElemR8, ElemString, ElemObject:
		return TypeSig{Elem: elem}
	case ElemClass:
		return TypeSig{Elem: elem, Class: Token(r.u32())}
	case ElemSZArray:
		of := r.typeSig()

		return TypeSig{Elem: elem, Of: &of}
	default:
		r.fail("module: unknown element type %#x", uint8(elem))
		return TypeSig{}
	}
}

func (r *reader) methodSig() MethodSig {
	sig := MethodSig{HasThis: r.u8() != 0}
	sig.Return = r.typeSig()

	n := r.count()
	if n > 0 {
		sig.Params = make([]TypeSig, 0, n)
	}

	for range n {
		sig.Params = append(sig.Params, r.typeSig())
	}

	return sig
}

func (r *reader) typeDef() *TypeDef {
	t := &TypeDef{
		Namespace: r.u32(),
		Name:      r.u32(),
		Kind:      TypeKind(r.u8()),
		Flags:     TypeFlags(r.u32()),
		Base:      Token(r.u32()),
	}

	nFields := r.count()
	for range nFields {
		f := Field{Name: r.u32(), Flags: FieldFlags(r.u32()), Type: r.typeSig()}
		if f.Flags&FieldLiteral != 0 {
			f.Constant = r.sv()
		}

		t.Fields = append(t.Fields, f)
	}

	nMethods := r.count()
	for range nMethods {
		t.Methods = append(t.Methods, r.methodDef())
	}

	nProps := r.count()
	for range nProps {
		t.Properties = append(t.Properties, Property{
			Name:   r.u32(),
			Type:   r.typeSig(),
			Getter: int(r.u32()),
			Setter: int(r.u32()),
		})
	}

	return t
}

func (r *reader) methodDef() *MethodDef {
	md := &MethodDef{
		Name:  r.u32(),
		Flags: MethodFlags(r.u32()),
		Sig:   r.methodSig(),
	}

	nNames := r.count()
	for range nNames {
		md.ParamNames = append(md.ParamNames, r.u32())
	}

	if r.u8() != 0 {
		md.Body = r.body()
	}

	return md
}

func (r *reader) body() *Body {
	b := &Body{}

	maxStack := r.uv()
	if maxStack > math.MaxUint16 {
		r.fail("module: max stack %d overflows", maxStack)
	}

	b.MaxStack = uint16(maxStack)

	nLocals := r.count()
	for range nLocals {
		b.Locals = append(b.Locals, r.typeSig())
	}

	b.Code = r.bytes(r.count())

	nHandlers := r.count()
	for range nHandlers {
		h := Handler{
			Kind:          HandlerKind(r.u8()),
			TryOffset:     r.u32(),
			TryLength:     r.u32(),
			HandlerOffset: r.u32(),
			HandlerLength: r.u32(),
		}

		switch h.Kind {
		case HandlerCatch:
			h.CatchType = Token(r.u32())
		case HandlerFilter:
			h.FilterOffset = r.u32()
		case HandlerFinally, HandlerFault:
		default:
			r.fail("module: unknown handler kind %d", h.Kind)
		}

		b.Handlers = append(b.Handlers, h)
	}

	return b
}

type writer struct {
	buf bytes.Buffer
}

func (w *writer) uv(v uint64) {
	w.buf.Write(binary.AppendUvarint(nil, v))
}

func (w *writer) sv(v int64) {
	w.buf.Write(binary.AppendVarint(nil, v))
}

func (w *writer) u8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *writer) str(s string) {
	w.uv(uint64(len(s)))
	w.buf.WriteString(s)
}

func (w *writer) typeSig(s TypeSig) {
	w.u8(uint8(s.Elem))

	switch s.Elem {
	case ElemClass:
		w.uv(uint64(s.Class))
	case ElemSZArray:
		if s.Of == nil {
			w.typeSig(Object)
			return
		}

		w.typeSig(*s.Of)
	}
}

func (w *writer) methodSig(s MethodSig) {
	if s.HasThis {
		w.u8(1)
	} else {
		w.u8(0)
	}

	w.typeSig(s.Return)
	w.uv(uint64(len(s.Params)))

	for _, p := range s.Params {
		w.typeSig(p)
	}
}

func (w *writer) typeDef(t *TypeDef) {
	w.uv(uint64(t.Namespace))
	w.uv(uint64(t.Name))
	w.u8(uint8(t.Kind))
	w.uv(uint64(t.Flags))
	w.uv(uint64(t.Base))

	w.uv(uint64(len(t.Fields)))

	for _, f := range t.Fields {
		w.uv(uint64(f.Name))
		w.uv(uint64(f.Flags))
		w.typeSig(f.Type)

		if f.Flags&FieldLiteral != 0 {
			w.sv(f.Constant)
		}
	}

	w.uv(uint64(len(t.Methods)))

	for _, md := range t.Methods {
		w.methodDef(md)
	}

	w.uv(uint64(len(t.Properties)))

	for _, p := range t.Properties {
		w.uv(uint64(p.Name))
		w.typeSig(p.Type)
		w.uv(uint64(p.Getter))
		w.uv(uint64(p.Setter))
	}
}

func (w *writer) methodDef(md *MethodDef) {
	w.uv(uint64(md.Name))
	w.uv(uint64(md.Flags))
	w.methodSig(md.Sig)
	w.uv(uint64(len(md.ParamNames)))

	for _, n := range md.ParamNames {
		w.uv(uint64(n))
	}

	if md.Body == nil {
		w.u8(0)
		return
	}

	w.u8(1)
	w.body(md.Body)
}

func (w *writer) body(b *Body) {
	w.uv(uint64(b.MaxStack))
	w.uv(uint64(len(b.Locals)))

	for _, l := range b.Locals {
		w.typeSig(l)
	}

	w.uv(uint64(len(b.Code)))
	w.buf.Write(b.Code)
	w.uv(uint64(len(b.Handlers)))

	for _, h := range b.Handlers {
		w.u8(uint8(h.Kind))
		w.uv(uint64(h.TryOffset))
		w.uv(uint64(h.TryLength))
		w.uv(uint64(h.HandlerOffset))
		w.uv(uint64(h.HandlerLength))

		switch h.Kind {
		case HandlerCatch:
			w.uv(uint64(h.CatchType))
		case HandlerFilter:
			w.uv(uint64(h.FilterOffset))
		}
	}
}
