// Package module implements the compiled module format carried inside a
// package archive: metadata tables, method bodies, an instruction-level body
// codec, a verifier, and a disassembler.
package module

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadMagic is returned when the data does not start with the module magic.
	ErrBadMagic = errors.New("module: bad magic")
	// ErrChecksum is returned when the stored checksum does not match the content.
	ErrChecksum = errors.New("module: checksum mismatch")
	// ErrTruncated is returned when a table or body ends early.
	ErrTruncated = errors.New("module: truncated data")
	// ErrBadToken is returned when a token does not resolve to a table row.
	ErrBadToken = errors.New("module: bad token")
)

// Magic identifies a module file.
var Magic = [4]byte{'T', 'M', 'O', 'D'}

// Version is the only supported format version.
const Version uint16 = 1

const headerSize = 12

// Table identifies a metadata table in the high byte of a token.
type Table uint8

// Metadata tables.
const (
	TableTypeRef   Table = 0x01
	TableTypeDef   Table = 0x02
	TableMethodDef Table = 0x06
	TableMemberRef Table = 0x0A
)

// Token references a row in a metadata table. Rows are 1-based.
type Token uint32

// NewToken builds a token for row in table.
func NewToken(table Table, row int) Token {
	return Token(uint32(table)<<24 | uint32(row)&0xFFFFFF)
}

// Table returns the table the token points into.
func (t Token) Table() Table { return Table(t >> 24) }

// Row returns the 1-based row index.
func (t Token) Row() int { return int(t & 0xFFFFFF) }

// IsNil reports whether the token references nothing.
func (t Token) IsNil() bool { return t.Row() == 0 }

func (t Token) String() string {
	return fmt.Sprintf("%08x", uint32(t))
}

// TypeKind is the kind of a TypeDef.
type TypeKind uint8

// Type kinds.
const (
	KindClass TypeKind = iota
	KindInterface
	KindEnum
)

func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// TypeFlags carries TypeDef attributes.
type TypeFlags uint32

// Type flags.
const (
	TypePublic TypeFlags = 1 << iota
	TypeSealed
	TypeAbstract
	TypeCompilerGenerated
	TypeNested
)

// MethodFlags carries MethodDef attributes.
type MethodFlags uint32

// Method flags.
const (
	MethodStatic MethodFlags = 1 << iota
	MethodPublic
	MethodVirtual
	MethodAbstract
	MethodSpecialName
	MethodRTSpecialName
	MethodGetter
	MethodSetter
	MethodCompilerGenerated
	// MethodInstrumented marks a body that already carries trace calls.
	MethodInstrumented
)

// FieldFlags carries field attributes.
type FieldFlags uint32

// Field flags.
const (
	FieldStatic FieldFlags = 1 << iota
	FieldPublic
	FieldLiteral
)

// Module is a decoded compiled module. Names are indices into Strings so that
// rewriting only ever appends to the tables.
type Module struct {
	Name       string
	Flags      uint16
	Strings    []string
	TypeRefs   []TypeRef
	Types      []*TypeDef
	MemberRefs []MemberRef

	stringIndex map[string]uint32
	indexed     int
}

// TypeRef references a type defined outside the module.
type TypeRef struct {
	Namespace uint32
	Name      uint32
}

// TypeDef is a type defined in the module.
type TypeDef struct {
	Namespace  uint32
	Name       uint32
	Kind       TypeKind
	Flags      TypeFlags
	Base       Token
	Fields     []Field
	Methods    []*MethodDef
	Properties []Property
}

// Field is a field of a TypeDef. Enum members are literal fields.
type Field struct {
	Name     uint32
	Flags    FieldFlags
	Type     TypeSig
	Constant int64
}

// Property pairs accessor methods. Getter and Setter are MethodDef rows, 0 when absent.
type Property struct {
	Name   uint32
	Type   TypeSig
	Getter int
	Setter int
}

// MethodDef is a method defined in the module.
type MethodDef struct {
	Name       uint32
	Flags      MethodFlags
	Sig        MethodSig
	ParamNames []uint32
	Body       *Body
}

// MemberRef references a method defined outside the module.
type MemberRef struct {
	Parent Token
	Name   uint32
	Sig    MethodSig
}

// Body is the raw form of a method body.
type Body struct {
	MaxStack uint16
	Locals   []TypeSig
	Code     []byte
	Handlers []Handler
}

// HandlerKind identifies an exception handler clause.
type HandlerKind uint8

// Handler kinds.
const (
	HandlerCatch   HandlerKind = 0
	HandlerFilter  HandlerKind = 1
	HandlerFinally HandlerKind = 2
	HandlerFault   HandlerKind = 4
)

func (k HandlerKind) String() string {
	switch k {
	case HandlerCatch:
		return "catch"
	case HandlerFilter:
		return "filter"
	case HandlerFinally:
		return "finally"
	case HandlerFault:
		return "fault"
	default:
		return fmt.Sprintf("handler(%d)", uint8(k))
	}
}

// Handler is a raw exception handler clause with byte offsets into Code.
type Handler struct {
	Kind          HandlerKind
	TryOffset     uint32
	TryLength     uint32
	HandlerOffset uint32
	HandlerLength uint32
	CatchType     Token
	FilterOffset  uint32
}

// Clone returns a deep copy of the body.
func (b *Body) Clone() *Body {
	if b == nil {
		return nil
	}

	out := &Body{MaxStack: b.MaxStack}
	out.Locals = append([]TypeSig(nil), b.Locals...)
	out.Code = append([]byte(nil), b.Code...)
	out.Handlers = append([]Handler(nil), b.Handlers...)

	return out
}

// String returns the string at idx or "" when out of range.
func (m *Module) String(idx uint32) string {
	if int(idx) >= len(m.Strings) {
		return ""
	}

	return m.Strings[idx]
}

// AddString interns s and returns its heap index.
func (m *Module) AddString(s string) uint32 {
	m.ensureStringIndex()

	if idx, ok := m.stringIndex[s]; ok {
		return idx
	}

	idx := uint32(len(m.Strings))
	m.Strings = append(m.Strings, s)
	m.stringIndex[s] = idx
	m.indexed = len(m.Strings)

	return idx
}

// LookupString returns the index of s if it is already interned.
func (m *Module) LookupString(s string) (uint32, bool) {
	m.ensureStringIndex()
	idx, ok := m.stringIndex[s]

	return idx, ok
}

func (m *Module) ensureStringIndex() {
	if m.stringIndex == nil || m.indexed > len(m.Strings) {
		m.stringIndex = make(map[string]uint32, len(m.Strings))
		m.indexed = 0
	}

	for i := m.indexed; i < len(m.Strings); i++ {
		if _, ok := m.stringIndex[m.Strings[i]]; !ok {
			m.stringIndex[m.Strings[i]] = uint32(i)
		}
	}

	m.indexed = len(m.Strings)
}

// Mark captures table sizes so that appended rows can be rolled back.
type Mark struct {
	strings, typeRefs, memberRefs int
}

// Mark returns the current table sizes.
func (m *Module) Mark() Mark {
	return Mark{strings: len(m.Strings), typeRefs: len(m.TypeRefs), memberRefs: len(m.MemberRefs)}
}

// Rollback drops every row appended since mk.
func (m *Module) Rollback(mk Mark) {
	for _, s := range m.Strings[mk.strings:] {
		if idx, ok := m.stringIndex[s]; ok && int(idx) >= mk.strings {
			delete(m.stringIndex, s)
		}
	}

	m.Strings = m.Strings[:mk.strings]
	m.indexed = min(m.indexed, mk.strings)
	m.TypeRefs = m.TypeRefs[:mk.typeRefs]
	m.MemberRefs = m.MemberRefs[:mk.memberRefs]
}

// AddTypeRef returns the token of an existing TypeRef with the given name or appends one.
func (m *Module) AddTypeRef(namespace, name string) Token {
	for i, ref := range m.TypeRefs {
		if m.String(ref.Namespace) == namespace && m.String(ref.Name) == name {
			return NewToken(TableTypeRef, i+1)
		}
	}

	m.TypeRefs = append(m.TypeRefs, TypeRef{Namespace: m.AddString(namespace), Name: m.AddString(name)})

	return NewToken(TableTypeRef, len(m.TypeRefs))
}

// AddMemberRef returns the token of an existing MemberRef matching parent, name and sig or appends one.
func (m *Module) AddMemberRef(parent Token, name string, sig MethodSig) Token {
	for i, ref := range m.MemberRefs {
		if ref.Parent == parent && m.String(ref.Name) == name && ref.Sig.Equal(sig) {
			return NewToken(TableMemberRef, i+1)
		}
	}

	m.MemberRefs = append(m.MemberRefs, MemberRef{Parent: parent, Name: m.AddString(name), Sig: sig})

	return NewToken(TableMemberRef, len(m.MemberRefs))
}

// MethodCount returns the number of MethodDef rows.
func (m *Module) MethodCount() int {
	n := 0
	for _, t := range m.Types {
		n += len(t.Methods)
	}

	return n
}

// Method returns the MethodDef at the 1-based row and its declaring type.
func (m *Module) Method(row int) (*MethodDef, *TypeDef, bool) {
	if row <= 0 {
		return nil, nil, false
	}

	n := row - 1
	for _, t := range m.Types {
		if n < len(t.Methods) {
			return t.Methods[n], t, true
		}

		n -= len(t.Methods)
	}

	return nil, nil, false
}

// MethodRow returns the 1-based row of md, or 0 if it is not part of the module.
func (m *Module) MethodRow(md *MethodDef) int {
	row := 0
	for _, t := range m.Types {
		for _, candidate := range t.Methods {
			row++

			if candidate == md {
				return row
			}
		}
	}

	return 0
}

// TypeName returns the full name of the type referenced by tok.
func (m *Module) TypeName(tok Token) string {
	switch tok.Table() {
	case TableTypeRef:
		if tok.Row() == 0 || tok.Row() > len(m.TypeRefs) {
			return ""
		}

		ref := m.TypeRefs[tok.Row()-1]

		return joinName(m.String(ref.Namespace), m.String(ref.Name))
	case TableTypeDef:
		if tok.Row() == 0 || tok.Row() > len(m.Types) {
			return ""
		}

		return m.FullName(m.Types[tok.Row()-1])
	default:
		return ""
	}
}

// FullName returns namespace-qualified type name.
func (m *Module) FullName(t *TypeDef) string {
	return joinName(m.String(t.Namespace), m.String(t.Name))
}

var synthesizedPrefixes = []string{"<", "__StaticArrayInit"}

// IsSynthesized reports whether t was emitted by the compiler rather than
// declared in source: flagged types, "<Module>", "<PrivateImplementationDetails>"
// and static array initializer types.
func (m *Module) IsSynthesized(t *TypeDef) bool {
	if t.Flags&TypeCompilerGenerated != 0 {
		return true
	}

	name := m.String(t.Name)
	for _, prefix := range synthesizedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	return false
}

// IsAccessor reports whether md is a property getter or setter of t, by its
// flags or by a property row naming it.
func (m *Module) IsAccessor(t *TypeDef, md *MethodDef) bool {
	if md.Flags&(MethodGetter|MethodSetter) != 0 {
		return true
	}

	if len(t.Properties) == 0 {
		return false
	}

	row := m.MethodRow(md)

	for _, p := range t.Properties {
		if row != 0 && (p.Getter == row || p.Setter == row) {
			return true
		}
	}

	return false
}

// MethodName returns "Type::Name" for a MethodDef or MemberRef token.
func (m *Module) MethodName(tok Token) string {
	switch tok.Table() {
	case TableMethodDef:
		md, td, ok := m.Method(tok.Row())
		if !ok {
			return ""
		}

		return m.FullName(td) + "::" + m.String(md.Name)
	case TableMemberRef:
		if tok.Row() == 0 || tok.Row() > len(m.MemberRefs) {
			return ""
		}

		ref := m.MemberRefs[tok.Row()-1]

		return m.TypeName(ref.Parent) + "::" + m.String(ref.Name)
	default:
		return ""
	}
}

// MethodSigOf returns the signature of a MethodDef or MemberRef token.
func (m *Module) MethodSigOf(tok Token) (MethodSig, error) {
	switch tok.Table() {
	case TableMethodDef:
		md, _, ok := m.Method(tok.Row())
		if !ok {
			return MethodSig{}, fmt.Errorf("%w: method %s", ErrBadToken, tok)
		}

		return md.Sig, nil
	case TableMemberRef:
		if tok.Row() == 0 || tok.Row() > len(m.MemberRefs) {
			return MethodSig{}, fmt.Errorf("%w: member %s", ErrBadToken, tok)
		}

		return m.MemberRefs[tok.Row()-1].Sig, nil
	default:
		return MethodSig{}, fmt.Errorf("%w: %s is not a method", ErrBadToken, tok)
	}
}

// ValidTypeToken reports whether tok resolves to a TypeRef or TypeDef row.
func (m *Module) ValidTypeToken(tok Token) bool {
	switch tok.Table() {
	case TableTypeRef:
		return tok.Row() > 0 && tok.Row() <= len(m.TypeRefs)
	case TableTypeDef:
		return tok.Row() > 0 && tok.Row() <= len(m.Types)
	default:
		return false
	}
}

func joinName(namespace, name string) string {
	if namespace == "" {
		return name
	}

	return namespace + "." + name
}
