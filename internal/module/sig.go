package module

import (
	"fmt"
	"strings"
)

// ElementType is the leading byte of an encoded type signature.
type ElementType uint8

// Element types.
const (
	ElemVoid    ElementType = 0x01
	ElemBool    ElementType = 0x02
	ElemI4      ElementType = 0x08
	ElemI8      ElementType = 0x0A
	ElemR8      ElementType = 0x0D
	ElemString  ElementType = 0x0E
	ElemClass   ElementType = 0x12
	ElemObject  ElementType = 0x1C
	ElemSZArray ElementType = 0x1D
)

// TypeSig describes the type of a parameter, local, field or return value.
type TypeSig struct {
	Elem ElementType
	// Class is set for ElemClass.
	Class Token
	// Of is the element type for ElemSZArray.
	Of *TypeSig
}

// Common signatures.
var (
	Void   = TypeSig{Elem: ElemVoid}
	Bool   = TypeSig{Elem: ElemBool}
	Int32  = TypeSig{Elem: ElemI4}
	Int64  = TypeSig{Elem: ElemI8}
	Double = TypeSig{Elem: ElemR8}
	String = TypeSig{Elem: ElemString}
	Object = TypeSig{Elem: ElemObject}
)

// ClassSig returns the signature of a class reference.
func ClassSig(tok Token) TypeSig {
	return TypeSig{Elem: ElemClass, Class: tok}
}

// ArrayOf returns the signature of a single-dimension zero-based array.
func ArrayOf(elem TypeSig) TypeSig {
	e := elem

	return TypeSig{Elem: ElemSZArray, Of: &e}
}

// IsVoid reports whether the signature is void.
func (s TypeSig) IsVoid() bool { return s.Elem == ElemVoid }

// IsValueType reports whether values of this type must be boxed to become objects.
func (s TypeSig) IsValueType() bool {
	switch s.Elem {
	case ElemBool, ElemI4, ElemI8, ElemR8:
		return true
	default:
		return false
	}
}

// Equal compares two signatures structurally.
func (s TypeSig) Equal(o TypeSig) bool {
	if s.Elem != o.Elem || s.Class != o.Class {
		return false
	}

	if s.Of == nil || o.Of == nil {
		return s.Of == o.Of
	}

	return s.Of.Equal(*o.Of)
}

// Format renders the signature with type names resolved against m. m may be nil.
func (s TypeSig) Format(m *Module) string {
	switch s.Elem {
	case ElemVoid:
		return "void"
	case ElemBool:
		return "bool"
	case ElemI4:
		return "int32"
	case ElemI8:
		return "int64"
	case ElemR8:
		return "float64"
	case ElemString:
		return "string"
	case ElemObject:
		return "object"
	case ElemClass:
		if m != nil {
			if name := m.TypeName(s.Class); name != "" {
				return name
			}
		}

		return "class " + s.Class.String()
	case ElemSZArray:
		if s.Of == nil {
			return "?[]"
		}

		return s.Of.Format(m) + "[]"
	default:
		return fmt.Sprintf("elem(%#x)", uint8(s.Elem))
	}
}

// MethodSig is a method signature. HasThis is set for instance methods; the
// implicit this argument is not part of Params.
type MethodSig struct {
	HasThis bool
	Return  TypeSig
	Params  []TypeSig
}

// ArgCount returns the number of argument slots including this.
func (s MethodSig) ArgCount() int {
	if s.HasThis {
		return len(s.Params) + 1
	}

	return len(s.Params)
}

// Equal compares two method signatures.
func (s MethodSig) Equal(o MethodSig) bool {
	if s.HasThis != o.HasThis || !s.Return.Equal(o.Return) || len(s.Params) != len(o.Params) {
		return false
	}

	for i := range s.Params {
		if !s.Params[i].Equal(o.Params[i]) {
			return false
		}
	}

	return true
}

// ParamList renders the parameter types as "(t1,t2)".
func (s MethodSig) ParamList(m *Module) string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.Format(m)
	}

	return "(" + strings.Join(parts, ",") + ")"
}
