// Package model defines the data structures shared by the package model,
// the instrumentation engine and the patch pipeline.
package model

import "strings"

// Path represents a file system path.
type Path string

// TypeKind is the kind of a type definition.
type TypeKind string

const (
	// KindClass is a reference type.
	KindClass TypeKind = "class"
	// KindInterface is an interface.
	KindInterface TypeKind = "interface"
	// KindEnum is an enumeration. Enums never carry methods to instrument.
	KindEnum TypeKind = "enum"
)

// MethodIdentity identifies a method across runs: module entry name,
// namespace-qualified owning type, method name and parameter types.
// Return types are not part of it, so overloads by return type collide.
type MethodIdentity struct {
	Module    string `yaml:"module"`
	Type      string `yaml:"type"`
	Name      string `yaml:"name"`
	Signature string `yaml:"signature"`
}

// String renders "<module>!<type>::<name>(<params>)".
func (id MethodIdentity) String() string {
	return id.Module + "!" + id.Type + "::" + id.Name + id.Signature
}

// ParseMethodIdentity parses the String form.
func ParseMethodIdentity(s string) (MethodIdentity, bool) {
	mod, rest, ok := strings.Cut(s, "!")
	if !ok || mod == "" {
		return MethodIdentity{}, false
	}

	typ, rest, ok := strings.Cut(rest, "::")
	if !ok || typ == "" {
		return MethodIdentity{}, false
	}

	open := strings.IndexByte(rest, '(')
	if open <= 0 || !strings.HasSuffix(rest, ")") {
		return MethodIdentity{}, false
	}

	return MethodIdentity{Module: mod, Type: typ, Name: rest[:open], Signature: rest[open:]}, true
}

// MethodDefinition describes one method of a parsed module.
type MethodDefinition struct {
	Identity      MethodIdentity
	Row           int
	ParamNames    []string
	ReturnType    string
	IsGetter      bool
	IsSetter      bool
	IsConstructor bool
	IsStatic      bool
	HasBody       bool
}

// Eligible reports whether the method can be hooked.
func (m MethodDefinition) Eligible() bool {
	return m.HasBody && !m.IsGetter && !m.IsSetter
}

// Member is one of Constructor, Property, Method or EnumField.
type Member interface {
	MemberName() string
	member()
}

// Constructor is an instance or type initializer.
type Constructor struct {
	Method MethodDefinition
}

// Property pairs optional accessors.
type Property struct {
	Name   string
	Type   string
	Getter *MethodDefinition
	Setter *MethodDefinition
}

// Method is a plain method, never a property accessor.
type Method struct {
	Method MethodDefinition
}

// EnumField is a named enum constant.
type EnumField struct {
	Name  string
	Value int64
}

func (c Constructor) MemberName() string { return c.Method.Identity.Name }
func (p Property) MemberName() string    { return p.Name }
func (m Method) MemberName() string      { return m.Method.Identity.Name }
func (e EnumField) MemberName() string   { return e.Name }

func (Constructor) member() {}
func (Property) member()    {}
func (Method) member()      {}
func (EnumField) member()   {}

// TypeDefinition is a parsed type. Members are ordered constructors, then
// properties, then non-accessor methods, each in declaration order.
type TypeDefinition struct {
	Module      string
	Namespace   string
	Name        string
	Base        string
	Kind        TypeKind
	UserVisible bool
	Members     []Member
}

// FullName returns the namespace-qualified name.
func (t *TypeDefinition) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}

	return t.Namespace + "." + t.Name
}

// Module is the read-only view of one parsed module entry.
type Module struct {
	Entry string
	Name  string
	Size  int64
	Types []*TypeDefinition
}

// Candidate pairs a display key with the method it selects.
type Candidate struct {
	DisplayKey string
	Identity   MethodIdentity
}
