// Package vm interprets module method bodies. It exists to check that a
// rewritten module still executes with the semantics of the original and to
// preview the trace events an instrumented method emits.
package vm

import (
	"errors"
	"fmt"
	"strings"

	"tracehook.dev/pkg/tracehook/internal/module"
)

var (
	// ErrMethodNotFound is returned when Invoke cannot resolve a method name.
	ErrMethodNotFound = errors.New("vm: method not found")
	// ErrUnresolved is returned when a call targets an external method with no host binding.
	ErrUnresolved = errors.New("vm: unresolved external method")
	// ErrInvalidProgram is returned when execution hits an operation on the wrong value types.
	ErrInvalidProgram = errors.New("vm: invalid program")
	// ErrStepLimit is returned when execution exceeds the configured step budget.
	ErrStepLimit = errors.New("vm: step limit exceeded")
	// ErrStackOverflow is returned when the call depth limit is hit.
	ErrStackOverflow = errors.New("vm: call depth exceeded")
)

// Shim method names bound to the Tracer.
const (
	ShimType      = "Tracehook.Runtime.Trace"
	ShimEnter     = ShimType + "::Enter"
	ShimExit      = ShimType + "::Exit"
	ShimExitValue = ShimType + "::ExitValue"
)

// Value is a runtime value: nil, int32, int64, float64, bool, string,
// *Object or *Array.
type Value = any

// Object is a heap object.
type Object struct {
	Type   string
	Fields map[string]Value
}

// Array is a single-dimension array of values.
type Array struct {
	Elems []Value
}

// ThrownError is an exception that escaped the invoked method.
type ThrownError struct {
	Exception *Object
}

func (e *ThrownError) Error() string {
	if msg, ok := e.Exception.Fields["message"].(string); ok && msg != "" {
		return fmt.Sprintf("unhandled exception %s: %s", e.Exception.Type, msg)
	}

	return "unhandled exception " + e.Exception.Type
}

// NewException builds an exception object of the given type.
func NewException(typeName, message string) *Object {
	return &Object{Type: typeName, Fields: map[string]Value{"message": message}}
}

// Tracer receives the calls instrumented code makes into the trace shim.
type Tracer interface {
	Enter(method Value, args []Value) int64
	Exit(method Value, token int64)
	ExitValue(method Value, token int64, value Value)
}

// HostFunc implements an external method. args include this for instance methods.
type HostFunc func(args []Value) (Value, error)

// Machine executes methods of a single module.
type Machine struct {
	mod      *module.Module
	tracer   Tracer
	hosts    map[string]HostFunc
	bodies   map[*module.MethodDef]*compiled
	maxSteps int
	maxDepth int
	steps    int
	depth    int
}

// Option configures a Machine.
type Option func(*Machine)

// WithTracer binds the trace shim to t.
func WithTracer(t Tracer) Option {
	return func(m *Machine) { m.tracer = t }
}

// WithHost binds an external method named "Namespace.Type::Name" to fn.
func WithHost(name string, fn HostFunc) Option {
	return func(m *Machine) { m.hosts[name] = fn }
}

// WithStepLimit bounds the number of executed instructions per Invoke.
func WithStepLimit(n int) Option {
	return func(m *Machine) { m.maxSteps = n }
}

// New returns a Machine for mod.
func New(mod *module.Module, opts ...Option) *Machine {
	m := &Machine{
		mod:      mod,
		hosts:    make(map[string]HostFunc),
		bodies:   make(map[*module.MethodDef]*compiled),
		maxSteps: 1_000_000,
		maxDepth: 256,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Invoke runs the method "Namespace.Type::Name" with args. When several
// overloads share the name the first with a matching argument count wins.
func (m *Machine) Invoke(name string, args ...Value) (Value, error) {
	md, err := m.Lookup(name, len(args))
	if err != nil {
		return nil, err
	}

	m.steps = 0
	m.depth = 0

	return m.call(md, args)
}

// Call runs md, which must belong to the machine's module.
func (m *Machine) Call(md *module.MethodDef, args ...Value) (Value, error) {
	if m.mod.MethodRow(md) == 0 {
		return nil, fmt.Errorf("%w: method is not part of module %s", ErrMethodNotFound, m.mod.Name)
	}

	m.steps = 0
	m.depth = 0

	return m.call(md, args)
}

// Lookup resolves a method by name and argument count (including this).
func (m *Machine) Lookup(name string, argc int) (*module.MethodDef, error) {
	typeName, methodName, ok := strings.Cut(name, "::")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMethodNotFound, name)
	}

	for _, t := range m.mod.Types {
		if m.mod.FullName(t) != typeName {
			continue
		}

		for _, md := range t.Methods {
			if m.mod.String(md.Name) == methodName && (argc < 0 || md.Sig.ArgCount() == argc) {
				return md, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %q with %d arguments", ErrMethodNotFound, name, argc)
}

// IsA reports whether an exception of type excType is caught by a handler
// for catchType.
func (m *Machine) IsA(excType, catchType string) bool {
	if catchType == "System.Object" || catchType == "System.Exception" || excType == catchType {
		return true
	}

	seen := map[string]bool{}

	for name := excType; name != "" && !seen[name]; {
		seen[name] = true

		var next string

		for _, t := range m.mod.Types {
			if m.mod.FullName(t) == name {
				next = m.mod.TypeName(t.Base)
				break
			}
		}

		if next == catchType {
			return true
		}

		name = next
	}

	return false
}
