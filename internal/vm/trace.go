package vm

import (
	"fmt"
	"strconv"
	"sync"
)

// EventKind distinguishes entry from exit events.
type EventKind string

// Event kinds.
const (
	EventEnter EventKind = "enter"
	EventExit  EventKind = "exit"
)

// TraceEvent is one call into the trace shim, with values rendered as text.
type TraceEvent struct {
	Kind     EventKind
	Method   string
	Token    int64
	HasArgs  bool
	Args     []string
	HasValue bool
	Value    string
}

func (e TraceEvent) String() string {
	name := e.Method
	if name == "" {
		name = "<anonymous>"
	}

	switch {
	case e.Kind == EventEnter && e.HasArgs:
		return fmt.Sprintf("#%d enter %s %v", e.Token, name, e.Args)
	case e.Kind == EventEnter:
		return fmt.Sprintf("#%d enter %s", e.Token, name)
	case e.HasValue:
		return fmt.Sprintf("#%d exit %s = %s", e.Token, name, e.Value)
	default:
		return fmt.Sprintf("#%d exit %s", e.Token, name)
	}
}

// Recorder is a Tracer that keeps events in memory. Tokens start at 1.
type Recorder struct {
	mu     sync.Mutex
	next   int64
	events []TraceEvent
	sink   func(TraceEvent) error
	err    error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Enter implements Tracer.
func (r *Recorder) Enter(method Value, args []Value) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++

	ev := TraceEvent{Kind: EventEnter, Method: methodName(method), Token: r.next}
	if args != nil {
		ev.HasArgs = true
		ev.Args = make([]string, len(args))

		for i, a := range args {
			ev.Args[i] = FormatValue(a)
		}
	}

	r.add(ev)

	return r.next
}

// Exit implements Tracer.
func (r *Recorder) Exit(method Value, token int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.add(TraceEvent{Kind: EventExit, Method: methodName(method), Token: token})
}

// ExitValue implements Tracer.
func (r *Recorder) ExitValue(method Value, token int64, value Value) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.add(TraceEvent{Kind: EventExit, Method: methodName(method), Token: token, HasValue: true, Value: FormatValue(value)})
}

func (r *Recorder) add(ev TraceEvent) {
	r.events = append(r.events, ev)

	if r.sink != nil && r.err == nil {
		r.err = r.sink(ev)
	}
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []TraceEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]TraceEvent(nil), r.events...)
}

// Reset drops recorded events. Tokens keep increasing.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
}

// Err returns the first error returned by the sink.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.err
}

// Appender is the subset of a spill file the recorder streams into.
type Appender interface {
	Append(item TraceEvent) error
}

// NewSpillRecorder returns a Recorder that also appends every event to out.
func NewSpillRecorder(out Appender) *Recorder {
	return &Recorder{sink: out.Append}
}

func methodName(v Value) string {
	if s, ok := v.(string); ok {
		return s
	}

	return ""
}

// FormatValue renders a runtime value for trace output.
func FormatValue(v Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10) + "L"
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case *Object:
		return x.Type
	case *Array:
		return fmt.Sprintf("object[%d]", len(x.Elems))
	default:
		return fmt.Sprintf("%v", x)
	}
}
