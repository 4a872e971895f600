package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "tracehook.dev/pkg/tracehook/internal/model"
	"tracehook.dev/pkg/tracehook/internal/vm"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayPackage prints the module, type and member tree.
func (s *SimpleUI) DisplayPackage(ctx context.Context, path m.Path, modules []*m.Module) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s", renderPackage(path, modules))
}

// DisplayCandidates prints hookable methods and their current hook flags.
func (s *SimpleUI) DisplayCandidates(ctx context.Context, candidates []m.Candidate, hooks []m.HookDescriptor) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s", renderCandidates(candidates, hooks))
}

// DisplayHooks prints the hook set.
func (s *SimpleUI) DisplayHooks(ctx context.Context, hooks []m.HookDescriptor) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s", renderHooks(hooks))
}

// DisplayEvent prints state transitions and method outcomes as they happen.
func (s *SimpleUI) DisplayEvent(ctx context.Context, event m.Event) {
	if ctx.Err() != nil {
		return
	}

	if line := formatEvent(event); line != "" {
		s.printf("%s\n", line)
	}
}

// DisplayReport prints the outcome table and artifact summary.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.RunReport) {
	if ctx.Err() != nil {
		return
	}

	s.printf("\n%s", renderReport(report))
}

// DisplayDeploy prints the deployment result.
func (s *SimpleUI) DisplayDeploy(ctx context.Context, device string, success bool, detail string) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s\n", formatDeploy(device, success, detail))
}

// DisplayDiff prints a unified diff of a method listing.
func (s *SimpleUI) DisplayDiff(ctx context.Context, method string, diff string) {
	if ctx.Err() != nil {
		return
	}

	if diff == "" {
		s.printf("%s: no changes\n", method)
		return
	}

	s.printf("%s", diff)
}

// DisplayTrace prints the trace events of an emulated call.
func (s *SimpleUI) DisplayTrace(ctx context.Context, method string, events []vm.TraceEvent, result string) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s", renderTrace(method, events, result))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func newTable(buf *bytes.Buffer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	return table
}

func renderPackage(path m.Path, modules []*m.Module) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", path)

	for _, mod := range modules {
		fmt.Fprintf(&b, "  %s (%s, %s)\n", mod.Entry, mod.Name, humanize.Bytes(uint64(max(mod.Size, 0))))

		for _, t := range mod.Types {
			if !t.UserVisible {
				continue
			}

			header := fmt.Sprintf("    %s %s", t.Kind, t.FullName())
			if t.Base != "" {
				header += " : " + t.Base
			}

			b.WriteString(header + "\n")

			for _, member := range t.Members {
				b.WriteString("      " + formatMember(member) + "\n")
			}
		}
	}

	return b.String()
}

func formatMember(member m.Member) string {
	switch x := member.(type) {
	case m.Constructor:
		return "ctor   " + x.Method.Identity.Name + x.Method.Identity.Signature
	case m.Property:
		var acc []string
		if x.Getter != nil {
			acc = append(acc, "get")
		}

		if x.Setter != nil {
			acc = append(acc, "set")
		}

		return fmt.Sprintf("prop   %s %s { %s }", x.Type, x.Name, strings.Join(acc, "; "))
	case m.Method:
		md := x.Method

		line := fmt.Sprintf("method %s %s%s", md.ReturnType, md.Identity.Name, md.Identity.Signature)
		if md.IsStatic {
			line += " static"
		}

		if !md.HasBody {
			line += " abstract"
		}

		return line
	case m.EnumField:
		return fmt.Sprintf("field  %s = %d", x.Name, x.Value)
	default:
		return fmt.Sprintf("%v", member)
	}
}

func renderCandidates(candidates []m.Candidate, hooks []m.HookDescriptor) string {
	flags := make(map[m.MethodIdentity]string, len(hooks))
	for _, h := range hooks {
		flags[h.Method] = h.Flags()
	}

	var buf bytes.Buffer

	table := newTable(&buf, "Method", "Hook")

	hooked := 0

	for _, c := range candidates {
		f, ok := flags[c.Identity]
		if ok {
			hooked++
		} else {
			f = "-"
		}

		table.Append([]string{c.DisplayKey, f})
	}

	table.SetFooter([]string{fmt.Sprintf("%d candidates", len(candidates)), fmt.Sprintf("%d hooked", hooked)})
	table.Render()

	return buf.String()
}

func renderHooks(hooks []m.HookDescriptor) string {
	if len(hooks) == 0 {
		return "no hooks\n"
	}

	var buf bytes.Buffer

	table := newTable(&buf, "Method", "Name", "Params", "Return")

	for _, h := range hooks {
		table.Append([]string{h.Method.String(), check(h.LogName), check(h.LogParameters), check(h.LogReturn)})
	}

	table.Render()

	return buf.String()
}

func check(b bool) string {
	if b {
		return "x"
	}

	return ""
}

func formatEvent(ev m.Event) string {
	switch {
	case ev.Outcome != nil:
		return formatOutcome(*ev.Outcome)
	case ev.Err != nil:
		return fmt.Sprintf("[%s] %v", ev.State, ev.Err)
	default:
		return fmt.Sprintf("[%s]", ev.State)
	}
}

func formatOutcome(o m.Outcome) string {
	line := fmt.Sprintf("  %-12s %s", o.Status, o.Method)
	if o.Reason != "" {
		line += " (" + o.Reason + ")"
	}

	return line
}

func renderReport(r m.RunReport) string {
	var buf bytes.Buffer

	if len(r.Outcomes) > 0 {
		table := newTable(&buf, "Method", "Outcome", "Reason")

		for _, o := range r.Outcomes {
			table.Append([]string{o.Method.String(), string(o.Status), o.Reason})
		}

		table.SetFooter([]string{
			fmt.Sprintf("%d instrumented", r.Count(m.OutcomeInstrumented)),
			fmt.Sprintf("%d skipped", r.Count(m.OutcomeSkipped)),
			fmt.Sprintf("%d unmodified", r.Count(m.OutcomeUnmodified)),
		})
		table.Render()
	}

	switch r.State {
	case m.StateReady:
		fmt.Fprintf(&buf, "ready: %s (%s) in %s\n", r.Artifact, humanize.Bytes(uint64(max(r.Size, 0))), r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))

		if r.SHA256 != "" {
			fmt.Fprintf(&buf, "sha256: %s\n", r.SHA256)
		}
	default:
		fmt.Fprintf(&buf, "%s: %s\n", r.State, r.Error)
	}

	return buf.String()
}

func formatDeploy(device string, success bool, detail string) string {
	if device == "" {
		device = "default device"
	}

	if success {
		return "deployed to " + device
	}

	return fmt.Sprintf("deploy to %s failed: %s", device, detail)
}

func renderTrace(method string, events []vm.TraceEvent, result string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", method)

	if len(events) == 0 {
		b.WriteString("  no trace events\n")
	}

	for _, ev := range events {
		fmt.Fprintf(&b, "  %s\n", ev)
	}

	fmt.Fprintf(&b, "  => %s\n", result)

	return b.String()
}
