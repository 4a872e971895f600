package module

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Disassemble writes a listing of every type and method body in m.
func Disassemble(w io.Writer, m *Module) error {
	if _, err := fmt.Fprintf(w, ".module %s\n", m.Name); err != nil {
		return err
	}

	for _, t := range m.Types {
		if _, err := fmt.Fprintf(w, "\n.%s %s\n", t.Kind, m.FullName(t)); err != nil {
			return err
		}

		for _, md := range t.Methods {
			text, err := DisassembleMethod(m, md)
			if err != nil {
				return err
			}

			if _, err := io.WriteString(w, text); err != nil {
				return err
			}
		}
	}

	return nil
}

// MethodSignature renders "Type::Name(params) ret" for md.
func MethodSignature(m *Module, md *MethodDef) string {
	_, td, _ := m.Method(m.MethodRow(md))

	owner := "?"
	if td != nil {
		owner = m.FullName(td)
	}

	return owner + "::" + m.String(md.Name) + md.Sig.ParamList(m) + " " + md.Sig.Return.Format(m)
}

// DisassembleMethod renders one method, its locals, instructions and regions.
func DisassembleMethod(m *Module, md *MethodDef) (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "  .method %s%s\n", methodModifiers(md.Flags), MethodSignature(m, md))

	if md.Body == nil {
		return sb.String(), nil
	}

	body, err := DecodeBody(md.Body)
	if err != nil {
		return "", fmt.Errorf("disassemble %s: %w", m.String(md.Name), err)
	}

	fmt.Fprintf(&sb, "    .maxstack %d\n", body.MaxStack)

	if len(body.Locals) > 0 {
		locals := make([]string, len(body.Locals))
		for i, l := range body.Locals {
			locals[i] = fmt.Sprintf("[%d] %s", i, l.Format(m))
		}

		fmt.Fprintf(&sb, "    .locals (%s)\n", strings.Join(locals, ", "))
	}

	for _, in := range body.Instructions {
		fmt.Fprintf(&sb, "    %s\n", FormatInstruction(m, in))
	}

	for _, r := range body.Regions {
		fmt.Fprintf(&sb, "    .try %s to %s %s", label(r.TryStart), label(r.TryEnd), r.Kind)

		switch r.Kind {
		case HandlerCatch:
			fmt.Fprintf(&sb, " %s", m.TypeName(r.CatchType))
		case HandlerFilter:
			fmt.Fprintf(&sb, " %s", label(r.FilterStart))
		}

		fmt.Fprintf(&sb, " handler %s to %s\n", label(r.HandlerStart), label(r.HandlerEnd))
	}

	return sb.String(), nil
}

// FormatInstruction renders a single instruction with its offset label.
func FormatInstruction(m *Module, in *Instruction) string {
	head := label(in) + ": " + in.Op.String()

	switch in.Op.Operand() {
	case OperandNone:
		return head
	case OperandU8, OperandI32, OperandI64:
		return head + " " + strconv.FormatInt(in.Int, 10)
	case OperandF64:
		return head + " " + strconv.FormatFloat(in.Float, 'g', -1, 64)
	case OperandString:
		return head + " " + strconv.Quote(m.String(in.String))
	case OperandToken:
		name := m.MethodName(in.Token)
		if name == "" {
			return head + " " + in.Token.String()
		}

		sig, _ := m.MethodSigOf(in.Token)

		return head + " " + name + sig.ParamList(m)
	case OperandElem:
		return head + " " + (TypeSig{Elem: in.Elem}).Format(m)
	case OperandBranch8, OperandBranch32:
		return head + " " + label(in.Target)
	case OperandSwitch:
		labels := make([]string, len(in.Targets))
		for i, t := range in.Targets {
			labels[i] = label(t)
		}

		return head + " (" + strings.Join(labels, ", ") + ")"
	default:
		return head
	}
}

func label(in *Instruction) string {
	if in == nil {
		return "END"
	}

	return fmt.Sprintf("IL_%04x", in.Offset)
}

func methodModifiers(f MethodFlags) string {
	var sb strings.Builder

	for _, mod := range []struct {
		flag MethodFlags
		name string
	}{
		{MethodPublic, "public"},
		{MethodStatic, "static"},
		{MethodVirtual, "virtual"},
		{MethodAbstract, "abstract"},
		{MethodSpecialName, "specialname"},
		{MethodInstrumented, "instrumented"},
	} {
		if f&mod.flag != 0 {
			sb.WriteString(mod.name)
			sb.WriteByte(' ')
		}
	}

	return sb.String()
}
