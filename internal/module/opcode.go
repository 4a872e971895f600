package module

import "fmt"

// Opcode is a single-byte instruction code.
type Opcode uint8

// Instruction set.
const (
	OpNop        Opcode = 0x00
	OpLdnull     Opcode = 0x01
	OpLdarg      Opcode = 0x02
	OpStarg      Opcode = 0x03
	OpLdloc      Opcode = 0x04
	OpStloc      Opcode = 0x05
	OpLdcI4      Opcode = 0x06
	OpLdcI8      Opcode = 0x07
	OpLdcR8      Opcode = 0x08
	OpLdstr      Opcode = 0x09
	OpDup        Opcode = 0x0A
	OpPop        Opcode = 0x0B
	OpAdd        Opcode = 0x10
	OpSub        Opcode = 0x11
	OpMul        Opcode = 0x12
	OpDiv        Opcode = 0x13
	OpRem        Opcode = 0x14
	OpNeg        Opcode = 0x15
	OpCeq        Opcode = 0x18
	OpClt        Opcode = 0x19
	OpCgt        Opcode = 0x1A
	OpBr         Opcode = 0x20
	OpBrtrue     Opcode = 0x21
	OpBrfalse    Opcode = 0x22
	OpLeave      Opcode = 0x23
	OpBrS        Opcode = 0x24
	OpBrtrueS    Opcode = 0x25
	OpBrfalseS   Opcode = 0x26
	OpLeaveS     Opcode = 0x27
	OpSwitch     Opcode = 0x28
	OpCall       Opcode = 0x30
	OpNewobj     Opcode = 0x31
	OpTail       Opcode = 0x32
	OpRet        Opcode = 0x38
	OpThrow      Opcode = 0x39
	OpEndfinally Opcode = 0x3A
	OpEndfilter  Opcode = 0x3B
	OpRethrow    Opcode = 0x3C
	OpNewarr     Opcode = 0x40
	OpLdelemRef  Opcode = 0x41
	OpStelemRef  Opcode = 0x42
	OpLdlen      Opcode = 0x43
	OpBox        Opcode = 0x44
	OpUnbox      Opcode = 0x45
)

// OperandKind describes how an instruction's operand is encoded.
type OperandKind uint8

// Operand kinds.
const (
	OperandNone OperandKind = iota
	OperandU8
	OperandI32
	OperandI64
	OperandF64
	OperandString
	OperandToken
	OperandElem
	OperandBranch8
	OperandBranch32
	OperandSwitch
)

// FlowKind classifies how control leaves an instruction.
type FlowKind uint8

// Flow kinds.
const (
	FlowNext FlowKind = iota
	FlowBranch
	FlowCondBranch
	FlowReturn
	FlowThrow
	FlowLeave
	FlowEndHandler
	FlowMeta
)

type opInfo struct {
	name    string
	operand OperandKind
	flow    FlowKind
	pop     int
	push    int
}

// varPop marks stack effects that depend on the operand (calls).
const varPop = -1

var opTable = map[Opcode]opInfo{
	OpNop:        {"nop", OperandNone, FlowNext, 0, 0},
	OpLdnull:     {"ldnull", OperandNone, FlowNext, 0, 1},
	OpLdarg:      {"ldarg", OperandU8, FlowNext, 0, 1},
	OpStarg:      {"starg", OperandU8, FlowNext, 1, 0},
	OpLdloc:      {"ldloc", OperandU8, FlowNext, 0, 1},
	OpStloc:      {"stloc", OperandU8, FlowNext, 1, 0},
	OpLdcI4:      {"ldc.i4", OperandI32, FlowNext, 0, 1},
	OpLdcI8:      {"ldc.i8", OperandI64, FlowNext, 0, 1},
	OpLdcR8:      {"ldc.r8", OperandF64, FlowNext, 0, 1},
	OpLdstr:      {"ldstr", OperandString, FlowNext, 0, 1},
	OpDup:        {"dup", OperandNone, FlowNext, 1, 2},
	OpPop:        {"pop", OperandNone, FlowNext, 1, 0},
	OpAdd:        {"add", OperandNone, FlowNext, 2, 1},
	OpSub:        {"sub", OperandNone, FlowNext, 2, 1},
	OpMul:        {"mul", OperandNone, FlowNext, 2, 1},
	OpDiv:        {"div", OperandNone, FlowNext, 2, 1},
	OpRem:        {"rem", OperandNone, FlowNext, 2, 1},
	OpNeg:        {"neg", OperandNone, FlowNext, 1, 1},
	OpCeq:        {"ceq", OperandNone, FlowNext, 2, 1},
	OpClt:        {"clt", OperandNone, FlowNext, 2, 1},
	OpCgt:        {"cgt", OperandNone, FlowNext, 2, 1},
	OpBr:         {"br", OperandBranch32, FlowBranch, 0, 0},
	OpBrtrue:     {"brtrue", OperandBranch32, FlowCondBranch, 1, 0},
	OpBrfalse:    {"brfalse", OperandBranch32, FlowCondBranch, 1, 0},
	OpLeave:      {"leave", OperandBranch32, FlowLeave, 0, 0},
	OpBrS:        {"br.s", OperandBranch8, FlowBranch, 0, 0},
	OpBrtrueS:    {"brtrue.s", OperandBranch8, FlowCondBranch, 1, 0},
	OpBrfalseS:   {"brfalse.s", OperandBranch8, FlowCondBranch, 1, 0},
	OpLeaveS:     {"leave.s", OperandBranch8, FlowLeave, 0, 0},
	OpSwitch:     {"switch", OperandSwitch, FlowCondBranch, 1, 0},
	OpCall:       {"call", OperandToken, FlowNext, varPop, 0},
	OpNewobj:     {"newobj", OperandToken, FlowNext, varPop, 1},
	OpTail:       {"tail.", OperandNone, FlowMeta, 0, 0},
	OpRet:        {"ret", OperandNone, FlowReturn, varPop, 0},
	OpThrow:      {"throw", OperandNone, FlowThrow, 1, 0},
	OpEndfinally: {"endfinally", OperandNone, FlowEndHandler, 0, 0},
	OpEndfilter:  {"endfilter", OperandNone, FlowEndHandler, 1, 0},
	OpRethrow:    {"rethrow", OperandNone, FlowThrow, 0, 0},
	OpNewarr:     {"newarr", OperandElem, FlowNext, 1, 1},
	OpLdelemRef:  {"ldelem.ref", OperandNone, FlowNext, 2, 1},
	OpStelemRef:  {"stelem.ref", OperandNone, FlowNext, 3, 0},
	OpLdlen:      {"ldlen", OperandNone, FlowNext, 1, 1},
	OpBox:        {"box", OperandElem, FlowNext, 1, 1},
	OpUnbox:      {"unbox", OperandElem, FlowNext, 1, 1},
}

// Valid reports whether op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opTable[op]

	return ok
}

func (op Opcode) String() string {
	if info, ok := opTable[op]; ok {
		return info.name
	}

	return fmt.Sprintf("op(%#02x)", uint8(op))
}

// Operand returns the operand encoding of op.
func (op Opcode) Operand() OperandKind { return opTable[op].operand }

// Flow returns the control-flow class of op.
func (op Opcode) Flow() FlowKind { return opTable[op].flow }

// IsBranch reports whether op carries one or more branch targets.
func (op Opcode) IsBranch() bool {
	switch op.Operand() {
	case OperandBranch8, OperandBranch32, OperandSwitch:
		return true
	default:
		return false
	}
}

// Long returns the 32-bit form of a short branch, or op itself.
func (op Opcode) Long() Opcode {
	switch op {
	case OpBrS:
		return OpBr
	case OpBrtrueS:
		return OpBrtrue
	case OpBrfalseS:
		return OpBrfalse
	case OpLeaveS:
		return OpLeave
	default:
		return op
	}
}

func operandSize(op Opcode, switchCount int) int {
	switch op.Operand() {
	case OperandNone:
		return 0
	case OperandU8, OperandElem, OperandBranch8:
		return 1
	case OperandI32, OperandString, OperandToken, OperandBranch32:
		return 4
	case OperandI64, OperandF64:
		return 8
	case OperandSwitch:
		return 4 + 4*switchCount
	default:
		return 0
	}
}
