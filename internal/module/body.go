package module

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBadOpcode is returned for bytes that do not decode to an instruction.
	ErrBadOpcode = errors.New("module: bad opcode")
	// ErrBadBranch is returned when a branch target is not an instruction boundary.
	ErrBadBranch = errors.New("module: branch target is not an instruction boundary")
	// ErrBadRegion is returned when a handler boundary is not an instruction boundary.
	ErrBadRegion = errors.New("module: handler boundary is not an instruction boundary")
)

// Instruction is one decoded instruction. Branch operands point at other
// instructions rather than holding raw offsets, so inserting code never
// invalidates them.
type Instruction struct {
	// Offset is the byte offset the instruction was decoded from or last encoded at.
	Offset uint32
	Op     Opcode
	// Int holds u8, i32 and i64 operands.
	Int   int64
	Float float64
	// Token holds call and newobj operands.
	Token Token
	// String holds the ldstr string heap index.
	String uint32
	// Elem holds newarr, box and unbox operands.
	Elem    ElementType
	Target  *Instruction
	Targets []*Instruction
}

// Size returns the encoded size of the instruction in bytes.
func (in *Instruction) Size() int {
	return 1 + operandSize(in.Op, len(in.Targets))
}

// ExceptionRegion is a handler clause expressed over instructions. A nil end
// means the end of the body.
type ExceptionRegion struct {
	Kind         HandlerKind
	TryStart     *Instruction
	TryEnd       *Instruction
	HandlerStart *Instruction
	HandlerEnd   *Instruction
	FilterStart  *Instruction
	CatchType    Token
}

// MethodBody is the instruction-level form of a Body.
type MethodBody struct {
	MaxStack     uint16
	Locals       []TypeSig
	Instructions []*Instruction
	Regions      []*ExceptionRegion
}

// DecodeBody converts a raw body into instructions and resolves every branch
// target and handler boundary to an instruction.
func DecodeBody(b *Body) (*MethodBody, error) {
	if b == nil {
		return nil, errors.New("module: method has no body")
	}

	mb := &MethodBody{
		MaxStack: b.MaxStack,
		Locals:   append([]TypeSig(nil), b.Locals...),
	}

	byOffset := make(map[uint32]*Instruction)
	rawTargets := make(map[*Instruction][]int64)

	code := b.Code
	pos := 0

	for pos < len(code) {
		in, targets, n, err := decodeInstruction(code[pos:])
		if err != nil {
			return nil, fmt.Errorf("offset %#x: %w", pos, err)
		}

		in.Offset = uint32(pos)
		next := int64(pos + n)

		if len(targets) > 0 {
			abs := make([]int64, len(targets))
			for i, delta := range targets {
				abs[i] = next + delta
			}

			rawTargets[in] = abs
		}

		mb.Instructions = append(mb.Instructions, in)
		byOffset[in.Offset] = in
		pos += n
	}

	for in, abs := range rawTargets {
		resolved := make([]*Instruction, len(abs))

		for i, target := range abs {
			if target < 0 || target > math.MaxUint32 {
				return nil, fmt.Errorf("%w: %#x -> %d", ErrBadBranch, in.Offset, target)
			}

			t, ok := byOffset[uint32(target)]
			if !ok {
				return nil, fmt.Errorf("%w: %#x -> %#x", ErrBadBranch, in.Offset, target)
			}

			resolved[i] = t
		}

		if in.Op == OpSwitch {
			in.Targets = resolved
		} else {
			in.Target = resolved[0]
		}
	}

	end := uint32(len(code))

	boundary := func(off uint32) (*Instruction, error) {
		if off == end {
			return nil, nil
		}

		in, ok := byOffset[off]
		if !ok {
			return nil, fmt.Errorf("%w: %#x", ErrBadRegion, off)
		}

		return in, nil
	}

	for _, h := range b.Handlers {
		r := &ExceptionRegion{Kind: h.Kind, CatchType: h.CatchType}

		var err error

		points := []struct {
			dst **Instruction
			off uint64
		}{
			{&r.TryStart, uint64(h.TryOffset)},
			{&r.TryEnd, uint64(h.TryOffset) + uint64(h.TryLength)},
			{&r.HandlerStart, uint64(h.HandlerOffset)},
			{&r.HandlerEnd, uint64(h.HandlerOffset) + uint64(h.HandlerLength)},
		}
		if h.Kind == HandlerFilter {
			points = append(points, struct {
				dst **Instruction
				off uint64
			}{&r.FilterStart, uint64(h.FilterOffset)})
		}

		for _, p := range points {
			if p.off > uint64(end) {
				return nil, fmt.Errorf("%w: %#x beyond end %#x", ErrBadRegion, p.off, end)
			}

			if *p.dst, err = boundary(uint32(p.off)); err != nil {
				return nil, err
			}
		}

		if r.TryStart == nil || r.HandlerStart == nil {
			return nil, fmt.Errorf("%w: empty region", ErrBadRegion)
		}

		mb.Regions = append(mb.Regions, r)
	}

	return mb, nil
}

func decodeInstruction(code []byte) (*Instruction, []int64, int, error) {
	op := Opcode(code[0])
	if !op.Valid() {
		return nil, nil, 0, fmt.Errorf("%w: %#02x", ErrBadOpcode, code[0])
	}

	in := &Instruction{Op: op}
	rest := code[1:]

	need := func(n int) error {
		if len(rest) < n {
			return fmt.Errorf("%w: %s operand", ErrTruncated, op)
		}

		return nil
	}

	switch op.Operand() {
	case OperandNone:
		return in, nil, 1, nil
	case OperandU8:
		if err := need(1); err != nil {
			return nil, nil, 0, err
		}

		in.Int = int64(rest[0])

		return in, nil, 2, nil
	case OperandElem:
		if err := need(1); err != nil {
			return nil, nil, 0, err
		}

		in.Elem = ElementType(rest[0])

		return in, nil, 2, nil
	case OperandI32:
		if err := need(4); err != nil {
			return nil, nil, 0, err
		}

		in.Int = int64(int32(binary.LittleEndian.Uint32(rest)))

		return in, nil, 5, nil
	case OperandI64:
		if err := need(8); err != nil {
			return nil, nil, 0, err
		}

		in.Int = int64(binary.LittleEndian.Uint64(rest))

		return in, nil, 9, nil
	case OperandF64:
		if err := need(8); err != nil {
			return nil, nil, 0, err
		}

		in.Float = math.Float64frombits(binary.LittleEndian.Uint64(rest))

		return in, nil, 9, nil
	case OperandString:
		if err := need(4); err != nil {
			return nil, nil, 0, err
		}

		in.String = binary.LittleEndian.Uint32(rest)

		return in, nil, 5, nil
	case OperandToken:
		if err := need(4); err != nil {
			return nil, nil, 0, err
		}

		in.Token = Token(binary.LittleEndian.Uint32(rest))

		return in, nil, 5, nil
	case OperandBranch8:
		if err := need(1); err != nil {
			return nil, nil, 0, err
		}

		return in, []int64{int64(int8(rest[0]))}, 2, nil
	case OperandBranch32:
		if err := need(4); err != nil {
			return nil, nil, 0, err
		}

		return in, []int64{int64(int32(binary.LittleEndian.Uint32(rest)))}, 5, nil
	case OperandSwitch:
		if err := need(4); err != nil {
			return nil, nil, 0, err
		}

		count := int(binary.LittleEndian.Uint32(rest))
		if count < 0 || count > len(rest)/4 {
			return nil, nil, 0, fmt.Errorf("%w: switch with %d targets", ErrTruncated, count)
		}

		if err := need(4 + 4*count); err != nil {
			return nil, nil, 0, err
		}

		deltas := make([]int64, count)
		for i := range count {
			deltas[i] = int64(int32(binary.LittleEndian.Uint32(rest[4+4*i:])))
		}

		// A switch with no targets still needs a placeholder so it is not treated as a plain op.
		in.Targets = []*Instruction{}

		return in, deltas, 5 + 4*count, nil
	default:
		return nil, nil, 0, fmt.Errorf("%w: %s", ErrBadOpcode, op)
	}
}

// EncodeBody assigns offsets, widens short branches whose displacement no
// longer fits in a byte, and serialises the instructions and regions.
func EncodeBody(mb *MethodBody) (*Body, error) {
	if err := layout(mb.Instructions); err != nil {
		return nil, err
	}

	var code []byte
	for _, in := range mb.Instructions {
		var err error

		code, err = appendInstruction(code, in)
		if err != nil {
			return nil, err
		}
	}

	end := uint32(len(code))
	offsetOf := func(in *Instruction) uint32 {
		if in == nil {
			return end
		}

		return in.Offset
	}

	b := &Body{
		MaxStack: mb.MaxStack,
		Locals:   append([]TypeSig(nil), mb.Locals...),
		Code:     code,
	}

	for _, r := range mb.Regions {
		tryStart, tryEnd := offsetOf(r.TryStart), offsetOf(r.TryEnd)
		handlerStart, handlerEnd := offsetOf(r.HandlerStart), offsetOf(r.HandlerEnd)

		if tryEnd < tryStart || handlerEnd < handlerStart {
			return nil, fmt.Errorf("%w: inverted region", ErrBadRegion)
		}

		h := Handler{
			Kind:          r.Kind,
			TryOffset:     tryStart,
			TryLength:     tryEnd - tryStart,
			HandlerOffset: handlerStart,
			HandlerLength: handlerEnd - handlerStart,
			CatchType:     r.CatchType,
		}
		if r.Kind == HandlerFilter {
			h.FilterOffset = offsetOf(r.FilterStart)
		}

		b.Handlers = append(b.Handlers, h)
	}

	return b, nil
}

func layout(instrs []*Instruction) error {
	index := make(map[*Instruction]bool, len(instrs))
	for _, in := range instrs {
		index[in] = true
	}

	for {
		var off uint32
		for _, in := range instrs {
			in.Offset = off
			off += uint32(in.Size())
		}

		widened := false

		for _, in := range instrs {
			if in.Op.Operand() != OperandBranch8 {
				continue
			}

			if in.Target == nil || !index[in.Target] {
				return fmt.Errorf("%w: %s at %#x has no target", ErrBadBranch, in.Op, in.Offset)
			}

			delta := int64(in.Target.Offset) - int64(in.Offset+uint32(in.Size()))
			if delta < math.MinInt8 || delta > math.MaxInt8 {
				in.Op = in.Op.Long()
				widened = true
			}
		}

		if !widened {
			return nil
		}
	}
}

func appendInstruction(code []byte, in *Instruction) ([]byte, error) {
	code = append(code, byte(in.Op))
	next := int64(in.Offset) + int64(in.Size())

	switch in.Op.Operand() {
	case OperandNone:
	case OperandU8:
		if in.Int < 0 || in.Int > math.MaxUint8 {
			return nil, fmt.Errorf("module: %s operand %d out of range", in.Op, in.Int)
		}

		code = append(code, byte(in.Int))
	case OperandElem:
		code = append(code, byte(in.Elem))
	case OperandI32:
		code = binary.LittleEndian.AppendUint32(code, uint32(int32(in.Int)))
	case OperandI64:
		code = binary.LittleEndian.AppendUint64(code, uint64(in.Int))
	case OperandF64:
		code = binary.LittleEndian.AppendUint64(code, math.Float64bits(in.Float))
	case OperandString:
		code = binary.LittleEndian.AppendUint32(code, in.String)
	case OperandToken:
		code = binary.LittleEndian.AppendUint32(code, uint32(in.Token))
	case OperandBranch8:
		code = append(code, byte(int8(int64(in.Target.Offset)-next)))
	case OperandBranch32:
		if in.Target == nil {
			return nil, fmt.Errorf("%w: %s at %#x has no target", ErrBadBranch, in.Op, in.Offset)
		}

		code = binary.LittleEndian.AppendUint32(code, uint32(int32(int64(in.Target.Offset)-next)))
	case OperandSwitch:
		code = binary.LittleEndian.AppendUint32(code, uint32(len(in.Targets)))

		for _, t := range in.Targets {
			if t == nil {
				return nil, fmt.Errorf("%w: switch at %#x has a nil target", ErrBadBranch, in.Offset)
			}

			code = binary.LittleEndian.AppendUint32(code, uint32(int32(int64(t.Offset)-next)))
		}
	}

	return code, nil
}
