/*
Copyright © 2023 Jeff Berkowitz (pdxjjb@gmail.com)

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package isa

import (
	"errors"
	"fmt"
	"strings"
)

// Word is one encoded instruction.
type Word uint8

const (
	opcodeShift = 5
	reg1Shift   = 3
	reg2Shift   = 1

	regMask     = 0x03
	operandMask = 0x1F
	signBit     = 0x10
	magMask     = 0x0F

	// MaxRImmediate and MaxIImmediate bound the immediate fields.
	MaxRImmediate = 1
	MaxIImmediate = 7

	// MaxDisplacement bounds the magnitude of a jump displacement.
	MaxDisplacement = magMask
)

var (
	ErrRegister     = errors.New("register out of range")
	ErrImmediate    = errors.New("immediate out of range")
	ErrDisplacement = errors.New("displacement out of range")
	ErrSyscall      = errors.New("unknown syscall")
	ErrOpcode       = errors.New("unknown opcode")
)

// Instruction is a decoded instruction. Only the fields used by the
// opcode's class are significant; the others are zero.
type Instruction struct {
	Op   Opcode
	Reg1 Register
	Reg2 Register
	Imm  uint8
	Disp int
	Call Syscall
}

// Opcode returns the opcode field of w.
func (w Word) Opcode() Opcode {
	return Opcode(w >> opcodeShift)
}

// Operand returns the low five bits of w.
func (w Word) Operand() uint8 {
	return uint8(w) & operandMask
}

func (w Word) String() string {
	return fmt.Sprintf("0b%08b", uint8(w))
}

// EncodeDisplacement converts a signed jump displacement to its 5-bit
// sign-magnitude form.
func EncodeDisplacement(d int) (uint8, error) {
	if d < -MaxDisplacement || d > MaxDisplacement {
		return 0, fmt.Errorf("%w: %d not in -%d..%d", ErrDisplacement, d, MaxDisplacement, MaxDisplacement)
	}
	if d < 0 {
		return signBit | uint8(-d), nil
	}
	return uint8(d), nil
}

// DecodeDisplacement is the inverse of EncodeDisplacement. The "negative
// zero" pattern 0b10000 decodes as 0.
func DecodeDisplacement(field uint8) int {
	mag := int(field & magMask)
	if field&signBit != 0 {
		return -mag
	}
	return mag
}

// Encode packs in into a single word.
func (in Instruction) Encode() (Word, error) {
	if !in.Op.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrOpcode, in.Op)
	}
	w := uint8(in.Op) << opcodeShift

	switch in.Op.Class() {
	case RType:
		if !in.Reg1.Valid() || !in.Reg2.Valid() {
			return 0, ErrRegister
		}
		if in.Imm > MaxRImmediate {
			return 0, fmt.Errorf("%w: %d does not fit 1 bit", ErrImmediate, in.Imm)
		}
		w |= uint8(in.Reg1)<<reg1Shift | uint8(in.Reg2)<<reg2Shift | in.Imm
	case IType:
		if !in.Reg1.Valid() {
			return 0, ErrRegister
		}
		if in.Imm > MaxIImmediate {
			return 0, fmt.Errorf("%w: %d does not fit 3 bits", ErrImmediate, in.Imm)
		}
		w |= uint8(in.Reg1)<<reg1Shift | in.Imm
	case JType:
		field, err := EncodeDisplacement(in.Disp)
		if err != nil {
			return 0, err
		}
		w |= field
	case SysType:
		if !in.Call.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrSyscall, in.Call)
		}
		w |= uint8(in.Call)
	}
	return Word(w), nil
}

// Decode unpacks w. It never fails; an unassigned syscall id decodes to a
// Call for which Valid reports false, and the engine rejects it.
func Decode(w Word) Instruction {
	in := Instruction{Op: w.Opcode()}
	operand := w.Operand()

	switch in.Op.Class() {
	case RType:
		in.Reg1 = Register(operand >> reg1Shift & regMask)
		in.Reg2 = Register(operand >> reg2Shift & regMask)
		in.Imm = operand & MaxRImmediate
	case IType:
		in.Reg1 = Register(operand >> reg1Shift & regMask)
		in.Imm = operand & MaxIImmediate
	case JType:
		in.Disp = DecodeDisplacement(operand)
	case SysType:
		in.Call = Syscall(operand & regMask)
	}
	return in
}

// String renders in in source syntax, e.g. "💘 🍩 🍊 1".
func (in Instruction) String() string {
	var b strings.Builder
	b.WriteString(in.Op.Symbol())
	switch in.Op.Class() {
	case RType:
		fmt.Fprintf(&b, " %s %s %d", in.Reg1.Symbol(), in.Reg2.Symbol(), in.Imm)
	case IType:
		fmt.Fprintf(&b, " %s %d", in.Reg1.Symbol(), in.Imm)
	case JType:
		fmt.Fprintf(&b, " %d", in.Disp)
	case SysType:
		fmt.Fprintf(&b, " %s", in.Call.Symbol())
	}
	return b.String()
}

// Mnemonic renders in with ASCII names, e.g. "add r1 r4 1".
func (in Instruction) Mnemonic() string {
	switch in.Op.Class() {
	case RType:
		return fmt.Sprintf("%s %s %s %d", in.Op, in.Reg1, in.Reg2, in.Imm)
	case IType:
		return fmt.Sprintf("%s %s %d", in.Op, in.Reg1, in.Imm)
	case JType:
		return fmt.Sprintf("%s %+d", in.Op, in.Disp)
	default:
		return fmt.Sprintf("%s %s", in.Op, in.Call)
	}
}
