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

package asm

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/gmofishsauce/formasm/pkg/isa"
)

func leadingRune(tok string) rune {
	r, _ := utf8.DecodeRuneInString(tok)
	return r
}

// jumpLiteral parses tok as a signed decimal displacement. A literal too
// large for an int is still a literal; it comes back clamped to the int
// range so the displacement check rejects it.
func jumpLiteral(tok string) (int, bool) {
	d, err := strconv.Atoi(tok)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return d, true
}

// encodeLine encodes the tokens of one instruction line. pc is the line's
// own one-based program counter.
func encodeLine(toks []string, num int, pc uint, symbols SymbolTable) (isa.Word, error) {
	op, ok := isa.OpcodeFor(leadingRune(toks[0]))
	if !ok {
		return 0, newError(UnknownOpcode, num, "unknown opcode %q", toks[0])
	}
	in := isa.Instruction{Op: op}
	operands := toks[1:]

	var err error
	switch op.Class() {
	case isa.RType:
		if err = wantOperands(operands, 3, op, num); err != nil {
			return 0, err
		}
		if in.Reg1, err = parseRegister(operands[0], "first register", num); err != nil {
			return 0, err
		}
		if in.Reg2, err = parseRegister(operands[1], "second register", num); err != nil {
			return 0, err
		}
		if in.Imm, err = parseImmediate(operands[2], isa.MaxRImmediate, num); err != nil {
			return 0, err
		}
	case isa.IType:
		if err = wantOperands(operands, 2, op, num); err != nil {
			return 0, err
		}
		if in.Reg1, err = parseRegister(operands[0], "register", num); err != nil {
			return 0, err
		}
		if in.Imm, err = parseImmediate(operands[1], isa.MaxIImmediate, num); err != nil {
			return 0, err
		}
	case isa.JType:
		if err = wantOperands(operands, 1, op, num); err != nil {
			return 0, err
		}
		if in.Disp, err = resolveJump(operands[0], num, pc, symbols); err != nil {
			return 0, err
		}
	case isa.SysType:
		if err = wantOperands(operands, 1, op, num); err != nil {
			return 0, err
		}
		call, ok := isa.SyscallFor(leadingRune(operands[0]))
		if !ok {
			return 0, newError(UnknownSyscall, num, "unknown syscall %q", operands[0])
		}
		in.Call = call
	}

	w, err := in.Encode()
	if err != nil {
		// Operands were range checked above.
		return 0, wrapError(OperandParseError, num, err, "encoding %s", in.Mnemonic())
	}
	return w, nil
}

func wantOperands(operands []string, n int, op isa.Opcode, num int) error {
	if len(operands) != n {
		return newError(OperandParseError, num, "%s (%s) takes %d operands, found %d",
			op, op.Class(), n, len(operands))
	}
	return nil
}

func parseRegister(tok, field string, num int) (isa.Register, error) {
	reg, ok := isa.RegisterFor(leadingRune(tok))
	if !ok {
		return 0, newError(OperandParseError, num, "%s: unknown register %q", field, tok)
	}
	return reg, nil
}

func parseImmediate(tok string, limit uint8, num int) (uint8, error) {
	n, err := strconv.ParseUint(tok, 10, 8)
	if err != nil {
		return 0, newError(OperandParseError, num, "immediate: %q is not a small unsigned integer", tok)
	}
	if n > uint64(limit) {
		return 0, newError(OperandParseError, num, "immediate: %d not in 0..%d", n, limit)
	}
	return uint8(n), nil
}

// resolveJump returns the displacement named by tok: a signed literal, or
// the distance from pc to a label.
func resolveJump(tok string, num int, pc uint, symbols SymbolTable) (int, error) {
	what := tok
	d, ok := jumpLiteral(tok)
	if !ok {
		target, ok := symbols[tok]
		if !ok {
			return 0, newError(UnknownLabel, num, "jump to undefined label %q", tok)
		}
		d = int(target) - int(pc)
		what = fmt.Sprintf("%d to %q", d, tok)
	}
	if d < -isa.MaxDisplacement || d > isa.MaxDisplacement {
		return 0, newError(DisplacementOverflow, num, "displacement %s not in -%d..%d",
			what, isa.MaxDisplacement, isa.MaxDisplacement)
	}
	return d, nil
}
