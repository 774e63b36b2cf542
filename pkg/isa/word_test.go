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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookups(t *testing.T) {
	op, ok := OpcodeFor('♿')
	assert.True(t, ok)
	assert.Equal(t, OpJump, op)
	_, ok = OpcodeFor('x')
	assert.False(t, ok)

	reg, ok := RegisterFor('🍊')
	assert.True(t, ok)
	assert.Equal(t, R4, reg)

	call, ok := SyscallFor('🔪')
	assert.True(t, ok)
	assert.Equal(t, SysTerminate, call)
	_, ok = SyscallFor('🍊')
	assert.False(t, ok)
}

func TestClasses(t *testing.T) {
	classes := map[Opcode]Class{
		OpAdd: RType, OpSub: RType, OpIfEq: RType,
		OpAddI: IType, OpSubI: IType, OpLoadI: IType,
		OpJump: JType, OpSyscall: SysType,
	}
	for op, c := range classes {
		assert.Equal(t, c, op.Class(), op.String())
	}
}

func TestEncodeExamples(t *testing.T) {
	w, err := Instruction{Op: OpAdd, Reg1: R1, Reg2: R4, Imm: 1}.Encode()
	require.NoError(t, err)
	assert.Equal(t, Word(0x07), w)

	w, err = Instruction{Op: OpLoadI, Reg1: R1, Imm: 5}.Encode()
	require.NoError(t, err)
	assert.Equal(t, Word(0b10100101), w)

	w, err = Instruction{Op: OpSyscall, Call: SysTerminate}.Encode()
	require.NoError(t, err)
	assert.Equal(t, Word(0b11100010), w)
}

func TestDisplacementBounds(t *testing.T) {
	f, err := EncodeDisplacement(15)
	require.NoError(t, err)
	assert.Equal(t, uint8(0b01111), f)

	f, err = EncodeDisplacement(-15)
	require.NoError(t, err)
	assert.Equal(t, uint8(0b11111), f)

	_, err = EncodeDisplacement(16)
	assert.ErrorIs(t, err, ErrDisplacement)
	_, err = EncodeDisplacement(-16)
	assert.ErrorIs(t, err, ErrDisplacement)

	assert.Equal(t, 0, DecodeDisplacement(0b10000))
	assert.Equal(t, -3, DecodeDisplacement(0b10011))
}

func TestEncodeRejects(t *testing.T) {
	_, err := Instruction{Op: OpAdd, Imm: 2}.Encode()
	assert.ErrorIs(t, err, ErrImmediate)
	_, err = Instruction{Op: OpAddI, Imm: 8}.Encode()
	assert.ErrorIs(t, err, ErrImmediate)
	_, err = Instruction{Op: OpSyscall, Call: Syscall(3)}.Encode()
	assert.ErrorIs(t, err, ErrSyscall)
	_, err = Instruction{Op: OpSub, Reg1: Register(4)}.Encode()
	assert.ErrorIs(t, err, ErrRegister)
}

func TestRoundTrip(t *testing.T) {
	var cases []Instruction
	for _, op := range []Opcode{OpAdd, OpSub, OpIfEq} {
		for r1 := R1; r1 <= R4; r1++ {
			for r2 := R1; r2 <= R4; r2++ {
				cases = append(cases, Instruction{Op: op, Reg1: r1, Reg2: r2, Imm: 1})
			}
		}
	}
	for _, op := range []Opcode{OpAddI, OpSubI, OpLoadI} {
		for imm := uint8(0); imm <= MaxIImmediate; imm++ {
			cases = append(cases, Instruction{Op: op, Reg1: R3, Imm: imm})
		}
	}
	for d := -MaxDisplacement; d <= MaxDisplacement; d++ {
		cases = append(cases, Instruction{Op: OpJump, Disp: d})
	}
	for c := SysPrint; c <= SysTerminate; c++ {
		cases = append(cases, Instruction{Op: OpSyscall, Call: c})
	}

	for _, in := range cases {
		w, err := in.Encode()
		require.NoError(t, err, in.Mnemonic())
		assert.Equal(t, in, Decode(w), in.Mnemonic())
	}
}

func TestInstructionString(t *testing.T) {
	assert.Equal(t, "💘 🍩 🍊 1", Instruction{Op: OpAdd, Reg1: R1, Reg2: R4, Imm: 1}.String())
	assert.Equal(t, "♿ -2", Instruction{Op: OpJump, Disp: -2}.String())
	assert.Equal(t, "j -2", Instruction{Op: OpJump, Disp: -2}.Mnemonic())
	assert.Equal(t, "syscall print", Instruction{Op: OpSyscall}.Mnemonic())
	assert.Equal(t, "0b00000111", Word(7).String())
	assert.Equal(t, "0b11000000", Word(0xC0).String())
}
