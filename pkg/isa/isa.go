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

// Package isa defines the form instruction set: the opcode, register and
// syscall dictionaries, and the 8-bit instruction word layout shared by the
// assembler and the engine.
//
// Every instruction is one byte. The opcode is in bits 7-5. The remaining
// five bits are laid out according to the opcode's class:
//
//	R-type   rrRRi   two registers and a 1-bit immediate
//	I-type   rriii   one register and a 3-bit immediate
//	Jump     smmmm   sign-magnitude displacement, -15..15
//	Syscall  000cc   syscall id
//
// The source language spells every opcode, register and syscall with a
// single emoji. Only the leading rune of a token is significant, so a
// trailing variation selector is harmless.
package isa

// Opcode is one of the eight 3-bit operation codes.
type Opcode uint8

const (
	OpAdd Opcode = iota
	OpSub
	OpIfEq
	OpAddI
	OpSubI
	OpLoadI
	OpJump
	OpSyscall

	numOpcodes
)

// Register is one of the four 2-bit register ids.
type Register uint8

const (
	R1 Register = iota
	R2
	R3
	R4

	numRegisters
)

// Syscall is one of the 2-bit syscall ids. Id 3 is unassigned.
type Syscall uint8

const (
	SysPrint Syscall = iota
	SysRead
	SysTerminate

	numSyscalls
)

// Class selects the operand field layout of an instruction.
type Class uint8

const (
	RType Class = iota
	IType
	JType
	SysType
)

// Markers of the source language.
const (
	MacroOpen   = '🔓'
	MacroClose  = '🔒'
	CodeSection = '💬'
	Comment     = '#'
	LabelSuffix = ':'
	Placeholder = "_"
)

var opcodeSymbols = [numOpcodes]rune{'💘', '💔', '🤔', '👆', '👇', '👈', '♿', '🤖'}
var opcodeNames = [numOpcodes]string{"add", "sub", "ifeq", "addi", "subi", "li", "j", "syscall"}

var registerSymbols = [numRegisters]rune{'🍩', '👀', '🍎', '🍊'}
var registerNames = [numRegisters]string{"r1", "r2", "r3", "r4"}

var syscallSymbols = [numSyscalls]rune{'📢', '📜', '🔪'}
var syscallNames = [numSyscalls]string{"print", "read", "terminate"}

var (
	opcodeBySymbol   = make(map[rune]Opcode, numOpcodes)
	registerBySymbol = make(map[rune]Register, numRegisters)
	syscallBySymbol  = make(map[rune]Syscall, numSyscalls)
)

func init() {
	for i, r := range opcodeSymbols {
		opcodeBySymbol[r] = Opcode(i)
	}
	for i, r := range registerSymbols {
		registerBySymbol[r] = Register(i)
	}
	for i, r := range syscallSymbols {
		syscallBySymbol[r] = Syscall(i)
	}
}

// OpcodeFor returns the opcode spelled by symbol.
func OpcodeFor(symbol rune) (Opcode, bool) {
	op, ok := opcodeBySymbol[symbol]
	return op, ok
}

// RegisterFor returns the register spelled by symbol.
func RegisterFor(symbol rune) (Register, bool) {
	reg, ok := registerBySymbol[symbol]
	return reg, ok
}

// SyscallFor returns the syscall spelled by symbol.
func SyscallFor(symbol rune) (Syscall, bool) {
	call, ok := syscallBySymbol[symbol]
	return call, ok
}

func (op Opcode) Valid() bool { return op < numOpcodes }

// Symbol returns the emoji that spells op in source.
func (op Opcode) Symbol() string {
	if !op.Valid() {
		return "?"
	}
	return string(opcodeSymbols[op])
}

func (op Opcode) String() string {
	if !op.Valid() {
		return "?"
	}
	return opcodeNames[op]
}

// Class returns the operand layout used by op.
func (op Opcode) Class() Class {
	switch op {
	case OpAdd, OpSub, OpIfEq:
		return RType
	case OpAddI, OpSubI, OpLoadI:
		return IType
	case OpJump:
		return JType
	default:
		return SysType
	}
}

func (r Register) Valid() bool { return r < numRegisters }

func (r Register) Symbol() string {
	if !r.Valid() {
		return "?"
	}
	return string(registerSymbols[r])
}

func (r Register) String() string {
	if !r.Valid() {
		return "?"
	}
	return registerNames[r]
}

func (s Syscall) Valid() bool { return s < numSyscalls }

func (s Syscall) Symbol() string {
	if !s.Valid() {
		return "?"
	}
	return string(syscallSymbols[s])
}

func (s Syscall) String() string {
	if !s.Valid() {
		return "?"
	}
	return syscallNames[s]
}

func (c Class) String() string {
	switch c {
	case RType:
		return "R-type"
	case IType:
		return "I-type"
	case JType:
		return "jump"
	default:
		return "syscall"
	}
}
