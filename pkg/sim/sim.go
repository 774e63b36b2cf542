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

// Package sim defines the form execution engine. It loads the raw
// instruction stream written by the assembler and runs it.
//
// The machine has four 8-bit registers and no data memory. Arithmetic
// wraps. The pc indexes the instruction stream; jumps are relative to the
// jump itself. A program halts on the terminate syscall or by running off
// the end.

package sim

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/gmofishsauce/formasm/pkg/isa"
)

var log = logrus.WithField("component", "sim")

var (
	ErrStepLimit = errors.New("step limit reached")
	ErrBadJump   = errors.New("jump outside the program")
	ErrSyscall   = errors.New("unassigned syscall")
)

type Engine struct {
	program []isa.Word
	reg     [4]uint8
	pc      int // index of the next instruction
	steps   int
	halted  bool
	console *Console
}

func NewEngine(program []byte, console *Console) *Engine {
	words := make([]isa.Word, len(program))
	for i, b := range program {
		words[i] = isa.Word(b)
	}
	return &Engine{program: words, console: console}
}

// Reg returns the contents of r.
func (e *Engine) Reg(r isa.Register) uint8 {
	return e.reg[r]
}

func (e *Engine) PC() int      { return e.pc }
func (e *Engine) Steps() int   { return e.steps }
func (e *Engine) Halted() bool { return e.halted }

// Step executes one instruction.
func (e *Engine) Step() error {
	if e.halted {
		return nil
	}
	if e.pc >= len(e.program) {
		e.halted = true
		return nil
	}
	w := e.program[e.pc]
	in := isa.Decode(w)
	e.steps++
	next := e.pc + 1

	switch in.Op {
	case isa.OpAdd:
		e.reg[in.Reg1] += e.reg[in.Reg2] + in.Imm
	case isa.OpSub:
		e.reg[in.Reg1] -= e.reg[in.Reg2] + in.Imm
	case isa.OpIfEq:
		if (e.reg[in.Reg1] == e.reg[in.Reg2]) == (in.Imm == 1) {
			next++
		}
	case isa.OpAddI:
		e.reg[in.Reg1] += in.Imm
	case isa.OpSubI:
		e.reg[in.Reg1] -= in.Imm
	case isa.OpLoadI:
		e.reg[in.Reg1] = in.Imm
	case isa.OpJump:
		next = e.pc + in.Disp
		if next < 0 || next > len(e.program) {
			return fmt.Errorf("pc %d: %s: %w", e.pc+1, in.Mnemonic(), ErrBadJump)
		}
	case isa.OpSyscall:
		if err := e.syscall(in.Call); err != nil {
			return fmt.Errorf("pc %d: %s: %w", e.pc+1, in.Mnemonic(), err)
		}
	}

	if next > len(e.program) {
		next = len(e.program)
	}
	e.pc = next
	return nil
}

func (e *Engine) syscall(call isa.Syscall) error {
	switch call {
	case isa.SysPrint:
		return e.console.Print(e.reg[isa.R1])
	case isa.SysRead:
		v, err := e.console.Read()
		if err != nil {
			return err
		}
		e.reg[isa.R1] = v
		return nil
	case isa.SysTerminate:
		e.halted = true
		return nil
	default:
		return fmt.Errorf("%w %d", ErrSyscall, call)
	}
}

// Run executes until the program halts. maxSteps bounds the number of
// instructions executed; 0 means no bound.
func (e *Engine) Run(maxSteps int) error {
	for !e.halted {
		if maxSteps > 0 && e.steps >= maxSteps {
			return fmt.Errorf("%w after %d instructions", ErrStepLimit, e.steps)
		}
		if err := e.Step(); err != nil {
			return err
		}
	}
	log.Debugf("halted after %d instructions", e.steps)
	return nil
}

// Simulate loads the named executable and runs it on the process's
// standard input and output.
func Simulate(name string, maxSteps int) error {
	content, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	log.Debugf("loaded %d instructions from %s", len(content), name)
	return NewEngine(content, NewConsole(os.Stdin, os.Stdout)).Run(maxSteps)
}
