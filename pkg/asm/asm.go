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

// Package asm is the assembler for the form instruction set.
//
// A source file has an optional macro section followed by a code section:
//
//	🔓 load
//	👈 🍩 _
//	🔒
//	💬
//	load 5
//	top:
//	🤖 📢
//	♿ top
//
// Assembly runs in fixed stages. The macro section is parsed and every
// invocation in the code section is replaced by the macro body. Then the
// expanded code is scanned once to build the symbol table, and scanned a
// second time to encode one byte per instruction. Labels may therefore be
// referenced before they are defined. Any error stops assembly; there are
// no warnings and no partial output.
//
// Line numbers in errors refer to the original source file. An error in a
// line produced by macro expansion is reported at the invocation.
package asm

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/gmofishsauce/formasm/pkg/isa"
)

var log = logrus.WithField("component", "asm")

// Program is the result of a successful assembly.
type Program struct {
	Words   []isa.Word
	Lines   []int // source line of each word
	Symbols SymbolTable
}

// Bytes returns the raw instruction stream.
func (p *Program) Bytes() []byte {
	b := make([]byte, len(p.Words))
	for i, w := range p.Words {
		b[i] = byte(w)
	}
	return b
}

// Assemble translates src into a program.
func Assemble(src string) (*Program, error) {
	macros, code, err := splitSections(src)
	if err != nil {
		return nil, err
	}
	log.Debugf("%d macros, %d code lines", len(macros), len(code))

	code, err = Expand(macros, code)
	if err != nil {
		return nil, err
	}

	// Undefined jump targets are left to the encoder so that errors are
	// reported in source order.
	symbols, _, err := collectSymbols(code)
	if err != nil {
		return nil, err
	}

	prog := &Program{Symbols: symbols}
	var pc uint
	for _, line := range code {
		toks := tokens(line.Text)
		if len(toks) == 0 {
			continue
		}
		if _, ok := isLabel(toks); ok {
			continue
		}
		pc++
		w, err := encodeLine(toks, line.Num, pc, symbols)
		if err != nil {
			return nil, err
		}
		prog.Words = append(prog.Words, w)
		prog.Lines = append(prog.Lines, line.Num)
	}
	log.Debugf("assembled %d instructions", len(prog.Words))
	return prog, nil
}

// AssembleFile reads and assembles the named source file.
func AssembleFile(name string) (*Program, error) {
	src, err := os.ReadFile(name)
	if err != nil {
		return nil, wrapError(IOError, 0, err, "reading source")
	}
	return Assemble(string(src))
}
