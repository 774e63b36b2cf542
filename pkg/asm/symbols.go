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
	"sort"

	"github.com/gmofishsauce/formasm/pkg/isa"
)

// SymbolTable maps label names to the one-based pc of the instruction
// that follows the label.
type SymbolTable map[string]uint

// Names returns the labels in sorted order.
func (st SymbolTable) Names() []string {
	names := make([]string, 0, len(st))
	for n := range st {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type jumpRef struct {
	target string
	line   int
}

// BuildSymbols is the first pass. It assigns pcs to the instruction lines
// of the expanded code and records every label. When it returns without
// error, every jump operand in code is a numeric literal or a known label.
func BuildSymbols(code []Line) (SymbolTable, error) {
	symbols, refs, err := collectSymbols(code)
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		if _, ok := jumpLiteral(ref.target); ok {
			continue
		}
		if _, ok := symbols[ref.target]; !ok {
			return nil, newError(UnknownLabel, ref.line, "jump to undefined label %q", ref.target)
		}
	}
	return symbols, nil
}

// collectSymbols records the labels of code and the jump operands that
// refer to them, in source order.
func collectSymbols(code []Line) (SymbolTable, []jumpRef, error) {
	symbols := make(SymbolTable)
	var refs []jumpRef
	var pc uint

	for _, line := range code {
		toks := tokens(line.Text)
		if len(toks) == 0 {
			continue
		}
		if name, ok := isLabel(toks); ok {
			if name == "" {
				return nil, nil, newError(InvalidLabel, line.Num, "empty label name")
			}
			if _, dup := symbols[name]; dup {
				return nil, nil, newError(DuplicateLabel, line.Num, "label %q is already defined", name)
			}
			symbols[name] = pc + 1
			continue
		}
		pc++
		if op, ok := isa.OpcodeFor(leadingRune(toks[0])); ok && op == isa.OpJump && len(toks) > 1 {
			refs = append(refs, jumpRef{toks[1], line.Num})
		}
	}
	log.Debugf("%d labels over %d instructions", len(symbols), pc)
	return symbols, refs, nil
}
