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

// Package dis turns a form executable back into source text.
package dis

import (
	"fmt"
	"io"

	"github.com/gmofishsauce/formasm/pkg/isa"
)

// Disassemble writes one line per instruction: the one-based pc, the word
// in binary, the instruction in source syntax and its ASCII mnemonic as a
// comment. The source column reassembles to the same bytes.
func Disassemble(out io.Writer, code []byte) error {
	for i, b := range code {
		w := isa.Word(b)
		in := isa.Decode(w)
		src := in.String()
		if in.Op == isa.OpSyscall && !in.Call.Valid() {
			src = fmt.Sprintf("%s ?%d", in.Op.Symbol(), in.Call)
		}
		if _, err := fmt.Fprintf(out, "%4d  %s  %-16s # %s\n", i+1, w, src, in.Mnemonic()); err != nil {
			return err
		}
	}
	return nil
}

// Source returns code as an assemblable source file.
func Source(code []byte) string {
	s := string(isa.CodeSection) + "\n"
	for _, b := range code {
		s += isa.Decode(isa.Word(b)).String() + "\n"
	}
	return s
}
