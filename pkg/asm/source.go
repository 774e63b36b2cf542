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
	"strings"

	"github.com/gmofishsauce/formasm/pkg/isa"
)

// Line is one line of the code section. Num is the 1-based line number in
// the source file; lines spliced in from a macro body carry the number of
// the invocation line.
type Line struct {
	Num  int
	Text string
}

// tokens splits text on whitespace, dropping everything from the first
// token that starts a comment.
func tokens(text string) []string {
	fields := strings.Fields(text)
	for i, f := range fields {
		if strings.HasPrefix(f, string(isa.Comment)) {
			return fields[:i]
		}
	}
	return fields
}

// isLabel reports whether toks is a label definition, and its name.
func isLabel(toks []string) (string, bool) {
	if len(toks) != 1 || !strings.HasSuffix(toks[0], string(isa.LabelSuffix)) {
		return "", false
	}
	return strings.TrimSuffix(toks[0], string(isa.LabelSuffix)), true
}

func sourceLines(src string) []string {
	return strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
}

// splitSections reads the macro section and returns the macro definitions
// in declaration order together with the code section that follows the
// code marker.
func splitSections(src string) ([]*Macro, []Line, error) {
	lines := sourceLines(src)
	var macros []*Macro
	var open *Macro
	seen := make(map[string]bool)

	for i, text := range lines {
		num := i + 1
		if open != nil {
			switch {
			case strings.ContainsRune(text, isa.MacroClose):
				macros = append(macros, open)
				open = nil
			case strings.ContainsRune(text, isa.CodeSection):
				return nil, nil, newError(UnterminatedMacro, open.Line,
					"macro %q is not closed before the code section", open.Name)
			default:
				open.Body = append(open.Body, text)
			}
			continue
		}

		switch {
		case strings.ContainsRune(text, isa.MacroOpen):
			fields := strings.Fields(text)
			if len(fields) < 2 {
				return nil, nil, newError(MacroNameMissing, num, "macro definition has no name")
			}
			name := fields[1]
			if seen[name] {
				return nil, nil, newError(DuplicateMacro, num, "macro %q is already defined", name)
			}
			seen[name] = true
			open = &Macro{Name: name, Line: num}
		case strings.ContainsRune(text, isa.CodeSection):
			code := make([]Line, 0, len(lines)-num)
			for j, t := range lines[num:] {
				code = append(code, Line{Num: num + 1 + j, Text: t})
			}
			return macros, code, nil
		}
	}

	if open != nil {
		return nil, nil, newError(UnterminatedMacro, open.Line, "macro %q is never closed", open.Name)
	}
	return nil, nil, newError(MissingCodeSection, 0, "no %c code section marker found", isa.CodeSection)
}
