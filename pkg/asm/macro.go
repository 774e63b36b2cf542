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
	"strings"

	"github.com/gmofishsauce/formasm/pkg/isa"
)

// Macro is a named block of source lines. Every occurrence of the
// placeholder in Body is replaced by the invocation argument.
type Macro struct {
	Name string
	Line int // line of the definition, for diagnostics
	Body []string
}

// expand returns the body with the placeholder replaced by arg.
func (m *Macro) expand(arg string, num int) []Line {
	out := make([]Line, len(m.Body))
	for i, text := range m.Body {
		out[i] = Line{Num: num, Text: strings.ReplaceAll(text, isa.Placeholder, arg)}
	}
	return out
}

// Expand replaces every macro invocation in code with the macro's body.
// A line invokes a macro when its code portion contains the macro name;
// the line's second token is the argument. When several names match, the
// longest wins and declaration order breaks ties. Bodies are not rescanned.
func Expand(macros []*Macro, code []Line) ([]Line, error) {
	if len(macros) == 0 {
		return code, nil
	}
	byLength := make([]*Macro, len(macros))
	copy(byLength, macros)
	sort.SliceStable(byLength, func(i, j int) bool {
		return len(byLength[i].Name) > len(byLength[j].Name)
	})

	out := make([]Line, 0, len(code))
	for _, line := range code {
		toks := tokens(line.Text)
		m := match(byLength, strings.Join(toks, " "))
		if m == nil {
			out = append(out, line)
			continue
		}
		if len(toks) < 2 {
			return nil, newError(MacroArgumentMissing, line.Num, "macro %q needs an argument", m.Name)
		}
		log.Debugf("line %d: expanding %s(%s)", line.Num, m.Name, toks[1])
		out = append(out, m.expand(toks[1], line.Num)...)
	}
	return out, nil
}

func match(macros []*Macro, code string) *Macro {
	if code == "" {
		return nil
	}
	for _, m := range macros {
		if strings.Contains(code, m.Name) {
			return m
		}
	}
	return nil
}
