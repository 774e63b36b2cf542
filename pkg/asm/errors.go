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
)

// Kind classifies an assembly failure.
type Kind int

const (
	UnterminatedMacro Kind = iota + 1
	MacroArgumentMissing
	MacroNameMissing
	DuplicateMacro
	MissingCodeSection
	DuplicateLabel
	InvalidLabel
	UnknownOpcode
	UnknownLabel
	OperandParseError
	DisplacementOverflow
	UnknownSyscall
	IOError
)

var kindToString = []string{
	"Error",
	"UnterminatedMacro",
	"MacroArgumentMissing",
	"MacroNameMissing",
	"DuplicateMacro",
	"MissingCodeSection",
	"DuplicateLabel",
	"InvalidLabel",
	"UnknownOpcode",
	"UnknownLabel",
	"OperandParseError",
	"DisplacementOverflow",
	"UnknownSyscall",
	"IOError",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindToString) {
		return kindToString[0]
	}
	return kindToString[k]
}

// Error is the only error type returned by this package. Line is the
// 1-based source line, or 0 when the failure is not tied to a line.
type Error struct {
	Kind Kind
	Line int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d: %s", e.Kind, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, line int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, line int, err error, format string, args ...interface{}) *Error {
	e := newError(kind, line, format, args...)
	e.Msg = e.Msg + ": " + err.Error()
	e.Err = err
	return e
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
