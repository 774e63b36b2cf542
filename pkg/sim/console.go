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

package sim

// Console I/O for the print and read syscalls. A prompt is written before
// each read only when the input is an interactive terminal, so piped input
// produces clean output.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const prompt = "> "

type Console struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &Console{bufio.NewReader(in), out, interactive}
}

// Print writes v in decimal on its own line.
func (c *Console) Print(v uint8) error {
	_, err := fmt.Fprintln(c.out, v)
	return err
}

// Read reads one line holding a decimal value 0..255.
func (c *Console) Read() (uint8, error) {
	if c.interactive {
		fmt.Fprint(c.out, prompt)
	}
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return 0, fmt.Errorf("read: end of input")
		}
		return 0, fmt.Errorf("read: %w", err)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(line), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("read: %q is not a value 0..255", strings.TrimSpace(line))
	}
	return uint8(v), nil
}
