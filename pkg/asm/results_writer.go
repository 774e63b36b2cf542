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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/gmofishsauce/formasm/pkg/isa"
)

// ArtifactSuffix is appended to the output path of every executable.
const ArtifactSuffix = ".formexe"

// ArtifactPath returns the file name the artifact for output is written to.
func ArtifactPath(output string) string {
	if strings.HasSuffix(output, ArtifactSuffix) {
		return output
	}
	return output + ArtifactSuffix
}

// WriteArtifact writes the raw instruction stream of prog to the artifact
// file for output and returns the file name. There is no header.
func WriteArtifact(output string, prog *Program) (name string, err error) {
	path := ArtifactPath(output)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", wrapError(IOError, 0, err, "creating %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = closeError(err, path, cerr)
		}
		if err != nil {
			// A partial artifact must not survive a failed write.
			os.Remove(path)
			name = ""
		}
	}()

	w := bufio.NewWriter(f)
	n, err := w.Write(prog.Bytes())
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		return "", wrapError(IOError, 0, err, "writing %s", path)
	}
	log.Debugf("wrote %d bytes to %s", n, path)
	return path, nil
}

// closeError folds a close failure into the error already being returned.
func closeError(err error, name string, cerr error) error {
	var result *multierror.Error
	if err != nil {
		result = multierror.Append(result, err)
	}
	result = multierror.Append(result, cerr)
	return wrapError(IOError, 0, result.ErrorOrNil(), "closing %s", name)
}

// Dump writes the symbol table and a human-readable listing of prog.
func Dump(out io.Writer, prog *Program) {
	writeSymbols(out, prog.Symbols)
	fmt.Fprintln(out)
	writeListing(out, prog)
}

func writeSymbols(out io.Writer, st SymbolTable) {
	fmt.Fprintf(out, "%-16s %s\n", "LABEL", "PC")
	for _, n := range st.Names() {
		fmt.Fprintf(out, "%-16s %d\n", n, st[n])
	}
}

func writeListing(out io.Writer, prog *Program) {
	fmt.Fprintf(out, "%-4s %-4s %-10s %s\n", "PC", "LINE", "WORD", "INSTRUCTION")
	for i, w := range prog.Words {
		fmt.Fprintf(out, "%-4d %-4d %s %s\n", i+1, prog.Lines[i], w, isa.Decode(w).Mnemonic())
	}
}
