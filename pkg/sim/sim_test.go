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

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmofishsauce/formasm/pkg/asm"
	"github.com/gmofishsauce/formasm/pkg/isa"
)

func run(t *testing.T, src, input string) (*Engine, string, error) {
	prog, err := asm.Assemble(src)
	require.NoError(t, err)
	var out bytes.Buffer
	e := NewEngine(prog.Bytes(), NewConsole(strings.NewReader(input), &out))
	err = e.Run(1000)
	return e, out.String(), err
}

func TestCountdown(t *testing.T) {
	src := `🔓 show
👈 🍩 _
🤖 📢
🔒
💬
	👈 🍎 3
	👈 🍊 0
loop:
	💔 🍩 🍩 0      # r1 = 0
	💘 🍩 🍎 0      # r1 = r3
	🤖 📢
	👇 🍎 1
	🤔 🍎 🍊 0      # exit only when r3 == r4
	♿ done
	♿ loop
done:
	show 7
	🤖 🔪
	show 1
`
	e, out, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, "3\n2\n1\n7\n", out)
	assert.True(t, e.Halted())
	assert.Equal(t, uint8(0), e.Reg(isa.R3))
}

func TestReadAndAdd(t *testing.T) {
	src := "💬\n🤖 📜\n💘 🍩 🍩 1\n🤖 📢\n"
	e, out, err := run(t, src, "20\n")
	require.NoError(t, err)
	assert.Equal(t, "41\n", out)
	assert.Equal(t, 3, e.Steps())
}

func TestWrappingArithmetic(t *testing.T) {
	src := "💬\n👇 👀 1\n💔 🍩 👀 1\n"
	e, _, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, uint8(255), e.Reg(isa.R2))
	assert.Equal(t, uint8(0), e.Reg(isa.R1))
}

func TestStepLimit(t *testing.T) {
	_, _, err := run(t, "💬\n♿ 0\n", "")
	assert.ErrorIs(t, err, ErrStepLimit)
}

func TestBadJump(t *testing.T) {
	_, _, err := run(t, "💬\n♿ -1\n", "")
	assert.ErrorIs(t, err, ErrBadJump)
}

func TestUnassignedSyscall(t *testing.T) {
	e := NewEngine([]byte{0xE3}, NewConsole(strings.NewReader(""), &bytes.Buffer{}))
	assert.ErrorIs(t, e.Run(0), ErrSyscall)
}

func TestReadErrors(t *testing.T) {
	_, _, err := run(t, "💬\n🤖 📜\n", "")
	assert.Error(t, err)
	_, _, err = run(t, "💬\n🤖 📜\n", "300\n")
	assert.Error(t, err)
	_, _, err = run(t, "💬\n🤖 📜\n🤖 📢\n", "9")
	assert.NoError(t, err)
}
