// Copyright (c) Jeff Berkowitz 2023. All rights reserved.

package host

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sp "github.com/gmofishsauce/formasm/pkg/proto"
)

var errSilent = errors.New("no response")

// fakeBoard plays the loader firmware's side of the protocol.
type fakeBoard struct {
	pending     []byte
	version     byte
	ignoreSyncs int
	nak         bool

	state   int
	length  int
	program []byte
}

const (
	stCmd = iota
	stLenHi
	stLenLo
	stData
)

func newFakeBoard() *fakeBoard {
	return &fakeBoard{version: sp.ProtocolVersion}
}

func (f *fakeBoard) ReadFor(time.Duration) (byte, error) {
	if len(f.pending) == 0 {
		return 0, errSilent
	}
	b := f.pending[0]
	f.pending = f.pending[1:]
	return b, nil
}

func (f *fakeBoard) Write(data []byte) error {
	for _, b := range data {
		f.consume(b)
	}
	return nil
}

func (f *fakeBoard) reply(b ...byte) {
	f.pending = append(f.pending, b...)
}

func (f *fakeBoard) consume(b byte) {
	switch f.state {
	case stCmd:
		switch b {
		case sp.CmdSync:
			if f.ignoreSyncs > 0 {
				f.ignoreSyncs--
				return
			}
			f.reply(sp.AckOf(b))
		case sp.CmdGetVer:
			f.reply(sp.AckOf(b), f.version)
		case sp.CmdLoad:
			f.state = stLenHi
		}
	case stLenHi:
		f.length = int(b) << 8
		f.state = stLenLo
	case stLenLo:
		f.length |= int(b)
		f.reply(sp.AckOf(sp.CmdLoad))
		f.state = stData
	case stData:
		f.program = append(f.program, b)
		if len(f.program) == f.length {
			f.state = stCmd
			if f.nak {
				f.reply(sp.Nak)
			} else {
				f.reply(sp.Ack)
			}
		}
	}
}

func init() {
	syncRetryDelay = 0
}

func TestDownload(t *testing.T) {
	board := newFakeBoard()
	board.pending = []byte{0x01, 0x02, 0x03} // leftover chatter
	program := []byte{0x07, 0xA5, 0xE2}

	err := NewDownloader(board, time.Millisecond).Download(program)
	require.NoError(t, err)
	assert.Equal(t, program, board.program)
	assert.Empty(t, board.pending)
}

func TestDownloadSyncRetry(t *testing.T) {
	board := newFakeBoard()
	board.ignoreSyncs = 2
	err := NewDownloader(board, time.Millisecond).Download([]byte{0xE2})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xE2}, board.program)
}

func TestDownloadNoSync(t *testing.T) {
	board := newFakeBoard()
	board.ignoreSyncs = syncTries
	err := NewDownloader(board, time.Millisecond).Download([]byte{0xE2})
	assert.ErrorIs(t, err, ErrNoSync)
}

func TestDownloadVersionMismatch(t *testing.T) {
	board := newFakeBoard()
	board.version = sp.ProtocolVersion + 1
	err := NewDownloader(board, time.Millisecond).Download([]byte{0xE2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "protocol")
	assert.Nil(t, board.program)
}

func TestDownloadRejected(t *testing.T) {
	board := newFakeBoard()
	board.nak = true
	err := NewDownloader(board, time.Millisecond).Download([]byte{0xE2})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestDownloadSize(t *testing.T) {
	d := NewDownloader(newFakeBoard(), time.Millisecond)
	assert.Error(t, d.Download(nil))
	assert.Error(t, d.Download(make([]byte, sp.MaxProgram+1)))
}
