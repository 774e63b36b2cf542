// Copyright (c) Jeff Berkowitz 2021, 2023. All rights reserved.

// Package host drives the loader board: it synchronizes with the board's
// firmware and transfers a form executable to it.
package host

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	sp "github.com/gmofishsauce/formasm/pkg/proto"
)

var log = logrus.WithField("component", "host")

var ErrRejected = errors.New("board rejected the program")

// Board is the byte channel to the loader. *arduino.Arduino implements it.
type Board interface {
	ReadFor(timeout time.Duration) (byte, error)
	Write(data []byte) error
}

type Downloader struct {
	board   Board
	timeout time.Duration
}

func NewDownloader(board Board, timeout time.Duration) *Downloader {
	return &Downloader{board: board, timeout: timeout}
}

// Download synchronizes with the board and sends program.
func (d *Downloader) Download(program []byte) error {
	if len(program) == 0 {
		return fmt.Errorf("empty program")
	}
	if len(program) > sp.MaxProgram {
		return fmt.Errorf("program is %d bytes, limit is %d", len(program), sp.MaxProgram)
	}
	if err := d.establishConnection(); err != nil {
		return err
	}

	log.Infof("downloading %d bytes", len(program))
	n := len(program)
	if err := d.doCommand(sp.CmdLoad, byte(n>>8), byte(n)); err != nil {
		return err
	}
	if err := d.board.Write(program); err != nil {
		return err
	}
	b, err := d.board.ReadFor(d.timeout)
	if err != nil {
		return fmt.Errorf("waiting for load confirmation: %w", err)
	}
	switch b {
	case sp.Ack:
		log.Info("download complete")
		return nil
	case sp.Nak:
		return ErrRejected
	default:
		return fmt.Errorf("unexpected load confirmation 0x%02X", b)
	}
}
