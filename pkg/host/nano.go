// Copyright (c) Jeff Berkowitz 2021, 2023. All rights reserved.

package host

// Connection setup with the loader board.

// About calls to time.Sleep(): the only sleep is between sync attempts
// and it is long (a second). Everything else is paced by read timeouts.

import (
	"errors"
	"fmt"
	"time"

	sp "github.com/gmofishsauce/formasm/pkg/proto"
)

var ErrNoSync = errors.New("failed to synchronize with board")

// syncRetryDelay is a variable so tests can shorten it.
var syncRetryDelay = 1 * time.Second

const syncTries = 3

// The board never sends more than a few bytes without being asked. If it
// is still transmitting after this many reads, something is wrong.
const drainLimit = 300

func (d *Downloader) establishConnection() error {
	if err := d.drain(); err != nil {
		return err
	}
	if err := d.getSyncResponse(); err != nil {
		return err
	}
	if err := d.checkProtocolVersion(); err != nil {
		return err
	}
	log.Debug("protocol version OK")
	return nil
}

// drain discards anything the board sent before we started talking.
func (d *Downloader) drain() error {
	for i := 0; i < drainLimit; i++ {
		if _, err := d.board.ReadFor(d.timeout); err != nil {
			return nil
		}
	}
	return fmt.Errorf("board is transmitting continuously")
}

// Send syncs until one is acknowledged, then consume any delayed acks
// from the earlier attempts.
func (d *Downloader) getSyncResponse() error {
	nSent := 0
	for i := 0; i < syncTries; i++ {
		err := d.doCommand(sp.CmdSync)
		nSent++
		if err == nil {
			for nSent--; nSent > 0; nSent-- {
				d.board.ReadFor(d.timeout)
			}
			return nil
		}
		log.Debugf("sync attempt %d failed: %v", i+1, err)
		time.Sleep(syncRetryDelay)
	}
	return ErrNoSync
}

func (d *Downloader) checkProtocolVersion() error {
	if err := d.doCommand(sp.CmdGetVer); err != nil {
		return err
	}
	v, err := d.board.ReadFor(d.timeout)
	if err != nil {
		return fmt.Errorf("reading protocol version: %w", err)
	}
	if v != sp.ProtocolVersion {
		return fmt.Errorf("board speaks protocol %d, want %d", v, sp.ProtocolVersion)
	}
	return nil
}

// doCommand sends cmd followed by args and waits for the command's ack.
func (d *Downloader) doCommand(cmd byte, args ...byte) error {
	if err := d.board.Write(append([]byte{cmd}, args...)); err != nil {
		return err
	}
	b, err := d.board.ReadFor(d.timeout)
	if err != nil {
		return err
	}
	if b != sp.AckOf(cmd) {
		return fmt.Errorf("command 0x%02X: expected ack 0x%02X, got 0x%02X", cmd, sp.AckOf(cmd), b)
	}
	return nil
}
