// Copyright (c) Jeff Berkowitz 2021, 2023. All rights reserved.

// Package arduino provides a synchronous byte I/O interface to the board
// that loads form executables. The board is an Arduino reached over a USB
// serial port. Opening the port raises DTR, which resets the board, so New
// waits out the reset before returning.
//
// All I/O happens on the calling goroutine. The serial port object is not
// safe for concurrent Read and Close, and the read timeout supported by
// go.bug.st/serial makes a reader goroutine unnecessary.

package arduino

import (
	"fmt"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

var log = logrus.WithField("component", "arduino")

// ResetDelay is how long the board takes to restart after the port opens.
// The bootloader swallows anything sent during this time.
var ResetDelay = 3 * time.Second

type Arduino struct {
	port serial.Port
}

type NoResponseError time.Duration

func (nre NoResponseError) Error() string {
	return fmt.Sprintf("read from Arduino: no response after %v", time.Duration(nre))
}

// New opens deviceName at baudRate, 8N1.
func New(deviceName string, baudRate int) (*Arduino, error) {
	mode := &serial.Mode{BaudRate: baudRate, DataBits: 8, Parity: serial.NoParity, StopBits: serial.OneStopBit}
	port, err := serial.Open(deviceName, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", deviceName, err)
	}
	log.Debugf("%s open at %d baud, waiting %v for reset", deviceName, baudRate, ResetDelay)
	time.Sleep(ResetDelay)
	return &Arduino{port: port}, nil
}

// ReadFor reads one byte, waiting at most timeout.
func (a *Arduino) ReadFor(timeout time.Duration) (byte, error) {
	if a.port == nil {
		return 0, fmt.Errorf("internal error: read: port not open")
	}
	if err := a.port.SetReadTimeout(timeout); err != nil {
		return 0, err
	}
	b := make([]byte, 1)
	var n int
	var err error
	for {
		n, err = a.port.Read(b)
		if !isRetryableSyscallError(err) {
			break
		}
	}
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, NoResponseError(timeout)
	}
	log.Tracef("read 0x%02X", b[0])
	return b[0], nil
}

// Write sends bytes to the board.
func (a *Arduino) Write(data []byte) error {
	if a.port == nil {
		return fmt.Errorf("internal error: write: port not open")
	}
	for len(data) > 0 {
		n, err := a.port.Write(data)
		if isRetryableSyscallError(err) {
			continue
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("write consumed 0 bytes")
		}
		log.Tracef("wrote %d bytes", n)
		data = data[n:]
	}
	return nil
}

// Close releases the port. It is safe to call more than once.
func (a *Arduino) Close() error {
	if a.port == nil {
		return nil
	}
	err := a.port.Close()
	a.port = nil
	if err != nil {
		return fmt.Errorf("close serial port: %w", err)
	}
	log.Debug("serial port closed")
	return nil
}

// EINTR shows up constantly because of goroutine preemption signals.
func isRetryableSyscallError(err error) bool {
	errno, ok := err.(syscall.Errno)
	return ok && errno == syscall.EINTR
}
