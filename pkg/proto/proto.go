// Copyright (c) Jeff Berkowitz 2021, 2023. All rights reserved.

// Package proto holds the bytes of the download protocol spoken between
// the host and the loader firmware. The firmware has a copy of these
// values; change both together.
package proto

const ProtocolVersion = 1

// Commands, host to board.
const (
	CmdLoad   = 0xED // followed by a 2-byte big-endian length and the program
	CmdSync   = 0xEE
	CmdGetVer = 0xEF
)

// Responses, board to host. Every command is acknowledged with its own
// complement; Ack additionally confirms a completed load.
const (
	Ack = 0x55
	Nak = 0xAA
)

// MaxProgram is the largest program the length field can describe.
const MaxProgram = 0xFFFF

// AckOf returns the byte that acknowledges cmd.
func AckOf(cmd byte) byte {
	return ^cmd
}
