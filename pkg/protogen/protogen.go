// Copyright (c) Jeff Berkowitz 2022, 2023. All rights reserved.

// Package protogen writes the download protocol constants as a C header
// for the loader firmware, so the firmware and pkg/proto cannot drift.
package protogen

import (
	"bufio"
	"fmt"
	"io"
	"os"

	sp "github.com/gmofishsauce/formasm/pkg/proto"
)

// HeaderFile is the name Generate writes in the current directory.
const HeaderFile = "form_proto.h"

type define struct {
	name  string
	value int
}

var defines = []define{
	{"PROTOCOL_VERSION", sp.ProtocolVersion},
	{"CMD_LOAD", sp.CmdLoad},
	{"CMD_SYNC", sp.CmdSync},
	{"CMD_GET_VER", sp.CmdGetVer},
	{"ACK", sp.Ack},
	{"NAK", sp.Nak},
	{"MAX_PROGRAM", sp.MaxProgram},
}

// Generate writes HeaderFile.
func Generate() error {
	f, err := os.Create(HeaderFile)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteHeader(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// WriteHeader writes the header text to w.
func WriteHeader(w io.Writer) error {
	fmt.Fprintln(w, "// Generated by formasm protogen. Do not edit.")
	fmt.Fprintln(w, "#ifndef FORM_PROTO_H")
	fmt.Fprintln(w, "#define FORM_PROTO_H")
	fmt.Fprintln(w)
	for _, d := range defines {
		fmt.Fprintf(w, "#define %-20s 0x%02X\n", d.name, d.value)
	}
	fmt.Fprintln(w, "// Commands are acknowledged with their complement.")
	fmt.Fprintln(w, "#define ACK_OF(cmd)          ((unsigned char)~(cmd))")
	fmt.Fprintln(w)
	_, err := fmt.Fprintln(w, "#endif // FORM_PROTO_H")
	return err
}
