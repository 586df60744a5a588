// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type termPrompt struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewTermPrompt reads passwords from in without echo when in is a terminal
// and line by line otherwise, so scripts can pipe them in.
func NewTermPrompt(in *os.File, out io.Writer) Prompt {
	return &termPrompt{in: in, out: out, reader: bufio.NewReader(in)}
}

func (p *termPrompt) Password(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	fd := int(p.in.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read password: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}
