// terminal.go - console I/O backing the TRP handler
//
// Grounded on terminal_host.go's raw-mode stdin adapter: when stdin is an
// interactive terminal, golang.org/x/term puts it into raw mode so a single
// keystroke is visible to ReadChar without waiting on Enter, with bytes
// echoed back by hand since raw mode disables the tty's own echo (the same
// tradeoff terminal_host.go makes for its non-blocking reader). When stdin
// is not a terminal (piped input, test harnesses) it falls back to a plain
// bufio.Reader, matching terminal_io.go's non-interactive MMIO path.

package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// terminalIO is the single point of contact between the VM and the host
// console for every TRP that performs synchronous I/O.
type terminalIO struct {
	out      *bufio.Writer
	in       *bufio.Reader
	fd       int
	rawState *term.State
}

// newTerminalIO opens the host console. If stdin is a tty it is switched to
// raw mode for the lifetime of the VM; Close restores it.
func newTerminalIO() *terminalIO {
	t := &terminalIO{
		out: bufio.NewWriter(os.Stdout),
		in:  bufio.NewReader(os.Stdin),
		fd:  int(os.Stdin.Fd()),
	}
	if term.IsTerminal(t.fd) {
		if state, err := term.MakeRaw(t.fd); err == nil {
			t.rawState = state
		}
	}
	return t
}

// newTerminalIOWith wraps an arbitrary reader/writer pair for tests, never
// touching raw mode.
func newTerminalIOWith(r io.Reader, w io.Writer) *terminalIO {
	return &terminalIO{out: bufio.NewWriter(w), in: bufio.NewReader(r), fd: -1}
}

// Close flushes pending output and restores the terminal if it was put into
// raw mode.
func (t *terminalIO) Close() {
	t.out.Flush()
	if t.rawState != nil {
		term.Restore(t.fd, t.rawState)
	}
}

func (t *terminalIO) echo(b byte) {
	if t.rawState != nil {
		t.out.WriteByte(b)
		t.out.Flush()
	}
}

func (t *terminalIO) WriteString(s string) {
	t.out.WriteString(s)
	t.out.Flush()
}

func (t *terminalIO) WriteByte(b byte) {
	t.out.WriteByte(b)
	t.out.Flush()
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readCharSkipWS returns the next non-whitespace byte from stdin (TRP 4).
func (t *terminalIO) readCharSkipWS() (byte, error) {
	for {
		b, err := t.in.ReadByte()
		if err != nil {
			return 0, err
		}
		t.echo(b)
		if !isSpace(b) {
			return b, nil
		}
	}
}

// readLine returns one newline-terminated line from stdin, without the
// newline itself (TRP 6).
func (t *terminalIO) readLine() (string, error) {
	var sb strings.Builder
	for {
		b, err := t.in.ReadByte()
		if err != nil {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		t.echo(b)
		if b == '\n' {
			return sb.String(), nil
		}
		if b != '\r' {
			sb.WriteByte(b)
		}
	}
}

// readInt parses one optionally-signed decimal integer from stdin, skipping
// leading whitespace, and returns it as the raw 32-bit pattern R3 should
// hold (TRP 2 accepts both signed and unsigned input).
func (t *terminalIO) readInt() (uint32, error) {
	var sb strings.Builder
	negative := false

	b, err := t.readCharSkipWS()
	if err != nil {
		return 0, err
	}
	if b == '-' || b == '+' {
		negative = b == '-'
		b, err = t.in.ReadByte()
		if err != nil {
			return 0, err
		}
		t.echo(b)
	}
	for b >= '0' && b <= '9' {
		sb.WriteByte(b)
		b, err = t.in.ReadByte()
		if err != nil {
			break
		}
		t.echo(b)
	}

	magnitude, err := strconv.ParseUint(sb.String(), 10, 64)
	if err != nil {
		return 0, err
	}
	v := uint32(magnitude)
	if negative {
		v = -v
	}
	return v, nil
}
