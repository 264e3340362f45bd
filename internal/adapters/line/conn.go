// Package line serves the text-line chat protocol over any line-framed
// transport: raw TCP or websocket text frames.
package line

import (
	"errors"
	"io"
	"net"
	"syscall"
	"unicode/utf8"

	"github.com/gorilla/websocket"
)

const (
	DefaultMaxLineLen     = 400
	DefaultMaxOutboundLen = 500
)

var (
	ErrLineTooLong  = errors.New("line too long")
	ErrInvalidUTF8  = errors.New("line is not valid utf-8")
	ErrRoomVanished = errors.New("current room is gone")
)

// Conn is a line-framed client transport. ReadLine returns lines without
// their terminator. Only the owning handler reads and writes.
type Conn interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
	RemoteAddr() string
}

// IsDisconnect reports transport faults that count as an ordinary hang-up:
// closed sockets, resets, broken pipes, websocket close frames and bytes
// that are not text.
func IsDisconnect(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, ErrInvalidUTF8),
		errors.Is(err, websocket.ErrCloseSent),
		errors.Is(err, websocket.ErrReadLimit):
		return true
	}
	var ce *websocket.CloseError
	return errors.As(err, &ce)
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func trimEOL(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}
	if n := len(b); n > 0 && b[n-1] == '\r' {
		b = b[:n-1]
	}
	return b
}
