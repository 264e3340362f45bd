package line

import (
	"bufio"
	"errors"
	"io"
	"net"
	"time"
	"unicode/utf8"
)

// TCPConn frames a byte stream into newline-terminated lines (LF or CRLF).
// A line over maxLine bytes yields ErrLineTooLong once; if the terminator
// has not arrived yet, its remainder is discarded on the next reads.
type TCPConn struct {
	conn         net.Conn
	r            *bufio.Reader
	maxLine      int
	maxOut       int
	writeTimeout time.Duration
	discarding   bool
}

func NewTCPConn(conn net.Conn, maxLine, maxOut int, writeTimeout time.Duration) *TCPConn {
	if maxLine <= 0 {
		maxLine = DefaultMaxLineLen
	}
	if maxOut <= 0 {
		maxOut = DefaultMaxOutboundLen
	}
	return &TCPConn{
		conn:         conn,
		r:            bufio.NewReaderSize(conn, maxLine+2),
		maxLine:      maxLine,
		maxOut:       maxOut,
		writeTimeout: writeTimeout,
	}
}

func (c *TCPConn) ReadLine() (string, error) {
	var line []byte
	for {
		frag, err := c.r.ReadSlice('\n')
		if c.discarding {
			switch {
			case err == nil:
				c.discarding = false
			case errors.Is(err, bufio.ErrBufferFull):
			default:
				return "", err
			}
			continue
		}

		switch {
		case err == nil:
			line = append(line, frag...)
			return c.finish(line)
		case errors.Is(err, bufio.ErrBufferFull):
			line = append(line, frag...)
			// room for a trailing '\r' that may still be followed by '\n'
			if len(line) > c.maxLine+1 {
				c.discarding = true
				return "", ErrLineTooLong
			}
		case errors.Is(err, io.EOF) && len(line)+len(frag) > 0:
			line = append(line, frag...)
			return c.finish(line)
		default:
			return "", err
		}
	}
}

func (c *TCPConn) finish(line []byte) (string, error) {
	text := trimEOL(line)
	if len(text) > c.maxLine {
		return "", ErrLineTooLong
	}
	if !utf8.Valid(text) {
		return "", ErrInvalidUTF8
	}
	return string(text), nil
}

func (c *TCPConn) WriteLine(line string) error {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(c.conn, truncate(line, c.maxOut)+"\n")
	return err
}

func (c *TCPConn) Close() error { return c.conn.Close() }

func (c *TCPConn) RemoteAddr() string { return c.conn.RemoteAddr().String() }
