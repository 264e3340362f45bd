package line

import (
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
)

// WSConn carries the line protocol over websocket: one text frame is one line.
type WSConn struct {
	conn         *websocket.Conn
	maxLine      int
	maxOut       int
	writeTimeout time.Duration
}

func NewWSConn(conn *websocket.Conn, maxLine, maxOut int, readLimit int64, writeTimeout time.Duration) *WSConn {
	if maxLine <= 0 {
		maxLine = DefaultMaxLineLen
	}
	if maxOut <= 0 {
		maxOut = DefaultMaxOutboundLen
	}
	if readLimit > 0 {
		conn.SetReadLimit(readLimit)
	}
	return &WSConn{conn: conn, maxLine: maxLine, maxOut: maxOut, writeTimeout: writeTimeout}
}

func (c *WSConn) ReadLine() (string, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return "", err
	}
	text := trimEOL(data)
	if len(text) > c.maxLine {
		return "", ErrLineTooLong
	}
	if !utf8.Valid(text) {
		return "", ErrInvalidUTF8
	}
	return string(text), nil
}

func (c *WSConn) WriteLine(line string) error {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}
	return c.conn.WriteMessage(websocket.TextMessage, []byte(truncate(line, c.maxOut)))
}

func (c *WSConn) Close() error {
	deadline := time.Now().Add(time.Second)
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return c.conn.Close()
}

func (c *WSConn) RemoteAddr() string { return c.conn.RemoteAddr().String() }
