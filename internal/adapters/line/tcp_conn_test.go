package line

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipeConn(t *testing.T) (*TCPConn, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		_ = server.Close()
		_ = client.Close()
	})
	return NewTCPConn(server, 400, 500, time.Second), client
}

func TestTCPConn_ReadFraming(t *testing.T) {
	c, peer := pipeConn(t)

	input := "hi\r\nthere\n" +
		strings.Repeat("a", 401) + "\n" +
		strings.Repeat("b", 1000) + "\nafter\n" +
		"\xff\xfe\n" +
		strings.Repeat("c", 400) + "\r\n" +
		"tail"
	go func() {
		_, _ = io.WriteString(peer, input)
		_ = peer.Close()
	}()

	steps := []struct {
		line string
		err  error
	}{
		{line: "hi"},
		{line: "there"},
		{err: ErrLineTooLong},
		{err: ErrLineTooLong},
		{line: "after"},
		{err: ErrInvalidUTF8},
		{line: strings.Repeat("c", 400)},
		{line: "tail"},
		{err: io.EOF},
	}
	for i, st := range steps {
		got, err := c.ReadLine()
		if st.err != nil {
			require.ErrorIs(t, err, st.err, "step %d", i)
			continue
		}
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, st.line, got, "step %d", i)
	}
}

func TestTCPConn_DiscardUntilEOF(t *testing.T) {
	c, peer := pipeConn(t)
	go func() {
		_, _ = io.WriteString(peer, strings.Repeat("z", 900))
		_ = peer.Close()
	}()

	_, err := c.ReadLine()
	require.ErrorIs(t, err, ErrLineTooLong)
	_, err = c.ReadLine()
	require.ErrorIs(t, err, io.EOF)
}

func TestTCPConn_WriteLineTruncates(t *testing.T) {
	c, peer := pipeConn(t)
	r := bufio.NewReader(peer)

	errc := make(chan error, 2)
	go func() {
		errc <- c.WriteLine("hello")
		errc <- c.WriteLine(strings.Repeat("é", 300))
	}()

	got, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "hello\n", got)

	got, err = r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 250)+"\n", got)

	require.NoError(t, <-errc)
	require.NoError(t, <-errc)
}

func TestTCPConn_WriteAfterPeerCloseIsDisconnect(t *testing.T) {
	c, peer := pipeConn(t)
	require.NoError(t, peer.Close())

	err := c.WriteLine("anyone there")
	require.Error(t, err)
	assert.True(t, IsDisconnect(err), "%v", err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	// "é" is two bytes; a cut through it backs off to the rune start
	assert.Equal(t, "a", truncate("aé", 2))
	assert.Equal(t, "abc", truncate("abc", 0))
}

func TestIsDisconnect(t *testing.T) {
	assert.False(t, IsDisconnect(nil))
	assert.True(t, IsDisconnect(io.EOF))
	assert.True(t, IsDisconnect(net.ErrClosed))
	assert.True(t, IsDisconnect(ErrInvalidUTF8))
	assert.False(t, IsDisconnect(ErrLineTooLong))
	assert.False(t, IsDisconnect(errors.New("boom")))
}
