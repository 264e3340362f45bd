package line

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/linechat/internal/app"
	"github.com/dkeye/linechat/internal/app/orch"
	"github.com/dkeye/linechat/internal/core"
	"github.com/dkeye/linechat/internal/domain"
	"github.com/dkeye/linechat/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const waitTimeout = 2 * time.Second

type fakeRead struct {
	line string
	err  error
}

// fakeConn is a Conn driven by channels. Closing in reads as EOF.
type fakeConn struct {
	in     chan fakeRead
	out    chan string
	closed chan struct{}
	once   sync.Once
}

func newFakeConn(outBuf int) *fakeConn {
	return &fakeConn{
		in:     make(chan fakeRead),
		out:    make(chan string, outBuf),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) ReadLine() (string, error) {
	select {
	case r, ok := <-c.in:
		if !ok {
			return "", io.EOF
		}
		return r.line, r.err
	case <-c.closed:
		return "", net.ErrClosed
	}
}

func (c *fakeConn) WriteLine(line string) error {
	select {
	case c.out <- line:
		return nil
	case <-c.closed:
		return net.ErrClosed
	}
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) RemoteAddr() string { return "fake" }

func (c *fakeConn) send(t *testing.T, line string) {
	t.Helper()
	select {
	case c.in <- fakeRead{line: line}:
	case <-time.After(waitTimeout):
		t.Fatalf("session did not read %q", line)
	}
}

func (c *fakeConn) sendErr(t *testing.T, err error) {
	t.Helper()
	select {
	case c.in <- fakeRead{err: err}:
	case <-time.After(waitTimeout):
		t.Fatalf("session did not read error %v", err)
	}
}

func (c *fakeConn) expect(t *testing.T, want string) {
	t.Helper()
	select {
	case got := <-c.out:
		require.Equal(t, want, got)
	case <-time.After(waitTimeout):
		t.Fatalf("timed out waiting for %q", want)
	}
}

// skipGreeting consumes the help banner and returns the assigned name line.
func (c *fakeConn) skipGreeting(t *testing.T) string {
	t.Helper()
	for _, l := range strings.Split(HelpText, "\n") {
		c.expect(t, l)
	}
	select {
	case got := <-c.out:
		require.True(t, strings.HasPrefix(got, "You are "), got)
		return strings.TrimPrefix(got, "You are ")
	case <-time.After(waitTimeout):
		t.Fatal("no name assigned")
		return ""
	}
}

type harness struct {
	orch     *orch.Orchestrator
	registry *app.Registry
	ctl      *Controller
	ctx      context.Context
	cancel   context.CancelFunc
}

func newHarness(t *testing.T, policy app.Policy, capacity int, names ...string) *harness {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockNameSource(ctrl)
	for _, n := range names {
		src.EXPECT().Next().Return(n)
	}
	reg := app.NewRegistry(3)
	o := &orch.Orchestrator{
		Names:       reg,
		Rooms:       app.NewRoomManager(capacity),
		Generator:   src,
		Policy:      policy,
		RenameMode:  app.RenamePropagate,
		DefaultRoom: "main",
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &harness{orch: o, registry: reg, ctl: NewController(o, Options{}), ctx: ctx, cancel: cancel}
}

func (h *harness) start(conn *fakeConn) <-chan error {
	done := make(chan error, 1)
	go func() { done <- h.ctl.Serve(h.ctx, conn) }()
	return done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(waitTimeout):
		t.Fatal("session did not end")
		return nil
	}
}

func TestController_GreetingAndJoinAnnouncement(t *testing.T) {
	h := newHarness(t, app.SimplePolicy{}, 64, "AliceSmith")
	a := newFakeConn(32)
	done := h.start(a)

	assert.Equal(t, "AliceSmith", a.skipGreeting(t))
	a.expect(t, "AliceSmith joined main")

	close(a.in)
	require.NoError(t, waitDone(t, done))
	assert.Equal(t, 0, h.registry.Len())
	assert.Empty(t, h.orch.Rooms.List())
}

func TestController_ChatReachesOthersOnly(t *testing.T) {
	h := newHarness(t, app.SimplePolicy{}, 64, "AliceSmith", "BobJones")
	a, b := newFakeConn(32), newFakeConn(32)
	doneA := h.start(a)
	a.skipGreeting(t)
	a.expect(t, "AliceSmith joined main")

	doneB := h.start(b)
	b.skipGreeting(t)
	b.expect(t, "BobJones joined main")
	a.expect(t, "BobJones joined main")

	b.send(t, "hello")
	a.expect(t, "BobJones: hello")

	// nothing of its own comes back to b
	b.send(t, "/users")
	b.expect(t, "Users - AliceSmith, BobJones")

	b.send(t, "/quit")
	require.NoError(t, waitDone(t, doneB))
	a.expect(t, "BobJones left main")

	close(a.in)
	require.NoError(t, waitDone(t, doneA))
}

func TestController_Commands(t *testing.T) {
	h := newHarness(t, app.SimplePolicy{}, 64, "AliceSmith", "BobJones")
	a, b := newFakeConn(32), newFakeConn(32)
	doneA := h.start(a)
	a.skipGreeting(t)
	a.expect(t, "AliceSmith joined main")
	doneB := h.start(b)
	b.skipGreeting(t)
	b.expect(t, "BobJones joined main")
	a.expect(t, "BobJones joined main")

	a.send(t, "/name a!")
	a.expect(t, "Name must be 2 - 20 alphanumeric chars")

	a.send(t, "/name AliceSmith")
	a.expect(t, "You are already AliceSmith")

	a.send(t, "/name BobJones")
	a.expect(t, "Name BobJones is already taken")

	a.send(t, "/name Carol99")
	a.expect(t, "You are Carol99")
	a.expect(t, "AliceSmith is now known as Carol99")
	b.expect(t, "AliceSmith is now known as Carol99")
	owner, ok := h.registry.Owner("AliceSmith")
	assert.False(t, ok, "old name still held by %s", owner)

	a.send(t, "/join x")
	a.expect(t, "Room must be 2 - 20 alphanumeric chars")

	a.send(t, "/join lobby")
	a.expect(t, "Carol99 joined lobby")
	b.expect(t, "Carol99 left main")

	a.send(t, "/join lobby")
	a.expect(t, "You are in lobby")

	a.send(t, "/rooms")
	a.expect(t, "Rooms - lobby (1), main (1)")

	a.send(t, "/users")
	a.expect(t, "Users - Carol99")

	a.send(t, "/dance now")
	a.expect(t, "Unrecognized command /dance, try /help")

	a.send(t, "")
	a.send(t, "/help")
	for _, l := range strings.Split(HelpText, "\n") {
		a.expect(t, l)
	}

	a.send(t, "/quit")
	require.NoError(t, waitDone(t, doneA))
	b.send(t, "/rooms")
	b.expect(t, "Rooms - main (1)")

	close(b.in)
	require.NoError(t, waitDone(t, doneB))
	assert.Equal(t, 0, h.registry.Len())
}

func TestController_TooLongLine(t *testing.T) {
	h := newHarness(t, app.SimplePolicy{}, 64, "AliceSmith")
	a := newFakeConn(32)
	done := h.start(a)
	a.skipGreeting(t)
	a.expect(t, "AliceSmith joined main")

	a.sendErr(t, ErrLineTooLong)
	a.expect(t, "Messages can only be 400 chars long")

	a.send(t, "/users")
	a.expect(t, "Users - AliceSmith")

	close(a.in)
	require.NoError(t, waitDone(t, done))
}

func TestController_ServerFull(t *testing.T) {
	h := newHarness(t, app.SimplePolicy{}, 64, "Taken", "Taken", "Taken")
	require.True(t, h.registry.Insert("Taken", "someone"))

	a := newFakeConn(4)
	done := h.start(a)
	a.expect(t, "Server is full, try again later")
	require.NoError(t, waitDone(t, done))
	assert.Equal(t, 1, h.registry.Len())
}

func TestController_ShutdownEndsSession(t *testing.T) {
	h := newHarness(t, app.SimplePolicy{}, 64, "AliceSmith")
	a := newFakeConn(32)
	done := h.start(a)
	a.skipGreeting(t)
	a.expect(t, "AliceSmith joined main")

	h.cancel()
	require.NoError(t, waitDone(t, done))
	assert.Equal(t, 0, h.registry.Len())
}

func TestController_UnexpectedReadErrorIsReturned(t *testing.T) {
	h := newHarness(t, app.SimplePolicy{}, 64, "AliceSmith")
	a := newFakeConn(32)
	done := h.start(a)
	a.skipGreeting(t)
	a.expect(t, "AliceSmith joined main")

	boom := errors.New("disk on fire")
	a.sendErr(t, boom)
	err := waitDone(t, done)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, h.registry.Len())
}

// flood publishes n chat lines into room without reading any of them.
func flood(h *harness, room domain.RoomName, n int) *core.Subscription[domain.RoomEvent] {
	sub := h.orch.Rooms.Join(room, "Flooder")
	sub.Send(domain.Joined("Flooder"))
	for i := 0; i < n; i++ {
		sub.Send(domain.Chat("flooder", "Flooder", fmt.Sprintf("m%d", i)))
	}
	return sub
}

func TestController_LagResume(t *testing.T) {
	h := newHarness(t, app.SimplePolicy{}, 4, "AliceSmith")
	a := newFakeConn(0)
	done := h.start(a)
	a.skipGreeting(t)
	a.expect(t, "AliceSmith joined main")

	sub := flood(h, "main", 10)
	defer sub.Close()

	var got []string
	for len(got) == 0 || got[len(got)-1] != "Flooder: m9" {
		select {
		case l := <-a.out:
			got = append(got, l)
		case <-time.After(waitTimeout):
			t.Fatalf("m9 never arrived, got %v", got)
		}
	}
	assert.NotContains(t, got, "Flooder: m0")

	close(a.in)
	require.NoError(t, waitDone(t, done))
}

func TestController_LagKick(t *testing.T) {
	h := newHarness(t, app.KickPolicy{}, 4, "AliceSmith")
	a := newFakeConn(0)
	done := h.start(a)
	a.skipGreeting(t)
	a.expect(t, "AliceSmith joined main")

	sub := flood(h, "main", 10)
	defer sub.Close()

	for {
		select {
		case <-a.out:
		case err := <-done:
			require.NoError(t, err)
			assert.Equal(t, 0, h.registry.Len())
			return
		case <-time.After(waitTimeout):
			t.Fatal("lagging session was not kicked")
		}
	}
}
