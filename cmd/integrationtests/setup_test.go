package integrationtests

import (
	"net"
	"strings"
	"testing"
	"time"

	auction "auction-house/internal/auctionService"
	"auction-house/internal/network"
	"auction-house/internal/protocol"

	"github.com/stretchr/testify/require"
)

// testServer bundles a running engine, its TCP front end and the tick
// trigger for a test scenario.
type testServer struct {
	engine *auction.Engine
	server *network.Server
	ticker *auction.SignalTicker
	addr   string
}

// startTestServer boots an engine with two workers and a signal-driven
// clock behind a TCP listener on an ephemeral port. Everything is torn
// down via t.Cleanup.
func startTestServer(t *testing.T) *testServer {
	t.Helper()

	ticker := auction.NewSignalTicker()
	engine := auction.NewEngine(2, ticker)
	engine.Start()

	server := network.NewServer("127.0.0.1:0", engine)
	go func() {
		_ = server.Start()
	}()

	var addr string
	require.Eventually(t, func() bool {
		addr = server.ListenAddr()
		return addr != ""
	}, time.Second, 5*time.Millisecond)

	t.Cleanup(func() {
		server.Stop()
		engine.Stop()
	})

	return &testServer{
		engine: engine,
		server: server,
		ticker: ticker,
		addr:   addr,
	}
}

// client is a minimal test client speaking the frame protocol.
type client struct {
	t    *testing.T
	conn net.Conn
}

// dial connects a raw client without logging in.
func dial(t *testing.T, addr string) *client {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &client{t: t, conn: conn}
}

// login connects and authenticates, failing the test on any rejection.
func login(t *testing.T, addr, username, password string) *client {
	t.Helper()
	c := dial(t, addr)
	c.send(protocol.TypeLogin, username, password)
	c.expect(protocol.TypeOK)
	return c
}

func (c *client) send(msgType byte, args ...string) {
	c.t.Helper()
	payload := ""
	if len(args) > 0 {
		payload = strings.Join(args, protocol.ArgDelim)
	}
	require.NoError(c.t, protocol.WriteFrame(c.conn, msgType, []byte(payload)))
}

// recv reads the next frame with a deadline so a missing reply fails
// the test instead of hanging it.
func (c *client) recv() *protocol.Frame {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	frame, err := protocol.ReadFrame(c.conn)
	require.NoError(c.t, err)
	return frame
}

// expect reads the next frame, asserts its type and returns the payload.
func (c *client) expect(wantType byte) string {
	c.t.Helper()
	frame := c.recv()
	require.Equal(c.t, protocol.Name(wantType), protocol.Name(frame.Type))
	return string(frame.Payload)
}
