// Package network owns the TCP listener and per-connection session
// loops. A session authenticates, then translates each inbound frame
// into a job for the engine's queue.
package network

import (
	"errors"
	"net"
	"strings"
	"sync"

	"auction-house/internal/auctionerrors"
	auction "auction-house/internal/auctionService"
	model "auction-house/internal/models"
	"auction-house/internal/protocol"
	"auction-house/utils"
)

// Server accepts client connections and runs one session goroutine per
// connection.
type Server struct {
	Addr   string
	engine *auction.Engine

	mu    sync.Mutex
	ln    net.Listener
	conns map[net.Conn]struct{}
}

// NewServer creates a server that feeds the given engine.
func NewServer(addr string, engine *auction.Engine) *Server {
	return &Server{
		Addr:   addr,
		engine: engine,
		conns:  make(map[net.Conn]struct{}),
	}
}

// Start listens and accepts until Stop closes the listener. A bind
// failure is returned to the caller; a single failed accept is not
// fatal.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	utils.Info("listening", map[string]any{"addr": ln.Addr().String()})

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			continue
		}
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()
		go s.handleConnection(conn)
	}
}

// ListenAddr returns the bound address once Start has begun listening.
func (s *Server) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Stop closes the listener and every live connection.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		s.ln.Close()
	}
	for conn := range s.conns {
		conn.Close()
	}
}

// session wraps a connection as a reply destination. Writes are
// serialized: replies from a worker and broadcasts from other workers
// would otherwise interleave frames.
type session struct {
	conn net.Conn
	wmu  sync.Mutex
}

// Send implements models.Conn.
func (c *session) Send(msgType byte, payload string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return protocol.WriteFrame(c.conn, msgType, []byte(payload))
}

func (s *Server) handleConnection(conn net.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	sess := &session{conn: conn}

	username, ok := s.login(sess)
	if !ok {
		return
	}
	defer s.engine.Users().SetOffline(username)

	for {
		frame, err := protocol.ReadFrame(conn)
		if err != nil {
			utils.Info("session ended", map[string]any{"user": username})
			return
		}

		if frame.Type == protocol.TypeLogout {
			sess.Send(protocol.TypeOK, "")
			utils.Info("logout", map[string]any{"user": username})
			return
		}

		// Close jobs are synthesized by the tick driver and the buy-now
		// path; a client frame must not reach that handler. A second
		// LOGIN on a live session is refused the same way.
		if frame.Type == protocol.TypeAuctionClosed || frame.Type == protocol.TypeLogin {
			sess.Send(protocol.TypeErrServ, "")
			utils.Warn("rejected client frame", map[string]any{"user": username, "type": protocol.Name(frame.Type)})
			continue
		}

		job := &model.Job{
			ID:       utils.GenerateID(),
			Type:     frame.Type,
			Conn:     sess,
			Username: username,
			Args:     splitArgs(frame.Payload),
		}
		if !s.engine.Submit(job) {
			return
		}
	}
}

// login handles the connection's first frame. The connection is not
// promoted to a session unless the credentials are accepted.
func (s *Server) login(sess *session) (string, bool) {
	frame, err := protocol.ReadFrame(sess.conn)
	if err != nil {
		return "", false
	}

	args := splitArgs(frame.Payload)
	if frame.Type != protocol.TypeLogin || len(args) != 2 {
		sess.Send(protocol.TypeErrServ, "")
		return "", false
	}
	username, password := args[0], args[1]

	if err := s.engine.Users().Login(username, password, sess); err != nil {
		msgType := protocol.TypeErrServ
		switch {
		case errors.Is(err, auctionerrors.ErrUserLoggedIn):
			msgType = protocol.TypeErrLoggedIn
		case errors.Is(err, auctionerrors.ErrWrongPassword):
			msgType = protocol.TypeErrWrongPassword
		}
		sess.Send(msgType, "")
		utils.Warn("login rejected", map[string]any{"user": username, "reason": protocol.Name(msgType)})
		return "", false
	}

	sess.Send(protocol.TypeOK, "")
	utils.Info("login", map[string]any{"user": username})
	return username, true
}

// splitArgs splits a payload into its CRLF-delimited arguments. An
// empty payload means no arguments.
func splitArgs(payload []byte) []string {
	if len(payload) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(payload), protocol.ArgDelim), protocol.ArgDelim)
}
