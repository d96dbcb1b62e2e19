package server

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/armandparser/redicache/internal/command"
	"github.com/armandparser/redicache/internal/config"
	"github.com/armandparser/redicache/internal/resp"
	"github.com/armandparser/redicache/internal/store"
)

// Server accepts TCP connections and dispatches RESP commands against a
// shared Store, following the teacher's GoFastServer/Start/handleConnection
// shape (server.go) generalized from a bespoke binary framing to RESP and
// from a single keyspace to Store's per-database keyspaces.
type Server struct {
	cfg      *config.Config
	store    *store.Store
	stats    *Stats
	listener net.Listener
	conns    conc.WaitGroup
	running  bool
}

func New(cfg *config.Config) *Server {
	return &Server{
		cfg:   cfg,
		store: store.NewStore(cfg.DatabaseCount),
		stats: NewStats(),
	}
}

func (s *Server) Stats() Snapshot {
	return s.stats.Snapshot()
}

// Start listens on cfg.Host:cfg.Port and serves connections until Stop is
// called. It blocks for the lifetime of the listener, mirroring the
// teacher's Start/Accept loop.
func (s *Server) Start() error {
	address := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.listener = listener
	s.running = true
	log.Printf("redicache server listening on %s", address)

	for s.running {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.running {
				log.Printf("accept error: %v", err)
			}
			continue
		}

		if s.stats.ActiveConns.Load() >= int64(s.cfg.MaxConnections) {
			s.stats.RejectedConns.Inc()
			conn.Write([]byte("-ERR max number of clients reached\r\n"))
			conn.Close()
			continue
		}

		s.stats.Connections.Inc()
		s.stats.ActiveConns.Inc()
		s.conns.Go(func() { s.handleConnection(conn) })
	}

	return nil
}

// Stop closes the listener and waits for every connection handler to
// return. Open client connections are not closed, so Stop returns only
// once each connected client has disconnected.
func (s *Server) Stop() {
	s.running = false
	if s.listener != nil {
		s.listener.Close()
	}
	s.conns.Wait()
}

func (s *Server) handleConnection(conn net.Conn) {
	defer func() {
		conn.Close()
		s.stats.ActiveConns.Dec()
	}()

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		tcpConn.SetKeepAlive(s.cfg.TCPKeepAlive)
	}

	reader := bufio.NewReader(conn)
	writer := bufio.NewWriter(conn)
	decoder := resp.NewDecoder(reader)
	connState := command.NewConnState()

	for {
		if s.cfg.ReadTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		}

		frame, err := decoder.Decode()
		if err != nil {
			if err != io.EOF {
				log.Printf("read error: %v", err)
			}
			return
		}

		s.stats.TotalCommands.Inc()
		now := time.Now().Unix()
		reply := command.Execute(s.store, connState, frame, now)

		if s.cfg.WriteTimeout > 0 {
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		}
		if err := resp.Encode(writer, reply); err != nil {
			log.Printf("write error: %v", err)
			return
		}
		if err := writer.Flush(); err != nil {
			log.Printf("flush error: %v", err)
			return
		}

		if isQuit(frame) {
			return
		}
	}
}

// isQuit reports whether the decoded request frame was a QUIT command,
// since the connection must close right after replying +OK to it.
func isQuit(frame resp.Frame) bool {
	if len(frame.Array) == 0 || frame.Array[0].BulkNull {
		return false
	}
	return strings.EqualFold(string(frame.Array[0].Bulk), "QUIT")
}
