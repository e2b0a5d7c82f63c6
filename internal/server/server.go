// Package server implements the bridge: it attaches to the keyboard's raw
// HID stream and rebroadcasts every frame over TCP to any number of local
// consumers (overlays, trainers), forwarding their requests back to the
// device.
package server

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/drakeaxelrod/yxa/hid"
	"github.com/drakeaxelrod/yxa/internal/log"
	"github.com/drakeaxelrod/yxa/internal/server/auth"
)

// Server fans the device frame stream out to subscribed TCP clients.
type Server struct {
	cfg    Config
	src    Source
	logger *slog.Logger
	raw    log.RawLogger

	ln    net.Listener
	ready chan struct{}
	quit  chan struct{}

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn net.Conn
	ch   chan hid.Frame
}

// New creates a bridge server over the given device source.
func New(cfg Config, src Source, logger *slog.Logger, raw log.RawLogger) *Server {
	return &Server{
		cfg:     cfg,
		src:     src,
		logger:  logger,
		raw:     raw,
		ready:   make(chan struct{}),
		quit:    make(chan struct{}),
		clients: make(map[*client]struct{}),
	}
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Addr returns the bound listener address, nil before Ready.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// ListenAndServe binds the listener, starts the fanout pump and accepts
// clients until Close or until the device stream ends.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	close(s.ready)
	s.logger.Info("bridge listening", "addr", ln.Addr().String())

	go s.fanout()

	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.logger.Info("bridge stopped")
				return nil
			}
			return err
		}
		go s.handleConn(c)
	}
}

// Close stops the listener and disconnects all clients.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.quit)
	for c := range s.clients {
		_ = c.conn.Close()
	}
	s.mu.Unlock()

	if s.ln != nil {
		return s.ln.Close()
	}
	return nil
}

// fanout relays device frames to every subscribed client. A client whose
// buffer is full loses the frame; it can resynchronize with a full-state
// request, same as over the real HID link.
func (s *Server) fanout() {
	for {
		select {
		case <-s.quit:
			return
		case f, ok := <-s.src.Frames():
			if !ok {
				s.logger.Info("device stream closed, shutting down bridge")
				_ = s.Close()
				return
			}
			s.raw.Log(false, f.Bytes())
			s.mu.Lock()
			for c := range s.clients {
				select {
				case c.ch <- f:
				default:
					s.logger.Warn("client lagging, dropped frame",
						"remote", c.conn.RemoteAddr().String(),
						"kind", f.Kind().String())
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *Server) handleConn(conn net.Conn) {
	connLogger := s.logger.With("remote", conn.RemoteAddr().String())

	if s.cfg.Key != "" {
		authed, err := auth.ServerHandshake(conn, s.cfg.Key)
		if err != nil {
			connLogger.Warn("client auth failed", "error", err)
			_ = conn.Close()
			return
		}
		conn = authed
	}

	c := &client{conn: conn, ch: make(chan hid.Frame, s.cfg.ClientBuffer)}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	connLogger.Info("client subscribed")

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		close(c.ch)
		_ = conn.Close()
		connLogger.Info("client disconnected")
	}()

	// Writer: device frames out to the client.
	writeErr := make(chan struct{})
	go func() {
		defer close(writeErr)
		for f := range c.ch {
			if _, err := conn.Write(f.Bytes()); err != nil {
				return
			}
		}
	}()

	// Reader: client requests back to the device.
	buf := make([]byte, hid.FrameSize)
	for {
		if _, err := io.ReadFull(conn, buf); err != nil {
			if err != io.EOF {
				connLogger.Debug("client read ended", "error", err)
			}
			return
		}
		s.raw.Log(true, buf)
		s.src.Forward(buf)

		select {
		case <-writeErr:
			return
		default:
		}
	}
}
