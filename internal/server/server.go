package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/yourusername/desk-cli/internal/logging"
	"github.com/yourusername/desk-cli/internal/models"
)

// maxLineBytes bounds a single request line
const maxLineBytes = 1 << 20

// Server serves a Service on a unix socket
type Server struct {
	svc        *Service
	socketPath string

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	closing  bool
	wg       sync.WaitGroup
}

// New creates a server for svc on socketPath
func New(svc *Service, socketPath string) *Server {
	return &Server{
		svc:        svc,
		socketPath: socketPath,
		conns:      make(map[net.Conn]struct{}),
	}
}

// SocketPath returns the listening socket path
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Listen creates the socket. A stale socket file left by a dead daemon is
// removed; a live one is an error.
func (s *Server) Listen() error {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0700); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	if conn, err := net.Dial("unix", s.socketPath); err == nil {
		conn.Close()
		return fmt.Errorf("a daemon is already listening on %s", s.socketPath)
	}
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create socket: %w", err)
	}
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	logging.Info().Str("socket", s.socketPath).Msg("rpc server listening")
	return nil
}

// Serve accepts connections until ctx is cancelled or Close is called.
// Listen is called first if it has not been.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	listening := s.listener != nil
	s.mu.Unlock()
	if !listening {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	go func() {
		<-ctx.Done()
		s.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.mu.Lock()
			closing := s.closing
			s.mu.Unlock()
			if closing || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			logging.Warn().Err(err).Msg("rpc accept error")
			continue
		}

		if !s.track(conn) {
			conn.Close()
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			s.handleConnection(ctx, conn)
		}()
	}
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	conn.Close()
}

// Close stops accepting, drops open connections and removes the socket
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return nil
	}
	s.closing = true

	for conn := range s.conns {
		conn.Close()
	}
	var err error
	if s.listener != nil {
		err = s.listener.Close()
		os.Remove(s.socketPath)
	}
	logging.Info().Str("socket", s.socketPath).Msg("rpc server stopped")
	return err
}

// handleConnection answers requests on one connection until it closes.
// A connection may carry any number of requests, one per line.
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	logging.Debug().Msg("rpc client connected")
	defer logging.Debug().Msg("rpc client disconnected")

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	writer := bufio.NewWriter(conn)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := s.handleLine(ctx, line)
		data, err := json.Marshal(resp)
		if err != nil {
			logging.Error().Err(err).Msg("failed to marshal response")
			return
		}
		data = append(data, '\n')
		if _, err := writer.Write(data); err != nil {
			logging.Warn().Err(err).Msg("failed to send response")
			return
		}
		if err := writer.Flush(); err != nil {
			logging.Warn().Err(err).Msg("failed to send response")
			return
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		logging.Warn().Err(err).Msg("rpc read error")
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) *models.MessageEnvelope {
	var env models.MessageEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return &models.MessageEnvelope{
			Type: models.TypeResponse,
			Response: &models.Response{Error: &models.ErrorInfo{
				Code:    models.CodeParse,
				Message: fmt.Sprintf("invalid request: %v", err),
			}},
		}
	}
	if env.Type != models.TypeRequest || env.Request == nil {
		return &models.MessageEnvelope{
			Type: models.TypeResponse,
			Response: &models.Response{Error: &models.ErrorInfo{
				Code:    models.CodeInvalidRequest,
				Message: "expected a request envelope",
			}},
		}
	}

	req := env.Request
	log := logging.Logger.With().Str("id", req.ID).Str("method", req.Method).Logger()

	result, err := s.svc.Handle(ctx, req.Method, req.Params)
	if err != nil {
		log.Debug().Err(err).Msg("request failed")
		return models.NewErrorResponse(req.ID, err)
	}

	out, err := models.NewResult(req.ID, result)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode result")
		return models.NewErrorResponse(req.ID, err)
	}
	log.Debug().Msg("request handled")
	return out
}
