package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/yourusername/desk-cli/internal/models"
)

// ErrClosed is returned when a request is sent on a connection that was
// never dialled or has been closed.
var ErrClosed = errors.New("connection closed")

// Connection is one newline-delimited JSON stream to the daemon socket.
// Requests are answered in order, so only one may be in flight.
type Connection struct {
	socketPath string
	timeout    time.Duration

	mu   sync.Mutex
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
}

func NewConnection(socketPath string, timeout time.Duration) *Connection {
	return &Connection{socketPath: socketPath, timeout: timeout}
}

// Connect dials the socket. Calling it on an open connection is a no-op.
func (c *Connection) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return fmt.Errorf("daemon not reachable at %s: %w", c.socketPath, err)
	}
	c.attach(conn)
	return nil
}

func (c *Connection) attach(conn net.Conn) {
	c.conn = conn
	c.enc = json.NewEncoder(conn)
	c.dec = json.NewDecoder(conn)
}

func (c *Connection) detach() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn, c.enc, c.dec = nil, nil, nil
	return err
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detach()
}

func (c *Connection) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SendRequest writes req and blocks for its response. Without a deadline
// on ctx the connection timeout applies. A cancelled or failed exchange
// drops the connection, since the stream can no longer be trusted to be
// aligned on a message boundary.
func (c *Connection) SendRequest(ctx context.Context, req *models.MessageEnvelope) (*models.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, fmt.Errorf("%s: %w", c.socketPath, ErrClosed)
	}

	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetDeadline(deadline)
	}

	conn := c.conn
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Now())
	})
	defer stop()

	resp, err := c.exchange(req)
	if err != nil {
		c.detach()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", req.Request.Method, ctxErr)
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", req.Request.Method, context.DeadlineExceeded)
		}
		return nil, err
	}
	conn.SetDeadline(time.Time{})
	return resp, nil
}

// exchange performs one write and one read on the stream
func (c *Connection) exchange(req *models.MessageEnvelope) (*models.Response, error) {
	// Encode terminates each value with '\n', which is the frame delimiter
	if err := c.enc.Encode(req); err != nil {
		return nil, fmt.Errorf("send %s: %w", req.Request.Method, err)
	}

	var reply models.MessageEnvelope
	if err := c.dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("read reply to %s: %w", req.Request.Method, err)
	}
	return matchResponse(req, &reply)
}

// matchResponse checks that reply answers req
func matchResponse(req, reply *models.MessageEnvelope) (*models.Response, error) {
	switch {
	case reply.Type != models.TypeResponse:
		return nil, fmt.Errorf("unexpected %q message from daemon", reply.Type)
	case reply.Response == nil:
		return nil, errors.New("daemon sent an empty response")
	case reply.Response.ID != req.Request.ID:
		return nil, fmt.Errorf("reply %s does not answer request %s", reply.Response.ID, req.Request.ID)
	}
	return reply.Response, nil
}
