package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/yourusername/desk-cli/internal/models"
)

// fakeDaemon answers every request line with reply(req)
func fakeDaemon(t *testing.T, reply func(req models.MessageEnvelope) *models.MessageEnvelope) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "desk.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			var req models.MessageEnvelope
			if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
				return
			}
			out := reply(req)
			if out == nil {
				continue
			}
			data, _ := json.Marshal(out)
			conn.Write(append(data, '\n'))
		}
	}()
	return path
}

func TestSendRequestMatchesID(t *testing.T) {
	path := fakeDaemon(t, func(req models.MessageEnvelope) *models.MessageEnvelope {
		env, _ := models.NewResult(req.Request.ID, "pong")
		return env
	})

	c := NewConnection(path, time.Second)
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer c.Close()

	req, _ := models.NewRequest("req-1", models.MethodPing, nil)
	resp, err := c.SendRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("SendRequest() error = %v", err)
	}
	var got string
	if err := resp.Decode(&got); err != nil || got != "pong" {
		t.Errorf("result = %q, %v; want pong", got, err)
	}
}

func TestSendRequestRejectsStrayReply(t *testing.T) {
	path := fakeDaemon(t, func(req models.MessageEnvelope) *models.MessageEnvelope {
		env, _ := models.NewResult("someone-else", "pong")
		return env
	})

	c := NewConnection(path, time.Second)
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer c.Close()

	req, _ := models.NewRequest("req-1", models.MethodPing, nil)
	if _, err := c.SendRequest(context.Background(), req); err == nil {
		t.Fatal("expected an error for a reply with another id")
	}
	if c.IsConnected() {
		t.Error("a failed exchange should drop the connection")
	}
}

func TestSendRequestTimesOut(t *testing.T) {
	path := fakeDaemon(t, func(models.MessageEnvelope) *models.MessageEnvelope {
		return nil
	})

	c := NewConnection(path, time.Second)
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, _ := models.NewRequest("req-1", models.MethodPing, nil)
	_, err := c.SendRequest(ctx, req)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("SendRequest() error = %v, want deadline exceeded", err)
	}
}

func TestSendRequestWithoutConnect(t *testing.T) {
	c := NewConnection(filepath.Join(t.TempDir(), "none.sock"), time.Second)
	req, _ := models.NewRequest("req-1", models.MethodPing, nil)
	if _, err := c.SendRequest(context.Background(), req); !errors.Is(err, ErrClosed) {
		t.Errorf("SendRequest() error = %v, want ErrClosed", err)
	}
	if err := c.Connect(); err == nil {
		t.Error("Connect() to a missing socket should fail")
	}
}
