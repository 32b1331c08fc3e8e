// Package sse streams desktop snapshots to browsers as Server-Sent Events.
//
// Every snapshot supersedes the previous one, so each client holds at most
// one pending frame: a client that falls behind skips straight to the
// newest snapshot instead of replaying stale ones.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/yourusername/desk-cli/internal/logging"
)

// Heartbeat is how often an idle stream gets a comment line, which keeps
// proxies from timing the connection out
var Heartbeat = 25 * time.Second

// Event is one named message. Data is sent as JSON.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Encode renders event as an SSE frame
func Encode(event Event) ([]byte, error) {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", event.Type, err)
	}
	return fmt.Appendf(nil, "event: %s\ndata: %s\n\n", event.Type, payload), nil
}

// Subscription is one connected client. C yields encoded frames and is
// closed when the client is removed or the broker stops.
type Subscription struct {
	C      <-chan []byte
	frames chan []byte
}

// offer queues frame, replacing any frame the client has not read yet.
// Only the broker loop sends on frames, so a drained slot stays free.
func (s *Subscription) offer(frame []byte) {
	for {
		select {
		case s.frames <- frame:
			return
		default:
		}
		select {
		case <-s.frames:
		default:
		}
	}
}

type clientSet map[*Subscription]struct{}

// Broker fans snapshots out to subscribers. The client set belongs to one
// loop goroutine; every public method hands it a closure to run.
type Broker struct {
	initial func() Event

	ops  chan func(clientSet)
	quit chan struct{}
	done chan struct{}
	stop sync.Once
}

// NewBroker starts a broker. initial, if non-nil, produces the first frame
// each new subscriber receives.
func NewBroker(initial func() Event) *Broker {
	b := &Broker{
		initial: initial,
		ops:     make(chan func(clientSet)),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go b.loop()
	return b
}

func (b *Broker) loop() {
	defer close(b.done)

	clients := make(clientSet)
	for {
		select {
		case op := <-b.ops:
			op(clients)
		case <-b.quit:
			for sub := range clients {
				close(sub.frames)
			}
			return
		}
	}
}

// do runs op on the loop and waits for it. It reports false once the
// broker has stopped.
func (b *Broker) do(op func(clientSet)) bool {
	ran := make(chan struct{})
	select {
	case b.ops <- func(c clientSet) { op(c); close(ran) }:
		<-ran
		return true
	case <-b.done:
		return false
	}
}

// Close disconnects every subscriber and stops the loop. It is idempotent.
func (b *Broker) Close() {
	b.stop.Do(func() { close(b.quit) })
	<-b.done
}

// Subscribe registers a client. On a stopped broker the returned
// subscription is already closed.
func (b *Broker) Subscribe() *Subscription {
	frames := make(chan []byte, 1)
	sub := &Subscription{C: frames, frames: frames}

	ok := b.do(func(c clientSet) {
		c[sub] = struct{}{}
		if b.initial == nil {
			return
		}
		frame, err := Encode(b.initial())
		if err != nil {
			logging.Warn().Err(err).Msg("sse: no initial frame")
			return
		}
		sub.offer(frame)
	})
	if !ok {
		close(frames)
	}
	return sub
}

// Unsubscribe removes sub and closes its channel
func (b *Broker) Unsubscribe(sub *Subscription) {
	b.do(func(c clientSet) {
		if _, ok := c[sub]; ok {
			delete(c, sub)
			close(sub.frames)
		}
	})
}

// ClientCount returns the number of subscribers
func (b *Broker) ClientCount() int {
	n := 0
	b.do(func(c clientSet) { n = len(c) })
	return n
}

// Publish offers event to every subscriber. Events that cannot be encoded
// are logged and dropped.
func (b *Broker) Publish(event Event) {
	frame, err := Encode(event)
	if err != nil {
		logging.Warn().Err(err).Msg("sse: dropping event")
		return
	}
	b.do(func(c clientSet) {
		for sub := range c {
			sub.offer(frame)
		}
	})
}

// ServeHTTP streams frames to one client until it disconnects
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	ticker := time.NewTicker(Heartbeat)
	defer ticker.Stop()

	for {
		var frame []byte
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			frame = []byte(": keep-alive\n\n")
		case f, open := <-sub.C:
			if !open {
				return
			}
			frame = f
		}
		if _, err := w.Write(frame); err != nil {
			return
		}
		flusher.Flush()
	}
}
