package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Envelope types
const (
	TypeRequest  = "request"
	TypeResponse = "response"
	TypeEvent    = "event"
)

// Error codes carried in ErrorInfo.Code
const (
	CodeParse          = -32700
	CodeInvalidRequest = -32600
	CodeUnknownMethod  = -32601
	CodeInvalidParams  = -32602
	CodeInternal       = -32603
	CodeNotFound       = -32004
)

var (
	// ErrUnknownMethod means the method name is not served
	ErrUnknownMethod = errors.New("unknown method")
	// ErrInvalidParams means the params could not be decoded or are incomplete
	ErrInvalidParams = errors.New("invalid params")
	// ErrNotFound means a referenced window, file or app does not exist
	ErrNotFound = errors.New("not found")
)

// MessageEnvelope is the top-level message structure for all communications
type MessageEnvelope struct {
	Type     string    `json:"type"` // "request", "response", or "event"
	Request  *Request  `json:"request,omitempty"`
	Response *Response `json:"response,omitempty"`
	Event    *Event    `json:"event,omitempty"`
}

// Request represents an RPC request
type Request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response represents an RPC response
type Response struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *ErrorInfo      `json:"error,omitempty"`
}

// ErrorInfo represents an error in a response
type ErrorInfo struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Error implements error
func (e *ErrorInfo) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// Event represents an asynchronous event from the server
type Event struct {
	EventType string          `json:"eventType"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewRequest creates a new request envelope. Params may be nil.
func NewRequest(id, method string, params any) (*MessageEnvelope, error) {
	var raw json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params for %s: %w", method, err)
		}
		raw = data
	}
	return &MessageEnvelope{
		Type: TypeRequest,
		Request: &Request{
			ID:     id,
			Method: method,
			Params: raw,
		},
	}, nil
}

// NewResult creates a successful response envelope
func NewResult(id string, result any) (*MessageEnvelope, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &MessageEnvelope{
		Type:     TypeResponse,
		Response: &Response{ID: id, Result: data},
	}, nil
}

// NewErrorResponse creates an error response envelope, choosing the code
// from the sentinel err wraps
func NewErrorResponse(id string, err error) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeResponse,
		Response: &Response{
			ID:    id,
			Error: &ErrorInfo{Code: CodeFor(err), Message: err.Error()},
		},
	}
}

// NewEvent creates an event envelope
func NewEvent(eventType string, data any) (*MessageEnvelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	return &MessageEnvelope{
		Type:  TypeEvent,
		Event: &Event{EventType: eventType, Data: raw, Timestamp: time.Now()},
	}, nil
}

// CodeFor maps an error to its envelope code
func CodeFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownMethod):
		return CodeUnknownMethod
	case errors.Is(err, ErrInvalidParams):
		return CodeInvalidParams
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// IsError returns true if the response contains an error
func (r *Response) IsError() bool {
	return r.Error != nil
}

// GetError returns the error message if present
func (r *Response) GetError() string {
	if r.Error != nil {
		return r.Error.Message
	}
	return ""
}

// Err returns the response error, or nil. The sentinel matching the code is
// restored so callers can use errors.Is across the wire.
func (r *Response) Err() error {
	if r.Error == nil {
		return nil
	}
	var sentinel error
	switch r.Error.Code {
	case CodeUnknownMethod:
		sentinel = ErrUnknownMethod
	case CodeInvalidParams:
		sentinel = ErrInvalidParams
	case CodeNotFound:
		sentinel = ErrNotFound
	default:
		return r.Error
	}
	return &remoteError{msg: r.Error.Message, sentinel: sentinel}
}

type remoteError struct {
	msg      string
	sentinel error
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.sentinel }

// Decode unmarshals the result into v
func (r *Response) Decode(v any) error {
	if err := r.Err(); err != nil {
		return err
	}
	if v == nil || len(r.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Result, v); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	return nil
}
