// Package sse streams Server-Sent Events. It is the fallback transport for
// the admin notice feed when a client cannot hold a WebSocket open.
//
//	stream := sse.New(w, r)
//	for n := range notices {
//	    stream.Send("notice", n)
//	    if stream.IsClosed() {
//	        break
//	    }
//	}
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Stream is one open SSE connection.
type Stream struct {
	w       http.ResponseWriter
	r       *http.Request
	flusher http.Flusher
	closed  bool
}

// New sets the SSE headers and returns the stream, or nil when the
// ResponseWriter cannot flush (the error response is already written).
func New(w http.ResponseWriter, r *http.Request) *Stream {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return nil
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering

	return &Stream{w: w, r: r, flusher: flusher}
}

// Send writes a named event with a JSON payload.
func (s *Stream) Send(event string, data any) error {
	if s == nil || s.closed {
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}

	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload)
	s.flusher.Flush()

	s.checkClosed()
	return nil
}

// Comment writes an SSE comment line, used as a keepalive heartbeat.
func (s *Stream) Comment(msg string) {
	if s == nil || s.closed {
		return
	}
	fmt.Fprintf(s.w, ": %s\n\n", msg)
	s.flusher.Flush()
}

// IsClosed reports whether the client has disconnected.
func (s *Stream) IsClosed() bool {
	if s == nil {
		return true
	}
	s.checkClosed()
	return s.closed
}

func (s *Stream) checkClosed() {
	select {
	case <-s.r.Context().Done():
		s.closed = true
	default:
	}
}
