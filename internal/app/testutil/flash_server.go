package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// FlashReply describes how the fake endpoint answers every request
type FlashReply struct {
	Code    string
	Message string
	LogID   string
	Body    string
	// Delay holds the response back; the handler gives up early if the client disconnects
	Delay time.Duration
}

// RecordedRequest is one request received by a FlashServer
type RecordedRequest struct {
	Method string
	Header http.Header
	Raw    []byte
	Body   map[string]interface{}
}

// FlashServer is an httptest server imitating the Flash recognizer
type FlashServer struct {
	*httptest.Server

	mu       sync.Mutex
	reply    FlashReply
	requests []RecordedRequest
}

// NewFlashServer starts a fake endpoint that is closed when t finishes
func NewFlashServer(t *testing.T, reply FlashReply) *FlashServer {
	t.Helper()
	fs := &FlashServer{reply: reply}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *FlashServer) handle(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	rec := RecordedRequest{Method: r.Method, Header: r.Header.Clone(), Raw: raw}
	_ = json.Unmarshal(raw, &rec.Body)

	fs.mu.Lock()
	fs.requests = append(fs.requests, rec)
	reply := fs.reply
	fs.mu.Unlock()

	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-r.Context().Done():
			return
		}
	}

	if reply.Code != "" {
		w.Header().Set("X-Api-Status-Code", reply.Code)
	}
	if reply.Message != "" {
		w.Header().Set("X-Api-Message", reply.Message)
	}
	if reply.LogID != "" {
		w.Header().Set("X-Tt-Logid", reply.LogID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, reply.Body)
}

// Requests returns a copy of every request received so far
func (fs *FlashServer) Requests() []RecordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]RecordedRequest(nil), fs.requests...)
}

// RequestCount returns how many requests were received
func (fs *FlashServer) RequestCount() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.requests)
}
