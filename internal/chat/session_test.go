package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cogniqaiamruthap-cyber/artedental/internal/api"
)

type relayStub struct {
	mu       sync.Mutex
	calls    int
	requests []api.Request
	reply    api.Response
	block    chan struct{} // when set, requests wait here
}

func (r *relayStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var in api.Request
		_ = json.NewDecoder(req.Body).Decode(&in)
		r.mu.Lock()
		r.calls++
		r.requests = append(r.requests, in)
		block := r.block
		r.mu.Unlock()
		if block != nil {
			<-block
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(r.reply)
	}
}

func (r *relayStub) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestSendSuccessAppendsBothTurns(t *testing.T) {
	stub := &relayStub{reply: api.Success("We are open Mon-Thu 9-6:30.", "gemma-3-4b-it", "Arte Dental")}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	s := NewSession(srv.URL, "dental")
	reply, err := s.Send(context.Background(), "What are your opening hours?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "We are open Mon-Thu 9-6:30." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	turns := s.Transcript()
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != api.RoleUser || turns[0].Text != "What are your opening hours?" {
		t.Fatalf("unexpected user turn: %+v", turns[0])
	}
	if turns[1].Role != api.RoleModel || turns[1].Text != reply {
		t.Fatalf("unexpected assistant turn: %+v", turns[1])
	}
}

func TestSendSanitizesReplyBeforeStoring(t *testing.T) {
	stub := &relayStub{reply: api.Success("**Great** choice \U0001F600", "m", "b")}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	s := NewSession(srv.URL, "dental")
	reply, err := s.Send(context.Background(), "<b>hi</b>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Great choice" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	turns := s.Transcript()
	if turns[0].Text != "hi" {
		t.Fatalf("user turn must be HTML-stripped, got %q", turns[0].Text)
	}
	if turns[1].Text != "Great choice" {
		t.Fatalf("assistant turn must be stored sanitized, got %q", turns[1].Text)
	}
}

func TestSendRejectsEmptyInput(t *testing.T) {
	stub := &relayStub{}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	s := NewSession(srv.URL, "dental")
	if _, err := s.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if stub.callCount() != 0 {
		t.Fatalf("empty input must not reach the relay")
	}
}

func TestSendDropsConcurrentSends(t *testing.T) {
	stub := &relayStub{
		reply: api.Success("ok", "m", "b"),
		block: make(chan struct{}),
	}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	s := NewSession(srv.URL, "dental")

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "first")
		firstDone <- err
	}()

	// Wait until the first send is inside the relay call.
	for stub.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	if _, err := s.Send(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(stub.block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	if stub.callCount() != 1 {
		t.Fatalf("expected exactly one relay call, got %d", stub.callCount())
	}

	// Gate released: a later send goes through.
	stub.mu.Lock()
	stub.block = nil
	stub.mu.Unlock()
	if _, err := s.Send(context.Background(), "third"); err != nil {
		t.Fatalf("send after completion failed: %v", err)
	}
}

func TestSendHistoryWindow(t *testing.T) {
	stub := &relayStub{reply: api.Success("ok", "m", "b")}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	s := NewSession(srv.URL, "dental")
	for i := 0; i < 5; i++ {
		if _, err := s.Send(context.Background(), "hello"); err != nil {
			t.Fatalf("send %d failed: %v", i, err)
		}
	}

	stub.mu.Lock()
	last := stub.requests[len(stub.requests)-1]
	stub.mu.Unlock()

	// 4 completed exchanges = 8 turns in the transcript, capped at 5.
	if len(last.History) != 5 {
		t.Fatalf("expected 5 history turns, got %d", len(last.History))
	}
	if last.Business != "dental" {
		t.Fatalf("unexpected business id: %q", last.Business)
	}
}

func TestSendFailureEnvelopeReturnsContactFallback(t *testing.T) {
	stub := &relayStub{reply: api.Failure("Rate limit exceeded. Please try again in a moment.")}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	s := NewSession(srv.URL, "dental")
	reply, err := s.Send(context.Background(), "hi")
	if err == nil {
		t.Fatalf("expected an error for a failure envelope")
	}
	if !strings.Contains(reply, "+44 7398 243653") {
		t.Fatalf("fallback must include the phone number: %q", reply)
	}
	if len(s.Transcript()) != 0 {
		t.Fatalf("failed exchanges must not be appended")
	}
}

func TestSendTransportFailureReturnsContactFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	s := NewSession(srv.URL, "dental")
	reply, err := s.Send(context.Background(), "hi")
	if err == nil {
		t.Fatalf("expected a transport error")
	}
	if !strings.Contains(reply, "having trouble connecting") || !strings.Contains(reply, "+44 7398 243653") {
		t.Fatalf("unexpected fallback: %q", reply)
	}
	if len(s.Transcript()) != 0 {
		t.Fatalf("failed exchanges must not be appended")
	}

	// The busy gate must be released even after a failure.
	if _, err := s.Send(context.Background(), "hi again"); errors.Is(err, ErrBusy) {
		t.Fatalf("busy gate leaked after a failed send")
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	stub := &relayStub{reply: api.Success("ok", "m", "b")}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	s := NewSession(srv.URL, "dental")
	if _, err := s.Send(context.Background(), "hi"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if s.Clear(func() bool { return false }) {
		t.Fatalf("clear must respect a declined confirmation")
	}
	if len(s.Transcript()) != 2 {
		t.Fatalf("declined clear must keep the transcript")
	}

	if !s.Clear(func() bool { return true }) {
		t.Fatalf("confirmed clear must proceed")
	}
	if len(s.Transcript()) != 0 {
		t.Fatalf("transcript not cleared")
	}
}
