// Package chat implements the conversation client: it owns the session
// transcript, enforces the single-in-flight send gate, and renders relay
// failures as a fixed contact fallback instead of surfacing errors.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cogniqaiamruthap-cyber/artedental/internal/api"
	"github.com/cogniqaiamruthap-cyber/artedental/internal/sanitize"
)

// historyWindow is how many trailing transcript turns accompany each send.
const historyWindow = 5

// Greeting is the rendered view after session start and after a clear.
const Greeting = "Hello! Welcome to Arte Dental. I can help you with appointments, opening hours, or treatment info. How can I assist you today?"

const contactPhone = "+44 7398 243653"

var (
	// ErrBusy means a send is already in flight; the new one is dropped,
	// not queued.
	ErrBusy = errors.New("a reply is already pending")
	// ErrEmptyMessage means the trimmed input was empty.
	ErrEmptyMessage = errors.New("no message entered")
)

// Session is the per-visitor conversation state. The transcript lives only
// in memory for the lifetime of the session.
type Session struct {
	relayURL string
	business string
	httpc    *http.Client

	mu         sync.Mutex
	busy       bool
	transcript []api.Turn
}

func NewSession(relayURL, businessID string) *Session {
	return &Session{
		relayURL: relayURL,
		business: businessID,
		httpc:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Send forwards text to the relay and returns the text to render. On a
// failure envelope or a transport failure the returned text is the contact
// fallback, the error describes the cause, and the transcript is untouched.
// ErrBusy and ErrEmptyMessage reject the send before any network activity.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.busy = true
	history := s.trailingLocked(historyWindow)
	s.mu.Unlock()

	// The gate is released on every path so a failure can never leave the
	// session permanently locked.
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	resp, err := s.post(ctx, api.Request{
		Message:  text,
		Business: s.business,
		History:  history,
	})
	if err != nil {
		return fmt.Sprintf("I'm sorry, I'm having trouble connecting right now. Please call us at %s", contactPhone), err
	}
	if !resp.Success {
		errMsg := resp.Error
		if errMsg == "" {
			errMsg = "I'm having trouble processing your request."
		}
		return fmt.Sprintf("System Error: %s\n\nPlease call us at %s", errMsg, contactPhone), fmt.Errorf("relay error: %s", errMsg)
	}

	reply := sanitize.Clean(resp.Reply)

	s.mu.Lock()
	s.transcript = append(s.transcript,
		api.Turn{Role: api.RoleUser, Text: sanitize.StripHTML(text)},
		api.Turn{Role: api.RoleModel, Text: reply},
	)
	s.mu.Unlock()

	return reply, nil
}

func (s *Session) post(ctx context.Context, payload api.Request) (api.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return api.Response{}, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.relayURL, bytes.NewReader(body))
	if err != nil {
		return api.Response{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := s.httpc.Do(req)
	if err != nil {
		return api.Response{}, fmt.Errorf("relay unreachable: %w", err)
	}
	defer httpResp.Body.Close()

	var resp api.Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return api.Response{}, fmt.Errorf("failed to decode relay response: %w", err)
	}
	return resp, nil
}

// Transcript returns a copy of the session transcript.
func (s *Session) Transcript() []api.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Turn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Clear empties the transcript after the confirm callback approves it.
// Reports whether the transcript was cleared.
func (s *Session) Clear(confirm func() bool) bool {
	if confirm != nil && !confirm() {
		return false
	}
	s.mu.Lock()
	s.transcript = nil
	s.mu.Unlock()
	return true
}

func (s *Session) trailingLocked(n int) []api.Turn {
	start := len(s.transcript) - n
	if start < 0 {
		start = 0
	}
	out := make([]api.Turn, len(s.transcript)-start)
	copy(out, s.transcript[start:])
	return out
}
