// Package api holds the wire types shared by the chat relay and its clients.
package api

import "encoding/json"

// Turn is a single entry in a conversation transcript.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Transcript roles. Anything else supplied by a client is coerced to RoleModel
// when the history is replayed into a prompt.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Request is the payload a client POSTs to the relay.
type Request struct {
	Message  string `json:"message"`
	Prompt   string `json:"prompt,omitempty"` // legacy alias for Message
	Business string `json:"business,omitempty"`
	// BusinessID is a legacy alias for Business.
	BusinessID string `json:"businessId,omitempty"`
	History    []Turn `json:"history,omitempty"`
	// SystemPrompt, when set, replaces the resolved business persona entirely.
	SystemPrompt string `json:"systemPrompt,omitempty"`
	// SystemInstruction is a legacy alias for SystemPrompt.
	SystemInstruction string `json:"systemInstruction,omitempty"`
}

// Response is the envelope the relay returns. On success the reply text is
// duplicated under several field names for caller compatibility.
type Response struct {
	Success bool `json:"success"`

	Reply        string `json:"reply,omitempty"`
	ResponseText string `json:"response,omitempty"`
	Message      string `json:"message,omitempty"`
	Text         string `json:"text,omitempty"`
	Model        string `json:"model,omitempty"`
	Business     string `json:"business,omitempty"`

	Error   string          `json:"error,omitempty"`
	Retry   bool            `json:"retry,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

// Success builds the success envelope with the reply duplicated under every
// compatibility field name.
func Success(reply, model, business string) Response {
	return Response{
		Success:      true,
		Reply:        reply,
		ResponseText: reply,
		Message:      reply,
		Text:         reply,
		Model:        model,
		Business:     business,
	}
}

// Failure builds a failure envelope.
func Failure(errMsg string) Response {
	return Response{Success: false, Error: errMsg}
}
