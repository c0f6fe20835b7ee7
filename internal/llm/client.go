package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Part is one text fragment of a prompt block.
type Part struct {
	Text string `json:"text"`
}

// Content is a role-tagged block of a prompt document, in the shape the
// generative-language API expects ("user" or "model").
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Text builds a single-part content block.
func Text(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

type Response struct {
	Content string
	Model   string
}

type Client interface {
	Generate(ctx context.Context, contents []Content) (Response, error)
}

// UpstreamError reports a failure signalled by the model API itself, as
// opposed to a transport failure. StatusCode carries the upstream code
// (429 rate limit, 503 overload, anything else is a generic API error) and
// Raw the unparsed upstream payload for diagnostics.
type UpstreamError struct {
	StatusCode int
	Message    string
	Raw        json.RawMessage
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream error (status %d)", e.StatusCode)
}

// apologyFallback is returned as the reply when the upstream call succeeds
// but carries no usable candidate text.
const apologyFallback = "I apologize, but I'm having trouble generating a response. Please contact us for assistance."
