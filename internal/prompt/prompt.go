// Package prompt assembles the multi-turn prompt document sent to the model.
//
// The scaffold is deliberately redundant: the target models are small and
// prompt-literal, so the identity and location are reinforced both before and
// after the conversation. The block order is part of the contract.
package prompt

import (
	"fmt"
	"strings"

	"github.com/cogniqaiamruthap-cyber/artedental/internal/api"
	"github.com/cogniqaiamruthap-cyber/artedental/internal/llm"
)

// HistoryLimit caps how many trailing history turns are replayed.
const HistoryLimit = 6

// customerMarker separates a legacy client-wrapped preamble from the real
// question; everything up to and including its last occurrence is discarded.
const customerMarker = "Customer:"

const (
	identityLockFormat = "CONTEXT & IDENTITY: %s\n\nIMPORTANT: You must ONLY use the information above. Never use placeholders like [Insert location]. You are based in Birmingham."

	acknowledgment = "Understood. I am the Arte Dental Assistant in Birmingham. I will only use the provided details."

	questionFormat = "User Question: %s\n\n(Reminder: Use the Birmingham clinic details provided.)"
)

// ExtractMessage strips the legacy wrapped-preamble form and returns the bare
// trimmed question. An empty result means the request carried no message.
func ExtractMessage(raw string) string {
	if idx := strings.LastIndex(raw, customerMarker); idx >= 0 {
		raw = raw[idx+len(customerMarker):]
	}
	return strings.TrimSpace(raw)
}

// Build constructs the prompt document: identity lock, acknowledgment, the
// last HistoryLimit history turns in original order, then the wrapped
// question. A fresh slice is returned on every call.
func Build(systemPrompt string, history []api.Turn, message string) []llm.Content {
	contents := make([]llm.Content, 0, len(history)+3)

	contents = append(contents, llm.Text(api.RoleUser, fmt.Sprintf(identityLockFormat, systemPrompt)))
	contents = append(contents, llm.Text(api.RoleModel, acknowledgment))

	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}
	for _, turn := range history {
		role := api.RoleModel
		if turn.Role == api.RoleUser {
			role = api.RoleUser
		}
		contents = append(contents, llm.Text(role, turn.Text))
	}

	contents = append(contents, llm.Text(api.RoleUser, fmt.Sprintf(questionFormat, message)))
	return contents
}
