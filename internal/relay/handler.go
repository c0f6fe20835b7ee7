// Package relay implements the stateless edge handler that brokers chat
// requests to the external model API.
package relay

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/cogniqaiamruthap-cyber/artedental/internal/api"
	"github.com/cogniqaiamruthap-cyber/artedental/internal/business"
	"github.com/cogniqaiamruthap-cyber/artedental/internal/llm"
	"github.com/cogniqaiamruthap-cyber/artedental/internal/prompt"
	"github.com/cogniqaiamruthap-cyber/artedental/internal/sanitize"
)

// VersionKeyword is a reserved command, not a real user message: it verifies
// which build is deployed without spending a model call.
const VersionKeyword = "VERSION_CHECK"

const versionReply = "VERIFIED: You are running the LATEST Arte Dental relay (Gemma-3-4B version)."

const (
	errNoAPIKey      = "API key not configured"
	errNoMessage     = "No message provided"
	errRateLimited   = "Rate limit exceeded. Please try again in a moment."
	errOverloaded    = "Service temporarily overloaded. Please retry."
	errInternal      = "Internal server error"
	genericAssistant = "Assistant"
)

// Handler answers one chat request per call. It keeps no cross-request
// state: every response is a function of the request plus static config.
type Handler struct {
	llm             llm.Client // nil when the provider credential is absent
	model           string
	defaultBusiness string
}

// New builds a chat handler. Pass a nil client when the access credential is
// missing; the handler then answers every request with a configuration error
// instead of attempting an upstream call.
func New(client llm.Client, model, defaultBusiness string) *Handler {
	if defaultBusiness == "" {
		defaultBusiness = business.DefaultID
	}
	return &Handler{llm: client, model: model, defaultBusiness: defaultBusiness}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The widget runs on a different origin, so every response carries the
	// permissive CORS header, errors included.
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID := uuid.NewString()[:8]
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[%s] panic in chat handler: %v", reqID, rec)
			writeJSON(w, http.StatusInternalServerError, api.Failure(errInternal))
		}
	}()

	if h.llm == nil {
		writeJSON(w, http.StatusInternalServerError, api.Failure(errNoAPIKey))
		return
	}

	var req api.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[%s] malformed payload: %v", reqID, err)
		resp := api.Failure(errInternal)
		resp.Message = err.Error()
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	raw := req.Message
	if raw == "" {
		raw = req.Prompt
	}
	message := prompt.ExtractMessage(raw)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, api.Failure(errNoMessage))
		return
	}

	if strings.EqualFold(message, VersionKeyword) {
		writeJSON(w, http.StatusOK, api.Response{Success: true, Reply: versionReply, Text: versionReply})
		return
	}

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = req.SystemInstruction
	}
	businessName := genericAssistant
	if systemPrompt == "" {
		id := req.Business
		if id == "" {
			id = req.BusinessID
		}
		if id == "" {
			id = h.defaultBusiness
		}
		profile := business.Resolve(id)
		systemPrompt = profile.SystemPrompt
		businessName = profile.Name
	}

	doc := prompt.Build(systemPrompt, req.History, message)

	resp, err := h.llm.Generate(r.Context(), doc)
	if err != nil {
		h.writeUpstreamFailure(w, reqID, err)
		return
	}

	reply := sanitize.Clean(resp.Content)
	writeJSON(w, http.StatusOK, api.Success(reply, resp.Model, businessName))
}

// writeUpstreamFailure classifies a generate error: rate limit and overload
// are retryable with fixed messages, other upstream errors pass the raw
// payload through, everything else is an internal error.
func (h *Handler) writeUpstreamFailure(w http.ResponseWriter, reqID string, err error) {
	var ue *llm.UpstreamError
	if errors.As(err, &ue) {
		switch ue.StatusCode {
		case http.StatusTooManyRequests:
			resp := api.Failure(errRateLimited)
			resp.Retry = true
			writeJSON(w, http.StatusTooManyRequests, resp)
		case http.StatusServiceUnavailable:
			resp := api.Failure(errOverloaded)
			resp.Retry = true
			writeJSON(w, http.StatusServiceUnavailable, resp)
		default:
			log.Printf("[%s] upstream error: %v", reqID, ue)
			status := ue.StatusCode
			if status == 0 {
				status = http.StatusBadGateway
			}
			resp := api.Failure(ue.Error())
			resp.Details = ue.Raw
			writeJSON(w, status, resp)
		}
		return
	}

	log.Printf("[%s] chat request failed: %v", reqID, err)
	resp := api.Failure(errInternal)
	resp.Message = err.Error()
	writeJSON(w, http.StatusInternalServerError, resp)
}

func writeJSON(w http.ResponseWriter, status int, body api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}
