// Package enquiry receives website enquiry-form submissions and forwards
// them to the practice staff.
package enquiry

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/cogniqaiamruthap-cyber/artedental/internal/api"
)

// Enquiry is the payload collected by the website's enquiry modal.
type Enquiry struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Treatment string `json:"treatment,omitempty"`
	Message   string `json:"message"`
}

// Notifier delivers an enquiry to whoever handles bookings.
type Notifier interface {
	Notify(ctx context.Context, e Enquiry) error
}

type Handler struct {
	notifier Notifier
}

func NewHandler(n Notifier) *Handler {
	return &Handler{notifier: n}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	var e Enquiry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, api.Failure("Invalid enquiry payload"))
		return
	}
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Message = strings.TrimSpace(e.Message)
	if e.Name == "" || e.Email == "" || e.Message == "" {
		writeJSON(w, http.StatusBadRequest, api.Failure("Name, email and message are required"))
		return
	}

	if err := h.notifier.Notify(r.Context(), e); err != nil {
		log.Printf("failed to deliver enquiry from %s: %v", e.Email, err)
		writeJSON(w, http.StatusBadGateway, api.Failure("Could not deliver your enquiry. Please call us instead."))
		return
	}

	writeJSON(w, http.StatusOK, api.Response{Success: true})
}

func writeJSON(w http.ResponseWriter, status int, body api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
