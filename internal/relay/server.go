package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Server wraps the HTTP server hosting the chat relay and its side
// endpoints.
type Server struct {
	server    *http.Server
	port      int
	startTime time.Time
}

// NewServer mounts the chat handler at the root, the optional enquiry
// handler at /api/enquiry, and a health endpoint at /api/status.
func NewServer(port int, chat http.Handler, enquiry http.Handler) *Server {
	s := &Server{port: port, startTime: time.Now()}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	if enquiry != nil {
		mux.Handle("/api/enquiry", enquiry)
	}
	mux.Handle("/", chat)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) Start() error {
	log.Printf("chat relay listening on :%d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}
