package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/cogniqaiamruthap-cyber/artedental/internal/config"
	"github.com/cogniqaiamruthap-cyber/artedental/internal/enquiry"
	"github.com/cogniqaiamruthap-cyber/artedental/internal/llm"
	"github.com/cogniqaiamruthap-cyber/artedental/internal/probe"
	"github.com/cogniqaiamruthap-cyber/artedental/internal/relay"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	// With no credential the handler still serves, answering every chat
	// request with the configuration-error envelope.
	var llmClient llm.Client
	if cfg.HasCredential() {
		client, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), cfg.Model)
		if err != nil {
			log.Fatalf("failed to create llm client: %v", err)
		}
		llmClient = client
	} else {
		log.Printf("no credential for provider %s; chat requests will get a configuration error", cfg.LLMProvider)
	}

	chatHandler := relay.New(llmClient, cfg.Model, cfg.DefaultBusiness)

	var enquiryHandler http.Handler
	if cfg.TelegramBotToken != "" && cfg.EnquiryChatID != 0 {
		notifier, err := enquiry.NewTelegramNotifier(cfg.TelegramBotToken, cfg.EnquiryChatID)
		if err != nil {
			log.Printf("failed to init enquiry notifier: %v", err)
		} else {
			enquiryHandler = enquiry.NewHandler(notifier)
		}
	}

	srv := relay.NewServer(cfg.Port, chatHandler, enquiryHandler)

	probeURL := cfg.ProbeURL
	if probeURL == "" {
		probeURL = fmt.Sprintf("http://localhost:%d/", cfg.Port)
	}
	prober := probe.New(probeURL)
	if err := prober.Start(cfg.ProbeSchedule); err != nil {
		log.Printf("failed to start deployment probe: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("server error: %v", err)
	case sig := <-sigCh:
		log.Printf("received %s, shutting down", sig)
	}

	prober.Stop()
	if err := srv.Stop(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
