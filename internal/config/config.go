package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderGemini LLMProvider = "gemini"
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	// HTTP server
	Port int `env:"PORT" envDefault:"8787"`

	// LLM settings
	LLMProvider      LLMProvider   `env:"LLM_PROVIDER" envDefault:"gemini"`
	Model            string        `env:"MODEL" envDefault:"gemma-3-4b-it"`
	GeminiAPIKey     string        `env:"GEMINI_API_KEY"`
	GeminiBaseURL    string        `env:"GEMINI_BASE_URL"`
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string        `env:"OPENAI_BASE_URL"`
	YandexOAuthToken string        `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string        `env:"YANDEX_FOLDER_ID"`
	UpstreamTimeout  time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"8s"`

	// Chat defaults
	DefaultBusiness string `env:"DEFAULT_BUSINESS" envDefault:"dental"`

	// Enquiry notifications
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	EnquiryChatID    int64  `env:"ENQUIRY_CHAT_ID"`

	// Deployment self-probe
	ProbeSchedule string `env:"PROBE_SCHEDULE" envDefault:"0 7 * * *"`
	ProbeURL      string `env:"PROBE_URL"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// HasCredential reports whether the selected provider has the credential it
// needs. The relay answers with a configuration error when it does not.
func (c *Config) HasCredential() bool {
	switch c.LLMProvider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey != ""
	case ProviderYandex:
		return c.YandexOAuthToken != "" && c.YandexFolderID != ""
	default:
		return c.GeminiAPIKey != ""
	}
}
