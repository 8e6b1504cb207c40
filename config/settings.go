// Package config provides environment-driven configuration for the patent
// search service. Values come from the process environment (optionally seeded
// from a .env file by the composition root); unset values fall back to the
// defaults below.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default values applied by ApplyDefaults.
const (
	DefaultPort           = 8000
	DefaultCorpusPath     = "./patent_jsons"
	DefaultPersistDir     = "./vector_db"
	DefaultCollectionName = "patent_documents"

	DefaultOllamaBaseURL  = "http://localhost:11434"
	DefaultEmbeddingModel = "nomic-embed-text"
	DefaultOllamaTimeout  = 60 * time.Second

	DefaultGroqBaseURL     = "https://api.groq.com/openai/v1"
	DefaultGroqModel       = "llama3-70b-8192"
	DefaultGroqTemperature = 0.3
	DefaultGroqMaxTokens   = 512
	DefaultGroqTimeout     = 30 * time.Second
)

// OllamaSettings configures the embedding provider.
type OllamaSettings struct {
	BaseURL string        `json:"base_url"`
	Model   string        `json:"model"`
	Timeout time.Duration `json:"timeout"`
}

// GroqSettings configures the generative summarization provider. An empty
// APIKey is allowed: summarization then degrades to the extractive fallback.
type GroqSettings struct {
	BaseURL     string        `json:"base_url"`
	APIKey      string        `json:"-"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Timeout     time.Duration `json:"timeout"`
}

// Settings contains all configuration options for the patent search service.
type Settings struct {
	Port           int    `json:"port"`
	CorpusPath     string `json:"corpus_path"`
	PersistDir     string `json:"persist_dir"`
	CollectionName string `json:"collection_name"`

	Ollama OllamaSettings `json:"ollama"`
	Groq   GroqSettings   `json:"groq"`
}

// LoadSettings reads settings from the environment and applies defaults.
// It returns an error if a set variable fails to parse.
func LoadSettings() (*Settings, error) {
	settings := &Settings{
		CorpusPath:     os.Getenv("DATA_PATH"),
		PersistDir:     os.Getenv("CHROMA_PERSIST_DIR"),
		CollectionName: os.Getenv("COLLECTION_NAME"),
		Ollama: OllamaSettings{
			BaseURL: os.Getenv("OLLAMA_BASE_URL"),
			Model:   os.Getenv("EMBEDDING_MODEL"),
		},
		Groq: GroqSettings{
			BaseURL: os.Getenv("GROQ_BASE_URL"),
			APIKey:  os.Getenv("GROQ_API_KEY"),
			Model:   os.Getenv("GROQ_MODEL"),
		},
	}

	if portStr := os.Getenv("API_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid API_PORT %q: %w", portStr, err)
		}
		settings.Port = port
	}

	settings.ApplyDefaults()

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// ApplyDefaults applies default values to unset settings
func (settings *Settings) ApplyDefaults() {
	if settings.Port == 0 {
		settings.Port = DefaultPort
	}
	if settings.CorpusPath == "" {
		settings.CorpusPath = DefaultCorpusPath
	}
	if settings.PersistDir == "" {
		settings.PersistDir = DefaultPersistDir
	}
	if settings.CollectionName == "" {
		settings.CollectionName = DefaultCollectionName
	}

	if settings.Ollama.BaseURL == "" {
		settings.Ollama.BaseURL = DefaultOllamaBaseURL
	}
	if settings.Ollama.Model == "" {
		settings.Ollama.Model = DefaultEmbeddingModel
	}
	if settings.Ollama.Timeout == 0 {
		settings.Ollama.Timeout = DefaultOllamaTimeout
	}

	if settings.Groq.BaseURL == "" {
		settings.Groq.BaseURL = DefaultGroqBaseURL
	}
	if settings.Groq.Model == "" {
		settings.Groq.Model = DefaultGroqModel
	}
	if settings.Groq.Temperature == 0 {
		settings.Groq.Temperature = DefaultGroqTemperature
	}
	if settings.Groq.MaxTokens == 0 {
		settings.Groq.MaxTokens = DefaultGroqMaxTokens
	}
	if settings.Groq.Timeout == 0 {
		settings.Groq.Timeout = DefaultGroqTimeout
	}
}

// Validate checks the settings for basic consistency.
func (settings *Settings) Validate() error {
	if settings.Port < 1 || settings.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", settings.Port)
	}
	if settings.CollectionName == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if settings.PersistDir == "" {
		return fmt.Errorf("persist directory cannot be empty")
	}
	return nil
}
