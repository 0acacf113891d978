// Package config provides configuration loading and structs for the Genie server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Speech    SpeechConfig    `yaml:"speech"`
	Inbox     InboxConfig     `yaml:"inbox"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LLMConfig holds text-completion service settings. The API key is read from
// the environment variable named by APIKeyEnv, never from the config file.
// BaseURL may point at any OpenAI-compatible endpoint; empty means the default.
type LLMConfig struct {
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// EmbeddingConfig holds embedding service settings. The same model is used for
// index construction and query-time embedding.
type EmbeddingConfig struct {
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	CacheSize  int    `yaml:"cache_size"`
}

// ChunkingConfig holds chunk sizes and overlaps (in characters). Index chunks
// feed the retrieval index; generation chunks feed summary and script generation.
type ChunkingConfig struct {
	IndexSize         int `yaml:"index_size"`
	IndexOverlap      int `yaml:"index_overlap"`
	GenerationSize    int `yaml:"generation_size"`
	GenerationOverlap int `yaml:"generation_overlap"`
}

// RetrievalConfig holds retrieval-augmented answering settings.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// SpeechConfig holds text-to-audio settings. Accents select per-speaker voices.
type SpeechConfig struct {
	Model      string `yaml:"model"`
	Language   string `yaml:"language"`
	AlexAccent string `yaml:"alex_accent"`
	BenAccent  string `yaml:"ben_accent"`
}

// InboxConfig holds drop-folder watch settings. When Directory is empty the
// watch mode is disabled.
type InboxConfig struct {
	Directory  string   `yaml:"directory"`
	Extensions []string `yaml:"extensions"`
}

// Load reads and parses the config file at path, applies defaults, and expands paths.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	if cfg.Inbox.Directory != "" {
		cfg.Inbox.Directory = expandPath(cfg.Inbox.Directory, configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
