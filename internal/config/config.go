package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Address        string   `yaml:"address"`
	CORSOrigins    []string `yaml:"cors_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
	ReleaseMode    bool     `yaml:"release_mode"`
}

type ProviderConfig struct {
	APIKey         string `yaml:"-"`
	BaseURL        string `yaml:"base_url"`
	EmbeddingModel string `yaml:"embedding_model"`
	InferenceModel string `yaml:"inference_model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type RAGConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	TopK         int `yaml:"top_k"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	RAG      RAGConfig      `yaml:"rag"`
}

const (
	defaultAddress        = ":8008"
	defaultMaxUploadBytes = 10 << 20 // 10MB
	defaultBaseURL        = "https://api.openai.com/v1"
	defaultEmbeddingModel = "text-embedding-3-small"
	defaultInferenceModel = "gpt-4o-mini"
	defaultTimeoutSeconds = 120
	defaultChunkSize      = 1000 // characters
	defaultChunkOverlap   = 200  // characters
	defaultTopK           = 5
)

// Load reads the YAML config file if present, applies environment
// overrides, and validates the result. The provider API key comes
// from the environment only; its absence is fatal at startup.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Address:        defaultAddress,
			MaxUploadBytes: defaultMaxUploadBytes,
		},
		Provider: ProviderConfig{
			BaseURL:        defaultBaseURL,
			EmbeddingModel: defaultEmbeddingModel,
			InferenceModel: defaultInferenceModel,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		RAG: RAGConfig{
			ChunkSize:    defaultChunkSize,
			ChunkOverlap: defaultChunkOverlap,
			TopK:         defaultTopK,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Server.Address = getEnv("SERVER_ADDRESS", cfg.Server.Address)
	cfg.Provider.APIKey = getEnv("OPENAI_API_KEY", "")
	cfg.Provider.BaseURL = getEnv("OPENAI_BASE_URL", cfg.Provider.BaseURL)
	cfg.Provider.EmbeddingModel = getEnv("EMBEDDING_MODEL", cfg.Provider.EmbeddingModel)
	cfg.Provider.InferenceModel = getEnv("INFERENCE_MODEL", cfg.Provider.InferenceModel)
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		cfg.Server.CORSOrigins = strings.Split(origins, ",")
	}
	cfg.RAG.TopK = getEnvInt("TOP_K", cfg.RAG.TopK)

	if cfg.Provider.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.RAG.ChunkSize <= 0 {
		log.Warn().Int("chunk_size", cfg.RAG.ChunkSize).Int("default", defaultChunkSize).
			Msg("invalid chunk_size, using default")
		cfg.RAG.ChunkSize = defaultChunkSize
	}
	if cfg.RAG.ChunkOverlap < 0 {
		log.Warn().Int("chunk_overlap", cfg.RAG.ChunkOverlap).Int("default", defaultChunkOverlap).
			Msg("invalid chunk_overlap, using default")
		cfg.RAG.ChunkOverlap = defaultChunkOverlap
	}
	if cfg.RAG.TopK <= 0 {
		log.Warn().Int("top_k", cfg.RAG.TopK).Int("default", defaultTopK).
			Msg("invalid top_k, using default")
		cfg.RAG.TopK = defaultTopK
	}
	if cfg.Provider.TimeoutSeconds <= 0 {
		log.Warn().Int("timeout_seconds", cfg.Provider.TimeoutSeconds).Int("default", defaultTimeoutSeconds).
			Msg("invalid timeout_seconds, using default")
		cfg.Provider.TimeoutSeconds = defaultTimeoutSeconds
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
