package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string         `mapstructure:"port"`
	Provider       string         `mapstructure:"provider"`
	Model          string         `mapstructure:"model"`
	EmbeddingModel string         `mapstructure:"embedding_model"`
	GoogleAPIKey   string         `mapstructure:"GOOGLE_API_KEY"`
	IndexDir       string         `mapstructure:"index_dir"`
	ChunkProfile   string         `mapstructure:"chunk_profile"`
	FetchTimeout   int            `mapstructure:"fetch_timeout_seconds"`
	Mongo          MongoConfig    `mapstructure:"mongo"`
	Redis          RedisConfig    `mapstructure:"redis"`
	OpenAI         OpenAIConfig   `mapstructure:"openai"`
}

type MongoConfig struct {
	URI    string `mapstructure:"MONGODB_URI"`
	DBName string `mapstructure:"db_name"`
}

type RedisConfig struct {
	URL string `mapstructure:"REDIS_URL"`
}

// OpenAIConfig is only consulted when the provider flag selects the
// OpenAI-compatible backend.
type OpenAIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"OPENAI_API_KEY"`
	Model   string `mapstructure:"model"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("port", "8000")
	v.SetDefault("provider", "gemini")
	v.SetDefault("model", "gemini-2.5-flash-lite")
	v.SetDefault("embedding_model", "embedding-001")
	v.SetDefault("index_dir", "data/faiss_index")
	v.SetDefault("chunk_profile", "google-ai")
	v.SetDefault("fetch_timeout_seconds", 30)
	v.SetDefault("mongo.db_name", "pdf_chatbot")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.BindEnv("GOOGLE_API_KEY")
	v.BindEnv("mongo.MONGODB_URI", "MONGODB_URI")
	v.BindEnv("redis.REDIS_URL", "REDIS_URL")
	v.BindEnv("openai.OPENAI_API_KEY", "OPENAI_API_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
