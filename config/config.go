package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"

	// Model API Configuration
	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`  // API key for the generative language API
	GeminiBaseURL string `mapstructure:"GEMINI_BASE_URL"` // Override for tests/proxies; empty uses the public endpoint

	// Orchestrator Configuration
	GeminiModels       string `mapstructure:"GEMINI_MODELS"`         // Ordered comma-separated candidate list
	ModelMaxRetries    int    `mapstructure:"MODEL_MAX_RETRIES"`     // Retries per candidate beyond the first attempt
	ModelBackoffBaseMS int    `mapstructure:"MODEL_BACKOFF_BASE_MS"` // Linear backoff base in milliseconds
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("GEMINI_MODELS", "gemini-2.0-flash,gemini-1.5-flash,gemini-1.5-pro")
	viper.SetDefault("MODEL_MAX_RETRIES", 2)
	viper.SetDefault("MODEL_BACKOFF_BASE_MS", 1000)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", viper.ConfigFileUsed())
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if config.GeminiAPIKey == "" {
		log.Println("WARN: GEMINI_API_KEY is not set; generation requests will fail.")
	}

	return
}

// Models returns the ordered candidate list parsed from GEMINI_MODELS.
func (c Config) Models() []string {
	var models []string
	for _, m := range strings.Split(c.GeminiModels, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	return models
}

// BackoffBase returns the per-candidate linear backoff base delay.
func (c Config) BackoffBase() time.Duration {
	return time.Duration(c.ModelBackoffBaseMS) * time.Millisecond
}
