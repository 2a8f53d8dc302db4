package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string
	PhotoStorePath string
	UploadMaxSize  int64

	// Judge (vision model) settings
	JudgeBaseURL     string
	JudgeAPIKey      string
	JudgeVisionModel string
	JudgeTextModel   string
	JudgeTimeout     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./treasurehunt.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		PhotoStorePath: getEnv("PHOTO_STORE_PATH", "./data/photos"),
		UploadMaxSize:  getEnvInt64("UPLOAD_MAX_SIZE", 5*1024*1024), // 5MB

		JudgeBaseURL:     getEnv("JUDGE_BASE_URL", "https://api.groq.com/openai"),
		JudgeAPIKey:      getEnv("JUDGE_API_KEY", ""),
		JudgeVisionModel: getEnv("JUDGE_VISION_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
		JudgeTextModel:   getEnv("JUDGE_TEXT_MODEL", "llama-3.3-70b-versatile"),
		JudgeTimeout:     getEnvDuration("JUDGE_TIMEOUT", 30*time.Second),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 reads an integer environment variable or returns a default value
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using default", key, value)
		return defaultValue
	}
	return n
}

// getEnvDuration reads a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using default", key, value)
		return defaultValue
	}
	return d
}
