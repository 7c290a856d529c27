package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Gemini GeminiConfig
	Upload UploadConfig
	Worker WorkerConfig
	Export ExportConfig
	Theme  ThemeConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type GeminiConfig struct {
	APIKey                 string
	Model                  string
	ResumeTemperature      float32
	CoverLetterTemperature float32
	PolishTemperature      float32
	// Zero means no deadline on the provider call.
	Timeout time.Duration
}

type UploadConfig struct {
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency int
	QueueSize   int
}

type ExportConfig struct {
	ChromePath string
}

type ThemeConfig struct {
	Default string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey:                 getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			Model:                  getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
			ResumeTemperature:      getEnvAsFloat32("GEMINI_RESUME_TEMPERATURE", 0.3),
			CoverLetterTemperature: getEnvAsFloat32("GEMINI_COVER_LETTER_TEMPERATURE", 0.7),
			PolishTemperature:      getEnvAsFloat32("GEMINI_POLISH_TEMPERATURE", 0.2),
			Timeout:                getEnvAsDuration("GEMINI_TIMEOUT", "0s"),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 20971520),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 4),
			QueueSize:   getEnvAsInt("WORKER_QUEUE_SIZE", 100),
		},
		Export: ExportConfig{
			ChromePath: getEnv("CHROME_PATH", ""),
		},
		Theme: ThemeConfig{
			Default: getTheme("THEME_DEFAULT", "dark"),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

// getTheme only accepts the two persisted theme values.
func getTheme(key, defaultValue string) string {
	switch value := getEnv(key, defaultValue); value {
	case "dark", "light":
		return value
	default:
		return defaultValue
	}
}
