package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port              string
	DetectorURL       string
	DetectorTimeout   time.Duration
	FrameInterval     int
	MaxAnalyzedFrames int
	MaxUploadBytes    int64
	Debug             bool
}

// Load reads configuration from the environment, with a .env file loaded
// first if present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", ":5001"),
		DetectorURL:       getEnv("DETECTOR_URL", "http://127.0.0.1:5005"),
		DetectorTimeout:   time.Duration(getEnvInt("DETECTOR_TIMEOUT_SECONDS", 30)) * time.Second,
		FrameInterval:     getEnvInt("FRAME_INTERVAL", 30),
		MaxAnalyzedFrames: getEnvInt("MAX_ANALYZED_FRAMES", 300),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_MB", 100)) * 1024 * 1024,
		Debug:             getEnvBool("DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
