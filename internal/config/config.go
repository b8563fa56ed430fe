package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFile is the local configuration file read at startup when present.
const EnvFile = ".env"

type Config struct {
	// Server
	Host string
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey    string
	GeminiModel     string
	GeminiVerifyKey bool

	// HTTP
	CORSAllowedOrigins []string
	MaxBodyBytes       int64

	// Logging
	LogLevel string
	LogFile  string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load(EnvFile)

	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "127.0.0.1"),
		Port:               getEnvOrDefault("AI_BACKEND_PORT", "5000"),
		Env:                getEnvOrDefault("ENV", "development"),
		GeminiAPIKey:       strings.TrimSpace(os.Getenv("GOOGLE_AI_API_KEY")),
		GeminiModel:        getEnvOrDefault("GEMINI_MODEL", "gemini-pro"),
		GeminiVerifyKey:    getEnvAsBoolOrDefault("GEMINI_VERIFY_KEY", false),
		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		MaxBodyBytes:       int64(getEnvAsIntOrDefault("MAX_BODY_BYTES", 1<<20)),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:            os.Getenv("LOG_FILE"),
	}
	if _, set := os.LookupEnv("LOG_FILE"); !set {
		cfg.LogFile = "ai_backend.log"
	}

	return cfg
}

// EnvFileExists reports whether the local configuration file is present.
func EnvFileExists() bool {
	_, err := os.Stat(EnvFile)
	return err == nil
}

// Addr is the listen address in host:port form.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
