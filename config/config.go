package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultTaskAPIURL is the hosted task manager API used when TASK_API_URL is unset
	DefaultTaskAPIURL = "https://task-manager-5is3.onrender.com"
	// TokenCookieName is the cookie holding the task API bearer token
	TokenCookieName = "task_manager_token"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	// Task API
	TaskAPIURL     string
	TaskAPITimeout time.Duration
	// Dashboard snapshots
	SnapshotFallback bool // serve the last stored dashboard when the API is down
	SnapshotMaxAge   time.Duration
	// Other
	AllowedOrigins []string
	AppURL         string
	LoginURL       string // where unauthenticated browsers are sent
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		DBPath:           getEnv("DB_PATH", "db/app.db"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		TaskAPIURL:       strings.TrimRight(getEnv("TASK_API_URL", DefaultTaskAPIURL), "/"),
		TaskAPITimeout:   getEnvDuration("TASK_API_TIMEOUT", 10*time.Second),
		SnapshotMaxAge:   getEnvDuration("SNAPSHOT_MAX_AGE", 7*24*time.Hour),
		SnapshotFallback: getEnvBool("SNAPSHOT_FALLBACK", true),
		AllowedOrigins:   strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AppURL:           getEnv("APP_URL", "http://localhost:8080"),
		LoginURL:         getEnv("LOGIN_URL", "/login"),
	}
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks settings that must be right before serving traffic
func (c *Config) Validate() error {
	u, err := url.Parse(c.TaskAPIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("TASK_API_URL must be an absolute http(s) URL, got %q", c.TaskAPIURL)
	}

	if c.IsProduction() {
		if u.Scheme != "https" {
			return fmt.Errorf("TASK_API_URL must use https in production")
		}
		for _, origin := range c.AllowedOrigins {
			if strings.TrimSpace(origin) == "*" {
				log.Printf("[WARNING] ALLOWED_ORIGINS is '*' in production")
			}
		}
	}

	if c.TaskAPITimeout <= 0 {
		return fmt.Errorf("TASK_API_TIMEOUT must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("[WARNING] Invalid duration for %s (%q), using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
