package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

const (
	PipelineModeInProcess = "inprocess"
	PipelineModeAsynq     = "asynq"
)

// Config holds all application configuration. It is loaded once at startup and
// passed by value into the components that need it.
type Config struct {
	Database   DatabaseConfig
	Auth       AuthConfig
	Server     ServerConfig
	Transcribe TranscribeConfig
	Backboard  BackboardConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Pipeline   PipelineConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecret string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	UploadDir    string
	MaxUploadMB  int64
	UploadRPM    int
	WebAppURI    string
	IsProduction bool
}

// TranscribeConfig holds the speech-to-text subprocess settings
type TranscribeConfig struct {
	PythonPath string
	ScriptPath string
	Timeout    time.Duration
}

// BackboardConfig holds the remote analysis service settings. An empty BaseURL
// or APIKey leaves the service unconfigured and the pipeline falls back to heuristics.
type BackboardConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	LockTTL  time.Duration
}

// Addr returns the host:port pair for Redis clients
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// KafkaConfig holds Kafka/event streaming configuration
type KafkaConfig struct {
	Enabled bool
	Brokers string
	Topic   string
}

// PipelineConfig controls how call processing jobs are dispatched
type PipelineConfig struct {
	Mode      string
	Workers   int
	QueueSize int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			log.Printf("env.local not loaded: %v", err)
		}
	}

	cfg := &Config{}

	// Database configuration
	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	// Auth configuration
	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}

	// Server configuration
	if cfg.Server.Port, err = getIntWithDefault("SERVER_PORT", 8080); err != nil {
		return nil, err
	}
	cfg.Server.UploadDir = getEnvWithDefault("UPLOAD_DIR", "./uploads")
	maxUpload, err := getIntWithDefault("MAX_UPLOAD_MB", 200)
	if err != nil {
		return nil, err
	}
	cfg.Server.MaxUploadMB = int64(maxUpload)
	if cfg.Server.UploadRPM, err = getIntWithDefault("UPLOAD_RATE_LIMIT_PER_MIN", 20); err != nil {
		return nil, err
	}
	cfg.Server.WebAppURI = getEnvWithDefault("WEBAPP_URI", "http://localhost:3000")
	cfg.Server.IsProduction = os.Getenv("GO_ENV") == "production"

	// Transcription subprocess
	cfg.Transcribe.PythonPath = getEnvWithDefault("PYTHON_PATH", "python3")
	cfg.Transcribe.ScriptPath = getEnvWithDefault("TRANSCRIBE_SCRIPT", "ai/transcribe.py")
	if cfg.Transcribe.Timeout, err = getDurationWithDefault("TRANSCRIBE_TIMEOUT", 15*time.Minute); err != nil {
		return nil, err
	}

	// Remote analysis
	cfg.Backboard.BaseURL = os.Getenv("BACKBOARD_BASE_URL")
	cfg.Backboard.APIKey = os.Getenv("BACKBOARD_API_KEY")
	cfg.Backboard.Model = getEnvWithDefault("BACKBOARD_MODEL", "gpt-4o-mini")
	cfg.Backboard.Timeout = 60 * time.Second

	// Redis configuration
	cfg.Redis.Enabled = getEnvWithDefault("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	if cfg.Redis.Port, err = getIntWithDefault("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = getIntWithDefault("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Redis.LockTTL, err = getDurationWithDefault("CALL_LOCK_TTL", 30*time.Minute); err != nil {
		return nil, err
	}

	// Kafka configuration
	cfg.Kafka.Enabled = getEnvWithDefault("KAFKA_ENABLED", "false") == "true"
	if cfg.Kafka.Enabled {
		if cfg.Kafka.Brokers, err = requireEnv("KAFKA_BROKERS"); err != nil {
			return nil, err
		}
	}
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "call-events")

	// Pipeline dispatch
	cfg.Pipeline.Mode = getEnvWithDefault("PIPELINE_MODE", PipelineModeInProcess)
	if cfg.Pipeline.Mode != PipelineModeInProcess && cfg.Pipeline.Mode != PipelineModeAsynq {
		return nil, fmt.Errorf("invalid PIPELINE_MODE %q", cfg.Pipeline.Mode)
	}
	if cfg.Pipeline.Mode == PipelineModeAsynq && !cfg.Redis.Enabled {
		return nil, fmt.Errorf("PIPELINE_MODE=asynq requires REDIS_ENABLED=true")
	}
	if cfg.Pipeline.Workers, err = getIntWithDefault("PIPELINE_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.Pipeline.QueueSize, err = getIntWithDefault("PIPELINE_QUEUE_SIZE", 100); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}

func getDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}
