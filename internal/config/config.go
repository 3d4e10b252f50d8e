package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"alfredoptarigan/resumate/internal/logger"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	OpenRouter   OpenRouterConfig
	Gemini       GeminiConfig
	Orchestrator OrchestratorConfig
	Storage      StorageConfig
	Worker       WorkerConfig
	Render       RenderConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type OpenRouterConfig struct {
	BaseURL           string
	Referer           string
	Title             string
	RequestsPerMinute int
}

type GeminiConfig struct {
	APIKey string
}

type OrchestratorConfig struct {
	MaxRetries  int
	RetryWait   time.Duration
	TokenBudget int
	ModelsFile  string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency int
	QueueSize   int
}

type RenderConfig struct {
	ChromePath string
	Timeout    time.Duration
}

// Load reads the environment (and an optional .env file) into a Config.
// The OpenRouter credential is not part of Config: it is read at call time.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Get().Info("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resumate"),
		},
		OpenRouter: OpenRouterConfig{
			BaseURL:           getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Referer:           getEnv("OPENROUTER_REFERER", "http://localhost:8501"),
			Title:             getEnv("OPENROUTER_TITLE", "ResuMate Pro"),
			RequestsPerMinute: getEnvAsInt("OPENROUTER_RPM", 0),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Orchestrator: OrchestratorConfig{
			MaxRetries:  getEnvAsInt("MAX_RETRIES", 2),
			RetryWait:   getEnvAsDuration("RETRY_WAIT", "1s"),
			TokenBudget: getEnvAsInt("TOKEN_BUDGET", 3000),
			ModelsFile:  getEnv("MODELS_FILE", "configs/models.yaml"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 2),
			QueueSize:   getEnvAsInt("WORKER_QUEUE_SIZE", 100),
		},
		Render: RenderConfig{
			ChromePath: getEnv("CHROME_PATH", ""),
			Timeout:    getEnvAsDuration("RENDER_TIMEOUT", "60s"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
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
