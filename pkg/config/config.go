package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Knowledge KnowledgeConfig
	Search    SearchConfig
	Upload    UploadConfig
	Chat      ChatConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int // bytes
}

type DatabaseConfig struct {
	Path string
}

type KnowledgeConfig struct {
	Path        string
	SeedOnStart bool
}

type SearchConfig struct {
	Enabled bool
	BaseURL string
	Timeout time.Duration
}

type UploadConfig struct {
	Dir string
}

type ChatConfig struct {
	DefaultUserID int64
	HistoryLimit  int
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "5000"),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
			BodyLimit:    getEnvInt("SERVER_BODY_LIMIT_MB", 50) * 1024 * 1024,
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "aipin.db"),
		},
		Knowledge: KnowledgeConfig{
			Path:        getEnv("KNOWLEDGE_PATH", "data/knowledge_base.json"),
			SeedOnStart: getEnvBool("KNOWLEDGE_SEED_ON_START", true),
		},
		Search: SearchConfig{
			Enabled: getEnvBool("SEARCH_ENABLED", true),
			BaseURL: getEnv("SEARCH_BASE_URL", "https://api.duckduckgo.com/"),
			Timeout: time.Duration(getEnvInt("SEARCH_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Upload: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", "uploads"),
		},
		Chat: ChatConfig{
			DefaultUserID: int64(getEnvInt("CHAT_DEFAULT_USER_ID", 1)),
			HistoryLimit:  getEnvInt("CHAT_HISTORY_LIMIT", 50),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}
