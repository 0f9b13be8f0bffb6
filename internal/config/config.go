package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Gemini    GeminiConfig
	Speech    SpeechConfig
	Mail      MailConfig
	Qdrant    QdrantConfig
	Storage   StorageConfig
	Worker    WorkerConfig
	Screening ScreeningConfig
	Interview InterviewConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	BaseURL  string
	LogJSON  bool
	LogDebug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GeminiConfig struct {
	APIKey string
	// FastModel handles high-volume screening calls, QualityModel drives the
	// interview conversation and final reports.
	FastModel    string
	QualityModel string
	EmbedModel   string
}

type SpeechConfig struct {
	APIKey string
	Region string
	Voice  string
	// Language is used for both recognition and synthesis.
	Language string
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency      int
	RetryMaxAttempts int
	PollInterval     time.Duration
}

type ScreeningConfig struct {
	ShortlistThreshold int
}

type InterviewConfig struct {
	MaxDuration time.Duration
	MaxTurns    int
	AnswerTime  time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "3000"),
			Env:      getEnv("ENV", "development"),
			BaseURL:  getEnv("BASE_URL", "http://localhost:3000"),
			LogJSON:  getEnvAsBool("LOG_JSON", false),
			LogDebug: getEnvAsBool("LOG_DEBUG", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "recruitment_system"),
		},
		Gemini: GeminiConfig{
			APIKey:       getEnv("GEMINI_API_KEY", ""),
			FastModel:    getEnv("GEMINI_FAST_MODEL", "gemini-2.5-flash"),
			QualityModel: getEnv("GEMINI_QUALITY_MODEL", "gemini-2.5-pro"),
			EmbedModel:   getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		},
		Speech: SpeechConfig{
			APIKey:   getEnv("SPEECH_API_KEY", ""),
			Region:   getEnv("SPEECH_REGION", "eastus"),
			Voice:    getEnv("SPEECH_VOICE", "en-US-AriaNeural"),
			Language: getEnv("SPEECH_LANGUAGE", "en-US"),
		},
		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "candidate_resumes"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:      getEnvAsInt("WORKER_CONCURRENCY", 8),
			RetryMaxAttempts: getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			PollInterval:     getEnvAsDuration("WORKER_POLL_INTERVAL", "10s"),
		},
		Screening: ScreeningConfig{
			ShortlistThreshold: getEnvAsInt("SHORTLIST_THRESHOLD", 60),
		},
		Interview: InterviewConfig{
			MaxDuration: getEnvAsDuration("INTERVIEW_MAX_DURATION", "8m"),
			MaxTurns:    getEnvAsInt("INTERVIEW_MAX_TURNS", 12),
			AnswerTime:  getEnvAsDuration("INTERVIEW_ANSWER_TIME", "90s"),
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
