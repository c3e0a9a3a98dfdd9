package config

import (
	"github.com/joho/godotenv"
	"log"
	"os"
	"strconv"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type DB struct {
	DbHOST         string
	DbPORT         string
	DbUSER         string
	DbPASSWORD     string
	DbNAME         string
	DbSSLMODE      string
	MaxOpenConns   int
	MaxIdleConns   int
	MigrationsPath string
}

type MinIO struct {
	Enabled    bool
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type GitHub struct {
	AccessToken string
	APIURL      string
	Timeout     time.Duration
	Concurrency int
}

type Log struct {
	Level       string
	Encoding    string
	Development bool
}

type Config struct {
	ServerPort    int
	StorageDriver string
	SeedDemoData  bool
	DB            DB
	MinIO         MinIO
	GitHub        GitHub
	Log           Log
	MaxUploadSize int64
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:         getEnv("DB_HOST", "localhost"),
		DbPORT:         getEnv("DB_PORT", "5432"),
		DbUSER:         getEnv("DB_USER", "postgres"),
		DbPASSWORD:     getEnv("DB_PASSWORD", "password"),
		DbNAME:         getEnv("DB_NAME", "techblog"),
		DbSSLMODE:      getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:   getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:   getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Enabled:    getEnvBool("MINIO_ENABLED", false),
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "covers"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", ""),
	}
}

func LoadGitHub() GitHub {
	return GitHub{
		AccessToken: getEnv("GITHUB_ACCESS_TOKEN", ""),
		APIURL:      getEnv("GITHUB_API_URL", "https://api.github.com"),
		Timeout:     parseDuration(getEnv("GITHUB_TIMEOUT", "20s"), 20*time.Second),
		Concurrency: getEnvAsInt("GITHUB_SYNC_CONCURRENCY", 4),
	}
}

func LoadLog() Log {
	return Log{
		Level:       getEnv("LOG_LEVEL", "info"),
		Encoding:    getEnv("LOG_ENCODING", "json"),
		Development: getEnvBool("LOG_DEVELOPMENT", false),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:    getEnvAsInt("SERVER_PORT", 8080),
		StorageDriver: getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		SeedDemoData:  getEnvBool("SEED_DEMO_DATA", false),
		DB:            LoadDB(),
		MinIO:         LoadMinIO(),
		GitHub:        LoadGitHub(),
		Log:           LoadLog(),
		MaxUploadSize: parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}
