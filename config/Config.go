package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port           string
	BaseURL        string
	MongoURI       string
	DBName         string
	RedisAddr      string
	RedisPassword  string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	SecretKey      string
	TokenTTL       time.Duration
	FeedCacheTTL   time.Duration
	DefaultDp      string
	DefaultCover   string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	return &Config{
		Port:           getenv("PORT", "8080"),
		BaseURL:        getenv("BASE_URL", "http://localhost:8080"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getenv("DB_NAME", "picstream"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "picstream-images"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
		SecretKey:      getenv("SECRET_KEY", ""),
		TokenTTL:       time.Duration(getenvInt("TOKEN_TTL_DAYS", 20)) * 24 * time.Hour,
		FeedCacheTTL:   time.Duration(getenvInt("FEED_CACHE_TTL_SECONDS", 120)) * time.Second,
		DefaultDp:      getenv("DEFAULT_DP", "https://cdn-icons-png.flaticon.com/128/12225/12225935.png"),
		DefaultCover:   getenv("DEFAULT_COVER", "https://cdn-icons-png.flaticon.com/128/4131/4131708.png"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
