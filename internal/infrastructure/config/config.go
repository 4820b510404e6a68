package config

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Uploads UploadConfig
	Minio   MinioConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// UploadConfig selects where uploaded assets live. Backend is "disk" or
// "minio"; PublicPrefix is the URL path assets are served under.
type UploadConfig struct {
	Backend      string `env:"UPLOAD_BACKEND,       default=disk"`
	Dir          string `env:"UPLOAD_DIR,           default=uploads"`
	PublicPrefix string `env:"UPLOAD_PUBLIC_PREFIX, default=/uploads"`
}

type MinioConfig struct {
	Endpoint      string `env:"MINIO_ENDPOINT"`
	AccessKey     string `env:"MINIO_ACCESS_KEY"`
	SecretKey     string `env:"MINIO_SECRET_KEY"`
	Bucket        string `env:"MINIO_BUCKET, default=marketplace-uploads"`
	UseSSL        bool   `env:"MINIO_USE_SSL, default=false"`
	PublicBaseURL string `env:"MINIO_PUBLIC_BASE_URL"`
}

// Load reads configuration from environment variables using go-envconfig.
// In development a .env file is loaded first, when present.
func Load() *Config {
	if os.Getenv("ENV") == "" || os.Getenv("ENV") == "development" {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
