// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Providers ProvidersConfig
	Economy   EconomyConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type DatabaseConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	IssuerURL string
	JWKSURL   string
}

type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
	UseSSL        bool
}

type ProvidersConfig struct {
	FalKey        string
	GeminiKey     string
	ElevenLabsKey string
	ReplicateKey  string
}

// EconomyConfig is the single source of truth for CTY pricing. The client
// reads these through GET /api/v1/generate/costs instead of keeping its own
// table.
type EconomyConfig struct {
	ImageCost       int
	SoundCost       int
	LivingCost      int
	DailyClaim      int
	DailyGenLimit   int
	StartingBalance int
}

func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
			Host: getEnvOrDefault("HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URI:      os.Getenv("MONGODB_URI"),
			Database: getEnvOrDefault("MONGODB_DATABASE", "sanctra"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			IssuerURL: os.Getenv("AUTH_ISSUER_URL"),
			JWKSURL:   os.Getenv("AUTH_JWKS_URL"),
		},
		Storage: StorageConfig{
			Endpoint:      os.Getenv("STORAGE_ENDPOINT"),
			AccessKey:     os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey:     os.Getenv("STORAGE_SECRET_KEY"),
			Bucket:        getEnvOrDefault("STORAGE_BUCKET", "posts"),
			PublicBaseURL: os.Getenv("STORAGE_PUBLIC_BASE_URL"),
			UseSSL:        getEnvOrDefault("STORAGE_USE_SSL", "true") == "true",
		},
		Providers: ProvidersConfig{
			FalKey:        os.Getenv("FAL_API_KEY"),
			GeminiKey:     os.Getenv("GEMINI_API_KEY"),
			ElevenLabsKey: os.Getenv("ELEVENLABS_API_KEY"),
			ReplicateKey:  os.Getenv("REPLICATE_API_KEY"),
		},
		Economy: EconomyConfig{
			ImageCost:       getEnvAsInt("CTY_IMAGE_COST", 5),
			SoundCost:       getEnvAsInt("CTY_SOUND_COST", 8),
			LivingCost:      getEnvAsInt("CTY_LIVING_COST", 12),
			DailyClaim:      getEnvAsInt("CTY_DAILY_CLAIM", 50),
			DailyGenLimit:   getEnvAsInt("AI_DAILY_LIMIT", 10),
			StartingBalance: getEnvAsInt("CTY_STARTING_BALANCE", 50),
		},
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Database.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.Auth.IssuerURL == "" {
		return fmt.Errorf("AUTH_ISSUER_URL is required")
	}
	if c.Storage.Endpoint == "" {
		return fmt.Errorf("STORAGE_ENDPOINT is required")
	}
	if c.Storage.PublicBaseURL == "" {
		return fmt.Errorf("STORAGE_PUBLIC_BASE_URL is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
