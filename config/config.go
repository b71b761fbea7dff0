package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Provider  ProviderConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// ProviderConfig selects and configures the spot price provider.
type ProviderConfig struct {
	Name             string // goldapi or metalpriceapi
	GoldAPIKey       string
	GoldAPIBaseURL   string
	GoldAPIFallbacks []string
	MetalPriceAPIKey string
	MetalPriceAPIURL string
	Timeout          time.Duration
	RetryAttempts    int
}

type SchedulerConfig struct {
	Enabled  bool
	CronSpec string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "jewellery_pricing"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Provider: ProviderConfig{
			Name:             getEnv("PRICE_PROVIDER", "goldapi"),
			GoldAPIKey:       getEnv("GOLDAPI_KEY", ""),
			GoldAPIBaseURL:   getEnv("GOLDAPI_BASE_URL", "https://api.gold-api.com/price"),
			GoldAPIFallbacks: parseSlice(getEnv("GOLDAPI_FALLBACK_BASE_URLS", "")),
			MetalPriceAPIKey: getEnv("METALPRICEAPI_KEY", ""),
			MetalPriceAPIURL: getEnv("METALPRICEAPI_URL", "https://api.metalpriceapi.com/v1/latest"),
			Timeout:          parseDuration(getEnv("PROVIDER_TIMEOUT", "10s")),
			RetryAttempts:    parseInt(getEnv("PROVIDER_RETRY_ATTEMPTS", "2")),
		},
		Scheduler: SchedulerConfig{
			Enabled:  getEnv("PRICE_REFRESH_ENABLED", "true") == "true",
			CronSpec: getEnv("PRICE_REFRESH_CRON", "0 * * * *"),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 10s", s)
		return 10 * time.Second
	}
	return duration
}

func parseInt(s string) int {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 0 {
		return 2
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for i := 0; i < len(s); {
		end := i
		for end < len(s) && s[end] != ',' {
			end++
		}
		result = append(result, s[i:end])
		i = end + 1
	}
	return result
}
