package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fintrack/internal/models"
)

const (
	DefaultPort              = "8080"
	DefaultAccessExpiryMin   = 15
	DefaultRefreshExpiryMin  = 10080 // 7 days
	DefaultUploadDir         = "uploads"
	DefaultTransactionsIndex = "transactions"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret        string
	RefreshSecret    string
	AccessExpiryMin  int
	RefreshExpiryMin int

	KafkaAddress string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	GeminiAPIKey string

	UploadDir string
	LogLevel  string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		Port: getEnv("PORT", DefaultPort),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret:        mustGetEnv("JWT_SECRET"),
		RefreshSecret:    mustGetEnv("REFRESH_SECRET"),
		AccessExpiryMin:  getEnvAsInt("ACCESS_TOKEN_EXPIRY", DefaultAccessExpiryMin),
		RefreshExpiryMin: getEnvAsInt("REFRESH_TOKEN_EXPIRY", DefaultRefreshExpiryMin),

		KafkaAddress: os.Getenv("KAFKA_ADDRESS"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    getEnv("ES_INDEX", DefaultTransactionsIndex),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		UploadDir: getEnv("UPLOAD_DIR", DefaultUploadDir),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Income{}, &models.Expense{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
