package configuration

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hospital-connect/models"
)

// Config is built once at startup and passed to the components needing it.
type Config struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	DatabaseDSN     string
	Port            string
}

// Load reads the configuration from the environment, after a best-effort
// .env load.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg := &Config{
		SecretKey:       os.Getenv("SECRET_KEY"),
		AccessTokenTTL:  minutesOrDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		RefreshTokenTTL: daysOrDefault("REFRESH_TOKEN_EXPIRE_DAYS", 7),
		DatabaseDSN:     os.Getenv("DATABASE_DSN"),
		Port:            os.Getenv("PORT"),
	}
	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY must be set")
	}
	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	return cfg
}

func minutesOrDefault(key string, fallback int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
		log.Printf("Invalid %s, using default", key)
	}
	return time.Duration(fallback) * time.Minute
}

func daysOrDefault(key string, fallback int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if days, err := strconv.Atoi(value); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
		log.Printf("Invalid %s, using default", key)
	}
	return time.Duration(fallback) * 24 * time.Hour
}

// ConnectDB opens the database and migrates the schema.
func ConnectDB(cfg *Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to the database: ", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Doctor{}); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	return db
}
