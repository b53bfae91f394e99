package config

import (
	"fmt"
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nstepanov-hw/shop-api/internal/models"
)

type Config struct {
	HTTP_ADDR     string
	LOG_LEVEL     string
	DB_DRIVER     string
	DB_HOST       string
	DB_PORT       string
	DB_USER       string
	DB_PASSWORD   string
	DB_NAME       string
	SQLITE_DSN    string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string
	ES_INDEX      string
	KAFKA_ADDRESS string
	JWT_SECRET    string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_ADDR:     getenvDefault("HTTP_ADDR", ":8080"),
		LOG_LEVEL:     getenvDefault("LOG_LEVEL", "info"),
		DB_DRIVER:     getenvDefault("DB_DRIVER", "sqlite"),
		DB_HOST:       os.Getenv("DB_HOST"),
		DB_PORT:       os.Getenv("DB_PORT"),
		DB_USER:       os.Getenv("DB_USER"),
		DB_PASSWORD:   os.Getenv("DB_PASSWORD"),
		DB_NAME:       os.Getenv("DB_NAME"),
		SQLITE_DSN:    getenvDefault("SQLITE_DSN", "shop.db"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		ES_INDEX:      getenvDefault("ES_INDEX", "item"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		JWT_SECRET:    os.Getenv("JWT_SECRET"),
	}

	return config, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// InitDB opens the store database: in-process sqlite by default, postgres
// when DB_DRIVER=postgres.
func InitDB(configuration *Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch configuration.DB_DRIVER {
	case "postgres":
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			configuration.DB_USER, configuration.DB_PASSWORD,
			configuration.DB_HOST, configuration.DB_PORT, configuration.DB_NAME,
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		db, err = gorm.Open(sqlite.Open(configuration.SQLITE_DSN), &gorm.Config{})
		if err == nil {
			// a pooled in-memory sqlite gives every connection its own
			// empty database, so pin the pool to one connection
			if sqlDB, derr := db.DB(); derr == nil {
				sqlDB.SetMaxOpenConns(1)
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the database: %w", err)
	}

	if err := db.AutoMigrate(&models.Item{}, &models.Cart{}, &models.CartLine{}, &models.User{}); err != nil {
		return nil, fmt.Errorf("cannot run migrations: %w", err)
	}
	return db, nil
}
