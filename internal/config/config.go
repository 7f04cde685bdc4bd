package config

import (
	"log"
	"os"
	"strings"
	"time"

	"telegram-budget-bot/internal/models"

	"github.com/joho/godotenv"
)

// Storage backend names.
const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

// Config holds all configuration for the application. Categories is the
// injected vocabulary per transaction type; the tracker itself never
// hardcodes category names.
type Config struct {
	TelegramToken  string
	StorageBackend string
	LedgerFile     string
	MongoURI       string
	MongoDB        string
	SessionTimeout time.Duration
	Categories     map[string][]string
}

// Load loads configuration from environment variables
func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it.")
	}

	config := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		StorageBackend: getEnv("STORAGE_BACKEND", BackendFile),
		LedgerFile:     getEnv("LEDGER_FILE", "budget_data.json"),
		MongoURI:       os.Getenv("MONGODB_URI"),
		MongoDB:        os.Getenv("MONGODB_DB"),
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 5*time.Minute),
		Categories: map[string][]string{
			models.TypeIncome: parseCategories(os.Getenv("INCOME_CATEGORIES"), []string{
				"Salary", "Freelance", "Investments", "Gifts", "Other Income",
			}),
			models.TypeExpense: parseCategories(os.Getenv("EXPENSE_CATEGORIES"), []string{
				"Food", "Transportation", "Housing", "Entertainment", "Healthcare",
				"Utilities", "Shopping", "Education", "Other",
			}),
		},
	}

	// Validate required fields
	if config.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN not set")
	}
	if config.StorageBackend != BackendFile && config.StorageBackend != BackendMongo {
		log.Fatal("STORAGE_BACKEND must be 'file' or 'mongo'")
	}
	if config.StorageBackend == BackendMongo {
		if config.MongoURI == "" {
			log.Fatal("MONGODB_URI not set")
		}
		if config.MongoDB == "" {
			log.Fatal("MONGODB_DB not set")
		}
	}

	return config
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return d
}

// parseCategories splits a comma-separated override, falling back to the
// defaults when the variable is empty or holds only blanks.
func parseCategories(value string, defaults []string) []string {
	if strings.TrimSpace(value) == "" {
		return defaults
	}
	var categories []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			categories = append(categories, part)
		}
	}
	if len(categories) == 0 {
		return defaults
	}
	return categories
}
