package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// SingleInstallmentPerPayment stops payment allocation after the first
	// installment that consumes cash (one visit settles one week).
	SingleInstallmentPerPayment bool

	// Rate limiting, e.g. "100-M" for 100 requests per minute per IP.
	RateLimit string

	// Receipt dispatch
	ReceiptWorkers int
	KafkaBrokers   []string
	KafkaTopic     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("SINGLE_INSTALLMENT_PER_PAYMENT", true)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("RECEIPT_WORKERS", 4)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "payment.posted")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.SingleInstallmentPerPayment = viper.GetBool("SINGLE_INSTALLMENT_PER_PAYMENT")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.ReceiptWorkers = viper.GetInt("RECEIPT_WORKERS")
	if cfg.ReceiptWorkers <= 0 {
		cfg.ReceiptWorkers = 4
	}

	brokers := viper.GetString("KAFKA_BROKERS")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")

	return cfg, nil
}
