package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// System ledger codes reconciliation posts against. Each tenant's
	// registry must contain an account/journal with these codes; a missing
	// lookup at match time is a configuration error.
	BankAccountCode       string
	ReceivableAccountCode string
	BankJournalCode       string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Environment variables override .env values.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BANK_ACCOUNT_CODE", "1010")
	viper.SetDefault("RECEIVABLE_ACCOUNT_CODE", "1300")
	viper.SetDefault("BANK_JOURNAL_CODE", "BNK")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.BankAccountCode = viper.GetString("BANK_ACCOUNT_CODE")
	cfg.ReceivableAccountCode = viper.GetString("RECEIVABLE_ACCOUNT_CODE")
	cfg.BankJournalCode = viper.GetString("BANK_JOURNAL_CODE")

	return cfg, nil
}
