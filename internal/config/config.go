package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Printful    PrintfulConfig
	Store       StoreConfig
	API         APIConfig
	Sync        SyncConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type PrintfulConfig struct {
	APIBase  string
	APIToken string
	StoreID  string
}

// StoreConfig holds shop identity used in Printful packing slips and
// catalog defaults applied to imported products
type StoreConfig struct {
	Email          string
	LogoURL        string
	SalesChannelID string
}

type APIConfig struct {
	AdminKeyHash string
}

type SyncConfig struct {
	ImportWorkers int
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PRINTFUL_API_URL", "https://api.printful.com")
	viper.SetDefault("SYNC_IMPORT_WORKERS", "4")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	workers, err := strconv.Atoi(getEnvOrViper("SYNC_IMPORT_WORKERS", "4"))
	if err != nil || workers < 1 {
		workers = 4
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "podbridge"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Printful: PrintfulConfig{
			APIBase:  getEnvOrViper("PRINTFUL_API_URL", "https://api.printful.com"),
			APIToken: getEnvOrViper("PRINTFUL_API_TOKEN", ""),
			StoreID:  getEnvOrViper("PRINTFUL_STORE_ID", ""),
		},
		Store: StoreConfig{
			Email:          getEnvOrViper("STORE_EMAIL", "shop@sen.studio"),
			LogoURL:        getEnvOrViper("STORE_LOGO_URL", ""),
			SalesChannelID: getEnvOrViper("DEFAULT_SALES_CHANNEL_ID", ""),
		},
		API: APIConfig{
			AdminKeyHash: getEnvOrViper("ADMIN_API_KEY_HASH", ""),
		},
		Sync: SyncConfig{
			ImportWorkers: workers,
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Printful.APIToken == "" {
		return nil, fmt.Errorf("PRINTFUL_API_TOKEN is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
