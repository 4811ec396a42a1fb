package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Backend     BackendConfig
	Pricing     PricingConfig
	Store       StoreConfig
	LogLevel    string
}

type BackendConfig struct {
	BaseURL string
}

// PricingConfig drives the derived cart totals: shipping is free above the
// threshold and a flat fee otherwise, tax is a fixed fraction of the subtotal.
type PricingConfig struct {
	FreeShippingThreshold float64
	FlatShippingFee       float64
	TaxRate               float64
}

type StoreConfig struct {
	Path string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("FREE_SHIPPING_THRESHOLD", "50000")
	viper.SetDefault("FLAT_SHIPPING_FEE", "1500")
	viper.SetDefault("TAX_RATE", "0.075")
	viper.SetDefault("STORE_PATH", "storefront.db")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "3000"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Backend: BackendConfig{
			BaseURL: getEnvOrViper("BACKEND_BASE_URL", ""),
		},
		Pricing: PricingConfig{
			FreeShippingThreshold: getFloatEnvOrViper("FREE_SHIPPING_THRESHOLD", 50000),
			FlatShippingFee:       getFloatEnvOrViper("FLAT_SHIPPING_FEE", 1500),
			TaxRate:               getFloatEnvOrViper("TAX_RATE", 0.075),
		},
		Store: StoreConfig{
			Path: getEnvOrViper("STORE_PATH", "storefront.db"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if cfg.Pricing.TaxRate < 0 || cfg.Pricing.TaxRate >= 1 {
		return nil, fmt.Errorf("TAX_RATE must be in [0, 1)")
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

func getFloatEnvOrViper(key string, defaultValue float64) float64 {
	if os.Getenv(key) != "" || viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	return defaultValue
}
