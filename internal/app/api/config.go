package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.temporal.io/sdk/client"

	storedomain "github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	LogLevel          string
	Environment       string
	// Tax is parsed once from TAX_PERCENTAGE and applied to every price.
	Tax storedomain.TaxFactor
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		LogLevel:          envDefault("LOG_LEVEL", "info"),
		Environment:       envDefault("ENVIRONMENT", "local"),
		Tax:               storedomain.DefaultTaxFactor(),
	}
	if raw := strings.TrimSpace(os.Getenv("TAX_PERCENTAGE")); raw != "" {
		pct, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("TAX_PERCENTAGE must be a number: %w", err)
		}
		tax, err := storedomain.NewTaxFactor(pct)
		if err != nil {
			return Config{}, fmt.Errorf("TAX_PERCENTAGE: %w", err)
		}
		cfg.Tax = tax
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
