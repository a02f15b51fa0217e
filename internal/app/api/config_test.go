package api

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"

	storedomain "github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "POSTGRES_DSN", "TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED", "LOG_LEVEL", "ENVIRONMENT", "TAX_PERCENTAGE"} {
		t.Setenv(key, "")
	}
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.PostgresDSN)
	require.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	require.False(t, cfg.TemporalDisabled)
	require.Equal(t, "info", cfg.LogLevel)
	require.InDelta(t, storedomain.DefaultTaxPercentage, cfg.Tax.Percentage(), 1e-9)
}

func TestLoadConfig_TaxPercentage(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TAX_PERCENTAGE", "20")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.InDelta(t, 1.2, cfg.Tax.Multiplier(), 1e-12)

	t.Setenv("TAX_PERCENTAGE", "0")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 1.0, cfg.Tax.Multiplier())

	t.Setenv("TAX_PERCENTAGE", "-5")
	_, err = LoadConfig()
	require.ErrorIs(t, err, storedomain.ErrInvalidTax)

	t.Setenv("TAX_PERCENTAGE", "thirteen")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_Flags(t *testing.T) {
	t.Setenv("TAX_PERCENTAGE", "")
	t.Setenv("TEMPORAL_DISABLED", "Yes")
	t.Setenv("PORT", "9090")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.TemporalDisabled)
	require.Equal(t, "9090", cfg.Port)

	t.Setenv("PORT", "http")
	_, err = LoadConfig()
	require.Error(t, err)
}
