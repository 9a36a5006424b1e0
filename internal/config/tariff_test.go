package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateForExactMatch(t *testing.T) {
	cfg := DefaultTariffConfig()

	rate, ok := cfg.RateFor("Electricity", "Commercial")
	require.True(t, ok)
	assert.EqualValues(t, 1150, rate)

	rate, ok = cfg.RateFor("telecom", "residential")
	require.True(t, ok)
	assert.EqualValues(t, 200, rate)
}

func TestRateForFallsBackToServiceDefault(t *testing.T) {
	cfg := TariffConfig{
		Rates: []TariffRate{
			{ServiceType: "Water", Classification: "Residential", RateCents: 300},
			{ServiceType: "Water", Classification: "Commercial", RateCents: 450},
		},
		MinimumChargeCents: 5000,
	}

	rate, ok := cfg.RateFor("Water", "Industrial")
	require.True(t, ok)
	assert.EqualValues(t, 300, rate)

	_, ok = cfg.RateFor("Gas", "Residential")
	assert.False(t, ok)
}

func TestValidateTariffConfig(t *testing.T) {
	assert.NoError(t, validateTariffConfig(DefaultTariffConfig()))

	assert.Error(t, validateTariffConfig(TariffConfig{}))

	assert.Error(t, validateTariffConfig(TariffConfig{
		Rates: []TariffRate{{ServiceType: "Water", Classification: "Residential", RateCents: 0}},
	}))

	assert.Error(t, validateTariffConfig(TariffConfig{
		Rates:              []TariffRate{{ServiceType: "Water", Classification: "Residential", RateCents: 300}},
		MinimumChargeCents: -1,
	}))
}

func TestStaticTariffHolder(t *testing.T) {
	holder := NewStaticTariffHolder(DefaultTariffConfig())
	assert.EqualValues(t, 5000, holder.Get().MinimumChargeCents)
}
