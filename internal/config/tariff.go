package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// TariffRate prices one service type for one rate classification.
// Amounts are in minor units (cents) per consumed unit.
type TariffRate struct {
	ServiceType    string `mapstructure:"serviceType"`
	Classification string `mapstructure:"classification"`
	RateCents      int64  `mapstructure:"rateCents"`
}

// TariffConfig drives bill computation.
type TariffConfig struct {
	Rates []TariffRate `mapstructure:"rates"`

	// MinimumChargeCents floors the per-service charge on a generated bill.
	MinimumChargeCents int64 `mapstructure:"minimumChargeCents"`
}

func DefaultTariffConfig() TariffConfig {
	return TariffConfig{
		Rates: []TariffRate{
			{ServiceType: "Electricity", Classification: "Residential", RateCents: 850},
			{ServiceType: "Electricity", Classification: "Commercial", RateCents: 1150},
			{ServiceType: "Electricity", Classification: "Industrial", RateCents: 1350},
			{ServiceType: "Electricity", Classification: "Agricultural", RateCents: 650},
			{ServiceType: "Water", Classification: "Residential", RateCents: 300},
			{ServiceType: "Water", Classification: "Commercial", RateCents: 450},
			{ServiceType: "Water", Classification: "Industrial", RateCents: 550},
			{ServiceType: "Water", Classification: "Agricultural", RateCents: 250},
			{ServiceType: "Gas", Classification: "Residential", RateCents: 600},
			{ServiceType: "Gas", Classification: "Commercial", RateCents: 750},
			{ServiceType: "Gas", Classification: "Industrial", RateCents: 900},
			{ServiceType: "Gas", Classification: "Agricultural", RateCents: 500},
			{ServiceType: "Telecom", Classification: "Residential", RateCents: 200},
			{ServiceType: "Telecom", Classification: "Commercial", RateCents: 350},
			{ServiceType: "Telecom", Classification: "Industrial", RateCents: 400},
			{ServiceType: "Telecom", Classification: "Agricultural", RateCents: 200},
		},
		MinimumChargeCents: 5000,
	}
}

// RateFor returns the configured rate for a service/classification pair,
// falling back to the service default when the pair has no entry.
func (c TariffConfig) RateFor(serviceType, classification string) (int64, bool) {
	var fallback int64
	var found bool
	for _, rate := range c.Rates {
		if !strings.EqualFold(rate.ServiceType, serviceType) {
			continue
		}
		if strings.EqualFold(rate.Classification, classification) {
			return rate.RateCents, true
		}
		if !found {
			fallback = rate.RateCents
			found = true
		}
	}
	return fallback, found
}

// TariffHolder exposes the current tariff configuration with hot reload.
type TariffHolder struct {
	current atomic.Value // holds TariffConfig
}

func NewTariffHolder(cfg Config) (*TariffHolder, error) {
	v := viper.New()

	v.SetConfigName("tariff")
	v.SetConfigType("yml")
	if cfg.TariffConfigPath != "" {
		v.AddConfigPath(cfg.TariffConfigPath)
	}
	v.AddConfigPath("/etc/griddesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GRIDDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &TariffHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultTariffConfig())
		return holder, nil
	}

	var parsed TariffConfig
	if err := v.UnmarshalKey("tariff", &parsed); err != nil {
		return nil, err
	}
	if err := validateTariffConfig(parsed); err != nil {
		return nil, err
	}
	holder.current.Store(parsed)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated TariffConfig
		if err := v.UnmarshalKey("tariff", &updated); err != nil {
			log.Printf("[tariff-config] reload failed: %v", err)
			return
		}
		if err := validateTariffConfig(updated); err != nil {
			log.Printf("[tariff-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[tariff-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *TariffHolder) Get() TariffConfig {
	return h.current.Load().(TariffConfig)
}

// NewStaticTariffHolder wraps a fixed tariff with no file watching.
func NewStaticTariffHolder(cfg TariffConfig) *TariffHolder {
	holder := &TariffHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateTariffConfig(cfg TariffConfig) error {
	if len(cfg.Rates) == 0 {
		return errors.New("tariff.rates cannot be empty")
	}
	for _, rate := range cfg.Rates {
		if rate.RateCents <= 0 {
			return errors.New("tariff.rates entries must have a positive rateCents")
		}
	}
	if cfg.MinimumChargeCents < 0 {
		return errors.New("tariff.minimumChargeCents cannot be negative")
	}
	return nil
}
