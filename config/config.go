package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Provider     ProviderConfig     `yaml:"provider"`
	Redis        RedisConfig        `yaml:"redis"`
	Kafka        KafkaConfig        `yaml:"kafka"`
	Ledger       LedgerConfig       `yaml:"ledger"`
	Availability AvailabilityConfig `yaml:"availability"`
}

type HTTPConfig struct {
	Address   string `yaml:"address"`
	StaticDir string `yaml:"static_dir"`
}

type ProviderConfig struct {
	BaseURL      string `yaml:"base_url"`
	CompanyLogin string `yaml:"company_login"`
	APIKey       string `yaml:"api_key"`
	MockMode     bool   `yaml:"mock_mode"`
}

// Mock reports whether the process runs against canned data instead of the
// provider. Missing credentials force mock mode regardless of the flag.
func (p ProviderConfig) Mock() bool {
	return p.MockMode || p.CompanyLogin == "" || p.APIKey == ""
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers      []string `yaml:"brokers"`
	BookingTopic string   `yaml:"booking_topic"`
	GroupID      string   `yaml:"group_id"`
}

type LedgerConfig struct {
	Path string `yaml:"path"`
}

type AvailabilityConfig struct {
	CatalogCacheTTL int `yaml:"catalog_cache_ttl_seconds"`
	MaxFetches      int `yaml:"max_concurrent_fetches"`
}

// LoadConfig reads the yaml config at path and applies environment overrides.
// A missing file is not an error: the service can start on env vars alone.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		HTTP:         HTTPConfig{Address: ":3000"},
		Provider:     ProviderConfig{BaseURL: "https://user-api.simplybook.me"},
		Ledger:       LedgerConfig{Path: "bookings.json"},
		Availability: AvailabilityConfig{CatalogCacheTTL: 300, MaxFetches: 8},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if v := os.Getenv("SIMPLYBOOK_COMPANY_LOGIN"); v != "" {
		cfg.Provider.CompanyLogin = v
	}
	if v := os.Getenv("SIMPLYBOOK_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if os.Getenv("MOCK_MODE") == "true" {
		cfg.Provider.MockMode = true
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("BOOKINGS_FILE"); v != "" {
		cfg.Ledger.Path = v
	}

	return cfg, nil
}
