package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	Branded       BrandedConfig
	RawIngredient RawIngredientConfig
	Aggregator    AggregatorConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BrandedConfig holds the branded-product database (Open Food Facts)
// configuration. Credentials are only needed for product uploads.
type BrandedConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	UserID   string        `mapstructure:"user_id"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// RawIngredientConfig holds the raw-ingredient database (USDA
// FoodData Central) configuration
type RawIngredientConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// AggregatorConfig holds aggregation tuning
type AggregatorConfig struct {
	MinFoodResults int `mapstructure:"min_food_results"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutriscope/")

	v.SetEnvPrefix("NUTRISCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("branded.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("branded.timeout", "8s")
	v.SetDefault("branded.cache_ttl", "12h")

	v.SetDefault("rawingredient.api_key", "")
	v.SetDefault("rawingredient.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("rawingredient.timeout", "10s")
	v.SetDefault("rawingredient.cache_ttl", "24h")

	v.SetDefault("aggregator.min_food_results", 5)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.RawIngredient.APIKey == "" {
		return fmt.Errorf("raw-ingredient API key is required (set NUTRISCOPE_RAWINGREDIENT_API_KEY)")
	}

	if config.Branded.BaseURL == "" {
		return fmt.Errorf("branded base URL is required")
	}

	if config.Aggregator.MinFoodResults < 0 {
		return fmt.Errorf("aggregator.min_food_results must not be negative")
	}

	return nil
}
