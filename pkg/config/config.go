package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Optimization
	MaxLineups          int `mapstructure:"MAX_LINEUPS"`
	OptimizationTimeout int `mapstructure:"OPTIMIZATION_TIMEOUT"` // seconds
	SalaryCapCents      int `mapstructure:"SALARY_CAP_CENTS"`

	// Result cache
	CacheTTLMinutes int `mapstructure:"CACHE_TTL_MINUTES"`

	// Rate limiting
	RateLimitRPS int `mapstructure:"RATE_LIMIT_RPS"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("MAX_LINEUPS", 150)
	viper.SetDefault("OPTIMIZATION_TIMEOUT", 90)
	viper.SetDefault("SALARY_CAP_CENTS", 5000000) // $50,000 DraftKings cap
	viper.SetDefault("CACHE_TTL_MINUTES", 10)
	viper.SetDefault("RATE_LIMIT_RPS", 5)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
