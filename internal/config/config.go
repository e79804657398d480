package config

import (
	"errors"
	"strings"

	"github.com/ArowuTest/lottogen-backend/internal/generator"
	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Admin      AdminConfig
	Generation GenerationConfig
	Prizes     PrizesConfig
	LogLevel   string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig holds Redis-specific configuration. An empty Addr keeps job
// progress in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	JobTTL   int // seconds
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// AdminConfig holds the bootstrap operator account
type AdminConfig struct {
	Email    string
	Password string
}

// GenerationConfig holds the generator guards
type GenerationConfig struct {
	FillGuard  int
	AnyOfGuard int
	NonceGuard int
}

// PrizesConfig holds the default jackpot and per-tier payout overrides
type PrizesConfig struct {
	JackpotValue float64
	Payouts      map[string]float64
}

// Load loads configuration from environment variables and config files
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "lottogen")
	v.SetDefault("Redis.Addr", "")
	v.SetDefault("Redis.Password", "")
	v.SetDefault("Redis.DB", 0)
	v.SetDefault("Redis.JobTTL", 24*60*60)
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	v.SetDefault("Admin.Email", "admin@lottogen.local")
	v.SetDefault("Admin.Password", "")
	v.SetDefault("Generation.FillGuard", generator.DefaultFillGuard)
	v.SetDefault("Generation.AnyOfGuard", generator.DefaultAnyOfGuard)
	v.SetDefault("Generation.NonceGuard", generator.DefaultNonceGuard)
	v.SetDefault("Prizes.JackpotValue", 50_000_000.0)
	v.SetDefault("LogLevel", "info")
}

// Limits returns the generator guards
func (c *Config) Limits() models.GenerationLimits {
	return models.GenerationLimits{
		FillGuard:  c.Generation.FillGuard,
		AnyOfGuard: c.Generation.AnyOfGuard,
		NonceGuard: c.Generation.NonceGuard,
	}
}

// DefaultSettings returns the settings stored when the database has none
func (c *Config) DefaultSettings() models.SystemSettings {
	var payouts map[models.PrizeTier]float64
	if len(c.Prizes.Payouts) > 0 {
		payouts = make(map[models.PrizeTier]float64, len(c.Prizes.Payouts))
		for tier, v := range c.Prizes.Payouts {
			payouts[models.PrizeTier(tier)] = v
		}
	}
	return models.SystemSettings{
		JackpotValue: c.Prizes.JackpotValue,
		Payouts:      payouts,
		Limits:       c.Limits(),
		UpdatedBy:    "config",
	}
}
