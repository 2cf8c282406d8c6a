package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "medlog/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server"`
	Database   sharedConfig.DatabaseConfig   `mapstructure:"database"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Auth       sharedConfig.AuthConfig       `mapstructure:"auth"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	Cookie     sharedConfig.CookieConfig     `mapstructure:"cookie"`
	Pairing    sharedConfig.PairingConfig    `mapstructure:"pairing"`
	Session    sharedConfig.SessionConfig    `mapstructure:"session"`
	RateLimit  sharedConfig.RateLimitConfig  `mapstructure:"ratelimit"`
	PhotoStore sharedConfig.PhotoStoreConfig `mapstructure:"photostore"`
	Cleanup    sharedConfig.CleanupConfig    `mapstructure:"cleanup"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("MEDLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; defaults plus environment variables are
		// enough to boot a dev instance.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "medlog_dev")
	viper.SetDefault("database.path", "medlog.db")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	viper.SetDefault("auth.password.bcrypt_cost", 12)
	viper.SetDefault("auth.jwt.access_exp_minutes", 60)

	// Redis defaults
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	// Cookie defaults: HttpOnly is always set by the cookie helpers; Secure
	// and Strict same-site are the production posture.
	viper.SetDefault("cookie.path", "/")
	viper.SetDefault("cookie.secure", true)
	viper.SetDefault("cookie.same_site", "Strict")

	// Pairing policy defaults
	viper.SetDefault("pairing.code_length", 6)
	viper.SetDefault("pairing.min_validity_minutes", 1)
	viper.SetDefault("pairing.max_validity_minutes", 60)

	// Session defaults
	viper.SetDefault("session.far_future_years", 100)

	// Rate limit defaults
	viper.SetDefault("ratelimit.pair_per_minute", 10)
	viper.SetDefault("ratelimit.pair_per_hour", 60)
	viper.SetDefault("ratelimit.login_per_minute", 10)

	// Photo store defaults
	viper.SetDefault("photostore.root_dir", "./data/photos")

	// Cleanup defaults
	viper.SetDefault("cleanup.interval_minutes", 60)
	viper.SetDefault("cleanup.session_grace_days", 30)
	viper.SetDefault("cleanup.log_retention_days", 365)
	viper.SetDefault("cleanup.code_retention_days", 7)
}
