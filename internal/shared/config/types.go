package config

import "fmt"

type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	// Driver selects the gorm driver: "mysql" or "sqlite".
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"` // sqlite file path
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type CookieConfig struct {
	Domain   string `mapstructure:"domain"`
	Path     string `mapstructure:"path"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
}

// PairingConfig bounds the pairing-code policy. Validity requested by an
// administrator is clamped to [MinValidityMinutes, MaxValidityMinutes].
type PairingConfig struct {
	CodeLength         int `mapstructure:"code_length"`
	MinValidityMinutes int `mapstructure:"min_validity_minutes"`
	MaxValidityMinutes int `mapstructure:"max_validity_minutes"`
}

// SessionConfig controls device session lifetime. Sessions are effectively
// non-expiring; FarFutureYears is the bounded offset used instead of a
// storage-specific maximum sentinel.
type SessionConfig struct {
	FarFutureYears int `mapstructure:"far_future_years"`
}

type RateLimitConfig struct {
	PairPerMinute  int `mapstructure:"pair_per_minute"`
	PairPerHour    int `mapstructure:"pair_per_hour"`
	LoginPerMinute int `mapstructure:"login_per_minute"`
}

type PhotoStoreConfig struct {
	RootDir string `mapstructure:"root_dir"`
}

type CleanupConfig struct {
	IntervalMinutes   int `mapstructure:"interval_minutes"`
	SessionGraceDays  int `mapstructure:"session_grace_days"`
	LogRetentionDays  int `mapstructure:"log_retention_days"`
	CodeRetentionDays int `mapstructure:"code_retention_days"`
}
