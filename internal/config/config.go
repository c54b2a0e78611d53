package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Tier     TierConfig
	Capacity CapacityConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// LogConfig selects the zap level and encoder. Format is "json" for
// production output or "console" for local development.
type LogConfig struct {
	Level  string
	Format string
}

// TierConfig holds the revenue thresholds that promote a master to a wider
// visibility window, in whole currency units.
type TierConfig struct {
	AverageCheckThreshold int64
	DailyRevenueThreshold int64
	NetTurnoverThreshold  int64
}

type CapacityConfig struct {
	BusyPercentThreshold float64
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("SERVER_IDLE_TIMEOUT", "30s")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "fieldops")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "fieldops")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("TIER_AVERAGE_CHECK_THRESHOLD", 65000)
	viper.SetDefault("TIER_DAILY_REVENUE_THRESHOLD", 350000)
	viper.SetDefault("TIER_NET_TURNOVER_THRESHOLD", 1500000)
	viper.SetDefault("CAPACITY_BUSY_PERCENT", 70.0)

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("SERVER_PORT"),
			ReadTimeout:  viper.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:  viper.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Tier: TierConfig{
			AverageCheckThreshold: viper.GetInt64("TIER_AVERAGE_CHECK_THRESHOLD"),
			DailyRevenueThreshold: viper.GetInt64("TIER_DAILY_REVENUE_THRESHOLD"),
			NetTurnoverThreshold:  viper.GetInt64("TIER_NET_TURNOVER_THRESHOLD"),
		},
		Capacity: CapacityConfig{
			BusyPercentThreshold: viper.GetFloat64("CAPACITY_BUSY_PERCENT"),
		},
	}

	return cfg, nil
}
