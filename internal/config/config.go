// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Bot       BotConfig       `mapstructure:"bot"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Whitelist WhitelistConfig `mapstructure:"whitelist"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Games     GamesConfig     `mapstructure:"games"`
	Gacha     GachaConfig     `mapstructure:"gacha"`
	Daily     DailyConfig     `mapstructure:"daily"`
}

// AdminConfig holds the user IDs allowed to run admin commands.
type AdminConfig struct {
	IDs []int64 `mapstructure:"ids"`
}

// BotConfig holds Telegram bot configuration.
type BotConfig struct {
	Token string `mapstructure:"token"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// WhitelistConfig holds chat whitelist configuration.
type WhitelistConfig struct {
	Chats []int64 `mapstructure:"chats"`
}

// GamesConfig holds game-specific configuration.
type GamesConfig struct {
	Blackjack BlackjackConfig `mapstructure:"blackjack"`
	HighLow   HighLowConfig   `mapstructure:"highlow"`
	Slots     SlotsConfig     `mapstructure:"slots"`
}

// BlackjackConfig holds blackjack table configuration.
type BlackjackConfig struct {
	MinBet int64 `mapstructure:"min_bet"`
	MaxBet int64 `mapstructure:"max_bet"`
}

// HighLowConfig holds high-low table configuration.
type HighLowConfig struct {
	MinBet int64 `mapstructure:"min_bet"`
	MaxBet int64 `mapstructure:"max_bet"`
}

// SlotsConfig holds slot machine configuration.
type SlotsConfig struct {
	MinBet     int64 `mapstructure:"min_bet"`
	MaxBet     int64 `mapstructure:"max_bet"`
	SpinFrames int   `mapstructure:"spin_frames"`
}

// GachaConfig holds item roll configuration.
type GachaConfig struct {
	RollCost    int64 `mapstructure:"roll_cost"`
	MaxRolls    int   `mapstructure:"max_rolls"`
	CombineCost int64 `mapstructure:"combine_cost"`
}

// DailyConfig holds daily submission reward configuration.
type DailyConfig struct {
	Reward int64 `mapstructure:"reward"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the config directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variables use underscore separator and uppercase
	// e.g., BOT_TOKEN, DATABASE_HOST, DATABASE_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not found is OK, env vars can provide all config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "casinobot")
	v.SetDefault("database.name", "casinobot")
	v.SetDefault("database.pool_size", 20)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	// Game defaults
	v.SetDefault("games.blackjack.min_bet", 1)
	v.SetDefault("games.blackjack.max_bet", 1000)
	v.SetDefault("games.highlow.min_bet", 1)
	v.SetDefault("games.highlow.max_bet", 1000)
	v.SetDefault("games.slots.min_bet", 1)
	v.SetDefault("games.slots.max_bet", 1000)
	v.SetDefault("games.slots.spin_frames", 15)

	// Gacha defaults
	v.SetDefault("gacha.roll_cost", 1)
	v.SetDefault("gacha.max_rolls", 50)
	v.SetDefault("gacha.combine_cost", 10)

	// Daily submission defaults
	v.SetDefault("daily.reward", 1)
}

// IsAdmin checks if a user ID is in the admin list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Admin.IDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsChatAllowed checks if a chat ID is in the whitelist.
func (c *Config) IsChatAllowed(chatID int64) bool {
	// Empty whitelist means all chats are allowed
	if len(c.Whitelist.Chats) == 0 {
		return true
	}
	for _, id := range c.Whitelist.Chats {
		if id == chatID {
			return true
		}
	}
	return false
}
