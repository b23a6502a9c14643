package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs to run.
type Config struct {
	Host                      string `mapstructure:"host"`
	Port                      int    `mapstructure:"port"`
	WebsocketPort             int    `mapstructure:"websocket_port"`
	Mode                      string `mapstructure:"mode"`
	Decks                     int    `mapstructure:"decks"`
	MaxSeats                  int    `mapstructure:"max_seats"`
	MinimumBet                int    `mapstructure:"minimum_bet"`
	StartingBalance           int    `mapstructure:"starting_balance"`
	RegistrationWindowSeconds int    `mapstructure:"registration_window_seconds"`
	LogLevel                  string `mapstructure:"log_level"`
}

// Modes the server can run in: coordinated multi-seat rounds, or one
// independent solo game per connection.
const (
	ModeTable = "table"
	ModeSolo  = "solo"
)

// Load reads the configuration. With an explicit path the file must exist;
// otherwise a blackjacksrv.yaml in the working directory is picked up when
// present and defaults apply for everything else.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 9001)
	v.SetDefault("websocket_port", 0)
	v.SetDefault("mode", ModeTable)
	v.SetDefault("decks", 6)
	v.SetDefault("max_seats", 5)
	v.SetDefault("minimum_bet", 1)
	v.SetDefault("starting_balance", 100)
	v.SetDefault("registration_window_seconds", 15)
	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		v.SetConfigName("blackjacksrv")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("loading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Mode != ModeTable && c.Mode != ModeSolo {
		return fmt.Errorf("unknown mode: %q", c.Mode)
	}
	if c.Decks < 1 {
		return errors.New("decks must be at least 1")
	}
	if c.MaxSeats < 1 {
		return errors.New("max_seats must be at least 1")
	}
	if c.MinimumBet < 1 {
		return errors.New("minimum_bet must be at least 1")
	}
	return nil
}

// Addr is the TCP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WebsocketAddr is the websocket listen address, or "" when disabled.
func (c *Config) WebsocketAddr() string {
	if c.WebsocketPort <= 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Host, c.WebsocketPort)
}

// RegistrationWindow is how long a round accepts seats before starting.
func (c *Config) RegistrationWindow() time.Duration {
	return time.Duration(c.RegistrationWindowSeconds) * time.Second
}
