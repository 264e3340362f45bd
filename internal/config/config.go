package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode            string        `mapstructure:"mode"`
	LogLevel        string        `mapstructure:"log_level"`
	TCPAddr         string        `mapstructure:"tcp_addr"`
	HTTPAddr        string        `mapstructure:"http_addr"`
	DefaultRoom     string        `mapstructure:"default_room"`
	MaxLineLen      int           `mapstructure:"max_line_len"`
	MaxOutboundLen  int           `mapstructure:"max_outbound_len"`
	RoomCapacity    int           `mapstructure:"room_capacity"`
	MaxNameAttempts int           `mapstructure:"max_name_attempts"`
	RenameMode      string        `mapstructure:"rename_mode"`
	LagPolicy       string        `mapstructure:"lag_policy"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	WSReadLimit     int64         `mapstructure:"ws_read_limit"`
	DrainBatch      int           `mapstructure:"drain_batch"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("tcp_addr", ":8080")
	v.SetDefault("http_addr", ":8081")
	v.SetDefault("default_room", "main")
	v.SetDefault("max_line_len", 400)
	v.SetDefault("max_outbound_len", 500)
	v.SetDefault("room_capacity", 1024)
	v.SetDefault("max_name_attempts", 100000)
	v.SetDefault("rename_mode", "propagate")
	v.SetDefault("lag_policy", "resume")
	v.SetDefault("write_timeout", "5s")
	v.SetDefault("ws_read_limit", 4096)
	v.SetDefault("drain_batch", 64)
}

// Load reads config/config.<CONFIG_ENV>.yaml (dev when unset) over the
// defaults, then CHAT_* environment variables over both.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

// LoadFile is Load with an explicit file. A missing file is not an error.
func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	v.SetEnvPrefix("CHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Err(err).Msg("config file not loaded, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").
		Str("mode", cfg.Mode).
		Str("tcp", cfg.TCPAddr).
		Str("http", cfg.HTTPAddr).
		Str("room", cfg.DefaultRoom).
		Msg("config ready")
	return &cfg, nil
}

// Validate rejects limits the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.TCPAddr == "" && c.HTTPAddr == "" {
		errs = append(errs, errors.New("tcp_addr and http_addr are both empty"))
	}
	if c.MaxLineLen <= 0 {
		errs = append(errs, fmt.Errorf("max_line_len must be positive, got %d", c.MaxLineLen))
	}
	if c.MaxOutboundLen < c.MaxLineLen {
		errs = append(errs, fmt.Errorf("max_outbound_len %d is below max_line_len %d", c.MaxOutboundLen, c.MaxLineLen))
	}
	if c.RoomCapacity <= 0 {
		errs = append(errs, fmt.Errorf("room_capacity must be positive, got %d", c.RoomCapacity))
	}
	if c.MaxNameAttempts <= 0 {
		errs = append(errs, fmt.Errorf("max_name_attempts must be positive, got %d", c.MaxNameAttempts))
	}
	if c.DrainBatch <= 0 {
		errs = append(errs, fmt.Errorf("drain_batch must be positive, got %d", c.DrainBatch))
	}
	if c.WSReadLimit < int64(c.MaxLineLen) {
		errs = append(errs, fmt.Errorf("ws_read_limit %d is below max_line_len %d", c.WSReadLimit, c.MaxLineLen))
	}
	return errors.Join(errs...)
}
