// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Lock behavior
	Lock LockConfig `mapstructure:"lock"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// LockConfig contains the confinement behavior settings
type LockConfig struct {
	// PollInterval is the sampling period of the foreground-window poll.
	PollInterval time.Duration `mapstructure:"poll_interval"`

	// GracePeriod is how long confinement survives after its trigger
	// condition stops holding. Coupled to PollInterval: the machine runs
	// on ticks, so the effective grace is rounded to whole intervals.
	GracePeriod time.Duration `mapstructure:"grace_period"`

	// Tolerance is the slack, in pixels, when comparing a window's
	// geometry to its monitor's.
	Tolerance int32 `mapstructure:"tolerance"`

	// SwitcherClasses are extra window class tags treated as the window
	// switcher, on top of the platform built-ins.
	SwitcherClasses []string `mapstructure:"switcher_classes"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Lock: LockConfig{
			PollInterval:    100 * time.Millisecond,
			GracePeriod:     5 * time.Second,
			Tolerance:       5,
			SwitcherClasses: []string{},
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("cursorfence")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cursorfence"))
		}
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	// Set defaults - need to set individual fields for proper merging
	viper.SetDefault("lock.poll_interval", DefaultConfig.Lock.PollInterval)
	viper.SetDefault("lock.grace_period", DefaultConfig.Lock.GracePeriod)
	viper.SetDefault("lock.tolerance", DefaultConfig.Lock.Tolerance)
	viper.SetDefault("lock.switcher_classes", DefaultConfig.Lock.SwitcherClasses)
	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "cursorfence.toml"
	}
	return filepath.Join(home, ".config", "cursorfence", "cursorfence.toml")
}

// GraceTicks converts the grace period into whole poll intervals. A grace
// period shorter than one interval still yields one tick of tolerance.
func (l LockConfig) GraceTicks() int {
	if l.PollInterval <= 0 {
		return 1
	}
	ticks := int(l.GracePeriod / l.PollInterval)
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}
