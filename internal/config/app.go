package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "MINES"
	DefaultLogFile = "minesweeper.log"
)

type Config struct {
	Settings Settings
	LogFile  string
	LogLevel logrus.Level
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"rows":      c.Settings.Rows,
		"cols":      c.Settings.Cols,
		"mines":     c.Settings.Mines,
		"log_file":  c.LogFile,
		"log_level": c.LogLevel.String(),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rows", Beginner.Rows)
	v.SetDefault("cols", Beginner.Cols)
	v.SetDefault("mines", Beginner.Mines)
	v.SetDefault("log-file", DefaultLogFile)
	v.SetDefault("log-level", "info")
}

// Load resolves the configuration from, in increasing priority, defaults,
// the config file named by the "config" key, MINES_* environment variables
// and whatever has been set or bound on v directly (e.g. command line flags).
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	settings := Settings{
		Rows:  v.GetInt("rows"),
		Cols:  v.GetInt("cols"),
		Mines: v.GetInt("mines"),
	}
	if name := v.GetString("preset"); name != "" {
		var err error
		if settings, err = Preset(name); err != nil {
			return nil, err
		}
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return nil, fmt.Errorf("unable to parse log level: %w", err)
	}
	if Development() {
		level = logrus.DebugLevel
	}

	cfg := &Config{
		Settings: settings,
		LogFile:  v.GetString("log-file"),
		LogLevel: level,
	}

	return cfg, nil
}

// Development reports whether DEVELOPMENT is set to anything but "0".
func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}
