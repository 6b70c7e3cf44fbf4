package config

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// SetupLogging points every logger at the rotating log file. The terminal
// belongs to the renderer, so nothing is written to stderr. An empty LogFile
// silences logging altogether.
func SetupLogging(cfg *Config, loggers ...*logrus.Logger) error {
	var hook logrus.Hook
	if cfg.LogFile != "" {
		var err error
		hook, err = rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.LogFile,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      cfg.LogLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to open log file %s: %w", cfg.LogFile, err)
		}
	}

	for _, log := range loggers {
		log.SetLevel(cfg.LogLevel)
		log.SetOutput(io.Discard)
		if hook != nil {
			log.AddHook(hook)
		}
	}

	return nil
}
