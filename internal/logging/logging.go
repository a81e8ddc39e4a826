// Package logging builds the zap loggers used across the module.
//
// LOG_FORMAT=development selects a colored console encoder at debug level;
// anything else selects JSON at info level. LOG_LEVEL overrides the level and
// also accepts "warning". Output goes to stderr.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var root = zap.Must(NewConfig().Build())

// NewConfig returns the zap configuration described by the environment.
// Sampling is always disabled so that every warning reaches the output.
func NewConfig() zap.Config {
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding:         "json",
		EncoderConfig:    encoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	if os.Getenv("LOG_FORMAT") == "development" {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.Development = true
		config.DisableStacktrace = true
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.NameKey = ""
	}

	if lvl, ok := levelFromEnv(); ok {
		config.Level = lvl
	}
	return config
}

func levelFromEnv() (zap.AtomicLevel, bool) {
	raw, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		return zap.AtomicLevel{}, false
	}
	if strings.EqualFold(raw, "warning") {
		raw = "warn"
	}
	lvl, err := zap.ParseAtomicLevel(raw)
	if err != nil {
		return zap.AtomicLevel{}, false
	}
	return lvl, true
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "severity",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// New returns the module logger named after the calling component.
func New(name string) *zap.Logger {
	return root.Named(name)
}
