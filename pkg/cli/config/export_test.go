package config

import (
	"log/slog"
	"time"
)

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// BuildLogger exposes logger construction without replacing the default
func BuildLogger(x *Logger) (*slog.Logger, func(), error) {
	return x.build()
}

// NewContentForTest creates a Content config for testing purposes
func NewContentForTest(path string) *Content {
	return &Content{path: path}
}

// NewAssessmentForTest creates an Assessment config for testing purposes
func NewAssessmentForTest(strict bool, delay time.Duration) *Assessment {
	return &Assessment{
		strict: strict,
		delay:  delay,
	}
}

// NewSentryForTest creates a Sentry config for testing purposes
func NewSentryForTest(dsn, env string) *Sentry {
	return &Sentry{
		dsn: dsn,
		env: env,
	}
}
