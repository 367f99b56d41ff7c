package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/secmon-lab/tierscope/pkg/utils/logging"
	"github.com/secmon-lab/tierscope/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// Logger holds configuration for the process-wide slog logger
type Logger struct {
	level  string
	format string
	output string
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Flags returns CLI flags for logger configuration
func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Aliases:     []string{"l"},
			Usage:       "Log level [debug|info|warn|error]",
			Value:       "info",
			Category:    "Logging",
			Sources:     cli.EnvVars("TIERSCOPE_LOG_LEVEL"),
			Destination: &x.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format [console|json]",
			Value:       "console",
			Category:    "Logging",
			Sources:     cli.EnvVars("TIERSCOPE_LOG_FORMAT"),
			Destination: &x.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output [stdout|stderr|file path]",
			Value:       "stderr",
			Category:    "Logging",
			Sources:     cli.EnvVars("TIERSCOPE_LOG_OUTPUT"),
			Destination: &x.output,
		},
	}
}

// LogValue implements slog.LogValuer
func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
	)
}

// Configure builds the logger from the flags and installs it as the default.
// The returned function closes the log file when output is a path.
func (x *Logger) Configure() (func(), error) {
	logger, closer, err := x.build()
	if err != nil {
		return nil, err
	}
	logging.SetDefault(logger)
	return closer, nil
}

func (x *Logger) build() (*slog.Logger, func(), error) {
	level, ok := logLevels[strings.ToLower(x.level)]
	if !ok {
		return nil, nil, goerr.Wrap(ErrInvalidLogLevel, "unknown log level", goerr.V(LevelKey, x.level))
	}

	var w io.Writer
	closer := func() {}
	tty := false
	switch x.output {
	case "stdout", "-":
		w, tty = os.Stdout, true
	case "", "stderr":
		w, tty = os.Stderr, true
	default:
		// #nosec G304 - path is provided by CLI argument
		f, err := os.OpenFile(x.output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to open log file", goerr.V(ConfigPathKey, x.output))
		}
		w = f
		closer = func() { safe.Close(context.Background(), f) }
	}

	filter := masq.New(
		masq.WithTag("secret"),
		masq.WithFieldName("DSN"),
		masq.WithFieldName("Token"),
	)

	var handler slog.Handler
	switch x.format {
	case "", "console":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
			clog.WithSource(true),
			clog.WithColor(tty && !color.NoColor),
		)
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: filter,
		})
	default:
		closer()
		return nil, nil, goerr.Wrap(ErrInvalidLogFormat, "unknown log format", goerr.V(FormatKey, x.format))
	}

	return slog.New(handler), closer, nil
}
