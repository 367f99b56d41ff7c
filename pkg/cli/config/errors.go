package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound     = goerr.New("configuration file not found")
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrUnsupportedFormat  = goerr.New("unsupported configuration file format")
	ErrInvalidLogLevel    = goerr.New("invalid log level")
	ErrInvalidLogFormat   = goerr.New("invalid log format")
	ErrInvalidAdvanceTime = goerr.New("advance delay must not be negative")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	FormatKey     = "format"
	LevelKey      = "level"
	DelayKey      = "delay"
)
