package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/tierscope/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Content holds the location of an optional tier content file replacing the
// built-in catalog
type Content struct {
	path string
}

// ContentFile is the on-disk layout of a tier content catalog
type ContentFile struct {
	Tiers []model.TierContent `toml:"tiers" yaml:"tiers"`
}

// Flags returns CLI flags for content configuration
func (x *Content) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "content-file",
			Aliases:     []string{"c"},
			Usage:       "Tier content catalog file (.toml, .yaml or .yml). Built-in content is used if empty",
			Sources:     cli.EnvVars("TIERSCOPE_CONTENT_FILE"),
			Destination: &x.path,
		},
	}
}

// LogValue implements slog.LogValuer
func (x Content) LogValue() slog.Value {
	if x.path == "" {
		return slog.StringValue("built-in")
	}
	return slog.StringValue(x.path)
}

// Path returns the configured file path, empty for the built-in catalog
func (x *Content) Path() string {
	return x.path
}

// Configure returns the catalog from the configured file, or the built-in
// catalog when no file is set
func (x *Content) Configure() (*model.ContentCatalog, error) {
	if x.path == "" {
		return model.DefaultContentCatalog(), nil
	}
	return LoadContentCatalog(x.path)
}

// LoadContentCatalog reads a catalog file and validates it. The format is
// chosen by file extension.
func LoadContentCatalog(path string) (*model.ContentCatalog, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "content file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read content file", goerr.V(ConfigPathKey, path))
	}

	var file ContentFile
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML content file",
				goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse YAML content file",
				goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
		}
	default:
		return nil, goerr.Wrap(ErrUnsupportedFormat, "content file must be TOML or YAML",
			goerr.V(ConfigPathKey, path), goerr.V(FormatKey, ext))
	}

	catalog, err := model.NewContentCatalog(file.Tiers...)
	if err != nil {
		return nil, goerr.Wrap(err, "content file validation failed", goerr.V(ConfigPathKey, path))
	}
	return catalog, nil
}
