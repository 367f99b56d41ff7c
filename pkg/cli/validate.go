package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/cli/config"
	"github.com/secmon-lab/tierscope/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

var errContentFileRequired = goerr.New("content file is required")

func cmdValidate() *cli.Command {
	var contentCfg config.Content

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a tier content catalog file",
		Flags:   contentCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if contentCfg.Path() == "" {
				return goerr.Wrap(errContentFileRequired, "specify --content-file")
			}

			catalog, err := contentCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "content validation failed")
			}

			logger.Info("Content validation passed", "path", contentCfg.Path())
			for _, content := range catalog.All() {
				logger.Info("Tier validated",
					"tier", content.Tier,
					"label", content.Label,
					"obligation_count", len(content.Obligations),
				)
			}
			return nil
		},
	}
}
