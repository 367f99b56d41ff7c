package cli

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/cli/config"
	"github.com/secmon-lab/tierscope/pkg/controller/terminal"
	"github.com/secmon-lab/tierscope/pkg/repository/memory"
	"github.com/secmon-lab/tierscope/pkg/usecase"
	"github.com/secmon-lab/tierscope/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const defaultAdvanceDelay = 300 * time.Millisecond

func cmdAssess() *cli.Command {
	var noColor bool
	var contentCfg config.Content
	var assessmentCfg config.Assessment

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Sources:     cli.EnvVars("TIERSCOPE_NO_COLOR"),
			Destination: &noColor,
		},
	}
	flags = append(flags, contentCfg.Flags()...)
	flags = append(flags, assessmentCfg.Flags(defaultAdvanceDelay)...)

	return &cli.Command{
		Name:    "assess",
		Aliases: []string{"a"},
		Usage:   "Run the interactive questionnaire in the terminal",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := contentCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load tier content")
			}

			ucOpts, err := assessmentCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure assessments")
			}

			var viewOpts []terminal.ViewOption
			if noColor {
				viewOpts = append(viewOpts, terminal.WithColor(false))
			}
			view := terminal.NewView(c.Root().Writer, viewOpts...)

			ucOpts = append(ucOpts,
				usecase.WithContentCatalog(catalog),
				usecase.WithView(view),
			)
			uc := usecase.New(memory.New(), ucOpts...)

			snap, err := terminal.NewSession(uc.Assessment, view, c.Root().Reader).Run(ctx)
			if err != nil {
				return goerr.Wrap(err, "assessment session failed")
			}

			logging.Default().Debug("Assessment session ended",
				"assessment_id", snap.ID,
				"step", snap.StepName,
				"content", contentCfg,
				"assessment", assessmentCfg,
			)
			return nil
		},
	}
}
