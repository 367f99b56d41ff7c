package cli

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/cli/config"
	"github.com/secmon-lab/tierscope/pkg/controller/terminal"
	"github.com/secmon-lab/tierscope/pkg/domain/model"
	"github.com/secmon-lab/tierscope/pkg/domain/types"
	"github.com/secmon-lab/tierscope/pkg/repository/memory"
	"github.com/secmon-lab/tierscope/pkg/usecase"
	"github.com/secmon-lab/tierscope/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

var errUnknownOutputFormat = goerr.New("unknown output format")

type scoreOutput struct {
	Answers model.AnswerSet `json:"answers"`
	Result  *model.Result   `json:"result"`
}

func cmdScore() *cli.Command {
	var (
		size        string
		sensitivity string
		governance  string
		flags       model.InfrastructureFlags
		strict      bool
		format      string
		noColor     bool
		contentCfg  config.Content
	)

	cmdFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "size",
			Usage:       "Entity size [small|medium|large]",
			Destination: &size,
		},
		&cli.StringFlag{
			Name:        "sensitivity",
			Usage:       "Service sensitivity [low|medium|high]",
			Destination: &sensitivity,
		},
		&cli.StringFlag{
			Name:        "governance",
			Usage:       "Governance maturity [none|basic|structured|iso]",
			Destination: &governance,
		},
		&cli.BoolFlag{
			Name:        "cloud",
			Usage:       "Core operations run on cloud services",
			Category:    "Infrastructure",
			Destination: &flags.Cloud,
		},
		&cli.BoolFlag{
			Name:        "mfa",
			Usage:       "Multi-factor authentication is enforced",
			Category:    "Infrastructure",
			Destination: &flags.MFA,
		},
		&cli.BoolFlag{
			Name:        "incident-process",
			Usage:       "A documented incident response process exists",
			Category:    "Infrastructure",
			Destination: &flags.IncidentProcess,
		},
		&cli.BoolFlag{
			Name:        "supply-chain",
			Usage:       "The organization depends on critical ICT suppliers",
			Category:    "Infrastructure",
			Destination: &flags.SupplyChain,
		},
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "Reject unrecognized answers",
			Sources:     cli.EnvVars("TIERSCOPE_STRICT"),
			Destination: &strict,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format [text|json]",
			Value:       "text",
			Destination: &format,
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Sources:     cli.EnvVars("TIERSCOPE_NO_COLOR"),
			Destination: &noColor,
		},
	}
	cmdFlags = append(cmdFlags, contentCfg.Flags()...)

	return &cli.Command{
		Name:  "score",
		Usage: "Score answers given as flags and print the tier",
		Flags: cmdFlags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if format != "text" && format != "json" {
				return goerr.Wrap(errUnknownOutputFormat, "format must be text or json", goerr.V("format", format))
			}

			catalog, err := contentCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load tier content")
			}
			uc := usecase.New(memory.New(), usecase.WithContentCatalog(catalog))

			answers := model.NewAnswerSet(size, sensitivity, flags, governance)
			result, err := uc.Content.Evaluate(answers, strict)
			if err != nil {
				return goerr.Wrap(err, "failed to score answers")
			}

			logging.Default().Debug("Answers scored",
				"answers", answers,
				"total", result.Score.Total,
				"tier", result.Tier,
			)

			w := c.Root().Writer
			if format == "json" {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(scoreOutput{Answers: answers, Result: result}); err != nil {
					return goerr.Wrap(err, "failed to write result")
				}
				return nil
			}

			viewOpts := []terminal.ViewOption{terminal.WithPrompts(false)}
			if noColor {
				viewOpts = append(viewOpts, terminal.WithColor(false))
			}
			snap := &model.AssessmentSnapshot{
				Step:     types.StepResults,
				StepName: types.StepResults.Name(),
				Answers:  answers,
				Result:   result,
			}
			return terminal.NewView(w, viewOpts...).ShowResult(ctx, snap)
		},
	}
}
