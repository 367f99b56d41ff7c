package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Assessment holds questionnaire behavior settings
type Assessment struct {
	strict bool
	delay  time.Duration
}

// Flags returns CLI flags for assessment configuration. defaultDelay is the
// pause before an auto-advanced step is shown.
func (x *Assessment) Flags(defaultDelay time.Duration) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "Reject unset or unrecognized answers instead of scoring them with the lowest weight",
			Sources:     cli.EnvVars("TIERSCOPE_STRICT"),
			Destination: &x.strict,
		},
		&cli.DurationFlag{
			Name:        "advance-delay",
			Usage:       "Pause before showing the next step after an answer",
			Value:       defaultDelay,
			Sources:     cli.EnvVars("TIERSCOPE_ADVANCE_DELAY"),
			Destination: &x.delay,
		},
	}
}

// LogValue implements slog.LogValuer
func (x Assessment) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("strict", x.strict),
		slog.Duration("advance_delay", x.delay),
	)
}

// Strict reports whether strict validation is enabled
func (x *Assessment) Strict() bool {
	return x.strict
}

// Configure returns use case options for the configured behavior
func (x *Assessment) Configure() ([]usecase.Option, error) {
	if x.delay < 0 {
		return nil, goerr.Wrap(ErrInvalidAdvanceTime, "invalid advance delay", goerr.V(DelayKey, x.delay))
	}

	return []usecase.Option{
		usecase.WithStrictValidation(x.strict),
		usecase.WithDelay(usecase.FixedDelay(x.delay)),
	}, nil
}
