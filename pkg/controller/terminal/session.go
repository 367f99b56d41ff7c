package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/domain/model"
	"github.com/secmon-lab/tierscope/pkg/domain/types"
	"github.com/secmon-lab/tierscope/pkg/utils/logging"
)

// AssessmentUseCase is the subset of the use case layer a session drives.
// Rendering of transitions is expected to happen through the use case's view.
type AssessmentUseCase interface {
	Start(ctx context.Context) (*model.AssessmentSnapshot, error)
	SelectAnswer(ctx context.Context, id model.AssessmentID, step types.Step, value string) (*model.AssessmentSnapshot, error)
	RecordInfrastructure(ctx context.Context, id model.AssessmentID, flags model.InfrastructureFlags) (*model.AssessmentSnapshot, error)
	GoBack(ctx context.Context, id model.AssessmentID) (*model.AssessmentSnapshot, error)
	Restart(ctx context.Context, id model.AssessmentID) (*model.AssessmentSnapshot, error)
}

var errInvalidInput = goerr.New("invalid input")

// Session reads answers line by line and feeds them to one assessment
type Session struct {
	uc   AssessmentUseCase
	view *View
	in   *bufio.Scanner
}

func NewSession(uc AssessmentUseCase, view *View, in io.Reader) *Session {
	return &Session{
		uc:   uc,
		view: view,
		in:   bufio.NewScanner(in),
	}
}

// Run starts an assessment and processes input until the user quits or the
// input ends. It returns the last state of the assessment.
func (s *Session) Run(ctx context.Context) (*model.AssessmentSnapshot, error) {
	snap, err := s.uc.Start(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to start assessment")
	}

	for s.in.Scan() {
		if err := ctx.Err(); err != nil {
			return snap, err
		}

		line := strings.TrimSpace(s.in.Text())
		var next *model.AssessmentSnapshot

		switch strings.ToLower(line) {
		case "q", "quit", "exit":
			return snap, nil
		case "b", "back":
			if snap.Step == types.FirstStep {
				if err := s.view.Warn("Already at the first question."); err != nil {
					return snap, err
				}
				continue
			}
			next, err = s.uc.GoBack(ctx, snap.ID)
		case "r", "restart":
			next, err = s.uc.Restart(ctx, snap.ID)
		default:
			next, err = s.answer(ctx, snap, line)
		}

		if err != nil {
			if !isInputError(err) {
				return snap, err
			}
			logging.From(ctx).Debug("input rejected", "step", snap.Step, "error", err.Error())
			if err := s.retry(ctx, snap, err); err != nil {
				return snap, err
			}
			continue
		}
		snap = next
	}

	if err := s.in.Err(); err != nil {
		return snap, goerr.Wrap(err, "failed to read input")
	}
	return snap, nil
}

func (s *Session) answer(ctx context.Context, snap *model.AssessmentSnapshot, line string) (*model.AssessmentSnapshot, error) {
	switch {
	case snap.Step.IsSingleAnswer():
		return s.uc.SelectAnswer(ctx, snap.ID, snap.Step, resolveChoice(snap.Step, line))

	case snap.Step == types.StepInfrastructure:
		flags, err := parseFlags(line)
		if err != nil {
			return nil, err
		}
		return s.uc.RecordInfrastructure(ctx, snap.ID, flags)

	default:
		return nil, goerr.Wrap(errInvalidInput, "the assessment is complete")
	}
}

func (s *Session) retry(ctx context.Context, snap *model.AssessmentSnapshot, cause error) error {
	if err := s.view.Warn(warning(cause)); err != nil {
		return err
	}
	if snap.Step.IsTerminal() && snap.Result != nil {
		return s.view.ShowResult(ctx, snap)
	}
	return s.view.ShowStep(ctx, snap)
}

// resolveChoice maps an option number onto its value. Anything else is
// passed through as typed.
func resolveChoice(step types.Step, line string) string {
	q, ok := questions[step]
	if !ok {
		return line
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(q.options) {
		return q.options[n-1].value
	}
	return line
}

// parseFlags reads a comma or space separated list of option numbers or
// flag names. An empty line or "none" means no flag applies.
func parseFlags(line string) (model.InfrastructureFlags, error) {
	var flags model.InfrastructureFlags
	fields := strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 1 && fields[0] == "none" {
		return flags, nil
	}

	options := questions[types.StepInfrastructure].options
	for _, f := range fields {
		name := f
		if n, err := strconv.Atoi(f); err == nil {
			if n < 1 || n > len(options) {
				return flags, goerr.Wrap(errInvalidInput, "no such option", goerr.V("option", f))
			}
			name = options[n-1].value
		}

		switch name {
		case flagCloud:
			flags.Cloud = true
		case flagMFA:
			flags.MFA = true
		case flagIncident:
			flags.IncidentProcess = true
		case flagSupplyChain:
			flags.SupplyChain = true
		default:
			return flags, goerr.Wrap(errInvalidInput, "unknown infrastructure flag", goerr.V("flag", f))
		}
	}
	return flags, nil
}

func isInputError(err error) bool {
	return errors.Is(err, errInvalidInput) ||
		errors.Is(err, model.ErrInvalidTransition) ||
		errors.Is(err, model.ErrMissingAnswer) ||
		errors.Is(err, model.ErrUnknownAnswer)
}

func warning(err error) string {
	switch {
	case errors.Is(err, model.ErrMissingAnswer):
		return "Please choose one of the options."
	case errors.Is(err, model.ErrUnknownAnswer):
		return "That is not one of the options."
	case errors.Is(err, model.ErrInvalidTransition):
		return "That action is not available at this step."
	default:
		return "Could not understand the input: " + err.Error()
	}
}
