package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/domain/interfaces"
	"github.com/secmon-lab/tierscope/pkg/domain/model"
	"github.com/secmon-lab/tierscope/pkg/domain/types"
)

// View renders assessments as colored text
type View struct {
	w       io.Writer
	prompts bool
	heading *color.Color
	muted   *color.Color
	marker  *color.Color
	warn    *color.Color
	badges  map[types.Tier]*color.Color
}

var _ interfaces.View = &View{}

type ViewOption func(*View)

// WithColor forces colored output on or off
func WithColor(enabled bool) ViewOption {
	return func(v *View) {
		for _, c := range v.palette() {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// WithPrompts toggles the key help printed under each screen. One-shot
// output such as the score command turns it off.
func WithPrompts(enabled bool) ViewOption {
	return func(v *View) {
		v.prompts = enabled
	}
}

func NewView(w io.Writer, opts ...ViewOption) *View {
	v := &View{
		w:       w,
		prompts: true,
		heading: color.New(color.FgCyan, color.Bold),
		muted:   color.New(color.Faint),
		marker:  color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		badges: map[types.Tier]*color.Color{
			types.TierLow:    color.New(color.FgBlack, color.BgGreen, color.Bold),
			types.TierMedium: color.New(color.FgBlack, color.BgYellow, color.Bold),
			types.TierHigh:   color.New(color.FgWhite, color.BgRed, color.Bold),
		},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *View) palette() []*color.Color {
	p := []*color.Color{v.heading, v.muted, v.marker, v.warn}
	for _, c := range v.badges {
		p = append(p, c)
	}
	return p
}

// ShowStep prints the question of the active step with the current
// selection marked
func (v *View) ShowStep(ctx context.Context, s *model.AssessmentSnapshot) error {
	q, ok := questions[s.Step]
	if !ok {
		return goerr.New("no question for step", goerr.V(model.StepKey, s.Step))
	}

	var b strings.Builder
	fmt.Fprintln(&b)
	v.heading.Fprintf(&b, "[%d/%d] %s\n", s.Step, types.StepGovernance, q.title)
	v.muted.Fprintln(&b, q.hint)

	selected := selectedValues(s)
	for i, opt := range q.options {
		mark := " "
		if selected[opt.value] {
			mark = v.marker.Sprint("*")
		}
		fmt.Fprintf(&b, " %s %d) %s\n", mark, i+1, opt.label)
	}
	if v.prompts {
		v.muted.Fprintln(&b, promptHelp(s.Step))
	}

	return v.write(b.String())
}

// ShowResult prints the tier badge and every content section, obligations
// as a numbered list in catalog order
func (v *View) ShowResult(ctx context.Context, s *model.AssessmentSnapshot) error {
	if s.Result == nil {
		return goerr.New("snapshot has no result", goerr.V(model.AssessmentKey, s.ID))
	}
	r := s.Result

	badge, ok := v.badges[r.Tier]
	if !ok {
		badge = v.heading
	}

	var b strings.Builder
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "%s %s\n", badge.Sprintf(" %s ", r.Badge.Text), v.heading.Sprint(r.Content.Title))
	v.muted.Fprintf(&b, "%s (score %d)\n", r.Content.Label, r.Score.Total)

	v.section(&b, "What this means", r.Content.Implications)

	v.heading.Fprintln(&b, "\nObligations")
	for i, o := range r.Content.Obligations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, o)
	}

	v.section(&b, "Timeline", r.Content.Timeline)
	v.section(&b, "Accountability", r.Content.Accountability)
	v.section(&b, "Positioning", r.Content.Positioning)

	if v.prompts {
		fmt.Fprintln(&b)
		v.muted.Fprintln(&b, promptHelp(types.StepResults))
	}

	return v.write(b.String())
}

// Warn prints a non-fatal problem with the last input
func (v *View) Warn(msg string) error {
	return v.write(v.warn.Sprintln(msg))
}

func (v *View) section(b *strings.Builder, title, body string) {
	v.heading.Fprintf(b, "\n%s\n", title)
	fmt.Fprintf(b, "  %s\n", body)
}

func (v *View) write(s string) error {
	if _, err := io.WriteString(v.w, s); err != nil {
		return goerr.Wrap(err, "failed to write to terminal")
	}
	return nil
}

func selectedValues(s *model.AssessmentSnapshot) map[string]bool {
	selected := map[string]bool{}
	switch s.Step {
	case types.StepEntitySize:
		selected[s.Answers.EntitySize.String()] = true
	case types.StepServiceSensitivity:
		selected[s.Answers.ServiceSensitivity.String()] = true
	case types.StepGovernance:
		selected[s.Answers.GovernanceMaturity.Normalize().String()] = true
	case types.StepInfrastructure:
		f := s.Answers.Infrastructure
		selected[flagCloud] = f.Cloud
		selected[flagMFA] = f.MFA
		selected[flagIncident] = f.IncidentProcess
		selected[flagSupplyChain] = f.SupplyChain
	}
	return selected
}

func promptHelp(step types.Step) string {
	switch step {
	case types.StepEntitySize:
		return "Enter a number, r to restart or q to quit."
	case types.StepResults:
		return "Enter b to revise the last answer, r to start over or q to quit."
	default:
		return "Enter a number, b to go back, r to restart or q to quit."
	}
}
