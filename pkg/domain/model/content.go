package model

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tierscope/pkg/domain/types"
)

// TierContent is the explanatory text shown for a tier. Obligations are
// rendered as an ordered list in the order given.
type TierContent struct {
	Tier           types.Tier `json:"tier" toml:"tier" yaml:"tier"`
	Label          string     `json:"label" toml:"label" yaml:"label"`
	Title          string     `json:"title" toml:"title" yaml:"title"`
	Implications   string     `json:"implications" toml:"implications" yaml:"implications"`
	Obligations    []string   `json:"obligations" toml:"obligations" yaml:"obligations"`
	Timeline       string     `json:"timeline" toml:"timeline" yaml:"timeline"`
	Accountability string     `json:"accountability" toml:"accountability" yaml:"accountability"`
	Positioning    string     `json:"positioning" toml:"positioning" yaml:"positioning"`
}

// Validate checks that every field of the content is filled
func (c TierContent) Validate() error {
	if !c.Tier.IsValid() {
		return goerr.Wrap(ErrInvalidCatalog, "invalid tier", goerr.V(TierKey, c.Tier))
	}

	required := []struct {
		name  string
		value string
	}{
		{"label", c.Label},
		{"title", c.Title},
		{"implications", c.Implications},
		{"timeline", c.Timeline},
		{"accountability", c.Accountability},
		{"positioning", c.Positioning},
	}
	for _, f := range required {
		if f.value == "" {
			return goerr.Wrap(ErrInvalidCatalog, "content field is empty", goerr.V(TierKey, c.Tier), goerr.V("field", f.name))
		}
	}

	if len(c.Obligations) == 0 {
		return goerr.Wrap(ErrInvalidCatalog, "at least one obligation is required", goerr.V(TierKey, c.Tier))
	}
	for i, o := range c.Obligations {
		if o == "" {
			return goerr.Wrap(ErrInvalidCatalog, "obligation is empty", goerr.V(TierKey, c.Tier), goerr.V("index", i))
		}
	}
	return nil
}

func (c TierContent) clone() TierContent {
	c.Obligations = slices.Clone(c.Obligations)
	return c
}

// ContentCatalog is the immutable tier -> content table
type ContentCatalog struct {
	entries map[types.Tier]TierContent
}

// NewContentCatalog builds a catalog. Every tier must be present exactly once.
func NewContentCatalog(contents ...TierContent) (*ContentCatalog, error) {
	entries := make(map[types.Tier]TierContent, len(contents))
	for _, c := range contents {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, exists := entries[c.Tier]; exists {
			return nil, goerr.Wrap(ErrInvalidCatalog, "duplicate tier", goerr.V(TierKey, c.Tier))
		}
		entries[c.Tier] = c.clone()
	}

	for _, tier := range types.AllTiers() {
		if _, ok := entries[tier]; !ok {
			return nil, goerr.Wrap(ErrInvalidCatalog, "tier content is missing", goerr.V(TierKey, tier))
		}
	}

	return &ContentCatalog{entries: entries}, nil
}

// Lookup returns a copy of the content for tier
func (c *ContentCatalog) Lookup(tier types.Tier) (TierContent, error) {
	content, ok := c.entries[tier]
	if !ok {
		return TierContent{}, goerr.Wrap(ErrUnknownTier, "no content for tier", goerr.V(TierKey, tier))
	}
	return content.clone(), nil
}

// All returns the content of every tier, lowest severity first
func (c *ContentCatalog) All() []TierContent {
	result := make([]TierContent, 0, len(c.entries))
	for _, tier := range types.AllTiers() {
		result = append(result, c.entries[tier].clone())
	}
	return result
}

var defaultCatalog = mustCatalog(defaultContents()...)

// DefaultContentCatalog returns the built-in catalog
func DefaultContentCatalog() *ContentCatalog {
	return defaultCatalog
}

func mustCatalog(contents ...TierContent) *ContentCatalog {
	c, err := NewContentCatalog(contents...)
	if err != nil {
		panic(err)
	}
	return c
}

func defaultContents() []TierContent {
	return []TierContent{
		{
			Tier:  types.TierLow,
			Label: "Low exposure",
			Title: "Limited regulatory exposure",
			Implications: "Your answers suggest the organization is unlikely to fall directly within the scope of the " +
				"cybersecurity directive, or only with light-touch supervision. Customers and partners may still " +
				"pass security requirements down to you through contracts.",
			Obligations: []string{
				"Keep an up-to-date inventory of IT assets and critical suppliers",
				"Enable multi-factor authentication on administrative and remote access",
				"Document a basic incident handling contact and escalation path",
				"Review contractual security clauses requested by customers",
			},
			Timeline:       "No statutory deadline applies today. Re-run this assessment after any significant change in size, services or infrastructure.",
			Accountability: "Responsibility stays with the general management, typically delegated to the IT lead.",
			Positioning:    "Use good basic hygiene as a selling point towards regulated customers who assess their supply chain.",
		},
		{
			Tier:  types.TierMedium,
			Label: "Medium exposure",
			Title: "Likely an important entity",
			Implications: "The organization is likely to be treated as an important entity. Supervision happens " +
				"after the fact, typically triggered by an incident or a complaint, but the full set of " +
				"risk-management measures is expected to be in place.",
			Obligations: []string{
				"Adopt risk-management measures approved by the management body",
				"Report significant incidents with an early warning within 24 hours and a notification within 72 hours",
				"Assess the security practices of direct suppliers and service providers",
				"Train management and staff on cybersecurity risks at regular intervals",
				"Register with the competent national authority when requested",
			},
			Timeline:       "Plan for compliance within 12 months: gap analysis first, then incident reporting, then supplier reviews.",
			Accountability: "Members of the management body approve the measures, oversee their implementation and can be held liable for infringements.",
			Positioning:    "Treat the work as a structured programme with a named owner and quarterly progress reporting to management.",
		},
		{
			Tier:  types.TierHigh,
			Label: "High exposure",
			Title: "Likely an essential entity",
			Implications: "The organization is likely to be treated as an essential entity and subject to proactive " +
				"supervision, including audits, on-site inspections and binding instructions. Fines for " +
				"non-compliance can reach a percentage of worldwide turnover.",
			Obligations: []string{
				"Implement a documented, management-approved information security risk-management framework",
				"Operate an incident response process with 24-hour early warning, 72-hour notification and one-month final report",
				"Enforce multi-factor authentication and secured communications across the organization",
				"Manage supply-chain security with contractual requirements and periodic assessments",
				"Ensure business continuity, backup management and crisis management",
				"Register with the competent national authority and keep the registration current",
				"Run regular audits and effectiveness assessments of the security measures",
			},
			Timeline:       "Act now: registration and incident reporting capability first, full framework within 6 to 9 months.",
			Accountability: "The management body is personally accountable; members must follow training and can be temporarily barred from managerial functions.",
			Positioning:    "Make cybersecurity a board-level topic and consider certification (such as ISO/IEC 27001) to demonstrate compliance.",
		},
	}
}
