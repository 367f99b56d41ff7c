package terminal

import "github.com/secmon-lab/tierscope/pkg/domain/types"

type option struct {
	value string
	label string
}

type question struct {
	title   string
	hint    string
	options []option
}

var questions = map[types.Step]question{
	types.StepEntitySize: {
		title: "How large is your organization?",
		hint:  "Count the whole group, including partner and linked enterprises.",
		options: []option{
			{types.EntitySizeSmall.String(), "Small: fewer than 50 employees and turnover under EUR 10 million"},
			{types.EntitySizeMedium.String(), "Medium: 50 to 249 employees or turnover up to EUR 50 million"},
			{types.EntitySizeLarge.String(), "Large: 250 employees or more, or turnover above EUR 50 million"},
		},
	},
	types.StepServiceSensitivity: {
		title: "How critical are the services you provide?",
		hint:  "Think about the impact on society or the economy if your services stopped.",
		options: []option{
			{types.ServiceSensitivityLow.String(), "Low: an outage would mainly affect us and a few customers"},
			{types.ServiceSensitivityMedium.String(), "Medium: we serve other businesses or digital providers"},
			{types.ServiceSensitivityHigh.String(), "High: energy, health, transport, finance, water, digital infrastructure or public administration"},
		},
	},
	types.StepInfrastructure: {
		title: "Which of these describe your digital infrastructure?",
		hint:  "Enter the numbers that apply separated by commas, or press enter for none.",
		options: []option{
			{flagCloud, "Core operations run on cloud services"},
			{flagMFA, "Multi-factor authentication is enforced"},
			{flagIncident, "A documented incident response process exists"},
			{flagSupplyChain, "We depend on critical ICT suppliers"},
		},
	},
	types.StepGovernance: {
		title: "How mature is your security governance?",
		hint:  "Pick the description that fits best today.",
		options: []option{
			{types.GovernanceNone.String(), "None: no formal security policy"},
			{types.GovernanceBasic.String(), "Basic: a few policies, no regular review"},
			{types.GovernanceStructured.String(), "Structured: documented policies with a named owner and periodic review"},
			{types.GovernanceISO.String(), "Certified: ISO/IEC 27001 or equivalent"},
		},
	},
}

const (
	flagCloud       = "cloud"
	flagMFA         = "mfa"
	flagIncident    = "incident"
	flagSupplyChain = "supply-chain"
)
