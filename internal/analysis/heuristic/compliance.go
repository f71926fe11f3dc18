package heuristic

import "finecho-server/internal/analysis"

type complianceRule struct {
	flag     string
	status   analysis.ComplianceStatus
	keywords []string
}

var complianceRules = []complianceRule{
	{
		flag:     "Guaranteed or assured returns promised",
		status:   analysis.ComplianceRisk,
		keywords: []string{"guaranteed return", "guaranteed returns", "assured return", "guarantee you"},
	},
	{
		flag:     "Investment described as risk free",
		status:   analysis.ComplianceRisk,
		keywords: []string{"no risk", "risk free", "risk-free", "zero risk"},
	},
	{
		flag:     "Unrealistic return claim",
		status:   analysis.ComplianceRisk,
		keywords: []string{"double your money", "money will double", "triple your money"},
	},
	{
		flag:     "Possible insider information",
		status:   analysis.ComplianceRisk,
		keywords: []string{"insider", "inside information", "tip from the company"},
	},
	{
		flag:     "Cash payment requested",
		status:   analysis.ComplianceRisk,
		keywords: []string{"cash payment", "pay in cash", "pay cash"},
	},
	{
		flag:     "KYC process bypassed",
		status:   analysis.ComplianceRisk,
		keywords: []string{"skip kyc", "without kyc", "no kyc", "skip the kyc"},
	},
	{
		flag:     "High return claim",
		status:   analysis.ComplianceWarning,
		keywords: []string{"high return", "high returns", "best returns"},
	},
	{
		flag:     "Overconfident recommendation",
		status:   analysis.ComplianceWarning,
		keywords: []string{"sure shot", "can't lose", "cannot lose", "can not lose", "safe bet"},
	},
	{
		flag:     "Lock-in period discussed",
		status:   analysis.ComplianceWarning,
		keywords: []string{"lock-in", "lock in period", "lockin"},
	},
}

var (
	investmentKeywords = []string{"mutual fund", "sip", "elss", "equity", "stock", "shares", "invest"}
	disclosureKeywords = []string{
		"market risk", "subject to market", "past performance", "risk profile",
		"risk appetite", "risk disclosure", "offer document",
	}
)

const missingDisclosureFlag = "Investment discussed without risk disclosure"

// ComplianceAssessment is the compliance half of the heuristic pair.
type ComplianceAssessment struct {
	Flags  []string
	Status analysis.ComplianceStatus
}

// AssessCompliance applies keyword rules to the transcript. Flags are reported in rule
// order without duplicates. Status is risk if any risk rule fired, warning if only
// warning rules fired, else clear.
func AssessCompliance(transcript string) ComplianceAssessment {
	text := normalize(transcript)
	flags := []string{}
	status := analysis.ComplianceClear

	raise := func(flag string, level analysis.ComplianceStatus) {
		flags = append(flags, flag)
		if level == analysis.ComplianceRisk || status == analysis.ComplianceClear {
			status = level
		}
	}

	for _, rule := range complianceRules {
		if containsAny(text, rule.keywords) {
			raise(rule.flag, rule.status)
		}
	}

	if containsAny(text, investmentKeywords) && !containsAny(text, disclosureKeywords) {
		raise(missingDisclosureFlag, analysis.ComplianceWarning)
	}

	return ComplianceAssessment{Flags: flags, Status: status}
}

// Analyze runs both heuristics and combines them into one Result.
func Analyze(transcript string) analysis.Result {
	goals := SummarizeGoals(transcript)
	compliance := AssessCompliance(transcript)
	return analysis.Result{
		Summary:          goals.Summary,
		Goals:            goals.Goals,
		Language:         goals.Language,
		ComplianceFlags:  compliance.Flags,
		ComplianceStatus: compliance.Status,
		Source:           analysis.SourceHeuristic,
	}
}
