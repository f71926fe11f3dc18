// Package analysis holds the structured summary derived from a call transcript.
package analysis

// ComplianceStatus is the authoritative compliance posture of a call.
type ComplianceStatus string

const (
	ComplianceClear   ComplianceStatus = "clear"
	ComplianceWarning ComplianceStatus = "warning"
	ComplianceRisk    ComplianceStatus = "risk"
)

// Valid reports whether s is one of the known statuses.
func (s ComplianceStatus) Valid() bool {
	switch s {
	case ComplianceClear, ComplianceWarning, ComplianceRisk:
		return true
	}
	return false
}

// Source identifies which analyzer produced a Result.
type Source string

const (
	SourceRemote    Source = "remote"
	SourceHeuristic Source = "heuristic"
)

// DefaultLanguage is used when an analyzer does not report one.
const DefaultLanguage = "en"

// Result is the normalized analysis of one transcript. A Result always comes wholesale
// from a single Source.
type Result struct {
	Summary          string
	Goals            []string
	Language         string
	ComplianceFlags  []string
	ComplianceStatus ComplianceStatus
	Source           Source
}
