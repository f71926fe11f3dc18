package store

// CallStatus tracks where a call is in the processing pipeline.
type CallStatus string

const (
	CallStatusUploaded            CallStatus = "uploaded"
	CallStatusTranscribing        CallStatus = "transcribing"
	CallStatusTranscribed         CallStatus = "transcribed"
	CallStatusCompleted           CallStatus = "completed"
	CallStatusFailedTranscription CallStatus = "failed_transcription"
	CallStatusFailedSummary       CallStatus = "failed_summary"
)

// IsFailed reports whether the status is one of the terminal failure states.
func (s CallStatus) IsFailed() bool {
	return s == CallStatusFailedTranscription || s == CallStatusFailedSummary
}

// IsTerminal reports whether the pipeline is done with the call.
func (s CallStatus) IsTerminal() bool {
	return s == CallStatusCompleted || s.IsFailed()
}

// Compliance status values
const (
	ComplianceStatusClear   = "clear"
	ComplianceStatusWarning = "warning"
	ComplianceStatusRisk    = "risk"
)

// Analysis source values
const (
	AnalysisSourceRemote    = "remote"
	AnalysisSourceHeuristic = "heuristic"
)

// Profile roles
const (
	ProfileRoleAdvisor = "advisor"
	ProfileRoleAdmin   = "admin"
)

// Client response values recorded on a summary
const (
	ClientResponseProceeded = "proceeded"
	ClientResponseDeferred  = "deferred"
	ClientResponseDeclined  = "declined"
)

// Summary compliance values
const (
	SummaryComplianceClear       = "clear"
	SummaryComplianceNeedsReview = "needs_review"
)
