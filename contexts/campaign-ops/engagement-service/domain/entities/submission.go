package entities

import "time"

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// ContentSubmission is one piece of submitted content for an engagement.
// Several submissions may exist per engagement (resubmission after
// rejection); the newest one is authoritative for display.
type ContentSubmission struct {
	SubmissionID string
	EngagementID string
	FileRef      string
	Status       SubmissionStatus
	Feedback     string
	SubmittedAt  time.Time
	ReviewedAt   *time.Time
	ReviewedBy   string
}

func (s ContentSubmission) IsPending() bool {
	return s.Status == SubmissionStatusPending
}
