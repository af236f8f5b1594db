package errors

import "errors"

var (
	ErrCampaignNotFound         = errors.New("campaign not found")
	ErrEngagementNotFound       = errors.New("engagement not found")
	ErrSubmissionNotFound       = errors.New("content submission not found")
	ErrInvalidCampaignInput     = errors.New("invalid campaign input")
	ErrInvalidEngagementInput   = errors.New("invalid engagement input")
	ErrInvalidSubmissionInput   = errors.New("invalid content submission input")
	ErrUnknownEngagementStatus  = errors.New("unknown engagement status")
	ErrUnknownReviewDecision    = errors.New("unknown review decision")
	ErrCampaignCompleted        = errors.New("campaign is completed and immutable")
	ErrEngagementClosed         = errors.New("engagement no longer accepts content submissions")
	ErrSubmissionAlreadyDecided = errors.New("content submission has already been reviewed")
	ErrUnauthorized             = errors.New("actor lacks the required capability")
)
