package commands

import (
	"context"
	"log/slog"
	"strings"

	application "backstage/contexts/campaign-ops/engagement-service/application"
	"backstage/contexts/campaign-ops/engagement-service/domain/entities"
	domainerrors "backstage/contexts/campaign-ops/engagement-service/domain/errors"
	"backstage/contexts/campaign-ops/engagement-service/ports"
)

type ReviewDecision string

const (
	ReviewDecisionApprove ReviewDecision = "approved"
	ReviewDecisionReject  ReviewDecision = "rejected"
)

type ReviewSubmissionCommand struct {
	Actor        Actor
	SubmissionID string
	Decision     string
	Feedback     string
}

type ReviewSubmissionUseCase struct {
	Engagements ports.EngagementRepository
	Submissions ports.SubmissionRepository
	Audit       ports.AuditRecorder
	Clock       ports.Clock
	Logger      *slog.Logger
}

type ReviewSubmissionResult struct {
	Submission entities.ContentSubmission
	Engagement entities.Engagement
}

// Execute decides a pending submission. Approval advances the engagement to
// approved; rejection leaves the engagement in content_submitted so the
// influencer can file a fresh submission.
func (uc ReviewSubmissionUseCase) Execute(ctx context.Context, cmd ReviewSubmissionCommand) (ReviewSubmissionResult, error) {
	decision := ReviewDecision(strings.TrimSpace(cmd.Decision))
	if decision != ReviewDecisionApprove && decision != ReviewDecisionReject {
		return ReviewSubmissionResult{}, domainerrors.ErrUnknownReviewDecision
	}

	submission, err := uc.Submissions.GetSubmission(ctx, strings.TrimSpace(cmd.SubmissionID))
	if err != nil {
		return ReviewSubmissionResult{}, err
	}
	if !submission.IsPending() {
		return ReviewSubmissionResult{}, domainerrors.ErrSubmissionAlreadyDecided
	}
	engagement, err := uc.Engagements.GetEngagement(ctx, submission.EngagementID)
	if err != nil {
		return ReviewSubmissionResult{}, err
	}

	now := uc.Clock.Now().UTC()
	before := submission

	submission.Status = entities.SubmissionStatus(decision)
	submission.Feedback = strings.TrimSpace(cmd.Feedback)
	submission.ReviewedAt = &now
	submission.ReviewedBy = strings.TrimSpace(cmd.Actor.ActorID)
	if err := uc.Submissions.UpdateSubmission(ctx, submission); err != nil {
		return ReviewSubmissionResult{}, err
	}
	recordAudit(ctx, uc.Audit, uc.Logger, cmd.Actor, ports.AuditEntry{
		Action:     "review",
		EntityType: "ContentSubmission",
		EntityID:   submission.SubmissionID,
		OldValue:   submissionSnapshot(before),
		NewValue:   submissionSnapshot(submission),
	})

	if decision == ReviewDecisionApprove && engagement.Status != entities.EngagementStatusApproved {
		from := engagement.Status
		engagement.Status = entities.EngagementStatusApproved
		engagement.UpdatedAt = now
		if err := uc.Engagements.UpdateEngagement(ctx, engagement); err != nil {
			return ReviewSubmissionResult{}, err
		}
		recordAudit(ctx, uc.Audit, uc.Logger, cmd.Actor, ports.AuditEntry{
			Action:     "status_change",
			EntityType: "CampaignInfluencer",
			EntityID:   engagement.EngagementID,
			OldValue:   statusSnapshot(from),
			NewValue:   statusSnapshot(engagement.Status),
		})
	}

	application.ResolveLogger(uc.Logger).Info("content submission reviewed",
		"event", "content_submission_reviewed",
		"module", "campaign-ops/engagement-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"engagement_id", engagement.EngagementID,
		"decision", string(decision),
	)
	return ReviewSubmissionResult{Submission: submission, Engagement: engagement}, nil
}
