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

type CreateSubmissionCommand struct {
	Actor        Actor
	EngagementID string
	FileRef      string
}

type CreateSubmissionUseCase struct {
	Engagements ports.EngagementRepository
	Submissions ports.SubmissionRepository
	Audit       ports.AuditRecorder
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

type CreateSubmissionResult struct {
	Submission entities.ContentSubmission
	Engagement entities.Engagement
}

// Execute files a new pending submission. The first submission moves the
// engagement from assigned to content_submitted; a resubmission after
// rejection leaves the engagement where it is.
func (uc CreateSubmissionUseCase) Execute(ctx context.Context, cmd CreateSubmissionCommand) (CreateSubmissionResult, error) {
	if strings.TrimSpace(cmd.FileRef) == "" {
		return CreateSubmissionResult{}, domainerrors.ErrInvalidSubmissionInput
	}

	engagement, err := uc.Engagements.GetEngagement(ctx, strings.TrimSpace(cmd.EngagementID))
	if err != nil {
		return CreateSubmissionResult{}, err
	}
	if !engagement.AcceptsSubmissions() {
		return CreateSubmissionResult{}, domainerrors.ErrEngagementClosed
	}

	now := uc.Clock.Now().UTC()
	submissionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CreateSubmissionResult{}, err
	}

	submission := entities.ContentSubmission{
		SubmissionID: submissionID,
		EngagementID: engagement.EngagementID,
		FileRef:      strings.TrimSpace(cmd.FileRef),
		Status:       entities.SubmissionStatusPending,
		SubmittedAt:  now,
	}
	if err := uc.Submissions.CreateSubmission(ctx, submission); err != nil {
		return CreateSubmissionResult{}, err
	}
	recordAudit(ctx, uc.Audit, uc.Logger, cmd.Actor, ports.AuditEntry{
		Action:     "create",
		EntityType: "ContentSubmission",
		EntityID:   submission.SubmissionID,
		NewValue:   submissionSnapshot(submission),
	})

	if engagement.Status == entities.EngagementStatusAssigned {
		from := engagement.Status
		engagement.Status = entities.EngagementStatusContentSubmitted
		engagement.UpdatedAt = now
		if err := uc.Engagements.UpdateEngagement(ctx, engagement); err != nil {
			return CreateSubmissionResult{}, err
		}
		recordAudit(ctx, uc.Audit, uc.Logger, cmd.Actor, ports.AuditEntry{
			Action:     "status_change",
			EntityType: "CampaignInfluencer",
			EntityID:   engagement.EngagementID,
			OldValue:   statusSnapshot(from),
			NewValue:   statusSnapshot(engagement.Status),
		})
	}

	application.ResolveLogger(uc.Logger).Info("content submission created",
		"event", "content_submission_created",
		"module", "campaign-ops/engagement-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"engagement_id", engagement.EngagementID,
		"engagement_status", string(engagement.Status),
	)
	return CreateSubmissionResult{Submission: submission, Engagement: engagement}, nil
}
