package service

import (
	"context"
	"errors"

	"consentintel/internal/consent/models"
	pkgerrors "consentintel/pkg/domain-errors"
	"consentintel/pkg/platform/sentinel"
	"consentintel/pkg/platform/tracer"
	"consentintel/pkg/requestcontext"
)

// SimulateActivity applies one simulated runtime behavior to an installed app
// and appends the matching timeline event. Unknown activity types count as
// routine access.
func (s *Service) SimulateActivity(ctx context.Context, appID string, activity models.ActivityType) (_ *models.ActivityResult, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanSimulateActivity,
		tracer.String(tracer.AttrAppID, appID),
		tracer.String(tracer.AttrActivityType, string(activity)),
	)
	defer func() { span.End(err) }()

	policy := models.ActivityPolicyFor(activity)

	var (
		updated *models.InstalledApp
		event   *models.TimelineEvent
	)
	err = s.tx.RunInTx(ctx, appID, func(txCtx context.Context, txStore Store) error {
		app, err := txStore.FindInstalled(txCtx, appID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return pkgerrors.NotFound(MsgAppNotInstalled)
			}
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to read installed app")
		}

		previous := *app
		now := s.now(txCtx)
		app.ApplyActivity(policy, now)
		if err := txStore.SaveInstalled(txCtx, app); err != nil {
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to save installed app")
		}

		event = &models.TimelineEvent{
			ID:          s.newID(),
			AppID:       appID,
			Date:        now,
			Type:        policy.EventType(),
			Description: policy.Description,
			Severity:    policy.Severity,
		}
		if err := txStore.AppendEvent(txCtx, event); err != nil {
			if restoreErr := txStore.SaveInstalled(txCtx, &previous); restoreErr != nil {
				err = errors.Join(err, restoreErr)
			}
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to append activity event")
		}
		updated = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(tracer.Int(tracer.AttrRiskScore, updated.RiskScore))
	if s.metrics != nil {
		s.metrics.IncrementActivities(string(policy.Severity))
	}
	s.recordEvent(ctx, event, updated.RiskScore)
	s.logger.InfoContext(ctx, "activity simulated",
		"app_id", appID,
		"activity_type", activity,
		"severity", policy.Severity,
		"risk_score", updated.RiskScore,
		"request_id", requestcontext.RequestID(ctx),
	)

	return &models.ActivityResult{
		Success:  true,
		NewScore: updated.RiskScore,
		Event:    policy.Description,
	}, nil
}
