package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventbook/models"

	"go.uber.org/zap"
)

// StartTimeline opens a timeline session for a package on a bookable date and
// seeds it with one activity per distinct package component.
func (s *DefaultBookingService) StartTimeline(ctx context.Context, userID, packageID string, eventDate models.Date) (*models.TimelineView, error) {
	logger := s.logger()
	if strings.TrimSpace(packageID) == "" {
		return nil, models.NewValidationError("packageId", "is required")
	}
	if err := s.checkDateBookable(ctx, eventDate); err != nil {
		return nil, err
	}

	components, err := s.Catalog.GetPackageComponents(ctx, packageID)
	if err != nil {
		logger.Error("StartTimeline: failed to load package components",
			zap.String("packageID", packageID), zap.Error(err))
		return nil, fmt.Errorf("failed to load package %s: %w", packageID, err)
	}

	activities, warnings, err := s.Scheduler.Initialize(components, eventDate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &models.TimelineSession{
		ID:         s.newID(),
		UserID:     userID,
		PackageID:  packageID,
		EventDate:  eventDate,
		Activities: activities,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		logger.Error("StartTimeline: failed to save session", zap.String("sessionID", session.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save timeline session: %w", err)
	}

	logger.Info("Timeline session started",
		zap.String("sessionID", session.ID),
		zap.String("packageID", packageID),
		zap.Int("activities", len(activities)),
		zap.Int("warnings", len(warnings)))
	view := s.view(session)
	view.Warnings = warnings
	return view, nil
}

func (s *DefaultBookingService) GetTimeline(ctx context.Context, userID, sessionID string) (*models.TimelineView, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(session, userID); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *DefaultBookingService) AddActivity(ctx context.Context, userID, sessionID, afterActivityID string) (*models.TimelineView, error) {
	return s.mutate(ctx, userID, sessionID, func(session *models.TimelineSession) ([]models.TimelineActivity, error) {
		return s.Scheduler.Add(session.Activities, session.EventDate, afterActivityID)
	})
}

func (s *DefaultBookingService) UpdateActivity(ctx context.Context, userID, sessionID, activityID string, patch models.ActivityPatch) (*models.TimelineView, error) {
	return s.mutate(ctx, userID, sessionID, func(session *models.TimelineSession) ([]models.TimelineActivity, error) {
		return s.Scheduler.Update(session.Activities, activityID, patch)
	})
}

func (s *DefaultBookingService) RemoveActivity(ctx context.Context, userID, sessionID, activityID string) (*models.TimelineView, error) {
	return s.mutate(ctx, userID, sessionID, func(session *models.TimelineSession) ([]models.TimelineActivity, error) {
		return s.Scheduler.Remove(session.Activities, activityID)
	})
}

func (s *DefaultBookingService) ReorderActivities(ctx context.Context, userID, sessionID string, from, to int) (*models.TimelineView, error) {
	return s.mutate(ctx, userID, sessionID, func(session *models.TimelineSession) ([]models.TimelineActivity, error) {
		return s.Scheduler.Reorder(session.Activities, from, to)
	})
}

func (s *DefaultBookingService) TransitionActivity(ctx context.Context, userID, sessionID, activityID string, status models.ActivityStatus) (*models.TimelineView, error) {
	return s.mutate(ctx, userID, sessionID, func(session *models.TimelineSession) ([]models.TimelineActivity, error) {
		return s.Scheduler.Transition(session.Activities, activityID, status)
	})
}

func (s *DefaultBookingService) EndTimeline(ctx context.Context, userID, sessionID string) error {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := checkOwner(session, userID); err != nil {
		return err
	}
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger().Info("Timeline session ended", zap.String("sessionID", sessionID))
	return nil
}

// mutate runs one scheduler operation against the stored session. The stored
// activities are replaced only when the operation succeeds.
func (s *DefaultBookingService) mutate(
	ctx context.Context,
	userID, sessionID string,
	op func(*models.TimelineSession) ([]models.TimelineActivity, error),
) (*models.TimelineView, error) {
	session, err := s.Sessions.Update(ctx, sessionID, func(session *models.TimelineSession) error {
		if err := checkOwner(session, userID); err != nil {
			return err
		}
		next, err := op(session)
		if err != nil {
			return err
		}
		session.Activities = next
		session.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionForbidden) {
			s.logger().Debug("Timeline mutation rejected", zap.String("sessionID", sessionID), zap.Error(err))
		}
		return nil, err
	}
	return s.view(session), nil
}

func (s *DefaultBookingService) view(session *models.TimelineSession) *models.TimelineView {
	return &models.TimelineView{
		Session:   session,
		Conflicts: s.Scheduler.DetectConflicts(session.Activities),
	}
}

func checkOwner(session *models.TimelineSession, userID string) error {
	if session.UserID != "" && session.UserID != userID {
		return ErrSessionForbidden
	}
	return nil
}
