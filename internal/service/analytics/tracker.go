package analytics

import (
	"context"

	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/domain"
)

// Recorder is the ingestion capability Tracker needs.
type Recorder interface {
	Track(ctx context.Context, distinctID, event string, properties map[string]any) error
	Engage(ctx context.Context, distinctID string, set map[string]any) error
}

// Tracker is the best-effort analytics side-channel. Every failure is
// caught and logged here so the reply path never observes one.
type Tracker struct {
	recorder Recorder
	logger   *zap.Logger
}

func NewTracker(recorder Recorder, logger *zap.Logger) *Tracker {
	return &Tracker{
		recorder: recorder,
		logger:   logger,
	}
}

// TrackUser mirrors the user's profile to the analytics backend.
func (t *Tracker) TrackUser(ctx context.Context, profile *domain.Profile) {
	if profile == nil || profile.ID == "" {
		return
	}

	set := map[string]any{
		"$first_name": profile.FirstName,
		"$last_name":  profile.LastName,
	}
	if profile.Locale != "" {
		set["locale"] = profile.Locale
	}
	if profile.Gender != "" {
		set["gender"] = profile.Gender
	}

	if err := t.recorder.Engage(ctx, profile.ID, set); err != nil {
		t.logger.Error("Failed to track user",
			zap.String("user_id", profile.ID),
			zap.Error(err),
		)
	}
}

// TrackEvent records a named event for a user.
func (t *Tracker) TrackEvent(ctx context.Context, userID, event string, properties map[string]any) {
	if err := t.recorder.Track(ctx, userID, event, properties); err != nil {
		t.logger.Error("Failed to track event",
			zap.String("user_id", userID),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}
