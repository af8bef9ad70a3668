package coordinator

import (
	"context"
	"sync"

	domain "github.com/oshokin/safelink/internal/domain/coordination"
	"github.com/oshokin/safelink/internal/geo"
	"github.com/oshokin/safelink/internal/logger"
	"github.com/oshokin/safelink/internal/repository/presence"
	"github.com/oshokin/safelink/internal/repository/response"
)

// Service is the coordination façade. It owns both stores and is the
// only component that mutates them, so cross-store events (cancelling
// an alert, logging out) appear atomic to pollers.
type Service struct {
	// presences holds the per-user presence records.
	presences *presence.Store
	// responses holds the per-needy helper response groups.
	responses *response.Tracker
	// mu guards both stores. Mutations take the write lock; polling
	// reads take the read lock.
	mu sync.RWMutex
}

// NewService creates a coordination service with empty state.
func NewService() *Service {
	return &Service{
		presences: presence.NewStore(),
		responses: response.NewTracker(),
	}
}

// ReportLocation records the user's position and sharing preference.
// An active alert flag on the record is left untouched.
func (s *Service) ReportLocation(ctx context.Context, user string, location geo.Point, shareLocation bool) error {
	if user == "" {
		return domain.ErrMissingUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.presences.Upsert(user, location, shareLocation)

	logger.DebugKV(ctx, "Location updated",
		"user", user, "lat", location.Lat, "lng", location.Lng, "share_location", shareLocation)

	return nil
}

// DisableSharing hides the user's position from other pollers.
// Returns ErrNotFound if the user never reported a location.
func (s *Service) DisableSharing(ctx context.Context, user string) error {
	if user == "" {
		return domain.ErrMissingUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.presences.DisableSharing(user); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Location sharing disabled", "user", user)

	return nil
}

// RaiseOrUpdateAlert sets the user's needs-help flag and position.
// Raising an alert forces the user visible. Cancelling one discards the
// whole responder group in the same critical section, so no poller ever
// sees a cleared flag with stale responders.
func (s *Service) RaiseOrUpdateAlert(ctx context.Context, user string, location geo.Point, needsHelp bool) error {
	if user == "" {
		return domain.ErrMissingUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.presences.SetAlert(user, location, needsHelp)

	if !needsHelp {
		s.responses.Clear(user)
	}

	logger.InfoKV(ctx, "Alert state updated",
		"user", user, "needs_help", needsHelp, "lat", location.Lat, "lng", location.Lng)

	return nil
}

// RespondToAlert registers the helper as tracking the needy user and
// returns the computed distance in wire format. The distance is measured
// against the needy user's last known position; a needy user with no
// record falls back to the (0, 0) origin, matching the legacy behavior.
func (s *Service) RespondToAlert(ctx context.Context, helper, needy string, helperLocation geo.Point) (string, error) {
	if helper == "" || needy == "" {
		return "", domain.ErrMissingUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var needyLocation geo.Point
	if record, ok := s.presences.Get(needy); ok {
		needyLocation = record.Location
	}

	distance := s.responses.Record(needy, helper, helperLocation, needyLocation)

	logger.InfoKV(ctx, "Helper response recorded",
		"helper", helper, "needy", needy, "distance_km", distance)

	return distance, nil
}

// RefineDistance overwrites the stored distance for an existing
// (needy, helper) pair, e.g. when the helper's client recomputes it
// while approaching. Unknown pairs yield ErrNotFound and no new state.
func (s *Service) RefineDistance(ctx context.Context, needy, helper, distance string) error {
	if needy == "" || helper == "" {
		return domain.ErrMissingUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.responses.UpdateDistance(needy, helper, distance); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Helper distance refined",
		"needy", needy, "helper", helper, "distance_km", distance)

	return nil
}

// MarkSafe discards the user's responder group. The needs-help flag is
// deliberately left as-is: clients that want it cleared also send an
// alert update with needsHelp=false, which clears responders too.
func (s *Service) MarkSafe(ctx context.Context, user string) error {
	if user == "" {
		return domain.ErrMissingUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.responses.Clear(user)

	logger.InfoKV(ctx, "User marked safe, responders released", "user", user)

	return nil
}

// Logout detaches the user completely: their presence record, their own
// responder group, and their entries in every other needy user's group,
// in that order. A user who is both needy and helping others is gone
// from all views after this returns.
func (s *Service) Logout(ctx context.Context, user string) error {
	if user == "" {
		return domain.ErrMissingUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.presences.Remove(user)
	s.responses.Clear(user)
	s.responses.RemoveHelper(user)

	logger.InfoKV(ctx, "User logged out of coordination", "user", user)

	return nil
}

// Alerts builds the polling payload visible to the requesting user.
// An empty requestingUser means an anonymous poller, which sees the
// same entries but never any activeHelpers enrichment.
func (s *Service) Alerts(ctx context.Context, requestingUser string) []domain.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts := s.buildAlerts(requestingUser)

	logger.DebugKV(ctx, "Alerts polled", "requester", requestingUser, "count", len(alerts))

	return alerts
}
