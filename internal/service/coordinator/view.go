package coordinator

import (
	"sort"

	domain "github.com/oshokin/safelink/internal/domain/coordination"
)

// buildAlerts joins the presence store with the response tracker under
// the visibility rules. Callers must hold at least the read lock.
//
// A user's entry is included iff they share their location or have an
// active alert. The activeHelpers roster is attached only to the
// requesting user's own entry, and only while their alert is active and
// at least one helper responded. Helper rosters are never attached to
// anyone else's entries, so one needy user's responders cannot leak to
// unrelated pollers.
func (s *Service) buildAlerts(requestingUser string) []domain.Alert {
	snapshot := s.presences.Snapshot()

	alerts := make([]domain.Alert, 0, len(snapshot))

	for user, record := range snapshot {
		if !record.ShareLocation && !record.NeedsHelp {
			continue
		}

		alert := domain.Alert{
			Username:      user,
			Lat:           record.Location.Lat,
			Lng:           record.Location.Lng,
			NeedsHelp:     record.NeedsHelp,
			ShareLocation: record.ShareLocation,
		}

		if user == requestingUser && record.NeedsHelp {
			alert.ActiveHelpers = s.responses.List(user)
		}

		alerts = append(alerts, alert)
	}

	// Map iteration order is random; keep the payload stable for pollers.
	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].Username < alerts[j].Username
	})

	return alerts
}
