package response

import (
	"sort"

	domain "github.com/oshokin/safelink/internal/domain/coordination"
	"github.com/oshokin/safelink/internal/geo"
)

// Tracker keeps, per needy user, the set of helpers currently
// responding to their alert with last-known positions and distances.
//
// Like the presence store, the tracker performs no locking of its own;
// the coordinator service guards every access.
type Tracker struct {
	// groups maps needy user id to that user's response group,
	// keyed by helper id.
	groups map[string]map[string]*domain.HelperResponse
}

// NewTracker returns an empty response tracker.
func NewTracker() *Tracker {
	return &Tracker{
		groups: make(map[string]map[string]*domain.HelperResponse),
	}
}

// Record registers or refreshes a helper's response to a needy user.
// The distance is computed from the helper's position to the needy
// user's last known position and stored in wire format. The needy
// user's response group is created if absent. Returns the formatted
// distance for the caller's immediate feedback.
func (t *Tracker) Record(needy, helper string, helperLocation, needyLocation geo.Point) string {
	distance := geo.FormatKm(geo.DistanceKm(helperLocation, needyLocation))

	group, ok := t.groups[needy]
	if !ok {
		group = make(map[string]*domain.HelperResponse)
		t.groups[needy] = group
	}

	group[helper] = &domain.HelperResponse{
		Location: helperLocation,
		Distance: distance,
	}

	return distance
}

// UpdateDistance overwrites the stored distance for an existing
// (needy, helper) pair. Unlike Record it never creates tracking state:
// an unknown pair yields ErrNotFound.
func (t *Tracker) UpdateDistance(needy, helper, distance string) error {
	group, ok := t.groups[needy]
	if !ok {
		return domain.ErrNotFound
	}

	entry, ok := group[helper]
	if !ok {
		return domain.ErrNotFound
	}

	entry.Distance = distance

	return nil
}

// Clear deletes the needy user's entire response group.
func (t *Tracker) Clear(needy string) {
	delete(t.groups, needy)
}

// RemoveHelper removes the helper from every response group,
// pruning any group left empty.
func (t *Tracker) RemoveHelper(helper string) {
	for needy, group := range t.groups {
		if _, ok := group[helper]; !ok {
			continue
		}

		delete(group, helper)

		if len(group) == 0 {
			delete(t.groups, needy)
		}
	}
}

// List returns the needy user's roster sorted by helper id, or nil if
// no response group exists. Entries are copies.
func (t *Tracker) List(needy string) []domain.HelperStatus {
	group, ok := t.groups[needy]
	if !ok {
		return nil
	}

	helpers := make([]domain.HelperStatus, 0, len(group))
	for name, entry := range group {
		helpers = append(helpers, domain.HelperStatus{
			Helper:   name,
			Distance: entry.Distance,
		})
	}

	sort.Slice(helpers, func(i, j int) bool {
		return helpers[i].Helper < helpers[j].Helper
	})

	return helpers
}
