package presence

import (
	domain "github.com/oshokin/safelink/internal/domain/coordination"
	"github.com/oshokin/safelink/internal/geo"
)

// Store keeps the per-user presence records.
//
// The store itself performs no locking: the coordinator service is its
// only caller and guards every access with its own mutex.
type Store struct {
	// records maps user id to the user's last-known presence.
	records map[string]*domain.Presence
}

// NewStore returns an empty presence store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*domain.Presence),
	}
}

// Upsert creates or updates the user's record with a new position and
// sharing preference. An existing needs-help flag is preserved; for a
// new record it defaults to false.
func (s *Store) Upsert(user string, location geo.Point, shareLocation bool) {
	record, ok := s.records[user]
	if !ok {
		record = new(domain.Presence)
		s.records[user] = record
	}

	record.Location = location
	record.ShareLocation = shareLocation
}

// SetAlert creates or updates the user's record with a new position and
// an explicit needs-help flag. Sharing is always switched on: a user
// touching the alert path is made visible to pollers regardless of any
// prior preference.
func (s *Store) SetAlert(user string, location geo.Point, needsHelp bool) {
	record, ok := s.records[user]
	if !ok {
		record = new(domain.Presence)
		s.records[user] = record
	}

	record.Location = location
	record.NeedsHelp = needsHelp
	record.ShareLocation = true
}

// DisableSharing switches off location sharing for the user.
// Returns ErrNotFound if the user has no record.
func (s *Store) DisableSharing(user string) error {
	record, ok := s.records[user]
	if !ok {
		return domain.ErrNotFound
	}

	record.ShareLocation = false

	return nil
}

// Remove deletes the user's record. Removing an unknown user is a no-op.
func (s *Store) Remove(user string) {
	delete(s.records, user)
}

// Get returns a copy of the user's record, or false if none exists.
func (s *Store) Get(user string) (*domain.Presence, bool) {
	record, ok := s.records[user]
	if !ok {
		return nil, false
	}

	return record.Clone(), true
}

// Snapshot returns a point-in-time copy of every record keyed by user id.
func (s *Store) Snapshot() map[string]*domain.Presence {
	snapshot := make(map[string]*domain.Presence, len(s.records))
	for user, record := range s.records {
		snapshot[user] = record.Clone()
	}

	return snapshot
}
