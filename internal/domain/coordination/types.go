package coordination

import (
	"errors"

	"github.com/oshokin/safelink/internal/geo"
)

var (
	// ErrNotFound indicates the operation targeted a user or a
	// (needy, helper) pair with no tracked state. Soft failure: callers
	// report it in the response status, no state changes.
	ErrNotFound = errors.New("not found")
	// ErrMissingUser indicates a required user id was empty.
	ErrMissingUser = errors.New("user id must be provided")
)

// Presence is the last-known broadcast state of one user.
type Presence struct {
	// Location is the last reported position.
	Location geo.Point
	// ShareLocation controls whether the position is visible to other pollers.
	ShareLocation bool
	// NeedsHelp marks an active alert. Serialized as "helping" on the wire.
	NeedsHelp bool
}

// Clone returns a copy of the presence record to avoid leaking internal references.
func (p *Presence) Clone() *Presence {
	if p == nil {
		return nil
	}

	cloned := *p

	return &cloned
}

// HelperResponse is one helper's tracking state for one needy user.
type HelperResponse struct {
	// Location is the helper's last reported position.
	Location geo.Point
	// Distance is the last computed distance to the needy user,
	// in the two-fraction-digit kilometer wire format.
	Distance string
}

// Clone returns a copy of the helper response.
func (r *HelperResponse) Clone() *HelperResponse {
	if r == nil {
		return nil
	}

	cloned := *r

	return &cloned
}

// HelperStatus is one roster entry in the needy user's polling payload.
type HelperStatus struct {
	// Helper is the responding user's id.
	Helper string `json:"helper"`
	// Distance is the helper's last known distance in km, e.g. "55.50".
	Distance string `json:"distance"`
}

// Alert is the polling payload for one visible user. Field names follow
// the legacy wire contract: NeedsHelp travels as "helping".
type Alert struct {
	// Username identifies the user this entry describes.
	Username string `json:"username"`
	// Lat is the user's last reported latitude in degrees.
	Lat float64 `json:"lat"`
	// Lng is the user's last reported longitude in degrees.
	Lng float64 `json:"lng"`
	// NeedsHelp is true while the user has an active alert.
	NeedsHelp bool `json:"helping"`
	// ShareLocation mirrors the user's sharing preference.
	ShareLocation bool `json:"showLocation"`
	// ActiveHelpers is present only on the requesting user's own entry
	// while their alert is active and at least one helper responded.
	ActiveHelpers []HelperStatus `json:"activeHelpers,omitempty"`
}
