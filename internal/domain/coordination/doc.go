// Package coordination contains the core domain types of the help
// coordination model: per-user presence records, per-needy helper
// responses, and the alert payloads surfaced to pollers.
//
// Types carry Clone helpers to avoid leaking internal references across
// the service boundary.
package coordination
