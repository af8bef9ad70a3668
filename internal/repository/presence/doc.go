// Package presence stores the per-user presence records: last reported
// position, location-sharing preference and the needs-help flag.
//
// The store is in-memory by contract (state does not survive restarts)
// and relies on the coordinator service for synchronization.
package presence
