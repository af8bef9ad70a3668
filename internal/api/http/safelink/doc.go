// Package safelink implements the JSON-over-HTTP transport for the
// coordination service, wire-compatible with the legacy polling clients.
//
// It adapts request bodies to service calls and exposes a handler that
// calls into a provided business-service interface. Authentication is
// handled upstream; the transport trusts the caller-supplied identity.
package safelink
