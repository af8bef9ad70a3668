// Package coordinator implements the coordination façade over the
// presence store and the response tracker.
//
// It is the single entry point for every state mutation and for the
// polling read model. A service-level RWMutex makes cross-store events
// (alert cancellation, logout) atomic with respect to pollers.
package coordinator
