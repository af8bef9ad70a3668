// Package server wires the coordination service into an HTTP server
// with configuration loading and graceful shutdown.
package server
