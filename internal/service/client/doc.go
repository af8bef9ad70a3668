// Package client wraps the safelink HTTP API for the safelink-client
// binary: smoke-testing a deployment and scripting coordination
// operations from the command line.
package client
