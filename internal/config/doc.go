// Package config defines the settings shared by the safelink binaries
// and provides helpers to load, validate and save them in YAML format.
//
// Every field has a usable default, so the binaries run without a
// configuration file.
package config
