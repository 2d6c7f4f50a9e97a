// Package config defines the settings of the clickguard command and provides
// helpers to load, validate and save them in YAML format.
//
// A Config describes the guard groups (elements sharing one guard), the
// default watch period and an optional click script replayed by the
// simulator.
package config
