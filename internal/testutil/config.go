// Package testutil provides common test helpers for the bookflow project.
package testutil

import (
	"testing"

	"github.com/lepinkainen/bookflow/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	GoogleBooksAPIKey string
	Query             string
	MaxResults        int
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		GoogleBooksAPIKey: config.GoogleBooksAPIKey,
		Query:             config.Query,
		MaxResults:        config.MaxResults,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.GoogleBooksAPIKey = state.GoogleBooksAPIKey
	config.Query = state.Query
	config.MaxResults = state.MaxResults
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// viper has no Unset, the unset state cannot be restored
	})
}
