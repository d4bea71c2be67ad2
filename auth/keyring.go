// Package auth keeps the Pexels API key in the system keyring.
package auth

import (
	"errors"
	"strings"

	"github.com/reelfeed/reelfeed/key"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	service = "reelfeed"
	user    = "pexels-api-key"
)

// SetKey stores the Pexels API key.
func SetKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(service, user, apiKey)
}

// GetKey returns the stored Pexels API key.
func GetKey() (string, error) {
	return keyring.Get(service, user)
}

// DeleteKey removes the stored Pexels API key.
func DeleteKey() error {
	return keyring.Delete(service, user)
}

// ResolveKey returns the key from the configuration (or REELFEED_PEXELS_API_KEY),
// falling back to the keyring.
func ResolveKey() (string, bool) {
	if configured := strings.TrimSpace(viper.GetString(key.PexelsAPIKey)); configured != "" {
		return configured, true
	}

	stored, err := GetKey()
	if err != nil || stored == "" {
		return "", false
	}
	return stored, true
}
