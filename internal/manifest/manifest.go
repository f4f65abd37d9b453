// Package manifest models an AI plugin manifest and serves the
// well-known discovery endpoints a plugin host probes for.
package manifest

import (
	"encoding/json"
	"fmt"
)

const (
	maxNameForHuman        = 20
	maxNameForModel        = 50
	maxDescriptionForHuman = 100
	maxDescriptionForModel = 8000
)

// AuthType describes how a plugin host authenticates against the API.
type AuthType string

const (
	AuthNone        AuthType = "none"
	AuthUserHTTP    AuthType = "user_http"
	AuthServiceHTTP AuthType = "service_http"
	AuthOAuth       AuthType = "oauth"
)

// Auth is the manifest's authentication block.
type Auth struct {
	Type AuthType `json:"type"`
}

// API points the host at the plugin's OpenAPI document.
type API struct {
	Type                string `json:"type"`
	URL                 string `json:"url"`
	IsUserAuthenticated bool   `json:"is_user_authenticated"`
}

// OpenAPI builds the api block for an OpenAPI document at url.
func OpenAPI(url string, userAuthenticated bool) API {
	return API{
		Type:                "openapi",
		URL:                 url,
		IsUserAuthenticated: userAuthenticated,
	}
}

// Manifest is the plugin descriptor served from
// /.well-known/ai-plugin.json.
type Manifest struct {
	SchemaVersion       string `json:"schema_version"`
	NameForHuman        string `json:"name_for_human"`
	NameForModel        string `json:"name_for_model"`
	DescriptionForHuman string `json:"description_for_human"`
	DescriptionForModel string `json:"description_for_model"`
	Auth                Auth   `json:"auth"`
	API                 API    `json:"api"`
	LogoURL             string `json:"logo_url"`
	ContactEmail        string `json:"contact_email"`
	LegalInfoURL        string `json:"legal_info_url"`
}

func checkLen(value, field string, max int) error {
	if len(value) > max {
		return fmt.Errorf("%s too long (expected <= %d, got %d)", field, max, len(value))
	}
	return nil
}

// Validate enforces the length limits plugin hosts apply to the
// human- and model-facing fields.
func (m *Manifest) Validate() error {
	checks := []struct {
		value string
		field string
		max   int
	}{
		{m.NameForHuman, "name_for_human", maxNameForHuman},
		{m.NameForModel, "name_for_model", maxNameForModel},
		{m.DescriptionForHuman, "description_for_human", maxDescriptionForHuman},
		{m.DescriptionForModel, "description_for_model", maxDescriptionForModel},
	}

	for _, c := range checks {
		if err := checkLen(c.value, c.field, c.max); err != nil {
			return err
		}
	}

	switch m.Auth.Type {
	case AuthNone, AuthUserHTTP, AuthServiceHTTP, AuthOAuth:
	default:
		return fmt.Errorf("unknown auth type %q", m.Auth.Type)
	}

	if m.API.Type != "openapi" {
		return fmt.Errorf("unsupported api type %q", m.API.Type)
	}

	return nil
}

// Load parses and validates a manifest from its JSON encoding.
func Load(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
