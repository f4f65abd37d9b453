package manifest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func validManifest() *Manifest {
	return &Manifest{
		SchemaVersion:       "v1",
		NameForHuman:        "TODO Plugin",
		NameForModel:        "todo",
		DescriptionForHuman: "Manage your TODO list. Add, remove and view your TODOs.",
		DescriptionForModel: "Plugin for managing a TODO list, you can add, remove and view your TODOs.",
		Auth:                Auth{Type: AuthNone},
		API:                 OpenAPI("http://localhost:3030/openapi.yaml", false),
		LogoURL:             "http://localhost:3030/logo.png",
		ContactEmail:        "support@example.com",
		LegalInfoURL:        "http://example.com/legal",
	}
}

func TestValidate_Accepts(t *testing.T) {
	if err := validManifest().Validate(); err != nil {
		t.Fatalf("expected valid manifest, got: %v", err)
	}
}

func TestValidate_LengthLimits(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Manifest)
		field  string
	}{
		{
			name:   "human name over 20",
			mutate: func(m *Manifest) { m.NameForHuman = "To-Do Plugin Name that is Way TOO LONG!!!" },
			field:  "name_for_human",
		},
		{
			name:   "model name over 50",
			mutate: func(m *Manifest) { m.NameForModel = strings.Repeat("x", 51) },
			field:  "name_for_model",
		},
		{
			name:   "human description over 100",
			mutate: func(m *Manifest) { m.DescriptionForHuman = strings.Repeat("x", 101) },
			field:  "description_for_human",
		},
		{
			name:   "model description over 8000",
			mutate: func(m *Manifest) { m.DescriptionForModel = strings.Repeat("x", 8001) },
			field:  "description_for_model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validManifest()
			tt.mutate(m)

			err := m.Validate()
			if err == nil {
				t.Fatal("expected a length error, got nil")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error should name %s, got: %v", tt.field, err)
			}
		})
	}
}

func TestValidate_BoundaryLengthsPass(t *testing.T) {
	m := validManifest()
	m.NameForHuman = strings.Repeat("x", 20)
	m.NameForModel = strings.Repeat("x", 50)
	m.DescriptionForHuman = strings.Repeat("x", 100)
	m.DescriptionForModel = strings.Repeat("x", 8000)

	if err := m.Validate(); err != nil {
		t.Fatalf("limits are inclusive, got: %v", err)
	}
}

func TestValidate_UnknownAuthType(t *testing.T) {
	m := validManifest()
	m.Auth.Type = "bearer"

	if err := m.Validate(); err == nil {
		t.Fatal("expected error for unknown auth type")
	}
}

func TestValidate_UnsupportedAPIType(t *testing.T) {
	m := validManifest()
	m.API.Type = "graphql"

	if err := m.Validate(); err == nil {
		t.Fatal("expected error for unsupported api type")
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	data, err := json.Marshal(validManifest())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	m, err := Load(data)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if m.NameForModel != "todo" {
		t.Errorf("unexpected model name: %s", m.NameForModel)
	}
	if m.Auth.Type != AuthNone {
		t.Errorf("unexpected auth type: %s", m.Auth.Type)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	m := validManifest()
	m.NameForHuman = strings.Repeat("x", 21)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if _, err := Load(data); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestRouter_ServesManifest(t *testing.T) {
	engine, err := Router(validManifest(), map[string]any{"openapi": "3.0.0"}, []byte("png-bytes"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, WellKnownPath, nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got Manifest
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if got.API.URL != "http://localhost:3030/openapi.yaml" {
		t.Errorf("unexpected api url: %s", got.API.URL)
	}
}

func TestRouter_ServesOpenAPIAsYAML(t *testing.T) {
	engine, err := Router(validManifest(), map[string]any{"openapi": "3.0.0"}, nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("expected yaml content type, got %s", ct)
	}
	if !strings.Contains(w.Body.String(), "openapi: 3.0.0") {
		t.Errorf("document not rendered as yaml: %s", w.Body.String())
	}
}

func TestRouter_ServesLogo(t *testing.T) {
	logo := []byte{0x89, 0x50, 0x4e, 0x47}
	engine, err := Router(validManifest(), map[string]any{}, logo)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/logo.png", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected png content type, got %s", ct)
	}
	if w.Body.String() != string(logo) {
		t.Error("logo bytes not served verbatim")
	}
}

func TestRouter_RejectsInvalidManifest(t *testing.T) {
	m := validManifest()
	m.NameForHuman = strings.Repeat("x", 21)

	if _, err := Router(m, map[string]any{}, nil); err == nil {
		t.Fatal("expected validation error")
	}
}
