package manifest

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// WellKnownPath is where plugin hosts look for the manifest.
const WellKnownPath = "/.well-known/ai-plugin.json"

// Router builds a gin engine serving the manifest, the OpenAPI document
// and the plugin logo. The API document and logo routes are derived from
// the URLs the manifest itself advertises, so the served paths always
// match what a host will probe.
func Router(m *Manifest, openapi any, logo []byte) (*gin.Engine, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	apiURL, err := url.Parse(m.API.URL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}

	logoURL, err := url.Parse(m.LogoURL)
	if err != nil {
		return nil, fmt.Errorf("parse logo url: %w", err)
	}

	doc, err := yaml.Marshal(openapi)
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET(WellKnownPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, m)
	})

	engine.GET(apiURL.Path, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", doc)
	})

	engine.GET(logoURL.Path, func(c *gin.Context) {
		c.Data(http.StatusOK, "image/png", logo)
	})

	return engine, nil
}
