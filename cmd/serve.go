package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mzashi/plugkit/internal/manifest"
)

var (
	serveManifestPath string
	serveOpenAPIPath  string
	serveLogoPath     string
	serveAddr         string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a plugin manifest, OpenAPI document and logo",
	Long: `Serves the discovery endpoints an AI plugin host probes for:

  /.well-known/ai-plugin.json    the manifest
  <api url path>                 the OpenAPI document, as YAML
  <logo url path>                the plugin logo, as PNG

The OpenAPI and logo routes are taken from the URLs inside the manifest,
so what you advertise is exactly what you serve.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(serveManifestPath)
		if err != nil {
			return fmt.Errorf("read manifest: %w", err)
		}
		m, err := manifest.Load(data)
		if err != nil {
			return err
		}

		docData, err := os.ReadFile(serveOpenAPIPath)
		if err != nil {
			return fmt.Errorf("read openapi document: %w", err)
		}
		var doc map[string]any
		if err := yaml.Unmarshal(docData, &doc); err != nil {
			return fmt.Errorf("parse openapi document: %w", err)
		}

		var logo []byte
		if serveLogoPath != "" {
			if logo, err = os.ReadFile(serveLogoPath); err != nil {
				return fmt.Errorf("read logo: %w", err)
			}
		}

		engine, err := manifest.Router(m, doc, logo)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen)
		green.Fprintf(os.Stderr, "Serving %s on %s\n", m.NameForModel, serveAddr)
		fmt.Fprintf(os.Stderr, "  manifest: http://%s%s\n", serveAddr, manifest.WellKnownPath)

		return engine.Run(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveManifestPath, "manifest", "ai-plugin.json", "path to the manifest JSON file")
	serveCmd.Flags().StringVar(&serveOpenAPIPath, "openapi", "openapi.yaml", "path to the OpenAPI YAML document")
	serveCmd.Flags().StringVar(&serveLogoPath, "logo", "", "path to the plugin logo PNG")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:3030", "listen address")
}
