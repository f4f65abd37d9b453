package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plugkit",
	Short: "Toolkit for building and testing AI plugins",
	Long: `plugkit talks to OpenAI-compatible chat APIs and recovers structured
JSON from streamed responses, even when the model wraps its answer in prose.

Examples:
  plugkit ask "list three colors as a JSON object"
  plugkit chat
  plugkit index corpus.txt
  plugkit search "how do I rotate logs"
  plugkit serve --manifest ai-plugin.json --openapi openapi.yaml --logo logo.png`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(serveCmd)
}

// SetVersion stamps the build version onto the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the entry point called from main.
func Execute() error {
	return rootCmd.Execute()
}
