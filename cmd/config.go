package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mzashi/plugkit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage plugkit configuration",
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Set your OpenAI API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetAPIKey(args[0]); err != nil {
			return fmt.Errorf("failed to save API key: %w", err)
		}
		fmt.Println("API key saved successfully.")
		return nil
	},
}

var setModelCmd = &cobra.Command{
	Use:   "set-model <model-name>",
	Short: "Set the chat model (default: gpt-4-0613)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetModel(args[0]); err != nil {
			return fmt.Errorf("failed to save model: %w", err)
		}
		fmt.Printf("Model set to %s.\n", args[0])
		return nil
	},
}

var setURLCmd = &cobra.Command{
	Use:   "set-url <base-url>",
	Short: "Point at an alternative OpenAI-compatible API root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetBaseURL(args[0]); err != nil {
			return fmt.Errorf("failed to save base URL: %w", err)
		}
		fmt.Printf("Base URL set to %s.\n", args[0])
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Model:      %s\n", cfg.Model)
		fmt.Printf("API Key:    %s\n", maskKey(cfg.APIKey))
		if cfg.BaseURL != "" {
			fmt.Printf("Base URL:   %s\n", cfg.BaseURL)
		}
		fmt.Printf("Config Dir: %s\n", config.Dir())
		return nil
	},
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) < 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func init() {
	configCmd.AddCommand(setKeyCmd)
	configCmd.AddCommand(setModelCmd)
	configCmd.AddCommand(setURLCmd)
	configCmd.AddCommand(showCmd)
}
