package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mzashi/plugkit/internal/config"
	"github.com/mzashi/plugkit/internal/openai"
	"github.com/mzashi/plugkit/internal/vector"
)

var searchTopK int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Semantically search the local vector index",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		if cfg.APIKey == "" {
			return fmt.Errorf("no API key configured; run 'plugkit config set-key' or set OPENAI_API_KEY")
		}

		store := vector.NewStore()
		if err := store.Load(); err != nil {
			return err
		}

		client := openai.NewClient(cfg.APIKey)
		if cfg.BaseURL != "" {
			client.SetBaseURL(cfg.BaseURL)
		}

		query := strings.Join(args, " ")
		vectors, err := client.EmbedStrings(cmd.Context(), []string{query})
		if err != nil {
			return fmt.Errorf("embed query: %w", err)
		}

		matches := store.Search(vectors[0], searchTopK)
		if len(matches) == 0 {
			fmt.Println("no matches")
			return nil
		}

		dim := color.New(color.FgHiBlack)
		for _, m := range matches {
			fmt.Printf("%.4f  %s\n", m.Score, m.Item.Text)
			dim.Printf("        %s\n", m.Item.Source)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top", "k", 5, "number of results to return")
}
