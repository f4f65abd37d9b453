package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mzashi/plugkit/internal/config"
	"github.com/mzashi/plugkit/internal/openai"
	"github.com/mzashi/plugkit/internal/ui"
	"github.com/mzashi/plugkit/internal/vector"
)

var flushIndex bool

// embedBatchSize keeps embedding requests under the API's input limits.
const embedBatchSize = 64

var indexCmd = &cobra.Command{
	Use:   "index <file>...",
	Short: "Embed text files into the local vector index",
	Long: `Reads each file, embeds its non-empty lines and adds them to the local
vector store so 'plugkit search' can find them semantically.

Use --flush to wipe the existing index before rebuilding.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		cyan := color.New(color.FgCyan)
		green := color.New(color.FgGreen)
		yellow := color.New(color.FgYellow)

		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		if cfg.APIKey == "" {
			return fmt.Errorf("no API key configured; run 'plugkit config set-key' or set OPENAI_API_KEY")
		}

		client := openai.NewClient(cfg.APIKey)
		if cfg.BaseURL != "" {
			client.SetBaseURL(cfg.BaseURL)
		}

		store := vector.NewStore()
		if flushIndex {
			if err := store.Flush(); err != nil {
				return fmt.Errorf("flush failed: %w", err)
			}
			yellow.Println("Flushed existing index")
		} else if err := store.Load(); err == nil {
			fmt.Printf("Extending existing index (%d documents)\n", store.Len())
		}

		cyan.Println("Building index...")

		sp := ui.NewSpinner("Embedding...")
		sp.Start()

		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				sp.Fail("indexing failed")
				return fmt.Errorf("read %s: %w", path, err)
			}

			var lines []string
			for _, line := range strings.Split(string(data), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					lines = append(lines, line)
				}
			}
			if len(lines) == 0 {
				continue
			}

			for i := 0; i < len(lines); i += embedBatchSize {
				batch := lines[i:min(i+embedBatchSize, len(lines))]
				vectors, err := client.EmbedStrings(cmd.Context(), batch)
				if err != nil {
					sp.Fail("indexing failed")
					return fmt.Errorf("embed %s: %w", path, err)
				}
				for j, vec := range vectors {
					store.Add(vector.Document{
						Text:   batch[j],
						Source: path,
						Vector: vec,
					})
				}
			}
		}

		if err := store.Save(); err != nil {
			sp.Fail("indexing failed")
			return fmt.Errorf("save index: %w", err)
		}

		sp.Success(fmt.Sprintf("indexed %d documents", store.Len()))
		green.Printf("Done in %s\n", time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVar(&flushIndex, "flush", false, "wipe the existing index before rebuilding")
}
