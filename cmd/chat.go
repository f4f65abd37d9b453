package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mzashi/plugkit/internal/config"
	"github.com/mzashi/plugkit/internal/openai"
	"github.com/mzashi/plugkit/internal/ui"
)

// maxChatHistory caps how many messages ride along with each request.
const maxChatHistory = 20

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start a conversational session. Ask questions and have context carry
over between messages.

Type 'exit' or 'quit' to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		cyan := color.New(color.FgCyan, color.Bold)
		dim := color.New(color.FgHiBlack)
		green := color.New(color.FgGreen)

		fmt.Fprintln(os.Stderr)
		cyan.Fprintln(os.Stderr, "  plugkit chat")
		dim.Fprintf(os.Stderr, "  Type 'exit' to quit.\n\n")

		scanner := bufio.NewScanner(os.Stdin)
		var history []openai.ChatMessage

		for {
			green.Fprint(os.Stderr, "  you → ")
			if !scanner.Scan() {
				break
			}

			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}
			if input == "exit" || input == "quit" {
				fmt.Fprintln(os.Stderr)
				break
			}

			history = append(history, openai.User(input))
			if len(history) > maxChatHistory {
				history = history[len(history)-maxChatHistory:]
			}

			req := openai.NewChatRequest(history...)
			if cfg.Model != "" {
				req.Model = openai.Model(cfg.Model)
			}

			sp := ui.NewSpinner("Thinking...")
			sp.Start()
			resp, err := client.Complete(cmd.Context(), req)
			sp.Stop()

			if err != nil {
				fmt.Fprintf(os.Stderr, "  Error: %v\n\n", err)
				continue
			}

			msg := resp.Message()
			if msg == nil {
				fmt.Fprintf(os.Stderr, "  Error: empty response\n\n")
				continue
			}

			history = append(history, openai.Assistant(msg.Content))

			cyan.Fprint(os.Stderr, "  ai → ")
			fmt.Fprintf(os.Stderr, "%s\n\n", msg.Content)
		}

		return nil
	},
}
