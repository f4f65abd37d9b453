package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mzashi/plugkit/internal/config"
	"github.com/mzashi/plugkit/internal/openai"
	"github.com/mzashi/plugkit/internal/ui"
)

var (
	askModel       string
	askTemperature float64
	askSystem      string
	askQuiet       bool
)

var askCmd = &cobra.Command{
	Use:   "ask <prompt>",
	Short: "Stream a completion and print the first JSON object it contains",
	Long: `Sends the prompt as a streaming chat completion and watches the token
stream for a JSON object. The moment the object closes, the stream is cut
off and the object is printed, so you pay only for the tokens you need.

Prose the model produced before the JSON goes to stderr; the JSON itself
goes to stdout, ready for piping into jq or another tool.`,
	Args: cobra.MinimumNArgs(1),
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
		if !askQuiet {
			client.TokenWriter = ui.Echo(os.Stderr, "  ")
		}

		prompt := strings.Join(args, " ")
		messages := []openai.ChatMessage{}
		if askSystem != "" {
			messages = append(messages, openai.System(askSystem))
		}
		messages = append(messages, openai.User(prompt))

		req := openai.NewChatRequest(messages...)
		req.Stream = true
		req.SetTemperature(askTemperature)
		if askModel != "" {
			req.Model = openai.Model(askModel)
		} else if cfg.Model != "" {
			req.Model = openai.Model(cfg.Model)
		}

		result, err := client.StreamJSON(cmd.Context(), req)
		if err != nil {
			return err
		}
		if !askQuiet {
			fmt.Fprintln(os.Stderr)
		}

		if result.JSON == "" {
			if text := strings.TrimSpace(result.Antecedent); text != "" {
				fmt.Fprintln(os.Stderr, text)
			}
			return fmt.Errorf("response contained no JSON object")
		}

		if text := strings.TrimSpace(result.Antecedent); text != "" {
			fmt.Fprintln(os.Stderr, text)
		}
		fmt.Println(result.JSON)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "model to use (overrides config)")
	askCmd.Flags().Float64VarP(&askTemperature, "temperature", "t", 0.7, "sampling temperature, clamped to [0, 2]")
	askCmd.Flags().StringVarP(&askSystem, "system", "s", "", "system prompt to prepend")
	askCmd.Flags().BoolVarP(&askQuiet, "quiet", "q", false, "suppress the live token echo")
}
