package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"NutriGini/internal/assistant"
	"NutriGini/internal/chain"
	"NutriGini/internal/completion"
	"NutriGini/internal/config"
	"NutriGini/internal/prompts"
	"NutriGini/internal/utility"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	furtherQuery string
	rawOutput    bool
	showRoute    bool
	wordWrap     int
)

var rootCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask the NutriGINI nutrition assistant a question",
	Long: `Ask the NutriGINI nutrition assistant a question from the terminal.

The query is routed to the best matching nutrition prompt, answered by the
configured language model and rendered as Markdown. Without a query the
sample question from the web page is used.

Configuration is read from the environment and an optional .env file
(SECRET, LLM_PROVIDER, LLM_MODEL, PROMPTS_FILE, ...).`,
	Example: `  ask "What should I eat before a morning run?"
  ask "Plan my meals for the week" --further "I am allergic to peanuts"`,
	SilenceUsage: true,
	RunE:         runAsk,
}

func init() {
	rootCmd.Flags().StringVarP(&furtherQuery, "further", "f", "", "further instructions that clarify the query")
	rootCmd.Flags().BoolVar(&rawOutput, "raw", false, "print the model's Markdown without rendering it")
	rootCmd.Flags().BoolVar(&showRoute, "show-route", false, "print which prompt answered")
	rootCmd.Flags().IntVar(&wordWrap, "width", 80, "word wrap width for rendered output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("could not load configuration: %w", err)
	}
	utility.SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.IsProduction())

	registry, err := prompts.Load(cfg.PromptsFile)
	if err != nil {
		return fmt.Errorf("could not load prompt templates: %w", err)
	}
	completer, err := completion.New(cfg.LLM, &log.Logger)
	if err != nil {
		return err
	}
	a := assistant.New(chain.Build(completer, registry), nil)

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		query = assistant.SampleQuery
		fmt.Fprintf(cmd.ErrOrStderr(), "No query given, asking: %s\n", query)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	var turn *assistant.Turn
	if furtherQuery != "" {
		turn, err = a.Clarify(ctx, query, furtherQuery)
	} else {
		turn, err = a.Ask(ctx, query)
	}
	if err != nil {
		return err
	}

	if showRoute {
		fmt.Fprintf(cmd.ErrOrStderr(), "Answered by: %s\n", turn.Destination)
	}
	return printAnswer(cmd, turn.Output)
}

func printAnswer(cmd *cobra.Command, markdown string) error {
	out := cmd.OutOrStdout()
	if rawOutput {
		_, err := fmt.Fprintln(out, markdown)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		// Plain text is still readable.
		_, werr := fmt.Fprintln(out, markdown)
		return werr
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
