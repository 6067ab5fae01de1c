package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"elasticsense/config"
	"elasticsense/content"
	"elasticsense/services"
	"elasticsense/services/architecture"
	"elasticsense/services/llm"
	"elasticsense/services/quiz"
	"elasticsense/services/render"
	"elasticsense/services/session"
	"elasticsense/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Command flags
var (
	flagProvider string
	flagModel    string
	flagLogFile  string
	flagLogLevel string
	flagRuleset  string
	flagWidth    int
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "elasticsense",
		Short:         "Terminal study companion for Elastic Solutions Architect interviews",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), tui.ModulesView, "")
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "LLM provider: googleai, openai or anthropic (overrides LLM_PROVIDER)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "model name (overrides LLM_MODEL)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "log file path (overrides LOG_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(
		viewCmd("modules", "Browse the learning path", tui.ModulesView),
		viewCmd("tutor", "Chat with the AI tutor", tui.TutorView),
		viewCmd("interview", "Run a mock interview", tui.InterviewView),
		viewCmd("architect", "Design a cluster for a scenario", tui.ArchitectView),
		newQuizCmd(),
		newCatalogCmd(),
		newRenderCmd(),
	)

	return rootCmd
}

func viewCmd(use, short string, mode tui.ViewMode) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), mode, "")
		},
	}
}

func newQuizCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz [topic]",
		Short: "Take a generated quiz, optionally starting on a topic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var topic string
			if len(args) == 1 {
				catalog, err := content.Load()
				if err != nil {
					return err
				}
				resolved, ok := quiz.ResolveTopic(args[0], catalog.Titles())
				if !ok {
					return fmt.Errorf("unknown quiz topic %q, choose one of: %s", args[0], strings.Join(catalog.Titles(), ", "))
				}
				topic = resolved
			}
			return runTUI(cmd.Context(), tui.QuizView, topic)
		},
	}
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [query]",
		Short: "List the learning modules, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := content.Load()
			if err != nil {
				return err
			}

			modules := services.NewModuleService(catalog, nil).Search(strings.Join(args, " "))
			if len(modules) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No modules match.")
				return nil
			}
			for _, m := range modules {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n    %s\n    Topics: %s\n\n",
					strings.ToUpper(m.ID), m.Title, m.Description, strings.Join(m.Topics, ", "))
			}
			return nil
		},
	}
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render markdown from a file or stdin the way the views do",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, ok := render.ParseRuleset(flagRuleset)
			if !ok {
				return fmt.Errorf("unknown ruleset %q, use chat or module", flagRuleset)
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			raw, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), tui.PaintBlocks(render.Render(string(raw), rules), flagWidth))
			return nil
		},
	}

	cmd.Flags().StringVar(&flagRuleset, "ruleset", "module", "line rules to apply: chat or module")
	cmd.Flags().IntVar(&flagWidth, "width", 80, "wrap width")
	return cmd
}

func loadConfig() *config.Config {
	cfg := config.Load()
	if flagProvider != "" {
		cfg.Provider = strings.ToLower(flagProvider)
		if flagModel == "" && os.Getenv("LLM_MODEL") == "" {
			cfg.Model = config.DefaultModel(cfg.Provider)
		}
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg
}

func runTUI(ctx context.Context, mode tui.ViewMode, quizTopic string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("elasticsense requires an interactive terminal")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := loadConfig()

	logFile, err := config.SetupLogging(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logFile.Close()

	log.Infof("Starting elasticsense with provider %s", cfg.Provider)

	catalog, err := content.Load()
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Services{
		Catalog:   catalog,
		Session:   session.New(client, session.ModeTutor, session.WithTips(catalog.Tips)),
		Modules:   services.NewModuleService(catalog, client),
		Quizzes:   quiz.NewGenerator(client),
		Architect: architecture.NewGenerator(client),
	}, mode)
	if quizTopic != "" {
		app = app.WithQuiz(quizTopic)
	}

	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		log.Errorf("Failed to run UI: %v", err)
		return fmt.Errorf("failed to run UI: %w", err)
	}

	log.Infof("Successfully shut down")
	return nil
}
