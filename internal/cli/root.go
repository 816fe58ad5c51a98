package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"didyouknow/internal/config"
	"didyouknow/internal/facts"
	"didyouknow/internal/platform"
	"didyouknow/internal/tui"
)

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop()

// app carries state shared between the root command and its subcommands.
type app struct {
	configPath string
	debug      bool
	interval   time.Duration

	cfg *config.Config
}

// NewRootCmd creates the root command. Without a subcommand it runs the
// interactive widget.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Show random facts in your terminal",
		Long:          "didyouknow shows a random fact in a card. Press space for another one, c to copy it, s to share it.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			config.CloseLogFile()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runWidget(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/didyouknow/config.yaml)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	cmd.Flags().DurationVar(&a.interval, "interval", 0, "how often to refill the prefetched fact (overrides config)")

	cmd.AddCommand(newFactCmd(a))
	return cmd
}

const rootCmdExample = `  # Open the widget
  didyouknow

  # Facts in German, served by Gemini
  FACT_LANGUAGE=de FACT_SOURCE=gemini GOOGLE_API_KEY=... didyouknow

  # Print one fact and copy it to the clipboard
  didyouknow fact --copy`

// setup loads the configuration and initializes logging. The widget owns the
// terminal, so its logs go to a file; other commands log to stderr.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.interval < 0 {
		return fmt.Errorf("interval must be positive, got %s", a.interval)
	}
	if a.interval > 0 {
		cfg.PrefetchInterval = a.interval
	}
	if a.debug {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg

	logFile := ""
	if cmd == cmd.Root() {
		logFile = cfg.LogFile
		if logFile == "" {
			if logFile, err = config.DefaultLogFile(); err != nil {
				return fmt.Errorf("failed to resolve log file: %w", err)
			}
		}
	}
	if err := config.InitLogger(cfg.LogLevel, logFile); err != nil {
		return err
	}
	logger = config.ComponentLogger("cli")
	logger.Debug().
		Str("source", cfg.Source).
		Str("language", cfg.Language).
		Dur("prefetch_interval", cfg.PrefetchInterval).
		Msg("configuration loaded")
	return nil
}

func (a *app) runWidget(ctx context.Context) error {
	source, err := a.newSource(ctx)
	if err != nil {
		return err
	}

	prefs, err := config.LoadPreferences()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load preferences, using defaults")
		prefs = config.DefaultPreferences()
	}

	return tui.Run(ctx, tui.Options{
		Source:            source,
		Capabilities:      a.capabilities(),
		ControllerOptions: a.controllerOptions(),
		Preferences:       prefs,
		Logger:            config.ComponentLogger("tui"),
	})
}

// newSource builds the configured fact source.
func (a *app) newSource(ctx context.Context) (facts.Source, error) {
	switch a.cfg.Source {
	case config.SourceGemini:
		client, err := a.cfg.CreateClient(ctx)
		if err != nil {
			return nil, err
		}
		return facts.NewGeminiSource(client, a.cfg.Model, a.cfg.Language)
	default:
		client := &http.Client{Timeout: a.cfg.Timeout}
		return facts.NewHTTPSource(client, a.cfg.Endpoint, a.cfg.Language), nil
	}
}

// capabilities detects what this terminal session can do. The prompt
// capability is supplied by the widget itself.
func (a *app) capabilities() facts.Capabilities {
	return facts.Capabilities{
		Clipboard:  platform.NewSystemClipboard(),
		LegacyCopy: platform.NewTerminalClipboard(os.Stderr),
		Share:      platform.NewCommandSharer(a.cfg.ShareCommand),
	}
}

func (a *app) controllerOptions() []facts.Option {
	return []facts.Option{
		facts.WithLogger(config.GetLogger()),
		facts.WithStatusTTL(a.cfg.StatusTTL),
		facts.WithPrefetchInterval(a.cfg.PrefetchInterval),
	}
}
