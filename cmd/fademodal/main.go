package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rubber_duck/fademodal/internal/config"
	"github.com/rubber_duck/fademodal/internal/modal"
	"github.com/rubber_duck/fademodal/internal/phoenix"
	"github.com/rubber_duck/fademodal/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath     string
	debug          bool
	noBackdrop     bool
	noCloseOnClick bool
	noKeyboard     bool
	duration       time.Duration
	easing         string
	themeName      string
	remoteURL      string
	topic          string
	title          string
	className      string

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fademodal [body.md]",
	Short: "Terminal host for a fading modal dialog",
	Long: `fademodal shows a modal dialog that fades in and out over a dimmed
backdrop. The body is rendered from markdown.

Keys: space toggles, enter or o shows, esc dismisses, q quits.
Clicking outside the dialog closes it when the backdrop is enabled.

With --remote-url the modal also listens on a Phoenix channel for
modal:show, modal:hide and modal:toggle, and reports modal:shown and
modal:hidden back.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath == "" {
			if configPath, err = config.DefaultPath(); err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}
		}
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		applyFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		zc := zap.NewProductionConfig()
		zc.OutputPaths = []string{cfg.Logging.File}
		zc.ErrorOutputPaths = []string{cfg.Logging.File}
		if cfg.Logging.Debug {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if logger, err = zc.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the effective configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ~/.fademodal/config.yaml)")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.BoolVar(&noBackdrop, "no-backdrop", false, "do not paint a backdrop")
	flags.BoolVar(&noCloseOnClick, "no-close-on-click", false, "ignore clicks on the backdrop")
	flags.BoolVar(&noKeyboard, "no-keyboard", false, "ignore the escape key")
	flags.DurationVar(&duration, "duration", 0, "fade duration for both directions")
	flags.StringVar(&easing, "easing", "", "easing for both directions ("+strings.Join(modal.Easings(), ", ")+")")
	flags.StringVar(&themeName, "theme", "dark", "color theme (dark, light)")
	flags.StringVar(&remoteURL, "remote-url", "", "Phoenix socket URL for remote control")
	flags.StringVar(&topic, "topic", "", "Phoenix channel topic")
	flags.StringVar(&title, "title", "", "dialog title")
	flags.StringVar(&className, "class", "", "class name reported with the resolved styles")

	rootCmd.AddCommand(configCmd)
}

// applyFlags lets flags the user set win over the config file.
func applyFlags(cmd *cobra.Command) {
	changed := cmd.Flags().Changed
	off := false
	if changed("debug") {
		cfg.Logging.Debug = debug
	}
	if changed("no-backdrop") && noBackdrop {
		cfg.Modal.Backdrop = &off
	}
	if changed("no-close-on-click") && noCloseOnClick {
		cfg.Modal.CloseOnClick = &off
	}
	if changed("no-keyboard") && noKeyboard {
		cfg.Modal.Keyboard = &off
	}
	if changed("duration") {
		cfg.Modal.Animation.Show.Duration = duration.String()
		cfg.Modal.Animation.Hide.Duration = duration.String()
	}
	if changed("easing") {
		cfg.Modal.Animation.Show.Easing = easing
		cfg.Modal.Animation.Hide.Easing = easing
	}
	if changed("remote-url") {
		cfg.Remote.URL = remoteURL
	}
	if changed("topic") {
		cfg.Remote.Topic = topic
	}
	if changed("title") {
		cfg.Modal.Title = title
	}
	if changed("class") {
		cfg.Modal.ClassName = className
	}
}

func run(cmd *cobra.Command, args []string) error {
	body := cfg.Modal.Body
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read body: %w", err)
		}
		body = string(data)
	}

	rc := phoenix.Config{
		URL:    cfg.Remote.URL,
		APIKey: cfg.Remote.APIKey,
		Topic:  cfg.Remote.Topic,
	}
	var remote phoenix.Remote
	if rc.URL != "" {
		remote = phoenix.New(rc, nil, logger.Named("remote"))
	}

	model := ui.NewModel(ui.Options{
		Modal:        cfg.Options(),
		Title:        cfg.Modal.Title,
		Body:         body,
		Theme:        themeName,
		Remote:       remote,
		RemoteConfig: rc,
		Logger:       logger,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if remote != nil {
		remote.SetSender(p)
	}

	logger.Info("starting", zap.String("config", configPath), zap.Bool("remote", remote != nil))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program failed: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
