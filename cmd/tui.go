package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/tui"
)

var (
	tuiLogFile  string
	noAltScreen bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the portfolio in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		site, err := content.Load(cfg.Content.Path)
		if err != nil {
			return err
		}

		// Anything written to stderr would tear the alt screen.
		var out io.Writer = io.Discard
		if tuiLogFile != "" {
			f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer f.Close()
			out = f
		}
		logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: logLevel()}))

		subject := cfg.Relay.Subject
		if subject == "" {
			subject = site.Subject()
		}

		opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
		if !noAltScreen {
			opts = append(opts, tea.WithAltScreen())
		}
		program := tea.NewProgram(tui.New(tui.Config{
			Site:             site,
			Relay:            contact.NewHTTPRelay(cfg.Relay.URL, cfg.Relay.Timeout, logger),
			Subject:          subject,
			ActivationMargin: cfg.Nav.TUIActivationMargin,
			TruncateLength:   cfg.Disclosure.TruncateLength,
			Logger:           logger,
		}), opts...)

		if _, err := program.Run(); err != nil {
			return fmt.Errorf("running tui: %w", err)
		}
		return nil
	},
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "append logs to this file instead of discarding them")
	tuiCmd.Flags().BoolVar(&noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	rootCmd.AddCommand(tuiCmd)
}
