package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/naveenspark/campusdesk/internal/config"
	"github.com/naveenspark/campusdesk/internal/tui"
)

type rootFlags struct {
	apiURL string
	json   bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var flags rootFlags
	var a *app

	root := &cobra.Command{
		Use:   "campusdesk",
		Short: "Terminal console for the campus services",
		Long: `campusdesk is a terminal console for the campus administration services:
auth, staff, timetable, applicants, events, library and certificates.

Run it without arguments to open the interactive console.

Environment Variables:
  CAMPUSDESK_API_BASE_URL   Base URL of the services (default: http://localhost)
  CAMPUSDESK_<SERVICE>_URL  Full root URL for one service, e.g. CAMPUSDESK_STAFF_URL
  CAMPUSDESK_WEB_URL        Web console URL used by "open"
  CAMPUSDESK_TOKEN_STORE    file, sqlite or memory (default: file)
  CAMPUSDESK_TOKEN_PATH     Token file or database path
  CAMPUSDESK_TIMEOUT        Request timeout (default: 30s)
  CAMPUSDESK_LOG_LEVEL      debug, info, warn or error (default: info)
  CAMPUSDESK_LOG_FILE       Log file, "off" to disable (default: ~/.campusdesk/debug.log)
  CAMPUSDESK_ENV_FILE       .env file to read (default: ./.env)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyFlags(&cfg, flags)
			a, err = newApp(cfg, out, errOut)
			if err != nil {
				return err
			}
			a.json = flags.json
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a == nil {
				return nil
			}
			return a.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd.Context(), a)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "Base URL of the services (overrides CAMPUSDESK_API_BASE_URL)")
	root.PersistentFlags().BoolVar(&flags.json, "json", false, "Output JSON instead of human-readable text")

	appFn := func() *app { return a }
	root.AddCommand(
		&cobra.Command{
			Use:   "console",
			Short: "Open the interactive console",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConsole(cmd.Context(), a)
			},
		},
		newLoginCmd(appFn),
		newLogoutCmd(appFn),
		newWhoamiCmd(appFn),
		newRegisterCmd(appFn),
		newTokenCmd(appFn),
		newStudentsCmd(appFn),
		newTeachersCmd(appFn),
		newEventsCmd(appFn),
		newStatsCmd(appFn),
		newHealthCmd(appFn),
		newOpenCmd(appFn),
	)
	return root
}

// applyFlags layers command-line flags over the loaded config.
func applyFlags(cfg *config.Config, flags rootFlags) {
	if flags.apiURL == "" {
		return
	}
	if cfg.WebURL == cfg.APIBaseURL {
		cfg.WebURL = flags.apiURL
	}
	cfg.APIBaseURL = flags.apiURL
}

func runConsole(ctx context.Context, a *app) error {
	p := tea.NewProgram(tui.NewApp(a.gateway, a.cfg.WebURL), tea.WithAltScreen(), tea.WithContext(ctx))
	a.gateway.SetInvalidationHandler(tui.NotifyInvalidated(p))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
