package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/hackboard/internal/config"
	"github.com/naveenspark/hackboard/internal/logging"
	"github.com/naveenspark/hackboard/internal/session"
	"github.com/naveenspark/hackboard/internal/tui"
	"github.com/naveenspark/hackboard/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", describeError(err))
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := config.Load()
	closeLog, err := logging.Setup(cfg.Debug, cfg.LogPath())
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // best-effort flush on exit

	sess := session.New(session.NewFileStore(cfg.SessionPath()),
		session.WithTTL(cfg.SessionTTL),
		session.WithTokenOverride(cfg.TokenOverride),
	)
	if err := sess.Init(); err != nil {
		return err
	}
	api := client.New(cfg.APIURL, sess, client.WithTimeout(cfg.Timeout))

	if len(args) == 0 {
		return launchTUI(cfg, api, sess)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newCLI(cfg, api, sess, os.Stdin, os.Stdout).dispatch(ctx, args)
}

func launchTUI(cfg config.Config, api *client.Client, sess *session.Session) error {
	app := tui.NewApp(tui.Deps{
		Client:  api,
		Session: sess,
		Policy:  cfg.ResultsPolicy,
		WebURL:  cfg.WebURL,
		Version: version,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// describeError turns err into the line printed after "error:".
func describeError(err error) string {
	switch {
	case errors.Is(err, client.ErrSessionRejected):
		return "your session has expired, run 'hackboard login' to sign in again"
	case errors.Is(err, client.ErrAuthRequired):
		return "please sign in first: hackboard login"
	}
	return client.UserMessage(err, err.Error())
}
