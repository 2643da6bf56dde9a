package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"

	"github.com/naveenspark/hackboard/internal/config"
	"github.com/naveenspark/hackboard/internal/session"
	"github.com/naveenspark/hackboard/pkg/client"
)

// cli runs one subcommand against the API.
type cli struct {
	cfg  config.Config
	api  *client.Client
	sess *session.Session
	in   *bufio.Reader
	out  io.Writer
	now  func() time.Time

	// readSecret reads a line without echoing it when stdin is a terminal.
	readSecret func(label string) (string, error)
}

func newCLI(cfg config.Config, api *client.Client, sess *session.Session, in io.Reader, out io.Writer) *cli {
	c := &cli{
		cfg:  cfg,
		api:  api,
		sess: sess,
		in:   bufio.NewReader(in),
		out:  out,
		now:  time.Now,
	}
	c.readSecret = c.prompt
	if f, ok := in.(*os.File); ok && term.IsTerminal(f.Fd()) {
		c.readSecret = func(label string) (string, error) {
			fmt.Fprint(c.out, label)
			b, err := term.ReadPassword(f.Fd())
			fmt.Fprintln(c.out)
			if err != nil {
				return "", fmt.Errorf("read %s: %w", strings.TrimSpace(strings.TrimSuffix(label, ": ")), err)
			}
			return strings.TrimSpace(string(b)), nil
		}
	}
	return c
}

type command struct {
	name    string
	summary string
	run     func(c *cli, ctx context.Context, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"login", "Sign in with email and password", (*cli).login},
		{"logout", "Clear the saved session", (*cli).logout},
		{"register", "Create a student account", (*cli).register},
		{"list", "List hackathons [--search query]", (*cli).list},
		{"mine", "List the hackathons you joined", (*cli).mine},
		{"show", "Show one hackathon <id>", (*cli).show},
		{"join", "Join with an invite code <code> [--passkey p]", (*cli).join},
		{"submit", "Submit to a hackathon <id> --kind k [--file path | --text t]", (*cli).submit},
		{"result", "Show your evaluation <id>", (*cli).result},
		{"open", "Open the attachment of <id> in a browser [--web]", (*cli).open},
	}
}

func (c *cli) dispatch(ctx context.Context, args []string) error {
	switch args[0] {
	case "--version", "version", "-v":
		fmt.Fprintln(c.out, "hackboard "+version)
		return nil
	case "help", "--help", "-h":
		printHelp(c.out)
		return nil
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			err := cmd.run(c, ctx, args[1:])
			if errors.Is(err, client.ErrSessionRejected) {
				if lerr := c.sess.Logout(); lerr != nil {
					slog.Warn("clearing rejected session", "err", lerr)
				}
			}
			return err
		}
	}
	return fmt.Errorf("unknown command %q (run 'hackboard help')", args[0])
}

// prompt prints label and reads one trimmed line from stdin.
func (c *cli) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptCtx adapts prompt to the picker's prompt signature.
func (c *cli) promptCtx(_ context.Context, label string) (string, error) {
	return c.prompt(label + ": ")
}

func (c *cli) requireAuth(returnTo string) error {
	if !c.sess.IsAuthenticated() {
		return &client.AuthRequiredError{ReturnTo: returnTo}
	}
	return nil
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

// parseArgs parses flags that may appear before or after positional
// arguments and returns the positionals in order.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// oneArg returns the single positional argument a command needs.
func oneArg(positional []string, what string) (string, error) {
	if len(positional) != 1 || strings.TrimSpace(positional[0]) == "" {
		return "", &client.ValidationError{Field: what, Reason: "expected exactly one " + what}
	}
	return strings.TrimSpace(positional[0]), nil
}
