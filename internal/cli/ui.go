package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinelog/internal/adapter"
	"github.com/mmcdole/cinelog/internal/console"
	"github.com/mmcdole/cinelog/internal/domain"
	"github.com/mmcdole/cinelog/internal/library"
	"github.com/mmcdole/cinelog/internal/store"
	"github.com/mmcdole/cinelog/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewMenuCommand creates the menu command.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the numbered console menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rootOpts.session.openService(cmd.Context())
			if err != nil {
				return err
			}
			return runMenu(cmd, rootOpts.session, svc)
		},
	}
}

// NewTUICommand creates the tui command.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the full screen interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rootOpts.session.openService(cmd.Context())
			if err != nil {
				return err
			}
			return runTUI(cmd, rootOpts.session, svc)
		},
	}
}

// runDefault starts the front end chosen by ui.mode, running the setup
// flow first when no database is configured and someone can answer it.
func runDefault(cmd *cobra.Command, opts *RootOptions) error {
	s := opts.session
	ctx := cmd.Context()
	interactive := isInteractive(cmd.InOrStdin())

	if !s.cfg.IsConfigured() {
		if !interactive {
			return errNotConfigured
		}
		if err := runSetupFlow(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), s); err != nil {
			return err
		}
	}

	svc, err := s.openService(ctx)
	if err != nil {
		return err
	}

	switch s.cfg.UI.Mode {
	case adapter.UIModeTUI:
		return runTUI(cmd, s, svc)
	case adapter.UIModeMenu:
		return runMenu(cmd, s, svc)
	}
	if interactive {
		return runTUI(cmd, s, svc)
	}
	return runMenu(cmd, s, svc)
}

func runMenu(cmd *cobra.Command, s *session, svc *library.Service) error {
	sortBy, err := s.sortField("")
	if err != nil {
		return err
	}
	menu := console.New(svc, cmd.InOrStdin(), cmd.OutOrStdout(), s.logger)
	menu.SetSort(sortBy)
	return menu.Run(cmd.Context())
}

func runTUI(cmd *cobra.Command, s *session, svc *library.Service) error {
	sortBy, err := s.sortField("")
	if err != nil {
		return err
	}

	model := tui.NewModel(svc, s.logger, sortBy)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	s.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		s.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	s.logger.Info("shutting down")
	return nil
}

// isInteractive reports whether in is a terminal
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runSetupFlow asks for the database path until one can be opened,
// offering to create it when the file does not exist, then saves it.
func runSetupFlow(ctx context.Context, in io.Reader, out io.Writer, s *session) error {
	scanner := bufio.NewScanner(in)
	ask := func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			return "", fmt.Errorf("setup cancelled: %w", io.ErrUnexpectedEOF)
		}
		return strings.TrimSpace(scanner.Text()), nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Welcome to cinelog!")
	fmt.Fprintln(out)

	defaultPath := adapter.DefaultDatabasePath()
	var path string
	for {
		input, err := ask(fmt.Sprintf("Path of your movie database [%s]: ", defaultPath))
		if err != nil {
			return err
		}
		path = input
		if path == "" {
			path = defaultPath
		}

		if !store.FileExists(path) {
			answer, err := ask(fmt.Sprintf("No database at %s. Create it? [Y/n]: ", path))
			if err != nil {
				return err
			}
			if answer != "" && !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
				continue
			}
			if _, err := store.Initialize(ctx, path, s.logger); err != nil {
				fmt.Fprintf(out, "✗ Could not create %s: %v\n\n", path, err)
				continue
			}
			break
		}

		_, err = store.Connect(ctx, path, s.logger)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrSchema) {
			fmt.Fprintf(out, "✗ %s has no Movies table. Run 'cinelog init %s' to add one.\n\n", path, path)
		} else {
			fmt.Fprintf(out, "✗ Could not open %s: %v\n", path, err)
			fmt.Fprintln(out, "Please check the path and try again.")
			fmt.Fprintln(out)
		}
	}

	if abs, err := filepath.Abs(path); err == nil && !strings.HasPrefix(path, "~") {
		path = abs
	}
	s.cfg.Database.Path = path
	if err := adapter.SaveConfigTo(s.configDir, s.cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Saved database path to %s\n\n", filepath.Join(s.configDir, "config.yaml"))
	s.logger.Info("setup complete", "path", path)
	return nil
}
