// Package cli implements the passforge command line: one-shot commands and an
// interactive menu sharing one in-memory session.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/passforge/passforge-go/internal/clipboard"
	"github.com/passforge/passforge-go/internal/config"
	"github.com/passforge/passforge-go/internal/model"
	"github.com/passforge/passforge-go/internal/repository"
	"github.com/passforge/passforge-go/internal/service"
	"github.com/passforge/passforge-go/internal/session"
)

// App carries the I/O and collaborators shared by every command.
type App struct {
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
	Copier  clipboard.Copier
	Session *session.Session

	// ReadSecret reads a password without echoing it when In is a terminal.
	ReadSecret func(prompt string) (string, error)

	defaults config.FileConfig
	service  *service.GeneratorService
	history  *repository.HistoryRepository
	db       *sql.DB
}

// NewApp wires the App to the process standard streams and system clipboard.
func NewApp() *App {
	return &App{
		In:      os.Stdin,
		Out:     os.Stdout,
		Err:     os.Stderr,
		Copier:  clipboard.System{},
		Session: session.New(),
	}
}

// Execute runs the command line with args and releases resources afterwards.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.RootCommand()
	root.SetArgs(args)
	defer a.close()
	return root.ExecuteContext(ctx)
}

// RootCommand builds the command tree.
func (a *App) RootCommand() *cobra.Command {
	var configPath, historyDSN string

	root := &cobra.Command{
		Use:          "passforge",
		Short:        "Generate passwords and rate their strength",
		Long:         "PassForge generates random passwords from presets or explicit character classes\nand rates any password by its estimated entropy.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context(), configPath, historyDSN)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultFilePath(), "YAML file with default settings")
	root.PersistentFlags().StringVar(&historyDSN, "history", "", "SQLite database recording generation metadata (never passwords)")

	root.AddCommand(
		a.generateCommand(),
		a.customCommand(),
		a.classifyCommand(),
		a.presetsCommand(),
		a.historyCommand(),
		a.menuCommand(),
	)

	root.SetIn(a.In)
	root.SetOut(a.Out)
	if a.Err != nil {
		root.SetErr(a.Err)
	}
	return root
}

func (a *App) setup(ctx context.Context, configPath, historyDSN string) error {
	defaults, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}
	a.defaults = defaults

	if a.Session == nil {
		a.Session = session.New()
	}
	if a.ReadSecret == nil {
		a.ReadSecret = a.readSecret
	}

	cfg := service.GeneratorConfig{Source: model.SourceCLI}

	if historyDSN == "" {
		historyDSN = defaults.HistoryDSN
	}
	if historyDSN != "" {
		db, err := repository.NewDB(repository.DriverSQLite, historyDSN)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		a.db = db

		repo := repository.NewHistoryRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("preparing history database: %w", err)
		}
		a.history = repo
		cfg.Recorder = repo
	}

	a.service = service.NewGeneratorService(cfg)
	return nil
}

func (a *App) close() {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
}

// readSecret prompts on Out and reads one line from In, hiding input on a terminal.
func (a *App) readSecret(prompt string) (string, error) {
	fmt.Fprint(a.Out, prompt)

	if f, ok := a.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.Out)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(a.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
