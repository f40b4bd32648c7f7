// Package cli implements the collection commands on top of cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/hashgraph-online/collection-kit-go/pkg/bootstrap"
	"github.com/hashgraph-online/collection-kit-go/pkg/config"
	"github.com/hashgraph-online/collection-kit-go/pkg/journal"
	"github.com/hashgraph-online/collection-kit-go/pkg/pipeline"
)

// Session is an opened set of collaborators for one command run.
type Session interface {
	Deps(out io.Writer, logger *slog.Logger) pipeline.Deps
	Close() error
}

// Opener opens a Session for the loaded configuration.
type Opener func(ctx context.Context, cfg config.Config, options bootstrap.Options) (Session, error)

// OpenRuntime is the Opener backed by the live ledger, mirror and store.
func OpenRuntime(ctx context.Context, cfg config.Config, options bootstrap.Options) (Session, error) {
	runtime, err := bootstrap.New(ctx, cfg, options)
	if err != nil {
		return nil, err
	}
	return runtime, nil
}

// App holds the streams and the session opener shared by the commands.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Open   Opener
}

func NewApp() *App {
	return &App{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Open:   OpenRuntime,
	}
}

// Options holds the flags common to every command.
type Options struct {
	ConfigPath string
	WalletPath string
	Network    string
	AssetsDir  string
	Journal    string
	Verbose    bool
}

func bindCommonFlags(cmd *cobra.Command, opts *Options) {
	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "YAML or .env configuration file")
	flags.StringVar(&opts.WalletPath, "wallet", "", "wallet secret file (default ./wallet.json)")
	flags.StringVar(&opts.Network, "network", "", "ledger network: mainnet or testnet")
	flags.StringVar(&opts.AssetsDir, "assets", "", "assets directory holding collection.png and nfts/")
	flags.StringVar(&opts.Journal, "journal", "", "sqlite run journal; reruns skip recorded steps")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")
}

// loadConfig reads the configuration and applies flag overrides.
func (o *Options) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}

	if value := strings.TrimSpace(o.WalletPath); value != "" {
		cfg.WalletPath = value
	}
	if value := strings.TrimSpace(o.Network); value != "" {
		cfg.Network = value
	}
	if value := strings.TrimSpace(o.AssetsDir); value != "" {
		cfg.AssetsDir = value
	}
	if value := strings.TrimSpace(o.Journal); value != "" {
		cfg.Journal = value
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

type flowFunc func(ctx context.Context, deps pipeline.Deps) error

// run loads the configuration, opens a session and runs flow against it.
func (a *App) run(cmd *cobra.Command, opts *Options, options bootstrap.Options, flow flowFunc) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(a.Stderr, cfg.Level())
	logger.Debug("configuration loaded", "network", cfg.Network, "store", cfg.Store.Kind, "assets", cfg.AssetsDir)

	session, err := a.Open(cmd.Context(), cfg, options)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to close session", "err", err)
		}
	}()

	deps := session.Deps(a.Stdout, logger)
	err = flow(cmd.Context(), deps)
	logJournal(context.WithoutCancel(cmd.Context()), logger, deps.Journal, err != nil)
	return err
}

type runRecorder interface {
	RunID() string
	RunEntries(ctx context.Context, runID string) ([]journal.Entry, error)
}

// logJournal reports how many steps this run recorded, so a failed run can be
// resumed with the same journal.
func logJournal(ctx context.Context, logger *slog.Logger, runJournal journal.Journal, failed bool) {
	recorder, ok := runJournal.(runRecorder)
	if !ok {
		return
	}
	entries, err := recorder.RunEntries(ctx, recorder.RunID())
	if err != nil {
		logger.Warn("failed to read run journal", "err", err)
		return
	}
	if len(entries) == 0 {
		return
	}
	if failed {
		logger.Info("completed steps are journaled, rerun to resume", "steps", len(entries), "run", recorder.RunID())
		return
	}
	logger.Debug("run journaled", "steps", len(entries), "run", recorder.RunID())
}

// positional validates the argument count and reports the usage line on
// failure.
func positional(minArgs int, maxArgs int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < minArgs || len(args) > maxArgs {
			return NewExitError(ExitFailure, "usage: "+cmd.UseLine())
		}
		return nil
	}
}

// Main executes cmd with args and returns the process exit code. Errors are
// printed to the command's stderr.
func Main(ctx context.Context, cmd *cobra.Command, args []string) int {
	if ctx == nil {
		ctx = context.Background()
	}
	// cobra reads os.Args when given a nil slice.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		err = WrapExitError(ExitFailure, "interrupted", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
	return GetExitCode(err)
}
