// Package cli wires warden's cobra command tree onto the internal
// packages: config resolution, paths, the mutate transaction, and the
// output envelope. It is the only layer that knows about processes,
// flags, and stdout/stderr — every package it imports deals in plain Go
// values and *model.CoreError.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/taskwarden/warden/internal/config"
	"github.com/taskwarden/warden/internal/mutate"
	"github.com/taskwarden/warden/internal/output"
	"github.com/taskwarden/warden/internal/paths"
	"github.com/taskwarden/warden/internal/sequence"
)

// env bundles everything a command needs once PersistentPreRunE has run:
// resolved paths, resolved config, the structured logger, and the output
// format the user asked for.
type env struct {
	paths  *paths.Paths
	cfg    config.Config
	log    *zap.Logger
	format string
}

func (e *env) tx() *mutate.Transaction {
	return &mutate.Transaction{Paths: e.paths, Config: e.cfg, Now: func() time.Time { return time.Now().UTC() }}
}

func (e *env) allocator() *sequence.Allocator {
	return sequence.Open(e.paths.Sequence(), e.paths.Backups(), e.cfg.Backups.MaxBackups)
}

// emit prints the result or error of a command as the resolved output
// envelope and returns an error cobra should propagate (so SilenceErrors +
// our own exit-code handling in Execute take over instead of cobra's
// default "Error: ..." line).
func (e *env) emit(cmd *cobra.Command, command string, payload any, err error) error {
	now := time.Now().UTC()
	var env_ output.Envelope
	if err != nil {
		e.log.Error("command failed", zap.String("command", command), zap.Error(err))
		env_ = output.FromError(e.format, command, err, now)
	} else {
		e.log.Debug("command succeeded", zap.String("command", command))
		env_ = output.FromResult(e.format, command, payload, now)
	}
	_ = e.log.Sync()
	if writeErr := env_.Write(cmd.OutOrStdout(), e.format); writeErr != nil {
		return writeErr
	}
	if err != nil {
		return exitError{code: env_.ExitCode()}
	}
	return nil
}

// exitError carries a resolved process exit code through cobra's RunE
// return path without cobra re-printing the message itself — Execute
// checks for it instead of defaulting every error to exit 1.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit %d", e.code) }

func newEnv(cmd *cobra.Command, verbose bool, format string) (*env, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	p, err := paths.Find(cwd)
	if err != nil {
		return nil, fmt.Errorf("resolve project paths: %w", err)
	}

	globalCfg, _ := paths.GlobalConfig()
	cfg, err := config.Resolve(nil, os.Environ(), p.ProjectConfig(), globalCfg)
	if err != nil {
		return nil, fmt.Errorf("resolve config: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	if format == "" {
		format = cfg.Output.DefaultFormat
	}

	return &env{paths: p, cfg: cfg, log: logger, format: format}, nil
}
