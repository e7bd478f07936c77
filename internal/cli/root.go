// Package cli implements the kiro-merge command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"kiro.dev/kiro-merge/internal/config"
	kmerrors "kiro.dev/kiro-merge/internal/errors"
	"kiro.dev/kiro-merge/internal/merge"
	"kiro.dev/kiro-merge/internal/output"
	"kiro.dev/kiro-merge/internal/runtime"
)

// UsageLine is printed to stderr after a usage error
const UsageLine = "Usage: kiro-merge src dest [--dry-run]"

// DryRunArg is the only accepted third argument
const DryRunArg = "--dry-run"

// NewRootCmd creates the root cobra command.
//
// Flag parsing is disabled: the command line is exactly `src dest` or
// `src dest --dry-run`, so file names starting with "-" are taken as paths.
// Logging is configured through KIRO_MERGE_* environment variables.
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kiro-merge <src> <dest> [--dry-run]",
		Short: "Merge a source file into a destination file without losing local content",
		Long: `Merge a source file into a destination file without losing local content.

If dest does not exist, src is copied to it. Otherwise dest is backed up to
dest.bak.<timestamp> and src is merged in: with a git three-way merge when
dest is tracked in a git working tree, or by appending the lines of src that
dest does not already contain.

Set KIRO_MERGE_DEBUG=1 for debug output and KIRO_MERGE_LOG_FILE to keep a
rotated log.`,
		Version:            fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:               validateArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			configureColor(cfg.NoColor, cmd.OutOrStdout())

			ctx, err := runtime.NewContext(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() {
				if err := ctx.Close(); err != nil {
					ctx.Splog.Warn("failed to close log file: %v", err)
				}
			}()
			ctx.Splog.Debug("kiro-merge %s", cmd.Version)

			_, err = ctx.Merger.Run(cmd.Context(), merge.Options{
				Source: args[0],
				Dest:   args[1],
				DryRun: len(args) == 3,
			})
			return err
		},
	}

	return rootCmd
}

// Execute runs rootCmd with args and returns the process exit status.
// Errors are reported on the command's error stream.
func Execute(ctx context.Context, rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return kmerrors.ExitOK
	}

	splog := output.NewSplogWithWriters(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr(), false)
	splog.Error("ERROR: %v", err)
	if errors.Is(err, kmerrors.ErrUsage) {
		splog.Error("%s", UsageLine)
	}
	return kmerrors.ExitCode(err)
}

// validateArgs accepts `src dest` and `src dest --dry-run`, nothing else.
func validateArgs(_ *cobra.Command, args []string) error {
	switch {
	case len(args) < 2:
		return kmerrors.NewUsageError("expected src and dest, got %d argument(s)", len(args))
	case len(args) > 3:
		return kmerrors.NewUsageError("too many arguments: %d", len(args))
	case len(args) == 3 && args[2] != DryRunArg:
		return kmerrors.NewUsageError("unrecognized argument %q", args[2])
	}
	return nil
}

func configureColor(noColor bool, w io.Writer) {
	f, ok := w.(*os.File)
	if !ok {
		// Non-file writers never get styling
		output.ConfigureColor(true, nil)
		return
	}
	output.ConfigureColor(noColor, f)
}
