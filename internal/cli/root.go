// Package cli wires the mkchlog commands: validating commit metadata,
// generating the changelog and emitting the commit message template.
package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/mkchlog/mkchlog/internal/config"
	mkerrors "github.com/mkchlog/mkchlog/internal/errors"
	"github.com/mkchlog/mkchlog/internal/git"
)

var (
	flagConfigPath string
	flagGitPath    string
	flagCommit     string
)

var rootCmd = &cobra.Command{
	Use:   "mkchlog",
	Short: "Changelog generator driven by commit message metadata",
	Long: `mkchlog assembles a markdown changelog from structured metadata
embedded in commit messages.

Each commit carries a "changelog:" YAML block naming the section the
change belongs to, with an optional title, description and project. The
check command validates the blocks across history, the gen command
renders the changelog, and commit-template emits a skeleton for the
prepare-commit-msg git hook.`,
	Example: `  mkchlog check
  mkchlog gen > CHANGELOG.md
  git diff --cached --name-only | mkchlog commit-template`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return mkerrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("unknown command %q", args[0]),
			"mkchlog <check|gen|commit-template> [flags]",
			"Run 'mkchlog --help' to see the available commands")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfigPath, "file-path", "f", ".mkchlog.yml",
		"path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&flagGitPath, "git-path", "g", "",
		"path to the git repository (defaults to the working directory)")
	rootCmd.PersistentFlags().StringVarP(&flagCommit, "commit", "c", "",
		"skip this commit and everything before it, overrides skip-commits-up-to")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return mkerrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})
}

// Execute runs the root command and prints structured errors. The caller
// maps the returned error to a process exit code via ExitCode.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		// the command printed its diagnostics before returning
		return err
	}
	if cliErr := mkerrors.AsCLIError(err); cliErr != nil {
		mkerrors.PrintError(cliErr)
		return err
	}
	mkerrors.PrintSimpleError(err, mkerrors.Runtime)
	return err
}

// loadConfig reads the configuration file and applies the command line
// overrides, which take precedence over environment variables and the
// file itself.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, mkerrors.ConfigFileNotFound(flagConfigPath)
		}
		return nil, mkerrors.Wrap(err, mkerrors.Configuration)
	}
	if flagCommit != "" {
		cfg.SkipCommitsUpTo = flagCommit
	}
	if flagGitPath != "" {
		cfg.GitPath = flagGitPath
	}
	return cfg, nil
}

// commitSource picks where commits come from: the repository walk, or
// standard input when a hook feeds the message directly.
func commitSource(cmd *cobra.Command, cfg *config.Config, fromStdin bool) git.Source {
	if fromStdin {
		return &git.StdinSource{R: cmd.InOrStdin()}
	}
	return &git.RepoSource{Path: cfg.GitPath, StopAt: cfg.SkipCommitsUpTo}
}
