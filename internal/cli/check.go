package cli

import (
	"github.com/spf13/cobra"

	"github.com/mkchlog/mkchlog/internal/changelog"
	mkerrors "github.com/mkchlog/mkchlog/internal/errors"
	"github.com/mkchlog/mkchlog/internal/output"
	"github.com/mkchlog/mkchlog/internal/progress"
)

var checkFromStdin bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the changelog entries of all commits",
	Long: `Validate that every commit in range carries a usable changelog entry.

Each commit is classified as skipped (changelog: skip, or covered by the
configured skip bounds), accepted, or rejected with a reason. All
rejected commits are reported in one run, the command does not stop at
the first bad one.

With --from-stdin, commit text is read from standard input instead of
the repository. The commit-msg hook uses this to validate a commit
message before the commit exists.

Example:
  mkchlog check
  cat "$1" | mkchlog check --from-stdin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd)
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkFromStdin, "from-stdin", false,
		"read commit text from standard input instead of the repository")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine := &changelog.Engine{
		Config: cfg,
		Source: commitSource(cmd, cfg, checkFromStdin),
	}

	spin := progress.NewSpinner("Scanning commit history...")
	spin.Start()
	report, err := engine.Check()
	spin.Stop()
	if err != nil {
		return mkerrors.Wrap(err, mkerrors.Git)
	}

	syms := progress.SelectSymbols(progress.DetectTerminalCapabilities())
	out := cmd.OutOrStdout()
	for _, rej := range report.Rejections {
		output.PrintRejection(out, syms.Failure, rej.CommitID, rej.Reason, rej.Excerpt)
	}
	if !report.Ok() {
		output.PrintCheckFailed(out, syms.Failure, len(report.Rejections), report.Scanned)
		return NewExitError(ExitValidationFailed)
	}

	output.PrintCheckPassed(out, syms.Checkmark, report.Scanned, report.Skipped)
	return nil
}
