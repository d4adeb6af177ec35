package cli

import (
	"bufio"
	"io"
	"strings"

	"github.com/spf13/cobra"

	mkerrors "github.com/mkchlog/mkchlog/internal/errors"
	"github.com/mkchlog/mkchlog/internal/template"
)

var commitTemplateCmd = &cobra.Command{
	Use:   "commit-template",
	Short: "Print the commit message skeleton for the staged files",
	Long: `Print the changelog skeleton used by the prepare-commit-msg hook.

The staged file paths are read from standard input, one per line. With
projects configured, the project line is pre-filled when the staged
files all belong to the same project.

Example:
  git diff --cached --name-only | mkchlog commit-template`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommitTemplate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(commitTemplateCmd)
}

func runCommitTemplate(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	staged, err := readLines(cmd.InOrStdin())
	if err != nil {
		return mkerrors.Wrap(err, mkerrors.Runtime)
	}

	if err := template.Generate(cmd.OutOrStdout(), cfg, staged); err != nil {
		return mkerrors.Wrap(err, mkerrors.Configuration,
			"Check the 'dirs' lists under 'projects' in the configuration file")
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}
