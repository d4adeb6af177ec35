package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/mkchlog/mkchlog/internal/changelog"
	"github.com/mkchlog/mkchlog/internal/config"
	mkerrors "github.com/mkchlog/mkchlog/internal/errors"
	"github.com/mkchlog/mkchlog/internal/progress"
)

var genProject string

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate the changelog from commit messages",
	Long: `Generate the markdown changelog from the changelog entries embedded
in commit messages.

Generation refuses to run while any commit in range is rejected; run
the check command to see the full list. In a repository with projects
configured, --project selects whose entries are rendered.

Example:
  mkchlog gen > CHANGELOG.md
  mkchlog gen --project mkchlog`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGen(cmd)
	},
}

func init() {
	genCmd.Flags().StringVarP(&genProject, "project", "p", "",
		"project to generate the changelog for")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := validateProjectArg(cfg, genProject); err != nil {
		return err
	}

	engine := &changelog.Engine{
		Config: cfg,
		Source: commitSource(cmd, cfg, false),
	}

	// render into memory so the spinner never interleaves with output
	var buf bytes.Buffer
	spin := progress.NewSpinner("Scanning commit history...")
	spin.Start()
	err = engine.Gen(&buf, genProject)
	spin.Stop()
	if err != nil {
		if mkerrors.IsCLIError(err) {
			return err
		}
		return mkerrors.Wrap(err, mkerrors.Git)
	}

	_, err = buf.WriteTo(cmd.OutOrStdout())
	return err
}

// validateProjectArg enforces the project flag rules before any history
// is scanned: required with projects configured, rejected without.
func validateProjectArg(cfg *config.Config, project string) error {
	if cfg.MultiProject() {
		if project == "" {
			return mkerrors.ProjectNameRequired(cfg.Projects.Names())
		}
		if _, ok := cfg.Projects.Find(project); !ok {
			return mkerrors.ProjectNotConfigured(project, cfg.Projects.Names())
		}
		return nil
	}
	if project != "" {
		return mkerrors.ProjectOptionSuperfluous(project)
	}
	return nil
}
