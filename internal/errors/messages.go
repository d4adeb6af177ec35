package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the mkchlog CLI.
// These templates ensure consistent, actionable error messages.

// ConfigFileNotFound creates an error for a missing configuration file.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Create a .mkchlog.yml file in the repository root",
		"Or point at one explicitly with --file-path <path>",
	)
}

// ProjectNameRequired creates an error for a missing --project argument
// in a multi-project repository.
func ProjectNameRequired(available []string) *CLIError {
	return NewArgumentErrorWithUsage(
		"a project name is required in a multi-project repository",
		"mkchlog gen --project <name>",
		fmt.Sprintf("Configured projects: %s", strings.Join(available, ", ")),
	)
}

// ProjectNotConfigured creates an error for a --project value that is not
// declared in the configuration.
func ProjectNotConfigured(name string, available []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("project %q is not configured", name),
		fmt.Sprintf("Configured projects: %s", strings.Join(available, ", ")),
		"Check the 'projects' section of .mkchlog.yml",
	)
}

// ProjectOptionSuperfluous creates an error for --project in a repository
// with no projects configured.
func ProjectOptionSuperfluous(name string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("omit the project option %q, the repository is not configured as multi-project", name),
		"Remove the --project flag",
		"Or declare projects in the 'projects' section of .mkchlog.yml",
	)
}

// CommitsRejected creates an error for a generation run over a history
// containing commits that fail validation.
func CommitsRejected(count int) *CLIError {
	return NewValidationError(
		fmt.Sprintf("%d commit(s) failed changelog validation, no changelog generated", count),
		"Run 'mkchlog check' to list every offending commit",
		"Fix the commit messages or add the commits to 'skip-commits-list'",
	)
}
