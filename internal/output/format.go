// Package output provides terminal output formatting utilities for the
// mkchlog CLI. It has no dependencies on other internal packages so any
// command can import it.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintRejection prints one rejected commit with the reason it failed
// validation and a quoted excerpt of the message. The commit id is
// highlighted so it can be copied into skip-commits-list or a rebase.
func PrintRejection(out io.Writer, symbol, commitID, reason, excerpt string) {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s commit %s: %s\n", red(symbol), yellow(commitID), reason)
	if excerpt != "" {
		fmt.Fprintf(out, "    > %s\n", dim(excerpt))
	}
}

// PrintCheckFailed prints the failing summary line after all rejections
// have been listed, followed by a hint on how to resolve them.
func PrintCheckFailed(out io.Writer, symbol string, rejected, scanned int) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "\n%s %d of %d commits failed changelog validation\n",
		red(symbol), rejected, scanned)
	fmt.Fprintln(out, dim("Fix the commit messages, or list commits that cannot change in 'skip-commits-list'."))
}

// PrintCheckPassed prints the success summary for a clean history.
func PrintCheckPassed(out io.Writer, symbol string, scanned, skipped int) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s all %d commits have a valid changelog entry (%d skipped)\n",
		green(symbol), scanned, skipped)
}
