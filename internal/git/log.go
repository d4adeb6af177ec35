package git

import (
	"fmt"
	"strings"
)

// SplitLog parses `git log` formatted text into commits. Header lines are
// dropped except for the commit id, message bodies are de-indented, and
// merge records (recognizable by a "Merge:" header line) are left out.
// Files are unknown for commits read this way, so the slice stays nil.
func SplitLog(text string) ([]Commit, error) {
	text = strings.ReplaceAll(text, "\r", "")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if !strings.HasPrefix(text, "commit ") {
		return nil, fmt.Errorf("git log text must start with a 'commit' line, got %q", firstLine(text))
	}

	var commits []Commit
	for i, chunk := range strings.Split(text, "\ncommit ") {
		if i > 0 {
			chunk = "commit " + chunk
		}
		c, merge, err := parseLogRecord(chunk)
		if err != nil {
			return nil, err
		}
		if merge {
			continue
		}
		commits = append(commits, c)
	}
	return commits, nil
}

func parseLogRecord(chunk string) (commit Commit, merge bool, err error) {
	lines := strings.Split(chunk, "\n")

	id := strings.TrimSpace(strings.TrimPrefix(lines[0], "commit "))
	if i := strings.IndexByte(id, '('); i >= 0 {
		// drop ref decorations like (HEAD -> main, origin/main)
		id = strings.TrimSpace(id[:i])
	}
	if id == "" {
		return Commit{}, false, fmt.Errorf("cannot parse commit id from %q", lines[0])
	}

	// remaining header lines run until the first blank line
	body := 1
	for body < len(lines) && strings.TrimSpace(lines[body]) != "" {
		if strings.HasPrefix(lines[body], "Merge:") {
			merge = true
		}
		body++
	}
	if body < len(lines) {
		body++ // the blank separator itself
	}

	msg := make([]string, 0, len(lines)-body)
	for _, line := range lines[body:] {
		msg = append(msg, strings.TrimPrefix(line, "    "))
	}
	message := strings.TrimRight(strings.Join(msg, "\n"), "\n")

	return Commit{ID: id, Message: message}, merge, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
