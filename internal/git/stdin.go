package git

import (
	"fmt"
	"io"
	"strings"
)

// StdinSource reads commit text from a reader instead of the repository.
// The commit-msg hook uses this to validate a commit that does not exist
// in history yet.
type StdinSource struct {
	R io.Reader
}

// Commits parses the input either as `git log` output or, when the text
// does not begin with a commit header, as a single bare commit message.
func (s *StdinSource) Commits() ([]Commit, error) {
	data, err := io.ReadAll(s.R)
	if err != nil {
		return nil, fmt.Errorf("reading commits from stdin: %w", err)
	}

	text := strings.ReplaceAll(string(data), "\r", "")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if !strings.HasPrefix(text, "commit ") {
		text = "commit FROM STDIN\n\n" + text
	}
	return SplitLog(text)
}
