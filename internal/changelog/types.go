package changelog

// SectionPath addresses one section of the configured tree, either a top
// level section ("features") or a subsection ("security.vuln_fixes").
type SectionPath struct {
	Top string
	Sub string
}

func (p SectionPath) String() string {
	if p.Sub == "" {
		return p.Top
	}
	return p.Top + "." + p.Sub
}

// leaf is the bucket id the path files under. Section ids are unique
// across the whole tree, so the deepest id alone identifies the bucket.
func (p SectionPath) leaf() string {
	if p.Sub != "" {
		return p.Sub
	}
	return p.Top
}

// Block is the raw changelog material cut out of a commit message before
// any YAML interpretation happens.
type Block struct {
	// Raw is the message text from the "changelog:" marker line to the end.
	Raw string
	// Title is the fallback entry title, the first line of the message.
	Title string
	// Description is the fallback entry description: the message body above
	// the changelog block with hard line wrapping undone, paragraph by
	// paragraph.
	Description string
}

// Metadata is the parsed changelog entry of a single commit.
type Metadata struct {
	// Skip marks the commit as intentionally without a changelog entry.
	Skip bool
	// Project optionally names the project the entry belongs to.
	Project string
	// Section is the target section path, required unless Skip is set.
	Section string
	// Title overrides the fallback title when non-empty.
	Title string
	// Description overrides the fallback description. nil means the field
	// was absent, which is different from an explicitly empty description.
	Description *string
	// OnlyTitle suppresses the entry description entirely.
	OnlyTitle bool
}

// Entry is one accepted changelog item, ready for rendering.
type Entry struct {
	Section     SectionPath
	Title       string
	Description string
	Project     string
	CommitID    string
}

// Outcome says what classification did with a commit.
type Outcome int

const (
	// Skipped commits carry a skip marker or fall under the configured
	// skip bounds. They are fine, they just produce no entry.
	Skipped Outcome = iota
	// Rejected commits have missing or unusable changelog metadata.
	Rejected
	// Accepted commits produced a changelog entry.
	Accepted
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Rejected:
		return "rejected"
	case Accepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// RejectionKind tells why a commit was rejected.
type RejectionKind int

const (
	// MissingMetadata means the message has no "changelog:" block at all.
	MissingMetadata RejectionKind = iota
	// MalformedMetadata covers YAML errors, unknown keys and bad field
	// values inside the block.
	MalformedMetadata
	// UnknownSection means the section path does not exist in the config.
	UnknownSection
	// ConflictingFields means only-title is set next to a description.
	ConflictingFields
	// ProjectResolution means the entry could not be attributed to a
	// configured project.
	ProjectResolution
)

func (k RejectionKind) String() string {
	switch k {
	case MissingMetadata:
		return "missing metadata"
	case MalformedMetadata:
		return "malformed metadata"
	case UnknownSection:
		return "unknown section"
	case ConflictingFields:
		return "conflicting fields"
	case ProjectResolution:
		return "project resolution"
	default:
		return "unknown"
	}
}

// Rejection describes one rejected commit.
type Rejection struct {
	CommitID string
	Kind     RejectionKind
	Reason   string
	// Excerpt is the first line of the commit message, so reports can
	// identify the commit by more than its hash.
	Excerpt string
}

// Result is the classification outcome for a single commit. Entry is set
// for Accepted results, Rejection for Rejected ones.
type Result struct {
	CommitID  string
	Outcome   Outcome
	Entry     *Entry
	Rejection *Rejection
}
