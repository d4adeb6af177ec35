package changelog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const marker = "changelog:"

// ExtractBlock locates the changelog metadata in a commit message. The
// marker line may be indented. Everything from the marker to the end of
// the message is returned raw for the YAML stage; the message text above
// it yields the fallback title and description. The second return value
// is false when the message has no changelog block at all.
func ExtractBlock(message string) (Block, bool) {
	message = strings.ReplaceAll(message, "\r", "")
	lines := strings.Split(message, "\n")

	at := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), marker) {
			at = i
			break
		}
	}
	if at < 0 {
		return Block{}, false
	}

	// Re-anchor the marker line at column 0. YAML forbids tabs in
	// indentation and the marker's own indent is not part of the block.
	// Lines below keep their indentation as written.
	lines[at] = strings.TrimLeft(lines[at], " \t")
	block := Block{Raw: strings.Join(lines[at:], "\n")}
	if at > 0 {
		block.Title = strings.TrimSpace(lines[0])
		block.Description = unwrap(lines[1:at])
	}
	return block, true
}

// unwrap undoes the hard wrapping of commit message bodies. Lines of a
// paragraph join into one space-separated line, blank lines separate
// paragraphs.
func unwrap(lines []string) string {
	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return strings.Join(paragraphs, "\n\n")
}

// ParseMetadata interprets the raw changelog block as YAML. The block is
// either the scalar form "changelog: skip" or a mapping with the entry
// fields. The legacy "title-is-enough" key is accepted as an alias of
// "only-title" and the legacy "inherit" key is accepted and ignored.
func ParseMetadata(raw string) (Metadata, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return Metadata{}, fmt.Errorf("changelog entry is not valid YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Metadata{}, fmt.Errorf("changelog entry is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Metadata{}, fmt.Errorf("changelog entry must be a 'changelog:' mapping")
	}
	value := findKey(root, "changelog")
	if value == nil {
		return Metadata{}, fmt.Errorf("changelog entry must start with a 'changelog:' key")
	}

	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			return Metadata{}, fmt.Errorf("changelog entry is empty, expected 'skip' or entry fields")
		}
		if value.Value == "skip" {
			return Metadata{Skip: true}, nil
		}
		return Metadata{}, fmt.Errorf("unrecognized changelog value %q, expected 'skip' or entry fields", value.Value)
	case yaml.SequenceNode:
		return Metadata{}, fmt.Errorf("changelog entry must describe a single project entry, not a list")
	case yaml.MappingNode:
		return parseFields(value)
	default:
		return Metadata{}, fmt.Errorf("changelog entry has an unsupported YAML shape")
	}
}

func parseFields(node *yaml.Node) (Metadata, error) {
	var meta Metadata
	var legacyOnlyTitle bool
	var sawOnlyTitle, sawLegacy bool

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		var err error
		switch key {
		case "skip":
			meta.Skip, err = boolField(key, value)
		case "project":
			meta.Project, err = stringField(key, value)
		case "section":
			meta.Section, err = stringField(key, value)
		case "title":
			meta.Title, err = stringField(key, value)
		case "description":
			var s string
			if s, err = stringField(key, value); err == nil {
				meta.Description = &s
			}
		case "only-title":
			sawOnlyTitle = true
			meta.OnlyTitle, err = boolField(key, value)
		case "title-is-enough":
			sawLegacy = true
			legacyOnlyTitle, err = boolField(key, value)
		case "inherit":
			// legacy multi-project inheritance marker, ignored
		default:
			return Metadata{}, fmt.Errorf("unknown key %q in changelog entry", key)
		}
		if err != nil {
			return Metadata{}, err
		}
	}

	if sawOnlyTitle && sawLegacy {
		return Metadata{}, fmt.Errorf("'only-title' and its legacy alias 'title-is-enough' cannot both be present")
	}
	if sawLegacy {
		meta.OnlyTitle = legacyOnlyTitle
	}
	if !meta.Skip && meta.Section == "" {
		return Metadata{}, fmt.Errorf("missing 'section' in changelog entry")
	}
	return meta, nil
}

func stringField(key string, node *yaml.Node) (string, error) {
	if node.Tag == "!!null" {
		return "", nil
	}
	var s string
	if node.Kind != yaml.ScalarNode || node.Decode(&s) != nil {
		return "", fmt.Errorf("'%s' in changelog entry must be a string", key)
	}
	return s, nil
}

func boolField(key string, node *yaml.Node) (bool, error) {
	var b bool
	if node.Kind != yaml.ScalarNode || node.Decode(&b) != nil {
		return false, fmt.Errorf("'%s' in changelog entry must be true or false", key)
	}
	return b, nil
}

func findKey(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
