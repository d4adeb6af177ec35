package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// parse builds the Config structure from raw YAML. It walks the document
// tree directly so that section and project declaration order survives.
func parse(data []byte) (*Config, error) {
	if err := validateSyntax(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("config file is not valid YAML: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("config file is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("config file must be a YAML mapping")
	}

	if err := checkSettingKinds(root); err != nil {
		return nil, err
	}

	cfg := &Config{Sections: NewSectionTree()}

	sectionsNode := lookupKey(root, "sections")
	if sectionsNode == nil {
		return nil, errors.New("missing 'sections' key in config file")
	}
	if err := parseSections(cfg.Sections, sectionsNode); err != nil {
		return nil, err
	}

	if projectsNode := lookupKey(root, "projects"); projectsNode != nil {
		projects, err := parseProjects(projectsNode)
		if err != nil {
			return nil, err
		}
		cfg.Projects = projects
	}

	return cfg, nil
}

// validateSyntax streams through the document with a decoder so that syntax
// errors surface with line information before any binding happens.
func validateSyntax(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	for {
		var n yaml.Node
		if err := dec.Decode(&n); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// checkSettingKinds rejects scalar settings of the wrong YAML kind early,
// koanf would otherwise coerce them silently.
func checkSettingKinds(root *yaml.Node) error {
	if n := lookupKey(root, "skip-commits-up-to"); n != nil && n.Kind != yaml.ScalarNode {
		return errors.New("'skip-commits-up-to' key in config file must be a string")
	}
	if n := lookupKey(root, "git-path"); n != nil && n.Kind != yaml.ScalarNode {
		return errors.New("'git-path' key in config file must be a string")
	}
	if n := lookupKey(root, "skip-commits-list"); n != nil && n.Kind != yaml.SequenceNode {
		return errors.New("'skip-commits-list' key in config file must be a list of commit ids")
	}
	return nil
}

func parseSections(tree *SectionTree, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.New("malformed 'sections' key in config file")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		sec, subs, err := parseSection(node.Content[i].Value, node.Content[i+1], "")
		if err != nil {
			return err
		}
		if err := tree.Add(sec); err != nil {
			return err
		}
		for _, sub := range subs {
			if err := tree.Add(sub); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseSection(id string, node *yaml.Node, parent string) (Section, []Section, error) {
	if node.Kind != yaml.MappingNode {
		return Section{}, nil, fmt.Errorf("invalid value in section %q in config file", id)
	}

	titleNode := lookupKey(node, "title")
	if titleNode == nil || titleNode.Kind != yaml.ScalarNode || titleNode.Value == "" {
		return Section{}, nil, fmt.Errorf("missing 'title' in section %q in config file", id)
	}
	sec := Section{ID: id, Title: titleNode.Value, Parent: parent}

	if d := lookupKey(node, "description"); d != nil {
		if d.Kind != yaml.ScalarNode {
			return Section{}, nil, fmt.Errorf("invalid 'description' in section %q in config file", id)
		}
		sec.Description = d.Value
	}

	var subs []Section
	if sn := lookupKey(node, "subsections"); sn != nil {
		if parent != "" {
			return Section{}, nil, fmt.Errorf("subsection %q cannot have its own subsections, nesting is limited to one level", id)
		}
		if sn.Kind != yaml.MappingNode {
			return Section{}, nil, fmt.Errorf("invalid subsections format in section %q in config file", id)
		}
		for i := 0; i+1 < len(sn.Content); i += 2 {
			sub, _, err := parseSection(sn.Content[i].Value, sn.Content[i+1], id)
			if err != nil {
				return Section{}, nil, err
			}
			subs = append(subs, sub)
		}
	}

	return sec, subs, nil
}

func parseProjects(node *yaml.Node) (*Projects, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("malformed 'projects' key in config file")
	}

	listNode := lookupKey(node, "list")
	if listNode == nil {
		return nil, errors.New("missing 'list' key under 'projects' in config file")
	}
	if listNode.Kind != yaml.SequenceNode {
		return nil, errors.New("'projects.list' in config file must be a list of projects")
	}

	p := &Projects{}
	seen := make(map[string]bool)
	for _, item := range listNode.Content {
		var entry struct {
			Project struct {
				Name string   `yaml:"name"`
				Dirs []string `yaml:"dirs"`
			} `yaml:"project"`
		}
		if err := item.Decode(&entry); err != nil {
			return nil, fmt.Errorf("malformed project entry in config file: %w", err)
		}
		if entry.Project.Name == "" {
			return nil, errors.New("each 'projects.list' entry needs a 'project' mapping with a 'name'")
		}
		if seen[entry.Project.Name] {
			return nil, fmt.Errorf("duplicate project name %q in config file", entry.Project.Name)
		}
		seen[entry.Project.Name] = true
		p.List = append(p.List, Project{Name: entry.Project.Name, Dirs: entry.Project.Dirs})
	}
	if len(p.List) == 0 {
		return nil, errors.New("'projects.list' in config file must not be empty")
	}

	if sc := lookupKey(node, "since-commit"); sc != nil {
		if sc.Kind != yaml.ScalarNode {
			return nil, errors.New("'projects.since-commit' in config file must be a string")
		}
		p.SinceCommit = sc.Value
	}
	if def := lookupKey(node, "default"); def != nil {
		if def.Kind != yaml.ScalarNode {
			return nil, errors.New("'projects.default' in config file must be a string")
		}
		p.Default = def.Value
	}

	if p.SinceCommit != "" && p.Default == "" {
		return nil, errors.New("'projects.since-commit' requires 'projects.default' to be set")
	}
	if p.Default != "" {
		if _, ok := p.Find(p.Default); !ok {
			return nil, fmt.Errorf("default project %q is not in the projects list", p.Default)
		}
	}

	return p, nil
}

// lookupKey returns the value node for key in a mapping node, nil if absent.
func lookupKey(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
