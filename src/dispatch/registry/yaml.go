package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
)

type catalogFile struct {
	Agents []struct {
		ID        string   `yaml:"id"`
		Name      string   `yaml:"name"`
		Domains   []string `yaml:"domains"`
		Strengths []string `yaml:"strengths"`
		Keywords  []string `yaml:"keywords"`
	} `yaml:"agents"`
}

// LoadYAML reads an agent catalog file and returns a populated registry.
func LoadYAML(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read catalog: %w", err)
	}
	return ParseYAML(raw)
}

// ParseYAML builds a registry from raw catalog YAML.
func ParseYAML(raw []byte) (*Static, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: bad catalog yaml: %v", core.ErrInvalidInput, err)
	}

	agents := make([]core.Agent, 0, len(file.Agents))
	for _, a := range file.Agents {
		if a.ID == "" {
			return nil, fmt.Errorf("%w: catalog agent missing id", core.ErrInvalidInput)
		}
		agents = append(agents, core.Agent{
			ID:        a.ID,
			Name:      a.Name,
			Domains:   a.Domains,
			Strengths: a.Strengths,
			Keywords:  a.Keywords,
		})
	}
	return NewStatic(agents), nil
}
