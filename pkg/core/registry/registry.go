// Package registry loads the tracked-company table. The table is injected
// configuration, not a compiled-in constant, so markets and companies are
// added without code changes.
package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/JapSyu/crawler/pkg/core/edinet"
)

// Company is one tracked company as configured.
type Company struct {
	Key      string   `yaml:"key"`
	Keywords []string `yaml:"keywords"` // exact legal-name substrings
	Domains  []string `yaml:"domains,omitempty"`
}

// Registry is the loaded tracked-company table.
type Registry struct {
	Companies []Company `yaml:"companies"`
}

// Load reads the registry from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes registry YAML and validates the entries.
func Parse(data []byte) (*Registry, error) {
	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}
	if len(reg.Companies) == 0 {
		return nil, fmt.Errorf("registry has no companies")
	}
	for i, c := range reg.Companies {
		if c.Key == "" {
			return nil, fmt.Errorf("registry entry %d has no key", i)
		}
		if len(c.Keywords) == 0 {
			return nil, fmt.Errorf("registry entry %q has no name keywords", c.Key)
		}
	}
	return &reg, nil
}

// Tracked converts the registry to the locator's matching input.
func (r *Registry) Tracked() []edinet.TrackedCompany {
	out := make([]edinet.TrackedCompany, 0, len(r.Companies))
	for _, c := range r.Companies {
		out = append(out, edinet.TrackedCompany{Key: c.Key, Keywords: c.Keywords})
	}
	return out
}
