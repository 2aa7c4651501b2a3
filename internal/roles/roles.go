// Package roles loads the static role → skills lookup table used to fill
// in generation requests that name a role but no skills.
package roles

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Map associates a role name with the skills assessed for it.
type Map map[string][]string

// Load reads a role → skills map from a YAML file of the form:
//
//	Data Analyst:
//	  - SQL
//	  - Python
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roles file: %w", err)
	}

	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse roles file %s: %w", path, err)
	}

	for role, skills := range m {
		if len(skills) == 0 {
			return nil, fmt.Errorf("role %q has no skills", role)
		}
	}

	return m, nil
}

// SkillsFor returns the skills for a role, or false if the role is unknown.
func (m Map) SkillsFor(role string) ([]string, bool) {
	skills, ok := m[role]
	return skills, ok
}

// Roles returns all known role names, sorted.
func (m Map) Roles() []string {
	out := make([]string, 0, len(m))
	for role := range m {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}
