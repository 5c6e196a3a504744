// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"os"
	"strings"
)

func LoadDirectory(path string) (*InstitutionDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var dir InstitutionDirectory
	err = json.Unmarshal(data, &dir)
	return &dir, err
}

// KeyFor resolves an institution name or alias to its corpus key.
// Matching is case-insensitive.
func (d *InstitutionDirectory) KeyFor(name string) (string, bool) {
	for _, entry := range d.Institutions {
		if strings.EqualFold(entry.Name, name) {
			return entry.Key, true
		}
		for _, alias := range entry.Aliases {
			if strings.EqualFold(alias, name) {
				return entry.Key, true
			}
		}
	}
	return "", false
}

// Entry returns the directory entry for a corpus key.
func (d *InstitutionDirectory) Entry(key string) (InstitutionEntry, bool) {
	for _, entry := range d.Institutions {
		if entry.Key == key {
			return entry, true
		}
	}
	return InstitutionEntry{}, false
}

// ByState filters the directory to institutions in one state.
func (d *InstitutionDirectory) ByState(state string) []InstitutionEntry {
	var out []InstitutionEntry
	for _, entry := range d.Institutions {
		if strings.EqualFold(entry.State, state) {
			out = append(out, entry)
		}
	}
	return out
}
