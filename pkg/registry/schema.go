// pkg/registry/schema.go
package registry

type InstitutionDirectory struct {
	Version      string             `json:"version"`
	LastUpdated  string             `json:"lastUpdated"`
	Institutions []InstitutionEntry `json:"institutions"`
}

type InstitutionEntry struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	State   string   `json:"state"`
	Aliases []string `json:"aliases,omitempty"`
}
