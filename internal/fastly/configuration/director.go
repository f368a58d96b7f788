package configuration

import "sort"

// Director load-balances over a set of backends referenced by name.
type Director struct {
	Name     string   `json:"name" yaml:"name"`
	Backends []string `json:"backends" yaml:"backends"`
	Capacity int      `json:"capacity" yaml:"capacity"`
	Comment  string   `json:"comment" yaml:"comment"`
	Quorum   int      `json:"quorum" yaml:"quorum"`
	Shield   string   `json:"shield,omitempty" yaml:"shield"`
	Type     int      `json:"type" yaml:"type"`
	Retries  int      `json:"retries" yaml:"retries"`
}

func (d Director) EntityName() string { return d.Name }

// Defaulted also sorts the backend list so that member order never shows up
// as a spurious difference.
func (d Director) Defaulted() Director {
	if d.Capacity == 0 {
		d.Capacity = 100
	}
	if d.Quorum == 0 {
		d.Quorum = 75
	}
	if d.Type == 0 {
		d.Type = 1
	}
	if d.Retries == 0 {
		d.Retries = 5
	}
	if len(d.Backends) > 0 {
		sorted := make([]string, len(d.Backends))
		copy(sorted, d.Backends)
		sort.Strings(sorted)
		d.Backends = sorted
	}
	return d
}

func (d Director) validate() error {
	return required(KindDirector, d.Name, "name", d.Name)
}
