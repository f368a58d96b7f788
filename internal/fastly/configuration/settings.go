package configuration

// Settings is the per-version settings singleton. Unlike the name-keyed
// kinds it always exists on the remote side and is only ever updated.
type Settings struct {
	DefaultTTL int `json:"general.default_ttl" yaml:"general.default_ttl"`
}

func (s Settings) Defaulted() Settings {
	if s.DefaultTTL == 0 {
		s.DefaultTTL = 3600
	}
	return s
}
