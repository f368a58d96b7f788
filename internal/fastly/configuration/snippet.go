package configuration

// Snippet is a block of VCL spliced into the generated configuration at the
// named subroutine type.
type Snippet struct {
	Name     string `json:"name" yaml:"name"`
	Dynamic  int    `json:"dynamic" yaml:"dynamic"`
	Type     string `json:"type" yaml:"type"`
	Content  string `json:"content" yaml:"content"`
	Priority int    `json:"priority" yaml:"priority"`
}

func (s Snippet) EntityName() string { return s.Name }

func (s Snippet) Defaulted() Snippet {
	if s.Type == "" {
		s.Type = "init"
	}
	if s.Priority == 0 {
		s.Priority = 100
	}
	return s
}

func (s Snippet) validate() error {
	return join([]error{
		required(KindSnippet, s.Name, "name", s.Name),
		required(KindSnippet, s.Name, "content", s.Content),
	})
}
