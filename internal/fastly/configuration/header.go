package configuration

// Header rewrites a request or response header at one of the VCL stages.
type Header struct {
	Name              string `json:"name" yaml:"name"`
	Action            string `json:"action" yaml:"action"`
	Dst               string `json:"dst" yaml:"dst"`
	IgnoreIfSet       int    `json:"ignore_if_set" yaml:"ignore_if_set"`
	Priority          int    `json:"priority" yaml:"priority"`
	Regex             string `json:"regex" yaml:"regex"`
	RequestCondition  string `json:"request_condition,omitempty" yaml:"request_condition"`
	ResponseCondition string `json:"response_condition,omitempty" yaml:"response_condition"`
	CacheCondition    string `json:"cache_condition,omitempty" yaml:"cache_condition"`
	Src               string `json:"src" yaml:"src"`
	Substitution      string `json:"substitution" yaml:"substitution"`
	Type              string `json:"type" yaml:"type"`
}

func (h Header) EntityName() string { return h.Name }

func (h Header) Defaulted() Header {
	if h.Action == "" {
		h.Action = "set"
	}
	if h.Priority == 0 {
		h.Priority = 100
	}
	return h
}

func (h Header) validate() error {
	return join([]error{
		required(KindHeader, h.Name, "name", h.Name),
		required(KindHeader, h.Name, "dst", h.Dst),
		required(KindHeader, h.Name, "src", h.Src),
		required(KindHeader, h.Name, "type", h.Type),
		oneOf(KindHeader, h.Name, "action", h.Action, "set", "append", "delete", "regex", "regex_repeat"),
		oneOf(KindHeader, h.Name, "type", h.Type, "request", "fetch", "cache", "response"),
	})
}
