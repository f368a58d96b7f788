package configuration

// Healthcheck probes an origin host; backends reference it by name.
type Healthcheck struct {
	Name             string `json:"name" yaml:"name"`
	CheckInterval    int    `json:"check_interval,omitempty" yaml:"check_interval"`
	Comment          string `json:"comment" yaml:"comment"`
	ExpectedResponse int    `json:"expected_response" yaml:"expected_response"`
	Host             string `json:"host" yaml:"host"`
	HTTPVersion      string `json:"http_version" yaml:"http_version"`
	Initial          int    `json:"initial,omitempty" yaml:"initial"`
	Method           string `json:"method" yaml:"method"`
	Path             string `json:"path" yaml:"path"`
	Threshold        int    `json:"threshold,omitempty" yaml:"threshold"`
	Timeout          int    `json:"timeout,omitempty" yaml:"timeout"`
	Window           int    `json:"window,omitempty" yaml:"window"`
}

func (h Healthcheck) EntityName() string { return h.Name }

func (h Healthcheck) Defaulted() Healthcheck {
	if h.ExpectedResponse == 0 {
		h.ExpectedResponse = 200
	}
	if h.HTTPVersion == "" {
		h.HTTPVersion = "1.1"
	}
	if h.Method == "" {
		h.Method = "HEAD"
	}
	if h.Path == "" {
		h.Path = "/"
	}
	return h
}

func (h Healthcheck) validate() error {
	return join([]error{
		required(KindHealthcheck, h.Name, "name", h.Name),
		required(KindHealthcheck, h.Name, "host", h.Host),
		validHost(KindHealthcheck, h.Name, "host", h.Host),
	})
}
