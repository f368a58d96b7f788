package configuration

// RequestSetting tunes request handling, optionally gated by a REQUEST
// condition.
type RequestSetting struct {
	Name             string `json:"name" yaml:"name"`
	RequestCondition string `json:"request_condition" yaml:"request_condition"`
	ForceMiss        int    `json:"force_miss" yaml:"force_miss"`
	ForceSSL         int    `json:"force_ssl" yaml:"force_ssl"`
	Action           string `json:"action,omitempty" yaml:"action"`
	BypassBusyWait   int    `json:"bypass_busy_wait" yaml:"bypass_busy_wait"`
	MaxStaleAge      int    `json:"max_stale_age" yaml:"max_stale_age"`
	HashKeys         string `json:"hash_keys" yaml:"hash_keys"`
	XForwardedFor    string `json:"xff,omitempty" yaml:"xff"`
	TimerSupport     int    `json:"timer_support" yaml:"timer_support"`
	GeoHeaders       int    `json:"geo_headers" yaml:"geo_headers"`
	DefaultHost      string `json:"default_host" yaml:"default_host"`
}

func (r RequestSetting) EntityName() string { return r.Name }

func (r RequestSetting) Defaulted() RequestSetting { return r }

func (r RequestSetting) validate() error {
	return join([]error{
		required(KindRequestSetting, r.Name, "name", r.Name),
		oneOf(KindRequestSetting, r.Name, "action", r.Action, "lookup", "pass"),
		oneOf(KindRequestSetting, r.Name, "xff", r.XForwardedFor,
			"clear", "leave", "append", "append_all", "overwrite"),
	})
}
