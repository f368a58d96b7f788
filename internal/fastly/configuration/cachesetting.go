package configuration

// CacheSetting overrides caching behavior, optionally gated by a CACHE
// condition.
type CacheSetting struct {
	Name           string `json:"name" yaml:"name"`
	Action         string `json:"action,omitempty" yaml:"action"`
	CacheCondition string `json:"cache_condition" yaml:"cache_condition"`
	StaleTTL       int    `json:"stale_ttl" yaml:"stale_ttl"`
}

func (c CacheSetting) EntityName() string { return c.Name }

func (c CacheSetting) Defaulted() CacheSetting { return c }

func (c CacheSetting) validate() error {
	return join([]error{
		required(KindCacheSetting, c.Name, "name", c.Name),
		oneOf(KindCacheSetting, c.Name, "action", c.Action, "cache", "pass", "restart"),
	})
}
