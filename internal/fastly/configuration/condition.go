package configuration

// Condition types as the API spells them.
const (
	ConditionRequest  = "REQUEST"
	ConditionPrefetch = "PREFETCH"
	ConditionCache    = "CACHE"
	ConditionResponse = "RESPONSE"
)

// Condition is a named VCL boolean expression other resources reference.
type Condition struct {
	Name      string `json:"name" yaml:"name"`
	Comment   string `json:"comment" yaml:"comment"`
	Priority  int    `json:"priority" yaml:"priority"`
	Statement string `json:"statement" yaml:"statement"`
	Type      string `json:"type" yaml:"type"`
}

func (c Condition) EntityName() string { return c.Name }

func (c Condition) Defaulted() Condition { return c }

func (c Condition) validate() error {
	return join([]error{
		required(KindCondition, c.Name, "name", c.Name),
		required(KindCondition, c.Name, "statement", c.Statement),
		required(KindCondition, c.Name, "type", c.Type),
		oneOf(KindCondition, c.Name, "type", c.Type,
			ConditionRequest, ConditionPrefetch, ConditionCache, ConditionResponse),
	})
}
