package configuration

// Domain is an entry point name served by the service.
type Domain struct {
	Name    string `json:"name" yaml:"name"`
	Comment string `json:"comment" yaml:"comment"`
}

func (d Domain) EntityName() string { return d.Name }

func (d Domain) Defaulted() Domain { return d }

func (d Domain) validate() error {
	return required(KindDomain, d.Name, "name", d.Name)
}
