package configuration

// Gzip enables compression for matching content types or extensions.
type Gzip struct {
	Name           string `json:"name" yaml:"name"`
	CacheCondition string `json:"cache_condition" yaml:"cache_condition"`
	ContentTypes   string `json:"content_types" yaml:"content_types"`
	Extensions     string `json:"extensions" yaml:"extensions"`
}

func (g Gzip) EntityName() string { return g.Name }

func (g Gzip) Defaulted() Gzip { return g }

func (g Gzip) validate() error {
	return required(KindGzip, g.Name, "name", g.Name)
}
