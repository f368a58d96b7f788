package configuration

// Backend is an origin server. RequestCondition and HealthcheckName hold
// names of entities of other kinds within the same version.
type Backend struct {
	Name                string `json:"name" yaml:"name"`
	Port                int    `json:"port" yaml:"port"`
	Address             string `json:"address" yaml:"address"`
	RequestCondition    string `json:"request_condition" yaml:"request_condition"`
	SSLHostname         string `json:"ssl_hostname,omitempty" yaml:"ssl_hostname"`
	SSLCACert           string `json:"ssl_ca_cert,omitempty" yaml:"ssl_ca_cert"`
	SSLCertHostname     string `json:"ssl_cert_hostname,omitempty" yaml:"ssl_cert_hostname"`
	Shield              string `json:"shield,omitempty" yaml:"shield"`
	HealthcheckName     string `json:"healthcheck,omitempty" yaml:"healthcheck"`
	Weight              int    `json:"weight" yaml:"weight"`
	ConnectTimeout      int    `json:"connect_timeout" yaml:"connect_timeout"`
	FirstByteTimeout    int    `json:"first_byte_timeout" yaml:"first_byte_timeout"`
	BetweenBytesTimeout int    `json:"between_bytes_timeout" yaml:"between_bytes_timeout"`
	ErrorThreshold      int    `json:"error_threshold" yaml:"error_threshold"`
	MaxConn             int    `json:"max_conn" yaml:"max_conn"`
}

func (b Backend) EntityName() string { return b.Name }

func (b Backend) Defaulted() Backend {
	if b.Port == 0 {
		b.Port = 80
	}
	if b.Weight == 0 {
		b.Weight = 100
	}
	if b.ConnectTimeout == 0 {
		b.ConnectTimeout = 1000
	}
	if b.FirstByteTimeout == 0 {
		b.FirstByteTimeout = 15000
	}
	if b.BetweenBytesTimeout == 0 {
		b.BetweenBytesTimeout = 10000
	}
	if b.MaxConn == 0 {
		b.MaxConn = 200
	}
	return b
}

func (b Backend) validate() error {
	return join([]error{
		required(KindBackend, b.Name, "name", b.Name),
		required(KindBackend, b.Name, "address", b.Address),
		validHost(KindBackend, b.Name, "address", b.Address),
		validPort(KindBackend, b.Name, "port", b.Port),
	})
}
