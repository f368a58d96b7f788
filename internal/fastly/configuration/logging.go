package configuration

const defaultLogFormat = `%{%Y-%m-%dT%H:%M:%S}t %h "%r" %>s %b`

const defaultTimestampFormat = "%Y-%m-%dT%H"

var messageTypes = []string{"classic", "loggly", "logplex", "blank"}

// S3Logging streams access logs to an S3 bucket.
type S3Logging struct {
	Name              string `json:"name" yaml:"name"`
	AccessKey         string `json:"access_key,omitempty" yaml:"access_key"`
	BucketName        string `json:"bucket_name,omitempty" yaml:"bucket_name"`
	Domain            string `json:"domain,omitempty" yaml:"domain"`
	Format            string `json:"format" yaml:"format"`
	FormatVersion     int    `json:"format_version" yaml:"format_version"`
	GzipLevel         int    `json:"gzip_level" yaml:"gzip_level"`
	MessageType       string `json:"message_type" yaml:"message_type"`
	Path              string `json:"path" yaml:"path"`
	Period            int    `json:"period" yaml:"period"`
	Placement         string `json:"placement,omitempty" yaml:"placement"`
	Redundancy        string `json:"redundancy,omitempty" yaml:"redundancy"`
	ResponseCondition string `json:"response_condition,omitempty" yaml:"response_condition"`
	SecretKey         string `json:"secret_key,omitempty" yaml:"secret_key"`
	SSEKMSKeyID       string `json:"server_side_encryption_kms_key_id,omitempty" yaml:"server_side_encryption_kms_key_id"`
	SSE               string `json:"server_side_encryption,omitempty" yaml:"server_side_encryption"`
	TimestampFormat   string `json:"timestamp_format" yaml:"timestamp_format"`
}

func (l S3Logging) EntityName() string { return l.Name }

func (l S3Logging) Defaulted() S3Logging {
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
	if l.FormatVersion == 0 {
		l.FormatVersion = 2
	}
	if l.MessageType == "" {
		l.MessageType = "classic"
	}
	if l.Path == "" {
		l.Path = "/"
	}
	if l.Period == 0 {
		l.Period = 3600
	}
	if l.TimestampFormat == "" {
		l.TimestampFormat = defaultTimestampFormat
	}
	return l
}

func (l S3Logging) validate() error {
	return join([]error{
		required(KindS3Logging, l.Name, "name", l.Name),
		oneOf(KindS3Logging, l.Name, "message_type", l.MessageType, messageTypes...),
	})
}

// SyslogLogging streams access logs to a syslog endpoint.
type SyslogLogging struct {
	Name              string `json:"name" yaml:"name"`
	Hostname          string `json:"hostname" yaml:"hostname"`
	Port              int    `json:"port" yaml:"port"`
	Address           string `json:"address,omitempty" yaml:"address"`
	FormatVersion     int    `json:"format_version" yaml:"format_version"`
	Format            string `json:"format" yaml:"format"`
	IPv4              string `json:"ipv4,omitempty" yaml:"ipv4"`
	MessageType       string `json:"message_type" yaml:"message_type"`
	Placement         string `json:"placement,omitempty" yaml:"placement"`
	ResponseCondition string `json:"response_condition,omitempty" yaml:"response_condition"`
	TLSCACert         string `json:"tls_ca_cert,omitempty" yaml:"tls_ca_cert"`
	TLSHostname       string `json:"tls_hostname,omitempty" yaml:"tls_hostname"`
	Token             string `json:"token,omitempty" yaml:"token"`
	UseTLS            int    `json:"use_tls" yaml:"use_tls"`
}

func (l SyslogLogging) EntityName() string { return l.Name }

// Defaulted fills Hostname from Address when unset, matching how the API
// reports the endpoint back.
func (l SyslogLogging) Defaulted() SyslogLogging {
	if l.FormatVersion == 0 {
		l.FormatVersion = 2
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
	if l.MessageType == "" {
		l.MessageType = "classic"
	}
	if l.Hostname == "" {
		l.Hostname = l.Address
	}
	return l
}

func (l SyslogLogging) validate() error {
	return join([]error{
		required(KindSyslogLogging, l.Name, "name", l.Name),
		required(KindSyslogLogging, l.Name, "address", l.Address),
		validHost(KindSyslogLogging, l.Name, "address", l.Address),
		validPort(KindSyslogLogging, l.Name, "port", l.Port),
		oneOf(KindSyslogLogging, l.Name, "message_type", l.MessageType, messageTypes...),
	})
}

// CloudFilesLogging streams access logs to Rackspace Cloud Files.
type CloudFilesLogging struct {
	Name              string `json:"name" yaml:"name"`
	AccessKey         string `json:"access_key,omitempty" yaml:"access_key"`
	BucketName        string `json:"bucket_name,omitempty" yaml:"bucket_name"`
	Format            string `json:"format" yaml:"format"`
	FormatVersion     int    `json:"format_version" yaml:"format_version"`
	GzipLevel         int    `json:"gzip_level" yaml:"gzip_level"`
	MessageType       string `json:"message_type" yaml:"message_type"`
	Path              string `json:"path" yaml:"path"`
	Period            int    `json:"period" yaml:"period"`
	Placement         string `json:"placement,omitempty" yaml:"placement"`
	Region            string `json:"region,omitempty" yaml:"region"`
	ResponseCondition string `json:"response_condition,omitempty" yaml:"response_condition"`
	TimestampFormat   string `json:"timestamp_format" yaml:"timestamp_format"`
	User              string `json:"user" yaml:"user"`
}

func (l CloudFilesLogging) EntityName() string { return l.Name }

func (l CloudFilesLogging) Defaulted() CloudFilesLogging {
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
	if l.FormatVersion == 0 {
		l.FormatVersion = 2
	}
	if l.MessageType == "" {
		l.MessageType = "classic"
	}
	if l.Path == "" {
		l.Path = "/"
	}
	if l.Period == 0 {
		l.Period = 3600
	}
	if l.TimestampFormat == "" {
		l.TimestampFormat = defaultTimestampFormat
	}
	return l
}

func (l CloudFilesLogging) validate() error {
	return join([]error{
		required(KindCloudFiles, l.Name, "name", l.Name),
		required(KindCloudFiles, l.Name, "user", l.User),
		oneOf(KindCloudFiles, l.Name, "message_type", l.MessageType, messageTypes...),
	})
}
