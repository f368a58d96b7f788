// Package configuration holds the desired-state model for a Fastly VCL
// service: one struct per resource kind with the field names, enum choices
// and defaults the Fastly API documents, plus the YAML manifest loader.
package configuration

import (
	"fmt"
)

// Entity is implemented by every name-keyed resource type. Defaulted returns
// a copy with documented defaults filled into unset optional fields; it is
// applied before any equality comparison so that the diff never has to reason
// about absent values.
type Entity[T any] interface {
	EntityName() string
	Defaulted() T
}

// ServiceConfig is the desired state for one service. It is immutable input
// for a reconciliation run: Normalize returns a defaulted copy and never
// mutates the receiver.
type ServiceConfig struct {
	Name string `yaml:"name"`

	Domains         []Domain            `yaml:"domains"`
	Healthchecks    []Healthcheck       `yaml:"healthchecks"`
	Backends        []Backend           `yaml:"backends"`
	CacheSettings   []CacheSetting      `yaml:"cache_settings"`
	Conditions      []Condition         `yaml:"conditions"`
	Directors       []Director          `yaml:"directors"`
	Gzips           []Gzip              `yaml:"gzips"`
	Headers         []Header            `yaml:"headers"`
	RequestSettings []RequestSetting    `yaml:"request_settings"`
	ResponseObjects []ResponseObject    `yaml:"response_objects"`
	Snippets        []Snippet           `yaml:"vcl_snippets"`
	S3Loggers       []S3Logging         `yaml:"s3s"`
	SyslogLoggers   []SyslogLogging     `yaml:"syslogs"`
	CloudFiles      []CloudFilesLogging `yaml:"cloudfiles"`
	Settings        Settings            `yaml:"settings"`
}

// Normalize applies per-kind defaults to every entity and validates the
// result. The returned config is a deep-enough copy: entity slices are
// replaced, the receiver is left untouched.
func (c ServiceConfig) Normalize() (ServiceConfig, error) {
	if c.Name == "" {
		return c, fmt.Errorf("service name is required")
	}

	out := c
	out.Domains = defaultAll(c.Domains)
	out.Healthchecks = defaultAll(c.Healthchecks)
	out.Backends = defaultAll(c.Backends)
	out.CacheSettings = defaultAll(c.CacheSettings)
	out.Conditions = defaultAll(c.Conditions)
	out.Directors = defaultAll(c.Directors)
	out.Gzips = defaultAll(c.Gzips)
	out.Headers = defaultAll(c.Headers)
	out.RequestSettings = defaultAll(c.RequestSettings)
	out.ResponseObjects = defaultAll(c.ResponseObjects)
	out.Snippets = defaultAll(c.Snippets)
	out.S3Loggers = defaultAll(c.S3Loggers)
	out.SyslogLoggers = defaultAll(c.SyslogLoggers)
	out.CloudFiles = defaultAll(c.CloudFiles)
	out.Settings = c.Settings.Defaulted()

	if err := out.validate(); err != nil {
		return c, err
	}
	return out, nil
}

func (c ServiceConfig) validate() error {
	var errs []error
	errs = append(errs, validateAll(KindDomain, c.Domains)...)
	errs = append(errs, validateAll(KindHealthcheck, c.Healthchecks)...)
	errs = append(errs, validateAll(KindBackend, c.Backends)...)
	errs = append(errs, validateAll(KindCacheSetting, c.CacheSettings)...)
	errs = append(errs, validateAll(KindCondition, c.Conditions)...)
	errs = append(errs, validateAll(KindDirector, c.Directors)...)
	errs = append(errs, validateAll(KindGzip, c.Gzips)...)
	errs = append(errs, validateAll(KindHeader, c.Headers)...)
	errs = append(errs, validateAll(KindRequestSetting, c.RequestSettings)...)
	errs = append(errs, validateAll(KindResponseObject, c.ResponseObjects)...)
	errs = append(errs, validateAll(KindSnippet, c.Snippets)...)
	errs = append(errs, validateAll(KindS3Logging, c.S3Loggers)...)
	errs = append(errs, validateAll(KindSyslogLogging, c.SyslogLoggers)...)
	errs = append(errs, validateAll(KindCloudFiles, c.CloudFiles)...)
	return join(errs)
}

func defaultAll[T Entity[T]](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, e := range in {
		out[i] = e.Defaulted()
	}
	return out
}

type validatable interface {
	validate() error
}

func validateAll[T validatable](kind Kind, in []T) []error {
	var errs []error
	seen := make(map[string]struct{}, len(in))
	for _, e := range in {
		if err := e.validate(); err != nil {
			errs = append(errs, err)
		}
		if n, ok := any(e).(interface{ EntityName() string }); ok {
			name := n.EntityName()
			if _, dup := seen[name]; dup && name != "" {
				errs = append(errs, fmt.Errorf("%s %q: duplicate name", kind, name))
			}
			seen[name] = struct{}{}
		}
	}
	return errs
}
