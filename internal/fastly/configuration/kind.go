package configuration

// Kind identifies one category of version-scoped service resource.
type Kind string

const (
	KindDomain         Kind = "domain"
	KindCondition      Kind = "condition"
	KindHealthcheck    Kind = "healthcheck"
	KindBackend        Kind = "backend"
	KindDirector       Kind = "director"
	KindCacheSetting   Kind = "cache_setting"
	KindGzip           Kind = "gzip"
	KindHeader         Kind = "header"
	KindRequestSetting Kind = "request_setting"
	KindResponseObject Kind = "response_object"
	KindSnippet        Kind = "snippet"
	KindS3Logging      Kind = "s3_logging"
	KindSyslogLogging  Kind = "syslog_logging"
	KindCloudFiles     Kind = "cloudfiles_logging"

	// KindSettings is the per-version settings singleton. It has no
	// name-keyed identity and is only ever updated in place.
	KindSettings Kind = "settings"
)

// Kinds returns every resource kind managed by this tool.
func Kinds() []Kind {
	return []Kind{
		KindDomain,
		KindCondition,
		KindHealthcheck,
		KindBackend,
		KindDirector,
		KindCacheSetting,
		KindGzip,
		KindHeader,
		KindRequestSetting,
		KindResponseObject,
		KindSnippet,
		KindS3Logging,
		KindSyslogLogging,
		KindCloudFiles,
		KindSettings,
	}
}
