package fastly

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cdnops/fastly-sync/internal/fastly/configuration"
)

// kindPaths maps every name-keyed resource kind to its API path segment
// under /service/{id}/version/{n}. The settings singleton is not listed
// here; it has dedicated Get/UpdateSettings calls.
var kindPaths = map[configuration.Kind]string{
	configuration.KindDomain:         "domain",
	configuration.KindCondition:      "condition",
	configuration.KindHealthcheck:    "healthcheck",
	configuration.KindBackend:        "backend",
	configuration.KindDirector:       "director",
	configuration.KindCacheSetting:   "cache_settings",
	configuration.KindGzip:           "gzip",
	configuration.KindHeader:         "header",
	configuration.KindRequestSetting: "request_settings",
	configuration.KindResponseObject: "response_object",
	configuration.KindSnippet:        "snippet",
	configuration.KindS3Logging:      "logging/s3",
	configuration.KindSyslogLogging:  "logging/syslog",
	configuration.KindCloudFiles:     "logging/cloudfiles",
}

func resourcePath(serviceID string, version int, kind configuration.Kind) (string, error) {
	p, ok := kindPaths[kind]
	if !ok {
		return "", fmt.Errorf("no API path for resource kind %q", kind)
	}
	return versionPath(serviceID, version) + "/" + p, nil
}

// List fetches every entity of one kind in a version. T must match kind;
// the enforcer binds the two together when it builds its collections.
func List[T any](ctx context.Context, c *Client, serviceID string, version int, kind configuration.Kind) ([]T, error) {
	path, err := resourcePath(serviceID, version, kind)
	if err != nil {
		return nil, err
	}
	var out []T
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&ErrorResponse{}).
		Get(path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, handleError(resp)
	}
	return out, nil
}

func Create[T any](ctx context.Context, c *Client, serviceID string, version int, kind configuration.Kind, entity T) error {
	path, err := resourcePath(serviceID, version, kind)
	if err != nil {
		return err
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(entity).
		SetError(&ErrorResponse{}).
		Post(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return handleError(resp)
	}
	return nil
}

// Update replaces the entity currently stored under name. The entity's own
// name field is authoritative for the stored state; name only addresses the
// object being replaced.
func Update[T any](ctx context.Context, c *Client, serviceID string, version int, kind configuration.Kind, name string, entity T) error {
	path, err := resourcePath(serviceID, version, kind)
	if err != nil {
		return err
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(entity).
		SetError(&ErrorResponse{}).
		Put(path + "/" + url.PathEscape(name))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return handleError(resp)
	}
	return nil
}

func Delete(ctx context.Context, c *Client, serviceID string, version int, kind configuration.Kind, name string) error {
	path, err := resourcePath(serviceID, version, kind)
	if err != nil {
		return err
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&ErrorResponse{}).
		Delete(path + "/" + url.PathEscape(name))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return handleError(resp)
	}
	return nil
}
