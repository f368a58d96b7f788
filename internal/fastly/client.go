// Package fastly is a thin client for the Fastly configuration API. It knows
// nothing about reconciliation; it exposes service/version lifecycle calls
// and per-kind CRUD over version-scoped resources.
package fastly

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/cdnops/fastly-sync/internal/fastly/configuration"
)

const DefaultBaseURL = "https://api.fastly.com"

// Client wraps a resty client authenticated with a Fastly API key. The key
// is passed in explicitly; the client never reads the environment.
type Client struct {
	http *resty.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Fastly-Key", apiKey).
			SetHeader("Accept", "application/json").
			SetHeader("Content-Type", "application/json").
			OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
				req.SetHeader("X-Request-ID", uuid.NewString())
				return nil
			}),
	}
}

// Version is a numbered snapshot of a service configuration. A version with
// neither the active nor the locked flag set is a mutable draft.
type Version struct {
	Number int  `json:"number"`
	Active bool `json:"active"`
	Locked bool `json:"locked"`
}

// Draft reports whether the version can still be mutated.
func (v Version) Draft() bool { return !v.Active && !v.Locked }

// Service is the identity and version summary of a remote service.
type Service struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ActiveVersion *Version `json:"active_version"`
	LatestVersion *Version `json:"version"`
}

// Ping verifies connectivity and credentials.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&ErrorResponse{}).
		Get("/current_customer")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return handleError(resp)
	}
	return nil
}

// GetServiceByName resolves a service name to its details, or
// ErrServiceNotFound.
func (c *Client) GetServiceByName(ctx context.Context, name string) (*Service, error) {
	var found Service
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("name", name).
		SetResult(&found).
		SetError(&ErrorResponse{}).
		Get("/service/search")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, handleError(resp)
	}
	return c.GetService(ctx, found.ID)
}

func (c *Client) GetService(ctx context.Context, serviceID string) (*Service, error) {
	var svc Service
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&svc).
		SetError(&ErrorResponse{}).
		Get("/service/" + url.PathEscape(serviceID) + "/details")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, handleError(resp)
	}
	return &svc, nil
}

func (c *Client) CreateService(ctx context.Context, name string) (*Service, error) {
	var created Service
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"name": name}).
		SetResult(&created).
		SetError(&ErrorResponse{}).
		Post("/service")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, handleError(resp)
	}
	return c.GetService(ctx, created.ID)
}

func (c *Client) DeleteService(ctx context.Context, serviceID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&ErrorResponse{}).
		Delete("/service/" + url.PathEscape(serviceID))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return handleError(resp)
	}
	return nil
}

// CreateVersion creates an empty draft version. Used only for services that
// have no version at all; everything else starts from a clone.
func (c *Client) CreateVersion(ctx context.Context, serviceID string) (Version, error) {
	var v Version
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&v).
		SetError(&ErrorResponse{}).
		Post("/service/" + url.PathEscape(serviceID) + "/version")
	if err != nil {
		return Version{}, err
	}
	if resp.IsError() {
		return Version{}, handleError(resp)
	}
	return v, nil
}

// CloneVersion produces a new draft inheriting every resource of the source
// version.
func (c *Client) CloneVersion(ctx context.Context, serviceID string, from int) (Version, error) {
	var v Version
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&v).
		SetError(&ErrorResponse{}).
		Put(versionPath(serviceID, from) + "/clone")
	if err != nil {
		return Version{}, err
	}
	if resp.IsError() {
		return Version{}, handleError(resp)
	}
	return v, nil
}

func (c *Client) ActivateVersion(ctx context.Context, serviceID string, number int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&ErrorResponse{}).
		Put(versionPath(serviceID, number) + "/activate")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return handleError(resp)
	}
	return nil
}

func (c *Client) DeactivateVersion(ctx context.Context, serviceID string, number int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&ErrorResponse{}).
		Put(versionPath(serviceID, number) + "/deactivate")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return handleError(resp)
	}
	return nil
}

// GetSettings reads the per-version settings singleton.
func (c *Client) GetSettings(ctx context.Context, serviceID string, version int) (configuration.Settings, error) {
	var s configuration.Settings
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&s).
		SetError(&ErrorResponse{}).
		Get(versionPath(serviceID, version) + "/settings")
	if err != nil {
		return configuration.Settings{}, err
	}
	if resp.IsError() {
		return configuration.Settings{}, handleError(resp)
	}
	return s, nil
}

func (c *Client) UpdateSettings(ctx context.Context, serviceID string, version int, s configuration.Settings) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(s).
		SetError(&ErrorResponse{}).
		Put(versionPath(serviceID, version) + "/settings")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return handleError(resp)
	}
	return nil
}

func versionPath(serviceID string, version int) string {
	return fmt.Sprintf("/service/%s/version/%d", url.PathEscape(serviceID), version)
}
