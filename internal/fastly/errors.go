package fastly

import (
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// ErrorResponse is the error body the Fastly API returns.
type ErrorResponse struct {
	Msg    string `json:"msg"`
	Detail string `json:"detail"`
}

func (e *ErrorResponse) message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Msg
}

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrUnauthorized    = errors.New("invalid or missing API token")
)

func handleError(resp *resty.Response) error {
	switch resp.StatusCode() {
	case 404:
		return ErrServiceNotFound
	case 401, 403:
		return ErrUnauthorized
	}
	if body, ok := resp.Error().(*ErrorResponse); ok && body != nil && body.message() != "" {
		return fmt.Errorf("fastly API: %s (%s)", body.message(), resp.Status())
	}
	return fmt.Errorf("fastly API: %s", resp.Status())
}
