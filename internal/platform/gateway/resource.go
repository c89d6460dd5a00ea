package gateway

import (
	"context"
	"net/http"
)

const (
	PathDataBreaches    = "data-breaches"
	PathPrivacyRequests = "privacy-requests"
)

// Resource is the API collection for one record kind.
type Resource[T any, P any] struct {
	client *Client
	path   string
}

func NewResource[T any, P any](client *Client, path string) *Resource[T, P] {
	return &Resource[T, P]{client: client, path: path}
}

func (r *Resource[T, P]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.do(ctx, "list "+r.path, http.MethodGet, r.client.endpoint(r.path), nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Resource[T, P]) Create(ctx context.Context, payload P) (T, error) {
	var created T
	if err := r.client.do(ctx, "create "+r.path, http.MethodPost, r.client.endpoint(r.path), payload, &created); err != nil {
		var zero T
		return zero, err
	}
	return created, nil
}

func (r *Resource[T, P]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, "delete "+r.path, http.MethodDelete, r.client.endpoint(r.path, id), nil, nil)
}

// Unavailable stands in when no API base URL is configured.
type Unavailable[T any, P any] struct {
	Path string
}

func (u Unavailable[T, P]) List(context.Context) ([]T, error) {
	return nil, &UpstreamError{Op: "list " + u.Path, Err: ErrUnavailable}
}

func (u Unavailable[T, P]) Create(context.Context, P) (T, error) {
	var zero T
	return zero, &UpstreamError{Op: "create " + u.Path, Err: ErrUnavailable}
}

func (u Unavailable[T, P]) Delete(context.Context, string) error {
	return &UpstreamError{Op: "delete " + u.Path, Err: ErrUnavailable}
}
