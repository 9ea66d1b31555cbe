package domain

import (
	"context"
	"encoding/json"
	"net/url"
)

// Transport performs JSON REST calls against the remote server. Get
// fails on network errors and on non-2xx responses; Post, Put and
// Delete fail only on network errors and hand the HTTP status code
// back to the caller, which owns its interpretation.
//
// Calls block until the server answers or the transport's own timeout
// fires; there is no retrying at this level.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	Post(ctx context.Context, path string, body interface{}) (int, error)
	Put(ctx context.Context, path string, body interface{}) (int, error)
	Delete(ctx context.Context, path string) (int, error)
}
