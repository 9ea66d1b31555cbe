package domain

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
)

// fakeTransport scripts transport responses for tests and records the
// calls it received.
type fakeTransport struct {
	getResponses map[string]string
	getErr       error
	postStatus   int
	postErr      error
	putStatus    int
	putErr       error
	deleteStatus int
	deleteErr    error

	getPaths    []string
	postBodies  []interface{}
	putPaths    []string
	putBodies   []interface{}
	deletePaths []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		getResponses: make(map[string]string),
		postStatus:   201,
		putStatus:    200,
		deleteStatus: 200,
	}
}

func (f *fakeTransport) Get(_ context.Context, path string, _ url.Values) (json.RawMessage, error) {
	f.getPaths = append(f.getPaths, path)
	if f.getErr != nil {
		return nil, f.getErr
	}
	body, ok := f.getResponses[path]
	if !ok {
		return nil, errors.New("unexpected GET " + path)
	}
	return json.RawMessage(body), nil
}

func (f *fakeTransport) Post(_ context.Context, _ string, body interface{}) (int, error) {
	f.postBodies = append(f.postBodies, body)
	return f.postStatus, f.postErr
}

func (f *fakeTransport) Put(_ context.Context, path string, body interface{}) (int, error) {
	f.putPaths = append(f.putPaths, path)
	f.putBodies = append(f.putBodies, body)
	return f.putStatus, f.putErr
}

func (f *fakeTransport) Delete(_ context.Context, path string) (int, error) {
	f.deletePaths = append(f.deletePaths, path)
	return f.deleteStatus, f.deleteErr
}
