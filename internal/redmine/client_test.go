package redmine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "redmine-hours/internal/errors"
)

func TestClient_Get(t *testing.T) {
	t.Run("should attach the API key and query parameters", func(t *testing.T) {
		var gotRequest *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotRequest = r
			w.Write([]byte(`{"total_count": 0}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "secret", time.Second)
		query := url.Values{}
		query.Set("offset", "100")

		raw, err := client.Get(context.Background(), "/time_entries.json", query)

		require.NoError(t, err)
		assert.JSONEq(t, `{"total_count": 0}`, string(raw))
		require.NotNil(t, gotRequest)
		assert.Equal(t, "/time_entries.json", gotRequest.URL.Path)
		assert.Equal(t, "secret", gotRequest.URL.Query().Get("key"))
		assert.Equal(t, "100", gotRequest.URL.Query().Get("offset"))
		assert.Equal(t, "application/json", gotRequest.Header.Get("Accept"))
	})

	t.Run("should fail with a network error on non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewClient(server.URL, "wrong", time.Second)

		_, err := client.Get(context.Background(), "/time_entries.json", nil)

		require.Error(t, err)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNetwork))
		appErr, _ := apperrors.AsAppError(err)
		status, ok := appErr.GetContext("status")
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("should fail with a network error when the server is unreachable", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", "key", 100*time.Millisecond)

		_, err := client.Get(context.Background(), "/time_entries.json", nil)

		require.Error(t, err)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNetwork))
	})
}

func TestClient_Writes(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody map[string]interface{}
	status := http.StatusOK

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody = nil
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(status)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "secret", time.Second)
	ctx := context.Background()

	t.Run("should POST JSON and return the status", func(t *testing.T) {
		status = http.StatusCreated
		body := map[string]interface{}{"time_entry": map[string]interface{}{"hours": 2.5}}

		code, err := client.Post(ctx, "/time_entries.json", body)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, code)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "/time_entries.json", gotPath)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, 2.5, gotBody["time_entry"].(map[string]interface{})["hours"])
	})

	t.Run("should return a non-200 PUT status without failing", func(t *testing.T) {
		status = http.StatusUnprocessableEntity

		code, err := client.Put(ctx, "/time_entries/7.json", map[string]interface{}{})

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Equal(t, http.MethodPut, gotMethod)
	})

	t.Run("should DELETE without a body", func(t *testing.T) {
		status = http.StatusOK

		code, err := client.Delete(ctx, "/time_entries/7.json")

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, http.MethodDelete, gotMethod)
		assert.Equal(t, "/time_entries/7.json", gotPath)
		assert.Empty(t, gotContentType)
	})
}
