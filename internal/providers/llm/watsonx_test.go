package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatsonx_TokenCachedAcrossCalls(t *testing.T) {
	var tokenCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/identity/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "urn:ibm:params:oauth:grant-type:apikey", r.PostForm.Get("grant_type"))
		assert.Equal(t, "api-key", r.PostForm.Get("apikey"))
		_, _ = w.Write([]byte(`{"access_token":"iam-token","expires_in":3600}`))
	})
	mux.HandleFunc("/ml/v1/text/generation", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2023-05-29", r.URL.Query().Get("version"))
		assert.Equal(t, "Bearer iam-token", r.Header.Get("Authorization"))

		var body watsonxRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "proj", body.ProjectID)
		assert.Equal(t, "greedy", body.Parameters.DecodingMethod)
		assert.Contains(t, body.Input, "User: my pitch")

		_, _ = w.Write([]byte(`{"results":[{"generated_text":"  Who are your competitors?  "}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	w := NewWatsonx("api-key", srv.URL, "proj", "model").WithIAMURL(srv.URL)
	req := Request{Messages: []Message{{Role: RoleSystem, Content: "sys"}, {Role: RoleUser, Content: "my pitch"}}}

	for i := 0; i < 2; i++ {
		out, err := w.Complete(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "Who are your competitors?", out)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
}

func TestWatsonx_NotConfigured(t *testing.T) {
	w := NewWatsonx("", "https://example.invalid", "", "model")
	assert.False(t, w.Configured())
	_, err := w.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestWatsonx_IAMFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	w := NewWatsonx("k", srv.URL, "p", "m").WithIAMURL(srv.URL)
	_, err := w.Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.True(t, IsStatusError(err))
}
