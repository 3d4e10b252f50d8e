package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFreeFiltersCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"z-ai/glm:free","name":"GLM","context_length":32000,"pricing":{"prompt":"0.0001"}},
			{"id":"openai/gpt-4o","name":"GPT-4o","context_length":128000,"pricing":{"prompt":"0.0000025"}},
			{"id":"acme/zero","name":"Zero","context_length":8000,"pricing":{"prompt":"0"}},
			{"id":"acme/numeric","name":"Numeric","context_length":4000,"pricing":{"prompt":0}}
		]}`))
	}))
	defer srv.Close()

	catalog := NewModelCatalog(srv.URL, StaticCredential("test-key"), srv.Client())
	free, err := catalog.ListFree(context.Background())

	require.NoError(t, err)
	require.Len(t, free, 3)
	assert.Equal(t, "acme/numeric", free[0].ID)
	assert.Equal(t, "acme/zero", free[1].ID)
	assert.Equal(t, "z-ai/glm:free", free[2].ID)
	assert.Equal(t, 32000, free[2].ContextLength)
}

func TestListFreeRequiresCredential(t *testing.T) {
	catalog := NewModelCatalog("http://127.0.0.1:1", StaticCredential(""), nil)
	_, err := catalog.ListFree(context.Background())
	assert.True(t, errors.Is(err, ErrMissingCredential))
}

func TestListFreeUpstreamErrors(t *testing.T) {
	status := http.StatusUnauthorized
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	}))
	defer srv.Close()

	catalog := NewModelCatalog(srv.URL, StaticCredential("k"), srv.Client())

	_, err := catalog.ListFree(context.Background())
	assert.True(t, errors.Is(err, ErrAuthFailure))

	status = http.StatusBadGateway
	_, err = catalog.ListFree(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
