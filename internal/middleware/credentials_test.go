package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tpclabs/research-assistant/internal/models"
)

type staticCreds struct {
	pair models.CredentialPair
}

func (s staticCreds) Get(context.Context) (models.CredentialPair, error) { return s.pair, nil }

func TestRequireCredentialsBlocksIncompletePair(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	})
	mw := RequireCredentials(staticCreds{pair: models.CredentialPair{SearchAPIKey: "tvly"}})

	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/research", nil))

	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), "credentials_missing")
}

func TestRequireCredentialsPassesCompletePair(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	mw := RequireCredentials(staticCreds{pair: models.CredentialPair{SearchAPIKey: "tvly", ModelAPIKey: "sk"}})

	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/research", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
