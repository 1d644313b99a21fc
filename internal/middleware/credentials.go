package middleware

import (
	"context"
	"net/http"

	"github.com/tpclabs/research-assistant/internal/httpx"
	"github.com/tpclabs/research-assistant/internal/models"
)

// CredentialSource reads the stored API key pair.
type CredentialSource interface {
	Get(ctx context.Context) (models.CredentialPair, error)
}

// RequireCredentials is middleware that rejects research requests before any
// network call when either API key is unset, so the UI can route the user to
// settings instead of showing a generic failure.
func RequireCredentials(creds CredentialSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pair, err := creds.Get(r.Context())
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			if !pair.Complete() {
				httpx.WriteError(w, models.ErrCredentialsMissing)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
