package auth

import (
	"errors"
	"net/http"

	"github.com/ferdiebergado/shortly/internal/pkg/message"
	"github.com/ferdiebergado/shortly/internal/pkg/security"
	"github.com/ferdiebergado/shortly/internal/pkg/web"
	"github.com/ferdiebergado/shortly/internal/platform/jwt"
)

var ErrInvalidToken = errors.New("invalid token")

// RequireToken rejects requests without a valid Bearer token.
func RequireToken(signer jwt.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := security.ExtractBearerToken(r)
			if err != nil || token == "" {
				web.RespondUnauthorized(w, errors.Join(ErrInvalidToken, err), message.InvalidToken, nil)
				return
			}

			claims, err := signer.Verify(token)
			if err != nil {
				web.RespondUnauthorized(w, errors.Join(ErrInvalidToken, err), message.InvalidToken, nil)
				return
			}

			ctx := ContextWithSubject(r.Context(), claims.Subject)
			r = r.WithContext(ctx)
			next.ServeHTTP(w, r)
		})
	}
}
