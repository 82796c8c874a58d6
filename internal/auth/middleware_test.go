package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/shortly/internal/auth"
	"github.com/ferdiebergado/shortly/internal/platform/jwt"
)

func TestRequireToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		authHeader     string
		signer         *jwt.StubSigner
		wantStatusCode int
		wantSubject    string
	}{
		{
			name:       "success - valid bearer token",
			authHeader: "Bearer good-token",
			signer: &jwt.StubSigner{
				VerifyFunc: func(_ string) (*jwt.Claims, error) {
					return &jwt.Claims{Subject: "admin"}, nil
				},
			},
			wantStatusCode: http.StatusOK,
			wantSubject:    "admin",
		},
		{
			name:           "error - missing header",
			authHeader:     "",
			signer:         &jwt.StubSigner{},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "error - missing bearer prefix",
			authHeader:     "Basic abc",
			signer:         &jwt.StubSigner{},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "error - invalid token",
			authHeader: "Bearer bad-token",
			signer: &jwt.StubSigner{
				VerifyFunc: func(_ string) (*jwt.Claims, error) {
					return nil, errors.New("signature mismatch")
				},
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotSubject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSubject, _ = auth.SubjectFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/links", http.NoBody)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			auth.RequireToken(tt.signer)(next).ServeHTTP(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatusCode {
				t.Fatalf("res.StatusCode = %d, want: %d", res.StatusCode, tt.wantStatusCode)
			}

			if gotSubject != tt.wantSubject {
				t.Errorf("subject = %q, want: %q", gotSubject, tt.wantSubject)
			}
		})
	}
}
