package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferdiebergado/shortly/internal/auth"
	"github.com/ferdiebergado/shortly/internal/pkg/web"
)

func TestHandler_CreateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		svc            auth.Service
		payload        *auth.TokenRequest
		wantStatusCode int
		wantBody       *auth.TokenResponse
	}{
		{
			name: "success - issues token",
			svc: &auth.StubService{
				IssueTokenFunc: func(_ context.Context, _ string) (string, time.Duration, error) {
					return "signed-token", 15 * time.Minute, nil
				},
			},
			payload:        &auth.TokenRequest{Password: "correct horse"},
			wantStatusCode: http.StatusOK,
			wantBody: &auth.TokenResponse{
				AccessToken: "signed-token",
				TokenType:   "Bearer",
				ExpiresIn:   900,
			},
		},
		{
			name: "error - wrong password",
			svc: &auth.StubService{
				IssueTokenFunc: func(_ context.Context, _ string) (string, time.Duration, error) {
					return "", 0, auth.ErrInvalidPassword
				},
			},
			payload:        &auth.TokenRequest{Password: "wrong"},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "error - no decoded payload in context",
			svc:            &auth.StubService{},
			payload:        nil,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "error - signer fails",
			svc: &auth.StubService{
				IssueTokenFunc: func(_ context.Context, _ string) (string, time.Duration, error) {
					return "", 0, errors.New("signer broken")
				},
			},
			payload:        &auth.TokenRequest{Password: "correct horse"},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := auth.NewHandler(tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/token", http.NoBody)
			if tt.payload != nil {
				ctx := web.NewContextWithParams(req.Context(), *tt.payload)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			h.CreateToken(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatusCode {
				t.Fatalf("res.StatusCode = %d, want: %d", res.StatusCode, tt.wantStatusCode)
			}

			web.AssertContentType(t, res)

			if tt.wantBody != nil {
				var okRes web.OKResponse[*auth.TokenResponse]
				if err := json.NewDecoder(res.Body).Decode(&okRes); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}

				if *okRes.Data != *tt.wantBody {
					t.Errorf("okRes.Data = %+v, want: %+v", *okRes.Data, *tt.wantBody)
				}
			}
		})
	}
}
