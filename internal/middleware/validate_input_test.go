package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/shortly/internal/middleware"
	"github.com/ferdiebergado/shortly/internal/pkg/web"
	"github.com/ferdiebergado/shortly/internal/platform/validation"
)

func TestValidateInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		params         *testPayload
		validator      validation.Validator
		wantStatusCode int
	}{
		{
			name:   "valid input passes",
			params: &testPayload{URL: "https://example.com"},
			validator: &validation.StubValidator{
				ValidateStructFunc: func(_ any) map[string]string {
					return nil
				},
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:   "invalid input is rejected",
			params: &testPayload{},
			validator: &validation.StubValidator{
				ValidateStructFunc: func(_ any) map[string]string {
					return map[string]string{"url": "url is required"}
				},
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing params in context is rejected",
			params:         nil,
			validator:      &validation.StubValidator{},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/shorten", http.NoBody)
			if tt.params != nil {
				ctx := web.NewContextWithParams(req.Context(), *tt.params)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			middleware.ValidateInput[testPayload](tt.validator)(next).ServeHTTP(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatusCode {
				t.Fatalf("res.StatusCode = %d, want: %d", res.StatusCode, tt.wantStatusCode)
			}
		})
	}
}
