package link_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferdiebergado/shortly/internal/config"
	"github.com/ferdiebergado/shortly/internal/link"
	"github.com/ferdiebergado/shortly/internal/pkg/web"
)

func TestHandler_Shorten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		svc            link.Service
		payload        *link.ShortenRequest
		wantStatusCode int
		wantBody       *link.ShortenResponse
	}{
		{
			name: "success - returns shortened url",
			svc: &link.StubService{
				ShortenURLFunc: func(_ context.Context, originalURL string) (link.Link, error) {
					return link.Link{
						ID:          "1",
						OriginalURL: originalURL,
						ShortCode:   "Ab3xYz",
					}, nil
				},
			},
			payload:        &link.ShortenRequest{URL: "https://example.com"},
			wantStatusCode: http.StatusOK,
			wantBody: &link.ShortenResponse{
				ShortURL:    "https://sho.rt/Ab3xYz",
				ShortCode:   "Ab3xYz",
				OriginalURL: "https://example.com",
			},
		},
		{
			name: "error - invalid url",
			svc: &link.StubService{
				ShortenURLFunc: func(_ context.Context, _ string) (link.Link, error) {
					return link.Link{}, link.ErrInvalidURL
				},
			},
			payload:        &link.ShortenRequest{URL: "example.com"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "error - no decoded payload in context",
			svc:            &link.StubService{},
			payload:        nil,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "error - service fails",
			svc: &link.StubService{
				ShortenURLFunc: func(_ context.Context, _ string) (link.Link, error) {
					return link.Link{}, errors.New("db error")
				},
			},
			payload:        &link.ShortenRequest{URL: "https://example.com"},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := link.NewHandler(tt.svc, &config.Server{URL: "https://sho.rt"})

			req := httptest.NewRequest(http.MethodPost, "/shorten", http.NoBody)
			if tt.payload != nil {
				ctx := web.NewContextWithParams(req.Context(), *tt.payload)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			h.Shorten(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatusCode {
				t.Fatalf("res.StatusCode = %d, want: %d", res.StatusCode, tt.wantStatusCode)
			}

			web.AssertContentType(t, res)

			if tt.wantBody != nil {
				var okRes web.OKResponse[*link.ShortenResponse]
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

func TestHandler_ShortenDerivesBaseURLFromRequest(t *testing.T) {
	t.Parallel()

	svc := &link.StubService{
		ShortenURLFunc: func(_ context.Context, originalURL string) (link.Link, error) {
			return link.Link{OriginalURL: originalURL, ShortCode: "Ab3xYz"}, nil
		},
	}
	h := link.NewHandler(svc, &config.Server{})

	req := httptest.NewRequest(http.MethodPost, "http://localhost:5000/shorten", http.NoBody)
	ctx := web.NewContextWithParams(req.Context(), link.ShortenRequest{URL: "https://example.com"})
	rec := httptest.NewRecorder()

	h.Shorten(rec, req.WithContext(ctx))

	res := rec.Result()
	defer res.Body.Close()

	var okRes web.OKResponse[*link.ShortenResponse]
	if err := json.NewDecoder(res.Body).Decode(&okRes); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	const want = "http://localhost:5000/Ab3xYz"
	if okRes.Data.ShortURL != want {
		t.Errorf("okRes.Data.ShortURL = %q, want: %q", okRes.Data.ShortURL, want)
	}
}

func TestHandler_Redirect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		svc            link.Service
		wantStatusCode int
		wantLocation   string
	}{
		{
			name: "success - redirects to original url",
			svc: &link.StubService{
				ResolveCodeFunc: func(_ context.Context, code string) (*link.Link, error) {
					return &link.Link{ShortCode: code, OriginalURL: "https://example.com/page"}, nil
				},
			},
			wantStatusCode: http.StatusFound,
			wantLocation:   "https://example.com/page",
		},
		{
			name: "error - unknown code",
			svc: &link.StubService{
				ResolveCodeFunc: func(_ context.Context, _ string) (*link.Link, error) {
					return nil, link.ErrResolveNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "error - service fails",
			svc: &link.StubService{
				ResolveCodeFunc: func(_ context.Context, _ string) (*link.Link, error) {
					return nil, errors.New("db error")
				},
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := link.NewHandler(tt.svc, &config.Server{})

			req := httptest.NewRequest(http.MethodGet, "/Ab3xYz", http.NoBody)
			req.SetPathValue("code", "Ab3xYz")
			rec := httptest.NewRecorder()

			h.Redirect(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatusCode {
				t.Fatalf("res.StatusCode = %d, want: %d", res.StatusCode, tt.wantStatusCode)
			}

			if tt.wantLocation != "" {
				if got := res.Header.Get("Location"); got != tt.wantLocation {
					t.Errorf("Location = %q, want: %q", got, tt.wantLocation)
				}
			}
		})
	}
}

func TestHandler_Stats(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		svc            link.Service
		wantStatusCode int
		wantBody       *link.StatsResponse
	}{
		{
			name: "success - returns stats",
			svc: &link.StubService{
				CodeStatsFunc: func(_ context.Context, code string) (*link.Link, error) {
					return &link.Link{
						ShortCode:   code,
						OriginalURL: "https://example.com",
						Clicks:      42,
						CreatedAt:   createdAt,
					}, nil
				},
			},
			wantStatusCode: http.StatusOK,
			wantBody: &link.StatsResponse{
				ShortCode:   "Ab3xYz",
				OriginalURL: "https://example.com",
				Clicks:      42,
				CreatedAt:   "2026-02-14 09:30:00",
			},
		},
		{
			name: "error - unknown code",
			svc: &link.StubService{
				CodeStatsFunc: func(_ context.Context, _ string) (*link.Link, error) {
					return nil, link.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := link.NewHandler(tt.svc, &config.Server{})

			req := httptest.NewRequest(http.MethodGet, "/stats/Ab3xYz", http.NoBody)
			req.SetPathValue("code", "Ab3xYz")
			rec := httptest.NewRecorder()

			h.Stats(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatusCode {
				t.Fatalf("res.StatusCode = %d, want: %d", res.StatusCode, tt.wantStatusCode)
			}

			if tt.wantBody != nil {
				var okRes web.OKResponse[*link.StatsResponse]
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

func TestHandler_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		svc            link.Service
		wantStatusCode int
	}{
		{
			name: "success - deletes link",
			svc: &link.StubService{
				DeleteLinkFunc: func(_ context.Context, _ string) error {
					return nil
				},
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "error - unknown code",
			svc: &link.StubService{
				DeleteLinkFunc: func(_ context.Context, _ string) error {
					return link.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := link.NewHandler(tt.svc, &config.Server{})

			req := httptest.NewRequest(http.MethodDelete, "/links/Ab3xYz", http.NoBody)
			req.SetPathValue("code", "Ab3xYz")
			rec := httptest.NewRecorder()

			h.Delete(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatusCode {
				t.Fatalf("res.StatusCode = %d, want: %d", res.StatusCode, tt.wantStatusCode)
			}
		})
	}
}
