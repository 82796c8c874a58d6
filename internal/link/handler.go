package link

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/shortly/internal/config"
	"github.com/ferdiebergado/shortly/internal/pkg/message"
	"github.com/ferdiebergado/shortly/internal/pkg/web"
)

// Service is the interface for link operations.
type Service interface {
	ShortenURL(ctx context.Context, originalURL string) (Link, error)
	ResolveCode(ctx context.Context, code string) (*Link, error)
	CodeStats(ctx context.Context, code string) (*Link, error)
	ListLinks(ctx context.Context) ([]Link, error)
	DeleteLink(ctx context.Context, code string) error
}

type Handler struct {
	svc Service
	cfg *config.Server
}

func NewHandler(svc Service, cfg *config.Server) *Handler {
	return &Handler{
		svc: svc,
		cfg: cfg,
	}
}

type ShortenRequest struct {
	URL string `json:"url" validate:"required,max=2048"`
}

type ShortenResponse struct {
	ShortURL    string `json:"short_url"`
	ShortCode   string `json:"short_code"`
	OriginalURL string `json:"original_url"`
}

func (h *Handler) Shorten(w http.ResponseWriter, r *http.Request) {
	params, err := web.ParamsFromContext[ShortenRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.URLRequired, nil)
		return
	}

	l, err := h.svc.ShortenURL(r.Context(), params.URL)
	if err != nil {
		if errors.Is(err, ErrInvalidURL) {
			web.RespondBadRequest(w, err, message.InvalidURL, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	payload := &ShortenResponse{
		ShortURL:    h.baseURL(r) + "/" + l.ShortCode,
		ShortCode:   l.ShortCode,
		OriginalURL: l.OriginalURL,
	}
	web.OK(w, http.StatusOK, nil, payload)
}

func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	l, err := h.svc.ResolveCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, ErrResolveNotFound) || errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.LinkNotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	http.Redirect(w, r, l.OriginalURL, http.StatusFound)
}

type StatsResponse struct {
	ShortCode   string `json:"short_code"`
	OriginalURL string `json:"original_url"`
	Clicks      int64  `json:"clicks"`
	CreatedAt   string `json:"created_at"`
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	l, err := h.svc.CodeStats(r.Context(), code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.LinkNotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	payload := newStatsResponse(l)
	web.OK(w, http.StatusOK, nil, payload)
}

type linkData struct {
	ID          string    `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListResponse struct {
	Links []linkData `json:"links"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.svc.ListLinks(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	payload := newListResponse(links)
	web.OK(w, http.StatusOK, nil, payload)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	if err := h.svc.DeleteLink(r.Context(), code); err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.LinkNotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := "Link deleted."
	web.OK[struct{}](w, http.StatusOK, &msg, nil)
}

// baseURL prefers the configured public URL and falls back to the host the
// request arrived on.
func (h *Handler) baseURL(r *http.Request) string {
	if h.cfg != nil && h.cfg.URL != "" {
		return h.cfg.URL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func newStatsResponse(l *Link) *StatsResponse {
	return &StatsResponse{
		ShortCode:   l.ShortCode,
		OriginalURL: l.OriginalURL,
		Clicks:      l.Clicks,
		CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func newListResponse(links []Link) *ListResponse {
	data := make([]linkData, 0, len(links))
	for _, l := range links {
		data = append(data, linkData{
			ID:          l.ID,
			ShortCode:   l.ShortCode,
			OriginalURL: l.OriginalURL,
			Clicks:      l.Clicks,
			CreatedAt:   l.CreatedAt,
		})
	}

	return &ListResponse{
		Links: data,
	}
}
