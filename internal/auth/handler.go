package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/shortly/internal/pkg/message"
	"github.com/ferdiebergado/shortly/internal/pkg/web"
)

// Service is the interface for issuing admin tokens.
type Service interface {
	IssueToken(ctx context.Context, password string) (token string, ttl time.Duration, err error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type TokenRequest struct {
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	params, err := web.ParamsFromContext[TokenRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	token, ttl, err := h.svc.IssueToken(r.Context(), params.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			web.RespondUnauthorized(w, err, message.InvalidPassword, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	payload := &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	}
	web.OK(w, http.StatusOK, nil, payload)
}
