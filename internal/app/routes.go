package app

import (
	"net/http"

	"github.com/ferdiebergado/gopherkit/http/response"
	"github.com/ferdiebergado/shortly/internal/auth"
	"github.com/ferdiebergado/shortly/internal/link"
	"github.com/ferdiebergado/shortly/internal/middleware"
	"github.com/ferdiebergado/shortly/internal/platform/jwt"
	"github.com/ferdiebergado/shortly/internal/platform/router"
	"github.com/ferdiebergado/shortly/internal/platform/validation"
)

func mountRoutes(r router.Router, linkHandler *link.Handler, authHandler *auth.Handler, validator validation.Validator, signer jwt.Signer, maxBodyBytes int64) {
	// "/{$}" matches the bare root only, so it cannot shadow the short-code
	// wildcard below.
	r.Get("/{$}", handleRoot)
	r.Get("/health", handleHealth)

	r.Post("/shorten", linkHandler.Shorten,
		middleware.DecodePayload[link.ShortenRequest](maxBodyBytes),
		middleware.ValidateInput[link.ShortenRequest](validator))
	r.Get("/stats/{code}", linkHandler.Stats)

	r.Group("/auth", func(gr router.Router) {
		gr.Post("/token", authHandler.CreateToken,
			middleware.DecodePayload[auth.TokenRequest](maxBodyBytes),
			middleware.ValidateInput[auth.TokenRequest](validator))
	})

	r.Group("/links", func(gr router.Router) {
		gr.Get("/", linkHandler.List)
		gr.Delete("/{code}", linkHandler.Delete)
	}, auth.RequireToken(signer))

	// Registered last so every explicit route above wins over the wildcard.
	r.Get("/{code}", linkHandler.Redirect)
}

// handleHealth reports liveness. Deploy tooling polls this endpoint after
// starting the container, so the payload shape is part of the contract.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleRoot describes the API at the bare domain in place of an HTML
// landing page.
func handleRoot(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"service": "shortly",
		"message": `POST /shorten with {"url": "https://..."} to create a short link.`,
	})
}
