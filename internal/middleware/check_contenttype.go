package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ferdiebergado/shortly/internal/pkg/message"
	"github.com/ferdiebergado/shortly/internal/pkg/web"
)

// CheckContentType rejects requests with a body whose Content-Type is not
// application/json. Requests without a body (GET, HEAD, DELETE) pass through
// so that redirect and stats lookups keep working from a plain browser.
func CheckContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			contentType := r.Header.Get(web.HeaderContentType)
			if !strings.HasPrefix(contentType, web.MimeJSON) {
				web.Fail(w, http.StatusNotAcceptable, fmt.Errorf("invalid content-type: %s", contentType), message.InvalidInput, nil)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
