// Package proxy forwards the browser's /api/* calls to the backend. Going
// through the web origin keeps the session cookie first-party, so the
// SameSite=Lax attribute holds and the browser attaches it automatically.
package proxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/rs/zerolog"
)

// New returns a reverse proxy handler targeting the backend API. Cookies
// and headers pass through untouched; a backend outage surfaces as 502.
func New(apiBaseURL string, log zerolog.Logger) (http.Handler, error) {
	target, err := url.Parse(apiBaseURL)
	if err != nil {
		return nil, err
	}

	p := httputil.NewSingleHostReverseProxy(target)
	p.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("api proxy error")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream unavailable"}`))
	}
	return p, nil
}
