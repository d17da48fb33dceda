/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/silsoftware/ldml-api/profiles"
)

// Config carries the values Run needs beyond the profile set: the
// service name and version reported by /status.
type Config struct {
	ServiceName string
	Version     string
}

// newRouter wires the route tree and the three request-lifecycle
// middlewares: profile resolution first (every route), then
// revid-to-If-None-Match conversion (/{ws_id} only), then the
// ETag-compare-and-possibly-304 wrapper (/{ws_id} and /langtags.{ext}).
func newRouter(pp *profiles.Profiles, cfg Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(profileMiddleware(pp))

	r.With(conditionalMiddleware).Get("/langtags.{ext}", langtagsFileHandler)

	r.With(revidMiddleware, conditionalMiddleware).Get("/{ws_id}", wsHandler)

	r.Get("/status", statusHandler(cfg.ServiceName, cfg.Version, pp))

	r.Get("/", helpOrRedirectHandler)
	r.Get("/index.html", helpOrRedirectHandler)
	r.NotFound(helpOrRedirectHandler)

	return r
}

// requestLogger emits one structured log line per request, recording the
// client address from whichever proxy header is present (falling back to
// RemoteAddr), per the logged-client requirement.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client", clientAddr(r)).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func clientAddr(r *http.Request) string {
	if v := r.Header.Get("X-Forwarded-For"); v != "" {
		return v
	}
	if v := r.Header.Get("X-Real-Ip"); v != "" {
		return v
	}
	if v := r.Header.Get("Forwarded"); v != "" {
		return v
	}
	return r.RemoteAddr
}
