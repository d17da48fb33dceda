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
	"fmt"
	"net/http"
	"strings"
)

// StrongETag quotes token as a strong ETag: `"token"`.
func StrongETag(token string) string {
	return fmt.Sprintf("%q", token)
}

// WeakenETag prefixes an ETag value with "W/" if it isn't already weak.
func WeakenETag(etag string) string {
	if strings.HasPrefix(etag, "W/") {
		return etag
	}
	return "W/" + etag
}

// etagsMatch compares two ETag header values per HTTP's weak-comparison
// rule: a leading "W/" is stripped from both sides before comparing the
// quoted opaque tags.
func etagsMatch(a, b string) bool {
	return strings.TrimPrefix(a, "W/") == strings.TrimPrefix(b, "W/")
}

// revidMiddleware converts a "revid=<token>" query parameter into a strong
// If-None-Match request header, so the conditional-request middleware
// downstream can treat it exactly like a browser-supplied one.
func revidMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if revid := r.URL.Query().Get("revid"); revid != "" {
			r.Header.Set("If-None-Match", StrongETag(revid))
		}
		next.ServeHTTP(w, r)
	})
}

// conditionalMiddleware intercepts the handler's first WriteHeader call: if
// the handler has already set an ETag header that weakly matches the
// request's If-None-Match, the status is rewritten to 304 and the body
// (never written) is suppressed. Otherwise headers and body pass straight
// through to the real ResponseWriter — large file/LDML bodies are streamed,
// never buffered in memory.
func conditionalMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &etagRecorder{ResponseWriter: w, inm: r.Header.Get("If-None-Match")}
		next.ServeHTTP(rec, r)
	})
}

// etagRecorder wraps the real ResponseWriter, deciding at the first
// WriteHeader call whether to downgrade to a bodyless 304.
type etagRecorder struct {
	http.ResponseWriter
	inm       string
	decided   bool
	suppress  bool
}

func (rec *etagRecorder) WriteHeader(status int) {
	if !rec.decided {
		rec.decided = true
		etag := rec.Header().Get("ETag")
		if rec.inm != "" && etag != "" && etagsMatch(rec.inm, etag) {
			rec.suppress = true
			rec.ResponseWriter.WriteHeader(http.StatusNotModified)
			return
		}
	}
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *etagRecorder) Write(p []byte) (int, error) {
	if !rec.decided {
		// No explicit WriteHeader call before the first Write: decide now,
		// as http.ResponseWriter itself would implicitly send 200.
		rec.WriteHeader(http.StatusOK)
	}
	if rec.suppress {
		return len(p), nil
	}
	return rec.ResponseWriter.Write(p)
}
