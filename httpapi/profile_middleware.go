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
	"context"
	"net/http"

	"github.com/silsoftware/ldml-api/profiles"
)

type profileCtxKey struct{}

// profileMiddleware inspects the query string, selects the active Profile
// (iterating profiles in order, choosing the first whose name appears as a
// truthy query-string toggle, else the fallback), and attaches it to the
// request context.
func profileMiddleware(pp *profiles.Profiles) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			selected, err := pp.Fallback()
			if err != nil {
				http.Error(w, "no profiles configured", http.StatusInternalServerError)
				return
			}
			for _, prof := range pp.Iter() {
				values, ok := query[prof.Name]
				if !ok || len(values) == 0 {
					continue
				}
				if ParseToggle(values[0]).Bool() {
					selected = prof
					break
				}
			}
			ctx := context.WithValue(r.Context(), profileCtxKey{}, selected)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// profileFromContext retrieves the Profile attached by profileMiddleware.
func profileFromContext(ctx context.Context) (*profiles.Profile, bool) {
	p, ok := ctx.Value(profileCtxKey{}).(*profiles.Profile)
	return p, ok
}
