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
	"encoding/json"
	"net/http"

	"github.com/silsoftware/ldml-api/profiles"
)

type statusLangtags struct {
	API     string `json:"api"`
	Date    string `json:"date"`
	Tagsets int    `json:"tagsets"`
}

type statusProfile struct {
	Langtags statusLangtags `json:"langtags"`
	Sendfile string         `json:"sendfile,omitempty"`
}

type statusResponse struct {
	Service  string                   `json:"service"`
	Version  string                   `json:"version"`
	Profiles map[string]statusProfile `json:"profiles"`
}

// statusHandler renders a JSON document describing the service and each
// loaded profile's corpus metadata. Marked Cache-Control: no-store since it
// reflects live server state.
func statusHandler(serviceName, version string, pp *profiles.Profiles) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := statusResponse{
			Service:  serviceName,
			Version:  version,
			Profiles: make(map[string]statusProfile, len(pp.Iter())),
		}
		for _, prof := range pp.Iter() {
			resp.Profiles[prof.Name] = statusProfile{
				Langtags: statusLangtags{
					API:     prof.LangTags.ApiVersion(),
					Date:    prof.LangTags.Date(),
					Tagsets: len(prof.LangTags.TagSets()),
				},
				Sendfile: prof.SendfileMethod,
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
