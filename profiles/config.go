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

package profiles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// entryConfig is one value of the top-level config object: profile name ->
// {langtags, sldr, sendfile_method?}.
type entryConfig struct {
	Langtags       string `json:"langtags" validate:"required"`
	Sldr           string `json:"sldr" validate:"required"`
	SendfileMethod string `json:"sendfile_method,omitempty"`
}

var configValidator = validator.New()

// namedEntry pairs a profile name with its config entry, preserving the
// order the name was first seen in the source JSON object.
type namedEntry struct {
	name  string
	entry entryConfig
}

// readConfig decodes the profiles config file at path: a JSON object
// mapping non-empty profile names to entryConfig values. Entries are
// returned in the object's source order, since profile selection order
// (the first-loaded profile is the default fallback) is observable.
func readConfig(path string) ([]namedEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profiles: reading config %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // consume '{'
		return nil, fmt.Errorf("profiles: parsing config %s: %w", path, err)
	}

	var entries []namedEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("profiles: parsing config %s: %w", path, err)
		}
		name, ok := keyTok.(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("profiles: config %s has an empty or invalid profile name", path)
		}

		var entry entryConfig
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("profiles: parsing config %s profile %q: %w", path, name, err)
		}
		if err := configValidator.Struct(entry); err != nil {
			return nil, fmt.Errorf("profiles: config %s profile %q: %w", path, name, err)
		}
		entries = append(entries, namedEntry{name: name, entry: entry})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("profiles: config %s declares no profiles", path)
	}
	return entries, nil
}
