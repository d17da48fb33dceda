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

// Package httpapi is the HTTP resolution service: routing, profile
// selection, ETag handling, file streaming, and LDML customisation.
package httpapi

import "strings"

// Toggle is a boolean parsed from a query-string parameter: everything is
// true except the empty string and "0"/"no"/"false"/"off" (case-insensitive).
type Toggle bool

const (
	// On is the truthy Toggle value.
	On Toggle = true
	// Off is the falsy Toggle value.
	Off Toggle = false
)

var toggleFalseValues = map[string]bool{
	"":      true,
	"0":     true,
	"no":    true,
	"false": true,
	"off":   true,
}

// ParseToggle parses s as a Toggle.
func ParseToggle(s string) Toggle {
	return !toggleFalseValues[strings.ToLower(s)]
}

// Bool returns the plain bool value.
func (t Toggle) Bool() bool { return bool(t) }
