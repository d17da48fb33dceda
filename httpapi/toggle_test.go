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

import "testing"

func TestParseToggle(t *testing.T) {
	falseCases := []string{"", "0", "no", "No", "false", "FALSE", "off", "Off"}
	for _, s := range falseCases {
		if ParseToggle(s).Bool() {
			t.Errorf("ParseToggle(%q) = true, want false", s)
		}
	}

	trueCases := []string{"1", "yes", "true", "on", "anything-else"}
	for _, s := range trueCases {
		if !ParseToggle(s).Bool() {
			t.Errorf("ParseToggle(%q) = false, want true", s)
		}
	}
}
