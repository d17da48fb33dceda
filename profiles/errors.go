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

import "errors"

// ErrUnknownProfile is returned by SetFallback when asked to promote a
// profile name that was never loaded.
var ErrUnknownProfile = errors.New("profiles: unknown profile name")

// ErrNoProfiles is returned by Fallback when the collection is empty.
var ErrNoProfiles = errors.New("profiles: no profiles loaded")
