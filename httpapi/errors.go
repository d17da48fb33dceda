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

import "errors"

// Sentinel errors naming the HTTP-level cases of the error taxonomy:
// ParseTag/UnknownTag/UnknownFile correspond to 400/404/404 and
// LDMLProcessing to 500. The request handlers write those statuses
// directly; they do not return or inspect these values.
var (
	// ErrUnknownTag is a syntactically valid tag that does not resolve to
	// any TagSet.
	ErrUnknownTag = errors.New("httpapi: tag does not resolve to a known tag set")
	// ErrUnknownFile is a resolved tag with no corresponding LDML file on
	// disk under any profile candidate path.
	ErrUnknownFile = errors.New("httpapi: no LDML file for resolved tag")
	// ErrLDMLProcessing covers subset/uid-rewrite/serialize failures.
	ErrLDMLProcessing = errors.New("httpapi: LDML processing failed")
)
