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
	"encoding/binary"
	"errors"
	"strconv"

	"github.com/google/uuid"
)

// ErrZeroUniqueID is returned when a caller-supplied uid string parses as
// the literal zero, which is not a valid identifier.
var ErrZeroUniqueID = errors.New("httpapi: uid must be non-zero")

// UniqueID wraps a 32-bit identifier used to stamp an LDML document's
// sil:identity uid attribute.
type UniqueID uint32

// ParseUniqueID parses s: "unknown" generates a random value (folding a
// generated UUID's first four bytes to 32 bits); any other string must
// parse as a non-zero decimal uint32.
func ParseUniqueID(s string) (UniqueID, error) {
	if s == "unknown" {
		id := uuid.New()
		return UniqueID(binary.BigEndian.Uint32(id[:4])), nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrZeroUniqueID
	}
	return UniqueID(n), nil
}

// Uint32 returns the plain numeric value.
func (u UniqueID) Uint32() uint32 { return uint32(u) }
