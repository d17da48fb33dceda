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

package langtag

import "strings"

// grandfathered maps the fixed RFC 5646 Appendix A list of grandfathered
// tags (lowercased) to their substitute. A tag mapping to itself has no
// substitute: it is kept as written, just case-normalized per its own
// entry in the table.
var grandfathered = map[string]string{
	// irregular
	"en-gb-oed":  "en-GB-oxendict",
	"i-ami":      "i-ami",
	"i-bnn":      "i-bnn",
	"i-default":  "i-default",
	"i-enochian": "i-enochian",
	"i-hak":      "i-hak",
	"i-klingon":  "tlh",
	"i-lux":      "lb",
	"i-mingo":    "i-mingo",
	"i-navajo":   "nv",
	"i-pwn":      "i-pwn",
	"i-tao":      "i-tao",
	"i-tay":      "i-tay",
	"i-tsu":      "i-tsu",
	"sgn-be-fr":  "sgn-BE-FR",
	"sgn-be-nl":  "sgn-BE-NL",
	"sgn-ch-de":  "sgn-CH-DE",
	// regular
	"art-lojban": "jbo",
	"cel-gaulish": "cel-gaulish",
	"no-bok":     "nb",
	"no-nyn":     "nn",
	"zh-guoyu":   "cmn",
	"zh-hakka":   "hak",
	"zh-min":     "zh-min",
	"zh-min-nan": "nan",
	"zh-xiang":   "hsn",
}

// lookupGrandfathered reports whether s (any case) names a grandfathered
// tag, and if so returns its substitute (verbatim, already-cased).
func lookupGrandfathered(s string) (string, bool) {
	v, ok := grandfathered[strings.ToLower(s)]
	return v, ok
}
