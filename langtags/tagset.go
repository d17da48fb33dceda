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

// Package langtags indexes the SIL langtags.json corpus and answers
// orthographic- and locale-normal-form queries against it.
package langtags

import (
	"encoding/json"
	"strings"

	"github.com/silsoftware/ldml-api/langtag"
)

// TagSet is one row of the langtags corpus: a canonical locale described by
// its most-specific tag, its equivalence class, and the alternate
// regions/variants it admits.
type TagSet struct {
	Full       langtag.Tag   `json:"full"`
	Tag        langtag.Tag   `json:"tag"`
	Tags       []langtag.Tag `json:"tags,omitempty"`
	Regions    []string      `json:"regions,omitempty"`
	Variants   []string      `json:"variants,omitempty"`
	Nophonvars bool          `json:"nophonvars,omitempty"`

	// Display metadata: the core treats these as opaque pass-through
	// attributes. The commonly-present ones are modeled explicitly so
	// callers needn't dig through Extra for them; anything else in the
	// JSON row is preserved verbatim in Extra on decode. Extra is not
	// written back out when a TagSet is marshaled.
	Name      string   `json:"name,omitempty"`
	Names     []string `json:"names,omitempty"`
	ISO6393   string   `json:"iso639_3,omitempty"`
	Sldr      bool     `json:"sldr,omitempty"`
	Suppress  bool     `json:"suppress,omitempty"`
	Obsolete  bool     `json:"obsolete,omitempty"`
	Unwritten bool     `json:"unwritten,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var knownTagSetFields = map[string]bool{
	"full": true, "tag": true, "tags": true, "regions": true, "variants": true,
	"nophonvars": true, "name": true, "names": true, "iso639_3": true,
	"sldr": true, "suppress": true, "obsolete": true, "unwritten": true,
}

// UnmarshalJSON decodes a TagSet row, applying the defaults from spec
// (missing optional lists are empty; nophonvars/sldr/suppress/obsolete/
// unwritten default false) and preserving any field not explicitly modeled
// in Extra.
func (ts *TagSet) UnmarshalJSON(data []byte) error {
	type alias TagSet
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*ts = TagSet(a)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if !knownTagSetFields[k] {
			if ts.Extra == nil {
				ts.Extra = make(map[string]json.RawMessage)
			}
			ts.Extra[k] = v
		}
	}
	return nil
}

// Iter returns {tag, tags…, full} in abbreviation order: exactly
// 2+len(Tags) entries.
func (ts *TagSet) Iter() []langtag.Tag {
	out := make([]langtag.Tag, 0, 2+len(ts.Tags))
	out = append(out, ts.Tag)
	out = append(out, ts.Tags...)
	out = append(out, ts.Full)
	return out
}

// RegionSets returns, for each alternate region, the sequence obtained by
// substituting that region into every entry of Iter() that already
// carries a region (the bare-language entry in Iter() is skipped).
func (ts *TagSet) RegionSets() [][]langtag.Tag {
	base := ts.Iter()
	sets := make([][]langtag.Tag, 0, len(ts.Regions))
	for _, region := range ts.Regions {
		var set []langtag.Tag
		for _, t := range base {
			if _, ok := t.Region(); !ok {
				continue
			}
			cp := t
			cp.SetRegion(region)
			set = append(set, cp)
		}
		sets = append(sets, set)
	}
	return sets
}

// VariantSets returns one group per (prototype, variant) pair, where the
// prototypes are the base set (Iter()) followed by each region set in turn:
// (1+len(Regions))*len(Variants) groups in total, each obtained by appending
// that variant to every tag of that one prototype.
func (ts *TagSet) VariantSets() [][]langtag.Tag {
	prototypes := make([][]langtag.Tag, 0, 1+len(ts.Regions))
	prototypes = append(prototypes, ts.Iter())
	prototypes = append(prototypes, ts.RegionSets()...)

	sets := make([][]langtag.Tag, 0, len(prototypes)*len(ts.Variants))
	for _, proto := range prototypes {
		for _, v := range ts.Variants {
			set := make([]langtag.Tag, 0, len(proto))
			for _, t := range proto {
				cp := t
				cp.PushVariant(v)
				set = append(set, cp)
			}
			sets = append(sets, set)
		}
	}
	return sets
}

// AllTags returns the flattened concatenation of Iter(), RegionSets(), and
// VariantSets(); used only for coverage tests, per spec.
func (ts *TagSet) AllTags() []langtag.Tag {
	out := append([]langtag.Tag(nil), ts.Iter()...)
	for _, rs := range ts.RegionSets() {
		out = append(out, rs...)
	}
	for _, vs := range ts.VariantSets() {
		out = append(out, vs...)
	}
	return out
}

// String renders the equivalence-set form: Iter() joined with "=".
func (ts *TagSet) String() string {
	parts := ts.Iter()
	strs := make([]string, len(parts))
	for i, t := range parts {
		strs[i] = t.AsStr()
	}
	return strings.Join(strs, "=")
}
