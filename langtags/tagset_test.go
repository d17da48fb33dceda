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

package langtags

import (
	"strings"
	"testing"

	"github.com/silsoftware/ldml-api/langtag"
)

func frmTagSet(t *testing.T) *TagSet {
	t.Helper()
	const row = `{"full": "frm-Latn-FR", "tag": "frm", "tags": ["frm-FR", "frm-Latn"],
	  "regions": ["BE"], "variants": ["1606nict"]}`
	var ts TagSet
	if err := ts.UnmarshalJSON([]byte(row)); err != nil {
		t.Fatalf("UnmarshalJSON failed: %v", err)
	}
	return &ts
}

func renderTags(tags []langtag.Tag) string {
	strs := make([]string, len(tags))
	for i, tg := range tags {
		strs[i] = tg.AsStr()
	}
	return strings.Join(strs, "=")
}

// TestVariantSetsProducesOnePerPrototype pins down the exact `GET
// /frm?query=tags` body from the worked example: one variant group per
// prototype (the base set, then each region set), not one pooled group per
// variant across every prototype.
func TestVariantSetsProducesOnePerPrototype(t *testing.T) {
	ts := frmTagSet(t)

	if got := ts.String(); got != "frm=frm-FR=frm-Latn=frm-Latn-FR" {
		t.Fatalf("String() = %q", got)
	}

	regionSets := ts.RegionSets()
	if len(regionSets) != 1 {
		t.Fatalf("len(RegionSets()) = %d, want 1", len(regionSets))
	}
	if got := renderTags(regionSets[0]); got != "frm-BE=frm-Latn-BE" {
		t.Errorf("RegionSets()[0] = %q, want frm-BE=frm-Latn-BE", got)
	}

	vs := ts.VariantSets()
	if len(vs) != 2 {
		t.Fatalf("len(VariantSets()) = %d, want 2 (one per prototype: base, frm-BE)", len(vs))
	}

	if got := renderTags(vs[0]); got != "frm-1606nict=frm-FR-1606nict=frm-Latn-1606nict=frm-Latn-FR-1606nict" {
		t.Errorf("VariantSets()[0] = %q, want the base-prototype variant group", got)
	}
	if got := renderTags(vs[1]); got != "frm-BE-1606nict=frm-Latn-BE-1606nict" {
		t.Errorf("VariantSets()[1] = %q, want the BE-region-prototype variant group", got)
	}
}

// TestVariantSetsCountMatchesQuantifiedInvariant checks invariant 6 from
// spec.md §8: all_tags().count() == (2 + |tags| + tags-with-region*|regions|)
// * (1 + fresh-variants).
func TestVariantSetsCountMatchesQuantifiedInvariant(t *testing.T) {
	ts := frmTagSet(t)

	base := len(ts.Iter())
	var tagsWithRegionTimesRegions int
	for _, rs := range ts.RegionSets() {
		tagsWithRegionTimesRegions += len(rs)
	}

	want := (base + tagsWithRegionTimesRegions) * (1 + len(ts.Variants))
	if got := len(ts.AllTags()); got != want {
		t.Errorf("len(AllTags()) = %d, want %d", got, want)
	}
}
