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

const sampleCorpus = `[
  {"tag": "_conformance", "scripts": ["Latn", "Arab", "Hebr"], "regions": ["US", "TW", "TN", "IL", "GB"]},
  {"tag": "_globalvar", "variants": ["simple"]},
  {"tag": "_phonvar", "variants": ["fonipa"]},
  {"tag": "_version", "api": "2.0.0", "date": "2024-01-01"},
  {"full": "en-Latn-US", "tag": "en", "tags": ["en-US"], "regions": ["GB"], "name": "English"},
  {"full": "aeb-Arab-TN", "tag": "aeb", "tags": ["aeb-TN"], "regions": ["TN"], "name": "Tunisian Arabic"},
  {"full": "aeb-Hebr-IL", "tag": "aeb-Hebr", "tags": ["aeb-Hebr-IL"], "regions": ["IL"], "name": "Tunisian Arabic (Hebrew)"}
]`

func loadSample(t *testing.T) *LangTags {
	t.Helper()
	lt, err := FromReader(strings.NewReader(sampleCorpus))
	if err != nil {
		t.Fatalf("FromReader failed: %v", err)
	}
	return lt
}

func mustParse(t *testing.T, s string) langtag.Tag {
	t.Helper()
	tag, err := langtag.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return tag
}

func TestFromReaderHeaders(t *testing.T) {
	lt := loadSample(t)
	if lt.ApiVersion() != "2.0.0" {
		t.Errorf("ApiVersion() = %q", lt.ApiVersion())
	}
	if lt.Date() != "2024-01-01" {
		t.Errorf("Date() = %q", lt.Date())
	}
	if len(lt.TagSets()) != 3 {
		t.Errorf("len(TagSets()) = %d, want 3", len(lt.TagSets()))
	}
}

func TestFromReaderMissingVersion(t *testing.T) {
	const corpus = `[
	  {"tag": "_conformance", "scripts": ["Latn"], "regions": ["US"]},
	  {"full": "en-Latn-US", "tag": "en", "tags": ["en-US"], "regions": ["US"]}
	]`
	_, err := FromReader(strings.NewReader(corpus))
	if err == nil {
		t.Fatalf("expected ErrMissingHeader")
	}
	var mh *ErrMissingHeader
	if !errorsAs(err, &mh) {
		t.Fatalf("expected *ErrMissingHeader, got %v (%T)", err, err)
	}
	if mh.Header != "api" {
		t.Errorf("Header = %q, want api", mh.Header)
	}
}

func errorsAs(err error, target **ErrMissingHeader) bool {
	mh, ok := err.(*ErrMissingHeader)
	if ok {
		*target = mh
	}
	return ok
}

func TestConformant(t *testing.T) {
	lt := loadSample(t)
	if !lt.Conformant(mustParse(t, "en-Latn-US")) {
		t.Errorf("expected en-Latn-US to be conformant")
	}
	if lt.Conformant(mustParse(t, "en-Cyrl-RU")) {
		t.Errorf("expected en-Cyrl-RU to be non-conformant (script/region not declared)")
	}
}

func TestOrthographicNormalFormVerbatim(t *testing.T) {
	lt := loadSample(t)
	ts, ok := lt.OrthographicNormalForm(mustParse(t, "en-US"))
	if !ok {
		t.Fatalf("expected a hit for en-US")
	}
	if ts.Full.AsStr() != "en-Latn-US" {
		t.Errorf("Full = %q, want en-Latn-US", ts.Full.AsStr())
	}
}

func TestOrthographicNormalFormRegionSubstitute(t *testing.T) {
	lt := loadSample(t)
	ts, ok := lt.OrthographicNormalForm(mustParse(t, "en-GB"))
	if !ok {
		t.Fatalf("expected a hit for en-GB (alternate region)")
	}
	if ts.Full.AsStr() != "en-Latn-US" {
		t.Errorf("Full = %q, want en-Latn-US", ts.Full.AsStr())
	}
}

func TestOrthographicNormalFormScriptDisambiguation(t *testing.T) {
	lt := loadSample(t)
	ts, ok := lt.OrthographicNormalForm(mustParse(t, "aeb-Hebr"))
	if !ok {
		t.Fatalf("expected a hit for aeb-Hebr")
	}
	if ts.Full.AsStr() != "aeb-Hebr-IL" {
		t.Errorf("Full = %q, want aeb-Hebr-IL", ts.Full.AsStr())
	}
}

func TestOrthographicNormalFormNoMatch(t *testing.T) {
	lt := loadSample(t)
	if _, ok := lt.OrthographicNormalForm(mustParse(t, "zzz-Qaaa-ZZ")); ok {
		t.Errorf("expected no hit for an unrelated tag")
	}
}

func TestLocaleNormalFormRegionSwap(t *testing.T) {
	lt := loadSample(t)
	ts, ok := lt.LocaleNormalForm(mustParse(t, "en-GB"))
	if !ok {
		t.Fatalf("expected a hit for en-GB")
	}
	if ts.Full.AsStr() != "en-Latn-GB" {
		t.Errorf("Full = %q, want en-Latn-GB", ts.Full.AsStr())
	}
	for _, r := range ts.Regions {
		if strings.EqualFold(r, "GB") {
			t.Errorf("Regions still contains GB after substitution: %v", ts.Regions)
		}
	}
	found := false
	for _, r := range ts.Regions {
		if strings.EqualFold(r, "US") {
			found = true
		}
	}
	if !found {
		t.Errorf("Regions = %v, want to contain US (the displaced canonical region)", ts.Regions)
	}
	for _, tg := range ts.Tags {
		if _, ok := tg.Region(); !ok {
			t.Errorf("Tags entry %q has no region, should have been dropped", tg.AsStr())
		}
	}
}

func TestLocaleNormalFormNoRegionPassthrough(t *testing.T) {
	lt := loadSample(t)
	ts, ok := lt.LocaleNormalForm(mustParse(t, "en"))
	if !ok {
		t.Fatalf("expected a hit for bare en")
	}
	if ts.Full.AsStr() != "en-Latn-US" {
		t.Errorf("Full = %q, want en-Latn-US unchanged", ts.Full.AsStr())
	}
}
