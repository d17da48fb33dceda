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

//nolint:testpackage // white-box test file.
package langtag

import "testing"

func TestParseGrandfatheredSubstitute(t *testing.T) {
	tag, err := Parse("i-klingon")
	if err != nil {
		t.Fatalf("Parse(i-klingon) failed: %v", err)
	}
	if tag.Lang() != "tlh" {
		t.Fatalf("Lang() = %q, want tlh", tag.Lang())
	}
}

func TestParseGrandfatheredIdentity(t *testing.T) {
	for _, tag := range []string{"cel-gaulish", "zh-min", "i-default", "i-ami"} {
		got, err := Parse(tag)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tag, err)
		}
		if got.AsStr() != tag {
			t.Fatalf("Parse(%q).AsStr() = %q", tag, got.AsStr())
		}
		if !got.IsGrandfathered() {
			t.Errorf("Parse(%q) not recognized as opaque grandfathered", tag)
		}
	}
}

func TestParseExtlangChain(t *testing.T) {
	tag, err := Parse("zh-yue-Hant-HK")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tag.Lang() != "zh-yue" {
		t.Fatalf("Lang() = %q, want zh-yue", tag.Lang())
	}
	if s, _ := tag.Script(); s != "Hant" {
		t.Errorf("Script() = %q, want Hant", s)
	}
	if r, _ := tag.Region(); r != "HK" {
		t.Errorf("Region() = %q, want HK", r)
	}
}

func TestParseRejectsForbiddenChar(t *testing.T) {
	_, err := Parse("en_US")
	if err == nil {
		t.Fatalf("expected error for en_US")
	}
	var pe *ParseError
	if !asParseError(err, &pe) || pe.Kind != KindForbiddenChar {
		t.Fatalf("expected KindForbiddenChar, got %v", err)
	}
}

func TestParseRejectsEmptySubtag(t *testing.T) {
	for _, s := range []string{"en--US", "en-", "-en"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) expected error", s)
		}
	}
}

func TestParsePrivateUseRequiresSubtag(t *testing.T) {
	if _, err := Parse("x"); err == nil {
		t.Fatalf("Parse(\"x\") expected error")
	}
}

func TestParseExtensionRequiresName(t *testing.T) {
	if _, err := Parse("en-a"); err == nil {
		t.Fatalf("Parse(en-a) expected error (dangling singleton)")
	}
}

func asParseError(err error, out **ParseError) bool {
	pe, ok := err.(*ParseError)
	if ok {
		*out = pe
	}
	return ok
}
