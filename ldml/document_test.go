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

package ldml

import (
	"strings"
	"testing"
)

const sampleLDML = `<?xml version="1.0" encoding="UTF-8"?>
<ldml xmlns:sil="urn://www.sil.org/ldml/0.1">
  <identity>
    <version number="$Revision$"/>
    <language type="en"/>
    <special>
      <sil:identity uid="1" revid="abc123"/>
    </special>
  </identity>
  <localeDisplayNames>
    <languages>
      <language type="en">English</language>
    </languages>
  </localeDisplayNames>
  <characters>
    <exemplarCharacters>[a-z]</exemplarCharacters>
  </characters>
</ldml>`

func mustParse(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse([]byte(sampleLDML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestParseRoot(t *testing.T) {
	doc := mustParse(t)
	if doc.Root.Name.Local != "ldml" {
		t.Fatalf("root = %q, want ldml", doc.Root.Name.Local)
	}
	if len(doc.Root.Children) != 3 {
		t.Fatalf("len(children) = %d, want 3", len(doc.Root.Children))
	}
}

func TestSetUID(t *testing.T) {
	doc := mustParse(t)
	if err := doc.SetUID(42); err != nil {
		t.Fatalf("SetUID failed: %v", err)
	}
	hits := doc.FindNodes(NamedIn(SilNamespace, "identity"))
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1", len(hits))
	}
	uid, ok := hits[0].Attr("uid")
	if !ok || uid != "42" {
		t.Errorf("uid = %q, ok=%v, want 42", uid, ok)
	}
}

func TestSetUIDMissingIdentity(t *testing.T) {
	doc, err := Parse([]byte(`<ldml><identity><language type="en"/></identity></ldml>`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := doc.SetUID(1); err != ErrMissingIdentity {
		t.Fatalf("SetUID err = %v, want ErrMissingIdentity", err)
	}
}

func TestSubsetKeepsIdentityAndNamed(t *testing.T) {
	doc := mustParse(t)
	doc.Subset([]string{"characters"})

	names := make([]string, len(doc.Root.Children))
	for i, c := range doc.Root.Children {
		names[i] = c.Name.Local
	}
	if len(names) != 2 || names[0] != "identity" || names[1] != "characters" {
		t.Fatalf("children = %v, want [identity characters]", names)
	}
}

func TestRejectsDirective(t *testing.T) {
	_, err := Parse([]byte(`<!DOCTYPE ldml><ldml/>`))
	if err == nil {
		t.Fatalf("expected error for DOCTYPE directive")
	}
}

func TestSerializeRoundTripsStructure(t *testing.T) {
	doc := mustParse(t)
	out := doc.Serialize()
	if !strings.Contains(out, "<identity>") {
		t.Errorf("serialized output missing <identity>: %s", out)
	}
	if !strings.Contains(out, "sil:identity") {
		t.Errorf("serialized output missing sil:identity: %s", out)
	}

	reparsed, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("reparsing serialized output failed: %v", err)
	}
	if len(reparsed.Root.Children) != len(doc.Root.Children) {
		t.Errorf("reparsed child count = %d, want %d", len(reparsed.Root.Children), len(doc.Root.Children))
	}
}
