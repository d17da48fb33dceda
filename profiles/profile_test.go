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

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const miniCorpus = `[
  {"tag": "_version", "api": "1.0", "date": "2024-01-01"},
  {"tag": "frm-FR", "full": "frm-Latn-FR", "regions": ["BE"]}
]`

// writeFixtures lays out one profile directory tree per given name under
// t.TempDir() and a config file selecting them, returning the config path.
func writeFixtures(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()

	cfg := make(map[string]entryConfig, len(names))
	for _, name := range names {
		langtagsDir := filepath.Join(root, name, "langtags")
		sldrDir := filepath.Join(root, name, "sldr")
		if err := os.MkdirAll(langtagsDir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(sldrDir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(langtagsDir, "langtags.json"), []byte(miniCorpus), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg[name] = entryConfig{Langtags: langtagsDir, Sldr: sldrDir}
	}

	// encode by hand, in the order given, so file order and map order agree.
	var buf []byte
	buf = append(buf, '{')
	for i, name := range names {
		if i > 0 {
			buf = append(buf, ',')
		}
		entry := cfg[name]
		buf = append(buf, []byte(`"`+name+`":{"langtags":"`+entry.Langtags+`","sldr":"`+entry.Sldr+`"}`)...)
	}
	buf = append(buf, '}')

	path := filepath.Join(root, "config.json")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOrdersProfilesAndDefaultsFallback(t *testing.T) {
	path := writeFixtures(t, "default", "alternate")

	pp, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := pp.Names(); len(got) != 2 || got[0] != "default" || got[1] != "alternate" {
		t.Fatalf("Names() = %v, want [default alternate]", got)
	}

	fb, err := pp.Fallback()
	if err != nil {
		t.Fatalf("Fallback failed: %v", err)
	}
	if fb.Name != "default" {
		t.Errorf("Fallback().Name = %q, want default", fb.Name)
	}
	if fb.LangTags.ApiVersion() != "1.0" {
		t.Errorf("Fallback().LangTags.ApiVersion() = %q, want 1.0", fb.LangTags.ApiVersion())
	}
}

func TestSetFallbackPromotesNamedProfile(t *testing.T) {
	path := writeFixtures(t, "default", "alternate")
	pp, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := pp.SetFallback("alternate"); err != nil {
		t.Fatalf("SetFallback failed: %v", err)
	}

	fb, err := pp.Fallback()
	if err != nil {
		t.Fatalf("Fallback failed: %v", err)
	}
	if fb.Name != "alternate" {
		t.Errorf("Fallback().Name = %q, want alternate", fb.Name)
	}
	if got := pp.Names(); len(got) != 2 || got[0] != "alternate" || got[1] != "default" {
		t.Errorf("Names() after SetFallback = %v, want [alternate default]", got)
	}
}

func TestSetFallbackUnknownNameErrors(t *testing.T) {
	path := writeFixtures(t, "default")
	pp, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	err = pp.SetFallback("nope")
	if !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("SetFallback(%q) error = %v, want ErrUnknownProfile", "nope", err)
	}
}

func TestLoadRejectsUnreadableSldrDir(t *testing.T) {
	root := t.TempDir()
	langtagsDir := filepath.Join(root, "langtags")
	if err := os.MkdirAll(langtagsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(langtagsDir, "langtags.json"), []byte(miniCorpus), 0o644); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(root, "config.json")
	body := `{"default":{"langtags":"` + langtagsDir + `","sldr":"` + filepath.Join(root, "missing-sldr") + `"}}`
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load succeeded with an unreadable sldr directory, want error")
	}
}

func TestGetReturnsLoadedProfile(t *testing.T) {
	path := writeFixtures(t, "default")
	pp, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	prof, ok := pp.Get("default")
	if !ok {
		t.Fatal("Get(\"default\") not found")
	}
	if prof.SldrDir == "" {
		t.Error("SldrDir is empty")
	}

	if _, ok := pp.Get("nonexistent"); ok {
		t.Error("Get(\"nonexistent\") unexpectedly found")
	}
}
