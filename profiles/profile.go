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

// Package profiles loads and selects named bundles of a langtags database,
// an SLDR directory, and an optional sendfile hint.
package profiles

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/silsoftware/ldml-api/langtags"
)

// Profile is one named (langtags DB, SLDR directory) bundle.
type Profile struct {
	Name           string
	LangtagsDir    string
	SldrDir        string
	SendfileMethod string
	LangTags       *langtags.LangTags
}

// Profiles is an ordered collection of Profile values; the first entry is
// the fallback used when no per-request toggle selects another.
type Profiles struct {
	entries []*Profile
	byName  map[string]int
}

// Load reads the profiles config file at path and constructs a Profile for
// every entry, in the order declared in the file. For each entry it
// verifies the sldr directory is readable (by actually listing it, not
// just stat-ing it) and loads "<langtags>/langtags.json" into a LangTags.
func Load(path string) (*Profiles, error) {
	entries, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	p := &Profiles{byName: make(map[string]int, len(entries))}
	for _, ne := range entries {
		prof, err := loadProfile(ne.name, ne.entry)
		if err != nil {
			return nil, err
		}
		p.byName[prof.Name] = len(p.entries)
		p.entries = append(p.entries, prof)
	}
	return p, nil
}

func loadProfile(name string, cfg entryConfig) (*Profile, error) {
	if _, err := os.ReadDir(cfg.Sldr); err != nil {
		return nil, fmt.Errorf("profiles: profile %q: sldr directory %s is not readable: %w", name, cfg.Sldr, err)
	}

	corpusPath := filepath.Join(cfg.Langtags, "langtags.json")
	f, err := os.Open(corpusPath)
	if err != nil {
		return nil, fmt.Errorf("profiles: profile %q: opening %s: %w", name, corpusPath, err)
	}
	defer f.Close()

	lt, err := langtags.FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("profiles: profile %q: loading %s: %w", name, corpusPath, err)
	}

	return &Profile{
		Name:           name,
		LangtagsDir:    cfg.Langtags,
		SldrDir:        cfg.Sldr,
		SendfileMethod: cfg.SendfileMethod,
		LangTags:       lt,
	}, nil
}

// SetFallback moves the named profile to the first position, making it the
// default fallback. Returns ErrUnknownProfile if name was never loaded.
func (p *Profiles) SetFallback(name string) error {
	idx, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	if idx == 0 {
		return nil
	}
	target := p.entries[idx]
	copy(p.entries[1:idx+1], p.entries[:idx])
	p.entries[0] = target
	for i, prof := range p.entries {
		p.byName[prof.Name] = i
	}
	return nil
}

// Fallback returns the first (default) profile.
func (p *Profiles) Fallback() (*Profile, error) {
	if len(p.entries) == 0 {
		return nil, ErrNoProfiles
	}
	return p.entries[0], nil
}

// Iter returns the profiles in selection order.
func (p *Profiles) Iter() []*Profile { return p.entries }

// Names returns every profile name, in selection order.
func (p *Profiles) Names() []string {
	names := make([]string, len(p.entries))
	for i, prof := range p.entries {
		names[i] = prof.Name
	}
	return names
}

// Get returns the profile with the given name, if loaded.
func (p *Profiles) Get(name string) (*Profile, bool) {
	idx, ok := p.byName[name]
	if !ok {
		return nil, false
	}
	return p.entries[idx], true
}
