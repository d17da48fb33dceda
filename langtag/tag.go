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

// Package langtag provides a compact, mutable representation of BCP 47
// language tags (RFC 5646), along with a parser that recognizes the
// langtag, privateuse, and grandfathered forms.
//
// A Tag stores its canonical text in a single string plus a small set of
// byte offsets marking component boundaries, so that AsStr is free and
// individual components stay addressable without per-field allocations.
// Mutating a component rewrites the buffer and shifts the trailing
// offsets; offsets are kept in an 8-bit field since tags never approach
// 255 bytes in practice.
package langtag

import (
	"encoding/json"
	"sort"
	"strings"
)

// offsets marks the end of each component within buf. Sections that are
// empty collapse to the offset of the section before them.
type offsets struct {
	langEnd         uint8 // end of "lang[-extlang...]"
	scriptEnd       uint8 // end of script section
	regionEnd       uint8 // end of region section
	variantEnd      uint8 // end of the variants run
	extEnd          uint8 // end of the extensions run; buf[extEnd:] is the private-use tail, if any
	isGrandfathered bool  // tag is a grandfathered form that the grammar cannot decompose
}

// Tag is a compact, mutable BCP 47 language tag.
//
// The zero value is the empty tag (lang, script, region all absent, no
// variants/extensions/private subtags); it is a valid, if useless, Tag.
type Tag struct {
	buf string
	off offsets
}

// Default returns the empty Tag. Provided for parity with the value's zero
// value; Tag{} is equally valid.
func Default() Tag { return Tag{} }

// WithLang returns a Tag whose only component is the given language subtag.
// Casing is preserved as supplied.
func WithLang(lang string) Tag {
	var t Tag
	t.SetLang(lang)
	return t
}

// Privateuse returns a pure private-use Tag from the given private subtags
// (without the "x-" prefix, which is added automatically). Casing is
// preserved as supplied.
func Privateuse(subtags ...string) Tag {
	var t Tag
	t.SetPrivate(subtags)
	return t
}

// FromParts assembles a Tag from already-split components. extensions must
// already be namespace-name pairs; they are sorted and namespace-elided as
// SetExtensions would do. Panics on malformed extensions, matching
// SetExtensions' failure model.
func FromParts(lang, script, region string, variants []string, extensions []ExtensionRef, private []string) Tag {
	var t Tag
	t.SetLang(lang)
	t.SetScript(script)
	t.SetRegion(region)
	t.SetVariants(variants)
	t.SetExtensions(extensions)
	t.SetPrivate(private)
	return t
}

// AsStr returns the tag's canonical textual form. Free: it is the backing
// buffer, not a reconstruction.
func (t *Tag) AsStr() string { return t.buf }

// String implements fmt.Stringer.
func (t Tag) String() string { return t.buf }

// Lang returns the language subtag, or "" for a pure private-use tag.
func (t *Tag) Lang() string { return t.buf[:t.off.langEnd] }

// Script returns the script subtag and whether one is present.
func (t *Tag) Script() (string, bool) {
	if t.off.scriptEnd == t.off.langEnd {
		return "", false
	}
	return t.buf[t.off.langEnd+1 : t.off.scriptEnd], true
}

// Region returns the region subtag and whether one is present.
func (t *Tag) Region() (string, bool) {
	if t.off.regionEnd == t.off.scriptEnd {
		return "", false
	}
	return t.buf[t.off.scriptEnd+1 : t.off.regionEnd], true
}

// Private returns the private-use subtags joined with "-", and whether any
// are present.
func (t *Tag) Private() (string, bool) {
	if t.off.langEnd == 0 && t.off.extEnd == 0 && strings.HasPrefix(t.buf, "x-") {
		return t.buf[2:], true
	}
	if int(t.off.extEnd) >= len(t.buf) {
		return "", false
	}
	// buf[extEnd:] is "-x-<subtags>"
	return t.buf[int(t.off.extEnd)+3:], true
}

// HasVariants reports whether the tag carries any variant subtags.
func (t *Tag) HasVariants() bool { return t.off.variantEnd != t.off.regionEnd }

// HasExtensions reports whether the tag carries any extension subtags.
func (t *Tag) HasExtensions() bool { return t.off.extEnd != t.off.variantEnd }

// IsGrandfathered reports whether the tag is one of the fixed RFC 5646
// grandfathered forms that the general grammar cannot decompose (e.g.
// "cel-gaulish", "i-default"). Such a tag has a non-empty Lang() holding
// the entire grandfathered text and no script/region/variants/extensions.
func (t *Tag) IsGrandfathered() bool { return t.off.isGrandfathered }

// IsPrivateuse reports whether this is a pure private-use tag (empty lang,
// non-empty private subtags).
func (t *Tag) IsPrivateuse() bool {
	priv, ok := t.Private()
	return t.Lang() == "" && ok && priv != ""
}

// variantsSlice returns the raw variant subtags, in order.
func (t *Tag) variantsSlice() []string {
	if !t.HasVariants() {
		return nil
	}
	return strings.Split(t.buf[t.off.regionEnd+1:t.off.variantEnd], "-")
}

// VariantIter iterates over variant subtags, double-ended and cloneable.
type VariantIter struct{ items []string }

// Variants returns an iterator over the tag's variant subtags.
func (t *Tag) Variants() VariantIter { return VariantIter{items: t.variantsSlice()} }

// Len reports the remaining number of variants.
func (it VariantIter) Len() int { return len(it.items) }

// Next returns the next variant from the front, if any.
func (it *VariantIter) Next() (string, bool) {
	if len(it.items) == 0 {
		return "", false
	}
	v := it.items[0]
	it.items = it.items[1:]
	return v, true
}

// NextBack returns the next variant from the back, if any.
func (it *VariantIter) NextBack() (string, bool) {
	if len(it.items) == 0 {
		return "", false
	}
	v := it.items[len(it.items)-1]
	it.items = it.items[:len(it.items)-1]
	return v, true
}

// Clone returns an independent copy of the iterator's remaining state.
func (it VariantIter) Clone() VariantIter {
	items := make([]string, len(it.items))
	copy(items, it.items)
	return VariantIter{items: items}
}

// ExtensionRef is a single extension entry: a namespace singleton plus the
// name that follows it (e.g. namespace 'u', name "co" for "-u-co").
type ExtensionRef struct {
	Namespace byte
	Name      string
}

// extensionsSlice parses buf[variantEnd:extEnd] ("-ns-name-name2-ns2-name3…")
// back into individual (namespace, name) pairs, restoring the namespace for
// runs where it was elided.
func (t *Tag) extensionsSlice() []ExtensionRef {
	if !t.HasExtensions() {
		return nil
	}
	parts := strings.Split(t.buf[t.off.variantEnd+1:t.off.extEnd], "-")
	var out []ExtensionRef
	var ns byte
	for i := 0; i < len(parts); i++ {
		p := parts[i]
		if len(p) == 1 {
			ns = lower(p[0])
			continue
		}
		out = append(out, ExtensionRef{Namespace: ns, Name: p})
	}
	return out
}

// ExtensionIter iterates over (namespace, name) extension entries,
// double-ended and cloneable.
type ExtensionIter struct{ items []ExtensionRef }

// Extensions returns an iterator over the tag's extension entries.
func (t *Tag) Extensions() ExtensionIter { return ExtensionIter{items: t.extensionsSlice()} }

// Len reports the remaining number of extension entries.
func (it ExtensionIter) Len() int { return len(it.items) }

// Next returns the next extension entry from the front, if any.
func (it *ExtensionIter) Next() (ExtensionRef, bool) {
	if len(it.items) == 0 {
		return ExtensionRef{}, false
	}
	v := it.items[0]
	it.items = it.items[1:]
	return v, true
}

// NextBack returns the next extension entry from the back, if any.
func (it *ExtensionIter) NextBack() (ExtensionRef, bool) {
	if len(it.items) == 0 {
		return ExtensionRef{}, false
	}
	v := it.items[len(it.items)-1]
	it.items = it.items[:len(it.items)-1]
	return v, true
}

// Clone returns an independent copy of the iterator's remaining state.
func (it ExtensionIter) Clone() ExtensionIter {
	items := make([]ExtensionRef, len(it.items))
	copy(items, it.items)
	return ExtensionIter{items: items}
}

// --- mutators ---

// rebuild reassembles buf and off from the given components. extPairs must
// already be sorted and deduplicated (callers route through
// sortAndDedupExtensions or pass an existing tag's extensions); rebuild
// elides repeated namespaces itself.
func (t *Tag) rebuild(lang, script, region string, variants []string, extPairs []ExtensionRef, private []string) {
	var b strings.Builder
	b.WriteString(lang)
	var off offsets
	off.langEnd = u8(b.Len())
	if script != "" {
		b.WriteByte('-')
		b.WriteString(script)
	}
	off.scriptEnd = u8(b.Len())
	if region != "" {
		b.WriteByte('-')
		b.WriteString(region)
	}
	off.regionEnd = u8(b.Len())
	for _, v := range variants {
		b.WriteByte('-')
		b.WriteString(v)
	}
	off.variantEnd = u8(b.Len())
	var lastNS byte
	haveNS := false
	for _, e := range extPairs {
		if !haveNS || e.Namespace != lastNS {
			b.WriteByte('-')
			b.WriteByte(e.Namespace)
			lastNS = e.Namespace
			haveNS = true
		}
		b.WriteByte('-')
		b.WriteString(e.Name)
	}
	off.extEnd = u8(b.Len())
	if len(private) > 0 {
		if b.Len() > 0 {
			b.WriteByte('-')
		}
		b.WriteByte('x')
		for _, p := range private {
			b.WriteByte('-')
			b.WriteString(p)
		}
	}
	t.buf = b.String()
	t.off = off
}

func u8(n int) uint8 {
	if n > 255 {
		n = 255
	}
	return uint8(n)
}

// SetLang sets the language subtag; "" removes it, producing a pure
// private-use tag if private subtags are present.
func (t *Tag) SetLang(lang string) {
	script, _ := t.Script()
	region, _ := t.Region()
	private, _ := t.Private()
	t.rebuild(lang, script, region, t.variantsSlice(), t.extensionsSlice(), splitPrivate(private))
}

// SetScript sets the script subtag; "" removes it.
func (t *Tag) SetScript(script string) {
	region, _ := t.Region()
	private, _ := t.Private()
	t.rebuild(t.Lang(), script, region, t.variantsSlice(), t.extensionsSlice(), splitPrivate(private))
}

// SetRegion sets the region subtag; "" removes it.
func (t *Tag) SetRegion(region string) {
	script, _ := t.Script()
	private, _ := t.Private()
	t.rebuild(t.Lang(), script, region, t.variantsSlice(), t.extensionsSlice(), splitPrivate(private))
}

// SetVariants replaces the variant subtags wholesale, preserving order.
func (t *Tag) SetVariants(variants []string) {
	script, _ := t.Script()
	region, _ := t.Region()
	private, _ := t.Private()
	cp := append([]string(nil), variants...)
	t.rebuild(t.Lang(), script, region, cp, t.extensionsSlice(), splitPrivate(private))
}

// PushVariant appends a variant subtag.
func (t *Tag) PushVariant(v string) {
	t.SetVariants(append(t.variantsSlice(), v))
}

// PopVariant removes and returns the last variant subtag, if any.
func (t *Tag) PopVariant() (string, bool) {
	vs := t.variantsSlice()
	if len(vs) == 0 {
		return "", false
	}
	last := vs[len(vs)-1]
	t.SetVariants(vs[:len(vs)-1])
	return last, true
}

// SetExtensions replaces the extension subtags wholesale. Entries are
// sorted by (namespace, name) and namespaces are merged/elided. Panics if
// any entry is malformed: name length outside [2,8], or namespace 'x'/'X'.
func (t *Tag) SetExtensions(exts []ExtensionRef) {
	for _, e := range exts {
		validateExtensionEntry(e)
	}
	sorted := sortAndDedupExtensions(exts)

	script, _ := t.Script()
	region, _ := t.Region()
	private, _ := t.Private()
	t.rebuild(t.Lang(), script, region, t.variantsSlice(), sorted, splitPrivate(private))
}

// AddExtension inserts a single "ns-name" entry in sorted position; a no-op
// if an entry with the same namespace and name already exists. Panics on
// malformed input, per SetExtensions.
func (t *Tag) AddExtension(s string) {
	e := parseExtensionString(s)
	validateExtensionEntry(e)
	cur := t.extensionsSlice()
	for _, existing := range cur {
		if existing.Namespace == e.Namespace && strings.EqualFold(existing.Name, e.Name) {
			return
		}
	}
	t.SetExtensions(append(cur, e))
}

// RemoveExtension removes the "ns-name" entry matching s, if present,
// reporting whether anything was removed.
func (t *Tag) RemoveExtension(s string) bool {
	e := parseExtensionString(s)
	cur := t.extensionsSlice()
	out := cur[:0:0]
	removed := false
	for _, existing := range cur {
		if !removed && existing.Namespace == e.Namespace && strings.EqualFold(existing.Name, e.Name) {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	if !removed {
		return false
	}
	t.SetExtensions(out)
	return true
}

// HasExtension reports whether the "ns-name" entry denoted by s is present.
func (t *Tag) HasExtension(s string) bool {
	e := parseExtensionString(s)
	for _, existing := range t.extensionsSlice() {
		if existing.Namespace == e.Namespace && strings.EqualFold(existing.Name, e.Name) {
			return true
		}
	}
	return false
}

// SetPrivate replaces the private-use subtags wholesale.
func (t *Tag) SetPrivate(private []string) {
	script, _ := t.Script()
	region, _ := t.Region()
	cp := append([]string(nil), private...)
	t.rebuild(t.Lang(), script, region, t.variantsSlice(), t.extensionsSlice(), cp)
}

func splitPrivate(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "-")
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// sortAndDedupExtensions sorts extension entries by (namespace, name),
// case-insensitively on name, and drops duplicates.
func sortAndDedupExtensions(exts []ExtensionRef) []ExtensionRef {
	sorted := append([]ExtensionRef(nil), exts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Namespace != sorted[j].Namespace {
			return sorted[i].Namespace < sorted[j].Namespace
		}
		return foldCase(sorted[i].Name) < foldCase(sorted[j].Name)
	})
	return dedupExtensions(sorted)
}

// dedupExtensions merges consecutive duplicate (namespace, name) entries,
// keeping the first occurrence.
func dedupExtensions(sorted []ExtensionRef) []ExtensionRef {
	out := sorted[:0:0]
	for i, e := range sorted {
		if i > 0 && out[len(out)-1].Namespace == e.Namespace && strings.EqualFold(out[len(out)-1].Name, e.Name) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func validateExtensionEntry(e ExtensionRef) {
	ns := lower(e.Namespace)
	if ns == 'x' {
		panic(ErrMalformedExtension{Reason: "extension namespace must not be 'x'"})
	}
	if len(e.Name) < 2 || len(e.Name) > 8 {
		panic(ErrMalformedExtension{Reason: "extension name must be 2-8 alphanumeric characters"})
	}
}

// parseExtensionString splits a caller-supplied "ns-name" string into an
// ExtensionRef, without validating it (callers validate separately).
func parseExtensionString(s string) ExtensionRef {
	if len(s) < 2 || s[1] != '-' {
		panic(ErrMalformedExtension{Reason: "extension string must have the form 'ns-name'"})
	}
	return ExtensionRef{Namespace: lower(s[0]), Name: s[2:]}
}

// --- equality, ordering, hashing ---

// foldCase lowercases ASCII for case-insensitive comparisons.
func foldCase(s string) string { return strings.ToLower(s) }

// Equal reports case-insensitive equality of the tags' canonical text.
func (t Tag) Equal(other Tag) bool {
	return strings.EqualFold(t.buf, other.buf)
}

// HashKey returns a case-folded key suitable for use in maps keyed on tag
// identity (equivalent to the type's Hash impl in the source spec).
func (t Tag) HashKey() string { return foldCase(t.buf) }

// Compare orders tags by (lang, script, region) only, case-folded; it is a
// total order, but variants/extensions/private do not affect it.
func (t Tag) Compare(other Tag) int {
	a, b := &t, &other
	if c := strings.Compare(foldCase(a.Lang()), foldCase(b.Lang())); c != 0 {
		return c
	}
	as, _ := a.Script()
	bs, _ := b.Script()
	if c := strings.Compare(foldCase(as), foldCase(bs)); c != 0 {
		return c
	}
	ar, _ := a.Region()
	br, _ := b.Region()
	return strings.Compare(foldCase(ar), foldCase(br))
}

// Less reports whether t sorts before other under Compare.
func (t Tag) Less(other Tag) bool { return t.Compare(other) < 0 }

// MarshalJSON implements json.Marshaler, encoding the tag as its canonical
// text.
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.buf)
}

// UnmarshalJSON implements json.Unmarshaler. The string is parsed with
// Parse; malformed input fails the decode.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = Tag{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
