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

// Subtag shape constants, per the simplified grammar in use here: this is
// not a full IANA-registry validating parser (that's explicitly out of
// scope), only a syntactic recognizer of the langtag/privateuse/
// grandfathered forms.
const (
	primaryLangMinLen = 2
	primaryLangMaxLen = 3
	extlangLen        = 3
	maxExtlangs       = 3
	scriptLen         = 4
	regionAlphaLen    = 2
	regionDigitLen    = 3
	variantMinAlpha   = 5
	variantMaxLen     = 8
	variantMinDigit   = 4
	extNameMin        = 2
	extNameMax        = 8
	privateSubtagMin  = 1
	privateSubtagMax  = 8
)

type parseState int

const (
	stateStart parseState = iota // before script: language/extlangs still being consumed
	stateAfterScript
	stateAfterRegion
	stateInVariant
	stateInExtension
	stateInPrivate
)

// parseRun holds the mutable state of a single parse attempt.
type parseRun struct {
	lang       strings.Builder
	extlangs   int
	script     string
	region     string
	variants   []string
	extensions []ExtensionRef
	private    []string
	state      parseState
	extPending bool // true when a singleton has been seen but no name subtag yet
	currentNS  byte // namespace of the extension currently being collected
}

// Parse recognizes s as a BCP 47 langtag, privateuse tag, or grandfathered
// tag, and returns the resulting Tag. Casing is preserved from the input.
func Parse(s string) (Tag, error) {
	for i := 0; i < len(s); i++ {
		if !isLangtagChar(rune(s[i])) {
			return Tag{}, &ParseError{Kind: KindForbiddenChar, Tail: s[i:]}
		}
	}

	if t, ok, err := parseGrandfathered(s); ok {
		return t, err
	}

	t, err := parseGeneral(s)
	if err == nil {
		return t, nil
	}

	if t, ok, gErr := parseGrandfathered(s); ok {
		return t, gErr
	}
	return Tag{}, err
}

// parseGrandfathered resolves s against the fixed grandfathered table. The
// second return value reports whether s names a grandfathered tag at all;
// when it does, the first and third values are final (no further parsing
// is attempted for that input).
func parseGrandfathered(s string) (Tag, bool, error) {
	substitute, ok := lookupGrandfathered(s)
	if !ok {
		return Tag{}, false, nil
	}
	if strings.EqualFold(substitute, s) {
		// Identity mapping: the grandfathered tag does not decompose
		// under the general grammar (e.g. "cel-gaulish", "i-default").
		// Store it as an opaque, un-decomposed lang component.
		var t Tag
		t.rebuild(substitute, "", "", nil, nil, nil)
		t.off.isGrandfathered = true
		return t, true, nil
	}
	// The substitute is itself an ordinary tag (e.g. "i-klingon" -> "tlh");
	// parse that instead.
	t, err := parseGeneral(substitute)
	return t, true, err
}

func parseGeneral(s string) (Tag, error) {
	if s == "" {
		return Tag{}, &ParseError{Kind: KindEmptySubtag, Tail: s}
	}

	subtags := strings.Split(s, "-")
	if len(subtags) > 0 && len(subtags[len(subtags)-1]) == 0 {
		return Tag{}, &ParseError{Kind: KindEmptySubtag, Tail: ""}
	}

	if strings.EqualFold(subtags[0], "x") {
		return parsePrivateOnly(subtags)
	}

	var run parseRun
	for i, sub := range subtags {
		if len(sub) == 0 {
			return Tag{}, &ParseError{Kind: KindEmptySubtag, Tail: s}
		}
		if len(sub) > privateSubtagMax && run.state != stateInExtension {
			return Tag{}, &ParseError{Kind: KindSubtagTooLong, Tail: sub}
		}
		if err := run.consume(i, sub); err != nil {
			return Tag{}, err
		}
	}
	if run.extPending {
		return Tag{}, &ParseError{Kind: KindIncompleteTag, Tail: ""}
	}
	if run.lang.Len() == 0 {
		return Tag{}, &ParseError{Kind: KindInvalidSubtag, Tail: s}
	}

	var t Tag
	t.rebuild(run.lang.String(), run.script, run.region, run.variants, sortAndDedupExtensions(run.extensions), run.private)
	return t, nil
}

func parsePrivateOnly(subtags []string) (Tag, error) {
	if len(subtags) == 1 {
		return Tag{}, &ParseError{Kind: KindIncompleteTag, Tail: ""}
	}
	private := make([]string, 0, len(subtags)-1)
	for _, sub := range subtags[1:] {
		if len(sub) < privateSubtagMin || len(sub) > privateSubtagMax || !isAlphanumeric(sub) {
			return Tag{}, &ParseError{Kind: KindInvalidSubtag, Tail: sub}
		}
		private = append(private, sub)
	}
	var t Tag
	t.rebuild("", "", "", nil, nil, private)
	return t, nil
}

func (r *parseRun) consume(i int, sub string) error {
	switch r.state {
	case stateInPrivate:
		r.private = append(r.private, sub)
		return nil
	case stateInExtension:
		return r.consumeExtensionSubtag(sub)
	default:
		return r.consumeLangtagSubtag(i, sub)
	}
}

func (r *parseRun) consumeLangtagSubtag(i int, sub string) error {
	if i == 0 {
		return r.consumePrimaryLang(sub)
	}
	if len(sub) == 1 {
		return r.consumeSingleton(sub)
	}

	if r.state == stateStart && r.extlangs < maxExtlangs && len(sub) == extlangLen && isAlphabetic(sub) {
		r.lang.WriteByte('-')
		r.lang.WriteString(sub)
		r.extlangs++
		return nil
	}
	if r.state <= stateStart && len(sub) == scriptLen && isAlphabetic(sub) {
		r.script = sub
		r.state = stateAfterScript
		return nil
	}
	if r.state <= stateAfterScript &&
		((len(sub) == regionAlphaLen && isAlphabetic(sub)) || (len(sub) == regionDigitLen && isNumeric(sub))) {
		r.region = sub
		r.state = stateAfterRegion
		return nil
	}
	if r.state <= stateInVariant && isVariantShape(sub) {
		r.variants = append(r.variants, sub)
		r.state = stateInVariant
		return nil
	}
	return &ParseError{Kind: KindInvalidSubtag, Tail: sub}
}

func isVariantShape(sub string) bool {
	if len(sub) >= variantMinAlpha && len(sub) <= variantMaxLen && isAlphanumeric(sub) {
		return true
	}
	if len(sub) == variantMinDigit && isDigit(sub[0]) && isAlphanumeric(sub) {
		return true
	}
	return false
}

func (r *parseRun) consumePrimaryLang(sub string) error {
	if len(sub) < primaryLangMinLen || len(sub) > primaryLangMaxLen || !isAlphanumeric(sub) {
		return &ParseError{Kind: KindInvalidSubtag, Tail: sub}
	}
	r.lang.WriteString(sub)
	r.state = stateStart
	return nil
}

func (r *parseRun) consumeSingleton(sub string) error {
	if r.extPending {
		return &ParseError{Kind: KindIncompleteTag, Tail: sub}
	}
	ns := lower(sub[0])
	if ns == 'x' {
		r.state = stateInPrivate
		return nil
	}
	r.currentNS = ns
	r.state = stateInExtension
	r.extPending = true
	return nil
}

func (r *parseRun) consumeExtensionSubtag(sub string) error {
	if len(sub) == 1 {
		return r.consumeSingleton(sub)
	}
	if len(sub) < extNameMin || len(sub) > extNameMax || !isAlphanumeric(sub) {
		return &ParseError{Kind: KindInvalidSubtag, Tail: sub}
	}
	r.extensions = append(r.extensions, ExtensionRef{Namespace: r.currentNS, Name: sub})
	r.extPending = false
	return nil
}
