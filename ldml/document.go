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

// Package ldml loads, subsets, and serializes LDML (Locale Data Markup
// Language) documents from the SLDR corpus. It never constructs a document
// from scratch or mutates the corpus on disk; it only reads, trims, and
// rewrites a single identifying attribute before handing an in-memory copy
// back to a caller.
package ldml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedDocument wraps any structural problem with an LDML source:
// a DTD/directive, malformed XML, or no root element.
var ErrMalformedDocument = errors.New("ldml: malformed document")

// ErrMissingIdentity is returned by SetUID when the document has no
// sil:identity element to rewrite.
var ErrMissingIdentity = errors.New("ldml: no sil:identity element")

// Document is a loaded LDML file.
type Document struct {
	Root *Node
}

// Load parses path as an LDML document: no DTD, no blank character-data
// nodes, no implied elements, no external entity resolution.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("ldml: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes an LDML document from raw XML bytes.
func Parse(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true

	var stack []*Node
	var root *Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}

		switch t := tok.(type) {
		case xml.Directive:
			return nil, fmt.Errorf("%w: DTD/directives are not permitted", ErrMalformedDocument)
		case xml.StartElement:
			n := &Node{Name: t.Name, Attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unbalanced end element", ErrMalformedDocument)
			}
			finished := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				root = finished
			}
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			if text := strings.TrimSpace(string(t)); text != "" {
				stack[len(stack)-1].Text += text
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}
	return &Document{Root: root}, nil
}

// FindNodes returns every node in the document (root included) for which
// pred returns true, in document order. This stands in for a general
// XPath evaluator: every query this package actually needs (top-level
// child filtering for Subset, the sil:identity lookup for SetUID) is a
// simple predicate over the tree, so no XPath engine is wired in.
func (d *Document) FindNodes(pred func(*Node) bool) []*Node {
	return d.Root.FindAll(pred)
}

// Subset retains only the root's top-level children whose element name is
// in topLevels, plus "identity" (which is always kept).
func (d *Document) Subset(topLevels []string) {
	keep := make(map[string]bool, len(topLevels)+1)
	for _, name := range topLevels {
		keep[name] = true
	}
	keep["identity"] = true

	filtered := d.Root.Children[:0:0]
	for _, c := range d.Root.Children {
		if keep[c.Name.Local] {
			filtered = append(filtered, c)
		}
	}
	d.Root.Children = filtered
}

// SetUID locates the sil:identity element and sets its uid attribute to
// the decimal representation of n.
func (d *Document) SetUID(n uint32) error {
	hits := d.FindNodes(NamedIn(SilNamespace, "identity"))
	if len(hits) == 0 {
		return ErrMissingIdentity
	}
	hits[0].SetAttr("uid", strconv.FormatUint(uint64(n), 10))
	return nil
}

// Serialize renders the document as indented XML text: two-space indents,
// self-closing empty elements, no XHTML tag substitution.
func (d *Document) Serialize() string {
	var b strings.Builder
	b.WriteString(xml.Header)
	writeNode(&b, d.Root, 0, usesSilNamespace(d.Root))
	b.WriteByte('\n')
	return b.String()
}

// usesSilNamespace reports whether n or any descendant carries an element
// in SilNamespace; Go's xml.Decoder strips xmlns:sil declarations out of
// StartElement.Attr (it resolves them into Name.Space instead), so that
// declaration has to be re-synthesized on the root element at write time.
func usesSilNamespace(n *Node) bool {
	if n.Name.Space == SilNamespace {
		return true
	}
	for _, c := range n.Children {
		if usesSilNamespace(c) {
			return true
		}
	}
	return false
}

func writeNode(b *strings.Builder, n *Node, depth int, declareSil bool) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(qualifiedName(n.Name))
	for _, a := range n.Attrs {
		fmt.Fprintf(b, " %s=%q", qualifiedName(a.Name), a.Value)
	}
	if declareSil {
		fmt.Fprintf(b, " xmlns:sil=%q", SilNamespace)
	}

	if len(n.Children) == 0 && n.Text == "" {
		b.WriteString("/>")
		return
	}

	b.WriteByte('>')
	if len(n.Children) == 0 {
		xml.EscapeText(b2w{b}, []byte(n.Text)) //nolint:errcheck // strings.Builder never errors
		b.WriteString("</")
		b.WriteString(qualifiedName(n.Name))
		b.WriteByte('>')
		return
	}

	for _, c := range n.Children {
		b.WriteByte('\n')
		writeNode(b, c, depth+1, false)
	}
	b.WriteByte('\n')
	b.WriteString(indent)
	b.WriteString("</")
	b.WriteString(qualifiedName(n.Name))
	b.WriteByte('>')
}

func qualifiedName(name xml.Name) string {
	switch name.Space {
	case "":
		return name.Local
	case SilNamespace:
		return "sil:" + name.Local
	default:
		return name.Local
	}
}

// b2w adapts *strings.Builder to io.Writer for xml.EscapeText.
type b2w struct{ b *strings.Builder }

func (w b2w) Write(p []byte) (int, error) { return w.b.Write(p) }
