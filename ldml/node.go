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

import "encoding/xml"

// SilNamespace is the XML namespace SIL's LDML extensions live in; the
// xpath contract in spec registers this as the "sil" prefix.
const SilNamespace = "urn://www.sil.org/ldml/0.1"

// Node is a generic, order-preserving XML element: no struct schema is
// assumed, since a subset operation must retain arbitrary top-level
// elements it was never told about in advance.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Node
	Text     string // character data that is this node's only content
}

// Attr returns the value of the unprefixed attribute named key, if present.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == key {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the unprefixed attribute named key, adding it if absent.
func (n *Node) SetAttr(key, value string) {
	for i, a := range n.Attrs {
		if a.Name.Local == key {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: key}, Value: value})
}

// ChildrenNamed returns n's direct children whose local element name is in
// names.
func (n *Node) ChildrenNamed(names map[string]bool) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if names[c.Name.Local] {
			out = append(out, c)
		}
	}
	return out
}

// findAll recursively collects every descendant (n included) matching pred.
func (n *Node) findAll(pred func(*Node) bool, out *[]*Node) {
	if pred(n) {
		*out = append(*out, n)
	}
	for _, c := range n.Children {
		c.findAll(pred, out)
	}
}

// FindAll returns every node in n's subtree (n included) for which pred
// returns true, in document order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.findAll(pred, &out)
	return out
}

// NamedIn reports a predicate matching elements named local in namespace
// space (space == "" matches any/no namespace).
func NamedIn(space, local string) func(*Node) bool {
	return func(n *Node) bool {
		return n.Name.Local == local && (space == "" || n.Name.Space == space)
	}
}
