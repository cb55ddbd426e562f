// seehuhn.de/go/xmpmeta - Extensible Metadata Platform in Go
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package xmpmeta

import (
	"encoding/xml"
	"slices"
)

// A node is a property, an array item, a struct field, a qualifier or a
// schema root in the XMP data model.
type node struct {
	name   xml.Name // rdf:li for array items; Local is empty for schema roots
	flags  PropertyFlags
	value  string
	parent *node

	children   []*node // struct fields or array items, in order
	qualifiers []*node // xml:lang first, then rdf:type, then the others
}

var (
	nameRDFLi    = xml.Name{Space: RDFNamespace, Local: "li"}
	nameRDFType  = xml.Name{Space: RDFNamespace, Local: "type"}
	nameRDFValue = xml.Name{Space: RDFNamespace, Local: "value"}
)

func newNode(name xml.Name, flags PropertyFlags) *node {
	return &node{name: name, flags: flags.normalizeForm() & (formMask | userMask | IsQualifier)}
}

func (n *node) isQualifier() bool { return n.flags&IsQualifier != 0 }
func (n *node) isStruct() bool    { return n.flags&ValueIsStruct != 0 }
func (n *node) isArray() bool     { return n.flags&ValueIsArray != 0 }
func (n *node) isSimple() bool    { return n.flags&Composite == 0 }
func (n *node) isItem() bool      { return n.parent != nil && n.parent.isArray() && !n.isQualifier() }

// Flags returns the complete set of flags for the node, including the
// ones which are computed from the qualifiers.
func (n *node) fullFlags() PropertyFlags {
	f := n.flags & (formMask | userMask | IsQualifier | SchemaNode)
	if n.flags&ArrayIsAlternate != 0 {
		// An alternative array is alt-text exactly when every item has a
		// language, which is also what the parser infers from RDF/XML.
		f &^= ArrayIsAltText
		if n.allItemsHaveLang() {
			f |= ArrayIsAltText
		}
	}
	if len(n.qualifiers) > 0 {
		f |= HasQualifiers
	}
	for _, q := range n.qualifiers {
		switch q.name {
		case nameXMLLang:
			f |= HasLang
		case nameRDFType:
			f |= HasType
		}
	}
	return f
}

func (n *node) allItemsHaveLang() bool {
	for _, c := range n.children {
		if _, ok := c.lang(); !ok {
			return false
		}
	}
	return true
}

func (n *node) findChild(name xml.Name) (int, *node) {
	for i, c := range n.children {
		if c.name == name {
			return i, c
		}
	}
	return -1, nil
}

func (n *node) findQualifier(name xml.Name) (int, *node) {
	for i, q := range n.qualifiers {
		if q.name == name {
			return i, q
		}
	}
	return -1, nil
}

// lang returns the value of the xml:lang qualifier.
func (n *node) lang() (string, bool) {
	_, q := n.findQualifier(nameXMLLang)
	if q == nil {
		return "", false
	}
	return q.value, true
}

func (n *node) appendChild(c *node) {
	c.parent = n
	n.children = append(n.children, c)
}

func (n *node) insertChild(i int, c *node) {
	c.parent = n
	n.children = slices.Insert(n.children, i, c)
}

// addQualifier adds q to the qualifiers of n.  The xml:lang qualifier is
// always kept first, followed by rdf:type.
func (n *node) addQualifier(q *node) {
	q.parent = n
	q.flags |= IsQualifier
	pos := len(n.qualifiers)
	switch q.name {
	case nameXMLLang:
		pos = 0
	case nameRDFType:
		pos = 0
		if len(n.qualifiers) > 0 && n.qualifiers[0].name == nameXMLLang {
			pos = 1
		}
	}
	n.qualifiers = slices.Insert(n.qualifiers, pos, q)
}

// detach removes n from its parent.
func (n *node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if n.isQualifier() {
		p.qualifiers = slices.DeleteFunc(p.qualifiers, func(c *node) bool { return c == n })
	} else {
		p.children = slices.DeleteFunc(p.children, func(c *node) bool { return c == n })
	}
	n.parent = nil
}

// clone returns a deep copy of n, with the given parent.
func (n *node) clone(parent *node) *node {
	c := &node{
		name:   n.name,
		flags:  n.flags,
		value:  n.value,
		parent: parent,
	}
	if n.children != nil {
		c.children = make([]*node, len(n.children))
		for i, child := range n.children {
			c.children[i] = child.clone(c)
		}
	}
	if n.qualifiers != nil {
		c.qualifiers = make([]*node, len(n.qualifiers))
		for i, q := range n.qualifiers {
			c.qualifiers[i] = q.clone(c)
		}
	}
	return c
}

// replaceContent replaces value, form and children of n by the ones of
// src.  If withQualifiers is set, the qualifiers are replaced as well.
func (n *node) replaceContent(src *node, withQualifiers bool) {
	tmp := src.clone(n.parent)
	n.value = tmp.value
	n.flags = n.flags&IsQualifier | tmp.flags&^IsQualifier
	n.children = tmp.children
	for _, c := range n.children {
		c.parent = n
	}
	if withQualifiers {
		n.qualifiers = tmp.qualifiers
		for _, q := range n.qualifiers {
			q.parent = n
		}
	}
}

// equal reports whether the subtrees rooted at n and m are identical.
func (n *node) equal(m *node) bool {
	if n.name != m.name || n.fullFlags() != m.fullFlags() || n.value != m.value {
		return false
	}
	if len(n.children) != len(m.children) || len(n.qualifiers) != len(m.qualifiers) {
		return false
	}
	for i := range n.children {
		if !n.children[i].equal(m.children[i]) {
			return false
		}
	}
	for i := range n.qualifiers {
		if !n.qualifiers[i].equal(m.qualifiers[i]) {
			return false
		}
	}
	return true
}
