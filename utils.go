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
	"strings"
	"unicode"
	"unicode/utf8"
)

// UtilFlags modify the behaviour of the tree utility functions.
type UtilFlags int

// Options for the tree utilities.
const (
	// DoAllProperties includes internal properties in RemoveProperties
	// and AppendProperties.
	DoAllProperties UtilFlags = 0x0001

	// ReplaceOldValues makes AppendProperties replace existing values.
	ReplaceOldValues UtilFlags = 0x0002

	// DeleteEmptyValues makes AppendProperties delete properties for which
	// the source has an empty value.
	DeleteEmptyValues UtilFlags = 0x0004

	// IncludeAliases makes RemoveProperties delete aliases of a removed
	// schema, too.
	IncludeAliases UtilFlags = 0x0800

	// AllowCommas keeps commas inside items for SeparateArrayItems and
	// CatenateArrayItems.  Without this flag, commas separate items.
	AllowCommas UtilFlags = 0x10000000
)

// CatenateArrayItems joins the items of an array of simple values into a
// single string.  Items which contain separator characters are quoted.
// If separator is empty, "; " is used.  If quotes is empty, double quotes
// are used; quotes may give different opening and closing quotes.
func (t *Tree) CatenateArrayItems(ns, arrayName, separator, quotes string, flags UtilFlags) (string, error) {
	const op = "CatenateArrayItems"
	if err := t.check(op); err != nil {
		return "", err
	}
	if separator == "" {
		separator = "; "
	}
	if strings.Count(separator, ";") != 1 || strings.Trim(separator, "; ") != "" {
		return "", newError(BadParam, op, "separator must be one semicolon and spaces")
	}
	openQ, closeQ, err := splitQuotes(op, quotes)
	if err != nil {
		return "", err
	}

	ns, steps, err := t.resolve(op, ns, arrayName)
	if err != nil {
		return "", err
	}
	arr := t.lookup(ns, steps)
	if arr == nil {
		return "", nil
	}
	if !arr.isArray() || arr.flags&ArrayIsAlternate != 0 {
		return "", newError(BadParam, op, "%s must be a non-alternate array", arrayName)
	}

	parts := make([]string, 0, len(arr.children))
	for _, item := range arr.children {
		if !item.isSimple() {
			return "", newError(BadParam, op, "%s: array items must be simple", arrayName)
		}
		parts = append(parts, applyQuotes(item.value, openQ, closeQ, flags&AllowCommas != 0))
	}
	return strings.Join(parts, separator), nil
}

func splitQuotes(op, quotes string) (rune, rune, error) {
	if quotes == "" {
		return '"', '"', nil
	}
	openQ, n := utf8.DecodeRuneInString(quotes)
	rest := quotes[n:]
	if rest == "" {
		return openQ, openQ, nil
	}
	closeQ, m := utf8.DecodeRuneInString(rest)
	if len(rest) != m {
		return 0, 0, newError(BadParam, op, "invalid quotes %q", quotes)
	}
	return openQ, closeQ, nil
}

func isSeparator(r rune, allowCommas bool) bool {
	return r == ';' || r == ',' && !allowCommas
}

// applyQuotes quotes s if it contains separators, spaces or quotes.
// Closing quotes inside s are doubled.
func applyQuotes(s string, openQ, closeQ rune, allowCommas bool) string {
	var needQuotes bool
	for _, r := range s {
		if isSeparator(r, allowCommas) || unicode.IsSpace(r) || unicode.IsControl(r) || r == openQ || r == closeQ {
			needQuotes = true
			break
		}
	}
	if !needQuotes {
		return s
	}
	b := &strings.Builder{}
	b.WriteRune(openQ)
	for _, r := range s {
		b.WriteRune(r)
		if r == closeQ {
			b.WriteRune(closeQ)
		}
	}
	b.WriteRune(closeQ)
	return b.String()
}

// SeparateArrayItems splits a string into items and appends them to an
// array.  This reverses [Tree.CatenateArrayItems].  Items which are already
// present are not added again.  If the array does not exist, it is created
// with the given array form.
func (t *Tree) SeparateArrayItems(ns, arrayName string, arrayForm PropertyFlags, flags UtilFlags, catedStr string) error {
	const op = "SeparateArrayItems"
	if err := t.check(op); err != nil {
		return err
	}
	if arrayForm&^ArrayForm != 0 || arrayForm&ArrayIsAlternate != 0 {
		return newError(BadParam, op, "invalid array form %s", arrayForm)
	}
	if arrayForm == 0 {
		arrayForm = ValueIsArray
	}

	ns, steps, err := t.resolve(op, ns, arrayName)
	if err != nil {
		return err
	}
	arr := t.lookup(ns, steps)
	var undo func()
	if arr == nil {
		arr, undo, err = t.locate(op, ns, steps, arrayForm)
		if err != nil {
			return err
		}
	} else if !arr.isArray() || arr.flags&ArrayIsAlternate != 0 {
		return newError(BadParam, op, "%s must be a non-alternate array", arrayName)
	}

	for _, item := range splitItems(catedStr, flags&AllowCommas != 0) {
		dup := slices.ContainsFunc(arr.children, func(c *node) bool {
			return c.isSimple() && c.value == item
		})
		if dup {
			continue
		}
		n := newNode(nameRDFLi, 0)
		n.value = item
		arr.appendChild(n)
	}
	if undo != nil && len(arr.children) == 0 {
		undo()
	}
	return nil
}

// quotePairs lists the closing quote for the opening quotes which are
// recognized by SeparateArrayItems.
var quotePairs = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'«':  '»',
	'»':  '«',
	'‘':  '’',
	'‚':  '’',
	'“':  '”',
	'„':  '”',
	'‹':  '›',
	'›':  '‹',
	'「':  '」',
	'『':  '』',
}

func splitItems(s string, allowCommas bool) []string {
	var items []string
	rs := []rune(s)
	i := 0
	for i < len(rs) {
		// skip leading separators and spaces
		for i < len(rs) && (isSeparator(rs[i], allowCommas) || unicode.IsSpace(rs[i])) {
			i++
		}
		if i >= len(rs) {
			break
		}

		b := &strings.Builder{}
		if closeQ, quoted := quotePairs[rs[i]]; quoted {
			i++
			for i < len(rs) {
				if rs[i] == closeQ {
					if i+1 < len(rs) && rs[i+1] == closeQ {
						b.WriteRune(closeQ)
						i += 2
						continue
					}
					i++
					break
				}
				b.WriteRune(rs[i])
				i++
			}
		} else {
			for i < len(rs) && !isSeparator(rs[i], allowCommas) {
				b.WriteRune(rs[i])
				i++
			}
		}
		if item := strings.TrimSpace(b.String()); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// RemoveProperties deletes properties from the tree.
//
// If name is given, the property is deleted.  If only ns is given, the
// whole schema is deleted, together with the aliases pointing into it if
// IncludeAliases is set.  If both are empty, all properties are deleted.
func (t *Tree) RemoveProperties(ns, name string, flags UtilFlags) error {
	const op = "RemoveProperties"
	if err := t.check(op); err != nil {
		return err
	}
	switch {
	case name != "":
		if ns == "" {
			return newError(BadParam, op, "property name requires a namespace")
		}
		return t.DeleteProperty(ns, name)
	case ns != "":
		if _, err := prefixOf(op, ns); err != nil {
			return err
		}
		if s := t.findSchema(ns); s != nil {
			t.removeSchema(s)
		}
		if flags&IncludeAliases != 0 {
			reg.mu.RLock()
			var targets []aliasKey
			for k, a := range reg.aliases {
				if k.ns == ns {
					targets = append(targets, aliasKey{a.Namespace, a.Name})
				}
			}
			reg.mu.RUnlock()
			for _, k := range targets {
				if s := t.findSchema(k.ns); s != nil {
					if _, n := s.findChild(xml.Name{Space: k.ns, Local: k.name}); n != nil {
						t.deleteNode(n)
					}
				}
			}
		}
	default:
		t.schemas = nil
	}
	return nil
}

// AppendProperties copies the properties of src into t.
//
// Properties which are missing in t are copied.  For existing properties,
// the value is replaced if ReplaceOldValues is set.  Otherwise, struct
// fields and array items are merged: missing fields are added, missing
// languages are added to language alternatives, and items which are not
// yet present are appended to other arrays.
//
// If DeleteEmptyValues is set, properties with empty values in src are
// deleted from t.
func (t *Tree) AppendProperties(src *Tree, flags UtilFlags) error {
	const op = "AppendProperties"
	if err := t.check(op); err != nil {
		return err
	}
	if err := src.check(op); err != nil {
		return err
	}
	if src == t {
		return nil
	}
	for _, srcSchema := range src.schemas {
		dstSchema := t.findSchema(srcSchema.name.Space)
		if dstSchema == nil {
			dstSchema = &node{name: srcSchema.name, flags: SchemaNode}
			t.schemas = append(t.schemas, dstSchema)
		}
		for _, n := range srcSchema.children {
			appendSubtree(dstSchema, n, flags)
		}
		if len(dstSchema.children) == 0 {
			t.removeSchema(dstSchema)
		}
	}
	return nil
}

func isEmptyValue(n *node) bool {
	if n.isSimple() {
		return n.value == ""
	}
	return len(n.children) == 0
}

func appendSubtree(dstParent, src *node, flags UtilFlags) {
	_, dst := dstParent.findChild(src.name)
	if flags&DeleteEmptyValues != 0 && isEmptyValue(src) {
		if dst != nil {
			dst.detach()
		}
		return
	}
	if dst == nil {
		dstParent.appendChild(src.clone(dstParent))
		return
	}
	if flags&ReplaceOldValues != 0 {
		dst.replaceContent(src, true)
		return
	}

	srcForm := src.flags & Composite
	if srcForm != dst.flags&Composite {
		return
	}
	switch {
	case src.isStruct():
		for _, f := range src.children {
			appendSubtree(dst, f, flags)
		}
	case src.fullFlags()&ArrayIsAltText != 0:
		for _, item := range src.children {
			lang, ok := item.lang()
			if !ok || findLangItem(dst, lang) != nil {
				continue
			}
			c := item.clone(dst)
			if normalizeLang(lang) == xDefault {
				dst.children = slices.Insert(dst.children, 0, c)
			} else {
				dst.children = append(dst.children, c)
			}
		}
	case src.isArray():
		for _, item := range src.children {
			if slices.ContainsFunc(dst.children, item.equal) {
				continue
			}
			dst.appendChild(item.clone(dst))
		}
	}
}

// DuplicateSubtree copies the subtree at srcNS and srcRoot in src to
// dstNS and dstRoot in t.  An empty dstNS or dstRoot defaults to the
// source value.  If srcRoot is empty, all properties of the schema are
// copied.  Existing destination values are replaced.
func (t *Tree) DuplicateSubtree(src *Tree, srcNS, srcRoot, dstNS, dstRoot string) error {
	const op = "DuplicateSubtree"
	if err := t.check(op); err != nil {
		return err
	}
	if err := src.check(op); err != nil {
		return err
	}
	if dstNS == "" {
		dstNS = srcNS
	}
	if dstRoot == "" {
		dstRoot = srcRoot
	}

	if srcRoot == "" {
		if dstRoot != "" {
			return newError(BadParam, op, "a schema can only be copied to a schema")
		}
		if _, err := prefixOf(op, srcNS); err != nil {
			return err
		}
		if _, err := prefixOf(op, dstNS); err != nil {
			return err
		}
		srcSchema := src.findSchema(srcNS)
		if srcSchema == nil {
			return newError(BadParam, op, "schema %s not found", srcNS)
		}
		if src == t && srcNS == dstNS {
			return nil
		}
		dstSchema := t.findSchema(dstNS)
		if dstSchema == nil {
			dstSchema = &node{name: xml.Name{Space: dstNS}, flags: SchemaNode}
			t.schemas = append(t.schemas, dstSchema)
		}
		for _, n := range srcSchema.children {
			c := n.clone(dstSchema)
			if n.name.Space == srcNS {
				c.name.Space = dstNS
			}
			if _, old := dstSchema.findChild(c.name); old != nil {
				old.detach()
			}
			dstSchema.appendChild(c)
		}
		return nil
	}

	sns, sSteps, err := src.resolve(op, srcNS, srcRoot)
	if err != nil {
		return err
	}
	srcNode := src.lookup(sns, sSteps)
	if srcNode == nil {
		return newError(BadParam, op, "source %s not found", srcRoot)
	}
	srcNode = srcNode.clone(nil)

	dns, dSteps, err := t.resolve(op, dstNS, dstRoot)
	if err != nil {
		return err
	}
	if dstNode := t.lookup(dns, dSteps); dstNode != nil && dstNode.isQualifier() != srcNode.isQualifier() {
		return newError(BadParam, op, "cannot copy between qualifiers and properties")
	}
	dstNode, _, err := t.locate(op, dns, dSteps, srcNode.flags&formMask)
	if err != nil {
		return err
	}
	dstNode.replaceContent(srcNode, true)
	return nil
}

// Clone returns a deep copy of the tree, owned by the same session.
func (t *Tree) Clone() (*Tree, error) {
	if err := t.check("Clone"); err != nil {
		return nil, err
	}
	res := &Tree{About: t.About, session: t.session}
	res.schemas = make([]*node, len(t.schemas))
	for i, s := range t.schemas {
		res.schemas[i] = s.clone(nil)
	}
	return res, nil
}
