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
	"sync"

	"go.uber.org/zap"
)

// A Tree holds the XMP properties of one resource.
//
// A Tree is not safe for concurrent use.  Callers which share a tree between
// goroutines must hold the lock returned by [Tree.Locker] for the duration
// of each operation.
type Tree struct {
	// About is the value of the rdf:about attribute, normally empty.
	About string

	session *Session
	schemas []*node
	mu      sync.Mutex
	pending []byte // input collected by ParseFromBuffer
}

var _ Engine = (*Tree)(nil)

// Locker returns the lock which serializes access to the tree.
// The lock is not taken by the methods of Tree itself.
func (t *Tree) Locker() sync.Locker {
	return &t.mu
}

// Logger returns the logger of the session which owns the tree.
func (t *Tree) Logger() *zap.Logger {
	if t == nil || t.session == nil {
		return zap.NewNop()
	}
	return t.session.log
}

func (t *Tree) check(op string) error {
	if t == nil {
		return newError(BadObject, op, "nil tree")
	}
	return t.session.check(op)
}

// Schemas returns the namespaces of all schemas in the tree, in order.
func (t *Tree) Schemas() []string {
	res := make([]string, len(t.schemas))
	for i, s := range t.schemas {
		res[i] = s.name.Space
	}
	return res
}

func (t *Tree) findSchema(ns string) *node {
	for _, s := range t.schemas {
		if s.name.Space == ns {
			return s
		}
	}
	return nil
}

func (t *Tree) removeSchema(s *node) {
	t.schemas = slices.DeleteFunc(t.schemas, func(x *node) bool { return x == s })
}

// resolve parses a path and applies alias resolution to its first step.
func (t *Tree) resolve(op, ns, path string) (string, []pathStep, error) {
	steps, err := parsePath(op, ns, path)
	if err != nil {
		return "", nil, err
	}
	a, isAlias := ResolveAlias(ns, steps[0].name.Local)
	if !isAlias {
		return ns, steps, nil
	}
	root := pathStep{
		kind: stepField,
		name: xml.Name{Space: a.Namespace, Local: a.Name},
		form: a.Form,
	}
	res := []pathStep{root}
	switch {
	case a.Form&ArrayIsAltText != 0:
		res = append(res, pathStep{kind: stepQualSelector, name: nameXMLLang, value: "x-default"})
	case a.Form != 0:
		res = append(res, pathStep{kind: stepIndex, index: 1})
	}
	res = append(res, steps[1:]...)
	return a.Namespace, res, nil
}

// lookup returns the node addressed by steps, or nil if there is no such
// node.  Language selectors fall back to related languages.
func (t *Tree) lookup(ns string, steps []pathStep) *node {
	return t.find(ns, steps, false)
}

// lookupExact is like lookup, but language selectors only match items
// with exactly the given language.
func (t *Tree) lookupExact(ns string, steps []pathStep) *node {
	return t.find(ns, steps, true)
}

func (t *Tree) find(ns string, steps []pathStep, exact bool) *node {
	cur := t.findSchema(ns)
	for _, st := range steps {
		if cur == nil {
			return nil
		}
		cur = followStep(cur, st, exact)
	}
	return cur
}

// followStep returns the child of cur addressed by st, or nil.
// If exact is set, language selectors only match items with exactly the
// given language.
func followStep(cur *node, st pathStep, exact bool) *node {
	switch st.kind {
	case stepField:
		if cur.flags&SchemaNode == 0 && !cur.isStruct() {
			return nil
		}
		_, c := cur.findChild(st.name)
		return c
	case stepQualifier:
		_, q := cur.findQualifier(st.name)
		return q
	}

	if !cur.isArray() {
		return nil
	}
	switch st.kind {
	case stepIndex:
		if st.index > len(cur.children) {
			return nil
		}
		return cur.children[st.index-1]
	case stepLast:
		if len(cur.children) == 0 {
			return nil
		}
		return cur.children[len(cur.children)-1]
	case stepQualSelector:
		if st.name == nameXMLLang {
			lang := normalizeLang(st.value)
			if exact {
				return findLangItem(cur, lang)
			}
			_, item := chooseLangItem(cur, primaryLang(lang), lang)
			return item
		}
		for _, item := range cur.children {
			if _, q := item.findQualifier(st.name); q != nil && q.value == st.value {
				return item
			}
		}
	case stepFieldSelector:
		for _, item := range cur.children {
			if !item.isStruct() {
				continue
			}
			if _, f := item.findChild(st.name); f != nil && f.isSimple() && f.value == st.value {
				return item
			}
		}
	}
	return nil
}

// formForStep returns the form of a node which is created for steps[i].
func formForStep(steps []pathStep, i int, leafForm PropertyFlags) PropertyFlags {
	if i == len(steps)-1 {
		return leafForm
	}
	next := steps[i+1]
	switch next.kind {
	case stepField:
		return ValueIsStruct
	case stepQualifier:
		return 0
	case stepQualSelector:
		if steps[i].form != 0 {
			return steps[i].form.normalizeForm()
		}
		if next.name == nameXMLLang {
			return LangAltForm
		}
		return ValueIsArray
	case stepFieldSelector:
		if steps[i].form != 0 {
			return steps[i].form.normalizeForm()
		}
		return ValueIsArray
	default: // stepIndex, stepLast
		if steps[i].form != 0 {
			return steps[i].form.normalizeForm()
		}
		return ValueIsArray
	}
}

// locate returns the node addressed by steps, creating it and all
// missing parent nodes.  The returned undo function removes everything
// which was created.
func (t *Tree) locate(op, ns string, steps []pathStep, leafForm PropertyFlags) (*node, func(), error) {
	schema := t.findSchema(ns)
	newSchema := schema == nil
	if newSchema {
		schema = &node{name: xml.Name{Space: ns}, flags: SchemaNode}
		t.schemas = append(t.schemas, schema)
	}
	var created *node
	undo := func() {
		if created != nil {
			created.detach()
		}
		if newSchema || len(schema.children) == 0 {
			t.removeSchema(schema)
		}
	}

	cur := schema
	for i, st := range steps {
		if next := followStep(cur, st, true); next != nil {
			cur = next
			continue
		}

		form := formForStep(steps, i, leafForm)
		var n *node
		switch st.kind {
		case stepField:
			if cur.flags&SchemaNode == 0 && !cur.isStruct() {
				undo()
				return nil, nil, newError(BadValue, op, "%s is not a struct", cur.name.Local)
			}
			if !isValidPropertyName(st.name) {
				undo()
				return nil, nil, newError(BadParam, op, "invalid property name %s", st.name.Local)
			}
			n = newNode(st.name, form)
			cur.appendChild(n)

		case stepQualifier:
			if !isValidQualifierName(st.name) {
				undo()
				return nil, nil, newError(BadParam, op, "invalid qualifier name %s", st.name.Local)
			}
			n = newNode(st.name, form)
			cur.addQualifier(n)

		default:
			if !cur.isArray() {
				undo()
				return nil, nil, newError(BadValue, op, "%s is not an array", cur.name.Local)
			}
			switch st.kind {
			case stepIndex:
				if st.index != len(cur.children)+1 {
					undo()
					return nil, nil, newError(BadParam, op, "array index %d out of range", st.index)
				}
				n = newNode(nameRDFLi, form)
				cur.appendChild(n)
			case stepLast:
				n = newNode(nameRDFLi, form)
				cur.appendChild(n)
			case stepQualSelector:
				n = newNode(nameRDFLi, form)
				q := newNode(st.name, 0)
				q.value = st.value
				n.addQualifier(q)
				if st.name == nameXMLLang && normalizeLang(st.value) == xDefault {
					cur.insertChild(0, n)
				} else {
					cur.appendChild(n)
				}
			case stepFieldSelector:
				n = newNode(nameRDFLi, ValueIsStruct)
				f := newNode(st.name, 0)
				f.value = st.value
				n.appendChild(f)
				cur.appendChild(n)
			}
		}
		if created == nil {
			created = n
		}
		cur = n
	}
	return cur, undo, nil
}

// checkSetFlags validates the flags and value of a Set... operation.
func checkSetFlags(op, value string, flags, allowed PropertyFlags) error {
	if extra := flags &^ (formMask | userMask | DeleteExisting | allowed); extra != 0 {
		return newError(BadParam, op, "invalid flags %s", extra)
	}
	form := flags.normalizeForm()
	switch {
	case form&ValueIsStruct != 0 && form&ValueIsArray != 0:
		return newError(BadParam, op, "a property cannot be both struct and array")
	case form&ValueIsURI != 0 && form&Composite != 0:
		return newError(BadParam, op, "a composite property cannot be a URI")
	case form&Composite != 0 && value != "":
		return newError(BadValue, op, "a composite property cannot have a value")
	}
	return nil
}

// setNodeValue stores a value (or a composite form) in n.
func setNodeValue(op string, n *node, value string, flags PropertyFlags) error {
	form := flags.normalizeForm() & formMask
	fresh := flags&DeleteExisting != 0
	if !fresh {
		if form&Composite != 0 {
			switch {
			case n.isSimple() && n.value != "":
				return newError(BadValue, op, "cannot replace simple value of %s by a composite", n.name.Local)
			case !n.isSimple() && n.flags&Composite != form&Composite && len(n.children) > 0:
				return newError(BadValue, op, "cannot change the form of %s", n.name.Local)
			}
		} else if !n.isSimple() {
			return newError(BadValue, op, "%s is composite and cannot have a value", n.name.Local)
		}
	}

	if fresh {
		n.children = nil
		n.qualifiers = nil
		n.value = ""
		n.flags &= IsQualifier
	}
	if form&Composite != 0 {
		n.flags = n.flags&^formMask | form&Composite
		n.value = ""
	} else {
		n.flags = n.flags&^formMask | form&ValueIsURI
		n.value = value
	}
	n.flags |= flags & userMask
	return nil
}

// flagsOf returns the flags reported for n.
func flagsOf(n *node) PropertyFlags {
	f := n.fullFlags()
	if p := n.parent; p != nil && p.flags&SchemaNode != 0 && hasAliases(n.name.Space, n.name.Local) {
		f |= HasAliases
	}
	return f
}

// GetProperty returns the value and flags of a property.
// If the property does not exist, [ErrNotFound] is returned.
// Composite properties have an empty value.
func (t *Tree) GetProperty(ns, path string) (string, PropertyFlags, error) {
	const op = "GetProperty"
	if err := t.check(op); err != nil {
		return "", 0, err
	}
	ns, steps, err := t.resolve(op, ns, path)
	if err != nil {
		return "", 0, err
	}
	n := t.lookup(ns, steps)
	if n == nil {
		return "", 0, ErrNotFound
	}
	return n.value, flagsOf(n), nil
}

// SetProperty sets the value of a property.
//
// Missing parent nodes are created: a parent which is followed by a field
// step becomes a struct, a parent which is followed by an index or a
// selector becomes an array.  To create a struct or an array property, use an
// empty value together with [ValueIsStruct] or one of the array forms.
//
// Existing qualifiers are kept, unless [DeleteExisting] is given.
// The operation either succeeds completely or leaves the tree unchanged.
func (t *Tree) SetProperty(ns, path, value string, flags PropertyFlags) error {
	const op = "SetProperty"
	if err := t.check(op); err != nil {
		return err
	}
	if err := checkSetFlags(op, value, flags, 0); err != nil {
		return err
	}
	ns, steps, err := t.resolve(op, ns, path)
	if err != nil {
		return err
	}
	return t.setPath(op, ns, steps, value, flags)
}

func (t *Tree) setPath(op, ns string, steps []pathStep, value string, flags PropertyFlags) error {
	n, undo, err := t.locate(op, ns, steps, flags.normalizeForm()&formMask)
	if err != nil {
		return err
	}
	if err := setNodeValue(op, n, value, flags); err != nil {
		undo()
		return err
	}
	return nil
}

// DeleteProperty removes a property together with all its fields, items and
// qualifiers.  Deleting a property which does not exist is not an error.
func (t *Tree) DeleteProperty(ns, path string) error {
	const op = "DeleteProperty"
	if err := t.check(op); err != nil {
		return err
	}
	ns, steps, err := t.resolve(op, ns, path)
	if err != nil {
		return err
	}
	if n := t.lookupExact(ns, steps); n != nil {
		t.deleteNode(n)
	}
	return nil
}

func (t *Tree) deleteNode(n *node) {
	parent := n.parent
	n.detach()
	if parent != nil && parent.flags&SchemaNode != 0 && len(parent.children) == 0 {
		t.removeSchema(parent)
	}
}

// DoesPropertyExist reports whether a property exists.
// Malformed paths are reported as not existing.
func (t *Tree) DoesPropertyExist(ns, path string) bool {
	const op = "DoesPropertyExist"
	if t.check(op) != nil {
		return false
	}
	ns, steps, err := t.resolve(op, ns, path)
	if err != nil {
		return false
	}
	return t.lookup(ns, steps) != nil
}

// GetArrayItem returns the value and flags of an array item.
// The index is 1-based.
func (t *Tree) GetArrayItem(ns, arrayName string, index int) (string, PropertyFlags, error) {
	path, err := ComposeArrayItemPath(ns, arrayName, index)
	if err != nil {
		return "", 0, withOp("GetArrayItem", err)
	}
	val, flags, err := t.GetProperty(ns, path)
	return val, flags, withOp("GetArrayItem", err)
}

// SetArrayItem sets or inserts an array item.  The array must exist.
//
// Without [InsertBeforeItem] or [InsertAfterItem], the item at the given
// 1-based index is replaced; an index one past the last item appends a new
// item.  With one of the insert flags, a new item is inserted and the
// following items move up by one.  The index [ArrayLastItem] appends a new
// item.
func (t *Tree) SetArrayItem(ns, arrayName string, index int, value string, flags PropertyFlags) error {
	const op = "SetArrayItem"
	if err := t.check(op); err != nil {
		return err
	}
	if err := checkSetFlags(op, value, flags, InsertBeforeItem|InsertAfterItem); err != nil {
		return err
	}
	ns, steps, err := t.resolve(op, ns, arrayName)
	if err != nil {
		return err
	}
	arr := t.lookup(ns, steps)
	if arr == nil {
		return newError(BadParam, op, "array %s does not exist", arrayName)
	}
	return setItem(op, arr, index, value, flags)
}

func setItem(op string, arr *node, index int, value string, flags PropertyFlags) error {
	if !arr.isArray() {
		return newError(BadValue, op, "%s is not an array", arr.name.Local)
	}
	before := flags&InsertBeforeItem != 0
	after := flags&InsertAfterItem != 0
	if before && after {
		return newError(BadParam, op, "InsertBeforeItem and InsertAfterItem are mutually exclusive")
	}
	flags &^= InsertBeforeItem | InsertAfterItem

	count := len(arr.children)
	if index == ArrayLastItem {
		if before && count > 0 {
			index = count
		} else {
			index = count + 1
			before, after = false, false
		}
	}

	insert := false
	switch {
	case after:
		if index < 0 || index > count {
			return newError(BadParam, op, "array index %d out of range", index)
		}
		index++
		insert = true
	case before:
		if index < 1 || index > count+1 {
			return newError(BadParam, op, "array index %d out of range", index)
		}
		insert = true
	default:
		if index < 1 || index > count+1 {
			return newError(BadParam, op, "array index %d out of range", index)
		}
		insert = index == count+1
	}

	if !insert {
		return setNodeValue(op, arr.children[index-1], value, flags)
	}
	item := newNode(nameRDFLi, 0)
	if err := setNodeValue(op, item, value, flags|DeleteExisting); err != nil {
		return err
	}
	arr.insertChild(index-1, item)
	return nil
}

// AppendArrayItem appends an item to an array.  If the array does not exist,
// it is created with the given array form.  If arrayForm is zero, the array
// must already exist.
func (t *Tree) AppendArrayItem(ns, arrayName string, arrayForm PropertyFlags, value string, itemFlags PropertyFlags) error {
	const op = "AppendArrayItem"
	if err := t.check(op); err != nil {
		return err
	}
	arrayForm = arrayForm.normalizeForm()
	if arrayForm&^ArrayForm != 0 {
		return newError(BadParam, op, "invalid array form %s", arrayForm)
	}
	if err := checkSetFlags(op, value, itemFlags, 0); err != nil {
		return err
	}
	ns, steps, err := t.resolve(op, ns, arrayName)
	if err != nil {
		return err
	}

	arr := t.lookup(ns, steps)
	if arr != nil {
		if !arr.isArray() {
			return newError(BadValue, op, "%s is not an array", arrayName)
		}
		if arrayForm&^ArrayIsAltText&^arr.flags != 0 {
			return newError(BadParam, op, "array form mismatch for %s", arrayName)
		}
		return setItem(op, arr, len(arr.children)+1, value, itemFlags)
	}

	if arrayForm == 0 {
		return newError(BadParam, op, "array %s does not exist", arrayName)
	}
	arr, undo, err := t.locate(op, ns, steps, arrayForm)
	if err != nil {
		return err
	}
	if err := setItem(op, arr, len(arr.children)+1, value, itemFlags); err != nil {
		undo()
		return err
	}
	return nil
}

// CountArrayItems returns the number of items in an array.
// A missing array has no items.
func (t *Tree) CountArrayItems(ns, arrayName string) (int, error) {
	const op = "CountArrayItems"
	if err := t.check(op); err != nil {
		return 0, err
	}
	ns, steps, err := t.resolve(op, ns, arrayName)
	if err != nil {
		return 0, err
	}
	arr := t.lookup(ns, steps)
	if arr == nil {
		return 0, nil
	}
	if !arr.isArray() {
		return 0, newError(BadValue, op, "%s is not an array", arrayName)
	}
	return len(arr.children), nil
}

// DeleteArrayItem removes an array item.  The following items move down by
// one.  Deleting an item which does not exist is not an error.
func (t *Tree) DeleteArrayItem(ns, arrayName string, index int) error {
	path, err := ComposeArrayItemPath(ns, arrayName, index)
	if err != nil {
		return withOp("DeleteArrayItem", err)
	}
	return withOp("DeleteArrayItem", t.DeleteProperty(ns, path))
}

// DoesArrayItemExist reports whether an array item exists.
func (t *Tree) DoesArrayItemExist(ns, arrayName string, index int) bool {
	path, err := ComposeArrayItemPath(ns, arrayName, index)
	if err != nil {
		return false
	}
	return t.DoesPropertyExist(ns, path)
}

// GetStructField returns the value and flags of a struct field.
func (t *Tree) GetStructField(ns, structName, fieldNS, fieldName string) (string, PropertyFlags, error) {
	path, err := ComposeStructFieldPath(ns, structName, fieldNS, fieldName)
	if err != nil {
		return "", 0, withOp("GetStructField", err)
	}
	val, flags, err := t.GetProperty(ns, path)
	return val, flags, withOp("GetStructField", err)
}

// SetStructField sets the value of a struct field.  The struct is created
// if needed.
func (t *Tree) SetStructField(ns, structName, fieldNS, fieldName, value string, flags PropertyFlags) error {
	path, err := ComposeStructFieldPath(ns, structName, fieldNS, fieldName)
	if err != nil {
		return withOp("SetStructField", err)
	}
	return withOp("SetStructField", t.SetProperty(ns, path, value, flags))
}

// DeleteStructField removes a struct field.
func (t *Tree) DeleteStructField(ns, structName, fieldNS, fieldName string) error {
	path, err := ComposeStructFieldPath(ns, structName, fieldNS, fieldName)
	if err != nil {
		return withOp("DeleteStructField", err)
	}
	return withOp("DeleteStructField", t.DeleteProperty(ns, path))
}

// DoesStructFieldExist reports whether a struct field exists.
func (t *Tree) DoesStructFieldExist(ns, structName, fieldNS, fieldName string) bool {
	path, err := ComposeStructFieldPath(ns, structName, fieldNS, fieldName)
	if err != nil {
		return false
	}
	return t.DoesPropertyExist(ns, path)
}

// GetQualifier returns the value and flags of a qualifier.
func (t *Tree) GetQualifier(ns, propName, qualNS, qualName string) (string, PropertyFlags, error) {
	path, err := ComposeQualifierPath(ns, propName, qualNS, qualName)
	if err != nil {
		return "", 0, withOp("GetQualifier", err)
	}
	val, flags, err := t.GetProperty(ns, path)
	return val, flags, withOp("GetQualifier", err)
}

// SetQualifier attaches a qualifier to an existing property.
// Setting an empty simple value removes the qualifier.
func (t *Tree) SetQualifier(ns, propName, qualNS, qualName, value string, flags PropertyFlags) error {
	const op = "SetQualifier"
	path, err := ComposeQualifierPath(ns, propName, qualNS, qualName)
	if err != nil {
		return withOp(op, err)
	}
	if err := t.check(op); err != nil {
		return err
	}
	pns, steps, err := t.resolve(op, ns, propName)
	if err != nil {
		return err
	}
	if t.lookup(pns, steps) == nil {
		return newError(BadParam, op, "property %s does not exist", propName)
	}
	if value == "" && flags&Composite == 0 {
		return withOp(op, t.DeleteProperty(ns, path))
	}
	return withOp(op, t.SetProperty(ns, path, value, flags))
}

// DeleteQualifier removes a qualifier.
func (t *Tree) DeleteQualifier(ns, propName, qualNS, qualName string) error {
	path, err := ComposeQualifierPath(ns, propName, qualNS, qualName)
	if err != nil {
		return withOp("DeleteQualifier", err)
	}
	return withOp("DeleteQualifier", t.DeleteProperty(ns, path))
}

// DoesQualifierExist reports whether a qualifier exists.
func (t *Tree) DoesQualifierExist(ns, propName, qualNS, qualName string) bool {
	path, err := ComposeQualifierPath(ns, propName, qualNS, qualName)
	if err != nil {
		return false
	}
	return t.DoesPropertyExist(ns, path)
}

// isValidPropertyName reports whether name can be used for a property or a
// struct field.
func isValidPropertyName(name xml.Name) bool {
	if name.Space == "" || name.Local == "" {
		return false
	}
	switch name.Space {
	case RDFNamespace:
		return name == nameRDFType
	case XMLNamespace:
		return false
	}
	return true
}

// isValidQualifierName reports whether name can be used for a qualifier.
func isValidQualifierName(name xml.Name) bool {
	if name == nameXMLLang {
		return true
	}
	return isValidPropertyName(name)
}
