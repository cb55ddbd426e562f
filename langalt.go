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
	"errors"
	"iter"

	"golang.org/x/text/language"
)

// A LangEntry is one item of a language alternative array.
type LangEntry struct {
	Lang  string
	Value string
}

// LangAlt presents a language alternative array as a map from language
// tags to text.  The order of the entries is the order of the array items.
//
// When the array is loaded, an item without xml:lang qualifier is treated as
// the x-default entry if it is the first item, and is hidden otherwise.
// Only the first item for each language is visible.
type LangAlt struct {
	view *ArrayView[LangEntry]
}

// langCodec writes the xml:lang qualifier only for new items.  Changing an
// entry replaces the value and leaves the qualifiers alone.
type langCodec struct {
	*ItemCodec[LangEntry]
}

func (c langCodec) OnSet(ref ArrayRef, index int, v LangEntry) error {
	itemPath, err := ref.ItemPath(index)
	if err != nil {
		return err
	}
	return ref.Engine.SetProperty(ref.Namespace, itemPath, v.Value, 0)
}

var langItemCodec = langCodec{&ItemCodec[LangEntry]{
	Decode: func(e Engine, ns, itemPath string) (LangEntry, error) {
		val, flags, err := e.GetProperty(ns, itemPath)
		if err != nil {
			return LangEntry{}, err
		}
		if !flags.IsSimple() {
			return LangEntry{}, newError(BadValue, "Decode", "%s is not a simple value", itemPath)
		}
		lang, _, err := e.GetQualifier(ns, itemPath, XMLNamespace, "lang")
		if errors.Is(err, ErrNotFound) {
			_, index, err := DecomposeArrayItemPath(ns, itemPath)
			if err == nil && index == 1 {
				return LangEntry{Lang: xDefault, Value: val}, nil
			}
			return LangEntry{}, newError(BadValue, "Decode", "%s has no language", itemPath)
		} else if err != nil {
			return LangEntry{}, err
		}
		return LangEntry{Lang: lang, Value: val}, nil
	},
	Encode: func(e Engine, ns, itemPath string, v LangEntry) error {
		if err := e.SetProperty(ns, itemPath, v.Value, 0); err != nil {
			return err
		}
		return e.SetQualifier(ns, itemPath, XMLNamespace, "lang", v.Lang, 0)
	},
	Zero: func(v LangEntry) bool { return v.Value == "" },
}}

// NewLangAlt creates a view of the language alternative array at ns and
// path.
func NewLangAlt(e Engine, ns, path string) (*LangAlt, error) {
	view, err := NewArrayView[LangEntry](e, ns, path, LangAltForm, langItemCodec)
	if err != nil {
		return nil, withOp("NewLangAlt", err)
	}
	a := &LangAlt{view: view}
	a.hideDuplicates()
	return a, nil
}

func (a *LangAlt) hideDuplicates() {
	seen := make(map[string]bool)
	for i, s := range a.view.slots {
		if !s.ok {
			continue
		}
		key := normalizeLang(s.v.Lang)
		if seen[key] {
			a.view.slots[i].ok = false
		}
		seen[key] = true
	}
}

// Reload reads the array from the tree.
func (a *LangAlt) Reload() error {
	l := a.view.ref.Engine.Locker()
	l.Lock()
	defer l.Unlock()
	if err := a.view.load(); err != nil {
		return withOp("LangAlt.Reload", err)
	}
	a.hideDuplicates()
	return nil
}

// Len returns the number of languages.
func (a *LangAlt) Len() int {
	return a.view.Len()
}

// index returns the view index of the entry for lang, or -1.
func (a *LangAlt) index(lang string) int {
	key := normalizeLang(lang)
	return a.view.IndexFunc(func(e LangEntry) bool {
		return normalizeLang(e.Lang) == key
	})
}

// Get returns the text for the given language.
// The language tag is compared case-insensitively.
func (a *LangAlt) Get(lang string) (string, bool) {
	i := a.index(lang)
	if i < 0 {
		return "", false
	}
	e, _ := a.view.Get(i)
	return e.Value, true
}

// Contains reports whether there is an entry for the given language.
func (a *LangAlt) Contains(lang string) bool {
	return a.index(lang) >= 0
}

// Set stores the text for the given language.  An existing entry is
// changed in place, otherwise a new entry is appended.  An empty value
// removes the entry.
func (a *LangAlt) Set(lang, value string) error {
	const op = "LangAlt.Set"
	lang, err := checkLang(op, lang)
	if err != nil {
		return err
	}

	l := a.view.ref.Engine.Locker()
	l.Lock()
	defer l.Unlock()

	i := a.index(lang)
	if value == "" {
		if i < 0 {
			return nil
		}
		return a.view.set(op, i, LangEntry{})
	}
	if i >= 0 {
		old, _ := a.view.Get(i)
		return a.view.set(op, i, LangEntry{Lang: old.Lang, Value: value})
	}
	return withOp(op, a.view.add(LangEntry{Lang: lang, Value: value}))
}

// Add appends an entry for a new language.  If there already is an entry
// for the language, an error with code [BadParam] is returned.
func (a *LangAlt) Add(lang, value string) error {
	const op = "LangAlt.Add"
	lang, err := checkLang(op, lang)
	if err != nil {
		return err
	}

	l := a.view.ref.Engine.Locker()
	l.Lock()
	defer l.Unlock()

	if a.index(lang) >= 0 {
		return newError(BadParam, op, "duplicate language %q", lang)
	}
	return withOp(op, a.view.add(LangEntry{Lang: lang, Value: value}))
}

// Remove deletes the entry for the given language, if any.
func (a *LangAlt) Remove(lang string) error {
	l := a.view.ref.Engine.Locker()
	l.Lock()
	defer l.Unlock()

	i := a.index(lang)
	if i < 0 {
		return nil
	}
	return a.view.removeSlot("LangAlt.Remove", a.view.slotIndex(i))
}

// Default returns the x-default text.
func (a *LangAlt) Default() string {
	v, _ := a.Get(xDefault)
	return v
}

// SetDefault sets the x-default text.
func (a *LangAlt) SetDefault(value string) error {
	return a.Set(xDefault, value)
}

// GetTag returns the text for the given language.
func (a *LangAlt) GetTag(tag language.Tag) (string, bool) {
	return a.Get(tag.String())
}

// SetTag stores the text for the given language.
func (a *LangAlt) SetTag(tag language.Tag, value string) error {
	return a.Set(tag.String(), value)
}

// Languages returns the language tags, in array order.
func (a *LangAlt) Languages() []string {
	var res []string
	for _, e := range a.view.All() {
		res = append(res, e.Lang)
	}
	return res
}

// Values returns the texts, in array order.
func (a *LangAlt) Values() []string {
	var res []string
	for _, e := range a.view.All() {
		res = append(res, e.Value)
	}
	return res
}

// Entries returns all entries, in array order.
func (a *LangAlt) Entries() []LangEntry {
	return a.view.Values()
}

// All returns an iterator over the languages and texts.
func (a *LangAlt) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, e := range a.view.All() {
			if !yield(e.Lang, e.Value) {
				return
			}
		}
	}
}

// Clear deletes the array property.
func (a *LangAlt) Clear() error {
	return withOp("LangAlt.Clear", a.view.Clear())
}
