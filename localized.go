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
	"strings"

	"golang.org/x/text/language"
)

const xDefault = "x-default"

// normalizeLang brings a language tag into the form used for comparisons.
// Language tags are compared case-insensitively.
func normalizeLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

// checkLang validates a language tag before it is stored in the tree.
func checkLang(op, lang string) (string, error) {
	lang = strings.TrimSpace(lang)
	if normalizeLang(lang) == xDefault {
		return xDefault, nil
	}
	if lang == "" {
		return "", newError(BadParam, op, "empty language tag")
	}
	if _, err := language.Parse(lang); err != nil {
		return "", &Error{Code: BadParam, Op: op, Msg: "invalid language tag " + lang, Err: err}
	}
	return lang, nil
}

// primaryLang returns the primary language subtag of a language tag,
// e.g. "en" for "en-us".
func primaryLang(lang string) string {
	if lang == xDefault {
		return ""
	}
	if tag, err := language.Parse(lang); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			return base.String()
		}
	}
	pfx, _, _ := strings.Cut(lang, "-")
	return pfx
}

type langMatch int

const (
	langNoValues langMatch = iota
	langSpecific
	langGeneric
	langMultipleGeneric
	langXDefault
	langNone
)

// findLangItem returns the item of arr with exactly the given language.
func findLangItem(arr *node, lang string) *node {
	for _, item := range arr.children {
		if l, ok := item.lang(); ok && normalizeLang(l) == lang {
			return item
		}
	}
	return nil
}

// chooseLangItem selects an item of a language alternative array.
// The lookup tries an exact match with specific, followed by the first
// item whose language is generic or starts with generic followed by a
// hyphen, followed by the x-default item.
func chooseLangItem(arr *node, generic, specific string) (langMatch, *node) {
	if len(arr.children) == 0 {
		return langNoValues, nil
	}
	if item := findLangItem(arr, specific); item != nil {
		return langSpecific, item
	}
	if generic != "" {
		var first *node
		count := 0
		for _, item := range arr.children {
			l, ok := item.lang()
			if !ok {
				continue
			}
			l = normalizeLang(l)
			if l == generic || strings.HasPrefix(l, generic+"-") {
				if first == nil {
					first = item
				}
				count++
			}
		}
		if count == 1 {
			return langGeneric, first
		} else if count > 1 {
			return langMultipleGeneric, first
		}
	}
	if item := findLangItem(arr, xDefault); item != nil {
		return langXDefault, item
	}
	return langNone, nil
}

// GetLocalizedText looks up a text in a language alternative array.
//
// The item is chosen as follows: an item with language specificLang,
// otherwise the first item whose primary language is genericLang,
// otherwise the x-default item.  The language of the chosen item is
// returned together with its value.  If no item is chosen,
// [ErrNotFound] is returned.  genericLang can be empty.
func (t *Tree) GetLocalizedText(ns, altTextName, genericLang, specificLang string) (actualLang, value string, err error) {
	const op = "GetLocalizedText"
	if err := t.check(op); err != nil {
		return "", "", err
	}
	specific := normalizeLang(specificLang)
	if specific == "" {
		return "", "", newError(BadParam, op, "empty specific language")
	}
	generic := normalizeLang(genericLang)

	ns, steps, err := t.resolve(op, ns, altTextName)
	if err != nil {
		return "", "", err
	}
	arr := t.lookup(ns, steps)
	if arr == nil {
		return "", "", ErrNotFound
	}
	if arr.flags&ArrayIsAlternate == 0 {
		return "", "", newError(BadValue, op, "%s is not a language alternative", altTextName)
	}

	_, item := chooseLangItem(arr, generic, specific)
	if item == nil {
		return "", "", ErrNotFound
	}
	if !item.isSimple() {
		return "", "", newError(BadValue, op, "composite item in language alternative")
	}
	lang, _ := item.lang()
	return lang, item.value, nil
}

// SetLocalizedText stores a text in a language alternative array, which is
// created if needed.
//
// An existing item for specificLang is replaced.  Otherwise, if exactly one
// item has the primary language genericLang, that item is replaced.  In all
// other cases a new item for specificLang is added.  An x-default item which
// had the same value as the replaced item is updated along with it, and an
// x-default item is created when the array had no items before.
func (t *Tree) SetLocalizedText(ns, altTextName, genericLang, specificLang, value string, flags PropertyFlags) error {
	const op = "SetLocalizedText"
	if err := t.check(op); err != nil {
		return err
	}
	if err := checkSetFlags(op, value, flags, 0); err != nil {
		return err
	}
	if flags&Composite != 0 {
		return newError(BadParam, op, "localized text must be simple")
	}
	specific, err := checkLang(op, specificLang)
	if err != nil {
		return err
	}
	generic := normalizeLang(genericLang)

	ns, steps, err := t.resolve(op, ns, altTextName)
	if err != nil {
		return err
	}
	arr := t.lookup(ns, steps)
	var undo func()
	if arr == nil {
		arr, undo, err = t.locate(op, ns, steps, LangAltForm)
		if err != nil {
			return err
		}
	} else if !arr.isArray() {
		return newError(BadValue, op, "%s is not an array", altTextName)
	} else if arr.flags&ArrayIsAlternate == 0 {
		return newError(BadValue, op, "%s is not a language alternative", altTextName)
	}
	for _, item := range arr.children {
		if !item.isSimple() {
			if undo != nil {
				undo()
			}
			return newError(BadValue, op, "composite item in language alternative")
		}
	}
	arr.flags |= LangAltForm

	xd := findLangItem(arr, xDefault)
	match, item := chooseLangItem(arr, generic, normalizeLang(specific))
	switch match {
	case langSpecific:
		if specific == xDefault {
			for _, other := range arr.children {
				if other != item && other.value == item.value {
					other.value = value
				}
			}
		} else if xd != nil && xd.value == item.value {
			xd.value = value
		}
		setLangItemValue(item, value, flags)
	case langGeneric:
		if xd != nil && xd != item && xd.value == item.value {
			xd.value = value
		}
		setLangItemValue(item, value, flags)
	case langMultipleGeneric:
		appendLangItem(arr, specific, value, flags)
	case langXDefault:
		if len(arr.children) == 1 {
			setLangItemValue(xd, value, flags)
		}
		appendLangItem(arr, specific, value, flags)
	default:
		appendLangItem(arr, specific, value, flags)
	}

	if xd == nil && specific != xDefault && len(arr.children) == 1 {
		appendLangItem(arr, xDefault, value, flags)
	}
	return nil
}

func setLangItemValue(item *node, value string, flags PropertyFlags) {
	item.value = value
	item.flags = item.flags&^ValueIsURI | flags&(ValueIsURI|userMask)
}

// appendLangItem adds an item to a language alternative.  An x-default item
// is added at the front.
func appendLangItem(arr *node, lang, value string, flags PropertyFlags) {
	item := newNode(nameRDFLi, flags&(ValueIsURI|userMask))
	item.value = value
	q := newNode(nameXMLLang, 0)
	q.value = lang
	item.addQualifier(q)
	if lang == xDefault {
		arr.insertChild(0, item)
	} else {
		arr.appendChild(item)
	}
}
