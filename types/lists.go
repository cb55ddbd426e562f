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


package types

import (
	"errors"

	"seehuhn.de/go/xmpmeta"
)

// structHeader checks that the property at ns and path is a struct.
func structHeader(e xmpmeta.Engine, ns, path string) error {
	_, flags, err := e.GetProperty(ns, path)
	if err != nil {
		return err
	}
	if !flags.IsStruct() {
		return &xmpmeta.Error{Code: xmpmeta.BadValue, Op: "Decode", Msg: path + " is not a struct"}
	}
	return nil
}

// optionalField returns the text of a simple struct field, or the empty
// string if the field is missing.
func optionalField(e xmpmeta.Engine, ns, path, fieldNS, name string) (string, error) {
	val, _, err := e.GetStructField(ns, path, fieldNS, name)
	if errors.Is(err, xmpmeta.ErrNotFound) {
		return "", nil
	}
	return val, err
}

// setOptionalField writes a simple struct field.  The empty string deletes
// the field.
func setOptionalField(e xmpmeta.Engine, ns, path, fieldNS, name, val string) error {
	if val == "" {
		return e.DeleteStructField(ns, path, fieldNS, name)
	}
	return e.SetStructField(ns, path, fieldNS, name, val, 0)
}

// readList returns the values of the simple items of an array.
// A missing array gives an empty list.
func readList(e xmpmeta.Engine, ns, arrayPath string) ([]string, error) {
	n, err := e.CountArrayItems(ns, arrayPath)
	if err != nil {
		return nil, err
	}
	var res []string
	for i := 1; i <= n; i++ {
		itemPath, err := xmpmeta.ComposeArrayItemPath(ns, arrayPath, i)
		if err != nil {
			return nil, err
		}
		val, flags, err := e.GetProperty(ns, itemPath)
		if err != nil {
			return nil, err
		}
		if !flags.IsSimple() {
			return nil, &xmpmeta.Error{Code: xmpmeta.BadValue, Op: "Decode", Msg: itemPath + " is not a simple value"}
		}
		res = append(res, val)
	}
	return res, nil
}

// writeList replaces the array at arrayPath by one with the given items.
// An empty list deletes the array.
func writeList(e xmpmeta.Engine, ns, arrayPath string, form xmpmeta.PropertyFlags, items []string) error {
	if err := e.DeleteProperty(ns, arrayPath); err != nil {
		return err
	}
	for _, val := range items {
		if err := e.AppendArrayItem(ns, arrayPath, form, val, 0); err != nil {
			return err
		}
	}
	return nil
}

// readLangList reads a language alternative array.  An item without
// language is the x-default entry if it comes first, and is skipped
// otherwise.  Only the first item for each language is kept.
func readLangList(e xmpmeta.Engine, ns, arrayPath string) ([]xmpmeta.LangEntry, error) {
	n, err := e.CountArrayItems(ns, arrayPath)
	if err != nil {
		return nil, err
	}
	var res []xmpmeta.LangEntry
	seen := make(map[string]bool)
	for i := 1; i <= n; i++ {
		itemPath, err := xmpmeta.ComposeArrayItemPath(ns, arrayPath, i)
		if err != nil {
			return nil, err
		}
		val, flags, err := e.GetProperty(ns, itemPath)
		if err != nil {
			return nil, err
		}
		if !flags.IsSimple() {
			continue
		}
		lang, _, err := e.GetQualifier(ns, itemPath, xmpmeta.XMLNamespace, "lang")
		if errors.Is(err, xmpmeta.ErrNotFound) {
			if i > 1 {
				continue
			}
			lang = xDefault
		} else if err != nil {
			return nil, err
		}
		if seen[lang] {
			continue
		}
		seen[lang] = true
		res = append(res, xmpmeta.LangEntry{Lang: lang, Value: val})
	}
	return res, nil
}

// writeLangList replaces the array at arrayPath by a language alternative
// with the given entries.  The x-default entry is written first.  Entries
// with empty values are skipped.
func writeLangList(e xmpmeta.Engine, ns, arrayPath string, entries []xmpmeta.LangEntry) error {
	if err := e.DeleteProperty(ns, arrayPath); err != nil {
		return err
	}
	var ordered []xmpmeta.LangEntry
	for _, entry := range entries {
		if entry.Lang == xDefault {
			ordered = append(ordered, entry)
		}
	}
	for _, entry := range entries {
		if entry.Lang != xDefault {
			ordered = append(ordered, entry)
		}
	}

	lastPath, err := xmpmeta.ComposeArrayItemPath(ns, arrayPath, xmpmeta.ArrayLastItem)
	if err != nil {
		return err
	}
	for _, entry := range ordered {
		if entry.Value == "" {
			continue
		}
		if entry.Lang == "" {
			return &xmpmeta.Error{Code: xmpmeta.BadParam, Op: "Encode", Msg: "missing language for " + arrayPath}
		}
		err := e.AppendArrayItem(ns, arrayPath, xmpmeta.LangAltForm, entry.Value, 0)
		if err != nil {
			return err
		}
		err = e.SetQualifier(ns, lastPath, xmpmeta.XMLNamespace, "lang", entry.Lang, 0)
		if err != nil {
			return err
		}
	}
	return nil
}

const xDefault = "x-default"
