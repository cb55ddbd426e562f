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
	"slices"
	"strings"
)

// An Alias describes the actual property which is addressed by an alias
// name.
type Alias struct {
	Namespace string // namespace of the actual property
	Name      string // local name of the actual property

	// Form is zero if the alias refers to the actual property as a whole.
	// If Form is an array form, the alias refers to the first item of the
	// actual array (for ArrayIsAltText: to the x-default item).
	Form PropertyFlags
}

type aliasKey struct {
	ns, name string
}

// RegisterAlias registers aliasNS:aliasName as an alias for
// actualNS:actualName.  Both namespaces must be registered.
// An alias cannot point to another alias, and the actual property cannot
// be an alias.
func RegisterAlias(aliasNS, aliasName, actualNS, actualName string, form PropertyFlags) error {
	const op = "RegisterAlias"
	if _, err := prefixOf(op, aliasNS); err != nil {
		return err
	}
	if _, err := prefixOf(op, actualNS); err != nil {
		return err
	}
	if !isValidLocalName(aliasName) || !isValidLocalName(actualName) {
		return newError(BadParam, op, "invalid property name")
	}
	if form&^ArrayForm != 0 {
		return newError(BadParam, op, "invalid alias form %s", form)
	}
	form = form.normalizeForm()

	reg.mu.Lock()
	defer reg.mu.Unlock()

	key := aliasKey{aliasNS, aliasName}
	target := Alias{Namespace: actualNS, Name: actualName, Form: form}
	if old, ok := reg.aliases[key]; ok {
		if old != target {
			return newError(BadParam, op, "%s is already an alias for %s", aliasName, old.Name)
		}
		return nil
	}
	if _, isAlias := reg.aliases[aliasKey{actualNS, actualName}]; isAlias {
		return newError(BadParam, op, "actual property %s is an alias", actualName)
	}
	for _, a := range reg.aliases {
		if a.Namespace == aliasNS && a.Name == aliasName {
			return newError(BadParam, op, "%s is the target of an alias", aliasName)
		}
	}
	reg.aliases[key] = target
	return nil
}

// ResolveAlias returns the actual property for an alias.
func ResolveAlias(aliasNS, aliasName string) (Alias, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	a, ok := reg.aliases[aliasKey{aliasNS, aliasName}]
	return a, ok
}

// DeleteAlias removes an alias.
func DeleteAlias(aliasNS, aliasName string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.aliases, aliasKey{aliasNS, aliasName})
}

// aliasesOf returns the names of all aliases for the given property,
// as "prefix:name" strings in sorted order.
func aliasesOf(ns, name string) []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	var res []string
	for k, a := range reg.aliases {
		if a.Namespace == ns && a.Name == name {
			pfx := reg.nsToPrefix[k.ns]
			res = append(res, pfx+":"+k.name)
		}
	}
	slices.Sort(res)
	return res
}

func hasAliases(ns, name string) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	for _, a := range reg.aliases {
		if a.Namespace == ns && a.Name == name {
			return true
		}
	}
	return false
}

type standardAlias struct {
	ns, name       string
	actualNS, prop string
	form           PropertyFlags
}

var standardAliases = []standardAlias{
	// XMP to Dublin Core
	{XMPNamespace, "Author", DCNamespace, "creator", ArrayIsOrdered},
	{XMPNamespace, "Authors", DCNamespace, "creator", 0},
	{XMPNamespace, "Description", DCNamespace, "description", 0},
	{XMPNamespace, "Format", DCNamespace, "format", 0},
	{XMPNamespace, "Keywords", DCNamespace, "subject", 0},
	{XMPNamespace, "Locale", DCNamespace, "language", 0},
	{XMPNamespace, "Title", DCNamespace, "title", 0},
	{RightsNamespace, "Copyright", DCNamespace, "rights", 0},

	// PDF
	{PDFNamespace, "Author", DCNamespace, "creator", ArrayIsOrdered},
	{PDFNamespace, "BaseURL", XMPNamespace, "BaseURL", 0},
	{PDFNamespace, "CreationDate", XMPNamespace, "CreateDate", 0},
	{PDFNamespace, "Creator", XMPNamespace, "CreatorTool", 0},
	{PDFNamespace, "ModDate", XMPNamespace, "ModifyDate", 0},
	{PDFNamespace, "Subject", DCNamespace, "description", ArrayIsAltText},
	{PDFNamespace, "Title", DCNamespace, "title", ArrayIsAltText},

	// Photoshop
	{PhotoshopNamespace, "Author", DCNamespace, "creator", ArrayIsOrdered},
	{PhotoshopNamespace, "Caption", DCNamespace, "description", ArrayIsAltText},
	{PhotoshopNamespace, "Copyright", DCNamespace, "rights", ArrayIsAltText},
	{PhotoshopNamespace, "Keywords", DCNamespace, "subject", 0},
	{PhotoshopNamespace, "Marked", RightsNamespace, "Marked", 0},
	{PhotoshopNamespace, "Title", DCNamespace, "title", ArrayIsAltText},
	{PhotoshopNamespace, "WebStatement", RightsNamespace, "WebStatement", 0},

	// TIFF and EXIF
	{TIFFNamespace, "Artist", DCNamespace, "creator", ArrayIsOrdered},
	{TIFFNamespace, "Copyright", DCNamespace, "rights", 0},
	{TIFFNamespace, "DateTime", XMPNamespace, "ModifyDate", 0},
	{EXIFNamespace, "DateTimeDigitized", XMPNamespace, "CreateDate", 0},
	{TIFFNamespace, "ImageDescription", DCNamespace, "description", 0},
	{TIFFNamespace, "Software", XMPNamespace, "CreatorTool", 0},
}

// RegisterStandardAliases registers the standard aliases for the given
// namespace.  If ns is empty, the standard aliases of all namespaces are
// registered.
func RegisterStandardAliases(ns string) error {
	for _, a := range standardAliases {
		if ns != "" && a.ns != ns {
			continue
		}
		err := RegisterAlias(a.ns, a.name, a.actualNS, a.prop, a.form)
		if err != nil {
			return withOp("RegisterStandardAliases", err)
		}
	}
	return nil
}

// isValidLocalName reports whether name is a valid XML name without a
// namespace prefix.
func isValidLocalName(name string) bool {
	return name != "" && !strings.Contains(name, ":") && isXMLName(name)
}
