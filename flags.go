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
	"strconv"
	"strings"
)

// PropertyFlags describe the form of a property and modify the behaviour of
// the Set... operations.
type PropertyFlags uint32

// Flags describing a property.
const (
	// ValueIsURI marks a simple value which is a URI.  Such values are
	// serialized using an rdf:resource attribute.
	ValueIsURI PropertyFlags = 0x00000002

	// HasQualifiers is set if the property has qualifiers, including
	// rdf:type and xml:lang.
	HasQualifiers PropertyFlags = 0x00000010

	// IsQualifier is set for qualifier nodes.
	IsQualifier PropertyFlags = 0x00000020

	// HasLang implies HasQualifiers; the property has an xml:lang qualifier.
	HasLang PropertyFlags = 0x00000040

	// HasType implies HasQualifiers; the property has an rdf:type qualifier.
	HasType PropertyFlags = 0x00000080

	// ValueIsStruct marks a structure with nested fields.
	ValueIsStruct PropertyFlags = 0x00000100

	// ValueIsArray marks an array (rdf:Bag, rdf:Seq or rdf:Alt).
	ValueIsArray PropertyFlags = 0x00000200

	// ArrayIsUnordered marks an array where the item order does not matter.
	ArrayIsUnordered = ValueIsArray

	// ArrayIsOrdered implies ValueIsArray; the item order matters.
	ArrayIsOrdered PropertyFlags = 0x00000400

	// ArrayIsAlternate implies ArrayIsOrdered; the items are alternatives.
	ArrayIsAlternate PropertyFlags = 0x00000800

	// ArrayIsAltText implies ArrayIsAlternate; the items are localized text.
	ArrayIsAltText PropertyFlags = 0x00001000

	// IsAlias is set for a property name which is an alias for another
	// property.
	IsAlias PropertyFlags = 0x00010000

	// HasAliases is set for properties which are the target of an alias.
	HasAliases PropertyFlags = 0x00020000

	// IsInternal marks a property which is owned by applications.
	IsInternal PropertyFlags = 0x00040000

	// IsStable marks a property which is not derived from the document
	// content.
	IsStable PropertyFlags = 0x00100000

	// IsDerived marks a property which is derived from the document content.
	IsDerived PropertyFlags = 0x00200000

	// SchemaNode is set for the schema roots reported by an [Iterator].
	SchemaNode PropertyFlags = 0x80000000
)

// Flags which modify the behaviour of the Set... operations.
const (
	// InsertBeforeItem causes SetArrayItem to insert a new item before the
	// given index.
	InsertBeforeItem PropertyFlags = 0x00004000

	// InsertAfterItem causes SetArrayItem to insert a new item after the
	// given index.
	InsertAfterItem PropertyFlags = 0x00008000

	// DeleteExisting removes a pre-existing property (including its
	// qualifiers) before the new value is stored.
	DeleteExisting PropertyFlags = 0x20000000
)

// Combined masks.
const (
	ArrayForm = ValueIsArray | ArrayIsOrdered | ArrayIsAlternate | ArrayIsAltText
	Composite = ValueIsStruct | ArrayForm

	// LangAltForm is the form of a language alternative array.
	LangAltForm = ValueIsArray | ArrayIsOrdered | ArrayIsAlternate | ArrayIsAltText

	formMask      = ValueIsURI | Composite
	qualifierMask = HasQualifiers | IsQualifier | HasLang | HasType
	userMask      = IsInternal | IsStable | IsDerived
	optionMask    = InsertBeforeItem | InsertAfterItem | DeleteExisting
)

// IsSimple reports whether f describes a simple (non-composite) value.
func (f PropertyFlags) IsSimple() bool { return f&Composite == 0 }

// IsStruct reports whether f describes a structure.
func (f PropertyFlags) IsStruct() bool { return f&ValueIsStruct != 0 }

// IsArray reports whether f describes an array.
func (f PropertyFlags) IsArray() bool { return f&ValueIsArray != 0 }

// IsAltText reports whether f describes a language alternative array.
func (f PropertyFlags) IsAltText() bool { return f&ArrayIsAltText != 0 }

// normalizeForm fills in the implied array bits.
func (f PropertyFlags) normalizeForm() PropertyFlags {
	if f&ArrayIsAltText != 0 {
		f |= ArrayIsAlternate
	}
	if f&ArrayIsAlternate != 0 {
		f |= ArrayIsOrdered
	}
	if f&ArrayIsOrdered != 0 {
		f |= ValueIsArray
	}
	return f
}

var flagNames = []struct {
	f    PropertyFlags
	name string
}{
	{ValueIsURI, "URI"},
	{HasQualifiers, "HasQual"},
	{IsQualifier, "IsQual"},
	{HasLang, "HasLang"},
	{HasType, "HasType"},
	{ValueIsStruct, "Struct"},
	{ArrayIsAltText, "AltText"},
	{ArrayIsAlternate, "Alt"},
	{ArrayIsOrdered, "Ordered"},
	{ValueIsArray, "Array"},
	{IsAlias, "IsAlias"},
	{HasAliases, "HasAliases"},
	{IsInternal, "Internal"},
	{IsStable, "Stable"},
	{IsDerived, "Derived"},
	{SchemaNode, "Schema"},
	{InsertBeforeItem, "InsertBefore"},
	{InsertAfterItem, "InsertAfter"},
	{DeleteExisting, "DeleteExisting"},
}

func (f PropertyFlags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.f == fn.f {
			parts = append(parts, fn.name)
			f &^= fn.f
		}
	}
	if f != 0 {
		parts = append(parts, "0x"+strings.ToUpper(strconv.FormatUint(uint64(uint32(f)), 16)))
	}
	return strings.Join(parts, "|")
}

// IterMode selects which nodes an [Iterator] visits.
type IterMode int

// Iteration modes.  The modes can be combined.
const (
	// IncludeAll visits the complete subtree.  This is the default.
	IncludeAll IterMode = 0

	// JustChildren visits only the immediate children of the root.
	JustChildren IterMode = 0x0100

	// JustLeafNodes visits only nodes without children.
	JustLeafNodes IterMode = 0x0200

	// JustLeafName reports only the last path step instead of the full path.
	JustLeafName IterMode = 0x0400

	// OmitQualifiers skips all qualifiers.
	OmitQualifiers IterMode = 0x1000
)

// SkipMode selects which nodes are skipped by [Iterator.Skip].
type SkipMode int

// Skip modes.
const (
	// SkipSubtree skips the subtree below the current node.
	SkipSubtree SkipMode = 0x0001

	// SkipSiblings skips the subtree below and the remaining siblings of
	// the current node.
	SkipSiblings SkipMode = 0x0002
)

// SerializeFlags control the RDF/XML serialization of a tree.
type SerializeFlags int

// Serialization flags.
const (
	// OmitPacketWrapper omits the <?xpacket ...?> processing instructions.
	OmitPacketWrapper SerializeFlags = 0x0010

	// ReadOnlyPacket marks the packet as read-only (end="r").
	ReadOnlyPacket SerializeFlags = 0x0020

	// UseCompactFormat uses the compact RDF form, where possible.
	UseCompactFormat SerializeFlags = 0x0040

	// IncludeThumbnailPad adds padding for a thumbnail image.
	IncludeThumbnailPad SerializeFlags = 0x0100

	// ExactPacketLength interprets the padding as the overall packet length.
	ExactPacketLength SerializeFlags = 0x0200

	// WriteAliasComments writes the aliases of a property as XML comments.
	WriteAliasComments SerializeFlags = 0x0400

	// OmitAllFormatting omits all formatting whitespace.
	OmitAllFormatting SerializeFlags = 0x0800

	encLittleEndian SerializeFlags = 0x0001
	encUTF16        SerializeFlags = 0x0002
	encUTF32        SerializeFlags = 0x0004

	// EncodingMask selects the bits which determine the output encoding.
	EncodingMask SerializeFlags = 0x0007

	EncodeUTF8        SerializeFlags = 0
	EncodeUTF16Big    SerializeFlags = encUTF16
	EncodeUTF16Little SerializeFlags = encUTF16 | encLittleEndian
	EncodeUTF32Big    SerializeFlags = encUTF32
	EncodeUTF32Little SerializeFlags = encUTF32 | encLittleEndian
)

// ParseFlags control the parsing of RDF/XML.
type ParseFlags int

// Parse flags.
const (
	// RequireXMPMeta requires a surrounding x:xmpmeta element.
	RequireXMPMeta ParseFlags = 0x0001

	// ParseMoreBuffers indicates that this is not the last input buffer.
	ParseMoreBuffers ParseFlags = 0x0002
)
