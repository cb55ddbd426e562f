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

// Package xmpmeta reads, modifies and writes Extensible Metadata Platform
// (XMP) data.
//
// # Trees
//
// The main type in this package is [Tree], which holds the XMP properties of
// one resource.  Trees are created by a [Session], either empty using
// [Session.NewTree] or from serialized RDF/XML using [Session.Parse] and
// [Tree.ParseFromBuffer].  [Tree.Serialize] converts a tree back into an
// XMP packet.
//
// # Properties
//
// Every property belongs to a schema, identified by a namespace URI.  The
// namespaces must be registered using [RegisterNamespace] before they can be
// used; the namespaces of the standard schemas are pre-registered.
// Properties are addressed by a path, relative to the schema namespace.
// Paths can be built using [ComposeArrayItemPath], [ComposeStructFieldPath],
// [ComposeQualifierPath], [ComposeLangSelector] and [ComposeFieldSelector].
// For example, the path
//
//	dc:title[?xml:lang="en-US"]
//
// selects the English title from the Dublin Core title array.
//
// A property value is either simple (a string, possibly a URI), a struct
// with named fields, or an array.  Arrays can be unordered (rdf:Bag),
// ordered (rdf:Seq) or alternatives (rdf:Alt).  Language alternatives are
// alternative arrays where every item carries an xml:lang qualifier; use
// [Tree.GetLocalizedText] and [Tree.SetLocalizedText] to access them.
//
// # Views
//
// [ArrayView] presents an array property as a list of Go values, with a
// [Codec] translating between items and values.  [LangAlt] presents a
// language alternative as a map from language tags to text.  Views read the
// tree when they are created, and write every change straight through to
// the tree.
//
// The sub-packages dc, photoshop, iptc, basic, rights, mm, pdf and bj
// provide typed access to the standard schemas.  [GetModel] and [SetModel]
// bind the fields of a Go struct to the properties of a schema.
package xmpmeta
