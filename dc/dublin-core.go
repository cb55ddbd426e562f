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

// Package dc gives access to the Dublin Core properties of an XMP tree.
//
// See section 8.3 of ISO 16684-1:2011.
package dc

import (
	"time"

	"seehuhn.de/go/xmpmeta"
)

// DublinCore is a view of the Dublin Core properties in a tree.
type DublinCore struct {
	xmpmeta.Schema
}

// New returns a view of the Dublin Core properties in e.
func New(e xmpmeta.Engine) (*DublinCore, error) {
	s, err := xmpmeta.NewSchema(e, xmpmeta.DCNamespace, "dc")
	if err != nil {
		return nil, err
	}
	return &DublinCore{Schema: s}, nil
}

// Contributor is a list of contributors to the resource.
// This should not include names listed in the Creator field.
func (dc *DublinCore) Contributor() (*xmpmeta.ArrayView[string], error) {
	return dc.Bag("contributor")
}

// Coverage is the extent or scope of the resource.
func (dc *DublinCore) Coverage() string {
	return dc.Text("coverage")
}

// SetCoverage sets the coverage.  The empty string deletes the property.
func (dc *DublinCore) SetCoverage(v string) error {
	return dc.SetText("coverage", v)
}

// Creator is a list of the creators of the resource.  Entities should be
// listed in order of decreasing precedence, if such order is significant.
func (dc *DublinCore) Creator() (*xmpmeta.ArrayView[string], error) {
	return dc.Seq("creator")
}

// Date is a list of points in time associated with events in the life
// cycle of the resource.
func (dc *DublinCore) Date() (*xmpmeta.ArrayView[time.Time], error) {
	return xmpmeta.SchemaArray(dc.Schema, "date", xmpmeta.ArrayIsOrdered,
		xmpmeta.Codec[time.Time](xmpmeta.DateCodec()))
}

// Description is a textual description of the content of the resource.
func (dc *DublinCore) Description() (*xmpmeta.LangAlt, error) {
	return dc.LangAlt("description")
}

// Format is the media type of the resource.
func (dc *DublinCore) Format() string {
	return dc.Text("format")
}

// SetFormat sets the media type.  The empty string deletes the property.
func (dc *DublinCore) SetFormat(v string) error {
	return dc.SetText("format", v)
}

// Identifier is an unambiguous reference for the resource.
func (dc *DublinCore) Identifier() string {
	return dc.Text("identifier")
}

// SetIdentifier sets the identifier.  The empty string deletes the
// property.
func (dc *DublinCore) SetIdentifier(v string) error {
	return dc.SetText("identifier", v)
}

// Language is a list of languages used in the content of the resource.
func (dc *DublinCore) Language() (*xmpmeta.ArrayView[string], error) {
	return dc.Bag("language")
}

// Publisher is a list of publishers of the resource.
func (dc *DublinCore) Publisher() (*xmpmeta.ArrayView[string], error) {
	return dc.Bag("publisher")
}

// Relation is a list of related resources.
func (dc *DublinCore) Relation() (*xmpmeta.ArrayView[string], error) {
	return dc.Bag("relation")
}

// Rights is an informal rights statement for the resource.
func (dc *DublinCore) Rights() (*xmpmeta.LangAlt, error) {
	return dc.LangAlt("rights")
}

// Source is a reference to a resource from which the present resource is
// derived, either in whole or in part.
func (dc *DublinCore) Source() string {
	return dc.Text("source")
}

// SetSource sets the source.  The empty string deletes the property.
func (dc *DublinCore) SetSource(v string) error {
	return dc.SetText("source", v)
}

// Subject is a list of descriptive phrases or keywords that specify the
// content of the resource.
func (dc *DublinCore) Subject() (*xmpmeta.ArrayView[string], error) {
	return dc.Bag("subject")
}

// Title is the title or name of the resource.
func (dc *DublinCore) Title() (*xmpmeta.LangAlt, error) {
	return dc.LangAlt("title")
}

// Type is the nature or genre of the resource.
func (dc *DublinCore) Type() (*xmpmeta.ArrayView[string], error) {
	return dc.Bag("type")
}

// Model holds all Dublin Core properties.  Use [xmpmeta.GetModel] and
// [xmpmeta.SetModel] to transfer the values to and from a tree.
type Model struct {
	_ xmpmeta.Namespace `xmp:"http://purl.org/dc/elements/1.1/"`
	_ xmpmeta.Prefix    `xmp:"dc"`

	Contributor []string            `xmp:"contributor"`
	Coverage    string              `xmp:"coverage"`
	Creator     []string            `xmp:"creator,seq"`
	Date        []string            `xmp:"date,seq"`
	Description []xmpmeta.LangEntry `xmp:"description"`
	Format      string              `xmp:"format"`
	Identifier  string              `xmp:"identifier"`
	Language    []string            `xmp:"language"`
	Publisher   []string            `xmp:"publisher"`
	Relation    []string            `xmp:"relation"`
	Rights      []xmpmeta.LangEntry `xmp:"rights"`
	Source      string              `xmp:"source"`
	Subject     []string            `xmp:"subject"`
	Title       []xmpmeta.LangEntry `xmp:"title"`
	Type        []string            `xmp:"type"`
}
