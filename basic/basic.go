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

// Package basic gives access to the XMP Basic properties of an XMP tree.
//
// See section 8.4 of ISO 16684-1:2011.
package basic

import (
	"errors"
	"time"

	"seehuhn.de/go/xmpmeta"
	"seehuhn.de/go/xmpmeta/types"
)

// Basic is a view of the XMP Basic properties in a tree.
type Basic struct {
	xmpmeta.Schema
}

// New returns a view of the XMP Basic properties in e.
func New(e xmpmeta.Engine) (*Basic, error) {
	s, err := xmpmeta.NewSchema(e, xmpmeta.XMPNamespace, "xmp")
	if err != nil {
		return nil, err
	}
	return &Basic{Schema: s}, nil
}

// Advisory lists properties which were edited outside the authoring
// application.  This property is deprecated.
func (b *Basic) Advisory() (*xmpmeta.ArrayView[string], error) {
	return b.Bag("Advisory")
}

// BaseURL is the base URL for relative URLs in the document content.
func (b *Basic) BaseURL() string {
	return b.Text("BaseURL")
}

// SetBaseURL sets the base URL.  The empty string deletes the property.
func (b *Basic) SetBaseURL(v string) error {
	return b.SetText("BaseURL", v)
}

// CreateDate is the date and time the resource was originally created.
func (b *Basic) CreateDate() (time.Time, error) {
	return b.Date("CreateDate")
}

// SetCreateDate sets the creation date.  The zero time deletes the
// property.
func (b *Basic) SetCreateDate(t time.Time) error {
	return b.SetDate("CreateDate", t)
}

// CreatorTool is the name of the first known tool used to create the
// resource.
func (b *Basic) CreatorTool() string {
	return b.Text("CreatorTool")
}

// SetCreatorTool sets the creator tool.  The empty string deletes the
// property.
func (b *Basic) SetCreatorTool(v string) error {
	return b.SetText("CreatorTool", v)
}

// Identifier is an unambiguous reference to the resource within a given
// context.
type Identifier struct {
	Value  string
	Scheme string // the identification system, optional
}

var identifierCodec = &xmpmeta.ItemCodec[Identifier]{
	Decode: func(e xmpmeta.Engine, ns, itemPath string) (Identifier, error) {
		val, flags, err := e.GetProperty(ns, itemPath)
		if err != nil {
			return Identifier{}, err
		}
		if !flags.IsSimple() {
			return Identifier{}, &xmpmeta.Error{Code: xmpmeta.BadValue, Op: "Decode", Msg: itemPath + " is not a simple value"}
		}
		scheme, _, err := e.GetQualifier(ns, itemPath, xmpmeta.IdqNamespace, "Scheme")
		if err != nil && !errors.Is(err, xmpmeta.ErrNotFound) {
			return Identifier{}, err
		}
		return Identifier{Value: val, Scheme: scheme}, nil
	},
	Encode: func(e xmpmeta.Engine, ns, itemPath string, v Identifier) error {
		if err := e.SetProperty(ns, itemPath, v.Value, 0); err != nil {
			return err
		}
		return e.SetQualifier(ns, itemPath, xmpmeta.IdqNamespace, "Scheme", v.Scheme, 0)
	},
	Zero: func(v Identifier) bool { return v.Value == "" },
}

// Identifier lists identifiers of the resource.  Each item may be
// qualified with xmpidq:Scheme.
func (b *Basic) Identifier() (*xmpmeta.ArrayView[Identifier], error) {
	return xmpmeta.SchemaArray(b.Schema, "Identifier", xmpmeta.ValueIsArray,
		xmpmeta.Codec[Identifier](identifierCodec))
}

// Label is a word or short phrase that identifies a resource within a
// local context.
func (b *Basic) Label() string {
	return b.Text("Label")
}

// SetLabel sets the label.  The empty string deletes the property.
func (b *Basic) SetLabel(v string) error {
	return b.SetText("Label", v)
}

// MetadataDate is the date and time that any metadata for this resource was
// last modified.
func (b *Basic) MetadataDate() (time.Time, error) {
	return b.Date("MetadataDate")
}

// SetMetadataDate sets the metadata date.  The zero time deletes the
// property.
func (b *Basic) SetMetadataDate(t time.Time) error {
	return b.SetDate("MetadataDate", t)
}

// ModifyDate is the date and time the resource was last modified.
func (b *Basic) ModifyDate() (time.Time, error) {
	return b.Date("ModifyDate")
}

// SetModifyDate sets the modification date.  The zero time deletes the
// property.
func (b *Basic) SetModifyDate(t time.Time) error {
	return b.SetDate("ModifyDate", t)
}

// Nickname is a short informal name for the resource.
func (b *Basic) Nickname() string {
	return b.Text("Nickname")
}

// SetNickname sets the nickname.  The empty string deletes the property.
func (b *Basic) SetNickname(v string) error {
	return b.SetText("Nickname", v)
}

// Rating is a user-assigned rating for this resource.  The value is -1
// (rejected), 0 (unrated) or a rating in the range (0, 5].  The boolean is
// false if no rating is set.
func (b *Basic) Rating() (float64, bool, error) {
	return b.Float("Rating")
}

// SetRating sets the rating.
func (b *Basic) SetRating(r float64) error {
	if r != -1 && (r < 0 || r > 5) {
		return &xmpmeta.Error{Code: xmpmeta.BadParam, Op: "SetRating", Msg: "rating out of range"}
	}
	return b.SetFloat("Rating", r)
}

// DeleteRating removes the rating.
func (b *Basic) DeleteRating() error {
	return b.Engine.DeleteProperty(b.Namespace, "Rating")
}

// Thumbnails lists alternative thumbnails for the resource.
func (b *Basic) Thumbnails() (*xmpmeta.ArrayView[types.Thumbnail], error) {
	return xmpmeta.SchemaArray(b.Schema, "Thumbnails", xmpmeta.ArrayIsAlternate,
		xmpmeta.Codec[types.Thumbnail](types.ThumbnailCodec()))
}
