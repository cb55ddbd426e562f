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

// Package mm gives access to the XMP Media Management properties of an
// XMP tree.
//
// See section 8.6 of ISO 16684-1:2011.
package mm

import (
	"errors"

	"github.com/google/uuid"

	"seehuhn.de/go/xmpmeta"
	"seehuhn.de/go/xmpmeta/types"
)

// MediaManagement is a view of the media management properties in a tree.
type MediaManagement struct {
	xmpmeta.Schema
}

// New returns a view of the media management properties in e.
func New(e xmpmeta.Engine) (*MediaManagement, error) {
	s, err := xmpmeta.NewSchema(e, xmpmeta.MMNamespace, "xmpMM")
	if err != nil {
		return nil, err
	}
	return &MediaManagement{Schema: s}, nil
}

// IDKind selects the prefix of a generated identifier.
type IDKind int

// These are the supported kinds of identifiers.
const (
	DocumentID IDKind = iota // "xmp.did:"
	InstanceID               // "xmp.iid:"
)

// NewID returns a new random identifier of the given kind, suitable for
// the DocumentID and InstanceID properties.
func NewID(kind IDKind) string {
	prefix := "xmp.did:"
	if kind == InstanceID {
		prefix = "xmp.iid:"
	}
	return prefix + uuid.New().String()
}

// DocumentID identifies all versions and renditions of a resource.
func (m *MediaManagement) DocumentID() string {
	return m.Text("DocumentID")
}

// SetDocumentID sets the document ID.  The empty string deletes the property.
func (m *MediaManagement) SetDocumentID(v string) error {
	return m.SetText("DocumentID", v)
}

// InstanceID identifies a specific incarnation of a resource.  It is
// updated every time the resource is saved.
func (m *MediaManagement) InstanceID() string {
	return m.Text("InstanceID")
}

// SetInstanceID sets the instance ID.  The empty string deletes the property.
func (m *MediaManagement) SetInstanceID(v string) error {
	return m.SetText("InstanceID", v)
}

// OriginalDocumentID is the DocumentID of the resource from which this
// document was derived.
func (m *MediaManagement) OriginalDocumentID() string {
	return m.Text("OriginalDocumentID")
}

// SetOriginalDocumentID sets the original document ID.  The empty string deletes the property.
func (m *MediaManagement) SetOriginalDocumentID(v string) error {
	return m.SetText("OriginalDocumentID", v)
}

// RenditionClass identifies the form of the rendition, for example
// "thumbnail" or "screen".
func (m *MediaManagement) RenditionClass() string {
	return m.Text("RenditionClass")
}

// SetRenditionClass sets the rendition class.  The empty string deletes the property.
func (m *MediaManagement) SetRenditionClass(v string) error {
	return m.SetText("RenditionClass", v)
}

// RenditionParams holds additional parameters for the rendition.
func (m *MediaManagement) RenditionParams() string {
	return m.Text("RenditionParams")
}

// SetRenditionParams sets the rendition parameters.  The empty string deletes the property.
func (m *MediaManagement) SetRenditionParams(v string) error {
	return m.SetText("RenditionParams", v)
}

// DerivedFrom references the resource from which this document was
// derived.  The boolean is false if the property is missing.
func (m *MediaManagement) DerivedFrom() (types.ResourceRef, bool, error) {
	var ref types.ResourceRef
	err := ref.Decode(m.Engine, m.Namespace, "DerivedFrom")
	if errors.Is(err, xmpmeta.ErrNotFound) {
		return ref, false, nil
	} else if err != nil {
		return ref, false, err
	}
	return ref, true, nil
}

// SetDerivedFrom replaces the DerivedFrom reference.  The zero value
// deletes the property.
func (m *MediaManagement) SetDerivedFrom(ref types.ResourceRef) error {
	if err := m.Engine.DeleteProperty(m.Namespace, "DerivedFrom"); err != nil {
		return err
	}
	if ref == (types.ResourceRef{}) {
		return nil
	}
	return ref.Encode(m.Engine, m.Namespace, "DerivedFrom")
}

// History lists the high-level actions which resulted in this resource, in
// chronological order.
func (m *MediaManagement) History() (*xmpmeta.ArrayView[types.ResourceEvent], error) {
	return xmpmeta.SchemaArray(m.Schema, "History", xmpmeta.ArrayIsOrdered,
		xmpmeta.Codec[types.ResourceEvent](types.ResourceEventCodec()))
}

// Ingredients lists the resources which were incorporated into this
// document.
func (m *MediaManagement) Ingredients() (*xmpmeta.ArrayView[types.ResourceRef], error) {
	return xmpmeta.SchemaArray(m.Schema, "Ingredients", xmpmeta.ValueIsArray,
		xmpmeta.Codec[types.ResourceRef](types.ResourceRefCodec()))
}
