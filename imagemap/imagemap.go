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


// Package imagemap gives access to the image map properties of an XMP
// tree.  An image map divides an image into clickable areas, in the same
// way as the HTML map element.
package imagemap

import (
	"errors"

	"seehuhn.de/go/xmpmeta"
	"seehuhn.de/go/xmpmeta/types"
)

// Namespace is the namespace of the image map properties.
const Namespace = "http://ns.halligang.se/imagemap/1.0/"

// ImageMap is a view of the image map properties in a tree.
type ImageMap struct {
	xmpmeta.Schema
}

// New returns a view of the image map properties in e.
func New(e xmpmeta.Engine) (*ImageMap, error) {
	s, err := xmpmeta.NewSchema(e, Namespace, "imageMap")
	if err != nil {
		return nil, err
	}
	return &ImageMap{Schema: s}, nil
}

// ImageSize is the size of the image which the area coordinates refer to.
// The boolean is false if the property is missing.
func (m *ImageMap) ImageSize() (types.Dimensions, bool, error) {
	var dim types.Dimensions
	err := dim.Decode(m.Engine, m.Namespace, "ImageSize")
	if errors.Is(err, xmpmeta.ErrNotFound) {
		return dim, false, nil
	} else if err != nil {
		return dim, false, err
	}
	return dim, true, nil
}

// SetImageSize replaces the image size.  The zero value deletes the
// property.
func (m *ImageMap) SetImageSize(dim types.Dimensions) error {
	if err := m.Engine.DeleteProperty(m.Namespace, "ImageSize"); err != nil {
		return err
	}
	if dim == (types.Dimensions{}) {
		return nil
	}
	return dim.Encode(m.Engine, m.Namespace, "ImageSize")
}

// Areas lists the areas of the image map.  Earlier areas take precedence
// where areas overlap.
func (m *ImageMap) Areas() (*xmpmeta.ArrayView[types.Area], error) {
	return xmpmeta.SchemaArray(m.Schema, "Area", xmpmeta.ArrayIsOrdered,
		xmpmeta.Codec[types.Area](types.AreaCodec()))
}
