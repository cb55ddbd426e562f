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


// Package classification gives access to the personal classification
// properties (pcs) of an XMP tree.  These place a resource into one or
// more user-defined hierarchies of subjects.
package classification

import (
	"seehuhn.de/go/xmpmeta"
	"seehuhn.de/go/xmpmeta/types"
)

// Namespace is the namespace of the personal classification properties.
const Namespace = "http://ns.halligang.se/pcs/1.0/"

// PersonalClassification is a view of the personal classification
// properties in a tree.
type PersonalClassification struct {
	xmpmeta.Schema
}

// New returns a view of the personal classification properties in e.
func New(e xmpmeta.Engine) (*PersonalClassification, error) {
	s, err := xmpmeta.NewSchema(e, Namespace, "pcs")
	if err != nil {
		return nil, err
	}
	return &PersonalClassification{Schema: s}, nil
}

// Creator names the person who made the classification.
func (p *PersonalClassification) Creator() string {
	return p.Text("creator")
}

// SetCreator sets the creator.  The empty string deletes the property.
func (p *PersonalClassification) SetCreator(v string) error {
	return p.SetText("creator", v)
}

// Classifications lists the subjects of the resource.
func (p *PersonalClassification) Classifications() (*xmpmeta.ArrayView[types.Classification], error) {
	return xmpmeta.SchemaArray(p.Schema, "classification", xmpmeta.ValueIsArray,
		xmpmeta.Codec[types.Classification](types.ClassificationCodec()))
}
