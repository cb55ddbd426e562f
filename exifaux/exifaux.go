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


// Package exifaux gives access to the additional EXIF properties (aux) of
// an XMP tree.
package exifaux

import (
	"seehuhn.de/go/xmpmeta"
)

// Aux is a view of the additional EXIF properties in a tree.
type Aux struct {
	xmpmeta.Schema
}

// New returns a view of the additional EXIF properties in e.
func New(e xmpmeta.Engine) (*Aux, error) {
	s, err := xmpmeta.NewSchema(e, xmpmeta.AuxNamespace, "aux")
	if err != nil {
		return nil, err
	}
	return &Aux{Schema: s}, nil
}

// Lens describes the lens which was used to take the photograph.
func (a *Aux) Lens() string {
	return a.Text("Lens")
}

// SetLens sets the lens description.  The empty string deletes the property.
func (a *Aux) SetLens(v string) error {
	return a.SetText("Lens", v)
}

// SerialNumber is the serial number of the camera or camera body.
func (a *Aux) SerialNumber() string {
	return a.Text("SerialNumber")
}

// SetSerialNumber sets the serial number.  The empty string deletes the property.
func (a *Aux) SetSerialNumber(v string) error {
	return a.SetText("SerialNumber", v)
}
