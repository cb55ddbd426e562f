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

// Package pdf gives access to the Adobe PDF properties of an XMP tree.
package pdf

import (
	"seehuhn.de/go/xmpmeta"
)

// PDF is a view of the Adobe PDF properties in a tree.
type PDF struct {
	xmpmeta.Schema
}

// New returns a view of the Adobe PDF properties in e.
func New(e xmpmeta.Engine) (*PDF, error) {
	s, err := xmpmeta.NewSchema(e, xmpmeta.PDFNamespace, "pdf")
	if err != nil {
		return nil, err
	}
	return &PDF{Schema: s}, nil
}

// Keywords holds the keywords of the document, as a single string.
func (p *PDF) Keywords() string {
	return p.Text("Keywords")
}

// SetKeywords sets the keywords.  The empty string deletes the property.
func (p *PDF) SetKeywords(v string) error {
	return p.SetText("Keywords", v)
}

// PDFVersion is the PDF file version, for example "1.7".
func (p *PDF) PDFVersion() string {
	return p.Text("PDFVersion")
}

// SetPDFVersion sets the PDF version.  The empty string deletes the property.
func (p *PDF) SetPDFVersion(v string) error {
	return p.SetText("PDFVersion", v)
}

// Producer is the name of the tool that created the PDF document.
func (p *PDF) Producer() string {
	return p.Text("Producer")
}

// SetProducer sets the producer.  The empty string deletes the property.
func (p *PDF) SetProducer(v string) error {
	return p.SetText("Producer", v)
}
