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

// Package photoshop gives access to the Adobe Photoshop properties of an
// XMP tree.
package photoshop

import (
	"time"

	"seehuhn.de/go/xmpmeta"
)

// Photoshop is a view of the Photoshop properties in a tree.
type Photoshop struct {
	xmpmeta.Schema
}

// New returns a view of the Photoshop properties in e.
func New(e xmpmeta.Engine) (*Photoshop, error) {
	s, err := xmpmeta.NewSchema(e, xmpmeta.PhotoshopNamespace, "photoshop")
	if err != nil {
		return nil, err
	}
	return &Photoshop{Schema: s}, nil
}

// AuthorsPosition is the job title of the person listed in dc:creator.
func (ps *Photoshop) AuthorsPosition() string {
	return ps.Text("AuthorsPosition")
}

// SetAuthorsPosition sets the position.  The empty string deletes the property.
func (ps *Photoshop) SetAuthorsPosition(v string) error {
	return ps.SetText("AuthorsPosition", v)
}

// CaptionWriter is the name of the person who wrote the description.
func (ps *Photoshop) CaptionWriter() string {
	return ps.Text("CaptionWriter")
}

// SetCaptionWriter sets the caption writer.  The empty string deletes the property.
func (ps *Photoshop) SetCaptionWriter(v string) error {
	return ps.SetText("CaptionWriter", v)
}

// Category is a category code, limited to three characters.
func (ps *Photoshop) Category() string {
	return ps.Text("Category")
}

// SetCategory sets the category.  The empty string deletes the property.
func (ps *Photoshop) SetCategory(v string) error {
	return ps.SetText("Category", v)
}

// City is the city where the content was created.
func (ps *Photoshop) City() string {
	return ps.Text("City")
}

// SetCity sets the city.  The empty string deletes the property.
func (ps *Photoshop) SetCity(v string) error {
	return ps.SetText("City", v)
}

// Country is the country where the content was created.
func (ps *Photoshop) Country() string {
	return ps.Text("Country")
}

// SetCountry sets the country.  The empty string deletes the property.
func (ps *Photoshop) SetCountry(v string) error {
	return ps.SetText("Country", v)
}

// Credit is the credit line of the provider.
func (ps *Photoshop) Credit() string {
	return ps.Text("Credit")
}

// SetCredit sets the credit line.  The empty string deletes the property.
func (ps *Photoshop) SetCredit(v string) error {
	return ps.SetText("Credit", v)
}

// DateCreated is the date the intellectual content was created.
func (ps *Photoshop) DateCreated() (time.Time, error) {
	return ps.Date("DateCreated")
}

// SetDateCreated sets the creation date of the content.  The zero time
// deletes the property.
func (ps *Photoshop) SetDateCreated(t time.Time) error {
	return ps.SetDate("DateCreated", t)
}

// Headline is a short synopsis of the content.
func (ps *Photoshop) Headline() string {
	return ps.Text("Headline")
}

// SetHeadline sets the headline.  The empty string deletes the property.
func (ps *Photoshop) SetHeadline(v string) error {
	return ps.SetText("Headline", v)
}

// Instructions contains special instructions for using the resource.
func (ps *Photoshop) Instructions() string {
	return ps.Text("Instructions")
}

// SetInstructions sets the instructions.  The empty string deletes the property.
func (ps *Photoshop) SetInstructions(v string) error {
	return ps.SetText("Instructions", v)
}

// Source is the original owner of the copyright.
func (ps *Photoshop) Source() string {
	return ps.Text("Source")
}

// SetSource sets the source.  The empty string deletes the property.
func (ps *Photoshop) SetSource(v string) error {
	return ps.SetText("Source", v)
}

// State is the province or state where the content was created.
func (ps *Photoshop) State() string {
	return ps.Text("State")
}

// SetState sets the state.  The empty string deletes the property.
func (ps *Photoshop) SetState(v string) error {
	return ps.SetText("State", v)
}

// SupplementalCategories lists additional categories.
func (ps *Photoshop) SupplementalCategories() (*xmpmeta.ArrayView[string], error) {
	return ps.Bag("SupplementalCategories")
}

// TransmissionReference is an identifier for tracking the transmission of the resource.
func (ps *Photoshop) TransmissionReference() string {
	return ps.Text("TransmissionReference")
}

// SetTransmissionReference sets the transmission reference.  The empty string deletes the property.
func (ps *Photoshop) SetTransmissionReference(v string) error {
	return ps.SetText("TransmissionReference", v)
}

// Urgency is the editorial urgency, from 1 (most urgent) to 8.
// The boolean is false if the property is not set.
func (ps *Photoshop) Urgency() (int, bool, error) {
	return ps.Int("Urgency")
}

// SetUrgency sets the urgency.  The value 0 deletes the property.
func (ps *Photoshop) SetUrgency(u int) error {
	if u == 0 {
		return ps.Engine.DeleteProperty(ps.Namespace, "Urgency")
	}
	if u < 1 || u > 8 {
		return &xmpmeta.Error{Code: xmpmeta.BadParam, Op: "SetUrgency", Msg: "urgency out of range"}
	}
	return ps.SetInt("Urgency", u)
}
