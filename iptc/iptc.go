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

// Package iptc gives access to the IPTC Core properties of an XMP tree.
//
// The IPTC Core schema complements the Photoshop properties, which hold the
// remaining IPTC fields.
package iptc

import (
	"errors"

	"seehuhn.de/go/xmpmeta"
)

// Core is a view of the IPTC Core properties in a tree.
type Core struct {
	xmpmeta.Schema
}

// New returns a view of the IPTC Core properties in e.
func New(e xmpmeta.Engine) (*Core, error) {
	s, err := xmpmeta.NewSchema(e, xmpmeta.IPTCCoreNamespace, "Iptc4xmpCore")
	if err != nil {
		return nil, err
	}
	return &Core{Schema: s}, nil
}

// CountryCode is the ISO 3166 code of the country shown in the content.
func (c *Core) CountryCode() string {
	return c.Text("CountryCode")
}

// SetCountryCode sets the country code.  The empty string deletes the property.
func (c *Core) SetCountryCode(v string) error {
	return c.SetText("CountryCode", v)
}

// ContactInfo holds the contact details of the creator of the content.
type ContactInfo struct {
	Address    string // CiAdrExtadr, may span several lines
	City       string // CiAdrCity
	Region     string // CiAdrRegion
	PostalCode string // CiAdrPcode
	Country    string // CiAdrCtry
	Email      string // CiEmailWork
	Phone      string // CiTelWork
	URL        string // CiUrlWork
}

func (ci *ContactInfo) fields() []struct {
	name string
	ptr  *string
} {
	return []struct {
		name string
		ptr  *string
	}{
		{"CiAdrExtadr", &ci.Address},
		{"CiAdrCity", &ci.City},
		{"CiAdrRegion", &ci.Region},
		{"CiAdrPcode", &ci.PostalCode},
		{"CiAdrCtry", &ci.Country},
		{"CiEmailWork", &ci.Email},
		{"CiTelWork", &ci.Phone},
		{"CiUrlWork", &ci.URL},
	}
}

// CreatorContactInfo returns the contact details of the creator.  If the
// property is missing, the zero value is returned.
func (c *Core) CreatorContactInfo() (ContactInfo, error) {
	var ci ContactInfo
	_, flags, err := c.Engine.GetProperty(c.Namespace, "CreatorContactInfo")
	if errors.Is(err, xmpmeta.ErrNotFound) {
		return ci, nil
	} else if err != nil {
		return ci, err
	}
	if !flags.IsStruct() {
		return ci, &xmpmeta.Error{Code: xmpmeta.BadValue, Op: "CreatorContactInfo", Msg: "not a struct"}
	}
	for _, f := range ci.fields() {
		val, _, err := c.Engine.GetStructField(c.Namespace, "CreatorContactInfo", c.Namespace, f.name)
		if errors.Is(err, xmpmeta.ErrNotFound) {
			continue
		} else if err != nil {
			return ci, err
		}
		*f.ptr = val
	}
	return ci, nil
}

// SetCreatorContactInfo replaces the contact details of the creator.
// The zero value deletes the property.
func (c *Core) SetCreatorContactInfo(ci ContactInfo) error {
	if err := c.Engine.DeleteProperty(c.Namespace, "CreatorContactInfo"); err != nil {
		return err
	}
	for _, f := range ci.fields() {
		if *f.ptr == "" {
			continue
		}
		err := c.Engine.SetStructField(c.Namespace, "CreatorContactInfo", c.Namespace, f.name, *f.ptr, 0)
		if err != nil {
			return err
		}
	}
	return nil
}

// IntellectualGenre describes the nature of the content, for example "Feature".
func (c *Core) IntellectualGenre() string {
	return c.Text("IntellectualGenre")
}

// SetIntellectualGenre sets the genre.  The empty string deletes the property.
func (c *Core) SetIntellectualGenre(v string) error {
	return c.SetText("IntellectualGenre", v)
}

// Location is the name of the location shown in the content.
func (c *Core) Location() string {
	return c.Text("Location")
}

// SetLocation sets the location.  The empty string deletes the property.
func (c *Core) SetLocation(v string) error {
	return c.SetText("Location", v)
}

// Scene lists IPTC scene codes.
func (c *Core) Scene() (*xmpmeta.ArrayView[string], error) {
	return c.Bag("Scene")
}

// SubjectCode lists IPTC subject reference codes.
func (c *Core) SubjectCode() (*xmpmeta.ArrayView[string], error) {
	return c.Bag("SubjectCode")
}
