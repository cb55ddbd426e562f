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

// Package rights gives access to the XMP Rights Management properties of
// an XMP tree.
//
// See section 8.5 of ISO 16684-1:2011.
package rights

import (
	"seehuhn.de/go/xmpmeta"
)

// Rights is a view of the rights management properties in a tree.
type Rights struct {
	xmpmeta.Schema
}

// New returns a view of the rights management properties in e.
func New(e xmpmeta.Engine) (*Rights, error) {
	s, err := xmpmeta.NewSchema(e, xmpmeta.RightsNamespace, "xmpRights")
	if err != nil {
		return nil, err
	}
	return &Rights{Schema: s}, nil
}

// Certificate is the URL of a rights management certificate.
func (r *Rights) Certificate() string {
	return r.Text("Certificate")
}

// SetCertificate sets the certificate URL.  The empty string deletes the
// property.
func (r *Rights) SetCertificate(v string) error {
	return r.SetText("Certificate", v)
}

// Marked reports whether the resource is rights-managed (true) or in the
// public domain (false).  The boolean ok is false if the status is
// unknown.
func (r *Rights) Marked() (marked, ok bool, err error) {
	return r.Bool("Marked")
}

// SetMarked sets the rights status.
func (r *Rights) SetMarked(marked bool) error {
	return r.SetBool("Marked", marked)
}

// ClearMarked removes the rights status.
func (r *Rights) ClearMarked() error {
	return r.Engine.DeleteProperty(r.Namespace, "Marked")
}

// Owner lists the legal owners of the resource.
func (r *Rights) Owner() (*xmpmeta.ArrayView[string], error) {
	return r.Bag("Owner")
}

// UsageTerms is a collection of text instructions on how the resource can
// be legally used.
func (r *Rights) UsageTerms() (*xmpmeta.LangAlt, error) {
	return r.LangAlt("UsageTerms")
}

// WebStatement is the URL of a web page describing the owner or the
// rights statement.
func (r *Rights) WebStatement() string {
	return r.Text("WebStatement")
}

// SetWebStatement sets the rights statement URL.  The empty string deletes
// the property.
func (r *Rights) SetWebStatement(v string) error {
	return r.SetText("WebStatement", v)
}
