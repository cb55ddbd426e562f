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

// Package bj gives access to the Basic Job Ticket properties of an XMP
// tree.
package bj

import (
	"seehuhn.de/go/xmpmeta"
	"seehuhn.de/go/xmpmeta/types"
)

// JobTicket is a view of the Basic Job Ticket properties in a tree.
type JobTicket struct {
	xmpmeta.Schema
}

// New returns a view of the Basic Job Ticket properties in e.
func New(e xmpmeta.Engine) (*JobTicket, error) {
	s, err := xmpmeta.NewSchema(e, xmpmeta.BJNamespace, "xmpBJ")
	if err != nil {
		return nil, err
	}
	return &JobTicket{Schema: s}, nil
}

// JobRef lists the jobs which the resource is used in.
func (j *JobTicket) JobRef() (*xmpmeta.ArrayView[types.Job], error) {
	return xmpmeta.SchemaArray(j.Schema, "JobRef", xmpmeta.ValueIsArray,
		xmpmeta.Codec[types.Job](types.JobCodec()))
}
