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

package xmpmeta

import "sync"

// Engine is the set of primitive property operations which the array views,
// the codecs and the schema facades are built on.  [*Tree] implements
// Engine.
type Engine interface {
	GetProperty(ns, path string) (string, PropertyFlags, error)
	SetProperty(ns, path, value string, flags PropertyFlags) error
	DeleteProperty(ns, path string) error
	DoesPropertyExist(ns, path string) bool

	SetArrayItem(ns, arrayName string, index int, value string, flags PropertyFlags) error
	AppendArrayItem(ns, arrayName string, arrayForm PropertyFlags, value string, itemFlags PropertyFlags) error
	DeleteArrayItem(ns, arrayName string, index int) error
	CountArrayItems(ns, arrayName string) (int, error)

	GetStructField(ns, structName, fieldNS, fieldName string) (string, PropertyFlags, error)
	SetStructField(ns, structName, fieldNS, fieldName, value string, flags PropertyFlags) error
	DeleteStructField(ns, structName, fieldNS, fieldName string) error

	GetQualifier(ns, propName, qualNS, qualName string) (string, PropertyFlags, error)
	SetQualifier(ns, propName, qualNS, qualName, value string, flags PropertyFlags) error
	DeleteQualifier(ns, propName, qualNS, qualName string) error

	Iterate(ns, path string, mode IterMode) (*Iterator, error)

	// Locker returns the lock which callers hold while they modify the
	// properties.
	Locker() sync.Locker
}
