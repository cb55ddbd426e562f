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

import (
	"errors"
	"time"
)

// Schema gives access to the top-level properties of one namespace.
// The schema facades in the sub-packages are built on Schema.
//
// Schema holds no state besides the engine and the namespace: every
// getter reads from the engine, and every setter writes through.
type Schema struct {
	Engine    Engine
	Namespace string
}

// NewSchema returns a Schema for the namespace ns.  The namespace is
// registered with the suggested prefix, if it is not yet known.
func NewSchema(e Engine, ns, prefix string) (Schema, error) {
	if e == nil {
		return Schema{}, newError(BadParam, "NewSchema", "missing engine")
	}
	if _, err := RegisterNamespace(ns, prefix); err != nil {
		return Schema{}, withOp("NewSchema", err)
	}
	return Schema{Engine: e, Namespace: ns}, nil
}

// Text returns the value of a simple property.
// The empty string is returned for missing or composite properties.
func (s Schema) Text(name string) string {
	val, flags, err := s.Engine.GetProperty(s.Namespace, name)
	if err != nil || !flags.IsSimple() {
		return ""
	}
	return val
}

// SetText sets a simple property.  The empty string deletes the property.
func (s Schema) SetText(name, value string) error {
	if value == "" {
		return s.Engine.DeleteProperty(s.Namespace, name)
	}
	return s.Engine.SetProperty(s.Namespace, name, value, 0)
}

// SetURI sets a property with a URI value.  The empty string deletes the
// property.
func (s Schema) SetURI(name, value string) error {
	if value == "" {
		return s.Engine.DeleteProperty(s.Namespace, name)
	}
	return s.Engine.SetProperty(s.Namespace, name, value, ValueIsURI)
}

// lookup returns the text of a simple property.  The boolean is false if
// the property is missing.
func (s Schema) lookup(name string) (string, bool, error) {
	val, flags, err := s.Engine.GetProperty(s.Namespace, name)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	if !flags.IsSimple() {
		return "", false, newError(BadValue, "Schema", "%s is not a simple value", name)
	}
	return val, true, nil
}

// Int returns the value of an integer property.  The boolean is false if
// the property is missing.
func (s Schema) Int(name string) (int, bool, error) {
	val, ok, err := s.lookup(name)
	if !ok || err != nil {
		return 0, false, err
	}
	i, err := ConvertToInt(val)
	return i, err == nil, err
}

// SetInt sets an integer property.
func (s Schema) SetInt(name string, v int) error {
	return s.Engine.SetProperty(s.Namespace, name, ConvertFromInt(v), 0)
}

// Float returns the value of a real-valued property.  The boolean is false
// if the property is missing.
func (s Schema) Float(name string) (float64, bool, error) {
	val, ok, err := s.lookup(name)
	if !ok || err != nil {
		return 0, false, err
	}
	f, err := ConvertToFloat(val)
	return f, err == nil, err
}

// SetFloat sets a real-valued property.
func (s Schema) SetFloat(name string, v float64) error {
	return s.Engine.SetProperty(s.Namespace, name, ConvertFromFloat(v), 0)
}

// Bool returns the value of a boolean property.  The boolean ok is false
// if the property is missing.
func (s Schema) Bool(name string) (v, ok bool, err error) {
	val, ok, err := s.lookup(name)
	if !ok || err != nil {
		return false, false, err
	}
	v, err = ConvertToBool(val)
	return v, err == nil, err
}

// SetBool sets a boolean property.
func (s Schema) SetBool(name string, v bool) error {
	return s.Engine.SetProperty(s.Namespace, name, ConvertFromBool(v), 0)
}

// Date returns the value of a date property.  The zero time is returned if
// the property is missing.
func (s Schema) Date(name string) (time.Time, error) {
	val, ok, err := s.lookup(name)
	if !ok || err != nil {
		return time.Time{}, err
	}
	return ConvertToDate(val)
}

// SetDate sets a date property.  The zero time deletes the property.
func (s Schema) SetDate(name string, t time.Time) error {
	if t.IsZero() {
		return s.Engine.DeleteProperty(s.Namespace, name)
	}
	return s.Engine.SetProperty(s.Namespace, name, ConvertFromDate(t), 0)
}

// Bag returns a view of an unordered array of text values.
func (s Schema) Bag(name string) (*ArrayView[string], error) {
	return NewArrayView(s.Engine, s.Namespace, name, ValueIsArray, Codec[string](TextCodec()))
}

// Seq returns a view of an ordered array of text values.
func (s Schema) Seq(name string) (*ArrayView[string], error) {
	return NewArrayView(s.Engine, s.Namespace, name, ArrayIsOrdered, Codec[string](TextCodec()))
}

// Alt returns a view of an alternative array of text values.
func (s Schema) Alt(name string) (*ArrayView[string], error) {
	return NewArrayView(s.Engine, s.Namespace, name, ArrayIsAlternate, Codec[string](TextCodec()))
}

// LangAlt returns a view of a language alternative property.
func (s Schema) LangAlt(name string) (*LangAlt, error) {
	return NewLangAlt(s.Engine, s.Namespace, name)
}

// SchemaArray returns a view of an array property of the schema, using the
// given codec for the items.
func SchemaArray[T any](s Schema, name string, form PropertyFlags, codec Codec[T]) (*ArrayView[T], error) {
	return NewArrayView(s.Engine, s.Namespace, name, form, codec)
}
