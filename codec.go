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
	"reflect"
	"time"
)

// ArrayRef identifies the array property behind an [ArrayView].
type ArrayRef struct {
	Engine    Engine
	Namespace string
	Path      string

	// Form is the array form which is used when the array is created.
	Form PropertyFlags
}

// ItemPath returns the path of the array item with the given 1-based index.
func (r ArrayRef) ItemPath(index int) (string, error) {
	return ComposeArrayItemPath(r.Namespace, r.Path, index)
}

// A Codec translates between values of type T and the items of an array
// property.  An [ArrayView] calls the codec for every change, before the
// cached values are updated.  All indices are 1-based tree indices.
type Codec[T any] interface {
	// OnLoad decodes the existing item at the given index.  If an error is
	// returned, the item is hidden from the view.
	OnLoad(ref ArrayRef, index int) (T, error)

	// OnAdd appends a new item, creating the array if needed.
	OnAdd(ref ArrayRef, v T) error

	// OnInsert inserts a new item before the item at the given index.
	OnInsert(ref ArrayRef, index int, v T) error

	// OnSet replaces the item at the given index.
	OnSet(ref ArrayRef, index int, v T) error

	// OnRemove deletes the item at the given index.  If no items are left,
	// the whole array is deleted.
	OnRemove(ref ArrayRef, index int) error

	// OnClear deletes the whole array.
	OnClear(ref ArrayRef) error

	// IsZero reports whether v represents a missing value.  Storing such a
	// value in a view removes the item.
	IsZero(v T) bool
}

// ItemCodec is a [Codec] which is built from functions to read and write
// a single item.  The functions are given the path of the item.
type ItemCodec[T any] struct {
	// ItemForm is the form of newly created items, for example
	// [ValueIsStruct].  The zero value creates simple items.
	ItemForm PropertyFlags

	Decode func(e Engine, ns, itemPath string) (T, error)
	Encode func(e Engine, ns, itemPath string, v T) error

	// Zero reports whether a value is missing.  If Zero is nil, the
	// zero value of T is missing.
	Zero func(v T) bool
}

// OnLoad implements the [Codec] interface.
func (c *ItemCodec[T]) OnLoad(ref ArrayRef, index int) (T, error) {
	var zero T
	itemPath, err := ref.ItemPath(index)
	if err != nil {
		return zero, err
	}
	return c.Decode(ref.Engine, ref.Namespace, itemPath)
}

// OnAdd implements the [Codec] interface.
func (c *ItemCodec[T]) OnAdd(ref ArrayRef, v T) error {
	e := ref.Engine
	existed := e.DoesPropertyExist(ref.Namespace, ref.Path)
	err := e.AppendArrayItem(ref.Namespace, ref.Path, ref.Form, "", c.ItemForm)
	if err != nil {
		return err
	}
	n, err := e.CountArrayItems(ref.Namespace, ref.Path)
	if err != nil {
		return err
	}
	if err := c.encode(ref, n, v); err != nil {
		c.discard(ref, n, existed)
		return err
	}
	return nil
}

// OnInsert implements the [Codec] interface.
func (c *ItemCodec[T]) OnInsert(ref ArrayRef, index int, v T) error {
	e := ref.Engine
	err := e.SetArrayItem(ref.Namespace, ref.Path, index, "", c.ItemForm|InsertBeforeItem)
	if err != nil {
		return err
	}
	if err := c.encode(ref, index, v); err != nil {
		c.discard(ref, index, true)
		return err
	}
	return nil
}

// OnSet implements the [Codec] interface.
func (c *ItemCodec[T]) OnSet(ref ArrayRef, index int, v T) error {
	return c.encode(ref, index, v)
}

// OnRemove implements the [Codec] interface.
func (c *ItemCodec[T]) OnRemove(ref ArrayRef, index int) error {
	e := ref.Engine
	if err := e.DeleteArrayItem(ref.Namespace, ref.Path, index); err != nil {
		return err
	}
	n, err := e.CountArrayItems(ref.Namespace, ref.Path)
	if err != nil {
		return err
	}
	if n == 0 {
		return e.DeleteProperty(ref.Namespace, ref.Path)
	}
	return nil
}

// OnClear implements the [Codec] interface.
func (c *ItemCodec[T]) OnClear(ref ArrayRef) error {
	return ref.Engine.DeleteProperty(ref.Namespace, ref.Path)
}

// IsZero implements the [Codec] interface.
func (c *ItemCodec[T]) IsZero(v T) bool {
	if c.Zero != nil {
		return c.Zero(v)
	}
	return reflect.ValueOf(&v).Elem().IsZero()
}

func (c *ItemCodec[T]) encode(ref ArrayRef, index int, v T) error {
	itemPath, err := ref.ItemPath(index)
	if err != nil {
		return err
	}
	return c.Encode(ref.Engine, ref.Namespace, itemPath, v)
}

// discard removes a partially written item.
func (c *ItemCodec[T]) discard(ref ArrayRef, index int, keepArray bool) {
	e := ref.Engine
	_ = e.DeleteArrayItem(ref.Namespace, ref.Path, index)
	if !keepArray {
		_ = e.DeleteProperty(ref.Namespace, ref.Path)
	}
}

// simpleCodec returns a codec for arrays of simple values.
func simpleCodec[T any](format func(T) string, parse func(string) (T, error), zero func(T) bool) *ItemCodec[T] {
	return &ItemCodec[T]{
		Decode: func(e Engine, ns, itemPath string) (T, error) {
			var v T
			val, flags, err := e.GetProperty(ns, itemPath)
			if err != nil {
				return v, err
			}
			if !flags.IsSimple() {
				return v, newError(BadValue, "Decode", "%s is not a simple value", itemPath)
			}
			return parse(val)
		},
		Encode: func(e Engine, ns, itemPath string, v T) error {
			return e.SetProperty(ns, itemPath, format(v), 0)
		},
		Zero: zero,
	}
}

func never[T any](T) bool { return false }

// TextCodec returns a codec for arrays of text values.  The empty string
// is the missing value.
func TextCodec() *ItemCodec[string] {
	return simpleCodec(
		func(s string) string { return s },
		func(s string) (string, error) { return s, nil },
		func(s string) bool { return s == "" })
}

// IntCodec returns a codec for arrays of integers.
func IntCodec() *ItemCodec[int] {
	return simpleCodec(ConvertFromInt, ConvertToInt, never[int])
}

// FloatCodec returns a codec for arrays of real numbers.
func FloatCodec() *ItemCodec[float64] {
	return simpleCodec(ConvertFromFloat, ConvertToFloat, never[float64])
}

// BoolCodec returns a codec for arrays of booleans.
func BoolCodec() *ItemCodec[bool] {
	return simpleCodec(ConvertFromBool, ConvertToBool, never[bool])
}

// DateCodec returns a codec for arrays of dates.  The zero time is the
// missing value.
func DateCodec() *ItemCodec[time.Time] {
	return simpleCodec(ConvertFromDate, ConvertToDate, time.Time.IsZero)
}
