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
	"strings"
	"time"
)

// Namespace must be used in namespace structs to specify the namespace
// URI.  The namespace URI is given using a struct tag on a field of type
// Namespace.  For example:
//
//	type MyNamespace struct {
//	    _ Namespace `xmp:"http://example.com/ns/my/namespace/"`
//	    ...
//	}
type Namespace struct{}

// Prefix can be used in namespace structs to optionally specify the
// preferred XML prefix for the namespace.  For example:
//
//	type MyNamespace struct {
//	    _ Namespace `xmp:"http://example.com/ns/my/namespace/"`
//	    _ Prefix    `xmp:"myns"`
//	    ...
//	}
//
// If no prefix is specified (or if there is a prefix name clash), a prefix is
// automatically chosen.
type Prefix struct{}

// A namespace struct binds Go fields to the top-level properties of one
// schema.  The property name is given by the `xmp` struct tag, and defaults
// to the field name.  Array fields can select the array form by appending
// ",bag", ",seq" or ",alt" to the tag.  Fields tagged "-" and unexported
// fields are ignored.
//
// The following field types are supported: string, bool, int, int64,
// float64, time.Time, []string and []LangEntry.  A []LangEntry field is
// stored as a language alternative array.

// SetModel stores the fields of the namespace struct src in e.
// Fields with zero values delete the corresponding property.
func SetModel(e Engine, src any) error {
	const op = "SetModel"
	s := reflect.Indirect(reflect.ValueOf(src))
	if s.Kind() != reflect.Struct {
		return newError(BadParam, op, "%T is not a struct", src)
	}
	info, err := modelInfoOf(op, s.Type())
	if err != nil {
		return err
	}
	schema, err := NewSchema(e, info.namespace, info.prefix)
	if err != nil {
		return withOp(op, err)
	}

	for _, f := range info.fields {
		if err := f.set(schema, s.Field(f.index)); err != nil {
			return withOp(op, err)
		}
	}
	return nil
}

// GetModel fills the fields of a namespace struct using the properties
// in e.  The argument dst must be a pointer to a namespace struct.  Fields
// for missing properties are set to their zero value.
func GetModel(e Engine, dst any) error {
	const op = "GetModel"
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return newError(BadParam, op, "%T is not a pointer to a struct", dst)
	}
	s := v.Elem()
	info, err := modelInfoOf(op, s.Type())
	if err != nil {
		return err
	}
	if e == nil {
		return newError(BadParam, op, "missing engine")
	}
	schema := Schema{Engine: e, Namespace: info.namespace}

	for _, f := range info.fields {
		fVal := s.Field(f.index)
		if err := f.get(schema, fVal); err != nil {
			return withOp(op, err)
		}
	}
	return nil
}

type modelInfo struct {
	namespace string
	prefix    string
	fields    []modelField
}

type modelField struct {
	index int
	name  string
	form  PropertyFlags
}

var (
	nsTagType     = reflect.TypeFor[Namespace]()
	prefixTagType = reflect.TypeFor[Prefix]()
	timeType      = reflect.TypeFor[time.Time]()
	langEntryType = reflect.TypeFor[[]LangEntry]()
	stringsType   = reflect.TypeFor[[]string]()
)

func modelInfoOf(op string, st reflect.Type) (*modelInfo, error) {
	info := &modelInfo{}
	for i := 0; i < st.NumField(); i++ {
		fInfo := st.Field(i)
		tag := fInfo.Tag.Get("xmp")

		switch fInfo.Type {
		case nsTagType:
			info.namespace = tag
			continue
		case prefixTagType:
			info.prefix = tag
			continue
		}
		if !fInfo.IsExported() || tag == "-" {
			continue
		}

		name, opt, _ := strings.Cut(tag, ",")
		if name == "" {
			name = fInfo.Name
		}
		f := modelField{index: i, name: name}
		switch fInfo.Type {
		case stringsType:
			switch opt {
			case "", "bag":
				f.form = ValueIsArray
			case "seq":
				f.form = ArrayIsOrdered
			case "alt":
				f.form = ArrayIsAlternate
			default:
				return nil, newError(BadParam, op, "field %s: invalid array form %q", fInfo.Name, opt)
			}
		case langEntryType, timeType:
		default:
			switch fInfo.Type.Kind() {
			case reflect.String, reflect.Bool, reflect.Int, reflect.Int64, reflect.Float64:
			default:
				return nil, newError(BadParam, op, "field %s: unsupported type %s", fInfo.Name, fInfo.Type)
			}
		}
		if !isValidLocalName(name) {
			return nil, newError(BadParam, op, "field %s: invalid property name %q", fInfo.Name, name)
		}
		info.fields = append(info.fields, f)
	}
	if info.namespace == "" {
		return nil, newError(BadParam, op, "XMP namespace not specified")
	}
	return info, nil
}

func (f modelField) set(s Schema, v reflect.Value) error {
	if v.IsZero() {
		return s.Engine.DeleteProperty(s.Namespace, f.name)
	}

	switch v.Type() {
	case timeType:
		return s.SetDate(f.name, v.Interface().(time.Time))
	case stringsType:
		if err := s.Engine.DeleteProperty(s.Namespace, f.name); err != nil {
			return err
		}
		for _, item := range v.Interface().([]string) {
			err := s.Engine.AppendArrayItem(s.Namespace, f.name, f.form, item, 0)
			if err != nil {
				return err
			}
		}
		return nil
	case langEntryType:
		if err := s.Engine.DeleteProperty(s.Namespace, f.name); err != nil {
			return err
		}
		alt, err := s.LangAlt(f.name)
		if err != nil {
			return err
		}
		for _, entry := range v.Interface().([]LangEntry) {
			if err := alt.Set(entry.Lang, entry.Value); err != nil {
				return err
			}
		}
		return nil
	}

	switch v.Kind() {
	case reflect.String:
		return s.SetText(f.name, v.String())
	case reflect.Bool:
		return s.SetBool(f.name, v.Bool())
	case reflect.Int, reflect.Int64:
		return s.Engine.SetProperty(s.Namespace, f.name, ConvertFromInt64(v.Int()), 0)
	case reflect.Float64:
		return s.SetFloat(f.name, v.Float())
	}
	return nil
}

func (f modelField) get(s Schema, v reflect.Value) error {
	v.SetZero()

	switch v.Type() {
	case timeType:
		t, err := s.Date(f.name)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(t))
		return nil
	case stringsType:
		arr, err := NewArrayView(s.Engine, s.Namespace, f.name, f.form, Codec[string](TextCodec()))
		if err != nil {
			return err
		}
		if arr.Len() > 0 {
			v.Set(reflect.ValueOf(arr.Values()))
		}
		return nil
	case langEntryType:
		alt, err := s.LangAlt(f.name)
		if err != nil {
			return err
		}
		if alt.Len() > 0 {
			v.Set(reflect.ValueOf(alt.Entries()))
		}
		return nil
	}

	val, ok, err := s.lookup(f.name)
	if !ok || err != nil {
		return err
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(val)
	case reflect.Bool:
		b, err := ConvertToBool(val)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int64:
		i, err := ConvertToInt64(val)
		if err != nil {
			return err
		}
		if v.OverflowInt(i) {
			return newError(BadValue, "", "%s: value %d out of range", f.name, i)
		}
		v.SetInt(i)
	case reflect.Float64:
		x, err := ConvertToFloat(val)
		if err != nil {
			return err
		}
		v.SetFloat(x)
	}
	return nil
}
