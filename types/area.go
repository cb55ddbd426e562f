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


package types

import (
	"strings"

	"seehuhn.de/go/xmpmeta"
)

// These namespaces hold the fields of [Area] and [Classification].
const (
	AreaNamespace           = "http://ns.halligang.se/imagemap/1.0/area/"
	ClassificationNamespace = "http://ns.halligang.se/pcs/1.0/c/"
)

func init() {
	for _, def := range []struct{ ns, prefix string }{
		{AreaNamespace, "imArea"},
		{ClassificationNamespace, "pcsc"},
	} {
		if _, err := xmpmeta.RegisterNamespace(def.ns, def.prefix); err != nil {
			panic(err)
		}
	}
}

// Shape is the outline of an [Area].
type Shape int

// These are the supported shapes.  The names follow the shape attribute of
// the HTML area element.
const (
	Rect Shape = iota + 1
	Circle
	Poly
)

var shapeNames = map[Shape]string{
	Rect:   "rect",
	Circle: "circle",
	Poly:   "poly",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "Shape(" + xmpmeta.ConvertFromInt(int(s)) + ")"
}

func parseShape(s string) (Shape, bool) {
	s = strings.ToLower(s)
	for shape, name := range shapeNames {
		if name == s {
			return shape, true
		}
	}
	return 0, false
}

// Area is a clickable region of an image map (imArea).
type Area struct {
	Shape Shape

	// Coords lists the coordinates of the outline, in pixels:
	// left, top, right, bottom for a rectangle;
	// x, y, radius for a circle;
	// and x1, y1, x2, y2, ... for a polygon.
	Coords []int

	Title       []xmpmeta.LangEntry
	Description []xmpmeta.LangEntry
	Target      string
}

// Decode reads the struct property at ns and path.
func (v *Area) Decode(e xmpmeta.Engine, ns, path string) error {
	*v = Area{}
	if err := structHeader(e, ns, path); err != nil {
		return err
	}

	typ, err := optionalField(e, ns, path, AreaNamespace, "type")
	if err != nil {
		return err
	}
	shape, ok := parseShape(typ)
	if !ok {
		return &xmpmeta.Error{Code: xmpmeta.BadValue, Op: "Decode", Msg: "unknown shape " + typ}
	}

	fieldPath, err := xmpmeta.ComposeStructFieldPath(ns, path, AreaNamespace, "cords")
	if err != nil {
		return err
	}
	cords, err := readList(e, ns, fieldPath)
	if err != nil {
		return err
	}
	var coords []int
	for _, c := range cords {
		x, err := xmpmeta.ConvertToInt(c)
		if err != nil {
			return err
		}
		coords = append(coords, x)
	}

	fieldPath, err = xmpmeta.ComposeStructFieldPath(ns, path, AreaNamespace, "title")
	if err != nil {
		return err
	}
	title, err := readLangList(e, ns, fieldPath)
	if err != nil {
		return err
	}
	fieldPath, err = xmpmeta.ComposeStructFieldPath(ns, path, AreaNamespace, "description")
	if err != nil {
		return err
	}
	description, err := readLangList(e, ns, fieldPath)
	if err != nil {
		return err
	}

	target, err := optionalField(e, ns, path, AreaNamespace, "target")
	if err != nil {
		return err
	}

	*v = Area{
		Shape:       shape,
		Coords:      coords,
		Title:       title,
		Description: description,
		Target:      target,
	}
	return nil
}

// Encode writes v to the struct property at ns and path.
func (v Area) Encode(e xmpmeta.Engine, ns, path string) error {
	name, ok := shapeNames[v.Shape]
	if !ok {
		return &xmpmeta.Error{Code: xmpmeta.BadParam, Op: "Encode", Msg: "invalid shape " + v.Shape.String()}
	}
	if err := e.SetStructField(ns, path, AreaNamespace, "type", name, 0); err != nil {
		return err
	}

	fieldPath, err := xmpmeta.ComposeStructFieldPath(ns, path, AreaNamespace, "cords")
	if err != nil {
		return err
	}
	cords := make([]string, len(v.Coords))
	for i, x := range v.Coords {
		cords[i] = xmpmeta.ConvertFromInt(x)
	}
	err = writeList(e, ns, fieldPath, xmpmeta.ValueIsArray|xmpmeta.ArrayIsOrdered, cords)
	if err != nil {
		return err
	}

	fieldPath, err = xmpmeta.ComposeStructFieldPath(ns, path, AreaNamespace, "title")
	if err != nil {
		return err
	}
	if err := writeLangList(e, ns, fieldPath, v.Title); err != nil {
		return err
	}
	fieldPath, err = xmpmeta.ComposeStructFieldPath(ns, path, AreaNamespace, "description")
	if err != nil {
		return err
	}
	if err := writeLangList(e, ns, fieldPath, v.Description); err != nil {
		return err
	}

	return setOptionalField(e, ns, path, AreaNamespace, "target", v.Target)
}

// AreaCodec returns a codec for arrays of image map areas.
func AreaCodec() *xmpmeta.ItemCodec[Area] {
	return structCodec[Area]()
}

// ClassificationType tells how a [Classification] relates to its subject.
type ClassificationType int

// These are the supported classification types.
const (
	// Descriptive means that the resource shows or is about the subject.
	Descriptive ClassificationType = iota + 1

	// Containing means that the resource is filed under the subject.
	Containing
)

var classificationNames = map[ClassificationType]string{
	Descriptive: "descriptive",
	Containing:  "containing",
}

func (c ClassificationType) String() string {
	if name, ok := classificationNames[c]; ok {
		return name
	}
	return "ClassificationType(" + xmpmeta.ConvertFromInt(int(c)) + ")"
}

// Classification places a resource in a personal hierarchy of subjects
// (pcsc).
type Classification struct {
	Subject string
	Type    ClassificationType

	// Path lists the categories from the root of the hierarchy down to the
	// subject.
	Path []string
}

// Decode reads the struct property at ns and path.
func (v *Classification) Decode(e xmpmeta.Engine, ns, path string) error {
	*v = Classification{}
	if err := structHeader(e, ns, path); err != nil {
		return err
	}

	subject, err := optionalField(e, ns, path, ClassificationNamespace, "subject")
	if err != nil {
		return err
	}
	typ, err := optionalField(e, ns, path, ClassificationNamespace, "type")
	if err != nil {
		return err
	}
	var kind ClassificationType
	for c, name := range classificationNames {
		if strings.EqualFold(typ, name) {
			kind = c
		}
	}
	if kind == 0 {
		return &xmpmeta.Error{Code: xmpmeta.BadValue, Op: "Decode", Msg: "unknown classification type " + typ}
	}

	fieldPath, err := xmpmeta.ComposeStructFieldPath(ns, path, ClassificationNamespace, "path")
	if err != nil {
		return err
	}
	hierarchy, err := readList(e, ns, fieldPath)
	if err != nil {
		return err
	}

	*v = Classification{Subject: subject, Type: kind, Path: hierarchy}
	return nil
}

// Encode writes v to the struct property at ns and path.
func (v Classification) Encode(e xmpmeta.Engine, ns, path string) error {
	name, ok := classificationNames[v.Type]
	if !ok {
		return &xmpmeta.Error{Code: xmpmeta.BadParam, Op: "Encode", Msg: "invalid classification type " + v.Type.String()}
	}
	if err := setOptionalField(e, ns, path, ClassificationNamespace, "subject", v.Subject); err != nil {
		return err
	}
	if err := e.SetStructField(ns, path, ClassificationNamespace, "type", name, 0); err != nil {
		return err
	}
	fieldPath, err := xmpmeta.ComposeStructFieldPath(ns, path, ClassificationNamespace, "path")
	if err != nil {
		return err
	}
	return writeList(e, ns, fieldPath, xmpmeta.ValueIsArray|xmpmeta.ArrayIsOrdered, v.Path)
}

// ClassificationCodec returns a codec for arrays of classifications.
func ClassificationCodec() *xmpmeta.ItemCodec[Classification] {
	return structCodec[Classification]()
}

// structValue is implemented by the struct types which carry list fields
// and therefore cannot use a fieldMap.
type structValue[T any] interface {
	*T
	Decode(e xmpmeta.Engine, ns, path string) error
}

type encoder interface {
	Encode(e xmpmeta.Engine, ns, path string) error
}

func structCodec[T encoder, P structValue[T]]() *xmpmeta.ItemCodec[T] {
	return &xmpmeta.ItemCodec[T]{
		ItemForm: xmpmeta.ValueIsStruct,
		Decode: func(e xmpmeta.Engine, ns, itemPath string) (T, error) {
			var v T
			err := P(&v).Decode(e, ns, itemPath)
			return v, err
		},
		Encode: func(e xmpmeta.Engine, ns, itemPath string, v T) error {
			return v.Encode(e, ns, itemPath)
		},
	}
}
