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

// Package types implements the structured value types of the standard XMP
// schemas.
//
// Every type can be read from and written to a struct property using its
// Decode and Encode methods, and comes with an [xmpmeta.ItemCodec] for use
// with arrays of structs.
package types

import (
	"errors"
	"time"

	"seehuhn.de/go/xmpmeta"
)

// ResourceRef is a reference to another resource (stRef).
type ResourceRef struct {
	InstanceID     string
	DocumentID     string
	VersionID      string
	RenditionClass string
	FilePath       string
}

var resourceRefFields = fieldMap[ResourceRef]{
	textField(xmpmeta.ResourceRefNamespace, "instanceID", func(v *ResourceRef) *string { return &v.InstanceID }),
	textField(xmpmeta.ResourceRefNamespace, "documentID", func(v *ResourceRef) *string { return &v.DocumentID }),
	textField(xmpmeta.ResourceRefNamespace, "versionID", func(v *ResourceRef) *string { return &v.VersionID }),
	textField(xmpmeta.ResourceRefNamespace, "renditionClass", func(v *ResourceRef) *string { return &v.RenditionClass }),
	textField(xmpmeta.ResourceRefNamespace, "filePath", func(v *ResourceRef) *string { return &v.FilePath }),
}

// Decode reads the struct property at ns and path.
func (v *ResourceRef) Decode(e xmpmeta.Engine, ns, path string) error {
	return resourceRefFields.decode(e, ns, path, v)
}

// Encode writes v to the struct property at ns and path.
func (v ResourceRef) Encode(e xmpmeta.Engine, ns, path string) error {
	return resourceRefFields.encode(e, ns, path, &v)
}

// ResourceRefCodec returns a codec for arrays of resource references.
func ResourceRefCodec() *xmpmeta.ItemCodec[ResourceRef] {
	return resourceRefFields.codec()
}

// ResourceEvent describes a high-level action which resulted in a new
// version of a resource (stEvt).
type ResourceEvent struct {
	Action        string
	InstanceID    string
	Parameters    string
	SoftwareAgent string
	When          time.Time
	Changed       string
}

var resourceEventFields = fieldMap[ResourceEvent]{
	textField(xmpmeta.ResourceEventNamespace, "action", func(v *ResourceEvent) *string { return &v.Action }),
	textField(xmpmeta.ResourceEventNamespace, "instanceID", func(v *ResourceEvent) *string { return &v.InstanceID }),
	textField(xmpmeta.ResourceEventNamespace, "parameters", func(v *ResourceEvent) *string { return &v.Parameters }),
	textField(xmpmeta.ResourceEventNamespace, "softwareAgent", func(v *ResourceEvent) *string { return &v.SoftwareAgent }),
	dateField(xmpmeta.ResourceEventNamespace, "when", func(v *ResourceEvent) *time.Time { return &v.When }),
	textField(xmpmeta.ResourceEventNamespace, "changed", func(v *ResourceEvent) *string { return &v.Changed }),
}

// Decode reads the struct property at ns and path.
func (v *ResourceEvent) Decode(e xmpmeta.Engine, ns, path string) error {
	return resourceEventFields.decode(e, ns, path, v)
}

// Encode writes v to the struct property at ns and path.
func (v ResourceEvent) Encode(e xmpmeta.Engine, ns, path string) error {
	return resourceEventFields.encode(e, ns, path, &v)
}

// ResourceEventCodec returns a codec for arrays of resource events.
func ResourceEventCodec() *xmpmeta.ItemCodec[ResourceEvent] {
	return resourceEventFields.codec()
}

// Dimensions gives the size of a page or an image (stDim).
type Dimensions struct {
	Width  float64
	Height float64
	Unit   string // "inch", "mm", "pixel", "pica" or "point"
}

var dimensionsFields = fieldMap[Dimensions]{
	floatField(xmpmeta.DimensionsNamespace, "w", func(v *Dimensions) *float64 { return &v.Width }),
	floatField(xmpmeta.DimensionsNamespace, "h", func(v *Dimensions) *float64 { return &v.Height }),
	textField(xmpmeta.DimensionsNamespace, "unit", func(v *Dimensions) *string { return &v.Unit }),
}

// Decode reads the struct property at ns and path.
func (v *Dimensions) Decode(e xmpmeta.Engine, ns, path string) error {
	return dimensionsFields.decode(e, ns, path, v)
}

// Encode writes v to the struct property at ns and path.
func (v Dimensions) Encode(e xmpmeta.Engine, ns, path string) error {
	return dimensionsFields.encode(e, ns, path, &v)
}

// Job describes a job for which a resource is used (stJob).
type Job struct {
	Name string
	ID   string
	URL  string
}

var jobFields = fieldMap[Job]{
	textField(xmpmeta.JobNamespace, "name", func(v *Job) *string { return &v.Name }),
	textField(xmpmeta.JobNamespace, "id", func(v *Job) *string { return &v.ID }),
	textField(xmpmeta.JobNamespace, "url", func(v *Job) *string { return &v.URL }),
}

// Decode reads the struct property at ns and path.
func (v *Job) Decode(e xmpmeta.Engine, ns, path string) error {
	return jobFields.decode(e, ns, path, v)
}

// Encode writes v to the struct property at ns and path.
func (v Job) Encode(e xmpmeta.Engine, ns, path string) error {
	return jobFields.encode(e, ns, path, &v)
}

// JobCodec returns a codec for arrays of jobs.
func JobCodec() *xmpmeta.ItemCodec[Job] {
	return jobFields.codec()
}

// Thumbnail is a small preview image (xmpGImg).
type Thumbnail struct {
	Width  int
	Height int
	Format string // normally "JPEG"
	Image  string // base64 encoded image data
}

var thumbnailFields = fieldMap[Thumbnail]{
	intField(xmpmeta.GImgNamespace, "width", func(v *Thumbnail) *int { return &v.Width }),
	intField(xmpmeta.GImgNamespace, "height", func(v *Thumbnail) *int { return &v.Height }),
	textField(xmpmeta.GImgNamespace, "format", func(v *Thumbnail) *string { return &v.Format }),
	textField(xmpmeta.GImgNamespace, "image", func(v *Thumbnail) *string { return &v.Image }),
}

// Decode reads the struct property at ns and path.
func (v *Thumbnail) Decode(e xmpmeta.Engine, ns, path string) error {
	return thumbnailFields.decode(e, ns, path, v)
}

// Encode writes v to the struct property at ns and path.
func (v Thumbnail) Encode(e xmpmeta.Engine, ns, path string) error {
	return thumbnailFields.encode(e, ns, path, &v)
}

// ThumbnailCodec returns a codec for arrays of thumbnails.
func ThumbnailCodec() *xmpmeta.ItemCodec[Thumbnail] {
	return thumbnailFields.codec()
}

// fieldDef describes how one field of an XMP struct maps to a Go value.
// An empty text form means that the field is missing.
type fieldDef[T any] struct {
	ns, name string
	get      func(v *T) string
	set      func(v *T, s string) error
}

type fieldMap[T any] []fieldDef[T]

func textField[T any](ns, name string, ptr func(*T) *string) fieldDef[T] {
	return fieldDef[T]{
		ns:   ns,
		name: name,
		get:  func(v *T) string { return *ptr(v) },
		set:  func(v *T, s string) error { *ptr(v) = s; return nil },
	}
}

func intField[T any](ns, name string, ptr func(*T) *int) fieldDef[T] {
	return fieldDef[T]{
		ns:   ns,
		name: name,
		get: func(v *T) string {
			if *ptr(v) == 0 {
				return ""
			}
			return xmpmeta.ConvertFromInt(*ptr(v))
		},
		set: func(v *T, s string) error {
			i, err := xmpmeta.ConvertToInt(s)
			*ptr(v) = i
			return err
		},
	}
}

func floatField[T any](ns, name string, ptr func(*T) *float64) fieldDef[T] {
	return fieldDef[T]{
		ns:   ns,
		name: name,
		get: func(v *T) string {
			if *ptr(v) == 0 {
				return ""
			}
			return xmpmeta.ConvertFromFloat(*ptr(v))
		},
		set: func(v *T, s string) error {
			x, err := xmpmeta.ConvertToFloat(s)
			*ptr(v) = x
			return err
		},
	}
}

func dateField[T any](ns, name string, ptr func(*T) *time.Time) fieldDef[T] {
	return fieldDef[T]{
		ns:   ns,
		name: name,
		get: func(v *T) string {
			if ptr(v).IsZero() {
				return ""
			}
			return xmpmeta.ConvertFromDate(*ptr(v))
		},
		set: func(v *T, s string) error {
			t, err := xmpmeta.ConvertToDate(s)
			*ptr(v) = t
			return err
		},
	}
}

func (m fieldMap[T]) decode(e xmpmeta.Engine, ns, path string, v *T) error {
	var zero T
	*v = zero

	_, flags, err := e.GetProperty(ns, path)
	if err != nil {
		return err
	}
	if !flags.IsStruct() {
		return &xmpmeta.Error{Code: xmpmeta.BadValue, Op: "Decode", Msg: path + " is not a struct"}
	}
	for _, f := range m {
		val, _, err := e.GetStructField(ns, path, f.ns, f.name)
		if errors.Is(err, xmpmeta.ErrNotFound) {
			continue
		} else if err != nil {
			return err
		}
		if err := f.set(v, val); err != nil {
			return err
		}
	}
	return nil
}

// encode writes the fields of v.  Fields with zero values are deleted.
func (m fieldMap[T]) encode(e xmpmeta.Engine, ns, path string, v *T) error {
	for _, f := range m {
		val := f.get(v)
		var err error
		if val == "" {
			err = e.DeleteStructField(ns, path, f.ns, f.name)
		} else {
			err = e.SetStructField(ns, path, f.ns, f.name, val, 0)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m fieldMap[T]) codec() *xmpmeta.ItemCodec[T] {
	return &xmpmeta.ItemCodec[T]{
		ItemForm: xmpmeta.ValueIsStruct,
		Decode: func(e xmpmeta.Engine, ns, itemPath string) (T, error) {
			var v T
			err := m.decode(e, ns, itemPath, &v)
			return v, err
		},
		Encode: func(e xmpmeta.Engine, ns, itemPath string, v T) error {
			return m.encode(e, ns, itemPath, &v)
		},
	}
}
