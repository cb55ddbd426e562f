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
	"iter"
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// An ArrayView presents an array property as a list of values of type T.
//
// The view keeps a cache of the decoded values.  All changes are first
// written to the tree through the [Codec] and then applied to the cache,
// while holding the lock of the tree.  Items which cannot be decoded are
// hidden from the view but stay in the tree.
type ArrayView[T any] struct {
	ref   ArrayRef
	codec Codec[T]
	slots []slot[T]
}

type slot[T any] struct {
	v  T
	ok bool // false for items which could not be decoded
}

// NewArrayView creates a view of the array at ns and path.  If the array
// does not exist, the view is empty and the array is created with the given
// form when the first item is added.
func NewArrayView[T any](e Engine, ns, path string, form PropertyFlags, codec Codec[T]) (*ArrayView[T], error) {
	const op = "NewArrayView"
	if e == nil {
		return nil, newError(BadParam, op, "missing engine")
	}
	if isNilCodec(codec) {
		return nil, newError(BadParam, op, "missing codec")
	}
	form = form.normalizeForm()
	if form == 0 {
		form = ValueIsArray
	}
	if form&^ArrayForm != 0 {
		return nil, newError(BadParam, op, "invalid array form %s", form)
	}
	v := &ArrayView[T]{
		ref:   ArrayRef{Engine: e, Namespace: ns, Path: path, Form: form},
		codec: codec,
	}
	l := e.Locker()
	l.Lock()
	defer l.Unlock()
	if err := v.load(); err != nil {
		return nil, withOp(op, err)
	}
	return v, nil
}

// isNilCodec reports whether c is nil, or a nil pointer wrapped in the
// interface.
func isNilCodec[T any](c Codec[T]) bool {
	if c == nil {
		return true
	}
	rv := reflect.ValueOf(c)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Ref returns the array behind the view.
func (v *ArrayView[T]) Ref() ArrayRef {
	return v.ref
}

func (v *ArrayView[T]) load() error {
	e := v.ref.Engine
	_, flags, err := e.GetProperty(v.ref.Namespace, v.ref.Path)
	if errors.Is(err, ErrNotFound) {
		v.slots = nil
		return nil
	} else if err != nil {
		return err
	}
	if !flags.IsArray() {
		return newError(BadValue, "", "%s is not an array", v.ref.Path)
	}

	it, err := e.Iterate(v.ref.Namespace, v.ref.Path, JustChildren|OmitQualifiers)
	if err != nil {
		return err
	}
	log := loggerOf(e)
	var slots []slot[T]
	index := 0
	for it.Next() {
		index++
		val, err := v.codec.OnLoad(v.ref, index)
		if err != nil {
			log.Debug("skipping malformed array item",
				zap.String("array", v.ref.Path),
				zap.Int("index", index),
				zap.Error(err))
			slots = append(slots, slot[T]{})
			continue
		}
		slots = append(slots, slot[T]{v: val, ok: true})
	}
	v.slots = slots
	return nil
}

func loggerOf(e Engine) *zap.Logger {
	if l, ok := e.(interface{ Logger() *zap.Logger }); ok {
		return l.Logger()
	}
	return zap.NewNop()
}

// Reload discards the cache and reads the array from the tree.
func (v *ArrayView[T]) Reload() error {
	l := v.ref.Engine.Locker()
	l.Lock()
	defer l.Unlock()
	return withOp("ArrayView.Reload", v.load())
}

// Len returns the number of values in the view.
func (v *ArrayView[T]) Len() int {
	n := 0
	for _, s := range v.slots {
		if s.ok {
			n++
		}
	}
	return n
}

// slotIndex returns the position in v.slots of the i-th visible value,
// or -1 if i is out of range.
func (v *ArrayView[T]) slotIndex(i int) int {
	if i < 0 {
		return -1
	}
	for pos, s := range v.slots {
		if !s.ok {
			continue
		}
		if i == 0 {
			return pos
		}
		i--
	}
	return -1
}

func indexError(op string, i, n int) error {
	return newError(IndexOutOfRange, op, "index %d out of range [0, %d)", i, n)
}

// Get returns the value at index i.
func (v *ArrayView[T]) Get(i int) (T, error) {
	pos := v.slotIndex(i)
	if pos < 0 {
		var zero T
		return zero, indexError("ArrayView.Get", i, v.Len())
	}
	return v.slots[pos].v, nil
}

// Values returns a copy of all values.
func (v *ArrayView[T]) Values() []T {
	res := make([]T, 0, len(v.slots))
	for _, s := range v.slots {
		if s.ok {
			res = append(res, s.v)
		}
	}
	return res
}

// All returns an iterator over the indices and values of the view.
func (v *ArrayView[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for _, s := range v.slots {
			if !s.ok {
				continue
			}
			if !yield(i, s.v) {
				return
			}
			i++
		}
	}
}

// IndexFunc returns the index of the first value which satisfies f,
// or -1.
func (v *ArrayView[T]) IndexFunc(f func(T) bool) int {
	for i, x := range v.All() {
		if f(x) {
			return i
		}
	}
	return -1
}

// Add appends a value.
func (v *ArrayView[T]) Add(x T) error {
	l := v.ref.Engine.Locker()
	l.Lock()
	defer l.Unlock()
	return withOp("ArrayView.Add", v.add(x))
}

func (v *ArrayView[T]) add(x T) error {
	if err := v.codec.OnAdd(v.ref, x); err != nil {
		return err
	}
	v.slots = append(v.slots, slot[T]{v: x, ok: true})
	return nil
}

// Insert inserts a value at index i, moving the following values up.
// If i equals Len, the value is appended.
func (v *ArrayView[T]) Insert(i int, x T) error {
	l := v.ref.Engine.Locker()
	l.Lock()
	defer l.Unlock()

	const op = "ArrayView.Insert"
	n := v.Len()
	if i < 0 || i > n {
		return newError(IndexOutOfRange, op, "index %d out of range [0, %d]", i, n)
	}
	if i == n {
		return withOp(op, v.add(x))
	}
	pos := v.slotIndex(i)
	if err := v.codec.OnInsert(v.ref, pos+1, x); err != nil {
		return withOp(op, err)
	}
	v.slots = slices.Insert(v.slots, pos, slot[T]{v: x, ok: true})
	return nil
}

// Set replaces the value at index i.  Setting a missing value (as reported
// by the codec's IsZero method) removes the item.
func (v *ArrayView[T]) Set(i int, x T) error {
	l := v.ref.Engine.Locker()
	l.Lock()
	defer l.Unlock()
	return v.set("ArrayView.Set", i, x)
}

func (v *ArrayView[T]) set(op string, i int, x T) error {
	pos := v.slotIndex(i)
	if pos < 0 {
		return indexError(op, i, v.Len())
	}
	if v.codec.IsZero(x) {
		return v.removeSlot(op, pos)
	}
	if err := v.codec.OnSet(v.ref, pos+1, x); err != nil {
		return withOp(op, err)
	}
	v.slots[pos] = slot[T]{v: x, ok: true}
	return nil
}

// RemoveAt removes the value at index i.  When the last item of the array
// is removed, the array property is deleted.
func (v *ArrayView[T]) RemoveAt(i int) error {
	l := v.ref.Engine.Locker()
	l.Lock()
	defer l.Unlock()

	const op = "ArrayView.RemoveAt"
	pos := v.slotIndex(i)
	if pos < 0 {
		return indexError(op, i, v.Len())
	}
	return v.removeSlot(op, pos)
}

func (v *ArrayView[T]) removeSlot(op string, pos int) error {
	if err := v.codec.OnRemove(v.ref, pos+1); err != nil {
		return withOp(op, err)
	}
	v.slots = slices.Delete(v.slots, pos, pos+1)
	return nil
}

// Clear deletes the array property.
func (v *ArrayView[T]) Clear() error {
	l := v.ref.Engine.Locker()
	l.Lock()
	defer l.Unlock()
	if err := v.codec.OnClear(v.ref); err != nil {
		return withOp("ArrayView.Clear", err)
	}
	v.slots = nil
	return nil
}
