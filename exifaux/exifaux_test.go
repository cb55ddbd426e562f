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


package exifaux

import (
	"testing"

	"seehuhn.de/go/xmpmeta"
)

func newTree(t *testing.T) *xmpmeta.Tree {
	t.Helper()
	s, err := xmpmeta.NewSession()
	if err != nil {
		t.Fatal(err)
	}
	tree, err := s.NewTree()
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestAux(t *testing.T) {
	tree := newTree(t)
	a, err := New(tree)
	if err != nil {
		t.Fatal(err)
	}

	fields := []struct {
		name, value string
		set         func(string) error
		get         func() string
	}{
		{"Lens", "EF24-105mm f/4L IS USM", a.SetLens, a.Lens},
		{"SerialNumber", "0420102345", a.SetSerialNumber, a.SerialNumber},
	}
	for _, f := range fields {
		if got := f.get(); got != "" {
			t.Errorf("unset %s = %q", f.name, got)
		}
		if err := f.set(f.value); err != nil {
			t.Fatal(err)
		}
		if got := f.get(); got != f.value {
			t.Errorf("%s = %q, want %q", f.name, got, f.value)
		}
		val, _, err := tree.GetProperty(xmpmeta.AuxNamespace, "aux:"+f.name)
		if err != nil {
			t.Fatal(err)
		}
		if val != f.value {
			t.Errorf("aux:%s = %q, want %q", f.name, val, f.value)
		}
		if err := f.set(""); err != nil {
			t.Fatal(err)
		}
		if tree.DoesPropertyExist(xmpmeta.AuxNamespace, "aux:"+f.name) {
			t.Errorf("aux:%s was not deleted", f.name)
		}
	}
}
