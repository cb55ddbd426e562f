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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/xmpmeta"
)

func TestArea(t *testing.T) {
	tree := newTree(t)

	A := Area{
		Shape:  Poly,
		Coords: []int{10, 20, 30, 40, 50, 60},
		Title: []xmpmeta.LangEntry{
			{Lang: "de", Value: "Tür"},
			{Lang: "x-default", Value: "Door"},
		},
		Description: []xmpmeta.LangEntry{{Lang: "en", Value: "The front door"}},
		Target:      "http://example.com/door",
	}
	if err := A.Encode(tree, testNS, "test:area"); err != nil {
		t.Fatal(err)
	}

	val, _, err := tree.GetStructField(testNS, "test:area", AreaNamespace, "type")
	if err != nil {
		t.Fatal(err)
	}
	if val != "poly" {
		t.Errorf("imArea:type = %q", val)
	}
	_, flags, err := tree.GetProperty(testNS, "test:area/imArea:cords")
	if err != nil {
		t.Fatal(err)
	}
	if !flags.IsArray() || flags&xmpmeta.ArrayIsOrdered == 0 {
		t.Errorf("imArea:cords has flags %s", flags)
	}
	val, _, err = tree.GetProperty(testNS, "test:area/imArea:cords[3]")
	if err != nil {
		t.Fatal(err)
	}
	if val != "30" {
		t.Errorf("imArea:cords[3] = %q", val)
	}
	_, flags, err = tree.GetProperty(testNS, "test:area/imArea:title")
	if err != nil {
		t.Fatal(err)
	}
	if !flags.IsAltText() {
		t.Errorf("imArea:title has flags %s", flags)
	}
	lang, _, err := tree.GetQualifier(testNS, "test:area/imArea:title[1]", xmpmeta.XMLNamespace, "lang")
	if err != nil {
		t.Fatal(err)
	}
	if lang != "x-default" {
		t.Errorf("first title has language %q", lang)
	}

	var B Area
	if err := B.Decode(tree, testNS, "test:area"); err != nil {
		t.Fatal(err)
	}
	want := A
	want.Title = []xmpmeta.LangEntry{
		{Lang: "x-default", Value: "Door"},
		{Lang: "de", Value: "Tür"},
	}
	if d := cmp.Diff(want, B); d != "" {
		t.Errorf("unexpected area (-want +got):\n%s", d)
	}

	// empty lists and fields are removed
	A = Area{Shape: Circle, Coords: []int{5, 5, 3}}
	if err := A.Encode(tree, testNS, "test:area"); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"title", "description", "target"} {
		if tree.DoesStructFieldExist(testNS, "test:area", AreaNamespace, field) {
			t.Errorf("imArea:%s still exists", field)
		}
	}
	if n, _ := tree.CountArrayItems(testNS, "test:area/imArea:cords"); n != 3 {
		t.Errorf("imArea:cords has %d items, want 3", n)
	}
	if err := B.Decode(tree, testNS, "test:area"); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(A, B); d != "" {
		t.Errorf("unexpected area (-want +got):\n%s", d)
	}
}

func TestAreaLanguages(t *testing.T) {
	tree := newTree(t)
	if err := tree.SetStructField(testNS, "test:area", AreaNamespace, "type", "RECT", 0); err != nil {
		t.Fatal(err)
	}
	titlePath := "test:area/imArea:title"
	items := []struct{ lang, value string }{
		{"", "Window"},
		{"fr", "Fenêtre"},
		{"", "no language"},
		{"fr", "second French"},
	}
	for i, item := range items {
		err := tree.AppendArrayItem(testNS, titlePath, xmpmeta.ValueIsArray|xmpmeta.ArrayIsOrdered|xmpmeta.ArrayIsAlternate, item.value, 0)
		if err != nil {
			t.Fatal(err)
		}
		if item.lang == "" {
			continue
		}
		itemPath, err := xmpmeta.ComposeArrayItemPath(testNS, titlePath, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := tree.SetQualifier(testNS, itemPath, xmpmeta.XMLNamespace, "lang", item.lang, 0); err != nil {
			t.Fatal(err)
		}
	}

	var area Area
	if err := area.Decode(tree, testNS, "test:area"); err != nil {
		t.Fatal(err)
	}
	want := Area{
		Shape: Rect,
		Title: []xmpmeta.LangEntry{
			{Lang: "x-default", Value: "Window"},
			{Lang: "fr", Value: "Fenêtre"},
		},
	}
	if d := cmp.Diff(want, area); d != "" {
		t.Errorf("unexpected area (-want +got):\n%s", d)
	}
}

func TestAreaErrors(t *testing.T) {
	tree := newTree(t)
	if err := tree.SetStructField(testNS, "test:area", AreaNamespace, "type", "hexagon", 0); err != nil {
		t.Fatal(err)
	}
	var area Area
	if err := area.Decode(tree, testNS, "test:area"); xmpmeta.CodeOf(err) != xmpmeta.BadValue {
		t.Errorf("unknown shape: got %v", err)
	}

	if err := tree.SetStructField(testNS, "test:area", AreaNamespace, "type", "rect", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.AppendArrayItem(testNS, "test:area/imArea:cords", xmpmeta.ArrayIsOrdered, "left", 0); err != nil {
		t.Fatal(err)
	}
	if err := area.Decode(tree, testNS, "test:area"); xmpmeta.CodeOf(err) != xmpmeta.BadValue {
		t.Errorf("malformed coordinate: got %v", err)
	}

	err := Area{Coords: []int{1, 2, 3, 4}}.Encode(tree, testNS, "test:other")
	if xmpmeta.CodeOf(err) != xmpmeta.BadParam {
		t.Errorf("missing shape: got %v", err)
	}
	if tree.DoesPropertyExist(testNS, "test:other") {
		t.Error("area without shape was written")
	}

	err = Area{Shape: Rect, Title: []xmpmeta.LangEntry{{Value: "no language"}}}.Encode(tree, testNS, "test:other")
	if xmpmeta.CodeOf(err) != xmpmeta.BadParam {
		t.Errorf("missing language: got %v", err)
	}
}

func TestAreaArray(t *testing.T) {
	tree := newTree(t)

	A := []Area{
		{Shape: Rect, Coords: []int{0, 0, 100, 50}, Target: "#top"},
		{
			Shape:  Circle,
			Coords: []int{200, 200, 25},
			Title:  []xmpmeta.LangEntry{{Lang: "x-default", Value: "Sun"}},
		},
	}
	view, err := xmpmeta.NewArrayView(tree, testNS, "test:areas", xmpmeta.ArrayIsOrdered, AreaCodec())
	if err != nil {
		t.Fatal(err)
	}
	for _, area := range A {
		if err := view.Add(area); err != nil {
			t.Fatal(err)
		}
	}
	if err := view.Add(Area{Coords: []int{1}}); err == nil {
		t.Error("area without shape was accepted")
	}
	if n, _ := tree.CountArrayItems(testNS, "test:areas"); n != 2 {
		t.Errorf("array has %d items, want 2", n)
	}

	val, _, err := tree.GetProperty(testNS, "test:areas[2]/imArea:title[1]")
	if err != nil {
		t.Fatal(err)
	}
	if val != "Sun" {
		t.Errorf("title of second area = %q", val)
	}

	view2, err := xmpmeta.NewArrayView(tree, testNS, "test:areas", xmpmeta.ArrayIsOrdered, AreaCodec())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(A, view2.Values()); d != "" {
		t.Errorf("unexpected areas (-want +got):\n%s", d)
	}
}

func TestClassification(t *testing.T) {
	tree := newTree(t)

	A := Classification{
		Subject: "Eiffel Tower",
		Type:    Descriptive,
		Path:    []string{"Places", "France", "Paris"},
	}
	if err := A.Encode(tree, testNS, "test:class"); err != nil {
		t.Fatal(err)
	}
	val, _, err := tree.GetStructField(testNS, "test:class", ClassificationNamespace, "type")
	if err != nil {
		t.Fatal(err)
	}
	if val != "descriptive" {
		t.Errorf("pcsc:type = %q", val)
	}
	val, _, err = tree.GetProperty(testNS, "test:class/pcsc:path[2]")
	if err != nil {
		t.Fatal(err)
	}
	if val != "France" {
		t.Errorf("pcsc:path[2] = %q", val)
	}

	var B Classification
	if err := B.Decode(tree, testNS, "test:class"); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(A, B); d != "" {
		t.Errorf("A and B are different (-want +got):\n%s", d)
	}

	// the type is matched without regard to case
	if err := tree.SetStructField(testNS, "test:class", ClassificationNamespace, "type", "Containing", 0); err != nil {
		t.Fatal(err)
	}
	if err := B.Decode(tree, testNS, "test:class"); err != nil {
		t.Fatal(err)
	}
	if B.Type != Containing {
		t.Errorf("type = %s, want containing", B.Type)
	}

	if err := tree.SetStructField(testNS, "test:class", ClassificationNamespace, "type", "unrelated", 0); err != nil {
		t.Fatal(err)
	}
	if err := B.Decode(tree, testNS, "test:class"); xmpmeta.CodeOf(err) != xmpmeta.BadValue {
		t.Errorf("unknown type: got %v", err)
	}
	if err := (Classification{Subject: "x"}).Encode(tree, testNS, "test:class"); xmpmeta.CodeOf(err) != xmpmeta.BadParam {
		t.Errorf("missing type: got %v", err)
	}
}

func TestEnumNames(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{Rect.String(), "rect"},
		{Circle.String(), "circle"},
		{Poly.String(), "poly"},
		{Shape(0).String(), "Shape(0)"},
		{Descriptive.String(), "descriptive"},
		{Containing.String(), "containing"},
		{ClassificationType(7).String(), "ClassificationType(7)"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
}
