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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetGetProperty(t *testing.T) {
	tree := newTestTree(t)

	if _, _, err := tree.GetProperty(testNS, "test:p"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing property: got %v", err)
	}
	if tree.DoesPropertyExist(testNS, "test:p") {
		t.Error("missing property exists")
	}

	if err := tree.SetProperty(testNS, "test:p", "v1", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetProperty(testNS, "test:u", "http://example.com/", ValueIsURI|IsStable); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetProperty(testNS, "test:p", "v2", 0); err != nil {
		t.Fatal(err)
	}

	val, flags, err := tree.GetProperty(testNS, "test:p")
	if err != nil {
		t.Fatal(err)
	}
	if val != "v2" || flags != 0 {
		t.Errorf("test:p = %q (%s)", val, flags)
	}
	val, flags, err = tree.GetProperty(testNS, "u")
	if err != nil {
		t.Fatal(err)
	}
	if val != "http://example.com/" || flags != ValueIsURI|IsStable {
		t.Errorf("test:u = %q (%s)", val, flags)
	}
	if got := tree.Schemas(); len(got) != 1 || got[0] != testNS {
		t.Errorf("unexpected schemas %q", got)
	}
}

func TestSetPropertyCreatesParents(t *testing.T) {
	tree := newTestTree(t)

	steps := []struct {
		path  string
		value string
	}{
		{"test:s/test:f", "field"},
		{"test:arr[1]", "item"},
		{`test:alt[?xml:lang="en"]`, "Hello"},
		{`test:alt[?xml:lang="x-default"]`, "Hi"},
		{"test:deep/test:list[1]/test:x", "x"},
	}
	for _, s := range steps {
		if err := tree.SetProperty(testNS, s.path, s.value, 0); err != nil {
			t.Fatalf("%s: %v", s.path, err)
		}
	}

	want := []Item{
		testSchema,
		prop("test:s", "", ValueIsStruct),
		prop("test:s/test:f", "field", 0),
		prop("test:arr", "", ValueIsArray),
		prop("test:arr[1]", "item", 0),
		prop("test:alt", "", LangAltForm),
		prop("test:alt[1]", "Hi", HasQualifiers|HasLang),
		prop("test:alt[1]/?xml:lang", "x-default", IsQualifier),
		prop("test:alt[2]", "Hello", HasQualifiers|HasLang),
		prop("test:alt[2]/?xml:lang", "en", IsQualifier),
		prop("test:deep", "", ValueIsStruct),
		prop("test:deep/test:list", "", ValueIsArray),
		prop("test:deep/test:list[1]", "", ValueIsStruct),
		prop("test:deep/test:list[1]/test:x", "x", 0),
	}
	if d := cmp.Diff(want, listTree(t, tree)); d != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", d)
	}

	val, _, err := tree.GetProperty(testNS, `test:alt[?xml:lang="en-GB"]`)
	if err != nil {
		t.Fatal(err)
	}
	if val != "Hello" {
		t.Errorf("language fallback: got %q", val)
	}
}

func TestSetPropertyErrors(t *testing.T) {
	tree := newTestTree(t)
	if err := tree.SetProperty(testNS, "test:simple", "v", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetProperty(testNS, "test:struct", "", ValueIsStruct); err != nil {
		t.Fatal(err)
	}
	before := listTree(t, tree)

	cases := []struct {
		desc  string
		path  string
		value string
		flags PropertyFlags
		code  ErrorCode
	}{
		{"struct and array", "test:p", "", ValueIsStruct | ValueIsArray, BadParam},
		{"composite URI", "test:p", "", ValueIsURI | ValueIsStruct, BadParam},
		{"composite with value", "test:p", "x", ValueIsStruct, BadValue},
		{"insert flag", "test:p", "x", InsertBeforeItem, BadParam},
		{"simple to struct", "test:simple", "", ValueIsStruct, BadValue},
		{"struct to simple", "test:struct", "x", 0, BadValue},
		{"field of simple", "test:simple/test:f", "x", 0, BadValue},
		{"item of simple", "test:simple[1]", "x", 0, BadValue},
		{"index out of range", "test:new/test:list[2]", "x", 0, BadParam},
		{"invalid path", "test:p[", "x", 0, BadParam},
		{"invalid field name", "test:new/rdf:value", "x", 0, BadParam},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tree.SetProperty(testNS, tc.path, tc.value, tc.flags)
			if CodeOf(err) != tc.code {
				t.Errorf("got %v, want %s", err, tc.code)
			}
			if d := cmp.Diff(before, listTree(t, tree)); d != "" {
				t.Errorf("tree was modified (-want +got):\n%s", d)
			}
		})
	}
}

func TestDeleteExisting(t *testing.T) {
	tree := newTestTree(t)
	if err := tree.SetProperty(testNS, "test:p", "v", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetQualifier(testNS, "test:p", testNS, "q", "qv", 0); err != nil {
		t.Fatal(err)
	}

	if err := tree.SetProperty(testNS, "test:p", "w", 0); err != nil {
		t.Fatal(err)
	}
	if !tree.DoesQualifierExist(testNS, "test:p", testNS, "q") {
		t.Error("qualifier lost")
	}

	if err := tree.SetProperty(testNS, "test:p", "", ValueIsArray|DeleteExisting); err != nil {
		t.Fatal(err)
	}
	want := []Item{testSchema, prop("test:p", "", ValueIsArray)}
	if d := cmp.Diff(want, listTree(t, tree)); d != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", d)
	}
}

func TestDeleteProperty(t *testing.T) {
	tree := newTestTree(t)
	if err := tree.SetProperty(testNS, "test:s/test:a", "1", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetProperty(testNS, "test:s/test:b", "2", 0); err != nil {
		t.Fatal(err)
	}

	if err := tree.DeleteProperty(testNS, "test:s/test:a"); err != nil {
		t.Fatal(err)
	}
	if tree.DoesPropertyExist(testNS, "test:s/test:a") {
		t.Error("field still exists")
	}
	if !tree.DoesPropertyExist(testNS, "test:s/test:b") {
		t.Error("sibling was deleted")
	}

	if err := tree.DeleteProperty(testNS, "test:missing"); err != nil {
		t.Errorf("deleting a missing property: %v", err)
	}

	if err := tree.DeleteProperty(testNS, "test:s"); err != nil {
		t.Fatal(err)
	}
	if got := tree.Schemas(); len(got) != 0 {
		t.Errorf("empty schema was kept: %q", got)
	}
}

func TestDeleteLangSelector(t *testing.T) {
	tree := newTestTree(t)
	if err := tree.SetLocalizedText(testNS, "test:title", "", "x-default", "Title", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetLocalizedText(testNS, "test:title", "en", "en-US", "Title (US)", 0); err != nil {
		t.Fatal(err)
	}
	before := listTree(t, tree)

	for _, lang := range []string{"de", "en", "en-GB"} {
		path, err := ComposeLangSelector(testNS, "test:title", lang)
		if err != nil {
			t.Fatal(err)
		}
		if err := tree.DeleteProperty(testNS, path); err != nil {
			t.Fatalf("%s: %v", lang, err)
		}
		if d := cmp.Diff(before, listTree(t, tree)); d != "" {
			t.Fatalf("deleting %s changed the tree (-want +got):\n%s", lang, d)
		}
	}

	// reads still fall back to related languages
	val, _, err := tree.GetProperty(testNS, `test:title[?xml:lang="de"]`)
	if err != nil || val != "Title" {
		t.Errorf("fallback read: %q %v", val, err)
	}

	if err := tree.DeleteProperty(testNS, `test:title[?xml:lang="en-us"]`); err != nil {
		t.Fatal(err)
	}
	if n, _ := tree.CountArrayItems(testNS, "test:title"); n != 1 {
		t.Errorf("%d items left, want 1", n)
	}
}

func TestArrayItems(t *testing.T) {
	tree := newTestTree(t)
	for _, v := range []string{"a", "b", "c"} {
		if err := tree.AppendArrayItem(testNS, "test:list", ArrayIsOrdered, v, 0); err != nil {
			t.Fatal(err)
		}
	}

	ops := []struct {
		index int
		value string
		flags PropertyFlags
	}{
		{2, "B", 0},
		{1, "z", InsertBeforeItem},
		{4, "y", InsertAfterItem},
		{ArrayLastItem, "w", 0},
	}
	for _, op := range ops {
		if err := tree.SetArrayItem(testNS, "test:list", op.index, op.value, op.flags); err != nil {
			t.Fatalf("SetArrayItem(%d, %q): %v", op.index, op.value, err)
		}
	}
	if err := tree.DeleteArrayItem(testNS, "test:list", 1); err != nil {
		t.Fatal(err)
	}

	var got []string
	n, err := tree.CountArrayItems(testNS, "test:list")
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= n; i++ {
		val, _, err := tree.GetArrayItem(testNS, "test:list", i)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, val)
	}
	if d := cmp.Diff([]string{"a", "B", "c", "y", "w"}, got); d != "" {
		t.Errorf("unexpected items (-want +got):\n%s", d)
	}

	val, _, err := tree.GetArrayItem(testNS, "test:list", ArrayLastItem)
	if err != nil || val != "w" {
		t.Errorf("last item: %q %v", val, err)
	}
	if !tree.DoesArrayItemExist(testNS, "test:list", 5) || tree.DoesArrayItemExist(testNS, "test:list", 6) {
		t.Error("DoesArrayItemExist is wrong")
	}

	if err := tree.SetProperty(testNS, "test:simple", "v", 0); err != nil {
		t.Fatal(err)
	}
	errorCases := []struct {
		desc string
		err  error
		code ErrorCode
	}{
		{"index too large", tree.SetArrayItem(testNS, "test:list", 7, "x", 0), BadParam},
		{"index zero", tree.SetArrayItem(testNS, "test:list", 0, "x", 0), BadParam},
		{"both insert flags", tree.SetArrayItem(testNS, "test:list", 1, "x", InsertBeforeItem|InsertAfterItem), BadParam},
		{"missing array", tree.SetArrayItem(testNS, "test:missing", 1, "x", 0), BadParam},
		{"append without form", tree.AppendArrayItem(testNS, "test:missing", 0, "x", 0), BadParam},
		{"form mismatch", tree.AppendArrayItem(testNS, "test:list", ArrayIsAlternate, "x", 0), BadParam},
		{"invalid form", tree.AppendArrayItem(testNS, "test:other", ValueIsStruct, "x", 0), BadParam},
		{"append to simple", tree.AppendArrayItem(testNS, "test:simple", ValueIsArray, "x", 0), BadValue},
	}
	for _, tc := range errorCases {
		if CodeOf(tc.err) != tc.code {
			t.Errorf("%s: got %v, want %s", tc.desc, tc.err, tc.code)
		}
	}

	if n, err := tree.CountArrayItems(testNS, "test:missing"); n != 0 || err != nil {
		t.Errorf("CountArrayItems of missing array: %d %v", n, err)
	}
	if _, err := tree.CountArrayItems(testNS, "test:simple"); CodeOf(err) != BadValue {
		t.Errorf("CountArrayItems of simple property: %v", err)
	}
}

func TestStructFields(t *testing.T) {
	tree := newTestTree(t)

	if err := tree.SetStructField(testNS, "test:s", XMPNamespace, "Label", "red", 0); err != nil {
		t.Fatal(err)
	}
	val, flags, err := tree.GetStructField(testNS, "test:s", XMPNamespace, "Label")
	if err != nil || val != "red" || flags != 0 {
		t.Errorf("GetStructField: %q %s %v", val, flags, err)
	}
	if !tree.DoesStructFieldExist(testNS, "test:s", XMPNamespace, "Label") {
		t.Error("field does not exist")
	}
	if _, _, err := tree.GetStructField(testNS, "test:s", XMPNamespace, "Rating"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing field: %v", err)
	}

	if err := tree.DeleteStructField(testNS, "test:s", XMPNamespace, "Label"); err != nil {
		t.Fatal(err)
	}
	if tree.DoesStructFieldExist(testNS, "test:s", XMPNamespace, "Label") {
		t.Error("field still exists")
	}
	_, flags, err = tree.GetProperty(testNS, "test:s")
	if err != nil || flags != ValueIsStruct {
		t.Errorf("empty struct: %s %v", flags, err)
	}

	err = tree.SetStructField(testNS, "test:s", "http://ns.seehuhn.de/test/unknown/", "x", "v", 0)
	if CodeOf(err) != BadParam {
		t.Errorf("unknown field namespace: %v", err)
	}
}

func TestQualifiers(t *testing.T) {
	tree := newTestTree(t)

	err := tree.SetQualifier(testNS, "test:p", testNS, "q", "v", 0)
	if CodeOf(err) != BadParam {
		t.Errorf("qualifier of missing property: %v", err)
	}

	if err := tree.SetProperty(testNS, "test:p", "value", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetQualifier(testNS, "test:p", testNS, "q", "1", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetProperty(testNS, "test:p/?rdf:type", "http://example.com/T", ValueIsURI); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetQualifier(testNS, "test:p", XMLNamespace, "lang", "en", 0); err != nil {
		t.Fatal(err)
	}

	it, err := tree.Iterate(testNS, "test:p", IncludeAll)
	if err != nil {
		t.Fatal(err)
	}
	var got []Item
	for item := range it.All() {
		got = append(got, item)
	}
	want := []Item{
		prop("test:p", "value", HasQualifiers|HasLang|HasType),
		prop("test:p/?xml:lang", "en", IsQualifier),
		prop("test:p/?rdf:type", "http://example.com/T", IsQualifier|ValueIsURI),
		prop("test:p/?test:q", "1", IsQualifier),
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected qualifiers (-want +got):\n%s", d)
	}

	val, flags, err := tree.GetQualifier(testNS, "test:p", XMLNamespace, "lang")
	if err != nil || val != "en" || flags != IsQualifier {
		t.Errorf("GetQualifier: %q %s %v", val, flags, err)
	}

	if err := tree.SetQualifier(testNS, "test:p", testNS, "q", "", 0); err != nil {
		t.Fatal(err)
	}
	if tree.DoesQualifierExist(testNS, "test:p", testNS, "q") {
		t.Error("empty value did not delete the qualifier")
	}
	if err := tree.DeleteQualifier(testNS, "test:p", RDFNamespace, "type"); err != nil {
		t.Fatal(err)
	}
	_, flags, err = tree.GetProperty(testNS, "test:p")
	if err != nil || flags != HasQualifiers|HasLang {
		t.Errorf("flags after deleting qualifiers: %s %v", flags, err)
	}

	err = tree.SetQualifier(testNS, "test:p", RDFNamespace, "value", "x", 0)
	if CodeOf(err) != BadParam {
		t.Errorf("rdf:value as qualifier: %v", err)
	}
}

func TestAliasAccess(t *testing.T) {
	const aliasNS = "http://ns.seehuhn.de/test/alias/#"
	if _, err := RegisterNamespace(aliasNS, "alias"); err != nil {
		t.Fatal(err)
	}
	aliases := []struct {
		name, actual string
		form         PropertyFlags
	}{
		{"first", "list", ArrayIsOrdered},
		{"heading", "title", ArrayIsAltText},
		{"plain", "plainText", 0},
	}
	for _, a := range aliases {
		if err := RegisterAlias(aliasNS, a.name, testNS, a.actual, a.form); err != nil {
			t.Fatal(err)
		}
		defer DeleteAlias(aliasNS, a.name)
	}

	tree := newTestTree(t)
	if err := tree.SetProperty(aliasNS, "alias:first", "one", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetProperty(aliasNS, "heading", "Hello", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetProperty(testNS, "test:plainText", "v", 0); err != nil {
		t.Fatal(err)
	}

	want := []Item{
		testSchema,
		prop("test:list", "", ValueIsArray|ArrayIsOrdered|HasAliases),
		prop("test:list[1]", "one", 0),
		prop("test:title", "", LangAltForm|HasAliases),
		prop("test:title[1]", "Hello", HasQualifiers|HasLang),
		prop("test:title[1]/?xml:lang", "x-default", IsQualifier),
		prop("test:plainText", "v", HasAliases),
	}
	if d := cmp.Diff(want, listTree(t, tree)); d != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", d)
	}

	val, _, err := tree.GetProperty(aliasNS, "alias:plain")
	if err != nil || val != "v" {
		t.Errorf("read through alias: %q %v", val, err)
	}
	if err := tree.DeleteProperty(aliasNS, "alias:first"); err != nil {
		t.Fatal(err)
	}
	if n, _ := tree.CountArrayItems(testNS, "test:list"); n != 0 {
		t.Errorf("array item not deleted through alias")
	}

	a, ok := ResolveAlias(aliasNS, "heading")
	if !ok || a != (Alias{Namespace: testNS, Name: "title", Form: LangAltForm}) {
		t.Errorf("ResolveAlias: %v %t", a, ok)
	}
}

func TestClosedSession(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatal(err)
	}
	tree, err := s.NewTree()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	if _, err := s.NewTree(); CodeOf(err) != BadObject {
		t.Errorf("NewTree: %v", err)
	}
	if err := tree.SetProperty(testNS, "test:p", "v", 0); CodeOf(err) != BadObject {
		t.Errorf("SetProperty: %v", err)
	}
	if _, err := tree.Serialize(nil); CodeOf(err) != BadObject {
		t.Errorf("Serialize: %v", err)
	}

	var nilTree *Tree
	if _, _, err := nilTree.GetProperty(testNS, "test:p"); CodeOf(err) != BadObject {
		t.Errorf("nil tree: %v", err)
	}
}
