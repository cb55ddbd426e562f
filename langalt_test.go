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
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func TestLangAlt(t *testing.T) {
	tree := newTestTree(t)
	setup := []func() error{
		func() error { return tree.AppendArrayItem(testNS, "test:title", LangAltForm, "plain", 0) },
		func() error { return tree.AppendArrayItem(testNS, "test:title", 0, "Hallo", 0) },
		func() error { return tree.SetQualifier(testNS, "test:title[2]", XMLNamespace, "lang", "de", 0) },
		func() error { return tree.AppendArrayItem(testNS, "test:title", 0, "Dup", 0) },
		func() error { return tree.SetQualifier(testNS, "test:title[3]", XMLNamespace, "lang", "DE", 0) },
		func() error { return tree.AppendArrayItem(testNS, "test:title", 0, "no language", 0) },
	}
	for _, step := range setup {
		if err := step(); err != nil {
			t.Fatal(err)
		}
	}

	a, err := NewLangAlt(tree, testNS, "test:title")
	if err != nil {
		t.Fatal(err)
	}
	want := []LangEntry{{"x-default", "plain"}, {"de", "Hallo"}}
	if d := cmp.Diff(want, a.Entries()); d != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", d)
	}
	if v, ok := a.Get("DE"); !ok || v != "Hallo" {
		t.Errorf("Get(DE) = %q %t", v, ok)
	}
	if a.Default() != "plain" {
		t.Errorf("Default() = %q", a.Default())
	}
	if a.Contains("fr") {
		t.Error("unexpected language fr")
	}

	steps := []struct {
		desc string
		op   func() error
		want []LangEntry
	}{
		{"change", func() error { return a.Set("de", "Servus") },
			[]LangEntry{{"x-default", "plain"}, {"de", "Servus"}}},
		{"add", func() error { return a.Add("fr", "Bonjour") },
			[]LangEntry{{"x-default", "plain"}, {"de", "Servus"}, {"fr", "Bonjour"}}},
		{"remove by empty value", func() error { return a.Set("fr", "") },
			[]LangEntry{{"x-default", "plain"}, {"de", "Servus"}}},
		{"set tag", func() error { return a.SetTag(language.English, "Hi") },
			[]LangEntry{{"x-default", "plain"}, {"de", "Servus"}, {"en", "Hi"}}},
		{"remove", func() error { return a.Remove("de") },
			[]LangEntry{{"x-default", "plain"}, {"en", "Hi"}}},
		{"remove missing", func() error { return a.Remove("it") },
			[]LangEntry{{"x-default", "plain"}, {"en", "Hi"}}},
		{"set default", func() error { return a.SetDefault("Default") },
			[]LangEntry{{"x-default", "Default"}, {"en", "Hi"}}},
	}
	for _, s := range steps {
		if err := s.op(); err != nil {
			t.Fatalf("%s: %v", s.desc, err)
		}
		if d := cmp.Diff(s.want, a.Entries()); d != "" {
			t.Fatalf("%s: unexpected entries (-want +got):\n%s", s.desc, d)
		}
	}

	wantTree := []LangEntry{{"x-default", "Default"}, {"DE", "Dup"}, {"", "no language"}, {"en", "Hi"}}
	if d := cmp.Diff(wantTree, langItems(t, tree)); d != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", d)
	}

	// The hidden duplicate becomes visible once the first "de" entry is gone.
	if err := a.Reload(); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"x-default", "DE", "en"}, a.Languages()); d != "" {
		t.Errorf("unexpected languages (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"Default", "Dup", "Hi"}, a.Values()); d != "" {
		t.Errorf("unexpected values (-want +got):\n%s", d)
	}
	if v, ok := a.GetTag(language.German); !ok || v != "Dup" {
		t.Errorf("GetTag(de) = %q %t", v, ok)
	}

	if err := a.Add("en", "again"); CodeOf(err) != BadParam {
		t.Errorf("duplicate Add: %v", err)
	}
	if err := a.Set(" ", "x"); CodeOf(err) != BadParam {
		t.Errorf("empty language: %v", err)
	}

	if err := a.Clear(); err != nil {
		t.Fatal(err)
	}
	if a.Len() != 0 || tree.DoesPropertyExist(testNS, "test:title") {
		t.Error("Clear did not delete the array")
	}
}

func TestLangAltCreate(t *testing.T) {
	tree := newTestTree(t)
	a, err := NewLangAlt(tree, testNS, "test:title")
	if err != nil {
		t.Fatal(err)
	}
	if err := a.SetDefault("Title"); err != nil {
		t.Fatal(err)
	}
	if err := a.Set("en-GB", "Title (GB)"); err != nil {
		t.Fatal(err)
	}

	_, flags, err := tree.GetProperty(testNS, "test:title")
	if err != nil || flags != LangAltForm {
		t.Errorf("array flags: %s %v", flags, err)
	}
	lang, value, err := tree.GetLocalizedText(testNS, "test:title", "en", "en-US")
	if err != nil || lang != "en-GB" || value != "Title (GB)" {
		t.Errorf("GetLocalizedText: %s %q %v", lang, value, err)
	}

	got := map[string]string{}
	for lang, text := range a.All() {
		got[lang] = text
	}
	want := map[string]string{"x-default": "Title", "en-GB": "Title (GB)"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected entries (-want +got):\n%s", d)
	}
}

func TestLangAltSetKeepsQualifiers(t *testing.T) {
	tree := newTestTree(t)
	if err := tree.AppendArrayItem(testNS, "test:title", LangAltForm, "plain", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.AppendArrayItem(testNS, "test:title", 0, "Hallo", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetQualifier(testNS, "test:title[2]", XMLNamespace, "lang", "DE-at", 0); err != nil {
		t.Fatal(err)
	}

	a, err := NewLangAlt(tree, testNS, "test:title")
	if err != nil {
		t.Fatal(err)
	}
	if err := a.SetDefault("changed"); err != nil {
		t.Fatal(err)
	}
	if err := a.Set("de-AT", "Servus"); err != nil {
		t.Fatal(err)
	}

	want := []Item{
		testSchema,
		prop("test:title", "", ValueIsArray|ArrayIsOrdered|ArrayIsAlternate),
		prop("test:title[1]", "changed", 0),
		prop("test:title[2]", "Servus", HasQualifiers|HasLang),
		prop("test:title[2]/?xml:lang", "DE-at", IsQualifier),
	}
	if d := cmp.Diff(want, listTree(t, tree)); d != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", d)
	}

	// new entries carry their language
	if err := a.Add("fr", "Salut"); err != nil {
		t.Fatal(err)
	}
	lang, _, err := tree.GetQualifier(testNS, "test:title[3]", XMLNamespace, "lang")
	if err != nil || lang != "fr" {
		t.Errorf("xml:lang of new item: %q %v", lang, err)
	}
}
