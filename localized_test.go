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

// langItems returns the language and value of all items of test:title.
func langItems(t *testing.T, tree *Tree) []LangEntry {
	t.Helper()
	n, err := tree.CountArrayItems(testNS, "test:title")
	if err != nil {
		t.Fatal(err)
	}
	var res []LangEntry
	for i := 1; i <= n; i++ {
		path, _ := ComposeArrayItemPath(testNS, "test:title", i)
		val, _, err := tree.GetProperty(testNS, path)
		if err != nil {
			t.Fatal(err)
		}
		lang, _, _ := tree.GetQualifier(testNS, path, XMLNamespace, "lang")
		res = append(res, LangEntry{Lang: lang, Value: val})
	}
	return res
}

func TestSetLocalizedText(t *testing.T) {
	tree := newTestTree(t)

	steps := []struct {
		generic, specific, value string
		want                     []LangEntry
	}{
		{"", "en-US", "Hello", []LangEntry{
			{"x-default", "Hello"}, {"en-US", "Hello"},
		}},
		{"en", "en-US", "Howdy", []LangEntry{
			{"x-default", "Howdy"}, {"en-US", "Howdy"},
		}},
		{"de", "de-DE", "Hallo", []LangEntry{
			{"x-default", "Howdy"}, {"en-US", "Howdy"}, {"de-DE", "Hallo"},
		}},
		{"en", "en-GB", "Hiya", []LangEntry{
			{"x-default", "Hiya"}, {"en-US", "Hiya"}, {"de-DE", "Hallo"},
		}},
		{"", "x-default", "Default", []LangEntry{
			{"x-default", "Default"}, {"en-US", "Default"}, {"de-DE", "Hallo"},
		}},
		{"", "EN-us", "Hi", []LangEntry{
			{"x-default", "Hi"}, {"en-US", "Hi"}, {"de-DE", "Hallo"},
		}},
		{"de", "de-AT", "Servus", []LangEntry{
			{"x-default", "Hi"}, {"en-US", "Hi"}, {"de-DE", "Servus"},
		}},
	}
	for _, s := range steps {
		err := tree.SetLocalizedText(testNS, "test:title", s.generic, s.specific, s.value, 0)
		if err != nil {
			t.Fatalf("%s/%s: %v", s.generic, s.specific, err)
		}
		if d := cmp.Diff(s.want, langItems(t, tree)); d != "" {
			t.Fatalf("%s/%s: unexpected items (-want +got):\n%s", s.generic, s.specific, d)
		}
	}

	_, flags, err := tree.GetProperty(testNS, "test:title")
	if err != nil || flags != LangAltForm {
		t.Errorf("array flags: %s %v", flags, err)
	}
}

func TestSetLocalizedTextMultipleGeneric(t *testing.T) {
	tree := newTestTree(t)
	for _, lang := range []string{"en-US", "en-GB"} {
		path, _ := ComposeLangSelector(testNS, "test:title", lang)
		if err := tree.SetProperty(testNS, path, lang, 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := tree.SetLocalizedText(testNS, "test:title", "en", "en-AU", "G'day", 0); err != nil {
		t.Fatal(err)
	}
	want := []LangEntry{{"en-US", "en-US"}, {"en-GB", "en-GB"}, {"en-AU", "G'day"}}
	if d := cmp.Diff(want, langItems(t, tree)); d != "" {
		t.Errorf("unexpected items (-want +got):\n%s", d)
	}
}

func TestGetLocalizedText(t *testing.T) {
	tree := newTestTree(t)
	for _, e := range []LangEntry{{"x-default", "Default"}, {"en-US", "Color"}, {"en-GB", "Colour"}, {"de", "Farbe"}} {
		path, _ := ComposeLangSelector(testNS, "test:title", e.Lang)
		if err := tree.SetProperty(testNS, path, e.Value, 0); err != nil {
			t.Fatal(err)
		}
	}

	cases := []struct {
		generic, specific string
		lang, value       string
	}{
		{"en", "en-GB", "en-GB", "Colour"},
		{"en", "en-gb", "en-GB", "Colour"},
		{"en", "en-AU", "en-US", "Color"},
		{"", "de", "de", "Farbe"},
		{"de", "de-CH", "de", "Farbe"},
		{"", "fr", "x-default", "Default"},
		{"fr", "fr-FR", "x-default", "Default"},
	}
	for _, tc := range cases {
		lang, value, err := tree.GetLocalizedText(testNS, "test:title", tc.generic, tc.specific)
		if err != nil {
			t.Errorf("%s/%s: %v", tc.generic, tc.specific, err)
			continue
		}
		if lang != tc.lang || value != tc.value {
			t.Errorf("%s/%s: got %s %q, want %s %q",
				tc.generic, tc.specific, lang, value, tc.lang, tc.value)
		}
	}

	if _, _, err := tree.GetLocalizedText(testNS, "test:missing", "", "en"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing array: %v", err)
	}
	if _, _, err := tree.GetLocalizedText(testNS, "test:title", "", ""); CodeOf(err) != BadParam {
		t.Errorf("empty language: %v", err)
	}
}

func TestGetLocalizedTextNoDefault(t *testing.T) {
	tree := newTestTree(t)
	path, _ := ComposeLangSelector(testNS, "test:title", "de")
	if err := tree.SetProperty(testNS, path, "Farbe", 0); err != nil {
		t.Fatal(err)
	}
	if _, _, err := tree.GetLocalizedText(testNS, "test:title", "fr", "fr-FR"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestLocalizedTextErrors(t *testing.T) {
	tree := newTestTree(t)
	if err := tree.SetProperty(testNS, "test:simple", "v", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.AppendArrayItem(testNS, "test:bag", ArrayIsUnordered, "v", 0); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		desc     string
		name     string
		lang     string
		value    string
		flags    PropertyFlags
		wantCode ErrorCode
	}{
		{"simple property", "test:simple", "en", "x", 0, BadValue},
		{"unordered array", "test:bag", "en", "x", 0, BadValue},
		{"empty language", "test:title", "", "x", 0, BadParam},
		{"malformed language", "test:title", "not a tag!", "x", 0, BadParam},
		{"composite value", "test:title", "en", "", ValueIsStruct, BadParam},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tree.SetLocalizedText(testNS, tc.name, "", tc.lang, tc.value, tc.flags)
			if CodeOf(err) != tc.wantCode {
				t.Errorf("got %v, want %s", err, tc.wantCode)
			}
		})
	}
	if tree.DoesPropertyExist(testNS, "test:title") {
		t.Error("failed operations created test:title")
	}

	_, _, err := tree.GetLocalizedText(testNS, "test:bag", "", "en")
	if CodeOf(err) != BadValue {
		t.Errorf("GetLocalizedText on a bag: %v", err)
	}
}
