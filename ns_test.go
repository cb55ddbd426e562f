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

import "testing"

// TestDefaultPrefix ensures that the prefixes in the defaultPrefix table are
// unique and valid.
func TestDefaultPrefix(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range defaultPrefix {
		if seen[p] {
			t.Errorf("prefix %q is not unique", p)
		}
		if !isValidPrefix(p) {
			t.Errorf("prefix %q is invalid", p)
		}
		seen[p] = true
	}
}

func TestGetPrefix(t *testing.T) {
	m := map[string]string{
		"a": "http://ns.seehuhn.de/test/a/#",
	}
	cases := []struct {
		ns, suggested, want string
	}{
		{"http://ns.seehuhn.de/test/b/#", "", "b"},
		{"http://ns.seehuhn.de/test/other/a/#", "", "a_1"},
		{"http://ns.seehuhn.de/test/b/#", "c", "c"},
		{"http://ns.seehuhn.de/test/b/#", "a", "a_1"},
		{"http://ns.seehuhn.de/test/1/", "", "_"},
		{"http://ns.seehuhn.de/xmlstuff/", "", "_xmlstuff"},
		{"urn:example:thing", "", "thing"},
	}
	for _, tc := range cases {
		if got := getPrefix(m, tc.ns, tc.suggested); got != tc.want {
			t.Errorf("getPrefix(%q, %q) = %q, want %q", tc.ns, tc.suggested, got, tc.want)
		}
	}
}

func TestRegisterNamespace(t *testing.T) {
	const (
		ns1 = "http://ns.seehuhn.de/test/register/1/"
		ns2 = "http://ns.seehuhn.de/test/register/2/"
	)
	defer DeleteNamespace(ns1)
	defer DeleteNamespace(ns2)

	pfx, err := RegisterNamespace(ns1, "reg:")
	if err != nil {
		t.Fatal(err)
	}
	if pfx != "reg" {
		t.Errorf("got prefix %q, want %q", pfx, "reg")
	}

	// registering again returns the existing prefix
	pfx, err = RegisterNamespace(ns1, "other")
	if err != nil {
		t.Fatal(err)
	}
	if pfx != "reg" {
		t.Errorf("got prefix %q, want %q", pfx, "reg")
	}

	// a prefix collision leads to a new prefix
	pfx, err = RegisterNamespace(ns2, "reg")
	if err != nil {
		t.Fatal(err)
	}
	if pfx != "reg_1" {
		t.Errorf("got prefix %q, want %q", pfx, "reg_1")
	}

	if uri, ok := GetNamespaceURI("reg_1:"); !ok || uri != ns2 {
		t.Errorf("GetNamespaceURI: got %q %t", uri, ok)
	}
	if got := Namespaces()[ns1]; got != "reg" {
		t.Errorf("Namespaces: got %q for %s", got, ns1)
	}

	DeleteNamespace(ns2)
	if _, ok := GetNamespacePrefix(ns2); ok {
		t.Error("namespace still registered after DeleteNamespace")
	}
	if _, ok := GetNamespaceURI("reg_1"); ok {
		t.Error("prefix still registered after DeleteNamespace")
	}
}

func TestRegisterNamespaceErrors(t *testing.T) {
	cases := []struct {
		uri, prefix string
	}{
		{"", "empty"},
		{"http://ns.seehuhn.de/test/bad/", ""},
		{"http://ns.seehuhn.de/test/bad/", "a:b"},
		{"http://ns.seehuhn.de/test/bad/", "1a"},
		{"http://ns.seehuhn.de/test/bad/", "a b"},
	}
	for _, tc := range cases {
		_, err := RegisterNamespace(tc.uri, tc.prefix)
		if CodeOf(err) != BadParam {
			t.Errorf("RegisterNamespace(%q, %q): got %v, want BadParam", tc.uri, tc.prefix, err)
		}
	}
}

func TestStandardNamespaces(t *testing.T) {
	for ns, pfx := range defaultPrefix {
		got, ok := GetNamespacePrefix(ns)
		if !ok || got != pfx {
			t.Errorf("GetNamespacePrefix(%q) = %q %t, want %q", ns, got, ok, pfx)
		}
	}
}
