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
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDump(t *testing.T) {
	tree := newTestTree(t)
	tree.About = "uuid:1"
	if err := tree.SetProperty(testNS, "test:p", "v", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetQualifier(testNS, "test:p", XMLNamespace, "lang", "en", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.AppendArrayItem(testNS, "test:arr", ArrayIsUnordered, "x", 0); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetStructField(testNS, "test:s", testNS, "f", "http://example.com/", ValueIsURI); err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	if err := tree.Dump(buf); err != nil {
		t.Fatal(err)
	}
	want := `XMP tree with 1 schemas, about "uuid:1"

  http://ns.seehuhn.de/test/#  test:
    test:p = "v"  (HasQual|HasLang)
        ? xml:lang = "en"  (IsQual)
    test:arr  (Array)
      [1] = "x"
    test:s  (Struct)
      test:f = "http://example.com/"  (URI)
`
	if d := cmp.Diff(want, buf.String()); d != "" {
		t.Errorf("unexpected dump (-want +got):\n%s", d)
	}
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestDumpErrors(t *testing.T) {
	tree := newTestTree(t)
	if err := tree.Dump(failWriter{}); !errors.Is(err, errWrite) {
		t.Errorf("Dump: %v", err)
	}
	if err := DumpNamespaces(failWriter{}); !errors.Is(err, errWrite) {
		t.Errorf("DumpNamespaces: %v", err)
	}

	var nilTree *Tree
	if err := nilTree.Dump(&bytes.Buffer{}); CodeOf(err) != BadObject {
		t.Errorf("nil tree: %v", err)
	}
}

func TestDumpNamespaces(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := DumpNamespaces(buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	lines := []string{
		fmt.Sprintf("%-14s %s\n", "dc:", DCNamespace),
		fmt.Sprintf("%-14s %s\n", "rdf:", RDFNamespace),
		fmt.Sprintf("%-14s %s\n", "test:", testNS),
	}
	last := -1
	for _, line := range lines {
		pos := strings.Index(out, line)
		if pos < 0 {
			t.Errorf("missing line %q", line)
			continue
		}
		if pos < last {
			t.Errorf("line %q is out of order", line)
		}
		last = pos
	}
}

func TestDumpAliases(t *testing.T) {
	if _, err := RegisterNamespace(aliasTestNS, "alias"); err != nil {
		t.Fatal(err)
	}
	if err := RegisterAlias(aliasTestNS, "dumped", testNS, "list", ArrayIsOrdered); err != nil {
		t.Fatal(err)
	}
	defer DeleteAlias(aliasTestNS, "dumped")
	if err := RegisterAlias(aliasTestNS, "dumpedPlain", testNS, "plain", 0); err != nil {
		t.Fatal(err)
	}
	defer DeleteAlias(aliasTestNS, "dumpedPlain")

	buf := &bytes.Buffer{}
	if err := DumpAliases(buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, line := range []string{
		fmt.Sprintf("%-24s => %s  (Ordered|Array)\n", "alias:dumped", "test:list"),
		fmt.Sprintf("%-24s => %s\n", "alias:dumpedPlain", "test:plain"),
	} {
		if !strings.Contains(out, line) {
			t.Errorf("missing line %q in\n%s", line, out)
		}
	}
}

func TestFlagsString(t *testing.T) {
	cases := []struct {
		f    PropertyFlags
		want string
	}{
		{0, "0"},
		{ValueIsURI, "URI"},
		{LangAltForm, "AltText|Alt|Ordered|Array"},
		{HasQualifiers | HasLang | IsStable, "HasQual|HasLang|Stable"},
		{SchemaNode | 0x1, "Schema|0x1"},
	}
	for _, tc := range cases {
		if got := tc.f.String(); got != tc.want {
			t.Errorf("%#x: got %q, want %q", uint32(tc.f), got, tc.want)
		}
	}

	if got := ArrayIsAltText.normalizeForm(); got != LangAltForm {
		t.Errorf("normalizeForm: got %s", got)
	}
	if !LangAltForm.IsArray() || !LangAltForm.IsAltText() || LangAltForm.IsSimple() || LangAltForm.IsStruct() {
		t.Error("wrong predicates for LangAltForm")
	}
}
