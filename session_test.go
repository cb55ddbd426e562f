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
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSessionLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	s, err := NewSession(WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	if s.Logger() != log {
		t.Error("wrong logger")
	}

	in := head + `<rdf:Description rdf:about=""><test:p>v</test:p></rdf:Description>` + foot
	tree, err := s.Parse(strings.NewReader(in), 0)
	if err != nil {
		t.Fatal(err)
	}
	if val, _, err := tree.GetProperty(testNS, "test:p"); err != nil || val != "v" {
		t.Errorf("test:p = %q %v", val, err)
	}
	if _, err := tree.Serialize(nil); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	var msgs []string
	for _, e := range logs.All() {
		msgs = append(msgs, e.Message)
	}
	want := []string{"session started", "parsed packet", "serialized tree", "session closed"}
	if d := cmp.Diff(want, msgs); d != "" {
		t.Errorf("unexpected log messages (-want +got):\n%s", d)
	}

	parsed := logs.FilterMessage("parsed packet").All()
	if len(parsed) == 1 {
		fields := parsed[0].ContextMap()
		if fields["schemas"] != int64(1) || fields["bytes"] != int64(len(in)) {
			t.Errorf("unexpected fields %v", fields)
		}
	}
	serialized := logs.FilterMessage("serialized tree").All()
	if len(serialized) == 1 && serialized[0].ContextMap()["padding"] != int64(defaultPadding) {
		t.Errorf("unexpected fields %v", serialized[0].ContextMap())
	}
}

func TestSessionParseErrors(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.Parse(iotest.ErrReader(errWrite), 0); CodeOf(err) != Unavailable {
		t.Errorf("read error: %v", err)
	}
	if _, err := s.Parse(strings.NewReader("<rdf:RDF"), 0); CodeOf(err) != BadParam {
		t.Errorf("malformed input: %v", err)
	}

	in := head + `<rdf:Description rdf:about=""/>` + foot
	if _, err := s.Parse(strings.NewReader(in), RequireXMPMeta); CodeOf(err) != BadParam {
		t.Errorf("missing x:xmpmeta: %v", err)
	}
}

func TestSessionStandardAliases(t *testing.T) {
	s, err := NewSession(WithStandardAliases())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, ok := ResolveAlias(XMPNamespace, "Title"); !ok {
		t.Error("xmp:Title is not an alias")
	}

	tree, err := s.NewTree()
	if err != nil {
		t.Fatal(err)
	}
	if err := tree.SetProperty(PDFNamespace, "pdf:Title", "A Title", 0); err != nil {
		t.Fatal(err)
	}
	lang, val, err := tree.GetLocalizedText(DCNamespace, "dc:title", "", "x-default")
	if err != nil || lang != "x-default" || val != "A Title" {
		t.Errorf("dc:title: %s %q %v", lang, val, err)
	}
}
