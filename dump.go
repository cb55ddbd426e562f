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
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

// Dump writes a human-readable listing of the tree to w.
// Every node is shown on one line, with its value and its flags.
func (t *Tree) Dump(w io.Writer) error {
	if err := t.check("Dump"); err != nil {
		return err
	}
	d := &dumper{w: w}
	d.printf("XMP tree with %d schemas, about %q\n", len(t.schemas), t.About)
	for _, s := range t.schemas {
		pfx, _ := GetNamespacePrefix(s.name.Space)
		d.printf("\n  %s  %s:\n", s.name.Space, pfx)
		for _, n := range s.children {
			d.node(n, 2)
		}
	}
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func (d *dumper) node(n *node, depth int) {
	var name string
	switch {
	case n.isQualifier():
		name = "? " + qualifiedName(n)
	case n.isItem():
		name = "[" + strconv.Itoa(itemIndex(n)) + "]"
	default:
		name = qualifiedName(n)
	}
	indent := strings.Repeat("  ", depth)
	if n.isSimple() {
		d.printf("%s%s = %q", indent, name, n.value)
	} else {
		d.printf("%s%s", indent, name)
	}
	if f := flagsOf(n); f != 0 {
		d.printf("  (%s)", f)
	}
	d.printf("\n")

	for _, q := range n.qualifiers {
		d.node(q, depth+2)
	}
	for _, c := range n.children {
		d.node(c, depth+1)
	}
}

// DumpNamespaces writes the registered namespaces to w, sorted by prefix.
func DumpNamespaces(w io.Writer) error {
	nsToPrefix := Namespaces()
	byPrefix := make(map[string]string, len(nsToPrefix))
	for ns, pfx := range nsToPrefix {
		byPrefix[pfx] = ns
	}
	prefixes := maps.Keys(byPrefix)
	sort.Strings(prefixes)

	d := &dumper{w: w}
	for _, pfx := range prefixes {
		d.printf("%-14s %s\n", pfx+":", byPrefix[pfx])
	}
	return d.err
}

// DumpAliases writes the registered aliases to w.
func DumpAliases(w io.Writer) error {
	reg.mu.RLock()
	var lines []string
	for k, a := range reg.aliases {
		from := reg.nsToPrefix[k.ns] + ":" + k.name
		to := reg.nsToPrefix[a.Namespace] + ":" + a.Name
		line := fmt.Sprintf("%-24s => %s", from, to)
		if a.Form != 0 {
			line += "  (" + a.Form.String() + ")"
		}
		lines = append(lines, line)
	}
	reg.mu.RUnlock()
	sort.Strings(lines)

	d := &dumper{w: w}
	for _, line := range lines {
		d.printf("%s\n", line)
	}
	return d.err
}
