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


package basic

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/xmpmeta"
	"seehuhn.de/go/xmpmeta/types"
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

func TestBasicText(t *testing.T) {
	tree := newTree(t)
	b, err := New(tree)
	if err != nil {
		t.Fatal(err)
	}

	fields := []struct {
		name string
		set  func(string) error
		get  func() string
	}{
		{"BaseURL", b.SetBaseURL, b.BaseURL},
		{"CreatorTool", b.SetCreatorTool, b.CreatorTool},
		{"Label", b.SetLabel, b.Label},
		{"Nickname", b.SetNickname, b.Nickname},
	}
	for _, f := range fields {
		if err := f.set("value of " + f.name); err != nil {
			t.Fatal(err)
		}
		if got := f.get(); got != "value of "+f.name {
			t.Errorf("%s = %q", f.name, got)
		}
		val, _, err := tree.GetProperty(xmpmeta.XMPNamespace, "xmp:"+f.name)
		if err != nil || val != "value of "+f.name {
			t.Errorf("xmp:%s = %q %v", f.name, val, err)
		}
		if err := f.set(""); err != nil {
			t.Fatal(err)
		}
		if tree.DoesPropertyExist(xmpmeta.XMPNamespace, f.name) {
			t.Errorf("xmp:%s not deleted", f.name)
		}
	}
}

func TestBasicDates(t *testing.T) {
	tree := newTree(t)
	b, err := New(tree)
	if err != nil {
		t.Fatal(err)
	}

	d := time.Date(2024, 3, 14, 15, 9, 26, 0, time.FixedZone("", -5*3600))
	dates := []struct {
		name string
		set  func(time.Time) error
		get  func() (time.Time, error)
	}{
		{"CreateDate", b.SetCreateDate, b.CreateDate},
		{"MetadataDate", b.SetMetadataDate, b.MetadataDate},
		{"ModifyDate", b.SetModifyDate, b.ModifyDate},
	}
	for _, f := range dates {
		if got, err := f.get(); err != nil || !got.IsZero() {
			t.Errorf("%s before setting: %s %v", f.name, got, err)
		}
		if err := f.set(d); err != nil {
			t.Fatal(err)
		}
		val, _, _ := tree.GetProperty(xmpmeta.XMPNamespace, f.name)
		if val != "2024-03-14T15:09:26-05:00" {
			t.Errorf("xmp:%s stored as %q", f.name, val)
		}
		if got, err := f.get(); err != nil || !got.Equal(d) {
			t.Errorf("%s = %s %v", f.name, got, err)
		}
	}

	if err := tree.SetProperty(xmpmeta.XMPNamespace, "ModifyDate", "2024-03", 0); err != nil {
		t.Fatal(err)
	}
	got, err := b.ModifyDate()
	if err != nil || !got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("partial date: %s %v", got, err)
	}
}

func TestRating(t *testing.T) {
	tree := newTree(t)
	b, err := New(tree)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, err := b.Rating(); ok || err != nil {
		t.Errorf("unset rating: %t %v", ok, err)
	}
	for _, r := range []float64{-1, 0, 2.5, 5} {
		if err := b.SetRating(r); err != nil {
			t.Errorf("SetRating(%g): %v", r, err)
			continue
		}
		if got, ok, err := b.Rating(); got != r || !ok || err != nil {
			t.Errorf("Rating() = %g %t %v, want %g", got, ok, err, r)
		}
	}
	for _, r := range []float64{-0.5, 5.5, -2} {
		if err := b.SetRating(r); xmpmeta.CodeOf(err) != xmpmeta.BadParam {
			t.Errorf("SetRating(%g): %v", r, err)
		}
	}
	if err := b.DeleteRating(); err != nil {
		t.Fatal(err)
	}
	if tree.DoesPropertyExist(xmpmeta.XMPNamespace, "Rating") {
		t.Error("rating not deleted")
	}
}

func TestIdentifier(t *testing.T) {
	tree := newTree(t)
	b, err := New(tree)
	if err != nil {
		t.Fatal(err)
	}
	ids, err := b.Identifier()
	if err != nil {
		t.Fatal(err)
	}
	in := []Identifier{
		{Value: "978-3-16-148410-0", Scheme: "ISBN"},
		{Value: "local-42"},
	}
	for _, id := range in {
		if err := ids.Add(id); err != nil {
			t.Fatal(err)
		}
	}

	scheme, _, err := tree.GetQualifier(xmpmeta.XMPNamespace, "xmp:Identifier[1]", xmpmeta.IdqNamespace, "Scheme")
	if err != nil || scheme != "ISBN" {
		t.Errorf("xmpidq:Scheme = %q %v", scheme, err)
	}
	if tree.DoesQualifierExist(xmpmeta.XMPNamespace, "xmp:Identifier[2]", xmpmeta.IdqNamespace, "Scheme") {
		t.Error("empty scheme was written")
	}

	ids2, err := b.Identifier()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, ids2.Values()); d != "" {
		t.Errorf("unexpected identifiers (-want +got):\n%s", d)
	}

	if err := ids2.Set(0, Identifier{Value: "978-3-16-148410-0"}); err != nil {
		t.Fatal(err)
	}
	if tree.DoesQualifierExist(xmpmeta.XMPNamespace, "xmp:Identifier[1]", xmpmeta.IdqNamespace, "Scheme") {
		t.Error("scheme was not removed")
	}
}

func TestAdvisoryAndThumbnails(t *testing.T) {
	tree := newTree(t)
	b, err := New(tree)
	if err != nil {
		t.Fatal(err)
	}

	adv, err := b.Advisory()
	if err != nil {
		t.Fatal(err)
	}
	if err := adv.Add("xmp:Label"); err != nil {
		t.Fatal(err)
	}
	if _, flags, _ := tree.GetProperty(xmpmeta.XMPNamespace, "xmp:Advisory"); flags != xmpmeta.ValueIsArray {
		t.Errorf("xmp:Advisory flags %s", flags)
	}

	thumbs, err := b.Thumbnails()
	if err != nil {
		t.Fatal(err)
	}
	thumb := types.Thumbnail{Width: 16, Height: 8, Format: "JPEG", Image: "/9j/4AAQSkZJRg=="}
	if err := thumbs.Add(thumb); err != nil {
		t.Fatal(err)
	}
	_, flags, _ := tree.GetProperty(xmpmeta.XMPNamespace, "xmp:Thumbnails")
	if flags&xmpmeta.ArrayIsAlternate == 0 || flags&xmpmeta.ArrayIsAltText != 0 {
		t.Errorf("xmp:Thumbnails flags %s", flags)
	}
	w, _, err := tree.GetStructField(xmpmeta.XMPNamespace, "xmp:Thumbnails[1]", xmpmeta.GImgNamespace, "width")
	if err != nil || w != "16" {
		t.Errorf("xmpGImg:width = %q %v", w, err)
	}

	thumbs2, err := b.Thumbnails()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]types.Thumbnail{thumb}, thumbs2.Values()); d != "" {
		t.Errorf("unexpected thumbnails (-want +got):\n%s", d)
	}
}
