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
	"encoding/xml"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"seehuhn.de/go/xmpmeta/jvxml"
)

// SerializeOptions control the output of [Tree.Serialize].
type SerializeOptions struct {
	Flags SerializeFlags

	// Padding is the number of padding bytes written before the packet
	// trailer.  If ExactPacketLength is set, Padding is the total length of
	// the packet instead.  Zero selects the default of 2048 bytes.
	Padding int

	Newline    string // line ending, default "\n"
	Indent     string // indentation unit, default two spaces
	BaseIndent int    // number of indentation units added to every line
}

const (
	defaultPadding   = 2048
	thumbnailPadding = 10000
	packetID         = "W5M0MpCehiHzreSzNTczkc9d"
	toolkitName      = "seehuhn.de/go/xmpmeta"
)

var (
	elemXMPMeta        = xml.Name{Space: MetaNamespace, Local: "xmpmeta"}
	elemRDFRoot        = xml.Name{Space: RDFNamespace, Local: "RDF"}
	elemRDFDescription = xml.Name{Space: RDFNamespace, Local: "Description"}
	elemRDFBag         = xml.Name{Space: RDFNamespace, Local: "Bag"}
	elemRDFSeq         = xml.Name{Space: RDFNamespace, Local: "Seq"}
	elemRDFAlt         = xml.Name{Space: RDFNamespace, Local: "Alt"}

	attrRDFAbout     = xml.Name{Space: RDFNamespace, Local: "about"}
	attrRDFResource  = xml.Name{Space: RDFNamespace, Local: "resource"}
	attrRDFParseType = xml.Name{Space: RDFNamespace, Local: "parseType"}
)

// Serialize writes the tree as an XMP packet in RDF/XML form.
// If opt is nil, default options are used.
func (t *Tree) Serialize(opt *SerializeOptions) ([]byte, error) {
	const op = "Serialize"
	if err := t.check(op); err != nil {
		return nil, err
	}
	if opt == nil {
		opt = &SerializeOptions{}
	}
	flags := opt.Flags
	if err := checkSerializeFlags(op, flags); err != nil {
		return nil, err
	}
	enc := outputEncoding(flags)

	newline, indent := opt.Newline, opt.Indent
	if newline == "" {
		newline = "\n"
	}
	if indent == "" {
		indent = "  "
	}
	if flags&OmitAllFormatting != 0 {
		newline, indent = "", ""
	}

	body, err := t.serializeBody(flags, newline, indent, opt.BaseIndent)
	if err != nil {
		return nil, err
	}

	if flags&OmitPacketWrapper != 0 {
		out, err := encodeOutput(enc, body)
		if err != nil {
			return nil, err
		}
		t.Logger().Debug("serialized tree", zap.Int("bytes", len(out)))
		return out, nil
	}

	end := "w"
	if flags&ReadOnlyPacket != 0 {
		end = "r"
	}
	trailer := `<?xpacket end="` + end + `"?>`
	body = append(body, newline...)

	var padLen int
	if flags&ExactPacketLength != 0 {
		plain, err := encodeOutput(enc, append(bytes.Clone(body), trailer...))
		if err != nil {
			return nil, err
		}
		unit := codeUnitSize(flags)
		if opt.Padding < len(plain) {
			return nil, newError(BadParam, op,
				"packet needs %d bytes, but the exact length is %d", len(plain), opt.Padding)
		}
		padLen = (opt.Padding - len(plain)) / unit
	} else {
		padLen = opt.Padding
		if padLen <= 0 {
			padLen = defaultPadding
		}
		if flags&IncludeThumbnailPad != 0 {
			padLen += thumbnailPadding
		}
	}

	body = append(body, makePadding(padLen, newline)...)
	body = append(body, trailer...)
	out, err := encodeOutput(enc, body)
	if err != nil {
		return nil, err
	}
	t.Logger().Debug("serialized tree",
		zap.Int("bytes", len(out)),
		zap.Int("padding", padLen))
	return out, nil
}

func checkSerializeFlags(op string, flags SerializeFlags) error {
	const known = OmitPacketWrapper | ReadOnlyPacket | UseCompactFormat |
		IncludeThumbnailPad | ExactPacketLength | WriteAliasComments |
		OmitAllFormatting | EncodingMask
	if flags&^known != 0 {
		return newError(BadParam, op, "unknown serialization flags 0x%x", int(flags&^known))
	}
	switch flags & EncodingMask {
	case EncodeUTF8, EncodeUTF16Big, EncodeUTF16Little, EncodeUTF32Big, EncodeUTF32Little:
	default:
		return newError(BadParam, op, "invalid encoding 0x%x", int(flags&EncodingMask))
	}
	if flags&OmitPacketWrapper != 0 && flags&(ReadOnlyPacket|ExactPacketLength|IncludeThumbnailPad) != 0 {
		return newError(BadParam, op, "packet options require the packet wrapper")
	}
	return nil
}

func outputEncoding(flags SerializeFlags) encoding.Encoding {
	switch flags & EncodingMask {
	case EncodeUTF16Big:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case EncodeUTF16Little:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case EncodeUTF32Big:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	case EncodeUTF32Little:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	default:
		return nil
	}
}

func codeUnitSize(flags SerializeFlags) int {
	switch {
	case flags&encUTF32 != 0:
		return 4
	case flags&encUTF16 != 0:
		return 2
	default:
		return 1
	}
}

func encodeOutput(enc encoding.Encoding, body []byte) ([]byte, error) {
	if enc == nil {
		return body, nil
	}
	out, err := enc.NewEncoder().Bytes(body)
	if err != nil {
		return nil, &Error{Code: BadValue, Op: "Serialize", Msg: "cannot encode output", Err: err}
	}
	return out, nil
}

// makePadding returns n characters of white space, broken into lines of
// 100 characters.
func makePadding(n int, newline string) []byte {
	if n <= 0 {
		return nil
	}
	res := make([]byte, 0, n)
	lineLen := 100 - len(newline)
	if newline == "" {
		lineLen = n
	}
	for len(res)+lineLen+len(newline) <= n {
		res = append(res, strings.Repeat(" ", lineLen)...)
		res = append(res, newline...)
	}
	for len(res) < n {
		res = append(res, ' ')
	}
	return res
}

// serializer writes the RDF/XML form of a tree.
type serializer struct {
	*jvxml.Encoder
	nsToPrefix map[string]string
	flags      SerializeFlags
}

func (t *Tree) serializeBody(flags SerializeFlags, newline, indent string, baseIndent int) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := jvxml.NewEncoder(buf)
	enc.SetNewline(newline)
	enc.Indent(strings.Repeat(indent, baseIndent), indent)
	s := &serializer{
		Encoder:    enc,
		nsToPrefix: t.usedPrefixes(),
		flags:      flags,
	}

	if flags&OmitPacketWrapper == 0 {
		err := s.EncodeToken(xml.ProcInst{
			Target: "xpacket",
			Inst:   []byte("begin=\"\uFEFF\" id=\"" + packetID + "\""),
		})
		if err != nil {
			return nil, err
		}
	}

	err := s.EncodeToken(xml.StartElement{
		Name: xml.Name{Local: "x:xmpmeta"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:x"}, Value: MetaNamespace},
			{Name: xml.Name{Local: "x:xmptk"}, Value: toolkitName},
		},
	})
	if err != nil {
		return nil, err
	}

	var attrs []xml.Attr
	nameSpaces := maps.Keys(s.nsToPrefix)
	sort.Strings(nameSpaces)
	for _, ns := range nameSpaces {
		pfx := s.nsToPrefix[ns]
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "xmlns:" + pfx}, Value: ns})
	}
	err = s.EncodeToken(xml.StartElement{Name: s.makeName(RDFNamespace, "RDF"), Attr: attrs})
	if err != nil {
		return nil, err
	}

	about := xml.Attr{Name: s.makeName(RDFNamespace, "about"), Value: t.About}
	if len(t.schemas) == 0 {
		err = s.EncodeToken(jvxml.EmptyElement{
			Name: s.makeName(RDFNamespace, "Description"),
			Attr: []xml.Attr{about},
		})
		if err != nil {
			return nil, err
		}
	}
	for _, schema := range t.schemas {
		if err := s.writeSchema(schema, about); err != nil {
			return nil, err
		}
	}

	err = s.EncodeToken(xml.EndElement{Name: s.makeName(RDFNamespace, "RDF")})
	if err != nil {
		return nil, err
	}
	err = s.EncodeToken(xml.EndElement{Name: xml.Name{Local: "x:xmpmeta"}})
	if err != nil {
		return nil, err
	}
	if err := s.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// usedPrefixes returns the prefixes for all namespaces used in the tree.
func (t *Tree) usedPrefixes() map[string]string {
	used := map[string]bool{RDFNamespace: true}
	var walk func(n *node)
	walk = func(n *node) {
		if n.name.Space != "" && n.name.Space != XMLNamespace {
			used[n.name.Space] = true
		}
		for _, q := range n.qualifiers {
			walk(q)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	for _, s := range t.schemas {
		walk(s)
	}

	nsToPrefix := make(map[string]string)
	prefixToNS := map[string]string{"x": MetaNamespace, "xml": XMLNamespace}
	var missing []string
	for ns := range used {
		pfx, ok := GetNamespacePrefix(ns)
		if !ok || prefixToNS[pfx] != "" && prefixToNS[pfx] != ns {
			missing = append(missing, ns)
			continue
		}
		nsToPrefix[ns] = pfx
		prefixToNS[pfx] = ns
	}
	sort.Strings(missing)
	for _, ns := range missing {
		pfx := getPrefix(prefixToNS, ns, "")
		nsToPrefix[ns] = pfx
		prefixToNS[pfx] = ns
	}
	return nsToPrefix
}

func (s *serializer) makeName(ns, local string) xml.Name {
	if ns == XMLNamespace {
		return xml.Name{Local: "xml:" + local}
	}
	return xml.Name{Local: s.nsToPrefix[ns] + ":" + local}
}

func (s *serializer) writeSchema(schema *node, about xml.Attr) error {
	compact := s.flags&UseCompactFormat != 0
	attrs := []xml.Attr{about}
	var elems []*node
	for _, n := range schema.children {
		if compact && isAttrValue(n) {
			attrs = append(attrs, xml.Attr{Name: s.makeName(n.name.Space, n.name.Local), Value: n.value})
		} else {
			elems = append(elems, n)
		}
	}

	desc := s.makeName(RDFNamespace, "Description")
	if len(elems) == 0 {
		return s.EncodeToken(jvxml.EmptyElement{Name: desc, Attr: attrs})
	}
	if err := s.EncodeToken(xml.StartElement{Name: desc, Attr: attrs}); err != nil {
		return err
	}
	for _, n := range elems {
		if s.flags&WriteAliasComments != 0 {
			if aliases := aliasesOf(n.name.Space, n.name.Local); len(aliases) > 0 {
				comment := " aliases: " + strings.Join(aliases, ", ") + " "
				if err := s.EncodeToken(xml.Comment(comment)); err != nil {
					return err
				}
			}
		}
		if err := s.writeNode(n); err != nil {
			return err
		}
	}
	return s.EncodeToken(xml.EndElement{Name: desc})
}

// isAttrValue reports whether n can be written as an XML attribute.
func isAttrValue(n *node) bool {
	return n.isSimple() && n.flags&ValueIsURI == 0 && len(n.qualifiers) == 0
}

// writeNode writes a property element for n, including its qualifiers.
func (s *serializer) writeNode(n *node) error {
	name := s.makeName(n.name.Space, n.name.Local)

	var attr []xml.Attr
	var general []*node
	for _, q := range n.qualifiers {
		if q.name == nameXMLLang && isAttrValue(q) {
			attr = append(attr, xml.Attr{Name: s.makeName(XMLNamespace, "lang"), Value: q.value})
		} else {
			general = append(general, q)
		}
	}
	if len(general) == 0 {
		return s.writeValue(n, name, attr)
	}

	// A value with general qualifiers is written as a resource with an
	// rdf:value field; the qualifiers become the other fields.
	attr = append(attr, xml.Attr{Name: s.makeName(RDFNamespace, "parseType"), Value: "Resource"})
	if err := s.EncodeToken(xml.StartElement{Name: name, Attr: attr}); err != nil {
		return err
	}
	if err := s.writeValue(n, s.makeName(RDFNamespace, "value"), nil); err != nil {
		return err
	}
	for _, q := range general {
		if err := s.writeNode(q); err != nil {
			return err
		}
	}
	return s.EncodeToken(xml.EndElement{Name: name})
}

// writeValue writes the value of n, without its qualifiers, as an element
// with the given name.
func (s *serializer) writeValue(n *node, name xml.Name, attr []xml.Attr) error {
	switch {
	case n.isStruct():
		if s.flags&UseCompactFormat != 0 && len(n.children) > 0 && allAttrValues(n.children) {
			for _, f := range n.children {
				attr = append(attr, xml.Attr{Name: s.makeName(f.name.Space, f.name.Local), Value: f.value})
			}
			return s.EncodeToken(jvxml.EmptyElement{Name: name, Attr: attr})
		}
		attr = append(attr, xml.Attr{Name: s.makeName(RDFNamespace, "parseType"), Value: "Resource"})
		if len(n.children) == 0 {
			return s.EncodeToken(jvxml.EmptyElement{Name: name, Attr: attr})
		}
		if err := s.EncodeToken(xml.StartElement{Name: name, Attr: attr}); err != nil {
			return err
		}
		for _, f := range n.children {
			if err := s.writeNode(f); err != nil {
				return err
			}
		}
		return s.EncodeToken(xml.EndElement{Name: name})

	case n.isArray():
		if err := s.EncodeToken(xml.StartElement{Name: name, Attr: attr}); err != nil {
			return err
		}
		local := "Bag"
		switch {
		case n.flags&ArrayIsAlternate != 0:
			local = "Alt"
		case n.flags&ArrayIsOrdered != 0:
			local = "Seq"
		}
		arrName := s.makeName(RDFNamespace, local)
		if len(n.children) == 0 {
			if err := s.EncodeToken(jvxml.EmptyElement{Name: arrName}); err != nil {
				return err
			}
		} else {
			if err := s.EncodeToken(xml.StartElement{Name: arrName}); err != nil {
				return err
			}
			for _, item := range n.children {
				if err := s.writeNode(item); err != nil {
					return err
				}
			}
			if err := s.EncodeToken(xml.EndElement{Name: arrName}); err != nil {
				return err
			}
		}
		return s.EncodeToken(xml.EndElement{Name: name})

	case n.flags&ValueIsURI != 0:
		attr = append(attr, xml.Attr{Name: s.makeName(RDFNamespace, "resource"), Value: n.value})
		return s.EncodeToken(jvxml.EmptyElement{Name: name, Attr: attr})

	case n.value == "":
		return s.EncodeToken(jvxml.EmptyElement{Name: name, Attr: attr})

	default:
		if err := s.EncodeToken(xml.StartElement{Name: name, Attr: attr}); err != nil {
			return err
		}
		if err := s.EncodeToken(xml.CharData(n.value)); err != nil {
			return err
		}
		return s.EncodeToken(xml.EndElement{Name: name})
	}
}

func allAttrValues(nodes []*node) bool {
	for _, n := range nodes {
		if !isAttrValue(n) {
			return false
		}
	}
	return true
}
