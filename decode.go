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
	"errors"
	"io"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// ParseFromBuffer parses an XMP packet and replaces the contents of the tree.
//
// If ParseMoreBuffers is set, the data is only collected, and parsing is
// deferred until ParseFromBuffer is called without this flag.  This allows
// to parse packets which arrive in several pieces.
func (t *Tree) ParseFromBuffer(buf []byte, flags ParseFlags) error {
	const op = "ParseFromBuffer"
	if err := t.check(op); err != nil {
		return err
	}
	t.pending = append(t.pending, buf...)
	if flags&ParseMoreBuffers != 0 {
		return nil
	}
	data := t.pending
	t.pending = nil

	p := &parser{log: t.Logger()}
	if err := p.parse(data, flags); err != nil {
		return withOp(op, err)
	}
	t.schemas = p.schemas
	t.About = p.about
	t.normalizeAliases()

	t.Logger().Debug("parsed packet",
		zap.Int("bytes", len(data)),
		zap.Int("schemas", len(t.schemas)))
	return nil
}

// element is a node of the XML document, as seen by the parser.
type element struct {
	name     xml.Name
	attr     []xml.Attr // without namespace declarations
	children []*element
	text     []byte
}

type parser struct {
	log      *zap.Logger
	declared map[string]bool // namespaces declared in the document

	schemas []*node
	about   string
}

func (p *parser) parse(data []byte, flags ParseFlags) error {
	data, err := toUTF8(data)
	if err != nil {
		return &Error{Code: BadParam, Msg: "cannot decode input", Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if flags&RequireXMPMeta != 0 {
			return newError(BadParam, "", "missing x:xmpmeta element")
		}
		return nil
	}

	doc, err := p.readDocument(data)
	if err != nil {
		return &Error{Code: BadParam, Msg: "malformed XML", Err: err}
	}

	rdf := findRDF(doc, flags&RequireXMPMeta != 0)
	if rdf == nil {
		if flags&RequireXMPMeta != 0 {
			return newError(BadParam, "", "missing x:xmpmeta element")
		}
		return newError(BadParam, "", "missing rdf:RDF element")
	}

	for _, desc := range rdf.children {
		if err := p.parseDescription(desc); err != nil {
			return err
		}
	}
	return nil
}

// readDocument reads the XML document into memory.  All namespaces declared
// in the document are added to the global namespace registry, using the
// prefixes from the document where possible.
func (p *parser) readDocument(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) {
		// the input has already been converted to UTF-8
		return r, nil
	}

	p.declared = map[string]bool{XMLNamespace: true}
	root := &element{}
	stack := []*element{root}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		top := stack[len(stack)-1]
		switch tok := tok.(type) {
		case xml.StartElement:
			e := &element{name: tok.Name}
			for _, a := range tok.Attr {
				switch {
				case a.Name.Space == "xmlns":
					p.declare(a.Value, a.Name.Local)
				case a.Name.Space == "" && a.Name.Local == "xmlns":
					p.declare(a.Value, "")
				default:
					e.attr = append(e.attr, a)
				}
			}
			top.children = append(top.children, e)
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top.text = append(top.text, tok...)
		}
	}
	if len(stack) != 1 {
		return nil, errors.New("unexpected end of input")
	}
	return root, nil
}

func (p *parser) declare(uri, prefix string) {
	if uri == "" {
		return
	}
	p.declared[uri] = true
	if _, known := GetNamespacePrefix(uri); known {
		return
	}
	if !isValidPrefix(prefix) {
		// derive a name from the URI; RegisterNamespace resolves collisions
		prefix = getPrefix(nil, uri, "")
	}
	pfx, err := RegisterNamespace(uri, prefix)
	if err != nil {
		return
	}
	p.log.Debug("registered namespace", zap.String("uri", uri), zap.String("prefix", pfx))
}

// findRDF locates the rdf:RDF element.  If requireMeta is set, the element
// must be contained in an x:xmpmeta element.
func findRDF(e *element, requireMeta bool) *element {
	for _, c := range e.children {
		if c.name.Space == MetaNamespace && (c.name.Local == "xmpmeta" || c.name.Local == "xapmeta") {
			for _, cc := range c.children {
				if cc.name == elemRDFRoot {
					return cc
				}
			}
			continue
		}
		if c.name == elemRDFRoot && !requireMeta {
			return c
		}
		if res := findRDF(c, requireMeta); res != nil {
			return res
		}
	}
	return nil
}

// parseDescription parses a top-level node element.
func (p *parser) parseDescription(desc *element) error {
	if desc.name.Space == RDFNamespace && desc.name != elemRDFDescription {
		return newError(BadParam, "", "unexpected element rdf:%s", desc.name.Local)
	}
	for _, a := range desc.attr {
		switch a.Name {
		case attrRDFAbout:
			if a.Value == "" {
				continue
			}
			if p.about != "" && a.Value != p.about {
				return newError(BadParam, "", "inconsistent rdf:about attributes: %q != %q", p.about, a.Value)
			}
			p.about = a.Value
		case nameXMLLang, attrRDFID, attrRDFNodeID:
			// These are not allowed in XMP, and we simply ignore them.
		default:
			// Property elements that have non-URI simple, unqualified
			// values may be replaced with attributes in the rdf:Description
			// element.
			n := &node{name: a.Name, value: a.Value}
			if err := p.addProperty(n); err != nil {
				return err
			}
		}
	}
	for _, c := range desc.children {
		n, err := p.parseProperty(c)
		if err != nil {
			return err
		}
		if err := p.addProperty(n); err != nil {
			return err
		}
	}
	return nil
}

// addProperty adds a top-level property to the tree.
func (p *parser) addProperty(n *node) error {
	if err := p.checkName(n.name, false); err != nil {
		return err
	}
	var schema *node
	for _, s := range p.schemas {
		if s.name.Space == n.name.Space {
			schema = s
			break
		}
	}
	if schema == nil {
		schema = &node{name: xml.Name{Space: n.name.Space}, flags: SchemaNode}
		p.schemas = append(p.schemas, schema)
	}
	if _, dup := schema.findChild(n.name); dup != nil {
		return newError(BadParam, "", "duplicate property %s", n.name.Local)
	}
	schema.appendChild(n)
	return nil
}

func (p *parser) checkName(name xml.Name, qualifier bool) error {
	valid := isValidPropertyName(name)
	if qualifier {
		valid = isValidQualifierName(name)
	}
	if !valid || !isValidLocalName(name.Local) {
		return newError(BadParam, "", "invalid name %q", name.Space+name.Local)
	}
	if !p.declared[name.Space] {
		return newError(BadParam, "", "undeclared namespace prefix %q", name.Space)
	}
	return nil
}

// parseProperty converts a property element into a node.
//
// This implements the rules from appendix C.2.5 (Content of a nodeElement)
// of ISO 16684-1:2011.
func (p *parser) parseProperty(e *element) (*node, error) {
	n := &node{name: e.name}

	var lang *xml.Attr
	var other []xml.Attr
	for i, a := range e.attr {
		switch a.Name {
		case nameXMLLang:
			lang = &e.attr[i]
		case attrRDFID, attrRDFNodeID, attrRDFDataType, attrRDFParseType:
		default:
			other = append(other, a)
		}
	}

	var err error
	switch getPropertyElementType(e) {
	case parseTypeResourcePropertyElt:
		// A parseTypeResourcePropertyElt is a form of shorthand that
		// replaces the inner nodeElement of a resourcePropertyElt with an
		// rdf:parseType="Resource" attribute on the outer element.
		//
		// See appendix C.2.9 of ISO 16684-1:2011.
		err = p.parseFields(n, other, e.children)

	case resourcePropertyElt:
		// A resourcePropertyElt most commonly represents an XMP struct or
		// array property.
		//
		// See appendix C.2.6 of ISO 16684-1:2011.
		if len(e.children) != 1 {
			return nil, newError(BadParam, "", "%s: expected one node element, found %d",
				e.name.Local, len(e.children))
		}
		if err := p.addQualifierAttrs(n, other); err != nil {
			return nil, err
		}
		err = p.parseNodeElement(n, e.children[0])

	case literalPropertyElt:
		// The text content is the property value.  Attributes of the
		// element become qualifiers.
		//
		// See appendix C.2.7 of ISO 16684-1:2011.
		n.value = string(e.text)
		err = p.addQualifierAttrs(n, other)

	case emptyPropertyElt:
		// An emptyPropertyElt can represent a simple property with an
		// empty value, a URI value, a simple property with simple
		// qualifiers, or a struct whose fields are all simple.
		//
		// See appendix C.2.12 of ISO 16684-1:2011.
		err = p.parseEmpty(n, other)

	default:
		return nil, newError(BadParam, "", "%s: rdf:parseType not allowed in XMP", e.name.Local)
	}
	if err != nil {
		return nil, err
	}

	if lang != nil {
		q := &node{name: nameXMLLang, value: lang.Value}
		if _, old := n.findQualifier(nameXMLLang); old != nil {
			old.detach()
		}
		n.addQualifier(q)
	}
	return n, nil
}

// parseFields fills the struct n from field attributes and field elements.
// An rdf:value field makes n a qualified value, and all other fields
// become qualifiers.
func (p *parser) parseFields(n *node, attr []xml.Attr, children []*element) error {
	n.flags = ValueIsStruct
	var value *node
	for _, a := range attr {
		if a.Name == nameRDFValue {
			value = &node{name: nameRDFValue, value: a.Value}
			continue
		}
		if err := p.addField(n, &node{name: a.Name, value: a.Value}); err != nil {
			return err
		}
	}
	for _, c := range children {
		f, err := p.parseProperty(c)
		if err != nil {
			return err
		}
		if f.name == nameRDFValue {
			if value != nil {
				return newError(BadParam, "", "%s: duplicate rdf:value", n.name.Local)
			}
			value = f
			continue
		}
		if err := p.addField(n, f); err != nil {
			return err
		}
	}
	if value == nil {
		// rdf:type describes the struct itself
		if _, tp := n.findChild(nameRDFType); tp != nil {
			tp.detach()
			n.addQualifier(tp)
		}
		return nil
	}

	quals := n.children
	n.children = nil
	n.value = value.value
	n.flags = value.flags
	for _, c := range value.children {
		n.appendChild(c)
	}
	for _, q := range value.qualifiers {
		n.addQualifier(q)
	}
	for _, q := range quals {
		if err := p.checkName(q.name, true); err != nil {
			return err
		}
		if _, dup := n.findQualifier(q.name); dup != nil {
			return newError(BadParam, "", "%s: duplicate qualifier %s", n.name.Local, q.name.Local)
		}
		n.addQualifier(q)
	}
	return nil
}

func (p *parser) addField(n, f *node) error {
	if err := p.checkName(f.name, false); err != nil {
		return err
	}
	if _, dup := n.findChild(f.name); dup != nil {
		return newError(BadParam, "", "%s: duplicate field %s", n.name.Local, f.name.Local)
	}
	n.appendChild(f)
	return nil
}

func (p *parser) addQualifierAttrs(n *node, attr []xml.Attr) error {
	for _, a := range attr {
		if err := p.checkName(a.Name, true); err != nil {
			return err
		}
		if _, dup := n.findQualifier(a.Name); dup != nil {
			return newError(BadParam, "", "%s: duplicate qualifier %s", n.name.Local, a.Name.Local)
		}
		n.addQualifier(&node{name: a.Name, value: a.Value})
	}
	return nil
}

// parseNodeElement interprets the node element inside a resourcePropertyElt.
func (p *parser) parseNodeElement(n *node, e *element) error {
	switch e.name {
	case elemRDFBag:
		n.flags = ValueIsArray
	case elemRDFSeq:
		n.flags = ValueIsArray | ArrayIsOrdered
	case elemRDFAlt:
		n.flags = ValueIsArray | ArrayIsOrdered | ArrayIsAlternate
	default:
		var attr []xml.Attr
		for _, a := range e.attr {
			switch a.Name {
			case attrRDFAbout, attrRDFID, attrRDFNodeID, nameXMLLang:
			default:
				attr = append(attr, a)
			}
		}
		if err := p.parseFields(n, attr, e.children); err != nil {
			return err
		}
		if e.name != elemRDFDescription {
			// typed node
			if e.name.Space == RDFNamespace {
				return newError(BadParam, "", "%s: unexpected element rdf:%s", n.name.Local, e.name.Local)
			}
			if _, old := n.findQualifier(nameRDFType); old != nil {
				old.detach()
			}
			n.addQualifier(&node{name: nameRDFType, value: e.name.Space + e.name.Local, flags: ValueIsURI})
		}
		return nil
	}

	allLang := true
	for _, c := range e.children {
		if c.name != nameRDFLi {
			return newError(BadParam, "", "%s: unexpected array item %s", n.name.Local, c.name.Local)
		}
		item, err := p.parseProperty(c)
		if err != nil {
			return err
		}
		if _, ok := item.lang(); !ok {
			allLang = false
		}
		n.appendChild(item)
	}
	if n.flags&ArrayIsAlternate != 0 && allLang {
		n.flags |= ArrayIsAltText
	}
	return nil
}

// parseEmpty handles an emptyPropertyElt.
func (p *parser) parseEmpty(n *node, attr []xml.Attr) error {
	var resource, value *xml.Attr
	var fields []xml.Attr
	for i, a := range attr {
		switch a.Name {
		case attrRDFResource:
			resource = &attr[i]
		case nameRDFValue:
			value = &attr[i]
		default:
			fields = append(fields, a)
		}
	}
	switch {
	case resource != nil && value != nil:
		return newError(BadParam, "", "%s: both rdf:resource and rdf:value", n.name.Local)
	case resource != nil:
		n.value = resource.Value
		n.flags = ValueIsURI
		return p.addQualifierAttrs(n, fields)
	case value != nil:
		n.value = value.Value
		return p.addQualifierAttrs(n, fields)
	case len(fields) > 0:
		return p.parseFields(n, fields, nil)
	}
	return nil
}

// getPropertyElementType determines the RDF type of a property element.
//
// This implements the rules from appendix C.2.5 (Content of a nodeElement)
// of ISO 16684-1:2011.
func getPropertyElementType(e *element) propertyElementType {
	for _, a := range e.attr {
		if a.Name != attrRDFParseType {
			continue
		}
		switch a.Value {
		case "Literal": // not allowed in XMP
			return parseTypeLiteralPropertyElt
		case "Resource":
			return parseTypeResourcePropertyElt
		case "Collection": // not allowed in XMP
			return parseTypeCollectionPropertyElt
		default: // not allowed in XMP
			return parseTypeOtherPropertyElt
		}
	}

	if len(e.children) > 0 {
		return resourcePropertyElt
	}
	if len(e.text) > 0 {
		return literalPropertyElt
	}
	return emptyPropertyElt
}

type propertyElementType int

const (
	resourcePropertyElt propertyElementType = iota + 1
	literalPropertyElt
	parseTypeLiteralPropertyElt
	parseTypeResourcePropertyElt
	parseTypeCollectionPropertyElt
	parseTypeOtherPropertyElt
	emptyPropertyElt
)

var (
	attrRDFDataType = xml.Name{Space: RDFNamespace, Local: "datatype"}
	attrRDFID       = xml.Name{Space: RDFNamespace, Local: "ID"}
	attrRDFNodeID   = xml.Name{Space: RDFNamespace, Local: "nodeID"}
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// toUTF8 detects the encoding of an XMP packet and converts it to UTF-8.
func toUTF8(data []byte) ([]byte, error) {
	var enc encoding.Encoding
	switch {
	case len(data) >= 4 && data[0] == 0 && data[1] == 0 && (data[2] == 0xFE || data[2] == 0):
		enc = utf32.UTF32(utf32.BigEndian, utf32.UseBOM)
	case len(data) >= 4 && data[2] == 0 && data[3] == 0 && (data[0] == 0xFF || data[0] != 0 && data[1] == 0):
		enc = utf32.UTF32(utf32.LittleEndian, utf32.UseBOM)
	case len(data) >= 2 && (data[0] == 0xFE && data[1] == 0xFF || data[0] == 0 && data[1] != 0):
		enc = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case len(data) >= 2 && (data[0] == 0xFF && data[1] == 0xFE || data[0] != 0 && data[1] == 0):
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	default:
		return bytes.TrimPrefix(data, utf8BOM), nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	return out, err
}

// normalizeAliases moves properties which were stored under an alias name
// to the corresponding actual property.  If the actual property is already
// present, the alias value is dropped.
func (t *Tree) normalizeAliases() {
	for _, schema := range slices.Clone(t.schemas) {
		for _, n := range slices.Clone(schema.children) {
			a, ok := ResolveAlias(n.name.Space, n.name.Local)
			if !ok {
				continue
			}
			n.detach()

			target := t.findSchema(a.Namespace)
			if target == nil {
				target = &node{name: xml.Name{Space: a.Namespace}, flags: SchemaNode}
				t.schemas = append(t.schemas, target)
			}
			actual := xml.Name{Space: a.Namespace, Local: a.Name}
			if _, exists := target.findChild(actual); exists != nil {
				t.Logger().Debug("dropped alias value",
					zap.String("alias", n.name.Space+n.name.Local))
				continue
			}

			if a.Form == 0 || !n.isSimple() {
				n.name = actual
				target.appendChild(n)
				continue
			}
			arr := newNode(actual, a.Form)
			n.name = nameRDFLi
			if a.Form&ArrayIsAltText != 0 {
				if _, hasLang := n.lang(); !hasLang {
					n.addQualifier(&node{name: nameXMLLang, value: xDefault})
				}
			}
			arr.appendChild(n)
			target.appendChild(arr)
		}
	}
	t.schemas = slices.DeleteFunc(t.schemas, func(s *node) bool { return len(s.children) == 0 })
}
