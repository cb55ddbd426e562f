// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jvxml implements a streaming XML token writer.
//
// The writer is a cut-down version of the encoder from encoding/xml.  Names
// are written verbatim (the caller is responsible for namespace prefixes),
// elements without content can be written as empty-element tags, and the
// line ending and indentation can be configured.
package jvxml

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Token is one of xml.StartElement, EmptyElement, xml.EndElement,
// xml.CharData, xml.Comment or xml.ProcInst.
type Token any

// EmptyElement represents an XML element without content,
// written as <name attr="..."/>.
type EmptyElement struct {
	Name xml.Name
	Attr []xml.Attr
}

// An Encoder writes XML data to an output stream.
type Encoder struct {
	p printer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	cw := &countingWriter{w: w}
	e := &Encoder{printer{w: bufio.NewWriter(cw), cw: cw, newline: "\n"}}
	return e
}

// Indent sets the encoder to generate XML in which each element
// begins on a new indented line that starts with prefix and is followed by
// one or more copies of indent according to the nesting depth.
func (enc *Encoder) Indent(prefix, indent string) {
	enc.p.prefix = prefix
	enc.p.indent = indent
}

// SetNewline sets the line ending used between indented lines.
// If newline is empty, no formatting whitespace is written at all.
func (enc *Encoder) SetNewline(newline string) {
	enc.p.newline = newline
}

// Newline writes a line ending, followed by the indentation prefix.
func (enc *Encoder) Newline() error {
	p := &enc.p
	if p.newline != "" {
		p.WriteString(p.newline)
		p.WriteString(p.prefix)
	}
	p.putNewline = false
	return p.cachedWriteError()
}

// Len returns the number of bytes written so far, including data which
// is still buffered.
func (enc *Encoder) Len() int64 {
	return enc.p.cw.n + int64(enc.p.w.Buffered())
}

var (
	endComment  = []byte("-->")
	endProcInst = []byte("?>")
)

// EncodeToken writes the given XML token to the stream.
// It returns an error if start and end tokens are not properly matched.
//
// EncodeToken does not call [Encoder.Flush].
func (enc *Encoder) EncodeToken(t Token) error {
	p := &enc.p
	switch t := t.(type) {
	case xml.StartElement:
		if err := p.writeStart(t.Name, t.Attr, false); err != nil {
			return err
		}
	case EmptyElement:
		if err := p.writeStart(t.Name, t.Attr, true); err != nil {
			return err
		}
	case xml.EndElement:
		if err := p.writeEnd(t.Name); err != nil {
			return err
		}
	case xml.CharData:
		escapeText(p, t, false)
	case xml.Comment:
		if bytes.Contains(t, endComment) {
			return fmt.Errorf("xml: EncodeToken of Comment containing --> marker")
		}
		p.writeIndent(0)
		p.WriteString("<!--")
		p.Write(t)
		p.WriteString("-->")
	case xml.ProcInst:
		if t.Target == "xml" && enc.Len() != 0 {
			return fmt.Errorf("xml: EncodeToken of ProcInst xml target only valid for xml declaration, first token encoded")
		}
		if !IsName([]byte(t.Target)) {
			return fmt.Errorf("xml: EncodeToken of ProcInst with invalid Target")
		}
		if bytes.Contains(t.Inst, endProcInst) {
			return fmt.Errorf("xml: EncodeToken of ProcInst containing ?> marker")
		}
		p.writeIndent(0)
		p.WriteString("<?")
		p.WriteString(t.Target)
		if len(t.Inst) > 0 {
			p.WriteByte(' ')
			p.Write(t.Inst)
		}
		p.WriteString("?>")
	default:
		return fmt.Errorf("xml: EncodeToken of invalid token type %T", t)
	}
	return p.cachedWriteError()
}

// WriteRaw writes s to the output without any escaping.
func (enc *Encoder) WriteRaw(s string) error {
	enc.p.WriteString(s)
	return enc.p.cachedWriteError()
}

// Flush flushes any buffered XML to the underlying writer.
func (enc *Encoder) Flush() error {
	return enc.p.w.Flush()
}

// Close the Encoder, indicating that no more data will be written. It flushes
// any buffered XML to the underlying writer and returns an error if the
// written XML is invalid (e.g. by containing unclosed elements).
func (enc *Encoder) Close() error {
	return enc.p.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(b []byte) (int, error) {
	n, err := cw.w.Write(b)
	cw.n += int64(n)
	return n, err
}

type printer struct {
	w          *bufio.Writer
	cw         *countingWriter
	indent     string
	prefix     string
	newline    string
	depth      int
	indentedIn bool
	putNewline bool
	tags       []xml.Name
	closed     bool
	err        error
}

// writeStart writes the given start element.
func (p *printer) writeStart(name xml.Name, attr []xml.Attr, empty bool) error {
	if name.Local == "" {
		return fmt.Errorf("xml: start tag with no name")
	}
	if name.Space != "" {
		return fmt.Errorf("xml: unexpected namespace %q for <%s>", name.Space, name.Local)
	}

	if !empty {
		p.tags = append(p.tags, name)
		p.writeIndent(1)
	} else {
		p.writeIndent(0)
	}
	p.WriteByte('<')
	p.WriteString(name.Local)

	for _, attr := range attr {
		if attr.Name.Local == "" {
			continue
		}
		p.WriteByte(' ')
		p.WriteString(attr.Name.Local)
		p.WriteString(`="`)
		escapeText(p, []byte(attr.Value), true)
		p.WriteByte('"')
	}
	if empty {
		p.WriteString("/>")
	} else {
		p.WriteByte('>')
	}
	return nil
}

func (p *printer) writeEnd(name xml.Name) error {
	if name.Local == "" {
		return fmt.Errorf("xml: end tag with no name")
	}
	if len(p.tags) == 0 {
		return fmt.Errorf("xml: end tag </%s> without start tag", name.Local)
	}
	if top := p.tags[len(p.tags)-1]; top != name {
		return fmt.Errorf("xml: end tag </%s> does not match start tag <%s>", name.Local, top.Local)
	}
	p.tags = p.tags[:len(p.tags)-1]

	p.writeIndent(-1)
	p.WriteByte('<')
	p.WriteByte('/')
	p.WriteString(name.Local)
	p.WriteByte('>')
	return nil
}

// Write implements io.Writer
func (p *printer) Write(b []byte) (n int, err error) {
	if p.closed && p.err == nil {
		p.err = errors.New("use of closed Encoder")
	}
	if p.err == nil {
		n, p.err = p.w.Write(b)
	}
	return n, p.err
}

// WriteString implements io.StringWriter
func (p *printer) WriteString(s string) (n int, err error) {
	if p.closed && p.err == nil {
		p.err = errors.New("use of closed Encoder")
	}
	if p.err == nil {
		n, p.err = p.w.WriteString(s)
	}
	return n, p.err
}

// WriteByte implements io.ByteWriter
func (p *printer) WriteByte(c byte) error {
	if p.closed && p.err == nil {
		p.err = errors.New("use of closed Encoder")
	}
	if p.err == nil {
		p.err = p.w.WriteByte(c)
	}
	return p.err
}

func (p *printer) Close() error {
	if p.closed {
		return nil
	}
	if err := p.w.Flush(); err != nil {
		return err
	}
	p.closed = true
	if len(p.tags) > 0 {
		return fmt.Errorf("unclosed tag <%s>", p.tags[len(p.tags)-1].Local)
	}
	return nil
}

// return the bufio Writer's cached write error
func (p *printer) cachedWriteError() error {
	_, err := p.Write(nil)
	return err
}

func (p *printer) writeIndent(depthDelta int) {
	if p.newline == "" {
		return
	}
	if depthDelta < 0 {
		p.depth--
		if p.indentedIn {
			p.indentedIn = false
			return
		}
		p.indentedIn = false
	}
	if p.putNewline {
		p.WriteString(p.newline)
	} else {
		p.putNewline = true
	}
	if len(p.prefix) > 0 {
		p.WriteString(p.prefix)
	}
	if len(p.indent) > 0 {
		for i := 0; i < p.depth; i++ {
			p.WriteString(p.indent)
		}
	}
	if depthDelta > 0 {
		p.depth++
		p.indentedIn = true
	} else {
		p.indentedIn = false
	}
}
