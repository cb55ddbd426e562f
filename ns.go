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
	"strconv"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"seehuhn.de/go/xmpmeta/jvxml"
)

// Namespaces of the standard XMP schemas and of the RDF/XML infrastructure.
const (
	XMLNamespace           = "http://www.w3.org/XML/1998/namespace"
	RDFNamespace           = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	MetaNamespace          = "adobe:ns:meta/"
	DCNamespace            = "http://purl.org/dc/elements/1.1/"
	XMPNamespace           = "http://ns.adobe.com/xap/1.0/"
	MMNamespace            = "http://ns.adobe.com/xap/1.0/mm/"
	RightsNamespace        = "http://ns.adobe.com/xap/1.0/rights/"
	BJNamespace            = "http://ns.adobe.com/xap/1.0/bj/"
	TPgNamespace           = "http://ns.adobe.com/xap/1.0/t/pg/"
	IdqNamespace           = "http://ns.adobe.com/xmp/Identifier/qual/1.0/"
	ResourceRefNamespace   = "http://ns.adobe.com/xap/1.0/sType/ResourceRef#"
	ResourceEventNamespace = "http://ns.adobe.com/xap/1.0/sType/ResourceEvent#"
	DimensionsNamespace    = "http://ns.adobe.com/xap/1.0/sType/Dimensions#"
	JobNamespace           = "http://ns.adobe.com/xap/1.0/sType/Job#"
	PhotoshopNamespace     = "http://ns.adobe.com/photoshop/1.0/"
	IPTCCoreNamespace      = "http://iptc.org/std/Iptc4xmpCore/1.0/xmlns/"
	PDFNamespace           = "http://ns.adobe.com/pdf/1.3/"
	TIFFNamespace          = "http://ns.adobe.com/tiff/1.0/"
	EXIFNamespace          = "http://ns.adobe.com/exif/1.0/"
	AuxNamespace           = "http://ns.adobe.com/exif/1.0/aux/"
	GImgNamespace          = "http://ns.adobe.com/xap/1.0/g/img/"
)

var defaultPrefix = map[string]string{
	XMLNamespace:           "xml",
	RDFNamespace:           "rdf",
	MetaNamespace:          "x",
	DCNamespace:            "dc", // Dublin Core
	XMPNamespace:           "xmp",
	MMNamespace:            "xmpMM",     // XMP Media Management
	RightsNamespace:        "xmpRights", // XMP Rights Management
	BJNamespace:            "xmpBJ",     // Basic Job Ticket
	TPgNamespace:           "xmpTPg",    // Paged-Text
	IdqNamespace:           "xmpidq",
	ResourceRefNamespace:   "stRef",
	ResourceEventNamespace: "stEvt",
	DimensionsNamespace:    "stDim",
	JobNamespace:           "stJob",
	PhotoshopNamespace:     "photoshop",
	IPTCCoreNamespace:      "Iptc4xmpCore",
	PDFNamespace:           "pdf",
	TIFFNamespace:          "tiff",
	EXIFNamespace:          "exif",
	AuxNamespace:           "aux",
	GImgNamespace:          "xmpGImg",
}

// registry is the process-wide table of namespaces and aliases.
// All trees share it.
type registry struct {
	mu         sync.RWMutex
	nsToPrefix map[string]string
	prefixToNS map[string]string

	aliases map[aliasKey]Alias
}

var reg = newRegistry()

func newRegistry() *registry {
	r := &registry{
		nsToPrefix: make(map[string]string),
		prefixToNS: make(map[string]string),
		aliases:    make(map[aliasKey]Alias),
	}
	for ns, pfx := range defaultPrefix {
		r.nsToPrefix[ns] = pfx
		r.prefixToNS[pfx] = ns
	}
	return r
}

// RegisterNamespace registers a namespace URI with a suggested prefix.
// If the namespace is already registered, the existing prefix is returned.
// If the suggested prefix is in use for a different namespace, a
// new prefix is chosen.  The prefix which is actually used is returned.
func RegisterNamespace(uri, suggestedPrefix string) (string, error) {
	const op = "RegisterNamespace"
	suggestedPrefix = strings.TrimSuffix(suggestedPrefix, ":")
	if uri == "" {
		return "", newError(BadParam, op, "empty namespace URI")
	}
	if !isValidPrefix(suggestedPrefix) {
		return "", newError(BadParam, op, "invalid prefix %q", suggestedPrefix)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if pfx, ok := reg.nsToPrefix[uri]; ok {
		return pfx, nil
	}
	pfx := suggestedPrefix
	if _, taken := reg.prefixToNS[pfx]; taken {
		pfx = getPrefix(reg.prefixToNS, uri, suggestedPrefix)
	}
	reg.nsToPrefix[uri] = pfx
	reg.prefixToNS[pfx] = uri
	return pfx, nil
}

// GetNamespacePrefix returns the prefix registered for the given namespace.
func GetNamespacePrefix(uri string) (string, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	pfx, ok := reg.nsToPrefix[uri]
	return pfx, ok
}

// GetNamespaceURI returns the namespace registered for the given prefix.
func GetNamespaceURI(prefix string) (string, bool) {
	prefix = strings.TrimSuffix(prefix, ":")
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	uri, ok := reg.prefixToNS[prefix]
	return uri, ok
}

// DeleteNamespace removes a namespace from the registry.
// Trees which use the namespace are not affected, but the namespace can no
// longer be used to address properties.
func DeleteNamespace(uri string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	pfx, ok := reg.nsToPrefix[uri]
	if !ok {
		return
	}
	delete(reg.nsToPrefix, uri)
	delete(reg.prefixToNS, pfx)
}

// Namespaces returns a snapshot of the namespace registry,
// as a map from namespace URI to prefix.
func Namespaces() map[string]string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return maps.Clone(reg.nsToPrefix)
}

// prefixOf returns the registered prefix for ns.
// The error is of type BadParam if the namespace is unknown.
func prefixOf(op, ns string) (string, error) {
	if ns == "" {
		return "", newError(BadParam, op, "empty namespace URI")
	}
	pfx, ok := GetNamespacePrefix(ns)
	if !ok {
		return "", newError(BadParam, op, "unregistered namespace %q", ns)
	}
	return pfx, nil
}

func isValidPrefix(pfx string) bool {
	return pfx != "" && isXMLName(pfx) && !strings.Contains(pfx, ":")
}

func isXMLName(s string) bool {
	return jvxml.IsName([]byte(s))
}

// getPrefix chooses a new prefix for the given namespace.
// The new prefix is chosen to be different from the keys of prefixToNS.
// If suggested is non-empty, it is used as the starting point.
func getPrefix(prefixToNS map[string]string, ns, suggested string) string {
	// The following code is a modified version of code from
	// encoding/xml/marshal.go in the Go standard library.

	// Pick a name. We try to use the final element of the path
	// but fall back to _.
	prefix := suggested
	if prefix == "" {
		prefix = strings.TrimRight(ns, "/#")
		if i := strings.LastIndexAny(prefix, "/:"); i >= 0 {
			prefix = prefix[i+1:]
		}
	}
	if !isValidPrefix(prefix) {
		prefix = "_"
	}
	// xmlanything is reserved and any variant of it regardless of
	// case should be matched, so:
	//    (('X'|'x') ('M'|'m') ('L'|'l'))
	// See Section 2.3 of https://www.w3.org/TR/REC-xml/
	if len(prefix) >= 3 && strings.EqualFold(prefix[:3], "xml") {
		prefix = "_" + prefix
	}

	if _, taken := prefixToNS[prefix]; taken {
		// Name is taken.  Find a better one.
		for idx := 1; ; idx++ {
			if id := prefix + "_" + strconv.Itoa(idx); prefixToNS[id] == "" {
				prefix = id
				break
			}
		}
	}
	// End of code from encoding/xml/marshal.go

	return prefix
}
