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
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ArrayLastItem can be used as an array index to address the last item of
// an array.  When used with [Tree.SetArrayItem], a new item is appended.
const ArrayLastItem = -1

// ComposeArrayItemPath returns the path of an array item.
// The index is 1-based; [ArrayLastItem] is composed as "[last()]".
func ComposeArrayItemPath(ns, arrayName string, index int) (string, error) {
	const op = "ComposeArrayItemPath"
	if _, err := checkPathBase(op, ns, arrayName); err != nil {
		return "", err
	}
	switch {
	case index == ArrayLastItem:
		return arrayName + "[last()]", nil
	case index < 1:
		return "", newError(BadParam, op, "invalid array index %d", index)
	}
	return arrayName + "[" + strconv.Itoa(index) + "]", nil
}

// ComposeStructFieldPath returns the path of a struct field.
func ComposeStructFieldPath(ns, structName, fieldNS, fieldName string) (string, error) {
	const op = "ComposeStructFieldPath"
	if _, err := checkPathBase(op, ns, structName); err != nil {
		return "", err
	}
	pfx, err := prefixOf(op, fieldNS)
	if err != nil {
		return "", err
	}
	if !isValidLocalName(fieldName) {
		return "", newError(BadParam, op, "invalid field name %q", fieldName)
	}
	return structName + "/" + pfx + ":" + fieldName, nil
}

// ComposeQualifierPath returns the path of a qualifier.
func ComposeQualifierPath(ns, propName, qualNS, qualName string) (string, error) {
	const op = "ComposeQualifierPath"
	if _, err := checkPathBase(op, ns, propName); err != nil {
		return "", err
	}
	pfx, err := prefixOf(op, qualNS)
	if err != nil {
		return "", err
	}
	if !isValidLocalName(qualName) {
		return "", newError(BadParam, op, "invalid qualifier name %q", qualName)
	}
	return propName + "/?" + pfx + ":" + qualName, nil
}

// ComposeLangSelector returns a path which selects an item of a language
// alternative array by its xml:lang qualifier.
//
// When the path is read, the item is chosen in the same way as in
// [Tree.GetLocalizedText]: an exact match is preferred, followed by an item
// with the same primary language, followed by the x-default item.
func ComposeLangSelector(ns, arrayName, lang string) (string, error) {
	const op = "ComposeLangSelector"
	if _, err := checkPathBase(op, ns, arrayName); err != nil {
		return "", err
	}
	if lang == "" {
		return "", newError(BadParam, op, "empty language")
	}
	return arrayName + "[?xml:lang=" + quoteSelectorValue(lang) + "]", nil
}

// ComposeFieldSelector returns a path which selects the item of an array of
// structs which has the given field value.
func ComposeFieldSelector(ns, arrayName, fieldNS, fieldName, fieldValue string) (string, error) {
	const op = "ComposeFieldSelector"
	if _, err := checkPathBase(op, ns, arrayName); err != nil {
		return "", err
	}
	pfx, err := prefixOf(op, fieldNS)
	if err != nil {
		return "", err
	}
	if !isValidLocalName(fieldName) {
		return "", newError(BadParam, op, "invalid field name %q", fieldName)
	}
	return arrayName + "[" + pfx + ":" + fieldName + "=" + quoteSelectorValue(fieldValue) + "]", nil
}

// DecomposeArrayItemPath splits the path of an array item into the path of
// the array and the index.  The index of "[last()]" is [ArrayLastItem].
func DecomposeArrayItemPath(ns, path string) (string, int, error) {
	const op = "DecomposeArrayItemPath"
	steps, err := parsePath(op, ns, path)
	if err != nil {
		return "", 0, err
	}
	last := steps[len(steps)-1]
	switch last.kind {
	case stepIndex:
		return path[:last.start], last.index, nil
	case stepLast:
		return path[:last.start], ArrayLastItem, nil
	}
	return "", 0, newError(BadParam, op, "%q is not an array item path", path)
}

// DecomposeStructFieldPath splits the path of a struct field into the path
// of the struct and the field name.
func DecomposeStructFieldPath(ns, path string) (structName, fieldNS, fieldName string, err error) {
	const op = "DecomposeStructFieldPath"
	steps, err := parsePath(op, ns, path)
	if err != nil {
		return "", "", "", err
	}
	last := steps[len(steps)-1]
	if last.kind != stepField || len(steps) < 2 {
		return "", "", "", newError(BadParam, op, "%q is not a struct field path", path)
	}
	return path[:last.start], last.name.Space, last.name.Local, nil
}

// DecomposeQualifierPath splits the path of a qualifier into the path of the
// qualified property and the qualifier name.
func DecomposeQualifierPath(ns, path string) (propName, qualNS, qualName string, err error) {
	const op = "DecomposeQualifierPath"
	steps, err := parsePath(op, ns, path)
	if err != nil {
		return "", "", "", err
	}
	last := steps[len(steps)-1]
	if last.kind != stepQualifier {
		return "", "", "", newError(BadParam, op, "%q is not a qualifier path", path)
	}
	return path[:last.start], last.name.Space, last.name.Local, nil
}

// DecomposeLangSelector splits a language selector path into the path of the
// array and the language.
func DecomposeLangSelector(ns, path string) (arrayName, lang string, err error) {
	const op = "DecomposeLangSelector"
	steps, err := parsePath(op, ns, path)
	if err != nil {
		return "", "", err
	}
	last := steps[len(steps)-1]
	if last.kind != stepQualSelector || last.name != nameXMLLang {
		return "", "", newError(BadParam, op, "%q is not a language selector", path)
	}
	return path[:last.start], last.value, nil
}

// DecomposeFieldSelector splits a field selector path into its components.
func DecomposeFieldSelector(ns, path string) (arrayName, fieldNS, fieldName, fieldValue string, err error) {
	const op = "DecomposeFieldSelector"
	steps, err := parsePath(op, ns, path)
	if err != nil {
		return "", "", "", "", err
	}
	last := steps[len(steps)-1]
	if last.kind != stepFieldSelector {
		return "", "", "", "", newError(BadParam, op, "%q is not a field selector", path)
	}
	return path[:last.start], last.name.Space, last.name.Local, last.value, nil
}

// checkPathBase checks the namespace and the path a composer extends.
func checkPathBase(op, ns, base string) ([]pathStep, error) {
	if base == "" {
		return nil, newError(BadParam, op, "empty property name")
	}
	return parsePath(op, ns, base)
}

func quoteSelectorValue(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

type stepKind int

const (
	stepField         stepKind = iota // a top-level property or struct field
	stepQualifier                     // /?ns:name
	stepIndex                         // [n]
	stepLast                          // [last()]
	stepQualSelector                  // [?ns:name="value"], including xml:lang
	stepFieldSelector                 // [ns:name="value"]
)

// A pathStep is one step of a parsed property path.
type pathStep struct {
	kind  stepKind
	name  xml.Name // field, qualifier, or selector name
	index int      // for stepIndex
	value string   // for selectors
	start int      // byte offset of the step in the path string

	// form is the array form to use if the step creates an array.
	// It is set for steps which come from alias resolution.
	form PropertyFlags
}

var nameXMLLang = xml.Name{Space: XMLNamespace, Local: "lang"}

// parsePath parses an XMP path expression relative to the schema ns.
//
// The first step is a property name, with or without the schema prefix.
// It is followed by any number of "/prefix:field", "/?prefix:qualifier",
// "[index]", "[last()]", "[prefix:field="value"]" and
// "[?prefix:qualifier="value"]" steps.
func parsePath(op, ns, path string) ([]pathStep, error) {
	schemaPfx, err := prefixOf(op, ns)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, newError(BadParam, op, "empty property path")
	}

	bad := func(pos int, msg string) error {
		return newError(BadParam, op, "invalid path %q at offset %d: %s", path, pos, msg)
	}

	var steps []pathStep

	// the root property
	end := strings.IndexAny(path, "/[")
	if end < 0 {
		end = len(path)
	}
	root := path[:end]
	local := root
	if pfx, name, found := strings.Cut(root, ":"); found {
		if pfx != schemaPfx {
			return nil, bad(0, "prefix "+pfx+" does not match the schema")
		}
		local = name
	}
	if !isValidLocalName(local) {
		return nil, bad(0, "invalid property name")
	}
	steps = append(steps, pathStep{kind: stepField, name: xml.Name{Space: ns, Local: local}})

	pos := end
	for pos < len(path) {
		start := pos
		switch path[pos] {
		case '/':
			pos++
			kind := stepField
			if pos < len(path) && path[pos] == '?' {
				kind = stepQualifier
				pos++
			}
			end := strings.IndexAny(path[pos:], "/[")
			if end < 0 {
				end = len(path)
			} else {
				end += pos
			}
			name, err := parseQName(path[pos:end])
			if err != nil {
				return nil, bad(pos, err.Error())
			}
			steps = append(steps, pathStep{kind: kind, name: name, start: start})
			pos = end

		case '[':
			pos++
			step, n, err := parseBracket(path[pos:])
			if err != nil {
				return nil, bad(pos, err.Error())
			}
			step.start = start
			steps = append(steps, step)
			pos += n

		default:
			return nil, bad(pos, "unexpected character")
		}
	}
	return steps, nil
}

// parseBracket parses the contents of a [...] step.  The input starts
// just after the opening bracket.  The returned length includes the closing
// bracket.
func parseBracket(s string) (pathStep, int, error) {
	if strings.HasPrefix(s, "last()]") {
		return pathStep{kind: stepLast}, len("last()]"), nil
	}
	if len(s) > 0 && s[0] >= '0' && s[0] <= '9' {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return pathStep{}, 0, errMissingBracket
		}
		idx, err := strconv.Atoi(s[:end])
		if err != nil || idx < 1 {
			return pathStep{}, 0, fmt.Errorf("invalid array index %q", s[:end])
		}
		return pathStep{kind: stepIndex, index: idx}, end + 1, nil
	}

	kind := stepFieldSelector
	pos := 0
	if strings.HasPrefix(s, "?") {
		kind = stepQualSelector
		pos = 1
	}
	eq := strings.IndexByte(s[pos:], '=')
	if eq < 0 {
		return pathStep{}, 0, errors.New("missing '=' in selector")
	}
	eq += pos
	name, err := parseQName(s[pos:eq])
	if err != nil {
		return pathStep{}, 0, err
	}
	pos = eq + 1
	if pos >= len(s) || (s[pos] != '"' && s[pos] != '\'') {
		return pathStep{}, 0, errors.New("selector value must be quoted")
	}
	quote := s[pos]
	pos++
	var val strings.Builder
	for {
		if pos >= len(s) {
			return pathStep{}, 0, errors.New("unterminated selector value")
		}
		c := s[pos]
		pos++
		if c == quote {
			if pos < len(s) && s[pos] == quote {
				val.WriteByte(quote)
				pos++
				continue
			}
			break
		}
		val.WriteByte(c)
	}
	if pos >= len(s) || s[pos] != ']' {
		return pathStep{}, 0, errMissingBracket
	}
	step := pathStep{kind: kind, name: name, value: val.String()}
	return step, pos + 1, nil
}

var errMissingBracket = errors.New("missing ']'")

// parseQName resolves a "prefix:local" name using the namespace registry.
func parseQName(s string) (xml.Name, error) {
	pfx, local, found := strings.Cut(s, ":")
	if !found {
		return xml.Name{}, fmt.Errorf("name %q has no prefix", s)
	}
	if !isValidLocalName(local) {
		return xml.Name{}, fmt.Errorf("invalid name %q", s)
	}
	ns, ok := GetNamespaceURI(pfx)
	if !ok {
		return xml.Name{}, fmt.Errorf("unknown prefix %q", pfx)
	}
	return xml.Name{Space: ns, Local: local}, nil
}
