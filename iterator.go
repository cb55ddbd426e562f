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
	"iter"
	"strconv"
)

// An Item is a node visited by an [Iterator].
type Item struct {
	Namespace string // namespace of the schema which contains the node
	Path      string // path of the node, empty for schema nodes
	Value     string
	Flags     PropertyFlags
}

// An Iterator visits the nodes of a tree in depth-first pre-order.
// The qualifiers of a node are visited before its fields or items.
//
// The tree must not be modified while an iteration is in progress.
type Iterator struct {
	mode    IterMode
	stack   []*iterFrame
	cur     Item
	curNode *node
	curPath string
	skip    SkipMode
	state   iterState
}

type iterState int

const (
	iterNotStarted iterState = iota
	iterInProgress
	iterExhausted
)

// iterFrame holds the nodes which still need to be visited on one level.
type iterFrame struct {
	ns     string
	parent string // path of the parent node
	nodes  []*node
	pos    int
	last   bool // the nodes must not be descended into
}

// Iterate returns an iterator over the nodes below ns and path.
//
// If ns and path are both empty, the whole tree is visited, starting with
// the schema nodes.  If only path is empty, the given schema is visited.
// Otherwise the iteration starts at the given property.  Unless
// [JustChildren] is given, the root node itself is visited first.
// If the root does not exist, the iteration is empty.
func (t *Tree) Iterate(ns, path string, mode IterMode) (*Iterator, error) {
	const op = "Iterate"
	if err := t.check(op); err != nil {
		return nil, err
	}
	if ns == "" && path != "" {
		return nil, newError(BadParam, op, "missing namespace for path %q", path)
	}
	it := &Iterator{mode: mode}
	justChildren := mode&JustChildren != 0

	switch {
	case ns == "":
		if justChildren {
			it.push(&iterFrame{nodes: t.schemas, last: true})
		} else {
			it.push(&iterFrame{nodes: t.schemas})
		}
	case path == "":
		if _, err := prefixOf(op, ns); err != nil {
			return nil, err
		}
		s := t.findSchema(ns)
		if s == nil {
			break
		}
		if justChildren {
			it.push(&iterFrame{ns: ns, nodes: s.children, last: true})
		} else {
			it.push(&iterFrame{ns: ns, nodes: []*node{s}})
		}
	default:
		rns, steps, err := t.resolve(op, ns, path)
		if err != nil {
			return nil, err
		}
		n := t.lookup(rns, steps)
		if n == nil {
			break
		}
		rootPath := nodePath(n)
		if justChildren {
			it.push(&iterFrame{ns: rns, parent: rootPath, nodes: it.childrenOf(n), last: true})
		} else {
			it.push(&iterFrame{ns: rns, parent: parentPath(n), nodes: []*node{n}})
		}
	}
	return it, nil
}

func (it *Iterator) push(f *iterFrame) {
	if len(f.nodes) > 0 {
		it.stack = append(it.stack, f)
	}
}

// childrenOf returns the nodes below n, qualifiers first.
func (it *Iterator) childrenOf(n *node) []*node {
	if it.mode&OmitQualifiers != 0 || len(n.qualifiers) == 0 {
		return n.children
	}
	res := make([]*node, 0, len(n.qualifiers)+len(n.children))
	res = append(res, n.qualifiers...)
	return append(res, n.children...)
}

// Next advances the iterator to the next node.  It returns false when the
// iteration is finished.
func (it *Iterator) Next() bool {
	if it.state == iterExhausted {
		return false
	}

	if it.state == iterInProgress {
		switch it.skip {
		case SkipSiblings:
			// drop the frame of the current node
			it.stack = it.stack[:len(it.stack)-1]
		case SkipSubtree:
			// nothing to do
		default:
			it.descend(it.curNode, it.curPath)
		}
	}
	it.state = iterInProgress
	it.skip = 0

	for len(it.stack) > 0 {
		f := it.stack[len(it.stack)-1]
		if f.pos >= len(f.nodes) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		n := f.nodes[f.pos]
		f.pos++

		ns := f.ns
		if n.flags&SchemaNode != 0 {
			ns = n.name.Space
		}
		path := joinPath(f.parent, n)
		if it.mode&OmitQualifiers != 0 && n.isQualifier() {
			continue
		}
		if it.mode&JustLeafNodes != 0 && !(n.isSimple() && n.flags&SchemaNode == 0) {
			if !f.last {
				it.pushChildren(ns, path, n)
			}
			continue
		}

		it.curNode = n
		it.curPath = path
		if f.last {
			it.curNode = nil
		}
		it.cur = Item{
			Namespace: ns,
			Path:      path,
			Value:     n.value,
			Flags:     flagsOf(n),
		}
		if it.mode&JustLeafName != 0 {
			it.cur.Path = leafName(n)
		}
		return true
	}

	it.state = iterExhausted
	it.cur = Item{}
	it.curNode = nil
	return false
}

// descend schedules the children of the current node.
func (it *Iterator) descend(n *node, path string) {
	if n == nil {
		return
	}
	ns := it.cur.Namespace
	it.pushChildren(ns, path, n)
}

func (it *Iterator) pushChildren(ns, path string, n *node) {
	var f *iterFrame
	if n.flags&SchemaNode != 0 {
		f = &iterFrame{ns: n.name.Space, nodes: n.children}
	} else {
		f = &iterFrame{ns: ns, parent: path, nodes: it.childrenOf(n)}
	}
	it.push(f)
}

// Item returns the node found by the last call to [Iterator.Next].
func (it *Iterator) Item() Item {
	return it.cur
}

// Skip causes the next call to [Iterator.Next] to skip the subtree below
// the current node ([SkipSubtree]), or the subtree together with the
// remaining siblings of the current node ([SkipSiblings]).
func (it *Iterator) Skip(mode SkipMode) {
	if it.state != iterInProgress {
		return
	}
	it.skip = mode
}

// All returns the remaining nodes as a sequence.
func (it *Iterator) All() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for it.Next() {
			if !yield(it.Item()) {
				return
			}
		}
	}
}

// joinPath returns the path of n, given the path of its parent.
func joinPath(parent string, n *node) string {
	switch {
	case n.flags&SchemaNode != 0:
		return ""
	case parent == "":
		return qualifiedName(n)
	case n.isQualifier():
		return parent + "/?" + qualifiedName(n)
	case n.isItem():
		return parent + "[" + strconv.Itoa(itemIndex(n)) + "]"
	default:
		return parent + "/" + qualifiedName(n)
	}
}

// nodePath returns the full path of n.
func nodePath(n *node) string {
	if n.flags&SchemaNode != 0 {
		return ""
	}
	return joinPath(parentPath(n), n)
}

func parentPath(n *node) string {
	if n.parent == nil {
		return ""
	}
	return nodePath(n.parent)
}

// leafName returns the last step of the path of n.
func leafName(n *node) string {
	switch {
	case n.flags&SchemaNode != 0:
		return ""
	case n.isQualifier():
		return "?" + n.name.Local
	case n.isItem():
		return "[" + strconv.Itoa(itemIndex(n)) + "]"
	default:
		return n.name.Local
	}
}

func itemIndex(n *node) int {
	for i, c := range n.parent.children {
		if c == n {
			return i + 1
		}
	}
	return 0
}

// qualifiedName returns the "prefix:local" form of the name of n.
func qualifiedName(n *node) string {
	pfx, ok := GetNamespacePrefix(n.name.Space)
	if !ok {
		pfx = getPrefix(nil, n.name.Space, "")
	}
	return pfx + ":" + n.name.Local
}
