package semantic

import (
	"iter"
	"slices"

	"github.com/Sumatoshi-tech/jsmangle/pkg/jsast"
)

// Node is one slot of the arena: a syntax construct together with the scope,
// control-flow block and flags the builder associated with it. Nodes are
// immutable after insertion except for flags.
type Node struct {
	id    NodeID
	kind  jsast.Node
	scope ScopeID
	block BlockID
	flags NodeFlags
}

// ID returns the node's arena id.
func (n Node) ID() NodeID { return n.id }

// Kind returns the syntax construct this node represents.
func (n Node) Kind() jsast.Node { return n.kind }

// ScopeID returns the scope owning this node.
func (n Node) ScopeID() ScopeID { return n.scope }

// BlockID returns the control-flow block containing this node.
func (n Node) BlockID() BlockID { return n.block }

// Flags returns the node's flag set.
func (n Node) Flags() NodeFlags { return n.flags }

// Nodes is the node arena: all nodes of one program flattened into a slice,
// with a parallel slice of parent ids sharing the same id space. There are
// no tree pointers; all structure is id-based. The zero value is not usable,
// use [NewNodes].
type Nodes struct {
	root      NodeID
	nodes     []Node
	parentIDs []NodeID
}

// NewNodes returns an empty arena.
func NewNodes() *Nodes {
	return &Nodes{root: NoNode}
}

// Len returns the number of nodes in the arena.
func (ns *Nodes) Len() int {
	return len(ns.nodes)
}

// IsEmpty reports whether the arena holds no nodes.
func (ns *Nodes) IsEmpty() bool {
	return len(ns.nodes) == 0
}

// Reserve grows the arena's capacity by additional slots.
func (ns *Nodes) Reserve(additional int) {
	ns.nodes = slices.Grow(ns.nodes, additional)
	ns.parentIDs = slices.Grow(ns.parentIDs, additional)
}

// AddNode appends a non-root node and returns its id. The parent must
// already be in the arena; callers guarantee the parent links form a forest
// rooted at the program node.
func (ns *Nodes) AddNode(kind jsast.Node, scope ScopeID, parent NodeID, block BlockID, flags NodeFlags) NodeID {
	id := NodeID(len(ns.nodes))
	ns.parentIDs = append(ns.parentIDs, parent)
	ns.nodes = append(ns.nodes, Node{id: id, kind: kind, scope: scope, block: block, flags: flags})

	return id
}

// AddProgramNode appends the unique root node and returns its id. Callers
// guarantee it is called at most once per arena.
func (ns *Nodes) AddProgramNode(kind jsast.Node, scope ScopeID, block BlockID, flags NodeFlags) NodeID {
	id := NodeID(len(ns.nodes))
	ns.parentIDs = append(ns.parentIDs, NoNode)
	ns.nodes = append(ns.nodes, Node{id: id, kind: kind, scope: scope, block: block, flags: flags})
	ns.root = id

	return id
}

// Get returns the node with the given id. An id that was never assigned is a
// programmer error and panics.
func (ns *Nodes) Get(id NodeID) Node {
	return ns.nodes[id]
}

// Kind returns the syntax construct of the node with the given id.
func (ns *Nodes) Kind(id NodeID) jsast.Node {
	return ns.nodes[id].kind
}

// ScopeID returns the scope of the node with the given id.
func (ns *Nodes) ScopeID(id NodeID) ScopeID {
	return ns.nodes[id].scope
}

// ParentID returns the parent of the given node, or false for the root.
func (ns *Nodes) ParentID(id NodeID) (NodeID, bool) {
	parent := ns.parentIDs[id]
	if parent == NoNode {
		return NoNode, false
	}

	return parent, true
}

// ParentNode returns the parent node of the given node, or false for the
// root.
func (ns *Nodes) ParentNode(id NodeID) (Node, bool) {
	parent, ok := ns.ParentID(id)
	if !ok {
		return Node{}, false
	}

	return ns.nodes[parent], true
}

// ParentKind returns the syntax construct of the given node's parent, or
// false for the root.
func (ns *Nodes) ParentKind(id NodeID) (jsast.Node, bool) {
	parent, ok := ns.ParentID(id)
	if !ok {
		return nil, false
	}

	return ns.nodes[parent].kind, true
}

// Root returns the root node id, or false if no root was added.
func (ns *Nodes) Root() (NodeID, bool) {
	if ns.root == NoNode {
		return NoNode, false
	}

	return ns.root, true
}

// RootNode returns the root node, or false if no root was added.
func (ns *Nodes) RootNode() (Node, bool) {
	root, ok := ns.Root()
	if !ok {
		return Node{}, false
	}

	return ns.nodes[root], true
}

// SetFlags replaces the flags of the node with the given id. Flags are the
// only part of a node later passes may update in place.
func (ns *Nodes) SetFlags(id NodeID, flags NodeFlags) {
	ns.nodes[id].flags = flags
}

// Ancestors walks up the parent chain of the given node. The first id
// produced is the node's parent; the last is the root. The sequence is
// re-derivable by calling Ancestors again.
func (ns *Nodes) Ancestors(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for current := ns.parentIDs[id]; current != NoNode; current = ns.parentIDs[current] {
			if !yield(current) {
				return
			}
		}
	}
}

// AncestorKinds walks up the parent chain yielding each ancestor's syntax
// construct, parent first.
func (ns *Nodes) AncestorKinds(id NodeID) iter.Seq[jsast.Node] {
	return func(yield func(jsast.Node) bool) {
		for ancestor := range ns.Ancestors(id) {
			if !yield(ns.nodes[ancestor].kind) {
				return
			}
		}
	}
}

// Iter yields every node in insertion order.
func (ns *Nodes) Iter() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, n := range ns.nodes {
			if !yield(n) {
				return
			}
		}
	}
}
