// Package semantic builds and exposes the semantic model of a parsed
// program: a flat arena of syntax nodes with explicit parent links, a scope
// tree, and a symbol/reference table linking every use-site back to its
// declaration. The arena and the tables are built once by [Builder] and are
// read-only afterwards, so analyses may share them across goroutines without
// locking.
package semantic

// NodeID indexes a node in the [Nodes] arena. Ids are dense, assigned in
// insertion order, and stay valid for the arena's entire lifetime.
type NodeID int32

// ScopeID indexes a scope in the scope tree.
type ScopeID int32

// BlockID identifies a control-flow block. The semantic phase treats it as
// opaque metadata: one block is allocated per program or function entry.
type BlockID int32

// NoNode marks an absent node link (the root's parent).
const NoNode NodeID = -1

// NodeFlags is a small per-node flag set, updatable in place after
// insertion.
type NodeFlags uint8

// FlagNone is the empty flag set.
const FlagNone NodeFlags = 0

// Node flag bits.
const (
	// FlagClass marks nodes inside a class body.
	FlagClass NodeFlags = 1 << iota
	// FlagParameter marks nodes inside a formal parameter list.
	FlagParameter
)

// Has reports whether all bits in flag are set.
func (f NodeFlags) Has(flag NodeFlags) bool {
	return f&flag == flag
}

// Set returns f with the bits in flag set.
func (f NodeFlags) Set(flag NodeFlags) NodeFlags {
	return f | flag
}
