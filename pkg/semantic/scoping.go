package semantic

import (
	"iter"

	"github.com/Sumatoshi-tech/jsmangle/pkg/jsast"
)

// Reference is one use-site of a name: the arena node where the use occurs
// and the symbol it resolved to, if any.
type Reference struct {
	node   NodeID
	symbol jsast.SymbolID
}

// NodeID returns the arena node where the use occurs.
func (r Reference) NodeID() NodeID { return r.node }

// SymbolID returns the resolved symbol, or false when the reference is
// unresolved (a global or a missing name).
func (r Reference) SymbolID() (jsast.SymbolID, bool) {
	if r.symbol == jsast.NoSymbol {
		return jsast.NoSymbol, false
	}

	return r.symbol, true
}

// scopeFlags classify a scope for binding purposes.
type scopeFlags uint8

const (
	// scopeVarBoundary marks scopes that `var` declarations hoist to:
	// the program scope and every function scope.
	scopeVarBoundary scopeFlags = 1 << iota
)

// scopeData is one scope of the scope tree. Bindings map names to symbols
// declared directly in this scope.
type scopeData struct {
	parent   ScopeID
	flags    scopeFlags
	bindings map[string]jsast.SymbolID
}

// noScope marks an absent scope link (the root scope's parent).
const noScope ScopeID = -1

// Scoping is the symbol and reference table of one program. It is populated
// by [Builder] and read-only afterwards.
type Scoping struct {
	names        []string
	spans        []jsast.Span
	declarations []NodeID
	resolvedRefs [][]jsast.ReferenceID
	references   []Reference
	scopes       []scopeData
	rootScope    ScopeID
}

// NewScoping returns an empty table.
func NewScoping() *Scoping {
	return &Scoping{rootScope: noScope}
}

// SymbolCount returns the number of declared symbols.
func (s *Scoping) SymbolCount() int {
	return len(s.names)
}

// SymbolIDs yields every declared symbol id in declaration order.
func (s *Scoping) SymbolIDs() iter.Seq[jsast.SymbolID] {
	return func(yield func(jsast.SymbolID) bool) {
		for id := range s.names {
			if !yield(jsast.SymbolID(id)) {
				return
			}
		}
	}
}

// SymbolName returns the textual name of a symbol.
func (s *Scoping) SymbolName(id jsast.SymbolID) string {
	return s.names[id]
}

// SymbolSpan returns the source span of a symbol's declaring identifier.
func (s *Scoping) SymbolSpan(id jsast.SymbolID) jsast.Span {
	return s.spans[id]
}

// SymbolDeclaration returns the arena node where the symbol is declared.
func (s *Scoping) SymbolDeclaration(id jsast.SymbolID) NodeID {
	return s.declarations[id]
}

// ResolvedReferenceIDs returns the references resolved to the symbol.
func (s *Scoping) ResolvedReferenceIDs(id jsast.SymbolID) []jsast.ReferenceID {
	return s.resolvedRefs[id]
}

// Reference returns the reference with the given id.
func (s *Scoping) Reference(id jsast.ReferenceID) Reference {
	return s.references[id]
}

// ReferenceCount returns the number of references, resolved or not.
func (s *Scoping) ReferenceCount() int {
	return len(s.references)
}

// RootScope returns the program scope id.
func (s *Scoping) RootScope() ScopeID {
	return s.rootScope
}

// ScopeParent returns the parent of a scope, or false for the root scope.
func (s *Scoping) ScopeParent(id ScopeID) (ScopeID, bool) {
	parent := s.scopes[id].parent
	if parent == noScope {
		return noScope, false
	}

	return parent, true
}

// addScope appends a scope and returns its id. A noScope parent makes it the
// root scope.
func (s *Scoping) addScope(parent ScopeID, flags scopeFlags) ScopeID {
	id := ScopeID(len(s.scopes))
	s.scopes = append(s.scopes, scopeData{parent: parent, flags: flags, bindings: make(map[string]jsast.SymbolID)})

	if parent == noScope {
		s.rootScope = id
	}

	return id
}

// declareSymbol binds name in the given scope, reusing an existing binding
// of the same name in that scope (var redeclaration). Returns the symbol id.
func (s *Scoping) declareSymbol(scope ScopeID, name string, declaration NodeID, span jsast.Span) jsast.SymbolID {
	if existing, ok := s.scopes[scope].bindings[name]; ok {
		return existing
	}

	id := jsast.SymbolID(len(s.names))
	s.names = append(s.names, name)
	s.spans = append(s.spans, span)
	s.declarations = append(s.declarations, declaration)
	s.resolvedRefs = append(s.resolvedRefs, nil)
	s.scopes[scope].bindings[name] = id

	return id
}

// addReference appends an unresolved reference and returns its id.
func (s *Scoping) addReference(node NodeID) jsast.ReferenceID {
	id := jsast.ReferenceID(len(s.references))
	s.references = append(s.references, Reference{node: node, symbol: jsast.NoSymbol})

	return id
}

// resolveReference links a reference to a symbol.
func (s *Scoping) resolveReference(ref jsast.ReferenceID, symbol jsast.SymbolID) {
	s.references[ref].symbol = symbol
	s.resolvedRefs[symbol] = append(s.resolvedRefs[symbol], ref)
}

// lookup resolves name by walking the scope chain from the given scope to
// the root. Returns false when no scope binds the name.
func (s *Scoping) lookup(scope ScopeID, name string) (jsast.SymbolID, bool) {
	for current := scope; current != noScope; current = s.scopes[current].parent {
		if symbol, ok := s.scopes[current].bindings[name]; ok {
			return symbol, true
		}
	}

	return jsast.NoSymbol, false
}

// varScopeFor returns the nearest enclosing scope that `var` declarations
// bind in: the scope itself when it is a var boundary, else the closest
// boundary ancestor.
func (s *Scoping) varScopeFor(scope ScopeID) ScopeID {
	current := scope
	for s.scopes[current].flags&scopeVarBoundary == 0 {
		current = s.scopes[current].parent
	}

	return current
}
