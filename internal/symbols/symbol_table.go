// Package symbols implements C3, the symbol table: one overlay per scope,
// chained through an outer pointer exactly like the teacher's scope-chain
// environments, holding three independent namespaces (types, values,
// pattern types) plus the operator fixity table (§3 "Symbol table").
package symbols

import "github.com/sml-lang/sml/internal/typesystem"

// Fixity records how an identifier was declared with infix/infixr/nonfix
// (§3). Priority ranges 0-9; Right is true for infixr.
type Fixity struct {
	Priority int
	Right    bool
	Nonfix   bool
}

// Table is one scope overlay. Lookups walk outer chains outward to the
// root table, matching lexical scoping; inserts always land in the
// current (innermost) overlay.
type Table struct {
	outer *Table

	values       map[string]typesystem.Type
	types        map[string]typesystem.Type
	patternTypes map[string]typesystem.Type
	operators    map[string]Fixity

	// builtinOperators and allowOverride are only populated on the root
	// table; every overlay shares the root's pointer so a fixity
	// declaration made from inside a nested scope still consults the same
	// flag (§1.3 AllowFixityOverride).
	builtinOperators map[string]bool
	allowOverride    *bool
}

// New creates a root table with no outer scope.
func New() *Table {
	allow := true
	t := &Table{
		values:           map[string]typesystem.Type{},
		types:            map[string]typesystem.Type{},
		patternTypes:     map[string]typesystem.Type{},
		operators:        map[string]Fixity{},
		builtinOperators: map[string]bool{},
		allowOverride:    &allow,
	}
	t.loadBuiltins()
	return t
}

// Push returns a new overlay nested inside t, used when entering a `let`,
// `fn` body, or pattern scope (§4.2).
func (t *Table) Push() *Table {
	return &Table{
		outer:        t,
		values:       map[string]typesystem.Type{},
		types:        map[string]typesystem.Type{},
		patternTypes: map[string]typesystem.Type{},
		operators:    map[string]Fixity{},
	}
}

// root walks outward to the table that owns the builtin-operator set and
// the override flag.
func (t *Table) root() *Table {
	for t.outer != nil {
		t = t.outer
	}
	return t
}

// IsBuiltinOperator reports whether name was registered by loadBuiltins,
// i.e. whether rebinding its fixity counts as an override rather than a
// fresh user declaration.
func (t *Table) IsBuiltinOperator(name string) bool {
	return t.root().builtinOperators[name]
}

// AllowFixityOverride reports whether a user infix/infixr/nonfix
// declaration may currently rebind a built-in operator's fixity.
func (t *Table) AllowFixityOverride() bool {
	return *t.root().allowOverride
}

// SetAllowFixityOverride installs the session's configured value of
// AllowFixityOverride; called once, before any item is parsed.
func (t *Table) SetAllowFixityOverride(allow bool) {
	*t.root().allowOverride = allow
}

// Pop returns the enclosing scope, or t itself if t is already the root
// (mirrors the teacher's defensive Pop on a root environment).
func (t *Table) Pop() *Table {
	if t.outer == nil {
		return t
	}
	return t.outer
}

// Reset discards every binding in the root table and reloads the builtins;
// overlays pushed above the root are not cleared.
func (t *Table) Reset() {
	root := t
	for root.outer != nil {
		root = root.outer
	}
	root.values = map[string]typesystem.Type{}
	root.types = map[string]typesystem.Type{}
	root.patternTypes = map[string]typesystem.Type{}
	root.operators = map[string]Fixity{}
	root.loadBuiltins()
}

// InsertValue binds name to typ in the current overlay's value namespace.
func (t *Table) InsertValue(name string, typ typesystem.Type) { t.values[name] = typ }

// InsertType binds name to typ in the current overlay's type namespace.
func (t *Table) InsertType(name string, typ typesystem.Type) { t.types[name] = typ }

// InsertPatternType binds name in the pattern-type namespace, used while a
// pattern is being elaborated so its variables are visible to the body
// before the enclosing ValDec/Match finishes (§4.2).
func (t *Table) InsertPatternType(name string, typ typesystem.Type) { t.patternTypes[name] = typ }

// GetValue looks up name in the value namespace, walking outward.
func (t *Table) GetValue(name string) (typesystem.Type, bool) {
	for s := t; s != nil; s = s.outer {
		if typ, ok := s.values[name]; ok {
			return typ, true
		}
	}
	return nil, false
}

// GetType looks up name in the type namespace, walking outward.
func (t *Table) GetType(name string) (typesystem.Type, bool) {
	for s := t; s != nil; s = s.outer {
		if typ, ok := s.types[name]; ok {
			return typ, true
		}
	}
	return nil, false
}

// GetPatternType looks up name in the pattern-type namespace, walking
// outward.
func (t *Table) GetPatternType(name string) (typesystem.Type, bool) {
	for s := t; s != nil; s = s.outer {
		if typ, ok := s.patternTypes[name]; ok {
			return typ, true
		}
	}
	return nil, false
}
