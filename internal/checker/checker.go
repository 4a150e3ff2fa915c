// Package checker implements C6, the type checker: a single AST traversal
// that assigns a typesystem.Type to every node via identity-keyed
// union-find unification, following §4.4 of the specification.
package checker

import (
	"fmt"

	"github.com/sml-lang/sml/internal/symbols"
	"github.com/sml-lang/sml/internal/typesystem"
)

// lookupMode is the checker's identifier-resolution mode, tracked on a
// stack so nested constructs (a type annotation inside a pattern inside an
// expression) resolve bare names correctly (§4.4 "Lookup mode").
type lookupMode int

const (
	modeValue lookupMode = iota
	modeType
	modePattern
)

// pendingFill is a pattern name bound while its type was still an unbound
// Var, recorded so fillTypes can materialize a stable letter for it at the
// enclosing function match or item boundary (§4.4 "fillTypes").
type pendingFill struct {
	name string
	typ  typesystem.Type
}

// Checker is the C6 component. One Checker is reused across items in a
// session; reset clears its per-item state without touching the symbol
// table (which is reset independently, if at all, by the session).
type Checker struct {
	scope *symbols.Table

	// dsu maps a unification Var to its representative; find walks this
	// chain with path compression. Only Vars are ever keys: concrete
	// compound types need no union-find entry of their own, since their
	// only mutable parts are the Vars nested inside them, which each have
	// their own dsu entry (§9 "union-find over pointer identity").
	dsu map[*typesystem.Var]typesystem.Type

	modeStack []lookupMode
	pending   []pendingFill

	// tvars maps a syntactic `'a`-style type-variable name to the Var it
	// resolved to for the lifetime of one item, so `'a -> 'a` binds both
	// occurrences to the same variable while distinct items (or distinct
	// `fn`s within the Non-goal recursive case) get fresh ones.
	tvars map[string]*typesystem.Var

	freshCount int
	itemID     string
}

// New creates a Checker bound to scope, the root (or current) symbol
// table overlay.
func New(scope *symbols.Table) *Checker {
	c := &Checker{scope: scope}
	c.reset("")
	return c
}

// reset clears per-item state at the start of every CheckProgram call, per
// §9 ("fresh-name counter... reset at each item boundary").
func (c *Checker) reset(itemID string) {
	c.dsu = map[*typesystem.Var]typesystem.Type{}
	c.modeStack = []lookupMode{modeValue}
	c.pending = nil
	c.tvars = map[string]*typesystem.Var{}
	c.freshCount = 0
	c.itemID = itemID
}

func (c *Checker) mode() lookupMode { return c.modeStack[len(c.modeStack)-1] }

func (c *Checker) pushMode(m lookupMode) { c.modeStack = append(c.modeStack, m) }

func (c *Checker) popMode() { c.modeStack = c.modeStack[:len(c.modeStack)-1] }

// pushScope enters a new symbol-table overlay (fn/let/fun parameter list),
// §4.2 "Overlays".
func (c *Checker) pushScope() { c.scope = c.scope.Push() }

// popScope leaves the current overlay; guaranteed to run on every exit
// path by always being deferred immediately after pushScope (§5 "Scope
// overlays... guaranteed to be popped on every exit path").
func (c *Checker) popScope() { c.scope = c.scope.Pop() }

// freshVar yields the next fresh type variable, named 'a, 'b, ..., 'z,
// 'aa, 'ab, ... (§4.4 "fresh-variable counter").
func (c *Checker) freshVar() *typesystem.Var {
	name := freshName(c.freshCount)
	c.freshCount++
	return typesystem.NewVar(name)
}

func freshName(n int) string {
	// base-26 letters, 0 -> "a", 25 -> "z", 26 -> "aa", ...
	digits := []byte{}
	n++
	for n > 0 {
		n--
		digits = append([]byte{byte('a' + n%26)}, digits...)
		n /= 26
	}
	return "'" + string(digits)
}

// find returns t's canonical representative: Vars are resolved through the
// dsu chain with path compression, AliasT is stripped hop by hop until a
// non-alias remains (§4.4 unify's "strip Alias chains"), everything else
// is already canonical.
func (c *Checker) find(t typesystem.Type) typesystem.Type {
	if t == nil {
		return nil
	}
	if v, ok := t.(*typesystem.Var); ok {
		repr, ok := c.dsu[v]
		if !ok {
			return v
		}
		canon := c.find(repr)
		c.dsu[v] = canon
		return canon
	}
	if a, ok := t.(typesystem.AliasT); ok {
		return c.find(a.Bound)
	}
	return t
}

// link commits u and v (already find()'d) as equivalent, preferring a
// non-Var representative when one side is a Var (§4.4 "link(u,v) picks a
// non-Var representative when possible; symmetric otherwise").
func (c *Checker) link(u, v typesystem.Type) typesystem.Type {
	if uv, ok := u.(*typesystem.Var); ok {
		c.dsu[uv] = v
		return v
	}
	if vv, ok := v.(*typesystem.Var); ok {
		c.dsu[vv] = u
		return u
	}
	return u
}

// instantiate deep-copies t, replacing every distinct *Var it contains
// with a fresh one consistently (same source Var -> same fresh Var within
// one call). Used to turn a built-in operator's polymorphic schema into an
// independent type at each occurrence, per symbols.loadBuiltinValues.
func (c *Checker) instantiate(t typesystem.Type) typesystem.Type {
	fresh := map[*typesystem.Var]*typesystem.Var{}
	var walk func(typesystem.Type) typesystem.Type
	walk = func(t typesystem.Type) typesystem.Type {
		switch tt := t.(type) {
		case *typesystem.Var:
			if fv, ok := fresh[tt]; ok {
				return fv
			}
			fv := c.freshVar()
			fresh[tt] = fv
			return fv
		case typesystem.ListT:
			return typesystem.ListT{Elem: walk(tt.Elem)}
		case typesystem.TupleT:
			elems := make([]typesystem.Type, len(tt.Elems))
			for i, e := range tt.Elems {
				elems[i] = walk(e)
			}
			return typesystem.TupleT{Elems: elems}
		case typesystem.FunT:
			return typesystem.FunT{Param: walk(tt.Param), Ret: walk(tt.Ret)}
		case typesystem.FunOverloadedT:
			alts := make([]typesystem.Overload, len(tt.Alts))
			for i, a := range tt.Alts {
				alts[i] = typesystem.Overload{Param: walk(a.Param), Ret: walk(a.Ret)}
			}
			return typesystem.FunOverloadedT{Alts: alts}
		case typesystem.RecordT:
			fields := make(map[string]typesystem.Type, len(tt.Fields))
			for k, v := range tt.Fields {
				fields[k] = walk(v)
			}
			return typesystem.RecordT{Labels: tt.Labels, Fields: fields}
		default:
			return t
		}
	}
	return walk(t)
}

// verify recursively replaces every Var in t by its dsu representative,
// producing the canonical tree used for printing and handoff (§4.4
// "verify(T)").
func (c *Checker) verify(t typesystem.Type) typesystem.Type {
	t = c.find(t)
	switch tt := t.(type) {
	case typesystem.ListT:
		return typesystem.ListT{Elem: c.verify(tt.Elem)}
	case typesystem.TupleT:
		elems := make([]typesystem.Type, len(tt.Elems))
		for i, e := range tt.Elems {
			elems[i] = c.verify(e)
		}
		return typesystem.TupleT{Elems: elems}
	case typesystem.FunT:
		return typesystem.FunT{Param: c.verify(tt.Param), Ret: c.verify(tt.Ret)}
	case typesystem.RecordT:
		fields := make(map[string]typesystem.Type, len(tt.Fields))
		for k, v := range tt.Fields {
			fields[k] = c.verify(v)
		}
		return typesystem.RecordT{Labels: tt.Labels, Fields: fields}
	default:
		return t
	}
}

// addPendingFill records a pattern name whose type was still a Var when it
// was bound, so fillTypes can stabilize it later.
func (c *Checker) addPendingFill(name string, typ typesystem.Type) {
	c.pending = append(c.pending, pendingFill{name: name, typ: typ})
}

// fillTypes materializes every pending pattern-name type: if its dsu
// representative is still a Var, it is assigned a fresh stable letter and
// the result is recorded in the pattern-type namespace (§4.4 "Fresh
// variable materialization").
func (c *Checker) fillTypes() {
	for _, p := range c.pending {
		repr := c.find(p.typ)
		if _, ok := repr.(*typesystem.Var); ok {
			repr = c.freshVar()
		}
		c.scope.InsertPatternType(p.name, c.verify(repr))
	}
	c.pending = nil
}

// same reports whether s and t are the identical Type value (used for the
// unify "if s==t: ok" fast path, which must not panic on uncomparable
// nested types, hence the recover).
func same(s, t typesystem.Type) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return s == t
}

func typeKind(t typesystem.Type) string {
	return fmt.Sprintf("%T", t)
}
