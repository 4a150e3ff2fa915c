package symbols

// SetOperator registers name's fixity in the current overlay, the parse-time
// side effect of an infix/infixr/nonfix declaration (§4.3). Fixity
// declarations are conventionally global in SML, so callers should apply
// them at the root table rather than a pushed scope, but Table does not
// enforce that.
func (t *Table) SetOperator(name string, f Fixity) { t.operators[name] = f }

// CanSetOperator reports whether name's fixity may currently be changed by
// a user infix/infixr/nonfix declaration: always true for a name that
// isn't one of the built-ins, gated by AllowFixityOverride otherwise.
func (t *Table) CanSetOperator(name string) bool {
	return !t.IsBuiltinOperator(name) || t.AllowFixityOverride()
}

// GetOperator looks up name's fixity, walking outward. The bool result is
// false for identifiers that were never declared infix/infixr/nonfix, which
// the parser treats as ordinary (prefix-application-only) identifiers.
func (t *Table) GetOperator(name string) (Fixity, bool) {
	for s := t; s != nil; s = s.outer {
		if f, ok := s.operators[name]; ok {
			return f, true
		}
	}
	return Fixity{}, false
}

// loadBuiltins preloads the fixed operator table from §3 "Symbol table":
//
//	7   * / div mod
//	6   + - ^
//	5r  :: @
//	4   = <> > >= < <=
//	3   := o
//	0   before
func (t *Table) loadBuiltins() {
	infix := func(prio int, names ...string) {
		for _, n := range names {
			t.operators[n] = Fixity{Priority: prio}
			t.builtinOperators[n] = true
		}
	}
	infixr := func(prio int, names ...string) {
		for _, n := range names {
			t.operators[n] = Fixity{Priority: prio, Right: true}
			t.builtinOperators[n] = true
		}
	}

	infix(7, "*", "/", "div", "mod")
	infix(6, "+", "-", "^")
	infixr(5, "::", "@")
	infix(4, "=", "<>", ">", ">=", "<", "<=")
	infix(3, ":=", "o")
	infix(0, "before")

	t.loadBuiltinTypes()
	t.loadBuiltinValues()
}
