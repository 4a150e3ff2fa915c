package checker

import (
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/token"
	"github.com/sml-lang/sml/internal/typesystem"
)

// unify implements the canonical algorithm from §4.4, with the two
// additions called out there: Alias-chain stripping (handled by find) and
// the Fun/FunOverloaded cross case used to resolve overloaded built-ins.
func (c *Checker) unify(tok token.Token, s, t typesystem.Type) (typesystem.Type, *diagnostics.Diagnostic) {
	if s == nil || t == nil {
		return nil, diagnostics.New(diagnostics.ErrA003, tok, "Could not match %s and %s.", typesystem.Pretty(s), typesystem.Pretty(t))
	}
	if same(s, t) {
		return s, nil
	}

	s = c.find(s)
	t = c.find(t)
	if same(s, t) {
		return s, nil
	}

	if _, ok := s.(*typesystem.Var); ok {
		return c.link(s, t), nil
	}
	if _, ok := t.(*typesystem.Var); ok {
		return c.link(s, t), nil
	}

	sOverload, sIsOverload := s.(typesystem.FunOverloadedT)
	tOverload, tIsOverload := t.(typesystem.FunOverloadedT)
	switch {
	case sIsOverload && tIsOverload:
		return nil, diagnostics.CouldNotMatch(tok, typesystem.Pretty(s), typesystem.Pretty(t))
	case sIsOverload:
		return c.resolveOverload(tok, sOverload, t)
	case tIsOverload:
		return c.resolveOverload(tok, tOverload, s)
	}

	switch sv := s.(type) {
	case typesystem.ListT:
		tv, ok := t.(typesystem.ListT)
		if !ok {
			return nil, diagnostics.CouldNotMatch(tok, typesystem.Pretty(s), typesystem.Pretty(t))
		}
		if _, d := c.unify(tok, sv.Elem, tv.Elem); d != nil {
			return nil, d
		}
		return c.link(s, t), nil

	case typesystem.TupleT:
		tv, ok := t.(typesystem.TupleT)
		if !ok || len(sv.Elems) != len(tv.Elems) {
			return nil, diagnostics.CouldNotMatch(tok, typesystem.Pretty(s), typesystem.Pretty(t))
		}
		for i := range sv.Elems {
			if _, d := c.unify(tok, sv.Elems[i], tv.Elems[i]); d != nil {
				return nil, d
			}
		}
		return c.link(s, t), nil

	case typesystem.RecordT:
		tv, ok := t.(typesystem.RecordT)
		if !ok || len(sv.Fields) != len(tv.Fields) {
			return nil, diagnostics.CouldNotMatch(tok, typesystem.Pretty(s), typesystem.Pretty(t))
		}
		for k, sf := range sv.Fields {
			tf, ok := tv.Fields[k]
			if !ok {
				return nil, diagnostics.CouldNotMatch(tok, typesystem.Pretty(s), typesystem.Pretty(t))
			}
			if _, d := c.unify(tok, sf, tf); d != nil {
				return nil, d
			}
		}
		return c.link(s, t), nil

	case typesystem.FunT:
		tv, ok := t.(typesystem.FunT)
		if !ok {
			return nil, diagnostics.CouldNotMatch(tok, typesystem.Pretty(s), typesystem.Pretty(t))
		}
		if _, d := c.unify(tok, sv.Param, tv.Param); d != nil {
			return nil, d
		}
		if _, d := c.unify(tok, sv.Ret, tv.Ret); d != nil {
			return nil, d
		}
		return c.link(s, t), nil

	default:
		if typeKind(s) != typeKind(t) {
			return nil, diagnostics.CouldNotMatch(tok, typesystem.Pretty(s), typesystem.Pretty(t))
		}
		if s != t {
			return nil, diagnostics.CouldNotMatch(tok, typesystem.Pretty(s), typesystem.Pretty(t))
		}
		return c.link(s, t), nil
	}
}

// resolveOverload implements "Fun x FunOverloaded: try each alternative in
// order; succeed on first whose parameter AND return unify" (§4.4). other
// must be a concrete (possibly Var) type to unify each alternative's
// param/ret against; when other is itself a FunT the alternative's
// (Param, Ret) pair is compared against (other.Param, other.Ret), which is
// how App's `Fun(fresh beta, type(arg))` shape drives overload resolution
// and the numeric-default-to-Int behavior in §4.4 falls out for free from
// trying Int before Real.
func (c *Checker) resolveOverload(tok token.Token, overload typesystem.FunOverloadedT, other typesystem.Type) (typesystem.Type, *diagnostics.Diagnostic) {
	otherFun, ok := other.(typesystem.FunT)
	if !ok {
		return nil, diagnostics.CouldNotMatch(tok, typesystem.Pretty(overload), typesystem.Pretty(other))
	}
	var lastErr *diagnostics.Diagnostic
	for _, alt := range overload.Alts {
		altParam, altRet := c.instantiateAlt(alt)
		if _, d := c.unify(tok, altParam, otherFun.Param); d != nil {
			lastErr = d
			continue
		}
		if _, d := c.unify(tok, altRet, otherFun.Ret); d != nil {
			lastErr = d
			continue
		}
		return c.link(otherFun, typesystem.FunT{Param: altParam, Ret: altRet}), nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, diagnostics.CouldNotMatch(tok, typesystem.Pretty(overload), typesystem.Pretty(other))
}

// resolveArithOverload implements §4.4's special rule for InfixApp's
// overloaded arithmetic operators: unlike resolveOverload
// (which resolves one curried argument at a time, suitable for App), both
// operand types are considered together before an alternative is chosen.
// If both are still unbound Vars the overload defaults to its first
// alternative (Int, per builtins.go's ordering); otherwise the two
// operand types are unified with each other directly and the shared
// result must be one of the overload's alternatives (Int or Real).
func (c *Checker) resolveArithOverload(tok token.Token, overload typesystem.FunOverloadedT, tL, tR typesystem.Type) (typesystem.Type, *diagnostics.Diagnostic) {
	sL := c.find(tL)
	sR := c.find(tR)
	_, lVar := sL.(*typesystem.Var)
	_, rVar := sR.(*typesystem.Var)

	if lVar && rVar {
		def := overload.Alts[0].Param
		c.link(sL, def)
		c.link(sR, def)
		return def, nil
	}

	if _, d := c.unify(tok, sL, sR); d != nil {
		return nil, d
	}
	result := c.find(sL)
	for _, alt := range overload.Alts {
		if result == alt.Param {
			return result, nil
		}
	}
	return nil, diagnostics.CouldNotMatch(tok, typesystem.Pretty(overload), typesystem.Pretty(result))
}

// instantiateAlt freshens one alternative's param/ret pair together, so
// Vars shared between them (none of the built-ins currently have any, but
// a future overload might) stay linked.
func (c *Checker) instantiateAlt(alt typesystem.Overload) (typesystem.Type, typesystem.Type) {
	pair := typesystem.FunT{Param: alt.Param, Ret: alt.Ret}
	fresh := c.instantiate(pair).(typesystem.FunT)
	return fresh.Param, fresh.Ret
}
