package checker

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/typesystem"
)

func (c *Checker) VisitIntCon(n *ast.IntCon) (typesystem.Type, *diagnostics.Diagnostic) {
	n.SetType(typesystem.IntType)
	return typesystem.IntType, nil
}

func (c *Checker) VisitRealCon(n *ast.RealCon) (typesystem.Type, *diagnostics.Diagnostic) {
	n.SetType(typesystem.RealType)
	return typesystem.RealType, nil
}

func (c *Checker) VisitCharCon(n *ast.CharCon) (typesystem.Type, *diagnostics.Diagnostic) {
	n.SetType(typesystem.CharType)
	return typesystem.CharType, nil
}

func (c *Checker) VisitStringCon(n *ast.StringCon) (typesystem.Type, *diagnostics.Diagnostic) {
	n.SetType(typesystem.StringType)
	return typesystem.StringType, nil
}

func (c *Checker) VisitBoolCon(n *ast.BoolCon) (typesystem.Type, *diagnostics.Diagnostic) {
	n.SetType(typesystem.BoolType)
	return typesystem.BoolType, nil
}
