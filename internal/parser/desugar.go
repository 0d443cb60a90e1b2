package parser

import (
	"strconv"
	"strings"

	"github.com/lnsp/tea/internal/ast"
	"github.com/lnsp/tea/internal/errors"
	"github.com/lnsp/tea/internal/token"
)

// builtinTypeNames mirrors runtime.BuiltinTypes' concrete names as a
// local table, so the parser does not import internal/runtime. Only the
// built-in names are rewritten at parse time;
// a Call naming a type registered solely at runtime still reaches
// evaluator.Eval's Call case, which falls back to the same rewrite.
var builtinTypeNames = map[string]bool{
	"int": true, "float": true, "bool": true, "string": true,
	"list": true, "set": true, "map": true, "object": true, "func": true,
}

// desugarCasts walks a freshly parsed tree and rewrites any single-
// argument Call naming a built-in type into a Cast: `int(x)` parses
// through the call syntax and becomes a cast of x to int.
func desugarCasts(n ast.Node) ast.Node {
	switch v := n.(type) {
	case *ast.Sequence:
		for i, c := range v.Body {
			v.Body[i] = desugarCasts(c)
		}
	case *ast.Conditional:
		v.Predicate = desugarCasts(v.Predicate)
		desugarCasts(v.Body)
	case *ast.Branch:
		for _, c := range v.Conditionals {
			desugarCasts(c)
		}
		desugarCasts(v.Else)
	case *ast.Loop:
		v.Predicate = desugarCasts(v.Predicate)
		desugarCasts(v.Body)
	case *ast.Operation:
		for i, o := range v.Operands {
			v.Operands[i] = desugarCasts(o)
		}
	case *ast.Call:
		for i, a := range v.Arguments {
			v.Arguments[i] = desugarCasts(a)
		}
		if builtinTypeNames[v.Name] && len(v.Arguments) == 1 {
			return &ast.Cast{Pos: v.Pos, TypeName: v.Name, Expr: v.Arguments[0]}
		}
	case *ast.Cast:
		v.Expr = desugarCasts(v.Expr)
	case *ast.Return:
		if v.Expr != nil {
			v.Expr = desugarCasts(v.Expr)
		}
	case *ast.Declaration:
		// no children
	case *ast.Assignment:
		v.Expr = desugarCasts(v.Expr)
	case *ast.Definition:
		desugarCasts(v.Body)
	}
	return n
}

// literalFromToken builds an ast.Literal from a Number or String token,
// classifying an integer-shaped number token as INTEGER and any number
// containing "." or an exponent as FLOAT.
func literalFromToken(t token.Token) (*ast.Literal, error) {
	pos := ast.Pos{SourceLine: t.Line}
	switch t.Kind {
	case token.String:
		return &ast.Literal{Pos: pos, TypeName: "string", Raw: unquote(t.Value)}, nil
	case token.Number:
		if strings.ContainsAny(t.Value, ".eE") {
			f, err := strconv.ParseFloat(t.Value, 64)
			if err != nil {
				return nil, errors.InvalidExpression(t.Line)
			}
			return &ast.Literal{Pos: pos, TypeName: "float", Raw: f}, nil
		}
		i, err := strconv.ParseInt(t.Value, 10, 64)
		if err != nil {
			return nil, errors.InvalidExpression(t.Line)
		}
		return &ast.Literal{Pos: pos, TypeName: "int", Raw: i}, nil
	}
	return nil, errors.InvalidExpression(t.Line)
}

// unquote strips the surrounding quote characters the lexer leaves in
// place and resolves the small set of backslash escapes Tea strings
// support.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"', '\'', '\\':
				sb.WriteByte(inner[i])
			default:
				sb.WriteByte('\\')
				sb.WriteByte(inner[i])
			}
			continue
		}
		sb.WriteByte(inner[i])
	}
	return sb.String()
}
