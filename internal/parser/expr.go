package parser

import (
	"github.com/lnsp/tea/internal/ast"
	"github.com/lnsp/tea/internal/errors"
	"github.com/lnsp/tea/internal/token"
)

// opInfo is one operator's static properties, used to drive the
// shunting-yard algorithm.
type opInfo struct {
	precedence      int
	argCount        int
	leftAssociative bool
}

// binary/unary tables. Arity and precedence for +/- depend on whether the
// operator is being used as a prefix (unary) or infix (binary) form, which
// the parser disambiguates from the previous token.
var binaryOps = map[string]opInfo{
	"||": {1, 2, true}, "&&": {1, 2, true}, "^|": {1, 2, true},
	"==": {2, 2, true}, "!=": {2, 2, true},
	"<": {2, 2, true}, ">": {2, 2, true}, "<=": {2, 2, true}, ">=": {2, 2, true},
	"%": {3, 2, true},
	"+": {4, 2, true}, "-": {4, 2, true},
	"*": {5, 2, true}, "/": {5, 2, true},
	"^": {6, 2, false},
}

var unaryOps = map[string]opInfo{
	"-": {7, 1, false},
	"+": {7, 1, false},
	"!": {7, 1, false},
}

// lparenMark is a transient sentinel pushed onto both the operand and
// operator stacks to delimit a parenthesized group or a call's argument
// list; it never appears in the final tree.
type lparenMark struct{ ast.Pos }

func (lparenMark) String() string { return "(" }

// stackOp is either an *ast.Operation awaiting its operands or an
// *ast.Call awaiting its arguments.
type stackOp struct {
	op   *ast.Operation
	call *ast.Call
}

// parseExpression parses an expression running until a Statement token
// (consumed) or end of stream.
func (p *Parser) parseExpression() (ast.Node, error) {
	return p.parseExpressionBounded(len(p.tokens))
}

// parseExpressionBounded runs the shunting-yard algorithm
// over tokens from the current cursor up to limit (exclusive), consuming
// a trailing Statement token if one ends the expression before limit.
func (p *Parser) parseExpressionBounded(limit int) (ast.Node, error) {
	var operands []ast.Node
	var operators []stackOp
	var groupIsCall []bool // per currently-open "(": true if it opens a Call's argument list

	prevWasOperand := false

	for p.pos < limit {
		t := p.tokens[p.pos]

		if t.Kind == token.Statement {
			p.advance()
			break
		}

		switch t.Kind {
		case token.Number, token.String:
			lit, err := literalFromToken(t)
			if err != nil {
				return nil, err
			}
			operands = append(operands, lit)
			p.advance()
			prevWasOperand = true

		case token.Identifier:
			// `type(expr)` cast syntax parses identically to a call here;
			// desugarCasts rewrites a single-argument Call whose name
			// names a type into an ast.Cast once parsing completes
			//. A call whose name is a
			// type registered only at runtime is still caught by the
			// evaluator's Call handling.
			next, hasNext := p.peekAt(1)
			if hasNext && next.Kind == token.LPrt {
				// Function call: push the Call, then the "(" marker.
				p.advance()
				call := &ast.Call{Pos: ast.Pos{SourceLine: t.Line}, Name: t.Value}
				operators = append(operators, stackOp{call: call})
				p.advance() // consume "("
				operands = append(operands, lparenMark{ast.Pos{SourceLine: t.Line}})
				groupIsCall = append(groupIsCall, true)
				prevWasOperand = false
				continue
			}

			operands = append(operands, &ast.Identifier{Pos: ast.Pos{SourceLine: t.Line}, Name: t.Value})
			p.advance()
			prevWasOperand = true

		case token.Operator:
			info, err := resolveOperator(t.Value, prevWasOperand)
			if err != nil {
				return nil, errors.UnknownOperator(t.Line, t.Value)
			}
			for len(operators) > 0 && operators[len(operators)-1].op != nil {
				top := operators[len(operators)-1].op
				if top.Precedence > info.precedence || (top.Precedence == info.precedence && info.leftAssociative) {
					if err := popOperator(&operands, &operators); err != nil {
						return nil, err
					}
					continue
				}
				break
			}
			op := &ast.Operation{
				Pos: ast.Pos{SourceLine: t.Line}, Symbol: t.Value,
				Precedence: info.precedence, ArgCount: info.argCount, LeftAssociative: info.leftAssociative,
			}
			operators = append(operators, stackOp{op: op})
			p.advance()
			prevWasOperand = false

		case token.LPrt:
			operators = append(operators, stackOp{op: nil, call: nil})
			operands = append(operands, lparenMark{ast.Pos{SourceLine: t.Line}})
			groupIsCall = append(groupIsCall, false)
			p.advance()
			prevWasOperand = false

		case token.RPrt:
			if err := closeGroup(&operands, &operators, &groupIsCall); err != nil {
				return nil, err
			}
			p.advance()
			prevWasOperand = true

		case token.Separator:
			if len(groupIsCall) == 0 || !groupIsCall[len(groupIsCall)-1] {
				return nil, errors.InvalidExpression(t.Line)
			}
			for len(operators) > 0 && operators[len(operators)-1].op != nil {
				if err := popOperator(&operands, &operators); err != nil {
					return nil, err
				}
			}
			p.advance()
			prevWasOperand = false

		default:
			return nil, errors.InvalidExpression(t.Line)
		}
	}

	for len(operators) > 0 {
		if operators[len(operators)-1].op == nil && operators[len(operators)-1].call == nil {
			return nil, errors.InvalidExpression(p.lastLine())
		}
		if err := popOperator(&operands, &operators); err != nil {
			return nil, err
		}
	}

	if len(operands) != 1 {
		return nil, errors.InvalidExpression(p.lastLine())
	}
	if _, isMark := operands[0].(lparenMark); isMark {
		return nil, errors.InvalidExpression(p.lastLine())
	}
	return operands[0], nil
}

// resolveOperator decides whether an operator token is being used as a
// unary prefix or binary infix operator based on whether an operand
// immediately precedes it: after an operand, `+`/`-` are
// binary; otherwise (start of expression, after another operator, after
// "(", or after ",") they are unary.
func resolveOperator(symbol string, prevWasOperand bool) (opInfo, error) {
	if prevWasOperand {
		if info, ok := binaryOps[symbol]; ok {
			return info, nil
		}
		return opInfo{}, errUnknownOperator
	}
	if info, ok := unaryOps[symbol]; ok {
		return info, nil
	}
	return opInfo{}, errUnknownOperator
}

var errUnknownOperator = &errUnknownOperatorT{}

type errUnknownOperatorT struct{}

func (*errUnknownOperatorT) Error() string { return "unknown operator" }

// popOperator pops the top operator (which must be an *ast.Operation —
// Calls are popped explicitly by closeGroup) and rebuilds it from the
// top ArgCount operands.
func popOperator(operands *[]ast.Node, operators *[]stackOp) error {
	n := len(*operators)
	top := (*operators)[n-1]
	*operators = (*operators)[:n-1]

	if top.op == nil {
		return errors.InvalidExpression(0)
	}
	op := top.op
	if len(*operands) < op.ArgCount {
		return errors.MissingOperand(op.SourceLine, op.Symbol)
	}
	start := len(*operands) - op.ArgCount
	args := make([]ast.Node, op.ArgCount)
	copy(args, (*operands)[start:])
	*operands = (*operands)[:start]
	op.Operands = args
	*operands = append(*operands, op)
	return nil
}

// closeGroup handles a ")" token: drains operators down to the nearest
// "(" marker. If the marker belongs to a Call (the preceding stack entry
// is the Call itself), it collects the arguments gathered since the
// marker and attaches them to the Call; otherwise it is a plain grouping
// parenthesis and the single operand beneath the marker survives as-is.
func closeGroup(operands *[]ast.Node, operators *[]stackOp, groupIsCall *[]bool) error {
	for len(*operators) > 0 {
		top := (*operators)[len(*operators)-1]
		if top.op != nil {
			if err := popOperator(operands, operators); err != nil {
				return err
			}
			continue
		}
		// Either a plain "(" marker or a Call: pop it.
		*operators = (*operators)[:len(*operators)-1]
		isCall := top.call != nil
		if len(*groupIsCall) == 0 {
			return errors.InvalidExpression(0)
		}
		*groupIsCall = (*groupIsCall)[:len(*groupIsCall)-1]

		markIdx := findMarkerIndex(*operands)
		if markIdx < 0 {
			return errors.InvalidExpression(0)
		}

		if isCall {
			args := append([]ast.Node{}, (*operands)[markIdx+1:]...)
			*operands = (*operands)[:markIdx]
			top.call.Arguments = args
			*operands = append(*operands, top.call)
			return nil
		}

		// Plain grouping: exactly one expression must sit above the marker.
		rest := (*operands)[markIdx+1:]
		if len(rest) != 1 {
			return errors.InvalidExpression(0)
		}
		expr := rest[0]
		*operands = append((*operands)[:markIdx], expr)
		return nil
	}
	return errors.InvalidExpression(0)
}

func isMarker(n ast.Node) bool {
	_, ok := n.(lparenMark)
	return ok
}

func findMarkerIndex(operands []ast.Node) int {
	for i := len(operands) - 1; i >= 0; i-- {
		if isMarker(operands[i]) {
			return i
		}
	}
	return -1
}
