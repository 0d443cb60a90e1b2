// Package parser implements Tea's statement dispatcher and shunting-yard
// expression parser, turning a filtered token stream into
// an ast.Sequence.
package parser

import (
	"github.com/lnsp/tea/internal/ast"
	"github.com/lnsp/tea/internal/errors"
	"github.com/lnsp/tea/internal/lexer"
	"github.com/lnsp/tea/internal/token"
)

// Parser walks a whitespace-filtered token stream with a single cursor;
// it never backtracks and never attempts error recovery.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New creates a Parser over an already-lexed, whitespace-filtered token
// stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes and parses source text in one step.
func Parse(source string) (*ast.Sequence, error) {
	tokens := lexer.FilterWhitespace(lexer.Tokenize(source))
	return New(tokens).ParseProgram()
}

// ParseProgram parses the entire token stream into a top-level Sequence
// and runs the cast-desugaring pass.
func (p *Parser) ParseProgram() (*ast.Sequence, error) {
	seq, err := p.parseSequence(false)
	if err != nil {
		return nil, err
	}
	desugarCasts(seq)
	return seq, nil
}

func (p *Parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *Parser) peek() token.Token {
	if p.atEnd() {
		return token.Token{Kind: token.None, Line: p.lastLine()}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) (token.Token, bool) {
	i := p.pos + offset
	if i < 0 || i >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[i], true
}

func (p *Parser) lastLine() int {
	if len(p.tokens) == 0 {
		return 1
	}
	return p.tokens[len(p.tokens)-1].Line
}

func (p *Parser) advance() token.Token {
	t := p.peek()
	p.pos++
	return t
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.atEnd() || p.peek().Kind != kind {
		return token.Token{}, errors.InvalidExpression(p.peek().Line)
	}
	return p.advance(), nil
}

func isKeyword(t token.Token, word string) bool {
	return t.Kind == token.Identifier && t.Value == word
}

// findMatchingPrt scans forward from just after an opening "(" at
// openPos, tracking nesting, and returns the index of its matching ")".
func (p *Parser) findMatchingPrt(openPos int) int {
	level := 1
	for i := openPos + 1; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case token.LPrt:
			level++
		case token.RPrt:
			level--
			if level == 0 {
				return i
			}
		}
	}
	return -1
}

// parseSequence loops over tokens dispatching on the leading token,
// until it sees the
// closing "}" of a nested block (if stopAtRBlock) or runs out of tokens.
func (p *Parser) parseSequence(stopAtRBlock bool) (*ast.Sequence, error) {
	seq := &ast.Sequence{Pos: ast.Pos{SourceLine: p.peek().Line}}

	for !p.atEnd() {
		t := p.peek()

		switch {
		case t.Kind == token.RBlock:
			if stopAtRBlock {
				p.advance()
				return seq, nil
			}
			// A stray "}" at the top level ends the sequence too;
			// the caller (ParseProgram) simply stops here.
			return seq, nil

		case t.Kind == token.LBlock:
			p.advance()
			inner, err := p.parseSequence(true)
			if err != nil {
				return nil, err
			}
			seq.Body = append(seq.Body, inner)

		case t.Kind == token.Statement:
			// A loose ";" is a no-op.
			p.advance()

		case isKeyword(t, "func"):
			p.advance()
			def, err := p.parseFunctionDef()
			if err != nil {
				return nil, err
			}
			seq.Body = append(seq.Body, def)

		case isKeyword(t, "return"):
			p.advance()
			ret, err := p.parseReturn()
			if err != nil {
				return nil, err
			}
			seq.Body = append(seq.Body, ret)

		case isKeyword(t, "continue"):
			p.advance()
			seq.Body = append(seq.Body, &ast.Continue{Pos: ast.Pos{SourceLine: t.Line}})

		case isKeyword(t, "break"):
			p.advance()
			seq.Body = append(seq.Body, &ast.Break{Pos: ast.Pos{SourceLine: t.Line}})

		case isKeyword(t, "while"):
			p.advance()
			loop, err := p.parseWhile()
			if err != nil {
				return nil, err
			}
			seq.Body = append(seq.Body, loop)

		case isKeyword(t, "if"):
			p.advance()
			branch, err := p.parseBranch()
			if err != nil {
				return nil, err
			}
			seq.Body = append(seq.Body, branch)

		case isKeyword(t, "for"):
			p.advance()
			forSeq, err := p.parseFor()
			if err != nil {
				return nil, err
			}
			seq.Body = append(seq.Body, forSeq)

		case isKeyword(t, "var"):
			decl, err := p.parseDeclaration()
			if err != nil {
				return nil, err
			}
			seq.Body = append(seq.Body, decl.Body...)

		case t.Kind == token.Identifier:
			next, hasNext := p.peekAt(1)
			if hasNext && token.IsAssignmentOperator(next) {
				assign, err := p.parseAssignment()
				if err != nil {
					return nil, err
				}
				seq.Body = append(seq.Body, assign)
			} else {
				expr, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				seq.Body = append(seq.Body, expr)
			}

		case t.Kind == token.Number || t.Kind == token.String || t.Kind == token.Operator || t.Kind == token.LPrt:
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			seq.Body = append(seq.Body, expr)

		default:
			return nil, errors.BadStatement(t.Line)
		}
	}

	if stopAtRBlock {
		return nil, errors.InvalidBlock(p.lastLine())
	}
	return seq, nil
}

func (p *Parser) parseReturn() (*ast.Return, error) {
	line := p.peek().Line
	if p.atEnd() || p.peek().Kind == token.Statement {
		if !p.atEnd() {
			p.advance()
		}
		return &ast.Return{Pos: ast.Pos{SourceLine: line}}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Pos: ast.Pos{SourceLine: line}, Expr: expr}, nil
}

// parseWhile parses `while ( cond ) { body }`.
func (p *Parser) parseWhile() (*ast.Loop, error) {
	line := p.peek().Line
	open, err := p.expect(token.LPrt)
	if err != nil {
		return nil, errors.InvalidCondition(line)
	}
	openIdx := p.pos - 1
	closeIdx := p.findMatchingPrt(openIdx)
	if closeIdx < 0 {
		return nil, errors.InvalidCondition(open.Line)
	}
	cond, err := p.parseExpressionBounded(closeIdx)
	if err != nil {
		return nil, err
	}
	p.pos = closeIdx + 1

	if _, err := p.expect(token.LBlock); err != nil {
		return nil, errors.InvalidBlock(p.peek().Line)
	}
	body, err := p.parseSequence(true)
	if err != nil {
		return nil, err
	}
	body.Substitute = true

	return &ast.Loop{Pos: ast.Pos{SourceLine: line}, Predicate: cond, Body: body}, nil
}

// parseFor parses `for ( init ; cond ; iter ) { body }`, desugaring into
// `{ init; while (cond) { body; iter } }` with the outer block
// substituted.
func (p *Parser) parseFor() (*ast.Sequence, error) {
	line := p.peek().Line
	open, err := p.expect(token.LPrt)
	if err != nil {
		return nil, errors.InvalidCondition(line)
	}
	openIdx := p.pos - 1
	closeIdx := p.findMatchingPrt(openIdx)
	if closeIdx < 0 {
		return nil, errors.InvalidCondition(open.Line)
	}

	// init runs as a (non-substituting) sequence up to the first ';'.
	initEnd := closeIdx
	for i := p.pos; i < closeIdx; i++ {
		if p.tokens[i].Kind == token.Statement {
			initEnd = i
			break
		}
	}
	initSeq, err := p.parseSequenceBounded(initEnd + 1)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpressionBounded(closeIdx)
	if err != nil {
		return nil, err
	}

	iterSeq, err := p.parseSequenceBounded(closeIdx)
	if err != nil {
		return nil, err
	}
	p.pos = closeIdx + 1

	if _, err := p.expect(token.LBlock); err != nil {
		return nil, errors.InvalidBlock(p.peek().Line)
	}
	body, err := p.parseSequence(true)
	if err != nil {
		return nil, err
	}

	inner := &ast.Sequence{Pos: ast.Pos{SourceLine: line}}
	inner.Body = append(inner.Body, body.Body...)
	inner.Body = append(inner.Body, iterSeq.Body...)

	loop := &ast.Loop{Pos: ast.Pos{SourceLine: line}, Predicate: cond, Body: inner}

	outer := &ast.Sequence{Pos: ast.Pos{SourceLine: line}, Substitute: true}
	outer.Body = append(outer.Body, initSeq.Body...)
	outer.Body = append(outer.Body, loop)
	return outer, nil
}

// parseSequenceBounded parses statements until the cursor reaches limit,
// used for the for-loop's init/iter clauses which live inside the
// for-header's parentheses.
func (p *Parser) parseSequenceBounded(limit int) (*ast.Sequence, error) {
	seq := &ast.Sequence{Pos: ast.Pos{SourceLine: p.peek().Line}}
	for p.pos < limit {
		t := p.peek()
		switch {
		case t.Kind == token.Statement || t.Kind == token.Separator:
			p.advance()
		case t.Kind == token.Identifier:
			next, hasNext := p.peekAt(1)
			if hasNext && token.IsAssignmentOperator(next) && p.pos+1 < limit {
				assign, err := p.parseAssignmentBounded(limit)
				if err != nil {
					return nil, err
				}
				seq.Body = append(seq.Body, assign)
			} else if isKeyword(t, "var") {
				decl, err := p.parseDeclarationBounded(limit)
				if err != nil {
					return nil, err
				}
				seq.Body = append(seq.Body, decl)
			} else {
				expr, err := p.parseExpressionBounded(limit)
				if err != nil {
					return nil, err
				}
				seq.Body = append(seq.Body, expr)
			}
		default:
			expr, err := p.parseExpressionBounded(limit)
			if err != nil {
				return nil, err
			}
			seq.Body = append(seq.Body, expr)
		}
	}
	return seq, nil
}

// parseBranch parses `if ( cond ) { body }` optionally followed by
// `else if ...` or `else { ... }`.
func (p *Parser) parseBranch() (*ast.Branch, error) {
	branch := &ast.Branch{Pos: ast.Pos{SourceLine: p.peek().Line}}
	cond, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	branch.Conditionals = append(branch.Conditionals, cond)

	for isKeyword(p.peek(), "else") {
		p.advance()
		if isKeyword(p.peek(), "if") {
			p.advance()
			elifCond, err := p.parseConditional()
			if err != nil {
				return nil, err
			}
			branch.Conditionals = append(branch.Conditionals, elifCond)
			continue
		}
		if _, err := p.expect(token.LBlock); err != nil {
			return nil, errors.InvalidBlock(p.peek().Line)
		}
		elseBody, err := p.parseSequence(true)
		if err != nil {
			return nil, err
		}
		elseBody.Substitute = true
		branch.Else = elseBody
		return branch, nil
	}

	// No trailing else: an empty, substituting sequence plays its role
	// (evaluating it simply yields NULL, matching eval_branch's "all
	// conditionals false" fallthrough).
	branch.Else = &ast.Sequence{Pos: ast.Pos{SourceLine: branch.SourceLine}, Substitute: true}
	return branch, nil
}

func (p *Parser) parseConditional() (*ast.Conditional, error) {
	line := p.peek().Line
	open, err := p.expect(token.LPrt)
	if err != nil {
		return nil, errors.InvalidCondition(line)
	}
	openIdx := p.pos - 1
	closeIdx := p.findMatchingPrt(openIdx)
	if closeIdx < 0 {
		return nil, errors.InvalidCondition(open.Line)
	}
	cond, err := p.parseExpressionBounded(closeIdx)
	if err != nil {
		return nil, err
	}
	p.pos = closeIdx + 1

	if _, err := p.expect(token.LBlock); err != nil {
		return nil, errors.InvalidBlock(p.peek().Line)
	}
	body, err := p.parseSequence(true)
	if err != nil {
		return nil, err
	}
	body.Substitute = true
	return &ast.Conditional{Pos: ast.Pos{SourceLine: line}, Predicate: cond, Body: body}, nil
}

// parseDeclaration parses `var name_1 [, name_2 ...] [: type] [= expr]`.
func (p *Parser) parseDeclaration() (*ast.Sequence, error) {
	end := len(p.tokens)
	for i := p.pos; i < len(p.tokens); i++ {
		if p.tokens[i].Kind == token.Statement {
			end = i
			break
		}
	}
	seq, err := p.parseDeclarationBounded(end)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) && p.tokens[p.pos].Kind == token.Statement {
		p.advance()
	}
	return seq, nil
}

func (p *Parser) parseDeclarationBounded(end int) (*ast.Sequence, error) {
	line := p.peek().Line
	if !isKeyword(p.peek(), "var") {
		return nil, errors.InvalidDeclaration(line, "token")
	}
	p.advance()

	var names []string
	typeName := "null"
	ignoreType := true

	for {
		nameTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, errors.InvalidDeclaration(p.peek().Line, "token")
		}
		names = append(names, nameTok.Value)

		if p.pos < end && p.peek().Kind == token.Separator {
			p.advance()
			continue
		}
		break
	}

	if p.pos < end && p.peek().Kind == token.Operator && p.peek().Value == ":" {
		p.advance()
		typeTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, errors.InvalidDeclaration(p.peek().Line, "type")
		}
		typeName = typeTok.Value
		ignoreType = false
	}

	var expr ast.Node
	if p.pos < end && p.peek().Kind == token.Operator && p.peek().Value == "=" {
		p.advance()
		e, err := p.parseExpressionBounded(end)
		if err != nil {
			return nil, err
		}
		expr = e
	}

	seq := &ast.Sequence{Pos: ast.Pos{SourceLine: line}}
	for _, name := range names {
		seq.Body = append(seq.Body, &ast.Declaration{Pos: ast.Pos{SourceLine: line}, Name: name, TypeName: typeName})
	}
	if expr != nil {
		// Every declared name is assigned the same initializer
		// expression, evaluated once per name in source order.
		for _, name := range names {
			seq.Body = append(seq.Body, &ast.Assignment{
				Pos: ast.Pos{SourceLine: line}, Name: name, IgnoreType: ignoreType, Expr: expr,
			})
		}
	}
	p.pos = end
	return seq, nil
}

// parseAssignment parses `name op= expr`, rewriting a compound operator
// into `name = name op expr`.
func (p *Parser) parseAssignment() (*ast.Assignment, error) {
	return p.parseAssignmentBounded(len(p.tokens))
}

// parseAssignmentBounded is parseAssignment restricted to tokens before
// limit, used inside a for-loop header's init/iter clauses where there
// is no trailing ";" to stop at.
func (p *Parser) parseAssignmentBounded(limit int) (*ast.Assignment, error) {
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, errors.InvalidAssignment(p.peek().Line)
	}
	opTok, err := p.expect(token.Operator)
	if err != nil || !token.IsAssignmentOperator(opTok) {
		return nil, errors.InvalidAssignment(nameTok.Line)
	}

	expr, err := p.parseExpressionBounded(limit)
	if err != nil {
		return nil, err
	}

	if len(opTok.Value) > 1 {
		symbol := string(opTok.Value[0])
		op := &ast.Operation{
			Pos: ast.Pos{SourceLine: nameTok.Line}, Symbol: symbol,
			Precedence: 4, ArgCount: 2, LeftAssociative: true,
			Operands: []ast.Node{&ast.Identifier{Pos: ast.Pos{SourceLine: nameTok.Line}, Name: nameTok.Value}, expr},
		}
		expr = op
	}

	return &ast.Assignment{Pos: ast.Pos{SourceLine: nameTok.Line}, Name: nameTok.Value, Expr: expr}, nil
}

// parseFunctionDef parses `name(p1: T1, p2: T2, ...) { body }` after the
// leading "func" keyword has already been consumed.
func (p *Parser) parseFunctionDef() (*ast.Definition, error) {
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, errors.InvalidDefinition(p.peek().Line, "token")
	}

	if _, err := p.expect(token.LPrt); err != nil {
		return nil, errors.InvalidDefinition(nameTok.Line, "token")
	}
	openIdx := p.pos - 1
	closeIdx := p.findMatchingPrt(openIdx)
	if closeIdx < 0 {
		return nil, errors.InvalidDefinition(nameTok.Line, "token")
	}

	var params []ast.Param
	for p.pos < closeIdx {
		paramName, err := p.expect(token.Identifier)
		if err != nil {
			return nil, errors.InvalidDefinition(p.peek().Line, "parameter")
		}
		colon, err := p.expect(token.Operator)
		if err != nil || colon.Value != ":" {
			return nil, errors.InvalidDefinition(paramName.Line, "':'")
		}
		paramType, err := p.expect(token.Identifier)
		if err != nil {
			return nil, errors.InvalidDefinition(colon.Line, "type")
		}
		params = append(params, ast.Param{Name: paramName.Value, TypeName: paramType.Value})

		if p.pos < closeIdx && p.peek().Kind == token.Separator {
			p.advance()
		}
	}
	p.pos = closeIdx + 1

	if _, err := p.expect(token.LBlock); err != nil {
		return nil, errors.InvalidBlock(p.peek().Line)
	}
	body, err := p.parseSequence(true)
	if err != nil {
		return nil, err
	}

	return &ast.Definition{Pos: ast.Pos{SourceLine: nameTok.Line}, Name: nameTok.Value, Params: params, Body: body}, nil
}
