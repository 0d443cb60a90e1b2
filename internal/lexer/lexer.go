// Package lexer implements Tea's greedy longest-match scanner: a single
// pass over the source text that classifies every character into one of a
// small set of token kinds and emits tokens as soon as extending the
// current one would stop matching its kind's grammar.
package lexer

import (
	"strings"

	"github.com/lnsp/tea/internal/token"
)

// operatorSymbols is the complete set of recognized operator lexemes.
// Longer symbols are tried as extensions of shorter ones by the scan loop
// below; membership here is what the greedy-match test consults.
var operatorSymbols = map[string]bool{
	"=": true, "+": true, "-": true, "*": true, "/": true, ":": true,
	"<": true, ">": true, "!": true, "%": true, "^": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true, "^=": true,
	"==": true, "!=": true, "<=": true, ">=": true,
	"&&": true, "||": true, "^|": true,
}

// Lexer scans Tea source text into a flat token stream, including
// whitespace tokens; callers that only care about syntax (the parser)
// filter those out themselves.
type Lexer struct {
	input string
	line  int
}

// New creates a Lexer over the given source text.
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Tokenize scans the entire input and returns its token stream.
// Concatenating every returned token's Value reproduces the input
// exactly, and an unrecognized character still
// produces a token (of Kind token.None) rather than failing outright —
// the parser is what rejects it.
func Tokenize(input string) []token.Token {
	return New(input).Tokenize()
}

// Tokenize maintains a current token, and for each input rune decides
// whether extending the current token still matches its kind; if not,
// it flushes the token and starts a new one.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token

	var cur strings.Builder
	curKind := token.None
	curLine := l.line

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, token.Token{Value: cur.String(), Kind: curKind, Line: curLine})
			cur.Reset()
		}
	}

	for _, r := range l.input {
		candidate := cur.String() + string(r)
		if cur.Len() > 0 && matches(curKind, candidate) {
			cur.WriteRune(r)
		} else {
			flush()
			curLine = l.line
			cur.WriteRune(r)
			curKind = classify(r)
		}
		if r == '\n' {
			l.line++
		}
	}
	flush()

	return tokens
}

// classify picks the kind of a single fresh rune, in descending
// precedence order.
func classify(r rune) token.Kind {
	s := string(r)
	switch {
	case isSpace(r):
		return token.Whitespace
	case operatorSymbols[s] || r == '&' || r == '|':
		// "&" and "|" are not operators on their own, but they start
		// "&&" and "||", which the scan loop reaches by extension.
		return token.Operator
	case isIdentStart(r):
		return token.Identifier
	case isDigit(r):
		return token.Number
	case r == '"':
		return token.String
	case r == '(':
		return token.LPrt
	case r == ')':
		return token.RPrt
	case r == '{':
		return token.LBlock
	case r == '}':
		return token.RBlock
	case r == ';':
		return token.Statement
	case r == ',':
		return token.Separator
	default:
		return token.None
	}
}

// matches reports whether s, in its entirety, still belongs to kind —
// the "does extending still match" test the scan loop runs per rune.
func matches(kind token.Kind, s string) bool {
	switch kind {
	case token.Whitespace:
		return matchesWhitespace(s)
	case token.Operator:
		return operatorSymbols[s]
	case token.Identifier:
		return matchesIdentifier(s)
	case token.Number:
		return matchesNumber(s)
	case token.String:
		return matchesString(s)
	default:
		// LPrt, RPrt, LBlock, RBlock, Statement, Separator are all
		// single fixed characters: they never extend.
		return false
	}
}

func matchesWhitespace(s string) bool {
	for _, r := range s {
		if !isSpace(r) {
			return false
		}
	}
	return len(s) > 0
}

func matchesNumber(s string) bool {
	runes := []rune(s)
	i, n := 0, len(runes)
	start := i
	for i < n && isDigit(runes[i]) {
		i++
	}
	if i == start {
		return false
	}
	if i < n && runes[i] == '.' {
		i++
		for i < n && isDigit(runes[i]) {
			i++
		}
	}
	return i == n
}

func matchesIdentifier(s string) bool {
	runes := []rune(s)
	i, n := 0, len(runes)
	start := i
	for i < n && isIdentStart(runes[i]) {
		i++
	}
	if i == start {
		return false
	}
	for i < n && (isDigit(runes[i]) || isIdentStart(runes[i])) {
		i++
	}
	return i == n
}

func matchesString(s string) bool {
	runes := []rune(s)
	n := len(runes)
	if n == 0 || runes[0] != '"' {
		return false
	}
	i := 1
	for i < n && runes[i] != '\n' && runes[i] != '\r' && runes[i] != '"' {
		i++
	}
	if i < n && runes[i] == '"' {
		i++
	}
	return i == n
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '#' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// FilterWhitespace drops whitespace tokens, the form the parser consumes.
func FilterWhitespace(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != token.Whitespace {
			out = append(out, t)
		}
	}
	return out
}
