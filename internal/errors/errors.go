// Package errors defines Tea's error taxonomy and a shared
// source-context formatter: a one-line caret pointing at the offending
// line, since Tea only tracks line-level position.
package errors

import (
	"fmt"
	"strings"
)

// ParseError is the family of errors the parser raises; it never attempts
// recovery, so the first one wins.
type ParseError struct {
	Kind    string // e.g. "BadStatement", "InvalidDeclaration"
	Message string
	Line    int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d: %s", e.Kind, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newParseError(kind, msg string, line int) *ParseError {
	return &ParseError{Kind: kind, Message: msg, Line: line}
}

func BadStatement(line int) *ParseError {
	return newParseError("BadStatement", "statement without semicolon", line)
}

func NotImplemented(line int, what string) *ParseError {
	return newParseError("NotImplemented", what+" is not implemented", line)
}

func InvalidDeclaration(line int, unexpected string) *ParseError {
	return newParseError("InvalidDeclaration", "unexpected "+unexpected, line)
}

func InvalidDefinition(line int, unexpected string) *ParseError {
	return newParseError("InvalidDefinition", "unexpected "+unexpected, line)
}

func InvalidAssignment(line int) *ParseError {
	return newParseError("InvalidAssignment", "invalid assignment", line)
}

func InvalidBlock(line int) *ParseError {
	return newParseError("InvalidBlock", "missing block borders", line)
}

func InvalidExpression(line int) *ParseError {
	return newParseError("InvalidExpression", "invalid expression", line)
}

func InvalidCondition(line int) *ParseError {
	return newParseError("InvalidCondition", "invalid condition", line)
}

func InvalidLoop(line int, unexpected string) *ParseError {
	return newParseError("InvalidLoop", "unexpected "+unexpected, line)
}

func MissingOperand(line int, symbol string) *ParseError {
	return newParseError("MissingOperand", symbol+" is missing operands", line)
}

func UnknownOperator(line int, symbol string) *ParseError {
	return newParseError("UnknownOperator", "unknown operator "+symbol, line)
}

// RuntimeError is the family of errors the evaluator raises. A few
// dedicated subtypes below carry extra structured fields; everything else
// uses the plain form (used for "Bad conditional", division by zero, and
// equality across incompatible types).
type RuntimeError struct {
	Kind    string
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func New(message string) *RuntimeError {
	return &RuntimeError{Kind: "RuntimeError", Message: message}
}

// NamespaceError covers both "name not found" and "duplicate local
// declaration".
type NamespaceError struct {
	Space string
	Name  string
	Msg   string
}

func (e *NamespaceError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Msg, e.Space, e.Name)
}

func NotFound(space, name string) *NamespaceError {
	return &NamespaceError{Space: space, Name: name, Msg: "not found"}
}

func AlreadyDeclared(space, name string) *NamespaceError {
	return &NamespaceError{Space: space, Name: name, Msg: "already declared"}
}

// CastError reports a value that cannot be converted to a target type.
type CastError struct {
	Value  string
	Target string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("%s not parseable to %s", e.Value, e.Target)
}

// AssignmentError is raised when a plain (typed) assignment's RHS type
// does not equal the variable's declared type.
type AssignmentError struct {
	Name     string
	Expected string
	Got      string
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("cannot assign %s to %s (declared %s)", e.Got, e.Name, e.Expected)
}

// ArgumentError describes a call whose argument count does not fit a
// signature. Signature matching reports that case as a
// runtime.ArgMatchError instead, and dispatch never returns an
// ArgumentError: total failure surfaces as a FunctionError/OperatorError.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string { return e.Message }

func TooFewArguments() *ArgumentError  { return &ArgumentError{Message: "too few arguments"} }
func TooManyArguments() *ArgumentError { return &ArgumentError{Message: "too many arguments"} }

// ArgumentCastError describes a signature's parameter type rejecting a
// supplied argument. As with ArgumentError, matching reports this case
// as a runtime.ArgMatchError and dispatch never returns this type.
type ArgumentCastError struct {
	Param string
	*CastError
}

func (e *ArgumentCastError) Error() string {
	return fmt.Sprintf("argument %s: %s", e.Param, e.CastError.Error())
}

// FunctionError/OperatorError report total dispatch failure: every
// signature was tried and every one failed.
type FunctionError struct {
	Name string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("no signature found for function %q", e.Name)
}

type OperatorError struct {
	Symbol string
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("no signature found for operator %q", e.Symbol)
}

// Positioned describes an error that reports its own source line. No
// error type in this package implements it; Line below reads a
// ParseError's Line field directly.
type Positioned interface {
	error
	SourceLine() int
}

// Line extracts the source line a ParseError carries, or 0 for error
// kinds that have none (most RuntimeErrors stay line-agnostic; Tea
// reports only single-line diagnostics).
func Line(err error) int {
	if pe, ok := err.(*ParseError); ok {
		return pe.Line
	}
	return 0
}

// FormatWithSource renders an error with a line-number gutter, the
// source line, and a caret — simplified to a whole-line caret since Tea
// only tracks line position.
func FormatWithSource(err error, line int, source string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "error at line %d: %s\n", line, err.Error())

	lines := strings.Split(source, "\n")
	if line >= 1 && line <= len(lines) {
		gutter := fmt.Sprintf("%4d | ", line)
		sb.WriteString(gutter)
		sb.WriteString(lines[line-1])
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)))
		sb.WriteString("^")
	}
	return sb.String()
}
