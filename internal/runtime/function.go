package runtime

import "github.com/lnsp/tea/internal/ast"

// Param is one parameter of a Signature: a type, a name, and an optional
// default value. Default is nil when the
// parameter has no default.
type Param struct {
	Name    string
	Type    *DataType
	Default *Value
}

// NativeFunc is a binding: a native
// implementation that receives the context and its already-matched,
// already-cast arguments and returns a value directly, used by the
// standard library's arithmetic and comparison operators.
type NativeFunc func(ctx *Context, args []*Value) (*Value, error)

// Signature is an ordered parameter list plus a body. Exactly one of Body/Native is set: Body for user-defined
// functions (evaluated by the evaluator package against a fresh child of
// the owning Function's closure), Native for standard-library bindings.
type Signature struct {
	Params []Param
	Body   *ast.Sequence
	Native NativeFunc
}

// ArgMatchError reports why a call's arguments did not fit a signature;
// the evaluator's dispatch loop discards it and moves on to the next
// signature.
type ArgMatchError struct {
	TooMany bool
	TooFew  bool
	Cast    *CastErr
}

func (e *ArgMatchError) Error() string {
	switch {
	case e.TooMany:
		return "too many arguments"
	case e.TooFew:
		return "too few arguments"
	case e.Cast != nil:
		return e.Cast.Error()
	default:
		return "argument mismatch"
	}
}

// Match implements the invocation protocol's argument-binding step: a
// signature matches a call of arity M against N parameters iff M <= N,
// each supplied argument's type is kind_of the parameter's type (then
// cast), and every unsupplied trailing parameter has a non-null default.
// On success it returns the matched, cast, and named argument values in
// parameter order.
func (s *Signature) Match(args []*Value) ([]*Value, error) {
	n, m := len(s.Params), len(args)
	if m > n {
		return nil, &ArgMatchError{TooMany: true}
	}
	matched := make([]*Value, n)
	for i, p := range s.Params {
		var src *Value
		if i < m {
			if !args[i].Type.KindOf(p.Type) {
				return nil, &ArgMatchError{Cast: &CastErr{Value: args[i], Target: p.Type}}
			}
			src = args[i]
		} else {
			if p.Default == nil {
				return nil, &ArgMatchError{TooFew: true}
			}
			src = p.Default
		}
		cast := src
		if p.Type.Cast != nil {
			var err error
			cast, err = p.Type.Cast(src)
			if err != nil {
				if ce, ok := err.(*CastErr); ok {
					return nil, &ArgMatchError{Cast: ce}
				}
				return nil, err
			}
		}
		matched[i] = cast.Named(p.Name)
	}
	return matched, nil
}

// Function is a name plus an ordered list of signatures plus the
// namespace it closes over. The first signature
// whose Match succeeds wins.
type Function struct {
	Name       string
	Signatures []*Signature
	Closure    *Namespace
}

func (f *Function) idEntry() {}

// Operator is a symbol plus an ordered list of Functions. Dispatch tries each Function in turn; the first whose
// dispatch succeeds wins, and appending a new overload never shadows an
// earlier one for inputs the earlier one already accepted.
type Operator struct {
	Symbol    string
	Functions []*Function
}

// AddFunction appends a new overload to the operator.
func (op *Operator) AddFunction(f *Function) {
	op.Functions = append(op.Functions, f)
}
