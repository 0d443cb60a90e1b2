package evaluator

import (
	"github.com/lnsp/tea/internal/ast"
	"github.com/lnsp/tea/internal/errors"
	"github.com/lnsp/tea/internal/runtime"
)

// evalOperation evaluates every operand, then dispatches op.Symbol
// against the operators registered in the current namespace: each
// overload's signatures are tried in declaration order and the first
// whose Match succeeds wins.
func evalOperation(ctx *runtime.Context, op *ast.Operation) (*runtime.Value, error) {
	args := make([]*runtime.Value, len(op.Operands))
	for i, o := range op.Operands {
		v, err := Eval(ctx, o)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	operator, ok := ctx.FindOp(op.Symbol)
	if !ok {
		return nil, &errors.OperatorError{Symbol: op.Symbol}
	}

	result, matched, err := dispatch(ctx, operator.Functions, args)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, &errors.OperatorError{Symbol: op.Symbol}
	}
	return result, nil
}

// evalCall evaluates every argument, then dispatches call.Name. A name
// bound to a Function goes through the normal matching protocol; a name
// bound only to a type (not yet rewritten to a Cast by the parser's
// desugaring pass, because the type was registered at runtime rather
// than being one of the built-ins) falls back to a single-argument cast.
func evalCall(ctx *runtime.Context, call *ast.Call) (*runtime.Value, error) {
	args := make([]*runtime.Value, len(call.Arguments))
	for i, a := range call.Arguments {
		v, err := Eval(ctx, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if entry, ok := ctx.FindID(call.Name); ok {
		fn, ok := entry.(*runtime.Function)
		if !ok {
			return nil, errors.New(call.Name + " is a value, not a function")
		}
		result, matched, err := dispatch(ctx, []*runtime.Function{fn}, args)
		if err != nil {
			return nil, err
		}
		if !matched {
			return nil, &errors.FunctionError{Name: call.Name}
		}
		return result, nil
	}

	if t, ok := ctx.FindType(call.Name); ok && len(args) == 1 && t.Cast != nil {
		cast, err := t.Cast(args[0])
		if err != nil {
			if ce, ok := err.(*runtime.CastErr); ok {
				return nil, &errors.CastError{Value: ce.Value.Type.Name, Target: ce.Target.Name}
			}
			return nil, err
		}
		return cast, nil
	}

	return nil, errors.NotFound("id", call.Name)
}

// dispatch tries every signature of every function in order, returning
// the first successful match's result. matched is false (with a nil
// error) when every candidate's Match failed, letting the caller raise
// the right kind of "no signature found" error.
func dispatch(ctx *runtime.Context, functions []*runtime.Function, args []*runtime.Value) (*runtime.Value, bool, error) {
	for _, fn := range functions {
		for _, sig := range fn.Signatures {
			matchedArgs, err := sig.Match(args)
			if err != nil {
				continue
			}
			result, err := invoke(ctx, fn, sig, matchedArgs)
			if err != nil {
				return nil, false, err
			}
			return result, true, nil
		}
	}
	return nil, false, nil
}

// invoke runs a matched signature: a Native binding runs directly
// against the caller's context, a user-defined Body runs against a
// fresh child of the function's lexical closure with the matched
// arguments bound by name.
func invoke(ctx *runtime.Context, fn *runtime.Function, sig *runtime.Signature, args []*runtime.Value) (*runtime.Value, error) {
	if sig.Native != nil {
		return sig.Native(ctx, args)
	}

	child := fn.Closure.Child()
	for _, a := range args {
		child.StoreID(a.Name, a)
	}

	savedCurrent := ctx.Current
	ctx.Current = child
	defer func() { ctx.Current = savedCurrent }()

	result := runtime.NewValue(runtime.Null, nil)
	for _, stmt := range sig.Body.Body {
		v, err := Eval(ctx, stmt)
		if err != nil {
			return nil, err
		}
		result = v
		if ctx.Behavior != runtime.Default {
			break
		}
	}

	switch ctx.Behavior {
	case runtime.Return:
		ctx.Behavior = runtime.Default
	case runtime.Exit:
		// EXIT terminates the whole program; leave it set so it
		// propagates through every enclosing call frame.
	default:
		ctx.Behavior = runtime.Default
	}
	return result, nil
}
