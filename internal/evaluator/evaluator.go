// Package evaluator tree-walks Tea's AST against a runtime.Context,
// dispatching every node kind through a single Eval type switch rather
// than through per-node interface methods.
package evaluator

import (
	"github.com/lnsp/tea/internal/ast"
	"github.com/lnsp/tea/internal/errors"
	"github.com/lnsp/tea/internal/runtime"
)

// Eval evaluates a single node against ctx and returns its value. Most
// statement forms return runtime.Null; the Behavior flag on ctx carries
// control-flow signals (RETURN/BREAK/CONTINUE/EXIT) up through the
// recursive calls rather than through Go's own control flow, so a
// caller must check ctx.Behavior after every nested Eval it issues.
func Eval(ctx *runtime.Context, node ast.Node) (*runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Sequence:
		return evalSequence(ctx, n)
	case *ast.Branch:
		return evalBranch(ctx, n)
	case *ast.Conditional:
		return evalConditional(ctx, n)
	case *ast.Loop:
		return evalLoop(ctx, n)
	case *ast.Operation:
		return evalOperation(ctx, n)
	case *ast.Call:
		return evalCall(ctx, n)
	case *ast.Identifier:
		return evalIdentifier(ctx, n)
	case *ast.Literal:
		return evalLiteral(ctx, n)
	case *ast.Cast:
		return evalCast(ctx, n)
	case *ast.Return:
		return evalReturn(ctx, n)
	case *ast.Break:
		ctx.Behavior = runtime.Break
		return runtime.NewValue(runtime.Null, nil), nil
	case *ast.Continue:
		ctx.Behavior = runtime.Continue
		return runtime.NewValue(runtime.Null, nil), nil
	case *ast.Declaration:
		return evalDeclaration(ctx, n)
	case *ast.Assignment:
		return evalAssignment(ctx, n)
	case *ast.Definition:
		return evalDefinition(ctx, n)
	default:
		return nil, errors.New("cannot evaluate node")
	}
}

// evalSequence runs each statement in order, stopping early the moment
// the Behavior flag leaves DEFAULT. When Substitute is set, it runs
// inside a freshly pushed child namespace that is restored on every
// exit path, including an error.
func evalSequence(ctx *runtime.Context, seq *ast.Sequence) (*runtime.Value, error) {
	if seq.Substitute {
		orig := ctx.Substitute()
		defer ctx.Restore(orig)
	}

	result := runtime.NewValue(runtime.Null, nil)
	for _, stmt := range seq.Body {
		v, err := Eval(ctx, stmt)
		if err != nil {
			return nil, err
		}
		result = v
		if ctx.Behavior != runtime.Default {
			break
		}
	}
	return result, nil
}

// evalBranch tries each conditional in order and runs the first whose
// predicate is truthy; if none fire, it runs Else.
func evalBranch(ctx *runtime.Context, b *ast.Branch) (*runtime.Value, error) {
	for _, cond := range b.Conditionals {
		fired, result, err := evalConditionalArm(ctx, cond)
		if err != nil {
			return nil, err
		}
		if fired {
			return result, nil
		}
	}
	return evalSequence(ctx, b.Else)
}

// evalConditional evaluates a bare Conditional node (only reachable
// standalone in error paths; Branch is the normal caller).
func evalConditional(ctx *runtime.Context, c *ast.Conditional) (*runtime.Value, error) {
	_, result, err := evalConditionalArm(ctx, c)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// evalConditionalArm reports whether the predicate fired, alongside the
// body's result when it did. A typed (bool, value) pair rather than a
// sentinel NULL return avoids mistaking a body that legitimately
// evaluates to NULL for "did not fire".
func evalConditionalArm(ctx *runtime.Context, c *ast.Conditional) (bool, *runtime.Value, error) {
	pred, err := Eval(ctx, c.Predicate)
	if err != nil {
		return false, nil, err
	}
	truth, err := truthy(pred)
	if err != nil {
		return false, nil, err
	}
	if !truth {
		return false, nil, nil
	}
	result, err := evalSequence(ctx, c.Body)
	if err != nil {
		return false, nil, err
	}
	return true, result, nil
}

// evalLoop evaluates the predicate before each iteration and runs Body
// until it is falsy, BREAK, RETURN, or EXIT. CONTINUE stops the current
// iteration's body early but is cleared back to DEFAULT before the next
// predicate check.
func evalLoop(ctx *runtime.Context, l *ast.Loop) (*runtime.Value, error) {
	result := runtime.NewValue(runtime.Null, nil)
	for {
		pred, err := Eval(ctx, l.Predicate)
		if err != nil {
			return nil, err
		}
		truth, err := truthy(pred)
		if err != nil {
			return nil, err
		}
		if !truth {
			break
		}

		v, err := evalSequence(ctx, l.Body)
		if err != nil {
			return nil, err
		}
		result = v

		switch ctx.Behavior {
		case runtime.Break:
			ctx.Behavior = runtime.Default
			return result, nil
		case runtime.Continue:
			ctx.Behavior = runtime.Default
		case runtime.Return, runtime.Exit:
			return result, nil
		}
	}
	return result, nil
}

func truthy(v *runtime.Value) (bool, error) {
	cast, err := runtime.Boolean.Cast(v)
	if err != nil {
		return false, err
	}
	return cast.Payload.(bool), nil
}

// evalLiteral resolves the literal's declared type name in the current
// namespace and builds the concrete runtime.Value.
func evalLiteral(ctx *runtime.Context, lit *ast.Literal) (*runtime.Value, error) {
	t, ok := ctx.FindType(lit.TypeName)
	if !ok {
		return nil, errors.NotFound("ty", lit.TypeName)
	}
	return runtime.NewValue(t, lit.Raw), nil
}

// evalIdentifier resolves name in the "id" search space; it must name a
// Value, not a Function (calling a bare name without parentheses is not
// supported).
func evalIdentifier(ctx *runtime.Context, id *ast.Identifier) (*runtime.Value, error) {
	entry, ok := ctx.FindID(id.Name)
	if !ok {
		return nil, errors.NotFound("id", id.Name)
	}
	v, ok := entry.(*runtime.Value)
	if !ok {
		return nil, errors.New(id.Name + " is a function, not a value")
	}
	return v, nil
}

// evalCast resolves TypeName and invokes its cast function on Expr's
// value.
func evalCast(ctx *runtime.Context, c *ast.Cast) (*runtime.Value, error) {
	t, ok := ctx.FindType(c.TypeName)
	if !ok {
		return nil, errors.NotFound("ty", c.TypeName)
	}
	v, err := Eval(ctx, c.Expr)
	if err != nil {
		return nil, err
	}
	if t.Cast == nil {
		return nil, &errors.CastError{Value: v.Type.Name, Target: t.Name}
	}
	cast, err := t.Cast(v)
	if err != nil {
		if ce, ok := err.(*runtime.CastErr); ok {
			return nil, &errors.CastError{Value: ce.Value.Type.Name, Target: ce.Target.Name}
		}
		return nil, err
	}
	return cast, nil
}

// evalReturn evaluates Expr (if present) and sets RETURN behavior.
func evalReturn(ctx *runtime.Context, r *ast.Return) (*runtime.Value, error) {
	result := runtime.NewValue(runtime.Null, nil)
	if r.Expr != nil {
		v, err := Eval(ctx, r.Expr)
		if err != nil {
			return nil, err
		}
		result = v
	}
	ctx.Behavior = runtime.Return
	return result, nil
}

// evalDeclaration introduces Name with TypeName's zero value into the
// local namespace, rejecting an existing *local* binding.
func evalDeclaration(ctx *runtime.Context, d *ast.Declaration) (*runtime.Value, error) {
	if ctx.Current.HasLocalID(d.Name) {
		return nil, errors.AlreadyDeclared("id", d.Name)
	}
	t, ok := ctx.FindType(d.TypeName)
	if !ok {
		return nil, errors.NotFound("ty", d.TypeName)
	}
	zero := runtime.NewValue(runtime.Null, nil)
	if t != runtime.Null && t.Cast != nil {
		cast, err := t.Cast(zero)
		if err != nil {
			return nil, err
		}
		zero = cast
	}
	ctx.Current.StoreID(d.Name, zero.Named(d.Name))
	return zero, nil
}

// evalAssignment evaluates Expr and writes it into the existing binding
// Name, in whichever enclosing scope holds it. When IgnoreType is false,
// the existing binding's declared type must already accept the new
// value; IgnoreType marks a `var x = expr` declaration, whose inferred
// type is whatever the RHS is.
func evalAssignment(ctx *runtime.Context, a *ast.Assignment) (*runtime.Value, error) {
	v, err := Eval(ctx, a.Expr)
	if err != nil {
		return nil, err
	}

	entry, ok := ctx.FindID(a.Name)
	if !ok {
		return nil, errors.NotFound("id", a.Name)
	}
	existing, ok := entry.(*runtime.Value)
	if !ok {
		return nil, errors.New(a.Name + " is a function, not a value")
	}

	if !a.IgnoreType {
		if !v.Type.KindOf(existing.Type) {
			return nil, &errors.AssignmentError{Name: a.Name, Expected: existing.Type.Name, Got: v.Type.Name}
		}
		if existing.Type.Cast != nil {
			cast, err := existing.Type.Cast(v)
			if err != nil {
				return nil, err
			}
			v = cast
		}
	}

	existing.Type = v.Type
	existing.Payload = v.Payload
	return existing, nil
}

// evalDefinition builds a single-signature Function from Params/Body,
// closing over the namespace active at definition time, and installs it
// under Name.
func evalDefinition(ctx *runtime.Context, d *ast.Definition) (*runtime.Value, error) {
	params := make([]runtime.Param, len(d.Params))
	for i, p := range d.Params {
		t, ok := ctx.FindType(p.TypeName)
		if !ok {
			return nil, errors.NotFound("ty", p.TypeName)
		}
		params[i] = runtime.Param{Name: p.Name, Type: t}
	}
	fn := &runtime.Function{
		Name:    d.Name,
		Closure: ctx.Current,
		Signatures: []*runtime.Signature{
			{Params: params, Body: d.Body},
		},
	}
	ctx.Current.StoreID(d.Name, fn)
	return runtime.NewValue(runtime.Null, nil), nil
}
