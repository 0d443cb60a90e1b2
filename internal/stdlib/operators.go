package stdlib

import (
	"strings"

	"github.com/lnsp/tea/internal/runtime"
)

// numeric unwraps an Integer/Float Value into a float64 and reports
// whether it was an Integer, so arithmetic can decide whether to keep
// an Integer result or promote to Float.
func numeric(v *runtime.Value) (float64, bool) {
	if v.Type == runtime.Integer {
		return float64(v.Payload.(int64)), true
	}
	return v.Payload.(float64), false
}

func numResult(f float64, bothInt bool) *runtime.Value {
	if bothInt {
		return runtime.NewValue(runtime.Integer, int64(f))
	}
	return runtime.NewValue(runtime.Float, f)
}

func arith(op func(a, b float64) float64) runtime.NativeFunc {
	return func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
		a, aInt := numeric(args[0])
		b, bInt := numeric(args[1])
		return numResult(op(a, b), aInt && bInt), nil
	}
}

func compare(op func(a, b float64) bool) runtime.NativeFunc {
	return func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
		a, _ := numeric(args[0])
		b, _ := numeric(args[1])
		return runtime.NewValue(runtime.Boolean, op(a, b)), nil
	}
}

// registerOperators installs every built-in operator symbol into ns, in
// the overload order listed below — earlier overloads are tried first.
func registerOperators(ns *runtime.Namespace) {
	numNum := []runtime.Param{{Name: "a", Type: runtime.Number}, {Name: "b", Type: runtime.Number}}
	strStr := []runtime.Param{{Name: "a", Type: runtime.String}, {Name: "b", Type: runtime.String}}
	anyAny := []runtime.Param{{Name: "a", Type: runtime.Any}, {Name: "b", Type: runtime.Any}}
	boolBool := []runtime.Param{{Name: "a", Type: runtime.Boolean}, {Name: "b", Type: runtime.Boolean}}
	oneNum := []runtime.Param{{Name: "a", Type: runtime.Number}}
	oneBool := []runtime.Param{{Name: "a", Type: runtime.Boolean}}
	strAny := []runtime.Param{{Name: "a", Type: runtime.String}, {Name: "b", Type: runtime.Any}}

	plus := &runtime.Operator{Symbol: "+", Functions: []*runtime.Function{
		nativeOp(numNum, arith(func(a, b float64) float64 { return a + b })),
		nativeOp(strAny, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			b, err := runtime.String.Cast(args[1])
			if err != nil {
				return nil, err
			}
			return runtime.NewValue(runtime.String, args[0].Payload.(string)+b.Payload.(string)), nil
		}),
	}}
	minus := &runtime.Operator{Symbol: "-", Functions: []*runtime.Function{
		nativeOp(numNum, arith(func(a, b float64) float64 { return a - b })),
	}}
	star := &runtime.Operator{Symbol: "*", Functions: []*runtime.Function{
		nativeOp(numNum, arith(func(a, b float64) float64 { return a * b })),
	}}
	slash := &runtime.Operator{Symbol: "/", Functions: []*runtime.Function{
		nativeOp(numNum, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			a, aInt := numeric(args[0])
			b, bInt := numeric(args[1])
			if b == 0 {
				return nil, divisionByZero
			}
			return numResult(a/b, aInt && bInt), nil
		}),
	}}
	percent := &runtime.Operator{Symbol: "%", Functions: []*runtime.Function{
		nativeOp(numNum, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			a, aInt := numeric(args[0])
			b, bInt := numeric(args[1])
			if b == 0 {
				return nil, divisionByZero
			}
			if aInt && bInt {
				return runtime.NewValue(runtime.Integer, int64(a)%int64(b)), nil
			}
			return runtime.NewValue(runtime.Float, mathMod(a, b)), nil
		}),
	}}
	caret := &runtime.Operator{Symbol: "^", Functions: []*runtime.Function{
		nativeOp(numNum, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			a, _ := numeric(args[0])
			b, _ := numeric(args[1])
			return runtime.NewValue(runtime.Float, mathPow(a, b)), nil
		}),
	}}

	// The original source swapped the "<" and ">" comparison bodies;
	// this rewrite keeps each symbol's natural meaning.
	less := &runtime.Operator{Symbol: "<", Functions: []*runtime.Function{
		nativeOp(numNum, compare(func(a, b float64) bool { return a < b })),
		nativeOp(strStr, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			return runtime.NewValue(runtime.Boolean, strings.Compare(args[0].Payload.(string), args[1].Payload.(string)) < 0), nil
		}),
	}}
	greater := &runtime.Operator{Symbol: ">", Functions: []*runtime.Function{
		nativeOp(numNum, compare(func(a, b float64) bool { return a > b })),
		nativeOp(strStr, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			return runtime.NewValue(runtime.Boolean, strings.Compare(args[0].Payload.(string), args[1].Payload.(string)) > 0), nil
		}),
	}}
	lessEq := &runtime.Operator{Symbol: "<=", Functions: []*runtime.Function{
		nativeOp(numNum, compare(func(a, b float64) bool { return a <= b })),
	}}
	greaterEq := &runtime.Operator{Symbol: ">=", Functions: []*runtime.Function{
		nativeOp(numNum, compare(func(a, b float64) bool { return a >= b })),
	}}

	eq := &runtime.Operator{Symbol: "==", Functions: []*runtime.Function{
		nativeOp(anyAny, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			return runtime.NewValue(runtime.Boolean, args[0].Equal(args[1])), nil
		}),
	}}
	neq := &runtime.Operator{Symbol: "!=", Functions: []*runtime.Function{
		nativeOp(anyAny, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			return runtime.NewValue(runtime.Boolean, !args[0].Equal(args[1])), nil
		}),
	}}

	and := &runtime.Operator{Symbol: "&&", Functions: []*runtime.Function{
		nativeOp(boolBool, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			return runtime.NewValue(runtime.Boolean, args[0].Payload.(bool) && args[1].Payload.(bool)), nil
		}),
	}}
	or := &runtime.Operator{Symbol: "||", Functions: []*runtime.Function{
		nativeOp(boolBool, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			return runtime.NewValue(runtime.Boolean, args[0].Payload.(bool) || args[1].Payload.(bool)), nil
		}),
	}}
	xor := &runtime.Operator{Symbol: "^|", Functions: []*runtime.Function{
		nativeOp(boolBool, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			return runtime.NewValue(runtime.Boolean, args[0].Payload.(bool) != args[1].Payload.(bool)), nil
		}),
	}}

	unaryMinus := &runtime.Operator{Symbol: "-", Functions: []*runtime.Function{
		nativeOp(oneNum, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			f, isInt := numeric(args[0])
			return numResult(-f, isInt), nil
		}),
	}}
	unaryPlus := &runtime.Operator{Symbol: "+", Functions: []*runtime.Function{
		nativeOp(oneNum, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			return args[0], nil
		}),
	}}
	not := &runtime.Operator{Symbol: "!", Functions: []*runtime.Function{
		nativeOp(oneBool, func(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
			return runtime.NewValue(runtime.Boolean, !args[0].Payload.(bool)), nil
		}),
	}}

	// Binary "+"/"-" and their unary counterparts share one symbol, but
	// arity disambiguates them at parse time (ast.Operation.ArgCount):
	// register both forms under the same Namespace op slot. The
	// unary Function is appended after the binary one; its
	// single-parameter Signature simply won't Match a two-argument call
	// and vice versa, so overlapping symbols never misdispatch.
	plus.Functions = append(plus.Functions, unaryPlus.Functions...)
	minus.Functions = append(minus.Functions, unaryMinus.Functions...)

	for _, op := range []*runtime.Operator{plus, minus, star, slash, percent, caret, less, greater, lessEq, greaterEq, eq, neq, and, or, xor, not} {
		ns.StoreOp(op.Symbol, op)
	}
}

func nativeOp(params []runtime.Param, fn runtime.NativeFunc) *runtime.Function {
	return &runtime.Function{
		Signatures: []*runtime.Signature{{Params: params, Native: fn}},
	}
}
