package stdlib

import (
	"fmt"

	"github.com/lnsp/tea/internal/errors"
	"github.com/lnsp/tea/internal/runtime"
)

// registerFunctions installs the free functions every Tea program has
// access to without an import.
func registerFunctions(ns *runtime.Namespace) {
	install(ns, "print", []runtime.Param{{Name: "value", Type: runtime.Any}}, printFn)
	install(ns, "len", []runtime.Param{{Name: "value", Type: runtime.Any}}, lenFn)
	install(ns, "push", []runtime.Param{{Name: "list", Type: runtime.ListT}, {Name: "value", Type: runtime.Any}}, pushFn)
	install(ns, "pop", []runtime.Param{{Name: "list", Type: runtime.ListT}}, popFn)
	install(ns, "keys", []runtime.Param{{Name: "map", Type: runtime.MapT}}, keysFn)
	install(ns, "values", []runtime.Param{{Name: "map", Type: runtime.MapT}}, valuesFn)
	install(ns, "contains", []runtime.Param{{Name: "container", Type: runtime.Any}, {Name: "value", Type: runtime.Any}}, containsFn)
	install(ns, "to_json", []runtime.Param{{Name: "value", Type: runtime.Any}}, toJSONFn)
	install(ns, "from_json", []runtime.Param{{Name: "value", Type: runtime.String}}, fromJSONFn)
}

func install(ns *runtime.Namespace, name string, params []runtime.Param, fn runtime.NativeFunc) {
	ns.StoreID(name, &runtime.Function{
		Name:       name,
		Signatures: []*runtime.Signature{{Params: params, Native: fn}},
	})
}

func printFn(ctx *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
	s, err := runtime.String.Cast(args[0])
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(ctx.Output, s.Payload.(string))
	return runtime.NewValue(runtime.Null, nil), nil
}

func lenFn(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
	switch v := args[0]; v.Type {
	case runtime.String:
		return runtime.NewValue(runtime.Integer, int64(len([]rune(v.Payload.(string))))), nil
	case runtime.ListT:
		return runtime.NewValue(runtime.Integer, int64(len(v.Payload.(*runtime.List).Items))), nil
	case runtime.SetT:
		return runtime.NewValue(runtime.Integer, int64(len(v.Payload.(*runtime.Set).Items))), nil
	case runtime.MapT:
		return runtime.NewValue(runtime.Integer, int64(v.Payload.(*runtime.Map).Len())), nil
	}
	return nil, errors.New("len: unsupported type " + args[0].Type.Name)
}

func pushFn(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
	l := args[0].Payload.(*runtime.List)
	l.Items = append(l.Items, args[1])
	return args[0], nil
}

func popFn(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
	l := args[0].Payload.(*runtime.List)
	if len(l.Items) == 0 {
		return nil, errors.New("pop: empty list")
	}
	last := l.Items[len(l.Items)-1]
	l.Items = l.Items[:len(l.Items)-1]
	return last, nil
}

func keysFn(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
	m := args[0].Payload.(*runtime.Map)
	return runtime.NewValue(runtime.ListT, &runtime.List{Items: m.Keys()}), nil
}

func valuesFn(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
	m := args[0].Payload.(*runtime.Map)
	return runtime.NewValue(runtime.ListT, &runtime.List{Items: m.Values()}), nil
}

func containsFn(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
	switch c := args[0]; c.Type {
	case runtime.ListT:
		for _, item := range c.Payload.(*runtime.List).Items {
			if item.Equal(args[1]) {
				return runtime.NewValue(runtime.Boolean, true), nil
			}
		}
		return runtime.NewValue(runtime.Boolean, false), nil
	case runtime.SetT:
		return runtime.NewValue(runtime.Boolean, c.Payload.(*runtime.Set).Contains(args[1])), nil
	case runtime.MapT:
		_, ok := c.Payload.(*runtime.Map).Get(args[1])
		return runtime.NewValue(runtime.Boolean, ok), nil
	}
	return nil, errors.New("contains: unsupported container type " + args[0].Type.Name)
}
