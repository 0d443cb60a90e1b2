// Package stdlib populates a runtime.Namespace with Tea's built-in
// types, operators, functions, and literal constants — the "library"
// a fresh interpretation session loads before running user code.
package stdlib

import "github.com/lnsp/tea/internal/runtime"

// Install loads every built-in binding into ns. Callers typically pass
// the root namespace of a fresh session.
func Install(ns *runtime.Namespace) {
	for _, t := range runtime.BuiltinTypes() {
		ns.StoreType(t)
	}

	ns.StoreID("true", runtime.NewValue(runtime.Boolean, true).Named("true"))
	ns.StoreID("false", runtime.NewValue(runtime.Boolean, false).Named("false"))
	ns.StoreID("null", runtime.NewValue(runtime.Null, nil).Named("null"))

	registerOperators(ns)
	registerFunctions(ns)
}
