package stdlib

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/lnsp/tea/internal/errors"
	"github.com/lnsp/tea/internal/runtime"
)

// toJSONFn serializes a null, boolean, number, string, list, set or map
// value to a STRING, building container documents incrementally with
// sjson.SetRaw; functions and objects are rejected with an error.
func toJSONFn(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
	s, err := toJSON(args[0])
	if err != nil {
		return nil, err
	}
	return runtime.NewValue(runtime.String, s), nil
}

func toJSON(v *runtime.Value) (string, error) {
	switch v.Type {
	case runtime.Null:
		return "null", nil
	case runtime.Boolean:
		return strconv.FormatBool(v.Payload.(bool)), nil
	case runtime.Integer:
		return strconv.FormatInt(v.Payload.(int64), 10), nil
	case runtime.Float:
		return strconv.FormatFloat(v.Payload.(float64), 'g', -1, 64), nil
	case runtime.String:
		return strconv.Quote(v.Payload.(string)), nil
	case runtime.ListT:
		doc := "[]"
		for _, item := range v.Payload.(*runtime.List).Items {
			raw, err := toJSON(item)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, "-1", raw)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	case runtime.SetT:
		doc := "[]"
		for _, item := range v.Payload.(*runtime.Set).Items {
			raw, err := toJSON(item)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, "-1", raw)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	case runtime.MapT:
		doc := "{}"
		m := v.Payload.(*runtime.Map)
		for _, key := range m.Keys() {
			keyStr, err := runtime.String.Cast(key)
			if err != nil {
				return "", err
			}
			value, _ := m.Get(key)
			raw, err := toJSON(value)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, jsonPathEscape(keyStr.Payload.(string)), raw)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	}
	return "", errors.New("to_json: cannot serialize " + v.Type.Name)
}

// jsonPathEscape escapes sjson's path metacharacters (".", "*", "?") in
// a map key used as an object field name.
func jsonPathEscape(key string) string {
	r := strings.NewReplacer(".", "\\.", "*", "\\*", "?", "\\?")
	return r.Replace(key)
}

// fromJSONFn parses a STRING into the corresponding Tea value, reading
// it with gjson.
func fromJSONFn(_ *runtime.Context, args []*runtime.Value) (*runtime.Value, error) {
	raw := args[0].Payload.(string)
	if !gjson.Valid(raw) {
		return nil, errors.New("from_json: invalid JSON")
	}
	return fromGJSON(gjson.Parse(raw)), nil
}

func fromGJSON(r gjson.Result) *runtime.Value {
	switch r.Type {
	case gjson.Null:
		return runtime.NewValue(runtime.Null, nil)
	case gjson.False:
		return runtime.NewValue(runtime.Boolean, false)
	case gjson.True:
		return runtime.NewValue(runtime.Boolean, true)
	case gjson.Number:
		if strings.ContainsAny(r.Raw, ".eE") {
			return runtime.NewValue(runtime.Float, r.Float())
		}
		return runtime.NewValue(runtime.Integer, r.Int())
	case gjson.String:
		return runtime.NewValue(runtime.String, r.String())
	case gjson.JSON:
		if r.IsArray() {
			items := []*runtime.Value{}
			r.ForEach(func(_, value gjson.Result) bool {
				items = append(items, fromGJSON(value))
				return true
			})
			return runtime.NewValue(runtime.ListT, &runtime.List{Items: items})
		}
		m := runtime.NewMap()
		r.ForEach(func(key, value gjson.Result) bool {
			m.Set(runtime.NewValue(runtime.String, key.String()), fromGJSON(value))
			return true
		})
		return runtime.NewValue(runtime.MapT, m)
	}
	return runtime.NewValue(runtime.Null, nil)
}
