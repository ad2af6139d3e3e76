package starlark

import (
	"fmt"
	"sort"

	"github.com/eescode/eescode/pkg/ast"
	"github.com/eescode/eescode/pkg/lexer"
	"github.com/eescode/eescode/pkg/splitter"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// ToStarlark converts a Go value to a Starlark value.
func ToStarlark(val any) (starlark.Value, error) {
	switch v := val.(type) {
	case nil:
		return starlark.None, nil
	case starlark.Value:
		return v, nil
	case string:
		return starlark.String(v), nil
	case int:
		return starlark.MakeInt(v), nil
	case int64:
		return starlark.MakeInt64(v), nil
	case float64:
		return starlark.Float(v), nil
	case bool:
		return starlark.Bool(v), nil
	case []string:
		items := make([]starlark.Value, len(v))
		for i, s := range v {
			items[i] = starlark.String(s)
		}
		return starlark.NewList(items), nil
	case []any:
		items := make([]starlark.Value, len(v))
		for i, item := range v {
			sv, err := ToStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = sv
		}
		return starlark.NewList(items), nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		dict := starlark.NewDict(len(v))
		for _, k := range keys {
			sv, err := ToStarlark(v[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			if err := dict.SetKey(starlark.String(k), sv); err != nil {
				return nil, err
			}
		}
		return dict, nil
	}
	return nil, fmt.Errorf("cannot convert %T to starlark", val)
}

// FromStarlark converts a Starlark value to plain Go values: string, int64,
// float64, bool, []any, map[string]any or nil. Structs become maps.
func FromStarlark(val starlark.Value) any {
	switch v := val.(type) {
	case nil, starlark.NoneType:
		return nil
	case starlark.String:
		return string(v)
	case starlark.Int:
		if i, ok := v.Int64(); ok {
			return i
		}
		return v.String()
	case starlark.Float:
		return float64(v)
	case starlark.Bool:
		return bool(v)
	case *starlark.List:
		items := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			items[i] = FromStarlark(v.Index(i))
		}
		return items
	case starlark.Tuple:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = FromStarlark(item)
		}
		return items
	case *starlark.Dict:
		dict := make(map[string]any, v.Len())
		for _, item := range v.Items() {
			if key, ok := item[0].(starlark.String); ok {
				dict[string(key)] = FromStarlark(item[1])
			} else {
				dict[item[0].String()] = FromStarlark(item[1])
			}
		}
		return dict
	case *starlarkstruct.Struct:
		dict := make(map[string]any)
		for _, name := range v.AttrNames() {
			attr, err := v.Attr(name)
			if err == nil {
				dict[name] = FromStarlark(attr)
			}
		}
		return dict
	}
	return val.String()
}

func variableValue(v *ast.Variable) starlark.Value {
	return starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
		"name":           starlark.String(v.Name),
		"index":          starlark.MakeInt(v.Index),
		"is_input":       starlark.Bool(v.IsInput),
		"is_fluid":       starlark.Bool(v.IsFluid),
		"is_block_index": starlark.Bool(v.IsBlockIndex),
	})
}

func variablesValue(vars []*ast.Variable) starlark.Value {
	items := make([]starlark.Value, len(vars))
	for i, v := range vars {
		items[i] = variableValue(v)
	}
	return starlark.NewList(items)
}

// partsValue renders split records as dicts with name, type and expression
// keys, the shape callers of the splitter expect.
func partsValue(parts []splitter.Part) (starlark.Value, error) {
	items := make([]starlark.Value, len(parts))
	for i, p := range parts {
		d := starlark.NewDict(3)
		for _, kv := range [][2]string{{"name", p.Name}, {"type", p.Type}, {"expression", p.Expression}} {
			if err := d.SetKey(starlark.String(kv[0]), starlark.String(kv[1])); err != nil {
				return nil, err
			}
		}
		items[i] = d
	}
	return starlark.NewList(items), nil
}

func stringsValue(items []string) starlark.Value {
	values := make([]starlark.Value, len(items))
	for i, s := range items {
		values[i] = starlark.String(s)
	}
	return starlark.NewList(values)
}

func tokensValue(tokens []lexer.Token) starlark.Value {
	items := make([]starlark.Value, len(tokens))
	for i, t := range tokens {
		items[i] = starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
			"kind": starlark.String(t.Kind),
			"text": starlark.String(t.Text),
			"pos":  starlark.MakeInt(t.Pos),
		})
	}
	return starlark.NewList(items)
}
