package mcp

import (
	"encoding/json"
	"fmt"
	"math"
)

// arguments are the decoded tool-call arguments.
type arguments map[string]interface{}

// check verifies every declared parameter is present with the declared type.
// It runs before any backend request so a bad call never reaches the API.
func (a arguments) check(params []CatalogParam) error {
	for _, p := range params {
		v, ok := a[p.Name]
		if !ok || v == nil {
			if p.Required {
				return fmt.Errorf("%s parameter is required", p.Name)
			}
			continue
		}
		var err error
		switch p.Type {
		case TypeInteger:
			_, err = toInt64(p.Name, v)
		case TypeNumber:
			_, err = toFloat64(p.Name, v)
		case TypeString:
			if _, ok := v.(string); !ok {
				err = fmt.Errorf("%s must be a string, got %T", p.Name, v)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// The accessors below assume check has passed.

func (a arguments) id(name string) int64 {
	n, _ := toInt64(name, a[name])
	return n
}

func (a arguments) count(name string) int {
	return int(a.id(name))
}

func (a arguments) number(name string) float64 {
	f, _ := toFloat64(name, a[name])
	return f
}

func (a arguments) text(name string) string {
	s, _ := a[name].(string)
	return s
}

func toFloat64(name string, v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s must be a number", name)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", name, v)
	}
}

func toInt64(name string, v interface{}) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", name)
		}
		return i, nil
	}
	f, err := toFloat64(name, v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %T", name, v)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%s must be an integer, got %v", name, f)
	}
	return int64(f), nil
}
