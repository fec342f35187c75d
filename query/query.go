package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingValue is returned when a label or text rule object lacks
// the required "value" field.
var ErrMissingValue = errors.New("query object doesn't have 'value' field")

// Value is a single string-matching rule.
type Value struct {
	Value         string
	CaseSensitive bool
	Contains      bool
}

// Matches reports whether s satisfies the rule. A nil rule matches
// everything.
func (v *Value) Matches(s string) bool {
	if v == nil {
		return true
	}
	expected := v.Value
	if !v.CaseSensitive {
		s = strings.ToLower(s)
		expected = strings.ToLower(expected)
	}
	if v.Contains {
		return strings.Contains(s, expected)
	}
	return s == expected
}

// Query is one node of a parsed query tree. Every field is optional;
// a query with none set matches every element. Each relation slot owns
// its nested node, and parsed trees are read-only during evaluation.
type Query struct {
	Label *Value
	Text  *Value

	Child  *Query
	Parent *Query
	Left   *Query
	Right  *Query
	Up     *Query
	Down   *Query
}

// Parse converts an externally supplied specification into a query
// tree. String values are shorthand for {"value": s}. Rule objects may
// set "case_sensitive" and "contains" alongside the required "value".
// Relation keys must hold nested objects; anything else under a
// relation key is ignored. Unknown keys are skipped silently.
func Parse(spec map[string]any) (*Query, error) {
	q := &Query{}
	for key, raw := range spec {
		switch key {
		case "label", "text":
			v, err := parseValue(key, raw)
			if err != nil {
				return nil, err
			}
			if key == "label" {
				q.Label = v
			} else {
				q.Text = v
			}
		case "child", "parent", "left", "right", "up", "down":
			nested, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			sub, err := Parse(nested)
			if err != nil {
				return nil, err
			}
			switch key {
			case "child":
				q.Child = sub
			case "parent":
				q.Parent = sub
			case "left":
				q.Left = sub
			case "right":
				q.Right = sub
			case "up":
				q.Up = sub
			case "down":
				q.Down = sub
			}
		}
	}
	return q, nil
}

func parseValue(key string, raw any) (*Value, error) {
	switch val := raw.(type) {
	case string:
		return &Value{Value: val, CaseSensitive: true}, nil
	case map[string]any:
		inner, ok := val["value"]
		if !ok {
			return nil, fmt.Errorf("%q: %w", key, ErrMissingValue)
		}
		s, ok := inner.(string)
		if !ok {
			return nil, fmt.Errorf("%q: 'value' field must be a string, got %T", key, inner)
		}
		v := &Value{Value: s, CaseSensitive: true}
		if b, ok := val["case_sensitive"].(bool); ok {
			v.CaseSensitive = b
		}
		if b, ok := val["contains"].(bool); ok {
			v.Contains = b
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%q: must be a string or an object, got %T", key, raw)
	}
}
