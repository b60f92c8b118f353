package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParamValue is a dialogue platform parameter. The platform sends either a
// single value or a list of values for the same parameter name depending on
// how the entity was matched, so both shapes are kept explicit.
type ParamValue struct {
	values   []string
	multiple bool
}

// Single returns a ParamValue holding one value.
func Single(v string) ParamValue {
	return ParamValue{values: []string{v}}
}

// Multiple returns a ParamValue holding a list of values.
func Multiple(vs ...string) ParamValue {
	return ParamValue{values: append([]string(nil), vs...), multiple: true}
}

func (p ParamValue) IsMultiple() bool { return p.multiple }

// Values returns a copy of the raw values.
func (p ParamValue) Values() []string {
	return append([]string(nil), p.values...)
}

// String normalizes the value to a single string: list members are joined
// with a space.
func (p ParamValue) String() string {
	return strings.TrimSpace(strings.Join(p.values, " "))
}

func (p ParamValue) IsEmpty() bool {
	return p.String() == ""
}

func (p ParamValue) MarshalJSON() ([]byte, error) {
	if p.multiple {
		if p.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(p.values)
	}
	return json.Marshal(p.String())
}

func (p *ParamValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ParamValue{}
		return nil
	}
	if data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("domain: decode parameter list: %w", err)
		}
		vs := make([]string, 0, len(raw))
		for _, item := range raw {
			s, err := scalarText(item)
			if err != nil {
				return err
			}
			vs = append(vs, s)
		}
		*p = ParamValue{values: vs, multiple: true}
		return nil
	}
	s, err := scalarText(data)
	if err != nil {
		return err
	}
	*p = Single(s)
	return nil
}

// scalarText renders a JSON value as plain text.
func scalarText(data json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("domain: decode parameter value: %w", err)
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return fmt.Sprintf("%t", t), nil
	default:
		// composite entities arrive as objects; keep their compact JSON
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return "", fmt.Errorf("domain: compact parameter value: %w", err)
		}
		return buf.String(), nil
	}
}

// Params is the parameter mapping of a single turn.
type Params map[string]ParamValue

// Get returns the named parameter, or an empty value when absent.
func (p Params) Get(name string) ParamValue {
	if p == nil {
		return ParamValue{}
	}
	return p[name]
}

// Lookup reports whether the parameter is present and non-empty.
func (p Params) Lookup(name string) (ParamValue, bool) {
	v := p.Get(name)
	return v, !v.IsEmpty()
}
