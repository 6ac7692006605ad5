package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldKind selects the input control and the coercion applied at submit.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldTextArea
)

// Field describes one form input for an entity.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
}

// Coerce turns the raw string a form collected into the value the API
// expects. Numbers become numeric JSON values, never strings; an unset
// optional number stays null so an untouched edit round-trips unchanged.
func (f Field) Coerce(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if f.Required {
			return nil, fmt.Errorf("%s is required", f.Label)
		}
		if f.Kind == FieldNumber {
			return nil, nil
		}
		return "", nil
	}
	switch f.Kind {
	case FieldNumber:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n, nil
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", f.Label)
		}
		return n, nil
	default:
		return raw, nil
	}
}

// CoerceAll applies each field's coercion to its raw value, producing the
// payload handed to create/update.
func CoerceAll(fields []Field, raw map[string]string) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		v, err := f.Coerce(raw[f.Name])
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	return out, nil
}

// SeedValues projects an existing item onto the field set as editable
// strings. Missing fields seed as empty; a nil item seeds everything empty
// (the add case).
func SeedValues(fields []Field, item Item) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = ""
		if item == nil {
			continue
		}
		if v, ok := item[f.Name]; ok && v != nil {
			out[f.Name] = valueString(v)
		}
	}
	return out
}

// valueString renders an item value the way a form input should show it.
// JSON numbers arrive as float64; whole ones must not grow a ".0".
func valueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
