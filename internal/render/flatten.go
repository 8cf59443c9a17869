package render

import (
	"fmt"
	"strings"
)

// nullPlaceholder is rendered in place of JSON null values.
const nullPlaceholder = "—"

// reservedPrefix marks internal keys that are skipped at every nesting level.
const reservedPrefix = "_"

// Row is one key/value line of the generic notification table.
type Row struct {
	Key   string
	Value string
}

// Flatten transforms a nested object into an ordered list of dotted/indexed
// key-value rows for generic display.
//
// Nested objects contribute dotted key paths (parent.child). Array elements
// contribute indexed paths: object elements are flattened under parent[i],
// anything else becomes a single parent[i] row with its string form. Keys
// starting with the reserved prefix are dropped wherever they appear. Row
// order follows document order of the source.
func Flatten(obj Object) []Row {
	rows := []Row{}
	flattenObject(obj, "", &rows)
	return rows
}

func flattenObject(obj Object, prefix string, rows *[]Row) {
	for _, m := range obj {
		if strings.HasPrefix(m.Key, reservedPrefix) {
			continue
		}
		fullKey := m.Key
		if prefix != "" {
			fullKey = prefix + "." + m.Key
		}
		switch v := m.Value.(type) {
		case Object:
			flattenObject(v, fullKey, rows)
		case Array:
			flattenArray(v, fullKey, rows)
		default:
			*rows = append(*rows, Row{Key: fullKey, Value: stringify(v)})
		}
	}
}

func flattenArray(arr Array, prefix string, rows *[]Row) {
	for i, elem := range arr {
		indexed := fmt.Sprintf("%s[%d]", prefix, i)
		if obj, ok := elem.(Object); ok {
			flattenObject(obj, indexed, rows)
		} else {
			*rows = append(*rows, Row{Key: indexed, Value: stringify(elem)})
		}
	}
}

// stringify renders a scalar value: null becomes the placeholder, everything
// else its plain string form. Arrays nested inside arrays are not flattened
// further and render as their plain form too.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return nullPlaceholder
	case string:
		return t
	case Array:
		return fmt.Sprint(toPlain(t))
	default:
		return fmt.Sprint(t)
	}
}

// toPlain converts the ordered parse tree back into plain Go values.
func toPlain(v any) any {
	switch t := v.(type) {
	case Object:
		m := make(map[string]any, len(t))
		for _, member := range t {
			m[member.Key] = toPlain(member.Value)
		}
		return m
	case Array:
		s := make([]any, len(t))
		for i, elem := range t {
			s[i] = toPlain(elem)
		}
		return s
	default:
		return v
	}
}
