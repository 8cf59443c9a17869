package render

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Object is a JSON object with its members in document order.
//
// encoding/json's map decoding discards key order, but row order in the
// rendered notification must follow the source document. Parsing through the
// token stream keeps the order intact.
type Object []Member

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value any // Object, Array, string, json.Number, bool, or nil
}

// Array is a JSON array whose elements are parsed the same way as Object values.
type Array []any

// Get returns the value of the first member with the given key.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// GetLast returns the value of the last member with the given key. JSON
// permits duplicate keys; for members appended after the original document,
// the later one is authoritative.
func (o Object) GetLast(key string) (any, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Keys returns the member keys in document order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// ParseObject parses raw JSON that must be a top-level object.
func ParseObject(raw json.RawMessage) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: top-level value must be an object", ErrInvalidDocument)
	}

	obj, err := parseObject(dec)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// parseObject consumes members until the closing brace. The opening brace has
// already been read.
func parseObject(dec *json.Decoder) (Object, error) {
	var obj Object
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is not a string", ErrInvalidDocument)
		}

		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		obj = append(obj, Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) (Array, error) {
	arr := Array{}
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return arr, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, fmt.Errorf("%w: unexpected delimiter %q", ErrInvalidDocument, t.String())
	default:
		// string, json.Number, bool, or nil
		return tok, nil
	}
}
