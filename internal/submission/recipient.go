package submission

import "strings"

// RecipientResolver determines where a submission's notification goes.
// An empty result means no recipient and a terminal no_recipient status.
type RecipientResolver interface {
	Resolve(payload map[string]any) string
}

// PayloadFieldResolver looks up recipient candidates in the payload by dotted
// field path, in order, and falls back to a configured address when none of
// the fields holds a usable value.
type PayloadFieldResolver struct {
	Fields   []string
	Fallback string
}

// NewPayloadFieldResolver creates a resolver over the given dotted field
// paths (e.g. "email", "contact.email") with an optional fallback address.
func NewPayloadFieldResolver(fields []string, fallback string) PayloadFieldResolver {
	return PayloadFieldResolver{Fields: fields, Fallback: fallback}
}

func (r PayloadFieldResolver) Resolve(payload map[string]any) string {
	for _, field := range r.Fields {
		if addr := lookupPath(payload, field); addr != "" {
			return addr
		}
	}
	return r.Fallback
}

// lookupPath walks a dotted path through nested objects and returns the value
// if it is a non-empty string.
func lookupPath(payload map[string]any, path string) string {
	current := payload
	parts := strings.Split(path, ".")
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return ""
		}
		if i == len(parts)-1 {
			s, _ := v.(string)
			return strings.TrimSpace(s)
		}
		next, ok := v.(map[string]any)
		if !ok {
			return ""
		}
		current = next
	}
	return ""
}
