package submission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/submitd/internal/submission"
)

func TestPayloadFieldResolver_Resolve(t *testing.T) {
	t.Parallel()

	fields := []string{"email", "contact.email"}

	tests := []struct {
		name     string
		payload  map[string]any
		fallback string
		want     string
	}{
		{
			name:    "top-level field",
			payload: map[string]any{"email": "user@example.com"},
			want:    "user@example.com",
		},
		{
			name:    "nested field",
			payload: map[string]any{"contact": map[string]any{"email": "nested@example.com"}},
			want:    "nested@example.com",
		},
		{
			name: "first field wins",
			payload: map[string]any{
				"email":   "first@example.com",
				"contact": map[string]any{"email": "second@example.com"},
			},
			want: "first@example.com",
		},
		{
			name:     "fallback when nothing resolves",
			payload:  map[string]any{"a": 1},
			fallback: "ops@example.com",
			want:     "ops@example.com",
		},
		{
			name:    "no fallback yields empty",
			payload: map[string]any{"a": 1},
			want:    "",
		},
		{
			name:     "non-string values are skipped",
			payload:  map[string]any{"email": 42},
			fallback: "ops@example.com",
			want:     "ops@example.com",
		},
		{
			name:     "whitespace-only values are skipped",
			payload:  map[string]any{"email": "   "},
			fallback: "ops@example.com",
			want:     "ops@example.com",
		},
		{
			name:    "path through non-object stops",
			payload: map[string]any{"contact": "not an object"},
			want:    "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := submission.NewPayloadFieldResolver(fields, tt.fallback)
			assert.Equal(t, tt.want, r.Resolve(tt.payload))
		})
	}
}
