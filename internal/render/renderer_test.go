package render_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/submitd/internal/render"
)

const quotePayload = `{"name": "Jane Doe", "email": "jane@example.com", "item": "gold ring", "value": 2500, "coverage": "theft"}`

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New(render.Config{})
	require.NoError(t, err)
	return r
}

func TestDetectShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want render.Shape
	}{
		{
			name: "all quote fields present",
			raw:  quotePayload,
			want: render.ShapeQuote,
		},
		{
			name: "quote fields in any order",
			raw:  `{"coverage": "fire", "value": 1, "item": "watch", "email": "a@b.co", "name": "A"}`,
			want: render.ShapeQuote,
		},
		{
			name: "one quote field missing",
			raw:  `{"name": "Jane", "email": "jane@example.com", "item": "ring", "value": 2500}`,
			want: render.ShapeGeneric,
		},
		{
			name: "unrelated payload",
			raw:  `{"hello": "world"}`,
			want: render.ShapeGeneric,
		},
		{
			name: "extra fields do not break quote detection",
			raw:  `{"name": "J", "email": "j@x.co", "item": "i", "value": 1, "coverage": "c", "notes": "n"}`,
			want: render.ShapeQuote,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			obj, err := render.ParseObject([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, render.DetectShape(obj))
		})
	}
}

func TestRenderer_Render_QuoteTemplate(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	markup, err := r.Render([]byte(quotePayload), "doc-123")
	require.NoError(t, err)

	assert.Contains(t, markup, "Quote Request from Jane Doe")
	assert.Contains(t, markup, "jane@example.com")
	assert.Contains(t, markup, "gold ring")
	assert.Contains(t, markup, "2500")
	assert.Contains(t, markup, "theft")
	assert.Contains(t, markup, "doc-123")
}

func TestRenderer_Render_GenericTemplate(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	payload := `{"type": "feedback", "score": 5, "details": {"text": "great"}}`
	markup, err := r.Render([]byte(payload), "doc-456")
	require.NoError(t, err)

	assert.Contains(t, markup, "feedback")
	assert.Contains(t, markup, "details.text")
	assert.Contains(t, markup, "great")
	assert.Contains(t, markup, "doc-456")
}

func TestRenderer_Render_TitleFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "title preferred", raw: `{"title": "T", "name": "N", "type": "Y"}`, want: "T"},
		{name: "name next", raw: `{"name": "N", "type": "Y"}`, want: "N"},
		{name: "type next", raw: `{"type": "Y"}`, want: "Y"},
		{name: "default label", raw: `{"x": 1}`, want: "Submission"},
		{name: "non-string title skipped", raw: `{"title": 7, "name": "N"}`, want: "N"},
	}

	r := newRenderer(t)

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			markup, err := r.Render([]byte(tt.raw), "id")
			require.NoError(t, err)
			assert.Contains(t, markup, "<h1>"+tt.want+"</h1>")
		})
	}
}

func TestRenderer_Render_MetaShownInFooterNotRows(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	payload := `{"a": 1, "_meta": {"received_at": "2026-08-29T10:00:00Z", "status": "received"}}`
	markup, err := r.Render([]byte(payload), "id")
	require.NoError(t, err)

	assert.Contains(t, markup, "2026-08-29T10:00:00Z")
	assert.NotContains(t, markup, "_meta.status")
	assert.NotContains(t, markup, ">received<")
}

func TestRenderer_Render_StampedMetaWinsOverSubmitted(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	// The submitter may include a meta-shaped key of their own; the stamped
	// sub-record appended at acceptance is the last member and must win.
	payload := `{"a": 1, "_meta": {"received_at": "1999-01-01T00:00:00Z"}, ` +
		`"_meta": {"received_at": "2026-08-29T10:00:00Z", "status": "received"}}`
	markup, err := r.Render([]byte(payload), "id")
	require.NoError(t, err)

	assert.Contains(t, markup, "2026-08-29T10:00:00Z")
	assert.NotContains(t, markup, "1999-01-01T00:00:00Z")
}

func TestRenderer_Render_DoesNotMutatePayload(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	raw := json.RawMessage(`{"a": {"b": 1}, "c": [1, 2]}`)
	original := string(raw)

	_, err := r.Render(raw, "id")
	require.NoError(t, err)
	assert.Equal(t, original, string(raw))
}

func TestRenderer_Render_InvalidPayload(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	for _, raw := range []string{`[1, 2]`, `"scalar"`, `{"broken":`} {
		_, err := r.Render([]byte(raw), "id")
		assert.ErrorIs(t, err, render.ErrInvalidDocument, raw)
	}
}

func TestNew_MissingTemplatesDir(t *testing.T) {
	t.Parallel()

	_, err := render.New(render.Config{TemplatesDir: t.TempDir()})
	assert.Error(t, err)
}
