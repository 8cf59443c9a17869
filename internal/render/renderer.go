package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Shape tags the recognized payload variants. Each shape maps to its own
// template; adding a variant means adding a tag, a detector entry, and a
// template file.
type Shape string

const (
	// ShapeQuote is the insurance quote payload, recognized by the presence
	// of all required quote fields at the top level.
	ShapeQuote Shape = "quote"
	// ShapeGeneric is the fallback for every other payload.
	ShapeGeneric Shape = "generic"
)

// quoteRequiredKeys is the closed field set that identifies a quote payload.
var quoteRequiredKeys = []string{"name", "email", "item", "value", "coverage"}

// defaultTitle labels generic notifications when the payload carries no
// usable title field.
const defaultTitle = "Submission"

// titleKeys are probed in order for the generic notification title.
var titleKeys = []string{"title", "name", "type"}

// Config holds environment-driven renderer settings.
type Config struct {
	// TemplatesDir optionally points at a directory of template overrides.
	// When empty the embedded templates are used.
	TemplatesDir string `env:"TEMPLATES_DIR"`
}

// Renderer turns a submission payload into notification markup.
// It is pure: rendering never mutates the payload and performs no I/O beyond
// reading template definitions at construction time.
type Renderer struct {
	templates *template.Template
}

// New creates a Renderer with templates loaded from cfg.TemplatesDir, or from
// the embedded defaults when no directory is configured.
func New(cfg Config) (*Renderer, error) {
	tpl := template.New("notifications").Funcs(sprig.HtmlFuncMap())

	var err error
	if cfg.TemplatesDir != "" {
		tpl, err = tpl.ParseGlob(cfg.TemplatesDir + "/*.html")
	} else {
		tpl, err = tpl.ParseFS(embeddedTemplates, "templates/*.html")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}

	for _, shape := range []Shape{ShapeQuote, ShapeGeneric} {
		if tpl.Lookup(shape.templateName()) == nil {
			return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, shape.templateName())
		}
	}

	return &Renderer{templates: tpl}, nil
}

func (s Shape) templateName() string {
	return string(s) + ".html"
}

// DetectShape classifies raw payload JSON into one of the known shapes.
func DetectShape(obj Object) Shape {
	for _, key := range quoteRequiredKeys {
		if _, ok := obj.Get(key); !ok {
			return ShapeGeneric
		}
	}
	return ShapeQuote
}

// Render produces notification markup for the payload. The template variant
// is selected from the payload's top-level key set. Any template failure is
// returned to the caller untouched.
func (r *Renderer) Render(payload json.RawMessage, docID string) (string, error) {
	obj, err := ParseObject(payload)
	if err != nil {
		return "", err
	}

	shape := DetectShape(obj)

	var data any
	switch shape {
	case ShapeQuote:
		data = quoteData{
			Payload:    toPlain(obj).(map[string]any),
			DocID:      docID,
			ReceivedAt: receivedAt(obj),
		}
	default:
		data = genericData{
			Title:      title(obj),
			DocID:      docID,
			ReceivedAt: receivedAt(obj),
			Rows:       Flatten(obj),
		}
	}

	var sb strings.Builder
	if err := r.templates.ExecuteTemplate(&sb, shape.templateName(), data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateExecute, err)
	}
	return sb.String(), nil
}

type genericData struct {
	Title      string
	DocID      string
	ReceivedAt string
	Rows       []Row
}

type quoteData struct {
	Payload    map[string]any
	DocID      string
	ReceivedAt string
}

// title picks the first present title-ish field, falling back to the default
// label. Only non-empty string values qualify.
func title(obj Object) string {
	for _, key := range titleKeys {
		if v, ok := obj.Get(key); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return defaultTitle
}

// receivedAt digs the accept timestamp out of the attached meta sub-record.
// The stamped sub-record is always the last member, so the last match wins
// over any meta-shaped key the submitter put in the payload themselves.
func receivedAt(obj Object) string {
	meta, ok := obj.GetLast("_meta")
	if !ok {
		return ""
	}
	metaObj, ok := meta.(Object)
	if !ok {
		return ""
	}
	v, ok := metaObj.Get("received_at")
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
