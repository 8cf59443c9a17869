package render

import "errors"

var (
	// ErrInvalidDocument is returned when the payload is not a JSON object.
	ErrInvalidDocument = errors.New("payload is not a valid JSON object")

	// ErrTemplateLoad is returned when template definitions cannot be parsed.
	ErrTemplateLoad = errors.New("failed to load templates")

	// ErrTemplateMissing is returned when a shape has no matching template.
	ErrTemplateMissing = errors.New("template not found")

	// ErrTemplateExecute is returned when template execution fails.
	ErrTemplateExecute = errors.New("failed to execute template")
)
