package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/submitd/pkg/email"
)

// TaskDeliver names the background task that runs the deliver phase.
const TaskDeliver = "submission.deliver"

// AcceptMessage is the response message returned on successful acceptance.
const AcceptMessage = "Data saved. Email is being sent."

// Renderer produces notification markup from the accepted payload.
type Renderer interface {
	Render(payload json.RawMessage, docID string) (string, error)
}

// Enqueuer schedules background tasks.
type Enqueuer interface {
	Enqueue(ctx context.Context, name string, payload any) error
}

// DeliverTask is the payload of a scheduled deliver phase. The payload
// carries the attached meta sub-record; DocumentID is the durable key every
// status update targets.
type DeliverTask struct {
	DocumentID string          `json:"document_id"`
	Payload    json.RawMessage `json:"payload"`
}

// AcceptResult is the caller-visible outcome of a successful acceptance.
type AcceptResult struct {
	Message    string `json:"message"`
	DocumentID string `json:"document_id"`
}

// Pipeline owns the submission lifecycle: it stamps metadata, persists,
// schedules background delivery, and reconciles delivery status back onto the
// stored record.
type Pipeline struct {
	store    Store
	renderer Renderer
	sender   email.Sender
	enqueuer Enqueuer
	resolver RecipientResolver
	subject  string
	logger   *slog.Logger
	now      func() time.Time
}

// PipelineOption configures optional pipeline collaborators.
type PipelineOption func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock overrides the accept-time clock. Test hook.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPipeline wires the pipeline with its collaborators. All of them are
// injected explicitly; the pipeline holds no process-wide state.
func NewPipeline(cfg Config, store Store, renderer Renderer, sender email.Sender, enqueuer Enqueuer, opts ...PipelineOption) (*Pipeline, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if sender == nil {
		return nil, errors.New("sender is required")
	}
	if enqueuer == nil {
		return nil, errors.New("enqueuer is required")
	}

	p := &Pipeline{
		store:    store,
		renderer: renderer,
		sender:   sender,
		enqueuer: enqueuer,
		resolver: NewPayloadFieldResolver(cfg.RecipientFields, cfg.FallbackRecipient),
		subject:  cfg.Subject,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Accept validates and persists a submitted payload, then schedules the
// deliver phase. The returned result reflects only the persistence step;
// delivery outcome is never awaited here.
func (p *Pipeline) Accept(ctx context.Context, raw json.RawMessage) (AcceptResult, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return AcceptResult{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(payload) == 0 {
		return AcceptResult{}, ErrEmptyPayload
	}

	meta := NewMeta(p.now())

	id, err := p.store.Insert(ctx, payload, meta)
	if err != nil {
		p.logger.Error("submission insert failed", slog.String("error", err.Error()))
		return AcceptResult{}, err
	}
	p.logger.Info("submission saved", slog.String("document_id", id))

	withMeta, err := attachMeta(raw, meta)
	if err != nil {
		// The record is durable; delivery just cannot be scheduled.
		p.logger.Error("failed to attach meta to payload",
			slog.String("document_id", id),
			slog.String("error", err.Error()))
		return AcceptResult{Message: AcceptMessage, DocumentID: id}, nil
	}

	task := DeliverTask{DocumentID: id, Payload: withMeta}
	if err := p.enqueuer.Enqueue(ctx, TaskDeliver, task); err != nil {
		// The HTTP-visible outcome reflects persistence only; the record
		// stays in the received state.
		p.logger.Warn("failed to schedule delivery",
			slog.String("document_id", id),
			slog.String("error", err.Error()))
	}

	return AcceptResult{Message: AcceptMessage, DocumentID: id}, nil
}

// Deliver runs the background phase: resolve recipient, render, send, and
// record the terminal status on the stored record. Failures are converted
// into persisted status; the returned error only feeds worker logging.
func (p *Pipeline) Deliver(ctx context.Context, task DeliverTask) error {
	var payload map[string]any
	if err := json.Unmarshal(task.Payload, &payload); err != nil {
		p.setStatus(ctx, task.DocumentID, StatusEmailFailed, err.Error())
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	recipient := p.resolver.Resolve(payload)
	if recipient == "" {
		p.logger.Warn("no recipient found in payload",
			slog.String("document_id", task.DocumentID))
		p.setStatus(ctx, task.DocumentID, StatusNoRecipient, "")
		return nil
	}

	markup, err := p.renderer.Render(task.Payload, task.DocumentID)
	if err != nil {
		p.setStatus(ctx, task.DocumentID, StatusEmailFailed, err.Error())
		return err
	}

	err = p.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   recipient,
		Subject:  p.subject,
		BodyHTML: markup,
		Tag:      TaskDeliver,
	})
	if err != nil {
		p.setStatus(ctx, task.DocumentID, StatusEmailFailed, err.Error())
		return err
	}

	p.setStatus(ctx, task.DocumentID, StatusEmailSent, "")
	p.logger.Info("notification sent",
		slog.String("document_id", task.DocumentID),
		slog.String("recipient", recipient))
	return nil
}

// List returns up to limit stored submissions, most recently received first.
func (p *Pipeline) List(ctx context.Context, limit int64) ([]map[string]any, error) {
	return p.store.List(ctx, limit)
}

// TaskHandler adapts Deliver into a queue handler.
func (p *Pipeline) TaskHandler() (string, func(ctx context.Context, task DeliverTask) error) {
	return TaskDeliver, p.Deliver
}

// setStatus records a terminal status, logging instead of failing when the
// write itself goes wrong: the background phase has no caller to report to.
func (p *Pipeline) setStatus(ctx context.Context, id string, status Status, errMsg string) {
	if err := p.store.SetStatus(ctx, id, status, errMsg); err != nil {
		p.logger.Error("failed to update submission status",
			slog.String("document_id", id),
			slog.String("status", string(status)),
			slog.String("error", err.Error()))
	}
}

// attachMeta appends the meta sub-record as the last member of the raw
// payload object, preserving the document order of the original members.
func attachMeta(raw json.RawMessage, meta Meta) (json.RawMessage, error) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) < 2 || trimmed[0] != '{' || trimmed[len(trimmed)-1] != '}' {
		return nil, ErrInvalidPayload
	}

	var buf bytes.Buffer
	buf.Grow(len(trimmed) + len(metaJSON) + len(MetaKey) + 4)
	buf.Write(trimmed[:len(trimmed)-1])
	buf.WriteString(`,"` + MetaKey + `":`)
	buf.Write(metaJSON)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
