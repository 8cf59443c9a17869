package submission

import "context"

// Store is the async key-document persistence consumed by the pipeline.
//
// Insert persists the payload with its meta sub-record and returns the
// store-assigned identifier. SetStatus is an idempotent write of the meta
// status (and error, when non-empty) targeting the record by that identifier;
// it must never touch payload fields. List returns up to limit stored
// documents, most recently received first, with store-internal fields
// stripped.
type Store interface {
	Insert(ctx context.Context, payload map[string]any, meta Meta) (string, error)
	SetStatus(ctx context.Context, id string, status Status, errMsg string) error
	List(ctx context.Context, limit int64) ([]map[string]any, error)
}
