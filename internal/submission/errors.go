package submission

import "errors"

var (
	// ErrEmptyPayload is returned when the submitted object has no members.
	ErrEmptyPayload = errors.New("payload cannot be empty")

	// ErrInvalidPayload is returned when the body is not a JSON object.
	ErrInvalidPayload = errors.New("payload must be a JSON object")

	// ErrInsertFailed is returned when the store cannot persist a submission.
	ErrInsertFailed = errors.New("failed to insert submission")

	// ErrUpdateFailed is returned when a status write fails at the store.
	ErrUpdateFailed = errors.New("failed to update submission")

	// ErrStatusNotUpdated is returned when a status write matches no record,
	// either because the id is unknown or the transition is not allowed.
	ErrStatusNotUpdated = errors.New("submission status not updated")

	// ErrQueryFailed is returned when listing submissions fails.
	ErrQueryFailed = errors.New("failed to query submissions")

	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid submission status")

	// ErrInvalidID is returned for a malformed store identifier.
	ErrInvalidID = errors.New("invalid submission id")
)
