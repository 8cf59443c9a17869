// Package queue implements the bounded background task queue used to schedule
// the deliver phase of the submission pipeline.
//
// The request path enqueues a named task with a JSON payload and returns
// immediately; a fixed-size worker pool drains the buffer. Handler failures
// and panics are logged and contained: a background task has no caller to
// propagate to, and the pipeline handler records its own outcome on the
// submission record.
package queue
