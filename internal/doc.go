// Package internal documents the notes server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, problem responses, and routing
// - domain: note lifecycle rules, audit trail, and id generation
// - storage: repositories with postgres and in-memory backends
// - config, metrics: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
