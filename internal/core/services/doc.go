// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The three pillars are the Retrier (retry-with-backoff and
// timeout-with-fallback around every provider call), the UploadPipeline
// (store creation, sequential file submission, operation polling) and the
// Reconciler (cloud-wins, cache-fills-gaps merge of the module registry).
package services
