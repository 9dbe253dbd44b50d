package driving

import (
	"context"

	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
)

// ProgressFunc receives per-file progress during an upload batch.
// May be nil when the caller does not want progress.
type ProgressFunc func(domain.UploadProgress)

// FileFailure records one file that did not index during a batch.
type FileFailure struct {
	// FileName is the failed file's display name.
	FileName string

	// Err is the failure, a *domain.Failure where classification matters.
	Err error
}

// BatchResult is the outcome of one upload session.
type BatchResult struct {
	// Module is the reconciled module after the batch, including any
	// documents that were already indexed.
	Module domain.Module

	// Failures lists files that did not index. Empty on full success.
	Failures []FileFailure
}

// Library is the produced interface of the sync & upload orchestrator.
type Library interface {
	// ListModules reconciles cloud and cache and returns the module list.
	ListModules(ctx context.Context) ([]domain.Module, error)

	// UploadBatch creates a store named moduleLabel, uploads the files
	// sequentially and drives each indexing job to completion. One
	// file's failure does not cancel the rest; per-file outcomes are in
	// the result.
	UploadBatch(ctx context.Context, files []domain.UploadFile, moduleLabel string, onProgress ProgressFunc) (*BatchResult, error)

	// DeleteModule removes the remote store and the cache entry.
	DeleteModule(ctx context.Context, storeHandle string) error
}

// Answerer exposes grounded question answering against one module.
type Answerer interface {
	// Ask answers question grounded in the documents of storeHandle.
	Ask(ctx context.Context, storeHandle, question string) (domain.Answer, error)
}
