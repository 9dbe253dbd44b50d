package services

import (
	"context"
	"fmt"

	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driving"
	"github.com/studyhall-labs/shelf-cli/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.Library = (*LibraryService)(nil)

// LibraryService is the produced surface of the orchestrator: module
// listing via the Reconciler, uploads via the UploadPipeline, and the
// administrative delete escape hatch.
type LibraryService struct {
	stores     driven.StoreProvider
	cache      driven.ModuleCache
	reconciler *Reconciler
	pipeline   *UploadPipeline
	retrier    *Retrier
}

// NewLibraryService wires the orchestrator components together.
func NewLibraryService(
	stores driven.StoreProvider,
	cache driven.ModuleCache,
	reconciler *Reconciler,
	pipeline *UploadPipeline,
	retrier *Retrier,
) *LibraryService {
	return &LibraryService{
		stores:     stores,
		cache:      cache,
		reconciler: reconciler,
		pipeline:   pipeline,
		retrier:    retrier,
	}
}

// ListModules returns the reconciled module list.
func (s *LibraryService) ListModules(ctx context.Context) ([]domain.Module, error) {
	return s.reconciler.ListModules(ctx)
}

// UploadBatch uploads files into a new module named moduleLabel.
func (s *LibraryService) UploadBatch(
	ctx context.Context,
	files []domain.UploadFile,
	moduleLabel string,
	onProgress driving.ProgressFunc,
) (*driving.BatchResult, error) {
	return s.pipeline.UploadBatch(ctx, files, moduleLabel, onProgress)
}

// DeleteModule removes the remote store and the local cache entry.
// The remote delete happens first: a module must never vanish from the
// cache while its store still exists, or reconciliation would resurrect
// it with an empty document list.
func (s *LibraryService) DeleteModule(ctx context.Context, storeHandle string) error {
	if storeHandle == "" {
		return fmt.Errorf("%w: store handle is required", domain.ErrInvalidInput)
	}

	err := s.retrier.Do(ctx, func(_ int) error {
		return s.stores.DeleteStore(ctx, storeHandle)
	})
	if err != nil {
		return fmt.Errorf("delete store %s: %w", storeHandle, err)
	}

	modules, err := s.cache.Load(ctx)
	if err != nil {
		logger.Warn("cache load after delete failed: %v", err)
		return nil
	}
	kept := modules[:0]
	for _, m := range modules {
		if m.StoreHandle != storeHandle {
			kept = append(kept, m)
		}
	}
	if err := s.cache.Save(ctx, kept); err != nil {
		logger.Warn("cache update after delete failed: %v", err)
	}
	return nil
}
