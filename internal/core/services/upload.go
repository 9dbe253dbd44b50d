package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driving"
	"github.com/studyhall-labs/shelf-cli/internal/logger"
)

// Upload pipeline defaults. 120 polls at 5s gives indexing ten minutes of
// wall clock before the job is reported as timed out.
const (
	DefaultPollInterval = 5 * time.Second
	DefaultMaxPolls     = 120
)

// PipelineConfig tunes the upload pipeline.
type PipelineConfig struct {
	// PollInterval is the pause between operation status checks.
	PollInterval time.Duration

	// MaxPolls is the status check ceiling per file.
	MaxPolls int
}

func (c PipelineConfig) withDefaults() PipelineConfig {
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.MaxPolls == 0 {
		c.MaxPolls = DefaultMaxPolls
	}
	return c
}

// UploadPipeline moves a batch of local files into one remote index store
// and drives each file's indexing job to completion or failure.
//
// Files are processed strictly in submission order: they share one target
// store and one progress channel, so interleaving would scramble both. One
// file's failure never cancels the rest; per-file outcomes are collected
// in the batch result and the caller decides whether to stop.
type UploadPipeline struct {
	stores  driven.StoreProvider
	uploads driven.UploadProvider
	cache   driven.ModuleCache
	retrier *Retrier
	config  PipelineConfig
}

// NewUploadPipeline creates a pipeline. Zero config fields get defaults.
func NewUploadPipeline(
	stores driven.StoreProvider,
	uploads driven.UploadProvider,
	cache driven.ModuleCache,
	retrier *Retrier,
	config PipelineConfig,
) *UploadPipeline {
	return &UploadPipeline{
		stores:  stores,
		uploads: uploads,
		cache:   cache,
		retrier: retrier,
		config:  config.withDefaults(),
	}
}

// UploadBatch creates a store named moduleLabel and uploads files into it
// sequentially. The returned module reflects every file that confirmed
// indexing; files that did not are listed in Failures.
func (p *UploadPipeline) UploadBatch(
	ctx context.Context,
	files []domain.UploadFile,
	moduleLabel string,
	onProgress driving.ProgressFunc,
) (*driving.BatchResult, error) {
	if len(files) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if moduleLabel == "" {
		return nil, fmt.Errorf("%w: module label is required", domain.ErrInvalidInput)
	}

	session := uuid.NewString()
	logger.Info("upload session %s: %d file(s) into %q", session, len(files), moduleLabel)

	var store driven.StoreInfo
	err := p.retrier.Do(ctx, func(_ int) error {
		var callErr error
		store, callErr = p.stores.CreateStore(ctx, moduleLabel)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("create store %q: %w", moduleLabel, err)
	}
	logger.Debug("session %s: created store %s", session, store.Handle)

	module := domain.Module{
		Name:        store.DisplayName,
		StoreHandle: store.Handle,
		Documents:   []string{domain.DocPlaceholder},
	}
	// Cache the placeholder entry up front so an abandoned session still
	// lists the module on the next reconciliation.
	p.writeBack(ctx, module)

	result := &driving.BatchResult{}
	for i, file := range files {
		report := func(message string) {
			if onProgress == nil {
				return
			}
			onProgress(domain.UploadProgress{
				Index:     i + 1,
				Total:     len(files),
				FileName:  file.Name,
				SizeBytes: int64(len(file.Data)),
				Message:   message,
			})
		}

		if err := p.uploadOne(ctx, store.Handle, file, report); err != nil {
			logger.Warn("session %s: %s failed: %v", session, file.Name, err)
			result.Failures = append(result.Failures, driving.FileFailure{FileName: file.Name, Err: err})
			continue
		}

		module.AddDocument(file.Name)
		p.writeBack(ctx, module)
		report("indexed")
	}

	result.Module = module
	logger.Info("upload session %s: %d indexed, %d failed",
		session, len(files)-len(result.Failures), len(result.Failures))
	return result, nil
}

// uploadOne submits a single file and polls its indexing operation until a
// terminal state. Poll failures count toward the ceiling but do not abort.
func (p *UploadPipeline) uploadOne(
	ctx context.Context,
	storeHandle string,
	file domain.UploadFile,
	report func(message string),
) error {
	size := humanize.Bytes(uint64(len(file.Data)))
	report(fmt.Sprintf("uploading %s (%s)", file.Name, size))

	var opHandle string
	err := p.retrier.Do(ctx, func(_ int) error {
		var callErr error
		opHandle, callErr = p.uploads.SubmitUpload(ctx, storeHandle, file.Data, file.MIMEType(), file.Name)
		return callErr
	})
	if err != nil {
		return fmt.Errorf("submit %s: %w", file.Name, err)
	}
	if opHandle == "" {
		return domain.NewFailure(domain.FailurePermanent, "submit "+file.Name, domain.ErrUploadRejected)
	}

	state := domain.UploadState{Phase: domain.PhaseSubmitted}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.config.PollInterval):
		}

		op, pollErr := p.uploads.OperationStatus(ctx, opHandle)
		if pollErr != nil {
			logger.Debug("status check for %s failed (tolerated): %v", file.Name, pollErr)
		}
		state = state.Next(domain.PollResult{
			Done:       op.Done,
			ErrMessage: op.ErrMessage,
			PollErr:    pollErr,
		}, p.config.MaxPolls)

		switch state.Phase {
		case domain.PhaseDone:
			return nil
		case domain.PhaseFailed:
			if state.TimedOut {
				// Distinct from a provider-reported error: indexing may
				// still finish server-side.
				return domain.NewFailure(domain.FailureTimeout, "index "+file.Name,
					fmt.Errorf("%s; the file may still appear after a later sync", state.Reason))
			}
			return domain.NewFailure(domain.FailurePermanent, "index "+file.Name,
				fmt.Errorf("provider reported: %s", state.Reason))
		default:
			report(fmt.Sprintf("indexing %s (%s, check %d/%d)",
				file.Name, size, state.Attempt, p.config.MaxPolls))
		}
	}
}

// writeBack upserts module into the cached list, keyed by store handle.
// Cache writes are best effort; a failed write only costs degraded-mode
// listing accuracy.
func (p *UploadPipeline) writeBack(ctx context.Context, module domain.Module) {
	modules, err := p.cache.Load(ctx)
	if err != nil {
		logger.Warn("cache load before write-back failed: %v", err)
		modules = nil
	}

	replaced := false
	for i := range modules {
		if modules[i].StoreHandle == module.StoreHandle {
			modules[i] = module
			replaced = true
			break
		}
	}
	if !replaced {
		modules = append(modules, module)
	}

	if err := p.cache.Save(ctx, modules); err != nil {
		logger.Warn("cache write-back failed: %v", err)
	}
}
